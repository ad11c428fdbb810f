package service

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

type CollectionService interface {
	ListCollections() ([]model.Collection, error)
	GetCollection(id uint) (*model.Collection, error)
	CreateCollection(title string) (*model.Collection, error)
	UpdateCollection(id uint, title string) (*model.Collection, error)
	DeleteCollection(id uint) error
}

type collectionService struct {
	collectionRepo repository.CollectionRepository
}

func NewCollectionService(collectionRepo repository.CollectionRepository) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
	}
}

func (s *collectionService) ListCollections() ([]model.Collection, error) {
	return s.collectionRepo.FindAll()
}

func (s *collectionService) GetCollection(id uint) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return collection, nil
}

func (s *collectionService) CreateCollection(title string) (*model.Collection, error) {
	logger.Info("Creating collection", map[string]interface{}{
		"title": title,
	})

	handle, err := s.uniqueHandle(title, 0)
	if err != nil {
		return nil, err
	}

	collection := &model.Collection{
		Title:  title,
		Handle: handle,
	}
	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, err
	}

	logger.Info("Collection created successfully", map[string]interface{}{
		"collection_id": collection.ID,
		"handle":        collection.Handle,
	})
	return collection, nil
}

func (s *collectionService) UpdateCollection(id uint, title string) (*model.Collection, error) {
	collection, err := s.GetCollection(id)
	if err != nil {
		return nil, err
	}

	if title != collection.Title {
		handle, err := s.uniqueHandle(title, collection.ID)
		if err != nil {
			return nil, err
		}
		collection.Title = title
		collection.Handle = handle
	}

	if err := s.collectionRepo.Update(collection); err != nil {
		return nil, err
	}

	logger.Info("Collection updated", map[string]interface{}{
		"collection_id": collection.ID,
	})
	return collection, nil
}

func (s *collectionService) DeleteCollection(id uint) error {
	if _, err := s.GetCollection(id); err != nil {
		return err
	}

	if err := s.collectionRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Collection deleted", map[string]interface{}{
		"collection_id": id,
	})
	return nil
}

// uniqueHandle mirrors product handle generation against the collections
// table.
func (s *collectionService) uniqueHandle(title string, excludeID uint) (string, error) {
	base := slug.Make(title)

	handle := base
	for i := 2; ; i++ {
		count, err := s.collectionRepo.CountByHandle(handle, excludeID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return handle, nil
		}
		handle = fmt.Sprintf("%s-%d", base, i)
	}
}
