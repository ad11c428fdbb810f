package service

import (
	"errors"

	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound    = errors.New("address not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to address")
)

type AddressService interface {
	GetUserAddresses(userID uint) ([]model.Address, error)
	CreateAddress(userID uint, address *model.Address) error
	UpdateAddress(userID, addressID uint, updated *model.Address) error
	DeleteAddress(userID, addressID uint) error
	SetDefaultAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{
		addressRepo: addressRepo,
	}
}

func (s *addressService) GetUserAddresses(userID uint) ([]model.Address, error) {
	logger.Debug("Fetching user addresses", map[string]interface{}{
		"user_id": userID,
	})

	addresses, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return addresses, nil
}

func (s *addressService) CreateAddress(userID uint, address *model.Address) error {
	logger.Info("Creating address", map[string]interface{}{
		"user_id":   userID,
		"label":     address.Label,
		"recipient": address.Recipient,
	})

	address.UserID = userID

	existing, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to check existing addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	// The first address always becomes the default
	if len(existing) == 0 {
		address.IsDefault = true
	}

	if address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			logger.Error("Failed to clear default addresses", err, map[string]interface{}{
				"user_id": userID,
			})
			return err
		}
	}

	if err := s.addressRepo.Create(address); err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("Address created successfully", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    userID,
	})
	return nil
}

func (s *addressService) UpdateAddress(userID, addressID uint, updated *model.Address) error {
	logger.Info("Updating address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.findOwnedAddress(userID, addressID)
	if err != nil {
		return err
	}

	address.Label = updated.Label
	address.Recipient = updated.Recipient
	address.Phone = updated.Phone
	address.Line1 = updated.Line1
	address.Line2 = updated.Line2
	address.City = updated.City
	address.PostalCode = updated.PostalCode
	address.CountryCode = updated.CountryCode

	if updated.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			logger.Error("Failed to clear default addresses", err, map[string]interface{}{
				"user_id": userID,
			})
			return err
		}
		address.IsDefault = true
	}

	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to update address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return err
	}

	return nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	logger.Info("Deleting address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.findOwnedAddress(userID, addressID)
	if err != nil {
		return err
	}

	wasDefault := address.IsDefault

	if err := s.addressRepo.Delete(addressID); err != nil {
		logger.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return err
	}

	// Promote the most recent remaining address when the default was removed
	if wasDefault {
		remaining, err := s.addressRepo.FindByUserID(userID)
		if err != nil {
			logger.Error("Failed to fetch remaining addresses", err, map[string]interface{}{
				"user_id": userID,
			})
			return err
		}
		if len(remaining) > 0 {
			next := remaining[0]
			next.IsDefault = true
			if err := s.addressRepo.Update(&next); err != nil {
				logger.Error("Failed to promote new default address", err, map[string]interface{}{
					"address_id": next.ID,
				})
				return err
			}
		}
	}

	return nil
}

func (s *addressService) SetDefaultAddress(userID, addressID uint) error {
	logger.Info("Setting default address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.findOwnedAddress(userID, addressID)
	if err != nil {
		return err
	}

	if address.IsDefault {
		return nil
	}

	if err := s.addressRepo.ClearDefault(userID); err != nil {
		logger.Error("Failed to clear default addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	address.IsDefault = true
	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to set default address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return err
	}

	return nil
}

func (s *addressService) findOwnedAddress(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Address not found", map[string]interface{}{
				"address_id": addressID,
			})
			return nil, ErrAddressNotFound
		}
		logger.Error("Failed to fetch address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	if address.UserID != userID {
		logger.Warn("Address belongs to another user", map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		return nil, ErrUnauthorizedAccess
	}

	return address, nil
}
