package model

import (
	"time"

	"gorm.io/gorm"
)

// Collection is an independently owned grouping of products. Deleting a
// product detaches it from its collections; the collections themselves
// are never touched by product lifecycle operations.
type Collection struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Handle    string         `gorm:"type:varchar(255);uniqueIndex:idx_collections_handle,where:deleted_at IS NULL;not null" json:"handle"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"many2many:collection_products" json:"-"`
}

func (Collection) TableName() string {
	return "collections"
}
