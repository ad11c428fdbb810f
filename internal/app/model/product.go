package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	StatusDraft    ProductStatus = "draft"
	StatusActive   ProductStatus = "active"
	StatusArchived ProductStatus = "archived"
)

// Product is the aggregate root of the catalog. Media, options, option
// values and variants live and die with it; collections are only referenced.
type Product struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Title       string            `gorm:"not null" json:"title"`
	Subtitle    string            `json:"subtitle"`
	Handle      string            `gorm:"type:varchar(255);uniqueIndex:idx_products_handle,where:deleted_at IS NULL;not null" json:"handle"` // URL slug, unique among non-deleted rows
	Description string            `gorm:"type:text" json:"description"`
	Status      ProductStatus     `gorm:"type:varchar(20);default:'draft'" json:"status"`
	Tags        pq.StringArray    `gorm:"type:text[]" json:"tags"`
	Metadata    datatypes.JSONMap `json:"metadata"`
	CategoryID  *uint             `gorm:"index" json:"category_id"`
	TypeID      *uint             `json:"type_id"`
	VendorID    *uint             `json:"vendor_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Category    *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Type        *ProductType     `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Vendor      *ProductVendor   `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Media       []ProductMedia   `gorm:"foreignKey:ProductID" json:"media"`
	Options     []ProductOption  `gorm:"foreignKey:ProductID" json:"options"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants"`
	Collections []Collection     `gorm:"many2many:collection_products" json:"collections"`
}

func (Product) TableName() string {
	return "products"
}
