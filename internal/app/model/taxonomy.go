package model

import "time"

// Catalog taxonomy entities. Products reference these through nullable
// foreign keys; they are managed independently of the product aggregate.

type ProductCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

type ProductType struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Value     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductType) TableName() string {
	return "product_types"
}

type ProductVendor struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductVendor) TableName() string {
	return "product_vendors"
}
