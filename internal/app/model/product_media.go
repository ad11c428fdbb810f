package model

import "time"

// ProductMedia stores ordered media entries for a product. Rank is
// caller-supplied display order; the URL points at the stored object and is
// never rewritten after creation.
type ProductMedia struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	URL       string    `gorm:"not null" json:"url"`
	Rank      int       `gorm:"default:0" json:"rank"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductMedia) TableName() string {
	return "product_media"
}
