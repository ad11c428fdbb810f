package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable variation of a product. OptionValues holds
// the selected value per option (one per option by convention, not enforced).
type ProductVariant struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Quantity  int             `gorm:"default:0" json:"quantity"`
	SKU       *string         `gorm:"uniqueIndex" json:"sku"`
	Barcode   *string         `gorm:"uniqueIndex" json:"barcode"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	OptionValues []ProductOptionValue `gorm:"many2many:product_variant_option_values" json:"values"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}
