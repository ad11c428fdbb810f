package model

import "time"

// ProductOption is an option group ("Size", "Color") owned by one product.
type ProductOption struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Values []ProductOptionValue `gorm:"foreignKey:OptionID" json:"values"`
}

func (ProductOption) TableName() string {
	return "product_options"
}

// ProductOptionValue is one selectable value of an option. The value string is
// the natural key within its option; sync logic diffs by it, not by row ID.
type ProductOptionValue struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OptionID  uint      `gorm:"index;not null" json:"option_id"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductOptionValue) TableName() string {
	return "product_option_values"
}
