package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	Label       string         `gorm:"type:varchar(100)" json:"label"` // "Home", "Office"
	Recipient   string         `gorm:"type:varchar(100);not null" json:"recipient"`
	Phone       string         `gorm:"type:varchar(30)" json:"phone"`
	Line1       string         `gorm:"type:text;not null" json:"line1"`
	Line2       string         `gorm:"type:text" json:"line2"`
	City        string         `gorm:"type:varchar(100)" json:"city"`
	PostalCode  string         `gorm:"type:varchar(20)" json:"postal_code"`
	CountryCode string         `gorm:"type:varchar(2)" json:"country_code"`
	IsDefault   bool           `gorm:"default:false" json:"is_default"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
