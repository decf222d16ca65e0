package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Blend represents a catalog product.
type Blend struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null;index"`
	Type      string          `json:"type,omitempty" gorm:"size:80"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	Stock     int             `json:"stock" gorm:"not null;default:0"`
	ImageURL  string          `json:"image_url,omitempty" gorm:"size:512"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
