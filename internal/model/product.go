package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one shoe model offered by a supplier
type Product struct {
	ProductID  uint            `json:"product_id" gorm:"column:product_id;primaryKey"`
	SupplierID uint            `json:"supplier_id" gorm:"not null;index"`
	Brand      string          `json:"brand" gorm:"type:varchar(50);not null"`
	Model      string          `json:"model" gorm:"type:varchar(100);not null"`
	Size       int             `json:"size" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null;default:0.00"`
	Stock      int             `json:"stock" gorm:"not null;default:0"`
	Details    []OrderDetail   `json:"-" gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
