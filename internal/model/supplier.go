package model

import "time"

// Supplier represents a shoe manufacturer that products are sourced from
type Supplier struct {
	SupplierID uint      `json:"supplier_id" gorm:"column:supplier_id;primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Country    string    `json:"country" gorm:"type:varchar(50);not null"`
	Products   []Product `json:"products" gorm:"foreignKey:SupplierID;references:SupplierID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
