package model

import "time"

// Customer represents a buyer identified by a unique email address
type Customer struct {
	CustomerID uint      `json:"customer_id" gorm:"column:customer_id;primaryKey"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Email      string    `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	Address    string    `json:"address" gorm:"type:varchar(200);not null"`
	Orders     []Order   `json:"orders" gorm:"foreignKey:CustomerID;references:CustomerID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
