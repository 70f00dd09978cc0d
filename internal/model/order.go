package model

import "time"

// Order represents a purchase placed by a customer. The table keeps the
// plural name "orders" to stay clear of the SQL ORDER keyword.
type Order struct {
	OrderID    uint          `json:"order_id" gorm:"column:order_id;primaryKey"`
	CustomerID uint          `json:"customer_id" gorm:"not null;index"`
	OrderDate  Date          `json:"order_date" gorm:"not null"`
	Details    []OrderDetail `json:"-" gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:RESTRICT"`
	Shipments  []Shipment    `json:"-" gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
