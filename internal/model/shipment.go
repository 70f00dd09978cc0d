package model

import "time"

// Default values applied when a shipment is created without courier/status.
const (
	DefaultCourier        = "Servientrega"
	DefaultShipmentStatus = "Pending"
)

// Shipment represents the delivery of an order. Status is free text by
// convention ("Pending", "Delivered", ...); no transition set is enforced.
// Nothing prevents two shipments for the same order, a known domain gap
// inherited from the schema.
type Shipment struct {
	ShipmentID uint      `json:"shipment_id" gorm:"column:shipment_id;primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	Courier    string    `json:"courier" gorm:"type:varchar(100);not null;default:'Servientrega'"`
	Status     string    `json:"status" gorm:"type:varchar(50);not null;default:'Pending'"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
