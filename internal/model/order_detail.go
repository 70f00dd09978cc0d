package model

// OrderDetail represents one product line on an order. There is no
// surrogate id: the (order_id, product_id) pair is the primary key.
type OrderDetail struct {
	OrderID   uint `json:"order_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	Quantity  int  `json:"quantity" gorm:"not null"`
}
