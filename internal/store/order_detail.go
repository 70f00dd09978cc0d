package store

import (
	"context"

	"shoestore-service/internal/model"

	"gorm.io/gorm"
)

// OrderDetailRepository is the persistence contract for order line items.
// Line items are addressed by their composite (order_id, product_id) key;
// there is no get-by-id or update operation.
type OrderDetailRepository interface {
	Create(ctx context.Context, detail *model.OrderDetail) error
	List(ctx context.Context) ([]model.OrderDetail, error)
	Delete(ctx context.Context, orderID, productID uint) error
}

type orderDetailStore struct {
	db *gorm.DB
}

func (s *orderDetailStore) Create(ctx context.Context, detail *model.OrderDetail) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(detail).Error
	})
	return translate(err)
}

func (s *orderDetailStore) List(ctx context.Context) ([]model.OrderDetail, error) {
	var details []model.OrderDetail
	if err := s.db.WithContext(ctx).Order("order_id, product_id").Find(&details).Error; err != nil {
		return nil, translate(err)
	}
	return details, nil
}

func (s *orderDetailStore) Delete(ctx context.Context, orderID, productID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("order_id = ? AND product_id = ?", orderID, productID).
			Delete(&model.OrderDetail{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}
