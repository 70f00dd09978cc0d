package store

import (
	"context"

	"shoestore-service/internal/model"

	"gorm.io/gorm"
)

// OrderRepository is the persistence contract for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Order, error)
	Delete(ctx context.Context, id uint) error
}

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) Create(ctx context.Context, order *model.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	return translate(err)
}

func (s *orderStore) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.WithContext(ctx).Order("order_id").Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (s *orderStore) Get(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *orderStore) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "order_id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&order, "order_id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// Delete is rejected with ErrForeignKey while line items or shipments
// still reference the order.
func (s *orderStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Order{}, "order_id = ?", id)
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
