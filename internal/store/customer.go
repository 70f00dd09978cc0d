package store

import (
	"context"

	"shoestore-service/internal/model"

	"gorm.io/gorm"
)

// CustomerRepository is the persistence contract for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	List(ctx context.Context) ([]model.Customer, error)
	Get(ctx context.Context, id uint) (*model.Customer, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Customer, error)
	Delete(ctx context.Context, id uint) error
}

type customerStore struct {
	db *gorm.DB
}

// Create inserts the customer. A reused email address violates the unique
// index and surfaces as ErrDuplicate; the existing customer is untouched.
func (s *customerStore) Create(ctx context.Context, customer *model.Customer) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(customer).Error
	})
	if err != nil {
		return translate(err)
	}
	if customer.Orders == nil {
		customer.Orders = []model.Order{}
	}
	return nil
}

// List expands each customer's orders, same shape as Get.
func (s *customerStore) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := s.db.WithContext(ctx).Preload("Orders").Order("customer_id").Find(&customers).Error; err != nil {
		return nil, translate(err)
	}
	for i := range customers {
		if customers[i].Orders == nil {
			customers[i].Orders = []model.Order{}
		}
	}
	return customers, nil
}

// Get expands the customer's orders one level deep. Orders do not expand
// back into the customer, so the cycle stops here. A customer with no
// orders carries an empty slice so it serializes as [].
func (s *customerStore) Get(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.WithContext(ctx).Preload("Orders").First(&customer, "customer_id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	if customer.Orders == nil {
		customer.Orders = []model.Order{}
	}
	return &customer, nil
}

func (s *customerStore) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, "customer_id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&customer).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Orders").First(&customer, "customer_id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	if customer.Orders == nil {
		customer.Orders = []model.Order{}
	}
	return &customer, nil
}

func (s *customerStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Customer{}, "customer_id = ?", id)
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
