package store

import (
	"context"

	"shoestore-service/internal/model"

	"gorm.io/gorm"
)

// ProductRepository is the persistence contract for products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productStore struct {
	db *gorm.DB
}

// Create inserts the product. A supplier_id that references no supplier
// surfaces as ErrForeignKey and nothing is persisted.
func (s *productStore) Create(ctx context.Context, product *model.Product) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	return translate(err)
}

func (s *productStore) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Order("product_id").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (s *productStore) Get(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *productStore) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "product_id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&product, "product_id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *productStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Product{}, "product_id = ?", id)
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
