package store

import (
	"context"

	"shoestore-service/internal/model"

	"gorm.io/gorm"
)

// SupplierRepository is the persistence contract for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	List(ctx context.Context) ([]model.Supplier, error)
	Get(ctx context.Context, id uint) (*model.Supplier, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Supplier, error)
	Delete(ctx context.Context, id uint) error
}

type supplierStore struct {
	db *gorm.DB
}

func (s *supplierStore) Create(ctx context.Context, supplier *model.Supplier) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(supplier).Error
	})
	if err != nil {
		return translate(err)
	}
	if supplier.Products == nil {
		supplier.Products = []model.Product{}
	}
	return nil
}

// List expands each supplier's products, same shape as Get.
func (s *supplierStore) List(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := s.db.WithContext(ctx).Preload("Products").Order("supplier_id").Find(&suppliers).Error; err != nil {
		return nil, translate(err)
	}
	for i := range suppliers {
		if suppliers[i].Products == nil {
			suppliers[i].Products = []model.Product{}
		}
	}
	return suppliers, nil
}

// Get expands the supplier's products one level deep. A supplier with no
// products carries an empty slice so it serializes as [].
func (s *supplierStore) Get(ctx context.Context, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	err := s.db.WithContext(ctx).Preload("Products").First(&supplier, "supplier_id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	if supplier.Products == nil {
		supplier.Products = []model.Product{}
	}
	return &supplier, nil
}

// Update overwrites only the listed columns; everything else keeps its
// prior value. Last writer wins.
func (s *supplierStore) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Supplier, error) {
	var supplier model.Supplier
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&supplier, "supplier_id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&supplier).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Products").First(&supplier, "supplier_id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	if supplier.Products == nil {
		supplier.Products = []model.Product{}
	}
	return &supplier, nil
}

// Delete is a hard delete. Suppliers with products are rejected by the
// RESTRICT foreign key and surface as ErrForeignKey.
func (s *supplierStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Supplier{}, "supplier_id = ?", id)
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
