package store

import (
	"context"

	"shoestore-service/internal/model"

	"gorm.io/gorm"
)

// ShipmentRepository is the persistence contract for shipments. Shipments
// are never fetched individually, only listed, so there is no Get.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *model.Shipment) error
	List(ctx context.Context) ([]model.Shipment, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Shipment, error)
	Delete(ctx context.Context, id uint) error
}

type shipmentStore struct {
	db *gorm.DB
}

func (s *shipmentStore) Create(ctx context.Context, shipment *model.Shipment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(shipment).Error
	})
	return translate(err)
}

func (s *shipmentStore) List(ctx context.Context) ([]model.Shipment, error) {
	var shipments []model.Shipment
	if err := s.db.WithContext(ctx).Order("shipment_id").Find(&shipments).Error; err != nil {
		return nil, translate(err)
	}
	return shipments, nil
}

func (s *shipmentStore) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Shipment, error) {
	var shipment model.Shipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&shipment, "shipment_id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&shipment).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&shipment, "shipment_id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &shipment, nil
}

func (s *shipmentStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Shipment{}, "shipment_id = ?", id)
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
