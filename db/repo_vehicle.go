package db

import (
	"context"
	"strings"

	"car_rental_manager/models"

	"gorm.io/gorm"
)

// Vehicles

func (r *Repo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if strings.TrimSpace(v.Brand) == "" || strings.TrimSpace(v.Model) == "" {
		return ErrVehicleRequired
	}
	return r.DB.WithContext(ctx).Create(v).Error
}

func (r *Repo) FindVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.DB.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&vehicles).Error
	return vehicles, err
}

// SaveVehicle upserts by identity. Reads hand out detached copies, so a
// plain Save replaces the stored row without any tracking conflicts.
func (r *Repo) SaveVehicle(ctx context.Context, v *models.Vehicle) error {
	if strings.TrimSpace(v.Brand) == "" || strings.TrimSpace(v.Model) == "" {
		return ErrVehicleRequired
	}
	return r.DB.WithContext(ctx).Save(v).Error
}

// DeleteVehicle removes the vehicle and its rental history. The cascade is
// issued explicitly inside one transaction, the FK constraint stays as a
// backstop. Deleting an unknown id is a no-op.
func (r *Repo) DeleteVehicle(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&models.RentalRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Vehicle{}, id).Error
	})
}

// IsVehicleAvailable reads the redundant availability column.
func (r *Repo) IsVehicleAvailable(ctx context.Context, id uint) (bool, error) {
	var available bool
	if err := r.DB.WithContext(ctx).
		Model(&models.Vehicle{}).
		Select("available").
		Where("id = ?", id).
		Scan(&available).Error; err != nil {
		return false, err
	}
	return available, nil
}
