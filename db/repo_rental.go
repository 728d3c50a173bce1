package db

import (
	"context"
	"strings"
	"time"

	"car_rental_manager/models"

	"gorm.io/gorm"
)

// Rentals

// RentVehicle opens a rental: one transaction re-validates availability,
// writes the record and flips the vehicle to rented. rec must carry the
// vehicle id and the denormalized customer snapshot; RentalDate defaults
// to now when unset.
func (r *Repo) RentVehicle(ctx context.Context, rec *models.RentalRecord) error {
	if strings.TrimSpace(rec.CustomerName) == "" {
		return ErrNameRequired
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v models.Vehicle
		if err := tx.First(&v, "id = ?", rec.VehicleID).Error; err != nil {
			return err
		}
		if err := models.EnsureTransition(v.State(), models.StateRented); err != nil {
			return ErrNotAvailable
		}

		// Belt and braces next to the flag: an open record also blocks.
		var open int64
		if err := tx.Model(&models.RentalRecord{}).
			Where("vehicle_id = ? AND return_date IS NULL", rec.VehicleID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrNotAvailable
		}

		if rec.RentalDate.IsZero() {
			rec.RentalDate = time.Now()
		}
		rec.ReturnDate = nil
		rec.Returned = false
		rec.Vehicle = nil
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		return tx.Model(&models.Vehicle{}).
			Where("id = ? AND available = ?", v.ID, true).
			Update("available", false).Error
	})
}

// ReturnVehicle closes the open rental for the vehicle and flips it back to
// available, again in one transaction. A rented vehicle without an open
// record means a prior consistency breach: the flag is repaired inside the
// transaction and ErrNoOpenRental is reported instead of a silent no-op.
func (r *Repo) ReturnVehicle(ctx context.Context, vehicleID uint) (*models.RentalRecord, error) {
	var rec models.RentalRecord
	repaired := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v models.Vehicle
		if err := tx.First(&v, "id = ?", vehicleID).Error; err != nil {
			return err
		}
		if err := models.EnsureTransition(v.State(), models.StateAvailable); err != nil {
			return ErrNotRented
		}

		err := tx.Where("vehicle_id = ? AND return_date IS NULL", vehicleID).
			First(&rec).Error
		if IsNotFound(err) {
			repaired = true
			return tx.Model(&models.Vehicle{}).
				Where("id = ?", vehicleID).
				Update("available", true).Error
		}
		if err != nil {
			return err
		}

		now := time.Now()
		rec.ReturnDate = &now
		rec.Returned = true
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}

		return tx.Model(&models.Vehicle{}).
			Where("id = ?", vehicleID).
			Update("available", true).Error
	})
	if err != nil {
		return nil, err
	}
	if repaired {
		return nil, ErrNoOpenRental
	}
	return &rec, nil
}

// FindOpenRental returns the active record for the vehicle, if any.
func (r *Repo) FindOpenRental(ctx context.Context, vehicleID uint) (*models.RentalRecord, error) {
	var rec models.RentalRecord
	if err := r.DB.WithContext(ctx).
		Where("vehicle_id = ? AND return_date IS NULL", vehicleID).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

type RentalQuery struct {
	VehicleID uint   // 0 = all vehicles
	Status    string // "", "open", "returned"
}

// ListRentals returns rental history newest first, vehicles preloaded so
// the derived cost is computable on the detached copies.
func (r *Repo) ListRentals(ctx context.Context, q RentalQuery) ([]models.RentalRecord, error) {
	tx := r.DB.WithContext(ctx).
		Model(&models.RentalRecord{}).
		Preload("Vehicle").
		Order("rental_date DESC")
	if q.VehicleID != 0 {
		tx = tx.Where("vehicle_id = ?", q.VehicleID)
	}
	switch q.Status {
	case "open":
		tx = tx.Where("return_date IS NULL")
	case "returned":
		tx = tx.Where("return_date IS NOT NULL")
	}
	var recs []models.RentalRecord
	if err := tx.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
