package db

import (
	"errors"

	"gorm.io/gorm"
)

// Repo is the persistence gateway. Every read scans into fresh values, so
// callers always hold detached copies; writes go back through explicit
// Create/Save/Delete calls keyed by identity.
type Repo struct{ DB *gorm.DB }

func NewRepo(conn *gorm.DB) *Repo { return &Repo{DB: conn} }

var (
	ErrNameRequired    = errors.New("customer name is required")
	ErrVehicleRequired = errors.New("vehicle brand and model are required")
	ErrNotAvailable    = errors.New("vehicle is not available")
	ErrNotRented       = errors.New("vehicle is not rented")
	ErrNoOpenRental    = errors.New("no open rental for this vehicle")
)

// IsNotFound reports whether err means the targeted row does not exist.
// Most delete/lookup paths treat this as a no-op rather than a failure.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
