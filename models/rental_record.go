package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalRecord is one rental transaction. ReturnDate == nil marks the
// rental as open; the partial unique index created in db.Migrate allows
// at most one open record per vehicle. Customer contact fields are a
// snapshot taken at rental time, independent of later customer edits.
type RentalRecord struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	VehicleID uint     `gorm:"index;not null" json:"vehicleId"`
	Vehicle   *Vehicle `gorm:"constraint:OnDelete:CASCADE" json:"vehicle,omitempty"`

	CustomerName  string `gorm:"size:200;not null" json:"customerName"`
	CustomerPhone string `gorm:"size:45" json:"customerPhone,omitempty"`
	CustomerEmail string `gorm:"size:255" json:"customerEmail,omitempty"`

	RentalDate time.Time  `gorm:"index;not null" json:"rentalDate"`
	ReturnDate *time.Time `gorm:"index" json:"returnDate,omitempty"`
	Returned   bool       `gorm:"not null;default:false" json:"returned"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (RentalRecord) TableName() string { return RentalRecordTable }

// Open reports whether the rental is still active.
func (r *RentalRecord) Open() bool {
	return !r.Returned && r.ReturnDate == nil
}

// Days returns the whole days the rental covers, measured up to ReturnDate
// for closed rentals and up to now for open ones, never less than one.
func (r *RentalRecord) Days(now time.Time) int {
	end := now
	if r.ReturnDate != nil {
		end = *r.ReturnDate
	}
	days := int(end.Sub(r.RentalDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// Cost returns Days(now) times the vehicle's daily rate. A record whose
// vehicle is not loaded, or whose vehicle rents for zero, costs zero.
func (r *RentalRecord) Cost(now time.Time) decimal.Decimal {
	if r.Vehicle == nil || r.Vehicle.DailyRate.IsZero() {
		return decimal.Zero
	}
	return r.Vehicle.DailyRate.Mul(decimal.NewFromInt(int64(r.Days(now))))
}
