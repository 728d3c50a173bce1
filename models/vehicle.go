package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const VehicleTable = "vehicles"
const CustomerTable = "customers"
const RentalRecordTable = "rental_records"

// Vehicle is one rentable car. Available is a redundant column kept in
// lockstep with the open rental record for the vehicle; every mutation
// path goes through db.Repo which preserves that pairing.
type Vehicle struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Brand     string          `gorm:"size:100;not null" json:"brand"`
	Model     string          `gorm:"size:100;not null" json:"model"`
	Year      int             `json:"year"`
	DailyRate decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"dailyRate"`
	Available bool            `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Vehicle) TableName() string { return VehicleTable }

// Label is the short display form used by dialogs and the rentals list.
func (v *Vehicle) Label() string {
	if v == nil {
		return ""
	}
	return v.Brand + " " + v.Model
}
