package viewmodel

import (
	"fmt"
	"time"

	"car_rental_manager/models"

	"github.com/shopspring/decimal"
)

// VehicleForm is the dialog payload for add/edit vehicle. ID is zero for a
// new vehicle. The dialog cancelling simply means the form is never handed
// back to the view model.
type VehicleForm struct {
	ID        uint
	Brand     string
	Model     string
	Year      int
	DailyRate decimal.Decimal
	Available bool
}

// DefaultVehicleForm mirrors the add dialog's starting values.
func DefaultVehicleForm() VehicleForm {
	return VehicleForm{
		Year:      time.Now().Year(),
		DailyRate: decimal.RequireFromString("50.00"),
		Available: true,
	}
}

func vehicleFormOf(v models.Vehicle) VehicleForm {
	return VehicleForm{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		DailyRate: v.DailyRate,
		Available: v.Available,
	}
}

func (f VehicleForm) toModel() models.Vehicle {
	return models.Vehicle{
		ID:        f.ID,
		Brand:     f.Brand,
		Model:     f.Model,
		Year:      f.Year,
		DailyRate: f.DailyRate,
		Available: f.Available,
	}
}

// CustomerForm is the dialog payload for add/edit customer.
type CustomerForm struct {
	ID      uint
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

func customerFormOf(c models.Customer) CustomerForm {
	return CustomerForm{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Address: c.Address, Notes: c.Notes}
}

func (f CustomerForm) toModel() models.Customer {
	return models.Customer{ID: f.ID, Name: f.Name, Phone: f.Phone, Email: f.Email, Address: f.Address, Notes: f.Notes}
}

// RentalDraft backs the rent dialog: the vehicle being rented, the known
// customers to pick from, and the snapshot fields the user may override
// before confirming.
type RentalDraft struct {
	Vehicle   models.Vehicle
	Customers []models.Customer

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	RentalDate    time.Time
}

// NewRentalDraft prefills the snapshot from the first customer, matching
// the dialog's default dropdown selection.
func NewRentalDraft(v models.Vehicle, customers []models.Customer) *RentalDraft {
	d := &RentalDraft{Vehicle: v, Customers: customers, RentalDate: time.Now()}
	if len(customers) > 0 {
		d.UseCustomer(customers[0])
	}
	return d
}

// UseCustomer copies the chosen customer's contact details into the draft.
func (d *RentalDraft) UseCustomer(c models.Customer) {
	d.CustomerName = c.Name
	d.CustomerPhone = c.Phone
	d.CustomerEmail = c.Email
}

// VehicleInfo is the dialog caption, e.g. "Toyota Yaris (2023)".
func (d *RentalDraft) VehicleInfo() string {
	v := d.Vehicle
	return fmt.Sprintf("%s (%d)", v.Label(), v.Year)
}

func (d *RentalDraft) toRecord() models.RentalRecord {
	return models.RentalRecord{
		VehicleID:     d.Vehicle.ID,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		CustomerEmail: d.CustomerEmail,
		RentalDate:    d.RentalDate,
	}
}
