package db

import (
	"context"
	"time"

	"car_rental_manager/models"

	"github.com/shopspring/decimal"
)

// Seed populates sample vehicles, customers and rental history on first
// run. It does nothing unless all three tables are empty.
func (r *Repo) Seed(ctx context.Context) error {
	conn := r.DB.WithContext(ctx)

	var vehicles, customers, rentals int64
	if err := conn.Model(&models.Vehicle{}).Count(&vehicles).Error; err != nil {
		return err
	}
	if err := conn.Model(&models.Customer{}).Count(&customers).Error; err != nil {
		return err
	}
	if err := conn.Model(&models.RentalRecord{}).Count(&rentals).Error; err != nil {
		return err
	}
	if vehicles > 0 || customers > 0 || rentals > 0 {
		return nil
	}

	rate := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	toyota := models.Vehicle{Brand: "Toyota", Model: "Yaris", Year: 2023, DailyRate: rate("30.00"), Available: true}
	honda := models.Vehicle{Brand: "Honda", Model: "Civic", Year: 1998, DailyRate: rate("100.00"), Available: true}
	ford := models.Vehicle{Brand: "Ford", Model: "Mustang", Year: 2024, DailyRate: rate("85.00"), Available: true}
	tesla := models.Vehicle{Brand: "Tesla", Model: "Model 3", Year: 2023, DailyRate: rate("95.00"), Available: true}
	bmw := models.Vehicle{Brand: "BMW", Model: "X5", Year: 2023, DailyRate: rate("120.00"), Available: true}

	fleet := []*models.Vehicle{&toyota, &honda, &ford, &tesla, &bmw}
	for _, v := range fleet {
		if err := conn.Create(v).Error; err != nil {
			return err
		}
	}

	seedCustomers := []models.Customer{
		{Name: "Jacek Kowalski", Phone: "536761912", Email: "j.kowalski@gmail.com", Address: "Powstańców 21, Rzeszów", Notes: "Spóznia się z terminem oddania auta."},
		{Name: "Jan Miodek", Phone: "876876876", Email: "miodek@gmail.com", Address: "Podkarpacka 21, Kraków"},
		{Name: "Maciej Sołek", Phone: "123761123", Email: "msołek@gmail.com", Address: "Jezuitów 93/12d, Kraków"},
		{Name: "Joanna Podgórska", Phone: "654876987", Email: "podgórska@gmail.com", Address: "Cicha 21, Warszawa", Notes: "Oddała brudne auto."},
	}
	for i := range seedCustomers {
		if err := conn.Create(&seedCustomers[i]).Error; err != nil {
			return err
		}
	}

	maciej := seedCustomers[2]
	closedReturn1 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
	closedReturn2 := time.Date(2025, 2, 4, 0, 0, 0, 0, time.Local)

	history := []models.RentalRecord{
		{
			VehicleID:     toyota.ID,
			CustomerName:  maciej.Name,
			CustomerPhone: maciej.Phone,
			CustomerEmail: maciej.Email,
			RentalDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local),
			ReturnDate:    &closedReturn1,
			Returned:      true,
		},
		{
			VehicleID:     honda.ID,
			CustomerName:  maciej.Name,
			CustomerPhone: maciej.Phone,
			CustomerEmail: maciej.Email,
			RentalDate:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local),
			ReturnDate:    &closedReturn2,
			Returned:      true,
		},
		// Open rental, the Toyota is out.
		{
			VehicleID:     toyota.ID,
			CustomerName:  maciej.Name,
			CustomerPhone: maciej.Phone,
			CustomerEmail: maciej.Email,
			RentalDate:    time.Now().AddDate(0, 0, -2),
			ReturnDate:    nil,
			Returned:      false,
		},
	}
	for i := range history {
		if err := conn.Create(&history[i]).Error; err != nil {
			return err
		}
	}

	return conn.Model(&models.Vehicle{}).
		Where("id = ?", toyota.ID).
		Update("available", false).Error
}
