package db

import (
	"context"

	"car_rental_manager/models"
)

// Customers

func (r *Repo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if !c.HasName() {
		return ErrNameRequired
	}
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repo) FindCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}

// SaveCustomer upserts by identity, rejecting blank names before any write.
func (r *Repo) SaveCustomer(ctx context.Context, c *models.Customer) error {
	if !c.HasName() {
		return ErrNameRequired
	}
	return r.DB.WithContext(ctx).Save(c).Error
}

// DeleteCustomer removes the customer only. Rental records keep their own
// snapshot of the customer's contact details, so history stays intact.
func (r *Repo) DeleteCustomer(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Customer{}, id).Error
}
