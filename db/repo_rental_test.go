package db

import (
	"context"
	"testing"
	"time"

	"car_rental_manager/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireConsistent asserts the cooperative invariant: available iff no
// open rental record exists for the vehicle.
func requireConsistent(t *testing.T, repo *Repo, vehicleID uint) {
	t.Helper()
	ctx := context.Background()

	available, err := repo.IsVehicleAvailable(ctx, vehicleID)
	require.NoError(t, err)

	_, err = repo.FindOpenRental(ctx, vehicleID)
	hasOpen := err == nil
	if err != nil {
		require.True(t, IsNotFound(err), "unexpected lookup failure: %v", err)
	}

	assert.Equal(t, !hasOpen, available, "available flag disagrees with open record")
}

func TestRentThenReturnCycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	v := testVehicle("Toyota", "Yaris", "30.00")
	require.NoError(t, repo.CreateVehicle(ctx, v))
	requireConsistent(t, repo, v.ID)

	rec := &models.RentalRecord{
		VehicleID:     v.ID,
		CustomerName:  "Maciej Sołek",
		CustomerPhone: "123761123",
	}
	require.NoError(t, repo.RentVehicle(ctx, rec))
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.Returned)
	assert.Nil(t, rec.ReturnDate)
	assert.False(t, rec.RentalDate.IsZero())
	requireConsistent(t, repo, v.ID)

	available, err := repo.IsVehicleAvailable(ctx, v.ID)
	require.NoError(t, err)
	assert.False(t, available)

	closed, err := repo.ReturnVehicle(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, closed.ID)
	assert.True(t, closed.Returned)
	require.NotNil(t, closed.ReturnDate)
	assert.WithinDuration(t, time.Now(), *closed.ReturnDate, time.Minute)
	requireConsistent(t, repo, v.ID)

	available, err = repo.IsVehicleAvailable(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestRentTwiceIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	v := testVehicle("Honda", "Civic", "100.00")
	require.NoError(t, repo.CreateVehicle(ctx, v))

	require.NoError(t, repo.RentVehicle(ctx, &models.RentalRecord{VehicleID: v.ID, CustomerName: "Jan Miodek"}))

	err := repo.RentVehicle(ctx, &models.RentalRecord{VehicleID: v.ID, CustomerName: "Jacek Kowalski"})
	assert.ErrorIs(t, err, ErrNotAvailable)

	// No second record appeared and the state did not change.
	recs, err := repo.ListRentals(ctx, RentalQuery{VehicleID: v.ID})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	requireConsistent(t, repo, v.ID)
}

func TestReturnAvailableVehicleIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	v := testVehicle("Ford", "Mustang", "85.00")
	require.NoError(t, repo.CreateVehicle(ctx, v))

	_, err := repo.ReturnVehicle(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNotRented)
	requireConsistent(t, repo, v.ID)
}

func TestRentRequiresCustomerName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	v := testVehicle("Tesla", "Model 3", "95.00")
	require.NoError(t, repo.CreateVehicle(ctx, v))

	err := repo.RentVehicle(ctx, &models.RentalRecord{VehicleID: v.ID, CustomerName: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
	requireConsistent(t, repo, v.ID)
}

func TestRentUnknownVehicle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	err := repo.RentVehicle(ctx, &models.RentalRecord{VehicleID: 999, CustomerName: "Jan Miodek"})
	assert.True(t, IsNotFound(err))
}

func TestReturnRepairsDanglingAvailability(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	v := testVehicle("BMW", "X5", "120.00")
	require.NoError(t, repo.CreateVehicle(ctx, v))

	// Simulate a prior consistency breach: flag says rented, no open record.
	require.NoError(t, repo.DB.Model(&models.Vehicle{}).
		Where("id = ?", v.ID).Update("available", false).Error)

	rec, err := repo.ReturnVehicle(ctx, v.ID)
	assert.ErrorIs(t, err, ErrNoOpenRental)
	assert.Nil(t, rec)

	// The breach is reported, and the flag is repaired.
	requireConsistent(t, repo, v.ID)
	available, err := repo.IsVehicleAvailable(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestListRentalsFiltersAndPreloadsVehicle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	v := testVehicle("Toyota", "Yaris", "30.00")
	require.NoError(t, repo.CreateVehicle(ctx, v))

	require.NoError(t, repo.RentVehicle(ctx, &models.RentalRecord{VehicleID: v.ID, CustomerName: "Maciej Sołek"}))
	_, err := repo.ReturnVehicle(ctx, v.ID)
	require.NoError(t, err)
	require.NoError(t, repo.RentVehicle(ctx, &models.RentalRecord{VehicleID: v.ID, CustomerName: "Maciej Sołek"}))

	open, err := repo.ListRentals(ctx, RentalQuery{Status: "open"})
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.NotNil(t, open[0].Vehicle)
	assert.Equal(t, "Toyota", open[0].Vehicle.Brand)

	returned, err := repo.ListRentals(ctx, RentalQuery{Status: "returned"})
	require.NoError(t, err)
	assert.Len(t, returned, 1)

	all, err := repo.ListRentals(ctx, RentalQuery{VehicleID: v.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// The derived cost is computable on the detached copies.
	now := time.Now()
	assert.False(t, open[0].Cost(now).IsZero())
}
