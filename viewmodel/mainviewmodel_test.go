package viewmodel

import (
	"context"
	"fmt"
	"testing"

	"car_rental_manager/db"
	"car_rental_manager/logger"
	"car_rental_manager/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVM(t *testing.T) *MainViewModel {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	return NewMainViewModel(db.NewRepo(conn), logger.New("logrus", "error", "console"))
}

func addVehicle(t *testing.T, vm *MainViewModel, brand, model string) *models.Vehicle {
	t.Helper()
	v, err := vm.AddVehicle(context.Background(), VehicleForm{
		Brand:     brand,
		Model:     model,
		Year:      2023,
		DailyRate: decimal.RequireFromString("30.00"),
		Available: true,
	})
	require.NoError(t, err)
	return v
}

func addCustomer(t *testing.T, vm *MainViewModel, name string) *models.Customer {
	t.Helper()
	c, err := vm.AddCustomer(context.Background(), CustomerForm{Name: name, Phone: "123761123"})
	require.NoError(t, err)
	return c
}

func TestLoadFillsCollections(t *testing.T) {
	ctx := context.Background()
	vm := newTestVM(t)
	require.NoError(t, vm.repo.Seed(ctx))

	require.NoError(t, vm.Load(ctx))
	assert.Equal(t, 5, vm.Vehicles.Len())
	assert.Equal(t, 4, vm.Customers.Len())
	assert.Equal(t, 3, vm.Rentals.Len())
}

func TestCommandAvailabilityFollowsSelection(t *testing.T) {
	vm := newTestVM(t)
	v := addVehicle(t, vm, "Toyota", "Yaris")

	assert.False(t, vm.CanEditVehicle().Enabled)
	assert.False(t, vm.CanRent().Enabled)
	assert.Equal(t, "no vehicle selected", vm.CanRent().Reason)

	require.True(t, vm.SelectVehicle(v.ID))
	assert.True(t, vm.CanEditVehicle().Enabled)
	assert.True(t, vm.CanDeleteVehicle().Enabled)

	// Rent stays disabled until a customer exists.
	assert.Equal(t, "no customers on file", vm.CanRent().Reason)
	addCustomer(t, vm, "Maciej Sołek")
	assert.True(t, vm.CanRent().Enabled)
	assert.Equal(t, "vehicle is not rented", vm.CanReturn().Reason)
}

func TestRentFlow(t *testing.T) {
	ctx := context.Background()
	vm := newTestVM(t)
	v := addVehicle(t, vm, "Toyota", "Yaris")
	addCustomer(t, vm, "Maciej Sołek")
	require.True(t, vm.SelectVehicle(v.ID))

	notified := 0
	sub := vm.Vehicles.Subscribe(func([]models.Vehicle) { notified++ })
	defer vm.Vehicles.Unsubscribe(sub)

	draft, err := vm.BeginRent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Maciej Sołek", draft.CustomerName)
	assert.Equal(t, "123761123", draft.CustomerPhone)

	require.NoError(t, vm.Rent(ctx, draft))
	assert.Equal(t, 1, notified, "vehicles collection should refresh once")

	// Selection tracks the refreshed row.
	sel := vm.SelectedVehicle()
	require.NotNil(t, sel)
	assert.False(t, sel.Available)

	assert.False(t, vm.CanRent().Enabled)
	assert.Equal(t, "vehicle is already rented", vm.CanRent().Reason)
	assert.True(t, vm.CanReturn().Enabled)

	rentals := vm.Rentals.Items()
	require.Len(t, rentals, 1)
	assert.True(t, rentals[0].Open())

	// Starting a second rent on the same vehicle is refused up front.
	_, err = vm.BeginRent(ctx)
	assert.Error(t, err)
}

func TestReturnFlow(t *testing.T) {
	ctx := context.Background()
	vm := newTestVM(t)
	v := addVehicle(t, vm, "Honda", "Civic")
	addCustomer(t, vm, "Jan Miodek")
	require.True(t, vm.SelectVehicle(v.ID))

	draft, err := vm.BeginRent(ctx)
	require.NoError(t, err)
	require.NoError(t, vm.Rent(ctx, draft))

	require.NoError(t, vm.Return(ctx))
	sel := vm.SelectedVehicle()
	require.NotNil(t, sel)
	assert.True(t, sel.Available)

	rentals := vm.Rentals.Items()
	require.Len(t, rentals, 1)
	assert.True(t, rentals[0].Returned)
	assert.NotNil(t, rentals[0].ReturnDate)
}

func TestReturnWithoutSelectionIsNoop(t *testing.T) {
	ctx := context.Background()
	vm := newTestVM(t)
	addVehicle(t, vm, "Ford", "Mustang")

	// Guard disabled: the call returns without touching storage.
	require.NoError(t, vm.Return(ctx))
	assert.Equal(t, 0, vm.Rentals.Len())
}

func TestEditCustomerEmptyNameRejected(t *testing.T) {
	ctx := context.Background()
	vm := newTestVM(t)
	c := addCustomer(t, vm, "Joanna Podgórska")
	require.True(t, vm.SelectCustomer(c.ID))

	form, ok := vm.EditCustomerForm()
	require.True(t, ok)
	form.Name = "   "
	assert.ErrorIs(t, vm.EditCustomer(ctx, form), db.ErrNameRequired)

	customers := vm.Customers.Items()
	require.Len(t, customers, 1)
	assert.Equal(t, "Joanna Podgórska", customers[0].Name)
}

func TestDeleteVehicleClearsSelectionAndHistory(t *testing.T) {
	ctx := context.Background()
	vm := newTestVM(t)
	v := addVehicle(t, vm, "Tesla", "Model 3")
	addCustomer(t, vm, "Jacek Kowalski")
	require.True(t, vm.SelectVehicle(v.ID))

	draft, err := vm.BeginRent(ctx)
	require.NoError(t, err)
	require.NoError(t, vm.Rent(ctx, draft))

	require.NoError(t, vm.DeleteVehicle(ctx))
	assert.Nil(t, vm.SelectedVehicle())
	assert.Equal(t, 0, vm.Vehicles.Len())
	assert.Equal(t, 0, vm.Rentals.Len())
}

func TestCollectionSubscriptionLifecycle(t *testing.T) {
	ctx := context.Background()
	vm := newTestVM(t)

	calls := 0
	sub := vm.Customers.Subscribe(func([]models.Customer) { calls++ })
	addCustomer(t, vm, "Adam")
	assert.Equal(t, 1, calls)

	vm.Customers.Unsubscribe(sub)
	addCustomer(t, vm, "Marek")
	assert.Equal(t, 1, calls, "unsubscribed callback must not fire")

	require.NoError(t, vm.Load(ctx))
	assert.Equal(t, 2, vm.Customers.Len())
}
