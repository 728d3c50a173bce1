package viewmodel

import (
	"context"
	"errors"
	"sync"

	"car_rental_manager/db"
	"car_rental_manager/logger"
	"car_rental_manager/models"
)

// MainViewModel is the presentation adapter over the three entity
// collections. Mutations are serialized by mu: one user action completes
// against the store before the next one is issued, and every mutation ends
// with a full reload of the collections it touched.
type MainViewModel struct {
	repo *db.Repo
	log  logger.Logger

	mu sync.Mutex

	Vehicles  *Collection[models.Vehicle]
	Rentals   *Collection[models.RentalRecord]
	Customers *Collection[models.Customer]

	selectedVehicle  *models.Vehicle
	selectedCustomer *models.Customer
}

func NewMainViewModel(repo *db.Repo, log logger.Logger) *MainViewModel {
	return &MainViewModel{
		repo:      repo,
		log:       log.WithField("component", "viewmodel"),
		Vehicles:  NewCollection[models.Vehicle](),
		Rentals:   NewCollection[models.RentalRecord](),
		Customers: NewCollection[models.Customer](),
	}
}

// Load performs the initial full load of all three collections.
func (vm *MainViewModel) Load(ctx context.Context) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.reloadVehicles(ctx); err != nil {
		return err
	}
	if err := vm.reloadRentals(ctx); err != nil {
		return err
	}
	return vm.reloadCustomers(ctx)
}

// Selection

func (vm *MainViewModel) SelectVehicle(id uint) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, v := range vm.Vehicles.Items() {
		if v.ID == id {
			c := v
			vm.selectedVehicle = &c
			return true
		}
	}
	vm.selectedVehicle = nil
	return false
}

func (vm *MainViewModel) SelectedVehicle() *models.Vehicle {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.selectedVehicle == nil {
		return nil
	}
	c := *vm.selectedVehicle
	return &c
}

func (vm *MainViewModel) SelectCustomer(id uint) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, c := range vm.Customers.Items() {
		if c.ID == id {
			cp := c
			vm.selectedCustomer = &cp
			return true
		}
	}
	vm.selectedCustomer = nil
	return false
}

func (vm *MainViewModel) SelectedCustomer() *models.Customer {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.selectedCustomer == nil {
		return nil
	}
	c := *vm.selectedCustomer
	return &c
}

// Command availability

func (vm *MainViewModel) CanAddVehicle() Availability { return Enabled() }

func (vm *MainViewModel) CanEditVehicle() Availability {
	if vm.SelectedVehicle() == nil {
		return Disabled("no vehicle selected")
	}
	return Enabled()
}

func (vm *MainViewModel) CanDeleteVehicle() Availability { return vm.CanEditVehicle() }

func (vm *MainViewModel) CanRent() Availability {
	v := vm.SelectedVehicle()
	switch {
	case v == nil:
		return Disabled("no vehicle selected")
	case !models.CanTransition(v.State(), models.StateRented):
		return Disabled("vehicle is already rented")
	case vm.Customers.Len() == 0:
		return Disabled("no customers on file")
	}
	return Enabled()
}

func (vm *MainViewModel) CanReturn() Availability {
	v := vm.SelectedVehicle()
	switch {
	case v == nil:
		return Disabled("no vehicle selected")
	case !models.CanTransition(v.State(), models.StateAvailable):
		return Disabled("vehicle is not rented")
	}
	return Enabled()
}

func (vm *MainViewModel) CanAddCustomer() Availability { return Enabled() }

func (vm *MainViewModel) CanEditCustomer() Availability {
	if vm.SelectedCustomer() == nil {
		return Disabled("no customer selected")
	}
	return Enabled()
}

func (vm *MainViewModel) CanDeleteCustomer() Availability { return vm.CanEditCustomer() }

// Vehicle actions

func (vm *MainViewModel) AddVehicle(ctx context.Context, form VehicleForm) (*models.Vehicle, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	v := form.toModel()
	v.ID = 0
	if err := vm.repo.CreateVehicle(ctx, &v); err != nil {
		return nil, err
	}
	vm.log.Infof("vehicle %d added: %s", v.ID, v.Label())
	return &v, vm.reloadVehicles(ctx)
}

// EditVehicleForm hands the dialog its starting values for the selection.
func (vm *MainViewModel) EditVehicleForm() (VehicleForm, bool) {
	v := vm.SelectedVehicle()
	if v == nil {
		return VehicleForm{}, false
	}
	return vehicleFormOf(*v), true
}

func (vm *MainViewModel) EditVehicle(ctx context.Context, form VehicleForm) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	v := form.toModel()
	if err := vm.repo.SaveVehicle(ctx, &v); err != nil {
		return err
	}
	return vm.reloadVehicles(ctx)
}

func (vm *MainViewModel) DeleteVehicle(ctx context.Context) error {
	if ok := vm.CanDeleteVehicle(); !ok.Enabled {
		return nil
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	id := vm.selectedVehicle.ID
	if err := vm.repo.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	vm.log.Infof("vehicle %d deleted", id)
	vm.selectedVehicle = nil
	if err := vm.reloadVehicles(ctx); err != nil {
		return err
	}
	return vm.reloadRentals(ctx)
}

// Rental actions

// BeginRent prepares the rent dialog draft for the selected vehicle. It
// fails when the rent command is disabled, so a stale front end cannot
// start renting an unavailable vehicle.
func (vm *MainViewModel) BeginRent(ctx context.Context) (*RentalDraft, error) {
	if ok := vm.CanRent(); !ok.Enabled {
		return nil, errors.New(ok.Reason)
	}
	customers, err := vm.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, errors.New("no customers on file")
	}
	return NewRentalDraft(*vm.SelectedVehicle(), customers), nil
}

// Rent confirms the draft: the record write and the availability flip run
// as one transaction in the gateway.
func (vm *MainViewModel) Rent(ctx context.Context, draft *RentalDraft) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	rec := draft.toRecord()
	if err := vm.repo.RentVehicle(ctx, &rec); err != nil {
		return err
	}
	vm.log.Infof("vehicle %d rented to %s", rec.VehicleID, rec.CustomerName)
	return vm.refreshAfterRentalChange(ctx)
}

func (vm *MainViewModel) Return(ctx context.Context) error {
	if ok := vm.CanReturn(); !ok.Enabled {
		return nil
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	id := vm.selectedVehicle.ID
	rec, err := vm.repo.ReturnVehicle(ctx, id)
	if errors.Is(err, db.ErrNoOpenRental) {
		// The availability flag said rented yet no open record existed.
		// The gateway already repaired the flag; surface the breach.
		vm.log.Warnf("vehicle %d had no open rental, availability repaired", id)
		return vm.refreshAfterRentalChange(ctx)
	}
	if err != nil {
		return err
	}
	vm.log.Infof("vehicle %d returned, record %d closed", id, rec.ID)
	return vm.refreshAfterRentalChange(ctx)
}

// Customer actions

func (vm *MainViewModel) AddCustomer(ctx context.Context, form CustomerForm) (*models.Customer, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c := form.toModel()
	c.ID = 0
	if err := vm.repo.CreateCustomer(ctx, &c); err != nil {
		return nil, err
	}
	return &c, vm.reloadCustomers(ctx)
}

func (vm *MainViewModel) EditCustomerForm() (CustomerForm, bool) {
	c := vm.SelectedCustomer()
	if c == nil {
		return CustomerForm{}, false
	}
	return customerFormOf(*c), true
}

func (vm *MainViewModel) EditCustomer(ctx context.Context, form CustomerForm) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	c := form.toModel()
	if err := vm.repo.SaveCustomer(ctx, &c); err != nil {
		return err
	}
	return vm.reloadCustomers(ctx)
}

func (vm *MainViewModel) DeleteCustomer(ctx context.Context) error {
	if ok := vm.CanDeleteCustomer(); !ok.Enabled {
		return nil
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	id := vm.selectedCustomer.ID
	if err := vm.repo.DeleteCustomer(ctx, id); err != nil {
		return err
	}
	vm.selectedCustomer = nil
	return vm.reloadCustomers(ctx)
}

// Reloads. Callers hold mu.

func (vm *MainViewModel) reloadVehicles(ctx context.Context) error {
	vehicles, err := vm.repo.ListVehicles(ctx)
	if err != nil {
		return err
	}
	vm.Vehicles.Replace(vehicles)
	if vm.selectedVehicle != nil {
		vm.resyncVehicleSelection(vehicles)
	}
	return nil
}

func (vm *MainViewModel) reloadRentals(ctx context.Context) error {
	rentals, err := vm.repo.ListRentals(ctx, db.RentalQuery{})
	if err != nil {
		return err
	}
	vm.Rentals.Replace(rentals)
	return nil
}

func (vm *MainViewModel) reloadCustomers(ctx context.Context) error {
	customers, err := vm.repo.ListCustomers(ctx)
	if err != nil {
		return err
	}
	vm.Customers.Replace(customers)
	if vm.selectedCustomer != nil {
		vm.resyncCustomerSelection(customers)
	}
	return nil
}

func (vm *MainViewModel) refreshAfterRentalChange(ctx context.Context) error {
	if err := vm.reloadVehicles(ctx); err != nil {
		return err
	}
	return vm.reloadRentals(ctx)
}

func (vm *MainViewModel) resyncVehicleSelection(vehicles []models.Vehicle) {
	for _, v := range vehicles {
		if v.ID == vm.selectedVehicle.ID {
			c := v
			vm.selectedVehicle = &c
			return
		}
	}
	vm.selectedVehicle = nil
}

func (vm *MainViewModel) resyncCustomerSelection(customers []models.Customer) {
	for _, c := range customers {
		if c.ID == vm.selectedCustomer.ID {
			cp := c
			vm.selectedCustomer = &cp
			return
		}
	}
	vm.selectedCustomer = nil
}
