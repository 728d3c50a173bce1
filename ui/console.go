package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"car_rental_manager/models"
	"car_rental_manager/viewmodel"

	"github.com/shopspring/decimal"
)

// Console is the terminal front end standing in for the windowing toolkit.
// It only renders collections and forwards user actions; every rule lives
// in the view model and the gateway behind it.
type Console struct {
	vm  *viewmodel.MainViewModel
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(vm *viewmodel.MainViewModel, in io.Reader, out io.Writer) *Console {
	return &Console{vm: vm, in: bufio.NewScanner(in), out: out}
}

func (c *Console) Run(ctx context.Context) error {
	if err := c.vm.Load(ctx); err != nil {
		return err
	}

	// Change notifications arrive through explicit subscriptions.
	vehSub := c.vm.Vehicles.Subscribe(func(vs []models.Vehicle) {
		fmt.Fprintf(c.out, "-- vehicles refreshed (%d)\n", len(vs))
	})
	defer c.vm.Vehicles.Unsubscribe(vehSub)
	renSub := c.vm.Rentals.Subscribe(func(rs []models.RentalRecord) {
		fmt.Fprintf(c.out, "-- rentals refreshed (%d)\n", len(rs))
	})
	defer c.vm.Rentals.Unsubscribe(renSub)

	c.printHelp()
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			c.printHelp()
		case "vehicles":
			c.printVehicles()
		case "rentals":
			c.printRentals()
		case "customers":
			c.printCustomers()
		case "select":
			c.handleSelect(fields[1:])
		case "add-vehicle":
			c.handleAddVehicle(ctx)
		case "edit-vehicle":
			c.handleEditVehicle(ctx)
		case "delete-vehicle":
			c.invoke(c.vm.CanDeleteVehicle(), func() error { return c.vm.DeleteVehicle(ctx) })
		case "rent":
			c.handleRent(ctx)
		case "return":
			c.invoke(c.vm.CanReturn(), func() error { return c.vm.Return(ctx) })
		case "add-customer":
			c.handleAddCustomer(ctx)
		case "edit-customer":
			c.handleEditCustomer(ctx)
		case "delete-customer":
			c.invoke(c.vm.CanDeleteCustomer(), func() error { return c.vm.DeleteCustomer(ctx) })
		default:
			fmt.Fprintf(c.out, "unknown command %q, try help\n", fields[0])
		}
	}
}

func (c *Console) invoke(ok viewmodel.Availability, action func() error) {
	if !ok.Enabled {
		fmt.Fprintf(c.out, "action disabled: %s\n", ok.Reason)
		return
	}
	if err := action(); err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
}

func (c *Console) handleSelect(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "usage: select vehicle|customer <id>")
		return
	}
	id, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(c.out, "bad id %q\n", args[1])
		return
	}
	switch args[0] {
	case "vehicle":
		if !c.vm.SelectVehicle(uint(id)) {
			fmt.Fprintf(c.out, "no vehicle %d\n", id)
		}
	case "customer":
		if !c.vm.SelectCustomer(uint(id)) {
			fmt.Fprintf(c.out, "no customer %d\n", id)
		}
	default:
		fmt.Fprintln(c.out, "usage: select vehicle|customer <id>")
	}
}

func (c *Console) handleAddVehicle(ctx context.Context) {
	form := c.vehicleForm(viewmodel.DefaultVehicleForm())
	c.invoke(c.vm.CanAddVehicle(), func() error {
		_, err := c.vm.AddVehicle(ctx, form)
		return err
	})
}

func (c *Console) handleEditVehicle(ctx context.Context) {
	form, selected := c.vm.EditVehicleForm()
	if !selected {
		fmt.Fprintln(c.out, "action disabled: no vehicle selected")
		return
	}
	form = c.vehicleForm(form)
	c.invoke(c.vm.CanEditVehicle(), func() error { return c.vm.EditVehicle(ctx, form) })
}

// vehicleForm walks the vehicle dialog fields, keeping the default when
// the user enters nothing.
func (c *Console) vehicleForm(form viewmodel.VehicleForm) viewmodel.VehicleForm {
	form.Brand = c.prompt("brand", form.Brand)
	form.Model = c.prompt("model", form.Model)
	if y, err := strconv.Atoi(c.prompt("year", strconv.Itoa(form.Year))); err == nil {
		form.Year = y
	}
	if rate, err := decimal.NewFromString(c.prompt("daily rate", form.DailyRate.StringFixed(2))); err == nil {
		form.DailyRate = rate
	}
	return form
}

func (c *Console) handleRent(ctx context.Context) {
	draft, err := c.vm.BeginRent(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "action disabled: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "renting %s\n", draft.VehicleInfo())
	for i, cust := range draft.Customers {
		fmt.Fprintf(c.out, "  [%d] %s (%s)\n", i+1, cust.Name, cust.Phone)
	}
	if n, err := strconv.Atoi(c.prompt("customer #", "1")); err == nil && n >= 1 && n <= len(draft.Customers) {
		draft.UseCustomer(draft.Customers[n-1])
	}
	draft.CustomerName = c.prompt("name", draft.CustomerName)
	draft.CustomerPhone = c.prompt("phone", draft.CustomerPhone)
	draft.CustomerEmail = c.prompt("email", draft.CustomerEmail)
	if c.prompt("confirm rental? (y/n)", "y") != "y" {
		fmt.Fprintln(c.out, "cancelled")
		return
	}
	if err := c.vm.Rent(ctx, draft); err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
}

func (c *Console) handleAddCustomer(ctx context.Context) {
	form := c.customerForm(viewmodel.CustomerForm{})
	c.invoke(c.vm.CanAddCustomer(), func() error {
		_, err := c.vm.AddCustomer(ctx, form)
		return err
	})
}

func (c *Console) handleEditCustomer(ctx context.Context) {
	form, selected := c.vm.EditCustomerForm()
	if !selected {
		fmt.Fprintln(c.out, "action disabled: no customer selected")
		return
	}
	form = c.customerForm(form)
	c.invoke(c.vm.CanEditCustomer(), func() error { return c.vm.EditCustomer(ctx, form) })
}

func (c *Console) customerForm(form viewmodel.CustomerForm) viewmodel.CustomerForm {
	form.Name = c.prompt("name", form.Name)
	form.Phone = c.prompt("phone", form.Phone)
	form.Email = c.prompt("email", form.Email)
	form.Address = c.prompt("address", form.Address)
	form.Notes = c.prompt("notes", form.Notes)
	return form
}

func (c *Console) prompt(label, def string) string {
	if def != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(c.out, "%s: ", label)
	}
	if !c.in.Scan() {
		return def
	}
	if v := strings.TrimSpace(c.in.Text()); v != "" {
		return v
	}
	return def
}

func (c *Console) printVehicles() {
	fmt.Fprintln(c.out, "  id  brand      model      year  rate/day  status")
	for _, v := range c.vm.Vehicles.Items() {
		status := "Available"
		if !v.Available {
			status = "Rented"
		}
		fmt.Fprintf(c.out, "  %-3d %-10s %-10s %-5d %-9s %s\n",
			v.ID, v.Brand, v.Model, v.Year, v.DailyRate.StringFixed(2), status)
	}
}

func (c *Console) printRentals() {
	now := time.Now()
	fmt.Fprintln(c.out, "  id  vehicle              customer           from        until       days  cost")
	for _, r := range c.vm.Rentals.Items() {
		until := "open"
		if r.ReturnDate != nil {
			until = r.ReturnDate.Format("2006-01-02")
		}
		fmt.Fprintf(c.out, "  %-3d %-20s %-18s %s  %-10s  %-5d %s\n",
			r.ID, r.Vehicle.Label(), r.CustomerName,
			r.RentalDate.Format("2006-01-02"), until, r.Days(now), r.Cost(now).StringFixed(2))
	}
}

func (c *Console) printCustomers() {
	fmt.Fprintln(c.out, "  id  name                 phone       email")
	for _, cust := range c.vm.Customers.Items() {
		fmt.Fprintf(c.out, "  %-3d %-20s %-11s %s\n", cust.ID, cust.Name, cust.Phone, cust.Email)
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `commands:
  vehicles | rentals | customers        list a tab
  select vehicle <id> | customer <id>   set the selection
  add-vehicle | edit-vehicle | delete-vehicle
  rent | return                         rent/return the selected vehicle
  add-customer | edit-customer | delete-customer
  help | quit`)
}
