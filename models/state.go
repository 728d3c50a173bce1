package models

import "fmt"

// VehicleState is the two-state rental lifecycle of a vehicle.
type VehicleState string

const (
	StateAvailable VehicleState = "available"
	StateRented    VehicleState = "rented"
)

// AllowTransition holds the permitted state flows. Rent and Return are the
// only operations that move a vehicle between states.
var AllowTransition = map[VehicleState][]VehicleState{
	StateAvailable: {StateRented},
	StateRented:    {StateAvailable},
}

// State derives the rental state from the availability flag.
func (v *Vehicle) State() VehicleState {
	if v.Available {
		return StateAvailable
	}
	return StateRented
}

// CanTransition reports whether from -> to is a permitted flow.
func CanTransition(from, to VehicleState) bool {
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EnsureTransition returns a descriptive error for a forbidden flow. Both
// the view model commands and the repo transactions call this, so a rent
// of a rented vehicle is refused even if the UI guard was bypassed.
func EnsureTransition(from, to VehicleState) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid vehicle state transition: %s -> %s", from, to)
	}
	return nil
}
