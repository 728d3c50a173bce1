package models

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StateAvailable, StateRented) {
		t.Fatalf("expected available -> rented allowed")
	}
	if !CanTransition(StateRented, StateAvailable) {
		t.Fatalf("expected rented -> available allowed")
	}
	if CanTransition(StateAvailable, StateAvailable) {
		t.Fatalf("expected available -> available not allowed")
	}
	if CanTransition(StateRented, StateRented) {
		t.Fatalf("expected rented -> rented not allowed")
	}
}

func TestEnsureTransition(t *testing.T) {
	if err := EnsureTransition(StateAvailable, StateRented); err != nil {
		t.Fatalf("EnsureTransition: %v", err)
	}
	if err := EnsureTransition(StateRented, StateRented); err == nil {
		t.Fatalf("expected repeated rent to fail")
	}

	v := &Vehicle{Available: true}
	if v.State() != StateAvailable {
		t.Fatalf("expected available state, got %s", v.State())
	}
	v.Available = false
	if v.State() != StateRented {
		t.Fatalf("expected rented state, got %s", v.State())
	}
}
