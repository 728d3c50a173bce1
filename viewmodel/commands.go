package viewmodel

// Availability tells the front end whether an action may be invoked, and
// why not when it may not. The front end disables the control; the action
// itself re-checks before touching storage.
type Availability struct {
	Enabled bool
	Reason  string
}

func Enabled() Availability { return Availability{Enabled: true} }

func Disabled(reason string) Availability { return Availability{Reason: reason} }
