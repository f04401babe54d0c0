package booking

// Phase is the lifecycle position of a booking session. In-flight phases
// double as the re-entrancy guard while a call to the reservation API runs.
type Phase string

const (
	PhaseSelecting  Phase = "SELECTING"
	PhaseRefreshing Phase = "REFRESHING"
	PhaseSubmitting Phase = "SUBMITTING"
	PhaseReserved   Phase = "RESERVED"
	PhasePaying     Phase = "PAYING"
	PhaseCancelling Phase = "CANCELLING"
	PhasePaid       Phase = "PAID"
	PhaseCancelled  Phase = "CANCELLED"
)

func (p Phase) String() string {
	return string(p)
}

// IsInFlight reports whether a network call owns the session
func (p Phase) IsInFlight() bool {
	switch p {
	case PhaseRefreshing, PhaseSubmitting, PhasePaying, PhaseCancelling:
		return true
	}
	return false
}

// IsTerminal reports whether the session has ended
func (p Phase) IsTerminal() bool {
	return p == PhasePaid || p == PhaseCancelled
}

// Stable maps an in-flight phase to the phase it rolls back to on failure
func (p Phase) Stable() Phase {
	switch p {
	case PhaseRefreshing, PhaseSubmitting:
		return PhaseSelecting
	case PhasePaying, PhaseCancelling:
		return PhaseReserved
	}
	return p
}

// IsValid checks if the phase is a known one
func (p Phase) IsValid() bool {
	switch p {
	case PhaseSelecting, PhaseRefreshing, PhaseSubmitting, PhaseReserved,
		PhasePaying, PhaseCancelling, PhasePaid, PhaseCancelled:
		return true
	}
	return false
}
