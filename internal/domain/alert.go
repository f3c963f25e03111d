package domain

// AlertActions reports which triage buttons apply to an alert in the given
// status. Transitions are enforced by the backend; this only decides what
// the console offers.
type AlertActions struct {
	CanAcknowledge bool `json:"canAcknowledge"`
	CanResolve     bool `json:"canResolve"`
}

func ActionsFor(status AlertStatus) AlertActions {
	switch status {
	case AlertActive, AlertEscalated:
		return AlertActions{CanAcknowledge: true, CanResolve: true}
	case AlertAcknowledged:
		return AlertActions{CanResolve: true}
	default:
		return AlertActions{}
	}
}

// IsOpen is true for alerts that still need attention.
func (a Alert) IsOpen() bool {
	switch a.Status {
	case AlertActive, AlertAcknowledged, AlertEscalated:
		return true
	}
	return false
}
