package constant

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCommitted ReservationStatus = "committed"
	ReservationStatusReleased  ReservationStatus = "released"
	ReservationStatusExpired   ReservationStatus = "expired"
	// ReservationStatusReleasing is a transient claim state set by the reaper
	// so two workers never release the same reservation.
	ReservationStatusReleasing ReservationStatus = "releasing"
)

// IsTerminal reports whether a reservation can no longer change state.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCommitted || s == ReservationStatusReleased || s == ReservationStatusExpired
}

type IdempotencyStatus string

const (
	IdempotencyStatusPending   IdempotencyStatus = "pending"
	IdempotencyStatusCompleted IdempotencyStatus = "completed"
	IdempotencyStatusFailed    IdempotencyStatus = "failed"
)
