package quotaModel

import "context"

// Reservation is the outcome of one attempt to spend a question.
type Reservation struct {
	Allowed   bool
	Used      int
	Remaining int
	Limit     int
}

// QuotaStore tracks how many questions each client has asked.
// Reserve must check and increment as one atomic step.
type QuotaStore interface {
	Reserve(ctx context.Context, clientKey string) (Reservation, error)
	Remaining(ctx context.Context, clientKey string) (int, error)
	Limit() int
}

func NewReservation(allowed bool, used int, limit int) Reservation {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Reservation{Allowed: allowed, Used: used, Remaining: remaining, Limit: limit}
}
