package rating

import "context"

// Repository persists one ledger per calendar day. Day is formatted as
// YYYY-MM-DD.
type Repository interface {
	LoadDay(ctx context.Context, day string) (Ledger, error)
	SaveDay(ctx context.Context, day string, ledger Ledger) error
}
