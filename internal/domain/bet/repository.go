package bet

import "context"

// Repository is the flat, append-only wager collection.
type Repository interface {
	List(ctx context.Context) ([]Bet, error)
	Append(ctx context.Context, bets []Bet) error
	ReplaceAll(ctx context.Context, bets []Bet) error
}
