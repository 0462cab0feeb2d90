package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arifwdtm/starpick/internal/domain/bet"
)

type betRow struct {
	ID           int64     `db:"id"`
	FixtureID    int64     `db:"fixture_id"`
	LeagueName   string    `db:"league_name"`
	HomeTeam     string    `db:"home_team"`
	AwayTeam     string    `db:"away_team"`
	PickedWinner string    `db:"picked_winner"`
	Stake        float64   `db:"stake"`
	PlacedAt     time.Time `db:"placed_at"`
	Settled      bool      `db:"settled"`
	Won          *bool     `db:"won"`
	FinalHome    *int      `db:"final_home"`
	FinalAway    *int      `db:"final_away"`
}

type BetsRepository struct {
	db *sqlx.DB
}

func NewBetsRepository(db *sqlx.DB) *BetsRepository {
	return &BetsRepository{db: db}
}

func (r *BetsRepository) List(ctx context.Context) ([]bet.Bet, error) {
	var rows []betRow
	query := `SELECT id, fixture_id, league_name, home_team, away_team, picked_winner,
		stake, placed_at, settled, won, final_home, final_away
		FROM bets ORDER BY id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select bets: %w", err)
	}

	out := make([]bet.Bet, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapBetRow(row))
	}
	return out, nil
}

func (r *BetsRepository) Append(ctx context.Context, bets []bet.Bet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bets tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertBets(ctx, tx, bets); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bets tx: %w", err)
	}
	return nil
}

func (r *BetsRepository) ReplaceAll(ctx context.Context, bets []bet.Bet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bets tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bets`); err != nil {
		return fmt.Errorf("clear bets: %w", err)
	}
	if err := insertBets(ctx, tx, bets); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bets tx: %w", err)
	}
	return nil
}

func insertBets(ctx context.Context, tx *sqlx.Tx, bets []bet.Bet) error {
	insert := `INSERT INTO bets (fixture_id, league_name, home_team, away_team, picked_winner,
		stake, placed_at, settled, won, final_home, final_away)
		VALUES (:fixture_id, :league_name, :home_team, :away_team, :picked_winner,
		:stake, :placed_at, :settled, :won, :final_home, :final_away)`
	for _, item := range bets {
		row := betRow{
			FixtureID:    item.FixtureID,
			LeagueName:   item.LeagueName,
			HomeTeam:     item.HomeTeam,
			AwayTeam:     item.AwayTeam,
			PickedWinner: item.PickedWinner,
			Stake:        item.Stake,
			PlacedAt:     item.PlacedAt,
			Settled:      item.Settled,
			Won:          item.Won,
			FinalHome:    item.FinalHome,
			FinalAway:    item.FinalAway,
		}
		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("insert bet fixture=%d: %w", item.FixtureID, err)
		}
	}
	return nil
}

func mapBetRow(row betRow) bet.Bet {
	return bet.Bet{
		FixtureID:    row.FixtureID,
		LeagueName:   row.LeagueName,
		HomeTeam:     row.HomeTeam,
		AwayTeam:     row.AwayTeam,
		PickedWinner: row.PickedWinner,
		Stake:        row.Stake,
		PlacedAt:     row.PlacedAt,
		Settled:      row.Settled,
		Won:          row.Won,
		FinalHome:    row.FinalHome,
		FinalAway:    row.FinalAway,
	}
}
