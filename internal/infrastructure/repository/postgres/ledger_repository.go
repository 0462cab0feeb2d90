// Package postgres backs the ledger and bet book with a relational store
// for installs that outgrow flat files.
package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/arifwdtm/starpick/internal/domain/rating"
)

type ratedFixtureRow struct {
	Day       string `db:"day"`
	Tier      string `db:"tier"`
	RecordKey string `db:"record_key"`
	Record    []byte `db:"record"`
}

// LedgerRepository stores each rated fixture as one row keyed by its
// serialized form, so a day reloads into exactly the ledger that was
// saved regardless of insert order.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) LoadDay(ctx context.Context, day string) (rating.Ledger, error) {
	var rows []ratedFixtureRow
	query := `SELECT day, tier, record_key, record FROM rated_fixtures WHERE day = $1 ORDER BY record_key`
	if err := r.db.SelectContext(ctx, &rows, query, day); err != nil {
		return rating.Ledger{}, fmt.Errorf("select rated fixtures day=%s: %w", day, err)
	}

	var ledger rating.Ledger
	for _, row := range rows {
		var record rating.RatedFixture
		if err := sonic.Unmarshal(row.Record, &record); err != nil {
			return rating.Ledger{}, fmt.Errorf("decode rated fixture key=%s: %w", row.RecordKey, err)
		}
		ledger.Add(record)
	}
	return ledger, nil
}

// SaveDay replaces the day's rows in one transaction. Writing the whole
// normalized ledger keeps the store idempotent under re-merges.
func (r *LedgerRepository) SaveDay(ctx context.Context, day string, ledger rating.Ledger) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rated_fixtures WHERE day = $1`, day); err != nil {
		return fmt.Errorf("clear rated fixtures day=%s: %w", day, err)
	}

	insert := `INSERT INTO rated_fixtures (day, tier, record_key, record)
		VALUES (:day, :tier, :record_key, :record)`
	for _, tier := range rating.Tiers {
		for _, record := range ledger.ForTier(tier) {
			raw, err := sonic.Marshal(record)
			if err != nil {
				return fmt.Errorf("encode rated fixture id=%d: %w", record.Fixture.ID, err)
			}
			row := ratedFixtureRow{
				Day:       day,
				Tier:      string(tier),
				RecordKey: string(raw),
				Record:    raw,
			}
			if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
				return fmt.Errorf("insert rated fixture id=%d: %w", record.Fixture.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger tx: %w", err)
	}
	return nil
}
