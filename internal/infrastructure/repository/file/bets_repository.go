package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"

	"github.com/arifwdtm/starpick/internal/domain/bet"
)

const betsFileName = "bets.json"

// BetsRepository keeps the whole bet book in one JSON document.
type BetsRepository struct {
	dir string
}

func NewBetsRepository(dataDir string) *BetsRepository {
	return &BetsRepository{dir: dataDir}
}

func (r *BetsRepository) List(_ context.Context) ([]bet.Bet, error) {
	raw, err := os.ReadFile(r.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bets file: %w", err)
	}

	var bets []bet.Bet
	if err := sonic.Unmarshal(raw, &bets); err != nil {
		return nil, fmt.Errorf("decode bets file: %w", err)
	}
	return bets, nil
}

func (r *BetsRepository) Append(ctx context.Context, bets []bet.Bet) error {
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.ReplaceAll(ctx, append(existing, bets...))
}

func (r *BetsRepository) ReplaceAll(_ context.Context, bets []bet.Bet) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create bets dir: %w", err)
	}

	if bets == nil {
		bets = []bet.Bet{}
	}
	raw, err := sonic.MarshalIndent(bets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bets: %w", err)
	}
	if err := os.WriteFile(r.path(), raw, 0o644); err != nil {
		return fmt.Errorf("write bets file: %w", err)
	}
	return nil
}

func (r *BetsRepository) path() string {
	return filepath.Join(r.dir, betsFileName)
}
