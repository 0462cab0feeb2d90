// Package file persists ledgers and bets as JSON documents on disk, the
// default backend for a single-operator install.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"

	"github.com/arifwdtm/starpick/internal/domain/rating"
)

const ledgerFilePattern = "rated_fixtures_%s.json"

// LedgerRepository stores one ledger document per calendar day under
// <dir>/ratings/.
type LedgerRepository struct {
	dir string
}

func NewLedgerRepository(dataDir string) *LedgerRepository {
	return &LedgerRepository{dir: filepath.Join(dataDir, "ratings")}
}

// LoadDay reads the day's ledger. A missing file is an empty ledger, not
// an error: the first run of the day starts from nothing.
func (r *LedgerRepository) LoadDay(_ context.Context, day string) (rating.Ledger, error) {
	raw, err := os.ReadFile(r.path(day))
	if os.IsNotExist(err) {
		return rating.Ledger{}, nil
	}
	if err != nil {
		return rating.Ledger{}, fmt.Errorf("read ledger file: %w", err)
	}

	var ledger rating.Ledger
	if err := sonic.Unmarshal(raw, &ledger); err != nil {
		return rating.Ledger{}, fmt.Errorf("decode ledger day=%s: %w", day, err)
	}
	return ledger, nil
}

func (r *LedgerRepository) SaveDay(_ context.Context, day string, ledger rating.Ledger) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	raw, err := sonic.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger day=%s: %w", day, err)
	}
	if err := os.WriteFile(r.path(day), raw, 0o644); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}
	return nil
}

func (r *LedgerRepository) path(day string) string {
	return filepath.Join(r.dir, fmt.Sprintf(ledgerFilePattern, day))
}
