package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/arifwdtm/starpick/internal/domain/rating"
	"github.com/arifwdtm/starpick/internal/platform/logging"
)

// LedgerService wraps the day-scoped rating repository: every read and
// write goes through it so the ledger on disk stays normalized (deduped,
// sorted) no matter how many times the pipeline restarts.
type LedgerService struct {
	repo   rating.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewLedgerService(repo rating.Repository, logger *logging.Logger) *LedgerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LedgerService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *LedgerService) today() string {
	return s.now().Format(dayLayout)
}

// Load returns today's normalized ledger. A day with no ledger yet yields
// an empty one, not an error.
func (s *LedgerService) Load(ctx context.Context) (rating.Ledger, error) {
	ledger, err := s.repo.LoadDay(ctx, s.today())
	if err != nil {
		return rating.Ledger{}, fmt.Errorf("load ledger day=%s: %w", s.today(), err)
	}
	ledger.Normalize()
	return ledger, nil
}

// MergeAndSave folds the given records into today's ledger and persists
// it. Re-merging a record already present is a no-op, which is what makes
// interrupted runs safe to restart.
func (s *LedgerService) MergeAndSave(ctx context.Context, records ...rating.RatedFixture) error {
	day := s.today()
	ledger, err := s.repo.LoadDay(ctx, day)
	if err != nil {
		return fmt.Errorf("load ledger day=%s: %w", day, err)
	}
	for _, record := range records {
		ledger.Add(record)
	}
	ledger.Normalize()
	if err := s.repo.SaveDay(ctx, day, ledger); err != nil {
		return fmt.Errorf("save ledger day=%s: %w", day, err)
	}
	return nil
}

// ProcessedIDs returns the fixture ids already present in today's ledger,
// across all four tiers.
func (s *LedgerService) ProcessedIDs(ctx context.Context) (map[int64]struct{}, error) {
	ledger, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.FixtureIDs(), nil
}
