package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/arifwdtm/starpick/internal/domain/bet"
	"github.com/arifwdtm/starpick/internal/domain/fixture"
	"github.com/arifwdtm/starpick/internal/platform/logging"
)

// SettlementReport summarizes the bet book after a settle pass.
type SettlementReport struct {
	Settled     int
	Won         int
	Pending     int
	SuccessRate float64
}

// BetService is the operator surface over the bet book: place a bet on a
// rated fixture and settle the book against final scores.
type BetService struct {
	bets        bet.Repository
	ledger      *LedgerService
	acquisition *AcquisitionService
	logger      *logging.Logger
	now         func() time.Time
}

func NewBetService(bets bet.Repository, ledger *LedgerService, acquisition *AcquisitionService, logger *logging.Logger) *BetService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BetService{
		bets:        bets,
		ledger:      ledger,
		acquisition: acquisition,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *BetService) List(ctx context.Context) ([]bet.Bet, error) {
	return s.bets.List(ctx)
}

// Place records a bet on a fixture from today's ledger. The pick is the
// model's points winner; a fixture the model calls a draw is not bettable.
func (s *BetService) Place(ctx context.Context, fixtureID int64, stake float64) (bet.Bet, error) {
	if fixtureID <= 0 {
		return bet.Bet{}, fmt.Errorf("%w: fixture id must be positive", ErrInvalidInput)
	}
	if stake <= 0 {
		return bet.Bet{}, fmt.Errorf("%w: stake must be positive", ErrInvalidInput)
	}

	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return bet.Bet{}, err
	}
	record, ok := ledger.FindByFixtureID(fixtureID)
	if !ok {
		return bet.Bet{}, fmt.Errorf("%w: fixture %d not in today's ledger", ErrNotFound, fixtureID)
	}

	pick := record.Score.PointsWinner
	if pick == "" || pick == "Draw" {
		return bet.Bet{}, fmt.Errorf("%w: fixture %d has no favored side", ErrInvalidInput, fixtureID)
	}

	placed := bet.Bet{
		FixtureID:    fixtureID,
		LeagueName:   record.LeagueName,
		HomeTeam:     record.Fixture.HomeTeam,
		AwayTeam:     record.Fixture.AwayTeam,
		PickedWinner: pick,
		Stake:        stake,
		PlacedAt:     s.now(),
	}
	if err := s.bets.Append(ctx, []bet.Bet{placed}); err != nil {
		return bet.Bet{}, fmt.Errorf("append bet fixture=%d: %w", fixtureID, err)
	}

	s.logger.InfoContext(ctx, "bet placed", "fixture_id", fixtureID, "pick", pick, "stake", stake)
	return placed, nil
}

// Settle resolves every open bet whose fixture has finished, leaving the
// rest pending, and reports the success rate of the settled book.
func (s *BetService) Settle(ctx context.Context) (SettlementReport, error) {
	items, err := s.bets.List(ctx)
	if err != nil {
		return SettlementReport{}, err
	}

	report := SettlementReport{}
	changed := false
	for i := range items {
		if items[i].Settled {
			s.tally(&report, items[i])
			continue
		}

		final, err := s.acquisition.FinalResult(ctx, items[i].FixtureID)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			s.logger.WarnContext(ctx, "result unavailable, bet stays open", "fixture_id", items[i].FixtureID, "error", err)
			report.Pending++
			continue
		}
		if fixture.IsAbandonedStatus(final.Status) {
			s.logger.WarnContext(ctx, "fixture called off, bet stays open", "fixture_id", items[i].FixtureID, "status", final.Status)
			report.Pending++
			continue
		}
		if !fixture.IsFinishedStatus(final.Status) || final.HomeScore == nil || final.AwayScore == nil {
			report.Pending++
			continue
		}

		won := actualWinner(final) == items[i].PickedWinner
		items[i].Settled = true
		items[i].Won = &won
		items[i].FinalHome = final.HomeScore
		items[i].FinalAway = final.AwayScore
		changed = true
		s.tally(&report, items[i])

		s.logger.InfoContext(ctx, "bet settled",
			"fixture_id", items[i].FixtureID,
			"pick", items[i].PickedWinner,
			"won", won,
			"score", fmt.Sprintf("%d-%d", *final.HomeScore, *final.AwayScore),
		)
	}

	if changed {
		if err := s.bets.ReplaceAll(ctx, items); err != nil {
			return report, fmt.Errorf("save settled bets: %w", err)
		}
	}
	if report.Settled > 0 {
		report.SuccessRate = float64(report.Won) / float64(report.Settled)
	}
	return report, nil
}

func (s *BetService) tally(report *SettlementReport, item bet.Bet) {
	report.Settled++
	if item.Won != nil && *item.Won {
		report.Won++
	}
}

func actualWinner(fx fixture.Fixture) string {
	switch {
	case *fx.HomeScore > *fx.AwayScore:
		return fx.HomeTeam
	case *fx.AwayScore > *fx.HomeScore:
		return fx.AwayTeam
	default:
		return "Draw"
	}
}
