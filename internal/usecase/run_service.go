package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/arifwdtm/starpick/internal/domain/fixture"
	"github.com/arifwdtm/starpick/internal/domain/rating"
	"github.com/arifwdtm/starpick/internal/domain/roster"
	"github.com/arifwdtm/starpick/internal/domain/standing"
	"github.com/arifwdtm/starpick/internal/platform/cache"
	"github.com/arifwdtm/starpick/internal/platform/logging"
)

const keyPlayerWarning = "Warning: Key player injured!"

// RunSummary reports what one pipeline pass did with the day's fixtures.
type RunSummary struct {
	Day              string
	TotalFixtures    int
	Eligible         int
	AlreadyProcessed int
	Rated            int
	SkippedLeagues   int
	FailedLeagues    int
	Ledger           rating.Ledger
}

// RunService drives the daily pass: fetch the fixture list, filter it,
// then classify each remaining fixture and append it to the ledger one at
// a time, so an interrupted run resumes where it stopped.
type RunService struct {
	acquisition     *AcquisitionService
	ledger          *LedgerService
	filter          *EligibilityFilter
	weights         rating.Weights
	minRankGap      int
	keyPlayerRating float64
	logger          *logging.Logger
}

func NewRunService(
	acquisition *AcquisitionService,
	ledger *LedgerService,
	filter *EligibilityFilter,
	weights rating.Weights,
	minRankGap int,
	keyPlayerRating float64,
	logger *logging.Logger,
) *RunService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RunService{
		acquisition:     acquisition,
		ledger:          ledger,
		filter:          filter,
		weights:         weights,
		minRankGap:      minRankGap,
		keyPlayerRating: keyPlayerRating,
		logger:          logger,
	}
}

func (s *RunService) Run(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{Day: s.acquisition.Today()}

	fixtures, err := s.acquisition.FixturesForDay(ctx)
	if err != nil {
		return summary, err
	}
	summary.TotalFixtures = len(fixtures)

	eligible := s.filter.Filter(fixtures)
	summary.Eligible = len(eligible)

	processed, err := s.ledger.ProcessedIDs(ctx)
	if err != nil {
		return summary, err
	}

	// Standings are fetched once per league per run; the store keeps them
	// for the lifetime of the pass.
	standingsCache := cache.NewStore(0)
	failedLeagues := make(map[int64]struct{})

	for _, fx := range eligible {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		if _, done := processed[fx.ID]; done {
			summary.AlreadyProcessed++
			continue
		}
		if _, failed := failedLeagues[fx.League.ID]; failed {
			summary.SkippedLeagues++
			s.logger.InfoContext(ctx, "skipping fixture in failed league", "fixture_id", fx.ID, "league_id", fx.League.ID)
			continue
		}

		record, err := s.classify(ctx, standingsCache, fx)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			failedLeagues[fx.League.ID] = struct{}{}
			summary.FailedLeagues++
			s.logger.WarnContext(ctx, "league marked failed for this run",
				"league_id", fx.League.ID,
				"league", fx.League.Name,
				"error", err,
			)
			continue
		}

		// The ledger write must land before the fixture counts as
		// processed; a crash between the two only costs a re-merge.
		if err := s.ledger.MergeAndSave(ctx, record); err != nil {
			return summary, fmt.Errorf("persist rated fixture %d: %w", fx.ID, err)
		}
		processed[fx.ID] = struct{}{}
		summary.Rated++

		s.logger.InfoContext(ctx, "fixture classified",
			"fixture_id", fx.ID,
			"league", fx.League.Name,
			"home", fx.HomeTeam,
			"away", fx.AwayTeam,
			"tier", record.Score.Tier,
			"pick", record.Score.PointsWinner,
		)
	}

	summary.Ledger, err = s.ledger.Load(ctx)
	if err != nil {
		return summary, err
	}
	return summary, nil
}

// classify produces the ledger record for one fixture. Degenerate inputs
// (missing team rows, narrow rank gaps, absent predictions) become no_star
// records; only league-level acquisition failures surface as errors.
func (s *RunService) classify(ctx context.Context, standingsCache *cache.Store, fx fixture.Fixture) (rating.RatedFixture, error) {
	table, err := s.standingsFor(ctx, standingsCache, fx.League.ID)
	if err != nil {
		return rating.RatedFixture{}, err
	}

	home, okHome := table.FindTeam(fx.HomeTeam)
	away, okAway := table.FindTeam(fx.AwayTeam)
	if !okHome || !okAway {
		missing := fx.HomeTeam
		if okHome {
			missing = fx.AwayTeam
		}
		return s.record(fx, rating.NoStarResult("", "team not in standings: "+missing)), nil
	}

	if !RankGapEligible(home, away, s.minRankGap) {
		return s.record(fx, rating.NoStarResult("", rating.CommentRankGap)), nil
	}

	payload, err := s.acquisition.PredictionForFixture(ctx, fx.ID)
	if err != nil {
		if ctx.Err() != nil {
			return rating.RatedFixture{}, ctx.Err()
		}
		s.logger.WarnContext(ctx, "no prediction available", "fixture_id", fx.ID, "error", err)
		return s.record(fx, rating.NoStarResult("", "no prediction available")), nil
	}

	record := s.record(fx, rating.Score(payload, home, away, s.weights))
	record.Warning = s.injuryWarning(ctx, fx)
	return record, nil
}

func (s *RunService) standingsFor(ctx context.Context, store *cache.Store, leagueID int64) (standing.Table, error) {
	value, err := store.GetOrLoad(ctx, "standings:"+strconv.FormatInt(leagueID, 10), func(ctx context.Context) (any, error) {
		return s.acquisition.StandingsForLeague(ctx, leagueID)
	})
	if err != nil {
		return standing.Table{}, err
	}
	table, ok := value.(standing.Table)
	if !ok {
		return standing.Table{}, fmt.Errorf("unexpected standings cache entry type %T", value)
	}
	return table, nil
}

// injuryWarning is best-effort decoration: roster or injury fetch failures
// are logged and swallowed, never allowed to block the rating itself.
func (s *RunService) injuryWarning(ctx context.Context, fx fixture.Fixture) string {
	squad, err := s.acquisition.PlayersForFixture(ctx, fx.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "players unavailable, skipping injury check", "fixture_id", fx.ID, "error", err)
		return ""
	}
	injuries, err := s.acquisition.InjuriesForFixture(ctx, fx.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "injuries unavailable, skipping injury check", "fixture_id", fx.ID, "error", err)
		return ""
	}

	names := roster.InjuredKeyPlayers(squad, injuries, s.keyPlayerRating)
	if len(names) == 0 {
		return ""
	}
	s.logger.InfoContext(ctx, "key players injured", "fixture_id", fx.ID, "players", strings.Join(names, ", "))
	return keyPlayerWarning
}

func (s *RunService) record(fx fixture.Fixture, score rating.ScoreResult) rating.RatedFixture {
	return rating.RatedFixture{
		Fixture:    fx,
		Score:      score,
		LeagueName: fx.League.Name,
	}
}
