package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/arifwdtm/starpick/internal/artifact"
	"github.com/arifwdtm/starpick/internal/domain/fixture"
	"github.com/arifwdtm/starpick/internal/domain/prediction"
	"github.com/arifwdtm/starpick/internal/domain/roster"
	"github.com/arifwdtm/starpick/internal/domain/standing"
	"github.com/arifwdtm/starpick/internal/platform/logging"
)

const dayLayout = "2006-01-02"

// RemoteSource is the rate-limited data provider. Implementations perform
// one attempt per call and leave waiting to the fetch executor.
type RemoteSource interface {
	FixturesByDate(ctx context.Context, date string) ([]fixture.Fixture, error)
	FixtureByID(ctx context.Context, fixtureID int64) (fixture.Fixture, error)
	StandingsByLeague(ctx context.Context, leagueID int64) (standing.Table, error)
	PredictionByFixture(ctx context.Context, fixtureID int64) (prediction.Payload, error)
	PlayersByFixture(ctx context.Context, fixtureID int64) (roster.FixtureRoster, error)
	InjuriesByFixture(ctx context.Context, fixtureID int64) (roster.FixtureInjuries, error)
}

// ArtifactStore persists fetched payloads and answers same-day freshness.
type ArtifactStore interface {
	IsFresh(entity, key string) bool
	Load(entity, key string, target any) error
	Save(entity, key string, payload any) error
}

// AcquisitionService owns every cached artifact: it serves fresh ones,
// falls through to the executor-mediated source on a miss, and persists
// whatever comes back. Empty payloads are persisted too, so a dead league
// is not refetched all day.
type AcquisitionService struct {
	store    ArtifactStore
	executor *FetchExecutor
	source   RemoteSource
	logger   *logging.Logger
	now      func() time.Time
}

func NewAcquisitionService(store ArtifactStore, executor *FetchExecutor, source RemoteSource, logger *logging.Logger) *AcquisitionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AcquisitionService{
		store:    store,
		executor: executor,
		source:   source,
		logger:   logger,
		now:      time.Now,
	}
}

// Today returns the pipeline's current day key.
func (s *AcquisitionService) Today() string {
	return s.now().Format(dayLayout)
}

func (s *AcquisitionService) FixturesForDay(ctx context.Context) ([]fixture.Fixture, error) {
	day := s.Today()

	var cached []fixture.Fixture
	if s.loadFresh(artifact.EntityFixtures, day, &cached) {
		s.logger.InfoContext(ctx, "fixtures served from cache", "day", day, "count", len(cached))
		return cached, nil
	}

	var fetched []fixture.Fixture
	err := s.executor.Execute(ctx, "fixtures-for-day", func(ctx context.Context) error {
		var callErr error
		fetched, callErr = s.source.FixturesByDate(ctx, day)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("acquire fixtures day=%s: %w", day, err)
	}

	s.persist(ctx, artifact.EntityFixtures, day, fetched)
	return fetched, nil
}

// StandingsForLeague returns the league table, requiring a non-empty row
// set: an empty table is persisted (to avoid hot-looping) but reported as
// ErrEmptyPayload so the caller marks the league failed for the run.
func (s *AcquisitionService) StandingsForLeague(ctx context.Context, leagueID int64) (standing.Table, error) {
	key := strconv.FormatInt(leagueID, 10)

	var cached standing.Table
	if s.loadFresh(artifact.EntityStandings, key, &cached) {
		if len(cached.Rows) == 0 {
			return cached, fmt.Errorf("%w: standings league=%d", ErrEmptyPayload, leagueID)
		}
		return cached, nil
	}

	var fetched standing.Table
	err := s.executor.Execute(ctx, "standings-for-league", func(ctx context.Context) error {
		var callErr error
		fetched, callErr = s.source.StandingsByLeague(ctx, leagueID)
		return callErr
	})
	if err != nil {
		return standing.Table{}, fmt.Errorf("acquire standings league=%d: %w", leagueID, err)
	}

	s.persist(ctx, artifact.EntityStandings, key, fetched)
	if len(fetched.Rows) == 0 {
		return fetched, fmt.Errorf("%w: standings league=%d", ErrEmptyPayload, leagueID)
	}
	return fetched, nil
}

// PredictionForFixture returns the fixture's prediction, requiring a
// non-empty payload.
func (s *AcquisitionService) PredictionForFixture(ctx context.Context, fixtureID int64) (prediction.Payload, error) {
	key := strconv.FormatInt(fixtureID, 10)

	var cached prediction.Payload
	if s.loadFresh(artifact.EntityPredictions, key, &cached) {
		if cached.FixtureID == 0 {
			return cached, fmt.Errorf("%w: prediction fixture=%d", ErrEmptyPayload, fixtureID)
		}
		return cached, nil
	}

	var fetched prediction.Payload
	err := s.executor.Execute(ctx, "prediction-for-fixture", func(ctx context.Context) error {
		var callErr error
		fetched, callErr = s.source.PredictionByFixture(ctx, fixtureID)
		return callErr
	})
	if err != nil {
		return prediction.Payload{}, fmt.Errorf("acquire prediction fixture=%d: %w", fixtureID, err)
	}

	s.persist(ctx, artifact.EntityPredictions, key, fetched)
	if fetched.FixtureID == 0 {
		return fetched, fmt.Errorf("%w: prediction fixture=%d", ErrEmptyPayload, fixtureID)
	}
	return fetched, nil
}

func (s *AcquisitionService) PlayersForFixture(ctx context.Context, fixtureID int64) (roster.FixtureRoster, error) {
	key := strconv.FormatInt(fixtureID, 10)

	var cached roster.FixtureRoster
	if s.loadFresh(artifact.EntityPlayers, key, &cached) {
		return cached, nil
	}

	var fetched roster.FixtureRoster
	err := s.executor.Execute(ctx, "players-for-fixture", func(ctx context.Context) error {
		var callErr error
		fetched, callErr = s.source.PlayersByFixture(ctx, fixtureID)
		return callErr
	})
	if err != nil {
		return roster.FixtureRoster{}, fmt.Errorf("acquire players fixture=%d: %w", fixtureID, err)
	}

	s.persist(ctx, artifact.EntityPlayers, key, fetched)
	return fetched, nil
}

func (s *AcquisitionService) InjuriesForFixture(ctx context.Context, fixtureID int64) (roster.FixtureInjuries, error) {
	key := strconv.FormatInt(fixtureID, 10)

	var cached roster.FixtureInjuries
	if s.loadFresh(artifact.EntityInjuries, key, &cached) {
		return cached, nil
	}

	var fetched roster.FixtureInjuries
	err := s.executor.Execute(ctx, "injuries-for-fixture", func(ctx context.Context) error {
		var callErr error
		fetched, callErr = s.source.InjuriesByFixture(ctx, fixtureID)
		return callErr
	})
	if err != nil {
		return roster.FixtureInjuries{}, fmt.Errorf("acquire injuries fixture=%d: %w", fixtureID, err)
	}

	s.persist(ctx, artifact.EntityInjuries, key, fetched)
	return fetched, nil
}

// FinalResult looks up a single fixture for bet settlement.
func (s *AcquisitionService) FinalResult(ctx context.Context, fixtureID int64) (fixture.Fixture, error) {
	key := strconv.FormatInt(fixtureID, 10)

	var cached fixture.Fixture
	if s.loadFresh(artifact.EntityResults, key, &cached) && cached.ID != 0 {
		return cached, nil
	}

	var fetched fixture.Fixture
	err := s.executor.Execute(ctx, "fixture-by-id", func(ctx context.Context) error {
		var callErr error
		fetched, callErr = s.source.FixtureByID(ctx, fixtureID)
		return callErr
	})
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("acquire result fixture=%d: %w", fixtureID, err)
	}

	s.persist(ctx, artifact.EntityResults, key, fetched)
	return fetched, nil
}

func (s *AcquisitionService) loadFresh(entity, key string, target any) bool {
	if !s.store.IsFresh(entity, key) {
		return false
	}
	if err := s.store.Load(entity, key, target); err != nil {
		s.logger.Warn("cached artifact unreadable, refetching", "entity", entity, "key", key, "error", err)
		return false
	}
	return true
}

func (s *AcquisitionService) persist(ctx context.Context, entity, key string, payload any) {
	if err := s.store.Save(entity, key, payload); err != nil {
		s.logger.ErrorContext(ctx, "persist artifact failed", "entity", entity, "key", key, "error", err)
	}
}
