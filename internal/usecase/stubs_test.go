package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/arifwdtm/starpick/internal/domain/bet"
	"github.com/arifwdtm/starpick/internal/domain/fixture"
	"github.com/arifwdtm/starpick/internal/domain/prediction"
	"github.com/arifwdtm/starpick/internal/domain/rating"
	"github.com/arifwdtm/starpick/internal/domain/roster"
	"github.com/arifwdtm/starpick/internal/domain/standing"
	"github.com/arifwdtm/starpick/internal/platform/resilience"
)

// immediateExecutor builds an executor that neither paces nor retries, so
// service tests stay instant and deterministic.
func immediateExecutor() *FetchExecutor {
	e := NewFetchExecutor(resilience.RetryPolicy{MaxAttempts: 1}, nil)
	e.sleep = func(context.Context, time.Duration) error { return nil }
	return e
}

type stubSource struct {
	mu    sync.Mutex
	calls map[string]int

	fixturesFn   func(date string) ([]fixture.Fixture, error)
	fixtureFn    func(id int64) (fixture.Fixture, error)
	standingsFn  func(leagueID int64) (standing.Table, error)
	predictionFn func(id int64) (prediction.Payload, error)
	playersFn    func(id int64) (roster.FixtureRoster, error)
	injuriesFn   func(id int64) (roster.FixtureInjuries, error)
}

func (s *stubSource) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
}

func (s *stubSource) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubSource) FixturesByDate(_ context.Context, date string) ([]fixture.Fixture, error) {
	s.record("fixtures")
	if s.fixturesFn == nil {
		return nil, nil
	}
	return s.fixturesFn(date)
}

func (s *stubSource) FixtureByID(_ context.Context, id int64) (fixture.Fixture, error) {
	s.record("fixture")
	if s.fixtureFn == nil {
		return fixture.Fixture{}, fmt.Errorf("fixture %d not stubbed", id)
	}
	return s.fixtureFn(id)
}

func (s *stubSource) StandingsByLeague(_ context.Context, leagueID int64) (standing.Table, error) {
	s.record("standings")
	if s.standingsFn == nil {
		return standing.Table{LeagueID: leagueID}, nil
	}
	return s.standingsFn(leagueID)
}

func (s *stubSource) PredictionByFixture(_ context.Context, id int64) (prediction.Payload, error) {
	s.record("prediction")
	if s.predictionFn == nil {
		return prediction.Payload{}, nil
	}
	return s.predictionFn(id)
}

func (s *stubSource) PlayersByFixture(_ context.Context, id int64) (roster.FixtureRoster, error) {
	s.record("players")
	if s.playersFn == nil {
		return roster.FixtureRoster{FixtureID: id}, nil
	}
	return s.playersFn(id)
}

func (s *stubSource) InjuriesByFixture(_ context.Context, id int64) (roster.FixtureInjuries, error) {
	s.record("injuries")
	if s.injuriesFn == nil {
		return roster.FixtureInjuries{FixtureID: id}, nil
	}
	return s.injuriesFn(id)
}

type stubLedgerRepo struct {
	mu      sync.Mutex
	ledgers map[string]rating.Ledger
	saveErr error
	saves   int
}

func (r *stubLedgerRepo) LoadDay(_ context.Context, day string) (rating.Ledger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledgers[day], nil
}

func (r *stubLedgerRepo) SaveDay(_ context.Context, day string, ledger rating.Ledger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.ledgers == nil {
		r.ledgers = make(map[string]rating.Ledger)
	}
	r.ledgers[day] = ledger
	r.saves++
	return nil
}

type stubBetsRepo struct {
	mu   sync.Mutex
	bets []bet.Bet
}

func (r *stubBetsRepo) List(_ context.Context) ([]bet.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bet.Bet, len(r.bets))
	copy(out, r.bets)
	return out, nil
}

func (r *stubBetsRepo) Append(_ context.Context, bets []bet.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bets = append(r.bets, bets...)
	return nil
}

func (r *stubBetsRepo) ReplaceAll(_ context.Context, bets []bet.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bets = append([]bet.Bet(nil), bets...)
	return nil
}
