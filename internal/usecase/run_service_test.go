package usecase

import (
	"context"
	"testing"

	"github.com/arifwdtm/starpick/internal/artifact"
	"github.com/arifwdtm/starpick/internal/domain/fixture"
	"github.com/arifwdtm/starpick/internal/domain/prediction"
	"github.com/arifwdtm/starpick/internal/domain/rating"
	"github.com/arifwdtm/starpick/internal/domain/roster"
	"github.com/arifwdtm/starpick/internal/domain/standing"
)

func strongPrediction(id int64) prediction.Payload {
	return prediction.Payload{
		FixtureID:   id,
		HomePercent: 75,
		DrawPercent: 15,
		AwayPercent: 10,
		WinnerName:  "Arsenal",
		Advice:      "Home win expected",
		Home:        prediction.TeamAggregates{Name: "Arsenal", Wins: 18, Losses: 2, GoalsFor: 50, GoalsAgainst: 10},
		Away:        prediction.TeamAggregates{Name: "Fulham", Wins: 5, Losses: 12, GoalsFor: 15, GoalsAgainst: 40},
	}
}

func strongTable(leagueID int64) standing.Table {
	return standing.Table{
		LeagueID: leagueID,
		Rows: []standing.Record{
			{Rank: 1, TeamName: "Arsenal", Points: 75, Form: "WWWWW"},
			{Rank: 15, TeamName: "Fulham", Points: 25, Form: "LLLLL"},
		},
	}
}

func newRunService(t *testing.T, source *stubSource, repo *stubLedgerRepo) *RunService {
	t.Helper()
	store := artifact.NewStore(t.TempDir())
	acquisition := NewAcquisitionService(store, immediateExecutor(), source, nil)
	ledger := NewLedgerService(repo, nil)
	filter := NewEligibilityFilter([]string{"NS", "TBD"}, []string{"England"}, nil)
	return NewRunService(acquisition, ledger, filter, rating.DefaultWeights(), 4, 7.0, nil)
}

func TestRunService_RatesEligibleFixture(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		fixturesFn: func(string) ([]fixture.Fixture, error) {
			return []fixture.Fixture{eligibleFixture(1)}, nil
		},
		standingsFn: func(leagueID int64) (standing.Table, error) {
			return strongTable(leagueID), nil
		},
		predictionFn: func(id int64) (prediction.Payload, error) {
			return strongPrediction(id), nil
		},
	}
	repo := &stubLedgerRepo{}
	svc := newRunService(t, source, repo)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Rated != 1 {
		t.Fatalf("unexpected rated count: got=%d want=1", summary.Rated)
	}
	if len(summary.Ledger.ThreeStarGames) != 1 {
		t.Fatalf("expected one three_star record, got ledger %+v", summary.Ledger)
	}
	rec := summary.Ledger.ThreeStarGames[0]
	if rec.Score.PointsWinner != "Arsenal" {
		t.Fatalf("unexpected points winner: got=%q", rec.Score.PointsWinner)
	}
}

func TestRunService_ResumesFromExistingLedger(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		fixturesFn: func(string) ([]fixture.Fixture, error) {
			return []fixture.Fixture{eligibleFixture(1)}, nil
		},
	}
	repo := &stubLedgerRepo{}

	svc := newRunService(t, source, repo)
	if err := svc.ledger.MergeAndSave(context.Background(), ratedRecord(1, rating.TierTwoStar)); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.AlreadyProcessed != 1 || summary.Rated != 0 {
		t.Fatalf("expected fixture skipped as processed, got %+v", summary)
	}
	if source.callCount("standings") != 0 || source.callCount("prediction") != 0 {
		t.Fatalf("processed fixture must not trigger remote calls: %v", source.calls)
	}
}

func TestRunService_FailedLeagueSkipsRemainingFixtures(t *testing.T) {
	t.Parallel()

	second := eligibleFixture(2)
	source := &stubSource{
		fixturesFn: func(string) ([]fixture.Fixture, error) {
			return []fixture.Fixture{eligibleFixture(1), second}, nil
		},
		standingsFn: func(leagueID int64) (standing.Table, error) {
			return standing.Table{LeagueID: leagueID}, nil
		},
	}
	repo := &stubLedgerRepo{}
	svc := newRunService(t, source, repo)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.FailedLeagues != 1 {
		t.Fatalf("unexpected failed leagues: got=%d want=1", summary.FailedLeagues)
	}
	if summary.SkippedLeagues != 1 {
		t.Fatalf("expected second fixture skipped, got %+v", summary)
	}
	if summary.Ledger.Len() != 0 {
		t.Fatalf("failed-league fixtures must not reach the ledger")
	}
}

func TestRunService_NarrowRankGapGetsNoStar(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		fixturesFn: func(string) ([]fixture.Fixture, error) {
			return []fixture.Fixture{eligibleFixture(1)}, nil
		},
		standingsFn: func(leagueID int64) (standing.Table, error) {
			return standing.Table{
				LeagueID: leagueID,
				Rows: []standing.Record{
					{Rank: 4, TeamName: "Arsenal", Points: 50, Form: "WWWWW"},
					{Rank: 6, TeamName: "Fulham", Points: 48, Form: "WWWDW"},
				},
			}, nil
		},
	}
	repo := &stubLedgerRepo{}
	svc := newRunService(t, source, repo)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Ledger.NoStarGames) != 1 {
		t.Fatalf("expected one no_star record, got %+v", summary.Ledger)
	}
	if got := summary.Ledger.NoStarGames[0].Score.Comment; got != rating.CommentRankGap {
		t.Fatalf("unexpected comment: got=%q want=%q", got, rating.CommentRankGap)
	}
	if source.callCount("prediction") != 0 {
		t.Fatalf("rank-gated fixture must not spend a prediction call")
	}
}

func TestRunService_MissingTeamRowGetsNoStar(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		fixturesFn: func(string) ([]fixture.Fixture, error) {
			return []fixture.Fixture{eligibleFixture(1)}, nil
		},
		standingsFn: func(leagueID int64) (standing.Table, error) {
			return standing.Table{
				LeagueID: leagueID,
				Rows:     []standing.Record{{Rank: 1, TeamName: "Arsenal", Points: 70, Form: "WWWWW"}},
			}, nil
		},
	}
	repo := &stubLedgerRepo{}
	svc := newRunService(t, source, repo)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Ledger.NoStarGames) != 1 {
		t.Fatalf("expected one no_star record, got %+v", summary.Ledger)
	}
}

func TestRunService_KeyPlayerInjuryWarning(t *testing.T) {
	t.Parallel()

	source := &stubSource{
		fixturesFn: func(string) ([]fixture.Fixture, error) {
			return []fixture.Fixture{eligibleFixture(1)}, nil
		},
		standingsFn: func(leagueID int64) (standing.Table, error) {
			return strongTable(leagueID), nil
		},
		predictionFn: func(id int64) (prediction.Payload, error) {
			return strongPrediction(id), nil
		},
		playersFn: func(id int64) (roster.FixtureRoster, error) {
			return roster.FixtureRoster{
				FixtureID: id,
				Home:      []roster.Player{{ID: 10, Name: "Saka", Rating: 7.8, TeamName: "Arsenal"}},
			}, nil
		},
		injuriesFn: func(id int64) (roster.FixtureInjuries, error) {
			return roster.FixtureInjuries{
				FixtureID: id,
				Items:     []roster.Injury{{PlayerID: 10, PlayerName: "Saka", TeamName: "Arsenal", Reason: "Knock"}},
			}, nil
		},
	}
	repo := &stubLedgerRepo{}
	svc := newRunService(t, source, repo)

	summary, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Ledger.ThreeStarGames) != 1 {
		t.Fatalf("expected one rated record, got %+v", summary.Ledger)
	}
	if got := summary.Ledger.ThreeStarGames[0].Warning; got != keyPlayerWarning {
		t.Fatalf("unexpected warning: got=%q want=%q", got, keyPlayerWarning)
	}
}
