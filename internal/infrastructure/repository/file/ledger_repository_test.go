package file

import (
	"context"
	"testing"

	"github.com/arifwdtm/starpick/internal/domain/rating"
)

func TestLedgerRepository_MissingDayIsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewLedgerRepository(t.TempDir())
	ledger, err := repo.LoadDay(context.Background(), "2026-08-30")
	if err != nil {
		t.Fatalf("load missing day: %v", err)
	}
	if ledger.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d records", ledger.Len())
	}
}

func TestLedgerRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := NewLedgerRepository(t.TempDir())
	ctx := context.Background()

	rec := rating.RatedFixture{
		Score:      rating.ScoreResult{Tier: rating.TierTwoStar, PointsWinner: "Arsenal", HomePoints: 8, AwayPoints: 3},
		LeagueName: "Premier League",
	}
	rec.Fixture.ID = 7
	rec.Fixture.HomeTeam = "Arsenal"
	rec.Fixture.AwayTeam = "Fulham"

	var ledger rating.Ledger
	ledger.Add(rec)
	ledger.Normalize()

	if err := repo.SaveDay(ctx, "2026-08-30", ledger); err != nil {
		t.Fatalf("save day: %v", err)
	}

	loaded, err := repo.LoadDay(ctx, "2026-08-30")
	if err != nil {
		t.Fatalf("load day: %v", err)
	}
	if len(loaded.TwoStarGames) != 1 {
		t.Fatalf("unexpected record count: got=%d want=1", len(loaded.TwoStarGames))
	}
	got := loaded.TwoStarGames[0]
	if got.Fixture.ID != 7 || got.Score.PointsWinner != "Arsenal" || got.Score.HomePoints != 8 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// A different day stays isolated.
	other, err := repo.LoadDay(ctx, "2026-08-31")
	if err != nil {
		t.Fatalf("load other day: %v", err)
	}
	if other.Len() != 0 {
		t.Fatalf("expected other day empty, got %d", other.Len())
	}
}
