package usecase

import (
	"context"
	"testing"

	"github.com/arifwdtm/starpick/internal/domain/rating"
)

func ratedRecord(id int64, tier rating.StarTier) rating.RatedFixture {
	rec := rating.RatedFixture{
		Score:      rating.ScoreResult{Tier: tier, PointsWinner: "Arsenal"},
		LeagueName: "Premier League",
	}
	rec.Fixture.ID = id
	return rec
}

func TestLedgerService_MergeAndSaveIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := &stubLedgerRepo{}
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()

	rec := ratedRecord(7, rating.TierTwoStar)
	if err := svc.MergeAndSave(ctx, rec); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if err := svc.MergeAndSave(ctx, rec); err != nil {
		t.Fatalf("second merge: %v", err)
	}

	ledger, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if ledger.Len() != 1 {
		t.Fatalf("expected duplicate merge collapsed, got %d records", ledger.Len())
	}
}

func TestLedgerService_ProcessedIDsSpanAllTiers(t *testing.T) {
	t.Parallel()

	repo := &stubLedgerRepo{}
	svc := NewLedgerService(repo, nil)
	ctx := context.Background()

	records := []rating.RatedFixture{
		ratedRecord(1, rating.TierNoStar),
		ratedRecord(2, rating.TierOneStar),
		ratedRecord(3, rating.TierTwoStar),
		ratedRecord(4, rating.TierThreeStar),
	}
	if err := svc.MergeAndSave(ctx, records...); err != nil {
		t.Fatalf("merge: %v", err)
	}

	processed, err := svc.ProcessedIDs(ctx)
	if err != nil {
		t.Fatalf("processed ids: %v", err)
	}
	if len(processed) != 4 {
		t.Fatalf("unexpected processed count: got=%d want=4", len(processed))
	}
	for id := int64(1); id <= 4; id++ {
		if _, ok := processed[id]; !ok {
			t.Fatalf("missing fixture %d in processed set", id)
		}
	}
}
