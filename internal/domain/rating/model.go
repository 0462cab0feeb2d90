package rating

import (
	"sort"

	sonic "github.com/bytedance/sonic"
	"github.com/arifwdtm/starpick/internal/domain/fixture"
)

// StarTier is the discrete confidence classification of a fixture.
type StarTier string

const (
	TierNoStar    StarTier = "no_star"
	TierOneStar   StarTier = "one_star"
	TierTwoStar   StarTier = "two_star"
	TierThreeStar StarTier = "three_star"
)

// Tiers lists every tier in ascending confidence order.
var Tiers = []StarTier{TierNoStar, TierOneStar, TierTwoStar, TierThreeStar}

// ScoreResult is the scoring engine's verdict for one fixture. PointsWinner
// is derived from the point totals and may disagree with the provider's
// PredictedWinner.
type ScoreResult struct {
	HomePoints      int      `json:"home_points"`
	AwayPoints      int      `json:"away_points"`
	Tier            StarTier `json:"tier"`
	PredictedWinner string   `json:"predicted_winner"`
	PointsWinner    string   `json:"points_winner"`
	Comment         string   `json:"comment"`
}

// RatedFixture is the unit stored in the ledger.
type RatedFixture struct {
	Fixture    fixture.Fixture `json:"fixture"`
	Score      ScoreResult     `json:"score"`
	LeagueName string          `json:"league_name"`
	Warning    string          `json:"warning,omitempty"`
}

// Ledger holds one calendar day's classified fixtures, one collection per
// star tier.
type Ledger struct {
	NoStarGames    []RatedFixture `json:"no_star_games"`
	OneStarGames   []RatedFixture `json:"one_star_games"`
	TwoStarGames   []RatedFixture `json:"two_star_games"`
	ThreeStarGames []RatedFixture `json:"three_star_games"`
}

func (l *Ledger) Add(rec RatedFixture) {
	switch rec.Score.Tier {
	case TierThreeStar:
		l.ThreeStarGames = append(l.ThreeStarGames, rec)
	case TierTwoStar:
		l.TwoStarGames = append(l.TwoStarGames, rec)
	case TierOneStar:
		l.OneStarGames = append(l.OneStarGames, rec)
	default:
		l.NoStarGames = append(l.NoStarGames, rec)
	}
}

// ForTier returns the collection backing a tier.
func (l *Ledger) ForTier(tier StarTier) []RatedFixture {
	switch tier {
	case TierThreeStar:
		return l.ThreeStarGames
	case TierTwoStar:
		return l.TwoStarGames
	case TierOneStar:
		return l.OneStarGames
	default:
		return l.NoStarGames
	}
}

// Normalize deduplicates each tier by structural equality and sorts it by
// the serialized record, so merging the same inputs twice produces
// byte-identical output.
func (l *Ledger) Normalize() {
	l.NoStarGames = normalizeTier(l.NoStarGames)
	l.OneStarGames = normalizeTier(l.OneStarGames)
	l.TwoStarGames = normalizeTier(l.TwoStarGames)
	l.ThreeStarGames = normalizeTier(l.ThreeStarGames)
}

// FixtureIDs returns the identifiers present across all tiers. This is the
// "already processed" set consulted before any per-fixture work.
func (l *Ledger) FixtureIDs() map[int64]struct{} {
	out := make(map[int64]struct{}, l.Len())
	for _, tier := range Tiers {
		for _, rec := range l.ForTier(tier) {
			out[rec.Fixture.ID] = struct{}{}
		}
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.NoStarGames) + len(l.OneStarGames) + len(l.TwoStarGames) + len(l.ThreeStarGames)
}

// FindByFixtureID locates a record by fixture id, preferring higher tiers.
func (l *Ledger) FindByFixtureID(id int64) (RatedFixture, bool) {
	for i := len(Tiers) - 1; i >= 0; i-- {
		for _, rec := range l.ForTier(Tiers[i]) {
			if rec.Fixture.ID == id {
				return rec, true
			}
		}
	}
	return RatedFixture{}, false
}

func normalizeTier(recs []RatedFixture) []RatedFixture {
	if len(recs) == 0 {
		return recs
	}

	type keyed struct {
		key string
		rec RatedFixture
	}

	items := make([]keyed, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		raw, err := sonic.Marshal(rec)
		if err != nil {
			continue
		}
		key := string(raw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, keyed{key: key, rec: rec})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })

	out := make([]RatedFixture, 0, len(items))
	for _, item := range items {
		out = append(out, item.rec)
	}
	return out
}
