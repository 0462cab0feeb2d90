package bet

import "time"

// Bet is one recorded wager against a rated fixture, correlated by fixture
// id. Settlement fields stay nil until the final score is known.
type Bet struct {
	FixtureID    int64     `json:"fixture_id"`
	LeagueName   string    `json:"league_name"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	PickedWinner string    `json:"picked_winner"`
	Stake        float64   `json:"stake"`
	PlacedAt     time.Time `json:"placed_at"`
	Settled      bool      `json:"settled"`
	Won          *bool     `json:"won,omitempty"`
	FinalHome    *int      `json:"final_home,omitempty"`
	FinalAway    *int      `json:"final_away,omitempty"`
}
