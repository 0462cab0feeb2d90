package roster

// Player is one squad member with the provider's match rating.
type Player struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	TeamName string  `json:"team_name"`
}

// FixtureRoster groups both squads for one fixture.
type FixtureRoster struct {
	FixtureID int64    `json:"fixture_id"`
	Home      []Player `json:"home"`
	Away      []Player `json:"away"`
}

// Injury is one reported absence for a fixture.
type Injury struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
	Reason     string `json:"reason,omitempty"`
}

// FixtureInjuries lists every reported absence for one fixture.
type FixtureInjuries struct {
	FixtureID int64    `json:"fixture_id"`
	Items     []Injury `json:"items"`
}

// InjuredKeyPlayers returns the names of players rated at or above the
// threshold that appear on the fixture's injury list.
func InjuredKeyPlayers(r FixtureRoster, inj FixtureInjuries, ratingThreshold float64) []string {
	injured := make(map[int64]struct{}, len(inj.Items))
	for _, item := range inj.Items {
		injured[item.PlayerID] = struct{}{}
	}

	var out []string
	for _, squad := range [][]Player{r.Home, r.Away} {
		for _, player := range squad {
			if player.Rating < ratingThreshold {
				continue
			}
			if _, hurt := injured[player.ID]; hurt {
				out = append(out, player.Name)
			}
		}
	}
	return out
}
