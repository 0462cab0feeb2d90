package standing

import "strings"

// Record is one league-table row for a team: rank 1 is best, Form holds
// recent results as 'W'/'D'/'L' with the most recent outcome last.
type Record struct {
	Rank           int    `json:"rank"`
	TeamName       string `json:"team_name"`
	Points         int    `json:"points"`
	GoalDifference int    `json:"goal_difference"`
	Form           string `json:"form"`
	Description    string `json:"description,omitempty"`
}

// Table is the ordered standings of one league for one day.
type Table struct {
	LeagueID int64    `json:"league_id"`
	Rows     []Record `json:"rows"`
}

// FindTeam locates a team's row by exact name match.
func (t Table) FindTeam(name string) (Record, bool) {
	for _, row := range t.Rows {
		if row.TeamName == name {
			return row, true
		}
	}
	return Record{}, false
}

// NormalizeForm keeps only W/D/L characters so provider noise (dashes,
// spaces, lowercase) never reaches the scoring rules.
func NormalizeForm(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		switch r {
		case 'W', 'D', 'L':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormLength counts recorded results after normalization.
func FormLength(raw string) int {
	return len(NormalizeForm(raw))
}
