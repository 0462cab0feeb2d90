package fixture

import "strings"

const (
	StatusNotStarted  = "NS"
	StatusToBeDefined = "TBD"
	StatusFullTime    = "FT"
	StatusPostponed   = "PST"
	StatusCancelled   = "CANC"
)

// League identifies the competition a fixture belongs to.
type League struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Fixture represents one scheduled match for the day. Immutable once
// fetched; the day's set is sourced fresh at most once per calendar day.
type Fixture struct {
	ID        int64  `json:"id"`
	League    League `json:"league"`
	Status    string `json:"status"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	KickoffAt string `json:"kickoff_at,omitempty"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusToBeDefined
	}
	return status
}

// IsSchedulable reports whether a status code marks a match that has not
// kicked off yet.
func IsSchedulable(status string) bool {
	switch NormalizeStatus(status) {
	case StatusNotStarted, StatusToBeDefined:
		return true
	default:
		return false
	}
}

// IsAbandonedStatus reports whether a status code marks a match that was
// called off and will never produce a final score under this fixture id.
func IsAbandonedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFullTime, "AET", "PEN":
		return true
	default:
		return false
	}
}
