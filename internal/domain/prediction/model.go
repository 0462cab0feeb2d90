package prediction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TeamAggregates carries the season totals the scoring ratios are built
// from.
type TeamAggregates struct {
	Name         string `json:"name" validate:"required"`
	Wins         int    `json:"wins" validate:"min=0"`
	Losses       int    `json:"losses" validate:"min=0"`
	GoalsFor     int    `json:"goals_for" validate:"min=0"`
	GoalsAgainst int    `json:"goals_against" validate:"min=0"`
}

// Payload is the parsed prediction for one fixture. Percentages arrive as
// strings with a trailing '%' on the wire and are stored as integers here.
type Payload struct {
	FixtureID   int64          `json:"fixture_id" validate:"gt=0"`
	HomePercent int            `json:"home_percent" validate:"min=0,max=100"`
	DrawPercent int            `json:"draw_percent" validate:"min=0,max=100"`
	AwayPercent int            `json:"away_percent" validate:"min=0,max=100"`
	WinnerName  string         `json:"winner_name"`
	Comment     string         `json:"comment"`
	Advice      string         `json:"advice"`
	Home        TeamAggregates `json:"home"`
	Away        TeamAggregates `json:"away"`
}

var validate = validator.New()

// Validate rejects structurally broken payloads before they reach the
// scoring rules.
func (p Payload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("prediction payload: %w", err)
	}
	return nil
}

// Rationale merges the provider's comment and advice fields the way the
// ledger stores them.
func (p Payload) Rationale() string {
	comment := strings.TrimSpace(p.Comment)
	advice := strings.TrimSpace(p.Advice)
	switch {
	case comment != "" && advice != "":
		return comment + " | " + advice
	case comment != "":
		return comment
	case advice != "":
		return advice
	default:
		return "No comments"
	}
}

// ParsePercent converts a wire value like "45%" to its integer form.
func ParsePercent(raw string) (int, error) {
	value := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse percent %q: %w", raw, err)
	}
	return parsed, nil
}
