package usecase

import (
	"strings"

	"github.com/arifwdtm/starpick/internal/domain/fixture"
	"github.com/arifwdtm/starpick/internal/domain/standing"
	"github.com/arifwdtm/starpick/internal/platform/logging"
)

// EligibilityFilter narrows a day's fixture list to the schedulable,
// allow-listed subset worth spending provider quota on.
type EligibilityFilter struct {
	statuses  map[string]struct{}
	countries map[string]struct{}
	logger    *logging.Logger
}

func NewEligibilityFilter(statuses, countries []string, logger *logging.Logger) *EligibilityFilter {
	if logger == nil {
		logger = logging.Default()
	}
	return &EligibilityFilter{
		statuses:  buildSet(statuses),
		countries: buildSet(countries),
		logger:    logger,
	}
}

// Filter keeps fixtures whose status and country are both allow-listed.
// Malformed entries are dropped with a log line, never an error: one bad
// record must not sink the day.
func (f *EligibilityFilter) Filter(fixtures []fixture.Fixture) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(fixtures))
	for _, fx := range fixtures {
		if fx.ID <= 0 || fx.League.Name == "" || fx.League.Country == "" || fx.HomeTeam == "" || fx.AwayTeam == "" {
			f.logger.Warn("dropping malformed fixture",
				"fixture_id", fx.ID,
				"league", fx.League.Name,
				"home", fx.HomeTeam,
				"away", fx.AwayTeam,
			)
			continue
		}
		if !f.statusAllowed(fx.Status) {
			continue
		}
		if _, ok := f.countries[fx.League.Country]; !ok {
			continue
		}
		out = append(out, fx)
	}
	return out
}

// statusAllowed consults the configured allow-list; without one the filter
// falls back to the schedulable statuses, so postponed and cancelled
// matches never reach the scoring pass.
func (f *EligibilityFilter) statusAllowed(status string) bool {
	if len(f.statuses) == 0 {
		return fixture.IsSchedulable(status)
	}
	_, ok := f.statuses[status]
	return ok
}

// RankGapEligible reports whether two table positions are far enough apart
// for the scoring model to say anything meaningful.
func RankGapEligible(home, away standing.Record, minGap int) bool {
	gap := home.Rank - away.Rank
	if gap < 0 {
		gap = -gap
	}
	return gap >= minGap
}

func buildSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}
