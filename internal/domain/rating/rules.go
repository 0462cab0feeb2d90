package rating

import (
	"math"
	"strings"

	"github.com/arifwdtm/starpick/internal/domain/prediction"
	"github.com/arifwdtm/starpick/internal/domain/standing"
)

const (
	CommentShortForm = "not enough recent matches"
	CommentRankGap   = "rank difference too small to predict"

	drawName = "Draw"
)

// Weights stores the scoring parameters. Earlier tunings of the model used
// different bracket values, so every constant is a field rather than a
// hard-coded literal.
type Weights struct {
	StrongWinPercent int
	StrongWinPoints  int
	EdgeWinPercent   int
	EdgeWinPoints    int
	ClosePercent     int
	ClosePoints      int

	RatioLargeDiff   float64
	RatioLargePoints int
	RatioSmallDiff   float64
	RatioSmallPoints int

	LargeRankGap       int
	LargeRankGapPoints int
	SmallRankGap       int
	SmallRankGapPoints int

	LargePointsGap       int
	LargePointsGapPoints int
	SmallPointsGap       int
	SmallPointsGapPoints int

	HomeAdvantage int
	FormWindow    int

	ThreeStarGap int
	TwoStarGap   int
	OneStarGap   int
}

func DefaultWeights() Weights {
	return Weights{
		StrongWinPercent: 70,
		StrongWinPoints:  2,
		EdgeWinPercent:   60,
		EdgeWinPoints:    1,
		ClosePercent:     45,
		ClosePoints:      0,
		RatioLargeDiff:   1.0,
		RatioLargePoints: 2,
		RatioSmallDiff:   0.5,
		RatioSmallPoints: 1,

		LargeRankGap:       10,
		LargeRankGapPoints: 2,
		SmallRankGap:       5,
		SmallRankGapPoints: 1,

		LargePointsGap:       30,
		LargePointsGapPoints: 2,
		SmallPointsGap:       20,
		SmallPointsGapPoints: 1,

		HomeAdvantage:    1,
		FormWindow:       5,
		ThreeStarGap:     6,
		TwoStarGap:       4,
		OneStarGap:       2,
	}
}

// NoStarResult builds the sentinel verdict used whenever scoring cannot or
// must not run for a fixture.
func NoStarResult(predictedWinner, comment string) ScoreResult {
	return ScoreResult{
		Tier:            TierNoStar,
		PredictedWinner: predictedWinner,
		PointsWinner:    drawName,
		Comment:         comment,
	}
}

// Score maps a prediction payload and both standings rows to point totals
// and a star tier. It is deterministic and never fails: malformed input
// degrades to a no_star sentinel.
func Score(p prediction.Payload, home, away standing.Record, w Weights) ScoreResult {
	if err := p.Validate(); err != nil {
		return NoStarResult(p.WinnerName, "invalid prediction payload: "+err.Error())
	}
	if standing.FormLength(home.Form) < w.FormWindow || standing.FormLength(away.Form) < w.FormWindow {
		return NoStarResult(p.WinnerName, CommentShortForm)
	}

	homePoints := 0
	awayPoints := 0

	homePoints += winPercentPoints(p.HomePercent, p.DrawPercent, w)
	awayPoints += winPercentPoints(p.AwayPercent, p.DrawPercent, w)

	homeWinRatio := safeRatio(p.Home.Wins, p.Home.Losses)
	awayWinRatio := safeRatio(p.Away.Wins, p.Away.Losses)
	homePoints += ratioPoints(homeWinRatio-awayWinRatio, w)
	awayPoints += ratioPoints(awayWinRatio-homeWinRatio, w)

	homeGoalRatio := safeRatio(p.Home.GoalsFor, p.Home.GoalsAgainst)
	awayGoalRatio := safeRatio(p.Away.GoalsFor, p.Away.GoalsAgainst)
	homePoints += ratioPoints(homeGoalRatio-awayGoalRatio, w)
	awayPoints += ratioPoints(awayGoalRatio-homeGoalRatio, w)

	rankGap := away.Rank - home.Rank
	homePoints += rankGapPoints(rankGap, w)
	awayPoints += rankGapPoints(-rankGap, w)

	pointsGap := home.Points - away.Points
	homePoints += pointsGapPoints(pointsGap, w)
	awayPoints += pointsGapPoints(-pointsGap, w)

	homePoints += w.HomeAdvantage
	awayPoints -= w.HomeAdvantage

	homePoints += formStreakPoints(home.Form)
	awayPoints += formStreakPoints(away.Form)

	result := ScoreResult{
		HomePoints:      homePoints,
		AwayPoints:      awayPoints,
		Tier:            classify(homePoints-awayPoints, w),
		PredictedWinner: p.WinnerName,
		PointsWinner:    pointsWinner(homePoints, awayPoints, p.Home.Name, p.Away.Name),
		Comment:         p.Rationale(),
	}
	return result
}

func winPercentPoints(winPercent, drawPercent int, w Weights) int {
	switch {
	case winPercent >= w.StrongWinPercent:
		return w.StrongWinPoints
	case winPercent >= w.EdgeWinPercent:
		return w.EdgeWinPoints
	case winPercent >= w.ClosePercent && drawPercent >= w.ClosePercent:
		return w.ClosePoints
	default:
		return 0
	}
}

// safeRatio treats a zero denominator as an unbeaten record rather than a
// division error.
func safeRatio(num, den int) float64 {
	if den == 0 {
		if num == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(num) / float64(den)
}

func ratioPoints(diff float64, w Weights) int {
	if math.IsNaN(diff) {
		// Both sides unbeaten: no edge either way.
		return 0
	}
	switch {
	case diff >= w.RatioLargeDiff:
		return w.RatioLargePoints
	case diff >= w.RatioSmallDiff:
		return w.RatioSmallPoints
	default:
		return 0
	}
}

func rankGapPoints(gap int, w Weights) int {
	switch {
	case gap >= w.LargeRankGap:
		return w.LargeRankGapPoints
	case gap >= w.SmallRankGap:
		return w.SmallRankGapPoints
	default:
		return 0
	}
}

func pointsGapPoints(gap int, w Weights) int {
	switch {
	case gap >= w.LargePointsGap:
		return w.LargePointsGapPoints
	case gap >= w.SmallPointsGap:
		return w.SmallPointsGapPoints
	default:
		return 0
	}
}

func formStreakPoints(form string) int {
	normalized := standing.NormalizeForm(form)
	switch {
	case strings.HasSuffix(normalized, "WWWWW"):
		return 2
	case strings.HasSuffix(normalized, "WWW"):
		return 1
	case strings.HasSuffix(normalized, "LLLLL"):
		return -2
	case strings.HasSuffix(normalized, "LLL"):
		return -1
	default:
		return 0
	}
}

func classify(pointsDiff int, w Weights) StarTier {
	gap := pointsDiff
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap > w.ThreeStarGap:
		return TierThreeStar
	case gap > w.TwoStarGap:
		return TierTwoStar
	case gap > w.OneStarGap:
		return TierOneStar
	default:
		return TierNoStar
	}
}

func pointsWinner(homePoints, awayPoints int, homeName, awayName string) string {
	switch {
	case homePoints > awayPoints:
		return homeName
	case awayPoints > homePoints:
		return awayName
	default:
		return drawName
	}
}
