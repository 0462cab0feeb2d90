package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/arifwdtm/starpick/internal/domain/fixture"
	"github.com/arifwdtm/starpick/internal/domain/prediction"
	"github.com/arifwdtm/starpick/internal/domain/roster"
	"github.com/arifwdtm/starpick/internal/domain/standing"
	"github.com/arifwdtm/starpick/internal/platform/logging"
	"github.com/arifwdtm/starpick/internal/platform/resilience"
	"github.com/arifwdtm/starpick/internal/usecase"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

// ErrRateLimited marks the provider's application-level rate limit: a 200
// payload whose embedded errors object names the request quota. The fetch
// executor treats it as a cooldown-then-retry signal.
var ErrRateLimited = usecase.ErrRateLimited

var errTransient = crerr.New("provider transient failure")

func IsRateLimited(err error) bool {
	return crerr.Is(err, ErrRateLimited)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Season         int
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client is the remote data source. It performs exactly one HTTP attempt
// per call: pacing and retry live in the fetch executor, never here.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	season         int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	} else if httpClient.Timeout <= 0 {
		// Copy before defaulting so the caller's client is left untouched.
		clone := *httpClient
		clone.Timeout = timeout
		httpClient = &clone
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	season := cfg.Season
	if season <= 0 {
		season = time.Now().Year()
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		season:         season,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FixturesByDate returns every fixture scheduled on the given day
// (YYYY-MM-DD), ordered by league then fixture id.
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]fixture.Fixture, error) {
	var envelope fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", map[string]string{"date": date}, &envelope); err != nil {
		return nil, fmt.Errorf("fetch fixtures date=%s: %w", date, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return nil, fmt.Errorf("fetch fixtures date=%s: %w", date, err)
	}

	out := make([]fixture.Fixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, mapFixture(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].League.ID != out[j].League.ID {
			return out[i].League.ID < out[j].League.ID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// FixtureByID fetches a single fixture, including its final score when the
// match has finished.
func (c *Client) FixtureByID(ctx context.Context, fixtureID int64) (fixture.Fixture, error) {
	var envelope fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", map[string]string{"id": strconv.FormatInt(fixtureID, 10)}, &envelope); err != nil {
		return fixture.Fixture{}, fmt.Errorf("fetch fixture id=%d: %w", fixtureID, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return fixture.Fixture{}, fmt.Errorf("fetch fixture id=%d: %w", fixtureID, err)
	}
	if len(envelope.Response) == 0 {
		return fixture.Fixture{}, fmt.Errorf("fixture id=%d not found", fixtureID)
	}
	return mapFixture(envelope.Response[0]), nil
}

// StandingsByLeague returns the league table for the configured season.
func (c *Client) StandingsByLeague(ctx context.Context, leagueID int64) (standing.Table, error) {
	query := map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(c.season),
	}

	var envelope standingsEnvelope
	if err := c.doJSON(ctx, "/standings", query, &envelope); err != nil {
		return standing.Table{}, fmt.Errorf("fetch standings league=%d: %w", leagueID, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return standing.Table{}, fmt.Errorf("fetch standings league=%d: %w", leagueID, err)
	}

	table := standing.Table{LeagueID: leagueID}
	for _, group := range envelope.Response {
		// The provider nests one table per group stage; the first group is
		// the overall league table.
		if len(group.League.Standings) == 0 {
			continue
		}
		for _, row := range group.League.Standings[0] {
			table.Rows = append(table.Rows, standing.Record{
				Rank:           row.Rank,
				TeamName:       strings.TrimSpace(row.Team.Name),
				Points:         row.Points,
				GoalDifference: row.GoalsDiff,
				Form:           standing.NormalizeForm(row.Form),
				Description:    strings.TrimSpace(row.Description),
			})
		}
		break
	}

	sort.SliceStable(table.Rows, func(i, j int) bool { return table.Rows[i].Rank < table.Rows[j].Rank })
	return table, nil
}

// PredictionByFixture returns the provider's prediction payload for one
// fixture, parsed and validated.
func (c *Client) PredictionByFixture(ctx context.Context, fixtureID int64) (prediction.Payload, error) {
	var envelope predictionsEnvelope
	if err := c.doJSON(ctx, "/predictions", map[string]string{"fixture": strconv.FormatInt(fixtureID, 10)}, &envelope); err != nil {
		return prediction.Payload{}, fmt.Errorf("fetch prediction fixture=%d: %w", fixtureID, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return prediction.Payload{}, fmt.Errorf("fetch prediction fixture=%d: %w", fixtureID, err)
	}
	if len(envelope.Response) == 0 {
		return prediction.Payload{}, nil
	}

	payload, err := mapPrediction(fixtureID, envelope.Response[0])
	if err != nil {
		return prediction.Payload{}, fmt.Errorf("map prediction fixture=%d: %w", fixtureID, err)
	}
	return payload, nil
}

// PlayersByFixture returns both squads with provider match ratings. The
// provider lists the home side first.
func (c *Client) PlayersByFixture(ctx context.Context, fixtureID int64) (roster.FixtureRoster, error) {
	var envelope playersEnvelope
	if err := c.doJSON(ctx, "/fixtures/players", map[string]string{"fixture": strconv.FormatInt(fixtureID, 10)}, &envelope); err != nil {
		return roster.FixtureRoster{}, fmt.Errorf("fetch players fixture=%d: %w", fixtureID, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return roster.FixtureRoster{}, fmt.Errorf("fetch players fixture=%d: %w", fixtureID, err)
	}

	out := roster.FixtureRoster{FixtureID: fixtureID}
	for idx, teamBlock := range envelope.Response {
		players := make([]roster.Player, 0, len(teamBlock.Players))
		for _, item := range teamBlock.Players {
			rating := 0.0
			if len(item.Statistics) > 0 {
				if parsed, err := strconv.ParseFloat(strings.TrimSpace(item.Statistics[0].Games.Rating), 64); err == nil {
					rating = parsed
				}
			}
			players = append(players, roster.Player{
				ID:       item.Player.ID,
				Name:     strings.TrimSpace(item.Player.Name),
				Rating:   rating,
				TeamName: strings.TrimSpace(teamBlock.Team.Name),
			})
		}
		if idx == 0 {
			out.Home = players
		} else {
			out.Away = append(out.Away, players...)
		}
	}
	return out, nil
}

// InjuriesByFixture returns every reported absence for one fixture.
func (c *Client) InjuriesByFixture(ctx context.Context, fixtureID int64) (roster.FixtureInjuries, error) {
	var envelope injuriesEnvelope
	if err := c.doJSON(ctx, "/injuries", map[string]string{"fixture": strconv.FormatInt(fixtureID, 10)}, &envelope); err != nil {
		return roster.FixtureInjuries{}, fmt.Errorf("fetch injuries fixture=%d: %w", fixtureID, err)
	}
	if err := envelopeError(envelope.Errors); err != nil {
		return roster.FixtureInjuries{}, fmt.Errorf("fetch injuries fixture=%d: %w", fixtureID, err)
	}

	out := roster.FixtureInjuries{FixtureID: fixtureID}
	for _, item := range envelope.Response {
		out.Items = append(out.Items, roster.Injury{
			PlayerID:   item.Player.ID,
			PlayerName: strings.TrimSpace(item.Player.Name),
			TeamName:   strings.TrimSpace(item.Team.Name),
			Reason:     strings.TrimSpace(item.Player.Reason),
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "provider circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: provider temporarily unavailable", errTransient)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errTransient, err)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errTransient, readErr)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: provider status=%d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
	}
	return raw, nil
}

// envelopeError inspects the embedded errors field: the provider reports
// quota exhaustion inside a 200 payload rather than via transport status.
func envelopeError(errs any) error {
	switch typed := errs.(type) {
	case nil:
		return nil
	case []any:
		if len(typed) == 0 {
			return nil
		}
		return fmt.Errorf("provider errors: %v", typed)
	case map[string]any:
		if len(typed) == 0 {
			return nil
		}
		for _, key := range []string{"rateLimit", "ratelimit", "requests"} {
			if value, ok := typed[key]; ok {
				return fmt.Errorf("%w: %v", ErrRateLimited, value)
			}
		}
		return fmt.Errorf("provider errors: %v", typed)
	default:
		return nil
	}
}

func mapFixture(item fixtureItem) fixture.Fixture {
	return fixture.Fixture{
		ID: item.Fixture.ID,
		League: fixture.League{
			ID:      item.League.ID,
			Name:    strings.TrimSpace(item.League.Name),
			Country: strings.TrimSpace(item.League.Country),
		},
		Status:    fixture.NormalizeStatus(item.Fixture.Status.Short),
		HomeTeam:  strings.TrimSpace(item.Teams.Home.Name),
		AwayTeam:  strings.TrimSpace(item.Teams.Away.Name),
		KickoffAt: strings.TrimSpace(item.Fixture.Date),
		HomeScore: item.Goals.Home,
		AwayScore: item.Goals.Away,
	}
}

func mapPrediction(fixtureID int64, item predictionItem) (prediction.Payload, error) {
	homePercent, err := prediction.ParsePercent(item.Predictions.Percent.Home)
	if err != nil {
		return prediction.Payload{}, err
	}
	drawPercent, err := prediction.ParsePercent(item.Predictions.Percent.Draw)
	if err != nil {
		return prediction.Payload{}, err
	}
	awayPercent, err := prediction.ParsePercent(item.Predictions.Percent.Away)
	if err != nil {
		return prediction.Payload{}, err
	}

	payload := prediction.Payload{
		FixtureID:   fixtureID,
		HomePercent: homePercent,
		DrawPercent: drawPercent,
		AwayPercent: awayPercent,
		WinnerName:  strings.TrimSpace(item.Predictions.Winner.Name),
		Comment:     strings.TrimSpace(item.Predictions.Winner.Comment),
		Advice:      strings.TrimSpace(item.Predictions.Advice),
		Home:        mapTeamAggregates(item.Teams.Home),
		Away:        mapTeamAggregates(item.Teams.Away),
	}
	return payload, nil
}

func mapTeamAggregates(team predictionTeam) prediction.TeamAggregates {
	return prediction.TeamAggregates{
		Name:         strings.TrimSpace(team.Name),
		Wins:         team.League.Fixtures.Wins.Total,
		Losses:       team.League.Fixtures.Loses.Total,
		GoalsFor:     team.League.Goals.For.Total.Total,
		GoalsAgainst: team.League.Goals.Against.Total.Total,
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
