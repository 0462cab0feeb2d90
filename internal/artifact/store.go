package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sonic "github.com/bytedance/sonic"
)

// Entity names partition the artifact directory. One artifact exists per
// (entity, key, calendar day); freshness makes the day implicit.
const (
	EntityFixtures    = "fixtures"
	EntityStandings   = "standings"
	EntityPredictions = "predictions"
	EntityPlayers     = "players"
	EntityInjuries    = "injuries"
	EntityResults     = "results"
)

type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Store persists fetched payloads as JSON artifacts and answers the
// freshness question for them. The fetch timestamp is stored inside the
// artifact rather than taken from file metadata, so freshness survives
// copies and is testable with an injected clock.
type Store struct {
	dir string
	now func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// WithClock overrides the store's clock. Tests only.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

// IsFresh reports whether a valid artifact fetched during the current
// local calendar day exists for (entity, key). Every failure mode (absent
// file, empty file, parse error) means "not fresh" so the caller falls
// through to a refetch.
func (s *Store) IsFresh(entity, key string) bool {
	raw, err := os.ReadFile(s.path(entity, key))
	if err != nil || len(raw) == 0 {
		return false
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return false
	}
	if len(env.Payload) == 0 {
		return false
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	fetched := env.FetchedAt.In(now.Location())
	return !fetched.Before(dayStart) && fetched.Before(dayStart.Add(24*time.Hour))
}

// Load decodes the artifact payload into target.
func (s *Store) Load(entity, key string, target any) error {
	raw, err := os.ReadFile(s.path(entity, key))
	if err != nil {
		return fmt.Errorf("read artifact %s/%s: %w", entity, key, err)
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode artifact %s/%s: %w", entity, key, err)
	}
	if err := sonic.Unmarshal(env.Payload, target); err != nil {
		return fmt.Errorf("decode artifact payload %s/%s: %w", entity, key, err)
	}
	return nil
}

// Save writes the payload with the current fetch timestamp, overwriting
// any previous artifact for the key. Empty payloads are persisted too:
// caching a negative response is what prevents hot-looping on it.
func (s *Store) Save(entity, key string, payload any) error {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode artifact payload %s/%s: %w", entity, key, err)
	}

	env := envelope{
		FetchedAt: s.now(),
		Payload:   raw,
	}
	out, err := sonic.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact %s/%s: %w", entity, key, err)
	}

	path := s.path(entity, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir %s: %w", entity, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write artifact %s/%s: %w", entity, key, err)
	}
	return nil
}

func (s *Store) path(entity, key string) string {
	return filepath.Join(s.dir, entity, key+".json")
}
