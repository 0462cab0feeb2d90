package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution. The provider client and the standings cache use it so
// identical in-flight requests cost a single quota unit.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn unless a call for key is already in flight, in which case it
// waits for that call and shares its result. The bool reports whether the
// result was shared.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}
	if existing, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-existing.done
		return existing.val, existing.err, true
	}

	result := &flightResult{done: make(chan struct{})}
	g.inflight[key] = result
	g.mu.Unlock()

	result.val, result.err = fn()
	close(result.done)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return result.val, result.err, false
}
