package turn

import "sync"

// Guard is the per-player re-entrancy flag: exactly one turn advance may be
// in flight. A second request while one is pending indicates a stale UI and
// is dropped, not queued.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewGuard() *Guard {
	return &Guard{inFlight: map[string]bool{}}
}

func (g *Guard) TryAcquire(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[playerID] {
		return false
	}
	g.inFlight[playerID] = true
	return true
}

func (g *Guard) Release(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, playerID)
}

// ForceUnlock is the operator-level escape hatch. The deferred release in
// Execute should make it unnecessary; it exists as a last-resort safety
// valve for debug tooling.
func (g *Guard) ForceUnlock(playerID string) {
	g.Release(playerID)
}
