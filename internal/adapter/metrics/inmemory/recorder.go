package inmemory

import "sync"

type Snapshot struct {
	TurnTotal    uint64            `json:"turn_total"`
	TurnFallback uint64            `json:"turn_fallback"`
	TurnConflict uint64            `json:"turn_conflict"`
	TurnFailure  uint64            `json:"turn_failure"`
	ByResult     map[string]uint64 `json:"by_result"`
}

type Recorder struct {
	mu       sync.Mutex
	total    uint64
	fallback uint64
	conflict uint64
	failure  uint64
	byResult map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult: map[string]uint64{},
	}
}

func (r *Recorder) RecordTurn(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.byResult[result]++
}

func (r *Recorder) RecordFallback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TurnTotal:    r.total,
		TurnFallback: r.fallback,
		TurnConflict: r.conflict,
		TurnFailure:  r.failure,
		ByResult:     make(map[string]uint64, len(r.byResult)),
	}
	for k, v := range r.byResult {
		out.ByResult[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
