package itemfetch

import (
	"context"
	"sync"
	"time"
)

// State is the consumer-visible outcome of a load operation. It is mutated
// only by Loader.Load and read by callers after completion.
type State struct {
	Loading     bool
	Err         string
	Data        []string
	LastUpdated time.Time
}

// Loader runs one-shot load operations against a Client and keeps the
// resulting State. A terminal outcome, success or failure, always clears
// the Loading flag.
type Loader struct {
	client   *Client
	path     string
	minScore float64

	mu    sync.Mutex
	state State
}

// NewLoader creates a Loader that fetches path and derives the display view
// from items scoring strictly above minScore.
func NewLoader(client *Client, path string, minScore float64) *Loader {
	return &Loader{client: client, path: path, minScore: minScore}
}

// Load fetches, derives, and records the outcome. It returns the resulting
// state; the same value is available later via State.
func (l *Loader) Load(ctx context.Context, opts RequestOptions) State {
	l.mu.Lock()
	l.state.Loading = true
	l.state.Err = ""
	l.mu.Unlock()

	items, err := l.client.FetchItems(ctx, l.path, opts)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Loading = false
	if err != nil {
		l.state.Err = err.Error()
		return l.snapshotLocked()
	}
	l.state.Data = DisplayNames(FilterActive(items, l.minScore))
	l.state.LastUpdated = time.Now()
	return l.snapshotLocked()
}

// State returns a copy of the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// snapshotLocked must be called with l.mu held.
func (l *Loader) snapshotLocked() State {
	st := l.state
	st.Data = append([]string(nil), l.state.Data...)
	return st
}
