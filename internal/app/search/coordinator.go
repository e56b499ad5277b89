package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/pkg/logger"
)

// SearchFunc performs the underlying remote search for a query.
type SearchFunc func(ctx context.Context, query string) ([]model.Product, error)

// State is a point-in-time snapshot of the search pipeline.
type State struct {
	Query          string          `json:"query"`
	DebouncedQuery string          `json:"debouncedQuery"`
	Results        []model.Product `json:"results"`
	Loading        bool            `json:"loading"`
	Error          string          `json:"error,omitempty"`
	HasSearched    bool            `json:"hasSearched"`
}

// Coordinator turns rapid query updates into a rate-limited search
// trigger. Only the last query of a burst is dispatched, after the quiet
// period; an empty debounced query never issues a call. Responses for
// superseded queries are dropped.
type Coordinator struct {
	mu       sync.Mutex
	search   SearchFunc
	debounce *Debouncer

	query          string
	debouncedQuery string
	results        []model.Product
	loading        bool
	errMsg         string
	hasSearched    bool
	seq            uint64

	onChange func(State)
}

func NewCoordinator(delay time.Duration, search SearchFunc) *Coordinator {
	c := &Coordinator{search: search}
	c.debounce = NewDebouncer(delay, c.flush)
	return c
}

// OnChange registers the listener invoked with a snapshot after every
// state change.
func (c *Coordinator) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// SetQuery records the raw query immediately and restarts the debounce
// window.
func (c *Coordinator) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()

	c.debounce.Call()
}

// Stop cancels any pending dispatch.
func (c *Coordinator) Stop() {
	c.debounce.Stop()
}

// State returns a snapshot of the pipeline.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// flush runs after the quiet period: it promotes the raw query to the
// debounced query and dispatches the search unless the query is blank.
func (c *Coordinator) flush() {
	c.mu.Lock()
	c.debouncedQuery = c.query
	query := strings.TrimSpace(c.debouncedQuery)

	if query == "" {
		// No call for the empty query; hasSearched keeps its value.
		// Bumping seq invalidates any response still in flight.
		c.seq++
		c.results = nil
		c.loading = false
		c.errMsg = ""
		notify := c.notifyLocked()
		c.mu.Unlock()
		notify()
		return
	}

	c.hasSearched = true
	c.loading = true
	c.errMsg = ""
	c.seq++
	seq := c.seq
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()

	go c.dispatch(seq, query)
}

func (c *Coordinator) dispatch(seq uint64, query string) {
	results, err := c.search(context.Background(), query)

	c.mu.Lock()
	if seq != c.seq {
		// A later query was dispatched while this one was in flight.
		c.mu.Unlock()
		logger.Debug("Dropping stale search response", map[string]interface{}{
			"query": query,
		})
		return
	}

	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		c.results = nil
		logger.Warn("Search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
	} else {
		c.results = results
	}
	notify := c.notifyLocked()
	c.mu.Unlock()
	notify()
}

func (c *Coordinator) stateLocked() State {
	results := make([]model.Product, len(c.results))
	copy(results, c.results)
	return State{
		Query:          c.query,
		DebouncedQuery: c.debouncedQuery,
		Results:        results,
		Loading:        c.loading,
		Error:          c.errMsg,
		HasSearched:    c.hasSearched,
	}
}

func (c *Coordinator) notifyLocked() func() {
	if c.onChange == nil {
		return func() {}
	}
	state := c.stateLocked()
	fn := c.onChange
	return func() { fn(state) }
}
