package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/app/model"
)

const testDelay = 60 * time.Millisecond

// fakeSearch records dispatched queries and answers with one product per
// query.
type fakeSearch struct {
	mu      sync.Mutex
	queries []string
	err     error
	block   chan struct{}
}

func (f *fakeSearch) fn(_ context.Context, query string) ([]model.Product, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []model.Product{{ID: "UHJvZHVjdDox", Name: query}}, nil
}

func (f *fakeSearch) dispatched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCoordinator_BurstDispatchesOnlyLastQuery(t *testing.T) {
	remote := &fakeSearch{}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	c.SetQuery("a")
	time.Sleep(20 * time.Millisecond)
	c.SetQuery("ap")
	time.Sleep(20 * time.Millisecond)
	c.SetQuery("app")

	waitFor(t, func() bool { return len(remote.dispatched()) == 1 })
	assert.Equal(t, []string{"app"}, remote.dispatched())

	waitFor(t, func() bool { return !c.State().Loading })
	state := c.State()
	assert.Equal(t, "app", state.DebouncedQuery)
	require.Len(t, state.Results, 1)
	assert.Equal(t, "app", state.Results[0].Name)
	assert.True(t, state.HasSearched)
}

func TestCoordinator_SingleQueryAfterQuietPeriod(t *testing.T) {
	remote := &fakeSearch{}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	c.SetQuery("a")
	time.Sleep(4 * testDelay)

	assert.Equal(t, []string{"a"}, remote.dispatched())
}

func TestCoordinator_EmptyQueryNeverDispatches(t *testing.T) {
	remote := &fakeSearch{}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	c.SetQuery("")
	c.SetQuery("   ")
	time.Sleep(4 * testDelay)

	assert.Empty(t, remote.dispatched())
	state := c.State()
	assert.False(t, state.HasSearched)
	assert.Empty(t, state.Results)
}

func TestCoordinator_ClearedBeforeQuietPeriodSkipsCall(t *testing.T) {
	remote := &fakeSearch{}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	c.SetQuery("a")
	time.Sleep(20 * time.Millisecond)
	c.SetQuery("")
	time.Sleep(4 * testDelay)

	assert.Empty(t, remote.dispatched())
	assert.False(t, c.State().HasSearched)
}

func TestCoordinator_HasSearchedSurvivesClearing(t *testing.T) {
	remote := &fakeSearch{}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	c.SetQuery("a")
	waitFor(t, func() bool { return len(remote.dispatched()) == 1 })
	waitFor(t, func() bool { return !c.State().Loading })

	c.SetQuery("")
	waitFor(t, func() bool { return c.State().DebouncedQuery == "" })

	state := c.State()
	assert.True(t, state.HasSearched)
	assert.Empty(t, state.Results)
}

func TestCoordinator_ErrorIsExposed(t *testing.T) {
	remote := &fakeSearch{err: errors.New("upstream unavailable")}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	c.SetQuery("a")
	waitFor(t, func() bool { return c.State().Error != "" })

	state := c.State()
	assert.Equal(t, "upstream unavailable", state.Error)
	assert.Empty(t, state.Results)
	assert.False(t, state.Loading)
}

func TestCoordinator_StaleResponseDropped(t *testing.T) {
	block := make(chan struct{})
	remote := &fakeSearch{block: block}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	// First query gets stuck in flight
	c.SetQuery("old")
	time.Sleep(2 * testDelay)

	// Second query supersedes it while the first is still blocked
	c.SetQuery("new")
	time.Sleep(2 * testDelay)

	close(block)
	waitFor(t, func() bool { return len(remote.dispatched()) == 2 })
	waitFor(t, func() bool { return !c.State().Loading })

	state := c.State()
	require.Len(t, state.Results, 1)
	assert.Equal(t, "new", state.Results[0].Name)
}

func TestCoordinator_ClearWhileInFlightDropsResponse(t *testing.T) {
	block := make(chan struct{})
	remote := &fakeSearch{block: block}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	// Query gets stuck in flight
	c.SetQuery("app")
	time.Sleep(2 * testDelay)

	// Cleared while the call is still blocked
	c.SetQuery("")
	waitFor(t, func() bool { return c.State().DebouncedQuery == "" })

	close(block)
	waitFor(t, func() bool { return len(remote.dispatched()) == 1 })
	time.Sleep(2 * testDelay)

	state := c.State()
	assert.Empty(t, state.Results)
	assert.Equal(t, "", state.DebouncedQuery)
	assert.False(t, state.Loading)
}

func TestCoordinator_NotifiesOnChanges(t *testing.T) {
	remote := &fakeSearch{}
	c := NewCoordinator(testDelay, remote.fn)
	defer c.Stop()

	var mu sync.Mutex
	var states []State
	c.OnChange(func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	c.SetQuery("a")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) >= 3 && !states[len(states)-1].Loading
	})

	mu.Lock()
	defer mu.Unlock()
	// raw update, loading start, completion
	assert.Equal(t, "a", states[0].Query)
	assert.True(t, states[1].Loading)
	last := states[len(states)-1]
	assert.False(t, last.Loading)
	require.Len(t, last.Results, 1)
}
