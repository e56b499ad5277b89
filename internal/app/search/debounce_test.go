package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(60*time.Millisecond, func() {
		calls.Add(1)
	})

	d.Call()
	time.Sleep(20 * time.Millisecond)
	d.Call()
	time.Sleep(20 * time.Millisecond)
	d.Call()

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_FiresAfterQuietPeriod(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() {
		calls.Add(1)
	})

	d.Call()
	time.Sleep(100 * time.Millisecond)
	d.Call()
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(2), calls.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() {
		calls.Add(1)
	})

	d.Call()
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
