package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunsJobImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	s.Start()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.AddJob("a", time.Hour, func(ctx context.Context) error { order = append(order, "a"); return nil })
	s.AddJob("b", time.Hour, func(ctx context.Context) error { order = append(order, "b"); return assert.AnError })

	s.RunOnce(t.Context())

	assert.Equal(t, []string{"a", "b"}, order)
}
