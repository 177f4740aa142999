package settings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func countingFetch(calls *atomic.Int64, rows []Row, err error) FetchFunc {
	return func(ctx context.Context) ([]Row, error) {
		calls.Add(1)
		return rows, err
	}
}

func TestLoadAllDedupsConcurrentCallers(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]Row, error) {
		calls.Add(1)
		<-release
		return []Row{{Key: "settings_general", Value: strp(`{"site_name":"Dedup"}`)}}, nil
	}
	svc := NewService(fetch)

	const k = 16
	var wg sync.WaitGroup
	results := make([]Bundle, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.LoadAll(context.Background())
		}(i)
	}
	// Give the goroutines time to pile onto the shared in-flight slot.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "K concurrent callers collapse into one query")
	for i := 1; i < k; i++ {
		assert.Equal(t, results[0], results[i])
	}
	assert.Equal(t, "Dedup", results[0].General.SiteName)
}

func TestLoadAllHonorsSoftTTL(t *testing.T) {
	var calls atomic.Int64
	clock := newFakeClock()
	svc := NewService(
		countingFetch(&calls, nil, nil),
		WithClock(clock.Now),
		WithTTL(5*time.Minute),
	)

	svc.LoadAll(context.Background())
	require.Equal(t, int64(1), calls.Load())

	clock.Advance(4 * time.Minute)
	svc.LoadAll(context.Background())
	assert.Equal(t, int64(1), calls.Load(), "call inside TTL performs zero queries")

	clock.Advance(2 * time.Minute)
	svc.LoadAll(context.Background())
	assert.Equal(t, int64(2), calls.Load(), "call past TTL performs exactly one query")
}

func TestRefreshOverridesTTL(t *testing.T) {
	var calls atomic.Int64
	clock := newFakeClock()
	svc := NewService(countingFetch(&calls, nil, nil), WithClock(clock.Now))

	svc.LoadAll(context.Background())
	require.Equal(t, int64(1), calls.Load())

	svc.Refresh(context.Background())
	assert.Equal(t, int64(2), calls.Load(), "refresh fetches even inside the TTL window")
}

func TestLoadFailureServesDefaultsWithoutCaching(t *testing.T) {
	var calls atomic.Int64
	svc := NewService(countingFetch(&calls, nil, errors.New("store down")))

	b := svc.LoadAll(context.Background())
	assert.Equal(t, Defaults(), b)
	assert.False(t, svc.Loaded(), "failures are not cached")

	svc.LoadAll(context.Background())
	assert.Equal(t, int64(2), calls.Load(), "next call retries against the network")
}

func TestBundleAccessorsReportLoadingState(t *testing.T) {
	var calls atomic.Int64
	svc := NewService(countingFetch(&calls, []Row{
		{Key: "settings_social", Value: strp(`{"instagram":"https://instagram.com/meridianmall"}`)},
	}, nil))

	_, ok := svc.Bundle()
	assert.False(t, ok)
	_, ok = svc.Social()
	assert.False(t, ok)

	svc.LoadAll(context.Background())

	social, ok := svc.Social()
	require.True(t, ok)
	assert.Equal(t, "https://instagram.com/meridianmall", social.Instagram)
	scripts, ok := svc.CustomScripts()
	require.True(t, ok)
	assert.Empty(t, scripts.HeadEnd)
}

func TestSubscribersRunOncePerReplacementInOrder(t *testing.T) {
	var calls atomic.Int64
	svc := NewService(countingFetch(&calls, nil, nil))

	var mu sync.Mutex
	var order []string
	unsubA := svc.Subscribe(func(Bundle) {
		mu.Lock()
		order = append(order, "a")
		mu.Unlock()
	})
	defer unsubA()
	unsubB := svc.Subscribe(func(Bundle) {
		mu.Lock()
		order = append(order, "b")
		mu.Unlock()
	})

	svc.LoadAll(context.Background())
	assert.Equal(t, []string{"a", "b"}, order)

	// TTL hit: no replacement, no notification.
	svc.LoadAll(context.Background())
	assert.Equal(t, []string{"a", "b"}, order)

	unsubB()
	svc.Refresh(context.Background())
	assert.Equal(t, []string{"a", "b", "a"}, order)
}
