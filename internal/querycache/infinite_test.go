package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetcher serves a fixed sequence of pages keyed by cursor and
// counts every fetch.
type pagedFetcher struct {
	mu    sync.Mutex
	pages map[string]Page[string]
	calls map[string]int
}

func newPagedFetcher(pages ...Page[string]) *pagedFetcher {
	f := &pagedFetcher{
		pages: map[string]Page[string]{},
		calls: map[string]int{},
	}
	cursor := ""
	for _, p := range pages {
		f.pages[cursor] = p
		cursor = p.NextCursor
	}
	return f
}

func (f *pagedFetcher) Fetch(ctx context.Context, cursor string) (Page[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[cursor]++
	p, ok := f.pages[cursor]
	if !ok {
		return Page[string]{}, fmt.Errorf("no page at cursor %q", cursor)
	}
	return p, nil
}

func (f *pagedFetcher) Calls(cursor string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[cursor]
}

func (f *pagedFetcher) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func TestGetInfiniteFetchesFirstPage(t *testing.T) {
	c := New()
	f := newPagedFetcher(
		Page[string]{Items: []string{"a1", "a2"}, NextCursor: "p2"},
	)
	key := NewKey("articles", "tech")

	res, err := GetInfinite(context.Background(), c, key, "", f.Fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, res.Items())
	assert.True(t, res.HasNext)
	assert.Equal(t, 1, f.Calls(""))

	// Second read is served from cache.
	res, err = GetInfinite(context.Background(), c, key, "", f.Fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, res.Items())
	assert.Equal(t, 1, f.Calls(""))
}

func TestFetchNextAppendsInOrder(t *testing.T) {
	c := New()
	f := newPagedFetcher(
		Page[string]{Items: []string{"a1", "a2"}, NextCursor: "p2"},
		Page[string]{Items: []string{"a3"}, NextCursor: "p3"},
		Page[string]{Items: []string{"a4", "a5"}, NextCursor: ""},
	)
	key := NewKey("articles", "tech")

	_, err := GetInfinite(context.Background(), c, key, "", f.Fetch)
	require.NoError(t, err)

	res, err := FetchNext(context.Background(), c, key, f.Fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a3"}, res.Items())
	assert.True(t, res.HasNext)

	res, err = FetchNext(context.Background(), c, key, f.Fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4", "a5"}, res.Items(),
		"items must stay in fetch order")
	assert.False(t, res.HasNext)
}

func TestFetchNextNoopWhenExhausted(t *testing.T) {
	c := New()
	f := newPagedFetcher(
		Page[string]{Items: []string{"a1"}, NextCursor: ""},
	)
	key := NewKey("articles", "tech")

	_, err := GetInfinite(context.Background(), c, key, "", f.Fetch)
	require.NoError(t, err)

	res, err := FetchNext(context.Background(), c, key, f.Fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, res.Items())
	assert.Equal(t, 1, f.TotalCalls(), "exhausted query must not fetch")
}

func TestFetchNextNoopBeforeFirstPage(t *testing.T) {
	c := New()
	var calls atomic.Int64
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		calls.Add(1)
		return Page[string]{}, nil
	}

	res, err := FetchNext(context.Background(), c, NewKey("articles", "tech"), fetch)
	require.NoError(t, err)
	assert.Empty(t, res.Pages)
	assert.Equal(t, int64(0), calls.Load())
}

func TestFetchNextNoopWhileInFlight(t *testing.T) {
	c := New()
	var calls atomic.Int64
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		switch calls.Add(1) {
		case 1:
			return Page[string]{Items: []string{"a1"}, NextCursor: "p2"}, nil
		case 2:
			close(started)
			<-release
			return Page[string]{Items: []string{"a2"}, NextCursor: "p3"}, nil
		default:
			return Page[string]{Items: []string{"a3"}, NextCursor: ""}, nil
		}
	}
	key := NewKey("articles", "tech")

	_, err := GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := FetchNext(context.Background(), c, key, fetch)
		assert.NoError(t, err)
	}()

	<-started
	// A second request while the first is still in flight must not start
	// another fetch.
	res, err := FetchNext(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.True(t, res.Fetching)
	assert.Equal(t, []string{"a1"}, res.Items())
	assert.Equal(t, int64(2), calls.Load())

	close(release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight fetch never finished")
	}

	res = PeekInfinite[string](c, key)
	assert.Equal(t, []string{"a1", "a2"}, res.Items())
}

func TestFetchNextFailureKeepsPages(t *testing.T) {
	c := New()
	boom := errors.New("upstream down")
	var fail atomic.Bool
	f := newPagedFetcher(
		Page[string]{Items: []string{"a1"}, NextCursor: "p2"},
		Page[string]{Items: []string{"a2"}, NextCursor: ""},
	)
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		if fail.Load() {
			return Page[string]{}, boom
		}
		return f.Fetch(ctx, cursor)
	}
	key := NewKey("articles", "tech")

	_, err := GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)

	fail.Store(true)
	res, err := FetchNext(context.Background(), c, key, fetch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a1"}, res.Items(), "failed page fetch must keep fetched pages")
	assert.ErrorIs(t, c.LastError(key), boom)

	// Recovery: the next attempt resumes from the same cursor.
	fail.Store(false)
	res, err = FetchNext(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, res.Items())
}

func TestGetInfiniteStaleServesCachedAndRefreshesOnce(t *testing.T) {
	clock := newTestClock()
	c := New(WithClock(clock.Now), WithStaleAfter(5*time.Minute))

	var calls atomic.Int64
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		if calls.Add(1) == 1 {
			return Page[string]{Items: []string{"a1"}, NextCursor: "p2"}, nil
		}
		return Page[string]{Items: []string{"a1-fresh"}, NextCursor: "p2-fresh"}, nil
	}
	key := NewKey("articles", "tech")

	res, err := GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, res.Items())

	clock.Advance(6 * time.Minute)

	// Stale read serves the buffered pages immediately and kicks off one
	// background restart from the first page.
	res, err = GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, res.Items())

	require.Eventually(t, func() bool {
		items := PeekInfinite[string](c, key).Items()
		return len(items) == 1 && items[0] == "a1-fresh"
	}, 5*time.Second, 10*time.Millisecond, "background refresh never landed")

	assert.Equal(t, int64(2), calls.Load(), "stale reads must share one refresh")
}

func TestFetchNextNoopDuringBackgroundRefresh(t *testing.T) {
	clock := newTestClock()
	c := New(WithClock(clock.Now), WithStaleAfter(5*time.Minute))

	var calls atomic.Int64
	var mu sync.Mutex
	var cursors []string
	refreshStarted := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		mu.Lock()
		cursors = append(cursors, cursor)
		mu.Unlock()
		switch calls.Add(1) {
		case 1:
			return Page[string]{Items: []string{"a1"}, NextCursor: "p2"}, nil
		case 2:
			close(refreshStarted)
			<-release
			return Page[string]{Items: []string{"a1-fresh"}, NextCursor: "p2-fresh"}, nil
		default:
			return Page[string]{Items: []string{"a2"}, NextCursor: ""}, nil
		}
	}
	key := NewKey("articles", "tech")

	_, err := GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	res, err := GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, res.Items())

	<-refreshStarted

	// A next-page request while the refresh is in flight must not start
	// a second fetch for the key: its pre-refresh cursor would append a
	// stale page onto the refreshed pages.
	res, err = FetchNext(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, res.Items())
	assert.Equal(t, int64(2), calls.Load(), "at most one in-flight fetch per key")

	close(release)

	// Once the refresh lands, pagination resumes from the refreshed
	// cursor.
	require.Eventually(t, func() bool {
		res, err := FetchNext(context.Background(), c, key, fetch)
		return err == nil && len(res.Items()) == 2
	}, 5*time.Second, 10*time.Millisecond, "pagination never resumed after the refresh")

	assert.Equal(t, []string{"a1-fresh", "a2"}, PeekInfinite[string](c, key).Items())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "", "p2-fresh"}, cursors)
}

func TestGetInfiniteInvalidateRestartsFromFirstPage(t *testing.T) {
	c := New()
	f := newPagedFetcher(
		Page[string]{Items: []string{"a1"}, NextCursor: "p2"},
		Page[string]{Items: []string{"a2"}, NextCursor: ""},
	)
	key := NewKey("articles", "tech")

	_, err := GetInfinite(context.Background(), c, key, "", f.Fetch)
	require.NoError(t, err)
	_, err = FetchNext(context.Background(), c, key, f.Fetch)
	require.NoError(t, err)

	c.Invalidate(key)

	res, err := GetInfinite(context.Background(), c, key, "", f.Fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, res.Items(), "invalidation restarts pagination")
	assert.True(t, res.HasNext)
	assert.Equal(t, 2, f.Calls(""))
}

func TestPeekInfiniteNeverFetches(t *testing.T) {
	c := New()
	var calls atomic.Int64
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		calls.Add(1)
		return Page[string]{Items: []string{"a1"}, NextCursor: ""}, nil
	}
	key := NewKey("articles", "tech")

	res := PeekInfinite[string](c, key)
	assert.Empty(t, res.Pages)

	_, err := GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)

	res = PeekInfinite[string](c, key)
	assert.Equal(t, []string{"a1"}, res.Items())
	assert.Equal(t, int64(1), calls.Load())
}

func TestGetInfiniteDisabledKey(t *testing.T) {
	c := New()
	var calls atomic.Int64
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		calls.Add(1)
		return Page[string]{Items: []string{"a1"}, NextCursor: ""}, nil
	}
	key := NewKey("articles", "tech")

	c.SetEnabled(key, false)
	_, err := GetInfinite(context.Background(), c, key, "", fetch)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Equal(t, int64(0), calls.Load())

	c.SetEnabled(key, true)
	res, err := GetInfinite(context.Background(), c, key, "", fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, res.Items())
}
