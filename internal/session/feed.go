package session

import (
	"context"
	"sync"

	"shotwall/internal/models"
)

// DefaultPageSize is the number of shots fetched per feed page.
const DefaultPageSize = 30

// FeedState is the loader's position in its lifecycle:
// Idle → Loading → Ready ⇄ LoadingMore → Exhausted.
type FeedState int

const (
	StateIdle FeedState = iota
	StateLoading
	StateReady
	StateLoadingMore
	StateExhausted
)

// FeedLoader produces a lazy, restartable, deduplicated sequence of shot
// pages for one filter epoch. Page triggers may fire concurrently (mount,
// retry, scroll sentinel); the loader collapses them to a single in-flight
// request and discards responses that outlive their epoch.
type FeedLoader struct {
	gw       Gateway
	pageSize int
	notify   Notifier

	mu      sync.Mutex
	epoch   uint64
	state   FeedState
	filter  FeedFilter
	buffer  []models.Shot
	seen    *SeenSet
	offset  int
	hasMore bool
}

func NewFeedLoader(gw Gateway, pageSize int, notify Notifier) *FeedLoader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &FeedLoader{
		gw:       gw,
		pageSize: pageSize,
		notify:   notify,
		state:    StateIdle,
		seen:     NewSeenSet(),
	}
}

// LoadFirstPage starts a new filter epoch: the buffer, seen set and cursor
// are reset before the first page is applied. A response belonging to an
// older epoch is discarded without touching state.
func (l *FeedLoader) LoadFirstPage(ctx context.Context, filter FeedFilter) error {
	l.mu.Lock()
	l.epoch++
	epoch := l.epoch
	l.filter = filter
	l.state = StateLoading
	l.buffer = nil
	l.seen.Reset()
	l.offset = 0
	l.hasMore = false
	l.mu.Unlock()

	shots, err := l.gw.FetchPage(ctx, filter, l.pageSize, 0)

	l.mu.Lock()
	defer l.mu.Unlock()

	if epoch != l.epoch {
		// A newer filter took over while this request was in flight.
		return nil
	}

	if err != nil {
		l.state = StateExhausted
		l.notify.error("could not load the feed")
		return err
	}

	l.applyLocked(shots)
	return nil
}

// LoadNextPage fetches the next offset range. It is a no-op unless a first
// page has completed and no other request is in flight: concurrent triggers
// collapse on the Ready check.
func (l *FeedLoader) LoadNextPage(ctx context.Context) error {
	l.mu.Lock()
	if l.state != StateReady {
		l.mu.Unlock()
		return nil
	}
	l.state = StateLoadingMore
	epoch := l.epoch
	filter := l.filter
	offset := l.offset
	l.mu.Unlock()

	shots, err := l.gw.FetchPage(ctx, filter, l.pageSize, offset)

	l.mu.Lock()
	defer l.mu.Unlock()

	if epoch != l.epoch {
		return nil
	}

	if err != nil {
		// Stop auto-triggering but keep what is already on screen.
		l.state = StateExhausted
		l.hasMore = false
		l.notify.error("could not load more shots")
		return err
	}

	l.applyLocked(shots)
	return nil
}

// Refresh re-runs the first page under the current filter. It is the target
// of the feed-changed broadcast and does nothing before the first load.
func (l *FeedLoader) Refresh(ctx context.Context) error {
	l.mu.Lock()
	if l.state == StateIdle {
		l.mu.Unlock()
		return nil
	}
	filter := l.filter
	l.mu.Unlock()

	return l.LoadFirstPage(ctx, filter)
}

// applyLocked appends the deduplicated page in response order and advances
// the cursor. A short page means the data is exhausted.
func (l *FeedLoader) applyLocked(shots []models.Shot) {
	for _, shot := range shots {
		if l.seen.Add(shot.ShotID) {
			l.buffer = append(l.buffer, shot)
		}
	}

	l.offset += len(shots)
	l.hasMore = len(shots) == l.pageSize

	if l.hasMore {
		l.state = StateReady
	} else {
		l.state = StateExhausted
	}
}

// Buffer returns a copy of the loaded shots in backend order.
func (l *FeedLoader) Buffer() []models.Shot {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Shot, len(l.buffer))
	copy(out, l.buffer)
	return out
}

// Find returns the buffered snapshot of a shot, if loaded. The panel uses
// it to open synchronously without a network trip.
func (l *FeedLoader) Find(shotID int64) (*models.Shot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.buffer {
		if l.buffer[i].ShotID == shotID {
			shot := l.buffer[i]
			return &shot, true
		}
	}
	return nil, false
}

func (l *FeedLoader) State() FeedState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *FeedLoader) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

func (l *FeedLoader) Filter() FeedFilter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}
