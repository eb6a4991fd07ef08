package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shotwall/internal/models"
	"shotwall/internal/repository"
)

// stubGateway is a scripted Gateway with per-method call counters. Tests
// override the function fields they care about; everything else succeeds.
type stubGateway struct {
	mu sync.Mutex

	fetchPageFn         func(filter FeedFilter, limit, offset int) ([]models.Shot, error)
	fetchShotFn         func(shotID int64) (*models.Shot, error)
	addFn               func(boardID, shotID int64) error
	removeAllFn         func(shotID int64) error
	removeMarkFn        func(userID string, shotID int64) error
	createBoardFn       func(ownerID, name string) (*models.Board, error)
	deleteMembershipsFn func(boardID int64) error
	deleteBoardFn       func(boardID int64) error

	fetchPageCalls int
	fetchShotCalls int
	addCalls       int
}

func (g *stubGateway) FetchPage(_ context.Context, filter FeedFilter, limit, offset int) ([]models.Shot, error) {
	g.mu.Lock()
	g.fetchPageCalls++
	fn := g.fetchPageFn
	g.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(filter, limit, offset)
}

func (g *stubGateway) FetchShot(_ context.Context, shotID int64) (*models.Shot, error) {
	g.mu.Lock()
	g.fetchShotCalls++
	fn := g.fetchShotFn
	g.mu.Unlock()

	if fn == nil {
		return nil, fmt.Errorf("shot %d: %w", shotID, repository.ErrNotFound)
	}
	return fn(shotID)
}

func (g *stubGateway) AddToBoard(_ context.Context, boardID, shotID int64) error {
	g.mu.Lock()
	g.addCalls++
	fn := g.addFn
	g.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(boardID, shotID)
}

func (g *stubGateway) RemoveFromAllBoards(_ context.Context, shotID int64) error {
	if g.removeAllFn == nil {
		return nil
	}
	return g.removeAllFn(shotID)
}

func (g *stubGateway) RemoveSavedMark(_ context.Context, userID string, shotID int64) error {
	if g.removeMarkFn == nil {
		return nil
	}
	return g.removeMarkFn(userID, shotID)
}

func (g *stubGateway) CreateBoard(_ context.Context, ownerID, name string) (*models.Board, error) {
	if g.createBoardFn == nil {
		return &models.Board{BoardID: 1, OwnerID: ownerID, Name: name}, nil
	}
	return g.createBoardFn(ownerID, name)
}

func (g *stubGateway) DeleteBoardMemberships(_ context.Context, boardID int64) error {
	if g.deleteMembershipsFn == nil {
		return nil
	}
	return g.deleteMembershipsFn(boardID)
}

func (g *stubGateway) DeleteBoard(_ context.Context, boardID int64) error {
	if g.deleteBoardFn == nil {
		return nil
	}
	return g.deleteBoardFn(boardID)
}

func (g *stubGateway) pageCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchPageCalls
}

func (g *stubGateway) shotCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchShotCalls
}

// makeShots builds n shots with ids starting at first, newest first the way
// the backend orders them.
func makeShots(first int64, n int) []models.Shot {
	shots := make([]models.Shot, 0, n)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		shots = append(shots, models.Shot{
			ShotID:    first + int64(i),
			OwnerID:   "owner-1",
			Title:     fmt.Sprintf("shot %d", first+int64(i)),
			Approval:  models.StatusApproved,
			Active:    true,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return shots
}

// pagedBacking simulates the remote store: a fixed ordered slice served by
// limit/offset.
func pagedBacking(all []models.Shot) func(FeedFilter, int, int) ([]models.Shot, error) {
	return func(_ FeedFilter, limit, offset int) ([]models.Shot, error) {
		if offset >= len(all) {
			return nil, nil
		}
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		page := make([]models.Shot, end-offset)
		copy(page, all[offset:end])
		return page, nil
	}
}

// collectNotices returns a Notifier that appends into a shared slice.
func collectNotices(mu *sync.Mutex, notices *[]Notice) Notifier {
	return func(n Notice) {
		mu.Lock()
		*notices = append(*notices, n)
		mu.Unlock()
	}
}
