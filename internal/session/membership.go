package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"shotwall/internal/models"
	"shotwall/internal/repository"
)

// Signal is the transient outcome of a membership mutation, shown briefly
// to the user.
type Signal int

const (
	// SignalNone is the zero value, returned alongside an error.
	SignalNone Signal = iota
	SignalAdded
	SignalAlreadyPresent
)

// MembershipManager assigns shots to boards and keeps per-board counters
// consistent with the backing store under optimistic local updates. Rapid
// repeated drops of the same shot are not coalesced; the conflict handling
// of Assign is what prevents double counting.
type MembershipManager struct {
	gw     Gateway
	notify Notifier

	mu     sync.Mutex
	counts map[int64]int
}

func NewMembershipManager(gw Gateway, notify Notifier) *MembershipManager {
	return &MembershipManager{
		gw:     gw,
		notify: notify,
		counts: make(map[int64]int),
	}
}

// Assign files a shot onto a board. An existing pair is an expected
// outcome, not a failure: the counter stays untouched and the caller gets
// SignalAlreadyPresent.
func (m *MembershipManager) Assign(ctx context.Context, boardID, shotID int64) (Signal, error) {
	err := m.gw.AddToBoard(ctx, boardID, shotID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			m.notify.info("already on this board")
			return SignalAlreadyPresent, nil
		}
		m.notify.error("could not add the shot to the board")
		return SignalNone, fmt.Errorf("assigning shot %d to board %d: %w", shotID, boardID, err)
	}

	m.mu.Lock()
	m.counts[boardID]++
	m.mu.Unlock()

	m.notify.info("added to board")
	return SignalAdded, nil
}

// UnassignAll removes every membership of a shot and then the user's saved
// mark. The two steps are best effort, not transactional: a failed mark
// removal is logged and the membership removal stands.
func (m *MembershipManager) UnassignAll(ctx context.Context, userID string, shotID int64) error {
	if err := m.gw.RemoveFromAllBoards(ctx, shotID); err != nil {
		m.notify.error("could not unsave the shot")
		return fmt.Errorf("removing shot %d from boards: %w", shotID, err)
	}

	if err := m.gw.RemoveSavedMark(ctx, userID, shotID); err != nil {
		log.Printf("unsave of shot %d: memberships removed but saved mark removal failed: %v", shotID, err)
	}

	return nil
}

// DeleteBoard removes the board's memberships and then the board row. If
// the second step fails the board is left orphaned with zero members, a
// degraded but safe state that is logged and not retried.
func (m *MembershipManager) DeleteBoard(ctx context.Context, boardID int64) error {
	if err := m.gw.DeleteBoardMemberships(ctx, boardID); err != nil {
		m.notify.error("could not delete the board")
		return fmt.Errorf("clearing board %d: %w", boardID, err)
	}

	m.mu.Lock()
	delete(m.counts, boardID)
	m.mu.Unlock()

	if err := m.gw.DeleteBoard(ctx, boardID); err != nil {
		log.Printf("board %d emptied but not deleted: %v", boardID, err)
		return nil
	}

	return nil
}

// CreateBoard inserts a new board for the owner. Names are not required to
// be unique per owner.
func (m *MembershipManager) CreateBoard(ctx context.Context, ownerID, name string) (*models.Board, error) {
	board, err := m.gw.CreateBoard(ctx, ownerID, name)
	if err != nil {
		m.notify.error("could not create the board")
		return nil, fmt.Errorf("creating board %q: %w", name, err)
	}

	m.mu.Lock()
	m.counts[board.BoardID] = 0
	m.mu.Unlock()

	return board, nil
}

// Count returns the local optimistic counter for a board.
func (m *MembershipManager) Count(boardID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[boardID]
}

// Prime seeds a board's counter from a server-provided value.
func (m *MembershipManager) Prime(boardID int64, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[boardID] = count
}
