package session

import (
	"context"

	"shotwall/internal/models"
	"shotwall/internal/repository"
)

// FeedFilter scopes one feed epoch. Changing any field starts a new epoch:
// the loader discards its buffer and reloads from page one.
type FeedFilter struct {
	Scope      repository.FeedScope
	OwnerID    string
	CategoryID int64
	BoardID    int64
	Search     string
}

// Gateway is the session components' only access to the backing store. All
// rows crossing this boundary are already mapped into typed models; a
// duplicate membership or saved mark surfaces as repository.ErrDuplicate,
// distinguishable from generic failures.
type Gateway interface {
	FetchPage(ctx context.Context, filter FeedFilter, limit, offset int) ([]models.Shot, error)
	FetchShot(ctx context.Context, shotID int64) (*models.Shot, error)

	AddToBoard(ctx context.Context, boardID, shotID int64) error
	RemoveFromAllBoards(ctx context.Context, shotID int64) error
	RemoveSavedMark(ctx context.Context, userID string, shotID int64) error

	CreateBoard(ctx context.Context, ownerID, name string) (*models.Board, error)
	DeleteBoardMemberships(ctx context.Context, boardID int64) error
	DeleteBoard(ctx context.Context, boardID int64) error
}

type repoGateway struct {
	repo *repository.Repository
}

// NewGateway adapts the sqlx repositories to the Gateway contract.
func NewGateway(repo *repository.Repository) Gateway {
	return &repoGateway{repo: repo}
}

func (g *repoGateway) FetchPage(ctx context.Context, filter FeedFilter, limit, offset int) ([]models.Shot, error) {
	return g.repo.Shot.List(ctx, repository.FeedQuery{
		Scope:      filter.Scope,
		OwnerID:    filter.OwnerID,
		CategoryID: filter.CategoryID,
		BoardID:    filter.BoardID,
		Search:     filter.Search,
		Limit:      limit,
		Offset:     offset,
	})
}

func (g *repoGateway) FetchShot(ctx context.Context, shotID int64) (*models.Shot, error) {
	return g.repo.Shot.GetByID(ctx, shotID)
}

func (g *repoGateway) AddToBoard(ctx context.Context, boardID, shotID int64) error {
	return g.repo.Board.AddShot(ctx, boardID, shotID)
}

func (g *repoGateway) RemoveFromAllBoards(ctx context.Context, shotID int64) error {
	return g.repo.Board.RemoveShotFromAll(ctx, shotID)
}

func (g *repoGateway) RemoveSavedMark(ctx context.Context, userID string, shotID int64) error {
	return g.repo.Saved.Remove(ctx, userID, shotID)
}

func (g *repoGateway) CreateBoard(ctx context.Context, ownerID, name string) (*models.Board, error) {
	board := &models.Board{
		OwnerID: ownerID,
		Name:    name,
	}
	if err := g.repo.Board.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (g *repoGateway) DeleteBoardMemberships(ctx context.Context, boardID int64) error {
	return g.repo.Board.DeleteMemberships(ctx, boardID)
}

func (g *repoGateway) DeleteBoard(ctx context.Context, boardID int64) error {
	return g.repo.Board.Delete(ctx, boardID)
}
