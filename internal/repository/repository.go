package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"shotwall/internal/models"
)

// FeedScope selects which shots a feed query may see.
type FeedScope int

const (
	// ScopePublic is the wall: approved, active shots only.
	ScopePublic FeedScope = iota
	// ScopeModeration is the admin queue: pending, active shots.
	ScopeModeration
	// ScopeOwner is a user's own shots, active only, any approval state.
	ScopeOwner
)

// FeedQuery describes one page of the feed. Results are always ordered by
// creation time descending; the caller never re-sorts.
type FeedQuery struct {
	Scope      FeedScope
	OwnerID    string
	CategoryID int64
	BoardID    int64
	Search     string
	Limit      int
	Offset     int
}

type ShotRepository interface {
	Create(ctx context.Context, shot *models.Shot) error
	GetByID(ctx context.Context, shotID int64) (*models.Shot, error)
	List(ctx context.Context, q FeedQuery) ([]models.Shot, error)
	SetApproval(ctx context.Context, shotID int64, status models.ApprovalStatus) error
	SetImage(ctx context.Context, shotID int64, imageURL, objectName string) error
	Deactivate(ctx context.Context, shotID int64) error
}

type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, boardID int64) (*models.Board, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error)
	AddShot(ctx context.Context, boardID, shotID int64) error
	RemoveShotFromAll(ctx context.Context, shotID int64) error
	DeleteMemberships(ctx context.Context, boardID int64) error
	Delete(ctx context.Context, boardID int64) error
}

type SavedRepository interface {
	Save(ctx context.Context, userID string, shotID int64) error
	Remove(ctx context.Context, userID string, shotID int64) error
	ListShotIDs(ctx context.Context, userID string) ([]int64, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

type Repository struct {
	Shot     ShotRepository
	Board    BoardRepository
	Saved    SavedRepository
	User     UserRepository
	Category CategoryRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Shot:     NewShotRepository(db),
		Board:    NewBoardRepository(db),
		Saved:    NewSavedRepository(db),
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
	}
}
