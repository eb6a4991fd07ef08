package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"shotwall/internal/models"
)

type BoardRepositoryImpl struct {
	db *sqlx.DB
}

func NewBoardRepository(db *sqlx.DB) *BoardRepositoryImpl {
	return &BoardRepositoryImpl{db: db}
}

func (r *BoardRepositoryImpl) Create(ctx context.Context, board *models.Board) error {
	query := `
		INSERT INTO boards (owner_id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING board_id
	`

	board.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query, board.OwnerID, board.Name, board.CreatedAt).
		Scan(&board.BoardID)
	if err != nil {
		return fmt.Errorf("creating board: %w", err)
	}

	return nil
}

func (r *BoardRepositoryImpl) GetByID(ctx context.Context, boardID int64) (*models.Board, error) {
	query := `
		SELECT b.*, COUNT(bs.shot_id) AS shot_count
		FROM boards b
		LEFT JOIN board_shots bs ON bs.board_id = b.board_id
		WHERE b.board_id = $1
		GROUP BY b.board_id
	`

	var board models.Board
	err := r.db.GetContext(ctx, &board, query, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("board %d: %w", boardID, ErrNotFound)
		}
		return nil, fmt.Errorf("getting board %d: %w", boardID, err)
	}

	return &board, nil
}

func (r *BoardRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]models.Board, error) {
	query := `
		SELECT b.*, COUNT(bs.shot_id) AS shot_count
		FROM boards b
		LEFT JOIN board_shots bs ON bs.board_id = b.board_id
		WHERE b.owner_id = $1
		GROUP BY b.board_id
		ORDER BY b.created_at DESC
	`

	var boards []models.Board
	err := r.db.SelectContext(ctx, &boards, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing boards of %s: %w", ownerID, err)
	}

	return boards, nil
}

// AddShot inserts one membership row. Inserting a pair that already exists
// returns ErrDuplicate so callers can treat it as an expected outcome.
func (r *BoardRepositoryImpl) AddShot(ctx context.Context, boardID, shotID int64) error {
	query := `
		INSERT INTO board_shots (board_id, shot_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, boardID, shotID, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("shot %d on board %d: %w", shotID, boardID, ErrDuplicate)
		}
		return fmt.Errorf("adding shot %d to board %d: %w", shotID, boardID, err)
	}

	return nil
}

func (r *BoardRepositoryImpl) RemoveShotFromAll(ctx context.Context, shotID int64) error {
	query := `DELETE FROM board_shots WHERE shot_id = $1`

	_, err := r.db.ExecContext(ctx, query, shotID)
	if err != nil {
		return fmt.Errorf("removing shot %d from boards: %w", shotID, err)
	}

	return nil
}

func (r *BoardRepositoryImpl) DeleteMemberships(ctx context.Context, boardID int64) error {
	query := `DELETE FROM board_shots WHERE board_id = $1`

	_, err := r.db.ExecContext(ctx, query, boardID)
	if err != nil {
		return fmt.Errorf("clearing board %d: %w", boardID, err)
	}

	return nil
}

func (r *BoardRepositoryImpl) Delete(ctx context.Context, boardID int64) error {
	query := `DELETE FROM boards WHERE board_id = $1`

	result, err := r.db.ExecContext(ctx, query, boardID)
	if err != nil {
		return fmt.Errorf("deleting board %d: %w", boardID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("board %d: %w", boardID, ErrNotFound)
	}

	return nil
}
