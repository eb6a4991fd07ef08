package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type SavedRepositoryImpl struct {
	db *sqlx.DB
}

func NewSavedRepository(db *sqlx.DB) *SavedRepositoryImpl {
	return &SavedRepositoryImpl{db: db}
}

// Save bookmarks a shot for a user. Saving an already saved shot returns
// ErrDuplicate.
func (r *SavedRepositoryImpl) Save(ctx context.Context, userID string, shotID int64) error {
	query := `
		INSERT INTO saved_shots (user_id, shot_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, userID, shotID, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("shot %d already saved by %s: %w", shotID, userID, ErrDuplicate)
		}
		return fmt.Errorf("saving shot %d for %s: %w", shotID, userID, err)
	}

	return nil
}

func (r *SavedRepositoryImpl) Remove(ctx context.Context, userID string, shotID int64) error {
	query := `DELETE FROM saved_shots WHERE user_id = $1 AND shot_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, shotID)
	if err != nil {
		return fmt.Errorf("removing saved mark of shot %d for %s: %w", shotID, userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("saved mark of shot %d for %s: %w", shotID, userID, ErrNotFound)
	}

	return nil
}

func (r *SavedRepositoryImpl) ListShotIDs(ctx context.Context, userID string) ([]int64, error) {
	query := `SELECT shot_id FROM saved_shots WHERE user_id = $1 ORDER BY created_at DESC`

	var ids []int64
	err := r.db.SelectContext(ctx, &ids, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing saved shots of %s: %w", userID, err)
	}

	return ids, nil
}
