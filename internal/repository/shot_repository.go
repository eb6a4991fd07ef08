package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"shotwall/internal/models"
)

type ShotRepositoryImpl struct {
	db *sqlx.DB
}

func NewShotRepository(db *sqlx.DB) *ShotRepositoryImpl {
	return &ShotRepositoryImpl{db: db}
}

func (r *ShotRepositoryImpl) Create(ctx context.Context, shot *models.Shot) error {
	query := `
		INSERT INTO shots (owner_id, title, description, image_url, category_id, approval, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING shot_id
	`

	if shot.Approval == "" {
		shot.Approval = models.StatusPending
	}
	shot.Active = true
	shot.CreatedAt = time.Now()

	err := r.db.QueryRowxContext(ctx, query,
		shot.OwnerID,
		shot.Title,
		shot.Description,
		shot.ImageURL,
		shot.CategoryID,
		shot.Approval,
		shot.Active,
		shot.CreatedAt,
	).Scan(&shot.ShotID)
	if err != nil {
		return fmt.Errorf("creating shot: %w", err)
	}

	return nil
}

func (r *ShotRepositoryImpl) GetByID(ctx context.Context, shotID int64) (*models.Shot, error) {
	query := `SELECT * FROM shots WHERE shot_id = $1 AND active = TRUE`

	var shot models.Shot
	err := r.db.GetContext(ctx, &shot, query, shotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shot %d: %w", shotID, ErrNotFound)
		}
		return nil, fmt.Errorf("getting shot %d: %w", shotID, err)
	}

	return &shot, nil
}

// List returns one feed page ordered by creation time descending. The
// relative order of the returned rows is the contract; callers append them
// as-is and never re-sort.
func (r *ShotRepositoryImpl) List(ctx context.Context, q FeedQuery) ([]models.Shot, error) {
	conds := []string{"s.active = TRUE"}
	args := []interface{}{}

	switch q.Scope {
	case ScopePublic:
		conds = append(conds, "s.approval = 'approved'")
	case ScopeModeration:
		conds = append(conds, "s.approval = 'pending'")
	case ScopeOwner:
		args = append(args, q.OwnerID)
		conds = append(conds, fmt.Sprintf("s.owner_id = $%d", len(args)))
	}

	if q.CategoryID > 0 {
		args = append(args, q.CategoryID)
		conds = append(conds, fmt.Sprintf("s.category_id = $%d", len(args)))
	}

	if q.BoardID > 0 {
		args = append(args, q.BoardID)
		conds = append(conds, fmt.Sprintf(
			"s.shot_id IN (SELECT shot_id FROM board_shots WHERE board_id = $%d)", len(args)))
	}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("(s.title ILIKE $%d OR s.description ILIKE $%d)", len(args), len(args)))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 30
	}

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, q.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT s.* FROM shots s
		WHERE %s
		ORDER BY s.created_at DESC, s.shot_id DESC
		LIMIT $%d OFFSET $%d
	`, strings.Join(conds, " AND "), limitPos, offsetPos)

	var shots []models.Shot
	err := r.db.SelectContext(ctx, &shots, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shots: %w", err)
	}

	return shots, nil
}

func (r *ShotRepositoryImpl) SetApproval(ctx context.Context, shotID int64, status models.ApprovalStatus) error {
	query := `UPDATE shots SET approval = $1 WHERE shot_id = $2 AND active = TRUE`

	result, err := r.db.ExecContext(ctx, query, status, shotID)
	if err != nil {
		return fmt.Errorf("updating approval of shot %d: %w", shotID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("shot %d: %w", shotID, ErrNotFound)
	}

	return nil
}

func (r *ShotRepositoryImpl) SetImage(ctx context.Context, shotID int64, imageURL, objectName string) error {
	query := `UPDATE shots SET image_url = $1, image_object = $2 WHERE shot_id = $3 AND active = TRUE`

	result, err := r.db.ExecContext(ctx, query, imageURL, objectName, shotID)
	if err != nil {
		return fmt.Errorf("updating image of shot %d: %w", shotID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("shot %d: %w", shotID, ErrNotFound)
	}

	return nil
}

// Deactivate soft-deletes a shot. The row is kept because board memberships
// may still reference it.
func (r *ShotRepositoryImpl) Deactivate(ctx context.Context, shotID int64) error {
	query := `UPDATE shots SET active = FALSE WHERE shot_id = $1 AND active = TRUE`

	result, err := r.db.ExecContext(ctx, query, shotID)
	if err != nil {
		return fmt.Errorf("deactivating shot %d: %w", shotID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("shot %d: %w", shotID, ErrNotFound)
	}

	return nil
}
