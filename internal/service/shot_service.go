package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"shotwall/internal/config"
	"shotwall/internal/models"
	"shotwall/internal/repository"
	"shotwall/internal/session"
	"shotwall/internal/storage"
)

type CreateShotRequest struct {
	OwnerID     string `json:"ownerId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"categoryId"`
	ImageURL    string `json:"imageUrl"`
}

type ShotService interface {
	CreateShot(ctx context.Context, req CreateShotRequest) (*models.Shot, error)
	GetShot(ctx context.Context, shotID int64) (*models.Shot, error)
	ListFeed(ctx context.Context, q repository.FeedQuery) ([]models.Shot, error)
	Moderate(ctx context.Context, shotID int64, status models.ApprovalStatus) error
	DeleteShot(ctx context.Context, shotID int64, requesterID string, isAdmin bool) error
	AttachImage(ctx context.Context, shotID int64, fileName string, file io.Reader, size int64) (*models.Shot, error)
	ImageLink(ctx context.Context, shotID int64) (string, error)
}

type shotService struct {
	shotRepo    repository.ShotRepository
	storage     storage.Storage
	feedChanged *session.Broadcaster
	cfg         *config.Config
}

func NewShotService(shotRepo repository.ShotRepository, storage storage.Storage, feedChanged *session.Broadcaster, cfg *config.Config) ShotService {
	return &shotService{
		shotRepo:    shotRepo,
		storage:     storage,
		feedChanged: feedChanged,
		cfg:         cfg,
	}
}

// CreateShot inserts a new shot in pending state and announces that the
// feed's underlying data changed.
func (s *shotService) CreateShot(ctx context.Context, req CreateShotRequest) (*models.Shot, error) {
	shot := &models.Shot{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Approval:    models.StatusPending,
	}

	if err := s.shotRepo.Create(ctx, shot); err != nil {
		return nil, err
	}

	s.feedChanged.Publish()
	return shot, nil
}

func (s *shotService) GetShot(ctx context.Context, shotID int64) (*models.Shot, error) {
	return s.shotRepo.GetByID(ctx, shotID)
}

func (s *shotService) ListFeed(ctx context.Context, q repository.FeedQuery) ([]models.Shot, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = s.cfg.FeedPageSize
	}
	return s.shotRepo.List(ctx, q)
}

// Moderate flips a pending shot's approval. A decision changes what the
// public wall and the moderation queue show, so the feed signal fires.
func (s *shotService) Moderate(ctx context.Context, shotID int64, status models.ApprovalStatus) error {
	if status != models.StatusApproved && status != models.StatusRejected {
		return fmt.Errorf("moderation can only approve or reject, got %q", status)
	}

	if err := s.shotRepo.SetApproval(ctx, shotID, status); err != nil {
		return err
	}

	s.feedChanged.Publish()
	return nil
}

// DeleteShot soft-deletes; the row stays because board memberships may
// still reference it.
func (s *shotService) DeleteShot(ctx context.Context, shotID int64, requesterID string, isAdmin bool) error {
	shot, err := s.shotRepo.GetByID(ctx, shotID)
	if err != nil {
		return err
	}

	if shot.OwnerID != requesterID && !isAdmin {
		return fmt.Errorf("only the owner or an admin can delete shot %d", shotID)
	}

	if err := s.shotRepo.Deactivate(ctx, shotID); err != nil {
		return err
	}

	s.feedChanged.Publish()
	return nil
}

// AttachImage uploads the image and points the shot at it. If the database
// update fails the uploaded object is removed again.
func (s *shotService) AttachImage(ctx context.Context, shotID int64, fileName string, file io.Reader, size int64) (*models.Shot, error) {
	shot, err := s.shotRepo.GetByID(ctx, shotID)
	if err != nil {
		return nil, err
	}

	shotKey := strconv.FormatInt(shotID, 10)
	objectName, imageURL, err := s.storage.UploadImage(ctx, shotKey, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}

	if err := s.shotRepo.SetImage(ctx, shotID, imageURL, objectName); err != nil {
		if cleanupErr := s.storage.DeleteImage(ctx, objectName); cleanupErr != nil {
			log.Printf("orphaned object %s after failed image attach: %v", objectName, cleanupErr)
		}
		return nil, fmt.Errorf("storing image reference: %w", err)
	}

	shot.ImageURL = imageURL
	shot.ImageObject = objectName
	return shot, nil
}

// ImageLink presigns a download URL for the shot's stored object.
func (s *shotService) ImageLink(ctx context.Context, shotID int64) (string, error) {
	shot, err := s.shotRepo.GetByID(ctx, shotID)
	if err != nil {
		return "", err
	}

	if shot.ImageObject == "" {
		return "", fmt.Errorf("shot %d has no image: %w", shotID, repository.ErrNotFound)
	}

	link, err := s.storage.GetImageURL(ctx, shot.ImageObject)
	if err != nil {
		return "", fmt.Errorf("presigning image of shot %d: %w", shotID, err)
	}

	return link, nil
}
