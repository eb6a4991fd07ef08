package service

import (
	"context"
	"log"

	"shotwall/internal/models"
	"shotwall/internal/repository"
)

type BoardService interface {
	CreateBoard(ctx context.Context, ownerID, name string) (*models.Board, error)
	ListBoards(ctx context.Context, ownerID string) ([]models.Board, error)
	DeleteBoard(ctx context.Context, boardID int64, requesterID string) error
	AddShot(ctx context.Context, boardID, shotID int64, requesterID string) error
	SaveShot(ctx context.Context, userID string, shotID int64) error
	UnsaveShot(ctx context.Context, userID string, shotID int64) error
}

type boardService struct {
	boardRepo repository.BoardRepository
	savedRepo repository.SavedRepository
}

func NewBoardService(boardRepo repository.BoardRepository, savedRepo repository.SavedRepository) BoardService {
	return &boardService{
		boardRepo: boardRepo,
		savedRepo: savedRepo,
	}
}

// CreateBoard does not enforce name uniqueness per owner: two boards named
// "inspiration" are allowed.
func (s *boardService) CreateBoard(ctx context.Context, ownerID, name string) (*models.Board, error) {
	board := &models.Board{
		OwnerID: ownerID,
		Name:    name,
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}

	return board, nil
}

func (s *boardService) ListBoards(ctx context.Context, ownerID string) ([]models.Board, error) {
	return s.boardRepo.ListByOwner(ctx, ownerID)
}

// DeleteBoard clears the memberships first and then the board row. If the
// row deletion fails the board survives empty, which is degraded but safe.
func (s *boardService) DeleteBoard(ctx context.Context, boardID int64, requesterID string) error {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}

	if board.OwnerID != requesterID {
		return repository.ErrNotFound
	}

	if err := s.boardRepo.DeleteMemberships(ctx, boardID); err != nil {
		return err
	}

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		log.Printf("board %d emptied but not deleted: %v", boardID, err)
	}

	return nil
}

func (s *boardService) AddShot(ctx context.Context, boardID, shotID int64, requesterID string) error {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}

	if board.OwnerID != requesterID {
		return repository.ErrNotFound
	}

	return s.boardRepo.AddShot(ctx, boardID, shotID)
}

func (s *boardService) SaveShot(ctx context.Context, userID string, shotID int64) error {
	return s.savedRepo.Save(ctx, userID, shotID)
}

// UnsaveShot is the compound operation: every membership of the shot goes
// first, then the saved mark. A failed mark removal is logged, not rolled
// back.
func (s *boardService) UnsaveShot(ctx context.Context, userID string, shotID int64) error {
	if err := s.boardRepo.RemoveShotFromAll(ctx, shotID); err != nil {
		return err
	}

	if err := s.savedRepo.Remove(ctx, userID, shotID); err != nil {
		log.Printf("unsave of shot %d: memberships removed but saved mark removal failed: %v", shotID, err)
	}

	return nil
}
