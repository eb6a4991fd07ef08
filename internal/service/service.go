package service

import (
	"shotwall/internal/config"
	"shotwall/internal/repository"
	"shotwall/internal/session"
	"shotwall/internal/storage"
)

type Service struct {
	Shot  ShotService
	Board BoardService
	Auth  AuthService
	Feed  *session.Broadcaster
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	feedChanged := session.NewBroadcaster()

	return &Service{
		Shot:  NewShotService(rep.Shot, storage, feedChanged, cfg),
		Board: NewBoardService(rep.Board, rep.Saved),
		Auth:  NewAuthService(rep.User, cfg),
		Feed:  feedChanged,
	}
}
