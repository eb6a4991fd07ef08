package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"shotwall/internal/config"
	"shotwall/internal/repository"
	"shotwall/internal/service"
)

type Handlers struct {
	ShotService  service.ShotService
	BoardService service.BoardService
	AuthService  service.AuthService
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	Cfg          *config.Config
	Validate     *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		ShotService:  services.Shot,
		BoardService: services.Board,
		AuthService:  services.Auth,
		CategoryRepo: repo.Category,
		UserRepo:     repo.User,
		Cfg:          cfg,
		Validate:     validator.New(),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
