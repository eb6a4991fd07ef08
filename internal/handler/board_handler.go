package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"shotwall/internal/middleware"
	"shotwall/internal/repository"
)

// AssignResponse reports a membership mutation. alreadyPresent is an
// expected outcome, not an error: the pair existed before the request.
type AssignResponse struct {
	BoardID        int64 `json:"boardId"`
	ShotID         int64 `json:"shotId"`
	AlreadyPresent bool  `json:"alreadyPresent"`
}

func (h *Handlers) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.BoardService.ListBoards(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		WriteError(w, "could not load boards", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, boards, http.StatusOK)
}

func (h *Handlers) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,max=60"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, err := h.BoardService.CreateBoard(r.Context(), middleware.UserID(r.Context()), req.Name)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, board, http.StatusCreated)
}

func (h *Handlers) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid board id", http.StatusBadRequest)
		return
	}

	err = h.BoardService.DeleteBoard(r.Context(), boardID, middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "board not found", http.StatusNotFound)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "board deleted"}, http.StatusOK)
}

// AddShotToBoard files a shot onto a board, the server half of a drop. A
// duplicate pair answers 200 with alreadyPresent instead of failing.
func (h *Handlers) AddShotToBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid board id", http.StatusBadRequest)
		return
	}

	var req struct {
		ShotID int64 `json:"shotId" validate:"required,gt=0"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.BoardService.AddShot(r.Context(), boardID, req.ShotID, middleware.UserID(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			WriteSuccess(w, AssignResponse{BoardID: boardID, ShotID: req.ShotID, AlreadyPresent: true}, http.StatusOK)
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "board not found", http.StatusNotFound)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, AssignResponse{BoardID: boardID, ShotID: req.ShotID}, http.StatusCreated)
}

func (h *Handlers) SaveShot(w http.ResponseWriter, r *http.Request) {
	shotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid shot id", http.StatusBadRequest)
		return
	}

	err = h.BoardService.SaveShot(r.Context(), middleware.UserID(r.Context()), shotID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			WriteSuccess(w, MessageResponse{Message: "already saved"}, http.StatusOK)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "shot saved"}, http.StatusCreated)
}

// UnsaveShot removes the shot from every board of the user and then the
// saved mark itself.
func (h *Handlers) UnsaveShot(w http.ResponseWriter, r *http.Request) {
	shotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid shot id", http.StatusBadRequest)
		return
	}

	err = h.BoardService.UnsaveShot(r.Context(), middleware.UserID(r.Context()), shotID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "shot unsaved"}, http.StatusOK)
}
