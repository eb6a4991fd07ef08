package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"shotwall/internal/middleware"
	"shotwall/internal/models"
	"shotwall/internal/repository"
	"shotwall/internal/service"
	"shotwall/internal/session"
)

type FeedResponse struct {
	Shots   []models.Shot `json:"shots"`
	HasMore bool          `json:"hasMore"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// GetShots serves one feed page. The filter parameters are the same ones
// the frontend persists in the URL: estado, categoria, tablero, q. A board
// filter selects by membership; the shots on a board are mostly authored
// by other users.
func (h *Handlers) GetShots(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	filter := session.FilterFromURL(params)
	if filter.Scope == repository.ScopeModeration && !middleware.IsAdmin(r.Context()) {
		WriteError(w, "the moderation queue requires an admin", http.StatusForbidden)
		return
	}

	limit, offset := h.pageBounds(params)

	shots, err := h.ShotService.ListFeed(r.Context(), repository.FeedQuery{
		Scope:      filter.Scope,
		OwnerID:    filter.OwnerID,
		CategoryID: filter.CategoryID,
		BoardID:    filter.BoardID,
		Search:     filter.Search,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		WriteError(w, "could not load the feed", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, FeedResponse{
		Shots:   shots,
		HasMore: len(shots) == limit,
		Limit:   limit,
		Offset:  offset,
	}, http.StatusOK)
}

// GetMyShots lists the signed-in user's own shots regardless of approval
// state, so pending and rejected submissions stay visible to their author.
func (h *Handlers) GetMyShots(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserID(r.Context())
	if viewerID == "" {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	limit, offset := h.pageBounds(r.URL.Query())

	shots, err := h.ShotService.ListFeed(r.Context(), repository.FeedQuery{
		Scope:   repository.ScopeOwner,
		OwnerID: viewerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		WriteError(w, "could not load the feed", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, FeedResponse{
		Shots:   shots,
		HasMore: len(shots) == limit,
		Limit:   limit,
		Offset:  offset,
	}, http.StatusOK)
}

func (h *Handlers) pageBounds(params url.Values) (int, int) {
	limit, _ := strconv.Atoi(params.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = h.Cfg.FeedPageSize
	}
	offset, _ := strconv.Atoi(params.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handlers) GetShot(w http.ResponseWriter, r *http.Request) {
	shotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid shot id", http.StatusBadRequest)
		return
	}

	shot, err := h.ShotService.GetShot(r.Context(), shotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "shot not found", http.StatusNotFound)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Unapproved shots are visible to their owner and to admins only.
	if shot.Approval != models.StatusApproved {
		viewerID := middleware.UserID(r.Context())
		if viewerID != shot.OwnerID && !middleware.IsAdmin(r.Context()) {
			WriteError(w, "shot not found", http.StatusNotFound)
			return
		}
	}

	WriteSuccess(w, shot, http.StatusOK)
}

func (h *Handlers) CreateShot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title" validate:"required,max=120"`
		Description string `json:"description" validate:"max=2000"`
		CategoryID  int64  `json:"categoryId" validate:"required,gt=0"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	shot, err := h.ShotService.CreateShot(r.Context(), service.CreateShotRequest{
		OwnerID:     middleware.UserID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, shot, http.StatusCreated)
}

func (h *Handlers) ModerateShot(w http.ResponseWriter, r *http.Request) {
	shotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid shot id", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=approved rejected"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "status must be approved or rejected", http.StatusBadRequest)
		return
	}

	status, err := models.ParseApprovalStatus(req.Status)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ShotService.Moderate(r.Context(), shotID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "shot not found", http.StatusNotFound)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "moderation decision saved"}, http.StatusOK)
}

func (h *Handlers) DeleteShot(w http.ResponseWriter, r *http.Request) {
	shotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid shot id", http.StatusBadRequest)
		return
	}

	err = h.ShotService.DeleteShot(r.Context(), shotID, middleware.UserID(r.Context()), middleware.IsAdmin(r.Context()))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "shot not found", http.StatusNotFound)
			return
		}
		WriteError(w, err.Error(), http.StatusForbidden)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "shot deleted"}, http.StatusOK)
}

func (h *Handlers) UploadShotImage(w http.ResponseWriter, r *http.Request) {
	shotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid shot id", http.StatusBadRequest)
		return
	}

	shot, err := h.ShotService.GetShot(r.Context(), shotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "shot not found", http.StatusNotFound)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if shot.OwnerID != middleware.UserID(r.Context()) {
		WriteError(w, "only the owner can change the image", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, fmt.Sprintf("file too large (max %s)",
			humanize.Bytes(uint64(h.Cfg.MaxUploadSize))), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "could not read the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		WriteError(w, "unsupported file type, allowed: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	updated, err := h.ShotService.AttachImage(r.Context(), shotID, header.Filename, file, header.Size)
	if err != nil {
		WriteError(w, "could not store the image", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, updated, http.StatusCreated)
}

// GetShotImage redirects to a short-lived presigned link for the stored
// object. The bucket itself is never exposed.
func (h *Handlers) GetShotImage(w http.ResponseWriter, r *http.Request) {
	shotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "invalid shot id", http.StatusBadRequest)
		return
	}

	link, err := h.ShotService.ImageLink(r.Context(), shotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "image not found", http.StatusNotFound)
			return
		}
		WriteError(w, "could not resolve the image", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, link, http.StatusFound)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryRepo.List(r.Context())
	if err != nil {
		WriteError(w, "could not load categories", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, categories, http.StatusOK)
}
