package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shotwall/internal/config"
	handlers "shotwall/internal/handler"
	"shotwall/internal/middleware"
	"shotwall/internal/models"
	"shotwall/internal/repository"
	"shotwall/internal/service"
)

func newHandlers(shots *MockShotService, boards *MockBoardService, categories *MockCategoryRepository) *handlers.Handlers {
	return &handlers.Handlers{
		ShotService:  shots,
		BoardService: boards,
		AuthService:  new(MockAuthService),
		CategoryRepo: categories,
		Cfg:          &config.Config{FeedPageSize: 30, MaxUploadSize: 10 << 20},
		Validate:     validator.New(),
	}
}

// authedRequest mirrors what AuthMiddleware leaves in the context after a
// valid token.
func authedRequest(req *http.Request, userID, role string) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), userID, userID+"@example.com", role))
}

func TestGetShotsHandler(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		userID         string
		role           string
		mockSetup      func(*MockShotService)
		expectedStatus int
	}{
		{
			name:   "anonymous visitor sees the public wall",
			target: "/api/shots",
			mockSetup: func(shots *MockShotService) {
				shots.On("ListFeed", mock.Anything, repository.FeedQuery{
					Scope: repository.ScopePublic,
					Limit: 30,
				}).Return([]models.Shot{
					{ShotID: 2, Title: "B", Approval: models.StatusApproved, CreatedAt: time.Now()},
					{ShotID: 1, Title: "A", Approval: models.StatusApproved, CreatedAt: time.Now()},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "moderation queue requires admin",
			target: "/api/shots?estado=pendientes",
			userID: "user-1",
			role:   models.RoleMember,
			mockSetup: func(shots *MockShotService) {
				// Must never reach the service.
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "admin reads the moderation queue",
			target: "/api/shots?estado=pendientes",
			userID: "admin-1",
			role:   models.RoleAdmin,
			mockSetup: func(shots *MockShotService) {
				shots.On("ListFeed", mock.Anything, repository.FeedQuery{
					Scope:   repository.ScopeModeration,
					OwnerID: "",
					Limit:   30,
				}).Return([]models.Shot{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "board view filters by membership, not author",
			target: "/api/shots?tablero=5",
			userID: "user-1",
			role:   models.RoleMember,
			mockSetup: func(shots *MockShotService) {
				shots.On("ListFeed", mock.Anything, repository.FeedQuery{
					Scope:   repository.ScopePublic,
					BoardID: 5,
					Limit:   30,
				}).Return([]models.Shot{
					{ShotID: 7, OwnerID: "someone-else", Approval: models.StatusApproved},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "board view works for anonymous viewers",
			target: "/api/shots?tablero=5",
			mockSetup: func(shots *MockShotService) {
				shots.On("ListFeed", mock.Anything, repository.FeedQuery{
					Scope:   repository.ScopePublic,
					BoardID: 5,
					Limit:   30,
				}).Return([]models.Shot{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "oversized limit falls back to the page size",
			target: "/api/shots?limit=500&offset=60",
			mockSetup: func(shots *MockShotService) {
				shots.On("ListFeed", mock.Anything, repository.FeedQuery{
					Scope:  repository.ScopePublic,
					Limit:  30,
					Offset: 60,
				}).Return([]models.Shot{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "search and category pass through",
			target: "/api/shots?categoria=4&q=neon",
			mockSetup: func(shots *MockShotService) {
				shots.On("ListFeed", mock.Anything, repository.FeedQuery{
					Scope:      repository.ScopePublic,
					CategoryID: 4,
					Search:     "neon",
					Limit:      30,
				}).Return([]models.Shot{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockShots := new(MockShotService)
			tt.mockSetup(mockShots)

			handler := newHandlers(mockShots, new(MockBoardService), new(MockCategoryRepository))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.userID != "" {
				req = authedRequest(req, tt.userID, tt.role)
			}

			rr := httptest.NewRecorder()
			handler.GetShots(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				var response handlers.FeedResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
				assert.Equal(t, 30, response.Limit)
			}

			mockShots.AssertExpectations(t)
		})
	}
}

func TestGetMyShotsHandler(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		mockSetup      func(*MockShotService)
		expectedStatus int
	}{
		{
			name:   "owner sees own shots in every approval state",
			userID: "user-1",
			mockSetup: func(shots *MockShotService) {
				shots.On("ListFeed", mock.Anything, repository.FeedQuery{
					Scope:   repository.ScopeOwner,
					OwnerID: "user-1",
					Limit:   30,
				}).Return([]models.Shot{
					{ShotID: 2, OwnerID: "user-1", Approval: models.StatusPending},
					{ShotID: 1, OwnerID: "user-1", Approval: models.StatusApproved},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "anonymous request is refused",
			mockSetup:      func(shots *MockShotService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockShots := new(MockShotService)
			tt.mockSetup(mockShots)

			handler := newHandlers(mockShots, new(MockBoardService), new(MockCategoryRepository))

			req := httptest.NewRequest(http.MethodGet, "/api/me/shots", nil)
			if tt.userID != "" {
				req = authedRequest(req, tt.userID, models.RoleMember)
			}

			rr := httptest.NewRecorder()
			handler.GetMyShots(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockShots.AssertExpectations(t)
		})
	}
}

func TestGetShotsHandler_HasMore(t *testing.T) {
	mockShots := new(MockShotService)

	full := make([]models.Shot, 30)
	for i := range full {
		full[i] = models.Shot{ShotID: int64(30 - i), Approval: models.StatusApproved}
	}
	mockShots.On("ListFeed", mock.Anything, mock.Anything).Return(full, nil)

	handler := newHandlers(mockShots, new(MockBoardService), new(MockCategoryRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/shots", nil)
	rr := httptest.NewRecorder()
	handler.GetShots(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response handlers.FeedResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.True(t, response.HasMore)
}

func TestGetShotHandler(t *testing.T) {
	tests := []struct {
		name           string
		shotID         string
		userID         string
		role           string
		mockSetup      func(*MockShotService)
		expectedStatus int
	}{
		{
			name:   "approved shot is public",
			shotID: "42",
			mockSetup: func(shots *MockShotService) {
				shots.On("GetShot", mock.Anything, int64(42)).
					Return(&models.Shot{ShotID: 42, OwnerID: "owner-1", Approval: models.StatusApproved}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "pending shot hidden from strangers",
			shotID: "42",
			userID: "user-2",
			role:   models.RoleMember,
			mockSetup: func(shots *MockShotService) {
				shots.On("GetShot", mock.Anything, int64(42)).
					Return(&models.Shot{ShotID: 42, OwnerID: "owner-1", Approval: models.StatusPending}, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "pending shot visible to its owner",
			shotID: "42",
			userID: "owner-1",
			role:   models.RoleMember,
			mockSetup: func(shots *MockShotService) {
				shots.On("GetShot", mock.Anything, int64(42)).
					Return(&models.Shot{ShotID: 42, OwnerID: "owner-1", Approval: models.StatusPending}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "pending shot visible to admins",
			shotID: "42",
			userID: "admin-1",
			role:   models.RoleAdmin,
			mockSetup: func(shots *MockShotService) {
				shots.On("GetShot", mock.Anything, int64(42)).
					Return(&models.Shot{ShotID: 42, OwnerID: "owner-1", Approval: models.StatusPending}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "missing shot answers 404",
			shotID: "99",
			mockSetup: func(shots *MockShotService) {
				shots.On("GetShot", mock.Anything, int64(99)).
					Return(nil, fmt.Errorf("shot 99: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id answers 400",
			shotID:         "not-a-number",
			mockSetup:      func(shots *MockShotService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockShots := new(MockShotService)
			tt.mockSetup(mockShots)

			handler := newHandlers(mockShots, new(MockBoardService), new(MockCategoryRepository))

			req := httptest.NewRequest(http.MethodGet, "/api/shots/"+tt.shotID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.shotID})
			if tt.userID != "" {
				req = authedRequest(req, tt.userID, tt.role)
			}

			rr := httptest.NewRecorder()
			handler.GetShot(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockShots.AssertExpectations(t)
		})
	}
}

func TestCreateShotHandler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		mockSetup      func(*MockShotService)
		expectedStatus int
	}{
		{
			name: "creates shot in pending state",
			requestBody: map[string]interface{}{
				"title":       "Sunset grid",
				"description": "first take",
				"categoryId":  3,
			},
			mockSetup: func(shots *MockShotService) {
				shots.On("CreateShot", mock.Anything, service.CreateShotRequest{
					OwnerID:     "user-1",
					Title:       "Sunset grid",
					Description: "first take",
					CategoryID:  3,
				}).Return(&models.Shot{
					ShotID:   42,
					OwnerID:  "user-1",
					Title:    "Sunset grid",
					Approval: models.StatusPending,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing title fails validation",
			requestBody: map[string]interface{}{
				"categoryId": 3,
			},
			mockSetup:      func(shots *MockShotService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing category fails validation",
			requestBody: map[string]interface{}{
				"title": "No category",
			},
			mockSetup:      func(shots *MockShotService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockShots := new(MockShotService)
			tt.mockSetup(mockShots)

			handler := newHandlers(mockShots, new(MockBoardService), new(MockCategoryRepository))

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/shots", bytes.NewReader(body))
			req = authedRequest(req, "user-1", models.RoleMember)

			rr := httptest.NewRecorder()
			handler.CreateShot(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockShots.AssertExpectations(t)
		})
	}
}

func TestModerateShotHandler(t *testing.T) {
	tests := []struct {
		name           string
		shotID         string
		requestBody    map[string]interface{}
		mockSetup      func(*MockShotService)
		expectedStatus int
	}{
		{
			name:        "approves shot",
			shotID:      "42",
			requestBody: map[string]interface{}{"status": "approved"},
			mockSetup: func(shots *MockShotService) {
				shots.On("Moderate", mock.Anything, int64(42), models.StatusApproved).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "rejects shot",
			shotID:      "42",
			requestBody: map[string]interface{}{"status": "rejected"},
			mockSetup: func(shots *MockShotService) {
				shots.On("Moderate", mock.Anything, int64(42), models.StatusRejected).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "pending is not a moderation decision",
			shotID:         "42",
			requestBody:    map[string]interface{}{"status": "pending"},
			mockSetup:      func(shots *MockShotService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "missing shot answers 404",
			shotID:      "99",
			requestBody: map[string]interface{}{"status": "approved"},
			mockSetup: func(shots *MockShotService) {
				shots.On("Moderate", mock.Anything, int64(99), models.StatusApproved).
					Return(fmt.Errorf("shot 99: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockShots := new(MockShotService)
			tt.mockSetup(mockShots)

			handler := newHandlers(mockShots, new(MockBoardService), new(MockCategoryRepository))

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPatch, "/api/shots/"+tt.shotID+"/status", bytes.NewReader(body))
			req = mux.SetURLVars(req, map[string]string{"id": tt.shotID})
			req = authedRequest(req, "admin-1", models.RoleAdmin)

			rr := httptest.NewRecorder()
			handler.ModerateShot(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockShots.AssertExpectations(t)
		})
	}
}

func TestGetShotImageHandler(t *testing.T) {
	tests := []struct {
		name           string
		shotID         string
		mockSetup      func(*MockShotService)
		expectedStatus int
		expectedLink   string
	}{
		{
			name:   "redirects to the presigned link",
			shotID: "42",
			mockSetup: func(shots *MockShotService) {
				shots.On("ImageLink", mock.Anything, int64(42)).
					Return("http://minio/bucket/shots/42/photo.png?signed", nil)
			},
			expectedStatus: http.StatusFound,
			expectedLink:   "http://minio/bucket/shots/42/photo.png?signed",
		},
		{
			name:   "shot without an image answers 404",
			shotID: "42",
			mockSetup: func(shots *MockShotService) {
				shots.On("ImageLink", mock.Anything, int64(42)).
					Return("", fmt.Errorf("shot 42 has no image: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id answers 400",
			shotID:         "not-a-number",
			mockSetup:      func(shots *MockShotService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockShots := new(MockShotService)
			tt.mockSetup(mockShots)

			handler := newHandlers(mockShots, new(MockBoardService), new(MockCategoryRepository))

			req := httptest.NewRequest(http.MethodGet, "/api/shots/"+tt.shotID+"/image", nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.shotID})

			rr := httptest.NewRecorder()
			handler.GetShotImage(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedLink != "" {
				assert.Equal(t, tt.expectedLink, rr.Header().Get("Location"))
			}
			mockShots.AssertExpectations(t)
		})
	}
}

func TestGetCategoriesHandler(t *testing.T) {
	mockCategories := new(MockCategoryRepository)
	mockCategories.On("List", mock.Anything).Return([]models.Category{
		{CategoryID: 1, Name: "Illustration"},
		{CategoryID: 2, Name: "Branding"},
	}, nil)

	handler := newHandlers(new(MockShotService), new(MockBoardService), mockCategories)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rr := httptest.NewRecorder()
	handler.GetCategories(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var categories []models.Category
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &categories))
	assert.Len(t, categories, 2)
	mockCategories.AssertExpectations(t)
}
