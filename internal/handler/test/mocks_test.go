package test

import (
	"context"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"shotwall/internal/models"
	"shotwall/internal/repository"
	"shotwall/internal/service"
)

type MockShotService struct {
	mock.Mock
}

func (m *MockShotService) CreateShot(ctx context.Context, req service.CreateShotRequest) (*models.Shot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shot), args.Error(1)
}

func (m *MockShotService) GetShot(ctx context.Context, shotID int64) (*models.Shot, error) {
	args := m.Called(ctx, shotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shot), args.Error(1)
}

func (m *MockShotService) ListFeed(ctx context.Context, q repository.FeedQuery) ([]models.Shot, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Shot), args.Error(1)
}

func (m *MockShotService) Moderate(ctx context.Context, shotID int64, status models.ApprovalStatus) error {
	args := m.Called(ctx, shotID, status)
	return args.Error(0)
}

func (m *MockShotService) DeleteShot(ctx context.Context, shotID int64, requesterID string, isAdmin bool) error {
	args := m.Called(ctx, shotID, requesterID, isAdmin)
	return args.Error(0)
}

func (m *MockShotService) AttachImage(ctx context.Context, shotID int64, fileName string, file io.Reader, size int64) (*models.Shot, error) {
	args := m.Called(ctx, shotID, fileName, file, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shot), args.Error(1)
}

func (m *MockShotService) ImageLink(ctx context.Context, shotID int64) (string, error) {
	args := m.Called(ctx, shotID)
	return args.String(0), args.Error(1)
}

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) CreateBoard(ctx context.Context, ownerID, name string) (*models.Board, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Board), args.Error(1)
}

func (m *MockBoardService) ListBoards(ctx context.Context, ownerID string) ([]models.Board, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Board), args.Error(1)
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, boardID int64, requesterID string) error {
	args := m.Called(ctx, boardID, requesterID)
	return args.Error(0)
}

func (m *MockBoardService) AddShot(ctx context.Context, boardID, shotID int64, requesterID string) error {
	args := m.Called(ctx, boardID, shotID, requesterID)
	return args.Error(0)
}

func (m *MockBoardService) SaveShot(ctx context.Context, userID string, shotID int64) error {
	args := m.Called(ctx, userID, shotID)
	return args.Error(0)
}

func (m *MockBoardService) UnsaveShot(ctx context.Context, userID string, shotID int64) error {
	args := m.Called(ctx, userID, shotID)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.String(2), args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.String(2), args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
