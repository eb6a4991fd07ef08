package models

import (
	"fmt"
	"time"
)

// ApprovalStatus is the moderation state of a shot. It is a closed
// enumeration; soft deletion is tracked separately by Shot.Active.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch ApprovalStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return ApprovalStatus(s), nil
	}
	return "", fmt.Errorf("unknown approval status: %q", s)
}

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	Role                   string    `json:"role" db:"role"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
}

const (
	RoleMember = "Member"
	RoleAdmin  = "Admin"
)

type Shot struct {
	ShotID      int64          `json:"shotId" db:"shot_id"`
	OwnerID     string         `json:"ownerId" db:"owner_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	ImageURL    string         `json:"imageUrl" db:"image_url"`
	ImageObject string         `json:"-" db:"image_object"`
	CategoryID  int64          `json:"categoryId" db:"category_id"`
	Approval    ApprovalStatus `json:"approval" db:"approval"`
	Active      bool           `json:"active" db:"active"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

type Board struct {
	BoardID   int64     `json:"boardId" db:"board_id"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ShotCount int       `json:"shotCount" db:"shot_count"`
}

// Membership links one shot to one board. The (board, shot) pair is the
// identity; there is no surrogate key and at most one row per pair.
type Membership struct {
	BoardID   int64     `json:"boardId" db:"board_id"`
	ShotID    int64     `json:"shotId" db:"shot_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SavedMark is a user's personal bookmark of a shot, independent of any
// board membership.
type SavedMark struct {
	UserID    string    `json:"userId" db:"user_id"`
	ShotID    int64     `json:"shotId" db:"shot_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Category struct {
	CategoryID int64  `json:"categoryId" db:"category_id"`
	Name       string `json:"name" db:"name"`
}
