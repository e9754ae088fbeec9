package domain

import (
	"context"
	"time"
)

// Role constants
const (
	RoleAdmin       = "admin"
	RoleHR          = "hr"
	RoleInterviewer = "interviewer"
)

type User struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Role      string    `json:"role" validate:"required,oneof=admin hr interviewer"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch carries a partial user update; nil fields are left untouched.
type UserPatch struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=admin hr interviewer"`
	Avatar *string `json:"avatar,omitempty"`
}

type UserUsecase interface {
	ListUsers() []User
	GetUser(id string) (*User, error)
	CreateUser(ctx context.Context, user User, actorID string) (*User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch, actorID string) (*User, error)
	DeleteUser(ctx context.Context, id, actorID string) error
	RecordLogin(ctx context.Context, userID, previousUserID string) error
}
