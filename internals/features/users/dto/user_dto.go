package dto

import (
	"time"

	"github.com/google/uuid"

	model "piketku_backend/internals/features/users/model"
)

/* ===================== REQUESTS ===================== */

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	UserNama     string `json:"user_nama" validate:"required,max=100"`
	UserUsername string `json:"user_username" validate:"required,min=3,max=50"`
	UserPassword string `json:"user_password" validate:"required,min=6"`
	UserRole     string `json:"user_role" validate:"required,oneof=admin petugas"`
}

func (r *CreateUserRequest) ToModel() *model.UserModel {
	return &model.UserModel{
		UserNama:     r.UserNama,
		UserUsername: r.UserUsername,
		UserPassword: r.UserPassword, // di-hash di controller sebelum simpan
		UserRole:     r.UserRole,
	}
}

// Update (partial, semua optional)
type UpdateUserRequest struct {
	UserNama     *string `json:"user_nama" validate:"omitempty,max=100"`
	UserUsername *string `json:"user_username" validate:"omitempty,min=3,max=50"`
	UserPassword *string `json:"user_password" validate:"omitempty,min=6"`
	UserRole     *string `json:"user_role" validate:"omitempty,oneof=admin petugas"`
}

/* ===================== RESPONSES ===================== */

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	UserID        uuid.UUID  `json:"user_id"`
	UserNama      string     `json:"user_nama"`
	UserUsername  string     `json:"user_username"`
	UserRole      string     `json:"user_role"`
	UserCreatedAt time.Time  `json:"user_created_at"`
	UserUpdatedAt *time.Time `json:"user_updated_at,omitempty"`
}

func FromUserModel(m model.UserModel) UserResponse {
	return UserResponse{
		UserID:        m.UserID,
		UserNama:      m.UserNama,
		UserUsername:  m.UserUsername,
		UserRole:      m.UserRole,
		UserCreatedAt: m.UserCreatedAt,
		UserUpdatedAt: m.UserUpdatedAt,
	}
}
