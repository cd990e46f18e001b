package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserNama     string    `gorm:"type:varchar(100);not null;column:user_nama" json:"user_nama"`
	UserUsername string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_username;column:user_username" json:"user_username"`
	UserPassword string    `gorm:"type:varchar(255);not null;column:user_password" json:"-"`

	// "admin" | "petugas"
	UserRole string `gorm:"type:varchar(20);not null;default:'petugas';column:user_role" json:"user_role"`

	UserCreatedAt time.Time  `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}
