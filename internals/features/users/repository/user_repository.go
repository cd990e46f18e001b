package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "piketku_backend/internals/features/users/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	FindByUsername(ctx context.Context, username string) (*model.UserModel, error)
	List(ctx context.Context, offset, limit int) ([]model.UserModel, int64, error)
	Create(ctx context.Context, m *model.UserModel) error
	Update(ctx context.Context, m *model.UserModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var m model.UserModel
	if err := r.db.WithContext(ctx).First(&m, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.UserModel, error) {
	var m model.UserModel
	if err := r.db.WithContext(ctx).First(&m, "user_username = ?", username).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]model.UserModel, int64, error) {
	var (
		items []model.UserModel
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Order("user_created_at ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *userRepository) Create(ctx context.Context, m *model.UserModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *userRepository) Update(ctx context.Context, m *model.UserModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UserModel{}, "user_id = ?", id).Error
}
