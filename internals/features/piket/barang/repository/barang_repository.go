package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "piketku_backend/internals/features/piket/barang/model"
)

type BarangRepository interface {
	List(ctx context.Context) ([]model.BarangModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.BarangModel, error)
	Create(ctx context.Context, m *model.BarangModel) error
	Update(ctx context.Context, m *model.BarangModel) error
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatus menulis balik status hasil checklist ke master barang
	// (hanya kolom status, last-submission-wins).
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.StatusBarang) error
}

type barangRepository struct {
	db *gorm.DB
}

func NewBarangRepository(db *gorm.DB) BarangRepository {
	return &barangRepository{db: db}
}

func (r *barangRepository) List(ctx context.Context) ([]model.BarangModel, error) {
	var items []model.BarangModel
	if err := r.db.WithContext(ctx).Order("barang_kode ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *barangRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BarangModel, error) {
	var m model.BarangModel
	if err := r.db.WithContext(ctx).First(&m, "barang_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *barangRepository) Create(ctx context.Context, m *model.BarangModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *barangRepository) Update(ctx context.Context, m *model.BarangModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *barangRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BarangModel{}, "barang_id = ?", id).Error
}

func (r *barangRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.StatusBarang) error {
	return r.db.WithContext(ctx).
		Model(&model.BarangModel{}).
		Where("barang_id = ?", id).
		Update("barang_status", status).Error
}
