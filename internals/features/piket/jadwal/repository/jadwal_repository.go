package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "piketku_backend/internals/features/piket/jadwal/model"
)

// JadwalRow baris jadwal + identitas user untuk listing admin.
type JadwalRow struct {
	model.JadwalPiketModel
	UserNama string `gorm:"column:user_nama"`
}

type JadwalRepository interface {
	List(ctx context.Context, dari, sampai *time.Time) ([]JadwalRow, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.JadwalPiketModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.JadwalPiketModel, error)
	Create(ctx context.Context, m *model.JadwalPiketModel) error
	CreateBatch(ctx context.Context, items []model.JadwalPiketModel) error
	Update(ctx context.Context, m *model.JadwalPiketModel) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsForUserOnDate: gerbang eligibility check-in.
	ExistsForUserOnDate(ctx context.Context, userID uuid.UUID, tanggal time.Time) (bool, error)

	// DeleteBefore menghapus entri dengan tanggal < cutoff (housekeeping).
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type jadwalRepository struct {
	db *gorm.DB
}

func NewJadwalRepository(db *gorm.DB) JadwalRepository {
	return &jadwalRepository{db: db}
}

func (r *jadwalRepository) List(ctx context.Context, dari, sampai *time.Time) ([]JadwalRow, error) {
	q := r.db.WithContext(ctx).
		Table("jadwal_piket").
		Select("jadwal_piket.*, users.user_nama").
		Joins("JOIN users ON users.user_id = jadwal_piket.jadwal_user_id")
	if dari != nil {
		q = q.Where("jadwal_tanggal >= ?", dari.Format("2006-01-02"))
	}
	if sampai != nil {
		q = q.Where("jadwal_tanggal <= ?", sampai.Format("2006-01-02"))
	}

	var rows []JadwalRow
	if err := q.Order("jadwal_tanggal ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jadwalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.JadwalPiketModel, error) {
	var items []model.JadwalPiketModel
	if err := r.db.WithContext(ctx).
		Where("jadwal_user_id = ?", userID).
		Order("jadwal_tanggal ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *jadwalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JadwalPiketModel, error) {
	var m model.JadwalPiketModel
	if err := r.db.WithContext(ctx).First(&m, "jadwal_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *jadwalRepository) Create(ctx context.Context, m *model.JadwalPiketModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *jadwalRepository) CreateBatch(ctx context.Context, items []model.JadwalPiketModel) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *jadwalRepository) Update(ctx context.Context, m *model.JadwalPiketModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *jadwalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.JadwalPiketModel{}, "jadwal_id = ?", id).Error
}

func (r *jadwalRepository) ExistsForUserOnDate(ctx context.Context, userID uuid.UUID, tanggal time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.JadwalPiketModel{}).
		Where("jadwal_user_id = ? AND jadwal_tanggal = ?", userID, tanggal.Format("2006-01-02")).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *jadwalRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("jadwal_tanggal < ?", cutoff.Format("2006-01-02")).
		Delete(&model.JadwalPiketModel{})
	return res.RowsAffected, res.Error
}
