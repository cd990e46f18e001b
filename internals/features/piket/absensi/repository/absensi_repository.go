package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "piketku_backend/internals/features/piket/absensi/model"
)

// ErrSesiTerbukaSudahAda: user masih punya sesi dengan waktu_keluar NULL.
// Invariannya ditegakkan oleh partial unique index uq_absensi_open_per_user,
// bukan oleh cek baca-lalu-tulis di aplikasi.
var ErrSesiTerbukaSudahAda = errors.New("sesi piket terbuka sudah ada untuk user ini")

// LaporanRow baris laporan: sesi + identitas petugas.
type LaporanRow struct {
	model.AbsensiModel
	UserNama     string `gorm:"column:user_nama"`
	UserUsername string `gorm:"column:user_username"`
}

type AbsensiRepository interface {
	Create(ctx context.Context, m *model.AbsensiModel) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.AbsensiModel, error)
	FindLatestOpenByUser(ctx context.Context, userID uuid.UUID) (*model.AbsensiModel, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AbsensiModel, error)

	// SubmitChecklist menimpa checklist dan memasang flag submitted,
	// scoped ke (id, user_id). Return rows affected.
	SubmitChecklist(ctx context.Context, id, userID uuid.UUID, checklist datatypes.JSON) (int64, error)

	// Close menutup sesi dalam satu UPDATE atomik, dijaga predikat
	// waktu_keluar IS NULL. Return rows affected (0 = sudah tertutup).
	Close(ctx context.Context, id uuid.UUID, waktuKeluar time.Time, foto string, lat, lon float64) (int64, error)

	// ListOpenCheckedInBefore: sesi terbuka dengan waktu masuk < batas
	// (dipakai auto-close).
	ListOpenCheckedInBefore(ctx context.Context, batas time.Time) ([]model.AbsensiModel, error)

	// Laporan admin
	ListByDateWithUser(ctx context.Context, hariMulai, hariSelesai time.Time) ([]LaporanRow, error)
}

type absensiRepository struct {
	db *gorm.DB
}

func NewAbsensiRepository(db *gorm.DB) AbsensiRepository {
	return &absensiRepository{db: db}
}

func (r *absensiRepository) Create(ctx context.Context, m *model.AbsensiModel) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_absensi_open_per_user" {
			return ErrSesiTerbukaSudahAda
		}
		return err
	}
	return nil
}

func (r *absensiRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.AbsensiModel, error) {
	var m model.AbsensiModel
	if err := r.db.WithContext(ctx).
		First(&m, "absensi_id = ? AND absensi_user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *absensiRepository) FindLatestOpenByUser(ctx context.Context, userID uuid.UUID) (*model.AbsensiModel, error) {
	var m model.AbsensiModel
	if err := r.db.WithContext(ctx).
		Where("absensi_user_id = ? AND absensi_waktu_keluar IS NULL", userID).
		Order("absensi_waktu_masuk DESC").
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *absensiRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.AbsensiModel, error) {
	var items []model.AbsensiModel
	if err := r.db.WithContext(ctx).
		Where("absensi_user_id = ?", userID).
		Order("absensi_waktu_masuk DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *absensiRepository) SubmitChecklist(ctx context.Context, id, userID uuid.UUID, checklist datatypes.JSON) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AbsensiModel{}).
		Where("absensi_id = ? AND absensi_user_id = ?", id, userID).
		Updates(map[string]any{
			"absensi_checklist":           checklist,
			"absensi_checklist_submitted": true,
		})
	return res.RowsAffected, res.Error
}

func (r *absensiRepository) Close(ctx context.Context, id uuid.UUID, waktuKeluar time.Time, foto string, lat, lon float64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.AbsensiModel{}).
		Where("absensi_id = ? AND absensi_waktu_keluar IS NULL", id).
		Updates(map[string]any{
			"absensi_waktu_keluar":     waktuKeluar,
			"absensi_foto_keluar":      foto,
			"absensi_latitude_keluar":  lat,
			"absensi_longitude_keluar": lon,
		})
	return res.RowsAffected, res.Error
}

func (r *absensiRepository) ListOpenCheckedInBefore(ctx context.Context, batas time.Time) ([]model.AbsensiModel, error) {
	var items []model.AbsensiModel
	if err := r.db.WithContext(ctx).
		Where("absensi_waktu_keluar IS NULL AND absensi_waktu_masuk < ?", batas).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *absensiRepository) ListByDateWithUser(ctx context.Context, hariMulai, hariSelesai time.Time) ([]LaporanRow, error) {
	var rows []LaporanRow
	if err := r.db.WithContext(ctx).
		Table("absensi").
		Select("absensi.*, users.user_nama, users.user_username").
		Joins("JOIN users ON users.user_id = absensi.absensi_user_id").
		Where("absensi.absensi_waktu_masuk >= ? AND absensi.absensi_waktu_masuk < ?", hariMulai, hariSelesai).
		Order("absensi.absensi_waktu_masuk ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
