package dto

import (
	"time"

	"github.com/google/uuid"

	model "piketku_backend/internals/features/piket/jadwal/model"
)

/* ===================== REQUESTS ===================== */

type CreateJadwalRequest struct {
	JadwalUserID  uuid.UUID `json:"jadwal_user_id" validate:"required"`
	JadwalTanggal string    `json:"jadwal_tanggal" validate:"required,datetime=2006-01-02"`
}

func (r *CreateJadwalRequest) ToModel(loc *time.Location) (*model.JadwalPiketModel, error) {
	tanggal, err := time.ParseInLocation("2006-01-02", r.JadwalTanggal, loc)
	if err != nil {
		return nil, err
	}
	return &model.JadwalPiketModel{
		JadwalUserID:  r.JadwalUserID,
		JadwalTanggal: tanggal,
		JadwalHari:    model.NamaHari[tanggal.Weekday()],
	}, nil
}

type UpdateJadwalRequest struct {
	JadwalUserID  *uuid.UUID `json:"jadwal_user_id" validate:"omitempty"`
	JadwalTanggal *string    `json:"jadwal_tanggal" validate:"omitempty,datetime=2006-01-02"`
}

/* ===================== RESPONSES ===================== */

type JadwalResponse struct {
	JadwalID      uuid.UUID `json:"jadwal_id"`
	JadwalUserID  uuid.UUID `json:"jadwal_user_id"`
	JadwalTanggal string    `json:"jadwal_tanggal"`
	JadwalHari    string    `json:"jadwal_hari"`
	UserNama      string    `json:"user_nama,omitempty"`
}

func FromJadwalModel(m model.JadwalPiketModel) JadwalResponse {
	return JadwalResponse{
		JadwalID:      m.JadwalID,
		JadwalUserID:  m.JadwalUserID,
		JadwalTanggal: m.JadwalTanggal.Format("2006-01-02"),
		JadwalHari:    m.JadwalHari,
	}
}

// Hasil import CSV: baris sukses + daftar error per baris.
type ImportJadwalResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}
