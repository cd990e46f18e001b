package dto

import (
	"time"

	"github.com/google/uuid"

	model "piketku_backend/internals/features/piket/barang/model"
)

/* ===================== REQUESTS ===================== */

type CreateBarangRequest struct {
	BarangKode       string  `json:"barang_kode" validate:"required,max=50"`
	BarangNama       string  `json:"barang_nama" validate:"required,max=100"`
	BarangStatus     string  `json:"barang_status" validate:"omitempty,oneof=Tersedia Habis Dipinjam Rusak Hilang"`
	BarangKeterangan *string `json:"barang_keterangan" validate:"omitempty"`
}

func (r *CreateBarangRequest) ToModel() *model.BarangModel {
	status := model.StatusTersedia
	if r.BarangStatus != "" {
		status = model.StatusBarang(r.BarangStatus)
	}
	return &model.BarangModel{
		BarangKode:       r.BarangKode,
		BarangNama:       r.BarangNama,
		BarangStatus:     status,
		BarangKeterangan: r.BarangKeterangan,
	}
}

// Update (partial, semua optional)
type UpdateBarangRequest struct {
	BarangKode       *string `json:"barang_kode" validate:"omitempty,max=50"`
	BarangNama       *string `json:"barang_nama" validate:"omitempty,max=100"`
	BarangStatus     *string `json:"barang_status" validate:"omitempty,oneof=Tersedia Habis Dipinjam Rusak Hilang"`
	BarangKeterangan *string `json:"barang_keterangan" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type BarangResponse struct {
	BarangID         uuid.UUID          `json:"barang_id"`
	BarangKode       string             `json:"barang_kode"`
	BarangNama       string             `json:"barang_nama"`
	BarangStatus     model.StatusBarang `json:"barang_status"`
	BarangKeterangan *string            `json:"barang_keterangan,omitempty"`
	BarangCreatedAt  time.Time          `json:"barang_created_at"`
	BarangUpdatedAt  *time.Time         `json:"barang_updated_at,omitempty"`
}

func FromBarangModel(m model.BarangModel) BarangResponse {
	return BarangResponse{
		BarangID:         m.BarangID,
		BarangKode:       m.BarangKode,
		BarangNama:       m.BarangNama,
		BarangStatus:     m.BarangStatus,
		BarangKeterangan: m.BarangKeterangan,
		BarangCreatedAt:  m.BarangCreatedAt,
		BarangUpdatedAt:  m.BarangUpdatedAt,
	}
}
