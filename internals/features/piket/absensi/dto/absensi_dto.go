package dto

import (
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	model "piketku_backend/internals/features/piket/absensi/model"
)

/* ===================== REQUESTS ===================== */

type SubmitChecklistRequest struct {
	Checklist []ChecklistItemRequest `json:"checklist" validate:"dive"`
}

type ChecklistItemRequest struct {
	BarangID uuid.UUID `json:"barang_id" validate:"required"`
	Kode     string    `json:"kode" validate:"omitempty,max=50"`
	Nama     string    `json:"nama" validate:"omitempty,max=100"`
	Status   string    `json:"status" validate:"required,oneof=Tersedia Habis Dipinjam Rusak Hilang"`
	Catatan  string    `json:"catatan" validate:"omitempty,max=255"`
}

func (r *SubmitChecklistRequest) ToItems() []model.ChecklistItem {
	items := make([]model.ChecklistItem, 0, len(r.Checklist))
	for _, it := range r.Checklist {
		items = append(items, model.ChecklistItem{
			BarangID: it.BarangID,
			Kode:     it.Kode,
			Nama:     it.Nama,
			Status:   it.Status,
			Catatan:  it.Catatan,
		})
	}
	return items
}

/* ===================== RESPONSES ===================== */

type AbsensiResponse struct {
	AbsensiID     uuid.UUID `json:"absensi_id"`
	AbsensiUserID uuid.UUID `json:"absensi_user_id"`

	AbsensiWaktuMasuk  time.Time  `json:"absensi_waktu_masuk"`
	AbsensiWaktuKeluar *time.Time `json:"absensi_waktu_keluar,omitempty"`

	AbsensiFotoMasuk      string  `json:"absensi_foto_masuk"`
	AbsensiFotoMasukThumb string  `json:"absensi_foto_masuk_thumb,omitempty"`
	AbsensiFotoKeluar     *string `json:"absensi_foto_keluar,omitempty"`

	AbsensiLatitudeMasuk   float64  `json:"absensi_latitude_masuk"`
	AbsensiLongitudeMasuk  float64  `json:"absensi_longitude_masuk"`
	AbsensiLatitudeKeluar  *float64 `json:"absensi_latitude_keluar,omitempty"`
	AbsensiLongitudeKeluar *float64 `json:"absensi_longitude_keluar,omitempty"`

	AbsensiChecklist          []model.ChecklistItem `json:"absensi_checklist"`
	AbsensiChecklistSubmitted bool                  `json:"absensi_checklist_submitted"`
}

// FromAbsensiModel memetakan model ke response. decorate mengubah path foto
// relatif menjadi URL absolut (sentinel system-closed dibiarkan apa adanya).
func FromAbsensiModel(m model.AbsensiModel, decorate func(string) string) AbsensiResponse {
	if decorate == nil {
		decorate = func(s string) string { return s }
	}

	var checklist []model.ChecklistItem
	if len(m.AbsensiChecklist) > 0 {
		if err := sonic.Unmarshal(m.AbsensiChecklist, &checklist); err != nil {
			// jangan gagalkan read path; checklist korup tampil kosong
			log.Printf("[ABSENSI] checklist korup sesi %s: %v", m.AbsensiID, err)
		}
	}

	resp := AbsensiResponse{
		AbsensiID:                 m.AbsensiID,
		AbsensiUserID:             m.AbsensiUserID,
		AbsensiWaktuMasuk:         m.AbsensiWaktuMasuk,
		AbsensiWaktuKeluar:        m.AbsensiWaktuKeluar,
		AbsensiFotoMasuk:          decorate(m.AbsensiFotoMasuk),
		AbsensiLatitudeMasuk:      m.AbsensiLatitudeMasuk,
		AbsensiLongitudeMasuk:     m.AbsensiLongitudeMasuk,
		AbsensiLatitudeKeluar:     m.AbsensiLatitudeKeluar,
		AbsensiLongitudeKeluar:    m.AbsensiLongitudeKeluar,
		AbsensiChecklist:          checklist,
		AbsensiChecklistSubmitted: m.AbsensiChecklistSubmitted,
	}
	// URL thumbnail mengikuti konvensi nama (foto.jpg -> foto-thumb.webp).
	// Pembuatan thumbnail best-effort, jadi URL ini bisa 404; klien wajib
	// fallback ke foto utama.
	if strings.HasSuffix(m.AbsensiFotoMasuk, ".jpg") {
		resp.AbsensiFotoMasukThumb = decorate(strings.TrimSuffix(m.AbsensiFotoMasuk, ".jpg") + "-thumb.webp")
	}
	if m.AbsensiFotoKeluar != nil {
		decorated := decorate(*m.AbsensiFotoKeluar)
		resp.AbsensiFotoKeluar = &decorated
	}
	return resp
}

// Baris laporan admin: sesi + identitas petugas.
type LaporanResponse struct {
	AbsensiResponse
	UserNama     string `json:"user_nama"`
	UserUsername string `json:"user_username"`
}
