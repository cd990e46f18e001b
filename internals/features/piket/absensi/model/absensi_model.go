package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FotoKeluarSistem menandai sesi yang ditutup paksa oleh auto-close
// (tidak ada bukti foto keluar).
const FotoKeluarSistem = "system-closed"

// ChecklistItem satu observasi kondisi barang di dalam checklist sesi.
type ChecklistItem struct {
	BarangID uuid.UUID `json:"barang_id"`
	Kode     string    `json:"kode"`
	Nama     string    `json:"nama"`
	Status   string    `json:"status"`
	Catatan  string    `json:"catatan"`
}

type AbsensiModel struct {
	AbsensiID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:absensi_id" json:"absensi_id"`
	AbsensiUserID uuid.UUID `gorm:"type:uuid;not null;column:absensi_user_id;index:idx_absensi_user_waktu,priority:1" json:"absensi_user_id"`

	AbsensiWaktuMasuk  time.Time  `gorm:"not null;column:absensi_waktu_masuk;index:idx_absensi_user_waktu,priority:2" json:"absensi_waktu_masuk"`
	AbsensiWaktuKeluar *time.Time `gorm:"column:absensi_waktu_keluar" json:"absensi_waktu_keluar,omitempty"` // NULL = sesi masih terbuka

	AbsensiFotoMasuk  string  `gorm:"type:varchar(255);not null;column:absensi_foto_masuk" json:"absensi_foto_masuk"`
	AbsensiFotoKeluar *string `gorm:"type:varchar(255);column:absensi_foto_keluar" json:"absensi_foto_keluar,omitempty"`

	AbsensiLatitudeMasuk   float64  `gorm:"not null;column:absensi_latitude_masuk" json:"absensi_latitude_masuk"`
	AbsensiLongitudeMasuk  float64  `gorm:"not null;column:absensi_longitude_masuk" json:"absensi_longitude_masuk"`
	AbsensiLatitudeKeluar  *float64 `gorm:"column:absensi_latitude_keluar" json:"absensi_latitude_keluar,omitempty"`
	AbsensiLongitudeKeluar *float64 `gorm:"column:absensi_longitude_keluar" json:"absensi_longitude_keluar,omitempty"`

	// Snapshot checklist barang (JSON array of ChecklistItem)
	AbsensiChecklist          datatypes.JSON `gorm:"type:jsonb;column:absensi_checklist" json:"absensi_checklist"`
	AbsensiChecklistSubmitted bool           `gorm:"not null;default:false;column:absensi_checklist_submitted" json:"absensi_checklist_submitted"`

	AbsensiCreatedAt time.Time  `gorm:"column:absensi_created_at;autoCreateTime" json:"absensi_created_at"`
	AbsensiUpdatedAt *time.Time `gorm:"column:absensi_updated_at;autoUpdateTime" json:"absensi_updated_at,omitempty"`
}

func (AbsensiModel) TableName() string {
	return "absensi"
}
