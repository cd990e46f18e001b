package model

import (
	"time"

	"github.com/google/uuid"
)

// Status kondisi barang inventaris
type StatusBarang string

const (
	StatusTersedia StatusBarang = "Tersedia"
	StatusHabis    StatusBarang = "Habis"
	StatusDipinjam StatusBarang = "Dipinjam"
	StatusRusak    StatusBarang = "Rusak"
	StatusHilang   StatusBarang = "Hilang"
)

func (s StatusBarang) Valid() bool {
	switch s {
	case StatusTersedia, StatusHabis, StatusDipinjam, StatusRusak, StatusHilang:
		return true
	}
	return false
}

type BarangModel struct {
	BarangID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:barang_id" json:"barang_id"`
	BarangKode string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_barang_kode;column:barang_kode" json:"barang_kode"`
	BarangNama string    `gorm:"type:varchar(100);not null;column:barang_nama" json:"barang_nama"`

	BarangStatus     StatusBarang `gorm:"type:varchar(20);not null;default:'Tersedia';column:barang_status" json:"barang_status"`
	BarangKeterangan *string      `gorm:"type:text;column:barang_keterangan" json:"barang_keterangan,omitempty"`

	BarangCreatedAt time.Time  `gorm:"column:barang_created_at;autoCreateTime" json:"barang_created_at"`
	BarangUpdatedAt *time.Time `gorm:"column:barang_updated_at;autoUpdateTime" json:"barang_updated_at,omitempty"`
}

func (BarangModel) TableName() string {
	return "barang"
}
