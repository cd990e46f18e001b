package model

import (
	"time"

	"github.com/google/uuid"
)

type JadwalPiketModel struct {
	JadwalID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:jadwal_id" json:"jadwal_id"`
	JadwalUserID uuid.UUID `gorm:"type:uuid;not null;column:jadwal_user_id;uniqueIndex:uq_jadwal_user_tanggal,priority:1" json:"jadwal_user_id"`

	// Tanggal piket (date, tanpa jam). Satu user maksimal satu entri per tanggal.
	JadwalTanggal time.Time `gorm:"type:date;not null;column:jadwal_tanggal;index:idx_jadwal_tanggal;uniqueIndex:uq_jadwal_user_tanggal,priority:2" json:"jadwal_tanggal"`
	JadwalHari    string    `gorm:"type:varchar(10);not null;column:jadwal_hari" json:"jadwal_hari"`

	JadwalCreatedAt time.Time `gorm:"column:jadwal_created_at;autoCreateTime" json:"jadwal_created_at"`
}

func (JadwalPiketModel) TableName() string {
	return "jadwal_piket"
}

// NamaHari label hari berbahasa Indonesia untuk kolom jadwal_hari.
var NamaHari = map[time.Weekday]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}
