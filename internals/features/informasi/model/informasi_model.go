package model

import (
	"time"

	"github.com/google/uuid"
)

type InformasiModel struct {
	InformasiID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:informasi_id" json:"informasi_id"`
	InformasiJudul     string    `gorm:"type:varchar(150);not null;column:informasi_judul" json:"informasi_judul"`
	InformasiDeskripsi string    `gorm:"type:text;not null;column:informasi_deskripsi" json:"informasi_deskripsi"`

	// Path relatif dokumen lampiran (opsional)
	InformasiFile *string `gorm:"type:varchar(255);column:informasi_file" json:"informasi_file,omitempty"`

	InformasiCreatedAt time.Time  `gorm:"column:informasi_created_at;autoCreateTime" json:"informasi_created_at"`
	InformasiUpdatedAt *time.Time `gorm:"column:informasi_updated_at;autoUpdateTime" json:"informasi_updated_at,omitempty"`
}

func (InformasiModel) TableName() string {
	return "informasi"
}
