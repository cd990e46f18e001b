package dto

import (
	"time"

	"github.com/google/uuid"

	model "piketku_backend/internals/features/informasi/model"
)

type InformasiResponse struct {
	InformasiID        uuid.UUID  `json:"informasi_id"`
	InformasiJudul     string     `json:"informasi_judul"`
	InformasiDeskripsi string     `json:"informasi_deskripsi"`
	InformasiFile      *string    `json:"informasi_file,omitempty"`
	InformasiCreatedAt time.Time  `json:"informasi_created_at"`
	InformasiUpdatedAt *time.Time `json:"informasi_updated_at,omitempty"`
}

func FromInformasiModel(m model.InformasiModel, decorate func(string) string) InformasiResponse {
	resp := InformasiResponse{
		InformasiID:        m.InformasiID,
		InformasiJudul:     m.InformasiJudul,
		InformasiDeskripsi: m.InformasiDeskripsi,
		InformasiCreatedAt: m.InformasiCreatedAt,
		InformasiUpdatedAt: m.InformasiUpdatedAt,
	}
	if m.InformasiFile != nil && decorate != nil {
		decorated := decorate(*m.InformasiFile)
		resp.InformasiFile = &decorated
	} else {
		resp.InformasiFile = m.InformasiFile
	}
	return resp
}
