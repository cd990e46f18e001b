package dto

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	model "piketku_backend/internals/features/piket/absensi/model"
)

func TestFromAbsensiModel_ChecklistKorupTampilKosong(t *testing.T) {
	m := model.AbsensiModel{
		AbsensiID:        uuid.New(),
		AbsensiFotoMasuk: "uploads/absensi/absen-x.jpg",
		AbsensiChecklist: datatypes.JSON(`{bukan json valid`),
	}

	resp := FromAbsensiModel(m, nil)
	assert.Empty(t, resp.AbsensiChecklist, "checklist korup tidak boleh bikin panic atau error")
}

func TestFromAbsensiModel_ThumbnailHanyaUntukFotoJPG(t *testing.T) {
	// sama seperti helper.PublicURL: hanya path upload yang didekorasi
	decorate := func(p string) string {
		if strings.HasPrefix(p, "uploads/") {
			return "http://host/" + p
		}
		return p
	}

	m := model.AbsensiModel{AbsensiFotoMasuk: "uploads/absensi/absen-x.jpg"}
	resp := FromAbsensiModel(m, decorate)
	assert.Equal(t, "http://host/uploads/absensi/absen-x-thumb.webp", resp.AbsensiFotoMasukThumb)

	// Sentinel sesi ditutup sistem: bukan berkas, tidak ada thumbnail
	sentinel := model.FotoKeluarSistem
	m.AbsensiFotoKeluar = &sentinel
	resp = FromAbsensiModel(m, decorate)
	assert.Equal(t, model.FotoKeluarSistem, *resp.AbsensiFotoKeluar)
	assert.False(t, strings.Contains(*resp.AbsensiFotoKeluar, "http://"),
		"sentinel tidak didekorasi jadi URL")
}
