package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	informasiDTO "piketku_backend/internals/features/informasi/dto"
	informasiModel "piketku_backend/internals/features/informasi/model"
	helper "piketku_backend/internals/helpers"
	"piketku_backend/internals/helpers/storage"
)

type InformasiController struct {
	DB   *gorm.DB
	Foto storage.FotoStorage
}

func NewInformasiController(db *gorm.DB, foto storage.FotoStorage) *InformasiController {
	return &InformasiController{DB: db, Foto: foto}
}

// GET /api/u/informasi
func (ctrl *InformasiController) List(c *fiber.Ctx) error {
	var items []informasiModel.InformasiModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("informasi_created_at DESC").
		Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar informasi")
	}

	resp := make([]informasiDTO.InformasiResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, informasiDTO.FromInformasiModel(m,
			func(p string) string { return helper.PublicURL(c, p) }))
	}
	return helper.Success(c, "OK", resp)
}

// POST /api/a/informasi - multipart: judul + deskripsi + file (opsional)
func (ctrl *InformasiController) Create(c *fiber.Ctx) error {
	judul := strings.TrimSpace(c.FormValue("judul"))
	deskripsi := strings.TrimSpace(c.FormValue("deskripsi"))
	if judul == "" || deskripsi == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Judul dan deskripsi wajib diisi")
	}

	m := informasiModel.InformasiModel{
		InformasiJudul:     judul,
		InformasiDeskripsi: deskripsi,
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		relPath, err := ctrl.Foto.SaveMultipart("informasi", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan berkas informasi")
		}
		m.InformasiFile = &relPath
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if m.InformasiFile != nil {
			_ = ctrl.Foto.Remove(*m.InformasiFile)
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat informasi")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Informasi berhasil dibuat",
		informasiDTO.FromInformasiModel(m, func(p string) string { return helper.PublicURL(c, p) }))
}

// PUT /api/a/informasi/:id
func (ctrl *InformasiController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var existing informasiModel.InformasiModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&existing, "informasi_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Informasi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data informasi")
	}

	if v := strings.TrimSpace(c.FormValue("judul")); v != "" {
		existing.InformasiJudul = v
	}
	if v := strings.TrimSpace(c.FormValue("deskripsi")); v != "" {
		existing.InformasiDeskripsi = v
	}
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		relPath, err := ctrl.Foto.SaveMultipart("informasi", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan berkas informasi")
		}
		if existing.InformasiFile != nil {
			_ = ctrl.Foto.Remove(*existing.InformasiFile)
		}
		existing.InformasiFile = &relPath
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&existing).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui informasi")
	}
	return helper.Success(c, "Informasi berhasil diperbarui",
		informasiDTO.FromInformasiModel(existing, func(p string) string { return helper.PublicURL(c, p) }))
}

// DELETE /api/a/informasi/:id
func (ctrl *InformasiController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var existing informasiModel.InformasiModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&existing, "informasi_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Informasi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data informasi")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Delete(&informasiModel.InformasiModel{}, "informasi_id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus informasi")
	}
	if existing.InformasiFile != nil {
		_ = ctrl.Foto.Remove(*existing.InformasiFile)
	}
	return helper.Success(c, "Informasi berhasil dihapus", nil)
}
