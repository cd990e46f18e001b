package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	barangDTO "piketku_backend/internals/features/piket/barang/dto"
	barangModel "piketku_backend/internals/features/piket/barang/model"
	barangRepo "piketku_backend/internals/features/piket/barang/repository"
	helper "piketku_backend/internals/helpers"
)

type BarangController struct {
	Repo barangRepo.BarangRepository
}

func NewBarangController(repo barangRepo.BarangRepository) *BarangController {
	return &BarangController{Repo: repo}
}

// GET /api/u/barang - daftar barang (dipakai petugas saat mengisi checklist)
func (ctrl *BarangController) List(c *fiber.Ctx) error {
	items, err := ctrl.Repo.List(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar barang")
	}

	resp := make([]barangDTO.BarangResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, barangDTO.FromBarangModel(m))
	}
	return helper.Success(c, "OK", resp)
}

// POST /api/a/barang
func (ctrl *BarangController) Create(c *fiber.Ctx) error {
	var req barangDTO.CreateBarangRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.Repo.Create(c.UserContext(), m); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat barang")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Barang berhasil dibuat", barangDTO.FromBarangModel(*m))
}

// PUT /api/a/barang/:id
func (ctrl *BarangController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	existing, err := ctrl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Barang tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data barang")
	}

	var req barangDTO.UpdateBarangRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.BarangKode != nil {
		existing.BarangKode = *req.BarangKode
	}
	if req.BarangNama != nil {
		existing.BarangNama = *req.BarangNama
	}
	if req.BarangStatus != nil {
		existing.BarangStatus = barangModel.StatusBarang(*req.BarangStatus)
	}
	if req.BarangKeterangan != nil {
		existing.BarangKeterangan = req.BarangKeterangan
	}

	if err := ctrl.Repo.Update(c.UserContext(), existing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui barang")
	}
	return helper.Success(c, "Barang berhasil diperbarui", barangDTO.FromBarangModel(*existing))
}

// DELETE /api/a/barang/:id
func (ctrl *BarangController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Repo.Delete(c.UserContext(), id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus barang")
	}
	return helper.Success(c, "Barang berhasil dihapus", nil)
}
