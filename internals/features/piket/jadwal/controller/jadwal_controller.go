package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"piketku_backend/internals/configs"
	jadwalDTO "piketku_backend/internals/features/piket/jadwal/dto"
	jadwalModel "piketku_backend/internals/features/piket/jadwal/model"
	jadwalRepo "piketku_backend/internals/features/piket/jadwal/repository"
	userRepo "piketku_backend/internals/features/users/repository"
	helper "piketku_backend/internals/helpers"
)

type JadwalController struct {
	Repo     jadwalRepo.JadwalRepository
	UserRepo userRepo.UserRepository
}

func NewJadwalController(repo jadwalRepo.JadwalRepository, users userRepo.UserRepository) *JadwalController {
	return &JadwalController{Repo: repo, UserRepo: users}
}

// GET /api/a/jadwal?dari=2025-01-01&sampai=2025-01-31
func (ctrl *JadwalController) List(c *fiber.Ctx) error {
	loc := configs.AppLocation

	var dari, sampai *time.Time
	if v := c.Query("dari"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter dari tidak valid (format: YYYY-MM-DD)")
		}
		dari = &t
	}
	if v := c.Query("sampai"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter sampai tidak valid (format: YYYY-MM-DD)")
		}
		sampai = &t
	}

	rows, err := ctrl.Repo.List(c.UserContext(), dari, sampai)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil jadwal")
	}

	resp := make([]jadwalDTO.JadwalResponse, 0, len(rows))
	for _, row := range rows {
		item := jadwalDTO.FromJadwalModel(row.JadwalPiketModel)
		item.UserNama = row.UserNama
		resp = append(resp, item)
	}
	return helper.Success(c, "OK", resp)
}

// GET /api/u/jadwal/saya - jadwal milik user login
func (ctrl *JadwalController) ListSaya(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	items, err := ctrl.Repo.ListByUser(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil jadwal")
	}

	resp := make([]jadwalDTO.JadwalResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, jadwalDTO.FromJadwalModel(m))
	}
	return helper.Success(c, "OK", resp)
}

// POST /api/a/jadwal
func (ctrl *JadwalController) Create(c *fiber.Ctx) error {
	var req jadwalDTO.CreateJadwalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// User harus ada
	if _, err := ctrl.UserRepo.FindByID(c.UserContext(), req.JadwalUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "User tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	m, err := req.ToModel(configs.AppLocation)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Tanggal tidak valid (format: YYYY-MM-DD)")
	}

	if err := ctrl.Repo.Create(c.UserContext(), m); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat jadwal")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Jadwal berhasil dibuat", jadwalDTO.FromJadwalModel(*m))
}

// PUT /api/a/jadwal/:id
func (ctrl *JadwalController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	existing, err := ctrl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Jadwal tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil jadwal")
	}

	var req jadwalDTO.UpdateJadwalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.JadwalUserID != nil {
		existing.JadwalUserID = *req.JadwalUserID
	}
	if req.JadwalTanggal != nil {
		tanggal, err := time.ParseInLocation("2006-01-02", *req.JadwalTanggal, configs.AppLocation)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tanggal tidak valid (format: YYYY-MM-DD)")
		}
		existing.JadwalTanggal = tanggal
		existing.JadwalHari = jadwalModel.NamaHari[tanggal.Weekday()]
	}

	if err := ctrl.Repo.Update(c.UserContext(), existing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui jadwal")
	}
	return helper.Success(c, "Jadwal berhasil diperbarui", jadwalDTO.FromJadwalModel(*existing))
}

// DELETE /api/a/jadwal/:id
func (ctrl *JadwalController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Repo.Delete(c.UserContext(), id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus jadwal")
	}
	return helper.Success(c, "Jadwal berhasil dihapus", nil)
}

// POST /api/a/jadwal/import - CSV kolom: username,tanggal (YYYY-MM-DD)
func (ctrl *JadwalController) ImportCSV(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File CSV wajib diunggah (field: file)")
	}

	src, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Gagal membuka file CSV")
	}
	defer src.Close()

	rows, parseErrs := parseJadwalCSV(src, configs.AppLocation)

	result := jadwalDTO.ImportJadwalResult{Errors: parseErrs}
	var batch []jadwalModel.JadwalPiketModel
	for _, row := range rows {
		user, err := ctrl.UserRepo.FindByUsername(c.UserContext(), row.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("baris %d: username %q tidak ditemukan", row.Line, row.Username))
				continue
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
		}
		batch = append(batch, jadwalModel.JadwalPiketModel{
			JadwalUserID:  user.UserID,
			JadwalTanggal: row.Tanggal,
			JadwalHari:    jadwalModel.NamaHari[row.Tanggal.Weekday()],
		})
	}

	if err := ctrl.Repo.CreateBatch(c.UserContext(), batch); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan jadwal hasil import")
	}
	result.Imported = len(batch)

	return helper.Success(c, fmt.Sprintf("%d jadwal berhasil diimport", result.Imported), result)
}
