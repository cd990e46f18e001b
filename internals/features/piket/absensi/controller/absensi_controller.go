package controller

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	absensiDTO "piketku_backend/internals/features/piket/absensi/dto"
	absensiService "piketku_backend/internals/features/piket/absensi/service"
	helper "piketku_backend/internals/helpers"
)

type AbsensiController struct {
	Service *absensiService.AbsensiService
}

func NewAbsensiController(svc *absensiService.AbsensiService) *AbsensiController {
	return &AbsensiController{Service: svc}
}

// POST /api/u/absensi/masuk - multipart: foto + latitude + longitude
func (ctrl *AbsensiController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	foto, err := bacaFoto(c)
	if err != nil {
		return err
	}

	m, err := ctrl.Service.CheckIn(c.UserContext(), userID, foto,
		c.FormValue("latitude"), c.FormValue("longitude"))
	if err != nil {
		return err
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated,
		"Check-in berhasil. Selamat bertugas!",
		absensiDTO.FromAbsensiModel(*m, func(p string) string { return helper.PublicURL(c, p) }))
}

// PUT /api/u/absensi/:id/checklist
func (ctrl *AbsensiController) SubmitChecklist(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	var req absensiDTO.SubmitChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.SubmitChecklist(c.UserContext(), sessionID, userID, req.ToItems()); err != nil {
		return err
	}
	return helper.Success(c, "Checklist berhasil disimpan", nil)
}

// POST /api/u/absensi/keluar/:id - multipart: foto + latitude + longitude
func (ctrl *AbsensiController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	foto, err := bacaFoto(c)
	if err != nil {
		return err
	}

	if err := ctrl.Service.CheckOut(c.UserContext(), sessionID, userID, foto,
		c.FormValue("latitude"), c.FormValue("longitude")); err != nil {
		return err
	}
	return helper.Success(c, "Check-out berhasil. Terima kasih sudah piket!", nil)
}

// GET /api/u/absensi/status - sesi aktif hari ini atau null
func (ctrl *AbsensiController) Status(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	m, err := ctrl.Service.GetActiveSession(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if m == nil {
		return helper.Success(c, "Tidak ada sesi aktif", nil)
	}
	return helper.Success(c, "OK",
		absensiDTO.FromAbsensiModel(*m, func(p string) string { return helper.PublicURL(c, p) }))
}

// GET /api/u/absensi/riwayat - seluruh riwayat user, terbaru dulu
func (ctrl *AbsensiController) History(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	items, err := ctrl.Service.GetHistory(c.UserContext(), userID)
	if err != nil {
		return err
	}

	resp := make([]absensiDTO.AbsensiResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, absensiDTO.FromAbsensiModel(m,
			func(p string) string { return helper.PublicURL(c, p) }))
	}
	return helper.Success(c, "OK", resp)
}

// bacaFoto mengambil bytes foto dari field multipart "foto".
func bacaFoto(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("foto")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Foto wajib diunggah (field: foto)")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gagal membuka foto")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gagal membaca foto")
	}
	return data, nil
}
