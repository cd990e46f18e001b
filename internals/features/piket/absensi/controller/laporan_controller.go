package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"piketku_backend/internals/configs"
	absensiDTO "piketku_backend/internals/features/piket/absensi/dto"
	absensiService "piketku_backend/internals/features/piket/absensi/service"
	helper "piketku_backend/internals/helpers"
)

// LaporanController: view baca untuk admin (sesi + identitas petugas).
type LaporanController struct {
	Service *absensiService.AbsensiService
}

func NewLaporanController(svc *absensiService.AbsensiService) *LaporanController {
	return &LaporanController{Service: svc}
}

// GET /api/a/laporan?tanggal=2025-01-06
func (ctrl *LaporanController) ByDate(c *fiber.Ctx) error {
	loc := configs.AppLocation

	tanggal := time.Now().In(loc)
	if v := c.Query("tanggal"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter tanggal tidak valid (format: YYYY-MM-DD)")
		}
		tanggal = t
	}

	rows, err := ctrl.Service.LaporanByDate(c.UserContext(), tanggal)
	if err != nil {
		return err
	}

	resp := make([]absensiDTO.LaporanResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, absensiDTO.LaporanResponse{
			AbsensiResponse: absensiDTO.FromAbsensiModel(row.AbsensiModel,
				func(p string) string { return helper.PublicURL(c, p) }),
			UserNama:     row.UserNama,
			UserUsername: row.UserUsername,
		})
	}
	return helper.Success(c, "OK", resp)
}

// GET /api/a/laporan/hari-ini - status piket hari berjalan
func (ctrl *LaporanController) HariIni(c *fiber.Ctx) error {
	rows, err := ctrl.Service.LaporanByDate(c.UserContext(), time.Now().In(configs.AppLocation))
	if err != nil {
		return err
	}

	resp := make([]absensiDTO.LaporanResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, absensiDTO.LaporanResponse{
			AbsensiResponse: absensiDTO.FromAbsensiModel(row.AbsensiModel,
				func(p string) string { return helper.PublicURL(c, p) }),
			UserNama:     row.UserNama,
			UserUsername: row.UserUsername,
		})
	}
	return helper.Success(c, "OK", resp)
}
