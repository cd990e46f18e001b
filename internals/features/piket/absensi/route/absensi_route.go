package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"piketku_backend/internals/configs"
	absensiController "piketku_backend/internals/features/piket/absensi/controller"
	absensiRepo "piketku_backend/internals/features/piket/absensi/repository"
	absensiService "piketku_backend/internals/features/piket/absensi/service"
	barangRepo "piketku_backend/internals/features/piket/barang/repository"
	jadwalRepo "piketku_backend/internals/features/piket/jadwal/repository"
	"piketku_backend/internals/helpers/storage"
)

func newService(db *gorm.DB, foto storage.FotoStorage) *absensiService.AbsensiService {
	annotator := absensiService.FallbackAnnotator{
		Primary: absensiService.NewWatermarkAnnotator(
			absensiService.NewNominatimClientFromEnv(),
			configs.AppLocation,
		),
	}
	return absensiService.NewAbsensiService(
		absensiRepo.NewAbsensiRepository(db),
		jadwalRepo.NewJadwalRepository(db),
		barangRepo.NewBarangRepository(db),
		annotator,
		foto,
		configs.AppLocation,
	)
}

func AbsensiUserRoutes(private fiber.Router, db *gorm.DB, foto storage.FotoStorage) {
	ctrl := absensiController.NewAbsensiController(newService(db, foto))

	absensi := private.Group("/absensi")
	absensi.Post("/masuk", ctrl.CheckIn)
	absensi.Post("/keluar/:id", ctrl.CheckOut)
	absensi.Put("/:id/checklist", ctrl.SubmitChecklist)
	absensi.Get("/status", ctrl.Status)
	absensi.Get("/riwayat", ctrl.History)
}

func AbsensiAdminRoutes(admin fiber.Router, db *gorm.DB, foto storage.FotoStorage) {
	ctrl := absensiController.NewLaporanController(newService(db, foto))

	laporan := admin.Group("/laporan")
	laporan.Get("/", ctrl.ByDate)
	laporan.Get("/hari-ini", ctrl.HariIni)
}
