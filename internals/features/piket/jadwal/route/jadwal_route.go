package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	jadwalController "piketku_backend/internals/features/piket/jadwal/controller"
	jadwalRepo "piketku_backend/internals/features/piket/jadwal/repository"
	userRepo "piketku_backend/internals/features/users/repository"
)

func JadwalUserRoutes(private fiber.Router, db *gorm.DB) {
	ctrl := jadwalController.NewJadwalController(
		jadwalRepo.NewJadwalRepository(db),
		userRepo.NewUserRepository(db),
	)
	private.Get("/jadwal/saya", ctrl.ListSaya)
}

func JadwalAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := jadwalController.NewJadwalController(
		jadwalRepo.NewJadwalRepository(db),
		userRepo.NewUserRepository(db),
	)

	jadwal := admin.Group("/jadwal")
	jadwal.Get("/", ctrl.List)
	jadwal.Post("/", ctrl.Create)
	jadwal.Post("/import", ctrl.ImportCSV)
	jadwal.Put("/:id", ctrl.Update)
	jadwal.Delete("/:id", ctrl.Delete)
}
