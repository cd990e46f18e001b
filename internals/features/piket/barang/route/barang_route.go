package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	barangController "piketku_backend/internals/features/piket/barang/controller"
	barangRepo "piketku_backend/internals/features/piket/barang/repository"
)

func BarangUserRoutes(private fiber.Router, db *gorm.DB) {
	ctrl := barangController.NewBarangController(barangRepo.NewBarangRepository(db))
	private.Get("/barang", ctrl.List)
}

func BarangAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := barangController.NewBarangController(barangRepo.NewBarangRepository(db))

	barang := admin.Group("/barang")
	barang.Get("/", ctrl.List)
	barang.Post("/", ctrl.Create)
	barang.Put("/:id", ctrl.Update)
	barang.Delete("/:id", ctrl.Delete)
}
