package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	informasiController "piketku_backend/internals/features/informasi/controller"
	"piketku_backend/internals/helpers/storage"
)

func InformasiUserRoutes(private fiber.Router, db *gorm.DB, foto storage.FotoStorage) {
	ctrl := informasiController.NewInformasiController(db, foto)
	private.Get("/informasi", ctrl.List)
}

func InformasiAdminRoutes(admin fiber.Router, db *gorm.DB, foto storage.FotoStorage) {
	ctrl := informasiController.NewInformasiController(db, foto)

	informasi := admin.Group("/informasi")
	informasi.Post("/", ctrl.Create)
	informasi.Put("/:id", ctrl.Update)
	informasi.Delete("/:id", ctrl.Delete)
}
