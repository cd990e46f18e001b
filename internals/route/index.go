package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"piketku_backend/internals/configs"
	informasiRoute "piketku_backend/internals/features/informasi/route"
	absensiRoute "piketku_backend/internals/features/piket/absensi/route"
	barangRoute "piketku_backend/internals/features/piket/barang/route"
	jadwalRoute "piketku_backend/internals/features/piket/jadwal/route"
	userRoute "piketku_backend/internals/features/users/route"
	"piketku_backend/internals/helpers/storage"
	authMiddleware "piketku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, foto storage.FotoStorage) {
	jwtAuth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", jwtAuth)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", jwtAuth, authMiddleware.IsAdmin("manajemen piket"))

	userRoute.AuthRoutes(public, private, db)
	userRoute.AdminUserRoutes(admin, db)

	jadwalRoute.JadwalUserRoutes(private, db)
	jadwalRoute.JadwalAdminRoutes(admin, db)

	barangRoute.BarangUserRoutes(private, db)
	barangRoute.BarangAdminRoutes(admin, db)

	absensiRoute.AbsensiUserRoutes(private, db, foto)
	absensiRoute.AbsensiAdminRoutes(admin, db, foto)

	informasiRoute.InformasiUserRoutes(private, db, foto)
	informasiRoute.InformasiAdminRoutes(admin, db, foto)
}
