package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "piketku_backend/internals/features/users/controller"
	userRepo "piketku_backend/internals/features/users/repository"
	"piketku_backend/internals/middlewares"
)

// AuthRoutes: login (public, rate-limited) + profil user login.
func AuthRoutes(public fiber.Router, private fiber.Router, db *gorm.DB) {
	repo := userRepo.NewUserRepository(db)
	ctrl := userController.NewAuthController(repo)

	public.Post("/auth/login", middlewares.LoginRateLimiter(), ctrl.Login)
	private.Get("/me", ctrl.Me)
}

// AdminUserRoutes: CRUD user oleh admin.
func AdminUserRoutes(admin fiber.Router, db *gorm.DB) {
	repo := userRepo.NewUserRepository(db)
	ctrl := userController.NewUserController(repo)

	users := admin.Group("/users")
	users.Get("/", ctrl.List)
	users.Post("/", ctrl.Create)
	users.Put("/:id", ctrl.Update)
	users.Delete("/:id", ctrl.Delete)
}
