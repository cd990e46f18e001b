package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"piketku_backend/internals/configs"
	userDTO "piketku_backend/internals/features/users/dto"
	userRepo "piketku_backend/internals/features/users/repository"
	helper "piketku_backend/internals/helpers"
)

type AuthController struct {
	Repo userRepo.UserRepository
}

func NewAuthController(repo userRepo.UserRepository) *AuthController {
	return &AuthController{Repo: repo}
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req userDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Repo.FindByUsername(c.UserContext(), req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
	}

	claims := jwt.MapClaims{
		"user_id":  user.UserID.String(),
		"username": user.UserUsername,
		"role":     user.UserRole,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.Success(c, "Login berhasil", userDTO.LoginResponse{
		AccessToken: token,
		User:        userDTO.FromUserModel(*user),
	})
}

// GET /api/u/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	user, err := ctrl.Repo.FindByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	return helper.Success(c, "OK", userDTO.FromUserModel(*user))
}
