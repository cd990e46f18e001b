package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userDTO "piketku_backend/internals/features/users/dto"
	userRepo "piketku_backend/internals/features/users/repository"
	helper "piketku_backend/internals/helpers"
)

type UserController struct {
	Repo userRepo.UserRepository
}

func NewUserController(repo userRepo.UserRepository) *UserController {
	return &UserController{Repo: repo}
}

// GET /api/a/users
func (ctrl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	items, total, err := ctrl.Repo.List(c.UserContext(), paging.Offset, paging.Limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar user")
	}

	resp := make([]userDTO.UserResponse, 0, len(items))
	for _, m := range items {
		resp = append(resp, userDTO.FromUserModel(m))
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      resp,
		"pagination": helper.BuildPagination(paging, total),
	})
}

// POST /api/a/users
func (ctrl *UserController) Create(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}

	m := req.ToModel()
	m.UserPassword = string(hash)

	if err := ctrl.Repo.Create(c.UserContext(), m); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "User berhasil dibuat", userDTO.FromUserModel(*m))
}

// PUT /api/a/users/:id
func (ctrl *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	existing, err := ctrl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.UserNama != nil {
		existing.UserNama = *req.UserNama
	}
	if req.UserUsername != nil {
		existing.UserUsername = *req.UserUsername
	}
	if req.UserRole != nil {
		existing.UserRole = *req.UserRole
	}
	if req.UserPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.UserPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
		}
		existing.UserPassword = string(hash)
	}

	if err := ctrl.Repo.Update(c.UserContext(), existing); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui user")
	}

	return helper.Success(c, "User berhasil diperbarui", userDTO.FromUserModel(*existing))
}

// DELETE /api/a/users/:id
func (ctrl *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := ctrl.Repo.Delete(c.UserContext(), id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus user")
	}

	return helper.Success(c, "User berhasil dihapus", nil)
}
