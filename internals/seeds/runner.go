package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"piketku_backend/internals/configs"
	"piketku_backend/internals/constants"
	userModel "piketku_backend/internals/features/users/model"
)

// Run menjalankan seed awal. Aman dipanggil berulang: hanya membuat
// admin default kalau tabel users masih kosong.
func Run(db *gorm.DB) {
	var count int64
	if err := db.Model(&userModel.UserModel{}).Count(&count).Error; err != nil {
		log.Printf("[SEED] gagal cek tabel users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := configs.GetEnvOrDefault("ADMIN_USERNAME", "admin")
	password := configs.GetEnvOrDefault("ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[SEED] gagal hash password admin: %v", err)
		return
	}

	admin := userModel.UserModel{
		UserNama:     "Administrator",
		UserUsername: username,
		UserPassword: string(hash),
		UserRole:     constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[SEED] gagal membuat admin default: %v", err)
		return
	}
	log.Printf("✅ [SEED] admin default %q dibuat", username)
}
