package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	informasiModel "piketku_backend/internals/features/informasi/model"
	absensiModel "piketku_backend/internals/features/piket/absensi/model"
	barangModel "piketku_backend/internals/features/piket/barang/model"
	jadwalModel "piketku_backend/internals/features/piket/jadwal/model"
	userModel "piketku_backend/internals/features/users/model"
)

// ConnectDB membuka koneksi PostgreSQL dan mengembalikan handle-nya.
// Handle ini di-inject ke controller/repository/scheduler dari main -
// tidak ada variabel global.
func ConnectDB() (*gorm.DB, error) {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "disable")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=piketku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 aman untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	log.Println("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate semua tabel + index tambahan yang tidak
// bisa dinyatakan lewat tag GORM.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&jadwalModel.JadwalPiketModel{},
		&barangModel.BarangModel{},
		&absensiModel.AbsensiModel{},
		&informasiModel.InformasiModel{},
	); err != nil {
		return fmt.Errorf("auto migrate gagal: %w", err)
	}

	// Satu sesi terbuka per user: partial unique index, pelanggarannya
	// dipetakan jadi error konflik di repository absensi.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_absensi_open_per_user
		 ON absensi (absensi_user_id)
		 WHERE absensi_waktu_keluar IS NULL`,
	).Error; err != nil {
		return fmt.Errorf("buat partial unique index gagal: %w", err)
	}
	return nil
}

func WarmUpQueries(db *gorm.DB) {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(db); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
