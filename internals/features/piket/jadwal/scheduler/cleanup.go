package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	jadwalRepo "piketku_backend/internals/features/piket/jadwal/repository"
)

// RunCleanupOnce menghapus semua jadwal yang tanggalnya sebelum hari ini
// (menurut lokasi loc). Idempotent: run kedua tidak menemukan baris lagi.
func RunCleanupOnce(ctx context.Context, repo jadwalRepo.JadwalRepository, now time.Time, loc *time.Location) (int64, error) {
	today := now.In(loc)
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	return repo.DeleteBefore(ctx, cutoff)
}

// StartJadwalCleanupScheduler menjalankan pembersihan sekali saat startup,
// lalu tiap 24 jam. Error hanya dicatat - tidak pernah mematikan proses.
func StartJadwalCleanupScheduler(db *gorm.DB, loc *time.Location) *cron.Cron {
	repo := jadwalRepo.NewJadwalRepository(db)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		deleted, err := RunCleanupOnce(ctx, repo, time.Now(), loc)
		if err != nil {
			log.Printf("[JADWAL-CLEANUP] gagal hapus jadwal lama: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("[JADWAL-CLEANUP] %d jadwal kedaluwarsa dihapus", deleted)
		} else {
			log.Println("[JADWAL-CLEANUP] Tidak ada jadwal yang memenuhi syarat dihapus")
		}
	}

	// Run awal saat startup
	go run()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc("@every 24h", run); err != nil {
		log.Printf("[JADWAL-CLEANUP] add cron gagal: %v", err)
		return c
	}
	c.Start()
	log.Println("[JADWAL-CLEANUP] started (startup + tiap 24 jam)")
	return c
}
