package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	absensiModel "piketku_backend/internals/features/piket/absensi/model"
	absensiRepo "piketku_backend/internals/features/piket/absensi/repository"
)

/*
RunAutoCloseOnce menutup paksa semua sesi yang masih terbuka padahal waktu
masuknya sebelum hari ini: waktu keluar diset 23:59:59.999 DI HARI MASUKNYA
(bukan "sekarang"), foto keluar diisi sentinel system-closed, dan koordinat
masuk disalin sebagai perkiraan terbaik koordinat keluar.

Idempotent: sesi yang sudah ditutup tidak lagi cocok dengan predikat
"masih terbuka", jadi run kedua tidak mengubah apa pun.
*/
func RunAutoCloseOnce(ctx context.Context, repo absensiRepo.AbsensiRepository, now time.Time, loc *time.Location) (int, error) {
	today := now.In(loc)
	batas := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	terbuka, err := repo.ListOpenCheckedInBefore(ctx, batas)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, sesi := range terbuka {
		masuk := sesi.AbsensiWaktuMasuk.In(loc)
		akhirHari := time.Date(masuk.Year(), masuk.Month(), masuk.Day(),
			23, 59, 59, 999_000_000, loc)

		if _, err := repo.Close(ctx, sesi.AbsensiID, akhirHari,
			absensiModel.FotoKeluarSistem,
			sesi.AbsensiLatitudeMasuk, sesi.AbsensiLongitudeMasuk); err != nil {
			log.Printf("[AUTO-CLOSE] gagal tutup sesi %s: %v", sesi.AbsensiID, err)
			continue
		}
		closed++
	}
	return closed, nil
}

// StartAutoCloseCron menjadwalkan sweep tiap tengah malam. Error tiap tick
// dicatat dan ditelan; retry berikutnya ya tick berikutnya.
func StartAutoCloseCron(db *gorm.DB, loc *time.Location) *cron.Cron {
	repo := absensiRepo.NewAbsensiRepository(db)

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()

		closed, err := RunAutoCloseOnce(ctx, repo, time.Now(), loc)
		if err != nil {
			log.Printf("[AUTO-CLOSE] sweep gagal: %v", err)
			return
		}
		if closed > 0 {
			log.Printf("[AUTO-CLOSE] %d sesi terbengkalai ditutup paksa", closed)
		} else {
			log.Println("[AUTO-CLOSE] Tidak ada sesi terbengkalai")
		}
	})
	if err != nil {
		log.Printf("[AUTO-CLOSE] add cron gagal: %v", err)
		return c
	}
	c.Start()
	log.Println("[AUTO-CLOSE] started schedule=\"0 0 * * *\"")
	return c
}
