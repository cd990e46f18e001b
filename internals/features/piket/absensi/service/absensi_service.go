package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	absensiModel "piketku_backend/internals/features/piket/absensi/model"
	absensiRepo "piketku_backend/internals/features/piket/absensi/repository"
	barangModel "piketku_backend/internals/features/piket/barang/model"
	barangRepo "piketku_backend/internals/features/piket/barang/repository"
	jadwalRepo "piketku_backend/internals/features/piket/jadwal/repository"
	"piketku_backend/internals/helpers/storage"
)

// Durasi piket minimal sebelum boleh check-out.
const MinDurasiPiket = 120 * time.Minute

/*
AbsensiService adalah state machine sesi piket: gerbang jadwal saat
check-in, maksimal satu sesi terbuka per user (ditegakkan index di DB),
check-out digerbang durasi minimal + checklist. Semua dependensi
di-inject dari main; Now bisa diganti di test.
*/
type AbsensiService struct {
	Repo       absensiRepo.AbsensiRepository
	JadwalRepo jadwalRepo.JadwalRepository
	BarangRepo barangRepo.BarangRepository
	Annotator  Annotator
	Foto       storage.FotoStorage
	Lokasi     *time.Location
	Now        func() time.Time
}

func NewAbsensiService(
	repo absensiRepo.AbsensiRepository,
	jadwal jadwalRepo.JadwalRepository,
	barang barangRepo.BarangRepository,
	annotator Annotator,
	foto storage.FotoStorage,
	loc *time.Location,
) *AbsensiService {
	return &AbsensiService{
		Repo:       repo,
		JadwalRepo: jadwal,
		BarangRepo: barang,
		Annotator:  annotator,
		Foto:       foto,
		Lokasi:     loc,
		Now:        time.Now,
	}
}

// CheckIn membuka sesi piket baru dengan foto bukti ber-watermark.
func (s *AbsensiService) CheckIn(ctx context.Context, userID uuid.UUID, foto []byte, latStr, lonStr string) (*absensiModel.AbsensiModel, error) {
	lat, lon, err := parseKoordinat(latStr, lonStr)
	if err != nil {
		return nil, err
	}
	if len(foto) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Foto wajib diunggah")
	}

	now := s.Now()

	// Gerbang eligibility: harus terjadwal piket hari ini
	terjadwal, err := s.JadwalRepo.ExistsForUserOnDate(ctx, userID, now.In(s.Lokasi))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa jadwal piket")
	}
	if !terjadwal {
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda tidak terjadwal piket hari ini")
	}

	// Watermark best-effort: apa pun annotator yang di-inject, gagal berarti
	// foto asli yang disimpan. Simpan berkas DULU baru insert row.
	annotated, err := s.Annotator.Annotate(ctx, foto, lat, lon, now)
	if err != nil {
		log.Printf("[ABSENSI] watermark gagal, pakai foto asli: %v", err)
		annotated = foto
	}

	filename := fmt.Sprintf("absen-%s-%d.jpg", userID, now.UnixMilli())
	relPath, err := s.Foto.Save("absensi", filename, annotated)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan foto absensi")
	}
	s.saveThumbnail("absensi", filename, annotated)

	checklist, err := s.snapshotChecklist(ctx)
	if err != nil {
		s.removeFoto(relPath)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar barang untuk checklist")
	}

	m := &absensiModel.AbsensiModel{
		AbsensiUserID:             userID,
		AbsensiWaktuMasuk:         now,
		AbsensiFotoMasuk:          relPath,
		AbsensiLatitudeMasuk:      lat,
		AbsensiLongitudeMasuk:     lon,
		AbsensiChecklist:          checklist,
		AbsensiChecklistSubmitted: false,
	}

	if err := s.Repo.Create(ctx, m); err != nil {
		// DB gagal: bersihkan berkas supaya tidak ada file yatim
		s.removeFoto(relPath)
		if errors.Is(err, absensiRepo.ErrSesiTerbukaSudahAda) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Anda masih memiliki sesi piket yang belum selesai")
		}
		log.Printf("[ABSENSI] insert gagal user=%s: %v", userID, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan data absensi")
	}

	return m, nil
}

// SubmitChecklist menimpa checklist sesi (last-write-wins) dan menulis balik
// status tiap barang ke master.
func (s *AbsensiService) SubmitChecklist(ctx context.Context, sessionID, userID uuid.UUID, items []absensiModel.ChecklistItem) error {
	raw, err := sonic.Marshal(items)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Checklist tidak valid")
	}

	affected, err := s.Repo.SubmitChecklist(ctx, sessionID, userID, datatypes.JSON(raw))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan checklist")
	}
	if affected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
	}

	// Propagasi status ke master barang (hanya kolom status)
	for _, it := range items {
		if it.BarangID == uuid.Nil {
			continue
		}
		if err := s.BarangRepo.UpdateStatus(ctx, it.BarangID, barangModel.StatusBarang(it.Status)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status barang")
		}
	}
	return nil
}

// CheckOut menutup sesi: durasi minimal + checklist wajib, lalu satu UPDATE
// atomik untuk waktu/foto/koordinat keluar.
func (s *AbsensiService) CheckOut(ctx context.Context, sessionID, userID uuid.UUID, foto []byte, latStr, lonStr string) error {
	lat, lon, err := parseKoordinat(latStr, lonStr)
	if err != nil {
		return err
	}
	if len(foto) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Foto wajib diunggah")
	}

	m, err := s.Repo.FindByIDAndUser(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data sesi")
	}
	if m.AbsensiWaktuKeluar != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Anda sudah check-out untuk sesi ini")
	}

	now := s.Now()
	elapsed := now.Sub(m.AbsensiWaktuMasuk)
	if elapsed < MinDurasiPiket {
		menit := int(elapsed.Minutes())
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Anda baru piket %d menit. Minimal %d menit sebelum check-out.",
				menit, int(MinDurasiPiket.Minutes())))
	}
	if !m.AbsensiChecklistSubmitted {
		return fiber.NewError(fiber.StatusBadRequest, "Checklist barang wajib diisi sebelum check-out")
	}

	annotated, err := s.Annotator.Annotate(ctx, foto, lat, lon, now)
	if err != nil {
		log.Printf("[ABSENSI] watermark gagal, pakai foto asli: %v", err)
		annotated = foto
	}

	filename := fmt.Sprintf("absen-keluar-%s-%d.jpg", userID, now.UnixMilli())
	relPath, err := s.Foto.Save("absensi", filename, annotated)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan foto absensi")
	}
	s.saveThumbnail("absensi", filename, annotated)

	affected, err := s.Repo.Close(ctx, sessionID, now, relPath, lat, lon)
	if err != nil {
		s.removeFoto(relPath)
		log.Printf("[ABSENSI] close gagal sesi=%s: %v", sessionID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan data check-out")
	}
	if affected == 0 {
		// kalah balapan: sesi keburu tertutup (auto-close / request ganda)
		s.removeFoto(relPath)
		return fiber.NewError(fiber.StatusBadRequest, "Anda sudah check-out untuk sesi ini")
	}
	return nil
}

// GetActiveSession: sesi terbuka terbaru milik user, HANYA kalau waktu
// masuknya jatuh di hari kalender ini. Sesi kemarin yang lupa ditutup
// bukan urusan read path ini (itu tugas auto-close).
func (s *AbsensiService) GetActiveSession(ctx context.Context, userID uuid.UUID) (*absensiModel.AbsensiModel, error) {
	m, err := s.Repo.FindLatestOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi aktif")
	}

	hariMasuk := m.AbsensiWaktuMasuk.In(s.Lokasi).Format("2006-01-02")
	hariIni := s.Now().In(s.Lokasi).Format("2006-01-02")
	if hariMasuk != hariIni {
		return nil, nil
	}
	return m, nil
}

// GetHistory: seluruh sesi user, waktu masuk terbaru dulu.
func (s *AbsensiService) GetHistory(ctx context.Context, userID uuid.UUID) ([]absensiModel.AbsensiModel, error) {
	items, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil riwayat absensi")
	}
	return items, nil
}

// LaporanByDate: semua sesi dengan waktu masuk pada tanggal tersebut,
// digabung identitas petugas.
func (s *AbsensiService) LaporanByDate(ctx context.Context, tanggal time.Time) ([]absensiRepo.LaporanRow, error) {
	mulai := time.Date(tanggal.Year(), tanggal.Month(), tanggal.Day(), 0, 0, 0, 0, s.Lokasi)
	rows, err := s.Repo.ListByDateWithUser(ctx, mulai, mulai.Add(24*time.Hour))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil laporan")
	}
	return rows, nil
}

/* ===============================
   Internal helpers
=============================== */

func parseKoordinat(latStr, lonStr string) (float64, float64, error) {
	latStr = strings.TrimSpace(latStr)
	lonStr = strings.TrimSpace(lonStr)
	if latStr == "" || lonStr == "" {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Latitude dan longitude wajib diisi")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Latitude tidak valid")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "Longitude tidak valid")
	}
	return lat, lon, nil
}

func (s *AbsensiService) snapshotChecklist(ctx context.Context) (datatypes.JSON, error) {
	daftar, err := s.BarangRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]absensiModel.ChecklistItem, 0, len(daftar))
	for _, b := range daftar {
		items = append(items, absensiModel.ChecklistItem{
			BarangID: b.BarangID,
			Kode:     b.BarangKode,
			Nama:     b.BarangNama,
			Status:   string(b.BarangStatus),
			Catatan:  "",
		})
	}

	raw, err := sonic.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// saveThumbnail menulis thumbnail webp kecil di samping foto utama.
// Best-effort: gagal hanya dicatat.
func (s *AbsensiService) saveThumbnail(dir, filename string, foto []byte) {
	img, err := imaging.Decode(bytes.NewReader(foto))
	if err != nil {
		log.Printf("[ABSENSI] thumbnail decode gagal: %v", err)
		return
	}
	thumb := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: 75}); err != nil {
		log.Printf("[ABSENSI] thumbnail encode gagal: %v", err)
		return
	}

	thumbName := strings.TrimSuffix(filename, ".jpg") + "-thumb.webp"
	if _, err := s.Foto.Save(dir, thumbName, buf.Bytes()); err != nil {
		log.Printf("[ABSENSI] thumbnail simpan gagal: %v", err)
	}
}

// removeFoto menghapus foto utama BESERTA thumbnail webp pendampingnya;
// keduanya ditulis sebelum insert DB, jadi keduanya harus ikut dibersihkan
// saat insert gagal.
func (s *AbsensiService) removeFoto(relPath string) {
	if err := s.Foto.Remove(relPath); err != nil {
		log.Printf("[ABSENSI] hapus berkas yatim gagal %s: %v", relPath, err)
	}
	if strings.HasSuffix(relPath, ".jpg") {
		thumb := strings.TrimSuffix(relPath, ".jpg") + "-thumb.webp"
		if err := s.Foto.Remove(thumb); err != nil {
			log.Printf("[ABSENSI] hapus thumbnail yatim gagal %s: %v", thumb, err)
		}
	}
}
