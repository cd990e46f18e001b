package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	absensiModel "piketku_backend/internals/features/piket/absensi/model"
	absensiRepo "piketku_backend/internals/features/piket/absensi/repository"
	barangModel "piketku_backend/internals/features/piket/barang/model"
	barangRepo "piketku_backend/internals/features/piket/barang/repository"
	jadwalRepo "piketku_backend/internals/features/piket/jadwal/repository"
)

/* ===============================
   Mocks in-memory
=============================== */

type mockAbsensiRepo struct {
	records   map[uuid.UUID]*absensiModel.AbsensiModel
	createErr error
	// simulasi kalah balapan: Close tidak mengenai baris apa pun
	closeAffected0 bool
}

func newMockAbsensiRepo() *mockAbsensiRepo {
	return &mockAbsensiRepo{records: map[uuid.UUID]*absensiModel.AbsensiModel{}}
}

func (m *mockAbsensiRepo) Create(_ context.Context, rec *absensiModel.AbsensiModel) error {
	if m.createErr != nil {
		return m.createErr
	}
	// Emulasi partial unique index: satu sesi terbuka per user
	for _, r := range m.records {
		if r.AbsensiUserID == rec.AbsensiUserID && r.AbsensiWaktuKeluar == nil {
			return absensiRepo.ErrSesiTerbukaSudahAda
		}
	}
	rec.AbsensiID = uuid.New()
	m.records[rec.AbsensiID] = rec
	return nil
}

func (m *mockAbsensiRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*absensiModel.AbsensiModel, error) {
	r, ok := m.records[id]
	if !ok || r.AbsensiUserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockAbsensiRepo) FindLatestOpenByUser(_ context.Context, userID uuid.UUID) (*absensiModel.AbsensiModel, error) {
	var latest *absensiModel.AbsensiModel
	for _, r := range m.records {
		if r.AbsensiUserID != userID || r.AbsensiWaktuKeluar != nil {
			continue
		}
		if latest == nil || r.AbsensiWaktuMasuk.After(latest.AbsensiWaktuMasuk) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *mockAbsensiRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]absensiModel.AbsensiModel, error) {
	var out []absensiModel.AbsensiModel
	for _, r := range m.records {
		if r.AbsensiUserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockAbsensiRepo) SubmitChecklist(_ context.Context, id, userID uuid.UUID, checklist datatypes.JSON) (int64, error) {
	r, ok := m.records[id]
	if !ok || r.AbsensiUserID != userID {
		return 0, nil
	}
	r.AbsensiChecklist = checklist
	r.AbsensiChecklistSubmitted = true
	return 1, nil
}

func (m *mockAbsensiRepo) Close(_ context.Context, id uuid.UUID, waktuKeluar time.Time, foto string, lat, lon float64) (int64, error) {
	if m.closeAffected0 {
		return 0, nil
	}
	r, ok := m.records[id]
	if !ok || r.AbsensiWaktuKeluar != nil {
		return 0, nil
	}
	r.AbsensiWaktuKeluar = &waktuKeluar
	r.AbsensiFotoKeluar = &foto
	r.AbsensiLatitudeKeluar = &lat
	r.AbsensiLongitudeKeluar = &lon
	return 1, nil
}

func (m *mockAbsensiRepo) ListOpenCheckedInBefore(_ context.Context, batas time.Time) ([]absensiModel.AbsensiModel, error) {
	var out []absensiModel.AbsensiModel
	for _, r := range m.records {
		if r.AbsensiWaktuKeluar == nil && r.AbsensiWaktuMasuk.Before(batas) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockAbsensiRepo) ListByDateWithUser(_ context.Context, _, _ time.Time) ([]absensiRepo.LaporanRow, error) {
	return nil, nil
}

type mockJadwalRepo struct {
	jadwalRepo.JadwalRepository
	terjadwal map[string]bool // "userID|YYYY-MM-DD"
}

func newMockJadwalRepo() *mockJadwalRepo {
	return &mockJadwalRepo{terjadwal: map[string]bool{}}
}

func (m *mockJadwalRepo) jadwalkan(userID uuid.UUID, tanggal time.Time) {
	m.terjadwal[userID.String()+"|"+tanggal.Format("2006-01-02")] = true
}

func (m *mockJadwalRepo) ExistsForUserOnDate(_ context.Context, userID uuid.UUID, tanggal time.Time) (bool, error) {
	return m.terjadwal[userID.String()+"|"+tanggal.Format("2006-01-02")], nil
}

type mockBarangRepo struct {
	barangRepo.BarangRepository
	items map[uuid.UUID]*barangModel.BarangModel
}

func newMockBarangRepo(items ...*barangModel.BarangModel) *mockBarangRepo {
	m := &mockBarangRepo{items: map[uuid.UUID]*barangModel.BarangModel{}}
	for _, it := range items {
		m.items[it.BarangID] = it
	}
	return m
}

func (m *mockBarangRepo) List(_ context.Context) ([]barangModel.BarangModel, error) {
	var out []barangModel.BarangModel
	for _, it := range m.items {
		out = append(out, *it)
	}
	return out, nil
}

func (m *mockBarangRepo) UpdateStatus(_ context.Context, id uuid.UUID, status barangModel.StatusBarang) error {
	if it, ok := m.items[id]; ok {
		it.BarangStatus = status
	}
	return nil
}

type fakeFoto struct {
	saved   map[string][]byte
	removed []string
}

func newFakeFoto() *fakeFoto { return &fakeFoto{saved: map[string][]byte{}} }

func (f *fakeFoto) Save(dir, filename string, data []byte) (string, error) {
	rel := path.Join("uploads", dir, filename)
	f.saved[rel] = data
	return rel, nil
}

func (f *fakeFoto) SaveMultipart(string, *multipart.FileHeader) (string, error) {
	return "", errors.New("tidak dipakai di test")
}

func (f *fakeFoto) Remove(relPath string) error {
	f.removed = append(f.removed, relPath)
	delete(f.saved, relPath)
	return nil
}

type gagalAnnotator struct{}

func (gagalAnnotator) Annotate(context.Context, []byte, float64, float64, time.Time) ([]byte, error) {
	return nil, errors.New("geocode down")
}

/* ===============================
   Test setup
=============================== */

type fixture struct {
	svc     *AbsensiService
	absensi *mockAbsensiRepo
	jadwal  *mockJadwalRepo
	barang  *mockBarangRepo
	foto    *fakeFoto
}

func setup(t *testing.T, now time.Time) *fixture {
	t.Helper()

	sapu := &barangModel.BarangModel{
		BarangID: uuid.New(), BarangKode: "BRG-001", BarangNama: "Sapu",
		BarangStatus: barangModel.StatusTersedia,
	}
	proyektor := &barangModel.BarangModel{
		BarangID: uuid.New(), BarangKode: "BRG-002", BarangNama: "Proyektor",
		BarangStatus: barangModel.StatusTersedia,
	}

	f := &fixture{
		absensi: newMockAbsensiRepo(),
		jadwal:  newMockJadwalRepo(),
		barang:  newMockBarangRepo(sapu, proyektor),
		foto:    newFakeFoto(),
	}
	f.svc = NewAbsensiService(f.absensi, f.jadwal, f.barang,
		FallbackAnnotator{Primary: PassthroughAnnotator{}}, f.foto, time.UTC)
	f.svc.Now = func() time.Time { return now }
	return f
}

var fotoDummy = []byte("jpeg-bytes")

/* ===============================
   CheckIn
=============================== */

func TestCheckIn_TidakTerjadwal(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()

	_, err := f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")

	require.Error(t, err)
	assert.Equal(t, 403, fiberCode(t, err))
	assert.Empty(t, f.absensi.records, "tidak boleh ada row yang dibuat")
}

func TestCheckIn_SesiTerbukaSudahAda(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)

	_, err := f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")
	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))
	assert.Len(t, f.absensi.records, 1, "row kedua tidak boleh dibuat")
	assert.NotEmpty(t, f.foto.removed, "berkas foto percobaan kedua harus dibersihkan")
}

func TestCheckIn_ValidasiInput(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)

	_, err := f.svc.CheckIn(context.Background(), userID, nil, "-6.2", "106.8")
	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))

	_, err = f.svc.CheckIn(context.Background(), userID, fotoDummy, "", "106.8")
	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))

	_, err = f.svc.CheckIn(context.Background(), userID, fotoDummy, "abc", "106.8")
	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))

	assert.Empty(t, f.absensi.records)
}

func TestCheckIn_Sukses_ChecklistDiSeed(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)

	m, err := f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")
	require.NoError(t, err)

	assert.Equal(t, now, m.AbsensiWaktuMasuk)
	assert.False(t, m.AbsensiChecklistSubmitted)
	assert.Nil(t, m.AbsensiWaktuKeluar)
	assert.InDelta(t, -6.2, m.AbsensiLatitudeMasuk, 1e-9)
	assert.Contains(t, f.foto.saved, m.AbsensiFotoMasuk)

	var checklist []absensiModel.ChecklistItem
	require.NoError(t, sonic.Unmarshal(m.AbsensiChecklist, &checklist))
	assert.Len(t, checklist, 2, "semua barang harus masuk snapshot")
	for _, it := range checklist {
		assert.Empty(t, it.Catatan)
		assert.Equal(t, string(barangModel.StatusTersedia), it.Status)
	}
}

func TestCheckIn_DBGagal_BerkasDibersihkan(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)
	f.absensi.createErr = errors.New("connection reset")

	_, err := f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")

	require.Error(t, err)
	assert.Equal(t, 500, fiberCode(t, err))
	assert.Empty(t, f.foto.saved, "berkas yatim harus dihapus saat insert gagal")
}

func TestCheckIn_DBGagal_ThumbnailIkutDibersihkan(t *testing.T) {
	// Foto asli yang bisa di-decode menghasilkan thumbnail webp di samping
	// foto utama; saat insert gagal, KEDUANYA harus dihapus.
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)
	f.absensi.createErr = errors.New("connection reset")

	_, err := f.svc.CheckIn(context.Background(), userID, fotoContoh(t, 120, 90), "-6.2", "106.8")

	require.Error(t, err)
	assert.Equal(t, 500, fiberCode(t, err))
	assert.Empty(t, f.foto.saved, "foto utama dan thumbnail sama-sama harus dihapus")

	adaThumb := false
	for _, rel := range f.foto.removed {
		if strings.HasSuffix(rel, "-thumb.webp") {
			adaThumb = true
		}
	}
	assert.True(t, adaThumb, "thumbnail ikut dihapus saat pembersihan")
}

func TestCheckOut_KalahBalapan_BerkasDibersihkan(t *testing.T) {
	masuk := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, masuk)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, masuk)
	sesi := checkInTerjadwal(t, f, userID)

	require.NoError(t, f.svc.SubmitChecklist(context.Background(), sesi.AbsensiID, userID, nil))
	f.svc.Now = func() time.Time { return masuk.Add(3 * time.Hour) }
	f.absensi.closeAffected0 = true

	err := f.svc.CheckOut(context.Background(), sesi.AbsensiID, userID, fotoContoh(t, 120, 90), "-6.2", "106.8")

	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))
	for rel := range f.foto.saved {
		assert.NotContains(t, rel, "absen-keluar-",
			"berkas check-out (foto maupun thumbnail) tidak boleh tersisa")
	}
}

func TestCheckIn_AnnotatorGagalLangsung_FotoAsliDisimpan(t *testing.T) {
	// Tanpa pembungkus fallback pun, error annotator tidak boleh membuat
	// berkas kosong tersimpan.
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)
	f.svc.Annotator = gagalAnnotator{}

	m, err := f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")

	require.NoError(t, err)
	assert.Equal(t, fotoDummy, f.foto.saved[m.AbsensiFotoMasuk], "foto asli, bukan nil")
}

func TestCheckIn_WatermarkGagal_FotoAsliDisimpan(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)
	f.svc.Annotator = FallbackAnnotator{Primary: gagalAnnotator{}}

	m, err := f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")

	require.NoError(t, err, "kegagalan watermark tidak boleh menggagalkan check-in")
	assert.Equal(t, fotoDummy, f.foto.saved[m.AbsensiFotoMasuk], "foto asli tanpa modifikasi")
}

/* ===============================
   SubmitChecklist
=============================== */

func checkInTerjadwal(t *testing.T, f *fixture, userID uuid.UUID) *absensiModel.AbsensiModel {
	t.Helper()
	m, err := f.svc.CheckIn(context.Background(), userID, fotoDummy, "-6.2", "106.8")
	require.NoError(t, err)
	return m
}

func TestSubmitChecklist_PropagasiStatusBarang(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)
	sesi := checkInTerjadwal(t, f, userID)

	var barangID uuid.UUID
	for id := range f.barang.items {
		barangID = id
		break
	}

	items := []absensiModel.ChecklistItem{{
		BarangID: barangID, Kode: "BRG-001", Nama: "Sapu",
		Status: string(barangModel.StatusRusak), Catatan: "gagang patah",
	}}
	require.NoError(t, f.svc.SubmitChecklist(context.Background(), sesi.AbsensiID, userID, items))

	// Round-trip: status master barang == status yang disubmit
	assert.Equal(t, barangModel.StatusRusak, f.barang.items[barangID].BarangStatus)
	assert.True(t, f.absensi.records[sesi.AbsensiID].AbsensiChecklistSubmitted)
}

func TestSubmitChecklist_Idempoten(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)
	sesi := checkInTerjadwal(t, f, userID)

	items := []absensiModel.ChecklistItem{{BarangID: uuid.New(), Status: string(barangModel.StatusHabis)}}
	require.NoError(t, f.svc.SubmitChecklist(context.Background(), sesi.AbsensiID, userID, items))
	require.NoError(t, f.svc.SubmitChecklist(context.Background(), sesi.AbsensiID, userID, items))

	rec := f.absensi.records[sesi.AbsensiID]
	assert.True(t, rec.AbsensiChecklistSubmitted)

	expected, _ := sonic.Marshal(items)
	assert.JSONEq(t, string(expected), string(rec.AbsensiChecklist), "last-write-wins")
}

func TestSubmitChecklist_SesiMilikUserLain(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, now)
	sesi := checkInTerjadwal(t, f, userID)

	err := f.svc.SubmitChecklist(context.Background(), sesi.AbsensiID, uuid.New(), nil)
	require.Error(t, err)
	assert.Equal(t, 404, fiberCode(t, err))
}

/* ===============================
   CheckOut
=============================== */

func TestCheckOut_SkenarioLengkap(t *testing.T) {
	// User check-in 08:00Z; checkout 09:00 ditolak (60 menit), 10:05 ditolak
	// (checklist belum diisi), setelah submit checklist 10:05 berhasil.
	masuk := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, masuk)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, masuk)
	sesi := checkInTerjadwal(t, f, userID)

	// 60 menit: ditolak dengan jumlah menit di pesan
	f.svc.Now = func() time.Time { return masuk.Add(60 * time.Minute) }
	err := f.svc.CheckOut(context.Background(), sesi.AbsensiID, userID, fotoDummy, "-6.2", "106.8")
	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))
	assert.Contains(t, err.Error(), "60 menit")

	// 125 menit, checklist belum disubmit: tetap ditolak
	f.svc.Now = func() time.Time { return masuk.Add(125 * time.Minute) }
	err = f.svc.CheckOut(context.Background(), sesi.AbsensiID, userID, fotoDummy, "-6.2", "106.8")
	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))
	assert.Contains(t, err.Error(), "Checklist")

	// Submit checklist → checkout di waktu yang sama berhasil
	require.NoError(t, f.svc.SubmitChecklist(context.Background(), sesi.AbsensiID, userID, nil))
	require.NoError(t, f.svc.CheckOut(context.Background(), sesi.AbsensiID, userID, fotoDummy, "-6.2", "106.8"))

	rec := f.absensi.records[sesi.AbsensiID]
	require.NotNil(t, rec.AbsensiWaktuKeluar)
	assert.Equal(t, masuk.Add(125*time.Minute), *rec.AbsensiWaktuKeluar)
	require.NotNil(t, rec.AbsensiFotoKeluar)
	assert.Contains(t, *rec.AbsensiFotoKeluar, "absen-keluar-")
}

func TestCheckOut_SudahKeluar(t *testing.T) {
	masuk := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, masuk)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, masuk)
	sesi := checkInTerjadwal(t, f, userID)

	require.NoError(t, f.svc.SubmitChecklist(context.Background(), sesi.AbsensiID, userID, nil))
	f.svc.Now = func() time.Time { return masuk.Add(3 * time.Hour) }
	require.NoError(t, f.svc.CheckOut(context.Background(), sesi.AbsensiID, userID, fotoDummy, "-6.2", "106.8"))

	err := f.svc.CheckOut(context.Background(), sesi.AbsensiID, userID, fotoDummy, "-6.2", "106.8")
	require.Error(t, err)
	assert.Equal(t, 400, fiberCode(t, err))
}

func TestCheckOut_SesiTidakDitemukan(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, now)

	err := f.svc.CheckOut(context.Background(), uuid.New(), uuid.New(), fotoDummy, "-6.2", "106.8")
	require.Error(t, err)
	assert.Equal(t, 404, fiberCode(t, err))
}

/* ===============================
   GetActiveSession
=============================== */

func TestGetActiveSession_HanyaHariIni(t *testing.T) {
	masuk := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	f := setup(t, masuk)
	userID := uuid.New()
	f.jadwal.jadwalkan(userID, masuk)
	sesi := checkInTerjadwal(t, f, userID)

	// Hari yang sama: sesi aktif ketemu
	aktif, err := f.svc.GetActiveSession(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, aktif)
	assert.Equal(t, sesi.AbsensiID, aktif.AbsensiID)

	// Besoknya: row masih terbuka tapi bukan "sesi aktif" lagi
	f.svc.Now = func() time.Time { return masuk.Add(24 * time.Hour) }
	aktif, err = f.svc.GetActiveSession(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, aktif, "sesi kemarin yang lupa ditutup bukan sesi aktif")
}

func TestGetActiveSession_TidakAda(t *testing.T) {
	f := setup(t, time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC))

	aktif, err := f.svc.GetActiveSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, aktif)
}

/* ===============================
   Helpers
=============================== */

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "error harus *fiber.Error, dapat: %v", err)
	return fe.Code
}
