package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	absensiModel "piketku_backend/internals/features/piket/absensi/model"
	absensiRepo "piketku_backend/internals/features/piket/absensi/repository"
)

type sweepRepo struct {
	absensiRepo.AbsensiRepository
	records map[uuid.UUID]*absensiModel.AbsensiModel
}

func newSweepRepo(records ...*absensiModel.AbsensiModel) *sweepRepo {
	r := &sweepRepo{records: map[uuid.UUID]*absensiModel.AbsensiModel{}}
	for _, rec := range records {
		r.records[rec.AbsensiID] = rec
	}
	return r
}

func (r *sweepRepo) ListOpenCheckedInBefore(_ context.Context, batas time.Time) ([]absensiModel.AbsensiModel, error) {
	var out []absensiModel.AbsensiModel
	for _, rec := range r.records {
		if rec.AbsensiWaktuKeluar == nil && rec.AbsensiWaktuMasuk.Before(batas) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *sweepRepo) Close(_ context.Context, id uuid.UUID, waktuKeluar time.Time, foto string, lat, lon float64) (int64, error) {
	rec, ok := r.records[id]
	if !ok || rec.AbsensiWaktuKeluar != nil {
		return 0, nil
	}
	rec.AbsensiWaktuKeluar = &waktuKeluar
	rec.AbsensiFotoKeluar = &foto
	rec.AbsensiLatitudeKeluar = &lat
	rec.AbsensiLongitudeKeluar = &lon
	return 1, nil
}

func sesiTerbuka(masuk time.Time) *absensiModel.AbsensiModel {
	return &absensiModel.AbsensiModel{
		AbsensiID:             uuid.New(),
		AbsensiUserID:         uuid.New(),
		AbsensiWaktuMasuk:     masuk,
		AbsensiLatitudeMasuk:  -6.2,
		AbsensiLongitudeMasuk: 106.8,
	}
}

func TestRunAutoCloseOnce_TutupSesiKemarin(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 1, 7, 0, 0, 5, 0, loc) // tepat setelah tengah malam

	kemarin := sesiTerbuka(time.Date(2025, 1, 6, 15, 0, 0, 0, loc))
	hariIni := sesiTerbuka(time.Date(2025, 1, 7, 0, 0, 1, 0, loc))
	repo := newSweepRepo(kemarin, hariIni)

	closed, err := RunAutoCloseOnce(context.Background(), repo, now, loc)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	rec := repo.records[kemarin.AbsensiID]
	require.NotNil(t, rec.AbsensiWaktuKeluar)
	assert.Equal(t, time.Date(2025, 1, 6, 23, 59, 59, 999_000_000, loc), *rec.AbsensiWaktuKeluar,
		"ditutup di akhir hari MASUK, bukan saat sweep jalan")
	require.NotNil(t, rec.AbsensiFotoKeluar)
	assert.Equal(t, absensiModel.FotoKeluarSistem, *rec.AbsensiFotoKeluar)
	require.NotNil(t, rec.AbsensiLatitudeKeluar)
	assert.InDelta(t, kemarin.AbsensiLatitudeMasuk, *rec.AbsensiLatitudeKeluar, 1e-9,
		"koordinat masuk disalin sebagai koordinat keluar")

	assert.Nil(t, repo.records[hariIni.AbsensiID].AbsensiWaktuKeluar,
		"sesi hari ini tidak boleh ikut ditutup")
}

func TestRunAutoCloseOnce_SesiLamaBeberapaHari(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 1, 10, 0, 0, 5, 0, loc)

	lama := sesiTerbuka(time.Date(2025, 1, 3, 9, 30, 0, 0, loc))
	repo := newSweepRepo(lama)

	closed, err := RunAutoCloseOnce(context.Background(), repo, now, loc)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.Equal(t, time.Date(2025, 1, 3, 23, 59, 59, 999_000_000, loc),
		*repo.records[lama.AbsensiID].AbsensiWaktuKeluar)
}

func TestRunAutoCloseOnce_Idempoten(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 1, 7, 0, 0, 5, 0, loc)

	kemarin := sesiTerbuka(time.Date(2025, 1, 6, 15, 0, 0, 0, loc))
	repo := newSweepRepo(kemarin)

	closed, err := RunAutoCloseOnce(context.Background(), repo, now, loc)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	pertama := *repo.records[kemarin.AbsensiID].AbsensiWaktuKeluar

	closed, err = RunAutoCloseOnce(context.Background(), repo, now, loc)
	require.NoError(t, err)
	assert.Equal(t, 0, closed, "run kedua tidak menemukan sesi terbuka")
	assert.Equal(t, pertama, *repo.records[kemarin.AbsensiID].AbsensiWaktuKeluar)
}

func TestRunAutoCloseOnce_TidakAdaSesi(t *testing.T) {
	closed, err := RunAutoCloseOnce(context.Background(), newSweepRepo(),
		time.Date(2025, 1, 7, 0, 0, 5, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.Zero(t, closed)
}
