package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jadwalRepo "piketku_backend/internals/features/piket/jadwal/repository"
)

type cleanupRepo struct {
	jadwalRepo.JadwalRepository
	tanggal []time.Time
}

func (r *cleanupRepo) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var (
		sisa    []time.Time
		deleted int64
	)
	for _, t := range r.tanggal {
		if t.Before(cutoff) {
			deleted++
			continue
		}
		sisa = append(sisa, t)
	}
	r.tanggal = sisa
	return deleted, nil
}

func TestRunCleanupOnce_HapusSebelumHariIni(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 1, 7, 6, 30, 0, 0, loc)

	repo := &cleanupRepo{tanggal: []time.Time{
		time.Date(2025, 1, 5, 0, 0, 0, 0, loc), // lewat
		time.Date(2025, 1, 6, 0, 0, 0, 0, loc), // kemarin
		time.Date(2025, 1, 7, 0, 0, 0, 0, loc), // hari ini: tetap
		time.Date(2025, 1, 8, 0, 0, 0, 0, loc), // besok: tetap
	}}

	deleted, err := RunCleanupOnce(context.Background(), repo, now, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Len(t, repo.tanggal, 2, "jadwal hari ini dan ke depan tidak boleh terhapus")
}

func TestRunCleanupOnce_Idempoten(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 1, 7, 6, 30, 0, 0, loc)
	repo := &cleanupRepo{tanggal: []time.Time{time.Date(2025, 1, 6, 0, 0, 0, 0, loc)}}

	deleted, err := RunCleanupOnce(context.Background(), repo, now, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = RunCleanupOnce(context.Background(), repo, now, loc)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
