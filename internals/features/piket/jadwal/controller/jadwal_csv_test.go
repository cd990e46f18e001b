package controller

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJadwalCSV_DenganHeader(t *testing.T) {
	csv := "username,tanggal\nbudi,2025-01-06\nsiti,2025-01-07\n"

	rows, errs := parseJadwalCSV(strings.NewReader(csv), time.UTC)

	assert.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, "budi", rows[0].Username)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), rows[0].Tanggal)
	assert.Equal(t, "siti", rows[1].Username)
}

func TestParseJadwalCSV_TanpaHeader(t *testing.T) {
	rows, errs := parseJadwalCSV(strings.NewReader("budi,2025-01-06\n"), time.UTC)

	assert.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, "budi", rows[0].Username)
}

func TestParseJadwalCSV_BarisBermasalahDilewati(t *testing.T) {
	csv := strings.Join([]string{
		"username,tanggal",
		"budi,2025-01-06",
		"siti,06-01-2025", // format tanggal salah
		",2025-01-08",     // username kosong
		"joko",            // kolom kurang
		"rani,2025-01-09",
	}, "\n")

	rows, errs := parseJadwalCSV(strings.NewReader(csv), time.UTC)

	require.Len(t, rows, 2, "baris valid tetap diproses")
	assert.Equal(t, "budi", rows[0].Username)
	assert.Equal(t, "rani", rows[1].Username)

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "baris 3")
	assert.Contains(t, errs[0], "tidak valid")
	assert.Contains(t, errs[1], "username kosong")
	assert.Contains(t, errs[2], "butuh 2 kolom")
}

func TestParseJadwalCSV_Kosong(t *testing.T) {
	rows, errs := parseJadwalCSV(strings.NewReader(""), time.UTC)
	assert.Empty(t, rows)
	assert.Empty(t, errs)
}
