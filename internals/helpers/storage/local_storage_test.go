package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveDanRemove(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	rel, err := s.Save("absensi", "foto.jpg", []byte("isi"))
	require.NoError(t, err)
	assert.Equal(t, "uploads/absensi/foto.jpg", rel, "path relatif URL, bukan path fisik")

	// Berkas fisiknya di bawah BaseDir
	data, err := os.ReadFile(filepath.Join(base, "absensi", "foto.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("isi"), data)

	require.NoError(t, s.Remove(rel))
	_, err = os.Stat(filepath.Join(base, "absensi", "foto.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RemoveBerkasTidakAda(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Remove("uploads/absensi/tidak-ada.jpg"), "hapus berkas hilang bukan error")
	assert.Error(t, s.Remove(""), "path kosong ditolak")
	assert.Error(t, s.Remove("uploads/"), "path kosong setelah prefix ditolak")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "laporan_2025.pdf", sanitizeFilename("laporan 2025.pdf"))
	assert.Equal(t, "a_b_c.txt", sanitizeFilename("a/b\\c.txt"))
	assert.Equal(t, "wajar-nama_file.jpg", sanitizeFilename("wajar-nama_file.jpg"))
}
