package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

/*
FotoStorage adalah facade simpan/hapus berkas bukti yang seragam untuk
service & controller. Path yang dikembalikan adalah path relatif URL
(mis. "uploads/absensi/absen-xxx.jpg") yang disajikan lewat static route,
sedangkan berkas fisiknya hidup di bawah BaseDir.
*/
type FotoStorage interface {
	Save(dir, filename string, data []byte) (relPath string, err error)
	SaveMultipart(dir string, fh *multipart.FileHeader) (relPath string, err error)
	Remove(relPath string) error
}

type LocalStorage struct {
	BaseDir string // direktori fisik, default "uploads"
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("gagal membuat direktori upload: %w", err)
	}
	return &LocalStorage{BaseDir: baseDir}, nil
}

func (s *LocalStorage) Save(dir, filename string, data []byte) (string, error) {
	target := filepath.Join(s.BaseDir, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat direktori %s: %w", dir, err)
	}
	full := filepath.Join(target, filename)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("gagal menulis berkas %s: %w", filename, err)
	}
	return path.Join("uploads", dir, filename), nil
}

func (s *LocalStorage) SaveMultipart(dir string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka berkas: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("gagal membaca berkas: %w", err)
	}
	return s.Save(dir, sanitizeFilename(fh.Filename), data)
}

// Remove menghapus berkas berdasarkan path relatif URL hasil Save.
func (s *LocalStorage) Remove(relPath string) error {
	rel := strings.TrimPrefix(relPath, "uploads/")
	if strings.TrimSpace(rel) == "" {
		return fmt.Errorf("path kosong")
	}
	full := filepath.Join(s.BaseDir, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("gagal menghapus berkas %s: %w", relPath, err)
	}
	return nil
}

func sanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
