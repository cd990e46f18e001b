package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fotoContoh(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func nominatimPalsu(t *testing.T, status int, body string) *NominatimClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return &NominatimClient{BaseURL: srv.URL, UserAgent: "piket-test/1.0", HTTP: srv.Client()}
}

func TestReverseGeocode_Sukses(t *testing.T) {
	client := nominatimPalsu(t, http.StatusOK, `{"display_name":"Jalan Sudirman, Jakarta"}`)

	tempat, err := client.ReverseGeocode(context.Background(), -6.2, 106.8)
	require.NoError(t, err)
	assert.Equal(t, "Jalan Sudirman, Jakarta", tempat)
}

func TestReverseGeocode_ServerError(t *testing.T) {
	client := nominatimPalsu(t, http.StatusInternalServerError, "oops")

	_, err := client.ReverseGeocode(context.Background(), -6.2, 106.8)
	require.Error(t, err)
}

func TestReverseGeocode_DisplayNameKosong(t *testing.T) {
	client := nominatimPalsu(t, http.StatusOK, `{}`)

	_, err := client.ReverseGeocode(context.Background(), -6.2, 106.8)
	require.Error(t, err)
}

func TestWatermarkAnnotator_MenghasilkanJPEGBaru(t *testing.T) {
	client := nominatimPalsu(t, http.StatusOK, `{"display_name":"Kantor Piket"}`)
	anno := NewWatermarkAnnotator(client, time.UTC)
	asli := fotoContoh(t, 400, 300)

	hasil, err := anno.Annotate(context.Background(), asli, -6.2, 106.8,
		time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotEqual(t, asli, hasil, "foto harus termodifikasi oleh watermark")

	img, err := jpeg.Decode(bytes.NewReader(hasil))
	require.NoError(t, err, "output harus JPEG valid")
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestWatermarkAnnotator_ResizeFotoLebar(t *testing.T) {
	client := nominatimPalsu(t, http.StatusOK, `{"display_name":"Kantor Piket"}`)
	anno := NewWatermarkAnnotator(client, time.UTC)

	hasil, err := anno.Annotate(context.Background(), fotoContoh(t, 1600, 900), -6.2, 106.8, time.Now())
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(hasil))
	require.NoError(t, err)
	assert.Equal(t, watermarkMaxWidth, img.Bounds().Dx())
}

func TestWatermarkAnnotator_GeocodeGagal(t *testing.T) {
	client := nominatimPalsu(t, http.StatusServiceUnavailable, "")
	anno := NewWatermarkAnnotator(client, time.UTC)

	_, err := anno.Annotate(context.Background(), fotoContoh(t, 100, 100), -6.2, 106.8, time.Now())
	require.Error(t, err)
}

func TestFallbackAnnotator_KembalikanFotoAsli(t *testing.T) {
	client := nominatimPalsu(t, http.StatusServiceUnavailable, "")
	fallback := FallbackAnnotator{Primary: NewWatermarkAnnotator(client, time.UTC)}
	asli := fotoContoh(t, 100, 100)

	hasil, err := fallback.Annotate(context.Background(), asli, -6.2, 106.8, time.Now())
	require.NoError(t, err, "kegagalan pipeline tidak boleh bocor keluar")
	assert.Equal(t, asli, hasil, "foto asli dikembalikan utuh")
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "pendek", truncateLabel("pendek", 20))
	assert.Equal(t, "panjang s...", truncateLabel("panjang sekali labelnya", 12))
	assert.Equal(t, "abc", truncateLabel("abc", 2), "max terlalu kecil: biarkan apa adanya")

	// Nama tempat bisa multibyte; potong per-rune, jangan belah karakter
	hasil := truncateLabel("Céndrawasih Raya, Сéверная улица", 10)
	assert.Equal(t, "Céndraw...", hasil)
	assert.True(t, utf8.ValidString(hasil), "hasil potong harus tetap UTF-8 valid")
}
