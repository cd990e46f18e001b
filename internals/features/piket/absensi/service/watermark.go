package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotator membubuhkan label lokasi+waktu ke foto bukti.
// Implementasi nyata boleh gagal; pemanggil memakai FallbackAnnotator
// supaya kegagalan watermark tidak menggagalkan absensi.
type Annotator interface {
	Annotate(ctx context.Context, foto []byte, lat, lon float64, t time.Time) ([]byte, error)
}

const (
	watermarkMaxWidth = 800
	watermarkBandH    = 46
	jpegQuality       = 85
)

// WatermarkAnnotator: reverse-geocode → resize → band gelap semi-transparan
// di bawah → dua baris teks (nama tempat, koordinat + waktu lokal).
type WatermarkAnnotator struct {
	Geocoder Geocoder
	Lokasi   *time.Location
}

func NewWatermarkAnnotator(geocoder Geocoder, loc *time.Location) *WatermarkAnnotator {
	return &WatermarkAnnotator{Geocoder: geocoder, Lokasi: loc}
}

func (w *WatermarkAnnotator) Annotate(ctx context.Context, foto []byte, lat, lon float64, t time.Time) ([]byte, error) {
	tempat, err := w.Geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode gagal: %w", err)
	}

	src, err := imaging.Decode(bytes.NewReader(foto), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode foto gagal: %w", err)
	}

	if src.Bounds().Dx() > watermarkMaxWidth {
		src = imaging.Resize(src, watermarkMaxWidth, 0, imaging.Lanczos)
	}

	bounds := src.Bounds()
	canvas := image.NewNRGBA(bounds)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Src)

	// Band gelap semi-transparan di sisi bawah
	band := image.Rect(bounds.Min.X, bounds.Max.Y-watermarkBandH, bounds.Max.X, bounds.Max.Y)
	draw.Draw(canvas, band, image.NewUniform(color.NRGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	baris1 := truncateLabel(tempat, (bounds.Dx()-16)/7) // Face7x13: lebar glyph 7px
	baris2 := fmt.Sprintf("%.6f, %.6f | %s", lat, lon, t.In(w.Lokasi).Format("02-01-2006 15:04:05 MST"))

	drawLabel(canvas, baris1, bounds.Min.X+8, bounds.Max.Y-watermarkBandH+18)
	drawLabel(canvas, baris2, bounds.Min.X+8, bounds.Max.Y-watermarkBandH+36)

	var out bytes.Buffer
	if err := imaging.Encode(&out, canvas, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode foto gagal: %w", err)
	}
	return out.Bytes(), nil
}

func drawLabel(dst draw.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// truncateLabel memotong per-rune; nama tempat Nominatim bisa mengandung
// karakter multibyte yang tidak boleh terbelah di tengah.
func truncateLabel(s string, max int) string {
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// PassthroughAnnotator mengembalikan foto apa adanya (tanpa watermark).
type PassthroughAnnotator struct{}

func (PassthroughAnnotator) Annotate(_ context.Context, foto []byte, _, _ float64, _ time.Time) ([]byte, error) {
	return foto, nil
}

// FallbackAnnotator membungkus annotator utama: kalau gagal dengan alasan
// apa pun, foto asli yang dipakai. Watermark itu enhancement, bukan syarat.
type FallbackAnnotator struct {
	Primary Annotator
}

func (f FallbackAnnotator) Annotate(ctx context.Context, foto []byte, lat, lon float64, t time.Time) ([]byte, error) {
	out, err := f.Primary.Annotate(ctx, foto, lat, lon, t)
	if err != nil {
		log.Printf("[WATERMARK] gagal, lanjut tanpa watermark: %v", err)
		return foto, nil
	}
	return out, nil
}
