package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"piketku_backend/internals/configs"
)

// Geocoder mengubah koordinat menjadi nama tempat. Best-effort:
// kegagalan di sini tidak boleh menggagalkan absensi.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// NominatimClient klien reverse-geocoding OpenStreetMap Nominatim.
// Timeout ketat supaya pihak ketiga yang lambat tidak menahan check-in.
type NominatimClient struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

func NewNominatimClientFromEnv() *NominatimClient {
	timeoutSec := 5
	if v := configs.GetEnv("GEOCODE_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}
	return &NominatimClient{
		BaseURL:   configs.GetEnvOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		UserAgent: configs.GetEnvOrDefault("NOMINATIM_USER_AGENT", "piketku-backend/1.0"),
		HTTP:      &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (n *NominatimClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", n.UserAgent)

	resp, err := n.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if payload.DisplayName == "" {
		return "", fmt.Errorf("nominatim: display_name kosong")
	}
	return payload.DisplayName, nil
}
