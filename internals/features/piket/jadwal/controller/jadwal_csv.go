package controller

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

type jadwalCSVRow struct {
	Line     int
	Username string
	Tanggal  time.Time
}

// parseJadwalCSV membaca CSV dua kolom (username, tanggal YYYY-MM-DD).
// Baris header "username,tanggal" dilewati kalau ada. Baris bermasalah
// dicatat sebagai error per-baris, baris lain tetap diproses.
func parseJadwalCSV(r io.Reader, loc *time.Location) ([]jadwalCSVRow, []string) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		rows []jadwalCSVRow
		errs []string
	)
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Sprintf("baris %d: %v", line, err))
			continue
		}
		if len(record) < 2 {
			errs = append(errs, fmt.Sprintf("baris %d: butuh 2 kolom (username,tanggal)", line))
			continue
		}

		username := strings.TrimSpace(record[0])
		tanggalStr := strings.TrimSpace(record[1])

		// lewati header
		if line == 1 && strings.EqualFold(username, "username") {
			continue
		}
		if username == "" {
			errs = append(errs, fmt.Sprintf("baris %d: username kosong", line))
			continue
		}

		tanggal, err := time.ParseInLocation("2006-01-02", tanggalStr, loc)
		if err != nil {
			errs = append(errs, fmt.Sprintf("baris %d: tanggal %q tidak valid (format: YYYY-MM-DD)", line, tanggalStr))
			continue
		}

		rows = append(rows, jadwalCSVRow{Line: line, Username: username, Tanggal: tanggal})
	}
	return rows, errs
}
