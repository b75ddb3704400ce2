// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package gauge

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
)

// ParsePeaks reads a tab-delimited RDB peak-flow file (spec §6):
// `#`-prefixed lines are comments, the first non-comment line is a
// header, and ag_gage_ht is carried but never supersedes gage_ht (spec §9).
func ParsePeaks(r io.Reader, siteCode string) ([]domain.PeakRecord, error) {
	scanner := bufio.NewScanner(r)
	var header []string
	var out []domain.PeakRecord

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if header == nil {
			header = fields
			continue
		}
		if len(fields) > 0 && strings.HasPrefix(fields[0], "5s") {
			continue // RDB format-width line
		}

		col := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(fields) {
				col[h] = fields[i]
			}
		}

		rec := domain.PeakRecord{SiteCode: siteCode}
		if dt, ok := col["peak_dt"]; ok && dt != "" {
			if t, err := time.Parse("2006-01-02", dt); err == nil {
				rec.PeakDate = t
			}
		}
		if tm, ok := col["peak_tm"]; ok && tm != "" {
			rec.HasTime = true
			if t, err := time.Parse("2006-01-02 15:04", col["peak_dt"]+" "+tm); err == nil {
				rec.PeakDate = t
			}
		}
		if v, ok := col["peak_va"]; ok && v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rec.PeakFlow = &f
			}
		}
		if cd, ok := col["peak_cd"]; ok && cd != "" {
			rec.PeakCodes = strings.Split(cd, ",")
		}
		if v, ok := col["gage_ht"]; ok && v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rec.GageHeight = &f
			}
		}
		if cd, ok := col["gage_ht_cd"]; ok && cd != "" {
			rec.GageHeightCodes = strings.Split(cd, ",")
		}
		if v, ok := col["ag_gage_ht"]; ok && v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				rec.AltGageHeight = &f
			}
		}

		if rec.PeakDate.IsZero() {
			continue
		}
		out = append(out, rec)
	}
	return out, scanner.Err()
}
