// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Settings is the daemon-wide tuning surface: analyzer parameters,
// staleness thresholds, scheduler cadence, and the read endpoint port.
// Decoded from settings.json after schema validation.
type Settings struct {
	HTTPAddr               string  `json:"httpAddr" validate:"required"`
	StalenessThresholdMin  int     `json:"stalenessThresholdMinutes" validate:"required,gt=0"`
	PollTickSeconds        int     `json:"pollTickSeconds" validate:"required,gt=0"`
	ProviderRateLimitMs    int     `json:"providerRateLimitMs" validate:"required,gt=0"`
	FanoutLimit            int     `json:"fanoutLimit" validate:"required,gt=0"`
	Analyzer               AnalyzerSettings `json:"analyzer" validate:"required"`
	// ReportKind selects the flood-report archive backend: "file" (the
	// default, writes under ReportDir) or "s3" (writes to ReportS3Bucket).
	ReportKind             string  `json:"reportKind"`
	ReportDir              string  `json:"reportDir"`
	ReportS3Bucket         string  `json:"reportS3Bucket"`
}

// AnalyzerSettings parameterizes the historical flood-event analyzer
// (spec §4.H).
type AnalyzerSettings struct {
	PrecursorLookbackDays int     `json:"precursorLookbackDays" validate:"required,gt=0"`
	RiseRateThresholdFtHr float64 `json:"riseRateThresholdFtPerHour" validate:"required,gt=0"`
	MinEventDurationHours int     `json:"minEventDurationHours" validate:"required,gt=0"`
}

// StalenessThreshold returns the configured staleness window as a duration.
func (s Settings) StalenessThreshold() time.Duration {
	return time.Duration(s.StalenessThresholdMin) * time.Minute
}

// PollTick returns the configured poll cadence as a duration.
func (s Settings) PollTick() time.Duration {
	return time.Duration(s.PollTickSeconds) * time.Second
}

// ProviderRateLimit returns the minimum spacing between calls to a
// single provider (spec §5: 2-second floor).
func (s Settings) ProviderRateLimit() time.Duration {
	return time.Duration(s.ProviderRateLimitMs) * time.Millisecond
}

var validate = validator.New()

// LoadSettings reads settings.json, validates it against the embedded
// JSON Schema (mirroring the teacher's internal/config/validate.go),
// decodes it, and then checks required-field presence with struct tags
// (go-playground/validator) the way the teacher validates decoded
// config structs elsewhere in its codebase.
func LoadSettings(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: settings file %s: %w", path, err)
	}

	if err := validateAgainstSchema(raw); err != nil {
		return Settings{}, fmt.Errorf("config: settings file %s failed schema validation: %w", path, err)
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("config: settings file %s: invalid json: %w", path, err)
	}

	if err := validate.Struct(s); err != nil {
		return Settings{}, fmt.Errorf("config: settings file %s missing required fields: %w", path, err)
	}

	return s, nil
}

func validateAgainstSchema(instance []byte) error {
	sch, err := jsonschema.CompileString("settings.schema.json", settingsSchema)
	if err != nil {
		return fmt.Errorf("compiling embedded schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return err
	}

	return sch.Validate(v)
}
