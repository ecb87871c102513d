package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "FOLIOPARSE_API_KEY", "WORKER_COUNT", "MAX_QUEUE_SIZE", "MAX_UPLOAD_BYTES",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "JOB_TTL", "PDF_FALLBACK_PDFTOTEXT", "MAX_PDF_PAGES", "LOG_PARSE_DEBUG"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 {
		t.Errorf("unexpected worker defaults %d/%d", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %s", cfg.JobTTL)
	}
	if cfg.MaxPDFPages != 50 {
		t.Errorf("expected 50 page limit, got %d", cfg.MaxPDFPages)
	}
	if !cfg.PDFFallbackPdftotext || cfg.LogParseDebug {
		t.Errorf("unexpected bool defaults %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without API key")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FOLIOPARSE_API_KEY", "secret")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("JOB_TTL", "15m")
	t.Setenv("LOG_PARSE_DEBUG", "true")

	cfg := Load()
	if cfg.Port != "9000" || cfg.WorkerCount != 8 || cfg.RateLimitRPS != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.JobTTL != 15*time.Minute || !cfg.LogParseDebug {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("MAX_QUEUE_SIZE", "lots")
	t.Setenv("JOB_TTL", "soon")
	t.Setenv("MAX_PDF_PAGES", "-1")

	cfg := Load()
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 || cfg.JobTTL != time.Hour || cfg.MaxPDFPages != 0 {
		t.Errorf("expected defaults for invalid values, got %+v", cfg)
	}
}
