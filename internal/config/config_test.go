package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "PAPERLENS_API_KEY", "WORKER_COUNT", "MAX_QUEUE_SIZE",
		"MAX_UPLOAD_BYTES", "JOB_TTL", "SUMMARY_SENTENCES", "HEADING_MAX_LEN",
		"PAPERLENS_LEXICON", "PAPERLENS_DB", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("Port = %q, want 8090", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want 4", cfg.WorkerCount)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d, want 52428800", cfg.MaxUploadBytes)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("JobTTL = %v, want 1h", cfg.JobTTL)
	}
	if cfg.SummarySentences != 3 {
		t.Errorf("SummarySentences = %d, want 3", cfg.SummarySentences)
	}
	if cfg.HeadingMaxLen != 120 {
		t.Errorf("HeadingMaxLen = %d, want 120", cfg.HeadingMaxLen)
	}
	if cfg.DBPath != "paperlens.db" {
		t.Errorf("DBPath = %q, want paperlens.db", cfg.DBPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("JOB_TTL", "30m")
	t.Setenv("SUMMARY_SENTENCES", "5")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("WorkerCount = %d, want 8", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("JobTTL = %v, want 30m", cfg.JobTTL)
	}
	if cfg.SummarySentences != 5 {
		t.Errorf("SummarySentences = %d, want 5", cfg.SummarySentences)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("RateLimitRPS = %v, want 2.5", cfg.RateLimitRPS)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("PDFFallbackPdftotext should be false")
	}
}

func TestLoadIgnoresGarbageValues(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("JOB_TTL", "soon")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want fallback 4", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("JobTTL = %v, want fallback 1h", cfg.JobTTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{DBPath: "paperlens.db"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing API key")
	}
	cfg.APIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg.DBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty db path")
	}
}
