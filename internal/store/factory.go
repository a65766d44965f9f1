package store

import (
	"log/slog"

	"github.com/pairplan/pairplan/internal/config"
	"github.com/pairplan/pairplan/internal/sheets"
)

// Open selects a backend at startup, trying each tier in order:
//
//	sheet  — when a spreadsheet id and API key are configured and a probe
//	         round trip succeeds
//	sqlite — when a data directory is configured
//	memory — always succeeds
//
// No failure in the chain is fatal; each one is logged and the next tier is
// tried. The caller inspects Mode() to surface a non-blocking advisory.
func Open(cfg *config.Config, log *slog.Logger) Store {
	if log == nil {
		log = slog.Default()
	}

	if id := cfg.SpreadsheetID(); id != "" && cfg.Sheets.APIKey != "" {
		client := sheets.NewHTTPClient(id, cfg.Sheets.APIKey)
		s, err := NewSheet(client)
		if err == nil {
			return s
		}
		log.Warn("remote spreadsheet unavailable", "error", err)
	} else {
		log.Info("remote spreadsheet not configured")
	}

	if cfg.DataDir != "" {
		s, err := NewSQLite(cfg.DataDir)
		if err == nil {
			return s
		}
		log.Warn("local sqlite unavailable", "data_dir", cfg.DataDir, "error", err)
	}

	return NewMemory()
}
