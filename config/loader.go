package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the GPLOT_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("GPLOT_GNUPLOT_DIR"); v != "" {
		cfg.PlotterDir = v
	}
	if v := os.Getenv("GPLOT_GNUPLOT_BIN"); v != "" {
		cfg.PlotterName = v
	}
	if v := os.Getenv("GPLOT_TERMINAL"); v != "" {
		cfg.Terminal = v
	}
	if v := os.Getenv("GPLOT_TMP_DIR"); v != "" {
		cfg.TempDir = v
	}
	if v := envInt("GPLOT_MAX_TMP_FILES"); v > 0 {
		cfg.MaxTempFiles = v
	}
	if envBool("GPLOT_KEEP_TMP") {
		cfg.RetainTempFiles = true
	}

	// Remote plotter
	if v := os.Getenv("GPLOT_SSH"); v != "" {
		cfg.SSHSpec = v
	}
	if v := os.Getenv("GPLOT_SSH_KEY"); v != "" {
		cfg.SSHKeyPath = v
	}
	if v := os.Getenv("GPLOT_REMOTE_TMP_DIR"); v != "" {
		cfg.RemoteTempDir = v
	}

	if v := envInt("GPLOT_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envBool(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
