package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ServiceConfig is the on-disk shape of the [service] table.
type ServiceConfig struct {
	URL                   string `toml:"url"`
	AnalyzeTimeoutSeconds int    `toml:"analyze_timeout_seconds"`
	UploadTimeoutSeconds  int    `toml:"upload_timeout_seconds"`
}

// UserConfig mirrors settings.toml.
type UserConfig struct {
	Service          ServiceConfig `toml:"service"`
	AllowedFileTypes []string      `toml:"allowed_file_types"`
}

// Config is the resolved runtime configuration.
type Config struct {
	ServiceURL       string
	AnalyzeTimeout   time.Duration
	UploadTimeout    time.Duration
	AllowedFileTypes []string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("CATUI_SERVICE_URL"); url != "" {
		c.ServiceURL = url
	}
	if v := os.Getenv("CATUI_ANALYZE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.AnalyzeTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("CATUI_UPLOAD_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.UploadTimeout = time.Duration(secs) * time.Second
		}
	}
}

func CheckDebug() bool {
	debug := os.Getenv("CATUI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog() {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(GetConfigDir(), "debug.log")

	// 0600: request traces may contain submitted text
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (CATUI_DEBUG=%s) ===", os.Getenv("CATUI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load resolves configuration from settings.toml (created with defaults
// on first run) and then applies CATUI_* env overrides on top.
func Load() (*Config, error) {
	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := fromUserConfig(userCfg)
	cfg.applyEnvOverrides()

	return cfg, nil
}

func fromUserConfig(userCfg *UserConfig) *Config {
	cfg := &Config{
		ServiceURL:       userCfg.Service.URL,
		AnalyzeTimeout:   time.Duration(userCfg.Service.AnalyzeTimeoutSeconds) * time.Second,
		UploadTimeout:    time.Duration(userCfg.Service.UploadTimeoutSeconds) * time.Second,
		AllowedFileTypes: userCfg.AllowedFileTypes,
	}

	defaults := DefaultUserConfig()
	if cfg.ServiceURL == "" {
		cfg.ServiceURL = defaults.Service.URL
	}
	if cfg.AnalyzeTimeout <= 0 {
		cfg.AnalyzeTimeout = time.Duration(defaults.Service.AnalyzeTimeoutSeconds) * time.Second
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = time.Duration(defaults.Service.UploadTimeoutSeconds) * time.Second
	}
	if len(cfg.AllowedFileTypes) == 0 {
		cfg.AllowedFileTypes = defaults.AllowedFileTypes
	}

	return cfg
}
