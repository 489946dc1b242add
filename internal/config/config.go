package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Export backends.
const (
	BackendXLSX   = "xlsx"
	BackendSheets = "sheets"
)

type Config struct {
	// Database
	DBPath string

	// Export
	ExportBackend string
	ExportDir     string

	// Google Sheets (only used with the sheets export backend)
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		DBPath: getEnv("ZAKAT_DB_PATH", "./data/zakat.db"),

		ExportBackend: getEnv("EXPORT_BACKEND", BackendXLSX),
		ExportDir:     getEnv("EXPORT_DIR", "."),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Zakat"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	} else if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create database directory '%s': %v", dir, err))
			}
		}
	}

	switch c.ExportBackend {
	case BackendXLSX, BackendSheets:
	default:
		errs = append(errs, fmt.Sprintf("invalid export backend '%s': must be one of [%s %s]",
			c.ExportBackend, BackendXLSX, BackendSheets))
	}

	if c.ExportBackend == BackendXLSX {
		if c.ExportDir == "" {
			errs = append(errs, "export directory cannot be empty when using xlsx backend")
		} else if _, err := os.Stat(c.ExportDir); os.IsNotExist(err) {
			if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create export directory '%s': %v", c.ExportDir, err))
			}
		}
	}

	if c.ExportBackend == BackendSheets {
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleSheetName == "" {
			errs = append(errs, "Google Sheet name is required when using sheets backend")
		}
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets backend")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
