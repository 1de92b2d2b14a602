package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	OCR      OCRConfig
	Extract  ExtractConfig
	Analyzer AnalyzerConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Language    string
	TessdataDir string
	RenderScale float64
	PageTimeout time.Duration
	MaxPages    int
}

// ExtractConfig holds the heuristics of the text extractors.
type ExtractConfig struct {
	LineBreakYDelta float64 // vertical run delta that starts a new line
	MinTotalChars   int     // below this, a PDF is text-poor
	MinPageChars    int     // per-page non-whitespace floor for trust
	ForceOCR        bool
}

// AnalyzerConfig holds the optional remote analyzer endpoint.
type AnalyzerConfig struct {
	URL     string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "caseintake.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			Language:    getEnv("OCR_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			RenderScale: getEnvAsFloat64("OCR_RENDER_SCALE", 2.0),
			PageTimeout: getEnvAsDuration("OCR_PAGE_TIMEOUT", 2*time.Minute),
			MaxPages:    getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Extract: ExtractConfig{
			LineBreakYDelta: getEnvAsFloat64("EXTRACT_LINEBREAK_Y_DELTA", 5.0),
			MinTotalChars:   getEnvAsInt("EXTRACT_MIN_TOTAL_CHARS", 50),
			MinPageChars:    getEnvAsInt("EXTRACT_MIN_PAGE_CHARS", 10),
			ForceOCR:        getEnvAsBool("EXTRACT_FORCE_OCR", false),
		},
		Analyzer: AnalyzerConfig{
			URL:     getEnv("ANALYZER_URL", ""),
			Timeout: getEnvAsDuration("ANALYZER_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.OCR.RenderScale <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_RENDER_SCALE must be positive", ErrInvalidInput)
	}
	if c.Extract.MinTotalChars < 0 || c.Extract.MinPageChars < 0 {
		return NewAppError("CONFIG_ERROR", "extract thresholds must be non-negative", ErrInvalidInput)
	}
	return nil
}
