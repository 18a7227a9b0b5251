package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Paths   PathsConfig
	Site    SiteConfig
	Scraper ScraperConfig
	Browser BrowserConfig
	Logging LoggingConfig
}

type PathsConfig struct {
	KeywordsFile  string
	OutputDir     string
	ScreenshotDir string
	LogDir        string
	WorkbookName  string
}

type SiteConfig struct {
	BaseURL string
}

type ScraperConfig struct {
	ResultsTimeout time.Duration
	RateLimitMin   time.Duration
	RateLimitMax   time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Paths: PathsConfig{
			KeywordsFile:  getEnvOrDefault("KEYWORDS_FILE", "Keywords.txt"),
			OutputDir:     getEnvOrDefault("OUTPUT_DIR", "output"),
			ScreenshotDir: getEnvOrDefault("SCREENSHOT_DIR", ""),
			LogDir:        getEnvOrDefault("LOG_DIR", "logs"),
			WorkbookName:  getEnvOrDefault("WORKBOOK_NAME", "Tosshin data.xlsx"),
		},
		Site: SiteConfig{
			BaseURL: getEnvOrDefault("TOSSHIN_BASE_URL", "https://www.tosshin.co.jp/parts-search/"),
		},
		Scraper: ScraperConfig{
			ResultsTimeout: getDurationOrDefault("SCRAPER_RESULTS_TIMEOUT", 15*time.Second),
			RateLimitMin:   getDurationOrDefault("SCRAPER_RATE_LIMIT_MIN", 2*time.Second),
			RateLimitMax:   getDurationOrDefault("SCRAPER_RATE_LIMIT_MAX", 5*time.Second),
			MaxRetries:     getIntOrDefault("SCRAPER_MAX_RETRIES", 1),
			RetryDelay:     getDurationOrDefault("SCRAPER_RETRY_DELAY", 3*time.Second),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			UserAgent:      getEnvOrDefault("BROWSER_USER_AGENT", defaultUserAgent),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "ja-JP,ja;q=0.9,en;q=0.8"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Asia/Tokyo"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "ja-JP"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	if cfg.Paths.ScreenshotDir == "" {
		cfg.Paths.ScreenshotDir = filepath.Join(cfg.Paths.OutputDir, "screenshots")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Site.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid TOSSHIN_BASE_URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("TOSSHIN_BASE_URL must include a host")
	}

	if c.Scraper.ResultsTimeout <= 0 {
		return fmt.Errorf("SCRAPER_RESULTS_TIMEOUT must be positive")
	}

	if c.Scraper.RateLimitMin > c.Scraper.RateLimitMax {
		return fmt.Errorf("SCRAPER_RATE_LIMIT_MIN cannot be greater than SCRAPER_RATE_LIMIT_MAX")
	}

	if c.Scraper.MaxRetries < 0 {
		return fmt.Errorf("SCRAPER_MAX_RETRIES cannot be negative")
	}

	if c.Paths.WorkbookName == "" {
		return fmt.Errorf("WORKBOOK_NAME cannot be empty")
	}

	return nil
}

// WorkbookPath is the destination of the final spreadsheet.
func (c *Config) WorkbookPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Paths.WorkbookName)
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
