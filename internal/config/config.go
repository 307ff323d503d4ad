package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Fixed TradingView endpoints. The prefix check is the only URL validation
// the add flow performs.
const (
	PublishedScriptsURL = "https://www.tradingview.com/u/#published-scripts"
	ScriptURLPrefix     = "https://www.tradingview.com/script"
	CookieDomain        = ".tradingview.com"
	CookiePath          = "/"
	SessionCookieName   = "sessionid"
)

// Config holds all configuration for the indicator collector. One value is
// built at startup and passed into each component; nothing reads the
// environment after Load returns.
type Config struct {
	// Storage
	IndicatorsFile string
	SessionFile    string

	// Scraping
	PineNameSelector string
	PineIDSelector   string
	PineIDAttr       string
	ScrapeTimeoutMS  int
	NavTimeoutMS     int
	LaunchTimeoutMS  int

	// Behavior
	Strict bool

	// Serve mode
	BindAddr         string
	PortCandidates   []string
	PortAutoFallback bool

	// Notifications
	NTFYEndpoint string

	// Logging
	LogLevel string
	LogFile  string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	dataDir := filepath.Join(xdg.DataHome, "tv_indicators")

	cfg := &Config{
		IndicatorsFile:   getEnvOrDefault("TV_INDICATORS_FILE", filepath.Join(dataDir, "indicators.json")),
		SessionFile:      getEnvOrDefault("TV_SESSION_FILE", filepath.Join(dataDir, "session")),
		PineNameSelector: getEnvOrDefault("TV_PINE_NAME_SELECTOR", `div[class^="tv-chart-view__title-name"]`),
		PineIDSelector:   getEnvOrDefault("TV_PINE_ID_SELECTOR", `button[data-script-id-part]`),
		PineIDAttr:       getEnvOrDefault("TV_PINE_ID_ATTR", "data-script-id-part"),
		ScrapeTimeoutMS:  getEnvIntOrDefault("TV_SCRAPE_TIMEOUT_MS", 5000),
		NavTimeoutMS:     getEnvIntOrDefault("TV_NAV_TIMEOUT_MS", 20000),
		LaunchTimeoutMS:  getEnvIntOrDefault("TV_LAUNCH_TIMEOUT_MS", 30000),
		Strict:           getEnvBoolOrDefault("TV_STRICT", false),
		BindAddr:         getEnvOrDefault("TV_BIND_ADDR", "127.0.0.1:8098"),
		PortCandidates:   getEnvListOrDefault("TV_PORT_CANDIDATES", []string{"127.0.0.1:8098", "127.0.0.1:8099", "127.0.0.1:8100"}),
		PortAutoFallback: getEnvBoolOrDefault("TV_PORT_AUTO_FALLBACK", true),
		NTFYEndpoint:     getEnvOrDefault("TV_NTFY_ENDPOINT", ""),
		LogLevel:         getEnvOrDefault("TV_LOG_LEVEL", "info"),
		LogFile:          getEnvOrDefault("TV_LOG_FILE", "logs/tv_indicators.log"),
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
