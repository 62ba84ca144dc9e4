package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const (
	defaultQuoteBaseURL    = "https://query1.finance.yahoo.com/v8/finance/chart"
	defaultRefreshSchedule = "*/5 * * * *"
)

// Config holds server configuration loaded from environment variables
type Config struct {
	Port            string
	QuoteBaseURL    string
	FetchTimeout    time.Duration
	CacheTTL        time.Duration
	PGURL           string // optional; settings stay in memory when empty
	RefreshSchedule string
	LogLevel        log.Level
	StaticDir       string
	UpstreamRPS     float64
}

// ReporterConfig holds the scheduled alert check configuration
type ReporterConfig struct {
	Symbols      []string
	Rule         models.AlertRule
	QuoteBaseURL string
	FetchTimeout time.Duration
	UpstreamRPS  float64
	LogLevel     log.Level
}

// Load reads server configuration from environment variables. A .env file in
// the working directory is read first; variables already set in the shell win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	upstream, err := loadUpstream()
	if err != nil {
		return nil, err
	}

	cacheTTL, err := durationEnv("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	schedule := stringEnv("REFRESH_SCHEDULE", defaultRefreshSchedule)
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", schedule, err)
	}

	return &Config{
		Port:            stringEnv("PORT", "3000"),
		QuoteBaseURL:    upstream.baseURL,
		FetchTimeout:    upstream.timeout,
		CacheTTL:        cacheTTL,
		PGURL:           os.Getenv("PG_URL"),
		RefreshSchedule: schedule,
		LogLevel:        upstream.level,
		StaticDir:       os.Getenv("STATIC_DIR"),
		UpstreamRPS:     upstream.rps,
	}, nil
}

// LoadReporter reads the alert check configuration. Unlike the HTTP surface,
// an unknown ALERT_PERIOD is an error rather than a silent default.
func LoadReporter() (*ReporterConfig, error) {
	_ = godotenv.Load()

	upstream, err := loadUpstream()
	if err != nil {
		return nil, err
	}

	symbols, err := symbolsEnv("WATCH_STOCKS", models.DefaultWatchlist)
	if err != nil {
		return nil, err
	}

	threshold := models.DefaultAlertThreshold
	if v := strings.TrimSpace(os.Getenv("ALERT_THRESHOLD")); v != "" {
		threshold, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ALERT_THRESHOLD %q: %w", v, err)
		}
	}

	period := models.DefaultTimeframe
	if v := os.Getenv("ALERT_PERIOD"); v != "" {
		period, err = models.ParseTimeframe(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ALERT_PERIOD: %w", err)
		}
	}

	rule := models.AlertRule{Threshold: threshold, Window: period}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return &ReporterConfig{
		Symbols:      symbols,
		Rule:         rule,
		QuoteBaseURL: upstream.baseURL,
		FetchTimeout: upstream.timeout,
		UpstreamRPS:  upstream.rps,
		LogLevel:     upstream.level,
	}, nil
}

type upstreamConfig struct {
	baseURL string
	timeout time.Duration
	rps     float64
	level   log.Level
}

// loadUpstream reads the settings shared by the server and the reporter.
// QUOTE_BASE_URL takes precedence over the older API_BASE_URL name.
func loadUpstream() (upstreamConfig, error) {
	cfg := upstreamConfig{
		baseURL: stringEnv("QUOTE_BASE_URL", stringEnv("API_BASE_URL", defaultQuoteBaseURL)),
	}

	var err error
	if cfg.timeout, err = durationEnv("FETCH_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}

	cfg.rps = 5
	if v := os.Getenv("UPSTREAM_RPS"); v != "" {
		cfg.rps, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid UPSTREAM_RPS %q: %w", v, err)
		}
	}

	cfg.level, err = log.ParseLevel(stringEnv("LOG_LEVEL", "info"))
	if err != nil {
		return cfg, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// durationEnv accepts Go durations ("10s") or a bare number of seconds.
func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		v = strconv.Itoa(secs) + "s"
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive duration", key, v)
	}
	return d, nil
}

func symbolsEnv(key string, def []string) ([]string, error) {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return append([]string(nil), def...), nil
	}

	var symbols []string
	seen := map[string]bool{}
	for _, part := range strings.Split(v, ",") {
		sym := models.NormalizeSymbol(part)
		if sym == "" || seen[sym] {
			continue
		}
		if !models.ValidSymbol(sym) {
			return nil, fmt.Errorf("invalid symbol %q in %s", sym, key)
		}
		seen[sym] = true
		symbols = append(symbols, sym)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%s has no symbols", key)
	}
	return symbols, nil
}
