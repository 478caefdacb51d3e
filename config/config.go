package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	SMTP      SMTPConfig
	Scheduler SchedulerConfig
	Renderer  RendererConfig
	DBPath    string
	LogLevel  string
	Searches  map[string]*SearchConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

// Configured reports whether enough SMTP settings are present to attempt
// a send. Runs without SMTP config still scrape and persist, they just
// skip notification.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.From != "" && s.To != ""
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
}

type RendererConfig struct {
	NavTimeoutMS  int
	SettleDelayMS int
}

// SearchConfig describes one saved search: the first results page URL plus
// scan limits and output paths. One YAML file per search under
// config/searches/.
type SearchConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	ResultsURL  string `yaml:"results_url"`
	MaxPages    int    `yaml:"max_pages"`
	MaxListings int    `yaml:"max_listings"`
	CSVPath     string `yaml:"csv_path"`
	FlagPath    string `yaml:"flag_path"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("FROM_EMAIL"),
			To:       os.Getenv("TO_EMAIL"),
		},
		Scheduler: SchedulerConfig{
			Cron: os.Getenv("SCRAPE_CRON"),
		},
		Renderer: RendererConfig{
			NavTimeoutMS:  getEnvInt("NAV_TIMEOUT_MS", 30000),
			SettleDelayMS: getEnvInt("SETTLE_DELAY_MS", 1500),
		},
		DBPath:   getEnv("DB_PATH", "watcher.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Searches: make(map[string]*SearchConfig),
	}

	if interval := os.Getenv("SCRAPE_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Scheduler.Interval = d
		}
	}

	if err := cfg.loadSearchConfigs(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadSearchConfigs() error {
	configDir := "config/searches"
	entries, err := os.ReadDir(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(configDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var search SearchConfig
		if err := yaml.Unmarshal(data, &search); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if search.ResultsURL == "" {
			return fmt.Errorf("%s: results_url is required", path)
		}
		if search.MaxPages <= 0 {
			search.MaxPages = 2
		}
		if search.CSVPath == "" {
			search.CSVPath = search.ID + "_listings.csv"
		}

		c.Searches[search.ID] = &search
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
