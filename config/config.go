// Package config loads the runtime configuration of the gbce tools.
//
// Values come, by increasing priority, from defaults, an optional
// configuration file, a .env file and the environment. Environment variables
// are prefixed with GBCE_ and use underscores, e.g. GBCE_EXCHANGE_WINDOW for
// exchange.window.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "GBCE"

// Config keeps the runtime configuration.
type Config struct {
	Exchange ExchangeConfig `mapstructure:"exchange"`
	Listing  ListingConfig  `mapstructure:"listing"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
}

// ExchangeConfig holds the exchange settings.
type ExchangeConfig struct {
	Name     string        `mapstructure:"name"`
	Window   time.Duration `mapstructure:"window"`   // VWSP trailing window.
	Currency string        `mapstructure:"currency"` // prices are quoted in minor units of this currency.
}

// ListingConfig tells where to find the securities to list.
type ListingConfig struct {
	File string `mapstructure:"file"` // empty for the built-in sample.
	Path string `mapstructure:"path"` // JSONPath selecting the securities.
}

// HTTPConfig holds HTTP server related settings.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json.
}

var keys = []string{
	"exchange.name", "exchange.window", "exchange.currency",
	"listing.file", "listing.path",
	"http.addr",
	"log.level", "log.format",
}

// Load builds the Config. configFile is optional, it can be any format
// supported by viper (yaml, json, toml...).
func Load(configFile string) (*Config, error) {
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("exchange.name", "Global Beverage Corporation Exchange")
	v.SetDefault("exchange.window", "15m")
	v.SetDefault("exchange.currency", "GBP")
	v.SetDefault("listing.file", "")
	v.SetDefault("listing.path", "$.securities[*]")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %q: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("could not bind env var for key %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if cfg.Exchange.Window <= 0 {
		return nil, fmt.Errorf("exchange.window must be positive, got %v", cfg.Exchange.Window)
	}
	return &cfg, nil
}

// Logger builds a logger writing to stderr.
func (c LogConfig) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	switch strings.ToLower(c.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format: %q", c.Format)
	}
	return logger, nil
}
