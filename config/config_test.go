package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := &Config{
		Exchange: ExchangeConfig{Name: "Global Beverage Corporation Exchange", Window: 15 * time.Minute, Currency: "GBP"},
		Listing:  ListingConfig{Path: "$.securities[*]"},
		HTTP:     HTTPConfig{Addr: ":8080"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GBCE_EXCHANGE_WINDOW", "5m")
	t.Setenv("GBCE_LISTING_FILE", "listing.json")
	t.Setenv("GBCE_HTTP_ADDR", "localhost:9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Exchange.Window != 5*time.Minute {
		t.Errorf("Exchange.Window = %v, want 5m", cfg.Exchange.Window)
	}
	if cfg.Listing.File != "listing.json" {
		t.Errorf("Listing.File = %q, want %q", cfg.Listing.File, "listing.json")
	}
	if cfg.HTTP.Addr != "localhost:9090" {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.HTTP.Addr, "localhost:9090")
	}
}

func TestLoad_FileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	file := filepath.Join(dir, "gbce.yaml")
	yaml := "exchange:\n  window: 30m\n  currency: EUR\nlog:\n  level: debug\n"
	if err := os.WriteFile(file, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	// .env wins over the file.
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GBCE_LOG_LEVEL=warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GBCE_LOG_LEVEL") })

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Exchange.Window != 30*time.Minute || cfg.Exchange.Currency != "EUR" {
		t.Errorf("Exchange = %+v, want 30m EUR", cfg.Exchange)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("negative window", func(t *testing.T) {
		t.Setenv("GBCE_EXCHANGE_WINDOW", "-1m")
		if _, err := Load(""); err == nil {
			t.Error("Load() expected an error for a negative window")
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load("does-not-exist.yaml"); err == nil {
			t.Error("Load() expected an error for a missing config file")
		}
	})
}

func TestLogConfig_Logger(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       LogConfig
		wantLevel logrus.Level
		expectErr bool
	}{
		{"text info", LogConfig{Level: "info", Format: "text"}, logrus.InfoLevel, false},
		{"json debug", LogConfig{Level: "debug", Format: "JSON"}, logrus.DebugLevel, false},
		{"bad level", LogConfig{Level: "loud", Format: "text"}, 0, true},
		{"bad format", LogConfig{Level: "info", Format: "xml"}, 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := tc.cfg.Logger()
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Fatalf("Logger() error = %v, want error: %v", err, tc.expectErr)
			}
			if err == nil && logger.GetLevel() != tc.wantLevel {
				t.Errorf("Logger() level = %v, want %v", logger.GetLevel(), tc.wantLevel)
			}
		})
	}
}
