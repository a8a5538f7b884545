// Package cmd implements the CLI application to run the exchange.
package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/config"
	"github.com/etnz/gbce/listing"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&shellCmd{}, "exchange")
	c.Register(&listingCmd{}, "exchange")
	c.Register(&serveCmd{}, "exchange")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a configuration file (yaml, json, toml)")
var listingFile = flag.String("listing", "", "Path to a JSON listing file, the GBCE sample is used by default")
var listingPath = flag.String("listing-path", "", "JSONPath selecting the securities in the listing file")
var Verbose = flag.Bool("v", false, "log debug messages")

// app is what every command needs: the configuration, a logger and an
// exchange with the listing registered.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	exchange *gbce.Exchange
}

// loadConfig loads the configuration and applies the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *listingFile != "" {
		cfg.Listing.File = *listingFile
	}
	if *listingPath != "" {
		cfg.Listing.Path = *listingPath
	}
	if *Verbose {
		cfg.Log.Level = "debug"
	}
	if err := renderer.CheckCurrency(cfg.Exchange.Currency); err != nil {
		return nil, fmt.Errorf("invalid exchange.currency: %w", err)
	}
	return cfg, nil
}

// newApp creates the exchange described by the configuration.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := cfg.Log.Logger()
	if err != nil {
		return nil, fmt.Errorf("invalid log configuration: %w", err)
	}

	e := gbce.NewExchange(gbce.WithWindow(cfg.Exchange.Window), gbce.WithLogger(log))
	secs := listing.Sample()
	if cfg.Listing.File != "" {
		if secs, err = listing.Load(cfg.Listing.File, cfg.Listing.Path); err != nil {
			return nil, err
		}
	}
	if err := listing.Register(e, secs); err != nil {
		return nil, fmt.Errorf("could not register the listing: %w", err)
	}
	log.WithFields(logrus.Fields{"securities": e.Len(), "file": cfg.Listing.File}).Debug("listing registered")

	return &app{cfg: cfg, log: log, exchange: e}, nil
}
