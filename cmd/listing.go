package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
)

type listingCmd struct {
	json bool
}

func (*listingCmd) Name() string     { return "listing" }
func (*listingCmd) Synopsis() string { return "display the listed securities" }
func (*listingCmd) Usage() string {
	return `gbce listing [-json]

  Displays the securities listed on the exchange, as configured by -listing
  or listing.file.
`
}

func (c *listingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the listing in JSON")
}

func (c *listingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	l := renderer.NewListing(a.cfg.Exchange.Name, a.exchange, a.cfg.Exchange.Currency)
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding listing: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderListing(l))
	return subcommands.ExitSuccess
}
