package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/term"
)

type shellCmd struct {
	quiet bool
}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "trade interactively on the exchange" }
func (*shellCmd) Usage() string {
	return `gbce shell [-q]

  Reads commands from the standard input, one per line, until QUIT or the end
  of the input. Type HELP for the list of commands.

  The banner and the prompt are only displayed in a terminal.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "never display the banner and the prompt")
}

func (c *shellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	con := &console{
		exchange: a.exchange,
		name:     a.cfg.Exchange.Name,
		currency: a.cfg.Exchange.Currency,
		out:      os.Stdout,
		markdown: renderMarkdown,
	}
	interactive := !c.quiet && term.IsTerminal(int(os.Stdin.Fd()))
	if err := con.run(ctx, os.Stdin, interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run reads and executes lines from r until QUIT, the end of r or ctx is done.
func (c *console) run(ctx context.Context, r io.Reader, interactive bool) error {
	if interactive {
		c.execute(ctx, "HELP")
	}
	scanner := bufio.NewScanner(r)
	for {
		if interactive {
			fmt.Fprint(c.out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if c.execute(ctx, scanner.Text()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}
