package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
)

// console interprets the commands typed in the shell, one line at a time.
//
// Each line is dispatched to a subcommands.Commander, command words are case
// insensitive.
type console struct {
	exchange *gbce.Exchange
	name     string // of the exchange.
	currency string
	out      io.Writer
	markdown func(string) string
}

// commands returns the console commands in help order.
func (c *console) commands() []subcommands.Command {
	return []subcommands.Command{
		&helpLineCmd{c},
		&dyLineCmd{c},
		&peLineCmd{c},
		&mtLineCmd{c},
		&vwspLineCmd{c},
		&indexLineCmd{c},
		&listLineCmd{c},
		&tradesLineCmd{c},
		&exportLineCmd{c},
	}
}

// execute runs a single line. It returns true when the user asked to quit.
func (c *console) execute(ctx context.Context, line string) (quit bool) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	words[0] = strings.ToUpper(words[0])
	if words[0] == "QUIT" || words[0] == "EXIT" {
		return true
	}

	commands := c.commands()
	known := false
	for _, cmd := range commands {
		known = known || cmd.Name() == words[0]
	}
	top := flag.NewFlagSet("gbce", flag.ContinueOnError)
	top.SetOutput(io.Discard)
	if !known || top.Parse(words) != nil {
		fmt.Fprintln(c.out, "Invalid command, type HELP for the list of commands.")
		return false
	}

	cdr := subcommands.NewCommander(top, "gbce")
	cdr.Output = c.out
	cdr.Error = c.out
	for _, cmd := range commands {
		cdr.Register(cmd, "")
	}
	cdr.Execute(ctx)
	return false
}

// usage reports a command used with the wrong arguments.
func (c *console) usage(cmd subcommands.Command) subcommands.ExitStatus {
	fmt.Fprintf(c.out, "Usage: %s", cmd.Usage())
	return subcommands.ExitUsageError
}

func (c *console) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(c.out, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: invalid price %q", gbce.ErrInvalidArgument, s)
	}
	return price, nil
}

// number formats an indicator with at most four decimals.
func number(v float64) string { return renderer.R(v).String() }

type helpLineCmd struct{ *console }

func (*helpLineCmd) Name() string           { return "HELP" }
func (*helpLineCmd) Synopsis() string       { return "show this screen" }
func (*helpLineCmd) Usage() string          { return "HELP\n" }
func (*helpLineCmd) SetFlags(*flag.FlagSet) {}
func (c *helpLineCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(c.out, "%s\n\nCommands:\n", c.name)
	for _, cmd := range c.commands() {
		fmt.Fprintf(c.out, "  %-40s %s\n", strings.TrimSpace(cmd.Usage()), cmd.Synopsis())
	}
	fmt.Fprintf(c.out, "  %-40s %s\n", "QUIT", "leave the shell")
	return subcommands.ExitSuccess
}

type dyLineCmd struct{ *console }

func (*dyLineCmd) Name() string           { return "DY" }
func (*dyLineCmd) Synopsis() string       { return "dividend yield at a market price" }
func (*dyLineCmd) Usage() string          { return "DY <symbol> <price>\n" }
func (*dyLineCmd) SetFlags(*flag.FlagSet) {}
func (c *dyLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.usage(c)
	}
	price, err := parsePrice(f.Arg(1))
	if err != nil {
		return c.fail(err)
	}
	dy, err := c.exchange.DividendYield(f.Arg(0), price)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "Dividend yield of %s at %v: %s\n", gbce.CanonicalSymbol(f.Arg(0)), price, number(dy))
	return subcommands.ExitSuccess
}

type peLineCmd struct{ *console }

func (*peLineCmd) Name() string           { return "PE" }
func (*peLineCmd) Synopsis() string       { return "P/E ratio at a market price" }
func (*peLineCmd) Usage() string          { return "PE <symbol> <price>\n" }
func (*peLineCmd) SetFlags(*flag.FlagSet) {}
func (c *peLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.usage(c)
	}
	price, err := parsePrice(f.Arg(1))
	if err != nil {
		return c.fail(err)
	}
	pe, err := c.exchange.PriceEarningsRatio(f.Arg(0), price)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "P/E ratio of %s at %v: %s\n", gbce.CanonicalSymbol(f.Arg(0)), price, number(pe))
	return subcommands.ExitSuccess
}

type mtLineCmd struct{ *console }

func (*mtLineCmd) Name() string           { return "MT" }
func (*mtLineCmd) Synopsis() string       { return "make a trade" }
func (*mtLineCmd) Usage() string          { return "MT <symbol> <quantity> <buy|sell> <price>\n" }
func (*mtLineCmd) SetFlags(*flag.FlagSet) {}
func (c *mtLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 4 {
		return c.usage(c)
	}
	quantity, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		return c.fail(fmt.Errorf("%w: invalid quantity %q", gbce.ErrInvalidArgument, f.Arg(1)))
	}
	direction, err := gbce.ParseDirection(f.Arg(2))
	if err != nil {
		return c.fail(err)
	}
	price, err := parsePrice(f.Arg(3))
	if err != nil {
		return c.fail(err)
	}
	t, err := c.exchange.MakeTrade(f.Arg(0), quantity, direction, price)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "Trade executed: %v\n", t)
	return subcommands.ExitSuccess
}

type vwspLineCmd struct{ *console }

func (*vwspLineCmd) Name() string           { return "VWSP" }
func (*vwspLineCmd) Synopsis() string       { return "volume weighted stock price of the recent trades" }
func (*vwspLineCmd) Usage() string          { return "VWSP <symbol>\n" }
func (*vwspLineCmd) SetFlags(*flag.FlagSet) {}
func (c *vwspLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.usage(c)
	}
	vwsp, err := c.exchange.VolumeWeightedPrice(f.Arg(0))
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "VWSP of %s over the last %v: %s\n", gbce.CanonicalSymbol(f.Arg(0)), c.exchange.Window(), number(vwsp))
	return subcommands.ExitSuccess
}

type indexLineCmd struct{ *console }

func (*indexLineCmd) Name() string           { return "INDEX" }
func (*indexLineCmd) Synopsis() string       { return "All Share Index" }
func (*indexLineCmd) Usage() string          { return "INDEX\n" }
func (*indexLineCmd) SetFlags(*flag.FlagSet) {}
func (c *indexLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return c.usage(c)
	}
	index, err := c.exchange.AllShareIndex()
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "All Share Index: %s\n", number(index))
	return subcommands.ExitSuccess
}

type listLineCmd struct{ *console }

func (*listLineCmd) Name() string           { return "LIST" }
func (*listLineCmd) Synopsis() string       { return "listed securities and their indicators" }
func (*listLineCmd) Usage() string          { return "LIST\n" }
func (*listLineCmd) SetFlags(*flag.FlagSet) {}
func (c *listLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return c.usage(c)
	}
	fmt.Fprint(c.out, c.markdown(renderer.RenderListing(renderer.NewListing(c.name, c.exchange, c.currency))))
	return subcommands.ExitSuccess
}

type tradesLineCmd struct{ *console }

func (*tradesLineCmd) Name() string           { return "TRADES" }
func (*tradesLineCmd) Synopsis() string       { return "trades made so far, optionally on a single security" }
func (*tradesLineCmd) Usage() string          { return "TRADES [<symbol>]\n" }
func (*tradesLineCmd) SetFlags(*flag.FlagSet) {}
func (c *tradesLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return c.usage(c)
	}
	symbol := f.Arg(0)
	if symbol != "" {
		if _, err := c.exchange.Security(symbol); err != nil {
			return c.fail(err)
		}
	}
	fmt.Fprint(c.out, c.markdown(renderer.RenderTrades(renderer.NewTrades(c.exchange, symbol, c.currency))))
	return subcommands.ExitSuccess
}

type exportLineCmd struct{ *console }

func (*exportLineCmd) Name() string           { return "EXPORT" }
func (*exportLineCmd) Synopsis() string       { return "write the trades to a JSONL file" }
func (*exportLineCmd) Usage() string          { return "EXPORT <file>\n" }
func (*exportLineCmd) SetFlags(*flag.FlagSet) {}
func (c *exportLineCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.usage(c)
	}
	file, err := os.Create(f.Arg(0))
	if err != nil {
		return c.fail(err)
	}
	if err := gbce.EncodeBlotter(file, c.exchange); err != nil {
		file.Close()
		os.Remove(f.Arg(0))
		return c.fail(err)
	}
	if err := file.Close(); err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "%d trades exported to %s\n", c.exchange.TradeCount(), f.Arg(0))
	return subcommands.ExitSuccess
}
