package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"PortfolioLens/internal/calculator"
	"PortfolioLens/internal/model"
	"PortfolioLens/internal/notifier"

	"github.com/google/subcommands"
)

type zoomCmd struct {
	common
	lookback string
}

func (*zoomCmd) Name() string     { return "zoom" }
func (*zoomCmd) Synopsis() string { return "show the visible range a lookback selects" }
func (*zoomCmd) Usage() string {
	return `chartmarks zoom [-config <file>] [-source <doc.json>] [-lookback <N|all>]

  Prints the window a lookback of N years selects, ending at the last bar,
  with the high and low of the bars inside it.
`
}

func (p *zoomCmd) SetFlags(f *flag.FlagSet) {
	p.setFlags(f)
	f.StringVar(&p.lookback, "lookback", "", "Lookback in years (N, Ny or all); defaults to the document's.")
}

func (p *zoomCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := p.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	in, err := collect(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	l := in.Lookback
	if p.lookback != "" {
		if l, err = model.ParseLookback(p.lookback); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	w := calculator.ZoomWindow(l, in.Bars)
	high, low, err := calculator.WindowRange(in.Bars, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	fmt.Print(notifier.FormatWindow(l, w, high, low))
	return subcommands.ExitSuccess
}
