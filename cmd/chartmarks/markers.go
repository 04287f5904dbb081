package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"PortfolioLens/internal/annotator"
	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/notifier"

	"github.com/google/subcommands"
)

type markersCmd struct {
	common
	day string
}

func (*markersCmd) Name() string     { return "markers" }
func (*markersCmd) Synopsis() string { return "list the trade and dividend markers of a chart" }
func (*markersCmd) Usage() string {
	return `chartmarks markers [-config <file>] [-source <doc.json>] [-day <YYYY-MM-DD>]

  Loads the chart document, buckets its trades and dividends by UTC day and
  prints one line per marker. With -day, prints the tooltip content of that day.
`
}

func (p *markersCmd) SetFlags(f *flag.FlagSet) {
	p.setFlags(f)
	f.StringVar(&p.day, "day", "", "Show the detail of a single day.")
}

func (p *markersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// No engine is mounted: Update only aggregates.
	a := annotator.New(nil, cfg.Settings(), annotator.Host{})
	a.Update(*in)
	res := a.Result()

	if p.day == "" {
		fmt.Print(notifier.FormatMarkers(in.Symbol, res))
		return subcommands.ExitSuccess
	}
	day, err := bucketer.Parse(p.day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing day: %v\n", err)
		return subcommands.ExitUsageError
	}
	bk, _ := res.Bucket(day)
	fmt.Print(notifier.FormatDay(day, bk, cfg.Chart.MaxLines))
	return subcommands.ExitSuccess
}
