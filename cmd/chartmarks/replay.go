package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"PortfolioLens/internal/replay"

	"github.com/google/subcommands"
)

type replayCmd struct {
	common
	script string
	db     string
}

func (*replayCmd) Name() string     { return "replay" }
func (*replayCmd) Synopsis() string { return "play a pointer session against the chart annotations" }
func (*replayCmd) Usage() string {
	return `chartmarks replay -script <file> [-config <file>] [-source <doc.json>] [-db <sqlite>]

  Mounts the annotations on an in-memory chart and replays hover, click, pan,
  resize, pin and lookback instructions, printing every tooltip, guide and
  day callback. With -db, the session is also recorded to SQLite.
`
}

func (p *replayCmd) SetFlags(f *flag.FlagSet) {
	p.setFlags(f)
	f.StringVar(&p.script, "script", "", "Replay script; '-' reads stdin.")
	f.StringVar(&p.db, "db", "", "SQLite file receiving the session; defaults to database.sqlite_path.")
}

func (p *replayCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.script == "" {
		fmt.Fprintln(os.Stderr, "missing -script")
		return subcommands.ExitUsageError
	}
	cfg, err := p.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	r := os.Stdin
	if p.script != "-" {
		if r, err = os.Open(p.script); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer r.Close()
	}
	steps, err := replay.Parse(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	in, err := collect(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	dbPath := p.db
	if dbPath == "" {
		dbPath = cfg.Database.SQLitePath
	}
	rec := openRecorder(dbPath)
	defer rec.Close()

	sum, err := replay.Run(ctx, *in, steps, replay.Options{
		Settings: cfg.Settings(),
		Size:     cfg.ContainerSize(),
		Out:      os.Stdout,
		Recorder: rec,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d step(s), %d hover(s), %d click(s), %d marker(s)\n", sum.Steps, len(sum.Hovers), len(sum.Clicks), sum.Markers)
	return subcommands.ExitSuccess
}
