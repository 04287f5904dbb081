package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&markersCmd{}, "chart")
	commander.Register(&zoomCmd{}, "chart")
	commander.Register(&replayCmd{}, "chart")
	commander.Register(&watchCmd{}, "service")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
