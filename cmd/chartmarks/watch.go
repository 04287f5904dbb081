package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PortfolioLens/internal/annotator"
	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/config"
	"PortfolioLens/internal/notifier"
	"PortfolioLens/internal/recorder"
	"PortfolioLens/internal/scheduler"

	"github.com/google/subcommands"
)

type watchCmd struct {
	common
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh the annotations on a schedule and report changes" }
func (*watchCmd) Usage() string {
	return `chartmarks watch [-config <file>] [-source <doc.json>]

  Reloads the chart document on schedule.refresh_cron, rebuilds the markers
  and sends a message whenever they change. With Telegram configured, also
  answers /markers, /day, /pin, /lookback, /window and /refresh.
`
}

func (p *watchCmd) SetFlags(f *flag.FlagSet) { p.setFlags(f) }

func (p *watchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.Println("[INFO] chartmarks watch starting...")
	cfg, err := p.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Init notifier
	var n notifier.Notifier = &notifier.WriterNotifier{W: os.Stdout}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	}

	// Init recorder
	rec := openRecorder(cfg.Database.SQLitePath)
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, sess, _ := headless(ctx, cfg, rec)
	defer a.Teardown()

	sched := scheduler.NewScheduler(ctx, newCollector(cfg), a, n, sess)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		log.Printf("[ERROR] register cron tasks: %v", err)
		return subcommands.ExitFailure
	}
	if err := sched.RunNow(); err != nil {
		log.Printf("[WARN] initial refresh: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	log.Println("[INFO] chartmarks is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] chartmarks stopped")
	return subcommands.ExitSuccess
}

// headless mounts the annotations on the in-memory engine with the session as host,
// so every callback, tooltip and guide change lands in the recorder.
func headless(ctx context.Context, cfg *config.Config, rec recorder.Recorder) (*annotator.Annotator, *recorder.Session, *chart.MockEngine) {
	eng := chart.NewMockEngine(cfg.ContainerSize())
	sess := recorder.NewSession(rec, "")
	a := annotator.New(chart.Static(eng), cfg.Settings(), sess.Host())
	sess.SetInstance(a.ID().String())
	<-a.Mount(ctx)
	return a, sess, eng
}
