package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"PortfolioLens/internal/annotator"
	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/calculator"
	"PortfolioLens/internal/collector"
	"PortfolioLens/internal/model"
	"PortfolioLens/internal/notifier"
	"PortfolioLens/internal/recorder"

	"github.com/robfig/cron/v3"
)

type retrier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler refreshes one chart on a cron schedule and answers chat commands about it.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Annotator *annotator.Annotator
	Notifier  notifier.Notifier
	Session   *recorder.Session
	Ctx       context.Context

	mu       sync.Mutex
	inputs   *model.Inputs
	markers  []model.RenderMarker
	pin      *model.NullDayKey
	lookback *model.Lookback
}

// NewScheduler creates a new Scheduler. The session may be nil.
func NewScheduler(ctx context.Context, col *collector.Collector, a *annotator.Annotator, n notifier.Notifier, sess *recorder.Session) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Annotator: a,
		Notifier:  n,
		Session:   sess,
		Ctx:       ctx,
	}
}

// RegisterAll registers the refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() error {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	if err := s.refresh(); err != nil {
		log.Printf("[ERROR] refresh: %v", err)
		s.trySend(fmt.Sprintf("❌ chart refresh failed: %v", err))
	}
}

// refresh reloads the inputs and rebuilds the annotations. Pins and lookbacks set
// by command survive the reload.
func (s *Scheduler) refresh() error {
	log.Println("[INFO] running refresh task")
	in, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.pin != nil {
		in.Pin = *s.pin
	}
	if s.lookback != nil {
		in.Lookback = *s.lookback
	}
	s.inputs = in
	first := s.markers == nil
	before := s.markers
	s.mu.Unlock()

	s.Annotator.Update(*in)
	res := s.Annotator.Result()
	if s.Session != nil {
		s.Session.Rebuilt(res)
	}

	s.mu.Lock()
	s.markers = append([]model.RenderMarker{}, res.Markers...)
	s.mu.Unlock()

	if first {
		log.Printf("[INFO] %s: %d marker(s) loaded", in.Symbol, len(res.Markers))
		return nil
	}
	if msg := notifier.FormatChanges(in.Symbol, before, res.Markers); msg != "" {
		s.trySend(msg)
	}
	return nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return help
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "/refresh":
		s.refreshTask()
		return ""
	case "/markers":
		return notifier.FormatMarkers(s.symbol(), s.Annotator.Result())
	case "/day":
		day, err := bucketer.Parse(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		bk, _ := s.Annotator.Result().Bucket(day)
		return notifier.FormatDay(day, bk, 0)
	case "/pin":
		return s.setPin(arg)
	case "/lookback":
		l, err := model.ParseLookback(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		s.mu.Lock()
		s.lookback = &l
		s.mu.Unlock()
		s.Annotator.SetLookback(l)
		return s.window(l)
	case "/window":
		s.mu.Lock()
		l := model.LookbackAll
		if s.inputs != nil {
			l = s.inputs.Lookback
		}
		if s.lookback != nil {
			l = *s.lookback
		}
		s.mu.Unlock()
		return s.window(l)
	default:
		return help
	}
}

const help = "Available commands:\n" +
	"• /markers\n" +
	"• /day YYYY-MM-DD\n" +
	"• /pin YYYY-MM-DD | clear\n" +
	"• /lookback N | all\n" +
	"• /window\n" +
	"• /refresh"

func (s *Scheduler) setPin(arg string) string {
	day := model.NoDay
	if arg != "clear" {
		k, err := bucketer.Parse(arg)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		day = model.SomeDay(k)
	}
	s.mu.Lock()
	s.pin = &day
	s.mu.Unlock()
	s.Annotator.SetPin(day)
	if !day.Valid {
		return "📌 pin cleared"
	}
	return fmt.Sprintf("📌 pinned %s", day)
}

func (s *Scheduler) window(l model.Lookback) string {
	s.mu.Lock()
	var bars []model.OHLCV
	if s.inputs != nil {
		bars = s.inputs.Bars
	}
	s.mu.Unlock()

	w := calculator.ZoomWindow(l, bars)
	high, low, err := calculator.WindowRange(bars, w)
	if err != nil {
		log.Printf("[WARN] window range: %v", err)
	}
	return notifier.FormatWindow(l, w, high, low)
}

func (s *Scheduler) symbol() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inputs == nil {
		return ""
	}
	return s.inputs.Symbol
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	var err error
	if r, ok := s.Notifier.(retrier); ok {
		err = r.SendWithRetry(s.Ctx, text, 3)
	} else {
		err = s.Notifier.Send(text)
	}
	if err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
