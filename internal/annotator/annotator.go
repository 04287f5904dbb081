// Package annotator is the chart annotation component: it acquires the chart engine,
// rebuilds buckets and markers from the current inputs and keeps the hover, click and
// pin subscriptions tied to the bucket map generation they were built from.
package annotator

import (
	"context"
	"errors"
	"log"
	"sync"

	"PortfolioLens/internal/aggregator"
	"PortfolioLens/internal/calculator"
	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/interaction"
	"PortfolioLens/internal/model"
	"PortfolioLens/internal/pin"

	"github.com/google/uuid"
)

// Settings tune the presentation of the annotations.
type Settings struct {
	Tooltip  calculator.TooltipLayout
	MaxLines int
	Currency string
}

// Host receives the component's outputs. Every field is optional.
// Callbacks run synchronously on the engine's event loop and must not call back
// into the Annotator.
type Host struct {
	OnHoverDaySec func(model.NullDayKey)
	OnClickDaySec func(model.NullDayKey)
	Tooltip       interaction.TooltipSink
	Overlay       pin.Overlay
}

// Annotator owns one chart instance's annotation state.
type Annotator struct {
	id       uuid.UUID
	loader   chart.Loader
	settings Settings
	host     Host

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	engine   chart.Engine
	pinSync  *pin.Synchronizer
	ctrl     *interaction.Controller
	detach   []func()
	inputs   model.Inputs
	lookback model.Lookback
	result   aggregator.Result
}

// New creates an unmounted Annotator.
func New(loader chart.Loader, settings Settings, host Host) *Annotator {
	return &Annotator{
		id:       uuid.New(),
		loader:   loader,
		settings: settings,
		host:     host,
		result:   aggregator.Result{Buckets: map[model.DayKey]*model.Bucket{}},
	}
}

// ID identifies the instance in logs.
func (a *Annotator) ID() uuid.UUID { return a.id }

// Mount starts acquiring the engine. A previous instance, if any, is torn down first.
// The returned channel is closed once this acquisition has been applied or discarded.
func (a *Annotator) Mount(ctx context.Context) <-chan struct{} {
	a.mu.Lock()
	a.releaseLocked()
	a.gen++
	gen := a.gen
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		eng, err := a.loader.Load(ctx)
		a.attach(gen, eng, err)
	}()
	return done
}

func (a *Annotator) attach(gen uint64, eng chart.Engine, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.gen {
		log.Printf("[INFO] annotator %s: discarding stale engine load (generation %d, current %d)", a.id, gen, a.gen)
		if eng != nil {
			eng.Remove()
		}
		return
	}
	if err == nil && eng == nil {
		err = chart.ErrUnavailable
	}
	if err != nil {
		// The chart stays usable without annotations.
		if errors.Is(err, context.Canceled) {
			log.Printf("[INFO] annotator %s: engine load canceled", a.id)
		} else {
			log.Printf("[WARN] annotator %s: chart engine unavailable, annotations disabled: %v", a.id, err)
		}
		return
	}

	a.engine = eng
	a.pinSync = pin.New(eng, a.host.Overlay)
	a.pinSync.SetPin(model.PinState{Day: a.inputs.Pin})
	log.Printf("[INFO] annotator %s: engine ready (generation %d)", a.id, gen)
	a.rebuildLocked()
}

// Update replaces the inputs and rebuilds everything derived from them.
func (a *Annotator) Update(in model.Inputs) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pinChanged := in.Pin != a.inputs.Pin
	a.inputs = in
	a.lookback = in.Lookback
	if a.engine == nil {
		a.result = aggregate(in, a.settings)
		return
	}
	if pinChanged {
		a.pinSync.SetPin(model.PinState{Day: in.Pin})
	}
	a.rebuildLocked()
}

// SetPin changes the pinned day without rebuilding the buckets.
func (a *Annotator) SetPin(day model.NullDayKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inputs.Pin = day
	if a.pinSync != nil {
		a.pinSync.SetPin(model.PinState{Day: day})
	}
}

// SetLookback re-zooms the chart without rebuilding the buckets.
func (a *Annotator) SetLookback(l model.Lookback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lookback = l
	a.inputs.Lookback = l
	if a.engine != nil {
		a.zoomLocked()
	}
}

// Teardown releases the engine and every subscription, and invalidates any pending load.
func (a *Annotator) Teardown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.releaseLocked()
}

// Result returns the current aggregation. It must be treated as read-only.
func (a *Annotator) Result() aggregator.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// Generation is incremented by every Mount and Teardown.
func (a *Annotator) Generation() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}

// Ready reports whether an engine is attached.
func (a *Annotator) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.engine != nil
}

// Guide returns the pinned guide as last positioned.
func (a *Annotator) Guide() model.Guide {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pinSync == nil {
		return model.Guide{}
	}
	return a.pinSync.Guide()
}

// rebuildLocked tears down the current subscriptions, rebuilds buckets and markers from
// scratch, pushes them to the engine and subscribes again against the new bucket map.
func (a *Annotator) rebuildLocked() {
	a.unsubscribeLocked()

	a.result = aggregate(a.inputs, a.settings)
	if n := len(a.result.Dropped); n > 0 {
		log.Printf("[WARN] annotator %s: %d event(s) skipped", a.id, n)
	}

	a.engine.SetSeries(a.inputs.Bars)
	if a.inputs.ReferencePrice != nil {
		a.engine.SetPriceLine(*a.inputs.ReferencePrice)
	} else {
		a.engine.ClearPriceLine()
	}
	a.engine.SetMarkers(a.result.Markers)

	a.ctrl = interaction.New(a.result.Buckets, interaction.Config{
		Layout:        a.settings.Tooltip,
		MaxLines:      a.settings.MaxLines,
		OnHoverDaySec: a.host.OnHoverDaySec,
		OnClickDaySec: a.host.OnClickDaySec,
		Tooltip:       a.host.Tooltip,
		Sizer:         a.engine,
	})
	a.detach = append(a.detach, a.ctrl.Attach(a.engine), a.pinSync.Attach(a.engine))

	a.zoomLocked()
}

func (a *Annotator) zoomLocked() {
	w := calculator.ZoomWindow(a.lookback, a.inputs.Bars)
	if w.FitAll {
		a.engine.FitContent()
		return
	}
	a.engine.SetVisibleRange(w.From, w.To)
}

func (a *Annotator) unsubscribeLocked() {
	for _, d := range a.detach {
		d()
	}
	a.detach = nil
	a.ctrl = nil
}

func (a *Annotator) releaseLocked() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.unsubscribeLocked()
	if a.engine != nil {
		a.engine.Remove()
		a.engine = nil
		log.Printf("[INFO] annotator %s: engine released", a.id)
	}
	a.pinSync = nil
}

func aggregate(in model.Inputs, s Settings) aggregator.Result {
	return aggregator.Aggregate(in.Trades, in.Dividends, aggregator.Options{
		ShowTrades:    in.ShowTrades,
		ShowDividends: in.ShowDividends,
		Formatter:     aggregator.Formatter{Currency: s.Currency},
	})
}
