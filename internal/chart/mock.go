package chart

import (
	"sort"
	"sync"

	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/model"
)

// MockEngine is an in-memory engine for development and tests. It maps time linearly
// onto the container width over the visible range and records every instruction.
type MockEngine struct {
	mu sync.Mutex

	bars       []model.OHLCV
	markers    []model.RenderMarker
	priceLine  *float64
	from, to   model.DayKey
	size       model.Size
	removed    bool
	fitCalls   int
	rangeCalls int

	nextID int
	hover  map[int]func(PointerEvent)
	click  map[int]func(PointerEvent)
	ranges map[int]func()
	sizes  map[int]func(model.Size)
}

// NewMockEngine creates an engine with the given container size.
func NewMockEngine(size model.Size) *MockEngine {
	return &MockEngine{
		size:   size,
		hover:  make(map[int]func(PointerEvent)),
		click:  make(map[int]func(PointerEvent)),
		ranges: make(map[int]func()),
		sizes:  make(map[int]func(model.Size)),
	}
}

func (m *MockEngine) SetSeries(bars []model.OHLCV) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bars = append([]model.OHLCV(nil), bars...)
}

func (m *MockEngine) SetPriceLine(price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priceLine = &price
}

func (m *MockEngine) ClearPriceLine() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priceLine = nil
}

func (m *MockEngine) SetMarkers(markers []model.RenderMarker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = append([]model.RenderMarker(nil), markers...)
}

// SetVisibleRange moves the view and notifies view-change subscribers.
func (m *MockEngine) SetVisibleRange(from, to model.DayKey) {
	m.mu.Lock()
	m.from, m.to = from, to
	m.rangeCalls++
	m.mu.Unlock()
	m.EmitRangeChange()
}

// FitContent shows the whole series and notifies view-change subscribers.
func (m *MockEngine) FitContent() {
	m.mu.Lock()
	m.fitCalls++
	if len(m.bars) > 0 {
		m.from = bucketer.FromTime(m.bars[0].Time)
		m.to = bucketer.FromTime(m.bars[len(m.bars)-1].Time)
	}
	m.mu.Unlock()
	m.EmitRangeChange()
}

func (m *MockEngine) TimeToCoordinate(day model.DayKey) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removed || day < m.from || day > m.to {
		return 0, false
	}
	if m.to == m.from {
		return m.size.Width / 2, true
	}
	return float64(day-m.from) / float64(m.to-m.from) * m.size.Width, true
}

func (m *MockEngine) Size() model.Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

func (m *MockEngine) SubscribeCrosshairMove(fn func(PointerEvent)) Unsubscribe {
	return subscribe(m, m.hover, fn)
}

func (m *MockEngine) SubscribeClick(fn func(PointerEvent)) Unsubscribe {
	return subscribe(m, m.click, fn)
}

func (m *MockEngine) SubscribeVisibleRangeChange(fn func()) Unsubscribe {
	return subscribe(m, m.ranges, fn)
}

func (m *MockEngine) SubscribeSizeChange(fn func(model.Size)) Unsubscribe {
	return subscribe(m, m.sizes, fn)
}

func (m *MockEngine) Remove() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = true
	clear(m.hover)
	clear(m.click)
	clear(m.ranges)
	clear(m.sizes)
}

func subscribe[F any](m *MockEngine, set map[int]F, fn F) Unsubscribe {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	set[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(set, id)
	}
}

// snapshot copies subscribers in registration order so they run without the lock held.
func snapshot[F any](m *MockEngine, set map[int]F) []F {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]F, len(ids))
	for i, id := range ids {
		fns[i] = set[id]
	}
	return fns
}

// EmitHover simulates a crosshair move.
func (m *MockEngine) EmitHover(ev PointerEvent) {
	for _, fn := range snapshot(m, m.hover) {
		fn(ev)
	}
}

// EmitClick simulates a click.
func (m *MockEngine) EmitClick(ev PointerEvent) {
	for _, fn := range snapshot(m, m.click) {
		fn(ev)
	}
}

// EmitRangeChange notifies view-change subscribers without moving the view.
func (m *MockEngine) EmitRangeChange() {
	for _, fn := range snapshot(m, m.ranges) {
		fn()
	}
}

// Pan moves the visible range as a user drag would.
func (m *MockEngine) Pan(from, to model.DayKey) {
	m.mu.Lock()
	m.from, m.to = from, to
	m.mu.Unlock()
	m.EmitRangeChange()
}

// Resize changes the container size and notifies size subscribers.
func (m *MockEngine) Resize(size model.Size) {
	m.mu.Lock()
	m.size = size
	m.mu.Unlock()
	for _, fn := range snapshot(m, m.sizes) {
		fn(size)
	}
}

// MockState is a copy of what the engine was told to draw.
type MockState struct {
	Bars        int
	Markers     []model.RenderMarker
	PriceLine   *float64
	From, To    model.DayKey
	FitCalls    int
	RangeCalls  int
	Removed     bool
	Subscribers struct{ Hover, Click, Range, Size int }
}

// State returns a snapshot of the engine's recorded instructions.
func (m *MockEngine) State() MockState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := MockState{
		Bars:       len(m.bars),
		Markers:    append([]model.RenderMarker(nil), m.markers...),
		From:       m.from,
		To:         m.to,
		FitCalls:   m.fitCalls,
		RangeCalls: m.rangeCalls,
		Removed:    m.removed,
	}
	if m.priceLine != nil {
		p := *m.priceLine
		s.PriceLine = &p
	}
	s.Subscribers.Hover = len(m.hover)
	s.Subscribers.Click = len(m.click)
	s.Subscribers.Range = len(m.ranges)
	s.Subscribers.Size = len(m.sizes)
	return s
}
