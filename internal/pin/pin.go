// Package pin keeps the pinned-day guide line aligned with the chart viewport.
package pin

import (
	"sync"

	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/model"
)

// CoordinateMapper resolves a day to an x pixel inside the visible range.
type CoordinateMapper interface {
	TimeToCoordinate(day model.DayKey) (float64, bool)
}

// ViewSource notifies pans, zooms and resizes.
type ViewSource interface {
	SubscribeVisibleRangeChange(fn func()) chart.Unsubscribe
	SubscribeSizeChange(fn func(model.Size)) chart.Unsubscribe
}

// Overlay draws the guide line on the host surface.
type Overlay interface {
	ShowGuide(g model.Guide)
	HideGuide()
}

// Synchronizer re-positions the guide on every view change.
type Synchronizer struct {
	mapper  CoordinateMapper
	overlay Overlay

	mu    sync.Mutex
	pin   model.PinState
	guide model.Guide
}

// New creates a Synchronizer. A nil overlay discards the output.
func New(mapper CoordinateMapper, overlay Overlay) *Synchronizer {
	if overlay == nil {
		overlay = discard{}
	}
	return &Synchronizer{mapper: mapper, overlay: overlay}
}

// Attach subscribes to view changes and syncs once for the mount.
// The returned func unsubscribes both listeners.
func (s *Synchronizer) Attach(src ViewSource) func() {
	unRange := src.SubscribeVisibleRangeChange(func() { s.Sync() })
	unSize := src.SubscribeSizeChange(func(model.Size) { s.Sync() })
	s.Sync()
	return func() {
		unRange()
		unSize()
	}
}

// SetPin replaces the pinned day and re-syncs.
func (s *Synchronizer) SetPin(p model.PinState) model.Guide {
	s.mu.Lock()
	s.pin = p
	s.mu.Unlock()
	return s.Sync()
}

// Pin returns the current pin.
func (s *Synchronizer) Pin() model.PinState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pin
}

// Sync queries the mapping for the pinned day and shows or hides the guide.
// A null pin or a day outside the visible range hides it.
func (s *Synchronizer) Sync() model.Guide {
	s.mu.Lock()
	p := s.pin
	s.mu.Unlock()

	var g model.Guide
	if p.Day.Valid {
		if x, ok := s.mapper.TimeToCoordinate(p.Day.Key); ok {
			g = model.Guide{Visible: true, X: x, Width: model.GuideWidth}
		}
	}

	s.mu.Lock()
	s.guide = g
	s.mu.Unlock()

	if g.Visible {
		s.overlay.ShowGuide(g)
	} else {
		s.overlay.HideGuide()
	}
	return g
}

// Guide returns the last computed guide.
func (s *Synchronizer) Guide() model.Guide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guide
}

type discard struct{}

func (discard) ShowGuide(model.Guide) {}
func (discard) HideGuide()            {}
