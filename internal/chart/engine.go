// Package chart defines the charting engine capability the annotation layer drives.
package chart

import (
	"context"
	"errors"

	"PortfolioLens/internal/model"
)

// ErrUnavailable is returned by loaders when the engine cannot be initialized.
var ErrUnavailable = errors.New("chart engine unavailable")

// Unsubscribe removes a subscriber. Calling it more than once is a no-op.
type Unsubscribe func()

// PointerEvent is a raw hover or click notification. Time is nil when the pointer
// is not over the series; Point is nil when it is outside the pane.
type PointerEvent struct {
	Time  model.ChartTime
	Point *model.Point
}

// Engine is the external charting capability. Implementations invoke subscribers
// synchronously on the caller's event loop and must not hold internal locks while doing so.
type Engine interface {
	SetSeries(bars []model.OHLCV)
	SetPriceLine(price float64)
	ClearPriceLine()
	SetMarkers(markers []model.RenderMarker)
	SetVisibleRange(from, to model.DayKey)
	FitContent()

	// TimeToCoordinate maps a day to an x pixel; false when it is outside the visible range.
	TimeToCoordinate(day model.DayKey) (float64, bool)
	Size() model.Size

	SubscribeCrosshairMove(fn func(PointerEvent)) Unsubscribe
	SubscribeClick(fn func(PointerEvent)) Unsubscribe
	SubscribeVisibleRangeChange(fn func()) Unsubscribe
	SubscribeSizeChange(fn func(model.Size)) Unsubscribe

	// Remove releases the engine instance.
	Remove()
}

// Loader acquires an engine. It may block, for instance while a script is fetched.
type Loader interface {
	Load(ctx context.Context) (Engine, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (Engine, error)

func (f LoaderFunc) Load(ctx context.Context) (Engine, error) { return f(ctx) }

// Static returns a loader handing out e immediately.
func Static(e Engine) Loader {
	return LoaderFunc(func(context.Context) (Engine, error) { return e, nil })
}

// Failing returns a loader that always fails with ErrUnavailable wrapping reason.
func Failing(reason error) Loader {
	return LoaderFunc(func(context.Context) (Engine, error) {
		return nil, errors.Join(ErrUnavailable, reason)
	})
}
