package pin

import (
	"testing"
	"time"

	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) model.DayKey {
	return model.DayKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

type overlayLog struct {
	shown  []model.Guide
	hidden int
}

func (o *overlayLog) ShowGuide(g model.Guide) { o.shown = append(o.shown, g) }
func (o *overlayLog) HideGuide()              { o.hidden++ }

func TestSynchronizer_FollowsPanAndResize(t *testing.T) {
	e := chart.NewMockEngine(model.Size{Width: 1000, Height: 300})
	e.SetVisibleRange(day(2024, 1, 1), day(2024, 1, 11))
	ov := &overlayLog{}
	s := New(e, ov)

	detach := s.Attach(e)
	defer detach()
	assert.Equal(t, 1, ov.hidden, "null pin hides on mount")

	g := s.SetPin(model.PinState{Day: model.SomeDay(day(2024, 1, 6))})
	require.True(t, g.Visible)
	assert.InDelta(t, 500, g.X, 1e-9)
	assert.Equal(t, float64(model.GuideWidth), g.Width)

	e.Pan(day(2024, 1, 6), day(2024, 1, 16))
	assert.InDelta(t, 0, s.Guide().X, 1e-9)

	e.Resize(model.Size{Width: 2000, Height: 300})
	e.Pan(day(2024, 1, 1), day(2024, 1, 11))
	assert.InDelta(t, 1000, s.Guide().X, 1e-9)
	assert.Len(t, ov.shown, 4)
}

func TestSynchronizer_PinOutsideSpanStaysHidden(t *testing.T) {
	e := chart.NewMockEngine(model.Size{Width: 800, Height: 300})
	e.SetSeries([]model.OHLCV{
		{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Time: time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)},
	})
	e.FitContent()
	ov := &overlayLog{}
	s := New(e, ov)
	detach := s.Attach(e)
	defer detach()

	s.SetPin(model.PinState{Day: model.SomeDay(day(2019, 5, 5))})
	for i := 0; i < 5; i++ {
		e.Pan(day(2024, 1, 2)+model.DayKey(i*86400), day(2024, 3, 28))
		e.Resize(model.Size{Width: 800 + float64(i), Height: 300})
		assert.False(t, s.Guide().Visible)
	}
	assert.Empty(t, ov.shown)
	assert.Equal(t, 1+1+10, ov.hidden)
}

func TestSynchronizer_DetachStopsUpdates(t *testing.T) {
	e := chart.NewMockEngine(model.Size{Width: 100, Height: 100})
	e.SetVisibleRange(day(2024, 1, 1), day(2024, 1, 3))
	ov := &overlayLog{}
	s := New(e, ov)
	detach := s.Attach(e)
	s.SetPin(model.PinState{Day: model.SomeDay(day(2024, 1, 2))})
	detach()

	before := len(ov.shown) + ov.hidden
	e.Pan(day(2024, 1, 1), day(2024, 1, 5))
	e.Resize(model.Size{Width: 50, Height: 50})
	assert.Equal(t, before, len(ov.shown)+ov.hidden)
	st := e.State()
	assert.Zero(t, st.Subscribers.Range)
	assert.Zero(t, st.Subscribers.Size)
}

func TestSynchronizer_ClearPinHides(t *testing.T) {
	e := chart.NewMockEngine(model.Size{Width: 100, Height: 100})
	e.SetVisibleRange(day(2024, 1, 1), day(2024, 1, 3))
	s := New(e, nil)
	assert.True(t, s.SetPin(model.PinState{Day: model.SomeDay(day(2024, 1, 2))}).Visible)
	assert.False(t, s.SetPin(model.PinState{}).Visible)
}
