package chart

import (
	"context"
	"errors"
	"testing"
	"time"

	"PortfolioLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) model.DayKey {
	return model.DayKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

func TestMockEngine_TimeToCoordinate(t *testing.T) {
	e := NewMockEngine(model.Size{Width: 1000, Height: 400})
	e.SetVisibleRange(day(2024, 1, 1), day(2024, 1, 11))

	x, ok := e.TimeToCoordinate(day(2024, 1, 6))
	require.True(t, ok)
	assert.InDelta(t, 500, x, 1e-9)

	_, ok = e.TimeToCoordinate(day(2023, 12, 31))
	assert.False(t, ok)
	_, ok = e.TimeToCoordinate(day(2024, 1, 12))
	assert.False(t, ok)
}

func TestMockEngine_FitContentUsesSeries(t *testing.T) {
	e := NewMockEngine(model.Size{Width: 100, Height: 100})
	e.SetSeries([]model.OHLCV{
		{Time: time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC)},
		{Time: time.Date(2024, 1, 5, 21, 0, 0, 0, time.UTC)},
	})
	e.FitContent()
	st := e.State()
	assert.Equal(t, day(2024, 1, 2), st.From)
	assert.Equal(t, day(2024, 1, 5), st.To)
	assert.Equal(t, 1, st.FitCalls)
}

func TestMockEngine_SubscriptionsAndUnsubscribe(t *testing.T) {
	e := NewMockEngine(model.Size{Width: 100, Height: 100})
	var hovers, ranges int
	unHover := e.SubscribeCrosshairMove(func(PointerEvent) { hovers++ })
	unRange := e.SubscribeVisibleRangeChange(func() { ranges++ })

	e.EmitHover(PointerEvent{})
	e.Pan(day(2024, 1, 1), day(2024, 2, 1))
	assert.Equal(t, 1, hovers)
	assert.Equal(t, 1, ranges)

	unHover()
	unHover()
	unRange()
	e.EmitHover(PointerEvent{})
	e.Pan(day(2024, 1, 1), day(2024, 3, 1))
	assert.Equal(t, 1, hovers)
	assert.Equal(t, 1, ranges)
	assert.Zero(t, e.State().Subscribers.Hover)
}

func TestMockEngine_SubscriberMayCallBack(t *testing.T) {
	e := NewMockEngine(model.Size{Width: 100, Height: 100})
	var ok bool
	e.SubscribeVisibleRangeChange(func() {
		_, ok = e.TimeToCoordinate(day(2024, 1, 15))
	})
	e.SetVisibleRange(day(2024, 1, 1), day(2024, 2, 1))
	assert.True(t, ok)
}

func TestLoaders(t *testing.T) {
	e := NewMockEngine(model.Size{})
	got, err := Static(e).Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, e, got)

	_, err = Failing(errors.New("script blocked")).Load(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
