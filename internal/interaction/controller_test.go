package interaction

import (
	"testing"
	"time"

	"PortfolioLens/internal/aggregator"
	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) model.DayKey {
	return model.DayKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

type host struct {
	hovers []model.NullDayKey
	clicks []model.NullDayKey
	shown  []model.TooltipState
	hidden int
}

func (h *host) ShowTooltip(st model.TooltipState) { h.shown = append(h.shown, st) }
func (h *host) HideTooltip()                      { h.hidden++ }

func (h *host) config(s Sizer) Config {
	return Config{
		OnHoverDaySec: func(d model.NullDayKey) { h.hovers = append(h.hovers, d) },
		OnClickDaySec: func(d model.NullDayKey) { h.clicks = append(h.clicks, d) },
		Tooltip:       h,
		Sizer:         s,
	}
}

func fixture() aggregator.Result {
	trades := []model.TradeEvent{
		{Time: model.ISO("2024-06-14T14:00:00Z"), Side: model.SideBuy, Price: decimal.NewFromInt(100)},
		{Time: model.ISO("2024-06-14T15:00:00Z"), Side: model.SideBuy, Price: decimal.NewFromInt(101)},
		{Time: model.ISO("2024-06-14T16:00:00Z"), Side: model.SideSell, Price: decimal.NewFromInt(105)},
	}
	return aggregator.Aggregate(trades, nil, aggregator.Options{ShowTrades: true, ShowDividends: true})
}

func TestHandleHover_BucketShowsTooltip(t *testing.T) {
	e := chart.NewMockEngine(model.Size{Width: 800, Height: 400})
	h := &host{}
	c := New(fixture().Buckets, h.config(e))
	detach := c.Attach(e)
	defer detach()

	e.EmitHover(chart.PointerEvent{
		Time:  model.BusinessDay{Year: 2024, Month: 6, Day: 14},
		Point: &model.Point{X: 700, Y: 300},
	})

	require.Equal(t, []model.NullDayKey{model.SomeDay(day(2024, 6, 14))}, h.hovers)
	require.Len(t, h.shown, 1)
	st := h.shown[0]
	assert.True(t, st.Visible)
	assert.Equal(t, 428.0, st.X)
	assert.Equal(t, 148.0, st.Y)
	require.Len(t, st.Sections, 2)
	assert.Equal(t, "Buys", st.Sections[0].Title)
	assert.Equal(t, []string{"BUY @ $100.00", "BUY @ $101.00"}, st.Sections[0].Lines)
	assert.Equal(t, "Sells", st.Sections[1].Title)
	assert.Equal(t, []string{"SELL @ $105.00"}, st.Sections[1].Lines)
	assert.Equal(t, st, c.Tooltip())
}

func TestHandleHover_NoBucketOrNoTime(t *testing.T) {
	h := &host{}
	c := New(fixture().Buckets, h.config(chart.NewMockEngine(model.Size{Width: 800, Height: 400})))

	c.HandleHover(chart.PointerEvent{Time: model.UTCTimestamp(day(2024, 6, 13)), Point: &model.Point{}})
	c.HandleHover(chart.PointerEvent{Point: &model.Point{}})
	c.HandleHover(chart.PointerEvent{Time: model.BusinessDay{Year: 2024, Month: 2, Day: 30}})

	assert.Equal(t, []model.NullDayKey{model.NoDay, model.NoDay, model.NoDay}, h.hovers)
	assert.Equal(t, 3, h.hidden)
	assert.Empty(t, h.shown)
	assert.False(t, c.Tooltip().Visible)
}

func TestHandleHover_TimestampInsideDay(t *testing.T) {
	h := &host{}
	c := New(fixture().Buckets, h.config(chart.NewMockEngine(model.Size{Width: 800, Height: 400})))
	ts := time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC).Unix()

	c.HandleHover(chart.PointerEvent{Time: model.UTCTimestamp(ts), Point: &model.Point{X: 1, Y: 1}})
	assert.Equal(t, []model.NullDayKey{model.SomeDay(day(2024, 6, 14))}, h.hovers)
}

func TestHandleHover_NoPointKeepsTooltipHidden(t *testing.T) {
	h := &host{}
	c := New(fixture().Buckets, h.config(chart.NewMockEngine(model.Size{Width: 800, Height: 400})))

	c.HandleHover(chart.PointerEvent{Time: model.UTCTimestamp(day(2024, 6, 14))})
	assert.Equal(t, []model.NullDayKey{model.SomeDay(day(2024, 6, 14))}, h.hovers)
	assert.Empty(t, h.shown)
	assert.Equal(t, 1, h.hidden)
}

func TestHandleClick_AlwaysReportsDay(t *testing.T) {
	e := chart.NewMockEngine(model.Size{Width: 800, Height: 400})
	h := &host{}
	c := New(fixture().Buckets, h.config(e))
	detach := c.Attach(e)

	e.EmitClick(chart.PointerEvent{Time: model.UTCTimestamp(day(2024, 6, 14))})
	e.EmitClick(chart.PointerEvent{Time: model.UTCTimestamp(day(2020, 1, 1))})
	e.EmitClick(chart.PointerEvent{})

	assert.Equal(t, []model.NullDayKey{
		model.SomeDay(day(2024, 6, 14)),
		model.SomeDay(day(2020, 1, 1)),
		model.NoDay,
	}, h.clicks)
	assert.Empty(t, h.hovers)

	detach()
	e.EmitClick(chart.PointerEvent{Time: model.UTCTimestamp(day(2024, 6, 14))})
	assert.Len(t, h.clicks, 3)
}

func TestAttach_OneSubscriberEach(t *testing.T) {
	e := chart.NewMockEngine(model.Size{Width: 800, Height: 400})
	c := New(nil, Config{})
	detach := c.Attach(e)
	st := e.State()
	assert.Equal(t, 1, st.Subscribers.Hover)
	assert.Equal(t, 1, st.Subscribers.Click)
	detach()
	st = e.State()
	assert.Zero(t, st.Subscribers.Hover)
	assert.Zero(t, st.Subscribers.Click)
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Lines([]string{"a", "b"}, 4))
	assert.Equal(t, []string{"a", "b", "c", "d"}, Lines([]string{"a", "b", "c", "d"}, 4))
	assert.Equal(t, []string{"a", "b", "c", "d", "+3 more"}, Lines([]string{"a", "b", "c", "d", "e", "f", "g"}, 4))
}

func TestSections_Order(t *testing.T) {
	b := &model.Bucket{
		DividendTexts: []string{"d1"},
		SellTexts:     []string{"s1"},
		BuyTexts:      []string{"b1", "b2", "b3", "b4", "b5"},
	}
	got := Sections(b, DefaultMaxLines)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Buys", "Sells", "Dividends"}, []string{got[0].Title, got[1].Title, got[2].Title})
	assert.Equal(t, "+1 more", got[0].Lines[4])
}
