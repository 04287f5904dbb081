package aggregator

import (
	"testing"
	"time"

	"PortfolioLens/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) model.DayKey {
	return model.DayKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix())
}

func buy(ts string, price string) model.TradeEvent {
	return model.TradeEvent{Time: model.ISO(ts), Side: model.SideBuy, Price: decimal.RequireFromString(price)}
}

func sell(ts string, price string) model.TradeEvent {
	return model.TradeEvent{Time: model.ISO(ts), Side: model.SideSell, Price: decimal.RequireFromString(price)}
}

func div(ts string, amount string) model.DividendEvent {
	return model.DividendEvent{Time: model.ISO(ts), Amount: decimal.RequireFromString(amount)}
}

var all = Options{ShowTrades: true, ShowDividends: true}

func TestAggregate_SingleBuy(t *testing.T) {
	res := Aggregate([]model.TradeEvent{buy("2024-06-14T15:30:00Z", "100")}, nil, all)

	require.Len(t, res.Buckets, 1)
	b, ok := res.Bucket(day(2024, 6, 14))
	require.True(t, ok)
	assert.True(t, b.HasBuy)
	assert.False(t, b.HasSell)
	assert.False(t, b.HasDividend)

	require.Len(t, res.Markers, 1)
	m := res.Markers[0]
	assert.Equal(t, day(2024, 6, 14), m.Day)
	assert.Equal(t, model.BelowBar, m.Position)
	assert.Equal(t, model.ArrowUp, m.Shape)
	assert.Equal(t, model.BuyGreen, m.Color)
}

func TestAggregate_TwoBuysOneSellSameDay(t *testing.T) {
	trades := []model.TradeEvent{
		sell("2024-06-14T16:00:00Z", "105"),
		buy("2024-06-14T09:30:00Z", "100"),
		buy("2024-06-14T10:00:00Z", "101"),
	}
	res := Aggregate(trades, nil, all)

	require.Len(t, res.Buckets, 1)
	b := res.Buckets[day(2024, 6, 14)]
	assert.True(t, b.HasBuy)
	assert.True(t, b.HasSell)
	assert.Equal(t, []string{"BUY @ $100.00", "BUY @ $101.00"}, b.BuyTexts)
	assert.Equal(t, []string{"SELL @ $105.00"}, b.SellTexts)

	m := res.Markers[0]
	assert.Equal(t, model.AboveBar, m.Position)
	assert.Equal(t, model.ArrowDown, m.Shape)
	assert.Equal(t, model.MixedPurple, m.Color)
}

func TestAggregate_DividendOnlyAndDividendNeverRestyles(t *testing.T) {
	trades := []model.TradeEvent{buy("2024-03-01", "50")}
	divs := []model.DividendEvent{div("2024-03-01", "0.24"), div("2024-04-01", "0.25")}
	res := Aggregate(trades, divs, all)

	require.Len(t, res.Markers, 2)
	assert.Equal(t, model.BuyGreen, res.Markers[0].Color, "dividend must not change a buy marker")
	assert.Equal(t, model.NeutralBlue, res.Markers[1].Color)
	assert.Equal(t, model.Circle, res.Markers[1].Shape)
	assert.Equal(t, model.BelowBar, res.Markers[1].Position)
	assert.Equal(t, []string{"Dividend $0.24"}, res.Buckets[day(2024, 3, 1)].DividendTexts)
}

func TestAggregate_VisibilityFlags(t *testing.T) {
	trades := []model.TradeEvent{buy("2024-01-02", "10"), sell("2024-01-03", "11")}
	divs := []model.DividendEvent{div("2024-01-04", "1")}

	tests := []struct {
		name    string
		opts    Options
		buckets int
		events  int
	}{
		{"all", all, 3, 3},
		{"trades only", Options{ShowTrades: true}, 2, 2},
		{"dividends only", Options{ShowDividends: true}, 1, 1},
		{"nothing", Options{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Aggregate(trades, divs, tt.opts)
			assert.Len(t, res.Buckets, tt.buckets)
			assert.Len(t, res.Markers, tt.buckets)
			assert.Equal(t, tt.events, res.EventCount())
		})
	}
}

func TestAggregate_MalformedEventsAreDroppedAlone(t *testing.T) {
	trades := []model.TradeEvent{
		buy("2024-06-14", "1"),
		buy("garbage", "2"),
		{Time: model.ISO("2024-06-14"), Side: "HOLD"},
		sell("2024-06-14", "3"),
		sell("2024-06-17", "4"),
	}
	divs := []model.DividendEvent{div("", "1"), div("2024-06-17", "0.5")}
	res := Aggregate(trades, divs, all)

	require.Len(t, res.Dropped, 3)
	assert.Equal(t, KindTrade, res.Dropped[0].Kind)
	assert.Equal(t, 1, res.Dropped[0].Index)
	assert.Equal(t, 2, res.Dropped[1].Index)
	assert.Equal(t, KindDividend, res.Dropped[2].Kind)

	visible := len(trades) + len(divs)
	assert.Equal(t, visible-len(res.Dropped), res.EventCount())
	assert.Len(t, res.Buckets, 2)
}

func TestAggregate_MarkersAscendingAndUnique(t *testing.T) {
	var trades []model.TradeEvent
	start := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	// Shuffled order with many same-day duplicates.
	for _, off := range []int{9, 3, 3, 7, 0, 9, 1, 5, 5, 5, 2, 8} {
		ts := start.AddDate(0, 0, off).Add(time.Duration(off) * time.Hour)
		trades = append(trades, model.TradeEvent{Time: model.At(ts), Side: model.SideBuy, Price: decimal.NewFromInt(1)})
	}
	res := Aggregate(trades, nil, all)

	require.Len(t, res.Markers, 8)
	for i := 1; i < len(res.Markers); i++ {
		assert.Less(t, res.Markers[i-1].Day, res.Markers[i].Day)
	}
	assert.Equal(t, len(trades), res.EventCount())
}

func TestAggregate_EpochAndTextSameDay(t *testing.T) {
	trades := []model.TradeEvent{
		{Time: model.Epoch(1718409600 + 1), Side: model.SideBuy, Price: decimal.NewFromInt(1)},
		{Time: model.ISO("2024-06-15T23:59:59Z"), Side: model.SideSell, Price: decimal.NewFromInt(1)},
	}
	res := Aggregate(trades, nil, all)
	require.Len(t, res.Buckets, 1)
	assert.Equal(t, model.StyleBoth, res.Buckets[day(2024, 6, 15)].Style())
}

func TestMarker_StylePolicyIgnoresCounts(t *testing.T) {
	tests := []struct {
		name  string
		b     model.Bucket
		pos   model.Position
		color model.ColorClass
		shape model.Shape
	}{
		{"buy only", model.Bucket{HasBuy: true, BuyTexts: []string{"a", "b", "c"}}, model.BelowBar, model.BuyGreen, model.ArrowUp},
		{"sell only", model.Bucket{HasSell: true, SellTexts: []string{"a"}, HasDividend: true}, model.AboveBar, model.SellRed, model.ArrowDown},
		{"both", model.Bucket{HasBuy: true, HasSell: true, BuyTexts: []string{"a", "b", "c", "d", "e"}}, model.AboveBar, model.MixedPurple, model.ArrowDown},
		{"dividend only", model.Bucket{HasDividend: true, DividendTexts: []string{"a", "b"}}, model.BelowBar, model.NeutralBlue, model.Circle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Marker(&tt.b)
			assert.Equal(t, tt.pos, m.Position)
			assert.Equal(t, tt.color, m.Color)
			assert.Equal(t, tt.shape, m.Shape)
		})
	}
}
