package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/config"
	"PortfolioLens/internal/model"
	"PortfolioLens/internal/recorder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadless_SessionRecordsHostOutputs(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	mem := recorder.NewMemoryRecorder()
	a, _, eng := headless(context.Background(), cfg, mem)
	defer a.Teardown()
	require.True(t, a.Ready())

	day := model.DayKey(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC).Unix())
	bars := make([]model.OHLCV, 20)
	for i := range bars {
		bars[i] = model.OHLCV{Time: time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i), Close: 10}
	}
	a.Update(model.Inputs{
		Bars:       bars,
		ShowTrades: true,
		Trades:     []model.TradeEvent{{Time: model.ISO("2024-05-02"), Side: model.SideBuy, Price: decimal.NewFromInt(10)}},
		Pin:        model.SomeDay(day),
	})
	eng.EmitHover(chart.PointerEvent{Time: model.UTCTimestamp(day), Point: &model.Point{X: 50, Y: 50}})
	eng.EmitClick(chart.PointerEvent{Time: model.UTCTimestamp(day)})

	kinds := map[recorder.Kind]int{}
	for _, e := range mem.Entries() {
		assert.Equal(t, a.ID().String(), e.Instance)
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds[recorder.KindHover])
	assert.Equal(t, 1, kinds[recorder.KindClick])
	assert.Equal(t, 1, kinds[recorder.KindTooltipShow])
	assert.GreaterOrEqual(t, kinds[recorder.KindGuideShow], 1)
}
