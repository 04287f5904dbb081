package aggregator

import (
	"testing"

	"PortfolioLens/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_TradeText(t *testing.T) {
	f := Formatter{}
	tests := []struct {
		name string
		ev   model.TradeEvent
		want string
	}{
		{"label wins", model.TradeEvent{Side: model.SideBuy, Label: "Bought the dip"}, "Bought the dip"},
		{"no quantity", model.TradeEvent{Side: model.SideSell, Price: decimal.RequireFromString("99")}, "SELL @ $99.00"},
		{"quantity", model.TradeEvent{Side: model.SideBuy, Price: decimal.RequireFromString("123.454"), Quantity: decimal.NewFromInt(10)}, "BUY 10 @ $123.45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.TradeText(tt.ev))
		})
	}
}

func TestFormatter_DividendText(t *testing.T) {
	f := Formatter{Currency: "GBP"}
	assert.Equal(t, "Dividend £0.24", f.DividendText(model.DividendEvent{Amount: decimal.RequireFromString("0.24")}))
	assert.Equal(t, "Special", f.DividendText(model.DividendEvent{Label: "Special"}))
	assert.Equal(t, "1.50 XYZ", Formatter{}.amount(decimal.RequireFromString("1.5"), "XYZ"))
}
