package aggregator

import (
	"fmt"

	"PortfolioLens/internal/model"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when neither the event nor the formatter names one.
const DefaultCurrency = money.USD

// Formatter builds the tooltip text of a single event.
type Formatter struct {
	Currency string
}

// TradeText returns the event label, or a generated "BUY 10 @ $123.45" line.
func (f Formatter) TradeText(ev model.TradeEvent) string {
	if ev.Label != "" {
		return ev.Label
	}
	price := f.amount(ev.Price, ev.Currency)
	if ev.Quantity.IsZero() {
		return fmt.Sprintf("%s @ %s", ev.Side, price)
	}
	return fmt.Sprintf("%s %s @ %s", ev.Side, ev.Quantity.String(), price)
}

// DividendText returns the event label, or a generated "Dividend $0.24" line.
func (f Formatter) DividendText(ev model.DividendEvent) string {
	if ev.Label != "" {
		return ev.Label
	}
	return "Dividend " + f.amount(ev.Amount, ev.Currency)
}

func (f Formatter) amount(v decimal.Decimal, code string) string {
	if code == "" {
		code = f.Currency
	}
	if code == "" {
		code = DefaultCurrency
	}
	// money.New never returns a nil currency, but unknown codes have no template.
	cur := money.New(0, code).Currency()
	if cur.Template == "" {
		return v.StringFixed(2) + " " + code
	}
	minor := v.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
