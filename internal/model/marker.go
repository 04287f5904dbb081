package model

// Position places a marker relative to its bar.
type Position string

const (
	AboveBar Position = "aboveBar"
	BelowBar Position = "belowBar"
)

// Shape is the glyph drawn for a marker.
type Shape string

const (
	ArrowUp   Shape = "arrowUp"
	ArrowDown Shape = "arrowDown"
	Circle    Shape = "circle"
)

// ColorClass names a palette entry; the host maps it to a concrete color.
type ColorClass string

const (
	BuyGreen    ColorClass = "buy-green"
	SellRed     ColorClass = "sell-red"
	MixedPurple ColorClass = "mixed-purple"
	NeutralBlue ColorClass = "neutral-blue"
)

// Style is the resolved appearance variant of a bucket.
type Style int

const (
	StyleDividendOnly Style = iota
	StyleBuyOnly
	StyleSellOnly
	StyleBoth
)

// StyleOf resolves the variant from the trade flags. Dividends never take part.
func StyleOf(hasBuy, hasSell bool) Style {
	switch {
	case hasBuy && hasSell:
		return StyleBoth
	case hasBuy:
		return StyleBuyOnly
	case hasSell:
		return StyleSellOnly
	default:
		return StyleDividendOnly
	}
}

// Appearance maps the variant to its marker position, color and shape.
// A same-day buy and sell is drawn with the sell's position and shape.
func (s Style) Appearance() (Position, ColorClass, Shape) {
	switch s {
	case StyleBuyOnly:
		return BelowBar, BuyGreen, ArrowUp
	case StyleSellOnly:
		return AboveBar, SellRed, ArrowDown
	case StyleBoth:
		return AboveBar, MixedPurple, ArrowDown
	default:
		return BelowBar, NeutralBlue, Circle
	}
}

// Label is the short marker text drawn next to the glyph.
func (s Style) Label() string {
	switch s {
	case StyleBuyOnly:
		return "B"
	case StyleSellOnly:
		return "S"
	case StyleBoth:
		return "B/S"
	default:
		return "D"
	}
}

func (s Style) String() string {
	switch s {
	case StyleBuyOnly:
		return "BuyOnly"
	case StyleSellOnly:
		return "SellOnly"
	case StyleBoth:
		return "Both"
	default:
		return "DividendOnly"
	}
}

// Bucket aggregates every visible event of one trading day.
type Bucket struct {
	Day           DayKey
	BuyTexts      []string
	SellTexts     []string
	DividendTexts []string
	HasBuy        bool
	HasSell       bool
	HasDividend   bool
}

// Style resolves the bucket's appearance variant.
func (b *Bucket) Style() Style { return StyleOf(b.HasBuy, b.HasSell) }

// EventCount is the number of events folded into the bucket.
func (b *Bucket) EventCount() int {
	return len(b.BuyTexts) + len(b.SellTexts) + len(b.DividendTexts)
}

// Empty reports whether no event was added yet.
func (b *Bucket) Empty() bool { return !b.HasBuy && !b.HasSell && !b.HasDividend }

// RenderMarker is one annotation handed to the chart engine.
type RenderMarker struct {
	Day      DayKey
	Position Position
	Color    ColorClass
	Shape    Shape
	Label    string
}
