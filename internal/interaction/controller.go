// Package interaction turns raw chart pointer notifications into day-keyed host callbacks
// and tooltip updates.
package interaction

import (
	"fmt"

	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/calculator"
	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/model"
)

// DefaultMaxLines caps the lines shown per tooltip category.
const DefaultMaxLines = 4

// TooltipSink displays the detail panel.
type TooltipSink interface {
	ShowTooltip(st model.TooltipState)
	HideTooltip()
}

// Sizer reports the current container size.
type Sizer interface {
	Size() model.Size
}

// Config wires a Controller to its host.
type Config struct {
	Layout        calculator.TooltipLayout
	MaxLines      int
	OnHoverDaySec func(model.NullDayKey)
	OnClickDaySec func(model.NullDayKey)
	Tooltip       TooltipSink
	Sizer         Sizer
}

// Controller answers hover and click notifications against one bucket map generation.
type Controller struct {
	buckets map[model.DayKey]*model.Bucket
	cfg     Config
	last    model.TooltipState
}

// New creates a Controller over buckets. The map must not be mutated afterwards.
func New(buckets map[model.DayKey]*model.Bucket, cfg Config) *Controller {
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = DefaultMaxLines
	}
	if cfg.Layout == (calculator.TooltipLayout{}) {
		cfg.Layout = calculator.DefaultTooltipLayout
	}
	return &Controller{buckets: buckets, cfg: cfg}
}

// Attach installs exactly one hover and one click subscriber on the engine.
func (c *Controller) Attach(e chart.Engine) func() {
	unHover := e.SubscribeCrosshairMove(c.HandleHover)
	unClick := e.SubscribeClick(c.HandleClick)
	return func() {
		unHover()
		unClick()
	}
}

// HandleHover shows the tooltip of the hovered day's bucket, or hides it.
func (c *Controller) HandleHover(ev chart.PointerEvent) {
	day, ok := normalize(ev.Time)
	if !ok {
		c.hide()
		c.hover(model.NoDay)
		return
	}
	b, ok := c.buckets[day]
	if !ok {
		c.hide()
		c.hover(model.NoDay)
		return
	}

	if ev.Point == nil || c.cfg.Sizer == nil {
		// No pointer position to anchor the panel to.
		c.hide()
	} else {
		pos := calculator.PositionTooltip(*ev.Point, c.cfg.Sizer.Size(), c.cfg.Layout)
		c.last = model.TooltipState{
			Day:      model.SomeDay(day),
			X:        pos.X,
			Y:        pos.Y,
			Visible:  true,
			Sections: Sections(b, c.cfg.MaxLines),
		}
		if c.cfg.Tooltip != nil {
			c.cfg.Tooltip.ShowTooltip(c.last)
		}
	}
	c.hover(model.SomeDay(day))
}

// HandleClick reports the day under the pointer whether or not it has events.
func (c *Controller) HandleClick(ev chart.PointerEvent) {
	day, ok := normalize(ev.Time)
	if c.cfg.OnClickDaySec == nil {
		return
	}
	if !ok {
		c.cfg.OnClickDaySec(model.NoDay)
		return
	}
	c.cfg.OnClickDaySec(model.SomeDay(day))
}

// Tooltip returns the last tooltip state.
func (c *Controller) Tooltip() model.TooltipState { return c.last }

func (c *Controller) hide() {
	c.last = model.TooltipState{}
	if c.cfg.Tooltip != nil {
		c.cfg.Tooltip.HideTooltip()
	}
}

func (c *Controller) hover(day model.NullDayKey) {
	if c.cfg.OnHoverDaySec != nil {
		c.cfg.OnHoverDaySec(day)
	}
}

func normalize(t model.ChartTime) (model.DayKey, bool) {
	if t == nil {
		return 0, false
	}
	day, err := bucketer.FromChartTime(t)
	if err != nil {
		return 0, false
	}
	return day, true
}

// Sections builds the tooltip content of a bucket: buys, then sells, then dividends.
// Each category shows at most limit lines followed by a "+N more" line.
func Sections(b *model.Bucket, limit int) []model.TooltipSection {
	var out []model.TooltipSection
	add := func(title string, texts []string) {
		if len(texts) == 0 {
			return
		}
		out = append(out, model.TooltipSection{Title: title, Lines: Lines(texts, limit)})
	}
	add("Buys", b.BuyTexts)
	add("Sells", b.SellTexts)
	add("Dividends", b.DividendTexts)
	return out
}

// Lines truncates texts to limit entries and appends the overflow count.
func Lines(texts []string, limit int) []string {
	if len(texts) <= limit {
		return append([]string(nil), texts...)
	}
	lines := append([]string(nil), texts[:limit]...)
	return append(lines, fmt.Sprintf("+%d more", len(texts)-limit))
}
