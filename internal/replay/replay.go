package replay

import (
	"context"
	"fmt"
	"io"

	"PortfolioLens/internal/annotator"
	"PortfolioLens/internal/chart"
	"PortfolioLens/internal/model"
	"PortfolioLens/internal/notifier"
	"PortfolioLens/internal/recorder"
)

// Options configure a replay.
type Options struct {
	Settings annotator.Settings
	Size     model.Size
	Out      io.Writer
	// Recorder, when set, also receives every host output.
	Recorder recorder.Recorder
}

// Summary is the final state after the last step.
type Summary struct {
	Instance string
	Steps    int
	Markers  int
	Hovers   []model.NullDayKey
	Clicks   []model.NullDayKey
	Guide    model.Guide
}

// Run mounts an annotator over the inputs and plays the steps in order.
func Run(ctx context.Context, in model.Inputs, steps []Step, opts Options) (*Summary, error) {
	if opts.Size == (model.Size{}) {
		opts.Size = model.Size{Width: 960, Height: 420}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	eng := chart.NewMockEngine(opts.Size)
	p := &printer{out: opts.Out}
	a := annotator.New(chart.Static(eng), opts.Settings, p.host())
	sum := &Summary{Instance: a.ID().String()}
	if opts.Recorder != nil {
		p.sess = recorder.NewSession(opts.Recorder, sum.Instance)
	}
	p.sum = sum

	a.Update(in)
	select {
	case <-a.Mount(ctx):
	case <-ctx.Done():
		a.Teardown()
		return nil, ctx.Err()
	}
	defer a.Teardown()
	if !a.Ready() {
		return nil, fmt.Errorf("engine not ready")
	}
	res := a.Result()
	if p.sess != nil {
		p.sess.Rebuilt(res)
	}
	fmt.Fprintf(opts.Out, "mounted %s: %d marker(s), %d dropped\n", sum.Instance, len(res.Markers), len(res.Dropped))

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		fmt.Fprintf(opts.Out, "> %d: %s\n", st.Line, describe(st))
		apply(a, eng, st)
		sum.Steps++
	}

	sum.Markers = len(a.Result().Markers)
	sum.Guide = a.Guide()
	return sum, nil
}

func apply(a *annotator.Annotator, eng *chart.MockEngine, st Step) {
	switch st.Op {
	case OpHover:
		eng.EmitHover(pointer(st))
	case OpClick:
		eng.EmitClick(pointer(st))
	case OpPan:
		eng.Pan(st.From, st.To)
	case OpResize:
		eng.Resize(st.Size)
	case OpPin:
		a.SetPin(st.Day)
	case OpLookback:
		a.SetLookback(st.Lookback)
	}
}

func pointer(st Step) chart.PointerEvent {
	ev := chart.PointerEvent{Point: st.Point}
	if st.Day.Valid {
		ev.Time = model.UTCTimestamp(st.Day.Key)
	}
	return ev
}

func describe(st Step) string {
	switch st.Op {
	case OpPan:
		return fmt.Sprintf("pan %s..%s", st.From, st.To)
	case OpResize:
		return fmt.Sprintf("resize %gx%g", st.Size.Width, st.Size.Height)
	case OpLookback:
		return fmt.Sprintf("lookback %s", st.Lookback)
	default:
		return fmt.Sprintf("%s %s", st.Op, st.Day)
	}
}

// printer is the replay host: it prints every output and forwards it to the session.
type printer struct {
	out  io.Writer
	sess *recorder.Session
	sum  *Summary
}

func (p *printer) host() annotator.Host {
	return annotator.Host{
		OnHoverDaySec: p.onHover,
		OnClickDaySec: p.onClick,
		Tooltip:       p,
		Overlay:       p,
	}
}

func (p *printer) onHover(day model.NullDayKey) {
	p.sum.Hovers = append(p.sum.Hovers, day)
	fmt.Fprintf(p.out, "  hover day: %s\n", day)
	if p.sess != nil {
		p.sess.OnHover(day)
	}
}

func (p *printer) onClick(day model.NullDayKey) {
	p.sum.Clicks = append(p.sum.Clicks, day)
	fmt.Fprintf(p.out, "  click day: %s\n", day)
	if p.sess != nil {
		p.sess.OnClick(day)
	}
}

func (p *printer) ShowTooltip(st model.TooltipState) {
	fmt.Fprint(p.out, indent(notifier.FormatTooltip(st)))
	if p.sess != nil {
		p.sess.ShowTooltip(st)
	}
}

func (p *printer) HideTooltip() {
	fmt.Fprintln(p.out, "  tooltip hidden")
	if p.sess != nil {
		p.sess.HideTooltip()
	}
}

func (p *printer) ShowGuide(g model.Guide) {
	fmt.Fprintf(p.out, "  guide at x=%.1f\n", g.X)
	if p.sess != nil {
		p.sess.ShowGuide(g)
	}
}

func (p *printer) HideGuide() {
	fmt.Fprintln(p.out, "  guide hidden")
	if p.sess != nil {
		p.sess.HideGuide()
	}
}

func indent(s string) string {
	out := make([]byte, 0, len(s)+16)
	start := true
	for i := 0; i < len(s); i++ {
		if start {
			out = append(out, ' ', ' ')
		}
		out = append(out, s[i])
		start = s[i] == '\n'
	}
	return string(out)
}
