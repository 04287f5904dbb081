// Package replay drives an annotator through a scripted pointer session against the
// in-memory engine and prints what the host would have received.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"PortfolioLens/internal/bucketer"
	"PortfolioLens/internal/model"
)

// Op is a script instruction.
type Op string

const (
	OpHover    Op = "hover"
	OpClick    Op = "click"
	OpPan      Op = "pan"
	OpResize   Op = "resize"
	OpPin      Op = "pin"
	OpLookback Op = "lookback"
)

// Step is one parsed script line.
type Step struct {
	Line     int
	Op       Op
	Day      model.NullDayKey // hover, click, pin
	Point    *model.Point     // hover, click
	From, To model.DayKey     // pan
	Size     model.Size       // resize
	Lookback model.Lookback   // lookback
}

// Parse reads a script. Blank lines and lines starting with # are skipped.
//
//	hover 2024-03-05 [x y] | hover none
//	click 2024-03-05 [x y] | click none
//	pan 2024-01-01 2024-06-30
//	resize 800 400
//	pin 2024-03-05 | pin clear
//	lookback 3y | lookback all
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseLine(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		st.Line = n
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseLine(f []string) (Step, error) {
	st := Step{Op: Op(strings.ToLower(f[0]))}
	args := f[1:]
	switch st.Op {
	case OpHover, OpClick:
		if len(args) != 1 && len(args) != 3 {
			return st, fmt.Errorf("%s wants a day and an optional x y", st.Op)
		}
		day, err := optionalDay(args[0], "none")
		if err != nil {
			return st, err
		}
		st.Day = day
		if len(args) == 3 {
			x, y, err := pair(args[1], args[2])
			if err != nil {
				return st, err
			}
			st.Point = &model.Point{X: x, Y: y}
		}
	case OpPan:
		if len(args) != 2 {
			return st, fmt.Errorf("pan wants two days")
		}
		from, err := bucketer.Parse(args[0])
		if err != nil {
			return st, err
		}
		to, err := bucketer.Parse(args[1])
		if err != nil {
			return st, err
		}
		if to < from {
			return st, fmt.Errorf("pan range %s..%s is reversed", from, to)
		}
		st.From, st.To = from, to
	case OpResize:
		if len(args) != 2 {
			return st, fmt.Errorf("resize wants a width and a height")
		}
		w, h, err := pair(args[0], args[1])
		if err != nil {
			return st, err
		}
		if w <= 0 || h <= 0 {
			return st, fmt.Errorf("resize to %gx%g", w, h)
		}
		st.Size = model.Size{Width: w, Height: h}
	case OpPin:
		if len(args) != 1 {
			return st, fmt.Errorf("pin wants a day or clear")
		}
		day, err := optionalDay(args[0], "clear")
		if err != nil {
			return st, err
		}
		st.Day = day
	case OpLookback:
		if len(args) != 1 {
			return st, fmt.Errorf("lookback wants one value")
		}
		l, err := model.ParseLookback(args[0])
		if err != nil {
			return st, err
		}
		st.Lookback = l
	default:
		return st, fmt.Errorf("unknown instruction %q", f[0])
	}
	return st, nil
}

func optionalDay(s, none string) (model.NullDayKey, error) {
	if strings.EqualFold(s, none) {
		return model.NoDay, nil
	}
	day, err := bucketer.Parse(s)
	if err != nil {
		return model.NoDay, err
	}
	return model.SomeDay(day), nil
}

func pair(a, b string) (float64, float64, error) {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", a)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", b)
	}
	return x, y, nil
}
