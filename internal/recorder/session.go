package recorder

import (
	"fmt"
	"log"
	"strings"
	"time"

	"PortfolioLens/internal/aggregator"
	"PortfolioLens/internal/annotator"
	"PortfolioLens/internal/model"
)

// Session is a host that writes every annotator output to a Recorder.
type Session struct {
	rec      Recorder
	instance string
	now      func() time.Time
}

// NewSession creates a Session recording under the given instance ID.
func NewSession(rec Recorder, instance string) *Session {
	return &Session{rec: rec, instance: instance, now: time.Now}
}

// SetInstance changes the instance ID stamped on later entries, for hosts built
// before the annotator that owns them.
func (s *Session) SetInstance(instance string) { s.instance = instance }

// Host wires the session as the annotator's callbacks, tooltip sink and overlay.
func (s *Session) Host() annotator.Host {
	return annotator.Host{
		OnHoverDaySec: s.OnHover,
		OnClickDaySec: s.OnClick,
		Tooltip:       s,
		Overlay:       s,
	}
}

func (s *Session) OnHover(day model.NullDayKey) { s.record(Entry{Kind: KindHover, Day: day}) }
func (s *Session) OnClick(day model.NullDayKey) { s.record(Entry{Kind: KindClick, Day: day}) }

func (s *Session) ShowTooltip(st model.TooltipState) {
	var parts []string
	for _, sec := range st.Sections {
		parts = append(parts, sec.Title+": "+strings.Join(sec.Lines, ", "))
	}
	s.record(Entry{Kind: KindTooltipShow, Day: st.Day, X: st.X, Y: st.Y, Detail: strings.Join(parts, " | ")})
}

func (s *Session) HideTooltip() { s.record(Entry{Kind: KindTooltipHide}) }

func (s *Session) ShowGuide(g model.Guide) {
	s.record(Entry{Kind: KindGuideShow, X: g.X, Detail: fmt.Sprintf("width=%g", g.Width)})
}

func (s *Session) HideGuide() { s.record(Entry{Kind: KindGuideHide}) }

// Rebuilt records the outcome of one aggregation pass.
func (s *Session) Rebuilt(res aggregator.Result) {
	s.record(Entry{
		Kind:   KindRebuild,
		Detail: fmt.Sprintf("markers=%d events=%d dropped=%d", len(res.Markers), res.EventCount(), len(res.Dropped)),
	})
}

func (s *Session) record(e Entry) {
	e.Time = s.now()
	e.Instance = s.instance
	if err := s.rec.Record(&e); err != nil {
		log.Printf("[WARN] record %s: %v", e.Kind, err)
	}
}
