package recorder

import (
	"time"

	"PortfolioLens/internal/model"
)

// Kind names a recorded host event.
type Kind string

const (
	KindHover       Kind = "HOVER"
	KindClick       Kind = "CLICK"
	KindTooltipShow Kind = "TOOLTIP_SHOW"
	KindTooltipHide Kind = "TOOLTIP_HIDE"
	KindGuideShow   Kind = "GUIDE_SHOW"
	KindGuideHide   Kind = "GUIDE_HIDE"
	KindRebuild     Kind = "REBUILD"
)

// Entry is one output the annotation layer produced for its host.
type Entry struct {
	Time     time.Time
	Instance string // annotator ID
	Kind     Kind
	Day      model.NullDayKey
	X        float64
	Y        float64
	Detail   string
}

// Recorder persists session history for analysis.
type Recorder interface {
	Record(e *Entry) error
	Close() error
}
