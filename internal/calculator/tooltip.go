package calculator

import "PortfolioLens/internal/model"

// TooltipLayout is the assumed size of the detail panel and its distance to the pointer.
type TooltipLayout struct {
	Width  float64
	Height float64
	Offset float64
}

// DefaultTooltipLayout matches the dashboard's 260x140 panel with a 12px gap.
var DefaultTooltipLayout = TooltipLayout{Width: 260, Height: 140, Offset: 12}

// PositionTooltip places the panel next to the pointer and keeps it inside the container.
// The panel goes right/below the pointer and flips to the other side when it would overflow;
// each axis is then clamped on its own into [0, container-box].
func PositionTooltip(pointer model.Point, container model.Size, layout TooltipLayout) model.Point {
	return model.Point{
		X: placeAxis(pointer.X, container.Width, layout.Width, layout.Offset),
		Y: placeAxis(pointer.Y, container.Height, layout.Height, layout.Offset),
	}
}

func placeAxis(pointer, container, box, offset float64) float64 {
	v := pointer + offset
	if v+box > container {
		v = pointer - offset - box
	}
	return clamp(v, 0, container-box)
}
