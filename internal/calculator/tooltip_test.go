package calculator

import (
	"testing"

	"PortfolioLens/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestPositionTooltip(t *testing.T) {
	layout := DefaultTooltipLayout
	container := model.Size{Width: 800, Height: 400}

	tests := []struct {
		name    string
		pointer model.Point
		want    model.Point
	}{
		{"room right and below", model.Point{X: 100, Y: 50}, model.Point{X: 112, Y: 62}},
		{"flips left near right edge", model.Point{X: 700, Y: 50}, model.Point{X: 428, Y: 62}},
		{"flips up near bottom", model.Point{X: 100, Y: 380}, model.Point{X: 112, Y: 228}},
		{"top-left corner", model.Point{X: 0, Y: 0}, model.Point{X: 12, Y: 12}},
		{"outside to the left", model.Point{X: -500, Y: -500}, model.Point{X: 0, Y: 0}},
		{"outside to the right", model.Point{X: 5000, Y: 5000}, model.Point{X: 540, Y: 260}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionTooltip(tt.pointer, container, layout))
		})
	}
}

func TestPositionTooltip_AxesIndependent(t *testing.T) {
	container := model.Size{Width: 800, Height: 400}
	got := PositionTooltip(model.Point{X: 790, Y: 10}, container, DefaultTooltipLayout)
	assert.Equal(t, 518.0, got.X)
	assert.Equal(t, 22.0, got.Y)
}

func TestPositionTooltip_NeverOutside(t *testing.T) {
	layout := DefaultTooltipLayout
	for _, c := range []model.Size{{Width: 800, Height: 400}, {Width: 300, Height: 150}, {Width: 261, Height: 141}} {
		for x := -100.0; x <= c.Width+100; x += 7 {
			for y := -100.0; y <= c.Height+100; y += 7 {
				p := PositionTooltip(model.Point{X: x, Y: y}, c, layout)
				assert.GreaterOrEqual(t, p.X, 0.0)
				assert.GreaterOrEqual(t, p.Y, 0.0)
				assert.LessOrEqual(t, p.X, c.Width-layout.Width)
				assert.LessOrEqual(t, p.Y, c.Height-layout.Height)
			}
		}
	}
}

func TestPositionTooltip_ContainerSmallerThanBox(t *testing.T) {
	p := PositionTooltip(model.Point{X: 50, Y: 50}, model.Size{Width: 100, Height: 100}, DefaultTooltipLayout)
	assert.Equal(t, model.Point{X: 0, Y: 0}, p)
}
