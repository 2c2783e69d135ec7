package rive

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/go-drift/rive/pkg/graphics"
)

// Placeholder defaults used when the corresponding field is zero.
const (
	DefaultPlaceholderColor  = graphics.Color(0xFFD9DCE1)
	DefaultPlaceholderRadius = 12.0
)

// Placeholder is the inert stand-in rendered when no live engine is
// available — typically a static or preview rendering context where
// instantiating the native view is impossible. It draws a fixed-color
// rounded rectangle of the slot's size.
type Placeholder struct {
	// Size is the slot size in pixels.
	Size graphics.Size

	// Color fills the rectangle. Zero means DefaultPlaceholderColor.
	Color graphics.Color

	// CornerRadius rounds the rectangle's corners. Zero means
	// DefaultPlaceholderRadius; negative means sharp corners.
	CornerRadius float64
}

// Render rasterizes the placeholder. An empty size yields an empty image.
func (p Placeholder) Render() *image.RGBA {
	if p.Size.IsEmpty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	w := int(math.Ceil(p.Size.Width))
	h := int(math.Ceil(p.Size.Height))

	fill := p.Color
	if fill == 0 {
		fill = DefaultPlaceholderColor
	}

	radius := p.CornerRadius
	if radius == 0 {
		radius = DefaultPlaceholderRadius
	}
	if radius < 0 {
		radius = 0
	}
	if max := math.Min(float64(w), float64(h)) / 2; radius > max {
		radius = max
	}

	ras := vector.NewRasterizer(w, h)
	appendRoundedRect(ras, float32(w), float32(h), float32(radius))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	r, g, b, a := fill.RGBA8Components()
	ras.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: a}), image.Point{})
	return dst
}

// appendRoundedRect traces a clockwise rounded rectangle covering the whole
// rasterizer. Corners are quadratic approximations of circular arcs, which
// is indistinguishable at placeholder scale.
func appendRoundedRect(ras *vector.Rasterizer, w, h, r float32) {
	ras.MoveTo(r, 0)
	ras.LineTo(w-r, 0)
	ras.QuadTo(w, 0, w, r)
	ras.LineTo(w, h-r)
	ras.QuadTo(w, h, w-r, h)
	ras.LineTo(r, h)
	ras.QuadTo(0, h, 0, h-r)
	ras.LineTo(0, r)
	ras.QuadTo(0, 0, r, 0)
	ras.ClosePath()
}
