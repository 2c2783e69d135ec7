package rive_test

import (
	"testing"

	"github.com/go-drift/rive/pkg/graphics"
	"github.com/go-drift/rive/pkg/rive"
)

func TestPlaceholderRendersFill(t *testing.T) {
	p := rive.Placeholder{
		Size:         graphics.Size{Width: 100, Height: 60},
		Color:        graphics.RGB(0x33, 0x66, 0x99),
		CornerRadius: 20,
	}
	img := p.Render()

	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 60 {
		t.Fatalf("bounds = %v", b)
	}

	center := img.RGBAAt(50, 30)
	if center.R != 0x33 || center.G != 0x66 || center.B != 0x99 || center.A != 0xFF {
		t.Fatalf("center pixel = %v", center)
	}

	// With a 20px radius the extreme corner lies outside the path.
	if corner := img.RGBAAt(0, 0); corner.A != 0 {
		t.Fatalf("corner pixel = %v, want transparent", corner)
	}
}

func TestPlaceholderSharpCorners(t *testing.T) {
	p := rive.Placeholder{
		Size:         graphics.Size{Width: 40, Height: 40},
		CornerRadius: -1,
	}
	img := p.Render()

	if corner := img.RGBAAt(0, 0); corner.A != 0xFF {
		t.Fatalf("corner pixel = %v, want opaque", corner)
	}
	r, g, b, _ := rive.DefaultPlaceholderColor.RGBA8Components()
	center := img.RGBAAt(20, 20)
	if center.R != r || center.G != g || center.B != b {
		t.Fatalf("center pixel = %v, want default fill", center)
	}
}

func TestPlaceholderEmptySize(t *testing.T) {
	img := rive.Placeholder{}.Render()
	if b := img.Bounds(); !b.Empty() {
		t.Fatalf("bounds = %v, want empty", b)
	}
}
