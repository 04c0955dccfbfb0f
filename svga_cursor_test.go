// svga_cursor_test.go - Cursor composition tests

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"image/color"
	"testing"
)

func TestCursor_MonoMasks(t *testing.T) {
	def := CursorDef{
		Width: 8, Height: 2, AndBPP: 1, XorBPP: 1, HotX: 3, HotY: 1,
		And: []uint32{0xF0, 0x00},
		Xor: []uint32{0xCC, 0xFF},
	}
	img, ok := BuildCursor(def)
	if !ok {
		t.Fatal("1/1 cursor should be supported")
	}
	if img.HotX != 3 || img.HotY != 1 || img.Default {
		t.Errorf("Hotspot %d,%d default=%v", img.HotX, img.HotY, img.Default)
	}

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{}}, // and bit set: transparent
		{3, 0, color.RGBA{}},
		{4, 0, cursorWhite},
		{6, 0, cursorBlack},
		{7, 0, cursorBlack},
		{0, 1, cursorWhite},
	}
	for _, c := range checks {
		if got := img.Image.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestCursor_MaskBytesAreLittleEndian(t *testing.T) {
	def := CursorDef{
		Width: 16, Height: 1, AndBPP: 1, XorBPP: 1,
		And: []uint32{0x0000FF00},
		Xor: []uint32{0},
	}
	img, _ := BuildCursor(def)
	if img.Image.RGBAAt(0, 0) != cursorBlack {
		t.Error("Pixel 0 should be opaque black")
	}
	if img.Image.RGBAAt(8, 0).A != 0 || img.Image.RGBAAt(15, 0).A != 0 {
		t.Error("Pixels 8-15 should be transparent")
	}
}

func TestCursor_TrueColourXor(t *testing.T) {
	def := CursorDef{
		Width: 2, Height: 1, AndBPP: 1, XorBPP: 32,
		And: []uint32{0x80},
		Xor: []uint32{0x00FFFFFF, 0x00112233},
	}
	img, ok := BuildCursor(def)
	if !ok {
		t.Fatal("1/32 cursor should be supported")
	}
	if img.Image.RGBAAt(0, 0).A != 0 {
		t.Error("Masked pixel should be transparent")
	}
	if got := img.Image.RGBAAt(1, 0); got != (color.RGBA{0x11, 0x22, 0x33, 0xff}) {
		t.Errorf("Pixel 1 = %v", got)
	}
}

func TestCursor_UnsupportedDepthFallsBack(t *testing.T) {
	def := CursorDef{Width: 4, Height: 4, AndBPP: 1, XorBPP: 8, And: make([]uint32, 4), Xor: make([]uint32, 4)}
	img, ok := BuildCursor(def)
	if ok {
		t.Fatal("1/8 cursor should not be supported")
	}
	if !img.Default {
		t.Error("Fallback should be the built-in pointer")
	}
}

func TestCursor_AlphaIgnoresTransparentPixels(t *testing.T) {
	img := BuildAlphaCursor(AlphaCursorDef{
		Width: 2, Height: 1, HotX: 1,
		Pixels: []uint32{0x00FFFFFF, 0x80102030},
	})
	if img.Image.RGBAAt(0, 0).A != 0 {
		t.Error("Zero-alpha pixel drawn")
	}
	if got := img.Image.RGBAAt(1, 0); got != (color.RGBA{0x10, 0x20, 0x30, 0xff}) {
		t.Errorf("Pixel 1 = %v", got)
	}
	if img.HotX != 1 {
		t.Errorf("HotX = %d", img.HotX)
	}
}

func TestCursor_DefaultPointer(t *testing.T) {
	c := DefaultCursor()
	b := c.Image.Bounds()
	if b.Dx() != 12 || b.Dy() != 17 {
		t.Fatalf("Default cursor %dx%d", b.Dx(), b.Dy())
	}
	if c.Image.RGBAAt(0, 0) != cursorBlack || c.Image.RGBAAt(1, 2) != cursorWhite {
		t.Error("Default cursor outline or fill wrong")
	}
	if c.Image.RGBAAt(11, 0).A != 0 {
		t.Error("Default cursor background should be transparent")
	}
}

func TestCursor_DefinitionLimits(t *testing.T) {
	cases := []struct {
		name          string
		w, h, and, xo uint32
		want          bool
	}{
		{"largest mono", 256, 256, 1, 1, true},
		{"32x32 true colour", 32, 32, 1, 32, true},
		{"too wide", 257, 1, 1, 1, false},
		{"too tall", 1, 257, 1, 1, false},
		{"zero depth", 8, 8, 0, 1, false},
		{"deep xor", 8, 8, 1, 33, false},
		{"mask overflow", 256, 256, 1, 32, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cursorDefValid(c.w, c.h, c.and, c.xo); got != c.want {
				t.Errorf("cursorDefValid(%d,%d,%d,%d) = %v", c.w, c.h, c.and, c.xo, got)
			}
		})
	}
}
