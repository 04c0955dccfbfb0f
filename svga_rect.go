// svga_rect.go - Bounds-checked rectangle copy, fill and update

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
	"encoding/binary"
	"errors"
)

// ErrRectBounds is returned when a rectangle does not lie inside the
// current surface. Callers fall back to a full-surface redraw.
var ErrRectBounds = errors.New("rectangle outside surface")

// SurfaceDesc describes the framebuffer layout of the current mode
type SurfaceDesc struct {
	Width        int
	Height       int
	Stride       int // Bytes per row
	BitsPerPixel int
}

func (s SurfaceDesc) BytesPerPixel() int {
	return (s.BitsPerPixel + 7) / 8
}

// Size returns the number of framebuffer bytes the mode spans
func (s SurfaceDesc) Size() int {
	return s.Stride * s.Height
}

// RectEngine performs rectangle operations on the shared framebuffer. The
// surface description is re-derived through surface() before every
// operation because register writes may change the mode between commands.
type RectEngine struct {
	vram    []byte
	surface func() SurfaceDesc
	damage  func(Rect)
	row     []byte
}

func NewRectEngine(vram []byte, surface func() SurfaceDesc, damage func(Rect)) *RectEngine {
	return &RectEngine{vram: vram, surface: surface, damage: damage}
}

// clip validates a guest rectangle against the surface and framebuffer
func (e *RectEngine) clip(desc SurfaceDesc, x, y, w, h uint32) (Rect, error) {
	if x > SVGA_MAX_DIM || y > SVGA_MAX_DIM || w > SVGA_MAX_DIM || h > SVGA_MAX_DIM {
		return Rect{}, ErrRectBounds
	}
	r := Rect{X: int(x), Y: int(y), W: int(w), H: int(h)}
	bpp := desc.BytesPerPixel()
	if bpp == 0 || desc.Stride <= 0 {
		return Rect{}, ErrRectBounds
	}
	if r.X+r.W > desc.Width || r.Y+r.H > desc.Height {
		return Rect{}, ErrRectBounds
	}
	if r.W > 0 && r.H > 0 {
		last := (r.Y+r.H-1)*desc.Stride + (r.X+r.W)*bpp
		if last > len(e.vram) {
			return Rect{}, ErrRectBounds
		}
	}
	return r, nil
}

// Update marks a region for redraw without touching the framebuffer
func (e *RectEngine) Update(x, y, w, h uint32) error {
	r, err := e.clip(e.surface(), x, y, w, h)
	if err != nil {
		return err
	}
	e.damage(r)
	return nil
}

// Copy moves a w*h block from (sx,sy) to (dx,dy). Rows are walked bottom-up
// when the destination lies below the source so overlapping blocks copy
// like memmove.
func (e *RectEngine) Copy(sx, sy, dx, dy, w, h uint32) error {
	desc := e.surface()
	src, err := e.clip(desc, sx, sy, w, h)
	if err != nil {
		return err
	}
	dst, err := e.clip(desc, dx, dy, w, h)
	if err != nil {
		return err
	}

	bpp := desc.BytesPerPixel()
	width := src.W * bpp
	srcOff := src.Y*desc.Stride + src.X*bpp
	dstOff := dst.Y*desc.Stride + dst.X*bpp
	step := desc.Stride

	if dst.Y > src.Y {
		srcOff += (src.H - 1) * desc.Stride
		dstOff += (dst.H - 1) * desc.Stride
		step = -step
	}
	for line := 0; line < src.H; line++ {
		copy(e.vram[dstOff:dstOff+width], e.vram[srcOff:srcOff+width])
		srcOff += step
		dstOff += step
	}

	e.damage(dst)
	return nil
}

// Fill paints a solid rectangle. The pixel is written once into a scratch
// row which is then replicated into every line.
func (e *RectEngine) Fill(color, x, y, w, h uint32) error {
	desc := e.surface()
	r, err := e.clip(desc, x, y, w, h)
	if err != nil {
		return err
	}

	bpp := desc.BytesPerPixel()
	width := r.W * bpp
	if cap(e.row) < width {
		e.row = make([]byte, width)
	}
	row := e.row[:width]

	var pixel [4]byte
	binary.LittleEndian.PutUint32(pixel[:], color)
	for i := 0; i < width; i += bpp {
		copy(row[i:i+bpp], pixel[:bpp])
	}

	off := r.Y*desc.Stride + r.X*bpp
	for line := 0; line < r.H; line++ {
		copy(e.vram[off:off+width], row)
		off += desc.Stride
	}

	e.damage(r)
	return nil
}
