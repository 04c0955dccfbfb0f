// svga_display.go - Display sink converting the SVGA framebuffer to RGBA

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
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// DisplaySurface is the compositor side of the device. Rectangles are
// always given in surface pixels of the most recent Resize.
type DisplaySurface interface {
	Resize(desc SurfaceDesc, fb []byte)
	UpdateRect(x, y, w, h int)
	UpdateFull()
	SetDirtyTracking(enabled bool)
	DefineCursor(cursor CursorImage)
	MoveCursor(x, y int, visible bool)
}

// LegacyRenderer draws the pre-SVGA text console
type LegacyRenderer interface {
	Invalidate()
	Redraw()
}

// FrameDisplay keeps an RGBA copy of the guest framebuffer for a VideoOutput
type FrameDisplay struct {
	mu            sync.Mutex
	frame         *image.RGBA
	desc          SurfaceDesc
	fb            []byte
	dirty         bool
	dirtyTracking bool

	cursor        CursorImage
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorDirty   bool

	rectUpdates uint64
	fullUpdates uint64
}

func NewFrameDisplay() *FrameDisplay {
	return &FrameDisplay{
		frame:         image.NewRGBA(image.Rect(0, 0, SVGA_DEFAULT_WIDTH, SVGA_DEFAULT_HEIGHT)),
		dirtyTracking: true,
		cursor:        DefaultCursor(),
	}
}

func (d *FrameDisplay) Resize(desc SurfaceDesc, fb []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.desc = desc
	d.fb = fb
	if d.frame.Rect.Dx() != desc.Width || d.frame.Rect.Dy() != desc.Height {
		d.frame = image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height))
	}
	d.dirty = true
}

func (d *FrameDisplay) UpdateRect(x, y, w, h int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rectUpdates++
	d.convert(image.Rect(x, y, x+w, y+h))
}

func (d *FrameDisplay) UpdateFull() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fullUpdates++
	d.convert(d.frame.Rect)
}

func (d *FrameDisplay) SetDirtyTracking(enabled bool) {
	d.mu.Lock()
	d.dirtyTracking = enabled
	d.mu.Unlock()
}

func (d *FrameDisplay) DirtyTracking() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirtyTracking
}

func (d *FrameDisplay) DefineCursor(cursor CursorImage) {
	d.mu.Lock()
	d.cursor = cursor
	d.cursorDirty = true
	d.mu.Unlock()
}

func (d *FrameDisplay) MoveCursor(x, y int, visible bool) {
	d.mu.Lock()
	d.cursorX, d.cursorY, d.cursorVisible = x, y, visible
	d.cursorDirty = true
	d.mu.Unlock()
}

// Cursor returns the current cursor image and position
func (d *FrameDisplay) Cursor() (CursorImage, int, int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor, d.cursorX, d.cursorY, d.cursorVisible
}

// PresentImage replaces the frame wholesale. Used by the legacy console.
func (d *FrameDisplay) PresentImage(img *image.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.frame.Rect.Eq(img.Rect) {
		d.frame = image.NewRGBA(img.Rect)
	}
	draw.Draw(d.frame, d.frame.Rect, img, img.Rect.Min, draw.Src)
	d.dirty = true
}

// TakeDirty reports and clears pending frame and cursor changes
func (d *FrameDisplay) TakeDirty() (frame, cursor bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	frame, cursor = d.dirty, d.cursorDirty
	d.dirty, d.cursorDirty = false, false
	return frame, cursor
}

// Snapshot returns a copy of the presented frame
func (d *FrameDisplay) Snapshot() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := image.NewRGBA(d.frame.Rect)
	copy(out.Pix, d.frame.Pix)
	return out
}

func (d *FrameDisplay) Updates() (rects, full uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rectUpdates, d.fullUpdates
}

// convert copies a framebuffer region into the RGBA frame. Caller holds mu.
func (d *FrameDisplay) convert(r image.Rectangle) {
	r = r.Intersect(d.frame.Rect)
	bpp := d.desc.BytesPerPixel()
	if r.Empty() || bpp == 0 || d.fb == nil {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * d.desc.Stride
		for x := r.Min.X; x < r.Max.X; x++ {
			off := row + x*bpp
			if off+bpp > len(d.fb) {
				break
			}
			d.frame.SetRGBA(x, y, decodePixel(d.fb[off:off+bpp], d.desc.BitsPerPixel))
		}
	}
	d.dirty = true
}

// decodePixel converts one little-endian framebuffer pixel. 8bpp modes use a
// grey ramp since the palette registers are inert.
func decodePixel(p []byte, bitsPerPixel int) color.RGBA {
	switch bitsPerPixel {
	case 32, 24:
		return color.RGBA{p[2], p[1], p[0], 0xff}
	case 16:
		v := binary.LittleEndian.Uint16(p)
		r := byte(v>>11) & 0x1f
		g := byte(v>>5) & 0x3f
		b := byte(v) & 0x1f
		return color.RGBA{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2, 0xff}
	default:
		return color.RGBA{p[0], p[0], p[0], 0xff}
	}
}
