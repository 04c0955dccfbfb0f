// legacy_console.go - Text console shown before the SVGA driver takes over

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
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	LEGACY_COLS         = 80
	LEGACY_ROWS         = 25
	LEGACY_CELL_W       = 8
	LEGACY_CELL_H       = 16
	LEGACY_DEFAULT_ATTR = 0x07 // Light grey on black

	// Text buffer window: one 32-bit word per cell, char in bits 0-7,
	// attribute (fg low nibble, bg high nibble) in bits 8-15
	LEGACY_TEXT_BASE = 0x00300000
	LEGACY_TEXT_END  = LEGACY_TEXT_BASE + LEGACY_COLS*LEGACY_ROWS*4 - 1
)

// Standard 16-colour text palette
var legacyPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, {0x00, 0x00, 0xaa, 0xff}, {0x00, 0xaa, 0x00, 0xff}, {0x00, 0xaa, 0xaa, 0xff},
	{0xaa, 0x00, 0x00, 0xff}, {0xaa, 0x00, 0xaa, 0xff}, {0xaa, 0x55, 0x00, 0xff}, {0xaa, 0xaa, 0xaa, 0xff},
	{0x55, 0x55, 0x55, 0xff}, {0x55, 0x55, 0xff, 0xff}, {0x55, 0xff, 0x55, 0xff}, {0x55, 0xff, 0xff, 0xff},
	{0xff, 0x55, 0x55, 0xff}, {0xff, 0x55, 0xff, 0xff}, {0xff, 0xff, 0x55, 0xff}, {0xff, 0xff, 0xff, 0xff},
}

type legacyCell struct {
	ch   byte
	attr byte
}

// LegacyConsole is an 80x25 text screen rendered with basicfont. It is
// drawn only while the SVGA registers have not been enabled.
type LegacyConsole struct {
	mu      sync.Mutex
	cells   [LEGACY_ROWS * LEGACY_COLS]legacyCell
	col     int
	row     int
	attr    byte
	dirty   bool
	target  *FrameDisplay
	img     *image.RGBA
	redraws uint64
}

func NewLegacyConsole(target *FrameDisplay) *LegacyConsole {
	c := &LegacyConsole{
		target: target,
		attr:   LEGACY_DEFAULT_ATTR,
		img:    image.NewRGBA(image.Rect(0, 0, LEGACY_COLS*LEGACY_CELL_W, LEGACY_ROWS*LEGACY_CELL_H)),
	}
	c.clearLocked()
	return c
}

func (c *LegacyConsole) clearLocked() {
	for i := range c.cells {
		c.cells[i] = legacyCell{ch: ' ', attr: c.attr}
	}
	c.col, c.row = 0, 0
	c.dirty = true
}

func (c *LegacyConsole) Clear() {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()
}

// SetAttr selects the colour attribute for subsequent writes
func (c *LegacyConsole) SetAttr(attr byte) {
	c.mu.Lock()
	c.attr = attr
	c.mu.Unlock()
}

// WriteString prints text teletype style, scrolling at the bottom
func (c *LegacyConsole) WriteString(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < len(s); i++ {
		c.putLocked(s[i])
	}
	c.dirty = true
}

func (c *LegacyConsole) putLocked(ch byte) {
	switch ch {
	case '\n':
		c.col = 0
		c.row++
	case '\r':
		c.col = 0
	default:
		c.cells[c.row*LEGACY_COLS+c.col] = legacyCell{ch: ch, attr: c.attr}
		c.col++
		if c.col == LEGACY_COLS {
			c.col = 0
			c.row++
		}
	}
	if c.row == LEGACY_ROWS {
		copy(c.cells[:], c.cells[LEGACY_COLS:])
		for i := (LEGACY_ROWS - 1) * LEGACY_COLS; i < len(c.cells); i++ {
			c.cells[i] = legacyCell{ch: ' ', attr: c.attr}
		}
		c.row = LEGACY_ROWS - 1
	}
}

// Text returns one row with trailing spaces kept
func (c *LegacyConsole) Text(row int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row < 0 || row >= LEGACY_ROWS {
		return ""
	}
	buf := make([]byte, LEGACY_COLS)
	for i := range buf {
		buf[i] = c.cells[row*LEGACY_COLS+i].ch
	}
	return string(buf)
}

func (c *LegacyConsole) Invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// Redraw renders the text screen into the display if anything changed
func (c *LegacyConsole) Redraw() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return
	}
	c.dirty = false
	c.redraws++

	d := &font.Drawer{Dst: c.img, Face: basicfont.Face7x13}
	for row := 0; row < LEGACY_ROWS; row++ {
		for col := 0; col < LEGACY_COLS; col++ {
			cell := c.cells[row*LEGACY_COLS+col]
			r := image.Rect(col*LEGACY_CELL_W, row*LEGACY_CELL_H, (col+1)*LEGACY_CELL_W, (row+1)*LEGACY_CELL_H)
			bg := legacyPalette[cell.attr>>4&0x0f]
			draw.Draw(c.img, r, &image.Uniform{bg}, image.Point{}, draw.Src)
			if cell.ch <= ' ' {
				continue
			}
			d.Src = &image.Uniform{legacyPalette[cell.attr&0x0f]}
			d.Dot = fixed.P(r.Min.X, r.Min.Y+12)
			d.DrawString(string(rune(cell.ch)))
		}
	}
	if c.target != nil {
		c.target.PresentImage(c.img)
	}
}

func (c *LegacyConsole) Redraws() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redraws
}

// HandleRead and HandleWrite expose the cell array on the bus
func (c *LegacyConsole) HandleRead(addr uint32) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := int(addr-LEGACY_TEXT_BASE) >> 2
	if i < 0 || i >= len(c.cells) {
		return 0
	}
	return uint32(c.cells[i].ch) | uint32(c.cells[i].attr)<<8
}

func (c *LegacyConsole) HandleWrite(addr uint32, value uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := int(addr-LEGACY_TEXT_BASE) >> 2
	if i < 0 || i >= len(c.cells) {
		return
	}
	c.cells[i] = legacyCell{ch: byte(value), attr: byte(value >> 8)}
	c.dirty = true
}

func (c *LegacyConsole) MapIO(bus *MachineBus) {
	bus.MapIO(LEGACY_TEXT_BASE, LEGACY_TEXT_END, c.HandleRead, c.HandleWrite)
}
