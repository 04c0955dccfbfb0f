// svga_test_helpers_test.go - Shared fixtures for SVGA tests

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
	"fmt"
	"testing"
)

// recordingDisplay captures every call the device makes on its display
type recordingDisplay struct {
	resizes  []SurfaceDesc
	rects    []Rect
	full     int
	tracking []bool
	cursors  []CursorImage
	moves    int
	cursorX  int
	cursorY  int
	visible  bool
}

func (r *recordingDisplay) Resize(desc SurfaceDesc, fb []byte) { r.resizes = append(r.resizes, desc) }
func (r *recordingDisplay) UpdateRect(x, y, w, h int)         { r.rects = append(r.rects, Rect{x, y, w, h}) }
func (r *recordingDisplay) UpdateFull()                       { r.full++ }
func (r *recordingDisplay) SetDirtyTracking(enabled bool)     { r.tracking = append(r.tracking, enabled) }
func (r *recordingDisplay) DefineCursor(c CursorImage)        { r.cursors = append(r.cursors, c) }
func (r *recordingDisplay) MoveCursor(x, y int, visible bool) {
	r.moves++
	r.cursorX, r.cursorY, r.visible = x, y, visible
}

func (r *recordingDisplay) clear() {
	*r = recordingDisplay{}
}

type recordingLegacy struct {
	invalidates int
	redraws     int
}

func (l *recordingLegacy) Invalidate() { l.invalidates++ }
func (l *recordingLegacy) Redraw()     { l.redraws++ }

// testRig is a device wired to recorders with a small FIFO
type testRig struct {
	t       testing.TB
	dev     *SVGADevice
	display *recordingDisplay
	legacy  *recordingLegacy
	irq     *IRQLatch
	logs    []string
}

func testConfig() SVGAConfig {
	cfg := DefaultSVGAConfig()
	cfg.VRAMSize = 4 << 20
	cfg.FIFOSize = 64 << 10
	cfg.ScratchSize = 64
	return cfg
}

func newTestRig(t testing.TB) *testRig {
	t.Helper()
	r := &testRig{
		t:       t,
		display: &recordingDisplay{},
		legacy:  &recordingLegacy{},
		irq:     NewIRQLatch(nil),
	}
	dev, err := NewSVGADevice(testConfig(), r.display, r.legacy, r.irq)
	if err != nil {
		t.Fatalf("NewSVGADevice failed: %v", err)
	}
	dev.SetLogger(func(format string, args ...any) {
		r.logs = append(r.logs, fmt.Sprintf(format, args...))
	})
	r.dev = dev
	return r
}

// initFIFO lays out the header the way a guest driver does: the command
// area starts after every header register and runs to the end of memory
func (r *testRig) initFIFO() {
	f := r.dev.fifo
	lo := uint32(SVGA_FIFO_NUM_REGS * 4)
	f.SetWord(SVGA_FIFO_MIN, lo)
	f.SetWord(SVGA_FIFO_MAX, uint32(f.Size()))
	f.SetWord(SVGA_FIFO_NEXT_CMD, lo)
	f.SetWord(SVGA_FIFO_STOP, lo)
}

// enable brings the device up in the default 640x480x32 mode and clears
// the recorders after the first refresh
func (r *testRig) enable() {
	r.initFIFO()
	r.dev.PokeRegister(SVGA_REG_ENABLE, 1)
	r.dev.PokeRegister(SVGA_REG_CONFIG_DONE, 1)
	r.dev.Refresh()
	r.display.clear()
	r.legacy.invalidates, r.legacy.redraws = 0, 0
}

// push appends words at NEXT_CMD, advancing it after each word
func (r *testRig) push(words ...uint32) {
	f := r.dev.fifo
	lo, hi := f.Word(SVGA_FIFO_MIN), f.Word(SVGA_FIFO_MAX)
	for _, w := range words {
		next := f.Word(SVGA_FIFO_NEXT_CMD)
		f.SetWord(int(next/4), w)
		next += 4
		if next >= hi {
			next = lo
		}
		f.SetWord(SVGA_FIFO_NEXT_CMD, next)
	}
}

func (r *testRig) sync() {
	r.dev.PokeRegister(SVGA_REG_SYNC, 1)
}

func (r *testRig) reg(index uint32) uint32 {
	return r.dev.PeekRegister(index)
}

// port returns the bus address of an I/O port
func (r *testRig) port(p uint32) uint32 {
	return r.dev.cfg.IOBase + p*4
}
