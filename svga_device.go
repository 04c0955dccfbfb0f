// svga_device.go - VMware SVGA II compatible display adapter

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

/*
svga_device.go - SVGA II Display Adapter

The adapter exposes three guest-visible resources on the machine bus:

	I/O ports     INDEX / VALUE register pair, BIOS, IRQSTATUS
	FIFO window   command ring buffer shared with the guest driver
	VRAM window   linear framebuffer

Until the guest sets both ENABLE and CONFIG_DONE the adapter behaves as a
plain text console (the legacy renderer). Once enabled, guest drawing
commands are queued in the FIFO and decoded on SYNC, on BUSY polling and on
every display refresh.

All state is guarded by one mutex. Bus handlers, Refresh and the
snapshot helpers take it; everything named in lower case expects it held.
*/

package main

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// SVGAConfig sizes the device at construction time
type SVGAConfig struct {
	VRAMSize    int    // Framebuffer bytes
	FIFOSize    int    // Command FIFO bytes
	ScratchSize int    // Scratch register count
	MaxWidth    int    // Reported in SVGA_REG_MAX_WIDTH
	MaxHeight   int    // Reported in SVGA_REG_MAX_HEIGHT
	IOBase      uint32 // Bus address of port 0
	FBStart     uint32 // Bus address of the VRAM window
	FIFOStart   uint32 // Bus address of the FIFO window
}

func DefaultSVGAConfig() SVGAConfig {
	return SVGAConfig{
		VRAMSize:    SVGA_DEFAULT_VRAM_SIZE,
		FIFOSize:    SVGA_DEFAULT_FIFO_SIZE,
		ScratchSize: SVGA_DEFAULT_SCRATCH_SIZE,
		MaxWidth:    SVGA_MAX_WIDTH,
		MaxHeight:   SVGA_MAX_HEIGHT,
		IOBase:      SVGA_IO_BASE,
		FBStart:     SVGA_VRAM_BASE,
		FIFOStart:   SVGA_FIFO_BASE,
	}
}

// Validate checks the configuration and returns a *VideoError describing
// the first problem found
func (c SVGAConfig) Validate() error {
	fail := func(format string, args ...any) error {
		return &VideoError{Operation: "svga config", Details: fmt.Sprintf(format, args...)}
	}
	switch {
	case c.VRAMSize <= 0 || c.VRAMSize%4 != 0:
		return fail("vram size %d must be a positive multiple of 4", c.VRAMSize)
	case c.VRAMSize > SVGA_VRAM_WINDOW:
		return fail("vram size %d exceeds the %d byte window", c.VRAMSize, SVGA_VRAM_WINDOW)
	case c.FIFOSize%4 != 0 || c.FIFOSize < SVGA_FIFO_NUM_REGS*4+SVGA_FIFO_MIN_SPAN:
		return fail("fifo size %d too small or unaligned", c.FIFOSize)
	case c.FIFOSize > SVGA_FIFO_WINDOW:
		return fail("fifo size %d exceeds the %d byte window", c.FIFOSize, SVGA_FIFO_WINDOW)
	case c.ScratchSize < 0 || c.ScratchSize > 0x10000:
		return fail("scratch size %d out of range", c.ScratchSize)
	case c.MaxWidth < 1 || c.MaxWidth > SVGA_MAX_DIM:
		return fail("max width %d out of range", c.MaxWidth)
	case c.MaxHeight < 1 || c.MaxHeight > SVGA_MAX_DIM:
		return fail("max height %d out of range", c.MaxHeight)
	case c.VRAMSize < SVGA_DEFAULT_WIDTH*SVGA_DEFAULT_HEIGHT*4:
		return fail("vram size %d cannot hold the default mode", c.VRAMSize)
	}
	return nil
}

// SVGAEvent is reported to the event observer
type SVGAEvent struct {
	Kind   string `json:"kind"` // fence, irq, mode, reset
	Value  uint32 `json:"value,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	BPP    int    `json:"bpp,omitempty"`
}

// SVGAStats counts decoder activity
type SVGAStats struct {
	Commands uint64 `json:"commands"` // Applied commands
	Skipped  uint64 `json:"skipped"`  // Recognized-but-ignored and unknown commands
	Rewinds  uint64 `json:"rewinds"`  // Incomplete commands deferred
	Fences   uint64 `json:"fences"`
	Flushes  uint64 `json:"flushes"` // Redraw queue flushes
	Invalid  uint64 `json:"invalid"` // Rejected register writes and rect operations
}

type SVGADevice struct {
	mu  sync.Mutex
	cfg SVGAConfig

	vram    []byte
	fifo    *SVGAFifo
	display DisplaySurface
	legacy  LegacyRenderer
	irq     *InterruptController
	queue   RedrawQueue
	rect    *RectEngine

	scratch *BoundedWords
	palette *BoundedWords
	andMask *BoundedWords
	xorMask *BoundedWords
	words   []uint32 // Payload staging for cursor definitions

	index          uint32
	svgaID         uint32
	enable         bool
	config         bool
	width          int
	height         int
	bpp            int
	pitchlock      uint32
	pitchlockCount int
	guestID        uint32
	displayID      uint32
	traces         uint32
	syncing        bool

	cursorID        uint32
	cursorX         uint32
	cursorY         uint32
	cursorOn        bool
	lastCursorCount uint32

	surface  SurfaceDesc // Last mode handed to the display
	reported map[string]bool
	stats    SVGAStats
	logf     func(format string, args ...any)
	observer func(SVGAEvent)
}

type nullDisplay struct{}

func (nullDisplay) Resize(SurfaceDesc, []byte)    {}
func (nullDisplay) UpdateRect(int, int, int, int) {}
func (nullDisplay) UpdateFull()                   {}
func (nullDisplay) SetDirtyTracking(bool)         {}
func (nullDisplay) DefineCursor(CursorImage)      {}
func (nullDisplay) MoveCursor(int, int, bool)     {}

type nullLegacy struct{}

func (nullLegacy) Invalidate() {}
func (nullLegacy) Redraw()     {}

// NewSVGADevice creates the adapter. display, legacy and line may be nil.
func NewSVGADevice(cfg SVGAConfig, display DisplaySurface, legacy LegacyRenderer, line IRQLine) (*SVGADevice, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if display == nil {
		display = nullDisplay{}
	}
	if legacy == nil {
		legacy = nullLegacy{}
	}
	d := &SVGADevice{
		cfg:     cfg,
		vram:    make([]byte, cfg.VRAMSize),
		fifo:    NewSVGAFifo(cfg.FIFOSize),
		display: display,
		legacy:  legacy,
		irq:     NewInterruptController(line),
		scratch: NewBoundedWords(cfg.ScratchSize),
		palette: NewBoundedWords(SVGA_NUM_PALETTE_REG),
		andMask: NewBoundedWords(SVGA_CURSOR_MASK_WORDS),
		xorMask: NewBoundedWords(SVGA_CURSOR_MASK_WORDS),
		logf: func(format string, args ...any) {
			fmt.Printf("vmsvga: "+format+"\n", args...)
		},
	}
	d.rect = NewRectEngine(d.vram, d.surfaceDesc, func(r Rect) {
		d.queue.Append(r, d.display)
	})
	d.resetLocked()
	return d, nil
}

// SetLogger redirects diagnostics. A nil logger silences them.
func (d *SVGADevice) SetLogger(logf func(format string, args ...any)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if logf == nil {
		logf = func(string, ...any) {}
	}
	d.logf = logf
}

// SetEventObserver installs a callback for fence, interrupt and mode
// events. It runs with the device lock held and must not call back in.
func (d *SVGADevice) SetEventObserver(fn func(SVGAEvent)) {
	d.mu.Lock()
	d.observer = fn
	d.mu.Unlock()
}

func (d *SVGADevice) emit(ev SVGAEvent) {
	if d.observer != nil {
		d.observer(ev)
	}
}

// logOnce emits a diagnostic the first time key is seen
func (d *SVGADevice) logOnce(key, format string, args ...any) {
	if d.reported[key] {
		return
	}
	d.reported[key] = true
	d.logf(format, args...)
}

func (d *SVGADevice) Config() SVGAConfig {
	return d.cfg
}

// VRAM exposes the framebuffer. Callers synchronise through the bus.
func (d *SVGADevice) VRAM() []byte {
	return d.vram
}

func (d *SVGADevice) FIFO() *SVGAFifo {
	return d.fifo
}

func (d *SVGADevice) Stats() SVGAStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	s.Flushes = d.queue.Flushes()
	return s
}

// IRQStatus returns the pending interrupt bits and the mask
func (d *SVGADevice) IRQStatus() (status, mask uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.irq.Status(), d.irq.Mask()
}

// Enabled reports whether the guest driver has taken over the display
func (d *SVGADevice) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enable && d.config
}

// Mode returns the current surface description
func (d *SVGADevice) Mode() SurfaceDesc {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.surfaceDesc()
}

// Reset returns the device to power-on state. FIFO memory is retained.
func (d *SVGADevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
	d.emit(SVGAEvent{Kind: "reset"})
}

func (d *SVGADevice) resetLocked() {
	d.index = 0
	d.svgaID = SVGA_ID
	d.enable = false
	d.config = false
	d.width = SVGA_DEFAULT_WIDTH
	d.height = SVGA_DEFAULT_HEIGHT
	d.bpp = SVGA_DEFAULT_BPP
	d.pitchlock = 0
	d.pitchlockCount = 0
	d.guestID = 0
	d.displayID = 0
	d.traces = 0
	d.syncing = false
	d.cursorID = 0
	d.cursorX = 0
	d.cursorY = 0
	d.cursorOn = false
	d.lastCursorCount = 0
	d.surface = SurfaceDesc{}
	d.reported = make(map[string]bool)
	d.stats = SVGAStats{}

	d.scratch.Clear()
	d.palette.Clear()
	d.andMask.Clear()
	d.xorMask.Clear()
	d.irq.Reset()
	d.queue.Reset()

	d.display.SetDirtyTracking(true)
	d.legacy.Invalidate()
}

// bytesPerPixel of the negotiated guest mode
func (d *SVGADevice) bytesPerPixel() int {
	return (d.bpp + 7) / 8
}

// bytesPerLine derives the row stride. A pitch-lock register override wins,
// then the FIFO PITCHLOCK word, then width times pixel size.
func (d *SVGADevice) bytesPerLine() int {
	if d.pitchlockCount > 0 && d.pitchlock != 0 {
		return int(d.pitchlock)
	}
	if d.fifo.Ready() && d.fifo.HasSlot(SVGA_FIFO_PITCHLOCK) {
		if pitch := d.fifo.Word(SVGA_FIFO_PITCHLOCK); pitch != 0 {
			return int(pitch)
		}
	}
	return d.width * d.bytesPerPixel()
}

func (d *SVGADevice) surfaceDesc() SurfaceDesc {
	return SurfaceDesc{
		Width:        d.width,
		Height:       d.height,
		Stride:       d.bytesPerLine(),
		BitsPerPixel: d.bpp,
	}
}

// invalidate forces a full redraw on the next refresh
func (d *SVGADevice) invalidate() {
	d.queue.Invalidate()
}

// Refresh is called once per display frame
func (d *SVGADevice) Refresh() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enable || !d.config {
		d.surface = SurfaceDesc{}
		d.legacy.Redraw()
		return
	}

	if desc := d.surfaceDesc(); desc != d.surface {
		d.surface = desc
		d.display.Resize(desc, d.vram)
		d.invalidate()
		d.emit(SVGAEvent{Kind: "mode", Width: desc.Width, Height: desc.Height, BPP: desc.BitsPerPixel})
	}

	d.updateCursorBypass()
	d.runFIFO()
	d.queue.Flush(d.display)
	if d.queue.TakeInvalidated() {
		d.display.UpdateFull()
	}
}

// updateCursorBypass picks up cursor moves the guest published through
// the FIFO header instead of the cursor registers
func (d *SVGADevice) updateCursorBypass() {
	if !d.fifo.Ready() || !d.fifo.HasSlot(SVGA_FIFO_CURSOR_COUNT) {
		return
	}
	count := d.fifo.Word(SVGA_FIFO_CURSOR_COUNT)
	if count == d.lastCursorCount {
		return
	}
	d.lastCursorCount = count
	d.cursorX = d.fifo.Word(SVGA_FIFO_CURSOR_X)
	d.cursorY = d.fifo.Word(SVGA_FIFO_CURSOR_Y)
	d.cursorOn = d.fifo.Word(SVGA_FIFO_CURSOR_ON) != 0
	d.display.MoveCursor(int(d.cursorX), int(d.cursorY), d.cursorOn)
}

// Bus handlers. Each port occupies one 32-bit word on the bus.

func (d *SVGADevice) HandleRead(addr uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.portRead((addr - d.cfg.IOBase) >> 2)
}

func (d *SVGADevice) HandleWrite(addr uint32, value uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.portWrite((addr-d.cfg.IOBase)>>2, value)
}

func (d *SVGADevice) portRead(port uint32) uint32 {
	switch port {
	case SVGA_INDEX_PORT:
		return d.index
	case SVGA_VALUE_PORT:
		return d.readRegister(d.index)
	case SVGA_BIOS_PORT:
		return 0
	case SVGA_IRQSTATUS_PORT:
		return d.irq.Status()
	}
	d.logOnce(fmt.Sprintf("port-r%d", port), "read from unknown port %d", port)
	return 0
}

func (d *SVGADevice) portWrite(port, value uint32) {
	switch port {
	case SVGA_INDEX_PORT:
		d.index = value
	case SVGA_VALUE_PORT:
		d.writeRegister(d.index, value)
	case SVGA_BIOS_PORT:
	case SVGA_IRQSTATUS_PORT:
		d.irq.Acknowledge(value)
	default:
		d.logOnce(fmt.Sprintf("port-w%d", port), "write to unknown port %d", port)
	}
}

// HandleFIFORead and HandleFIFOWrite serve the FIFO memory window
func (d *SVGADevice) HandleFIFORead(addr uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fifo.Word(int((addr - d.cfg.FIFOStart) >> 2))
}

func (d *SVGADevice) HandleFIFOWrite(addr uint32, value uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fifo.SetWord(int((addr-d.cfg.FIFOStart)>>2), value)
}

// HandleVRAMRead and HandleVRAMWrite serve the framebuffer window
func (d *SVGADevice) HandleVRAMRead(addr uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	off := int(addr - d.cfg.FBStart)
	if off < 0 || off+4 > len(d.vram) {
		return 0
	}
	return binary.LittleEndian.Uint32(d.vram[off:])
}

func (d *SVGADevice) HandleVRAMWrite(addr uint32, value uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	off := int(addr - d.cfg.FBStart)
	if off < 0 || off+4 > len(d.vram) {
		return
	}
	binary.LittleEndian.PutUint32(d.vram[off:], value)
}

// MapIO attaches the port block and both memory windows to the bus
func (d *SVGADevice) MapIO(bus *MachineBus) {
	bus.MapIO(d.cfg.IOBase, d.cfg.IOBase+SVGA_NUM_PORTS*4-1, d.HandleRead, d.HandleWrite)
	bus.MapIO(d.cfg.FIFOStart, d.cfg.FIFOStart+uint32(d.fifo.Size())-1, d.HandleFIFORead, d.HandleFIFOWrite)
	bus.MapIO(d.cfg.FBStart, d.cfg.FBStart+uint32(len(d.vram))-1, d.HandleVRAMRead, d.HandleVRAMWrite)
}

// PeekRegister reads a register without touching the guest's latched index
func (d *SVGADevice) PeekRegister(index uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRegister(index)
}

// PokeRegister writes a register without touching the guest's latched index
func (d *SVGADevice) PokeRegister(index, value uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writeRegister(index, value)
}

// FIFOPending returns the number of words waiting in the FIFO
func (d *SVGADevice) FIFOPending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fifo.Length()
}
