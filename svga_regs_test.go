// svga_regs_test.go - Register bank tests

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

import "testing"

// =============================================================================
// Index / value ports
// =============================================================================

func TestSVGA_IndexValuePorts(t *testing.T) {
	r := newTestRig(t)

	r.dev.HandleWrite(r.port(SVGA_INDEX_PORT), SVGA_REG_ID)
	if got := r.dev.HandleRead(r.port(SVGA_VALUE_PORT)); got != SVGA_ID_2 {
		t.Errorf("ID = 0x%08X, want 0x%08X", got, SVGA_ID_2)
	}
	if got := r.dev.HandleRead(r.port(SVGA_INDEX_PORT)); got != SVGA_REG_ID {
		t.Errorf("INDEX reads back %d", got)
	}

	r.dev.HandleWrite(r.port(SVGA_INDEX_PORT), SVGA_REG_WIDTH)
	r.dev.HandleWrite(r.port(SVGA_VALUE_PORT), 1024)
	if got := r.reg(SVGA_REG_WIDTH); got != 1024 {
		t.Errorf("WIDTH = %d after port write", got)
	}
}

func TestSVGA_IDNegotiation(t *testing.T) {
	r := newTestRig(t)
	r.dev.PokeRegister(SVGA_REG_ID, SVGA_ID_0)
	if r.reg(SVGA_REG_ID) != SVGA_ID_0 {
		t.Fatalf("ID_0 not accepted")
	}
	r.dev.PokeRegister(SVGA_REG_ID, 0x12345)
	if r.reg(SVGA_REG_ID) != SVGA_ID_0 {
		t.Errorf("Bogus ID replaced the negotiated one")
	}
	if r.dev.Stats().Invalid != 1 {
		t.Errorf("Expected the bogus ID to be rejected")
	}
}

// =============================================================================
// Mode registers
// =============================================================================

func TestSVGA_ModeRegisterLimits(t *testing.T) {
	r := newTestRig(t)
	maxW := r.reg(SVGA_REG_MAX_WIDTH)

	r.dev.PokeRegister(SVGA_REG_WIDTH, 800)
	r.dev.PokeRegister(SVGA_REG_HEIGHT, 600)
	r.dev.PokeRegister(SVGA_REG_WIDTH, maxW+1)
	r.dev.PokeRegister(SVGA_REG_HEIGHT, 0)

	if r.reg(SVGA_REG_WIDTH) != 800 || r.reg(SVGA_REG_HEIGHT) != 600 {
		t.Fatalf("Mode = %dx%d, want 800x600", r.reg(SVGA_REG_WIDTH), r.reg(SVGA_REG_HEIGHT))
	}
	if r.dev.Stats().Invalid != 2 {
		t.Errorf("Expected 2 rejected writes, got %d", r.dev.Stats().Invalid)
	}
	if r.reg(SVGA_REG_BYTES_PER_LINE) != 3200 {
		t.Errorf("BYTES_PER_LINE = %d, want 3200", r.reg(SVGA_REG_BYTES_PER_LINE))
	}
	if r.reg(SVGA_REG_FB_SIZE) != 3200*600 {
		t.Errorf("FB_SIZE = %d", r.reg(SVGA_REG_FB_SIZE))
	}
	if !r.dev.queue.Invalidated() {
		t.Error("Accepted mode writes should invalidate the surface")
	}
}

func TestSVGA_DepthRegisters(t *testing.T) {
	r := newTestRig(t)

	if r.reg(SVGA_REG_DEPTH) != 24 || r.reg(SVGA_REG_BITS_PER_PIXEL) != 32 {
		t.Fatalf("Default depth %d/%d", r.reg(SVGA_REG_DEPTH), r.reg(SVGA_REG_BITS_PER_PIXEL))
	}

	r.dev.PokeRegister(SVGA_REG_BITS_PER_PIXEL, 16)
	if r.reg(SVGA_REG_DEPTH) != 16 || r.reg(SVGA_REG_BYTES_PER_LINE) != 640*2 {
		t.Errorf("16bpp depth %d stride %d", r.reg(SVGA_REG_DEPTH), r.reg(SVGA_REG_BYTES_PER_LINE))
	}
	if r.reg(SVGA_REG_RED_MASK) != 0xf800 || r.reg(SVGA_REG_GREEN_MASK) != 0x07e0 || r.reg(SVGA_REG_BLUE_MASK) != 0x001f {
		t.Error("Wrong 565 channel masks")
	}

	r.dev.PokeRegister(SVGA_REG_BITS_PER_PIXEL, 15)
	if r.reg(SVGA_REG_BITS_PER_PIXEL) != 16 {
		t.Error("15bpp should be rejected")
	}

	r.dev.PokeRegister(SVGA_REG_BITS_PER_PIXEL, 8)
	if r.reg(SVGA_REG_PSEUDOCOLOR) != 1 {
		t.Error("8bpp should report pseudocolor")
	}
}

func TestSVGA_PitchLockOverridesUntilWidthWrite(t *testing.T) {
	r := newTestRig(t)

	r.dev.PokeRegister(SVGA_REG_PITCHLOCK, 4096)
	if got := r.reg(SVGA_REG_BYTES_PER_LINE); got != 4096 {
		t.Fatalf("BYTES_PER_LINE = %d with pitch lock", got)
	}
	r.dev.PokeRegister(SVGA_REG_WIDTH, 800)
	if got := r.reg(SVGA_REG_BYTES_PER_LINE); got != 3200 {
		t.Errorf("BYTES_PER_LINE = %d after width write, want derived 3200", got)
	}
	if r.reg(SVGA_REG_PITCHLOCK) != 4096 {
		t.Error("PITCHLOCK register should keep its value")
	}
}

func TestSVGA_FIFOPitchLock(t *testing.T) {
	r := newTestRig(t)
	r.initFIFO()
	r.dev.fifo.SetWord(SVGA_FIFO_PITCHLOCK, 3000)
	if got := r.reg(SVGA_REG_BYTES_PER_LINE); got != 3000 {
		t.Errorf("BYTES_PER_LINE = %d, want FIFO pitch 3000", got)
	}
}

// =============================================================================
// Fixed and derived registers
// =============================================================================

func TestSVGA_ReportedResources(t *testing.T) {
	r := newTestRig(t)
	cfg := r.dev.Config()

	checks := []struct {
		name  string
		index uint32
		want  uint32
	}{
		{"fb start", SVGA_REG_FB_START, cfg.FBStart},
		{"vram size", SVGA_REG_VRAM_SIZE, uint32(cfg.VRAMSize)},
		{"memory size", SVGA_REG_MEMORY_SIZE, uint32(cfg.VRAMSize)},
		{"fifo start", SVGA_REG_MEM_START, cfg.FIFOStart},
		{"fifo size", SVGA_REG_MEM_SIZE, uint32(cfg.FIFOSize)},
		{"fifo registers", SVGA_REG_MEM_REGS, SVGA_FIFO_NUM_REGS},
		{"scratch size", SVGA_REG_SCRATCH_SIZE, uint32(cfg.ScratchSize)},
		{"capabilities", SVGA_REG_CAPABILITIES, SVGA_CAPABILITIES},
		{"capabilities 2", SVGA_REG_CAP2, SVGA_CAP2_NONE},
		{"host bpp", SVGA_REG_HOST_BITS_PER_PIXEL, SVGA_HOST_BPP},
		{"displays", SVGA_REG_NUM_DISPLAYS, SVGA_NUM_DISPLAYS},
		{"primary", SVGA_REG_DISPLAY_IS_PRIMARY, 1},
		{"display width", SVGA_REG_DISPLAY_WIDTH, SVGA_DEFAULT_WIDTH},
	}
	for _, c := range checks {
		if got := r.reg(c.index); got != c.want {
			t.Errorf("%s = 0x%x, want 0x%x", c.name, got, c.want)
		}
	}
}

func TestSVGA_CapabilitiesAdvertiseSkippedFeatures(t *testing.T) {
	r := newTestRig(t)
	caps := r.reg(SVGA_REG_CAPABILITIES)
	for _, bit := range []uint32{SVGA_CAP_RECT_COPY, SVGA_CAP_CURSOR, SVGA_CAP_ALPHA_CURSOR, SVGA_CAP_GMR, SVGA_CAP_COMMAND_BUFFERS} {
		if caps&bit == 0 {
			t.Errorf("Capability 0x%x not advertised", bit)
		}
	}
	if caps&SVGA_CAP_3D != 0 {
		t.Error("3D must not be advertised")
	}
}

func TestSVGA_ReadOnlyWritesIgnored(t *testing.T) {
	r := newTestRig(t)
	r.dev.PokeRegister(SVGA_REG_VRAM_SIZE, 1)
	if r.reg(SVGA_REG_VRAM_SIZE) != uint32(r.dev.Config().VRAMSize) {
		t.Error("VRAM_SIZE changed")
	}
	if countLogs(r, "read-only") != 1 {
		t.Errorf("Expected a read-only diagnostic, logs: %v", r.logs)
	}
}

// =============================================================================
// Scratch and palette banks
// =============================================================================

func TestSVGA_ScratchAndPaletteBanks(t *testing.T) {
	r := newTestRig(t)
	size := r.reg(SVGA_REG_SCRATCH_SIZE)

	r.dev.PokeRegister(SVGA_SCRATCH_BASE+5, 0xCAFE)
	r.dev.PokeRegister(SVGA_PALETTE_BASE+10, 0x80)
	if r.reg(SVGA_SCRATCH_BASE+5) != 0xCAFE {
		t.Error("Scratch register lost its value")
	}
	if r.reg(SVGA_PALETTE_BASE+10) != 0x80 {
		t.Error("Palette register lost its value")
	}

	r.dev.PokeRegister(SVGA_SCRATCH_BASE+size, 1)
	if r.reg(SVGA_SCRATCH_BASE+size) != 0 {
		t.Error("Register past the scratch bank should read zero")
	}
	if countLogs(r, "bad register write") != 1 || countLogs(r, "bad register read") != 1 {
		t.Errorf("Expected bad access diagnostics, logs: %v", r.logs)
	}

	// Hole between the named registers and the palette
	if r.reg(SVGA_REG_CAP2+1) != 0 || countLogs(r, "bad register read") != 2 {
		t.Error("Unnamed register should read zero with a diagnostic")
	}
}

// =============================================================================
// Enable, config and the legacy console
// =============================================================================

func TestSVGA_EnableTogglesDirtyTracking(t *testing.T) {
	r := newTestRig(t)
	r.initFIFO()
	r.display.clear()

	r.dev.PokeRegister(SVGA_REG_ENABLE, 1)
	r.dev.PokeRegister(SVGA_REG_CONFIG_DONE, 1)
	r.dev.PokeRegister(SVGA_REG_ENABLE, 0)

	want := []bool{true, false, true}
	if len(r.display.tracking) != len(want) {
		t.Fatalf("Dirty tracking calls %v, want %v", r.display.tracking, want)
	}
	for i := range want {
		if r.display.tracking[i] != want[i] {
			t.Fatalf("Dirty tracking calls %v, want %v", r.display.tracking, want)
		}
	}
	if r.legacy.invalidates < 2 {
		t.Errorf("Legacy renderer invalidated %d times", r.legacy.invalidates)
	}
}

func TestSVGA_ConfigDonePublishesFIFOCapabilities(t *testing.T) {
	r := newTestRig(t)
	r.initFIFO()
	r.dev.fifo.SetWord(SVGA_FIFO_FLAGS, 0xFFFF)
	r.dev.PokeRegister(SVGA_REG_CONFIG_DONE, 1)

	if got := r.dev.fifo.Word(SVGA_FIFO_CAPABILITIES); got != SVGA_FIFO_CAPS_ADVERTISED {
		t.Errorf("FIFO capabilities = 0x%x", got)
	}
	if r.dev.fifo.Word(SVGA_FIFO_FLAGS) != 0 {
		t.Error("FIFO flags not cleared")
	}
}

func TestSVGA_EnableWithoutConfigUsesLegacyRenderer(t *testing.T) {
	r := newTestRig(t)
	r.initFIFO()
	r.dev.PokeRegister(SVGA_REG_ENABLE, 1)
	r.display.clear()

	r.dev.Refresh()

	if r.legacy.redraws != 1 {
		t.Fatalf("Legacy redraws = %d, want 1", r.legacy.redraws)
	}
	if len(r.display.resizes) != 0 || len(r.display.rects) != 0 || r.display.full != 0 {
		t.Fatalf("SVGA path used while unconfigured: %+v", r.display)
	}
	if r.dev.Enabled() {
		t.Error("Enabled() should be false without CONFIG_DONE")
	}

	r.dev.PokeRegister(SVGA_REG_CONFIG_DONE, 1)
	r.dev.Refresh()
	if r.legacy.redraws != 1 {
		t.Error("Legacy renderer used after configuration")
	}
	if len(r.display.resizes) != 1 || r.display.full != 1 {
		t.Errorf("Expected a resize and full redraw, got %+v", r.display)
	}
}

func TestSVGA_ModeChangeReportedOnRefresh(t *testing.T) {
	r := newTestRig(t)
	r.enable()

	var events []SVGAEvent
	r.dev.SetEventObserver(func(ev SVGAEvent) { events = append(events, ev) })

	r.dev.PokeRegister(SVGA_REG_WIDTH, 800)
	r.dev.PokeRegister(SVGA_REG_HEIGHT, 600)
	r.dev.Refresh()
	r.dev.Refresh()

	if len(r.display.resizes) != 1 {
		t.Fatalf("Expected one resize, got %d", len(r.display.resizes))
	}
	if got := r.display.resizes[0]; got.Width != 800 || got.Height != 600 || got.Stride != 3200 {
		t.Errorf("Resize %+v", got)
	}
	if len(events) != 1 || events[0].Kind != "mode" || events[0].Width != 800 {
		t.Errorf("Events %+v", events)
	}
}

// =============================================================================
// Cursor registers
// =============================================================================

func TestSVGA_CursorRegisters(t *testing.T) {
	r := newTestRig(t)
	r.dev.PokeRegister(SVGA_REG_CURSOR_X, 10)
	r.dev.PokeRegister(SVGA_REG_CURSOR_Y, 20)
	r.dev.PokeRegister(SVGA_REG_CURSOR_ON, SVGA_CURSOR_ON_SHOW)

	if !r.display.visible || r.display.cursorX != 10 || r.display.cursorY != 20 {
		t.Fatalf("Cursor not shown at 10,20: %+v", r.display)
	}

	r.dev.PokeRegister(SVGA_REG_CURSOR_ON, SVGA_CURSOR_ON_REMOVE_FROM_FB)
	if !r.display.visible || r.reg(SVGA_REG_CURSOR_ON) != 1 {
		t.Error("REMOVE_FROM_FB should not change visibility")
	}

	moves := r.display.moves
	r.dev.PokeRegister(SVGA_REG_CURSOR_ON, 7)
	if r.display.moves != moves || r.dev.Stats().Invalid != 1 {
		t.Error("Invalid CURSOR_ON value should be rejected")
	}

	r.dev.PokeRegister(SVGA_REG_CURSOR_ON, SVGA_CURSOR_ON_HIDE)
	if r.display.visible {
		t.Error("Cursor still visible after hide")
	}
}

func TestSVGA_CursorBypassFromFIFO(t *testing.T) {
	r := newTestRig(t)
	r.enable()
	f := r.dev.fifo
	f.SetWord(SVGA_FIFO_CURSOR_X, 33)
	f.SetWord(SVGA_FIFO_CURSOR_Y, 44)
	f.SetWord(SVGA_FIFO_CURSOR_ON, 1)

	r.dev.Refresh()
	if r.display.moves != 0 {
		t.Fatal("Cursor moved without a count change")
	}

	f.SetWord(SVGA_FIFO_CURSOR_COUNT, 1)
	r.dev.Refresh()
	if r.display.moves != 1 || r.display.cursorX != 33 || r.display.cursorY != 44 || !r.display.visible {
		t.Errorf("Bypass cursor not applied: %+v", r.display)
	}
	if r.reg(SVGA_REG_CURSOR_X) != 33 {
		t.Error("CURSOR_X register not updated from bypass")
	}
}

// =============================================================================
// Reset
// =============================================================================

func TestSVGA_ResetRestoresDefaults(t *testing.T) {
	r := newTestRig(t)
	r.enable()
	r.dev.PokeRegister(SVGA_REG_ID, SVGA_ID_1)
	r.dev.PokeRegister(SVGA_REG_WIDTH, 1024)
	r.dev.PokeRegister(SVGA_SCRATCH_BASE, 9)
	r.dev.PokeRegister(SVGA_REG_IRQMASK, 3)

	var kinds []string
	r.dev.SetEventObserver(func(ev SVGAEvent) { kinds = append(kinds, ev.Kind) })
	r.dev.Reset()

	if r.reg(SVGA_REG_ID) != SVGA_ID_2 || r.reg(SVGA_REG_WIDTH) != SVGA_DEFAULT_WIDTH {
		t.Error("Mode registers not reset")
	}
	if r.reg(SVGA_REG_ENABLE) != 0 || r.reg(SVGA_REG_CONFIG_DONE) != 0 {
		t.Error("Device still enabled after reset")
	}
	if r.reg(SVGA_SCRATCH_BASE) != 0 || r.reg(SVGA_REG_IRQMASK) != 0 {
		t.Error("Scratch or IRQ mask survived reset")
	}
	if len(kinds) != 1 || kinds[0] != "reset" {
		t.Errorf("Events %v", kinds)
	}
}
