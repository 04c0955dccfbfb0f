// svga_regs.go - SVGA register bank

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

// readRegister returns the value of the latched register. Derived registers
// are computed from current state on every read.
func (d *SVGADevice) readRegister(index uint32) uint32 {
	switch index {
	case SVGA_REG_ID:
		return d.svgaID
	case SVGA_REG_ENABLE:
		return boolToU32(d.enable)
	case SVGA_REG_WIDTH, SVGA_REG_DISPLAY_WIDTH:
		return uint32(d.width)
	case SVGA_REG_HEIGHT, SVGA_REG_DISPLAY_HEIGHT:
		return uint32(d.height)
	case SVGA_REG_MAX_WIDTH:
		return uint32(d.cfg.MaxWidth)
	case SVGA_REG_MAX_HEIGHT:
		return uint32(d.cfg.MaxHeight)
	case SVGA_REG_DEPTH:
		if d.bpp == 32 {
			return 24
		}
		return uint32(d.bpp)
	case SVGA_REG_BITS_PER_PIXEL:
		return uint32(d.bpp)
	case SVGA_REG_PSEUDOCOLOR:
		return boolToU32(d.bpp == 8)
	case SVGA_REG_RED_MASK, SVGA_REG_GREEN_MASK, SVGA_REG_BLUE_MASK:
		return pixelMask(d.bpp, index)
	case SVGA_REG_BYTES_PER_LINE:
		return uint32(d.bytesPerLine())
	case SVGA_REG_FB_START:
		return d.cfg.FBStart
	case SVGA_REG_FB_OFFSET:
		return 0
	case SVGA_REG_VRAM_SIZE, SVGA_REG_MEMORY_SIZE:
		return uint32(len(d.vram))
	case SVGA_REG_FB_SIZE:
		return uint32(d.bytesPerLine() * d.height)
	case SVGA_REG_CAPABILITIES:
		return SVGA_CAPABILITIES
	case SVGA_REG_CAP2:
		return SVGA_CAP2_NONE
	case SVGA_REG_MEM_START:
		return d.cfg.FIFOStart
	case SVGA_REG_MEM_SIZE:
		return uint32(d.fifo.Size())
	case SVGA_REG_CONFIG_DONE:
		return boolToU32(d.config)
	case SVGA_REG_SYNC:
		return boolToU32(d.syncing)
	case SVGA_REG_BUSY:
		if d.syncing {
			d.runFIFO()
		}
		return boolToU32(d.syncing)
	case SVGA_REG_GUEST_ID:
		return d.guestID
	case SVGA_REG_CURSOR_ID:
		return d.cursorID
	case SVGA_REG_CURSOR_X:
		return d.cursorX
	case SVGA_REG_CURSOR_Y:
		return d.cursorY
	case SVGA_REG_CURSOR_ON:
		return boolToU32(d.cursorOn)
	case SVGA_REG_HOST_BITS_PER_PIXEL:
		return SVGA_HOST_BPP
	case SVGA_REG_SCRATCH_SIZE:
		return uint32(d.scratch.Cap())
	case SVGA_REG_MEM_REGS:
		return SVGA_FIFO_NUM_REGS
	case SVGA_REG_NUM_DISPLAYS, SVGA_REG_NUM_GUEST_DISPLAYS:
		return SVGA_NUM_DISPLAYS
	case SVGA_REG_PITCHLOCK:
		return d.pitchlock
	case SVGA_REG_IRQMASK:
		return d.irq.Mask()
	case SVGA_REG_DISPLAY_ID:
		return d.displayID
	case SVGA_REG_DISPLAY_IS_PRIMARY:
		return boolToU32(d.displayID == 0)
	case SVGA_REG_DISPLAY_POSITION_X, SVGA_REG_DISPLAY_POSITION_Y:
		return 0
	case SVGA_REG_GMR_ID, SVGA_REG_GMR_DESCRIPTOR:
		return 0
	case SVGA_REG_GMR_MAX_IDS:
		return SVGA_GMR_MAX_IDS
	case SVGA_REG_GMR_MAX_DESCRIPTOR_LENGTH:
		return SVGA_GMR_MAX_DESCRIPTOR_LEN
	case SVGA_REG_GMRS_MAX_PAGES:
		return SVGA_GMRS_MAX_PAGES
	case SVGA_REG_TRACES:
		return d.traces
	}

	if v, ok := d.bankRead(index); ok {
		return v
	}
	d.logf("bad register read %d", index)
	return 0
}

// bankRead serves the palette and scratch blocks
func (d *SVGADevice) bankRead(index uint32) (uint32, bool) {
	if index >= SVGA_PALETTE_BASE && index < SVGA_PALETTE_BASE+SVGA_NUM_PALETTE_REG {
		return d.palette.Get(int(index - SVGA_PALETTE_BASE))
	}
	if index >= SVGA_SCRATCH_BASE {
		return d.scratch.Get(int(index - SVGA_SCRATCH_BASE))
	}
	return 0, false
}

func (d *SVGADevice) bankWrite(index, value uint32) bool {
	if index >= SVGA_PALETTE_BASE && index < SVGA_PALETTE_BASE+SVGA_NUM_PALETTE_REG {
		return d.palette.Set(int(index-SVGA_PALETTE_BASE), value) == nil
	}
	if index >= SVGA_SCRATCH_BASE {
		return d.scratch.Set(int(index-SVGA_SCRATCH_BASE), value) == nil
	}
	return false
}

// writeRegister applies a guest write to the latched register. Invalid
// values leave state untouched.
func (d *SVGADevice) writeRegister(index, value uint32) {
	switch index {
	case SVGA_REG_ID:
		if value < SVGA_ID_0 || value > SVGA_ID_2 {
			d.reject("id", value)
			return
		}
		d.svgaID = value

	case SVGA_REG_ENABLE:
		d.enable = value != 0
		d.invalidate()
		d.legacy.Invalidate()
		d.display.SetDirtyTracking(!(d.enable && d.config))

	case SVGA_REG_WIDTH:
		if value < 1 || value > uint32(d.cfg.MaxWidth) {
			d.reject("width", value)
			return
		}
		d.width = int(value)
		if d.pitchlockCount > 0 {
			d.pitchlockCount--
		}
		d.invalidate()

	case SVGA_REG_HEIGHT:
		if value < 1 || value > uint32(d.cfg.MaxHeight) {
			d.reject("height", value)
			return
		}
		d.height = int(value)
		d.invalidate()

	case SVGA_REG_BITS_PER_PIXEL:
		switch value {
		case 8, 16, 24, 32:
			d.bpp = int(value)
			d.invalidate()
		default:
			d.reject("bits per pixel", value)
		}

	case SVGA_REG_CONFIG_DONE:
		d.config = value != 0
		if d.config {
			d.display.SetDirtyTracking(false)
			if d.fifo.HasSlot(SVGA_FIFO_CAPABILITIES) {
				d.fifo.SetWord(SVGA_FIFO_CAPABILITIES, SVGA_FIFO_CAPS_ADVERTISED)
			}
			if d.fifo.HasSlot(SVGA_FIFO_FLAGS) {
				d.fifo.SetWord(SVGA_FIFO_FLAGS, 0)
			}
		}

	case SVGA_REG_SYNC:
		d.syncing = true
		d.runFIFO()

	case SVGA_REG_GUEST_ID:
		d.guestID = value

	case SVGA_REG_CURSOR_ID:
		d.cursorID = value
	case SVGA_REG_CURSOR_X:
		d.cursorX = value
	case SVGA_REG_CURSOR_Y:
		d.cursorY = value
	case SVGA_REG_CURSOR_ON:
		switch value {
		case SVGA_CURSOR_ON_HIDE:
			d.cursorOn = false
		case SVGA_CURSOR_ON_SHOW:
			d.cursorOn = true
		case SVGA_CURSOR_ON_REMOVE_FROM_FB, SVGA_CURSOR_ON_RESTORE_TO_FB:
		default:
			d.reject("cursor on", value)
			return
		}
		d.display.MoveCursor(int(d.cursorX), int(d.cursorY), d.cursorOn)

	case SVGA_REG_PITCHLOCK:
		d.pitchlock = value
		if value == 0 {
			d.pitchlockCount = 0
		} else {
			d.pitchlockCount = 1
		}
		d.invalidate()

	case SVGA_REG_IRQMASK:
		d.irq.SetMask(value)

	case SVGA_REG_DISPLAY_ID:
		d.displayID = value

	case SVGA_REG_DISPLAY_IS_PRIMARY, SVGA_REG_DISPLAY_POSITION_X, SVGA_REG_DISPLAY_POSITION_Y,
		SVGA_REG_DISPLAY_WIDTH, SVGA_REG_DISPLAY_HEIGHT, SVGA_REG_NUM_GUEST_DISPLAYS:
		// Single fixed display; topology writes are accepted and ignored

	case SVGA_REG_GMR_ID, SVGA_REG_GMR_DESCRIPTOR:
		d.logOnce("gmr-reg", "guest memory regions are not supported (register %d)", index)

	case SVGA_REG_TRACES:
		d.traces = value

	case SVGA_REG_MAX_WIDTH, SVGA_REG_MAX_HEIGHT, SVGA_REG_DEPTH, SVGA_REG_PSEUDOCOLOR,
		SVGA_REG_RED_MASK, SVGA_REG_GREEN_MASK, SVGA_REG_BLUE_MASK, SVGA_REG_BYTES_PER_LINE,
		SVGA_REG_FB_START, SVGA_REG_FB_OFFSET, SVGA_REG_VRAM_SIZE, SVGA_REG_FB_SIZE,
		SVGA_REG_CAPABILITIES, SVGA_REG_CAP2, SVGA_REG_MEM_START, SVGA_REG_MEM_SIZE,
		SVGA_REG_BUSY, SVGA_REG_HOST_BITS_PER_PIXEL, SVGA_REG_SCRATCH_SIZE, SVGA_REG_MEM_REGS,
		SVGA_REG_NUM_DISPLAYS, SVGA_REG_GMR_MAX_IDS, SVGA_REG_GMR_MAX_DESCRIPTOR_LENGTH,
		SVGA_REG_GMRS_MAX_PAGES, SVGA_REG_MEMORY_SIZE:
		d.logf("write to read-only register %d ignored (value 0x%x)", index, value)

	default:
		if !d.bankWrite(index, value) {
			d.logf("bad register write %d = 0x%x", index, value)
		}
	}
}

func (d *SVGADevice) reject(name string, value uint32) {
	d.stats.Invalid++
	d.logf("rejected %s write 0x%x", name, value)
}

// pixelMask returns the colour channel mask for a guest depth
func pixelMask(bpp int, index uint32) uint32 {
	var r, g, b uint32
	switch bpp {
	case 24, 32:
		r, g, b = 0xff0000, 0x00ff00, 0x0000ff
	case 16:
		r, g, b = 0xf800, 0x07e0, 0x001f
	}
	switch index {
	case SVGA_REG_RED_MASK:
		return r
	case SVGA_REG_GREEN_MASK:
		return g
	}
	return b
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
