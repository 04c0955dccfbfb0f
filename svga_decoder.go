// svga_decoder.go - SVGA FIFO command decoder

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
svga_decoder.go - Command FIFO Decoder

Commands are a 32-bit opcode followed by argument words. Each decode step
either applies a command, skips a recognized or unknown command, or rewinds
STOP to the command start when the guest has not finished writing it yet.
The outer loop drains at most SVGA_FIFO_MAX_LOOP commands per call so a
busy guest cannot hold the device lock indefinitely.

Guest-supplied payload sizes are checked against the FIFO capacity before
anything is consumed. A payload that could never fit is treated as absent
and only the fixed part of the command is consumed.
*/

package main

import "strconv"

type decodeResult int

const (
	decodeApplied decodeResult = iota
	decodeRewound
	decodeSkipped
)

// runFIFO drains pending commands when the device is enabled and configured
func (d *SVGADevice) runFIFO() {
	if !d.enable || !d.config {
		return
	}

	var events uint32
	progressed := false

drain:
	for i := 0; i < SVGA_FIFO_MAX_LOOP && d.fifo.Length() > 0; i++ {
		start := d.fifo.Stop()
		switch d.decodeStep(&events) {
		case decodeRewound:
			d.fifo.Rewind(start)
			d.stats.Rewinds++
			break drain
		case decodeApplied:
			d.stats.Commands++
		case decodeSkipped:
			d.stats.Skipped++
		}
		if d.fifo.Stop() != start {
			progressed = true
		}
	}

	if progressed && d.irq.Masked(SVGA_IRQFLAG_FIFO_PROGRESS) {
		events |= SVGA_IRQFLAG_FIFO_PROGRESS
	}
	d.syncing = d.fifo.Length() > 0

	if events != 0 {
		d.irq.Post(events)
		d.emit(SVGAEvent{Kind: "irq", Value: d.irq.Status()})
	}
}

// need reports whether n more words are buffered. The live header is
// consulted each time since the guest may still be writing.
func (d *SVGADevice) need(n uint64) bool {
	return uint64(d.fifo.Length()) >= n
}

// args consumes n words into the staging buffer
func (d *SVGADevice) args(n int) ([]uint32, bool) {
	if cap(d.words) < n {
		d.words = make([]uint32, n)
	}
	buf := d.words[:n]
	for i := range buf {
		v, ok := d.fifo.ReadWord()
		if !ok {
			return nil, false
		}
		buf[i] = v
	}
	return buf, true
}

// skip discards n words
func (d *SVGADevice) skip(n uint64) bool {
	for ; n > 0; n-- {
		if _, ok := d.fifo.ReadWord(); !ok {
			return false
		}
	}
	return true
}

// fits reports whether a command of one opcode word, fixed argument words
// and payload words can ever be buffered whole. The ring holds at most
// Capacity()-1 words since NEXT_CMD == STOP means empty.
func (d *SVGADevice) fits(fixed int, payload uint64) bool {
	capacity := uint64(d.fifo.Capacity())
	return capacity > 0 && 1+uint64(fixed)+payload < capacity
}

// skipPayload consumes a variable payload of a command that is not applied.
// Commands that can never be buffered whole keep only their consumed
// opcode and fixed words.
func (d *SVGADevice) skipPayload(cmd uint32, fixed int, payload uint64) decodeResult {
	if !d.fits(fixed, payload) {
		d.logf("command %d payload of %d words exceeds fifo, skipping header only", cmd, payload)
		return decodeSkipped
	}
	if !d.need(payload) {
		return decodeRewound
	}
	if !d.skip(payload) {
		return decodeRewound
	}
	return decodeSkipped
}

func (d *SVGADevice) decodeStep(events *uint32) decodeResult {
	cmd, ok := d.fifo.ReadWord()
	if !ok {
		return decodeRewound
	}

	switch cmd {
	case SVGA_CMD_UPDATE, SVGA_CMD_UPDATE_VERBOSE:
		a, ok := d.fixed(cmd)
		if !ok {
			return decodeRewound
		}
		if err := d.rect.Update(a[0], a[1], a[2], a[3]); err != nil {
			d.stats.Invalid++
			d.invalidate()
		}
		return decodeApplied

	case SVGA_CMD_RECT_FILL:
		a, ok := d.fixed(cmd)
		if !ok {
			return decodeRewound
		}
		if err := d.rect.Fill(a[0], a[1], a[2], a[3], a[4]); err != nil {
			d.stats.Invalid++
			d.invalidate()
		}
		return decodeApplied

	case SVGA_CMD_RECT_COPY:
		a, ok := d.fixed(cmd)
		if !ok {
			return decodeRewound
		}
		if err := d.rect.Copy(a[0], a[1], a[2], a[3], a[4], a[5]); err != nil {
			d.stats.Invalid++
			d.logf("rect copy %dx%d from (%d,%d) to (%d,%d) failed: %v", a[4], a[5], a[0], a[1], a[2], a[3], err)
			d.invalidate()
			return decodeSkipped
		}
		return decodeApplied

	case SVGA_CMD_DEFINE_CURSOR:
		return d.decodeCursor()

	case SVGA_CMD_DEFINE_ALPHA_CURSOR:
		return d.decodeAlphaCursor()

	case SVGA_CMD_FENCE:
		a, ok := d.fixed(cmd)
		if !ok {
			return decodeRewound
		}
		d.fence(a[0], events)
		return decodeApplied

	case SVGA_CMD_ESCAPE:
		if !d.need(2) {
			return decodeRewound
		}
		a, ok := d.args(2)
		if !ok {
			return decodeRewound
		}
		d.logOnce("cmd-escape", "escape commands are not supported (namespace 0x%x)", a[0])
		return d.skipPayload(cmd, 2, (uint64(a[1])+3)/4)

	case SVGA_CMD_DEFINE_SCREEN:
		if !d.need(1) {
			return decodeRewound
		}
		a, ok := d.args(1)
		if !ok {
			return decodeRewound
		}
		d.logOnce("cmd-screen", "screen objects are not supported")
		// The size word counts itself
		words := (uint64(a[0]) + 3) / 4
		if words > 0 {
			words--
		}
		return d.skipPayload(cmd, 1, words)

	case SVGA_CMD_DRAW_GLYPH_CLIPPED:
		if !d.need(3) {
			return decodeRewound
		}
		a, ok := d.args(3)
		if !ok {
			return decodeRewound
		}
		d.logOnce("cmd-glyph", "clipped glyph drawing is not supported")
		return d.skipPayload(cmd, 3, 7+uint64(a[2]>>2))

	case SVGA_CMD_REMAP_GMR2:
		if !d.need(4) {
			return decodeRewound
		}
		a, ok := d.args(4)
		if !ok {
			return decodeRewound
		}
		d.logOnce("cmd-gmr", "guest memory regions are not supported")
		return d.skipPayload(cmd, 4, remapGMR2Payload(a[1], a[3]))
	}

	if cmd >= SVGA_3D_CMD_BASE && cmd < SVGA_3D_CMD_MAX {
		if !d.need(1) {
			return decodeRewound
		}
		a, ok := d.args(1)
		if !ok {
			return decodeRewound
		}
		d.logOnce("cmd-3d", "3d command %d ignored", cmd)
		return d.skipPayload(cmd, 1, (uint64(a[0])+3)/4)
	}

	if n, known := svgaFixedArgs[cmd]; known {
		if !d.need(uint64(n)) {
			return decodeRewound
		}
		if !d.skip(uint64(n)) {
			return decodeRewound
		}
		switch cmd {
		case SVGA_CMD_INVALID_CMD, SVGA_CMD_NOP, SVGA_CMD_NOP_ERROR, SVGA_CMD_DEAD, SVGA_CMD_DEAD_2:
		default:
			d.logOnce(cmdKey(cmd), "command %d recognized but not implemented", cmd)
		}
		return decodeSkipped
	}

	// Argument length unknown: only the opcode word is consumed
	d.logOnce(cmdKey(cmd), "unknown command %d", cmd)
	return decodeSkipped
}

// fixed consumes the arguments of a fixed-length command
func (d *SVGADevice) fixed(cmd uint32) ([]uint32, bool) {
	n := svgaFixedArgs[cmd]
	if !d.need(uint64(n)) {
		return nil, false
	}
	return d.args(n)
}

func (d *SVGADevice) fence(value uint32, events *uint32) {
	d.stats.Fences++
	if d.fifo.HasSlot(SVGA_FIFO_FENCE) {
		d.fifo.SetWord(SVGA_FIFO_FENCE, value)
	}
	if d.irq.Masked(SVGA_IRQFLAG_ANY_FENCE) {
		*events |= SVGA_IRQFLAG_ANY_FENCE
	}
	if d.irq.Masked(SVGA_IRQFLAG_FENCE_GOAL) && d.fifo.HasSlot(SVGA_FIFO_FENCE_GOAL) &&
		d.fifo.Word(SVGA_FIFO_FENCE_GOAL) == value {
		*events |= SVGA_IRQFLAG_FENCE_GOAL
	}
	d.emit(SVGAEvent{Kind: "fence", Value: value})
}

// decodeCursor handles DEFINE_CURSOR. Geometry is validated before either
// mask buffer is touched.
func (d *SVGADevice) decodeCursor() decodeResult {
	if !d.need(7) {
		return decodeRewound
	}
	a, ok := d.args(7)
	if !ok {
		return decodeRewound
	}
	id, hotX, hotY, w, h, andBPP, xorBPP := a[0], a[1], a[2], a[3], a[4], a[5], a[6]

	if !cursorDefValid(w, h, andBPP, xorBPP) {
		d.stats.Invalid++
		d.logf("rejected cursor %dx%d and=%dbpp xor=%dbpp", w, h, andBPP, xorBPP)
		if w > 0xffff || h > 0xffff || andBPP > SVGA_CURSOR_MAX_BPP || xorBPP > SVGA_CURSOR_MAX_BPP {
			return decodeSkipped
		}
		return d.skipPayload(SVGA_CMD_DEFINE_CURSOR, 7, cursorMaskWords(w, h, andBPP)+cursorMaskWords(w, h, xorBPP))
	}

	andWords := int(cursorMaskWords(w, h, andBPP))
	xorWords := int(cursorMaskWords(w, h, xorBPP))
	if !d.fits(7, uint64(andWords+xorWords)) {
		return d.skipPayload(SVGA_CMD_DEFINE_CURSOR, 7, uint64(andWords+xorWords))
	}
	if !d.need(uint64(andWords + xorWords)) {
		return decodeRewound
	}
	payload, ok := d.args(andWords + xorWords)
	if !ok {
		return decodeRewound
	}
	if d.andMask.Write(0, payload[:andWords]) != nil || d.xorMask.Write(0, payload[andWords:]) != nil {
		return decodeSkipped
	}
	andMask, _ := d.andMask.View(0, andWords)
	xorMask, _ := d.xorMask.View(0, xorWords)

	img, ok := BuildCursor(CursorDef{
		ID: id, HotX: hotX, HotY: hotY, Width: w, Height: h,
		AndBPP: andBPP, XorBPP: xorBPP, And: andMask, Xor: xorMask,
	})
	if !ok {
		d.logOnce("cursor-format", "unsupported cursor format and=%dbpp xor=%dbpp, using default pointer", andBPP, xorBPP)
	}
	d.cursorID = id
	d.display.DefineCursor(img)
	return decodeApplied
}

// decodeAlphaCursor handles DEFINE_ALPHA_CURSOR
func (d *SVGADevice) decodeAlphaCursor() decodeResult {
	if !d.need(5) {
		return decodeRewound
	}
	a, ok := d.args(5)
	if !ok {
		return decodeRewound
	}
	id, hotX, hotY, w, h := a[0], a[1], a[2], a[3], a[4]

	if w > SVGA_CURSOR_MAX_DIM || h > SVGA_CURSOR_MAX_DIM {
		d.stats.Invalid++
		d.logf("rejected alpha cursor %dx%d", w, h)
		if w > 0xffff || h > 0xffff {
			return decodeSkipped
		}
		return d.skipPayload(SVGA_CMD_DEFINE_ALPHA_CURSOR, 5, uint64(w)*uint64(h))
	}

	n := int(w * h)
	if !d.fits(5, uint64(n)) {
		return d.skipPayload(SVGA_CMD_DEFINE_ALPHA_CURSOR, 5, uint64(n))
	}
	if !d.need(uint64(n)) {
		return decodeRewound
	}
	pixels, ok := d.args(n)
	if !ok {
		return decodeRewound
	}
	d.cursorID = id
	d.display.DefineCursor(BuildAlphaCursor(AlphaCursorDef{
		ID: id, HotX: hotX, HotY: hotY, Width: w, Height: h, Pixels: pixels,
	}))
	return decodeApplied
}

// remapGMR2Payload returns the page list length of a REMAP_GMR2 command
func remapGMR2Payload(flags, numPages uint32) uint64 {
	var words uint64
	switch {
	case flags&SVGA_REMAP_GMR2_VIA_GMR != 0:
		// gmrId and offset, whatever the page number width
		return 2
	case flags&SVGA_REMAP_GMR2_SINGLE_PPN != 0:
		words = 1
	default:
		words = uint64(numPages)
	}
	if flags&SVGA_REMAP_GMR2_PPN64 != 0 {
		words *= 2
	}
	return words
}

func cmdKey(cmd uint32) string {
	return "cmd-" + strconv.FormatUint(uint64(cmd), 10)
}
