// svga_fifo.go - Command FIFO ring buffer cursor

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
svga_fifo.go - SVGA Command FIFO

The FIFO is guest memory shared with the device. Its first words form a
header holding four byte offsets:

	MIN       start of the command area
	MAX       end of the command area (exclusive)
	NEXT_CMD  producer position, written by the guest
	STOP      consumer position, written by the device

The guest may rewrite any header word at any time, so every length and every
read re-validates the live header. A header that fails validation makes the
FIFO look empty; it is never an error.
*/

package main

import "encoding/binary"

// SVGAFifo is the ring buffer cursor over FIFO memory
type SVGAFifo struct {
	mem []byte
}

// fifoBounds is one validated view of the header offsets
type fifoBounds struct {
	min, max, next, stop uint32
}

func NewSVGAFifo(size int) *SVGAFifo {
	return &SVGAFifo{mem: make([]byte, size&^3)}
}

// Bytes exposes the backing memory for the guest memory window
func (f *SVGAFifo) Bytes() []byte {
	return f.mem
}

// Size returns the FIFO memory size in bytes
func (f *SVGAFifo) Size() int {
	return len(f.mem)
}

// Word reads a header or data word at a word index. Out of range reads as zero.
func (f *SVGAFifo) Word(slot int) uint32 {
	off := slot * 4
	if slot < 0 || off+4 > len(f.mem) {
		return 0
	}
	return binary.LittleEndian.Uint32(f.mem[off:])
}

// SetWord writes a word at a word index; out of range writes are dropped
func (f *SVGAFifo) SetWord(slot int, value uint32) {
	off := slot * 4
	if slot < 0 || off+4 > len(f.mem) {
		return
	}
	binary.LittleEndian.PutUint32(f.mem[off:], value)
}

// HasSlot reports whether a header slot lies below MIN, i.e. the guest
// reserved room for it ahead of the command area.
func (f *SVGAFifo) HasSlot(slot int) bool {
	lo := f.Word(SVGA_FIFO_MIN)
	return slot >= 0 && uint64(lo) > uint64(slot)*4 && (slot+1)*4 <= len(f.mem)
}

// bounds validates the live header. ok is false when any invariant fails.
func (f *SVGAFifo) bounds() (fifoBounds, bool) {
	if len(f.mem) < SVGA_FIFO_MIN_OFFSET {
		return fifoBounds{}, false
	}
	b := fifoBounds{
		min:  f.Word(SVGA_FIFO_MIN),
		max:  f.Word(SVGA_FIFO_MAX),
		next: f.Word(SVGA_FIFO_NEXT_CMD),
		stop: f.Word(SVGA_FIFO_STOP),
	}
	if (b.min|b.max|b.next|b.stop)&3 != 0 {
		return b, false
	}
	if b.min < SVGA_FIFO_MIN_OFFSET || uint64(b.max) > uint64(len(f.mem)) {
		return b, false
	}
	if b.min >= b.max || b.max-b.min < SVGA_FIFO_MIN_SPAN {
		return b, false
	}
	if b.stop < b.min || b.stop >= b.max || b.next < b.min || b.next >= b.max {
		return b, false
	}
	return b, true
}

// Ready reports whether the header currently describes a valid FIFO
func (f *SVGAFifo) Ready() bool {
	_, ok := f.bounds()
	return ok
}

// Length returns the number of pending words, or 0 for an invalid header
func (f *SVGAFifo) Length() int {
	b, ok := f.bounds()
	if !ok {
		return 0
	}
	span := b.max - b.min
	pending := (b.next + span - b.stop) % span
	return int(pending / 4)
}

// Capacity returns the command area size in words, or 0 for an invalid header
func (f *SVGAFifo) Capacity() int {
	b, ok := f.bounds()
	if !ok {
		return 0
	}
	return int((b.max - b.min) / 4)
}

// Stop returns the consumer offset as currently stored in the header
func (f *SVGAFifo) Stop() uint32 {
	return f.Word(SVGA_FIFO_STOP)
}

// ReadWord consumes one word at STOP and persists the advanced position
// immediately. ok is false, and nothing moves, if the header is invalid.
func (f *SVGAFifo) ReadWord() (uint32, bool) {
	b, ok := f.bounds()
	if !ok {
		return 0, false
	}
	value := binary.LittleEndian.Uint32(f.mem[b.stop:])
	stop := b.stop + 4
	if stop >= b.max {
		stop = b.min
	}
	f.SetWord(SVGA_FIFO_STOP, stop)
	return value, true
}

// Rewind restores STOP to the start of a partially decoded command
func (f *SVGAFifo) Rewind(stop uint32) {
	f.SetWord(SVGA_FIFO_STOP, stop)
}
