// svga_bounded.go - Fixed-capacity word buffers for guest-sized data

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

import "fmt"

// BoundedWords is a fixed-capacity word array used wherever a guest-supplied
// offset or length selects the storage: cursor masks, scratch registers and
// the palette block. Every access is range checked; nothing indexes the
// backing slice directly.
type BoundedWords struct {
	words []uint32
}

// BoundsError reports an access outside a BoundedWords buffer
type BoundsError struct {
	Offset   int
	Length   int
	Capacity int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("range [%d,+%d) outside capacity %d", e.Offset, e.Length, e.Capacity)
}

func NewBoundedWords(capacity int) *BoundedWords {
	if capacity < 0 {
		capacity = 0
	}
	return &BoundedWords{words: make([]uint32, capacity)}
}

// Cap returns the fixed capacity in words
func (b *BoundedWords) Cap() int {
	return len(b.words)
}

// Fits reports whether length words starting at offset lie inside the buffer.
// Lengths are taken as uint64 so guest-derived sizes cannot wrap.
func (b *BoundedWords) Fits(offset int, length uint64) bool {
	if offset < 0 || offset > len(b.words) {
		return false
	}
	return length <= uint64(len(b.words)-offset)
}

func (b *BoundedWords) check(offset, length int) error {
	if length < 0 || !b.Fits(offset, uint64(length)) {
		return &BoundsError{Offset: offset, Length: length, Capacity: len(b.words)}
	}
	return nil
}

// Set stores one word
func (b *BoundedWords) Set(offset int, value uint32) error {
	if err := b.check(offset, 1); err != nil {
		return err
	}
	b.words[offset] = value
	return nil
}

// Get loads one word; ok is false outside the buffer
func (b *BoundedWords) Get(offset int) (uint32, bool) {
	if b.check(offset, 1) != nil {
		return 0, false
	}
	return b.words[offset], true
}

// Write copies src into the buffer at offset. Nothing is written unless the
// whole range fits.
func (b *BoundedWords) Write(offset int, src []uint32) error {
	if err := b.check(offset, len(src)); err != nil {
		return err
	}
	copy(b.words[offset:], src)
	return nil
}

// View returns a read-only window of length words
func (b *BoundedWords) View(offset, length int) ([]uint32, error) {
	if err := b.check(offset, length); err != nil {
		return nil, err
	}
	return b.words[offset : offset+length : offset+length], nil
}

// Clear zeroes the buffer
func (b *BoundedWords) Clear() {
	clear(b.words)
}

// Snapshot returns a copy of the whole buffer
func (b *BoundedWords) Snapshot() []uint32 {
	out := make([]uint32, len(b.words))
	copy(out, b.words)
	return out
}
