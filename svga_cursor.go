// svga_cursor.go - Hardware cursor image construction

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
)

// CursorDef is a validated DEFINE_CURSOR payload
type CursorDef struct {
	ID     uint32
	HotX   uint32
	HotY   uint32
	Width  uint32
	Height uint32
	AndBPP uint32
	XorBPP uint32
	And    []uint32
	Xor    []uint32
}

// AlphaCursorDef is a validated DEFINE_ALPHA_CURSOR payload. Pixels holds
// one packed ARGB word per pixel, row-major.
type AlphaCursorDef struct {
	ID     uint32
	HotX   uint32
	HotY   uint32
	Width  uint32
	Height uint32
	Pixels []uint32
}

// CursorImage is the normalized cursor handed to the display sink
type CursorImage struct {
	Image   *image.RGBA
	HotX    int
	HotY    int
	Default bool // Built-in pointer substituted for an unsupported format
}

// cursorMaskWords returns the number of words a mask of the given geometry
// occupies. Rows are padded to a whole word.
func cursorMaskWords(width, height, bpp uint32) uint64 {
	return (uint64(width)*uint64(bpp) + 31) / 32 * uint64(height)
}

// cursorDefValid reports whether a declared cursor fits the mask buffers
func cursorDefValid(width, height, andBPP, xorBPP uint32) bool {
	if width > SVGA_CURSOR_MAX_DIM || height > SVGA_CURSOR_MAX_DIM {
		return false
	}
	if andBPP < 1 || andBPP > SVGA_CURSOR_MAX_BPP || xorBPP < 1 || xorBPP > SVGA_CURSOR_MAX_BPP {
		return false
	}
	return cursorMaskWords(width, height, andBPP) <= SVGA_CURSOR_MASK_WORDS &&
		cursorMaskWords(width, height, xorBPP) <= SVGA_CURSOR_MASK_WORDS
}

// maskBit extracts a 1bpp mask bit. Each word holds four bytes in little
// endian order and bits run MSB first within a byte.
func maskBit(mask []uint32, rowWords int, x, y int) bool {
	b := x / 8
	idx := y*rowWords + b/4
	if idx >= len(mask) {
		return false
	}
	byteVal := byte(mask[idx] >> (uint(b%4) * 8))
	return byteVal&(0x80>>uint(x%8)) != 0
}

var (
	cursorWhite = color.RGBA{0xff, 0xff, 0xff, 0xff}
	cursorBlack = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// BuildCursor composes a cursor from AND/XOR masks. Unsupported depth
// combinations fall back to the built-in pointer and report false.
func BuildCursor(def CursorDef) (CursorImage, bool) {
	w, h := int(def.Width), int(def.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	out := CursorImage{Image: img, HotX: int(def.HotX), HotY: int(def.HotY)}
	andRow := int((def.Width*def.AndBPP + 31) / 32)
	xorRow := int((def.Width*def.XorBPP + 31) / 32)

	switch {
	case def.AndBPP == 1 && def.XorBPP == 1:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if maskBit(def.And, andRow, x, y) {
					continue
				}
				if maskBit(def.Xor, xorRow, x, y) {
					img.SetRGBA(x, y, cursorWhite)
				} else {
					img.SetRGBA(x, y, cursorBlack)
				}
			}
		}
	case def.AndBPP == 1 && def.XorBPP == 32:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if maskBit(def.And, andRow, x, y) {
					continue
				}
				idx := y*xorRow + x
				if idx >= len(def.Xor) {
					continue
				}
				v := def.Xor[idx]
				img.SetRGBA(x, y, color.RGBA{byte(v >> 16), byte(v >> 8), byte(v), 0xff})
			}
		}
	default:
		return DefaultCursor(), false
	}
	return out, true
}

// BuildAlphaCursor converts packed ARGB pixels. Any non-zero alpha is
// treated as fully opaque since the display sink does not blend cursors.
func BuildAlphaCursor(def AlphaCursorDef) CursorImage {
	w, h := int(def.Width), int(def.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if idx >= len(def.Pixels) {
				break
			}
			v := def.Pixels[idx]
			if v>>24 == 0 {
				continue
			}
			img.SetRGBA(x, y, color.RGBA{byte(v >> 16), byte(v >> 8), byte(v), 0xff})
		}
	}
	return CursorImage{Image: img, HotX: int(def.HotX), HotY: int(def.HotY)}
}

// Built-in arrow pointer. 'X' is outline, '.' is fill.
var defaultCursorArt = [...]string{
	"X           ",
	"XX          ",
	"X.X         ",
	"X..X        ",
	"X...X       ",
	"X....X      ",
	"X.....X     ",
	"X......X    ",
	"X.......X   ",
	"X........X  ",
	"X.....XXXXX ",
	"X..X..X     ",
	"X.X X..X    ",
	"XX  X..X    ",
	"X    X..X   ",
	"     X..X   ",
	"      XX    ",
}

func DefaultCursor() CursorImage {
	h := len(defaultCursorArt)
	w := len(defaultCursorArt[0])
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, line := range defaultCursorArt {
		for x, c := range line {
			switch c {
			case 'X':
				img.SetRGBA(x, y, cursorBlack)
			case '.':
				img.SetRGBA(x, y, cursorWhite)
			}
		}
	}
	return CursorImage{Image: img, Default: true}
}
