// png2cursor.go - Convert a PNG into a Lua alpha cursor definition

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

// Usage: go run png2cursor.go pointer.png --hot-x 1 --hot-y 1 > cursor.lua
//
// The output pushes one DEFINE_ALPHA_CURSOR command through svga.fifo_push
// and can be pasted into, or dofile'd from, a guest driver script.

package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/alecthomas/kong"
	xdraw "golang.org/x/image/draw"
)

const wordsPerLine = 8

type cliArgs struct {
	Input    string `arg:"" type:"existingfile" help:"PNG cursor image."`
	ID       uint32 `name:"id" default:"1" help:"Cursor id."`
	HotX     uint32 `name:"hot-x" help:"Hotspot column."`
	HotY     uint32 `name:"hot-y" help:"Hotspot row."`
	MaxSize  int    `name:"max-size" default:"64" help:"Scale larger images down to fit this square."`
	KeyBlack bool   `name:"key-black" help:"Treat near-black pixels as transparent."`
}

func main() {
	var args cliArgs
	kong.Parse(&args, kong.Name("png2cursor"), kong.Description("Convert a PNG into a Lua alpha cursor definition."))

	f, err := os.Open(args.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, err := loadCursorImage(f, args.MaxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding PNG: %v\n", err)
		os.Exit(1)
	}
	b := img.Bounds()
	fmt.Fprintf(os.Stderr, "Cursor size: %dx%d\n", b.Dx(), b.Dy())

	if err := writeCursorLua(os.Stdout, args.ID, args.HotX, args.HotY, img, cursorPixels(img, args.KeyBlack)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// loadCursorImage decodes a PNG into RGBA, scaling it to fit maxSize
func loadCursorImage(r io.Reader, maxSize int) (*image.RGBA, error) {
	src, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			w, h = maxSize, max(1, h*maxSize/w)
		} else {
			w, h = max(1, w*maxSize/h), maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
		return dst, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return rgba, nil
}

// cursorPixels packs each pixel as ARGB, row-major
func cursorPixels(img *image.RGBA, keyBlack bool) []uint32 {
	b := img.Bounds()
	out := make([]uint32, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if keyBlack && c.R < 16 && c.G < 16 && c.B < 16 {
				c.A = 0
			}
			out = append(out, uint32(c.A)<<24|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
		}
	}
	return out
}

func writeCursorLua(w io.Writer, id, hotX, hotY uint32, img *image.RGBA, pixels []uint32) error {
	b := img.Bounds()
	if _, err := fmt.Fprintf(w, "svga.fifo_push(svga.CMD_DEFINE_ALPHA_CURSOR, %d, %d, %d, %d, %d)\n",
		id, hotX, hotY, b.Dx(), b.Dy()); err != nil {
		return err
	}
	for i := 0; i < len(pixels); i += wordsPerLine {
		end := min(i+wordsPerLine, len(pixels))
		line := "svga.fifo_push("
		for j, p := range pixels[i:end] {
			if j > 0 {
				line += ", "
			}
			line += fmt.Sprintf("0x%08x", p)
		}
		if _, err := fmt.Fprintln(w, line+")"); err != nil {
			return err
		}
	}
	return nil
}
