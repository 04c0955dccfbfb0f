// component_reset.go - Machine-wide reset

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
	"image"
)

// LegacyConsole.Reset restores the power-on text screen
func (c *LegacyConsole) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attr = LEGACY_DEFAULT_ATTR
	c.clearLocked()
}

// FrameDisplay.Reset blanks the frame and restores the default cursor.
// The surface binding is kept; the device rebinds it on its next refresh.
func (d *FrameDisplay) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = image.NewRGBA(image.Rect(0, 0, SVGA_DEFAULT_WIDTH, SVGA_DEFAULT_HEIGHT))
	d.desc = SurfaceDesc{}
	d.fb = nil
	d.dirty = true
	d.dirtyTracking = true
	d.cursor = DefaultCursor()
	d.cursorX, d.cursorY = 0, 0
	d.cursorVisible = false
	d.cursorDirty = true
}

// Reset performs a hard reset of every component on the machine bus.
// Components are reset one at a time so no two component locks are held
// together.
func (m *Machine) Reset() {
	fmt.Println("Machine: hard reset")
	m.Device.Reset()
	m.Display.Reset()
	m.Console.Reset()
	m.Bus.Reset()
}
