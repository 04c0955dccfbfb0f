// video_compositor.go - Display refresh loop for the SVGA adapter

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
video_compositor.go - Display Refresh Loop

Signal Flow:
1. The compositor ticks at 60Hz
2. Each tick calls SVGADevice.Refresh, which decodes pending FIFO commands
   and flushes damaged rectangles into the FrameDisplay (or redraws the
   legacy console while the driver is not enabled)
3. If the frame changed it is sent to the VideoOutput
4. Cursor changes go to outputs that draw a hardware cursor overlay

                ┌─────────────┐     ┌──────────────┐     ┌─────────┐
  Guest → FIFO →│ SVGADevice  │ ──→ │ FrameDisplay │ ──→ │ Output  │
                └─────────────┘     └──────────────┘     └─────────┘
*/

package main

import (
	"fmt"
	"image"
	"sync"
	"time"
)

const (
	COMPOSITOR_REFRESH_RATE     = 60
	COMPOSITOR_REFRESH_INTERVAL = time.Second / COMPOSITOR_REFRESH_RATE
)

// CursorCapable outputs draw the hardware cursor on top of the frame
type CursorCapable interface {
	SetCursorImage(img *image.RGBA, hotX, hotY int)
	SetCursorPosition(x, y int, visible bool)
}

// VideoCompositor drives device refresh and frame presentation
type VideoCompositor struct {
	mutex   sync.Mutex
	output  VideoOutput
	device  *SVGADevice
	display *FrameDisplay
	done    chan struct{}
	stopped sync.Once
	width   int
	height  int
	frames  uint64
	onFrame func(frame uint64)
}

func NewVideoCompositor(output VideoOutput, device *SVGADevice, display *FrameDisplay) *VideoCompositor {
	return &VideoCompositor{
		output:  output,
		device:  device,
		display: display,
		done:    make(chan struct{}),
	}
}

// OnFrame registers a callback run after every presented tick
func (c *VideoCompositor) OnFrame(fn func(frame uint64)) {
	c.mutex.Lock()
	c.onFrame = fn
	c.mutex.Unlock()
}

// Start begins the refresh loop
func (c *VideoCompositor) Start() error {
	go c.refreshLoop()
	return nil
}

// Stop halts the refresh loop
func (c *VideoCompositor) Stop() {
	c.stopped.Do(func() { close(c.done) })
}

func (c *VideoCompositor) refreshLoop() {
	ticker := time.NewTicker(COMPOSITOR_REFRESH_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Tick runs one refresh cycle
func (c *VideoCompositor) Tick() {
	c.device.Refresh()

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.frames++

	frameChanged, cursorChanged := c.display.TakeDirty()
	if frameChanged && c.output != nil && c.output.IsStarted() {
		frame := c.display.Snapshot()
		w, h := frame.Rect.Dx(), frame.Rect.Dy()
		if w != c.width || h != c.height {
			cfg := c.output.GetDisplayConfig()
			cfg.Width, cfg.Height = w, h
			if err := c.output.SetDisplayConfig(cfg); err != nil {
				fmt.Printf("Compositor: Error resizing output: %v\n", err)
			}
			c.width, c.height = w, h
		}
		if err := c.output.UpdateFrame(frame.Pix); err != nil {
			fmt.Printf("Compositor: Error updating frame: %v\n", err)
		}
	}

	if cursorChanged {
		if cc, ok := c.output.(CursorCapable); ok {
			cursor, x, y, visible := c.display.Cursor()
			cc.SetCursorImage(cursor.Image, cursor.HotX, cursor.HotY)
			cc.SetCursorPosition(x, y, visible)
		}
	}

	if c.onFrame != nil {
		c.onFrame(c.frames)
	}
}

// Frames returns the number of refresh ticks run so far
func (c *VideoCompositor) Frames() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.frames
}
