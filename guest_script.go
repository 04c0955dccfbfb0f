// guest_script.go - Lua guest driver

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
guest_script.go - Lua guest driver

A script plays the part of the guest operating system's display driver. It
only reaches the adapter through the machine bus: port writes, FIFO window
writes and VRAM window writes, exactly as guest code would.

	svga.reg_write(svga.REG_WIDTH, 800)
	svga.fifo_init()
	svga.fifo_push(svga.CMD_RECT_FILL, 0x00ff0000, 0, 0, 64, 64)
	svga.sync()
*/

package main

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// busyPollLimit bounds the BUSY polling loop in svga.sync()
const busyPollLimit = 1 << 16

// GuestScript runs Lua driver programs against the machine bus
type GuestScript struct {
	L       *lua.LState
	bus     *MachineBus
	cfg     SVGAConfig
	console *LegacyConsole
	refresh func()
	out     func(string)
}

func NewGuestScript(bus *MachineBus, cfg SVGAConfig, console *LegacyConsole, refresh func()) *GuestScript {
	g := &GuestScript{
		L:       lua.NewState(),
		bus:     bus,
		cfg:     cfg,
		console: console,
		refresh: refresh,
		out:     func(s string) { fmt.Println(s) },
	}
	g.register()
	return g
}

// SetOutput redirects svga.log
func (g *GuestScript) SetOutput(out func(string)) {
	g.out = out
}

func (g *GuestScript) Close() {
	g.L.Close()
}

// RunFile executes a script; cancelling ctx aborts it
func (g *GuestScript) RunFile(ctx context.Context, path string) error {
	g.L.SetContext(ctx)
	if err := g.L.DoFile(path); err != nil {
		return fmt.Errorf("guest script %s: %w", path, err)
	}
	return nil
}

func (g *GuestScript) RunString(ctx context.Context, src string) error {
	g.L.SetContext(ctx)
	if err := g.L.DoString(src); err != nil {
		return fmt.Errorf("guest script: %w", err)
	}
	return nil
}

func checkWord(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func (g *GuestScript) port(p uint32) uint32 {
	return g.cfg.IOBase + p*4
}

func (g *GuestScript) regRead(index uint32) uint32 {
	g.bus.Write32(g.port(SVGA_INDEX_PORT), index)
	return g.bus.Read32(g.port(SVGA_VALUE_PORT))
}

func (g *GuestScript) regWrite(index, value uint32) {
	g.bus.Write32(g.port(SVGA_INDEX_PORT), index)
	g.bus.Write32(g.port(SVGA_VALUE_PORT), value)
}

func (g *GuestScript) fifoRead(slot int) uint32 {
	return g.bus.Read32(g.cfg.FIFOStart + uint32(slot)*4)
}

func (g *GuestScript) fifoWrite(slot int, value uint32) {
	g.bus.Write32(g.cfg.FIFOStart+uint32(slot)*4, value)
}

// sync asks the device to drain the FIFO and waits for BUSY to clear
func (g *GuestScript) sync() bool {
	g.regWrite(SVGA_REG_SYNC, 1)
	for i := 0; i < busyPollLimit; i++ {
		if g.regRead(SVGA_REG_BUSY) == 0 {
			return true
		}
	}
	return false
}

// push stores one word at NEXT_CMD the way a driver does: data first,
// then the advanced producer offset. A full ring forces a sync.
func (g *GuestScript) push(word uint32) error {
	lo, hi := g.fifoRead(SVGA_FIFO_MIN), g.fifoRead(SVGA_FIFO_MAX)
	if hi <= lo {
		return fmt.Errorf("FIFO not initialised")
	}
	next := g.fifoRead(SVGA_FIFO_NEXT_CMD)
	advanced := next + 4
	if advanced >= hi {
		advanced = lo
	}
	if advanced == g.fifoRead(SVGA_FIFO_STOP) {
		if !g.sync() {
			return fmt.Errorf("FIFO full and device busy")
		}
	}
	g.bus.Write32(g.cfg.FIFOStart+next, word)
	g.fifoWrite(SVGA_FIFO_NEXT_CMD, advanced)
	return nil
}

func (g *GuestScript) register() {
	L := g.L
	mod := L.NewTable()

	fns := map[string]lua.LGFunction{
		"reg_read": func(L *lua.LState) int {
			L.Push(lua.LNumber(g.regRead(checkWord(L, 1))))
			return 1
		},
		"reg_write": func(L *lua.LState) int {
			g.regWrite(checkWord(L, 1), checkWord(L, 2))
			return 0
		},
		"irq_status": func(L *lua.LState) int {
			L.Push(lua.LNumber(g.bus.Read32(g.port(SVGA_IRQSTATUS_PORT))))
			return 1
		},
		"irq_ack": func(L *lua.LState) int {
			g.bus.Write32(g.port(SVGA_IRQSTATUS_PORT), checkWord(L, 1))
			return 0
		},
		"mem_read": func(L *lua.LState) int {
			L.Push(lua.LNumber(g.bus.Read32(checkWord(L, 1))))
			return 1
		},
		"mem_write": func(L *lua.LState) int {
			g.bus.Write32(checkWord(L, 1), checkWord(L, 2))
			return 0
		},
		"vram_write": func(L *lua.LState) int {
			g.bus.Write32(g.cfg.FBStart+checkWord(L, 1), checkWord(L, 2))
			return 0
		},
		"vram_read": func(L *lua.LState) int {
			L.Push(lua.LNumber(g.bus.Read32(g.cfg.FBStart + checkWord(L, 1))))
			return 1
		},
		"fifo_read": func(L *lua.LState) int {
			L.Push(lua.LNumber(g.fifoRead(L.CheckInt(1))))
			return 1
		},
		"fifo_write": func(L *lua.LState) int {
			g.fifoWrite(L.CheckInt(1), checkWord(L, 2))
			return 0
		},
		"fifo_init": func(L *lua.LState) int {
			lo := uint32(L.OptInt(1, SVGA_FIFO_NUM_REGS*4))
			hi := uint32(L.OptInt(2, g.cfg.FIFOSize))
			g.fifoWrite(SVGA_FIFO_MIN, lo)
			g.fifoWrite(SVGA_FIFO_MAX, hi)
			g.fifoWrite(SVGA_FIFO_NEXT_CMD, lo)
			g.fifoWrite(SVGA_FIFO_STOP, lo)
			return 0
		},
		"fifo_push": func(L *lua.LState) int {
			for i := 1; i <= L.GetTop(); i++ {
				if err := g.push(checkWord(L, i)); err != nil {
					L.RaiseError("%v", err)
				}
			}
			return 0
		},
		"sync": func(L *lua.LState) int {
			L.Push(lua.LBool(g.sync()))
			return 1
		},
		"refresh": func(L *lua.LState) int {
			if g.refresh != nil {
				g.refresh()
			}
			return 0
		},
		"text": func(L *lua.LState) int {
			if g.console != nil {
				g.console.WriteString(L.CheckString(1))
			}
			return 0
		},
		"log": func(L *lua.LState) int {
			g.out(L.CheckString(1))
			return 0
		},
	}
	for name, fn := range fns {
		mod.RawSetString(name, L.NewFunction(fn))
	}
	for name, value := range scriptConstants {
		mod.RawSetString(name, lua.LNumber(value))
	}
	L.SetGlobal("svga", mod)
}

// scriptConstants are published to Lua without the SVGA_ prefix
var scriptConstants = map[string]uint32{
	"REG_ID":                  SVGA_REG_ID,
	"REG_ENABLE":              SVGA_REG_ENABLE,
	"REG_WIDTH":               SVGA_REG_WIDTH,
	"REG_HEIGHT":              SVGA_REG_HEIGHT,
	"REG_MAX_WIDTH":           SVGA_REG_MAX_WIDTH,
	"REG_MAX_HEIGHT":          SVGA_REG_MAX_HEIGHT,
	"REG_DEPTH":               SVGA_REG_DEPTH,
	"REG_BITS_PER_PIXEL":      SVGA_REG_BITS_PER_PIXEL,
	"REG_BYTES_PER_LINE":      SVGA_REG_BYTES_PER_LINE,
	"REG_FB_START":            SVGA_REG_FB_START,
	"REG_VRAM_SIZE":           SVGA_REG_VRAM_SIZE,
	"REG_FB_SIZE":             SVGA_REG_FB_SIZE,
	"REG_CAPABILITIES":        SVGA_REG_CAPABILITIES,
	"REG_MEM_START":           SVGA_REG_MEM_START,
	"REG_MEM_SIZE":            SVGA_REG_MEM_SIZE,
	"REG_CONFIG_DONE":         SVGA_REG_CONFIG_DONE,
	"REG_SYNC":                SVGA_REG_SYNC,
	"REG_BUSY":                SVGA_REG_BUSY,
	"REG_GUEST_ID":            SVGA_REG_GUEST_ID,
	"REG_CURSOR_ID":           SVGA_REG_CURSOR_ID,
	"REG_CURSOR_X":            SVGA_REG_CURSOR_X,
	"REG_CURSOR_Y":            SVGA_REG_CURSOR_Y,
	"REG_CURSOR_ON":           SVGA_REG_CURSOR_ON,
	"REG_SCRATCH_SIZE":        SVGA_REG_SCRATCH_SIZE,
	"REG_MEM_REGS":            SVGA_REG_MEM_REGS,
	"REG_PITCHLOCK":           SVGA_REG_PITCHLOCK,
	"REG_IRQMASK":             SVGA_REG_IRQMASK,
	"REG_TRACES":              SVGA_REG_TRACES,
	"REG_MEMORY_SIZE":         SVGA_REG_MEMORY_SIZE,
	"FIFO_MIN":                SVGA_FIFO_MIN,
	"FIFO_MAX":                SVGA_FIFO_MAX,
	"FIFO_NEXT_CMD":           SVGA_FIFO_NEXT_CMD,
	"FIFO_STOP":               SVGA_FIFO_STOP,
	"FIFO_FENCE":              SVGA_FIFO_FENCE,
	"FIFO_CURSOR_ON":          SVGA_FIFO_CURSOR_ON,
	"FIFO_CURSOR_X":           SVGA_FIFO_CURSOR_X,
	"FIFO_CURSOR_Y":           SVGA_FIFO_CURSOR_Y,
	"FIFO_CURSOR_COUNT":       SVGA_FIFO_CURSOR_COUNT,
	"FIFO_NUM_REGS":           SVGA_FIFO_NUM_REGS,
	"CMD_UPDATE":              SVGA_CMD_UPDATE,
	"CMD_RECT_FILL":           SVGA_CMD_RECT_FILL,
	"CMD_RECT_COPY":           SVGA_CMD_RECT_COPY,
	"CMD_DEFINE_CURSOR":       SVGA_CMD_DEFINE_CURSOR,
	"CMD_DEFINE_ALPHA_CURSOR": SVGA_CMD_DEFINE_ALPHA_CURSOR,
	"CMD_UPDATE_VERBOSE":      SVGA_CMD_UPDATE_VERBOSE,
	"CMD_FENCE":               SVGA_CMD_FENCE,
	"CMD_ESCAPE":              SVGA_CMD_ESCAPE,
	"CMD_NOP":                 SVGA_CMD_NOP,
	"IRQFLAG_ANY_FENCE":       SVGA_IRQFLAG_ANY_FENCE,
	"IRQFLAG_FIFO_PROGRESS":   SVGA_IRQFLAG_FIFO_PROGRESS,
	"IRQFLAG_FENCE_GOAL":      SVGA_IRQFLAG_FENCE_GOAL,
}
