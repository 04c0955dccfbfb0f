// svga_irq.go - Interrupt status/mask pair driving one IRQ line

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

import "sync/atomic"

// IRQLine is the bus side of the device interrupt pin
type IRQLine interface {
	SetIRQ(level bool)
}

// InterruptController holds the sticky status bits and the guest mask.
// Status only accumulates events the guest unmasked; the line follows
// status&mask and drops once status is fully acknowledged.
type InterruptController struct {
	status uint32
	mask   uint32
	level  bool
	line   IRQLine
}

func NewInterruptController(line IRQLine) *InterruptController {
	return &InterruptController{line: line}
}

func (ic *InterruptController) Status() uint32 { return ic.status }
func (ic *InterruptController) Mask() uint32   { return ic.mask }
func (ic *InterruptController) Level() bool    { return ic.level }

// Masked reports whether any of bits is enabled in the mask
func (ic *InterruptController) Masked(bits uint32) bool {
	return ic.mask&bits != 0
}

// SetMask replaces the mask and re-evaluates the line
func (ic *InterruptController) SetMask(mask uint32) {
	ic.mask = mask
	ic.setLevel(ic.status&ic.mask != 0)
}

// Post latches events into status and raises the line when any latched bit
// is unmasked. Posting nothing leaves the line alone.
func (ic *InterruptController) Post(events uint32) {
	if events == 0 {
		return
	}
	ic.status |= events
	if ic.status&ic.mask != 0 {
		ic.setLevel(true)
	}
}

// Acknowledge clears exactly the written bits
func (ic *InterruptController) Acknowledge(bits uint32) {
	ic.status &^= bits
	if ic.status == 0 {
		ic.setLevel(false)
	}
}

// Restore loads status and mask from saved state
func (ic *InterruptController) Restore(status, mask uint32) {
	ic.status = status
	ic.mask = mask
	ic.setLevel(ic.status&ic.mask != 0)
}

func (ic *InterruptController) Reset() {
	ic.status = 0
	ic.mask = 0
	ic.setLevel(false)
}

func (ic *InterruptController) setLevel(level bool) {
	if level == ic.level {
		return
	}
	ic.level = level
	if ic.line != nil {
		ic.line.SetIRQ(level)
	}
}

// IRQLatch is a host-side IRQLine that records the pin level and counts
// rising edges; it stands in for the interrupt plumbing of a full machine.
type IRQLatch struct {
	level  atomic.Bool
	raises atomic.Uint64
	notify func(level bool)
}

func NewIRQLatch(notify func(level bool)) *IRQLatch {
	return &IRQLatch{notify: notify}
}

func (l *IRQLatch) SetIRQ(level bool) {
	if level && !l.level.Load() {
		l.raises.Add(1)
	}
	l.level.Store(level)
	if l.notify != nil {
		l.notify(level)
	}
}

func (l *IRQLatch) Level() bool    { return l.level.Load() }
func (l *IRQLatch) Raises() uint64 { return l.raises.Load() }
