// svga_irq_test.go - Interrupt controller tests

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

import "testing"

type levelLog struct {
	levels []bool
}

func (l *levelLog) SetIRQ(level bool) { l.levels = append(l.levels, level) }

func TestIRQ_AcknowledgeSequence(t *testing.T) {
	line := &levelLog{}
	ic := NewInterruptController(line)
	ic.SetMask(SVGA_IRQFLAG_ANY_FENCE | SVGA_IRQFLAG_FIFO_PROGRESS)

	ic.Post(SVGA_IRQFLAG_ANY_FENCE | SVGA_IRQFLAG_FIFO_PROGRESS)
	if !ic.Level() || ic.Status() != 0b011 {
		t.Fatalf("status 0b%b level %v after post", ic.Status(), ic.Level())
	}

	ic.Acknowledge(SVGA_IRQFLAG_ANY_FENCE)
	if !ic.Level() || ic.Status() != SVGA_IRQFLAG_FIFO_PROGRESS {
		t.Fatalf("Partial acknowledge dropped the line (status 0b%b)", ic.Status())
	}

	ic.Acknowledge(SVGA_IRQFLAG_FIFO_PROGRESS)
	if ic.Level() || ic.Status() != 0 {
		t.Fatalf("Line still raised after full acknowledge")
	}

	want := []bool{true, false}
	if len(line.levels) != len(want) || line.levels[0] != want[0] || line.levels[1] != want[1] {
		t.Errorf("Line transitions %v, want %v", line.levels, want)
	}
}

func TestIRQ_MaskGatesLine(t *testing.T) {
	latch := NewIRQLatch(nil)
	ic := NewInterruptController(latch)

	ic.Post(SVGA_IRQFLAG_FENCE_GOAL)
	if latch.Level() {
		t.Fatal("Masked event raised the line")
	}
	ic.SetMask(SVGA_IRQFLAG_FENCE_GOAL)
	if !latch.Level() || latch.Raises() != 1 {
		t.Fatal("Unmasking a pending event should raise the line")
	}
	ic.Post(0)
	ic.Post(SVGA_IRQFLAG_FENCE_GOAL)
	if latch.Raises() != 1 {
		t.Errorf("Line re-raised %d times while already high", latch.Raises())
	}
	ic.SetMask(0)
	if latch.Level() {
		t.Error("Clearing the mask should drop the line")
	}
}

func TestIRQ_RestoreAndReset(t *testing.T) {
	line := &levelLog{}
	ic := NewInterruptController(line)
	ic.Restore(SVGA_IRQFLAG_ANY_FENCE, SVGA_IRQFLAG_ANY_FENCE)
	if !ic.Level() {
		t.Fatal("Restored pending event should raise the line")
	}
	ic.Reset()
	if ic.Level() || ic.Status() != 0 || ic.Mask() != 0 {
		t.Error("Reset left interrupt state")
	}
	if len(line.levels) != 2 {
		t.Errorf("Line transitions %v", line.levels)
	}
}
