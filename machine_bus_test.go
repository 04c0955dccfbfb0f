// machine_bus_test.go - Tests and benchmarks for the machine bus

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
	"encoding/binary"
	"fmt"
	"testing"
)

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
}

// TestBus32GetMemory verifies that RAM written through the bus is the
// slice GetMemory exposes
func TestBus32GetMemory(t *testing.T) {
	bus := NewMachineBus()

	mem := bus.GetMemory()
	if len(mem) != DEFAULT_MEMORY_SIZE {
		t.Fatalf("GetMemory() length %d, expected %d", len(mem), DEFAULT_MEMORY_SIZE)
	}

	bus.Write32(0x1000, 0x12345678)
	if got := binary.LittleEndian.Uint32(mem[0x1000:]); got != 0x12345678 {
		t.Fatalf("Direct memory read 0x%08X, expected 0x12345678", got)
	}
	if got := bus.Read32(0x1000); got != 0x12345678 {
		t.Fatalf("Bus read 0x%08X", got)
	}
}

func TestMachineBus_IORegionRouting(t *testing.T) {
	bus := NewMachineBus()
	var lastAddr, lastValue uint32
	bus.MapIO(0x200000, 0x2000FF,
		func(addr uint32) uint32 { return addr - 0x200000 },
		func(addr, value uint32) { lastAddr, lastValue = addr, value })

	bus.Write32(0x200010, 0xABCD)
	if lastAddr != 0x200010 || lastValue != 0xABCD {
		t.Fatalf("Write handler saw 0x%X=0x%X", lastAddr, lastValue)
	}
	if got := bus.Read32(0x2000FC); got != 0xFC {
		t.Errorf("Read handler returned 0x%X", got)
	}
	if got := bus.Read32(0x200100); got != 0 {
		t.Errorf("Address past the region read 0x%X", got)
	}
}

func TestMachineBus_RegionSpanningPages(t *testing.T) {
	bus := NewMachineBus()
	hits := 0
	bus.MapIO(0x40FFF0, 0x420010, func(uint32) uint32 { hits++; return 1 }, nil)

	for _, addr := range []uint32{0x40FFF0, 0x410000, 0x41FFFC, 0x420010} {
		if bus.Read32(addr) != 1 {
			t.Errorf("0x%X not routed to the region", addr)
		}
	}
	if hits != 4 {
		t.Errorf("hits = %d", hits)
	}
	// Write-only regions ignore writes with no handler
	bus.Write32(0x410000, 5)
}

func TestMachineBus_UnmappedAccessWarns(t *testing.T) {
	bus := NewMachineBus()
	var warnings []string
	bus.warn = func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	bus.Write32(DEFAULT_MEMORY_SIZE, 1)
	if got := bus.Read32(DEFAULT_MEMORY_SIZE - 2); got != 0 {
		t.Errorf("Straddling read returned 0x%X", got)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestMachineBus_SealPanicsOnLateMapIO(t *testing.T) {
	bus := NewMachineBus()
	bus.SealMappings()
	bus.SealMappings()

	expectPanic(t, func() {
		bus.MapIO(0x1000, 0x10FF, nil, nil)
	})
}

func TestMachineBus_ResetClearsRAMOnly(t *testing.T) {
	bus := NewMachineBus()
	reg := uint32(7)
	bus.MapIO(0x200000, 0x200003, func(uint32) uint32 { return reg }, nil)
	bus.Write32(0x100, 0xFFFFFFFF)

	bus.Reset()
	if bus.Read32(0x100) != 0 {
		t.Error("RAM survived reset")
	}
	if bus.Read32(0x200000) != 7 {
		t.Error("Device region affected by bus reset")
	}
}

// =============================================================================
// Benchmarks for bus operations
// =============================================================================

func BenchmarkRead32_NonIO(b *testing.B) {
	bus := NewMachineBus()
	bus.Write32(0x1000, 0x12345678)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = bus.Read32(0x1000)
	}
}

func BenchmarkWrite32_IORegion(b *testing.B) {
	bus := NewMachineBus()
	bus.MapIO(0xF0000, 0xF00FF, nil, func(addr, value uint32) {})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bus.Write32(0xF0000, uint32(i))
	}
}
