// machine_bus.go - Machine Bus for the SVGA test machine

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
machine_bus.go - Machine Bus

The bus routes 32-bit guest accesses either to plain RAM or to a device
handler registered with MapIO. Regions are indexed by 64KB page so a
lookup touches at most a handful of candidates. Accesses outside RAM that
hit no region read as zero and drop writes with a warning.

See registers.go for the address map.
*/

package main

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
)

const (
	DEFAULT_MEMORY_SIZE = 1024 * 1024
	PAGE_SHIFT          = 16
)

// Bus32 is the guest view of the machine
type Bus32 interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
	Reset()
}

type MachineBus struct {
	/*
		MachineBus implements Bus32.

		RAM is one contiguous block starting at address zero. Device
		regions live above it and are never mirrored into RAM.
	*/

	memory  []byte
	mapping map[uint32][]IORegion
	sealed  atomic.Bool
	warn    func(format string, args ...any)
}

// IORegion is one device window [start, end] with its handlers
type IORegion struct {
	start   uint32
	end     uint32
	onRead  func(addr uint32) uint32
	onWrite func(addr uint32, value uint32)
}

func NewMachineBus() *MachineBus {
	return &MachineBus{
		memory:  make([]byte, DEFAULT_MEMORY_SIZE),
		mapping: make(map[uint32][]IORegion),
		warn: func(format string, args ...any) {
			fmt.Printf("Warning: "+format+"\n", args...)
		},
	}
}

func (bus *MachineBus) GetMemory() []byte {
	return bus.memory
}

// SealMappings prevents further MapIO calls once the guest is running
func (bus *MachineBus) SealMappings() {
	bus.sealed.CompareAndSwap(false, true)
}

func (bus *MachineBus) MapIO(start, end uint32, onRead func(addr uint32) uint32, onWrite func(addr uint32, value uint32)) {
	if bus.sealed.Load() {
		panic(fmt.Sprintf("MapIO called after execution started (mapping range $%08X-$%08X)", start, end))
	}
	region := IORegion{start: start, end: end, onRead: onRead, onWrite: onWrite}
	for page := start >> PAGE_SHIFT; page <= end>>PAGE_SHIFT; page++ {
		bus.mapping[page] = append(bus.mapping[page], region)
	}
}

func (bus *MachineBus) findIORegion(addr uint32) *IORegion {
	regions := bus.mapping[addr>>PAGE_SHIFT]
	for i := range regions {
		if addr >= regions[i].start && addr <= regions[i].end {
			return &regions[i]
		}
	}
	return nil
}

func (bus *MachineBus) Write32(addr uint32, value uint32) {
	if region := bus.findIORegion(addr); region != nil {
		if region.onWrite != nil {
			region.onWrite(addr, value)
		}
		return
	}
	if uint64(addr)+4 > uint64(len(bus.memory)) {
		bus.warn("Write32 to unmapped address 0x%08X", addr)
		return
	}
	binary.LittleEndian.PutUint32(bus.memory[addr:], value)
}

func (bus *MachineBus) Read32(addr uint32) uint32 {
	if region := bus.findIORegion(addr); region != nil {
		if region.onRead != nil {
			return region.onRead(addr)
		}
		return 0
	}
	if uint64(addr)+4 > uint64(len(bus.memory)) {
		bus.warn("Read32 from unmapped address 0x%08X", addr)
		return 0
	}
	return binary.LittleEndian.Uint32(bus.memory[addr:])
}

func (bus *MachineBus) Reset() {
	/*
		Reset clears main memory. Device regions are untouched; devices
		have their own Reset.
	*/
	clear(bus.memory)
}
