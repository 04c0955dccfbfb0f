// svga_snapshot.go - Versioned SVGA device state save and restore

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
svga_snapshot.go - Device State Snapshots

State layout (little endian):

	"SVGA"       magic
	version      uint32
	scalars      fixed set of uint32 device fields
	scratch      uint32 count followed by count words
	v2 block     irq mask, irq status, last cursor count, display id,
	             pitch lock, pitch lock count

A version 1 image stops after the scratch array; the v2 fields are
defaulted on load. Files on disk append VRAM and FIFO memory as one gzip
stream after the state.
*/

package main

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	svgaStateMagic   = "SVGA"
	svgaStateVersion = 2
)

// SVGAState is the persisted register-level device state
type SVGAState struct {
	Version  uint32
	ID       uint32
	Index    uint32
	Enable   bool
	Config   bool
	Width    uint32
	Height   uint32
	BPP      uint32
	GuestID  uint32
	CursorID uint32
	CursorX  uint32
	CursorY  uint32
	CursorOn bool
	Syncing  bool
	Traces   uint32
	Scratch  []uint32

	// Version 2
	IRQMask         uint32
	IRQStatus       uint32
	LastCursorCount uint32
	DisplayID       uint32
	Pitchlock       uint32
	PitchlockCount  uint32
}

// SaveState captures the register-level state
func (d *SVGADevice) SaveState() *SVGAState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return &SVGAState{
		Version:         svgaStateVersion,
		ID:              d.svgaID,
		Index:           d.index,
		Enable:          d.enable,
		Config:          d.config,
		Width:           uint32(d.width),
		Height:          uint32(d.height),
		BPP:             uint32(d.bpp),
		GuestID:         d.guestID,
		CursorID:        d.cursorID,
		CursorX:         d.cursorX,
		CursorY:         d.cursorY,
		CursorOn:        d.cursorOn,
		Syncing:         d.syncing,
		Traces:          d.traces,
		Scratch:         d.scratch.Snapshot(),
		IRQMask:         d.irq.Mask(),
		IRQStatus:       d.irq.Status(),
		LastCursorCount: d.lastCursorCount,
		DisplayID:       d.displayID,
		Pitchlock:       d.pitchlock,
		PitchlockCount:  uint32(d.pitchlockCount),
	}
}

// LoadState restores register-level state. The image is validated before
// anything is modified.
func (d *SVGADevice) LoadState(s *SVGAState) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case s.Width < 1 || s.Width > uint32(d.cfg.MaxWidth) || s.Height < 1 || s.Height > uint32(d.cfg.MaxHeight):
		return &VideoError{Operation: "load state", Details: fmt.Sprintf("mode %dx%d out of range", s.Width, s.Height)}
	case s.BPP != 8 && s.BPP != 16 && s.BPP != 24 && s.BPP != 32:
		return &VideoError{Operation: "load state", Details: fmt.Sprintf("bad depth %d", s.BPP)}
	case len(s.Scratch) > d.scratch.Cap():
		return &VideoError{Operation: "load state", Details: fmt.Sprintf("scratch of %d words exceeds %d", len(s.Scratch), d.scratch.Cap())}
	}

	d.svgaID = s.ID
	d.index = s.Index
	d.enable = s.Enable
	d.config = s.Config
	d.width = int(s.Width)
	d.height = int(s.Height)
	d.bpp = int(s.BPP)
	d.guestID = s.GuestID
	d.cursorID = s.CursorID
	d.cursorX = s.CursorX
	d.cursorY = s.CursorY
	d.cursorOn = s.CursorOn
	d.syncing = s.Syncing
	d.traces = s.Traces
	d.scratch.Clear()
	if err := d.scratch.Write(0, s.Scratch); err != nil {
		return fmt.Errorf("restoring scratch: %w", err)
	}
	d.irq.Restore(s.IRQStatus, s.IRQMask)
	d.lastCursorCount = s.LastCursorCount
	d.displayID = s.DisplayID
	d.pitchlock = s.Pitchlock
	d.pitchlockCount = int(s.PitchlockCount)

	d.surface = SurfaceDesc{}
	d.queue.Reset()
	d.invalidate()
	d.legacy.Invalidate()
	d.display.SetDirtyTracking(!(d.enable && d.config))
	d.display.MoveCursor(int(d.cursorX), int(d.cursorY), d.cursorOn)
	return nil
}

// EncodeState writes the current version of the state format
func EncodeState(w io.Writer, s *SVGAState) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(svgaStateMagic)
	words := []uint32{
		svgaStateVersion,
		s.ID, s.Index, boolToU32(s.Enable), boolToU32(s.Config),
		s.Width, s.Height, s.BPP, s.GuestID,
		s.CursorID, s.CursorX, s.CursorY, boolToU32(s.CursorOn),
		boolToU32(s.Syncing), s.Traces,
		uint32(len(s.Scratch)),
	}
	if err := binary.Write(bw, binary.LittleEndian, words); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, s.Scratch); err != nil {
		return fmt.Errorf("writing scratch: %w", err)
	}
	gated := []uint32{s.IRQMask, s.IRQStatus, s.LastCursorCount, s.DisplayID, s.Pitchlock, s.PitchlockCount}
	if err := binary.Write(bw, binary.LittleEndian, gated); err != nil {
		return fmt.Errorf("writing v2 block: %w", err)
	}
	return bw.Flush()
}

// DecodeState reads version 1 or 2 state
func DecodeState(r io.Reader) (*SVGAState, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != svgaStateMagic {
		return nil, fmt.Errorf("invalid state magic: %q", string(magic))
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version < 1 || version > svgaStateVersion {
		return nil, fmt.Errorf("unsupported state version: %d", version)
	}

	var fields [15]uint32
	if err := binary.Read(r, binary.LittleEndian, &fields); err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	count := fields[14]
	if count > 0x10000 {
		return nil, fmt.Errorf("scratch count %d too large", count)
	}
	scratch := make([]uint32, count)
	if err := binary.Read(r, binary.LittleEndian, scratch); err != nil {
		return nil, fmt.Errorf("reading scratch: %w", err)
	}

	s := &SVGAState{
		Version:  version,
		ID:       fields[0],
		Index:    fields[1],
		Enable:   fields[2] != 0,
		Config:   fields[3] != 0,
		Width:    fields[4],
		Height:   fields[5],
		BPP:      fields[6],
		GuestID:  fields[7],
		CursorID: fields[8],
		CursorX:  fields[9],
		CursorY:  fields[10],
		CursorOn: fields[11] != 0,
		Syncing:  fields[12] != 0,
		Traces:   fields[13],
		Scratch:  scratch,
	}
	if version < 2 {
		return s, nil
	}

	var gated [6]uint32
	if err := binary.Read(r, binary.LittleEndian, &gated); err != nil {
		return nil, fmt.Errorf("reading v2 block: %w", err)
	}
	s.IRQMask = gated[0]
	s.IRQStatus = gated[1]
	s.LastCursorCount = gated[2]
	s.DisplayID = gated[3]
	s.Pitchlock = gated[4]
	s.PitchlockCount = gated[5]
	return s, nil
}

// SaveStateToFile writes state plus gzip-compressed VRAM and FIFO memory
func SaveStateToFile(d *SVGADevice, path string) error {
	state := d.SaveState()

	var buf bytes.Buffer
	if err := EncodeState(&buf, state); err != nil {
		return err
	}

	d.mu.Lock()
	binary.Write(&buf, binary.LittleEndian, uint32(len(d.vram)))
	binary.Write(&buf, binary.LittleEndian, uint32(d.fifo.Size()))
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(d.vram)
	if err == nil {
		_, err = gz.Write(d.fifo.Bytes())
	}
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("compressing memory: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadStateFile decodes a state file without applying it. The memory
// images are returned alongside the state.
func ReadStateFile(path string) (*SVGAState, []byte, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	r := bytes.NewReader(data)
	state, err := DecodeState(r)
	if err != nil {
		return nil, nil, nil, err
	}

	var vramLen, fifoLen uint32
	if err := binary.Read(r, binary.LittleEndian, &vramLen); err != nil {
		return nil, nil, nil, fmt.Errorf("reading vram length: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &fifoLen); err != nil {
		return nil, nil, nil, fmt.Errorf("reading fifo length: %w", err)
	}
	if vramLen > SVGA_VRAM_WINDOW || fifoLen > SVGA_FIFO_WINDOW {
		return nil, nil, nil, &VideoError{
			Operation: "read state",
			Details:   fmt.Sprintf("memory sizes %d/%d exceed the %d/%d windows", vramLen, fifoLen, SVGA_VRAM_WINDOW, SVGA_FIFO_WINDOW),
		}
	}
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening gzip reader: %w", err)
	}
	defer gz.Close()

	vram := make([]byte, vramLen)
	if _, err := io.ReadFull(gz, vram); err != nil {
		return nil, nil, nil, fmt.Errorf("decompressing vram: %w", err)
	}
	fifo := make([]byte, fifoLen)
	if _, err := io.ReadFull(gz, fifo); err != nil {
		return nil, nil, nil, fmt.Errorf("decompressing fifo: %w", err)
	}
	return state, vram, fifo, nil
}

// LoadStateFromFile restores a device from a state file. Memory sizes must
// match the device configuration.
func LoadStateFromFile(d *SVGADevice, path string) error {
	state, vram, fifo, err := ReadStateFile(path)
	if err != nil {
		return err
	}
	if len(vram) != len(d.vram) || len(fifo) != d.fifo.Size() {
		return &VideoError{
			Operation: "load state",
			Details:   fmt.Sprintf("memory sizes %d/%d do not match device %d/%d", len(vram), len(fifo), len(d.vram), d.fifo.Size()),
		}
	}
	if err := d.LoadState(state); err != nil {
		return err
	}
	d.mu.Lock()
	copy(d.vram, vram)
	copy(d.fifo.Bytes(), fifo)
	d.mu.Unlock()
	return nil
}
