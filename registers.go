// registers.go - Master I/O Register Address Map

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
registers.go - Master I/O Register Address Map

MEMORY MAP OVERVIEW
===================

Address Range           Size     Device              Constants File
---------------------------------------------------------------------------
0x00000000-0x000FFFFF   1MB      Main RAM            machine_bus.go
0x00200000-0x0020003F   64B      SVGA I/O ports      svga_constants.go
0x00300000-0x00301F3F   8000B    Legacy text cells   legacy_console.go
0x00400000-0x00FFFFFF   12MB     SVGA FIFO window    svga_constants.go
0x01000000-0x08FFFFFF   128MB    SVGA VRAM window    svga_constants.go

SVGA I/O PORTS
==============

Each port is one 32-bit word. Port numbers follow the SVGA II layout.

  SVGA_IO_BASE + 0x00   INDEX       latches the register index
  SVGA_IO_BASE + 0x04   VALUE       reads/writes the latched register
  SVGA_IO_BASE + 0x08   BIOS        inert
  SVGA_IO_BASE + 0x20   IRQSTATUS   read pending bits, write to acknowledge
*/

package main

const (
	SVGA_IO_BASE     = 0x00200000
	SVGA_FIFO_BASE   = 0x00400000
	SVGA_FIFO_WINDOW = 0x00C00000
	SVGA_VRAM_BASE   = 0x01000000
	SVGA_VRAM_WINDOW = 0x08000000
)

// Guest-visible port addresses
const (
	SVGA_INDEX_ADDR     = SVGA_IO_BASE + SVGA_INDEX_PORT*4
	SVGA_VALUE_ADDR     = SVGA_IO_BASE + SVGA_VALUE_PORT*4
	SVGA_IRQSTATUS_ADDR = SVGA_IO_BASE + SVGA_IRQSTATUS_PORT*4
)
