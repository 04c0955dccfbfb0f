// svga_constants.go - SVGA II register, FIFO and command definitions

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
svga_constants.go - SVGA II Register Definitions

Register indices, FIFO header slots, command opcodes and capability bits for
the SVGA II virtual display adapter. The guest programs the device through an
index/value port pair and queues drawing commands in a shared FIFO whose
header occupies the first words of the FIFO memory.

All FIFO words are little-endian 32-bit values.
*/

package main

// I/O port offsets from the device I/O base
const (
	SVGA_INDEX_PORT     = 0x0
	SVGA_VALUE_PORT     = 0x1
	SVGA_BIOS_PORT      = 0x2
	SVGA_IRQSTATUS_PORT = 0x8
	SVGA_NUM_PORTS      = 0x10
)

// Device identification
const (
	SVGA_MAGIC = 0x900000
	SVGA_ID_0  = SVGA_MAGIC<<8 | 0
	SVGA_ID_1  = SVGA_MAGIC<<8 | 1
	SVGA_ID_2  = SVGA_MAGIC<<8 | 2
	SVGA_ID    = SVGA_ID_2 // Highest supported revision
)

// Register indices
const (
	SVGA_REG_ID                        = 0
	SVGA_REG_ENABLE                    = 1
	SVGA_REG_WIDTH                     = 2
	SVGA_REG_HEIGHT                    = 3
	SVGA_REG_MAX_WIDTH                 = 4
	SVGA_REG_MAX_HEIGHT                = 5
	SVGA_REG_DEPTH                     = 6
	SVGA_REG_BITS_PER_PIXEL            = 7
	SVGA_REG_PSEUDOCOLOR               = 8
	SVGA_REG_RED_MASK                  = 9
	SVGA_REG_GREEN_MASK                = 10
	SVGA_REG_BLUE_MASK                 = 11
	SVGA_REG_BYTES_PER_LINE            = 12
	SVGA_REG_FB_START                  = 13
	SVGA_REG_FB_OFFSET                 = 14
	SVGA_REG_VRAM_SIZE                 = 15
	SVGA_REG_FB_SIZE                   = 16
	SVGA_REG_CAPABILITIES              = 17
	SVGA_REG_MEM_START                 = 18
	SVGA_REG_MEM_SIZE                  = 19
	SVGA_REG_CONFIG_DONE               = 20
	SVGA_REG_SYNC                      = 21
	SVGA_REG_BUSY                      = 22
	SVGA_REG_GUEST_ID                  = 23
	SVGA_REG_CURSOR_ID                 = 24
	SVGA_REG_CURSOR_X                  = 25
	SVGA_REG_CURSOR_Y                  = 26
	SVGA_REG_CURSOR_ON                 = 27
	SVGA_REG_HOST_BITS_PER_PIXEL       = 28
	SVGA_REG_SCRATCH_SIZE              = 29
	SVGA_REG_MEM_REGS                  = 30
	SVGA_REG_NUM_DISPLAYS              = 31
	SVGA_REG_PITCHLOCK                 = 32
	SVGA_REG_IRQMASK                   = 33
	SVGA_REG_NUM_GUEST_DISPLAYS        = 34
	SVGA_REG_DISPLAY_ID                = 35
	SVGA_REG_DISPLAY_IS_PRIMARY        = 36
	SVGA_REG_DISPLAY_POSITION_X        = 37
	SVGA_REG_DISPLAY_POSITION_Y        = 38
	SVGA_REG_DISPLAY_WIDTH             = 39
	SVGA_REG_DISPLAY_HEIGHT            = 40
	SVGA_REG_GMR_ID                    = 41
	SVGA_REG_GMR_DESCRIPTOR            = 42
	SVGA_REG_GMR_MAX_IDS               = 43
	SVGA_REG_GMR_MAX_DESCRIPTOR_LENGTH = 44
	SVGA_REG_TRACES                    = 45
	SVGA_REG_GMRS_MAX_PAGES            = 46
	SVGA_REG_MEMORY_SIZE               = 47
	SVGA_REG_CAP2                      = 59
)

// Register blocks above the named registers
const (
	SVGA_PALETTE_BASE    = 1024
	SVGA_NUM_PALETTE_REG = 768 // 256 entries x RGB
	SVGA_SCRATCH_BASE    = SVGA_PALETTE_BASE + SVGA_NUM_PALETTE_REG
)

// Capability bits (SVGA_REG_CAPABILITIES)
const (
	SVGA_CAP_NONE             = 0x00000000
	SVGA_CAP_RECT_FILL        = 0x00000001
	SVGA_CAP_RECT_COPY        = 0x00000002
	SVGA_CAP_RECT_PAT_FILL    = 0x00000004
	SVGA_CAP_LEGACY_OFFSCREEN = 0x00000008
	SVGA_CAP_RASTER_OP        = 0x00000010
	SVGA_CAP_CURSOR           = 0x00000020
	SVGA_CAP_CURSOR_BYPASS    = 0x00000040
	SVGA_CAP_CURSOR_BYPASS_2  = 0x00000080
	SVGA_CAP_8BIT_EMULATION   = 0x00000100
	SVGA_CAP_ALPHA_CURSOR     = 0x00000200
	SVGA_CAP_3D               = 0x00004000
	SVGA_CAP_EXTENDED_FIFO    = 0x00008000
	SVGA_CAP_MULTIMON         = 0x00010000
	SVGA_CAP_PITCHLOCK        = 0x00020000
	SVGA_CAP_IRQMASK          = 0x00040000
	SVGA_CAP_DISPLAY_TOPOLOGY = 0x00080000
	SVGA_CAP_GMR              = 0x00100000
	SVGA_CAP_TRACES           = 0x00200000
	SVGA_CAP_GMR2             = 0x00400000
	SVGA_CAP_SCREEN_OBJECT_2  = 0x00800000
	SVGA_CAP_COMMAND_BUFFERS  = 0x01000000
)

// SVGA_CAPABILITIES is the mask advertised to the guest. Several bits name
// command classes the decoder only recognizes and skips (GMR, screen objects,
// command buffers).
const SVGA_CAPABILITIES = SVGA_CAP_RECT_FILL |
	SVGA_CAP_RECT_COPY |
	SVGA_CAP_CURSOR |
	SVGA_CAP_CURSOR_BYPASS |
	SVGA_CAP_CURSOR_BYPASS_2 |
	SVGA_CAP_ALPHA_CURSOR |
	SVGA_CAP_EXTENDED_FIFO |
	SVGA_CAP_MULTIMON |
	SVGA_CAP_PITCHLOCK |
	SVGA_CAP_IRQMASK |
	SVGA_CAP_DISPLAY_TOPOLOGY |
	SVGA_CAP_GMR |
	SVGA_CAP_TRACES |
	SVGA_CAP_GMR2 |
	SVGA_CAP_SCREEN_OBJECT_2 |
	SVGA_CAP_COMMAND_BUFFERS

// Second capability word (SVGA_REG_CAP2); nothing advertised
const SVGA_CAP2_NONE = 0x00000000

// FIFO header slots (word offsets from the start of FIFO memory)
const (
	SVGA_FIFO_MIN                  = 0
	SVGA_FIFO_MAX                  = 1
	SVGA_FIFO_NEXT_CMD             = 2
	SVGA_FIFO_STOP                 = 3
	SVGA_FIFO_CAPABILITIES         = 4
	SVGA_FIFO_FLAGS                = 5
	SVGA_FIFO_FENCE                = 6
	SVGA_FIFO_3D_HWVERSION         = 7
	SVGA_FIFO_PITCHLOCK            = 8
	SVGA_FIFO_CURSOR_ON            = 9
	SVGA_FIFO_CURSOR_X             = 10
	SVGA_FIFO_CURSOR_Y             = 11
	SVGA_FIFO_CURSOR_COUNT         = 12
	SVGA_FIFO_CURSOR_LAST_UPDATED  = 13
	SVGA_FIFO_RESERVED             = 14
	SVGA_FIFO_CURSOR_SCREEN_ID     = 15
	SVGA_FIFO_DEAD                 = 16
	SVGA_FIFO_3D_HWVERSION_REVISED = 17
	SVGA_FIFO_3D_CAPS              = 32
	SVGA_FIFO_3D_CAPS_LAST         = 32 + 255
	SVGA_FIFO_GUEST_3D_HWVERSION   = 288
	SVGA_FIFO_FENCE_GOAL           = 289
	SVGA_FIFO_BUSY                 = 290
	SVGA_FIFO_NUM_REGS             = 291
)

// FIFO capability bits published in SVGA_FIFO_CAPABILITIES
const (
	SVGA_FIFO_CAP_NONE                 = 0
	SVGA_FIFO_CAP_FENCE                = 1 << 0
	SVGA_FIFO_CAP_ACCELFRONT           = 1 << 1
	SVGA_FIFO_CAP_PITCHLOCK            = 1 << 2
	SVGA_FIFO_CAP_VIDEO                = 1 << 3
	SVGA_FIFO_CAP_CURSOR_BYPASS_3      = 1 << 4
	SVGA_FIFO_CAP_ESCAPE               = 1 << 5
	SVGA_FIFO_CAP_RESERVE              = 1 << 6
	SVGA_FIFO_CAP_SCREEN_OBJECT        = 1 << 7
	SVGA_FIFO_CAP_GMR2                 = 1 << 8
	SVGA_FIFO_CAP_3D_HWVERSION_REVISED = 1 << 9
	SVGA_FIFO_CAP_SCREEN_OBJECT_2      = 1 << 10
)

// SVGA_FIFO_CAPS_ADVERTISED is written to the FIFO CAPABILITIES slot on config-done
const SVGA_FIFO_CAPS_ADVERTISED = SVGA_FIFO_CAP_FENCE |
	SVGA_FIFO_CAP_ACCELFRONT |
	SVGA_FIFO_CAP_PITCHLOCK |
	SVGA_FIFO_CAP_CURSOR_BYPASS_3 |
	SVGA_FIFO_CAP_ESCAPE |
	SVGA_FIFO_CAP_RESERVE |
	SVGA_FIFO_CAP_SCREEN_OBJECT |
	SVGA_FIFO_CAP_GMR2

// FIFO geometry limits (bytes)
const (
	SVGA_FIFO_MIN_OFFSET = 16        // MIN must leave room for MIN/MAX/NEXT_CMD/STOP
	SVGA_FIFO_MIN_SPAN   = 10 * 1024 // MAX - MIN
	SVGA_FIFO_MAX_LOOP   = 1000      // Commands decoded per invocation
)

// Interrupt flags (SVGA_IRQSTATUS_PORT / SVGA_REG_IRQMASK)
const (
	SVGA_IRQFLAG_ANY_FENCE     = 0x1
	SVGA_IRQFLAG_FIFO_PROGRESS = 0x2
	SVGA_IRQFLAG_FENCE_GOAL    = 0x4
)

// Cursor visibility values (SVGA_REG_CURSOR_ON / SVGA_FIFO_CURSOR_ON)
const (
	SVGA_CURSOR_ON_HIDE           = 0
	SVGA_CURSOR_ON_SHOW           = 1
	SVGA_CURSOR_ON_REMOVE_FROM_FB = 2
	SVGA_CURSOR_ON_RESTORE_TO_FB  = 3
)

// Command opcodes
const (
	SVGA_CMD_INVALID_CMD          = 0
	SVGA_CMD_UPDATE               = 1
	SVGA_CMD_RECT_FILL            = 2
	SVGA_CMD_RECT_COPY            = 3
	SVGA_CMD_RECT_ROP_FILL        = 13
	SVGA_CMD_RECT_ROP_COPY        = 14
	SVGA_CMD_DEFINE_CURSOR        = 19
	SVGA_CMD_DEFINE_ALPHA_CURSOR  = 22
	SVGA_CMD_DRAW_GLYPH_CLIPPED   = 24
	SVGA_CMD_UPDATE_VERBOSE       = 25
	SVGA_CMD_SURFACE_ALPHA_BLEND  = 28
	SVGA_CMD_FRONT_ROP_FILL       = 29
	SVGA_CMD_FENCE                = 30
	SVGA_CMD_ESCAPE               = 33
	SVGA_CMD_DEFINE_SCREEN        = 34
	SVGA_CMD_DESTROY_SCREEN       = 35
	SVGA_CMD_DEFINE_GMRFB         = 36
	SVGA_CMD_BLIT_GMRFB_TO_SCREEN = 37
	SVGA_CMD_BLIT_SCREEN_TO_GMRFB = 38
	SVGA_CMD_ANNOTATION_FILL      = 39
	SVGA_CMD_ANNOTATION_COPY      = 40
	SVGA_CMD_DEFINE_GMR2          = 41
	SVGA_CMD_REMAP_GMR2           = 42
	SVGA_CMD_DEAD                 = 43
	SVGA_CMD_DEAD_2               = 44
	SVGA_CMD_NOP                  = 45
	SVGA_CMD_NOP_ERROR            = 46
	SVGA_CMD_MAX                  = 47
)

// 3D command range (recognized and skipped)
const (
	SVGA_3D_CMD_BASE = 1040
	SVGA_3D_CMD_MAX  = 2000
)

// REMAP_GMR2 flags
const (
	SVGA_REMAP_GMR2_PPN32      = 0
	SVGA_REMAP_GMR2_VIA_GMR    = 1 << 0
	SVGA_REMAP_GMR2_PPN64      = 1 << 1
	SVGA_REMAP_GMR2_SINGLE_PPN = 1 << 2
)

// Fixed argument word counts (opcode word excluded) for commands whose
// length never depends on their contents.
var svgaFixedArgs = map[uint32]int{
	SVGA_CMD_INVALID_CMD:          0,
	SVGA_CMD_UPDATE:               4,
	SVGA_CMD_RECT_FILL:            5,
	SVGA_CMD_RECT_COPY:            6,
	SVGA_CMD_RECT_ROP_FILL:        6,
	SVGA_CMD_RECT_ROP_COPY:        7,
	SVGA_CMD_UPDATE_VERBOSE:       5,
	SVGA_CMD_SURFACE_ALPHA_BLEND:  12,
	SVGA_CMD_FRONT_ROP_FILL:       6,
	SVGA_CMD_FENCE:                1,
	SVGA_CMD_DESTROY_SCREEN:       1,
	SVGA_CMD_DEFINE_GMRFB:         4,
	SVGA_CMD_BLIT_GMRFB_TO_SCREEN: 7,
	SVGA_CMD_BLIT_SCREEN_TO_GMRFB: 7,
	SVGA_CMD_ANNOTATION_FILL:      1,
	SVGA_CMD_ANNOTATION_COPY:      3,
	SVGA_CMD_DEFINE_GMR2:          2,
	SVGA_CMD_DEAD:                 0,
	SVGA_CMD_DEAD_2:               0,
	SVGA_CMD_NOP:                  0,
	SVGA_CMD_NOP_ERROR:            0,
}

// Display geometry
const (
	SVGA_MAX_WIDTH      = 2368
	SVGA_MAX_HEIGHT     = 1770
	SVGA_MAX_DIM        = 0x7FFF // Upper bound for any rectangle coordinate or extent
	SVGA_DEFAULT_WIDTH  = 640
	SVGA_DEFAULT_HEIGHT = 480
	SVGA_DEFAULT_BPP    = 32
	SVGA_HOST_BPP       = 32
)

// Cursor limits
const (
	SVGA_CURSOR_MAX_DIM    = 256
	SVGA_CURSOR_MAX_BPP    = 32
	SVGA_CURSOR_MASK_WORDS = 4096 // Capacity of each of the and/xor mask buffers
)

// Stub values for the multi-monitor and GMR register groups
const (
	SVGA_NUM_DISPLAYS           = 1
	SVGA_GMR_MAX_IDS            = 64
	SVGA_GMR_MAX_DESCRIPTOR_LEN = 4096
	SVGA_GMRS_MAX_PAGES         = 0x10000
)

// Device sizing defaults
const (
	SVGA_REDRAW_QUEUE_SIZE    = 512
	SVGA_DEFAULT_SCRATCH_SIZE = 0x8000
	SVGA_DEFAULT_VRAM_SIZE    = 16 * 1024 * 1024
	SVGA_DEFAULT_FIFO_SIZE    = 256 * 1024
)
