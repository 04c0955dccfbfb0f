// main.go - Intuition SVGA entry point

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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fogleman/gg"
)

type cliArgs struct {
	Run     cliRunCmd     `cmd:"" help:"Run a Lua guest driver against the adapter."`
	Inspect cliInspectCmd `cmd:"" help:"Print a saved device state file."`
}

type cliRunCmd struct {
	Script      string `arg:"" type:"existingfile" help:"Lua guest driver script."`
	Headless    bool   `help:"Run without a window."`
	VRAM        int    `name:"vram" default:"16" help:"VRAM size in MiB."`
	FIFO        int    `name:"fifo" default:"256" help:"FIFO size in KiB."`
	Scratch     int    `default:"32768" help:"Scratch register count."`
	Monitor     string `help:"Serve the JSON-RPC register monitor on this TCP address."`
	Events      string `help:"Serve the WebSocket event stream on this HTTP address."`
	LoadState   string `name:"load-state" type:"existingfile" help:"Restore device state before the script runs."`
	SaveState   string `name:"save-state" help:"Write device state here on exit."`
	Screenshot  string `help:"Write the final frame as PNG here on exit."`
	Interactive bool   `short:"i" help:"Read control keys from the terminal (s=sync u=refresh r=reset i=irq q=quit)."`
	Frames      int    `default:"2" help:"Refresh ticks run after the script in headless mode."`
}

type cliInspectCmd struct {
	State string `arg:"" type:"existingfile" help:"Device state file."`
	JSON  bool   `name:"json" help:"Print as JSON."`
}

// Optional extras offered by windowed outputs
type (
	statusOutput interface{ SetStatusSource(fn func() []string) }
	resetOutput  interface{ SetHardResetHandler(fn func()) }
	keyOutput    interface{ SetKeyHandler(fn func(byte)) }
	windowOutput interface{ Done() <-chan struct{} }
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nA VMware SVGA II compatible display adapter, driven from Lua.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	os.Exit(Main(os.Args[1:]))
}

func Main(argv []string) int {
	var args cliArgs
	parser, err := kong.New(
		&args,
		kong.Name("intuition_svga"),
		kong.Description("SVGA II display adapter with a scripted guest driver."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, FlagsLast: true}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	parsed, err := parser.Parse(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	switch parsed.Command() {
	case "run <script>":
		boilerPlate()
		return cmdRun(args.Run)
	case "inspect <state>":
		return cmdInspect(args.Inspect)
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n", parsed.Command())
	return 2
}

func cmdRun(args cliRunCmd) int {
	cfg := DefaultSVGAConfig()
	cfg.VRAMSize = args.VRAM << 20
	cfg.FIFOSize = args.FIFO << 10
	cfg.ScratchSize = args.Scratch
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	m, err := NewMachine(cfg, nil)
	if err != nil {
		fmt.Printf("Failed to initialize adapter: %v\n", err)
		return 1
	}
	if args.LoadState != "" {
		if err := LoadStateFromFile(m.Device, args.LoadState); err != nil {
			fmt.Printf("Error loading state: %v\n", err)
			return 1
		}
	}

	backend := VIDEO_BACKEND_EBITEN
	if args.Headless {
		backend = VIDEO_BACKEND_HEADLESS
	}
	output, err := NewVideoOutput(backend)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		return 1
	}
	compositor := NewVideoCompositor(output, m.Device, m.Display)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if args.Monitor != "" {
		srv, err := ListenMonitor(args.Monitor, m.Device)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		fmt.Printf("Monitor listening on %s\n", srv.Addr())
		go srv.Serve(ctx)
		defer srv.Close()
	}

	if args.Events != "" {
		stream := NewEventStream()
		m.Device.SetEventObserver(stream.Publish)
		httpSrv := &http.Server{Addr: args.Events, Handler: stream}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Printf("Event stream error: %v\n", err)
			}
		}()
		fmt.Printf("Event stream on ws://%s/\n", args.Events)
		defer stream.Close()
		defer httpSrv.Close()
	}

	if so, ok := output.(statusOutput); ok {
		so.SetStatusSource(statusLines(m, compositor))
	}
	if ro, ok := output.(resetOutput); ok {
		ro.SetHardResetHandler(m.Reset)
	}
	if ko, ok := output.(keyOutput); ok {
		ko.SetKeyHandler(func(b byte) { m.Console.WriteString(string(b)) })
	}

	if err := output.Start(); err != nil {
		fmt.Printf("Failed to start video: %v\n", err)
		return 1
	}
	defer output.Close()
	if !args.Headless {
		compositor.Start()
		defer compositor.Stop()
	}

	var host *TerminalHost
	if args.Interactive {
		host = NewTerminalHost(os.Stdin, controlKeys(m, compositor, cancel))
		host.Start()
		defer host.Stop()
	}

	script := NewGuestScript(m.Bus, cfg, m.Console, compositor.Tick)
	defer script.Close()
	if err := script.RunFile(ctx, args.Script); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	if args.Headless {
		for i, n := 0, args.Frames; i < n; i++ {
			compositor.Tick()
		}
	}

	var windowDone, hostDone <-chan struct{}
	if wo, ok := output.(windowOutput); ok && !args.Headless {
		windowDone = wo.Done()
	}
	if host != nil {
		hostDone = host.Done()
	}
	if windowDone != nil || hostDone != nil {
		select {
		case <-ctx.Done():
		case <-windowDone:
		case <-hostDone:
		}
	}

	status := 0
	if args.Screenshot != "" {
		if err := saveScreenshot(m.Display, args.Screenshot); err != nil {
			fmt.Printf("Error: %v\n", err)
			status = 1
		}
	}
	if args.SaveState != "" {
		if err := SaveStateToFile(m.Device, args.SaveState); err != nil {
			fmt.Printf("Error saving state: %v\n", err)
			status = 1
		}
	}
	return status
}

// controlKeys maps terminal keys onto device actions
func controlKeys(m *Machine, c *VideoCompositor, quit func()) func(b byte) bool {
	return func(b byte) bool {
		switch b {
		case 's':
			m.Device.PokeRegister(SVGA_REG_SYNC, 1)
			fmt.Printf("sync: %d words pending\r\n", m.Device.FIFOPending())
		case 'u':
			c.Tick()
		case 'r':
			m.Reset()
		case 'i':
			status, mask := m.Device.IRQStatus()
			fmt.Printf("irq status=0x%x mask=0x%x line=%v\r\n", status, mask, m.IRQ.Level())
		case 'q', 3:
			quit()
			return false
		}
		return true
	}
}

func statusLines(m *Machine, c *VideoCompositor) func() []string {
	return func() []string {
		st := m.Device.Stats()
		mode := m.Device.Mode()
		status, mask := m.Device.IRQStatus()
		return []string{
			fmt.Sprintf("%dx%d %dbpp pitch %d  enabled=%v  fifo=%d", mode.Width, mode.Height, mode.BitsPerPixel, mode.Stride, m.Device.Enabled(), m.Device.FIFOPending()),
			fmt.Sprintf("cmds %d  skipped %d  rewinds %d  fences %d  flushes %d  invalid %d", st.Commands, st.Skipped, st.Rewinds, st.Fences, st.Flushes, st.Invalid),
			fmt.Sprintf("irq 0x%x/0x%x  frames %d", status, mask, c.Frames()),
		}
	}
}

// saveScreenshot writes the presented frame, with the cursor drawn on top
func saveScreenshot(display *FrameDisplay, path string) error {
	dc := gg.NewContextForRGBA(display.Snapshot())
	cursor, x, y, visible := display.Cursor()
	if visible && cursor.Image != nil {
		dc.DrawImage(cursor.Image, x-cursor.HotX, y-cursor.HotY)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	return nil
}

func cmdInspect(args cliInspectCmd) int {
	state, vram, fifo, err := ReadStateFile(args.State)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Printf("version      %d\n", state.Version)
	fmt.Printf("id           0x%08x\n", state.ID)
	fmt.Printf("enable       %v (config %v)\n", state.Enable, state.Config)
	fmt.Printf("mode         %dx%d %dbpp\n", state.Width, state.Height, state.BPP)
	fmt.Printf("guest id     0x%x\n", state.GuestID)
	fmt.Printf("cursor       id %d at %d,%d on=%v\n", state.CursorID, state.CursorX, state.CursorY, state.CursorOn)
	fmt.Printf("irq          status 0x%x mask 0x%x\n", state.IRQStatus, state.IRQMask)
	fmt.Printf("pitch lock   0x%x (count %d)\n", state.Pitchlock, state.PitchlockCount)
	fmt.Printf("scratch      %d registers\n", len(state.Scratch))
	fmt.Printf("vram         %d bytes\n", len(vram))
	fmt.Printf("fifo         %d bytes\n", len(fifo))
	return 0
}
