// terminal_host.go - Interactive keyboard host for the SVGA machine

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
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// TerminalHost reads single keys from stdin and hands them to a handler.
// When stdin is a terminal it is switched to raw mode for the lifetime of
// the host so keys arrive without Enter.
type TerminalHost struct {
	input        io.Reader
	handler      func(b byte) bool
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	oldTermState *term.State
}

// NewTerminalHost creates a host. The handler returns false to stop reading.
func NewTerminalHost(input io.Reader, handler func(b byte) bool) *TerminalHost {
	if input == nil {
		input = os.Stdin
	}
	return &TerminalHost{
		input:   input,
		handler: handler,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
		fd:      -1,
	}
}

// Start puts a terminal stdin in raw mode and begins reading in a goroutine
func (h *TerminalHost) Start() {
	if f, ok := h.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		h.fd = int(f.Fd())
		oldState, err := term.MakeRaw(h.fd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "terminal_host: failed to set raw mode: %v\n", err)
		} else {
			h.oldTermState = oldState
		}
	}

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)
		for {
			n, err := h.input.Read(buf)
			if n > 0 {
				b := buf[0]
				// Raw mode sends CR for Enter
				if b == '\r' {
					b = '\n'
				}
				select {
				case <-h.stopCh:
					return
				default:
				}
				if !h.handler(b) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
}

// Done is closed when the reader goroutine exits
func (h *TerminalHost) Done() <-chan struct{} {
	return h.done
}

// Stop restores the terminal. A read already blocked on stdin is abandoned;
// its key, if any, is discarded.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
		if h.oldTermState != nil {
			_ = term.Restore(h.fd, h.oldTermState)
			h.oldTermState = nil
		}
	})
}
