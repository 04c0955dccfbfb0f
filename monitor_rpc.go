// monitor_rpc.go - JSON-RPC register monitor

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
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
)

// RegisterParams addresses one SVGA register
type RegisterParams struct {
	Index uint32 `json:"index"`
	Value uint32 `json:"value,omitempty"`
}

type RegisterResult struct {
	Index uint32 `json:"index"`
	Value uint32 `json:"value"`
}

// StatusResult is the reply to svga.status
type StatusResult struct {
	Enabled     bool      `json:"enabled"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	BPP         int       `json:"bpp"`
	Stride      int       `json:"stride"`
	IRQStatus   uint32    `json:"irqStatus"`
	IRQMask     uint32    `json:"irqMask"`
	FIFOPending int       `json:"fifoPending"`
	Stats       SVGAStats `json:"stats"`
}

// monitorHandler serves svga.* methods against one device
type monitorHandler struct {
	dev *SVGADevice
}

func (h monitorHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Notif {
		return
	}
	switch req.Method {
	case "svga.readRegister":
		var p RegisterParams
		if !decodeParams(ctx, conn, req, &p) {
			return
		}
		conn.Reply(ctx, req.ID, RegisterResult{Index: p.Index, Value: h.dev.PeekRegister(p.Index)})
	case "svga.writeRegister":
		var p RegisterParams
		if !decodeParams(ctx, conn, req, &p) {
			return
		}
		h.dev.PokeRegister(p.Index, p.Value)
		conn.Reply(ctx, req.ID, RegisterResult{Index: p.Index, Value: p.Value})
	case "svga.status":
		conn.Reply(ctx, req.ID, deviceStatus(h.dev))
	case "svga.reset":
		h.dev.Reset()
		conn.Reply(ctx, req.ID, true)
	default:
		conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("unknown method %q", req.Method),
		})
	}
}

func decodeParams(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, v any) bool {
	if req.Params == nil || json.Unmarshal(*req.Params, v) != nil {
		rpcErr := &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams}
		rpcErr.SetError("invalid parameters")
		conn.ReplyWithError(ctx, req.ID, rpcErr)
		return false
	}
	return true
}

func deviceStatus(dev *SVGADevice) StatusResult {
	mode := dev.Mode()
	status, mask := dev.IRQStatus()
	return StatusResult{
		Enabled:     dev.Enabled(),
		Width:       mode.Width,
		Height:      mode.Height,
		BPP:         mode.BitsPerPixel,
		Stride:      mode.Stride,
		IRQStatus:   status,
		IRQMask:     mask,
		FIFOPending: dev.FIFOPending(),
		Stats:       dev.Stats(),
	}
}

// ServeMonitorConn attaches the monitor to one stream and returns the
// connection; it closes when the peer disconnects
func ServeMonitorConn(ctx context.Context, rwc io.ReadWriteCloser, dev *SVGADevice) *jsonrpc2.Conn {
	return jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), monitorHandler{dev: dev})
}

// MonitorServer accepts TCP monitor connections
type MonitorServer struct {
	dev      *SVGADevice
	listener net.Listener
	wg       sync.WaitGroup
	mu       sync.Mutex
	conns    map[*jsonrpc2.Conn]struct{}
	logf     func(format string, args ...any)
}

// ListenMonitor binds the monitor to addr, e.g. "127.0.0.1:2035"
func ListenMonitor(addr string, dev *SVGADevice) (*MonitorServer, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("monitor listen on %s: %w", addr, err)
	}
	return &MonitorServer{
		dev:      dev,
		listener: lis,
		conns:    make(map[*jsonrpc2.Conn]struct{}),
		logf: func(format string, args ...any) {
			fmt.Printf("monitor: "+format+"\n", args...)
		},
	}, nil
}

func (s *MonitorServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until Close
func (s *MonitorServer) Serve(ctx context.Context) {
	connectionCount := 0
	for {
		c, err := s.listener.Accept()
		if err != nil {
			return
		}
		connectionCount++
		id := connectionCount
		s.logf("connection #%d from %s", id, c.RemoteAddr())
		conn := ServeMonitorConn(ctx, c, s.dev)
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			<-conn.DisconnectNotify()
			s.mu.Lock()
			delete(s.conns, conn)
			s.mu.Unlock()
			s.logf("connection #%d closed", id)
		}()
	}
}

// Close stops accepting and drops open connections
func (s *MonitorServer) Close() error {
	err := s.listener.Close()
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}
