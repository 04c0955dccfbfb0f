// video_backend_headless_test.go - Tests for the headless frame sink

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

func TestHeadlessOutput_SetDisplayConfig(t *testing.T) {
	out := NewHeadlessVideoOutput()
	cfg := DisplayConfig{Width: 320, Height: 240, Scale: 2}
	if err := out.SetDisplayConfig(cfg); err != nil {
		t.Fatalf("SetDisplayConfig returned error: %v", err)
	}
	if got := out.GetDisplayConfig(); got.Width != 320 || got.Scale != 2 {
		t.Fatalf("expected 320 wide at scale 2, got %+v", got)
	}
	if err := out.SetDisplayConfig(DisplayConfig{Width: 0, Height: 240}); err == nil {
		t.Fatal("expected zero width to be rejected")
	}
}

func TestHeadlessOutput_FrameIsCopied(t *testing.T) {
	out := NewHeadlessVideoOutput()
	_ = out.SetDisplayConfig(DisplayConfig{Width: 2, Height: 1})
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := out.UpdateFrame(buf); err != nil {
		t.Fatalf("UpdateFrame failed: %v", err)
	}
	buf[0] = 99

	frame := out.Frame()
	if frame.Pix[0] != 1 || frame.Pix[7] != 8 {
		t.Fatalf("stored frame %v", frame.Pix)
	}
	if out.GetFrameCount() != 1 {
		t.Fatalf("expected 1 frame, got %d", out.GetFrameCount())
	}
}

func TestHeadlessOutput_Lifecycle(t *testing.T) {
	out := NewHeadlessVideoOutput()
	if out.IsStarted() {
		t.Fatal("started before Start")
	}
	_ = out.Start()
	if !out.IsStarted() {
		t.Fatal("not started after Start")
	}
	_ = out.Close()
	if out.IsStarted() {
		t.Fatal("still started after Close")
	}
	if out.WaitForVSync() != nil || out.GetRefreshRate() != 60 {
		t.Fatal("unexpected timing behaviour")
	}
}
