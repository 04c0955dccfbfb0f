//go:build headless

package main

// NewEbitenOutput falls back to the in-memory output when built without
// window support
func NewEbitenOutput() (VideoOutput, error) {
	return NewHeadlessVideoOutput(), nil
}
