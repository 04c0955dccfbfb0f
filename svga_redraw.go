// svga_redraw.go - Delayed redraw queue

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

// Rect is a screen rectangle in pixels
type Rect struct {
	X, Y, W, H int
}

// RectSink receives flushed rectangles; DisplaySurface satisfies it
type RectSink interface {
	UpdateRect(x, y, w, h int)
}

// RedrawQueue batches damaged rectangles until the next display refresh.
// Entries keep notification order and are never merged. A pending full
// redraw (invalidated) supersedes every queued entry.
type RedrawQueue struct {
	rects       [SVGA_REDRAW_QUEUE_SIZE]Rect
	count       int
	invalidated bool
	flushes     uint64
}

// Append queues r, flushing into sink first when the queue is full
func (q *RedrawQueue) Append(r Rect, sink RectSink) {
	if q.count == len(q.rects) {
		q.Flush(sink)
	}
	q.rects[q.count] = r
	q.count++
}

// Flush hands every queued rectangle to sink in order and empties the
// queue. While invalidated the entries are dropped instead.
func (q *RedrawQueue) Flush(sink RectSink) {
	q.flushes++
	if q.invalidated || sink == nil {
		q.count = 0
		return
	}
	for i := 0; i < q.count; i++ {
		r := q.rects[i]
		sink.UpdateRect(r.X, r.Y, r.W, r.H)
	}
	q.count = 0
}

// Invalidate requests a full-surface redraw
func (q *RedrawQueue) Invalidate() {
	q.invalidated = true
}

func (q *RedrawQueue) Invalidated() bool {
	return q.invalidated
}

// TakeInvalidated clears the full-redraw request and reports whether it was set
func (q *RedrawQueue) TakeInvalidated() bool {
	was := q.invalidated
	q.invalidated = false
	return was
}

func (q *RedrawQueue) Len() int {
	return q.count
}

// Pending returns a copy of the queued rectangles
func (q *RedrawQueue) Pending() []Rect {
	out := make([]Rect, q.count)
	copy(out, q.rects[:q.count])
	return out
}

// Flushes counts flush passes, implicit ones included
func (q *RedrawQueue) Flushes() uint64 {
	return q.flushes
}

func (q *RedrawQueue) Reset() {
	q.count = 0
	q.invalidated = false
}
