// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

// FrameDriver schedules work for the next frame, the way
// requestAnimationFrame does in a browser.
type FrameDriver interface {
	RequestFrame(fn func())
}

// FrameQueue is a cooperative FrameDriver for a single-threaded host loop.
// The host calls RunFrame once per frame, typically from its draw callback.
// FrameQueue is not safe for concurrent use.
type FrameQueue struct {
	pending []func()
	frames  int
}

// RequestFrame queues fn for the next RunFrame.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// RunFrame runs the callbacks requested before it was called and returns
// how many ran. Callbacks requested while the frame runs wait for the next
// frame.
func (q *FrameQueue) RunFrame() int {
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn()
	}
	q.frames++
	return len(fns)
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Frames returns how many frames have run.
func (q *FrameQueue) Frames() int {
	return q.frames
}

// Drain runs frames until nothing is pending or maxFrames frames have run,
// and returns the number of frames run. A maxFrames below 1 means no limit.
func (q *FrameQueue) Drain(maxFrames int) int {
	n := 0
	for len(q.pending) > 0 && (maxFrames < 1 || n < maxFrames) {
		q.RunFrame()
		n++
	}
	return n
}
