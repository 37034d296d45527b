// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

import (
	"fmt"
	"image/color"
	"log/slog"
)

// Source is the raster a fill reads colours from.
// Reads outside the bounds are never issued.
type Source interface {
	Width() int
	Height() int
	NRGBAAt(x, y int) color.NRGBA
}

// Target receives the paint. BlendNRGBA composites c over the pixel at
// (x, y) with straight-alpha source-over, scaling c's alpha by alpha.
type Target interface {
	BlendNRGBA(x, y int, c color.NRGBA, alpha float64)
}

// ClearableTarget is a Target that can be reset to transparent, such as a
// preview surface.
type ClearableTarget interface {
	Target
	Clear()
}

// FillColor is the paint colour: 8-bit RGB plus alpha in [0, 1].
type FillColor struct {
	R, G, B uint8
	A       float64
}

// RGBA returns the colour with the given alpha.
func RGBA(r, g, b uint8, a float64) FillColor {
	return FillColor{R: r, G: g, B: b, A: a}
}

func (c FillColor) opaque() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// State is the life-cycle state of an Engine.
type State uint8

const (
	// StateIdle is a new engine that has not been started.
	StateIdle State = iota
	// StateRunning has queued seeds left.
	StateRunning
	// StateExhausted has finished; the engine cannot be restarted.
	StateExhausted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Stats counts the work done by an Engine.
type Stats struct {
	Rows     int // scanlines processed
	Enqueued int // seeds queued, including the initial one
	Painted  int // blend calls issued on the target
}

// Engine is one flood fill. It is single-use and not safe for concurrent
// use; drop it to cancel.
type Engine struct {
	src   Source
	dst   Target
	color FillColor
	paint color.NRGBA
	opts  options

	width, height int
	seed          color.NRGBA
	state         State
	queue         RegionQueue
	visited       *VisitedSet
	stats         Stats
}

// NewEngine creates an idle engine that reads from src and paints c into dst.
func NewEngine(src Source, dst Target, c FillColor, opts ...Option) *Engine {
	return &Engine{
		src:    src,
		dst:    dst,
		color:  c,
		paint:  c.opaque(),
		opts:   applyOptions(opts),
		width:  src.Width(),
		height: src.Height(),
	}
}

// Start samples the seed colour at (x, y) and queues the first scanline.
//
// It returns an error wrapping ErrInvalidSeed when (x, y) is outside the
// source; the engine then stays idle. Start panics if the engine has
// already been started.
func (e *Engine) Start(x, y int) error {
	if e.state != StateIdle {
		panic(fmt.Errorf("%w: Start on %s engine", ErrEngineMisuse, e.state))
	}
	if x < 0 || y < 0 || x >= e.width || y >= e.height {
		e.opts.logger.Warn("fill: seed rejected",
			slog.Int("x", x), slog.Int("y", y),
			slog.Int("width", e.width), slog.Int("height", e.height))
		return fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrInvalidSeed, x, y, e.width, e.height)
	}

	e.seed = e.src.NRGBAAt(x, y)
	e.visited = NewVisitedSet(e.width, e.height)
	e.visited.Add(x, y)
	e.queue.Push(&ScanSeed{X: x, Y: y, Mix: 1, EndX: x})
	e.stats.Enqueued = 1
	e.state = StateRunning

	e.opts.logger.Debug("fill: started",
		slog.Int("x", x), slog.Int("y", y),
		slog.Any("seed", e.seed), slog.Float64("alpha", e.color.A))
	return nil
}

// Step processes exactly one queued scanline. It panics unless the engine
// is running.
func (e *Engine) Step() {
	if e.state != StateRunning {
		panic(fmt.Errorf("%w: Step on %s engine", ErrEngineMisuse, e.state))
	}

	s := *e.queue.Pop()
	if e.opts.observer != nil {
		e.opts.observer(s)
	}
	e.scanRow(s)
	e.stats.Rows++

	if e.queue.Len() == 0 {
		e.state = StateExhausted
		e.visited = nil
		e.opts.logger.Debug("fill: exhausted",
			slog.Int("rows", e.stats.Rows),
			slog.Int("enqueued", e.stats.Enqueued),
			slog.Int("painted", e.stats.Painted))
	}
}

// RunToCompletion steps until the engine is exhausted and returns the
// number of scanlines processed by this call.
func (e *Engine) RunToCompletion() int {
	if e.state == StateIdle {
		panic(fmt.Errorf("%w: run on idle engine", ErrEngineMisuse))
	}
	n := 0
	for e.state == StateRunning {
		e.Step()
		n++
	}
	return n
}

// RunSliced runs at most batch scanlines and reports whether the engine is
// exhausted. A batch below 1 runs a single scanline.
func (e *Engine) RunSliced(batch int) bool {
	if e.state == StateIdle {
		panic(fmt.Errorf("%w: run on idle engine", ErrEngineMisuse))
	}
	batch = max(batch, 1)
	for i := 0; i < batch && e.state == StateRunning; i++ {
		e.Step()
	}
	return e.state == StateExhausted
}

// State returns the life-cycle state.
func (e *Engine) State() State { return e.state }

// Done reports whether the fill has finished.
func (e *Engine) Done() bool { return e.state == StateExhausted }

// Pending returns the number of queued scanlines.
func (e *Engine) Pending() int { return e.queue.Len() }

// Seed returns the colour sampled by Start.
func (e *Engine) Seed() color.NRGBA { return e.seed }

// Stats returns the work counters so far.
func (e *Engine) Stats() Stats { return e.stats }
