// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

import (
	"log/slog"
	"time"
)

type previewRun struct {
	x, y   int
	engine *Engine
}

type commitRun struct {
	engine  *Engine
	onDone  func(Stats)
	started time.Time
}

// Scheduler runs fills a batch of scanlines per frame.
//
// At most one preview and one commit are active. Frame callbacks hold the
// run they were scheduled for and do nothing once that run has been
// replaced, which is how previews are cancelled.
type Scheduler struct {
	driver  FrameDriver
	render  func()
	opts    []Option
	batch   int
	logger  *slog.Logger
	preview *previewRun
	commit  *commitRun
}

// NewScheduler creates a scheduler that steps fills from driver frames and
// calls render after every batch. A nil render is allowed.
func NewScheduler(driver FrameDriver, render func(), opts ...Option) *Scheduler {
	o := applyOptions(opts)
	if render == nil {
		render = func() {}
	}
	return &Scheduler{
		driver: driver,
		render: render,
		opts:   opts,
		batch:  o.batch,
		logger: o.logger,
	}
}

// Preview fills dst from the seed at (x, y) over the next frames.
//
// Calling Preview again with the same seed keeps the running preview.
// A different seed drops the old engine, clears dst and starts over.
// An out-of-bounds seed leaves dst cleared and returns ErrInvalidSeed.
func (s *Scheduler) Preview(x, y int, src Source, dst ClearableTarget, c FillColor) error {
	if p := s.preview; p != nil && p.x == x && p.y == y {
		return nil
	}
	if s.preview != nil {
		s.logger.Debug("fill: preview restarted", slog.Int("x", x), slog.Int("y", y))
	}
	s.preview = nil
	dst.Clear()

	e := NewEngine(src, dst, c, s.opts...)
	if err := e.Start(x, y); err != nil {
		s.render()
		return err
	}
	run := &previewRun{x: x, y: y, engine: e}
	s.preview = run
	s.driver.RequestFrame(func() { s.previewFrame(run) })
	return nil
}

func (s *Scheduler) previewFrame(run *previewRun) {
	if s.preview != run {
		return
	}
	done := run.engine.RunSliced(s.batch)
	s.render()
	if !done {
		s.driver.RequestFrame(func() { s.previewFrame(run) })
	}
}

// CancelPreview drops the active preview. Its pending frame callbacks
// become no-ops. The preview surface is left as is.
func (s *Scheduler) CancelPreview() {
	s.preview = nil
}

// Commit fills dst from the seed at (x, y), reading colours from src.
//
// The preview is cancelled and an unfinished earlier commit is completed
// synchronously first, so a destination never has two writers. The first
// batch runs before Commit returns; the rest run one batch per frame.
// onDone, if not nil, is called once when the fill is exhausted.
func (s *Scheduler) Commit(x, y int, src Source, dst Target, c FillColor, onDone func(Stats)) error {
	s.CancelPreview()
	s.Flush()

	e := NewEngine(src, dst, c, s.opts...)
	if err := e.Start(x, y); err != nil {
		return err
	}
	run := &commitRun{engine: e, onDone: onDone, started: time.Now()}
	s.commit = run
	s.commitFrame(run)
	return nil
}

func (s *Scheduler) commitFrame(run *commitRun) {
	if s.commit != run {
		return
	}
	if run.engine.RunSliced(s.batch) {
		s.finish(run)
		s.render()
		return
	}
	s.driver.RequestFrame(func() { s.commitFrame(run) })
	s.render()
}

// Flush completes the active commit synchronously.
func (s *Scheduler) Flush() {
	run := s.commit
	if run == nil {
		return
	}
	run.engine.RunToCompletion()
	s.finish(run)
	s.render()
}

func (s *Scheduler) finish(run *commitRun) {
	s.commit = nil
	st := run.engine.Stats()
	s.logger.Info("fill: committed",
		slog.Int("rows", st.Rows),
		slog.Int("painted", st.Painted),
		slog.Duration("elapsed", time.Since(run.started)))
	if run.onDone != nil {
		run.onDone(st)
	}
}

// Busy reports whether a commit or an unfinished preview is active.
func (s *Scheduler) Busy() bool {
	if s.commit != nil {
		return true
	}
	return s.preview != nil && !s.preview.engine.Done()
}

// Previewing reports whether a preview is active, finished or not.
func (s *Scheduler) Previewing() bool {
	return s.preview != nil
}
