// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

import "log/slog"

// DefaultBatchSize is the number of scanlines a Scheduler runs per frame.
const DefaultBatchSize = 100

// Option configures an Engine or a Scheduler.
// A Scheduler hands its options to every engine it creates.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer func(ScanSeed)
	batch    int
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.DiscardHandler),
		batch:  DefaultBatchSize,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for fill diagnostics.
// A nil logger keeps the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers fn to be called with every seed just before its
// scanline is processed.
func WithObserver(fn func(ScanSeed)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithBatchSize sets how many scanlines a Scheduler processes per frame.
// Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batch = n
		}
	}
}
