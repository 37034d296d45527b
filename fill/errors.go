// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

import "errors"

var (
	// ErrInvalidSeed is returned when a fill is started outside the source bounds.
	ErrInvalidSeed = errors.New("fill: seed outside source bounds")

	// ErrEngineMisuse is the panic value (wrapped) for calls that violate the
	// engine life cycle, such as stepping an exhausted engine.
	ErrEngineMisuse = errors.New("fill: engine misuse")
)
