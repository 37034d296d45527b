// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import "errors"

var (
	// ErrHasParent is returned when attaching a node that already has a
	// parent, or releasing one that is still attached.
	ErrHasParent = errors.New("layer: node already has a parent")

	// ErrNotFound is returned for IDs that do not name a live node.
	ErrNotFound = errors.New("layer: node not found")

	// ErrNotBitmap is returned when a bitmap operation targets a group.
	ErrNotBitmap = errors.New("layer: node is not a bitmap")

	// ErrNotGroup is returned when appending children to a bitmap.
	ErrNotGroup = errors.New("layer: node is not a group")

	// ErrCycle is returned when an append would make a node its own ancestor.
	ErrCycle = errors.New("layer: node would become its own ancestor")

	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("layer: invalid size")
)
