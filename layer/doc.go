// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package layer holds the document: a tree of groups and bitmap layers.
//
// Nodes live in an arena owned by [Tree] and are addressed by [ID]. A node
// has at most one parent; [Detached] marks nodes without one. Rendering
// composites bitmaps depth-first in child order, each with its own opacity
// and blend mode.
//
// A [Bitmap] is both the destination and, through [Bitmap.Snapshot], the
// source of a flood fill. Writes record tile damage so a presenter can
// re-composite only what changed with [Tree.RenderDamaged].
package layer
