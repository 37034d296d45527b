// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fill implements the bucket tool's flood fill.
//
// The fill is a scanline region grower with soft edges. Every pixel is
// compared with the colour sampled at the seed through [Similarity], and the
// resulting mix amounts are multiplied along each horizontal walk, so paint
// fades out gradually as colours drift away from the seed instead of
// stopping at a hard threshold. Growth in a direction stops once the
// accumulated mix falls below [Epsilon].
//
// # Incremental execution
//
// An [Engine] holds the whole state of one fill: the seed colour, a FIFO of
// pending scanline seeds and the set of seeds already queued. [Engine.Step]
// processes exactly one scanline, so a caller can stop after any step and
// resume later without losing work. Running the steps in one go with
// [Engine.RunToCompletion] or in slices with [Engine.RunSliced] produces the
// same raster.
//
// [Scheduler] drives engines from a [FrameDriver]: live previews into a
// scratch surface while the pointer is down, and the final commit into the
// layer once it is released.
//
// # Sources and targets
//
// The engine never reads what it writes. Similarity is always measured on
// the [Source] (normally a snapshot of the layer taken when the fill
// starts) while paint goes to the [Target]. Both can be the same pixmap
// only when the caller accepts that repainted pixels feed back into the
// comparison.
package fill
