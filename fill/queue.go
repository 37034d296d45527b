// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

import "fmt"

// ScanSeed is a queued unit of work: grow the scanline on row Y around the
// columns X..EndX, starting from the accumulated mix Mix.
type ScanSeed struct {
	X, Y int
	Mix  float64
	EndX int
}

// Entry returns the column the scan starts from: the midpoint of X and
// EndX, rounded up.
func (s ScanSeed) Entry() int {
	if s.EndX <= s.X {
		return s.X
	}
	return s.X + (s.EndX-s.X+1)/2
}

// RegionQueue is the FIFO of pending scan seeds.
//
// Seeds are stored by pointer: a span that is still open on the row being
// scanned extends its queued seed in place.
type RegionQueue struct {
	items []*ScanSeed
	head  int
}

// Push appends s to the back of the queue.
func (q *RegionQueue) Push(s *ScanSeed) {
	q.items = append(q.items, s)
}

// Pop removes and returns the seed at the front of the queue.
// It panics if the queue is empty.
func (q *RegionQueue) Pop() *ScanSeed {
	if q.head >= len(q.items) {
		panic(fmt.Errorf("%w: pop from empty region queue", ErrEngineMisuse))
	}
	s := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 64 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return s
}

// Len returns the number of pending seeds.
func (q *RegionQueue) Len() int {
	return len(q.items) - q.head
}

// VisitedSet records which (x, y) seeds were queued during one fill.
// Keys are y*width + x, stored one bit each.
type VisitedSet struct {
	width  int
	height int
	bits   []uint64
	n      int
}

// NewVisitedSet creates an empty set for a width×height raster.
func NewVisitedSet(width, height int) *VisitedSet {
	width = max(width, 0)
	height = max(height, 0)
	return &VisitedSet{
		width:  width,
		height: height,
		bits:   make([]uint64, (width*height+63)/64),
	}
}

// Add inserts (x, y) and reports whether it was absent.
// Coordinates outside the raster are never added.
func (v *VisitedSet) Add(x, y int) bool {
	if x < 0 || x >= v.width || y < 0 || y >= v.height {
		return false
	}
	k := y*v.width + x
	word, bit := k>>6, uint64(1)<<(uint(k)&63)
	if v.bits[word]&bit != 0 {
		return false
	}
	v.bits[word] |= bit
	v.n++
	return true
}

// Has reports whether (x, y) is in the set.
func (v *VisitedSet) Has(x, y int) bool {
	if x < 0 || x >= v.width || y < 0 || y >= v.height {
		return false
	}
	k := y*v.width + x
	return v.bits[k>>6]&(uint64(1)<<(uint(k)&63)) != 0
}

// Len returns the number of keys in the set.
func (v *VisitedSet) Len() int {
	return v.n
}
