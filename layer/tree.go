// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"fmt"
	"slices"
)

// ID addresses a node in a Tree. IDs of released nodes are reused.
type ID int

// Detached is the parent of nodes that are not attached to the tree.
const Detached ID = -1

// Kind distinguishes group nodes from bitmap layers.
type Kind uint8

const (
	// KindGroup is a node that only holds children.
	KindGroup Kind = iota
	// KindBitmap is a raster layer.
	KindBitmap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindBitmap:
		return "bitmap"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

type node struct {
	kind     Kind
	parent   ID
	children []ID
	bitmap   *Bitmap
	preview  bool
	alive    bool
}

// Tree is a layer document of a fixed canvas size. Its root is a group.
// Tree is not safe for concurrent use.
type Tree struct {
	width, height int
	nodes         []node
	free          []ID
	root          ID

	// structural is set by changes that invalidate the whole composite.
	structural bool
}

// NewTree creates a document of the given size with an empty root group.
func NewTree(width, height int) (*Tree, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	t := &Tree{width: width, height: height, structural: true}
	t.root = t.alloc(node{kind: KindGroup})
	return t, nil
}

func (t *Tree) alloc(n node) ID {
	n.parent = Detached
	n.alive = true
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return ID(len(t.nodes) - 1)
}

func (t *Tree) get(id ID) (*node, error) {
	if id < 0 || int(id) >= len(t.nodes) || !t.nodes[id].alive {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return &t.nodes[id], nil
}

// Root returns the root group.
func (t *Tree) Root() ID { return t.root }

// Width returns the canvas width.
func (t *Tree) Width() int { return t.width }

// Height returns the canvas height.
func (t *Tree) Height() int { return t.height }

// Len returns the number of live nodes, the root included.
func (t *Tree) Len() int { return len(t.nodes) - len(t.free) }

// NewGroup creates a detached group.
func (t *Tree) NewGroup() ID {
	return t.alloc(node{kind: KindGroup})
}

// NewBitmap creates a detached transparent bitmap of the given size.
func (t *Tree) NewBitmap(width, height int) (ID, error) {
	b, err := NewBitmap(width, height)
	if err != nil {
		return Detached, err
	}
	return t.AddBitmap(b), nil
}

// AddBitmap adds b to the arena as a detached node.
func (t *Tree) AddBitmap(b *Bitmap) ID {
	return t.alloc(node{kind: KindBitmap, bitmap: b})
}

// Kind returns the kind of a node.
func (t *Tree) Kind(id ID) (Kind, error) {
	n, err := t.get(id)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// Bitmap returns the bitmap of a bitmap node.
func (t *Tree) Bitmap(id ID) (*Bitmap, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	if n.kind != KindBitmap {
		return nil, fmt.Errorf("%w: %d is a %s", ErrNotBitmap, id, n.kind)
	}
	return n.bitmap, nil
}

// Parent returns the parent of id, or Detached.
func (t *Tree) Parent(id ID) ID {
	n, err := t.get(id)
	if err != nil {
		return Detached
	}
	return n.parent
}

// Children returns a copy of the child list of id.
func (t *Tree) Children(id ID) []ID {
	n, err := t.get(id)
	if err != nil {
		return nil
	}
	return slices.Clone(n.children)
}

// AppendChild attaches child as the last child of parent.
// A node that already has a parent is rejected with ErrHasParent.
func (t *Tree) AppendChild(parent, child ID) error {
	p, err := t.get(parent)
	if err != nil {
		return err
	}
	c, err := t.get(child)
	if err != nil {
		return err
	}
	if p.kind != KindGroup {
		return fmt.Errorf("%w: %d is a %s", ErrNotGroup, parent, p.kind)
	}
	if c.parent != Detached {
		return fmt.Errorf("%w: %d is a child of %d", ErrHasParent, child, c.parent)
	}
	for a := parent; a != Detached; a = t.nodes[a].parent {
		if a == child {
			return fmt.Errorf("%w: %d under %d", ErrCycle, child, parent)
		}
	}
	if child == t.root {
		return fmt.Errorf("%w: root %d", ErrCycle, child)
	}

	p.children = append(p.children, child)
	c.parent = parent
	t.structural = true
	return nil
}

// RemoveChild detaches child from parent. It does nothing when child is
// not a child of parent.
func (t *Tree) RemoveChild(parent, child ID) error {
	p, err := t.get(parent)
	if err != nil {
		return err
	}
	c, err := t.get(child)
	if err != nil {
		return err
	}
	if c.parent != parent {
		return nil
	}
	p.children = slices.DeleteFunc(p.children, func(id ID) bool { return id == child })
	c.parent = Detached
	t.structural = true
	return nil
}

// Release frees a detached node and its subtree. Their IDs become invalid.
func (t *Tree) Release(id ID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if n.parent != Detached || id == t.root {
		return fmt.Errorf("%w: cannot release attached node %d", ErrHasParent, id)
	}
	t.release(id)
	return nil
}

func (t *Tree) release(id ID) {
	for _, c := range t.nodes[id].children {
		t.release(c)
	}
	t.nodes[id] = node{}
	t.free = append(t.free, id)
}

// SetPreview flags a node as a transient preview layer.
func (t *Tree) SetPreview(id ID, preview bool) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	n.preview = preview
	return nil
}

// IsPreview reports whether id is flagged as a preview layer.
func (t *Tree) IsPreview(id ID) bool {
	n, err := t.get(id)
	return err == nil && n.preview
}

// Walk visits the attached nodes depth-first in child order, starting at
// the root with depth 0. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(id ID, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id ID, depth int, fn func(ID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, c := range t.nodes[id].children {
		t.walk(c, depth+1, fn)
	}
}

// FirstBitmap returns the first attached bitmap that is not a preview.
func (t *Tree) FirstBitmap() (ID, error) {
	found := Detached
	t.Walk(func(id ID, _ int) bool {
		if found != Detached {
			return false
		}
		n := &t.nodes[id]
		if n.kind == KindBitmap && !n.preview {
			found = id
		}
		return true
	})
	if found == Detached {
		return Detached, fmt.Errorf("%w: no bitmap layer", ErrNotFound)
	}
	return found, nil
}

// Resize changes the canvas size and resizes every bitmap in the arena,
// keeping content anchored at the top-left.
func (t *Tree) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	for i := range t.nodes {
		if n := &t.nodes[i]; n.alive && n.kind == KindBitmap {
			if err := n.bitmap.Resize(width, height); err != nil {
				return err
			}
		}
	}
	t.width, t.height = width, height
	t.structural = true
	return nil
}
