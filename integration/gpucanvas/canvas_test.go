// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint"
)

// mockTexture implements gpucontext.Texture for testing.
type mockTexture struct {
	width         int
	height        int
	data          []byte
	destroyed     bool
	premultiplied bool
}

func (m *mockTexture) Width() int              { return m.width }
func (m *mockTexture) Height() int             { return m.height }
func (m *mockTexture) Destroy()                { m.destroyed = true }
func (m *mockTexture) SetPremultiplied(p bool) { m.premultiplied = p }

// fullTexture supports whole-texture updates only.
type fullTexture struct {
	*mockTexture
	updates int
}

func (m *fullTexture) UpdateData(data []byte) error {
	m.data = append(m.data[:0], data...)
	m.updates++
	return nil
}

// regionTexture supports sub-rectangle updates.
type regionTexture struct {
	*mockTexture
	regions []image.Rectangle
	sizes   []int
}

func (m *regionTexture) UpdateRegion(x, y, w, h int, data []byte) error {
	m.regions = append(m.regions, image.Rect(x, y, x+w, y+h))
	m.sizes = append(m.sizes, len(data))
	return nil
}

type textureKind int

const (
	kindPlain textureKind = iota
	kindFull
	kindRegion
)

// mockCreator implements gpucontext.TextureCreator for testing.
type mockCreator struct {
	kind     textureKind
	textures []*mockTexture
	made     []gpucontext.Texture
	failNext bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	base := &mockTexture{width: width, height: height, data: append([]byte(nil), data...)}
	m.textures = append(m.textures, base)

	var tex gpucontext.Texture
	switch m.kind {
	case kindFull:
		tex = &fullTexture{mockTexture: base}
	case kindRegion:
		tex = &regionTexture{mockTexture: base}
	default:
		tex = base
	}
	m.made = append(m.made, tex)
	return tex, nil
}

// mockDrawer implements gpucontext.TextureDrawer for testing.
type mockDrawer struct {
	creator *mockCreator
	drawn   gpucontext.Texture
	x, y    float32
	draws   int
}

func (m *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.drawn, m.x, m.y = tex, x, y
	m.draws++
	return nil
}

func (m *mockDrawer) TextureCreator() gpucontext.TextureCreator {
	if m.creator == nil {
		return nil
	}
	return m.creator
}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return nil }
func (m *mockProvider) Queue() gpucontext.Queue               { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }

var opaqueRed = color.NRGBA{R: 255, A: 255}

func newCanvas(t *testing.T, w, h int, opts ...Option) (*paint.Editor, *Canvas) {
	t.Helper()
	ed, err := paint.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(ed, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return ed, c
}

func TestNew(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilEditor) {
		t.Errorf("New(nil) error = %v, want ErrNilEditor", err)
	}

	_, c := newCanvas(t, 30, 20)
	if w, h := c.Size(); w != 30 || h != 20 {
		t.Errorf("Size() = %dx%d, want 30x20", w, h)
	}
	if c.Backdrop() != (gputypes.Color{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("Backdrop() = %v, want opaque white", c.Backdrop())
	}
	if c.Texture() != nil || c.Frame() != nil {
		t.Error("texture or frame created before the first render")
	}
	if !c.IsDirty() {
		t.Error("new canvas should be dirty")
	}
}

func TestFormat(t *testing.T) {
	_, c := newCanvas(t, 4, 4)
	if got := c.Format(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", got)
	}

	_, c = newCanvas(t, 4, 4, WithDeviceProvider(&mockProvider{format: gputypes.TextureFormatBGRA8Unorm}))
	if got := c.Format(); got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v, want BGRA8Unorm", got)
	}

	_, c = newCanvas(t, 4, 4, WithDeviceProvider(&mockProvider{}))
	if got := c.Format(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("headless Format() = %v, want RGBA8Unorm", got)
	}
}

func TestRenderToCreatesTexture(t *testing.T) {
	_, c := newCanvas(t, 8, 8)
	creator := &mockCreator{kind: kindRegion}
	dc := &mockDrawer{creator: creator}

	if err := c.RenderToPosition(dc, 5, 7); err != nil {
		t.Fatalf("RenderToPosition() = %v", err)
	}
	if len(creator.textures) != 1 {
		t.Fatalf("created %d textures, want 1", len(creator.textures))
	}
	tex := creator.textures[0]
	if tex.width != 8 || tex.height != 8 || len(tex.data) != 8*8*4 {
		t.Errorf("texture = %dx%d with %d bytes", tex.width, tex.height, len(tex.data))
	}
	for i, b := range tex.data {
		if b != 255 {
			t.Fatalf("byte %d = %d, want the white backdrop", i, b)
		}
	}
	if !tex.premultiplied {
		t.Error("texture not marked premultiplied")
	}
	if dc.draws != 1 || dc.drawn != creator.made[0] || dc.x != 5 || dc.y != 7 {
		t.Errorf("draw = %d calls of %v at (%v, %v)", dc.draws, dc.drawn, dc.x, dc.y)
	}
	if c.IsDirty() {
		t.Error("canvas dirty after render")
	}
}

func TestRenderToUploadsDamagedRegions(t *testing.T) {
	ed, c := newCanvas(t, 100, 100)
	creator := &mockCreator{kind: kindRegion}
	dc := &mockDrawer{creator: creator}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}

	ed.CurrentLayer().BlendNRGBA(70, 70, opaqueRed, 1)
	if !c.IsDirty() {
		t.Fatal("canvas not dirty after painting")
	}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}

	tex := creator.made[0].(*regionTexture)
	want := image.Rect(64, 64, 100, 100)
	if len(tex.regions) != 1 || tex.regions[0] != want {
		t.Fatalf("regions = %v, want [%v]", tex.regions, want)
	}
	if tex.sizes[0] != 36*36*4 {
		t.Errorf("region data = %d bytes, want %d", tex.sizes[0], 36*36*4)
	}
	if got := c.Frame().NRGBAAt(70, 70); got != opaqueRed {
		t.Errorf("frame pixel = %v, want %v", got, opaqueRed)
	}
	if len(creator.textures) != 1 {
		t.Errorf("created %d textures, want 1", len(creator.textures))
	}
}

func TestRenderToFullUpdate(t *testing.T) {
	ed, c := newCanvas(t, 4, 4)
	creator := &mockCreator{kind: kindFull}
	dc := &mockDrawer{creator: creator}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}

	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}
	tex := creator.made[0].(*fullTexture)
	if tex.updates != 0 {
		t.Errorf("unchanged canvas uploaded %d times", tex.updates)
	}

	ed.CurrentLayer().BlendNRGBA(0, 0, opaqueRed, 1)
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}
	if tex.updates != 1 {
		t.Fatalf("updates = %d, want 1", tex.updates)
	}
	if got := tex.data[:4]; got[0] != 255 || got[1] != 0 || got[3] != 255 {
		t.Errorf("uploaded pixel = %v, want red", got)
	}
	if dc.draws != 3 {
		t.Errorf("draws = %d, want 3", dc.draws)
	}
}

func TestRenderToRecreatesStaticTexture(t *testing.T) {
	ed, c := newCanvas(t, 4, 4)
	creator := &mockCreator{}
	dc := &mockDrawer{creator: creator}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}

	ed.CurrentLayer().BlendNRGBA(1, 1, opaqueRed, 1)
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 2 {
		t.Fatalf("created %d textures, want 2", len(creator.textures))
	}
	if !creator.textures[0].destroyed {
		t.Error("replaced texture not destroyed")
	}
	if dc.drawn != creator.made[1] {
		t.Error("drew the stale texture")
	}
}

func TestSetBackdrop(t *testing.T) {
	_, c := newCanvas(t, 4, 4)
	creator := &mockCreator{kind: kindRegion}
	dc := &mockDrawer{creator: creator}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}

	c.SetBackdrop(gputypes.Color{R: 0, G: 0, B: 1, A: 1})
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}
	tex := creator.made[0].(*regionTexture)
	if len(tex.regions) != 1 || tex.regions[0] != image.Rect(0, 0, 4, 4) {
		t.Errorf("regions = %v, want the whole frame", tex.regions)
	}
	if got := c.Frame().NRGBAAt(2, 2); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("frame pixel = %v, want blue", got)
	}
}

func TestResizeRecreatesTexture(t *testing.T) {
	ed, c := newCanvas(t, 4, 4)
	creator := &mockCreator{kind: kindRegion}
	dc := &mockDrawer{creator: creator}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}

	if err := ed.Tree().Resize(6, 3); err != nil {
		t.Fatal(err)
	}
	if err := c.RenderTo(dc); err != nil {
		t.Fatal(err)
	}
	if len(creator.textures) != 2 {
		t.Fatalf("created %d textures, want 2", len(creator.textures))
	}
	if got := creator.textures[1]; got.width != 6 || got.height != 3 {
		t.Errorf("new texture = %dx%d, want 6x3", got.width, got.height)
	}
	if !creator.textures[0].destroyed {
		t.Error("old texture not destroyed after the new one was created")
	}
}

func TestRenderToErrors(t *testing.T) {
	_, c := newCanvas(t, 4, 4)
	if err := c.RenderTo(&mockDrawer{}); !errors.Is(err, ErrInvalidRenderer) {
		t.Errorf("RenderTo without creator error = %v, want ErrInvalidRenderer", err)
	}

	creator := &mockCreator{failNext: true}
	if err := c.RenderTo(&mockDrawer{creator: creator}); err == nil {
		t.Error("RenderTo should report texture creation failure")
	}
	dc := &mockDrawer{creator: creator}
	if err := c.RenderTo(dc); err != nil {
		t.Fatalf("RenderTo after failure = %v", err)
	}
	if dc.draws != 1 {
		t.Errorf("draws = %d, want 1", dc.draws)
	}
}

func TestClose(t *testing.T) {
	_, c := newCanvas(t, 4, 4)
	creator := &mockCreator{}
	if err := c.RenderTo(&mockDrawer{creator: creator}); err != nil {
		t.Fatal(err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !creator.textures[0].destroyed {
		t.Error("Close did not destroy the texture")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := c.RenderTo(&mockDrawer{creator: creator}); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("RenderTo after Close error = %v, want ErrCanvasClosed", err)
	}
	if _, err := c.Update(); !errors.Is(err, ErrCanvasClosed) {
		t.Errorf("Update after Close error = %v, want ErrCanvasClosed", err)
	}
}
