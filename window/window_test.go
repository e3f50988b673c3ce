// Copyright © 2015, The T Authors.

package window

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/8l/edit/edit"
	"github.com/8l/edit/gui"
)

// fakeGUI is a monospace, 1-pixel-per-rune stand-in for a real GUI
// collaborator, enough to exercise layout arithmetic deterministically.
type fakeGUI struct{}

func (fakeGUI) Init() (int, error) { return -1, nil }
func (fakeGUI) Fini()              {}
func (fakeGUI) Sync()              {}
func (fakeGUI) Font() (int, int, int)         { return 0, 0, 1 }
func (fakeGUI) TextWidth(rs []rune) int       { return len(rs) }
func (fakeGUI) DrawText(gui.Rect, []rune, int, int, color.Color)    {}
func (fakeGUI) DrawRect(gui.Rect, int, int, int, int, color.Color)  {}
func (fakeGUI) DrawCursor(gui.Rect, bool, int, int, int)            {}
func (fakeGUI) Decorate(gui.Rect, bool, color.Color)                {}
func (fakeGUI) SetPointer(gui.Pointer)                              {}
func (fakeGUI) NextEvent() (gui.Event, bool)                        { return nil, false }
func (fakeGUI) Geometry() gui.Geometry                              { return gui.Geometry{} }

func insString(e *edit.EBuf, p0 int64, s string) int64 {
	for _, r := range s {
		e.Ins(p0, r)
		p0++
	}
	return p0
}

func TestBackwardScrollAcrossWrap(t *testing.T) {
	g := fakeGUI{}
	buf := edit.New()
	text := strings.Repeat("a", 35) + "\n" + "x\n"
	insString(buf, 0, text)
	buf.Commit()

	w := New(buf)
	w.Bounds = Rect{W: 10, H: 100}
	w.Cursor = int64(len(text) - 2) // offset of 'x'

	w.ShowCursor(g, Top)
	require.Equal(t, int64(36), w.Start)

	w.Scroll(g, -1)
	require.Equal(t, int64(30), w.Start)
}

func TestLayoutWrapsLongLines(t *testing.T) {
	g := fakeGUI{}
	buf := edit.New()
	insString(buf, 0, strings.Repeat("b", 25))
	buf.Commit()

	w := New(buf)
	w.Bounds = Rect{W: 10, H: 100}
	w.layout(g)

	require.Equal(t, []int64{0, 10, 20}, w.l)
}

func TestFrameTilesTwoWindows(t *testing.T) {
	fr := NewFrame(100, 50)
	w1 := New(edit.New())
	fr.Add(0, w1)
	w2 := New(edit.New())
	fr.Add(0.5, w2)

	require.Len(t, fr.Wins, 2)
	require.Equal(t, 0, w1.Bounds.X)
	require.True(t, w2.Bounds.X > w1.Bounds.X)
	require.Equal(t, w2, fr.Which(90, 10))
}

func TestTagToggle(t *testing.T) {
	w := New(edit.New())
	w.Bounds = Rect{W: 50, H: 50}
	require.Nil(t, w.Tag)
	w.TagToggle()
	require.NotNil(t, w.Tag)
	w.TagToggle()
	require.Nil(t, w.Tag)
}
