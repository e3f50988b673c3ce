// Copyright © 2015, The T Authors.

package editor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/8l/edit/edit"
	"github.com/8l/edit/evloop"
	"github.com/8l/edit/gui"
	"github.com/8l/edit/window"
)

// fakeGUI is a monospace, 1-pixel-per-rune stand-in, mirroring
// window's test double.
type fakeGUI struct{}

func (fakeGUI) Init() (int, error)                                { return -1, nil }
func (fakeGUI) Fini()                                              {}
func (fakeGUI) Sync()                                              {}
func (fakeGUI) Font() (int, int, int)                              { return 0, 0, 1 }
func (fakeGUI) TextWidth(rs []rune) int                            { return len(rs) }
func (fakeGUI) DrawText(gui.Rect, []rune, int, int, color.Color)   {}
func (fakeGUI) DrawRect(gui.Rect, int, int, int, int, color.Color) {}
func (fakeGUI) DrawCursor(gui.Rect, bool, int, int, int)           {}
func (fakeGUI) Decorate(gui.Rect, bool, color.Color)               {}
func (fakeGUI) SetPointer(gui.Pointer)                             {}
func (fakeGUI) NextEvent() (gui.Event, bool)                       { return nil, false }
func (fakeGUI) Geometry() gui.Geometry                             { return gui.Geometry{} }

func newTestDispatcher(t *testing.T, text string) (*Dispatcher, *window.W) {
	loop, err := evloop.New()
	require.NoError(t, err)
	t.Cleanup(func() { loop.Close() })

	buf := edit.New()
	for i, r := range text {
		buf.Ins(int64(i), r)
	}
	buf.Commit()

	w := window.New(buf)
	w.Bounds = window.Rect{W: 40, H: 40}
	fr := window.NewFrame(40, 40)
	fr.Add(0, w)

	d := New(loop, fakeGUI{}, fr)
	return d, w
}

func TestDispatchKeyInsertsAndMoves(t *testing.T) {
	d, w := newTestDispatcher(t, "")
	for _, r := range "ihi" {
		d.dispatch(gui.Key{Rune: r})
	}
	d.dispatch(gui.Key{Rune: gui.KeyEsc})

	rs := make([]rune, w.Buf.Size())
	for i := range rs {
		rs[i] = w.Buf.Get(int64(i))
	}
	require.Equal(t, "hi", string(rs))
	require.Equal(t, int64(1), w.Cursor)
	require.True(t, d.redrawArmed)
}

func TestDispatchCtrlQSetsExiting(t *testing.T) {
	d, _ := newTestDispatcher(t, "")
	d.dispatch(gui.Key{Rune: 'Q' - 'A' + 1})
	require.True(t, d.parser.Exiting)
}

func TestDispatchResizeRetilesFrame(t *testing.T) {
	d, w := newTestDispatcher(t, "")
	d.dispatch(gui.Resize{W: 80, H: 20})
	require.Equal(t, 80, d.fr.Bounds.W)
	require.Equal(t, 80, w.Bounds.W)
}

func TestMouseDownSelectsAndSetsCursor(t *testing.T) {
	d, w := newTestDispatcher(t, "hello world")
	d.dispatch(gui.MouseDown{Button: 1, X: 3, Y: 0})
	require.Equal(t, int64(3), w.Cursor)
	require.True(t, d.dragging)

	d.dispatch(gui.MouseSelect{X: 7, Y: 0})
	require.Equal(t, int64(7), w.Buf.GetMark(edit.SelEnd))

	d.dispatch(gui.MouseUp{Button: 1, X: 7, Y: 0})
	require.False(t, d.dragging)
}
