// Copyright © 2015, The T Authors.

package modal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/8l/edit/edit"
	"github.com/8l/edit/gui"
	"github.com/8l/edit/window"
)

func contents(e *edit.EBuf) string {
	rs := make([]rune, e.Size())
	for i := range rs {
		rs[i] = e.Get(int64(i))
	}
	return string(rs)
}

func TestInsertMode(t *testing.T) {
	w := window.New(edit.New())
	p := New(w)

	for _, r := range "ihi" {
		p.Key(r)
	}
	require.Equal(t, "hi", contents(w.Buf))
	require.Equal(t, int64(2), w.Cursor)

	p.Key(gui.KeyEsc)
	require.Equal(t, int64(1), w.Cursor)
}

func TestUndoRedoCommands(t *testing.T) {
	buf := edit.New()
	w := window.New(buf)
	p := New(w)

	p.Key('i')
	p.Key('x')
	p.Key(gui.KeyEsc)
	require.Equal(t, "x", contents(buf))

	p.Key('u')
	require.Equal(t, "", contents(buf))

	p.Key('.')
	require.Equal(t, "x", contents(buf))
}

func TestMotionLH(t *testing.T) {
	buf := edit.New()
	for i, r := range "hello" {
		buf.Ins(int64(i), r)
	}
	w := window.New(buf)
	w.Cursor = 0
	p := New(w)

	p.Key('l')
	require.Equal(t, int64(1), w.Cursor)
	p.Key('l')
	p.Key('l')
	require.Equal(t, int64(3), w.Cursor)
	p.Key('h')
	require.Equal(t, int64(2), w.Cursor)
}

func TestWordMotion(t *testing.T) {
	buf := edit.New()
	for i, r := range "foo bar baz" {
		buf.Ins(int64(i), r)
	}
	w := window.New(buf)
	w.Cursor = 0
	p := New(w)

	p.Key('w')
	require.Equal(t, int64(4), w.Cursor)
	p.Key('w')
	require.Equal(t, int64(8), w.Cursor)
}

func TestCtrlQExits(t *testing.T) {
	w := window.New(edit.New())
	p := New(w)
	p.Key(ctrlQ)
	require.True(t, p.Exiting)
}

func TestCountedMotion(t *testing.T) {
	buf := edit.New()
	for i, r := range "0123456789" {
		buf.Ins(int64(i), r)
	}
	w := window.New(buf)
	w.Cursor = 0
	p := New(w)

	p.Key('3')
	p.Key('l')
	require.Equal(t, int64(3), w.Cursor)
}
