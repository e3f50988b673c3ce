// Copyright © 2015, The T Authors.

// Package editor implements the top-level dispatcher: it glues a
// gui.GUI's event stream to the windowing and modal command layers,
// transcribing original_source/main.c's event loop (curwin/exiting,
// the GResize/GKey switch, and the post-key show-cursor adjustment)
// into a single evloop.Loop source.
package editor

import (
	"time"

	"github.com/8l/edit/command"
	"github.com/8l/edit/edit"
	"github.com/8l/edit/evloop"
	"github.com/8l/edit/gui"
	"github.com/8l/edit/modal"
	"github.com/8l/edit/window"
)

// redrawDelay is how long a dirtying event waits before the coalesced
// repaint fires, per spec.md's "~16 ms" budget (roughly one frame at
// 60Hz).
const redrawDelay = 16 * time.Millisecond

// doubleClickWindow is the maximum gap between two button-2 presses at
// the same point for the second to be treated as an execute chord
// instead of two independent clicks.
const doubleClickWindow = 400 * time.Millisecond

// A Dispatcher owns the current window pointer, the pending-redraw
// flag, the double-click timer, and the drag-selection cursor that
// spec.md §4.8 assigns to the top-level loop.
type Dispatcher struct {
	loop *evloop.Loop
	gui  gui.GUI
	fr   *window.Frame

	cur    *window.W
	parser *modal.Parser

	redrawArmed bool

	dragging bool

	lastClickAt   time.Time
	lastClickAddr int64
	lastClickBtn  gui.Button

	// Exiting is set once the focused window's parser has consumed a
	// Ctrl-Q; Run returns after the dispatch pass that sets it.
	Exiting bool
}

// New builds a Dispatcher around an already-constructed Frame; the
// frame's first window becomes focused.
func New(loop *evloop.Loop, g gui.GUI, fr *window.Frame) *Dispatcher {
	d := &Dispatcher{loop: loop, gui: g, fr: fr}
	if len(fr.Wins) > 0 {
		d.focus(fr.Wins[0])
	}
	return d
}

func (d *Dispatcher) focus(w *window.W) {
	if d.cur != nil {
		d.cur.InFocus = false
	}
	d.cur = w
	d.cur.InFocus = true
	d.parser = modal.New(w)
}

// Run registers the GUI's wakeup fd with the loop and dispatches
// events until Ctrl-Q is seen. Closing the GUI window does not end it.
func (d *Dispatcher) Run() error {
	fd, err := d.gui.Init()
	if err != nil {
		return err
	}
	defer d.gui.Fini()

	if err := d.loop.Register(fd, evloop.Read, d.onGUIReadable); err != nil {
		return err
	}

	d.redrawNow()
	return d.loop.Run()
}

// onGUIReadable drains every event the backend has queued; a single
// wakeup byte only promises "at least one event is ready", not
// exactly one.
func (d *Dispatcher) onGUIReadable(fd int, ready evloop.Interest) bool {
	for {
		ev, ok := d.gui.NextEvent()
		if !ok {
			break
		}
		d.dispatch(ev)
		if d.Exiting {
			d.loop.Exit()
			return false
		}
	}
	return false
}

func (d *Dispatcher) dispatch(ev gui.Event) {
	switch e := ev.(type) {
	case gui.Resize:
		d.fr.Resize(e.W, e.H)
		d.dirty()

	case gui.Key:
		if d.cur == nil {
			return
		}
		if d.parser.Key(e.Rune) {
			d.dirty()
		}
		if d.parser.Exiting {
			d.Exiting = true
			return
		}
		d.adjustScroll()

	case gui.MouseDown:
		d.mouseDown(e)

	case gui.MouseSelect:
		if d.dragging && d.cur != nil {
			pos := d.cur.At(d.gui, e.X-d.cur.Bounds.X, e.Y-d.cur.Bounds.Y)
			d.cur.Buf.SetMark(edit.SelEnd, pos)
			d.dirty()
		}

	case gui.MouseUp:
		d.mouseUp(e)
	}
}

func (d *Dispatcher) mouseDown(e gui.MouseDown) {
	w := d.fr.Which(e.X, e.Y)
	if w == nil {
		return
	}
	if w != d.cur {
		d.focus(w)
	}
	pos := w.At(d.gui, e.X-w.Bounds.X, e.Y-w.Bounds.Y)
	w.Cursor = pos

	if e.Button == 2 {
		now := d.loop.Now()
		if now.Sub(d.lastClickAt) < doubleClickWindow && d.lastClickAddr == pos && d.lastClickBtn == e.Button {
			d.execAt(w, pos)
			d.lastClickAt = time.Time{}
			return
		}
		d.lastClickAt, d.lastClickAddr, d.lastClickBtn = now, pos, e.Button
	}

	d.dragging = true
	w.Buf.SetMark(edit.SelBeg, pos)
	w.Buf.SetMark(edit.SelEnd, pos)
	d.dirty()
}

func (d *Dispatcher) mouseUp(e gui.MouseUp) {
	d.dragging = false
	d.dirty()
}

// execAt runs the command line under pos as a chord, the way Acme's
// middle-button click executes the word or line it lands on.
func (d *Dispatcher) execAt(w *window.W, pos int64) {
	line := command.Line(w, pos)
	if _, err := command.Run(d.loop, d.fr, w, line); err != nil {
		appendError(w, err)
	}
	d.dirty()
}

func appendError(w *window.W, err error) {
	p0 := w.Buf.Size()
	for _, r := range err.Error() + "\n" {
		w.Buf.Ins(p0, r)
		p0++
	}
	w.Buf.Commit()
}

// adjustScroll mirrors main.c's post-key cursor-visibility check:
// scroll the focused window just enough to keep the cursor on screen.
func (d *Dispatcher) adjustScroll() {
	w := d.cur
	if w.Cursor >= w.Stop {
		w.ShowCursor(d.gui, window.Bot)
	} else if w.Cursor < w.Start {
		w.ShowCursor(d.gui, window.Top)
	}
}

// dirty arms the coalesced redraw alarm if one is not already pending.
func (d *Dispatcher) dirty() {
	if d.redrawArmed {
		return
	}
	d.redrawArmed = true
	_ = d.loop.Alarm(redrawDelay, func(time.Time) {
		d.redrawArmed = false
		d.redrawNow()
	})
}

// redrawNow repaints every window in the frame and publishes the
// result, mirroring main.c's win_redraw_frame.
func (d *Dispatcher) redrawNow() {
	for _, w := range d.fr.Wins {
		focus := w == d.cur
		w.Redraw(d.gui, focus)
		if w.Tag != nil {
			w.Tag.Redraw(d.gui, focus)
		}
	}
	d.gui.Sync()
}
