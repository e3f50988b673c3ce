// Copyright © 2015, The T Authors.

// Package window implements the editing core's windowing layer: a W
// owns a line-offset table computed by laying text out against a GUI
// collaborator's metrics, and a Frame tiles one or more W values
// horizontally.
package window

import (
	"github.com/8l/edit/edit"
	"github.com/8l/edit/gui"
)

// RingSize is the number of candidate screen-line offsets kept live
// while computing a lineinfo; 2 is the minimum that lets Scroll and
// ShowCursor both look one line behind the line they land on.
const RingSize = 2

// DefaultTabWidth is the tab stop width in space-widths, used when a W
// does not set TabWidth explicitly.
const DefaultTabWidth = 8

// A CursorLoc selects where ShowCursor places the cursor on screen.
type CursorLoc int

// Cursor placements for ShowCursor.
const (
	Top CursorLoc = iota
	Mid
	Bot
)

// A Rect is a window's pixel bounds within its frame.
type Rect struct{ X, Y, W, H int }

func (r Rect) Dx() int { return r.W }
func (r Rect) Dy() int { return r.H }

// A W is one text window: a buffer view with its own scroll position,
// cursor, and computed line table. The zero value is not usable; use
// New.
type W struct {
	Buf    *edit.EBuf
	Bounds Rect

	Start, Stop int64 // offset of the first rune displayed / first offset past the display
	Cursor      int64

	TabWidth int

	Tag        *W // non-nil when a tag mini-buffer is shown
	InFocus    bool
	InsertMode bool

	l    []int64 // l[i] is the offset of the first rune of screen line i
	rev  uint32  // buffer revision l was computed against
	hrig int     // horizontal rigidity, in pixel-fraction terms; 0 = flexible
}

// New returns a W displaying buf, starting at offset 0.
func New(buf *edit.EBuf) *W {
	return &W{Buf: buf, TabWidth: DefaultTabWidth}
}

// lineFn is called once per rune laid out by layoutLine; returning
// false stops the layout early (e.g. because the screen line has run
// past the bottom of the window).
type lineFn func(off int64, r rune, x, rw, sl int) bool

// layoutLine lays out buf starting at off, one source line's worth of
// runes (stopping at the rune after a '\n'), calling f for each rune
// with its pixel x position, pixel width, and wrapped screen-line
// index relative to off. It returns the offset just past the '\n', or
// the buffer's size if none was found; if f stops the layout early, it
// returns the offset of the rune f rejected.
func layoutLine(w *W, g gui.GUI, off int64, f lineFn) int64 {
	var r rune
	x, sl := 0, 0
	width := w.Bounds.W
	for r != '\n' && off < w.Buf.Size() {
		r = w.Buf.Get(off)
		var rw int
		switch {
		case r == '\t':
			tw := w.TabWidth * g.TextWidth([]rune{' '})
			if tw == 0 {
				tw = w.TabWidth
			}
			rw = tw - x%tw
		case r == '\n':
			rw = 0
		default:
			rw = g.TextWidth([]rune{r})
		}

		if x+rw > width && x != 0 {
			x = 0
			sl++
		}

		if !f(off, r, x, rw, sl) {
			break
		}
		x += rw
		off++
	}
	return off
}

type lineinfo struct {
	beg, len int
	sl       [RingSize]int64
}

func pushoff(li *lineinfo, off int64, overwrite bool) bool {
	if li.len == RingSize {
		if !overwrite {
			return false
		}
		li.sl[li.beg] = off
		li.beg = (li.beg + 1) % RingSize
		return true
	}
	n := (li.beg + li.len) % RingSize
	li.sl[n] = off
	li.len++
	return true
}

// computeLineinfo lays out buf from off, recording up to RingSize
// candidate screen-line starts. If lim is negative, only the first
// RingSize screen lines are recorded (used by Scroll-down); otherwise
// layout stops at lim (used by Scroll-up, scanning one source line
// backward from a known offset, and by ShowCursor).
func computeLineinfo(w *W, g gui.GUI, off, lim int64) lineinfo {
	var li lineinfo
	bounded := lim >= 0
	curl := 0
	pushoff(&li, off, bounded)
	end := layoutLine(w, g, off, func(roff int64, r rune, x, rw, sl int) bool {
		if bounded && roff > lim {
			return false
		}
		if curl != sl {
			curl = sl
			pushoff(&li, roff, bounded)
		}
		return true
	})
	pushoff(&li, end, bounded)
	return li
}

// Scroll advances the top-of-window by n screen lines; negative scrolls
// backward.
func (w *W) Scroll(g gui.GUI, n int) {
	w.ensureLayout(g)
	if n == 0 {
		return
	}
	if n < 0 {
		start := w.Start
		for n < 0 {
			if start == 0 {
				break
			}
			bol := w.Buf.Bol(start - 1)
			li := computeLineinfo(w, g, bol, start-1)
			top := li.len - 2
			for ; n < 0 && top >= 0; top, n = top-1, n+1 {
				start = li.sl[(li.beg+top)%RingSize]
			}
		}
		w.Start = start
	} else {
		start := w.Start
		for n > 0 {
			li := computeLineinfo(w, g, start, -1)
			top := 1
			for ; n > 0 && top < li.len; top, n = top+1, n-1 {
				start = li.sl[(li.beg+top)%RingSize]
			}
			if top >= li.len {
				continue
			}
			break
		}
		w.Start = start
	}
	w.layout(g)
}

// ShowCursor scrolls w so the cursor appears at the requested screen
// region.
func (w *W) ShowCursor(g gui.GUI, where CursorLoc) {
	w.ensureLayout(g)
	bol := w.Buf.Bol(w.Cursor)
	li := computeLineinfo(w, g, bol, w.Cursor)
	w.Start = li.sl[(li.beg+li.len-2)%RingSize]
	w.layout(g)

	_, _, height := g.Font()
	if height == 0 {
		height = 1
	}
	nls := w.Bounds.H / height
	switch where {
	case Bot:
		w.Scroll(g, -nls+1)
	case Mid:
		w.Scroll(g, -nls/2)
	case Top:
		// Already positioned at the top by construction.
	}
}

// ensureLayout recomputes the line table if the buffer's Revision has
// changed since it was last computed. Edits not yet committed leave the
// revision unchanged and do not trigger a recomputation.
func (w *W) ensureLayout(g gui.GUI) {
	if w.rev == w.Buf.Revision() && w.l != nil {
		return
	}
	w.layout(g)
}

// layout recomputes w.l, the table of screen-line start offsets, for
// the lines currently visible starting at w.Start.
func (w *W) layout(g gui.GUI) {
	_, _, height := g.Font()
	if height == 0 {
		height = 1
	}
	nls := w.Bounds.H / height
	if nls < 1 {
		nls = 1
	}

	l := []int64{w.Start}
	off := w.Start
	curl := 0
	for len(l)-1 < nls {
		next := layoutLine(w, g, off, func(roff int64, r rune, x, rw, sl int) bool {
			if curl != sl {
				curl = sl
				l = append(l, roff)
			}
			return len(l)-1 < nls
		})
		curl = 0
		if next == off {
			break
		}
		off = next
		if off >= w.Buf.Size() {
			break
		}
	}
	w.l = l
	w.Stop = off
	w.rev = w.Buf.Revision()
}

// At locates the buffer offset displayed under pixel (x, y), relative
// to the window's bounds.
func (w *W) At(g gui.GUI, x, y int) int64 {
	w.ensureLayout(g)
	_, _, height := g.Font()
	if height == 0 {
		height = 1
	}
	sl := y / height
	if sl < 0 {
		sl = 0
	}
	if sl >= len(w.l) {
		sl = len(w.l) - 1
	}
	if sl < 0 {
		return w.Start
	}
	off := w.l[sl]
	found := off
	layoutLine(w, g, off, func(roff int64, r rune, rx, rw, rsl int) bool {
		if rsl != 0 {
			return false
		}
		if rx+rw > x {
			return false
		}
		found = roff + 1
		return true
	})
	return found
}
