// Copyright © 2015, The T Authors.

package window

import (
	"image/color"

	"github.com/8l/edit/edit"
	"github.com/8l/edit/gui"
)

// Colors used when painting a window. A real deployment may want these
// configurable; the core only needs some color, so fixed values keep
// the collaborator contract simple.
var (
	bgColor   = color.White
	selColor  = color.RGBA{R: 0xcc, G: 0xee, B: 0xff, A: 0xff}
	textColor = color.Black
)

// Redraw paints w's background, selection, text, and (if focus) the
// cursor. Tabs jump to the next multiple of TabWidth space-widths,
// measured from the window's left margin.
func (w *W) Redraw(g gui.GUI, focus bool) {
	w.ensureLayout(g)
	clip := gui.Rect{X: w.Bounds.X, Y: w.Bounds.Y, W: w.Bounds.W, H: w.Bounds.H}
	g.DrawRect(clip, w.Bounds.X, w.Bounds.Y, w.Bounds.W, w.Bounds.H, bgColor)

	selBeg, selEnd := w.selection()
	_, _, height := g.Font()
	if height == 0 {
		height = 1
	}

	off := w.Start
	sl := 0
	for off < w.Stop && sl*height < w.Bounds.H {
		y := w.Bounds.Y + sl*height
		next := layoutLine(w, g, off, func(roff int64, r rune, x, rw, rsl int) bool {
			if rsl != 0 {
				return false
			}
			if selBeg <= roff && roff < selEnd {
				g.DrawRect(clip, w.Bounds.X+x, y, rw, height, selColor)
			}
			if r != '\n' {
				g.DrawText(clip, []rune{r}, w.Bounds.X+x, y+height, textColor)
			}
			if focus && w.InFocus && roff == w.Cursor {
				g.DrawCursor(clip, w.InsertMode, w.Bounds.X+x, y, rw)
			}
			return true
		})
		if next == off {
			break
		}
		off = next
		sl++
	}
}

// selection returns the buffer range currently marked by SelBeg/SelEnd,
// normalized so selBeg <= selEnd.
func (w *W) selection() (int64, int64) {
	b := w.Buf.GetMark(edit.SelBeg)
	e := w.Buf.GetMark(edit.SelEnd)
	if b == edit.NoMark || e == edit.NoMark {
		return -1, -1
	}
	if b > e {
		b, e = e, b
	}
	return b, e
}
