// Copyright © 2015, The T Authors.

package window

// minWinWidth is the narrowest a tiled window is allowed to become
// before a split is refused.
const minWinWidth = 20 // px

// borderWidth is the width, in pixels, of the divider drawn between
// adjacent windows in a frame.
const borderWidth = 1

// A Frame is the top-level screen area a GUI window backs. It tiles
// its windows horizontally, each with its own pixel-fraction left
// edge.
type Frame struct {
	Bounds Rect
	Wins   []*W
	xs     []float64 // left edge of Wins[i], as a fraction of Bounds.W
}

// NewFrame returns an empty Frame with the given pixel bounds.
func NewFrame(w, h int) *Frame {
	return &Frame{Bounds: Rect{W: w, H: h}}
}

// Add inserts w into the frame so its left edge sits at xfrac*Bounds.W.
// If the frame has no windows yet, w fills the whole frame regardless
// of xfrac. Add reports whether there was room.
func (fr *Frame) Add(xfrac float64, w *W) bool {
	if len(fr.Wins) == 0 {
		fr.Wins = []*W{w}
		fr.xs = []float64{0}
		fr.retile()
		return true
	}

	x := int(float64(fr.Bounds.W) * xfrac)
	i := fr.winAt(x)
	if x < minWinWidth {
		x = minWinWidth
	}
	if max := fr.Bounds.W - minWinWidth - borderWidth; x > max {
		x = max
	}
	if left := x - fr.Wins[i].Bounds.X; left < minWinWidth {
		x += minWinWidth - left
	}
	right := fr.Bounds.W
	if i+1 < len(fr.Wins) {
		right = fr.Wins[i+1].Bounds.X - borderWidth
	}
	if right-x < minWinWidth {
		return false
	}
	xfrac = float64(x) / float64(fr.Bounds.W)

	fr.Wins = append(fr.Wins, nil)
	copy(fr.Wins[i+2:], fr.Wins[i+1:])
	fr.Wins[i+1] = w

	fr.xs = append(fr.xs, 0)
	copy(fr.xs[i+2:], fr.xs[i+1:])
	fr.xs[i+1] = xfrac

	fr.retile()
	return true
}

// Remove deletes w from the frame, reporting whether it was found. The
// last window in a frame cannot be removed.
func (fr *Frame) Remove(w *W) bool {
	if len(fr.Wins) < 2 {
		return false
	}
	for i, fw := range fr.Wins {
		if fw != w {
			continue
		}
		fr.Wins = append(fr.Wins[:i], fr.Wins[i+1:]...)
		fr.xs = append(fr.xs[:i], fr.xs[i+1:]...)
		fr.retile()
		return true
	}
	return false
}

// winAt returns the index of the window currently occupying pixel
// column x.
func (fr *Frame) winAt(x int) int {
	if x < 0 {
		return 0
	}
	for i, w := range fr.Wins {
		if w.Bounds.X+w.Bounds.W > x {
			return i
		}
	}
	return len(fr.Wins) - 1
}

// Resize sets the frame's pixel dimensions and retiles its windows.
func (fr *Frame) Resize(w, h int) {
	fr.Bounds.W, fr.Bounds.H = w, h
	fr.retile()
}

func (fr *Frame) retile() {
	width := float64(fr.Bounds.W)
	for i := len(fr.Wins) - 1; i >= 0; i-- {
		w := fr.Wins[i]
		b := fr.Bounds
		if i > 0 {
			b.X = int(width * fr.xs[i])
		}
		if i < len(fr.Wins)-1 {
			b.W = fr.Wins[i+1].Bounds.X - borderWidth - b.X
		} else {
			b.W = fr.Bounds.W - b.X
		}
		w.Bounds = b
	}
}

// Which returns the window containing the pixel at (x, y), preferring
// a window's tag sub-window when the point falls within it.
func (fr *Frame) Which(x, y int) *W {
	for _, w := range fr.Wins {
		if x < w.Bounds.X || x >= w.Bounds.X+w.Bounds.W {
			continue
		}
		if w.Tag != nil && y < w.Tag.Bounds.H {
			return w.Tag
		}
		return w
	}
	return nil
}
