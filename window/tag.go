// Copyright © 2015, The T Authors.

package window

import "github.com/8l/edit/edit"

// tagHeight is the pixel height reserved for a window's tag
// mini-buffer when shown.
const tagHeight = 20

// defaultTag is the preseeded command string shown in a freshly
// toggled-on tag window.
const defaultTag = "Put Get Look "

// TagToggle shows or hides w's tag mini-buffer. Each show creates a
// fresh tag buffer preseeded with a small, commonly used command
// string; hiding drops the tag, so edits to it do not persist across
// a hide.
func (w *W) TagToggle() {
	if w.Tag != nil {
		w.Tag = nil
		return
	}
	tagBuf := edit.New()
	for i, r := range defaultTag {
		tagBuf.Ins(int64(i), r)
	}
	tagBuf.Commit()
	t := New(tagBuf)
	t.Bounds = Rect{X: w.Bounds.X, Y: w.Bounds.Y, W: w.Bounds.W, H: tagHeight}
	w.Tag = t
}
