// Copyright © 2015, The T Authors.

// Package gui defines the contract between the editing core and a
// rendering surface, and provides a golang.org/x/exp/shiny-backed
// implementation of it.
package gui

import "image/color"

// Static geometry a GUI backend reports once at startup.
type Geometry struct {
	Border, HMargin, VMargin int
	ActionR                  [4]int // grip rectangle: x, y, w, h
}

// A Rect is a clip rectangle passed to drawing calls.
type Rect struct {
	X, Y, W, H int
}

// A Pointer shape requested by setpointer.
type Pointer int

// Pointer shapes the core may request.
const (
	PointerArrow Pointer = iota
	PointerText
	PointerHand
)

// GUI is the rendering-surface contract the editing core expects. An
// implementation owns one on-screen frame and a single readable fd
// that becomes ready whenever NextEvent would return non-nil; the
// dispatcher registers that fd with an evloop.Loop instead of polling.
type GUI interface {
	// Init starts the backend and returns an fd that becomes readable
	// whenever an event is pending.
	Init() (fd int, err error)
	// Fini releases backend resources.
	Fini()
	// Sync flushes any batched drawing to the screen.
	Sync()

	// Font returns the backend's fixed ascent/descent/height metrics,
	// in pixels.
	Font() (ascent, descent, height int)
	// TextWidth returns the pixel width of rs rendered in the current
	// font.
	TextWidth(rs []rune) int

	DrawText(clip Rect, rs []rune, x, y int, c color.Color)
	DrawRect(clip Rect, x, y, w, h int, c color.Color)
	DrawCursor(clip Rect, insertMode bool, x, y, w int)
	Decorate(clip Rect, modified bool, c color.Color)
	SetPointer(p Pointer)

	// NextEvent returns the next pending event, or ok=false if none is
	// queued. It never blocks.
	NextEvent() (ev Event, ok bool)

	// Geometry returns the backend's static layout constants.
	Geometry() Geometry
}

// An Event is one of Resize, Key, MouseDown, MouseUp, or MouseSelect.
type Event interface{ isEvent() }

// Resize reports the frame's new pixel dimensions.
type Resize struct{ W, H int }

// Key reports a key press. Esc and Backspace use their ASCII control
// codes; arrow, page and function keys are encoded as runes in the
// Unicode private-use area. See the Key* constants.
type Key struct{ Rune rune }

// A mouse button identifier, 1-3 as in X11 convention.
type Button int

// MouseDown reports a button press at a pixel location.
type MouseDown struct {
	Button  Button
	X, Y    int
}

// MouseUp reports a button release at a pixel location.
type MouseUp struct {
	Button  Button
	X, Y    int
}

// MouseSelect reports pointer motion during a drag selection.
type MouseSelect struct{ X, Y int }

func (Resize) isEvent()      {}
func (Key) isEvent()         {}
func (MouseDown) isEvent()   {}
func (MouseUp) isEvent()     {}
func (MouseSelect) isEvent() {}

// Encodings for non-printable keys: ASCII controls for Esc and
// Backspace, the private-use area for the rest.
const (
	KeyEsc       rune = 0x1b
	KeyBackspace rune = 0x08
	KeyLeft      rune = 0xE001
	KeyRight     rune = 0xE002
	KeyUp        rune = 0xE003
	KeyDown      rune = 0xE004
	KeyPageUp    rune = 0xE005
	KeyPageDown  rune = 0xE006
	KeyF1        rune = 0xE010
)
