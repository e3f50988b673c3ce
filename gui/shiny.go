// Copyright © 2015, The T Authors.

package gui

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"sync"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/8l/edit/font"
)

// Shiny is a GUI implementation backed by golang.org/x/exp/shiny.
// Unlike a naive per-window event goroutine, Shiny exposes a single
// wakeup fd so the dispatcher can register it with an evloop.Loop
// instead of running a dedicated goroutine per window.
type Shiny struct {
	Width, Height int
	Title         string

	scr  screen.Screen
	win  screen.Window
	buf  screen.Buffer
	face *font.Face

	wakeR, wakeW *os.File

	mu    sync.Mutex
	queue []Event
}

// NewShiny returns a Shiny with the given initial pixel dimensions,
// using the default fixed-width face until SetFace loads another.
func NewShiny(width, height int, title string) *Shiny {
	return &Shiny{Width: width, Height: height, Title: title, face: font.Default()}
}

// SetFace replaces the face used for metrics and drawing, e.g. with
// one loaded via font.LoadPlan9.
func (s *Shiny) SetFace(f *font.Face) { s.face = f }

// Init opens the backing shiny window and starts the goroutine that
// translates its events, returning the read end of a pipe that
// becomes readable once an event is queued.
func (s *Shiny) Init() (int, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return 0, err
	}
	s.wakeR, s.wakeW = r, w

	ready := make(chan error, 1)
	go driver.Main(func(scr screen.Screen) {
		s.scr = scr
		win, err := scr.NewWindow(&screen.NewWindowOptions{
			Width:  s.Width,
			Height: s.Height,
			Title:  s.Title,
		})
		if err != nil {
			ready <- err
			return
		}
		s.win = win
		s.resize(s.Width, s.Height)
		ready <- nil
		s.pump()
	})
	if err := <-ready; err != nil {
		return 0, err
	}
	return int(r.Fd()), nil
}

// Fini releases the window and its backing buffer.
func (s *Shiny) Fini() {
	if s.buf != nil {
		s.buf.Release()
	}
	if s.win != nil {
		s.win.Release()
	}
	s.wakeR.Close()
	s.wakeW.Close()
}

// pump runs on the shiny driver's goroutine, translating window events
// into gui.Events and signaling the wakeup pipe for each one queued.
func (s *Shiny) pump() {
	for {
		switch e := s.win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			sz := e.Size()
			s.resize(sz.X, sz.Y)
			s.push(Resize{W: sz.X, H: sz.Y})
		case paint.Event:
			// Redraws are driven by the dispatcher, not by expose
			// events; nothing to translate.
		case key.Event:
			if ev, ok := translateKey(e); ok {
				s.push(ev)
			}
		case mouse.Event:
			s.push(translateMouse(e))
		}
	}
}

func (s *Shiny) resize(w, h int) {
	if s.buf != nil {
		s.buf.Release()
	}
	buf, err := s.scr.NewBuffer(image.Pt(w, h))
	if err != nil {
		return
	}
	s.buf = buf
	s.Width, s.Height = w, h
}

func (s *Shiny) push(ev Event) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()
	s.wakeW.Write([]byte{0})
}

// NextEvent returns the next translated event, draining one wakeup
// byte per event returned.
func (s *Shiny) NextEvent() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	var b [1]byte
	s.wakeR.Read(b[:])
	return ev, true
}

func translateKey(e key.Event) (Event, bool) {
	if e.Direction == key.DirRelease {
		return nil, false
	}
	switch e.Code {
	case key.CodeLeftArrow:
		return Key{Rune: KeyLeft}, true
	case key.CodeRightArrow:
		return Key{Rune: KeyRight}, true
	case key.CodeUpArrow:
		return Key{Rune: KeyUp}, true
	case key.CodeDownArrow:
		return Key{Rune: KeyDown}, true
	case key.CodePageUp:
		return Key{Rune: KeyPageUp}, true
	case key.CodePageDown:
		return Key{Rune: KeyPageDown}, true
	case key.CodeDeleteBackspace:
		return Key{Rune: KeyBackspace}, true
	case key.CodeEscape:
		return Key{Rune: KeyEsc}, true
	case key.CodeReturnEnter:
		return Key{Rune: '\n'}, true
	case key.CodeTab:
		return Key{Rune: '\t'}, true
	}
	if e.Modifiers == key.ModControl && e.Rune > 0 {
		r := unicode.ToUpper(e.Rune)
		if r >= 'A' && r <= 'Z' {
			return Key{Rune: rune(r - 'A' + 1)}, true
		}
	}
	if e.Modifiers&^key.ModShift != 0 {
		return nil, false
	}
	if e.Rune < 0 {
		return nil, false
	}
	return Key{Rune: e.Rune}, true
}

func translateMouse(e mouse.Event) Event {
	x, y := int(e.X), int(e.Y)
	btn := Button(e.Button)
	switch e.Direction {
	case mouse.DirPress:
		return MouseDown{Button: btn, X: x, Y: y}
	case mouse.DirRelease:
		return MouseUp{Button: btn, X: x, Y: y}
	default:
		return MouseSelect{X: x, Y: y}
	}
}

// Sync uploads the backing buffer to the window and publishes it.
func (s *Shiny) Sync() {
	if s.buf == nil {
		return
	}
	s.win.Upload(image.Point{}, s.buf, s.buf.Bounds())
	s.win.Publish()
}

// Font reports the current face's fixed metrics.
func (s *Shiny) Font() (ascent, descent, height int) { return s.face.Metrics() }

// TextWidth sums each rune's advance width in the current face.
func (s *Shiny) TextWidth(rs []rune) int { return s.face.Width(rs) }

func (s *Shiny) rgba() *image.RGBA {
	if s.buf == nil {
		return nil
	}
	return s.buf.RGBA()
}

// DrawText draws rs with baseline (x, y) into the buffer.
func (s *Shiny) DrawText(clip Rect, rs []rune, x, y int, c color.Color) {
	img := s.rgba()
	if img == nil {
		return
	}
	d := xfont.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: s.face.Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(string(rs))
}

// DrawRect fills a solid rectangle.
func (s *Shiny) DrawRect(clip Rect, x, y, w, h int, c color.Color) {
	img := s.rgba()
	if img == nil {
		return
	}
	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawCursor draws a thin bar in insert mode, or a block of width w
// otherwise.
func (s *Shiny) DrawCursor(clip Rect, insertMode bool, x, y, w int) {
	cw := w
	if insertMode {
		cw = 2
	}
	_, _, height := s.Font()
	s.DrawRect(clip, x, y, cw, height, color.Black)
}

// Decorate paints a one-pixel border, colored c, around clip. The
// modified flag is not used: the border looks the same either way.
func (s *Shiny) Decorate(clip Rect, modified bool, c color.Color) {
	bw := 1
	s.DrawRect(clip, clip.X, clip.Y, clip.W, bw, c)
	s.DrawRect(clip, clip.X, clip.Y+clip.H-bw, clip.W, bw, c)
	s.DrawRect(clip, clip.X, clip.Y, bw, clip.H, c)
	s.DrawRect(clip, clip.X+clip.W-bw, clip.Y, bw, clip.H, c)
}

// SetPointer is a no-op: not every shiny backend exposes custom
// cursor shapes, and the core treats the hint as best-effort.
func (s *Shiny) SetPointer(p Pointer) {}

// Geometry returns the fixed layout constants a dispatcher uses to
// reserve space for scrollbar grips and margins.
func (s *Shiny) Geometry() Geometry {
	return Geometry{
		Border:  1,
		HMargin: 4,
		VMargin: 2,
		ActionR: [4]int{0, 0, 12, 12},
	}
}
