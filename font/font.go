// Copyright © 2015, The T Authors.

// Package font wraps golang.org/x/image/font faces behind the
// ascent/descent/height/advance metrics the windowing layer needs.
// A fixed bitmap face (basicfont) is the default, with plan9font
// available for loading the classic Plan 9 bitmap font format from
// disk.
package font

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/plan9font"
	"golang.org/x/image/math/fixed"
)

// A Face exposes the fixed metrics and glyph-advance queries the gui
// collaborator needs to lay out and measure text.
type Face struct {
	font.Face
}

// Default returns the built-in fixed-width 7x13 face, used when no
// external font is configured.
func Default() *Face { return &Face{basicfont.Face7x13} }

// LoadPlan9 loads a Plan 9 bitmap font from its ".font" description;
// readFile returns the contents of the subfont files that description
// names by relative file name.
func LoadPlan9(fontDesc []byte, readFile func(relFilename string) ([]byte, error)) (*Face, error) {
	f, err := plan9font.ParseFont(fontDesc, readFile)
	if err != nil {
		return nil, err
	}
	return &Face{f}, nil
}

// Metrics returns the face's ascent, descent, and line height in
// pixels.
func (f *Face) Metrics() (ascent, descent, height int) {
	m := f.Face.Metrics()
	return m.Ascent.Round(), m.Descent.Round(), m.Height.Round()
}

// Advance returns the pixel advance width of a single rune, 0 if the
// face has no glyph for it.
func (f *Face) Advance(r rune) int {
	adv, ok := f.Face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return adv.Round()
}

// Width sums the pixel advance width of rs.
func (f *Face) Width(rs []rune) int {
	var w fixed.Int26_6
	for _, r := range rs {
		if adv, ok := f.Face.GlyphAdvance(r); ok {
			w += adv
		}
	}
	return w.Round()
}
