// Copyright © 2015, The T Authors.

// Package modal implements the key-event state machine that drives a
// window.W/edit.EBuf pair: a thin, trusted consumer of the editing
// core that recognizes an optional register prefix, a decimal count, a
// command rune, and that command's continuation (a doubled rune, an
// argument rune, a motion, or nothing), then performs it.
package modal

import (
	"github.com/8l/edit/edit"
	"github.com/8l/edit/gui"
	"github.com/8l/edit/window"
)

// A mode is the parser's top-level state: Command reads key events as
// commands; Insert inserts them literally.
type mode int

const (
	modeCommand mode = iota
	modeInsert
)

// state is the sub-state within Command mode.
type state int

const (
	sBuf0 state = iota // expecting an optional `"<reg>` prefix
	sBuf1               // consumed the `"`, expecting <reg>
	sCmd                // expecting count digits then a command rune
	sDbl                // expecting the command rune doubled
	sArg                // expecting a single argument rune
)

// Command continuation flags, keyed by command rune.
const (
	cDouble   = 1 << iota // expects a doubled rune, e.g. "[["
	cArgument              // expects a single argument rune, e.g. "mx"
)

var cmdFlags = map[rune]int{
	'[': cDouble,
	'm': cArgument,
}

var motions = map[rune]bool{
	'h': true, 'j': true, 'k': true, 'l': true,
	'w': true, 'e': true, 'W': true, 'E': true,
	'b': true, 'B': true,
	'0': true, '$': true,
}

const ctrlQ = 'Q' - 'A' + 1

// A Parser drives one W through key events. The zero value is not
// usable; use New.
type Parser struct {
	w    *window.W
	mode mode
	st   state

	reg   rune
	count int
	cmd   rune
	arg   rune

	// Exiting is set once Ctrl-Q has been seen; the dispatcher checks
	// it after every Key call.
	Exiting bool
}

// New returns a Parser for w, starting in command mode.
func New(w *window.W) *Parser {
	return &Parser{w: w}
}

// Key feeds one decoded key rune (see gui.Key and the gui.Key*
// constants for non-printable keys) to the parser, reporting whether
// the window should be redrawn.
func (p *Parser) Key(r rune) bool {
	if p.mode == modeInsert {
		return p.insert(r)
	}
	if r == gui.KeyEsc {
		p.reset()
		return false
	}

	switch p.st {
	case sBuf1:
		if !isRegister(r) {
			p.reset()
			return false
		}
		p.reg = r
		p.st = sCmd

	case sBuf0:
		if r == '"' {
			p.st = sBuf1
			return false
		}
		p.st = sCmd
		fallthrough

	case sCmd:
		if r >= '1' && r <= '9' || (r == '0' && p.count != 0) {
			p.count = p.count*10 + int(r-'0')
			return false
		}
		p.cmd = r
		if cmdFlags[p.cmd]&cDouble != 0 {
			p.st = sDbl
			return false
		}
		return p.gotDouble()

	case sDbl:
		if r != p.cmd {
			p.reset()
			return false
		}
		return p.gotDouble()

	case sArg:
		p.arg = r
		return p.gotArg()
	}
	return false
}

func (p *Parser) gotDouble() bool {
	if cmdFlags[p.cmd]&cArgument != 0 {
		p.st = sArg
		return false
	}
	return p.gotArg()
}

func (p *Parser) gotArg() bool {
	redraw := false
	if motions[p.cmd] {
		p.moveCursor()
		redraw = true
	} else {
		redraw = p.perform()
	}
	p.reset()
	return redraw
}

func (p *Parser) reset() {
	p.reg, p.count, p.cmd, p.arg = 0, 0, 0, 0
	p.st = sBuf0
}

func (p *Parser) n() int {
	if p.count == 0 {
		return 1
	}
	return p.count
}

// moveCursor applies a motion command to p.w.Cursor, n() times.
func (p *Parser) moveCursor() {
	b := p.w.Buf
	for i := 0; i < p.n(); i++ {
		line, col := b.Buf().GetLC(p.w.Cursor)
		switch p.cmd {
		case 'h':
			p.w.Cursor = b.Buf().SetLC(line, col-1)
		case 'l':
			p.w.Cursor = b.Buf().SetLC(line, col+1)
		case 'j':
			p.w.Cursor = b.Buf().SetLC(line+1, col)
		case 'k':
			p.w.Cursor = b.Buf().SetLC(line-1, col)
		case '0':
			p.w.Cursor = b.Bol(p.w.Cursor)
		case '$':
			eol := b.Eol(p.w.Cursor)
			if eol > p.w.Cursor {
				p.w.Cursor = eol - 1
			}
		case 'w':
			p.w.Cursor = nextWord(b, p.w.Cursor, false)
		case 'e':
			p.w.Cursor = nextWord(b, p.w.Cursor, true)
		case 'W':
			p.w.Cursor = nextBigWord(b, p.w.Cursor, false)
		case 'E':
			p.w.Cursor = nextBigWord(b, p.w.Cursor, true)
		case 'b':
			p.w.Cursor = prevWord(b, p.w.Cursor, isWordRune)
		case 'B':
			p.w.Cursor = prevWord(b, p.w.Cursor, isBigWordRune)
		}
	}
}

// perform dispatches a non-motion command, reporting whether the
// window should redraw.
func (p *Parser) perform() bool {
	switch p.cmd {
	case ctrlQ:
		p.Exiting = true
	case 'i':
		p.mode = modeInsert
	case 'u':
		pos, ok := p.w.Buf.Undo(edit.UndoDir)
		if ok {
			p.w.Cursor = pos
		}
	case '.':
		pos, ok := p.w.Buf.Undo(edit.RedoDir)
		if ok {
			p.w.Cursor = pos
		}
	case 'm':
		p.w.Buf.SetMark(p.arg, p.w.Cursor)
	case '[':
		// Reserved for a future bracket-match motion; recognized but
		// currently a no-op.
	default:
		return false
	}
	return true
}

// insert handles one key while in Insert mode.
func (p *Parser) insert(r rune) bool {
	switch r {
	case gui.KeyEsc:
		if p.w.Cursor > 0 {
			p.w.Cursor--
		}
		p.w.Buf.Commit()
		p.mode = modeCommand
	case gui.KeyBackspace:
		if p.w.Cursor > 0 {
			p.w.Buf.Del(p.w.Cursor-1, p.w.Cursor)
			p.w.Cursor--
		}
	default:
		p.w.Buf.Ins(p.w.Cursor, r)
		p.w.Cursor++
	}
	return true
}

func isRegister(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
}
