// Copyright © 2015, The T Authors.

package command

import (
	"strings"
	"unicode"

	"github.com/8l/edit/edit"
	"github.com/8l/edit/evloop"
	"github.com/8l/edit/window"
)

// Line extracts the command text: w's source line containing pos,
// stripped of surrounding blanks.
func Line(w *window.W, pos int64) string {
	bol := w.Buf.Bol(pos)
	eol := w.Buf.Eol(pos)
	if eol > bol && w.Buf.Get(eol-1) == '\n' {
		eol--
	}
	rs := make([]rune, 0, eol-bol)
	for p := bol; p < eol; p++ {
		rs = append(rs, w.Buf.Get(p))
	}
	return strings.TrimFunc(string(rs), unicode.IsSpace)
}

// Run executes the command line text, trying the builtin table first
// and falling back to a shell pipeline. fr is the frame commands that
// create or delete windows operate on.
func Run(loop *evloop.Loop, fr *window.Frame, w *window.W, line string) (*Task, error) {
	line = strings.TrimFunc(line, unicode.IsSpace)
	if line == "" {
		return nil, nil
	}

	name, arg, _ := strings.Cut(line, " ")
	if b, ok := Builtins[name]; ok {
		b(fr, w, strings.TrimFunc(arg, unicode.IsSpace))
		return nil, nil
	}

	mode, cmd := shellMode(line)
	var sel []rune
	p0, p1 := w.Cursor, w.Cursor
	if mode == ModeReplace || mode == ModePipe {
		b, e := selectionRange(w)
		if b >= 0 {
			p0, p1 = b, e
		}
		if mode == ModePipe {
			sel = w.Buf.Yank(p0, p1)
		}
	}
	return Spawn(loop, w.Buf, mode, cmd, sel, p0, p1)
}

// shellMode splits a shell command on its leading mode prefix, if any.
func shellMode(s string) (Mode, string) {
	if s == "" {
		return ModeAppend, s
	}
	switch s[0] {
	case '>':
		return ModeStdout, s[1:]
	case '<':
		return ModeReplace, s[1:]
	case '|':
		return ModePipe, s[1:]
	default:
		return ModeAppend, s
	}
}

func selectionRange(w *window.W) (int64, int64) {
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
