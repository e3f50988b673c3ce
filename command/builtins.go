// Copyright © 2015, The T Authors.

package command

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/8l/edit/edit"
	"github.com/8l/edit/window"
)

// A Builtin is a synchronous command. It reports whether it handled
// the command; builtins report errors by appending a line to the
// invoking buffer rather than returning an error, per the error
// handling contract.
type Builtin func(fr *window.Frame, w *window.W, arg string) bool

// Builtins is the fixed table of builtin commands, consulted before
// falling back to a shell.
var Builtins = map[string]Builtin{
	"Get":  get,
	"Put":  put,
	"Look": look,
	"New":  newWin,
	"Del":  del,
}

// appendError reports msg to eb as a new committed line, so the error
// can be undone as a group along with whatever the command already
// did.
func appendError(eb *edit.EBuf, msg string) {
	p0 := eb.Size()
	for _, r := range msg + "\n" {
		eb.Ins(p0, r)
		p0++
	}
	eb.Commit()
}

// get loads arg (or, if blank, the buffer's current path) into w's
// buffer, optionally placing the cursor at a ":LINE" suffix.
func get(fr *window.Frame, w *window.W, arg string) bool {
	path := strings.TrimSpace(arg)
	line := int64(0)
	if path != "" {
		if i := strings.LastIndexByte(path, ':'); i >= 0 {
			if n, err := strconv.ParseInt(path[i+1:], 10, 64); err == nil {
				line = n - 1
				path = path[:i]
			}
		}
	} else {
		path = currentPath(w)
	}
	if path == "" {
		appendError(w.Buf, edit.ErrNoReadFile.Error())
		return true
	}
	if err := w.Buf.ReadFile(path, false); err != nil {
		appendError(w.Buf, err.Error())
		return true
	}
	if line > 0 {
		w.Cursor = w.Buf.Buf().SetLC(int(line), 0)
	}
	return true
}

// put writes w's buffer to arg, or its current path if arg is blank.
// Writing to an explicit path that already exists on disk is refused
// with ErrFileExists, guarding against accidental clobber.
func put(fr *window.Frame, w *window.W, arg string) bool {
	path := strings.TrimSpace(arg)
	if path == "" {
		path = currentPath(w)
	}
	if path == "" {
		appendError(w.Buf, edit.ErrNoWriteFile.Error())
		return true
	}
	if err := w.Buf.WriteFile(path); err != nil {
		appendError(w.Buf, err.Error())
	}
	return true
}

// look searches for arg and selects its first occurrence after the
// cursor, wrapping to the start of the buffer if needed. A blank arg
// does nothing; the word under the cursor is not used.
func look(fr *window.Frame, w *window.W, arg string) bool {
	pat := []rune(strings.TrimSpace(arg))
	if len(pat) == 0 {
		return true
	}
	pos := w.Buf.Look(w.Cursor+1, pat)
	if pos == edit.NoPos {
		pos = w.Buf.Look(0, pat)
	}
	if pos == edit.NoPos {
		appendError(w.Buf, edit.ErrNoMatch.Error())
		return true
	}
	w.Cursor = pos
	w.Buf.SetMark(edit.SelBeg, pos)
	w.Buf.SetMark(edit.SelEnd, pos+int64(len(pat)))
	return true
}

// newWin opens a new window in fr for arg, an empty buffer if arg is
// blank, tiling it alongside w.
func newWin(fr *window.Frame, w *window.W, arg string) bool {
	nw := window.New(edit.New())
	path := strings.TrimSpace(arg)
	if path != "" {
		if err := nw.Buf.ReadFile(path, false); err != nil {
			appendError(w.Buf, err.Error())
			return true
		}
	}
	if !fr.Add(0.5, nw) {
		appendError(w.Buf, "no room for a new window")
	}
	return true
}

// del removes w from fr. The last window in a frame cannot be
// deleted.
func del(fr *window.Frame, w *window.W, arg string) bool {
	if !fr.Remove(w) {
		appendError(w.Buf, "last window")
	}
	return true
}

// currentPath returns the first word of w's tag (Acme-style, the tag's
// first word names the buffer's file), or "" if w has no tag. The path
// the buffer records in ReadFile/WriteFile is not consulted.
func currentPath(w *window.W) string {
	if w.Tag == nil {
		return ""
	}
	s := contents(w.Tag.Buf)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s
	}
	return s[:i]
}

func contents(e *edit.EBuf) string {
	rs := make([]rune, e.Size())
	for i := range rs {
		rs[i] = e.Get(int64(i))
	}
	return string(rs)
}
