// Copyright © 2015, The T Authors.

// Package edit implements EBuf, a versioned edit buffer: a paged gap
// buffer (package buffer) plus an undo/redo log, named marks that
// float across edits, file metadata, and a reference-counted lifecycle
// that lets asynchronous subprocess output keep appending to a buffer
// the user has already killed.
package edit

import (
	"github.com/8l/edit/buffer"
	"github.com/8l/edit/rune8"
)

// Reserved mark names, see the Mark type.
const (
	SelBeg rune = 'i'
	SelEnd rune = 'o'
)

// NoMark is returned by GetMark for a name with no mark set.
const NoMark int64 = -1

// NoPos is returned by Look when the pattern is not found.
const NoPos int64 = -1

// A Dir selects which log Undo replays from.
type Dir int

// UndoDir replays the undo log onto the redo log; RedoDir does the
// reverse.
const (
	UndoDir Dir = iota
	RedoDir
)

// EBuf is a versioned, mark-tracking, asynchronously-appendable edit
// buffer. The zero value is not usable; use New.
type EBuf struct {
	buf  *buffer.Buf
	undo elog
	redo elog

	rev     uint32
	nextRev uint32

	marks map[rune]int64

	path  string
	mtime int64 // unix seconds, mtime as of last read/write
	frev  uint32

	killed bool // Kill has been called
	holds  int  // outstanding async task holds; see lifecycle.go
}

// New returns a new, empty EBuf with no associated file.
func New() *EBuf {
	return &EBuf{
		buf:     buffer.New(),
		marks:   make(map[rune]int64),
		nextRev: 1,
	}
}

// Buf returns the underlying paged gap buffer. Callers may read it
// freely; mutating it directly bypasses the undo log and mark
// rebasing and should never be done outside this package.
func (e *EBuf) Buf() *buffer.Buf { return e.buf }

// Size returns the number of runes in the buffer.
func (e *EBuf) Size() int64 { return e.buf.Size() }

// Get returns the rune at offset pos.
func (e *EBuf) Get(pos int64) rune { return e.buf.Get(pos) }

// Bol returns the offset of the first rune of the line containing pos.
func (e *EBuf) Bol(pos int64) int64 { return e.buf.Bol(pos) }

// Eol returns the offset of the '\n' ending the line containing pos (or
// the buffer's size when the line has no newline).
func (e *EBuf) Eol(pos int64) int64 { return e.buf.Eol(pos) }

// Ins inserts r at p0, logs the insertion, rebases marks, and clears
// the redo log.
func (e *EBuf) Ins(p0 int64, r rune) {
	e.redo.clear()
	e.undo.insert(p0, p0+1)
	e.buf.Ins(p0, r)
	e.rebaseInsert(p0, 1)
}

// InsUTF8 decodes and inserts the runes encoded in data starting at
// p0, returning the number of bytes consumed.
func (e *EBuf) InsUTF8(p0 int64, data []byte) int {
	total := 0
	for len(data) > 0 {
		r, n := rune8.Decode(data)
		if n == 0 {
			break
		}
		e.Ins(p0, r)
		p0++
		data = data[n:]
		total += n
	}
	return total
}

// Del deletes [p0, p1), logs the deletion, rebases marks, and clears
// the redo log.
func (e *EBuf) Del(p0, p1 int64) {
	if p1 <= p0 {
		return
	}
	e.redo.clear()
	e.undo.delete(e.buf, p0, p1)
	for end := p1; end > p0; end-- {
		e.buf.Del(end - 1)
	}
	e.rebaseDelete(p0, p1)
}

// Commit closes the current change group, pushing a Commit entry
// carrying a fresh revision. It is a no-op if the undo log's top entry
// is already a Commit.
func (e *EBuf) Commit() {
	if e.undo.top != nil && e.undo.top.tag == logCommit {
		return
	}
	e.rev = e.nextRev
	e.nextRev++
	e.undo.commit(e.rev)
}

// Revision returns the current revision number.
func (e *EBuf) Revision() uint32 { return e.rev }

// Undo replays the topmost committed group from src to dst (dir
// selects undo->redo or redo->undo), reporting the offset the cursor
// should move to and whether anything was undone.
func (e *EBuf) Undo(dir Dir) (pos int64, moved bool) {
	var src, dst *elog
	if dir == UndoDir {
		e.Commit()
		src, dst = &e.undo, &e.redo
	} else {
		src, dst = &e.redo, &e.undo
	}

	top := src.top
	if top == nil || top.tag != logCommit || top.next == nil {
		return 0, false
	}

	cur := top.next
	for cur != nil && cur.tag != logCommit {
		p0, p1 := cur.p0, cur.p0+cur.np
		switch cur.tag {
		case logInsert:
			dst.delete(e.buf, p0, p1)
			for end := p1; end > p0; end-- {
				e.buf.Del(end - 1)
			}
			e.rebaseDelete(p0, p1)
		case logDelete:
			for i, off := int64(0), p0; off < p1; i, off = i+1, off+1 {
				e.buf.Ins(off, cur.dat[cur.np-1-i])
			}
			dst.insert(p0, p1)
			e.rebaseInsert(p0, p1-p0)
		}
		pos = p0
		cur = cur.next
	}

	// cur, if non-nil, is the Commit delimiting the group below the one
	// just replayed; it stays as src's new top (a persistent sentinel,
	// not consumed), so the next Undo on this log finds its own group
	// correctly bounded.
	prevRev := uint32(0)
	if cur != nil {
		prevRev = cur.rev
	}
	src.top = cur

	// Undoing moves the buffer back to the revision below this group;
	// redoing moves it forward to the revision this group produced,
	// which is the replayed commit's own rev, not prevRev.
	if dir == UndoDir {
		e.rev = prevRev
	} else {
		e.rev = top.rev
	}
	dst.top = &logEntry{tag: logCommit, rev: top.rev, next: dst.top}
	return pos, true
}

func (e *EBuf) rebaseInsert(p0, np int64) {
	for name, pos := range e.marks {
		if pos >= p0 {
			e.marks[name] = pos + np
		}
	}
}

func (e *EBuf) rebaseDelete(p0, p1 int64) {
	np := p1 - p0
	for name, pos := range e.marks {
		switch {
		case pos >= p1:
			e.marks[name] = pos - np
		case pos > p0:
			e.marks[name] = p0
		}
	}
}

// SetMark upserts the mark named name to pos.
func (e *EBuf) SetMark(name rune, pos int64) { e.marks[name] = pos }

// GetMark returns the position of the mark named name, or NoMark.
func (e *EBuf) GetMark(name rune) int64 {
	pos, ok := e.marks[name]
	if !ok {
		return NoMark
	}
	return pos
}

// ClearMark removes the mark named name, if any.
func (e *EBuf) ClearMark(name rune) { delete(e.marks, name) }

// Look performs a linear forward search for pattern starting at from,
// wrapping to the start of the search range is not performed; it
// returns NoPos if pattern does not occur at or after from.
func (e *EBuf) Look(from int64, pattern []rune) int64 {
	if len(pattern) == 0 {
		return from
	}
	for p0 := from; p0+int64(len(pattern)) <= e.Size(); p0++ {
		match := true
		for i, r := range pattern {
			if e.buf.Get(p0+int64(i)) != r {
				match = false
				break
			}
		}
		if match {
			return p0
		}
	}
	return NoPos
}

// Yank copies the range [p0, p1) into a new slice of runes.
func (e *EBuf) Yank(p0, p1 int64) []rune {
	if p1 <= p0 {
		return nil
	}
	out := make([]rune, p1-p0)
	for i := range out {
		out[i] = e.buf.Get(p0 + int64(i))
	}
	return out
}
