// Copyright © 2015, The T Authors.

package edit

import "github.com/8l/edit/buffer"

// logM is the maximum number of runes a single Delete entry carries
// inline before a new entry is pushed.
const logM = 4

type logTag int

const (
	logInsert logTag = iota
	logDelete
	logCommit
)

// A logEntry is one record in an undo or redo log.
//
// Insert entries carry only the range that was inserted; replaying one
// re-reads the live runes from the buffer. Delete entries carry the
// runes they removed, stored with the rightmost-deleted rune at index
// 0 (see delete), so that a group of them replays in original reading
// order. Commit entries delimit a redoable group and carry the
// revision current as of that commit.
type logEntry struct {
	tag  logTag
	p0   int64
	np   int64
	dat  [logM]rune
	rev  uint32
	next *logEntry
}

// An elog is a singly linked stack of log entries, newest on top.
type elog struct {
	top *logEntry
}

func (l *elog) clear() { l.top = nil }

// insert records that [p0, p1) was just inserted, coalescing with the
// top entry when it is itself an Insert ending exactly at p0.
func (l *elog) insert(p0, p1 int64) {
	if l.top == nil || l.top.tag != logInsert || l.top.p0+l.top.np != p0 {
		l.top = &logEntry{tag: logInsert, p0: p0, next: l.top}
	}
	l.top.np += p1 - p0
}

// delete records that [p0, p1) is about to be deleted from buf. It
// must be called before the deletion is applied to buf, since it reads
// the soon-to-be-deleted runes to save them. Runs of more than logM
// runes split across multiple chained Delete entries.
func (l *elog) delete(buf *buffer.Buf, p0, p1 int64) {
	if l.top == nil || l.top.tag != logDelete || l.top.p0 != p1 {
		l.top = &logEntry{tag: logDelete, next: l.top}
	}
	for p0 < p1 {
		if l.top.np >= logM {
			l.top.p0 = p1
			l.top = &logEntry{tag: logDelete, next: l.top}
		}
		p1--
		l.top.dat[l.top.np] = buf.Get(p1)
		l.top.np++
	}
	l.top.p0 = p0
}

// commit pushes a Commit entry carrying rev.
func (l *elog) commit(rev uint32) {
	l.top = &logEntry{tag: logCommit, rev: rev, next: l.top}
}
