// Copyright © 2015, The T Authors.

package edit

// Retain registers one outstanding asynchronous hold on e, typically
// taken by a command.Task for the lifetime of a subprocess writing
// into this buffer. Every Retain must be matched by exactly one
// Release.
func (e *EBuf) Retain() { e.holds++ }

// Release drops one outstanding hold taken by Retain. If the buffer
// has been killed and this was the last outstanding hold, the buffer
// is finalized: its logs and marks are dropped so nothing keeps its
// pages reachable once the last reference to the EBuf itself goes
// away.
func (e *EBuf) Release() {
	e.holds--
	if e.holds < 0 {
		panic("edit: Release called without a matching Retain")
	}
	if e.killed && e.holds == 0 {
		e.finalize()
	}
}

// Kill marks the buffer for destruction. With no outstanding holds it
// is finalized immediately; otherwise it becomes a zombie, staying
// allocated until every outstanding Task releases its hold.
func (e *EBuf) Kill() {
	if e.killed {
		return
	}
	e.killed = true
	if e.holds == 0 {
		e.finalize()
	}
}

func (e *EBuf) finalize() {
	e.marks = nil
	e.undo.clear()
	e.redo.clear()
}

// Alive reports whether Kill has not been called.
func (e *EBuf) Alive() bool { return !e.killed }

// Zombie reports whether the buffer has been killed but is being kept
// alive by outstanding task holds.
func (e *EBuf) Zombie() bool { return e.killed && e.holds > 0 }

// Dead reports whether the buffer has been killed and finalized.
func (e *EBuf) Dead() bool { return e.killed && e.holds == 0 }
