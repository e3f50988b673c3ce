// Copyright © 2015, The T Authors.

// Package command implements the editing core's command layer:
// builtin lookup, and shell pipelines spawned as Tasks registered with
// an evloop.Loop for their pipe I/O.
package command

import (
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/8l/edit/edit"
	"github.com/8l/edit/evloop"
	"github.com/8l/edit/rune8"
)

// A Mode selects how a shell command's stdin/stdout attach to the
// invoking buffer, keyed by the first character of the command text.
type Mode int

// Shell pipeline modes, see spec §4.6.
const (
	ModeAppend  Mode = iota // "cmd": stdin empty, stdout appended
	ModeStdout              // ">cmd": stdin empty, stdout appended
	ModeReplace             // "<cmd": stdin empty, stdout replaces selection
	ModePipe                // "|cmd": stdin is selection, stdout replaces it
)

// A Task is a running shell pipeline pinned to one EBuf. Its pipe fds
// are registered with a Loop; Task itself never blocks.
type Task struct {
	ID uuid.UUID

	eb   *edit.EBuf
	mode Mode
	cmd  *exec.Cmd

	p0, p1 int64 // insertion point (ModeAppend/Stdout) or selection (ModeReplace/Pipe)
	pos    int64 // running write offset

	stdinW  *os.File // nil once input is drained or there is none
	in      []byte
	sent    int

	stdoutR *os.File
	tail    []byte // partial UTF-8 sequence carried across reads

	loop *evloop.Loop
}

// Spawn runs "/bin/sh -c cmd" and attaches its stdio to eb per mode,
// registering its pipe fds with loop. stdin, if mode requires it, is
// the current selection's text; p0 marks where output begins flowing
// in (the selection start for Replace/Pipe, the insertion point
// otherwise).
func Spawn(loop *evloop.Loop, eb *edit.EBuf, mode Mode, cmdLine string, selection []rune, p0, p1 int64) (*Task, error) {
	if mode == ModeReplace || mode == ModePipe {
		if p1 > p0 {
			eb.Del(p0, p1)
		}
	}

	cmd := exec.Command("/bin/sh", "-c", cmdLine)

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = stdoutW
	cmd.Stderr = stdoutW

	t := &Task{
		ID:      uuid.New(),
		eb:      eb,
		mode:    mode,
		cmd:     cmd,
		p0:      p0,
		p1:      p1,
		pos:     p0,
		stdoutR: stdoutR,
		loop:    loop,
	}

	if mode == ModePipe {
		stdinR, stdinW, err := os.Pipe()
		if err != nil {
			stdoutR.Close()
			stdoutW.Close()
			return nil, err
		}
		cmd.Stdin = stdinR
		t.stdinW = stdinW
		t.in = []byte(string(selection))
	}

	if err := cmd.Start(); err != nil {
		stdoutR.Close()
		stdoutW.Close()
		if t.stdinW != nil {
			t.stdinW.Close()
		}
		return nil, err
	}
	stdoutW.Close()
	if cmd.Stdin != nil {
		cmd.Stdin.(*os.File).Close()
	}

	eb.Retain()

	if err := loop.Register(int(stdoutR.Fd()), evloop.Read, t.onReadable); err != nil {
		return nil, err
	}
	if t.stdinW != nil {
		if err := loop.Register(int(t.stdinW.Fd()), evloop.Write, t.onWritable); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// onReadable is the Loop callback for the task's stdout pipe. It reads
// available bytes and inserts whole runes into eb at the running write
// position, tracking SelBeg..SelEnd over the entire span inserted so
// far across every read. The dispatcher's own dirty-tracking picks up
// the resulting edits on its next pass; onReadable does not repaint
// directly. Returning true unregisters the source (EOF or error).
func (t *Task) onReadable(fd int, ready evloop.Interest) bool {
	var buf [2048]byte
	n, _ := t.stdoutR.Read(buf[:])
	if n <= 0 {
		t.stdoutR.Close()
		t.release()
		return true
	}

	data := append(t.tail, buf[:n]...)
	t.tail = nil
	for len(data) > 0 {
		r, consumed := rune8.Decode(data)
		if consumed == 0 {
			t.tail = append(t.tail, data...)
			break
		}
		t.eb.Ins(t.pos, r)
		t.pos++
		data = data[consumed:]
	}
	t.eb.SetMark(edit.SelBeg, t.p0)
	t.eb.SetMark(edit.SelEnd, t.pos)
	return false
}

// onWritable is the Loop callback for the task's stdin pipe. It sends
// the next slice of the pending input and closes the pipe once
// drained.
func (t *Task) onWritable(fd int, ready evloop.Interest) bool {
	if t.sent >= len(t.in) {
		t.stdinW.Close()
		t.stdinW = nil
		return true
	}
	n, err := t.stdinW.Write(t.in[t.sent:])
	if err != nil {
		log.Warn("command: write error", "task", t.ID, "err", err)
		t.stdinW.Close()
		t.stdinW = nil
		return true
	}
	t.sent += n
	if t.sent >= len(t.in) {
		t.stdinW.Close()
		t.stdinW = nil
		return true
	}
	return false
}

// Cancel stops a live task: it closes any open fd, unregisters from
// the loop, and releases the EBuf hold. Called when the user cancels
// the task explicitly, or when the target EBuf is killed.
func (t *Task) Cancel() {
	if t.stdoutR != nil {
		t.loop.Cancel(int(t.stdoutR.Fd()))
		t.stdoutR.Close()
		t.stdoutR = nil
	}
	if t.stdinW != nil {
		t.loop.Cancel(int(t.stdinW.Fd()))
		t.stdinW.Close()
		t.stdinW = nil
	}
	t.release()
}

func (t *Task) release() {
	if t.eb == nil {
		return
	}
	t.eb.Release()
	t.eb = nil
}
