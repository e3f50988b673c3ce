// Copyright © 2015, The T Authors.

package edit

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/8l/edit/rune8"
)

func isSpaceTab(r rune) bool { return r == ' ' || r == '\t' }
func isWhite(r rune) bool    { return isSpaceTab(r) || r == '\n' }

// Write serializes the buffer's content, up to its limbo watermark, to
// w as whitespace-canonical UTF-8: trailing spaces and tabs are
// dropped from every line, and the output ends with exactly one
// newline; an empty buffer writes nothing. Write does not consult or update file metadata; see
// WriteFile for the path-based, mtime-checked entry point the command
// layer uses.
func (e *EBuf) Write(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var buf [4]byte
	var written int64

	emit := func(r rune) error {
		n := rune8.Encode(r, buf[:])
		nn, err := bw.Write(buf[:n])
		written += int64(nn)
		return err
	}

	const (
		munching = iota
		spitting
	)
	state := munching
	var pending []rune
	limbo := e.buf.Limbo()

	// squeezeEmit emits pending (a run of spaces/tabs/newlines),
	// dropping the spaces and tabs that immediately precede each
	// newline (trailing line whitespace) while keeping a final,
	// newline-less leftover run verbatim: that run is mid-line
	// whitespace between two words, not a line ending.
	squeezeEmit := func() error {
		start := 0
		for i, r := range pending {
			if r != '\n' {
				continue
			}
			if err := emit('\n'); err != nil {
				return err
			}
			start = i + 1
		}
		for _, r := range pending[start:] {
			if err := emit(r); err != nil {
				return err
			}
		}
		return nil
	}

	for off := int64(0); off < limbo; off++ {
		r := e.buf.Get(off)
		if isWhite(r) {
			if state == spitting {
				state = munching
				pending = pending[:0]
			}
			pending = append(pending, r)
			continue
		}
		if state == munching {
			if err := squeezeEmit(); err != nil {
				return written, err
			}
			pending = pending[:0]
			state = spitting
		}
		if err := emit(r); err != nil {
			return written, err
		}
	}

	if limbo > 0 {
		if err := emit('\n'); err != nil {
			return written, err
		}
	}

	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}

// Read appends UTF-8 decoded from r at the end of the buffer, until
// EOF. Malformed sequences decode as U+FFFD, consuming one byte, per
// the file format contract.
func (e *EBuf) Read(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	p0 := e.Size()
	var total int64
	var tail []byte

	chunk := make([]byte, 4096)
	for {
		n, err := br.Read(chunk)
		data := append(tail, chunk[:n]...)
		tail = nil
		atEOF := err != nil
		for len(data) > 0 {
			rn, consumed := rune8.Decode(data)
			if consumed == 0 {
				if !atEOF {
					tail = append(tail, data...)
					break
				}
				// EOF with an incomplete sequence: emit WrongRune
				// for each remaining byte.
				rn, consumed = rune8.WrongRune, 1
			}
			e.Ins(p0, rn)
			p0++
			total++
			data = data[consumed:]
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}

// WriteFile writes the buffer's content to path. Writing to the
// buffer's own tracked path refuses to overwrite a file that changed
// on disk since it was last read or written there (ErrFileChanged);
// writing to any other path refuses to clobber a file that already
// exists (ErrFileExists).
func (e *EBuf) WriteFile(path string) error {
	if path == "" {
		return ErrNoWriteFile
	}
	if fi, err := os.Stat(path); err == nil {
		if path != e.path {
			return ErrFileExists
		}
		if fi.ModTime().Unix() > e.mtime {
			return ErrFileChanged
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Join(ErrCannotOpen, err)
	}
	defer f.Close()

	if _, err := e.Write(f); err != nil {
		return err
	}
	if fi, err := f.Stat(); err == nil {
		e.mtime = fi.ModTime().Unix()
	}
	e.path = path
	e.frev = e.rev
	return nil
}

// ReadFile loads path's content, appending it to the buffer. Loading
// over a buffer with unsaved changes fails with ErrNotWritten unless
// force is set.
func (e *EBuf) ReadFile(path string, force bool) error {
	if !force && e.rev != e.frev && e.Size() > 0 {
		return ErrNotWritten
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Join(ErrCannotOpen, err)
	}
	defer f.Close()

	if _, err := e.Read(f); err != nil {
		return err
	}
	if fi, err := f.Stat(); err == nil {
		e.mtime = fi.ModTime().Unix()
	}
	e.path = path
	e.Commit()
	e.frev = e.rev
	return nil
}

// Watch starts a background fsnotify watch on the buffer's current
// file path, calling changed whenever a write or remove event is
// reported for the file, including writes made by WriteFile itself.
// WriteFile does not consult the watch; it relies on its own mtime
// check.
// The returned watcher must be closed by the caller when the buffer is
// no longer of interest.
func (e *EBuf) Watch(changed func()) (*fsnotify.Watcher, error) {
	if e.path == "" {
		return nil, ErrNoWriteFile
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(e.path); err != nil {
		w.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Remove) != 0 {
					changed()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("file watch error", "path", e.path, "err", err)
			}
		}
	}()
	return w, nil
}
