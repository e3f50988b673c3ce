// Copyright © 2015, The T Authors.

package edit

import "errors"

// Sentinel errors surfaced to the user, comparable with errors.Is. The
// command package reports their messages into a buffer; its
// window-management failures ("last window", "no room for a new
// window") are plain messages with no sentinel here.
var (
	ErrNoReadFile  = errors.New("no file to read from")
	ErrNoWriteFile = errors.New("no file to write to")
	ErrFileExists  = errors.New("file exists")
	ErrFileChanged = errors.New("file changed on disk")
	ErrNotWritten  = errors.New("file not written")
	ErrCannotOpen  = errors.New("cannot open file")
	ErrNoMatch     = errors.New("no match")
)
