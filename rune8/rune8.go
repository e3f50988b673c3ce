// Copyright © 2015, The T Authors.

// Package rune8 implements the UTF-8 codec used by the editing core.
//
// Runes are Go's native, 32-bit rune type, matching the 8l/edit C
// implementation's Rune typedef. NoRune is a sentinel with the high bit
// set, used where "no rune" must be distinguished from any valid scalar
// value.
package rune8

import "unicode/utf8"

// NoRune indicates the absence of a rune.
const NoRune rune = -1 << 31 // high bit set in a 32-bit value

// WrongRune is substituted for malformed input, U+FFFD.
const WrongRune = utf8.RuneError

// Len returns the number of bytes needed to encode r.
func Len(r rune) int { return utf8.RuneLen(r) }

// Encode writes the UTF-8 encoding of r into out and returns the number
// of bytes written. If out is too small to hold the encoding, Encode
// writes nothing and returns 0.
func Encode(r rune, out []byte) int {
	n := utf8.RuneLen(r)
	if n <= 0 || n > len(out) {
		return 0
	}
	return utf8.EncodeRune(out, r)
}

// Decode reads one rune from the front of p.
// It returns the rune and the number of bytes consumed, 1 ≤ n ≤ 4.
// If p is empty or holds a truncated sequence that could still be
// completed by more bytes, Decode returns (0, 0) to signal "need more
// input". Any other malformed sequence decodes as WrongRune, consuming
// exactly one byte, so callers always make progress.
func Decode(p []byte) (r rune, n int) {
	if len(p) == 0 {
		return 0, 0
	}
	r, n = utf8.DecodeRune(p)
	if r == utf8.RuneError && n == 1 && !utf8.FullRune(p) {
		return 0, 0
	}
	return r, n
}
