// Copyright © 2015, The T Authors.

package rune8

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, r := range []rune{0, 'a', '\n', 0x7f, 0x80, 0x7ff, 0x800, 0xffff, 0x10000, 0x10ffff} {
		buf := make([]byte, 4)
		n := Encode(r, buf)
		require.Greater(t, n, 0, "rune %U", r)
		require.Equal(t, Len(r), n)
		got, m := Decode(buf[:n])
		require.Equal(t, r, got)
		require.Equal(t, n, m)
	}
}

func TestEncodeTooSmall(t *testing.T) {
	require.Equal(t, 0, Encode(0x10000, make([]byte, 2)))
}

func TestDecodeMalformed(t *testing.T) {
	r, n := Decode([]byte{0xff, 'a'})
	require.Equal(t, WrongRune, r)
	require.Equal(t, 1, n)
}

func TestDecodeTruncated(t *testing.T) {
	r, n := Decode([]byte{0xe2, 0x82})
	require.Equal(t, rune(0), r)
	require.Equal(t, 0, n)
}

func TestDecodeEmpty(t *testing.T) {
	r, n := Decode(nil)
	require.Equal(t, rune(0), r)
	require.Equal(t, 0, n)
}
