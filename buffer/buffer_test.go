// Copyright © 2015, The T Authors.

package buffer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func insString(b *Buf, pos int64, s string) int64 {
	for _, r := range s {
		b.Ins(pos, r)
		pos++
	}
	return pos
}

func contents(b *Buf) string {
	var rs []rune
	for i := int64(0); i < b.Size(); i++ {
		rs = append(rs, b.Get(i))
	}
	return string(rs)
}

func TestInsGet(t *testing.T) {
	b := New()
	insString(b, 0, "hello, world")
	require.Equal(t, "hello, world", contents(b))
}

func TestLimboExtension(t *testing.T) {
	b := New()
	b.Ins(5, 'x')
	for i := int64(0); i < 5; i++ {
		require.Equal(t, '\n', b.Get(i))
	}
	require.Equal(t, 'x', b.Get(5))
	require.Equal(t, int64(6), b.Limbo())
}

func TestDelCoalesceHello(t *testing.T) {
	b := New()
	insString(b, 0, "hello")
	for _, pos := range []int64{4, 3, 2, 1, 0} {
		b.Del(pos)
	}
	require.Equal(t, "", contents(b))
	require.Equal(t, int64(0), b.Size())
}

func TestBolEol(t *testing.T) {
	b := New()
	insString(b, 0, "abc\ndef\nghi")
	require.Equal(t, int64(0), b.Bol(0))
	require.Equal(t, int64(0), b.Bol(2))
	require.Equal(t, int64(4), b.Bol(5))
	require.Equal(t, int64(3), b.Eol(0))
	require.Equal(t, int64(7), b.Eol(4))
}

func TestGetLCSetLCIdentity(t *testing.T) {
	b := New()
	insString(b, 0, "abc\ndefg\nhi\n")
	for pos := int64(0); pos < b.Size(); pos++ {
		l, c := b.GetLC(pos)
		got := b.SetLC(l, c)
		require.Equal(t, pos, got, "pos=%d line=%d col=%d", pos, l, c)
	}
}

// TestPageSplitMerge drives enough edits through a small-paged Buf to
// exercise both page split (on overflow) and page merge (on empty),
// checking property 3: page length sums equal buffer length, each
// page's nl matches its actual newline count, and col propagation
// holds after every edit.
func TestPageSplitMerge(t *testing.T) {
	b := newSized(8)
	rnd := rand.New(rand.NewSource(1))
	var model []rune

	for i := 0; i < 2000; i++ {
		if len(model) == 0 || rnd.Intn(2) == 0 {
			pos := rnd.Intn(len(model) + 1)
			r := rune('a' + rnd.Intn(3))
			if rnd.Intn(5) == 0 {
				r = '\n'
			}
			b.Ins(int64(pos), r)
			model = append(model, 0)
			copy(model[pos+1:], model[pos:])
			model[pos] = r
		} else {
			pos := rnd.Intn(len(model))
			b.Del(int64(pos))
			model = append(model[:pos], model[pos+1:]...)
		}
		requireInvariants(t, b)
		require.Equal(t, string(model), contents(b))
	}
}

// requireInvariants checks that page length sums equal buffer length,
// nl counts match actual content, and col is consistent with the
// running column since the last newline.
func requireInvariants(t *testing.T, b *Buf) {
	t.Helper()
	var total int64
	col := 0
	p := b.head
	require.Nil(t, p.prev, "head page must have no prev")
	for p != nil {
		total += int64(p.len)

		nl := 0
		for _, r := range p.buf[:p.hbeg] {
			if r == '\n' {
				nl++
			}
		}
		for _, r := range p.buf[p.hend():] {
			if r == '\n' {
				nl++
			}
		}
		require.Equal(t, nl, p.nl, "page nl mismatch")
		require.Equal(t, col, p.col, "page col mismatch")

		for _, r := range p.buf[:p.hbeg] {
			if r == '\n' {
				col = 0
			} else {
				col++
			}
		}
		for _, r := range p.buf[p.hend():] {
			if r == '\n' {
				col = 0
			} else {
				col++
			}
		}

		if p.next != nil {
			require.Same(t, p, p.next.prev, "broken prev link")
		}
		p = p.next
	}
	require.Equal(t, b.Size(), total)
}
