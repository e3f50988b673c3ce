// Copyright © 2015, The T Authors.

package edit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func insString(e *EBuf, p0 int64, s string) int64 {
	for _, r := range s {
		e.Ins(p0, r)
		p0++
	}
	return p0
}

func contents(e *EBuf) string {
	rs := make([]rune, e.Size())
	for i := range rs {
		rs[i] = e.Get(int64(i))
	}
	return string(rs)
}

func TestInsertAndUndo(t *testing.T) {
	e := New()
	rev0 := e.Revision()
	insString(e, 0, "hi")
	e.Commit()
	_, ok := e.Undo(UndoDir)
	require.True(t, ok)
	require.Equal(t, "", contents(e))
	require.Equal(t, rev0, e.Revision())
}

func TestDeleteWithCoalesce(t *testing.T) {
	e := New()
	insString(e, 0, "hello")
	e.Commit()
	for _, pos := range []int64{4, 3, 2, 1, 0} {
		e.Del(pos, pos+1)
	}
	e.Commit()
	require.Equal(t, "", contents(e))

	_, ok := e.Undo(UndoDir)
	require.True(t, ok)
	require.Equal(t, "hello", contents(e))
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := New()
	insString(e, 0, "hello, world")
	e.Commit()
	e.Del(5, 12)
	e.Ins(5, '!')
	e.Commit()
	before := contents(e)
	beforeRev := e.Revision()

	_, ok := e.Undo(UndoDir)
	require.True(t, ok)
	_, ok = e.Undo(RedoDir)
	require.True(t, ok)

	require.Equal(t, before, contents(e))
	require.Equal(t, beforeRev, e.Revision())
}

func TestMarkThroughDelete(t *testing.T) {
	e := New()
	insString(e, 0, strings.Repeat("x", 20))
	e.Commit()
	e.SetMark('m', 10)
	e.Del(5, 15)
	require.Equal(t, int64(5), e.GetMark('m'))
}

func TestMarkRebaseInsert(t *testing.T) {
	e := New()
	insString(e, 0, "0123456789")
	e.SetMark('m', 5)
	e.Ins(3, 'x')
	require.Equal(t, int64(6), e.GetMark('m'))

	e2 := New()
	insString(e2, 0, "0123456789")
	e2.SetMark('m', 5)
	e2.Ins(7, 'x')
	require.Equal(t, int64(5), e2.GetMark('m'))
}

func TestMarkRebaseDeleteLaw(t *testing.T) {
	e := New()
	insString(e, 0, strings.Repeat("x", 20))
	for _, q := range []int64{2, 8, 12} {
		e.SetMark(rune('a'+q), q)
	}
	e.Del(5, 10)
	require.Equal(t, int64(2), e.GetMark('a'+2))
	require.Equal(t, int64(5), e.GetMark('a'+8))
	require.Equal(t, int64(7), e.GetMark('a'+12))
}

func TestLook(t *testing.T) {
	e := New()
	insString(e, 0, "the quick brown fox")
	pos := e.Look(0, []rune("brown"))
	require.Equal(t, int64(10), pos)
	require.Equal(t, NoPos, e.Look(0, []rune("cat")))
}

func TestZombieLifecycle(t *testing.T) {
	e := New()
	e.Retain()
	e.Retain()
	e.Kill()
	require.True(t, e.Zombie())
	e.Release()
	require.True(t, e.Zombie())
	e.Release()
	require.True(t, e.Dead())
}

func TestKillNoTasks(t *testing.T) {
	e := New()
	e.Kill()
	require.True(t, e.Dead())
	require.False(t, e.Zombie())
}
