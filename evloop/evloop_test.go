// Copyright © 2015, The T Authors.

package evloop

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterReadReady(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	fired := false
	err = l.Register(int(r.Fd()), Read, func(fd int, ready Interest) bool {
		require.Equal(t, Read, ready&Read)
		buf := make([]byte, 16)
		n, _ := r.Read(buf)
		require.Equal(t, "hi", string(buf[:n]))
		fired = true
		l.Exit()
		return true
	})
	require.NoError(t, err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Write([]byte("hi"))
	}()

	require.NoError(t, l.Run())
	require.True(t, fired)
}

func TestAlarmFires(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	fired := false
	err = l.Alarm(5*time.Millisecond, func(now time.Time) {
		fired = true
		l.Exit()
	})
	require.NoError(t, err)
	require.NoError(t, l.Run())
	require.True(t, fired)
}

func TestAlarmsFullReturnsError(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	for i := 0; i < MaxAlarms; i++ {
		require.NoError(t, l.Alarm(time.Hour, func(time.Time) {}))
	}
	require.ErrorIs(t, l.Alarm(time.Hour, func(time.Time) {}), ErrAlarmsFull)
}

func TestAlarmsFireBeforeFdCallbacks(t *testing.T) {
	l, err := New()
	require.NoError(t, err)
	defer l.Close()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	w.Write([]byte("x"))

	var order []string
	l.Register(int(r.Fd()), Read, func(fd int, ready Interest) bool {
		order = append(order, "fd")
		l.Exit()
		return true
	})
	l.Alarm(0, func(time.Time) {
		order = append(order, "alarm")
	})

	require.NoError(t, l.Run())
	require.Equal(t, []string{"alarm", "fd"}, order)
}
