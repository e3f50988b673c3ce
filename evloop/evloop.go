// Copyright © 2015, The T Authors.

// Package evloop implements a single-threaded, cooperative,
// level-triggered event loop over file descriptors and one-shot
// alarms, backed by Linux epoll.
package evloop

import (
	"container/heap"
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// MaxAlarms is the maximum number of concurrently scheduled alarms.
const MaxAlarms = 15

// ErrAlarmsFull is returned by Alarm when MaxAlarms alarms are already
// scheduled.
var ErrAlarmsFull = errors.New("evloop: too many alarms")

// An Interest is a set of readiness conditions a Callback is notified
// of, a subset of {Read, Write}.
type Interest int

// Readiness conditions a source may register interest in.
const (
	Read Interest = 1 << iota
	Write
)

func (i Interest) epollEvents() uint32 {
	var e uint32
	if i&Read != 0 {
		e |= unix.EPOLLIN
	}
	if i&Write != 0 {
		e |= unix.EPOLLOUT
	}
	return e
}

// A Callback is notified when its fd becomes ready for one of its
// registered interests. Returning true cancels the source; the loop
// removes it at the end of the current dispatch pass.
type Callback func(fd int, ready Interest) (cancel bool)

// An AlarmFunc is called once, at or after its scheduled deadline.
type AlarmFunc func(now time.Time)

type source struct {
	fd       int
	interest Interest
	cb       Callback
	cancel   bool
}

type alarm struct {
	deadline time.Time
	cb       AlarmFunc
	index    int // heap.Interface bookkeeping, unused by callers
}

// alarmHeap is a container/heap min-heap keyed by deadline. Using
// container/heap's sort.Interface-driven sift, rather than transcribing
// the original hand-rolled 1-indexed array heap, sidesteps that heap's
// sift-down reading one element past its live length when the
// second child of a full heap does not exist.
type alarmHeap []*alarm

func (h alarmHeap) Len() int            { return len(h) }
func (h alarmHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h alarmHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *alarmHeap) Push(x interface{}) {
	a := x.(*alarm)
	a.index = len(*h)
	*h = append(*h, a)
}
func (h *alarmHeap) Pop() interface{} {
	old := *h
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return a
}

// A Loop dispatches fd readiness and alarms on a single goroutine. The
// zero value is not usable; use New.
type Loop struct {
	epfd int

	sources map[int]*source

	alarms alarmHeap

	now     time.Time
	exiting bool
}

// New creates an empty Loop.
func New() (*Loop, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	return &Loop{
		epfd:    epfd,
		sources: make(map[int]*source),
		now:     time.Now(),
	}, nil
}

// Close releases the loop's epoll descriptor.
func (l *Loop) Close() error { return unix.Close(l.epfd) }

// Register adds fd as a source of interest, invoking cb whenever fd
// becomes ready for one of interest's conditions. Registering an fd
// that is already registered replaces its interest and callback.
func (l *Loop) Register(fd int, interest Interest, cb Callback) error {
	s := &source{fd: fd, interest: interest, cb: cb}
	op := unix.EPOLL_CTL_ADD
	if _, ok := l.sources[fd]; ok {
		op = unix.EPOLL_CTL_MOD
	}
	ev := unix.EpollEvent{Events: interest.epollEvents(), Fd: int32(fd)}
	if err := unix.EpollCtl(l.epfd, op, fd, &ev); err != nil {
		return err
	}
	l.sources[fd] = s
	return nil
}

// Cancel marks fd's source for removal. The loop compacts its source
// table after the current dispatch pass; it is safe to call Cancel
// from within a Callback, including a callback for fd itself.
func (l *Loop) Cancel(fd int) {
	s, ok := l.sources[fd]
	if !ok {
		return
	}
	s.cancel = true
}

// Alarm schedules cb to run once, no earlier than d from now.
func (l *Loop) Alarm(d time.Duration, cb AlarmFunc) error {
	if len(l.alarms) >= MaxAlarms {
		return ErrAlarmsFull
	}
	heap.Push(&l.alarms, &alarm{deadline: l.now.Add(d), cb: cb})
	return nil
}

// Now returns the loop's current tick, cached for the duration of one
// iteration of Run's loop so that repeated calls within a single
// callback observe a consistent time.
func (l *Loop) Now() time.Time { return l.now }

// Exit requests that Run return after completing its current pass.
func (l *Loop) Exit() { l.exiting = true }

// Run dispatches alarms and fd readiness until Exit is called. On each
// pass it waits for the earliest alarm deadline (or up to 10s with no
// alarms scheduled), fires every alarm whose deadline has passed, then
// delivers fd readiness to callbacks. A source cancelled during a pass
// gets no further callbacks in it and is removed from the table at the
// end of the pass; an alarm scheduled by an alarm callback fires in the
// same pass if its deadline has already passed.
func (l *Loop) Run() error {
	events := make([]unix.EpollEvent, 64)
	for !l.exiting {
		timeout := 10 * time.Second
		if len(l.alarms) > 0 {
			if d := l.alarms[0].deadline.Sub(l.now); d > 0 {
				timeout = d
			} else {
				timeout = 0
			}
		}

		n, err := unix.EpollWait(l.epfd, events, int(timeout.Milliseconds()))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		l.now = time.Now()

		for len(l.alarms) > 0 && !l.alarms[0].deadline.After(l.now) {
			a := heap.Pop(&l.alarms).(*alarm)
			a.cb(l.now)
		}

		for i := 0; i < n; i++ {
			ev := events[i]
			s, ok := l.sources[int(ev.Fd)]
			if !ok || s.cancel {
				continue
			}
			var ready Interest
			if ev.Events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
				ready |= Read
			}
			if ev.Events&unix.EPOLLOUT != 0 {
				ready |= Write
			}
			if ready == 0 {
				continue
			}
			if s.cb(s.fd, ready) {
				s.cancel = true
			}
		}

		l.compact()
	}
	return nil
}

func (l *Loop) compact() {
	for fd, s := range l.sources {
		if !s.cancel {
			continue
		}
		unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, fd, nil)
		delete(l.sources, fd)
	}
}
