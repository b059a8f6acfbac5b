package reactive

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// reentrantLock serializes all graph mutation for one engine while letting
// the goroutine that already holds the lock re-enter it. Effect bodies read
// and write reactive state, so track/trigger/flush nest arbitrarily deep on
// the owning goroutine.
type reentrantLock struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (l *reentrantLock) lock() {
	gid := goid.Get()
	if l.owner.Load() == gid {
		l.depth++
		return
	}
	l.mu.Lock()
	l.owner.Store(gid)
	l.depth = 1
}

func (l *reentrantLock) unlock() {
	l.depth--
	if l.depth == 0 {
		l.owner.Store(0)
		l.mu.Unlock()
	}
}
