package fx

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// relock is a mutex which may be re-acquired by the goroutine currently
// holding it. Step callbacks run while the engine is locked and are allowed
// to call engine operations.
type relock struct {
	mu    sync.Mutex
	owner int64 // goroutine id of holder, 0 if unlocked
	depth int   // guarded by mu
}

func (l *relock) Lock() {
	gid := goid.Get()
	if atomic.LoadInt64(&l.owner) == gid {
		l.depth++
		return
	}
	l.mu.Lock()
	atomic.StoreInt64(&l.owner, gid)
	l.depth = 1
}

func (l *relock) Unlock() {
	l.depth--
	if l.depth > 0 {
		return
	}
	atomic.StoreInt64(&l.owner, 0)
	l.mu.Unlock()
}
