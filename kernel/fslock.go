//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"sync"
)

// FSLock serializes the operations that mutate file system wide
// state.
type FSLock struct {
	m sync.Mutex
}

// Do runs f holding the lock. The lock is released even if f unwinds
// the calling process.
func (l *FSLock) Do(f func()) {
	l.m.Lock()
	defer l.m.Unlock()
	f()
}

// TryDo runs f if the lock is free and tells if f was run.
func (l *FSLock) TryDo(f func()) bool {
	if !l.m.TryLock() {
		return false
	}
	defer l.m.Unlock()
	f()
	return true
}
