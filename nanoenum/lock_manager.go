package nanoenum

import (
	"sync"
)

// operationType defines whether a registry operation reads or writes
type operationType int

const (
	// readOperation covers lookups; many may run at once
	readOperation operationType = iota

	// writeOperation covers registration; it runs alone
	writeOperation
)

// lockManager centralizes the registry locking so every check-and-insert
// runs under a single write lock.
type lockManager struct {
	mu *sync.RWMutex
}

func newLockManager() *lockManager {
	return &lockManager{
		mu: &sync.RWMutex{},
	}
}

// execute runs fn holding the lock matching opType.
//
// Example:
//
//	err := lm.execute(writeOperation, func() error {
//	    if _, ok := registry[name]; ok {
//	        return ErrDuplicateType
//	    }
//	    registry[name] = enum
//	    return nil
//	})
func (lm *lockManager) execute(opType operationType, fn func() error) error {
	switch opType {
	case readOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case writeOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
