// Package lockedfile serializes build passes through an exclusive lock
// file. The sandbox is owned by one in-flight pass; concurrent passes
// against the same sandbox queue up on the lock.
package lockedfile

import "fmt"

// Mutex is a file-based mutual exclusion lock.
type Mutex struct {
	path string
}

// MutexAt returns a Mutex backed by the file at the given path. The file
// is created on first Lock.
func MutexAt(path string) *Mutex {
	return &Mutex{path: path}
}

// Lock acquires the lock, blocking until it is available. The returned
// function releases it.
func (m *Mutex) Lock() (unlock func(), err error) {
	unlock, err = lock(m.path)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", m.path, err)
	}
	return unlock, nil
}
