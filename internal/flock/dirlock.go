package flock

import (
	"fmt"
	"os"
	"path/filepath"
)

// lockFileName is the lock file created inside a guarded directory.
const lockFileName = ".atomic.lock"

// DirLock holds an exclusive lock on a directory through a lock file
// inside it. Artifact directories are locked for the duration of a task
// so two processes cannot interleave writes to the same output.
type DirLock struct {
	file *os.File
}

// LockDir acquires an exclusive non-blocking lock on dir. The directory
// must already exist. Returns an error when another process holds the
// lock.
func LockDir(dir string) (*DirLock, error) {
	path := filepath.Join(dir, lockFileName)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // lock file inside managed dir
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("directory %s is locked by another process: %w", dir, err)
	}

	return &DirLock{file: f}, nil
}

// Unlock releases the lock and removes the lock file. Safe to call once.
func (l *DirLock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}

	path := l.file.Name()
	unlockErr := Unlock(l.file.Fd())
	closeErr := l.file.Close()
	_ = os.Remove(path)
	l.file = nil

	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
