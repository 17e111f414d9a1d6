//go:build unix

package flock

import "syscall"

// Exclusive takes an exclusive lock on fd without blocking. It fails
// immediately when any other descriptor already holds the lock.
func Exclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

// Unlock drops the lock held on fd.
func Unlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
