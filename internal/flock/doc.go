// Package flock provides cross-platform file locking utilities.
//
// It provides exclusive, non-blocking file locks that work on both Unix
// and Windows systems, plus a directory lock used to fence a task's
// artifact directory against concurrent writers.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - file is in use
//	}
//	defer flock.Unlock(file.Fd())
package flock
