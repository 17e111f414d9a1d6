package flock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockDir_AcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := LockDir(dir)
	require.NoError(t, err)

	lockPath := filepath.Join(dir, ".atomic.lock")
	_, err = os.Stat(lockPath)
	assert.NoError(t, err, "lock file should exist while held")

	require.NoError(t, lock.Unlock())

	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err), "lock file should be removed on unlock")
}

func TestLockDir_ReacquireAfterUnlock(t *testing.T) {
	dir := t.TempDir()

	first, err := LockDir(dir)
	require.NoError(t, err)
	require.NoError(t, first.Unlock())

	second, err := LockDir(dir)
	require.NoError(t, err)
	assert.NoError(t, second.Unlock())
}

func TestLockDir_SecondHolderIsRejected(t *testing.T) {
	dir := t.TempDir()

	lock, err := LockDir(dir)
	require.NoError(t, err)
	defer func() { _ = lock.Unlock() }()

	// A second descriptor on the same lock file contends like another
	// process would.
	_, err = LockDir(dir)
	assert.Error(t, err)
}

func TestLockDir_MissingDirectory(t *testing.T) {
	_, err := LockDir(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestDirLock_UnlockIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	lock, err := LockDir(dir)
	require.NoError(t, err)

	assert.NoError(t, lock.Unlock())
	assert.NoError(t, lock.Unlock())

	var nilLock *DirLock
	assert.NoError(t, nilLock.Unlock())
}
