package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock is an exclusive advisory lock on one corpus directory.
type RunLock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the run lock for corpusDir, keeping the lock file in
// lockDir. It returns ErrLocked when another process already holds it.
func AcquireLock(lockDir, corpusDir string) (*RunLock, error) {
	abs, err := filepath.Abs(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus dir: %w", err)
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	path := filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, abs)
	}
	return &RunLock{path: path, lock: lock}, nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string { return l.path }

// Release unlocks the directory. It is safe to call on a nil lock.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
