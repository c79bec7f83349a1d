package pathenv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/conn-castle/toolstrap/internal/messages"
)

var (
	lockFileFn   = lockFile
	unlockFileFn = unlockFile
	lockSleep    = time.Sleep
)

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// DefaultLockPath is the lock file that serializes PATH writes between toolstrap processes.
func DefaultLockPath() string {
	return filepath.Join(os.TempDir(), "toolstrap-path.lock")
}

type fileLock struct {
	file *os.File
}

// acquireFileLock opens or creates path and takes an exclusive advisory lock on it,
// polling until lockWaitTimeout.
func acquireFileLock(path string) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		locked, err := lockFileFn(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockFmt, path, err)
		}
		if locked {
			return &fileLock{file: file}, nil
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockTimeoutFmt, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}

// release unlocks and closes the file lock.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFileFn(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
