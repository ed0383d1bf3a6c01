package api

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockNotice = "This lockfile keeps two engine instances from using the same root cache directory in parallel.\n"

// cacheLock holds the exclusive lock on a root cache directory while the
// engine runs. The engine corrupts its profile when two browser processes
// share one.
type cacheLock struct {
	file *os.File
}

func lockCache(dir string) (*cacheLock, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("could not create root cache directory: %w", err)
	}

	lockPath := filepath.Join(dir, "exclusive.lock")
	lockfile, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("could not open exclusive.lock: %w", err)
	}

	if err := lockFile(lockfile); err != nil {
		lockfile.Close()
		return nil, fmt.Errorf("could not lock exclusive.lock: %w", err)
	}

	if err := lockfile.Truncate(0); err == nil {
		_, err = lockfile.WriteString(lockNotice)
	}
	if err != nil {
		unlockFile(lockfile)
		lockfile.Close()
		return nil, fmt.Errorf("error writing to exclusive.lock: %w", err)
	}
	return &cacheLock{file: lockfile}, nil
}

func (l *cacheLock) release() {
	if l == nil || l.file == nil {
		return
	}
	unlockFile(l.file)
	l.file.Close()
	l.file = nil
}
