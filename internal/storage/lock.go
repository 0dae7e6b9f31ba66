package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/mbalaz/dennyzen/internal/constants"
	"github.com/mbalaz/dennyzen/internal/logger"
)

// ErrLocked is returned when another live session already owns the storage.
var ErrLocked = errors.New("another dennyzen session owns the storage")

var findProcessFunc = ps.FindProcess

// Lock is a pid lockfile next to the storage file. Storage writes are
// last-write-wins with no merge, so at most one live session may own the
// file; lockfiles left behind by dead processes are replaced.
type Lock struct {
	path string
}

// AcquireLock claims single-session ownership of the storage at configPath.
func AcquireLock(configPath string) (*Lock, error) {
	lockPath := filepath.Join(filepath.Dir(configPath), constants.LockfileName)

	content, err := os.ReadFile(lockPath)
	if err == nil {
		pid, parseErr := strconv.Atoi(strings.TrimSpace(string(content)))
		if parseErr == nil && pid != os.Getpid() && isLiveSession(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		if parseErr == nil {
			logger.Debug("Replacing stale lockfile", "path", lockPath, "pid", pid)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(lockPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lockfile directory: %w", err)
	}
	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return &Lock{path: lockPath}, nil
}

// Release removes the lockfile. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func isLiveSession(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	// Only a live dennyzen process counts; a recycled pid does not.
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
