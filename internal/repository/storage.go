package repository

import (
	"log/slog"
	"os"
	"path/filepath"
)

// The repository package keeps all durable client-side state as plain
// files under a single data directory, one file per key. Persistence is
// best-effort: callers treat a failed write as a degraded in-memory-only
// mode, never as a fatal error.

// readFile returns the file contents, or nil when the file is missing or
// unreadable.
func readFile(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// writeFileAtomic writes data via a temp file plus rename so a reader (or
// a watcher in another process) never observes a partial write.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// removeFile deletes the file, ignoring a missing one.
func removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Debug("removing state file failed", "path", path, "error", err)
	}
}
