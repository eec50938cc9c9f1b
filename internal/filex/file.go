// Package filex holds small filesystem helpers for local database files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir and its parents if needed and returns the absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// SQLitePath returns the file path named by a SQLite DSN, or "" when the
// database lives in memory.
func SQLitePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		if strings.Contains(p[i+1:], "mode=memory") {
			return ""
		}
		p = p[:i]
	}
	if p == "" || p == ":memory:" {
		return ""
	}
	return p
}

// EnsureSQLiteDir creates the directory holding the database file of dsn.
// In-memory DSNs are left alone.
func EnsureSQLiteDir(dsn string) error {
	p := SQLitePath(dsn)
	if p == "" {
		return nil
	}
	_, err := EnsureDir(filepath.Dir(p))
	return err
}
