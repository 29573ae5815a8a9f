package cache

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tarballs (
    name       TEXT NOT NULL,
    version    TEXT NOT NULL,
    source     TEXT NOT NULL DEFAULT '',
    integrity  TEXT NOT NULL DEFAULT '',
    path       TEXT NOT NULL,
    size       INTEGER NOT NULL,
    fetched_at TEXT NOT NULL,
    PRIMARY KEY (name, version)
);
`

// TarballCache stores fetched archives on disk under <dir>/<name>/<version>/
// with a sqlite index alongside. It persists across processes; the
// in-memory packument cache in the fetcher does not.
type TarballCache struct {
	mu  sync.RWMutex
	dir string
	db  *sql.DB
}

func New(dir string) (*TarballCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &TarballCache{dir: dir, db: db}, nil
}

func (c *TarballCache) Close() error {
	return c.db.Close()
}

func (c *TarballCache) Has(name, version string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var path string
	err := c.db.QueryRow(
		"SELECT path FROM tarballs WHERE name = ? AND version = ?", name, version,
	).Scan(&path)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c *TarballCache) Path(name, version string) string {
	return filepath.Join(c.dir, filepath.FromSlash(name), version, "package.tgz")
}

// Store drains r into the cache and records the entry in the index. The
// file is written to a temp path first so a failed copy never leaves a
// half-written entry behind the index row.
func (c *TarballCache) Store(name, version, source, integrity string, r io.Reader) (string, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dst := c.Path(name, version)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".package-*")
	if err != nil {
		return "", 0, err
	}
	size, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", 0, err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", 0, err
	}

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO tarballs (name, version, source, integrity, path, size, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, version, source, integrity, dst, size, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", 0, fmt.Errorf("failed to index %s@%s: %w", name, version, err)
	}

	return dst, size, nil
}

func (c *TarballCache) Open(name, version string) (io.ReadCloser, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var path string
	err := c.db.QueryRow(
		"SELECT path FROM tarballs WHERE name = ? AND version = ?", name, version,
	).Scan(&path)
	if err != nil {
		return nil, fmt.Errorf("%s@%s not in cache: %w", name, version, err)
	}
	return os.Open(path)
}

func (c *TarballCache) Size() (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var size sql.NullInt64
	if err := c.db.QueryRow("SELECT SUM(size) FROM tarballs").Scan(&size); err != nil {
		return 0, err
	}
	return size.Int64, nil
}

func (c *TarballCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec("DELETE FROM tarballs"); err != nil {
		return err
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name() == "index.db" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
