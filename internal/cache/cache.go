// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists conversion results across runs so unchanged
// sources are not re-converted. The cache is a small SQLite table in the
// output directory, keyed by source path with a content fingerprint.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// dbFile is the cache database name inside the output directory.
const dbFile = ".any2pdf-cache.db"

// Cache is the on-disk conversion cache. Safe for concurrent use: all
// access goes through database/sql, which serializes writes.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database in outputDir, creating the
// directory and the schema as needed.
func Open(outputDir string) (*Cache, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	dbPath := filepath.Join(outputDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS conversions (
			source TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			output TEXT NOT NULL,
			converted_at TEXT NOT NULL
		)`,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Fingerprint derives the cache key for a source file from its path,
// modification time and size. Any edit that touches mtime or size
// invalidates the entry.
func Fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d", path, info.ModTime().UTC().Format(time.RFC3339Nano), info.Size())
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Lookup returns the cached output path for source when the fingerprint
// still matches and the output file still exists on disk. A recorded
// entry whose output has been deleted is a miss, not a hit.
func (c *Cache) Lookup(source, fingerprint string) (string, bool) {
	var storedFP, output string
	err := c.db.QueryRow(
		`SELECT fingerprint, output FROM conversions WHERE source = ?`, source,
	).Scan(&storedFP, &output)
	if err != nil || storedFP != fingerprint {
		return "", false
	}
	if _, err := os.Stat(output); err != nil {
		return "", false
	}
	return output, true
}

// Store records a successful conversion, replacing any previous entry
// for the same source.
func (c *Cache) Store(source, fingerprint, output string) error {
	_, err := c.db.Exec(
		`INSERT INTO conversions (source, fingerprint, output, converted_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
			fingerprint=excluded.fingerprint,
			output=excluded.output,
			converted_at=excluded.converted_at`,
		source, fingerprint, output, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing cache entry for %s: %w", source, err)
	}
	return nil
}
