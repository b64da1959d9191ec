// Package cache stores per-file parse metadata (import requests and
// exported names) in a local SQLite database keyed by content hash, so
// repeat runs over unchanged files can skip the parser.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS modules (
	hash       TEXT PRIMARY KEY,
	meta       TEXT NOT NULL,
	build_id   TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// Entry is the cached metadata for one source file.
type Entry struct {
	Sources []string `json:"sources,omitempty"` // import/re-export requests, in source order
	Exports []string `json:"exports,omitempty"` // externally visible names
}

// Cache is a content-hash keyed metadata store. A zero-value Cache is
// not usable; call Open.
type Cache struct {
	db      *sql.DB
	buildID string
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db, buildID: uuid.NewString()}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// BuildID identifies the run that wrote an entry; every Open gets a
// fresh one.
func (c *Cache) BuildID() string {
	return c.buildID
}

// Lookup returns the entry stored for hash, if any.
func (c *Cache) Lookup(hash string) (*Entry, bool) {
	var meta string
	err := c.db.QueryRow(`SELECT meta FROM modules WHERE hash = ?`, hash).Scan(&meta)
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal([]byte(meta), &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

// Store saves entry under hash, replacing any previous value.
func (c *Cache) Store(hash string, entry *Entry) error {
	meta, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO modules (hash, meta, build_id, created_at) VALUES (?, ?, ?, ?)`,
		hash, string(meta), c.buildID, time.Now().Unix(),
	)
	return err
}

// HashSource returns the content hash used as a cache key.
func HashSource(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
