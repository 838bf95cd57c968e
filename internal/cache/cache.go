// Package cache stores per-file lint events on disk, keyed by file content.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/source"
)

// schemaVersion is bumped whenever Entry or the checker output changes.
const schemaVersion uint16 = 1

// Key identifies one (content, dialect) pair.
type Key [sha256.Size]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// KeyFor hashes the schema version, dialect name and file content.
func KeyFor(dialect string, content []byte) Key {
	h := sha256.New()
	var ver [2]byte
	binary.BigEndian.PutUint16(ver[:], schemaVersion)
	h.Write(ver[:])
	h.Write([]byte(dialect))
	h.Write([]byte{0})
	h.Write(content)
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Entry is the on-disk form of one file's events. Spans are relative to the
// file start so an entry can be replayed at any base.
type Entry struct {
	Schema uint16
	Events []EventRecord
}

type EventRecord struct {
	Kind  uint8
	Spans []SpanRecord
}

type SpanRecord struct {
	Start uint32
	End   uint32
}

// Cache is a directory of msgpack entries. A nil *Cache is valid and never
// hits.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/todolint, falling back to ~/.cache.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "todolint"), nil
}

// Open creates dir if needed. An empty dir means DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(k Key) string {
	s := k.String()
	return filepath.Join(c.dir, s[:2], s+".mp")
}

// Get replays the cached events for k at base. ok is false on a miss or when
// the entry was written by another schema version.
func (c *Cache) Get(k Key, base source.Pos) (events []lint.Event, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(k))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", k, err)
	}
	if e.Schema != schemaVersion {
		return nil, false, nil
	}
	return decodeEvents(e.Events, base), true, nil
}

// Put stores events found in a file starting at base.
func (c *Cache) Put(k Key, base source.Pos, events []lint.Event) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(k)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	entry := Entry{Schema: schemaVersion, Events: encodeEvents(events, base)}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", k, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func encodeEvents(events []lint.Event, base source.Pos) []EventRecord {
	out := make([]EventRecord, 0, len(events))
	for _, ev := range events {
		rec := EventRecord{Kind: uint8(ev.Kind), Spans: make([]SpanRecord, len(ev.Spans))}
		for i, sp := range ev.Spans {
			rel := sp.Rel(base)
			rec.Spans[i] = SpanRecord{Start: uint32(rel.Start), End: uint32(rel.End)}
		}
		out = append(out, rec)
	}
	return out
}

func decodeEvents(recs []EventRecord, base source.Pos) []lint.Event {
	if len(recs) == 0 {
		return nil
	}
	out := make([]lint.Event, 0, len(recs))
	for _, rec := range recs {
		kind := lint.MarkerKind(rec.Kind)
		ev := lint.Event{Lint: lint.Name, Message: kind.Message(), Kind: kind, Spans: make([]source.Span, len(rec.Spans))}
		for i, sp := range rec.Spans {
			ev.Spans[i] = source.Span{Start: source.Pos(sp.Start), End: source.Pos(sp.End)}.Abs(base)
		}
		out = append(out, ev)
	}
	return out
}
