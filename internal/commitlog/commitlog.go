// Package commitlog implements an append-only, offset-addressable log
// backed by LevelDB: every kapp the reducer produces is encoded once and
// appended under a monotonically increasing offset, and the whole log can
// be replayed in order to reconstruct state after a crash.
package commitlog

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/keykapp/keykapp/internal/kapp"
)

// offsetPrefix namespaces every log entry key so the database could later
// carry other record kinds (metadata, indexes) without key collisions.
const offsetPrefix = "o|"

// Log is a single-writer, append-only sequence of encoded kapps. It opens
// exactly one LevelDB handle for the process lifetime and keeps it open
// for every append and replay, rather than reopening the database file on
// each call.
type Log struct {
	db     *leveldb.DB
	runID  string
	next   uint64
}

// Open opens (or creates) the segmented log at dbPath. A failure to open is
// fatal — storage-layer failure is unrecoverable — and main redirects the
// stdlib log to debug.log before this is ever called, so the failure is
// written straight to stderr rather than through log.Fatalf.
func Open(dbPath string) *Log {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mcommitlog: failed to open %s: %v\033[0m\n", dbPath, err)
		fmt.Fprintf(os.Stderr, "\033[2manother keykapp process may already hold the log (LevelDB is single-writer)\033[0m\n")
		os.Exit(1)
	}
	l := &Log{db: db, runID: uuid.New().String()}
	l.next = l.scanNextOffset()
	slog.Info("commitlog opened", "run_id", l.runID, "path", dbPath, "next_offset", l.next)
	return l
}

// scanNextOffset finds one past the highest offset already persisted, so a
// restart resumes appending where the previous run left off.
func (l *Log) scanNextOffset() uint64 {
	iter := l.db.NewIterator(util.BytesPrefix([]byte(offsetPrefix)), nil)
	defer iter.Release()
	var highest uint64
	var any bool
	for iter.Next() {
		off := decodeOffsetKey(iter.Key())
		if off+1 > highest {
			highest = off + 1
		}
		any = true
	}
	if !any {
		return 0
	}
	return highest
}

// Append persists k at the next offset and returns that offset. Append is
// the log's only mutating operation; it is never called concurrently with
// itself — the reducer's event loop is single-threaded.
func (l *Log) Append(k kapp.Kapp) (uint64, error) {
	off := l.next
	key := encodeOffsetKey(off)
	if err := l.db.Put(key, kapp.Encode(k), nil); err != nil {
		return 0, fmt.Errorf("commitlog: append at offset %d: %w", off, err)
	}
	l.next++
	slog.Debug("commitlog appended", "run_id", l.runID, "offset", off, "rendering", k.Render())
	return off, nil
}

// Replay calls apply, in offset order, for every kapp ever persisted. It is
// used once at bootstrap to rebuild in-memory state — the n-gram table and
// keybindings — before the reducer goes live.
//
// Expectations:
//   - Entries are visited in strictly increasing offset order
//   - A decode failure aborts replay immediately and returns an error: a
//     corrupt log is never partially trusted
func (l *Log) Replay(apply func(kapp.Kapp)) error {
	iter := l.db.NewIterator(util.BytesPrefix([]byte(offsetPrefix)), nil)
	defer iter.Release()
	var n int
	for iter.Next() {
		k, rest, err := kapp.Decode(iter.Value())
		if err != nil {
			return fmt.Errorf("commitlog: replay offset %d: %w", decodeOffsetKey(iter.Key()), err)
		}
		if len(rest) != 0 {
			return fmt.Errorf("commitlog: replay offset %d: %d trailing bytes", decodeOffsetKey(iter.Key()), len(rest))
		}
		apply(k)
		n++
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("commitlog: replay iteration: %w", err)
	}
	slog.Info("commitlog replay complete", "run_id", l.runID, "count", n)
	return nil
}

// Len returns the number of entries persisted, including ones from prior
// runs. It never opens a second iterator over the whole keyspace; it is
// simply the next free offset.
func (l *Log) Len() uint64 {
	return l.next
}

// Close releases the underlying LevelDB handle. Safe to call once, at
// process shutdown.
func (l *Log) Close() error {
	return l.db.Close()
}

func encodeOffsetKey(off uint64) []byte {
	key := make([]byte, len(offsetPrefix)+8)
	copy(key, offsetPrefix)
	binary.BigEndian.PutUint64(key[len(offsetPrefix):], off)
	return key
}

func decodeOffsetKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(offsetPrefix):])
}
