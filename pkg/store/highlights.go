// Package store persists text highlights across sessions in a local
// SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "modernc.org/sqlite"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"
)

// storeKey identifies the highlight collection in the kv table. Kept
// stable so existing databases keep working.
const storeKey = "pastlink-highlights"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	store   TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);`

// HighlightStore keeps text highlights in memory and mirrors every
// change to disk. Corrupt or missing persisted state degrades to an
// empty collection rather than an error.
type HighlightStore struct {
	mu         sync.Mutex
	db         *sql.DB
	highlights []common.Highlight
}

// OpenHighlights opens (and if needed creates) the highlight database
// at path and loads the persisted collection.
func OpenHighlights(path string) (*HighlightStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open highlight database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize highlight database: %w", err)
	}

	s := &HighlightStore{db: db}
	s.load()
	return s, nil
}

func (s *HighlightStore) load() {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM kv WHERE store = ?`, storeKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return
	}
	if err != nil {
		logger.Warn("[Highlights] failed to read persisted state, starting empty", "error", err)
		return
	}
	var highlights []common.Highlight
	if err := json.Unmarshal([]byte(payload), &highlights); err != nil {
		logger.Warn("[Highlights] persisted state is corrupt, starting empty", "error", err)
		return
	}
	s.highlights = highlights
}

func (s *HighlightStore) persistLocked() error {
	payload, err := json.Marshal(s.highlights)
	if err != nil {
		return fmt.Errorf("failed to serialize highlights: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (store, payload) VALUES (?, ?)
		 ON CONFLICT (store) DO UPDATE SET payload = excluded.payload`,
		storeKey, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to persist highlights: %w", err)
	}
	return nil
}

// List returns a copy of all highlights.
func (s *HighlightStore) List() []common.Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]common.Highlight(nil), s.highlights...)
}

// Add stores a highlight, assigning it an ID and creation time.
func (s *HighlightStore) Add(h common.Highlight) (common.Highlight, error) {
	id, err := gonanoid.New()
	if err != nil {
		return common.Highlight{}, err
	}
	h.ID = id
	h.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlights = append(s.highlights, h)
	if err := s.persistLocked(); err != nil {
		s.highlights = s.highlights[:len(s.highlights)-1]
		return common.Highlight{}, err
	}
	return h, nil
}

// Remove deletes the highlight with the given ID. Removing an unknown
// ID is a no-op.
func (s *HighlightStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.highlights {
		if h.ID == id {
			kept := make([]common.Highlight, 0, len(s.highlights)-1)
			kept = append(kept, s.highlights[:i]...)
			kept = append(kept, s.highlights[i+1:]...)
			previous := s.highlights
			s.highlights = kept
			if err := s.persistLocked(); err != nil {
				s.highlights = previous
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Clear deletes all highlights.
func (s *HighlightStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.highlights
	s.highlights = nil
	if err := s.persistLocked(); err != nil {
		s.highlights = previous
		return err
	}
	return nil
}

// Close releases the underlying database.
func (s *HighlightStore) Close() error {
	return s.db.Close()
}
