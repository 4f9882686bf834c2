// Package store persists wardrobe state as whole-collection JSON
// snapshots in a SQLite key/value table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// State keys.
const (
	keyItems    = "items"
	keySettings = "settings"
	keyNotes    = "daily_notes"
)

// Store reads and writes application state. Each Save overwrites the
// previous snapshot; there is no incremental persistence.
type Store struct {
	db *sql.DB
}

// New returns a Store backed by the given database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveItems overwrites the item collection snapshot.
func (s *Store) SaveItems(ctx context.Context, items []model.Item) error {
	return s.put(ctx, keyItems, items)
}

// LoadItems returns the stored item collection, or nil if none exists.
func (s *Store) LoadItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	found, err := s.get(ctx, keyItems, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return items, nil
}

// SaveSettings overwrites the settings snapshot.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	return s.put(ctx, keySettings, settings)
}

// LoadSettings returns the stored settings, or defaults if none exist.
func (s *Store) LoadSettings(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()
	if _, err := s.get(ctx, keySettings, &settings); err != nil {
		return model.DefaultSettings(), err
	}
	return settings, nil
}

// SaveNotes overwrites the daily-notes snapshot.
func (s *Store) SaveNotes(ctx context.Context, notes map[string]string) error {
	return s.put(ctx, keyNotes, notes)
}

// LoadNotes returns the stored daily notes keyed by calendar day. A
// missing snapshot loads as an empty map.
func (s *Store) LoadNotes(ctx context.Context) (map[string]string, error) {
	notes := map[string]string{}
	if _, err := s.get(ctx, keyNotes, &notes); err != nil {
		return map[string]string{}, err
	}
	return notes, nil
}

// put serializes v and upserts it under key.
func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// get loads the value under key into v. Returns false if no row exists.
func (s *Store) get(ctx context.Context, key string, v any) (bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM state WHERE key = ?`, key,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}
