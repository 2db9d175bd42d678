package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

// Settings is a key-value view of the settings table scoped to one namespace.
// Each game variant keeps its own namespace, so their high scores never mix.
type Settings struct {
	store     *Store
	namespace string
}

var _ stack.KV = (*Settings)(nil)

// Settings returns the key-value store for a namespace, usually a game ID.
func (s *Store) Settings(namespace string) *Settings {
	return &Settings{store: s, namespace: namespace}
}

// Get returns the value stored under key.
func (kv *Settings) Get(key string) (string, bool, error) {
	var value string
	err := kv.store.db.QueryRow(
		"SELECT value FROM settings WHERE namespace = ? AND name = ?",
		kv.namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s/%s: %w", kv.namespace, key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (kv *Settings) Set(key, value string) error {
	_, err := kv.store.db.Exec(
		`INSERT INTO settings (namespace, name, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		kv.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s/%s: %w", kv.namespace, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (kv *Settings) Delete(key string) error {
	_, err := kv.store.db.Exec(
		"DELETE FROM settings WHERE namespace = ? AND name = ?",
		kv.namespace, key,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete setting %s/%s: %w", kv.namespace, key, err)
	}
	return nil
}
