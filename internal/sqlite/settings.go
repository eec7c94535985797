package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Well-known setting keys.
const (
	KeyToken   = "token"
	KeySession = "session"
)

// Get returns the value stored under key.
// Returns ErrNotFound if the key is absent.
func (b *Backend) Get(key string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}

	var value string
	err := b.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (b *Backend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := b.db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (b *Backend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if _, err := b.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys returns every stored key in ascending order.
func (b *Backend) Keys() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(`SELECT key FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Token returns the stored auth token, or "" when none was saved.
func (b *Backend) Token() (string, error) {
	token, err := b.Get(KeyToken)
	if errors.Is(err, types.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// SetToken saves the auth token.
func (b *Backend) SetToken(token string) error {
	return b.Set(KeyToken, token)
}

// LoadJSON decodes the value under key into v.
// Returns ErrNotFound if the key is absent.
func (b *Backend) LoadJSON(key string, v any) error {
	raw, err := b.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func (b *Backend) SaveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.Set(key, string(data))
}
