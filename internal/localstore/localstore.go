// Package localstore reads and writes the SQLite key-value file that
// pre-server editions of the tool kept the catalog in. The running service
// only touches it during the one-time migration.
package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/almeidarc/affiliate-catalog/internal/model"
)

const (
	productsKey   = "affiliate-products"
	migratedKey   = "affiliate-products-migrated"
	migratedValue = "true"
)

type Store struct {
	conn *sql.DB
}

func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.init(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) init() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := s.conn.Exec(createTableSQL); err != nil {
		return fmt.Errorf("init local store: %w", err)
	}
	return nil
}

// Products returns the cached product list. A missing or corrupt payload
// counts as an empty cache, never as a failure.
func (s *Store) Products() ([]model.Product, error) {
	raw, ok, err := s.get(productsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var products []model.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, nil
	}
	return products, nil
}

func (s *Store) SaveProducts(ps []model.Product) error {
	data, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("serialize products: %w", err)
	}
	return s.set(productsKey, string(data))
}

// Clear drops the cached product list, leaving the migration flag alone.
func (s *Store) Clear() error {
	_, err := s.conn.Exec("DELETE FROM kv WHERE key = ?", productsKey)
	return err
}

func (s *Store) Migrated() (bool, error) {
	raw, ok, err := s.get(migratedKey)
	if err != nil {
		return false, err
	}
	return ok && raw == migratedValue, nil
}

func (s *Store) SetMigrated() error {
	return s.set(migratedKey, migratedValue)
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read local store key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("write local store key %q: %w", key, err)
	}
	return nil
}
