package store

import (
	_ "embed"
	"fmt"
)

// schemaVersion identifies the current database layout. Bump it whenever
// schema.sql changes in a way existing databases cannot absorb.
const schemaVersion = 1

//go:embed schema.sql
var schemaSQL string

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	switch {
	case err == nil:
		if version != schemaVersion {
			return fmt.Errorf("database schema version %d does not match expected %d; remove the database to recreate it", version, schemaVersion)
		}
		return nil
	case isNoRows(err):
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("read schema version: %w", err)
	}
}
