package history

import (
	"context"
	"database/sql"

	"github.com/llehouerou/wavelist/internal/db"
)

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	return db.WithTx(context.Background(), conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS plays (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				source TEXT NOT NULL,
				played_at INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_plays_source ON plays(source);
		`); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		return err
	})
}
