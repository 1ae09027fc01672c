package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opsledger/svcledger/pkg/types"
)

// migrations are additive statements attempted on every startup. Each must
// be safe to repeat: "duplicate column name" is success, any other failure
// propagates.
var migrations = []string{
	`ALTER TABLE customer_services ADD COLUMN domain TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE service_templates ADD COLUMN category TEXT NOT NULL DEFAULT 'general'`,
}

// applyMigrations runs the additive migration set against db. Idempotent.
func applyMigrations(db *sql.DB, log zerolog.Logger) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if isDuplicateColumn(err) {
				log.Debug().Str("stmt", stmt).Msg("migration already applied")
				continue
			}
			return fmt.Errorf("%w: migration %q: %v", types.ErrStorage, stmt, err)
		}
	}
	return nil
}

// isDuplicateColumn reports whether err is SQLite's complaint about adding
// a column that already exists.
func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
