package campaigns

import (
	"database/sql"

	"github.com/admybrand/pulseboard/pkg/plugin"
)

func migrations() []plugin.Migration {
	return []plugin.Migration{
		{
			Version:     1,
			Description: "create campaigns table",
			Up: func(tx *sql.Tx) error {
				stmts := []string{
					`CREATE TABLE IF NOT EXISTS campaigns (
						id          INTEGER PRIMARY KEY AUTOINCREMENT,
						name        TEXT NOT NULL,
						status      TEXT NOT NULL DEFAULT 'Active',
						budget      REAL NOT NULL DEFAULT 0,
						spent       REAL NOT NULL DEFAULT 0,
						conversions INTEGER NOT NULL DEFAULT 0,
						roi         REAL NOT NULL DEFAULT 0,
						created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
						updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE INDEX IF NOT EXISTS idx_campaigns_status ON campaigns(status)`,
				}
				for _, stmt := range stmts {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
