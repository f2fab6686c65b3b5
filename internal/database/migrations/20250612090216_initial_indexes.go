package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// The spam window query filters on (user, guild, timestamp) and
		// orders newest-first; rule lookups are per guild.
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_rules_guild_id
				ON rules (guild_id)`,
			`CREATE INDEX IF NOT EXISTS idx_history_records_user_guild_timestamp
				ON history_records (user_id, guild_id, timestamp DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_history_records_message_id
				ON history_records (message_id)`,
			`CREATE INDEX IF NOT EXISTS idx_audit_logs_guild_timestamp
				ON audit_logs (guild_id, timestamp DESC)`,
		}

		for _, idx := range indexes {
			if _, err := db.NewRaw(idx).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_rules_guild_id;
			DROP INDEX IF EXISTS idx_history_records_user_guild_timestamp;
			DROP INDEX IF EXISTS idx_history_records_message_id;
			DROP INDEX IF EXISTS idx_audit_logs_guild_timestamp;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}
