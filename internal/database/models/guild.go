package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelmod/sentinel/internal/database/dbretry"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// GuildModel handles database operations for guild moderation settings.
type GuildModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewGuild creates a repository with database access for guild settings.
func NewGuild(db *bun.DB, logger *zap.Logger) *GuildModel {
	return &GuildModel{
		db:     db,
		logger: logger.Named("db_guild"),
	}
}

// Upsert ensures a settings row exists for the guild, updating the name
// if it changed. Existing moderation settings are left untouched.
func (r *GuildModel) Upsert(ctx context.Context, guildID snowflake.ID, name string) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		settings := &types.GuildSettings{
			GuildID: guildID,
			Name:    name,
		}

		_, err := r.db.NewInsert().
			Model(settings).
			On("CONFLICT (guild_id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert guild settings: %w", err)
		}

		return nil
	})
}

// Get retrieves a guild's settings. A guild without a row gets the
// zero-value defaults (automod disabled, spam checking disabled), which
// matches the contract that the engine never sees missing configuration.
func (r *GuildModel) Get(ctx context.Context, guildID snowflake.ID) (*types.GuildSettings, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.GuildSettings, error) {
		settings := new(types.GuildSettings)

		err := r.db.NewSelect().
			Model(settings).
			Where("guild_id = ?", guildID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &types.GuildSettings{GuildID: guildID}, nil
			}

			return nil, fmt.Errorf("failed to get guild settings: %w", err)
		}

		return settings, nil
	})
}

// SetAutomodEnabled flips the automod master switch for a guild.
func (r *GuildModel) SetAutomodEnabled(ctx context.Context, guildID snowflake.ID, enabled bool) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.GuildSettings)(nil)).
			Set("automod_enabled = ?", enabled).
			Set("updated_at = now()").
			Where("guild_id = ?", guildID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set automod enabled: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Set automod enabled",
		zap.Uint64("guildID", uint64(guildID)),
		zap.Bool("enabled", enabled))

	return nil
}

// SetSpamThreshold updates the anti-spam threshold. Callers validate
// non-negativity; zero disables spam checking.
func (r *GuildModel) SetSpamThreshold(ctx context.Context, guildID snowflake.ID, threshold int) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.GuildSettings)(nil)).
			Set("spam_threshold = ?", threshold).
			Set("updated_at = now()").
			Where("guild_id = ?", guildID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set spam threshold: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Set spam threshold",
		zap.Uint64("guildID", uint64(guildID)),
		zap.Int("threshold", threshold))

	return nil
}
