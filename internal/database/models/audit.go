package models

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelmod/sentinel/internal/database/dbretry"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AuditModel handles database operations for the moderation audit trail.
type AuditModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAudit creates a repository with database access for storing and
// retrieving audit log entries.
func NewAudit(db *bun.DB, logger *zap.Logger) *AuditModel {
	return &AuditModel{
		db:     db,
		logger: logger.Named("db_audit"),
	}
}

// Log stores an audit entry. Failures are logged and swallowed: the
// audit trail must never abort enforcement of a decision.
func (r *AuditModel) Log(ctx context.Context, entry *types.AuditLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(entry).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to log audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to log audit entry",
			zap.Error(err),
			zap.String("actionType", entry.ActionType.String()),
			zap.Uint64("userID", uint64(entry.UserID)),
			zap.Uint64("guildID", uint64(entry.GuildID)))
		return
	}

	r.logger.Debug("Logged audit entry",
		zap.String("actionType", entry.ActionType.String()),
		zap.Uint64("userID", uint64(entry.UserID)),
		zap.Uint64("guildID", uint64(entry.GuildID)),
		zap.String("extra", entry.Extra))
}

// GetLogs retrieves the newest audit entries for a guild, optionally
// filtered by action type.
func (r *AuditModel) GetLogs(
	ctx context.Context, guildID snowflake.ID, actionType enum.ActionType, limit int,
) ([]*types.AuditLog, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.AuditLog, error) {
		var logs []*types.AuditLog

		query := r.db.NewSelect().
			Model(&logs).
			Where("guild_id = ?", guildID)

		if actionType != enum.ActionTypeAll {
			query = query.Where("action_type = ?", actionType)
		}

		err := query.
			Order("timestamp DESC", "id DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get audit logs: %w", err)
		}

		return logs, nil
	})
}
