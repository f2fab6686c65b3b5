package models

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelmod/sentinel/internal/database/dbretry"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// HistoryModel handles database operations for the per-user message log.
type HistoryModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewHistory creates a repository with database access for the
// append-only message history used by the spam detector.
func NewHistory(db *bun.DB, logger *zap.Logger) *HistoryModel {
	return &HistoryModel{
		db:     db,
		logger: logger.Named("db_history"),
	}
}

// Add appends a message record. Failures are logged rather than
// propagated: a missed history row must never block message processing.
func (r *HistoryModel) Add(ctx context.Context, record *types.HistoryRecord) {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(record).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add history record: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to add history record",
			zap.Error(err),
			zap.Uint64("userID", uint64(record.UserID)),
			zap.Uint64("guildID", uint64(record.GuildID)),
			zap.Uint64("messageID", uint64(record.MessageID)))
	}
}

// GetRecentMessages returns up to limit records for the user in the
// guild with timestamps at or after since, newest first.
func (r *HistoryModel) GetRecentMessages(
	ctx context.Context, userID, guildID snowflake.ID, since time.Time, limit int,
) ([]*types.HistoryRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.HistoryRecord, error) {
		var records []*types.HistoryRecord

		err := r.db.NewSelect().
			Model(&records).
			Where("user_id = ?", userID).
			Where("guild_id = ?", guildID).
			Where("timestamp >= ?", since).
			Order("timestamp DESC", "id DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get recent messages: %w", err)
		}

		return records, nil
	})
}

// UpdateText rewrites the stored text for an edited message so the spam
// window reflects what the message currently says.
func (r *HistoryModel) UpdateText(ctx context.Context, messageID snowflake.ID, text string) {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.HistoryRecord)(nil)).
			Set("text = ?", text).
			Where("message_id = ?", messageID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update history record: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to update history record",
			zap.Error(err),
			zap.Uint64("messageID", uint64(messageID)))
	}
}

// MarkDeleted flags the record for a message removed from Discord. The
// record stays in the history so the spam window still counts it.
func (r *HistoryModel) MarkDeleted(ctx context.Context, messageID snowflake.ID) {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.HistoryRecord)(nil)).
			Set("deleted = TRUE").
			Where("message_id = ?", messageID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to mark history record deleted: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to mark history record deleted",
			zap.Error(err),
			zap.Uint64("messageID", uint64(messageID)))
	}
}

// Prune removes records older than the cutoff. The spam window only
// looks back 15 seconds, so anything older is dead weight.
func (r *HistoryModel) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := r.db.NewDelete().
			Model((*types.HistoryRecord)(nil)).
			Where("timestamp < ?", cutoff).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to prune history: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check pruned rows: %w", err)
		}

		return affected, nil
	})
}
