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

// ErrRuleNotFound is returned when a rule ID does not exist in the guild.
var ErrRuleNotFound = errors.New("rule not found")

// RuleModel handles database operations for moderation rules.
type RuleModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewRule creates a repository with database access for storing and
// retrieving moderation rules.
func NewRule(db *bun.DB, logger *zap.Logger) *RuleModel {
	return &RuleModel{
		db:     db,
		logger: logger.Named("db_rule"),
	}
}

// GetRules retrieves all rules configured for a guild, oldest first.
// The returned order only matters for escalation tie-breaking.
func (r *RuleModel) GetRules(ctx context.Context, guildID snowflake.ID) ([]*types.Rule, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Rule, error) {
		var rules []*types.Rule

		err := r.db.NewSelect().
			Model(&rules).
			Where("guild_id = ?", guildID).
			Order("id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get rules: %w", err)
		}

		return rules, nil
	})
}

// Add stores a new rule and returns it with its assigned ID.
func (r *RuleModel) Add(ctx context.Context, rule *types.Rule) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(rule).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add rule: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Added rule",
		zap.Int64("ruleID", rule.ID),
		zap.Uint64("guildID", uint64(rule.GuildID)),
		zap.String("kind", rule.Kind.String()),
		zap.String("consequence", rule.Consequence.String()))

	return nil
}

// Remove deletes a rule by ID, scoped to the guild so one guild cannot
// remove another guild's rules.
func (r *RuleModel) Remove(ctx context.Context, guildID snowflake.ID, ruleID int64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := r.db.NewDelete().
			Model((*types.Rule)(nil)).
			Where("id = ?", ruleID).
			Where("guild_id = ?", guildID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove rule: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check removed rows: %w", err)
		}
		if affected == 0 {
			return ErrRuleNotFound
		}

		return nil
	})
}

// Get retrieves a single rule by ID within a guild.
func (r *RuleModel) Get(ctx context.Context, guildID snowflake.ID, ruleID int64) (*types.Rule, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Rule, error) {
		rule := new(types.Rule)

		err := r.db.NewSelect().
			Model(rule).
			Where("id = ?", ruleID).
			Where("guild_id = ?", guildID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrRuleNotFound
			}
			return nil, fmt.Errorf("failed to get rule: %w", err)
		}

		return rule, nil
	})
}
