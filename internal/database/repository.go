package database

import (
	"github.com/sentinelmod/sentinel/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	guild   *models.GuildModel
	rule    *models.RuleModel
	history *models.HistoryModel
	audit   *models.AuditModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		guild:   models.NewGuild(db, logger),
		rule:    models.NewRule(db, logger),
		history: models.NewHistory(db, logger),
		audit:   models.NewAudit(db, logger),
	}
}

// Guild returns the guild settings model repository.
func (r *Repository) Guild() *models.GuildModel {
	return r.guild
}

// Rule returns the moderation rule model repository.
func (r *Repository) Rule() *models.RuleModel {
	return r.rule
}

// History returns the message history model repository.
func (r *Repository) History() *models.HistoryModel {
	return r.history
}

// Audit returns the audit log model repository.
func (r *Repository) Audit() *models.AuditModel {
	return r.audit
}
