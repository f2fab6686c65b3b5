package types

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

// AuditLog records one moderation action taken against a user.
type AuditLog struct {
	ID         int64           `bun:",pk,autoincrement"`
	ActionType enum.ActionType `bun:",notnull"`
	UserID     snowflake.ID    `bun:",notnull"`
	GuildID    snowflake.ID    `bun:",notnull"`
	ChannelID  snowflake.ID    `bun:",nullzero"`
	// Extra carries a human-readable description of what was done,
	// e.g. the consequence that won escalation.
	Extra     string    `bun:",notnull,default:''"`
	Timestamp time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
