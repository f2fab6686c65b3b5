package types

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

// Rule is one configured pattern-to-consequence mapping for automated
// moderation. Rules belong to exactly one guild and are read-only for
// the duration of a message evaluation.
type Rule struct {
	ID             int64            `bun:",pk,autoincrement"`
	GuildID        snowflake.ID     `bun:",notnull"`
	Kind           enum.RuleKind    `bun:",notnull"`
	Pattern        string           `bun:",notnull"`
	Consequence    enum.Consequence `bun:",notnull"`
	TimeoutMinutes int              `bun:",notnull,default:0"`
	CreatedBy      snowflake.ID     `bun:",notnull"`
	CreatedAt      time.Time        `bun:",nullzero,notnull,default:current_timestamp"`
}
