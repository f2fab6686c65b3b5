package types

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// GuildSettings stores a guild's moderation configuration. A row exists
// for every guild the bot has seen; the ingestion path upserts a default
// row before evaluation so the decision layer never deals with missing
// configuration.
type GuildSettings struct {
	GuildID        snowflake.ID `bun:",pk"`
	Name           string       `bun:",notnull,default:''"`
	AutomodEnabled bool         `bun:",notnull,default:false"`
	// SpamThreshold is the exact number of identical recent messages
	// that triggers the anti-spam path. Zero disables spam checking.
	SpamThreshold int       `bun:",notnull,default:0"`
	UpdatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
