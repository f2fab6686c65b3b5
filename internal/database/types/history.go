package types

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// HistoryRecord is one entry of the per-user message log. The message
// logger appends a record for every guild message; the spam detector
// only ever reads a bounded recent slice.
type HistoryRecord struct {
	ID        int64        `bun:",pk,autoincrement"`
	UserID    snowflake.ID `bun:",notnull"`
	GuildID   snowflake.ID `bun:",notnull"`
	ChannelID snowflake.ID `bun:",notnull"`
	MessageID snowflake.ID `bun:",notnull"`
	Text      string       `bun:",notnull"`
	Timestamp time.Time    `bun:",notnull"`
	// Deleted marks messages removed from Discord after being recorded.
	// Flagged records still count toward the spam window.
	Deleted bool `bun:",notnull,default:false"`
}
