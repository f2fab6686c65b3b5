// Package automod implements the rule-evaluation and consequence-escalation
// engine behind the moderation bot: matching configured rules against
// messages, folding all firing rules into one winning consequence, detecting
// repeated-message spam over a bounded recent window, and translating
// decisions into enforcement directives.
package automod

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

// MessageEvent carries everything the engine needs to know about one
// incoming message. Events are ephemeral; the engine never stores them.
type MessageEvent struct {
	AuthorID  snowflake.ID
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Text      string
	Timestamp time.Time
}

// RuleMatch is the winning consequence of rule escalation.
type RuleMatch struct {
	RuleID         int64
	Consequence    enum.Consequence
	TimeoutMinutes int
}

// Decision is the engine's combined output for one message. Rule
// escalation and spam detection are independent; both may be set.
type Decision struct {
	// Match is the single highest-severity rule consequence, or nil
	// when no rule fired.
	Match *RuleMatch
	// SpamTriggered reports whether the author filled the spam window
	// with identical messages.
	SpamTriggered bool
	// SpamWindow holds the matched history records when SpamTriggered
	// is set, newest first. Every message in it gets deleted.
	SpamWindow []*types.HistoryRecord
}
