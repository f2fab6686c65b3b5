package enum

// RuleKind identifies how a moderation rule's pattern is matched
// against message text.
//
//go:generate go tool enumer -type=RuleKind -trimprefix=RuleKind
type RuleKind int

const (
	// RuleKindWord matches the pattern against whole whitespace-split
	// tokens of the message, case-insensitively.
	RuleKindWord RuleKind = iota
	// RuleKindRegex applies the pattern with regexp search semantics
	// over the raw message text.
	RuleKindRegex
)

// Consequence is the action level a rule can request. The declaration
// order is the severity ranking used by escalation: a higher value
// always wins over a lower one.
//
//go:generate go tool enumer -type=Consequence -trimprefix=Consequence
type Consequence int

const (
	// ConsequenceDelete removes the offending message and nothing else.
	ConsequenceDelete Consequence = iota
	// ConsequenceTimeout deletes the message and times the author out
	// for the rule's configured number of minutes.
	ConsequenceTimeout
	// ConsequenceKick deletes the message and kicks the author.
	ConsequenceKick
	// ConsequenceBan deletes the message and bans the author.
	ConsequenceBan
)
