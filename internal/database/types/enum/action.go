package enum

// ActionType categorizes audit log entries.
//
//go:generate go tool enumer -type=ActionType -trimprefix=ActionType
type ActionType int

const (
	// ActionTypeAll matches any action type in database queries.
	ActionTypeAll ActionType = iota

	// ActionTypeAutomod records an automated rule consequence being applied.
	ActionTypeAutomod
	// ActionTypeAntiSpam records a spam window trigger and its cleanup.
	ActionTypeAntiSpam
	// ActionTypeCommand records an administrative command invocation.
	ActionTypeCommand
)
