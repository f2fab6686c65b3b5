package automod

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

var (
	// ErrNotFound reports that the directive's target no longer exists,
	// e.g. a message already deleted. Treated as success.
	ErrNotFound = errors.New("directive target not found")

	// ErrForbidden reports that the bot lacks the authority to carry out
	// a directive. Suppressed; sibling directives still execute.
	ErrForbidden = errors.New("missing permission for directive")
)

// DirectiveKind identifies one concrete enforcement instruction.
//
//go:generate go tool enumer -type=DirectiveKind -trimprefix=Directive
type DirectiveKind int

const (
	// DirectiveDeleteMessage removes one message from its channel.
	DirectiveDeleteMessage DirectiveKind = iota
	// DirectiveTimeoutUser places the user under a timeout.
	DirectiveTimeoutUser
	// DirectiveKickUser removes the user from the guild.
	DirectiveKickUser
	// DirectiveBanUser bans the user from the guild.
	DirectiveBanUser
	// DirectiveUntimeoutUser lifts an active timeout early.
	DirectiveUntimeoutUser
	// DirectiveUnbanUser removes a ban from the guild.
	DirectiveUnbanUser
)

// Directive is one side-effecting instruction handed to the enforcement
// executor. Directives are idempotent from the caller's perspective:
// deleting an already-deleted message is a no-op, and reapplying an
// equal timeout is harmless.
type Directive struct {
	Kind      DirectiveKind
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	UserID    snowflake.ID
	// Duration applies to DirectiveTimeoutUser only.
	Duration time.Duration
	Reason   string
}

// Executor carries directives out against the chat platform. It accepts
// one directive at a time and maps platform failures onto ErrNotFound
// and ErrForbidden so the dispatcher can classify them.
type Executor interface {
	Execute(ctx context.Context, directive Directive) error
}
