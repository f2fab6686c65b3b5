package automod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
	"go.uber.org/zap"
)

// AuditSink records moderation actions. Implementations must swallow
// their own failures; the dispatcher does not check for them.
type AuditSink interface {
	Log(ctx context.Context, entry *types.AuditLog)
}

// Dispatcher translates a decision into an ordered list of enforcement
// directives and applies them. Directive failures are isolated: a
// permission error or missing target never aborts sibling directives or
// the audit write.
type Dispatcher struct {
	executor Executor
	audit    AuditSink
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher issuing directives to the executor
// and recording outcomes in the audit sink.
func NewDispatcher(executor Executor, audit AuditSink, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		executor: executor,
		audit:    audit,
		logger:   logger.Named("dispatcher"),
	}
}

// Dispatch applies both decision paths for one message. Directives are
// sequenced delete-first so the audit entry always reflects the final
// action taken.
func (d *Dispatcher) Dispatch(ctx context.Context, event MessageEvent, decision Decision) {
	// Track the triggering message so overlapping rule and spam
	// deletions do not issue the same directive twice.
	deletedTrigger := false

	if decision.Match != nil {
		d.applyMatch(ctx, event, decision.Match)

		deletedTrigger = true
	}

	if decision.SpamTriggered {
		d.applySpam(ctx, event, decision.SpamWindow, deletedTrigger)
	}
}

// applyMatch enforces the winning rule consequence: the message is
// deleted in all cases, the user-targeting action follows for
// severities above Delete, and an audit entry records the outcome.
func (d *Dispatcher) applyMatch(ctx context.Context, event MessageEvent, match *RuleMatch) {
	d.execute(ctx, Directive{
		Kind:      DirectiveDeleteMessage,
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
		MessageID: event.MessageID,
	})

	reason := fmt.Sprintf("Automod rule %d", match.RuleID)

	switch match.Consequence {
	case enum.ConsequenceTimeout:
		d.execute(ctx, Directive{
			Kind:     DirectiveTimeoutUser,
			GuildID:  event.GuildID,
			UserID:   event.AuthorID,
			Duration: time.Duration(match.TimeoutMinutes) * time.Minute,
			Reason:   reason,
		})
	case enum.ConsequenceKick:
		d.execute(ctx, Directive{
			Kind:    DirectiveKickUser,
			GuildID: event.GuildID,
			UserID:  event.AuthorID,
			Reason:  reason,
		})
	case enum.ConsequenceBan:
		d.execute(ctx, Directive{
			Kind:    DirectiveBanUser,
			GuildID: event.GuildID,
			UserID:  event.AuthorID,
			Reason:  reason,
		})
	case enum.ConsequenceDelete:
		// Deletion only; no user action.
	}

	d.audit.Log(ctx, &types.AuditLog{
		ActionType: enum.ActionTypeAutomod,
		UserID:     event.AuthorID,
		GuildID:    event.GuildID,
		ChannelID:  event.ChannelID,
		Extra:      fmt.Sprintf("Action: %s (rule %d)", match.Consequence, match.RuleID),
	})
}

// applySpam deletes every message in the matched window and places the
// author under the fixed spam timeout.
func (d *Dispatcher) applySpam(
	ctx context.Context, event MessageEvent, window []*types.HistoryRecord, deletedTrigger bool,
) {
	for _, record := range window {
		if deletedTrigger && record.MessageID == event.MessageID {
			continue
		}

		d.execute(ctx, Directive{
			Kind:      DirectiveDeleteMessage,
			GuildID:   event.GuildID,
			ChannelID: record.ChannelID,
			MessageID: record.MessageID,
		})
	}

	d.execute(ctx, Directive{
		Kind:     DirectiveTimeoutUser,
		GuildID:  event.GuildID,
		UserID:   event.AuthorID,
		Duration: SpamTimeoutDuration,
		Reason:   "Spamming",
	})

	d.audit.Log(ctx, &types.AuditLog{
		ActionType: enum.ActionTypeAntiSpam,
		UserID:     event.AuthorID,
		GuildID:    event.GuildID,
		ChannelID:  event.ChannelID,
		Extra:      fmt.Sprintf("Deleted %d repeated messages", len(window)),
	})
}

// execute runs one directive, classifying failures. Missing targets are
// success; permission errors are suppressed with a warning; anything
// else is logged and swallowed so siblings still run.
func (d *Dispatcher) execute(ctx context.Context, directive Directive) {
	err := d.executor.Execute(ctx, directive)
	if err == nil || errors.Is(err, ErrNotFound) {
		return
	}

	if errors.Is(err, ErrForbidden) {
		d.logger.Warn("Missing permission for directive",
			zap.String("kind", directive.Kind.String()),
			zap.Uint64("guildID", uint64(directive.GuildID)),
			zap.Uint64("userID", uint64(directive.UserID)))

		return
	}

	d.logger.Error("Directive failed",
		zap.String("kind", directive.Kind.String()),
		zap.Uint64("guildID", uint64(directive.GuildID)),
		zap.Error(err))
}
