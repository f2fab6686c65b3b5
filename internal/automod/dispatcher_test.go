package automod_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/automod"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

// fakeExecutor records issued directives and fails the kinds it is
// told to fail.
type fakeExecutor struct {
	directives []automod.Directive
	failWith   map[automod.DirectiveKind]error
}

func (f *fakeExecutor) Execute(_ context.Context, directive automod.Directive) error {
	f.directives = append(f.directives, directive)
	return f.failWith[directive.Kind]
}

func (f *fakeExecutor) kinds() []automod.DirectiveKind {
	kinds := make([]automod.DirectiveKind, len(f.directives))
	for i, directive := range f.directives {
		kinds[i] = directive.Kind
	}

	return kinds
}

// fakeAuditSink collects audit entries.
type fakeAuditSink struct {
	entries []*types.AuditLog
}

func (f *fakeAuditSink) Log(_ context.Context, entry *types.AuditLog) {
	f.entries = append(f.entries, entry)
}

func dispatchEvent() automod.MessageEvent {
	return automod.MessageEvent{
		AuthorID:  snowflake.ID(100),
		GuildID:   snowflake.ID(200),
		ChannelID: snowflake.ID(300),
		MessageID: snowflake.ID(400),
		Text:      "hi",
		Timestamp: time.Now(),
	}
}

func TestDispatchDeleteOnly(t *testing.T) {
	t.Parallel()

	executor := &fakeExecutor{}
	audit := &fakeAuditSink{}
	dispatcher := automod.NewDispatcher(executor, audit, zap.NewNop())

	dispatcher.Dispatch(t.Context(), dispatchEvent(), automod.Decision{
		Match: &automod.RuleMatch{RuleID: 1, Consequence: enum.ConsequenceDelete},
	})

	assert.Equal(t, []automod.DirectiveKind{automod.DirectiveDeleteMessage}, executor.kinds())

	require.Len(t, audit.entries, 1)
	assert.Equal(t, enum.ActionTypeAutomod, audit.entries[0].ActionType)
	assert.Equal(t, snowflake.ID(100), audit.entries[0].UserID)
}

func TestDispatchEscalatedConsequences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		consequence enum.Consequence
		second      automod.DirectiveKind
	}{
		{name: "timeout", consequence: enum.ConsequenceTimeout, second: automod.DirectiveTimeoutUser},
		{name: "kick", consequence: enum.ConsequenceKick, second: automod.DirectiveKickUser},
		{name: "ban", consequence: enum.ConsequenceBan, second: automod.DirectiveBanUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &fakeExecutor{}
			dispatcher := automod.NewDispatcher(executor, &fakeAuditSink{}, zap.NewNop())

			dispatcher.Dispatch(t.Context(), dispatchEvent(), automod.Decision{
				Match: &automod.RuleMatch{RuleID: 1, Consequence: tt.consequence, TimeoutMinutes: 5},
			})

			require.Equal(t, []automod.DirectiveKind{automod.DirectiveDeleteMessage, tt.second}, executor.kinds())

			// The user directive targets the author, not the message.
			assert.Equal(t, snowflake.ID(100), executor.directives[1].UserID)

			if tt.consequence == enum.ConsequenceTimeout {
				assert.Equal(t, 5*time.Minute, executor.directives[1].Duration)
			}
		})
	}
}

func TestDispatchSpamCleanup(t *testing.T) {
	t.Parallel()

	window := []*types.HistoryRecord{
		{ChannelID: snowflake.ID(300), MessageID: snowflake.ID(400), Text: "hi"},
		{ChannelID: snowflake.ID(300), MessageID: snowflake.ID(399), Text: "hi"},
		{ChannelID: snowflake.ID(301), MessageID: snowflake.ID(398), Text: "hi"},
	}

	executor := &fakeExecutor{}
	audit := &fakeAuditSink{}
	dispatcher := automod.NewDispatcher(executor, audit, zap.NewNop())

	dispatcher.Dispatch(t.Context(), dispatchEvent(), automod.Decision{
		SpamTriggered: true,
		SpamWindow:    window,
	})

	// Every windowed message is deleted, then the author is timed out.
	require.Equal(t, []automod.DirectiveKind{
		automod.DirectiveDeleteMessage,
		automod.DirectiveDeleteMessage,
		automod.DirectiveDeleteMessage,
		automod.DirectiveTimeoutUser,
	}, executor.kinds())

	timeout := executor.directives[3]
	assert.Equal(t, automod.SpamTimeoutDuration, timeout.Duration)
	assert.Equal(t, "Spamming", timeout.Reason)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, enum.ActionTypeAntiSpam, audit.entries[0].ActionType)
}

func TestDispatchRuleAndSpamOverlap(t *testing.T) {
	t.Parallel()

	window := []*types.HistoryRecord{
		{ChannelID: snowflake.ID(300), MessageID: snowflake.ID(400), Text: "hi"},
		{ChannelID: snowflake.ID(300), MessageID: snowflake.ID(399), Text: "hi"},
	}

	executor := &fakeExecutor{}
	audit := &fakeAuditSink{}
	dispatcher := automod.NewDispatcher(executor, audit, zap.NewNop())

	dispatcher.Dispatch(t.Context(), dispatchEvent(), automod.Decision{
		Match:         &automod.RuleMatch{RuleID: 1, Consequence: enum.ConsequenceDelete},
		SpamTriggered: true,
		SpamWindow:    window,
	})

	// The triggering message is deleted once by the rule path; the spam
	// path only deletes the remaining windowed message.
	var deletedIDs []snowflake.ID
	for _, directive := range executor.directives {
		if directive.Kind == automod.DirectiveDeleteMessage {
			deletedIDs = append(deletedIDs, directive.MessageID)
		}
	}

	assert.Equal(t, []snowflake.ID{400, 399}, deletedIDs)
	assert.Len(t, audit.entries, 2, "both paths write their own audit entry")
}

func TestDispatchErrorIsolation(t *testing.T) {
	t.Parallel()

	t.Run("missing target is success", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{failWith: map[automod.DirectiveKind]error{
			automod.DirectiveDeleteMessage: automod.ErrNotFound,
		}}
		audit := &fakeAuditSink{}
		dispatcher := automod.NewDispatcher(executor, audit, zap.NewNop())

		dispatcher.Dispatch(t.Context(), dispatchEvent(), automod.Decision{
			Match: &automod.RuleMatch{RuleID: 1, Consequence: enum.ConsequenceBan},
		})

		// The ban and the audit entry still go through.
		assert.Equal(t, []automod.DirectiveKind{automod.DirectiveDeleteMessage, automod.DirectiveBanUser}, executor.kinds())
		assert.Len(t, audit.entries, 1)
	})

	t.Run("permission error does not abort siblings", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{failWith: map[automod.DirectiveKind]error{
			automod.DirectiveBanUser: automod.ErrForbidden,
		}}
		audit := &fakeAuditSink{}
		dispatcher := automod.NewDispatcher(executor, audit, zap.NewNop())

		dispatcher.Dispatch(t.Context(), dispatchEvent(), automod.Decision{
			Match: &automod.RuleMatch{RuleID: 1, Consequence: enum.ConsequenceBan},
		})

		assert.Len(t, executor.directives, 2)
		assert.Len(t, audit.entries, 1)
	})

	t.Run("unexpected error is swallowed", func(t *testing.T) {
		t.Parallel()

		executor := &fakeExecutor{failWith: map[automod.DirectiveKind]error{
			automod.DirectiveDeleteMessage: errors.New("rate limited"),
		}}
		audit := &fakeAuditSink{}
		dispatcher := automod.NewDispatcher(executor, audit, zap.NewNop())

		window := []*types.HistoryRecord{
			{ChannelID: snowflake.ID(300), MessageID: snowflake.ID(400), Text: "hi"},
			{ChannelID: snowflake.ID(300), MessageID: snowflake.ID(399), Text: "hi"},
		}

		dispatcher.Dispatch(t.Context(), dispatchEvent(), automod.Decision{
			SpamTriggered: true,
			SpamWindow:    window,
		})

		// Both deletes are attempted despite failing, and the timeout
		// still lands.
		require.Equal(t, []automod.DirectiveKind{
			automod.DirectiveDeleteMessage,
			automod.DirectiveDeleteMessage,
			automod.DirectiveTimeoutUser,
		}, executor.kinds())
		assert.Len(t, audit.entries, 1)
	})
}
