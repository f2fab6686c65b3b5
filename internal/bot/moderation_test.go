package bot

import (
	"context"
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

type fakeActionExecutor struct {
	directives []automod.Directive
	failWith   error
}

func (f *fakeActionExecutor) Execute(_ context.Context, directive automod.Directive) error {
	f.directives = append(f.directives, directive)
	return f.failWith
}

type fakeActionAudit struct {
	entries []*types.AuditLog
}

func (f *fakeActionAudit) Log(_ context.Context, entry *types.AuditLog) {
	f.entries = append(f.entries, entry)
}

func TestModeratorApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		kind      automod.DirectiveKind
		wantExtra string
	}{
		{name: "mute", kind: automod.DirectiveTimeoutUser, wantExtra: "Muted by moderator 42: being rude"},
		{name: "unmute", kind: automod.DirectiveUntimeoutUser, wantExtra: "Unmuted by moderator 42: being rude"},
		{name: "kick", kind: automod.DirectiveKickUser, wantExtra: "Kicked by moderator 42: being rude"},
		{name: "ban", kind: automod.DirectiveBanUser, wantExtra: "Banned by moderator 42: being rude"},
		{name: "unban", kind: automod.DirectiveUnbanUser, wantExtra: "Unbanned by moderator 42: being rude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &fakeActionExecutor{}
			audit := &fakeActionAudit{}
			moderator := NewModerator(executor, audit, zap.NewNop())

			directive := automod.Directive{
				Kind:    tt.kind,
				GuildID: snowflake.ID(200),
				UserID:  snowflake.ID(100),
				Reason:  "being rude",
			}

			err := moderator.Apply(t.Context(), directive, snowflake.ID(42))
			require.NoError(t, err)

			require.Len(t, executor.directives, 1)
			assert.Equal(t, directive, executor.directives[0])

			require.Len(t, audit.entries, 1)
			entry := audit.entries[0]
			assert.Equal(t, enum.ActionTypeCommand, entry.ActionType)
			assert.Equal(t, snowflake.ID(100), entry.UserID)
			assert.Equal(t, snowflake.ID(200), entry.GuildID)
			assert.Equal(t, tt.wantExtra, entry.Extra)
			assert.False(t, entry.Timestamp.IsZero())
		})
	}
}

func TestModeratorApplyWithoutReason(t *testing.T) {
	t.Parallel()

	executor := &fakeActionExecutor{}
	audit := &fakeActionAudit{}
	moderator := NewModerator(executor, audit, zap.NewNop())

	err := moderator.Apply(t.Context(), automod.Directive{
		Kind:    automod.DirectiveKickUser,
		GuildID: snowflake.ID(200),
		UserID:  snowflake.ID(100),
	}, snowflake.ID(42))
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "Kicked by moderator 42", audit.entries[0].Extra)
}

func TestFormatAuditLogs(t *testing.T) {
	t.Parallel()

	logs := []*types.AuditLog{
		{
			ActionType: enum.ActionTypeAutomod,
			UserID:     snowflake.ID(100),
			Extra:      "Action: Ban (rule 2)",
			Timestamp:  time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC),
		},
		{
			ActionType: enum.ActionTypeCommand,
			UserID:     snowflake.ID(101),
			Timestamp:  time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC),
		},
	}

	out := formatAuditLogs(logs)
	assert.Contains(t, out, "`2025-06-12 10:30` automod <@100> - Action: Ban (rule 2)")
	assert.Contains(t, out, "`2025-06-12 10:00` command <@101>\n")
}

// A rejected directive must not leave an audit entry claiming the
// action happened.
func TestModeratorApplyFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		failure error
	}{
		{name: "missing target", failure: automod.ErrNotFound},
		{name: "missing permission", failure: automod.ErrForbidden},
		{name: "unexpected", failure: assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := &fakeActionExecutor{failWith: tt.failure}
			audit := &fakeActionAudit{}
			moderator := NewModerator(executor, audit, zap.NewNop())

			err := moderator.Apply(t.Context(), automod.Directive{
				Kind:    automod.DirectiveBanUser,
				GuildID: snowflake.ID(200),
				UserID:  snowflake.ID(100),
			}, snowflake.ID(42))

			require.ErrorIs(t, err, tt.failure)
			assert.Empty(t, audit.entries)
		})
	}
}
