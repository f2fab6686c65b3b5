package bot

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/disgoorg/snowflake/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

func setupStatsTest(t *testing.T) (*statsRecorder, *fakeActionAudit, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	inner := &fakeActionAudit{}

	return newStatsRecorder(inner, client, zap.NewNop()), inner, mr
}

func TestStatsRecorderCountsActions(t *testing.T) {
	t.Parallel()

	recorder, inner, mr := setupStatsTest(t)

	entry := &types.AuditLog{
		ActionType: enum.ActionTypeAutomod,
		UserID:     snowflake.ID(100),
		GuildID:    snowflake.ID(200),
	}

	recorder.Log(t.Context(), entry)
	recorder.Log(t.Context(), entry)
	recorder.Log(t.Context(), &types.AuditLog{
		ActionType: enum.ActionTypeCommand,
		UserID:     snowflake.ID(100),
		GuildID:    snowflake.ID(200),
	})

	automodCount, err := mr.Get("actions:200:Automod")
	require.NoError(t, err)
	assert.Equal(t, "2", automodCount)

	commandCount, err := mr.Get("actions:200:Command")
	require.NoError(t, err)
	assert.Equal(t, "1", commandCount)

	// Every entry still reaches the underlying sink.
	assert.Len(t, inner.entries, 3)
}

// A broken counter store must not cost the audit entry.
func TestStatsRecorderCounterFailure(t *testing.T) {
	t.Parallel()

	recorder, inner, mr := setupStatsTest(t)
	mr.SetError("counter store down")

	recorder.Log(t.Context(), &types.AuditLog{
		ActionType: enum.ActionTypeAntiSpam,
		UserID:     snowflake.ID(100),
		GuildID:    snowflake.ID(200),
	})

	require.Len(t, inner.entries, 1)
	assert.Equal(t, enum.ActionTypeAntiSpam, inner.entries[0].ActionType)
}
