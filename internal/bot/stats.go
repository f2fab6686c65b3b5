package bot

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/automod"
	"github.com/sentinelmod/sentinel/internal/database/types"
)

// statsRecorder wraps an audit sink and bumps a per-guild Redis counter
// for every recorded action. Counter failures are logged and swallowed;
// stats must never interfere with the audit trail or enforcement.
type statsRecorder struct {
	inner  automod.AuditSink
	client rueidis.Client
	logger *zap.Logger
}

func newStatsRecorder(inner automod.AuditSink, client rueidis.Client, logger *zap.Logger) *statsRecorder {
	return &statsRecorder{
		inner:  inner,
		client: client,
		logger: logger.Named("stats"),
	}
}

func (s *statsRecorder) Log(ctx context.Context, entry *types.AuditLog) {
	key := statsKey(entry)

	err := s.client.Do(ctx, s.client.B().Incr().Key(key).Build()).Error()
	if err != nil {
		s.logger.Warn("Failed to bump action counter",
			zap.String("key", key),
			zap.Error(err))
	}

	s.inner.Log(ctx, entry)
}

func statsKey(entry *types.AuditLog) string {
	return fmt.Sprintf("actions:%d:%s", entry.GuildID, entry.ActionType)
}
