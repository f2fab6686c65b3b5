package automod

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/disgoorg/snowflake/v2"
	"github.com/redis/rueidis"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"go.uber.org/zap"
)

// snapshotKeyPrefix namespaces Redis keys storing cached snapshots.
// Keys are formatted as "automod_snapshot:{guildID}".
const snapshotKeyPrefix = "automod_snapshot:"

// GuildSnapshot is the batched read of everything the engine needs for
// one guild: loaded once per message instead of one round trip per
// attribute, and read-only for the duration of an evaluation.
type GuildSnapshot struct {
	GuildID       snowflake.ID  `json:"guildId"`
	Enabled       bool          `json:"enabled"`
	SpamThreshold int           `json:"spamThreshold"`
	Rules         []*types.Rule `json:"rules"`
}

// SettingsStore supplies guild moderation settings.
type SettingsStore interface {
	Get(ctx context.Context, guildID snowflake.ID) (*types.GuildSettings, error)
}

// RuleStore supplies the ordered rule list per guild.
type RuleStore interface {
	GetRules(ctx context.Context, guildID snowflake.ID) ([]*types.Rule, error)
}

// SnapshotLoader assembles guild snapshots from the settings and rule
// stores, with a short-TTL Redis cache in front. Cache failures fall
// through to the database; they never fail a load.
type SnapshotLoader struct {
	settings SettingsStore
	rules    RuleStore
	cache    rueidis.Client
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSnapshotLoader creates a snapshot loader. A nil cache client or a
// non-positive TTL disables caching.
func NewSnapshotLoader(
	settings SettingsStore, rules RuleStore, cache rueidis.Client, ttl time.Duration, logger *zap.Logger,
) *SnapshotLoader {
	return &SnapshotLoader{
		settings: settings,
		rules:    rules,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.Named("snapshot"),
	}
}

// Get returns the guild's moderation snapshot, from cache when fresh.
func (l *SnapshotLoader) Get(ctx context.Context, guildID snowflake.ID) (*GuildSnapshot, error) {
	if snapshot := l.fromCache(ctx, guildID); snapshot != nil {
		return snapshot, nil
	}

	settings, err := l.settings.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild settings: %w", err)
	}

	rules, err := l.rules.GetRules(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild rules: %w", err)
	}

	snapshot := &GuildSnapshot{
		GuildID:       guildID,
		Enabled:       settings.AutomodEnabled,
		SpamThreshold: settings.SpamThreshold,
		Rules:         rules,
	}

	l.store(ctx, snapshot)

	return snapshot, nil
}

// Invalidate drops the cached snapshot after an administrative change.
func (l *SnapshotLoader) Invalidate(ctx context.Context, guildID snowflake.ID) {
	if !l.cacheEnabled() {
		return
	}

	key := fmt.Sprintf("%s%d", snapshotKeyPrefix, guildID)

	err := l.cache.Do(ctx, l.cache.B().Del().Key(key).Build()).Error()
	if err != nil {
		l.logger.Warn("Failed to invalidate snapshot cache",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Error(err))
	}
}

func (l *SnapshotLoader) cacheEnabled() bool {
	return l.cache != nil && l.ttl > 0
}

func (l *SnapshotLoader) fromCache(ctx context.Context, guildID snowflake.ID) *GuildSnapshot {
	if !l.cacheEnabled() {
		return nil
	}

	key := fmt.Sprintf("%s%d", snapshotKeyPrefix, guildID)

	data, err := l.cache.Do(ctx, l.cache.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			l.logger.Warn("Failed to read snapshot cache", zap.Error(err))
		}

		return nil
	}

	var snapshot GuildSnapshot
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		l.logger.Warn("Failed to decode cached snapshot", zap.Error(err))
		return nil
	}

	return &snapshot
}

func (l *SnapshotLoader) store(ctx context.Context, snapshot *GuildSnapshot) {
	if !l.cacheEnabled() {
		return
	}

	data, err := sonic.Marshal(snapshot)
	if err != nil {
		l.logger.Warn("Failed to encode snapshot", zap.Error(err))
		return
	}

	key := fmt.Sprintf("%s%d", snapshotKeyPrefix, snapshot.GuildID)

	err = l.cache.Do(ctx,
		l.cache.B().Set().Key(key).Value(string(data)).Ex(l.ttl).Build(),
	).Error()
	if err != nil {
		l.logger.Warn("Failed to write snapshot cache", zap.Error(err))
	}
}
