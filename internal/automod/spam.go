package automod

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"go.uber.org/zap"
)

const (
	// SpamWindow bounds how far back the detector looks.
	SpamWindow = 15 * time.Second

	// SpamTimeoutDuration is the fixed timeout applied on a spam trigger.
	SpamTimeoutDuration = 10 * time.Minute
)

// HistoryStore supplies the bounded recent message log the detector
// inspects. Records come back newest first.
type HistoryStore interface {
	GetRecentMessages(
		ctx context.Context, userID, guildID snowflake.ID, since time.Time, limit int,
	) ([]*types.HistoryRecord, error)
}

// SpamDetector flags users who fill the recent window with identical
// messages. It is a repetition detector, not a rate limiter: the
// trigger requires exactly threshold records, all with the same text,
// so a short burst that stops early is never penalized.
type SpamDetector struct {
	history HistoryStore
	logger  *zap.Logger
}

// NewSpamDetector creates a spam detector reading from the given store.
func NewSpamDetector(history HistoryStore, logger *zap.Logger) *SpamDetector {
	return &SpamDetector{
		history: history,
		logger:  logger.Named("antispam"),
	}
}

// Check reports whether the message's author is spamming, returning the
// matched window when they are. A threshold of zero disables checking.
func (d *SpamDetector) Check(
	ctx context.Context, event MessageEvent, threshold int,
) (bool, []*types.HistoryRecord, error) {
	if threshold <= 0 {
		return false, nil, nil
	}

	since := event.Timestamp.Add(-SpamWindow)

	records, err := d.history.GetRecentMessages(ctx, event.AuthorID, event.GuildID, since, threshold)
	if err != nil {
		return false, nil, fmt.Errorf("failed to load spam window: %w", err)
	}

	// The window must be exactly full and uniform to trigger.
	if len(records) != threshold {
		return false, nil, nil
	}

	for _, record := range records[1:] {
		if record.Text != records[0].Text {
			return false, nil, nil
		}
	}

	d.logger.Debug("Spam window triggered",
		zap.Uint64("userID", uint64(event.AuthorID)),
		zap.Uint64("guildID", uint64(event.GuildID)),
		zap.Int("threshold", threshold))

	return true, records, nil
}
