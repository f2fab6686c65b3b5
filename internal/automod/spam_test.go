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
)

// fakeHistoryStore returns canned records and captures query arguments.
type fakeHistoryStore struct {
	records   []*types.HistoryRecord
	err       error
	calls     int
	lastSince time.Time
	lastLimit int
}

func (f *fakeHistoryStore) GetRecentMessages(
	_ context.Context, _, _ snowflake.ID, since time.Time, limit int,
) ([]*types.HistoryRecord, error) {
	f.calls++
	f.lastSince = since
	f.lastLimit = limit

	return f.records, f.err
}

func spamEvent(text string) automod.MessageEvent {
	return automod.MessageEvent{
		AuthorID:  snowflake.ID(100),
		GuildID:   snowflake.ID(200),
		ChannelID: snowflake.ID(300),
		MessageID: snowflake.ID(400),
		Text:      text,
		Timestamp: time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC),
	}
}

func windowRecords(texts ...string) []*types.HistoryRecord {
	records := make([]*types.HistoryRecord, len(texts))
	for i, text := range texts {
		records[i] = &types.HistoryRecord{
			MessageID: snowflake.ID(400 - i),
			Text:      text,
		}
	}

	return records
}

func TestSpamCheckDisabled(t *testing.T) {
	t.Parallel()

	store := &fakeHistoryStore{records: windowRecords("hi", "hi", "hi")}
	detector := automod.NewSpamDetector(store, zap.NewNop())

	triggered, window, err := detector.Check(t.Context(), spamEvent("hi"), 0)
	require.NoError(t, err)
	assert.False(t, triggered)
	assert.Nil(t, window)
	assert.Zero(t, store.calls, "disabled detector must not query the store")
}

func TestSpamCheckTriggers(t *testing.T) {
	t.Parallel()

	store := &fakeHistoryStore{records: windowRecords("hi", "hi", "hi")}
	detector := automod.NewSpamDetector(store, zap.NewNop())

	triggered, window, err := detector.Check(t.Context(), spamEvent("hi"), 3)
	require.NoError(t, err)
	assert.True(t, triggered)
	assert.Len(t, window, 3)
}

// Records flagged as deleted still count toward the window, so a
// spammer removing their own copies cannot reset the count.
func TestSpamCheckCountsDeletedRecords(t *testing.T) {
	t.Parallel()

	records := windowRecords("hi", "hi", "hi")
	records[1].Deleted = true
	records[2].Deleted = true

	store := &fakeHistoryStore{records: records}
	detector := automod.NewSpamDetector(store, zap.NewNop())

	triggered, window, err := detector.Check(t.Context(), spamEvent("hi"), 3)
	require.NoError(t, err)
	assert.True(t, triggered)
	assert.Len(t, window, 3)
}

func TestSpamCheckWindowNotFull(t *testing.T) {
	t.Parallel()

	store := &fakeHistoryStore{records: windowRecords("hi", "hi")}
	detector := automod.NewSpamDetector(store, zap.NewNop())

	triggered, window, err := detector.Check(t.Context(), spamEvent("hi"), 3)
	require.NoError(t, err)
	assert.False(t, triggered)
	assert.Nil(t, window)
}

func TestSpamCheckMixedTexts(t *testing.T) {
	t.Parallel()

	store := &fakeHistoryStore{records: windowRecords("hi", "hi", "hello")}
	detector := automod.NewSpamDetector(store, zap.NewNop())

	triggered, _, err := detector.Check(t.Context(), spamEvent("hi"), 3)
	require.NoError(t, err)
	assert.False(t, triggered, "a single different text must break the window")
}

func TestSpamCheckQueryBounds(t *testing.T) {
	t.Parallel()

	store := &fakeHistoryStore{records: windowRecords("hi", "hi", "hi")}
	detector := automod.NewSpamDetector(store, zap.NewNop())

	event := spamEvent("hi")
	_, _, err := detector.Check(t.Context(), event, 3)
	require.NoError(t, err)

	assert.Equal(t, event.Timestamp.Add(-automod.SpamWindow), store.lastSince)
	assert.Equal(t, 3, store.lastLimit)
}

func TestSpamCheckStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	store := &fakeHistoryStore{err: storeErr}
	detector := automod.NewSpamDetector(store, zap.NewNop())

	triggered, window, err := detector.Check(t.Context(), spamEvent("hi"), 3)
	require.ErrorIs(t, err, storeErr)
	assert.False(t, triggered)
	assert.Nil(t, window)
}
