package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/automod"
	"github.com/sentinelmod/sentinel/internal/database"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/redis"
	"github.com/sentinelmod/sentinel/internal/setup/config"
)

// Bot wires the Discord gateway to the moderation pipeline. Incoming
// guild messages are recorded and evaluated for rule violations and
// spam, and admin slash commands manage per-guild settings and rules.
type Bot struct {
	db        database.Client
	client    bot.Client
	processor *automod.Processor
	snapshots *automod.SnapshotLoader
	moderator *Moderator
	logger    *zap.Logger
}

// New builds the moderation pipeline and configures the Discord client
// with the gateway intents and event listeners it needs.
func New(
	cfg *config.Config,
	db database.Client,
	redisManager *redis.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	cache, err := redisManager.GetClient(redis.SnapshotDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot cache client: %w", err)
	}

	statsClient, err := redisManager.GetClient(redis.StatsDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats client: %w", err)
	}

	snapshots := automod.NewSnapshotLoader(
		db.Model().Guild(),
		db.Model().Rule(),
		cache,
		time.Duration(cfg.Bot.Automod.SnapshotCacheTTL)*time.Second,
		logger,
	)

	b := &Bot{
		db:        db,
		snapshots: snapshots,
		logger:    logger,
	}

	// Message content is a privileged intent but the pattern matchers
	// cannot work without it.
	client, err := disgo.New(cfg.Bot.Discord.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentMessageContent,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnGuildReady:                    b.handleGuildReady,
			OnGuildJoin:                     b.handleGuildJoin,
			OnGuildMessageCreate:            b.handleGuildMessageCreate,
			OnGuildMessageUpdate:            b.handleGuildMessageUpdate,
			OnGuildMessageDelete:            b.handleGuildMessageDelete,
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
		}),
	)
	if err != nil {
		return nil, err
	}

	// Automated enforcement and manual moderator actions go through the
	// same executor and audit sink, so both get REST error classification
	// and per-guild action counters.
	executor := NewRestExecutor(client, logger)
	auditSink := newStatsRecorder(db.Model().Audit(), statsClient, logger)

	b.client = client
	b.moderator = NewModerator(executor, auditSink, logger)
	b.processor = automod.NewProcessor(
		snapshots,
		automod.NewEngine(logger),
		automod.NewSpamDetector(db.Model().History(), logger),
		automod.NewDispatcher(executor, auditSink, logger),
		logger,
	)

	return b, nil
}

// Start registers the admin command globally and opens the gateway
// connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Registering commands")

	_, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), commands())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("Starting bot")
	return b.client.OpenGateway(ctx)
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close() {
	b.logger.Info("Closing bot")
	b.client.Close(context.Background())
}

func (b *Bot) handleGuildReady(event *events.GuildReady) {
	b.upsertGuild(event.Guild)
}

func (b *Bot) handleGuildJoin(event *events.GuildJoin) {
	b.upsertGuild(event.Guild)
}

// upsertGuild makes sure a settings row exists for the guild so admin
// commands and snapshot loads always have a record to work with.
func (b *Bot) upsertGuild(guild discord.Guild) {
	if err := b.db.Model().Guild().Upsert(context.Background(), guild.ID, guild.Name); err != nil {
		b.logger.Error("Failed to upsert guild settings",
			zap.Uint64("guildID", uint64(guild.ID)),
			zap.Error(err))
	}
}

// handleGuildMessageCreate records the message and runs it through the
// moderation pipeline. Handling happens in a goroutine so slow store or
// REST calls never block the gateway read loop.
func (b *Bot) handleGuildMessageCreate(event *events.GuildMessageCreate) {
	msg := event.Message
	if msg.Author.Bot || msg.Author.System || msg.WebhookID != nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in message create handler", zap.Any("panic", r))
			}
		}()

		ctx := context.Background()

		// Recording must happen before the spam check so the triggering
		// message counts toward its own window.
		b.db.Model().History().Add(ctx, &types.HistoryRecord{
			UserID:    msg.Author.ID,
			GuildID:   event.GuildID,
			ChannelID: event.ChannelID,
			MessageID: event.MessageID,
			Text:      msg.Content,
			Timestamp: msg.CreatedAt,
		})

		b.processor.HandleMessage(ctx, automod.MessageEvent{
			AuthorID:  msg.Author.ID,
			GuildID:   event.GuildID,
			ChannelID: event.ChannelID,
			MessageID: event.MessageID,
			Text:      msg.Content,
			Timestamp: msg.CreatedAt,
		})
	}()
}

// handleGuildMessageUpdate re-evaluates edited messages so edits cannot
// sneak prohibited content past the matchers.
func (b *Bot) handleGuildMessageUpdate(event *events.GuildMessageUpdate) {
	msg := event.Message
	if msg.Author.Bot || msg.Author.System || msg.WebhookID != nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in message update handler", zap.Any("panic", r))
			}
		}()

		ctx := context.Background()

		b.db.Model().History().UpdateText(ctx, event.MessageID, msg.Content)

		editedAt := time.Now()
		if msg.EditedTimestamp != nil {
			editedAt = *msg.EditedTimestamp
		}

		b.processor.HandleMessage(ctx, automod.MessageEvent{
			AuthorID:  msg.Author.ID,
			GuildID:   event.GuildID,
			ChannelID: event.ChannelID,
			MessageID: event.MessageID,
			Text:      msg.Content,
			Timestamp: editedAt,
		})
	}()
}

// handleGuildMessageDelete flags the history record for a deleted
// message. The record stays in the spam window so deleting copies of a
// spam message cannot reset the count, but the flag keeps the log
// honest about what still exists on Discord.
func (b *Bot) handleGuildMessageDelete(event *events.GuildMessageDelete) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in message delete handler", zap.Any("panic", r))
			}
		}()

		b.db.Model().History().MarkDeleted(context.Background(), event.MessageID)
	}()
}
