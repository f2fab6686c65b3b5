package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/automod"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

// ModCommandName is the root command for manual moderator actions.
const ModCommandName = "mod"

// defaultMuteMinutes is used when a moderator does not pass an explicit
// mute length.
const defaultMuteMinutes = 10

// Moderator applies manual moderation actions on behalf of a moderator.
// It reuses the same directive executor as automated enforcement, so
// REST failures are classified the same way, and records every applied
// action in the audit trail attributed to the invoking moderator.
type Moderator struct {
	executor automod.Executor
	audit    automod.AuditSink
	logger   *zap.Logger
}

// NewModerator creates a moderator issuing directives to the executor
// and recording outcomes in the audit sink.
func NewModerator(executor automod.Executor, audit automod.AuditSink, logger *zap.Logger) *Moderator {
	return &Moderator{
		executor: executor,
		audit:    audit,
		logger:   logger.Named("moderator"),
	}
}

// Apply carries out one manual directive. The audit entry is only
// written when the directive succeeded, so the trail never claims an
// action that Discord rejected.
func (m *Moderator) Apply(ctx context.Context, directive automod.Directive, moderatorID snowflake.ID) error {
	if err := m.executor.Execute(ctx, directive); err != nil {
		return err
	}

	extra := fmt.Sprintf("%s by moderator %d", actionVerb(directive.Kind), moderatorID)
	if directive.Reason != "" {
		extra += ": " + directive.Reason
	}

	m.audit.Log(ctx, &types.AuditLog{
		ActionType: enum.ActionTypeCommand,
		UserID:     directive.UserID,
		GuildID:    directive.GuildID,
		Extra:      extra,
		Timestamp:  time.Now(),
	})

	m.logger.Info("Applied manual moderation action",
		zap.Stringer("kind", directive.Kind),
		zap.Uint64("guildID", uint64(directive.GuildID)),
		zap.Uint64("userID", uint64(directive.UserID)),
		zap.Uint64("moderatorID", uint64(moderatorID)))

	return nil
}

func actionVerb(kind automod.DirectiveKind) string {
	switch kind {
	case automod.DirectiveTimeoutUser:
		return "Muted"
	case automod.DirectiveUntimeoutUser:
		return "Unmuted"
	case automod.DirectiveKickUser:
		return "Kicked"
	case automod.DirectiveBanUser:
		return "Banned"
	case automod.DirectiveUnbanUser:
		return "Unbanned"
	default:
		return kind.String()
	}
}

func modCommand() discord.ApplicationCommandCreate {
	reasonOption := discord.ApplicationCommandOptionString{
		Name:        "reason",
		Description: "Why the action is being taken",
	}

	return discord.SlashCommandCreate{
		Name:                     ModCommandName,
		Description:              "Manual moderation actions",
		DefaultMemberPermissions: json.NewNullablePtr(discord.PermissionModerateMembers),
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "mute",
				Description: "Time a member out",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "Member to mute",
						Required:    true,
					},
					discord.ApplicationCommandOptionInt{
						Name:        "minutes",
						Description: fmt.Sprintf("Mute length in minutes (default %d)", defaultMuteMinutes),
					},
					reasonOption,
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "unmute",
				Description: "Lift a member's timeout",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "Member to unmute",
						Required:    true,
					},
					reasonOption,
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "kick",
				Description: "Kick a member from the server",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "Member to kick",
						Required:    true,
					},
					reasonOption,
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "ban",
				Description: "Ban a user from the server",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "User to ban",
						Required:    true,
					},
					reasonOption,
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "unban",
				Description: "Remove a user's ban",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "User to unban",
						Required:    true,
					},
					reasonOption,
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "logs",
				Description: "Show recent moderation actions in this server",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionString{
						Name:        "action",
						Description: "Only show entries of this action type",
						Choices: []discord.ApplicationCommandOptionChoiceString{
							{Name: "automod", Value: enum.ActionTypeAutomod.String()},
							{Name: "antispam", Value: enum.ActionTypeAntiSpam.String()},
							{Name: "command", Value: enum.ActionTypeCommand.String()},
						},
					},
				},
			},
		},
	}
}

// modPermission maps each /mod subcommand to the member permission it
// requires. DefaultMemberPermissions gates the whole command at
// ModerateMembers; kicks and bans additionally need their own bits.
func modPermission(sub string) discord.Permissions {
	switch sub {
	case "kick":
		return discord.PermissionKickMembers
	case "ban", "unban":
		return discord.PermissionBanMembers
	default:
		return discord.PermissionModerateMembers
	}
}

func (b *Bot) handleModCommand(event *events.ApplicationCommandInteractionCreate) {
	if event.GuildID() == nil {
		b.respond(event, "This command can only be used in a server.")
		return
	}

	data := event.SlashCommandInteractionData()

	var sub string
	if data.SubCommandName != nil {
		sub = *data.SubCommandName
	}

	member := event.Member()
	if member == nil || !member.Permissions.Has(modPermission(sub)) {
		b.respond(event, "You don't have permission to use this command.")
		return
	}

	ctx := context.Background()
	guildID := *event.GuildID()

	switch sub {
	case "mute":
		b.handleMute(ctx, event, guildID)
	case "unmute":
		b.handleUserAction(ctx, event, guildID, automod.DirectiveUntimeoutUser)
	case "kick":
		b.handleUserAction(ctx, event, guildID, automod.DirectiveKickUser)
	case "ban":
		b.handleUserAction(ctx, event, guildID, automod.DirectiveBanUser)
	case "unban":
		b.handleUserAction(ctx, event, guildID, automod.DirectiveUnbanUser)
	case "logs":
		b.handleModLogs(ctx, event, guildID)
	default:
		b.respond(event, "Unknown subcommand.")
	}
}

func (b *Bot) handleMute(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID,
) {
	data := event.SlashCommandInteractionData()
	target := data.Snowflake("user")

	minutes := defaultMuteMinutes
	if v, ok := data.OptInt("minutes"); ok {
		minutes = v
	}
	if minutes <= 0 || minutes > 40320 {
		b.respond(event, "Mute length must be between 1 minute and 28 days.")
		return
	}

	directive := automod.Directive{
		Kind:     automod.DirectiveTimeoutUser,
		GuildID:  guildID,
		UserID:   target,
		Duration: time.Duration(minutes) * time.Minute,
		Reason:   data.String("reason"),
	}

	if !b.applyModDirective(ctx, event, directive) {
		return
	}

	b.respond(event, fmt.Sprintf("Muted <@%d> for %d minutes.", target, minutes))
}

// handleUserAction handles the /mod subcommands that need nothing
// beyond a target user and an optional reason.
func (b *Bot) handleUserAction(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
	guildID snowflake.ID, kind automod.DirectiveKind,
) {
	data := event.SlashCommandInteractionData()
	target := data.Snowflake("user")

	directive := automod.Directive{
		Kind:    kind,
		GuildID: guildID,
		UserID:  target,
		Reason:  data.String("reason"),
	}

	if !b.applyModDirective(ctx, event, directive) {
		return
	}

	b.respond(event, fmt.Sprintf("%s <@%d>.", actionVerb(kind), target))
}

// applyModDirective runs a manual directive and reports failures to the
// invoking moderator. Returns true when the action was applied.
func (b *Bot) applyModDirective(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, directive automod.Directive,
) bool {
	err := b.moderator.Apply(ctx, directive, event.User().ID)
	if errors.Is(err, automod.ErrNotFound) {
		b.respond(event, "That user was not found. They may have already left or been unbanned.")
		return false
	}
	if errors.Is(err, automod.ErrForbidden) {
		b.respond(event, "I don't have permission to act on that user.")
		return false
	}
	if err != nil {
		b.logger.Error("Failed to apply moderation action",
			zap.Stringer("kind", directive.Kind),
			zap.Uint64("guildID", uint64(directive.GuildID)),
			zap.Uint64("userID", uint64(directive.UserID)),
			zap.Error(err))
		b.respond(event, "Failed to apply the action.")

		return false
	}

	return true
}

// maxLogEntries bounds /mod logs output so it stays inside Discord's
// message length cap.
const maxLogEntries = 15

func (b *Bot) handleModLogs(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID,
) {
	actionType := enum.ActionTypeAll
	if v, ok := event.SlashCommandInteractionData().OptString("action"); ok {
		parsed, err := enum.ActionTypeString(v)
		if err != nil {
			b.respond(event, "Unknown action type.")
			return
		}
		actionType = parsed
	}

	logs, err := b.db.Model().Audit().GetLogs(ctx, guildID, actionType, maxLogEntries)
	if err != nil {
		b.logger.Error("Failed to get audit logs",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Error(err))
		b.respond(event, "Failed to get moderation logs.")

		return
	}

	if len(logs) == 0 {
		b.respond(event, "No moderation actions recorded.")
		return
	}

	b.respond(event, formatAuditLogs(logs))
}

func formatAuditLogs(logs []*types.AuditLog) string {
	var sb strings.Builder
	sb.WriteString("**Recent moderation actions**\n")

	for _, entry := range logs {
		fmt.Fprintf(&sb, "`%s` %s <@%d>",
			entry.Timestamp.Format("2006-01-02 15:04"), strings.ToLower(entry.ActionType.String()), entry.UserID)
		if entry.Extra != "" {
			fmt.Fprintf(&sb, " - %s", entry.Extra)
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
