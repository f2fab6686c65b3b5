package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/automod"
	"github.com/sentinelmod/sentinel/internal/database/models"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

// CommandName is the root admin command for configuring automated
// moderation.
const CommandName = "automod"

// maxSpamThreshold bounds the antispam setting to something a human
// plausibly meant. The window only spans 15 seconds anyway.
const maxSpamThreshold = 50

// commands describes the full command tree: /automod for configuring
// automated moderation and /mod for manual moderator actions.
func commands() []discord.ApplicationCommandCreate {
	return []discord.ApplicationCommandCreate{
		automodCommand(),
		modCommand(),
	}
}

func automodCommand() discord.ApplicationCommandCreate {
	return discord.SlashCommandCreate{
		Name:                     CommandName,
		Description:              "Manage automated moderation for this server",
		DefaultMemberPermissions: json.NewNullablePtr(discord.PermissionManageGuild),
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "enable",
				Description: "Enable automated moderation",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "disable",
				Description: "Disable automated moderation",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "antispam",
				Description: "Set the anti-spam trigger threshold",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionInt{
						Name:        "threshold",
						Description: "Identical recent messages that trigger a timeout (0 disables)",
						Required:    true,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommandGroup{
				Name:        "rule",
				Description: "Manage moderation rules",
				Options: []discord.ApplicationCommandOptionSubCommand{
					{
						Name:        "add",
						Description: "Add a moderation rule",
						Options: []discord.ApplicationCommandOption{
							discord.ApplicationCommandOptionString{
								Name:        "kind",
								Description: "How the pattern matches message content",
								Required:    true,
								Choices: []discord.ApplicationCommandOptionChoiceString{
									{Name: "word", Value: enum.RuleKindWord.String()},
									{Name: "regex", Value: enum.RuleKindRegex.String()},
								},
							},
							discord.ApplicationCommandOptionString{
								Name:        "pattern",
								Description: "Word to match or regular expression to search for",
								Required:    true,
							},
							discord.ApplicationCommandOptionString{
								Name:        "consequence",
								Description: "Action taken when the rule matches",
								Required:    true,
								Choices: []discord.ApplicationCommandOptionChoiceString{
									{Name: "delete", Value: enum.ConsequenceDelete.String()},
									{Name: "timeout", Value: enum.ConsequenceTimeout.String()},
									{Name: "kick", Value: enum.ConsequenceKick.String()},
									{Name: "ban", Value: enum.ConsequenceBan.String()},
								},
							},
							discord.ApplicationCommandOptionInt{
								Name:        "timeout_minutes",
								Description: "Timeout length in minutes (timeout consequence only)",
							},
						},
					},
					{
						Name:        "remove",
						Description: "Remove a moderation rule by ID",
						Options: []discord.ApplicationCommandOption{
							discord.ApplicationCommandOptionInt{
								Name:        "id",
								Description: "Rule ID as shown by /automod rule list",
								Required:    true,
							},
						},
					},
					{
						Name:        "list",
						Description: "List this server's moderation rules",
					},
					{
						Name:        "info",
						Description: "Show the full details of one moderation rule",
						Options: []discord.ApplicationCommandOption{
							discord.ApplicationCommandOptionInt{
								Name:        "id",
								Description: "Rule ID as shown by /automod rule list",
								Required:    true,
							},
						},
					},
				},
			},
		},
	}
}

// handleApplicationCommandInteraction routes slash commands. Handling
// happens in a goroutine so database and REST work never blocks the
// gateway read loop.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in command handler", zap.Any("panic", r))
			}
		}()

		data := event.SlashCommandInteractionData()

		switch data.CommandName() {
		case CommandName:
			b.handleAutomodCommand(event)
		case ModCommandName:
			b.handleModCommand(event)
		}
	}()
}

func (b *Bot) handleAutomodCommand(event *events.ApplicationCommandInteractionCreate) {
	if event.GuildID() == nil {
		b.respond(event, "This command can only be used in a server.")
		return
	}

	// DefaultMemberPermissions already gates the command in the
	// client, but server admins can override command permissions,
	// so the requirement is enforced here as well.
	member := event.Member()
	if member == nil || !member.Permissions.Has(discord.PermissionManageGuild) {
		b.respond(event, "You need the Manage Server permission to use this command.")
		return
	}

	ctx := context.Background()
	guildID := *event.GuildID()
	data := event.SlashCommandInteractionData()

	var sub string
	if data.SubCommandGroupName != nil {
		sub = *data.SubCommandGroupName + " "
	}
	if data.SubCommandName != nil {
		sub += *data.SubCommandName
	}

	switch sub {
	case "enable":
		b.handleToggle(ctx, event, guildID, true)
	case "disable":
		b.handleToggle(ctx, event, guildID, false)
	case "antispam":
		b.handleAntispam(ctx, event, guildID)
	case "rule add":
		b.handleRuleAdd(ctx, event, guildID)
	case "rule remove":
		b.handleRuleRemove(ctx, event, guildID)
	case "rule list":
		b.handleRuleList(ctx, event, guildID)
	case "rule info":
		b.handleRuleInfo(ctx, event, guildID)
	default:
		b.respond(event, "Unknown subcommand.")
	}
}

func (b *Bot) handleToggle(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID, enabled bool,
) {
	if err := b.db.Model().Guild().SetAutomodEnabled(ctx, guildID, enabled); err != nil {
		b.logger.Error("Failed to toggle automod",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Error(err))
		b.respond(event, "Failed to update settings.")

		return
	}

	b.snapshots.Invalidate(ctx, guildID)

	if enabled {
		b.audit(ctx, event, guildID, "Automod enabled")
		b.respond(event, "Automated moderation is now enabled.")
	} else {
		b.audit(ctx, event, guildID, "Automod disabled")
		b.respond(event, "Automated moderation is now disabled.")
	}
}

func (b *Bot) handleAntispam(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID,
) {
	threshold := event.SlashCommandInteractionData().Int("threshold")
	if threshold < 0 || threshold > maxSpamThreshold {
		b.respond(event, fmt.Sprintf("Threshold must be between 0 and %d.", maxSpamThreshold))
		return
	}

	if err := b.db.Model().Guild().SetSpamThreshold(ctx, guildID, threshold); err != nil {
		b.logger.Error("Failed to set spam threshold",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Error(err))
		b.respond(event, "Failed to update settings.")

		return
	}

	b.snapshots.Invalidate(ctx, guildID)
	b.audit(ctx, event, guildID, fmt.Sprintf("Anti-spam threshold set to %d", threshold))

	if threshold == 0 {
		b.respond(event, "Anti-spam is now disabled.")
	} else {
		b.respond(event, fmt.Sprintf(
			"Anti-spam will trigger at %d identical messages within %s.", threshold, automod.SpamWindow))
	}
}

func (b *Bot) handleRuleAdd(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID,
) {
	data := event.SlashCommandInteractionData()

	kind, err := enum.RuleKindString(data.String("kind"))
	if err != nil {
		b.respond(event, "Unknown rule kind.")
		return
	}

	consequence, err := enum.ConsequenceString(data.String("consequence"))
	if err != nil {
		b.respond(event, "Unknown consequence.")
		return
	}

	pattern := data.String("pattern")
	if kind == enum.RuleKindRegex {
		// Reject malformed expressions here so they never reach the
		// matcher, which would silently skip them on every message.
		if _, err := regexp.Compile(pattern); err != nil {
			b.respond(event, fmt.Sprintf("Invalid regular expression: %s", err))
			return
		}
	}

	timeoutMinutes := 0
	if consequence == enum.ConsequenceTimeout {
		timeoutMinutes = 10
		if v, ok := data.OptInt("timeout_minutes"); ok {
			timeoutMinutes = v
		}
		if timeoutMinutes <= 0 || timeoutMinutes > 40320 {
			b.respond(event, "Timeout length must be between 1 minute and 28 days.")
			return
		}
	}

	rule := &types.Rule{
		GuildID:        guildID,
		Kind:           kind,
		Pattern:        pattern,
		Consequence:    consequence,
		TimeoutMinutes: timeoutMinutes,
		CreatedBy:      event.User().ID,
	}

	if err := b.db.Model().Rule().Add(ctx, rule); err != nil {
		b.logger.Error("Failed to add rule",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Error(err))
		b.respond(event, "Failed to add rule.")

		return
	}

	b.snapshots.Invalidate(ctx, guildID)
	b.audit(ctx, event, guildID, fmt.Sprintf(
		"Rule %d added (%s %q -> %s)", rule.ID, strings.ToLower(kind.String()), pattern, consequence))
	b.respond(event, fmt.Sprintf("Rule %d added.", rule.ID))
}

func (b *Bot) handleRuleRemove(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID,
) {
	id := int64(event.SlashCommandInteractionData().Int("id"))

	err := b.db.Model().Rule().Remove(ctx, guildID, id)
	if errors.Is(err, models.ErrRuleNotFound) {
		b.respond(event, fmt.Sprintf("No rule with ID %d exists in this server.", id))
		return
	}
	if err != nil {
		b.logger.Error("Failed to remove rule",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Int64("ruleID", id),
			zap.Error(err))
		b.respond(event, "Failed to remove rule.")

		return
	}

	b.snapshots.Invalidate(ctx, guildID)
	b.audit(ctx, event, guildID, fmt.Sprintf("Rule %d removed", id))
	b.respond(event, fmt.Sprintf("Rule %d removed.", id))
}

func (b *Bot) handleRuleList(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID,
) {
	rules, err := b.db.Model().Rule().GetRules(ctx, guildID)
	if err != nil {
		b.logger.Error("Failed to list rules",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Error(err))
		b.respond(event, "Failed to list rules.")

		return
	}

	if len(rules) == 0 {
		b.respond(event, "This server has no moderation rules.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Moderation rules**\n")

	for i, rule := range rules {
		// Discord caps message content at 2000 characters.
		if sb.Len() > 1800 {
			fmt.Fprintf(&sb, "…and %d more", len(rules)-i)
			break
		}

		fmt.Fprintf(&sb, "`%d` %s `%s` -> %s",
			rule.ID, strings.ToLower(rule.Kind.String()), rule.Pattern, strings.ToLower(rule.Consequence.String()))
		if rule.Consequence == enum.ConsequenceTimeout {
			fmt.Fprintf(&sb, " (%d min)", rule.TimeoutMinutes)
		}
		sb.WriteByte('\n')
	}

	b.respond(event, sb.String())
}

func (b *Bot) handleRuleInfo(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID,
) {
	id := int64(event.SlashCommandInteractionData().Int("id"))

	rule, err := b.db.Model().Rule().Get(ctx, guildID, id)
	if errors.Is(err, models.ErrRuleNotFound) {
		b.respond(event, fmt.Sprintf("No rule with ID %d exists in this server.", id))
		return
	}
	if err != nil {
		b.logger.Error("Failed to get rule",
			zap.Uint64("guildID", uint64(guildID)),
			zap.Int64("ruleID", id),
			zap.Error(err))
		b.respond(event, "Failed to get rule.")

		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Rule %d**\n", rule.ID)
	fmt.Fprintf(&sb, "Kind: %s\n", strings.ToLower(rule.Kind.String()))
	fmt.Fprintf(&sb, "Pattern: `%s`\n", rule.Pattern)
	fmt.Fprintf(&sb, "Consequence: %s\n", strings.ToLower(rule.Consequence.String()))

	if rule.Consequence == enum.ConsequenceTimeout {
		fmt.Fprintf(&sb, "Timeout: %d min\n", rule.TimeoutMinutes)
	}

	fmt.Fprintf(&sb, "Created by: <@%d> at %s", rule.CreatedBy, rule.CreatedAt.Format(time.RFC1123))

	b.respond(event, sb.String())
}

// respond sends an ephemeral reply to the invoking admin.
func (b *Bot) respond(event *events.ApplicationCommandInteractionCreate, content string) {
	err := event.CreateMessage(discord.NewMessageCreateBuilder().
		SetContent(content).
		SetEphemeral(true).
		Build())
	if err != nil {
		b.logger.Error("Failed to respond to command", zap.Error(err))
	}
}

// audit records an admin configuration change.
func (b *Bot) audit(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID snowflake.ID, detail string,
) {
	b.db.Model().Audit().Log(ctx, &types.AuditLog{
		ActionType: enum.ActionTypeCommand,
		UserID:     event.User().ID,
		GuildID:    guildID,
		Extra:      detail,
		Timestamp:  time.Now(),
	})
}
