package bot

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/automod"
)

// RestExecutor carries enforcement directives out through the Discord
// REST API. Platform failures for missing targets and missing
// permissions are mapped onto the dispatcher's sentinel errors so they
// are classified instead of retried.
type RestExecutor struct {
	client bot.Client
	logger *zap.Logger
}

// NewRestExecutor creates an executor backed by the given Discord client.
func NewRestExecutor(client bot.Client, logger *zap.Logger) *RestExecutor {
	return &RestExecutor{
		client: client,
		logger: logger.Named("executor"),
	}
}

// Execute performs one enforcement directive against Discord.
func (e *RestExecutor) Execute(ctx context.Context, directive automod.Directive) error {
	var err error

	switch directive.Kind {
	case automod.DirectiveDeleteMessage:
		err = e.client.Rest().DeleteMessage(directive.ChannelID, directive.MessageID,
			rest.WithCtx(ctx), rest.WithReason(directive.Reason))
	case automod.DirectiveTimeoutUser:
		until := time.Now().Add(directive.Duration)
		_, err = e.client.Rest().UpdateMember(directive.GuildID, directive.UserID,
			discord.MemberUpdate{
				CommunicationDisabledUntil: json.NewNullablePtr(until),
			},
			rest.WithCtx(ctx), rest.WithReason(directive.Reason))
	case automod.DirectiveKickUser:
		err = e.client.Rest().RemoveMember(directive.GuildID, directive.UserID,
			rest.WithCtx(ctx), rest.WithReason(directive.Reason))
	case automod.DirectiveBanUser:
		err = e.client.Rest().AddBan(directive.GuildID, directive.UserID, 0,
			rest.WithCtx(ctx), rest.WithReason(directive.Reason))
	case automod.DirectiveUntimeoutUser:
		_, err = e.client.Rest().UpdateMember(directive.GuildID, directive.UserID,
			discord.MemberUpdate{
				CommunicationDisabledUntil: json.NullPtr[time.Time](),
			},
			rest.WithCtx(ctx), rest.WithReason(directive.Reason))
	case automod.DirectiveUnbanUser:
		err = e.client.Rest().DeleteBan(directive.GuildID, directive.UserID,
			rest.WithCtx(ctx), rest.WithReason(directive.Reason))
	default:
		e.logger.Warn("Unknown directive kind", zap.Stringer("kind", directive.Kind))
		return nil
	}

	return classifyRestError(err)
}

// classifyRestError translates Discord REST failures into the sentinel
// errors the dispatcher understands. A 404 means the target is already
// gone; a 403 means the bot lacks permission to act on it.
func classifyRestError(err error) error {
	if err == nil {
		return nil
	}

	var restErr *rest.Error
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return automod.ErrNotFound
		case http.StatusForbidden:
			return automod.ErrForbidden
		}
	}

	return err
}
