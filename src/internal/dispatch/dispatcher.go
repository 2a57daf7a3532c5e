package dispatch

import (
	"context"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/julien777z/guilded-go/src/internal/cache"
	"github.com/julien777z/guilded-go/src/internal/gateway"
)

// Gateway event types, as they appear on the wire.
const (
	chatMessageCreated = "ChatMessageCreated"
	chatMessageUpdated = "ChatMessageUpdated"
	chatMessageDeleted = "ChatMessageDeleted"

	reactionCreated = "ChannelMessageReactionCreated"
	reactionDeleted = "ChannelMessageReactionDeleted"

	teamMemberJoined   = "TeamMemberJoined"
	teamMemberRemoved  = "TeamMemberRemoved"
	teamMemberUpdated  = "TeamMemberUpdated"
	teamMemberBanned   = "TeamMemberBanned"
	teamMemberUnbanned = "TeamMemberUnbanned"

	teamChannelCreated = "TeamChannelCreated"
	teamChannelUpdated = "TeamChannelUpdated"
	teamChannelDeleted = "TeamChannelDeleted"
)

// Dispatcher translates gateway envelopes into cache mutations and public
// events.
//
// Handle must only be called from one goroutine at a time; it performs the
// cache mutation for an envelope before the event is handed to the
// registry, so handlers always observe the post-event cache state.
type Dispatcher struct {
	Cache    *cache.Store
	API      guilded.API
	Registry *Registry
	Logger   twelf.Logger
}

// Handle processes a single gateway envelope. Envelopes of an unknown type
// are ignored.
func (d *Dispatcher) Handle(ctx context.Context, env *gateway.Envelope) {
	if env.Op != gateway.OpEvent {
		return
	}

	switch env.Type {
	case chatMessageCreated:
		d.messageCreated(ctx, env.Data)
	case chatMessageUpdated:
		d.messageUpdated(ctx, env.Data)
	case chatMessageDeleted:
		d.messageDeleted(ctx, env.Data)
	case reactionCreated:
		d.reaction(ctx, env.Data, true)
	case reactionDeleted:
		d.reaction(ctx, env.Data, false)
	case teamMemberJoined:
		d.memberJoined(ctx, env.Data)
	case teamMemberRemoved:
		d.memberRemoved(ctx, env.Data)
	case teamMemberUpdated:
		d.memberUpdated(ctx, env.Data)
	case teamMemberBanned:
		d.ban(ctx, env.Data, true)
	case teamMemberUnbanned:
		d.ban(ctx, env.Data, false)
	case teamChannelCreated:
		d.channelCreated(ctx, env.Data)
	case teamChannelUpdated:
		d.channelUpdated(ctx, env.Data)
	case teamChannelDeleted:
		d.channelDeleted(ctx, env.Data)
	default:
		logUnknownEvent(d.Logger, env.Type)
	}
}

func (d *Dispatcher) messageCreated(ctx context.Context, data map[string]interface{}) {
	msg, err := guilded.UnmarshalMessage(data, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, chatMessageCreated, err)
		return
	}

	msg.Author = d.author(ctx, msg.AuthorID)

	d.Cache.PutMessage(msg)

	d.Registry.Dispatch(ctx, guilded.EventMessage, &guilded.MessageEvent{
		Message: msg,
	})
}

func (d *Dispatcher) messageUpdated(ctx context.Context, data map[string]interface{}) {
	msg, err := guilded.UnmarshalMessage(data, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, chatMessageUpdated, err)
		return
	}

	before, _ := d.Cache.Message(msg.ID)

	msg.Author = d.author(ctx, msg.AuthorID)
	if msg.Author == nil && before != nil {
		msg.Author = before.Author
	}

	d.Cache.PutMessage(msg)

	d.Registry.Dispatch(ctx, guilded.EventMessageUpdate, &guilded.MessageUpdateEvent{
		Before:  before,
		Message: msg,
	})
}

func (d *Dispatcher) messageDeleted(ctx context.Context, data map[string]interface{}) {
	msg, err := guilded.UnmarshalMessage(data, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, chatMessageDeleted, err)
		return
	}

	cached, _ := d.Cache.Message(msg.ID)
	if cached != nil && msg.DeletedAt != nil {
		cached.DeletedAt = msg.DeletedAt
	}

	d.Cache.DeleteMessage(msg.ID)

	d.Registry.Dispatch(ctx, guilded.EventMessageDelete, &guilded.MessageDeleteEvent{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		DeletedAt: msg.DeletedAt,
		Private:   boolField(data, "isPrivate"),
		Message:   cached,
	})
}

func (d *Dispatcher) reaction(ctx context.Context, data map[string]interface{}, added bool) {
	reaction := data
	if nested, ok := data["reaction"].(map[string]interface{}); ok {
		reaction = nested
	}

	messageID := stringField(reaction, "messageId")
	if messageID == "" {
		logMalformedEvent(d.Logger, reactionCreated, nil)
		return
	}

	var emote *guilded.Emote
	if raw, ok := reaction["customReaction"].(map[string]interface{}); ok {
		emote, _ = guilded.UnmarshalEmote(raw)
	}

	cached, _ := d.Cache.Message(messageID)

	if added {
		d.Registry.Dispatch(ctx, guilded.EventMessageReactionAdd, &guilded.MessageReactionAddEvent{
			ChannelID: stringField(reaction, "channelId"),
			MessageID: messageID,
			UserID:    stringField(reaction, "createdBy"),
			Emote:     emote,
			Message:   cached,
		})
		return
	}

	d.Registry.Dispatch(ctx, guilded.EventMessageReactionRemove, &guilded.MessageReactionRemoveEvent{
		ChannelID: stringField(reaction, "channelId"),
		MessageID: messageID,
		UserID:    stringField(reaction, "createdBy"),
		Emote:     emote,
		Message:   cached,
	})
}

func (d *Dispatcher) memberJoined(ctx context.Context, data map[string]interface{}) {
	member, err := guilded.UnmarshalMember(data, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, teamMemberJoined, err)
		return
	}

	d.Cache.PutUser(&member.User)
	d.Cache.PutMember(member)

	d.Registry.Dispatch(ctx, guilded.EventMemberJoin, &guilded.MemberJoinEvent{
		Member: member,
	})
}

func (d *Dispatcher) memberRemoved(ctx context.Context, data map[string]interface{}) {
	teamID := stringField(data, "teamId")
	userID := stringField(data, "userId")
	if userID == "" {
		logMalformedEvent(d.Logger, teamMemberRemoved, nil)
		return
	}

	cached, _ := d.Cache.Member(teamID, userID)

	d.Cache.DeleteMember(teamID, userID)

	d.Registry.Dispatch(ctx, guilded.EventMemberRemove, &guilded.MemberRemoveEvent{
		TeamID: teamID,
		UserID: userID,
		Kicked: boolField(data, "isKick"),
		Banned: boolField(data, "isBan"),
		Member: cached,
	})
}

// memberUpdated payloads are partial: they carry the member's identity and
// only the fields that changed.
func (d *Dispatcher) memberUpdated(ctx context.Context, data map[string]interface{}) {
	teamID := stringField(data, "teamId")

	info, _ := data["userInfo"].(map[string]interface{})
	if info == nil {
		info = data
	}

	userID := stringField(info, "id")
	if userID == "" {
		logMalformedEvent(d.Logger, teamMemberUpdated, nil)
		return
	}

	before, _ := d.Cache.Member(teamID, userID)

	var member *guilded.Member
	if before != nil {
		clone := *before
		member = &clone
	} else {
		user := d.author(ctx, userID)
		if user == nil {
			user = &guilded.User{ID: userID}
		}
		member = &guilded.Member{User: *user, TeamID: teamID}
	}

	if raw, ok := info["nickname"]; ok {
		if nickname, ok := raw.(string); ok && nickname != "" {
			member.Nickname = &nickname
		} else {
			member.Nickname = nil
		}
	}

	d.Cache.PutMember(member)

	d.Registry.Dispatch(ctx, guilded.EventMemberUpdate, &guilded.MemberUpdateEvent{
		Before: before,
		Member: member,
	})
}

func (d *Dispatcher) ban(ctx context.Context, data map[string]interface{}, created bool) {
	teamID := stringField(data, "teamId")

	payload := data
	if nested, ok := data["serverMemberBan"].(map[string]interface{}); ok {
		payload = nested
	}

	ban, err := guilded.UnmarshalBan(payload, teamID, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, teamMemberBanned, err)
		return
	}

	if created {
		d.Registry.Dispatch(ctx, guilded.EventBanCreate, &guilded.BanCreateEvent{Ban: ban})
		return
	}

	d.Registry.Dispatch(ctx, guilded.EventBanDelete, &guilded.BanDeleteEvent{Ban: ban})
}

func (d *Dispatcher) channelCreated(ctx context.Context, data map[string]interface{}) {
	channel, err := guilded.UnmarshalChannel(data, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, teamChannelCreated, err)
		return
	}

	d.Cache.PutChannel(channel)

	d.Registry.Dispatch(ctx, guilded.EventChannelCreate, &guilded.ChannelCreateEvent{
		Channel: channel,
	})
}

func (d *Dispatcher) channelUpdated(ctx context.Context, data map[string]interface{}) {
	channel, err := guilded.UnmarshalChannel(data, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, teamChannelUpdated, err)
		return
	}

	before, _ := d.Cache.Channel(channel.ID)

	d.Cache.PutChannel(channel)

	d.Registry.Dispatch(ctx, guilded.EventChannelUpdate, &guilded.ChannelUpdateEvent{
		Before:  before,
		Channel: channel,
	})
}

func (d *Dispatcher) channelDeleted(ctx context.Context, data map[string]interface{}) {
	channel, err := guilded.UnmarshalChannel(data, d.API)
	if err != nil {
		logMalformedEvent(d.Logger, teamChannelDeleted, err)
		return
	}

	if cached, ok := d.Cache.Channel(channel.ID); ok {
		channel = cached
	}

	d.Cache.DeleteChannel(channel.ID)

	d.Registry.Dispatch(ctx, guilded.EventChannelDelete, &guilded.ChannelDeleteEvent{
		Channel: channel,
	})
}

// author resolves a user reference cache-first, falling back to the API.
// It returns nil when the user can not be resolved; the event is still
// dispatched in that case.
func (d *Dispatcher) author(ctx context.Context, id string) *guilded.User {
	if id == "" {
		return nil
	}

	if user, ok := d.Cache.User(id); ok {
		return user
	}

	data, err := d.API.GetUser(ctx, id)
	if err != nil {
		logUserFetchFailed(d.Logger, id, err)
		return nil
	}

	user, err := guilded.UnmarshalUser(data, d.API)
	if err != nil {
		logUserFetchFailed(d.Logger, id, err)
		return nil
	}

	d.Cache.PutUser(user)
	return user
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func boolField(data map[string]interface{}, key string) bool {
	b, _ := data[key].(bool)
	return b
}
