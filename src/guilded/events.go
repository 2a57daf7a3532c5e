package guilded

import (
	"context"
	"time"
)

// Event names accepted by Client.On.
//
// The connection events (ready, connect, disconnect) are produced by the
// client itself; the rest are translated from gateway traffic.
const (
	EventReady      = "ready"
	EventConnect    = "connect"
	EventDisconnect = "disconnect"

	EventMessage               = "message"
	EventMessageUpdate         = "message_update"
	EventMessageDelete         = "message_delete"
	EventMessageReactionAdd    = "message_reaction_add"
	EventMessageReactionRemove = "message_reaction_remove"

	EventMemberJoin   = "member_join"
	EventMemberRemove = "member_remove"
	EventMemberUpdate = "member_update"

	EventBanCreate = "ban_create"
	EventBanDelete = "ban_delete"

	EventChannelCreate = "channel_create"
	EventChannelUpdate = "channel_update"
	EventChannelDelete = "channel_delete"
)

// ReadyEvent is dispatched once per Run, after the first successful
// connection has been established and the client's own user has been
// fetched.
type ReadyEvent struct {
	User *ClientUser
}

// ConnectEvent is dispatched every time a gateway connection is
// established, including reconnections.
type ConnectEvent struct{}

// DisconnectEvent is dispatched every time an established gateway
// connection is lost. Code is the websocket close code, or zero when the
// connection failed without one. LastSeen is the ID of the last gateway
// message observed before the loss, if any.
type DisconnectEvent struct {
	Code     int
	LastSeen string
}

// MessageEvent is dispatched when a message is sent in a channel the client
// can see.
type MessageEvent struct {
	Message *Message
}

// MessageUpdateEvent is dispatched when a message is edited. Before is the
// previously cached revision of the message, or nil if the message was not
// cached.
type MessageUpdateEvent struct {
	Before  *Message
	Message *Message
}

// MessageDeleteEvent is dispatched when a message is deleted. Message is
// the cached copy of the deleted message, or nil if it was not cached.
type MessageDeleteEvent struct {
	MessageID string
	ChannelID string
	DeletedAt *time.Time
	Private   bool
	Message   *Message
}

// MessageReactionAddEvent is dispatched when a reaction is added to a
// message. Message is the cached message, or nil if it was not cached.
type MessageReactionAddEvent struct {
	ChannelID string
	MessageID string
	UserID    string
	Emote     *Emote
	Message   *Message
}

// MessageReactionRemoveEvent is dispatched when a reaction is removed from
// a message. Message is the cached message, or nil if it was not cached.
type MessageReactionRemoveEvent struct {
	ChannelID string
	MessageID string
	UserID    string
	Emote     *Emote
	Message   *Message
}

// MemberJoinEvent is dispatched when a user joins a team.
type MemberJoinEvent struct {
	Member *Member
}

// MemberRemoveEvent is dispatched when a user leaves a team, is kicked, or
// is banned. Member is the cached membership, or nil if it was not cached.
type MemberRemoveEvent struct {
	TeamID string
	UserID string
	Kicked bool
	Banned bool
	Member *Member
}

// MemberUpdateEvent is dispatched when a member's team-scoped state
// changes. Before is the previously cached membership, or nil if it was
// not cached.
type MemberUpdateEvent struct {
	Before *Member
	Member *Member
}

// BanCreateEvent is dispatched when a member is banned from a team.
type BanCreateEvent struct {
	Ban *MemberBan
}

// BanDeleteEvent is dispatched when a team ban is lifted.
type BanDeleteEvent struct {
	Ban *MemberBan
}

// ChannelCreateEvent is dispatched when a team channel is created.
type ChannelCreateEvent struct {
	Channel *Channel
}

// ChannelUpdateEvent is dispatched when a team channel is updated. Before
// is the previously cached channel, or nil if it was not cached.
type ChannelUpdateEvent struct {
	Before  *Channel
	Channel *Channel
}

// ChannelDeleteEvent is dispatched when a team channel is deleted. Channel
// is the cached channel if there was one, and a partial entity decoded from
// the event payload otherwise.
type ChannelDeleteEvent struct {
	Channel *Channel
}

// Handler types accepted by Client.On, one per event name.
type (
	ReadyHandler      func(ctx context.Context, e *ReadyEvent)
	ConnectHandler    func(ctx context.Context, e *ConnectEvent)
	DisconnectHandler func(ctx context.Context, e *DisconnectEvent)

	MessageHandler               func(ctx context.Context, e *MessageEvent)
	MessageUpdateHandler         func(ctx context.Context, e *MessageUpdateEvent)
	MessageDeleteHandler         func(ctx context.Context, e *MessageDeleteEvent)
	MessageReactionAddHandler    func(ctx context.Context, e *MessageReactionAddEvent)
	MessageReactionRemoveHandler func(ctx context.Context, e *MessageReactionRemoveEvent)

	MemberJoinHandler   func(ctx context.Context, e *MemberJoinEvent)
	MemberRemoveHandler func(ctx context.Context, e *MemberRemoveEvent)
	MemberUpdateHandler func(ctx context.Context, e *MemberUpdateEvent)

	BanCreateHandler func(ctx context.Context, e *BanCreateEvent)
	BanDeleteHandler func(ctx context.Context, e *BanDeleteEvent)

	ChannelCreateHandler func(ctx context.Context, e *ChannelCreateEvent)
	ChannelUpdateHandler func(ctx context.Context, e *ChannelUpdateEvent)
	ChannelDeleteHandler func(ctx context.Context, e *ChannelDeleteEvent)
)

// ErrorHandler is invoked when an event handler panics. event is the name
// of the event being handled.
type ErrorHandler func(event string, err error)
