package dispatch

import (
	"context"

	"github.com/julien777z/guilded-go/src/guilded"
)

// normalize maps a handler value to the event name it serves and an
// invoker that delivers events to it. Both the named handler types and
// their underlying function signatures are accepted, so callers may pass
// plain function literals.
//
// An unsupported handler type yields a nil invoker.
func normalize(handler interface{}) (string, invoker) {
	switch h := handler.(type) {
	case guilded.ReadyHandler:
		return guilded.EventReady, readyInvoker(h)
	case func(context.Context, *guilded.ReadyEvent):
		return guilded.EventReady, readyInvoker(h)

	case guilded.ConnectHandler:
		return guilded.EventConnect, connectInvoker(h)
	case func(context.Context, *guilded.ConnectEvent):
		return guilded.EventConnect, connectInvoker(h)

	case guilded.DisconnectHandler:
		return guilded.EventDisconnect, disconnectInvoker(h)
	case func(context.Context, *guilded.DisconnectEvent):
		return guilded.EventDisconnect, disconnectInvoker(h)

	case guilded.MessageHandler:
		return guilded.EventMessage, messageInvoker(h)
	case func(context.Context, *guilded.MessageEvent):
		return guilded.EventMessage, messageInvoker(h)

	case guilded.MessageUpdateHandler:
		return guilded.EventMessageUpdate, messageUpdateInvoker(h)
	case func(context.Context, *guilded.MessageUpdateEvent):
		return guilded.EventMessageUpdate, messageUpdateInvoker(h)

	case guilded.MessageDeleteHandler:
		return guilded.EventMessageDelete, messageDeleteInvoker(h)
	case func(context.Context, *guilded.MessageDeleteEvent):
		return guilded.EventMessageDelete, messageDeleteInvoker(h)

	case guilded.MessageReactionAddHandler:
		return guilded.EventMessageReactionAdd, reactionAddInvoker(h)
	case func(context.Context, *guilded.MessageReactionAddEvent):
		return guilded.EventMessageReactionAdd, reactionAddInvoker(h)

	case guilded.MessageReactionRemoveHandler:
		return guilded.EventMessageReactionRemove, reactionRemoveInvoker(h)
	case func(context.Context, *guilded.MessageReactionRemoveEvent):
		return guilded.EventMessageReactionRemove, reactionRemoveInvoker(h)

	case guilded.MemberJoinHandler:
		return guilded.EventMemberJoin, memberJoinInvoker(h)
	case func(context.Context, *guilded.MemberJoinEvent):
		return guilded.EventMemberJoin, memberJoinInvoker(h)

	case guilded.MemberRemoveHandler:
		return guilded.EventMemberRemove, memberRemoveInvoker(h)
	case func(context.Context, *guilded.MemberRemoveEvent):
		return guilded.EventMemberRemove, memberRemoveInvoker(h)

	case guilded.MemberUpdateHandler:
		return guilded.EventMemberUpdate, memberUpdateInvoker(h)
	case func(context.Context, *guilded.MemberUpdateEvent):
		return guilded.EventMemberUpdate, memberUpdateInvoker(h)

	case guilded.BanCreateHandler:
		return guilded.EventBanCreate, banCreateInvoker(h)
	case func(context.Context, *guilded.BanCreateEvent):
		return guilded.EventBanCreate, banCreateInvoker(h)

	case guilded.BanDeleteHandler:
		return guilded.EventBanDelete, banDeleteInvoker(h)
	case func(context.Context, *guilded.BanDeleteEvent):
		return guilded.EventBanDelete, banDeleteInvoker(h)

	case guilded.ChannelCreateHandler:
		return guilded.EventChannelCreate, channelCreateInvoker(h)
	case func(context.Context, *guilded.ChannelCreateEvent):
		return guilded.EventChannelCreate, channelCreateInvoker(h)

	case guilded.ChannelUpdateHandler:
		return guilded.EventChannelUpdate, channelUpdateInvoker(h)
	case func(context.Context, *guilded.ChannelUpdateEvent):
		return guilded.EventChannelUpdate, channelUpdateInvoker(h)

	case guilded.ChannelDeleteHandler:
		return guilded.EventChannelDelete, channelDeleteInvoker(h)
	case func(context.Context, *guilded.ChannelDeleteEvent):
		return guilded.EventChannelDelete, channelDeleteInvoker(h)
	}

	return "", nil
}

func readyInvoker(h guilded.ReadyHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.ReadyEvent))
	}
}

func connectInvoker(h guilded.ConnectHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.ConnectEvent))
	}
}

func disconnectInvoker(h guilded.DisconnectHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.DisconnectEvent))
	}
}

func messageInvoker(h guilded.MessageHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MessageEvent))
	}
}

func messageUpdateInvoker(h guilded.MessageUpdateHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MessageUpdateEvent))
	}
}

func messageDeleteInvoker(h guilded.MessageDeleteHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MessageDeleteEvent))
	}
}

func reactionAddInvoker(h guilded.MessageReactionAddHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MessageReactionAddEvent))
	}
}

func reactionRemoveInvoker(h guilded.MessageReactionRemoveHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MessageReactionRemoveEvent))
	}
}

func memberJoinInvoker(h guilded.MemberJoinHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MemberJoinEvent))
	}
}

func memberRemoveInvoker(h guilded.MemberRemoveHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MemberRemoveEvent))
	}
}

func memberUpdateInvoker(h guilded.MemberUpdateHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.MemberUpdateEvent))
	}
}

func banCreateInvoker(h guilded.BanCreateHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.BanCreateEvent))
	}
}

func banDeleteInvoker(h guilded.BanDeleteHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.BanDeleteEvent))
	}
}

func channelCreateInvoker(h guilded.ChannelCreateHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.ChannelCreateEvent))
	}
}

func channelUpdateInvoker(h guilded.ChannelUpdateHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.ChannelUpdateEvent))
	}
}

func channelDeleteInvoker(h guilded.ChannelDeleteHandler) invoker {
	return func(ctx context.Context, e interface{}) {
		h(ctx, e.(*guilded.ChannelDeleteEvent))
	}
}
