package dispatch_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/julien777z/guilded-go/src/internal/cache"
	"github.com/julien777z/guilded-go/src/internal/dispatch"
	"github.com/julien777z/guilded-go/src/internal/gateway"
	opentracing "github.com/opentracing/opentracing-go"
)

var _ = Describe("Dispatcher", func() {
	var (
		api        *fakeAPI
		store      *cache.Store
		registry   *dispatch.Registry
		dispatcher *dispatch.Dispatcher
	)

	BeforeEach(func() {
		api = newFakeAPI()
		store = cache.NewStore(10)
		registry = dispatch.NewRegistry(
			&twelf.StandardLogger{},
			opentracing.NoopTracer{},
		)
		dispatcher = &dispatch.Dispatcher{
			Cache:    store,
			API:      api,
			Registry: registry,
			Logger:   &twelf.StandardLogger{},
		}
	})

	handle := func(eventType string, data map[string]interface{}) {
		dispatcher.Handle(context.Background(), &gateway.Envelope{
			Op:   gateway.OpEvent,
			Type: eventType,
			Data: data,
		})
	}

	It("ignores envelopes of an unknown type", func() {
		handle("SomeFutureEvent", map[string]interface{}{"id": "x"})

		Expect(store.Messages()).To(HaveLen(0))
	})

	It("ignores non-event envelopes", func() {
		dispatcher.Handle(context.Background(), &gateway.Envelope{
			Op:   gateway.OpWelcome,
			Data: map[string]interface{}{},
		})
	})

	Describe("ChatMessageCreated", func() {
		data := func() map[string]interface{} {
			return map[string]interface{}{
				"message": map[string]interface{}{
					"id":        "message-1",
					"channelId": "channel-1",
					"createdBy": "user-1",
					"content":   "hello",
				},
			}
		}

		It("caches the message before the handler runs", func() {
			cached := make(chan bool, 1)

			registry.Register(guilded.EventMessage, func(ctx context.Context, e *guilded.MessageEvent) {
				_, ok := store.Message(e.Message.ID)
				cached <- ok
			})

			handle("ChatMessageCreated", data())

			Eventually(cached).Should(Receive(BeTrue()))
		})

		It("resolves the author via the API on a cache miss", func() {
			api.addUser("user-1", "ada")

			events := make(chan *guilded.MessageEvent, 1)
			registry.Register(guilded.EventMessage, func(ctx context.Context, e *guilded.MessageEvent) {
				events <- e
			})

			handle("ChatMessageCreated", data())

			var e *guilded.MessageEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Message.Author).NotTo(BeNil())
			Expect(e.Message.Author.Name).To(Equal("ada"))
			Expect(api.calls()).To(Equal(1))
		})

		It("resolves the author from the cache without touching the API", func() {
			store.PutUser(&guilded.User{ID: "user-1", Name: "ada"})

			handle("ChatMessageCreated", data())

			m, ok := store.Message("message-1")
			Expect(ok).To(BeTrue())
			Expect(m.Author).NotTo(BeNil())
			Expect(api.calls()).To(Equal(0))
		})

		It("dispatches the event with a nil author when resolution fails", func() {
			events := make(chan *guilded.MessageEvent, 1)
			registry.Register(guilded.EventMessage, func(ctx context.Context, e *guilded.MessageEvent) {
				events <- e
			})

			handle("ChatMessageCreated", data())

			var e *guilded.MessageEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Message.Author).To(BeNil())
		})

		It("ignores a malformed payload", func() {
			handle("ChatMessageCreated", map[string]interface{}{
				"message": map[string]interface{}{"content": "no id"},
			})

			Expect(store.Messages()).To(HaveLen(0))
		})
	})

	Describe("ChatMessageUpdated", func() {
		It("carries the previously cached revision", func() {
			store.PutMessage(&guilded.Message{ID: "message-1", Content: "old"})

			events := make(chan *guilded.MessageUpdateEvent, 1)
			registry.Register(guilded.EventMessageUpdate, func(ctx context.Context, e *guilded.MessageUpdateEvent) {
				events <- e
			})

			handle("ChatMessageUpdated", map[string]interface{}{
				"message": map[string]interface{}{
					"id":        "message-1",
					"channelId": "channel-1",
					"content":   "new",
				},
			})

			var e *guilded.MessageUpdateEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Before.Content).To(Equal("old"))
			Expect(e.Message.Content).To(Equal("new"))

			m, _ := store.Message("message-1")
			Expect(m.Content).To(Equal("new"))
		})

		It("leaves Before nil when the message was not cached", func() {
			events := make(chan *guilded.MessageUpdateEvent, 1)
			registry.Register(guilded.EventMessageUpdate, func(ctx context.Context, e *guilded.MessageUpdateEvent) {
				events <- e
			})

			handle("ChatMessageUpdated", map[string]interface{}{
				"message": map[string]interface{}{
					"id":        "message-1",
					"channelId": "channel-1",
					"content":   "new",
				},
			})

			var e *guilded.MessageUpdateEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Before).To(BeNil())
		})
	})

	Describe("ChatMessageDeleted", func() {
		It("removes the message from the cache", func() {
			store.PutMessage(&guilded.Message{ID: "message-1", Content: "hello"})

			events := make(chan *guilded.MessageDeleteEvent, 1)
			registry.Register(guilded.EventMessageDelete, func(ctx context.Context, e *guilded.MessageDeleteEvent) {
				events <- e
			})

			handle("ChatMessageDeleted", map[string]interface{}{
				"message": map[string]interface{}{
					"id":        "message-1",
					"channelId": "channel-1",
					"deletedAt": "2021-01-01T00:00:00Z",
				},
			})

			var e *guilded.MessageDeleteEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.MessageID).To(Equal("message-1"))
			Expect(e.Message).NotTo(BeNil())
			Expect(e.Message.Content).To(Equal("hello"))
			Expect(e.DeletedAt).NotTo(BeNil())

			_, ok := store.Message("message-1")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ChannelMessageReactionCreated", func() {
		It("dispatches a reaction event with the cached message", func() {
			store.PutMessage(&guilded.Message{ID: "message-1"})

			events := make(chan *guilded.MessageReactionAddEvent, 1)
			registry.Register(guilded.EventMessageReactionAdd, func(ctx context.Context, e *guilded.MessageReactionAddEvent) {
				events <- e
			})

			handle("ChannelMessageReactionCreated", map[string]interface{}{
				"reaction": map[string]interface{}{
					"channelId": "channel-1",
					"messageId": "message-1",
					"createdBy": "user-1",
					"customReaction": map[string]interface{}{
						"id":   90001164,
						"name": "thumbsup",
					},
				},
			})

			var e *guilded.MessageReactionAddEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.MessageID).To(Equal("message-1"))
			Expect(e.UserID).To(Equal("user-1"))
			Expect(e.Emote.Name).To(Equal("thumbsup"))
			Expect(e.Message).NotTo(BeNil())
		})
	})

	Describe("TeamMemberJoined", func() {
		It("caches the member and the user", func() {
			events := make(chan *guilded.MemberJoinEvent, 1)
			registry.Register(guilded.EventMemberJoin, func(ctx context.Context, e *guilded.MemberJoinEvent) {
				events <- e
			})

			handle("TeamMemberJoined", map[string]interface{}{
				"teamId": "team-1",
				"user": map[string]interface{}{
					"id":   "user-1",
					"name": "ada",
				},
			})

			Eventually(events).Should(Receive())

			_, ok := store.Member("team-1", "user-1")
			Expect(ok).To(BeTrue())

			_, ok = store.User("user-1")
			Expect(ok).To(BeTrue())
		})
	})

	Describe("TeamMemberRemoved", func() {
		It("drops the member and reports the removal kind", func() {
			store.PutMember(&guilded.Member{
				User:   guilded.User{ID: "user-1"},
				TeamID: "team-1",
			})

			events := make(chan *guilded.MemberRemoveEvent, 1)
			registry.Register(guilded.EventMemberRemove, func(ctx context.Context, e *guilded.MemberRemoveEvent) {
				events <- e
			})

			handle("TeamMemberRemoved", map[string]interface{}{
				"teamId": "team-1",
				"userId": "user-1",
				"isKick": true,
			})

			var e *guilded.MemberRemoveEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Kicked).To(BeTrue())
			Expect(e.Banned).To(BeFalse())
			Expect(e.Member).NotTo(BeNil())

			_, ok := store.Member("team-1", "user-1")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("TeamMemberUpdated", func() {
		It("applies a nickname change to the cached member", func() {
			store.PutMember(&guilded.Member{
				User:   guilded.User{ID: "user-1", Name: "ada"},
				TeamID: "team-1",
			})

			events := make(chan *guilded.MemberUpdateEvent, 1)
			registry.Register(guilded.EventMemberUpdate, func(ctx context.Context, e *guilded.MemberUpdateEvent) {
				events <- e
			})

			handle("TeamMemberUpdated", map[string]interface{}{
				"teamId": "team-1",
				"userInfo": map[string]interface{}{
					"id":       "user-1",
					"nickname": "The Countess",
				},
			})

			var e *guilded.MemberUpdateEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Before.Nickname).To(BeNil())
			Expect(e.Member.DisplayName()).To(Equal("The Countess"))

			m, _ := store.Member("team-1", "user-1")
			Expect(m.Nickname).NotTo(BeNil())
		})
	})

	Describe("TeamChannelCreated", func() {
		It("caches the channel", func() {
			handle("TeamChannelCreated", map[string]interface{}{
				"channel": map[string]interface{}{
					"id":     "channel-1",
					"type":   "team",
					"teamId": "team-1",
					"name":   "general",
				},
			})

			c, ok := store.Channel("channel-1")
			Expect(ok).To(BeTrue())
			Expect(c.Name).To(Equal("general"))
		})
	})

	Describe("TeamChannelDeleted", func() {
		It("drops the channel and dispatches the cached entity", func() {
			store.PutChannel(&guilded.Channel{ID: "channel-1", Name: "general"})

			events := make(chan *guilded.ChannelDeleteEvent, 1)
			registry.Register(guilded.EventChannelDelete, func(ctx context.Context, e *guilded.ChannelDeleteEvent) {
				events <- e
			})

			handle("TeamChannelDeleted", map[string]interface{}{
				"channel": map[string]interface{}{
					"id": "channel-1",
				},
			})

			var e *guilded.ChannelDeleteEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Channel.Name).To(Equal("general"))

			_, ok := store.Channel("channel-1")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("TeamMemberBanned", func() {
		It("dispatches the ban", func() {
			events := make(chan *guilded.BanCreateEvent, 1)
			registry.Register(guilded.EventBanCreate, func(ctx context.Context, e *guilded.BanCreateEvent) {
				events <- e
			})

			handle("TeamMemberBanned", map[string]interface{}{
				"teamId": "team-1",
				"serverMemberBan": map[string]interface{}{
					"reason":    "spam",
					"createdBy": "user-2",
					"user": map[string]interface{}{
						"id": "user-1",
					},
				},
			})

			var e *guilded.BanCreateEvent
			Eventually(events).Should(Receive(&e))
			Expect(e.Ban.TeamID).To(Equal("team-1"))
			Expect(e.Ban.User.ID).To(Equal("user-1"))
			Expect(e.Ban.Reason).To(Equal("spam"))
		})
	})
})
