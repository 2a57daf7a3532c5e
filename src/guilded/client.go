package guilded

import "context"

// Client is a connection to the chat platform on behalf of a bot account.
//
// A client owns a websocket connection to the gateway, a REST client for
// the HTTP API, and a cache of the entities observed on either. Gateway
// traffic is applied to the cache and dispatched to registered handlers in
// the order it arrives.
type Client interface {
	// On registers handler for the named event, replacing any handler
	// already registered for it.
	//
	// handler must be the handler type matching event (a MessageHandler for
	// EventMessage, and so on); a ConfigurationError is returned otherwise.
	On(event string, handler interface{}) error

	// OnError registers handler to be invoked whenever an event handler
	// panics. By default panics are logged and discarded.
	OnError(handler ErrorHandler)

	// Connect establishes the gateway connection and starts dispatching
	// events. It returns once the connection attempt has been resolved,
	// without waiting for the client to become ready.
	Connect(ctx context.Context) error

	// Run connects and then blocks until the client is stopped or fails
	// with a fatal error. It is equivalent to calling Connect, then waiting
	// on Done and returning Err.
	Run(ctx context.Context) error

	// WaitUntilReady blocks until the ready event has been dispatched, ctx
	// is canceled, or the client is stopped.
	WaitUntilReady(ctx context.Context) error

	// Me returns the user the client is logged in as, or nil before the
	// client is ready.
	Me() *ClientUser

	// User returns the cached user with the given ID.
	User(id string) (*User, bool)

	// Users returns all cached users.
	Users() []*User

	// Team returns the cached team with the given ID.
	Team(id string) (*Team, bool)

	// Teams returns all cached teams.
	Teams() []*Team

	// Channel returns the cached channel with the given ID.
	Channel(id string) (*Channel, bool)

	// Channels returns all cached channels.
	Channels() []*Channel

	// Message returns the cached message with the given ID.
	Message(id string) (*Message, bool)

	// Messages returns all cached messages, oldest first.
	Messages() []*Message

	// Member returns the cached member of a team with the given user ID.
	Member(teamID, userID string) (*Member, bool)

	// FetchUser fetches a user from the API, bypassing the cache. The
	// fetched user is cached on success.
	FetchUser(ctx context.Context, id string) (*User, error)

	// UserOrFetch returns the cached user with the given ID, falling back
	// to FetchUser on a cache miss.
	UserOrFetch(ctx context.Context, id string) (*User, error)

	// API returns the client's REST API, for operations that have no
	// entity-level helper.
	API() API

	// Done returns a channel that is closed when the client is stopped.
	Done() <-chan struct{}

	// Err returns the error that caused the Done channel to close, if any.
	Err() error

	// Close disconnects from the gateway and stops the client. In-flight
	// event handlers are given a short grace period to return.
	Close()
}
