// Package client provides a gateway-connected implementation of
// guilded.Client.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/julien777z/guilded-go/src/guilded/options"
	"github.com/julien777z/guilded-go/src/internal/cache"
	"github.com/julien777z/guilded-go/src/internal/dispatch"
	"github.com/julien777z/guilded-go/src/internal/gateway"
	"github.com/julien777z/guilded-go/src/internal/rest"
	"github.com/julien777z/guilded-go/src/internal/service"
)

// handlerGrace is how long Close waits for in-flight event handlers to
// return before abandoning them.
const handlerGrace = 5 * time.Second

// client is a gateway-backed implementation of guilded.Client.
type client struct {
	service.Service
	sm *service.StateMachine

	token string
	opts  options.Options

	api      guilded.API
	cache    *cache.Store
	registry *dispatch.Registry
	disp     *dispatch.Dispatcher

	handlerCtx     context.Context
	cancelHandlers context.CancelFunc

	start     chan struct{}
	startOnce sync.Once

	dialed   chan struct{}
	dialOnce sync.Once
	dialErr  error

	ready     chan struct{}
	readyOnce sync.Once

	mutex sync.RWMutex
	me    *guilded.ClientUser

	// The remaining fields are owned by the state machine goroutine.
	conn      *gateway.Conn
	teamConns []*gateway.Conn
	frames    chan frame
	epoch     chan struct{}
	lastSeen  string
	failures  int

	// sleep waits between reconnection attempts. It returns false if the
	// client was stopped before the delay elapsed.
	sleep func(d time.Duration) bool
}

// New returns a client that authenticates with the given bot token.
//
// The client does not connect until Connect or Run is called.
func New(token string, opts ...options.Option) (guilded.Client, error) {
	if token == "" {
		return nil, guilded.AuthenticationError{Message: "no token was provided"}
	}

	o, err := options.NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	api := rest.NewClient(
		o.RESTEndpoint,
		token,
		o.HTTPClient,
		o.Logger,
		o.Tracer,
	)

	store := cache.NewStore(o.MaxMessages)
	registry := dispatch.NewRegistry(o.Logger, o.Tracer)

	ctx, cancel := context.WithCancel(context.Background())

	c := &client{
		token: token,
		opts:  o,

		api:      api,
		cache:    store,
		registry: registry,
		disp: &dispatch.Dispatcher{
			Cache:    store,
			API:      api,
			Registry: registry,
			Logger:   o.Logger,
		},

		handlerCtx:     ctx,
		cancelHandlers: cancel,

		start:  make(chan struct{}),
		dialed: make(chan struct{}),
		ready:  make(chan struct{}),
	}

	c.sleep = c.wait
	c.sm = service.NewStateMachine(c.waitStart, c.finalize)
	c.Service = c.sm

	go c.sm.Run()

	return c, nil
}

func (c *client) On(event string, handler interface{}) error {
	return c.registry.Register(event, handler)
}

func (c *client) OnError(handler guilded.ErrorHandler) {
	c.registry.SetErrorHook(handler)
}

// Connect starts the connection attempt, if it has not been started
// already, and returns once the first dial has been resolved. ctx bounds
// the wait, not the connection itself.
func (c *client) Connect(ctx context.Context) error {
	c.startOnce.Do(func() {
		close(c.start)
	})

	select {
	case <-c.dialed:
		return c.dialErr
	case <-ctx.Done():
		return ctx.Err()
	case <-c.sm.Done():
		return c.sm.Err()
	}
}

// Run connects, then blocks until the client is stopped or fails. If ctx
// is canceled the client is closed and the context error is returned.
func (c *client) Run(ctx context.Context) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		c.Close()
		return ctx.Err()
	case <-c.sm.Done():
		return c.sm.Err()
	}
}

func (c *client) WaitUntilReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.sm.Done():
		if err := c.sm.Err(); err != nil {
			return err
		}

		return service.ErrStopped
	}
}

func (c *client) Me() *guilded.ClientUser {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.me
}

func (c *client) API() guilded.API {
	return c.api
}

// Close stops the client. Any established connections are torn down, and
// in-flight event handlers are given a grace period to return.
func (c *client) Close() {
	c.sm.GracefulStop()
	<-c.sm.Done()
}
