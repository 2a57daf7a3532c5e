package client

import (
	"context"
	"time"

	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/julien777z/guilded-go/src/internal/gateway"
	"github.com/julien777z/guilded-go/src/internal/service"
)

const (
	// backoffBase is the delay before the first reconnection attempt. Each
	// consecutive failure adds another backoffBase to the delay.
	backoffBase = 5 * time.Second

	// backoffMax bounds the reconnection delay.
	backoffMax = 2 * time.Minute
)

// frame is a single envelope (or terminal read error) from one of the
// client's gateway connections.
type frame struct {
	conn *gateway.Conn
	env  *gateway.Envelope
	err  error
}

// waitStart blocks until Connect (or Run) releases the state machine.
func (c *client) waitStart() (service.State, error) {
	select {
	case <-c.start:
		return c.connect, nil
	case <-c.sm.Graceful:
		return nil, nil
	case <-c.sm.Forceful:
		return nil, nil
	}
}

// connect establishes the gateway connection(s) and warms the cache up.
//
// A failure before the client has ever connected, or with reconnection
// disabled, ends the run. Later failures transition to the backoff state.
func (c *client) connect() (service.State, error) {
	ctx, cancel := c.dialContext()
	defer cancel()

	if c.lastSeen == "" {
		c.cache.Reset()
	}

	conn, err := gateway.Dial(ctx, gateway.Config{
		Endpoint:    c.opts.GatewayEndpoint,
		Token:       c.token,
		DialTimeout: c.opts.DialTimeout,
		LastSeen:    c.lastSeen,
		Logger:      c.opts.Logger,
	})
	if err != nil {
		return c.connectFailed(err)
	}

	teamIDs, err := c.warmUp(ctx)
	if err != nil {
		conn.Close()
		return c.connectFailed(err)
	}

	c.conn = conn
	c.failures = 0
	c.frames = make(chan frame)
	c.epoch = make(chan struct{})

	go c.pump(conn, c.frames, c.epoch)

	if c.opts.TeamConnections {
		c.connectTeams(ctx, teamIDs)
	}

	c.dialResult(nil)

	logConnected(c.opts.Logger, c.opts.GatewayEndpoint, len(c.teamConns))
	c.registry.Dispatch(c.handlerCtx, guilded.EventConnect, &guilded.ConnectEvent{})

	c.readyOnce.Do(func() {
		close(c.ready)
		c.registry.Dispatch(c.handlerCtx, guilded.EventReady, &guilded.ReadyEvent{
			User: c.Me(),
		})
	})

	return c.connected, nil
}

func (c *client) connectFailed(err error) (service.State, error) {
	c.failures++
	logConnectFailed(c.opts.Logger, err)

	select {
	case <-c.dialed:
	default:
		// The first dial failed; surface the error to Connect and end the
		// run regardless of the reconnect setting.
		c.dialResult(err)
		return nil, err
	}

	if !c.opts.Reconnect {
		return nil, err
	}

	return c.backoff, nil
}

// connected consumes the fan-in frame channel, one envelope at a time.
// Each envelope is fully dispatched before the next is read, so cache
// mutations are observed in gateway order.
func (c *client) connected() (service.State, error) {
	select {
	case f := <-c.frames:
		if f.err != nil {
			return c.connectionLost(f)
		}

		c.disp.Handle(c.handlerCtx, f.env)
		return c.connected, nil

	case <-c.sm.Graceful:
		return nil, nil

	case <-c.sm.Forceful:
		return nil, nil
	}
}

func (c *client) connectionLost(f frame) (service.State, error) {
	if f.conn != c.conn {
		// A team connection failed. The main connection is intact, so the
		// client stays connected; the team is redialled on the next connect.
		logTeamConnectionLost(c.opts.Logger, f.conn.TeamID(), f.err)
		return c.connected, nil
	}

	code := 0
	if e, ok := f.err.(guilded.AbnormalClosureError); ok {
		code = e.Code
	}

	c.teardown()

	logDisconnected(c.opts.Logger, f.err)
	c.registry.Dispatch(c.handlerCtx, guilded.EventDisconnect, &guilded.DisconnectEvent{
		Code:     code,
		LastSeen: c.lastSeen,
	})

	if f.err == gateway.ErrConnClosed {
		// The connection was closed locally; the client is stopping.
		return nil, nil
	}

	if !c.opts.Reconnect {
		return nil, f.err
	}

	return c.backoff, nil
}

// backoff waits before the next connection attempt. The delay starts at
// backoffBase and grows by backoffBase for every consecutive failure, up to
// backoffMax.
func (c *client) backoff() (service.State, error) {
	delay := nextBackoff(c.failures)
	logBackoff(c.opts.Logger, delay, c.failures)

	if !c.sleep(delay) {
		return nil, nil
	}

	return c.connect, nil
}

func (c *client) finalize(err error) error {
	c.teardown()
	c.cancelHandlers()
	c.registry.Wait(handlerGrace)

	c.dialResult(err)

	return err
}

// nextBackoff returns the reconnection delay after the given number of
// consecutive failures.
func nextBackoff(failures int) time.Duration {
	d := backoffBase + backoffBase*time.Duration(failures)
	if d > backoffMax {
		return backoffMax
	}

	return d
}

// pump reads envelopes from conn into frames until the connection fails.
// The terminal error is delivered as the final frame.
func (c *client) pump(conn *gateway.Conn, frames chan<- frame, epoch <-chan struct{}) {
	for {
		env, err := conn.ReadEnvelope()
		if err != nil {
			select {
			case frames <- frame{conn: conn, err: err}:
			case <-epoch:
			}
			return
		}

		select {
		case frames <- frame{conn: conn, env: env}:
		case <-epoch:
			return
		}
	}
}

// warmUp fetches the logged-in user and populates the cache with the teams
// and channels visible at login. It returns the IDs of the teams the bot
// is a member of.
func (c *client) warmUp(ctx context.Context) ([]string, error) {
	data, err := c.api.Me(ctx)
	if err != nil {
		return nil, err
	}

	user, err := guilded.UnmarshalUser(data, c.api)
	if err != nil {
		return nil, err
	}
	user.Bot = true

	me := &guilded.ClientUser{User: *user}

	c.mutex.Lock()
	c.me = me
	c.mutex.Unlock()

	c.cache.PutUser(user)

	var teamIDs []string

	if raw, ok := data["teams"].([]interface{}); ok {
		for _, entry := range raw {
			payload, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}

			team, err := guilded.UnmarshalTeam(payload, c.api)
			if err != nil {
				continue
			}

			c.cache.PutTeam(team)
			teamIDs = append(teamIDs, team.ID)

			if channels, ok := payload["channels"].([]interface{}); ok {
				c.warmUpChannels(team.ID, channels)
			}
		}
	}

	return teamIDs, nil
}

func (c *client) warmUpChannels(teamID string, channels []interface{}) {
	for _, entry := range channels {
		payload, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		channel, err := guilded.UnmarshalChannel(payload, c.api)
		if err != nil {
			continue
		}

		if channel.TeamID == nil {
			id := teamID
			channel.TeamID = &id
		}

		c.cache.PutChannel(channel)
	}
}

// connectTeams opens the team-specific gateway connections. Failures are
// logged and skipped; the main connection alone is enough to operate.
func (c *client) connectTeams(ctx context.Context, teamIDs []string) {
	for _, id := range teamIDs {
		conn, err := gateway.Dial(ctx, gateway.Config{
			Endpoint:    c.opts.GatewayEndpoint,
			Token:       c.token,
			DialTimeout: c.opts.DialTimeout,
			TeamID:      id,
			Logger:      c.opts.Logger,
		})
		if err != nil {
			logTeamConnectFailed(c.opts.Logger, id, err)
			continue
		}

		c.teamConns = append(c.teamConns, conn)
		go c.pump(conn, c.frames, c.epoch)
	}
}

// teardown closes every open connection and retires the current frame
// channel. The main connection's last-seen marker is retained for
// resumption.
func (c *client) teardown() {
	if c.epoch != nil {
		close(c.epoch)
		c.epoch = nil
	}

	if c.conn != nil {
		c.lastSeen = c.conn.LastSeen()
		c.conn.Close()
		c.conn = nil
	}

	for _, conn := range c.teamConns {
		conn.Close()
	}
	c.teamConns = nil
}

// dialContext returns a context for a connection attempt that is canceled
// if the client is stopped.
func (c *client) dialContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.handlerCtx)

	go func() {
		select {
		case <-c.sm.Forceful:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// dialResult records the outcome of the first connection attempt, which
// Connect blocks on.
func (c *client) dialResult(err error) {
	c.dialOnce.Do(func() {
		c.dialErr = err
		close(c.dialed)
	})
}

// wait sleeps for d, returning early with false if the client is stopped.
func (c *client) wait(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.sm.Graceful:
		return false
	case <-c.sm.Forceful:
		return false
	}
}
