package gateway

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	"github.com/pkg/errors"
)

// ErrConnClosed is returned by ReadEnvelope after the connection has been
// closed locally.
var ErrConnClosed = errors.New("gateway connection is closed")

// readTimeout is the maximum time to wait between frames before the
// connection is considered dead. The server pings well within this window.
const readTimeout = 90 * time.Second

// Config is the information required to establish a gateway connection.
type Config struct {
	// Endpoint is the websocket URL to dial.
	Endpoint string

	// Token is the bot token used to authenticate the connection.
	Token string

	// DialTimeout is the maximum time to wait for the handshake to
	// complete.
	DialTimeout time.Duration

	// LastSeen is the ID of the last envelope observed on a previous
	// connection. When non-empty the server is asked to replay traffic
	// after it, on a best-effort basis.
	LastSeen string

	// TeamID restricts the connection to a single team's traffic. The main
	// connection leaves it empty.
	TeamID string

	Logger twelf.Logger
}

// Conn is a single gateway websocket session.
//
// ReadEnvelope must only be called from one goroutine at a time. Close may
// be called from any goroutine.
type Conn struct {
	ws     *websocket.Conn
	teamID string
	logger twelf.Logger

	mutex    sync.Mutex
	closed   bool
	lastSeen string
}

// Dial establishes a gateway connection.
//
// A handshake that does not complete within cfg.DialTimeout fails with
// guilded.ConnectionTimeoutError.
func Dial(ctx context.Context, cfg Config) (*Conn, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+cfg.Token)

	if cfg.LastSeen != "" {
		header.Set("guilded-last-message-id", cfg.LastSeen)
	}

	if cfg.TeamID != "" {
		header.Set("guilded-team-id", cfg.TeamID)
	}

	dialer := &websocket.Dialer{
		HandshakeTimeout: cfg.DialTimeout,
	}

	ws, _, err := dialer.DialContext(ctx, cfg.Endpoint, header)
	if err != nil {
		if isTimeout(err) {
			return nil, guilded.ConnectionTimeoutError{Timeout: cfg.DialTimeout}
		}

		return nil, errors.Wrap(err, "gateway dial failed")
	}

	c := &Conn{
		ws:       ws,
		teamID:   cfg.TeamID,
		logger:   cfg.Logger,
		lastSeen: cfg.LastSeen,
	}

	ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPingHandler(func(message string) error {
		ws.SetReadDeadline(time.Now().Add(readTimeout))

		err := ws.WriteControl(
			websocket.PongMessage,
			[]byte(message),
			time.Now().Add(10*time.Second),
		)
		if err == websocket.ErrCloseSent {
			return nil
		}

		return err
	})

	logDialed(cfg.Logger, cfg.Endpoint, cfg.TeamID, cfg.LastSeen != "")

	return c, nil
}

// ReadEnvelope reads the next envelope from the connection.
//
// The envelope's ID, if any, is recorded as the last-seen marker before the
// envelope is returned. After Close has been called the read fails with
// ErrConnClosed; a connection lost for any other reason fails with
// guilded.AbnormalClosureError.
func (c *Conn) ReadEnvelope() (*Envelope, error) {
	var env Envelope

	if err := c.ws.ReadJSON(&env); err != nil {
		return nil, c.readError(err)
	}

	c.ws.SetReadDeadline(time.Now().Add(readTimeout))

	if env.ID != "" {
		c.mutex.Lock()
		c.lastSeen = env.ID
		c.mutex.Unlock()
	}

	return &env, nil
}

// LastSeen returns the ID of the last envelope observed on this connection,
// or the ID the connection was resumed from if nothing has been read yet.
func (c *Conn) LastSeen() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.lastSeen
}

// TeamID returns the team this connection is restricted to, or an empty
// string for the main connection.
func (c *Conn) TeamID() string {
	return c.teamID
}

// Close closes the connection. A close frame is sent on a best-effort
// basis before the socket is torn down. Closing an already-closed
// connection is a no-op.
func (c *Conn) Close() {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return
	}
	c.closed = true
	c.mutex.Unlock()

	// Ignore errors, the socket is being discarded either way.
	c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.ws.Close()

	logClosed(c.logger, c.teamID)
}

func (c *Conn) readError(err error) error {
	c.mutex.Lock()
	closed := c.closed
	c.mutex.Unlock()

	if closed {
		return ErrConnClosed
	}

	if e, ok := err.(*websocket.CloseError); ok {
		return guilded.AbnormalClosureError{Code: e.Code}
	}

	return guilded.AbnormalClosureError{}
}

func isTimeout(err error) bool {
	if err == context.DeadlineExceeded {
		return true
	}

	if e, ok := err.(net.Error); ok {
		return e.Timeout()
	}

	return false
}
