package options

import (
	"net/http"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	opentracing "github.com/opentracing/opentracing-go"
)

// Option is a function that applies a configuration change.
type Option func(v visitor) error

// MaxMessages returns an Option that specifies the maximum number of
// messages retained in the client's cache. When the cache is full the
// oldest message is evicted first. A value of zero disables message
// caching entirely.
func MaxMessages(n int) Option {
	return func(v visitor) error {
		return v.applyMaxMessages(n)
	}
}

// Reconnect returns an Option that specifies whether the client
// re-establishes the gateway connection after losing it. When disabled,
// the first connection loss ends the run.
func Reconnect(enabled bool) Option {
	return func(v visitor) error {
		return v.applyReconnect(enabled)
	}
}

// DisableTeamConnections returns an Option that prevents the client from
// opening the additional team-specific gateway connections. Some event
// types are only delivered on team connections.
func DisableTeamConnections() Option {
	return func(v visitor) error {
		return v.applyTeamConnections(false)
	}
}

// Logger returns an Option that specifies the target for all of the
// client's logs.
func Logger(l twelf.Logger) Option {
	return func(v visitor) error {
		return v.applyLogger(l)
	}
}

// Tracer returns an Option that specifies an OpenTracing tracer to use for
// tracking API requests and event dispatch.
//
// See http://opentracing.io for more information.
func Tracer(t opentracing.Tracer) Option {
	return func(v visitor) error {
		return v.applyTracer(t)
	}
}

// RESTEndpoint returns an Option that specifies the base URL of the HTTP
// API.
func RESTEndpoint(u string) Option {
	return func(v visitor) error {
		return v.applyRESTEndpoint(u)
	}
}

// GatewayEndpoint returns an Option that specifies the URL of the gateway
// websocket.
func GatewayEndpoint(u string) Option {
	return func(v visitor) error {
		return v.applyGatewayEndpoint(u)
	}
}

// DialTimeout returns an Option that specifies the maximum amount of time
// to wait for the gateway handshake to complete.
func DialTimeout(t time.Duration) Option {
	return func(v visitor) error {
		return v.applyDialTimeout(t)
	}
}

// HTTPClient returns an Option that specifies the HTTP client used for API
// requests.
func HTTPClient(c *http.Client) Option {
	return func(v visitor) error {
		return v.applyHTTPClient(c)
	}
}
