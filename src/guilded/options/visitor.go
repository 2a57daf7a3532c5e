package options

import (
	"net/http"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	opentracing "github.com/opentracing/opentracing-go"
)

// visitor handles the application of options.
type visitor interface {
	applyMaxMessages(int) error
	applyReconnect(bool) error
	applyTeamConnections(bool) error
	applyLogger(twelf.Logger) error
	applyTracer(opentracing.Tracer) error
	applyRESTEndpoint(string) error
	applyGatewayEndpoint(string) error
	applyDialTimeout(time.Duration) error
	applyHTTPClient(*http.Client) error
}

// Apply applies the default options, then a sequence of additional options to v.
func Apply(v visitor, opts ...Option) error {
	if err := v.applyMaxMessages(1000); err != nil {
		return err
	}

	if err := v.applyReconnect(true); err != nil {
		return err
	}

	if err := v.applyTeamConnections(true); err != nil {
		return err
	}

	if err := v.applyLogger(defaultLogger); err != nil {
		return err
	}

	if err := v.applyTracer(opentracing.NoopTracer{}); err != nil {
		return err
	}

	if err := v.applyRESTEndpoint("https://www.guilded.gg/api"); err != nil {
		return err
	}

	if err := v.applyGatewayEndpoint("wss://www.guilded.gg/websocket/v1"); err != nil {
		return err
	}

	if err := v.applyDialTimeout(60 * time.Second); err != nil {
		return err
	}

	if err := v.applyHTTPClient(http.DefaultClient); err != nil {
		return err
	}

	for _, o := range opts {
		if err := o(v); err != nil {
			return err
		}
	}

	return nil
}

var defaultLogger twelf.Logger

func init() {
	// Initialize the default logger before any testing framework can redirect
	// stdout. This lets us use standard "Output:" checks in example tests
	// without having to match the log output, while still printing the log
	// output in case of a test failure.
	defaultLogger = &twelf.StandardLogger{}
}
