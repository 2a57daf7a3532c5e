package options

import (
	"net/http"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	"github.com/julien777z/guilded-go/src/guilded"
	opentracing "github.com/opentracing/opentracing-go"
)

// Options is a structure representing a resolved set of options.
type Options struct {
	MaxMessages     int
	Reconnect       bool
	TeamConnections bool
	Logger          twelf.Logger
	Tracer          opentracing.Tracer
	RESTEndpoint    string
	GatewayEndpoint string
	DialTimeout     time.Duration
	HTTPClient      *http.Client
}

// NewOptions returns a new Options object from the given options, with default
// values for any options that are not specified.
func NewOptions(opts ...Option) (o Options, err error) {
	err = Apply(&o, opts...)
	return
}

// applyMaxMessages sets the MaxMessages value.
func (o *Options) applyMaxMessages(v int) error {
	if v < 0 {
		return guilded.ConfigurationError{Message: "maximum message count must not be negative"}
	}

	o.MaxMessages = v
	return nil
}

// applyReconnect sets the Reconnect value.
func (o *Options) applyReconnect(v bool) error {
	o.Reconnect = v
	return nil
}

// applyTeamConnections sets the TeamConnections value.
func (o *Options) applyTeamConnections(v bool) error {
	o.TeamConnections = v
	return nil
}

// applyLogger sets the Logger value.
func (o *Options) applyLogger(v twelf.Logger) error {
	if v == nil {
		panic("logger must not be nil")
	}

	o.Logger = v
	return nil
}

// applyTracer sets the Tracer value.
func (o *Options) applyTracer(v opentracing.Tracer) error {
	if v == nil {
		panic("tracer must not be nil")
	}

	o.Tracer = v
	return nil
}

// applyRESTEndpoint sets the RESTEndpoint value.
func (o *Options) applyRESTEndpoint(v string) error {
	if v == "" {
		return guilded.ConfigurationError{Message: "REST endpoint must not be empty"}
	}

	o.RESTEndpoint = v
	return nil
}

// applyGatewayEndpoint sets the GatewayEndpoint value.
func (o *Options) applyGatewayEndpoint(v string) error {
	if v == "" {
		return guilded.ConfigurationError{Message: "gateway endpoint must not be empty"}
	}

	o.GatewayEndpoint = v
	return nil
}

// applyDialTimeout sets the DialTimeout value.
func (o *Options) applyDialTimeout(v time.Duration) error {
	if v <= 0 {
		return guilded.ConfigurationError{Message: "dial timeout must be positive"}
	}

	o.DialTimeout = v
	return nil
}

// applyHTTPClient sets the HTTPClient value.
func (o *Options) applyHTTPClient(v *http.Client) error {
	if v == nil {
		panic("http client must not be nil")
	}

	o.HTTPClient = v
	return nil
}
