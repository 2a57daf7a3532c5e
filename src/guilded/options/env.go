package options

import (
	"os"

	"github.com/julien777z/guilded-go/src/internal/env"
)

// FromEnv returns client options with values read from environment variables.
//
// The environment variables are listed below.
//
// - GUILDED_MAX_MESSAGES     (non-negative integer)
// - GUILDED_RECONNECT        (boolean 'true' or 'false')
// - GUILDED_TEAM_CONNECTIONS (boolean 'true' or 'false')
// - GUILDED_DIAL_TIMEOUT     (duration in milliseconds, non-zero)
// - GUILDED_REST_ENDPOINT    (URL)
// - GUILDED_GATEWAY_ENDPOINT (URL)
func FromEnv() ([]Option, error) {
	var o []Option

	n, ok, err := env.Int("GUILDED_MAX_MESSAGES")
	if err != nil {
		return nil, err
	} else if ok {
		o = append(o, MaxMessages(n))
	}

	b, ok, err := env.Bool("GUILDED_RECONNECT")
	if err != nil {
		return nil, err
	} else if ok {
		o = append(o, Reconnect(b))
	}

	b, ok, err = env.Bool("GUILDED_TEAM_CONNECTIONS")
	if err != nil {
		return nil, err
	} else if ok && !b {
		o = append(o, DisableTeamConnections())
	}

	t, ok, err := env.Duration("GUILDED_DIAL_TIMEOUT")
	if err != nil {
		return nil, err
	} else if ok {
		o = append(o, DialTimeout(t))
	}

	if u := os.Getenv("GUILDED_REST_ENDPOINT"); u != "" {
		o = append(o, RESTEndpoint(u))
	}

	if u := os.Getenv("GUILDED_GATEWAY_ENDPOINT"); u != "" {
		o = append(o, GatewayEndpoint(u))
	}

	return o, nil
}
