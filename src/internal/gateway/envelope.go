package gateway

// Operation codes carried by gateway envelopes.
const (
	// OpEvent envelopes carry a named event and its payload.
	OpEvent = 0

	// OpWelcome is sent by the server once per connection, immediately
	// after the handshake.
	OpWelcome = 1

	// OpResumed acknowledges a resume request.
	OpResumed = 2
)

// Envelope is a single frame of gateway traffic.
type Envelope struct {
	// Op identifies how the envelope is to be interpreted.
	Op int `json:"op"`

	// Type is the event name. It is only meaningful when Op is OpEvent.
	Type string `json:"t"`

	// Data is the event payload.
	Data map[string]interface{} `json:"d"`

	// ID identifies the envelope for resumption. Envelopes that can not be
	// replayed carry an empty ID.
	ID string `json:"s"`
}
