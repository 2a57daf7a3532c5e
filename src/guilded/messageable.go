package guilded

import "context"

// Messageable is the capability of receiving chat messages. It is
// implemented by Channel, User and Member; users and members are messaged
// through a DM channel that is created on demand.
type Messageable interface {
	// Send sends a text message and returns the created message.
	Send(ctx context.Context, content string) (*Message, error)
}

// sendToChannel creates a message in the given channel and decodes the
// response payload into a Message bound to the same API.
func sendToChannel(ctx context.Context, api API, channelID, content string) (*Message, error) {
	data, err := api.CreateChannelMessage(ctx, channelID, content)
	if err != nil {
		return nil, err
	}

	return UnmarshalMessage(data, api)
}
