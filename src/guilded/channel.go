package guilded

import (
	"context"
	"fmt"
	"time"
)

// Channel types reported by the platform.
const (
	ChannelTypeTeam = "team"
	ChannelTypeDM   = "dm"
)

// Channel is a chat channel, either belonging to a team or a DM.
type Channel struct {
	ID          string
	Type        string
	TeamID      *string
	GroupID     *string
	ParentID    *string
	Name        string
	Description string
	Public      bool
	CreatedAt   *time.Time
	UpdatedAt   *time.Time

	api API
}

func (c *Channel) String() string {
	return c.Name
}

// Mention returns the chat markup that mentions this channel.
func (c *Channel) Mention() string {
	return fmt.Sprintf("<#%s>", c.ID)
}

// IsDM returns true if this is a direct-message channel.
func (c *Channel) IsDM() bool {
	return c.Type == ChannelTypeDM
}

// Send sends a text message to this channel.
func (c *Channel) Send(ctx context.Context, content string) (*Message, error) {
	return sendToChannel(ctx, c.api, c.ID, content)
}

// Messages fetches the most recent messages sent in this channel.
func (c *Channel) Messages(ctx context.Context) ([]*Message, error) {
	history, err := c.api.GetChannelMessages(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	messages := make([]*Message, 0, len(history))
	for _, data := range history {
		m, err := UnmarshalMessage(data, c.api)
		if err != nil {
			continue
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// Message fetches a single message in this channel by ID.
func (c *Channel) Message(ctx context.Context, id string) (*Message, error) {
	data, err := c.api.GetChannelMessage(ctx, c.ID, id)
	if err != nil {
		return nil, err
	}

	return UnmarshalMessage(data, c.api)
}
