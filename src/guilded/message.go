package guilded

import (
	"context"
	"fmt"
	"time"
)

// Message is a chat message.
//
// AuthorID is always present; Author is populated from cache or the API
// when possible and left nil when the author could not be resolved.
type Message struct {
	ID        string
	ChannelID string
	TeamID    *string
	AuthorID  string
	WebhookID *string
	BotID     *string
	Author    *User
	Content   string
	CreatedAt *time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time

	api API
}

func (m *Message) String() string {
	return m.Content
}

// CreatedByBot returns true if the message was sent by a bot or webhook.
func (m *Message) CreatedByBot() bool {
	if m.Author != nil && m.Author.Bot {
		return true
	}

	return m.WebhookID != nil || m.BotID != nil
}

// JumpURL returns a URL that opens the channel at this message.
func (m *Message) JumpURL() string {
	return fmt.Sprintf("https://guilded.gg/channels/%s/chat?messageId=%s", m.ChannelID, m.ID)
}

// Reply sends a message to the channel this message was sent in.
func (m *Message) Reply(ctx context.Context, content string) (*Message, error) {
	return sendToChannel(ctx, m.api, m.ChannelID, content)
}

// Update replaces this message's content on the server and updates the
// local entity on success.
func (m *Message) Update(ctx context.Context, content string) error {
	data, err := m.api.UpdateChannelMessage(ctx, m.ChannelID, m.ID, content)
	if err != nil {
		return err
	}

	m.Content = content

	if updated, err := UnmarshalMessage(data, m.api); err == nil && updated.UpdatedAt != nil {
		m.UpdatedAt = updated.UpdatedAt
	} else {
		now := time.Now().UTC()
		m.UpdatedAt = &now
	}

	return nil
}

// Delete deletes this message. Deleting an already-deleted message fails
// with a 404 HTTPError.
func (m *Message) Delete(ctx context.Context) error {
	return m.api.DeleteChannelMessage(ctx, m.ChannelID, m.ID)
}

// AddReaction adds a reaction emote to this message.
func (m *Message) AddReaction(ctx context.Context, emoteID int) error {
	return m.api.AddReaction(ctx, m.ChannelID, m.ID, emoteID)
}

// Emote is a reaction emote.
type Emote struct {
	ID   int
	Name string
}
