package rest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Me returns the logged-in user's profile, including the teams the bot is
// a member of.
func (c *Client) Me(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.do(ctx, "GET", "/me", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetUser returns the profile of the user with the given ID.
func (c *Client) GetUser(ctx context.Context, userID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.do(ctx, "GET", "/users/"+userID, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetChannelMessages returns the most recent messages in a channel,
// newest first.
func (c *Client) GetChannelMessages(ctx context.Context, channelID string) ([]map[string]interface{}, error) {
	var out struct {
		Messages []map[string]interface{} `json:"messages"`
	}
	if err := c.do(ctx, "GET", "/channels/"+channelID+"/messages", nil, &out); err != nil {
		return nil, err
	}

	return out.Messages, nil
}

// GetChannelMessage returns a single message by ID.
func (c *Client) GetChannelMessage(ctx context.Context, channelID, messageID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	if err := c.do(ctx, "GET", path, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// CreateChannelMessage sends a message to a channel. The message ID is
// generated client-side, so the created entity is known even if the
// response body is discarded.
func (c *Client) CreateChannelMessage(ctx context.Context, channelID, content string) (map[string]interface{}, error) {
	id := uuid.New().String()

	body := map[string]interface{}{
		"messageId": id,
		"content":   content,
	}

	var out map[string]interface{}
	if err := c.do(ctx, "POST", "/channels/"+channelID+"/messages", body, &out); err != nil {
		return nil, err
	}

	if out == nil {
		out = map[string]interface{}{}
	}
	if _, ok := out["id"]; !ok {
		out["id"] = id
		out["channelId"] = channelID
		out["content"] = content
	}

	return out, nil
}

// UpdateChannelMessage replaces the content of an existing message.
func (c *Client) UpdateChannelMessage(ctx context.Context, channelID, messageID, content string) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"content": content,
	}

	var out map[string]interface{}
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	if err := c.do(ctx, "PUT", path, body, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteChannelMessage deletes a message.
func (c *Client) DeleteChannelMessage(ctx context.Context, channelID, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, "DELETE", path, nil, nil)
}

// AddReaction adds a reaction emote to a message.
func (c *Client) AddReaction(ctx context.Context, channelID, messageID string, emoteID int) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%d", channelID, messageID, emoteID)
	return c.do(ctx, "POST", path, nil, nil)
}

// SetMemberNickname changes a team member's nickname.
func (c *Client) SetMemberNickname(ctx context.Context, teamID, userID, nickname string) error {
	body := map[string]interface{}{
		"nickname": nickname,
	}

	path := fmt.Sprintf("/teams/%s/members/%s/nickname", teamID, userID)
	return c.do(ctx, "PUT", path, body, nil)
}

// ResetMemberNickname removes a team member's nickname.
func (c *Client) ResetMemberNickname(ctx context.Context, teamID, userID string) error {
	path := fmt.Sprintf("/teams/%s/members/%s/nickname", teamID, userID)
	return c.do(ctx, "DELETE", path, nil, nil)
}

// SetMemberXP sets a team member's XP value. The value may be negative.
func (c *Client) SetMemberXP(ctx context.Context, teamID, userID string, xp int) error {
	body := map[string]interface{}{
		"amount": xp,
	}

	path := fmt.Sprintf("/teams/%s/members/%s/xp", teamID, userID)
	return c.do(ctx, "PUT", path, body, nil)
}

// CreateDM opens (or returns the existing) DM channel with a user.
func (c *Client) CreateDM(ctx context.Context, userID string) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"users": []map[string]interface{}{
			{"id": userID},
		},
	}

	var out map[string]interface{}
	if err := c.do(ctx, "POST", "/users/"+userID+"/channels", body, &out); err != nil {
		return nil, err
	}

	return out, nil
}
