package guilded

import "context"

// API is the REST surface of the platform that entities and the client
// depend on. Methods return decoded response payloads; non-2xx responses
// fail with HTTPError.
//
// Implementations must be stateless and reentrant. Requests carry no
// ordering guarantee relative to each other or to gateway events.
type API interface {
	// Me returns the logged-in user's profile, including the teams the bot
	// is a member of.
	Me(ctx context.Context) (map[string]interface{}, error)

	// GetUser returns the profile of the user with the given ID.
	GetUser(ctx context.Context, userID string) (map[string]interface{}, error)

	// GetChannelMessages returns the most recent messages in a channel.
	GetChannelMessages(ctx context.Context, channelID string) ([]map[string]interface{}, error)

	// GetChannelMessage returns a single message by ID.
	GetChannelMessage(ctx context.Context, channelID, messageID string) (map[string]interface{}, error)

	// CreateChannelMessage sends a message to a channel and returns the
	// created message payload.
	CreateChannelMessage(ctx context.Context, channelID, content string) (map[string]interface{}, error)

	// UpdateChannelMessage replaces the content of an existing message.
	UpdateChannelMessage(ctx context.Context, channelID, messageID, content string) (map[string]interface{}, error)

	// DeleteChannelMessage deletes a message. Deleting an already-deleted
	// message fails with a 404 HTTPError.
	DeleteChannelMessage(ctx context.Context, channelID, messageID string) error

	// AddReaction adds a reaction emote to a message.
	AddReaction(ctx context.Context, channelID, messageID string, emoteID int) error

	// SetMemberNickname changes a team member's nickname.
	SetMemberNickname(ctx context.Context, teamID, userID, nickname string) error

	// ResetMemberNickname removes a team member's nickname.
	ResetMemberNickname(ctx context.Context, teamID, userID string) error

	// SetMemberXP sets a team member's XP value.
	SetMemberXP(ctx context.Context, teamID, userID string, xp int) error

	// CreateDM opens (or returns the existing) DM channel with a user.
	CreateDM(ctx context.Context, userID string) (map[string]interface{}, error)
}
