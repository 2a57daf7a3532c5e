package client

import (
	"context"

	"github.com/julien777z/guilded-go/src/guilded"
)

// The accessors below read the client's cache and never touch the network.

func (c *client) User(id string) (*guilded.User, bool) {
	return c.cache.User(id)
}

func (c *client) Users() []*guilded.User {
	return c.cache.Users()
}

func (c *client) Team(id string) (*guilded.Team, bool) {
	return c.cache.Team(id)
}

func (c *client) Teams() []*guilded.Team {
	return c.cache.Teams()
}

func (c *client) Channel(id string) (*guilded.Channel, bool) {
	return c.cache.Channel(id)
}

func (c *client) Channels() []*guilded.Channel {
	return c.cache.Channels()
}

func (c *client) Message(id string) (*guilded.Message, bool) {
	return c.cache.Message(id)
}

func (c *client) Messages() []*guilded.Message {
	return c.cache.Messages()
}

func (c *client) Member(teamID, userID string) (*guilded.Member, bool) {
	return c.cache.Member(teamID, userID)
}

// FetchUser fetches a user from the API, bypassing the cache. The fetched
// user replaces any cached entry.
func (c *client) FetchUser(ctx context.Context, id string) (*guilded.User, error) {
	data, err := c.api.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := guilded.UnmarshalUser(data, c.api)
	if err != nil {
		return nil, err
	}

	c.cache.PutUser(user)

	return user, nil
}

// UserOrFetch returns the cached user with the given ID, fetching it from
// the API on a cache miss.
func (c *client) UserOrFetch(ctx context.Context, id string) (*guilded.User, error) {
	if user, ok := c.cache.User(id); ok {
		return user, nil
	}

	return c.FetchUser(ctx, id)
}
