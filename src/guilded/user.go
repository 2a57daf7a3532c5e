package guilded

import (
	"context"
	"fmt"
	"time"
)

// User is a platform user.
//
// The ID is the user's immutable identity; every other field reflects the
// last state reported by the server. Two users are the same entity if and
// only if their IDs are equal.
type User struct {
	ID        string
	Name      string
	Subdomain string
	Bio       string
	Tagline   string
	Avatar    *string
	Banner    *string
	CreatedAt *time.Time
	Bot       bool

	api API
}

func (u *User) String() string {
	return fmt.Sprintf("%s#%s", u.Name, u.ID)
}

// Mention returns the chat markup that mentions this user.
func (u *User) Mention() string {
	return fmt.Sprintf("<@%s>", u.ID)
}

// ProfileURL returns the URL of this user's profile page.
func (u *User) ProfileURL() string {
	return fmt.Sprintf("https://guilded.gg/profile/%s", u.ID)
}

// VanityURL returns the user's vanity URL, or an empty string if the user
// has no subdomain.
func (u *User) VanityURL() string {
	if u.Subdomain == "" {
		return ""
	}

	return fmt.Sprintf("https://guilded.gg/%s", u.Subdomain)
}

// Send sends a direct message to this user. The DM channel is created (or
// reused) on demand.
func (u *User) Send(ctx context.Context, content string) (*Message, error) {
	dm, err := u.api.CreateDM(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	channel, err := UnmarshalChannel(dm, u.api)
	if err != nil {
		return nil, err
	}

	return sendToChannel(ctx, u.api, channel.ID, content)
}

// ClientUser is the user the client is logged in as.
type ClientUser struct {
	User
}

// Member is a user's membership of a team: the user plus the team-scoped
// state attached to them.
type Member struct {
	User

	TeamID   string
	Nickname *string
	XP       *int
	JoinedAt *time.Time
	Colour   *int
}

// DisplayName returns the member's nickname if they have one, and their
// user name otherwise.
func (m *Member) DisplayName() string {
	if m.Nickname != nil && *m.Nickname != "" {
		return *m.Nickname
	}

	return m.Name
}

// SetNickname changes this member's nickname on the server and updates the
// local entity on success.
func (m *Member) SetNickname(ctx context.Context, nickname string) error {
	if err := m.api.SetMemberNickname(ctx, m.TeamID, m.ID, nickname); err != nil {
		return err
	}

	m.Nickname = &nickname
	return nil
}

// ResetNickname removes this member's nickname on the server and updates
// the local entity on success.
func (m *Member) ResetNickname(ctx context.Context) error {
	if err := m.api.ResetMemberNickname(ctx, m.TeamID, m.ID); err != nil {
		return err
	}

	m.Nickname = nil
	return nil
}

// SetXP sets this member's XP on the server and updates the local entity on
// success. XP may be negative.
func (m *Member) SetXP(ctx context.Context, xp int) error {
	if err := m.api.SetMemberXP(ctx, m.TeamID, m.ID, xp); err != nil {
		return err
	}

	m.XP = &xp
	return nil
}

// MemberBan is a ban entry on a team.
type MemberBan struct {
	TeamID    string
	User      User
	Reason    string
	CreatedBy string
	CreatedAt *time.Time
}
