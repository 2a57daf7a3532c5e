package guilded

import (
	"errors"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Entity payloads arrive as loosely-structured JSON objects with camelCase
// keys, sometimes nested one level deep (a message event wraps the message
// under a "message" key, a member payload wraps the user under a "user"
// key). The functions in this file are the decode boundary: they accept a
// payload map, validate the identity field, and return a typed entity with
// every optional field represented as a pointer. Unknown keys are ignored.

func decode(data map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return dec.Decode(data)
}

type userData struct {
	ID        string `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	Subdomain string `mapstructure:"subdomain"`
	AboutInfo struct {
		Bio     string `mapstructure:"bio"`
		TagLine string `mapstructure:"tagLine"`
	} `mapstructure:"aboutInfo"`
	ProfilePicture *string    `mapstructure:"profilePicture"`
	ProfileBanner  *string    `mapstructure:"profileBanner"`
	CreatedAt      *time.Time `mapstructure:"createdAt"`
	JoinDate       *time.Time `mapstructure:"joinDate"`
}

// UnmarshalUser decodes a user payload. The payload may be the user object
// itself or a wrapper with the user nested under a "user" key.
func UnmarshalUser(data map[string]interface{}, api API) (*User, error) {
	if nested, ok := data["user"].(map[string]interface{}); ok {
		data = nested
	}

	var d userData
	if err := decode(data, &d); err != nil {
		return nil, err
	}

	if d.ID == "" {
		return nil, errors.New("user payload has no id")
	}

	created := d.CreatedAt
	if created == nil {
		created = d.JoinDate
	}

	return &User{
		ID:        d.ID,
		Name:      d.Name,
		Subdomain: d.Subdomain,
		Bio:       d.AboutInfo.Bio,
		Tagline:   d.AboutInfo.TagLine,
		Avatar:    d.ProfilePicture,
		Banner:    d.ProfileBanner,
		CreatedAt: created,

		api: api,
	}, nil
}

type memberData struct {
	TeamID   string     `mapstructure:"teamId"`
	ServerID string     `mapstructure:"serverId"`
	Nickname *string    `mapstructure:"nickname"`
	TeamXP   *int       `mapstructure:"teamXp"`
	JoinDate *time.Time `mapstructure:"joinDate"`
	Colour   *int       `mapstructure:"colour"`
	Color    *int       `mapstructure:"color"`
}

// UnmarshalMember decodes a team-member payload: the user (possibly nested
// under a "user" key) plus the member's team-scoped fields.
func UnmarshalMember(data map[string]interface{}, api API) (*Member, error) {
	user, err := UnmarshalUser(data, api)
	if err != nil {
		return nil, err
	}

	var d memberData
	if err := decode(data, &d); err != nil {
		return nil, err
	}

	teamID := d.TeamID
	if teamID == "" {
		teamID = d.ServerID
	}

	colour := d.Colour
	if colour == nil {
		colour = d.Color
	}

	return &Member{
		User: *user,

		TeamID:   teamID,
		Nickname: d.Nickname,
		XP:       d.TeamXP,
		JoinedAt: d.JoinDate,
		Colour:   colour,
	}, nil
}

type teamData struct {
	ID          string     `mapstructure:"id"`
	Name        string     `mapstructure:"name"`
	Subdomain   string     `mapstructure:"subdomain"`
	Description string     `mapstructure:"description"`
	OwnerID     string     `mapstructure:"ownerId"`
	CreatedAt   *time.Time `mapstructure:"createdAt"`
}

// UnmarshalTeam decodes a team payload.
func UnmarshalTeam(data map[string]interface{}, api API) (*Team, error) {
	if nested, ok := data["team"].(map[string]interface{}); ok {
		data = nested
	}

	var d teamData
	if err := decode(data, &d); err != nil {
		return nil, err
	}

	if d.ID == "" {
		return nil, errors.New("team payload has no id")
	}

	return &Team{
		ID:          d.ID,
		Name:        d.Name,
		Subdomain:   d.Subdomain,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,

		api: api,
	}, nil
}

type channelData struct {
	ID              string     `mapstructure:"id"`
	Type            string     `mapstructure:"type"`
	TeamID          *string    `mapstructure:"teamId"`
	GroupID         *string    `mapstructure:"groupId"`
	ParentChannelID *string    `mapstructure:"parentChannelId"`
	Name            string     `mapstructure:"name"`
	Description     string     `mapstructure:"description"`
	IsPublic        bool       `mapstructure:"isPublic"`
	CreatedAt       *time.Time `mapstructure:"createdAt"`
	UpdatedAt       *time.Time `mapstructure:"updatedAt"`
}

// UnmarshalChannel decodes a channel payload. The payload may be the
// channel object itself or a wrapper with the channel nested under a
// "channel" key.
func UnmarshalChannel(data map[string]interface{}, api API) (*Channel, error) {
	if nested, ok := data["channel"].(map[string]interface{}); ok {
		data = nested
	}

	var d channelData
	if err := decode(data, &d); err != nil {
		return nil, err
	}

	if d.ID == "" {
		return nil, errors.New("channel payload has no id")
	}

	typ := d.Type
	if typ == "" {
		typ = ChannelTypeTeam
	}

	return &Channel{
		ID:          d.ID,
		Type:        typ,
		TeamID:      d.TeamID,
		GroupID:     d.GroupID,
		ParentID:    d.ParentChannelID,
		Name:        d.Name,
		Description: d.Description,
		Public:      d.IsPublic,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,

		api: api,
	}, nil
}

type messageData struct {
	ID                 string     `mapstructure:"id"`
	ChannelID          string     `mapstructure:"channelId"`
	TeamID             *string    `mapstructure:"teamId"`
	CreatedBy          string     `mapstructure:"createdBy"`
	CreatedByWebhookID *string    `mapstructure:"createdByWebhookId"`
	CreatedByBotID     *string    `mapstructure:"createdByBotId"`
	Content            string     `mapstructure:"content"`
	CreatedAt          *time.Time `mapstructure:"createdAt"`
	UpdatedAt          *time.Time `mapstructure:"updatedAt"`
	DeletedAt          *time.Time `mapstructure:"deletedAt"`
}

// UnmarshalMessage decodes a message payload. The payload may be the
// message object itself or an event payload with the message nested under a
// "message" key; some event payloads carry the creation timestamp on the
// outer object.
func UnmarshalMessage(data map[string]interface{}, api API) (*Message, error) {
	message := data
	wrapped := false
	if nested, ok := data["message"].(map[string]interface{}); ok {
		message = nested
		wrapped = true
	}

	var d messageData
	if err := decode(message, &d); err != nil {
		return nil, err
	}

	if d.ID == "" {
		return nil, errors.New("message payload has no id")
	}

	created := d.CreatedAt
	if created == nil && wrapped {
		var outer struct {
			CreatedAt *time.Time `mapstructure:"createdAt"`
		}
		if err := decode(data, &outer); err == nil {
			created = outer.CreatedAt
		}
	}

	authorID := d.CreatedBy
	if d.CreatedByWebhookID != nil {
		authorID = *d.CreatedByWebhookID
	} else if d.CreatedByBotID != nil {
		authorID = *d.CreatedByBotID
	}

	return &Message{
		ID:        d.ID,
		ChannelID: d.ChannelID,
		TeamID:    d.TeamID,
		AuthorID:  authorID,
		WebhookID: d.CreatedByWebhookID,
		BotID:     d.CreatedByBotID,
		Content:   d.Content,
		CreatedAt: created,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,

		api: api,
	}, nil
}

type banData struct {
	Reason    string     `mapstructure:"reason"`
	CreatedBy string     `mapstructure:"createdBy"`
	CreatedAt *time.Time `mapstructure:"createdAt"`
}

// UnmarshalBan decodes a team-member ban payload.
func UnmarshalBan(data map[string]interface{}, teamID string, api API) (*MemberBan, error) {
	user, err := UnmarshalUser(data, api)
	if err != nil {
		return nil, err
	}

	var d banData
	if err := decode(data, &d); err != nil {
		return nil, err
	}

	return &MemberBan{
		TeamID:    teamID,
		User:      *user,
		Reason:    d.Reason,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
	}, nil
}

type emoteData struct {
	ID   int    `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// UnmarshalEmote decodes a reaction emote payload.
func UnmarshalEmote(data map[string]interface{}) (*Emote, error) {
	var d emoteData
	if err := decode(data, &d); err != nil {
		return nil, err
	}

	return &Emote{ID: d.ID, Name: d.Name}, nil
}
