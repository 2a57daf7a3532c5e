package guilded

import (
	"fmt"
	"time"
)

// Team is a community the bot is a member of.
type Team struct {
	ID          string
	Name        string
	Subdomain   string
	Description string
	OwnerID     string
	CreatedAt   *time.Time

	api API
}

func (t *Team) String() string {
	return t.Name
}

// VanityURL returns the team's vanity URL, or an empty string if the team
// has no subdomain.
func (t *Team) VanityURL() string {
	if t.Subdomain == "" {
		return ""
	}

	return fmt.Sprintf("https://guilded.gg/%s", t.Subdomain)
}
