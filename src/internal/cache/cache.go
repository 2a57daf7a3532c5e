package cache

import (
	"sync"

	"github.com/julien777z/guilded-go/src/guilded"
)

// Store is an in-memory cache of the entities observed on the gateway and
// the API.
//
// Every put is last-write-wins for its ID. Messages are additionally bound
// by a capacity: when the bound is reached the message that was inserted
// first is evicted. Re-putting a cached message updates it in place without
// disturbing its insertion slot.
type Store struct {
	mutex sync.RWMutex

	maxMessages int
	users       map[string]*guilded.User
	teams       map[string]*guilded.Team
	channels    map[string]*guilded.Channel
	members     map[memberKey]*guilded.Member
	messages    map[string]*guilded.Message
	order       []string
}

type memberKey struct {
	teamID string
	userID string
}

// NewStore returns a store that retains at most maxMessages messages. A
// maxMessages of zero disables message caching.
func NewStore(maxMessages int) *Store {
	return &Store{
		maxMessages: maxMessages,
		users:       map[string]*guilded.User{},
		teams:       map[string]*guilded.Team{},
		channels:    map[string]*guilded.Channel{},
		members:     map[memberKey]*guilded.Member{},
		messages:    map[string]*guilded.Message{},
	}
}

// User returns the cached user with the given ID.
func (s *Store) User(id string) (*guilded.User, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

// Users returns all cached users.
func (s *Store) Users() []*guilded.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	users := make([]*guilded.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}

	return users
}

// PutUser adds or replaces a user.
func (s *Store) PutUser(u *guilded.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.users[u.ID] = u
}

// DeleteUser removes the user with the given ID.
func (s *Store) DeleteUser(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.users, id)
}

// Team returns the cached team with the given ID.
func (s *Store) Team(id string) (*guilded.Team, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	t, ok := s.teams[id]
	return t, ok
}

// Teams returns all cached teams.
func (s *Store) Teams() []*guilded.Team {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	teams := make([]*guilded.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, t)
	}

	return teams
}

// PutTeam adds or replaces a team.
func (s *Store) PutTeam(t *guilded.Team) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.teams[t.ID] = t
}

// DeleteTeam removes the team with the given ID, along with its cached
// members.
func (s *Store) DeleteTeam(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.teams, id)

	for k := range s.members {
		if k.teamID == id {
			delete(s.members, k)
		}
	}
}

// Channel returns the cached channel with the given ID.
func (s *Store) Channel(id string) (*guilded.Channel, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	c, ok := s.channels[id]
	return c, ok
}

// Channels returns all cached channels.
func (s *Store) Channels() []*guilded.Channel {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	channels := make([]*guilded.Channel, 0, len(s.channels))
	for _, c := range s.channels {
		channels = append(channels, c)
	}

	return channels
}

// PutChannel adds or replaces a channel.
func (s *Store) PutChannel(c *guilded.Channel) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.channels[c.ID] = c
}

// DeleteChannel removes the channel with the given ID.
func (s *Store) DeleteChannel(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.channels, id)
}

// Member returns the cached member of a team with the given user ID.
func (s *Store) Member(teamID, userID string) (*guilded.Member, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	m, ok := s.members[memberKey{teamID, userID}]
	return m, ok
}

// PutMember adds or replaces a team member.
func (s *Store) PutMember(m *guilded.Member) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.members[memberKey{m.TeamID, m.User.ID}] = m
}

// DeleteMember removes a team member.
func (s *Store) DeleteMember(teamID, userID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.members, memberKey{teamID, userID})
}

// Message returns the cached message with the given ID.
func (s *Store) Message(id string) (*guilded.Message, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	m, ok := s.messages[id]
	return m, ok
}

// Messages returns all cached messages, oldest first.
func (s *Store) Messages() []*guilded.Message {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	messages := make([]*guilded.Message, 0, len(s.order))
	for _, id := range s.order {
		messages = append(messages, s.messages[id])
	}

	return messages
}

// PutMessage adds or replaces a message, evicting the oldest message if the
// capacity has been reached. It is a no-op when message caching is
// disabled.
func (s *Store) PutMessage(m *guilded.Message) {
	if s.maxMessages == 0 {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.messages[m.ID]; ok {
		s.messages[m.ID] = m
		return
	}

	if len(s.order) == s.maxMessages {
		delete(s.messages, s.order[0])
		s.order = s.order[1:]
	}

	s.messages[m.ID] = m
	s.order = append(s.order, m.ID)
}

// DeleteMessage removes the message with the given ID.
func (s *Store) DeleteMessage(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.messages[id]; !ok {
		return
	}

	delete(s.messages, id)

	for i, mid := range s.order {
		if mid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Reset drops every cached entity.
func (s *Store) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.users = map[string]*guilded.User{}
	s.teams = map[string]*guilded.Team{}
	s.channels = map[string]*guilded.Channel{}
	s.members = map[memberKey]*guilded.Member{}
	s.messages = map[string]*guilded.Message{}
	s.order = nil
}
