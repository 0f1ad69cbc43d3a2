package store

import (
	"github.com/lalith-99/dreams/internal/models"
)

// State is the whole object graph: every entity table, the id counters,
// the active-session set, and the workspace statistics. There is exactly
// one State per Store, and all access happens inside Update/View.
type State struct {
	UIDRoot  int64 `json:"uid_root"`
	CIDRoot  int64 `json:"cid_root"`
	DMIDRoot int64 `json:"dmid_root"`
	MIDRoot  int64 `json:"mid_root"`

	Users        []*models.User    `json:"users"`
	RemovedUsers []*models.User    `json:"removed_users"`
	Channels     []*models.Channel `json:"channels"`
	DMs          []*models.DM      `json:"direct_messages"`
	Sessions     []string          `json:"sessions"`

	Stats models.WorkspaceStats `json:"workspace_stats"`

	// message id → containing channel/DM. Not serialized; rebuilt after
	// every snapshot load and maintained by AppendMessage/DeleteMessage.
	msgIndex map[int64]Container
}

// Container is a channel or a DM, wherever messaging logic applies
// identically to both. Exactly one side is non-nil.
type Container struct {
	Channel *models.Channel
	DM      *models.DM
}

func (c Container) IsChannel() bool { return c.Channel != nil }

func (c Container) Name() string {
	if c.Channel != nil {
		return c.Channel.Name
	}
	return c.DM.Name
}

func (c Container) IsMember(uid int64) bool {
	if c.Channel != nil {
		return c.Channel.IsMember(uid)
	}
	return c.DM.IsMember(uid)
}

func NewState(now int64) *State {
	return &State{
		Users:        []*models.User{},
		RemovedUsers: []*models.User{},
		Channels:     []*models.Channel{},
		DMs:          []*models.DM{},
		Sessions:     []string{},
		Stats:        models.NewWorkspaceStats(now),
		msgIndex:     map[int64]Container{},
	}
}

// Id generators. Ids are monotonic and never reused, even after the
// entity they named is gone.

func (s *State) NextUID() int64 {
	s.UIDRoot++
	return s.UIDRoot
}

func (s *State) NextCID() int64 {
	s.CIDRoot++
	return s.CIDRoot
}

func (s *State) NextDMID() int64 {
	s.DMIDRoot++
	return s.DMIDRoot
}

func (s *State) NextMID() int64 {
	s.MIDRoot++
	return s.MIDRoot
}

// FindUser returns the active user with the given id, or nil.
func (s *State) FindUser(uid int64) *models.User {
	for _, u := range s.Users {
		if u.ID == uid {
			return u
		}
	}
	return nil
}

func (s *State) FindUserByEmail(email string) *models.User {
	for _, u := range s.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *State) FindUserByHandle(handle string) *models.User {
	for _, u := range s.Users {
		if u.Handle == handle {
			return u
		}
	}
	return nil
}

// FindRemovedUser resolves ids from the removed-users archive, so
// historical authorship still renders after admin removal.
func (s *State) FindRemovedUser(uid int64) *models.User {
	for _, u := range s.RemovedUsers {
		if u.ID == uid {
			return u
		}
	}
	return nil
}

func (s *State) FindChannel(cid int64) *models.Channel {
	for _, c := range s.Channels {
		if c.ID == cid {
			return c
		}
	}
	return nil
}

func (s *State) FindDM(dmID int64) *models.DM {
	for _, d := range s.DMs {
		if d.ID == dmID {
			return d
		}
	}
	return nil
}

// FindMessage resolves a message id to the message and its container
// through the index, replacing a scan over every channel and DM.
func (s *State) FindMessage(mid int64) (*models.Message, Container, bool) {
	cont, ok := s.msgIndex[mid]
	if !ok {
		return nil, Container{}, false
	}
	msgs := cont.messages()
	for _, m := range *msgs {
		if m.ID == mid {
			return m, cont, true
		}
	}
	return nil, Container{}, false
}

// AppendMessage adds a message to a container and indexes it.
func (s *State) AppendMessage(cont Container, m *models.Message) {
	msgs := cont.messages()
	*msgs = append(*msgs, m)
	s.msgIndex[m.ID] = cont
}

// DeleteMessage removes a message from its container. Reports whether
// the id resolved to a live message.
func (s *State) DeleteMessage(mid int64) bool {
	cont, ok := s.msgIndex[mid]
	if !ok {
		return false
	}
	msgs := cont.messages()
	for i, m := range *msgs {
		if m.ID == mid {
			*msgs = append((*msgs)[:i], (*msgs)[i+1:]...)
			delete(s.msgIndex, mid)
			return true
		}
	}
	return false
}

// DropDM removes a DM and unindexes its messages.
func (s *State) DropDM(dm *models.DM) {
	for _, m := range dm.Messages {
		delete(s.msgIndex, m.ID)
	}
	for i, d := range s.DMs {
		if d.ID == dm.ID {
			s.DMs = append(s.DMs[:i], s.DMs[i+1:]...)
			return
		}
	}
}

func (c Container) messages() *[]*models.Message {
	if c.Channel != nil {
		return &c.Channel.Messages
	}
	return &c.DM.Messages
}

// Session bookkeeping. A token not in this set is dead regardless of
// its signature.

func (s *State) HasSession(token string) bool {
	for _, t := range s.Sessions {
		if t == token {
			return true
		}
	}
	return false
}

func (s *State) AddSession(token string) {
	if !s.HasSession(token) {
		s.Sessions = append(s.Sessions, token)
	}
}

func (s *State) RemoveSession(token string) bool {
	for i, t := range s.Sessions {
		if t == token {
			s.Sessions = append(s.Sessions[:i], s.Sessions[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) rebuildIndex() {
	s.msgIndex = map[int64]Container{}
	for _, c := range s.Channels {
		for _, m := range c.Messages {
			s.msgIndex[m.ID] = Container{Channel: c}
		}
	}
	for _, d := range s.DMs {
		for _, m := range d.Messages {
			s.msgIndex[m.ID] = Container{DM: d}
		}
	}
}
