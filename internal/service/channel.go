package service

import (
	"unicode/utf8"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Channels is the channel directory: creation, membership, ownership,
// details, listings, and the message page view.
type Channels struct {
	base
}

// ChannelDetails is the wire shape of channel/details.
type ChannelDetails struct {
	Name         string           `json:"name"`
	IsPublic     bool             `json:"is_public"`
	OwnerMembers []models.Profile `json:"owner_members"`
	AllMembers   []models.Profile `json:"all_members"`
}

// MessagesPage is one page of the reverse-chronological message view.
// End is start+50 while more pages remain, -1 on the final page.
type MessagesPage struct {
	Messages []models.MessageView `json:"messages"`
	Start    int                  `json:"start"`
	End      int                  `json:"end"`
}

// Create makes a new channel with the caller as sole owner and member.
func (s *Channels) Create(token, name string, isPublic bool) (int64, error) {
	var cid int64
	err := s.store.Update(func(st *store.State) error {
		if utf8.RuneCountInString(name) > 20 {
			return apperr.Input("channel name must be 20 characters or less")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}

		now := nowUnix()
		ch := &models.Channel{
			ID:       st.NextCID(),
			Name:     name,
			IsPublic: isPublic,
			Owners:   []int64{u.ID},
			Members:  []int64{u.ID},
			Messages: []*models.Message{},
		}
		st.Channels = append(st.Channels, ch)

		recordChannelsJoined(u, 1, now)
		recordChannelsExist(st, 1, now)
		refreshDerived(st)

		cid = ch.ID
		return nil
	})
	return cid, err
}

// Invite adds a user to a channel. Inviting an existing member is a
// successful no-op; a fresh member gets an "added you" notification.
func (s *Channels) Invite(token string, channelID, uid int64) error {
	return s.store.Update(func(st *store.State) error {
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		target := st.FindUser(uid)
		if target == nil {
			return apperr.Input("u_id does not refer to a valid user")
		}
		actor, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !ch.IsMember(actor.ID) {
			return apperr.Access("authorised user is not a member of the channel")
		}
		if ch.IsMember(uid) {
			return nil
		}

		ch.Members = append(ch.Members, uid)
		notifyChannelAdd(target, actor.Handle, ch)
		recordChannelsJoined(target, 1, nowUnix())
		refreshDerived(st)
		return nil
	})
}

// Join adds the caller to a channel. Private channels admit only the
// global owner; joining twice is idempotent.
func (s *Channels) Join(token string, channelID int64) error {
	return s.store.Update(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if !ch.IsPublic && !isGlobalOwner(st, u.ID) {
			return apperr.Access("channel is private")
		}
		if ch.IsMember(u.ID) {
			return nil
		}

		ch.Members = append(ch.Members, u.ID)
		recordChannelsJoined(u, 1, nowUnix())
		refreshDerived(st)
		return nil
	})
}

// AddOwner promotes a member to channel owner, adding them as a member
// first if needed.
func (s *Channels) AddOwner(token string, channelID, uid int64) error {
	return s.store.Update(func(st *store.State) error {
		actor, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if !canModerateChannel(st, ch, actor.ID) {
			return apperr.Access("authorised user is not an owner of the channel")
		}
		if ch.IsOwner(uid) {
			return apperr.Input("user is already an owner of the channel")
		}

		ch.Owners = append(ch.Owners, uid)
		if !ch.IsMember(uid) {
			target := st.FindUser(uid)
			if target == nil {
				return apperr.Input("u_id does not refer to a valid user")
			}
			ch.Members = append(ch.Members, uid)
			refreshDerived(st)
		}
		return nil
	})
}

// RemoveOwner demotes a channel owner. The last remaining owner can
// never be removed.
func (s *Channels) RemoveOwner(token string, channelID, uid int64) error {
	return s.store.Update(func(st *store.State) error {
		actor, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if !canModerateChannel(st, ch, actor.ID) {
			return apperr.Access("authorised user is not an owner of the channel")
		}
		if !ch.IsOwner(uid) {
			return apperr.Input("user is not an owner of the channel")
		}
		if len(ch.Owners) == 1 {
			return apperr.Input("cannot remove the only owner of the channel")
		}

		for i, id := range ch.Owners {
			if id == uid {
				ch.Owners = append(ch.Owners[:i], ch.Owners[i+1:]...)
				break
			}
		}
		return nil
	})
}

// Leave removes the caller from the member and owner lists. Their
// messages remain. Rejected while a standup is running.
func (s *Channels) Leave(token string, channelID int64) error {
	return s.store.Update(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if ch.Standup.IsActive {
			return apperr.Access("cannot leave the channel during a standup")
		}
		if !ch.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the channel")
		}

		removeID(&ch.Members, u.ID)
		removeID(&ch.Owners, u.ID)
		recordChannelsJoined(u, -1, nowUnix())
		refreshDerived(st)
		return nil
	})
}

// Details returns the channel's name, visibility, and member rosters.
func (s *Channels) Details(token string, channelID int64) (ChannelDetails, error) {
	var out ChannelDetails
	err := s.store.View(func(st *store.State) error {
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !ch.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the channel")
		}

		out = ChannelDetails{
			Name:         ch.Name,
			IsPublic:     ch.IsPublic,
			OwnerMembers: profilesOf(st, ch.Owners),
			AllMembers:   profilesOf(st, ch.Members),
		}
		return nil
	})
	return out, err
}

// List returns the channels the caller belongs to.
func (s *Channels) List(token string) ([]models.ChannelSummary, error) {
	var out []models.ChannelSummary
	err := s.store.View(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		out = make([]models.ChannelSummary, 0)
		for _, ch := range st.Channels {
			if ch.IsMember(u.ID) {
				out = append(out, models.ChannelSummary{ChannelID: ch.ID, Name: ch.Name})
			}
		}
		return nil
	})
	return out, err
}

// ListAll returns every channel, public or private.
func (s *Channels) ListAll(token string) ([]models.ChannelSummary, error) {
	var out []models.ChannelSummary
	err := s.store.View(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		out = make([]models.ChannelSummary, 0, len(st.Channels))
		for _, ch := range st.Channels {
			out = append(out, models.ChannelSummary{ChannelID: ch.ID, Name: ch.Name})
		}
		return nil
	})
	return out, err
}

// Messages returns one page of up to 50 messages, newest first, from
// offset start.
func (s *Channels) Messages(token string, channelID int64, start int) (MessagesPage, error) {
	var out MessagesPage
	err := s.store.View(func(st *store.State) error {
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if start < 0 {
			return apperr.Input("start must not be negative")
		}
		if start > len(ch.Messages) {
			return apperr.Input("start is greater than the total number of messages")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !ch.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the channel")
		}
		out = pageMessages(ch.Messages, start, u.ID)
		return nil
	})
	return out, err
}

// pageMessages walks backwards from the newest message. Shared by the
// channel and DM views; both follow the same offset and end rules.
func pageMessages(msgs []*models.Message, start int, requester int64) MessagesPage {
	total := len(msgs)
	page := MessagesPage{
		Messages: make([]models.MessageView, 0, 50),
		Start:    start,
		End:      start,
	}
	for i := 1; i <= 50; i++ {
		if start+i > total {
			page.End = -1
			break
		}
		page.End++
		page.Messages = append(page.Messages, msgs[total-start-i].View(requester))
	}
	return page
}

func profilesOf(st *store.State, ids []int64) []models.Profile {
	out := make([]models.Profile, 0, len(ids))
	for _, id := range ids {
		if u := st.FindUser(id); u != nil {
			out = append(out, u.Profile())
		}
	}
	return out
}

func removeID(ids *[]int64, id int64) {
	for i, v := range *ids {
		if v == id {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return
		}
	}
}
