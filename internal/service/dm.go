package service

import (
	"sort"
	"strings"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// DMs is the direct-message directory. DMs have no public/private
// switch (they are private to their member set), carry a derived name,
// and only their creator may remove them.
type DMs struct {
	base
}

// DMCreated is the wire shape of dm/create.
type DMCreated struct {
	DMID   int64  `json:"dm_id"`
	DMName string `json:"dm_name"`
}

// DMDetails is the wire shape of dm/details.
type DMDetails struct {
	Name    string           `json:"name"`
	Members []models.Profile `json:"members"`
}

// Create starts a DM with the caller plus the invited users. The name
// is the alphabetically sorted, comma-joined handles of all members.
func (s *DMs) Create(token string, uids []int64) (DMCreated, error) {
	var out DMCreated
	err := s.store.Update(func(st *store.State) error {
		members := make([]int64, 0, len(uids)+1)
		handles := make([]string, 0, len(uids)+1)
		for _, uid := range uids {
			u := st.FindUser(uid)
			if u == nil {
				return apperr.Input("u_id does not refer to a valid user")
			}
			members = append(members, uid)
			handles = append(handles, u.Handle)
		}

		creator, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		members = append(members, creator.ID)
		handles = append(handles, creator.Handle)
		sort.Strings(handles)

		dm := &models.DM{
			ID:        st.NextDMID(),
			Name:      strings.Join(handles, ", "),
			CreatorID: creator.ID,
			Members:   members,
			Messages:  []*models.Message{},
		}
		st.DMs = append(st.DMs, dm)

		now := nowUnix()
		for _, uid := range uids {
			if target := st.FindUser(uid); target != nil {
				notifyDMAdd(target, creator.Handle, dm)
			}
		}
		for _, uid := range dm.Members {
			if member := st.FindUser(uid); member != nil {
				recordDMsJoined(member, 1, now)
			}
		}
		recordDMsExist(st, 1, now)
		refreshDerived(st)

		out = DMCreated{DMID: dm.ID, DMName: dm.Name}
		return nil
	})
	return out, err
}

// Invite adds a user to an existing DM. Already-member targets are a
// successful no-op.
func (s *DMs) Invite(token string, dmID, uid int64) error {
	return s.store.Update(func(st *store.State) error {
		dm := st.FindDM(dmID)
		if dm == nil {
			return apperr.Input("dm_id does not refer to a valid DM")
		}
		target := st.FindUser(uid)
		if target == nil {
			return apperr.Input("u_id does not refer to a valid user")
		}
		actor, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !dm.IsMember(actor.ID) {
			return apperr.Access("authorised user is not a member of the DM")
		}
		if dm.IsMember(uid) {
			return nil
		}

		dm.Members = append(dm.Members, uid)
		notifyDMAdd(target, actor.Handle, dm)
		recordDMsJoined(target, 1, nowUnix())
		refreshDerived(st)
		return nil
	})
}

// Details returns the DM's name and member roster.
func (s *DMs) Details(token string, dmID int64) (DMDetails, error) {
	var out DMDetails
	err := s.store.View(func(st *store.State) error {
		dm := st.FindDM(dmID)
		if dm == nil {
			return apperr.Input("dm_id does not refer to a valid DM")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !dm.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the DM")
		}
		out = DMDetails{Name: dm.Name, Members: profilesOf(st, dm.Members)}
		return nil
	})
	return out, err
}

// List returns the DMs the caller belongs to.
func (s *DMs) List(token string) ([]models.DMSummary, error) {
	var out []models.DMSummary
	err := s.store.View(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		out = make([]models.DMSummary, 0)
		for _, dm := range st.DMs {
			if dm.IsMember(u.ID) {
				out = append(out, models.DMSummary{DMID: dm.ID, Name: dm.Name})
			}
		}
		return nil
	})
	return out, err
}

// Remove deletes a DM and its messages. Creator-only.
func (s *DMs) Remove(token string, dmID int64) error {
	return s.store.Update(func(st *store.State) error {
		dm := st.FindDM(dmID)
		if dm == nil {
			return apperr.Input("dm_id does not refer to a valid DM")
		}
		actor, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if actor.ID != dm.CreatorID {
			return apperr.Access("only the original creator can remove the DM")
		}

		now := nowUnix()
		messageCount := len(dm.Messages)
		members := append([]int64(nil), dm.Members...)
		st.DropDM(dm)
		for _, uid := range members {
			if member := st.FindUser(uid); member != nil {
				recordDMsJoined(member, -1, now)
			}
		}
		if messageCount > 0 {
			recordMessagesExist(st, -messageCount, now)
		}
		recordDMsExist(st, -1, now)
		refreshDerived(st)
		return nil
	})
}

// Leave removes the caller from the member list. Messages remain, and
// the DM keeps existing even when the last member walks out.
func (s *DMs) Leave(token string, dmID int64) error {
	return s.store.Update(func(st *store.State) error {
		dm := st.FindDM(dmID)
		if dm == nil {
			return apperr.Input("dm_id does not refer to a valid DM")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !dm.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the DM")
		}

		removeID(&dm.Members, u.ID)
		recordDMsJoined(u, -1, nowUnix())
		refreshDerived(st)
		return nil
	})
}

// Messages returns one page of the DM's messages, same rules as the
// channel view.
func (s *DMs) Messages(token string, dmID int64, start int) (MessagesPage, error) {
	var out MessagesPage
	err := s.store.View(func(st *store.State) error {
		dm := st.FindDM(dmID)
		if dm == nil {
			return apperr.Input("dm_id does not refer to a valid DM")
		}
		if start < 0 {
			return apperr.Input("start must not be negative")
		}
		if start > len(dm.Messages) {
			return apperr.Input("start is greater than the total number of messages")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !dm.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the DM")
		}
		out = pageMessages(dm.Messages, start, u.ID)
		return nil
	})
	return out, err
}
