package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Messages is the messaging engine: send, edit, remove, share, delayed
// sends, and search, across channels and DMs alike.
type Messages struct {
	base
}

const maxMessageLen = 1000

// Send posts a message to a channel.
func (s *Messages) Send(token string, channelID int64, text string) (int64, error) {
	var mid int64
	err := s.store.Update(func(st *store.State) error {
		var err error
		mid, err = s.sendToChannel(st, token, channelID, text)
		return err
	})
	return mid, err
}

// SendDM posts a message to a DM.
func (s *Messages) SendDM(token string, dmID int64, text string) (int64, error) {
	var mid int64
	err := s.store.Update(func(st *store.State) error {
		var err error
		mid, err = s.sendToDM(st, token, dmID, text)
		return err
	})
	return mid, err
}

func (s *Messages) sendToChannel(st *store.State, token string, channelID int64, text string) (int64, error) {
	if utf8.RuneCountInString(text) > maxMessageLen {
		return 0, apperr.Input("message must be 1000 characters or less")
	}
	u, err := s.resolveToken(st, token)
	if err != nil {
		return 0, err
	}
	ch := st.FindChannel(channelID)
	if ch == nil {
		return 0, apperr.Input("channel_id does not refer to a valid channel")
	}
	if !ch.IsMember(u.ID) {
		return 0, apperr.Access("authorised user is not a member of the channel")
	}

	now := nowUnix()
	m := models.NewMessage(st.NextMID(), u.ID, text, now)
	st.AppendMessage(store.Container{Channel: ch}, m)

	for _, handle := range taggedHandles(text) {
		target := st.FindUserByHandle(handle)
		if target != nil && ch.IsMember(target.ID) {
			notifyChannelTag(target, u.Handle, ch, excerpt(text, 20))
		}
	}

	recordMessagesSent(u, now)
	recordMessagesExist(st, 1, now)
	refreshDerived(st)
	return m.ID, nil
}

func (s *Messages) sendToDM(st *store.State, token string, dmID int64, text string) (int64, error) {
	if utf8.RuneCountInString(text) > maxMessageLen {
		return 0, apperr.Input("message must be 1000 characters or less")
	}
	u, err := s.resolveToken(st, token)
	if err != nil {
		return 0, err
	}
	dm := st.FindDM(dmID)
	if dm == nil {
		return 0, apperr.Input("dm_id does not refer to a valid DM")
	}
	if !dm.IsMember(u.ID) {
		return 0, apperr.Access("authorised user is not a member of the DM")
	}

	now := nowUnix()
	m := models.NewMessage(st.NextMID(), u.ID, text, now)
	st.AppendMessage(store.Container{DM: dm}, m)

	for _, handle := range taggedHandles(text) {
		target := st.FindUserByHandle(handle)
		if target != nil && dm.IsMember(target.ID) {
			notifyDMTag(target, u.Handle, dm, excerpt(text, 20))
		}
	}

	recordMessagesSent(u, now)
	recordMessagesExist(st, 1, now)
	refreshDerived(st)
	return m.ID, nil
}

// Edit overwrites a message's content in place. An empty replacement
// deletes the message instead. New @mentions notify like a fresh send.
func (s *Messages) Edit(token string, messageID int64, text string) error {
	return s.store.Update(func(st *store.State) error {
		if utf8.RuneCountInString(text) > maxMessageLen {
			return apperr.Input("message must be 1000 characters or less")
		}
		if text == "" {
			return s.removeMessage(st, token, messageID)
		}

		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		m, cont, ok := st.FindMessage(messageID)
		if !ok {
			return apperr.Input("message_id does not refer to a valid message")
		}
		if !canTouchMessage(st, cont, m, u.ID) {
			return apperr.Access("authorised user cannot edit this message")
		}

		for _, handle := range taggedHandles(text) {
			target := st.FindUserByHandle(handle)
			if target == nil || !cont.IsMember(target.ID) {
				continue
			}
			if cont.IsChannel() {
				notifyChannelTag(target, u.Handle, cont.Channel, excerpt(text, 20))
			} else {
				notifyDMTag(target, u.Handle, cont.DM, excerpt(text, 20))
			}
		}

		m.Content = text
		return nil
	})
}

// Remove deletes a message. Author, channel owner (for channel
// messages), or the global owner.
func (s *Messages) Remove(token string, messageID int64) error {
	return s.store.Update(func(st *store.State) error {
		return s.removeMessage(st, token, messageID)
	})
}

func (s *Messages) removeMessage(st *store.State, token string, messageID int64) error {
	u, err := s.resolveToken(st, token)
	if err != nil {
		return err
	}
	m, cont, ok := st.FindMessage(messageID)
	if !ok {
		return apperr.Input("message_id does not refer to a valid message")
	}
	if !canTouchMessage(st, cont, m, u.ID) {
		return apperr.Access("authorised user cannot remove this message")
	}

	st.DeleteMessage(messageID)
	recordMessagesExist(st, -1, nowUnix())
	refreshDerived(st)
	return nil
}

// Share wraps the original message's current content in a quoted block
// under the optional extra text and sends the result to exactly one of
// channel/DM (the other passed as -1). Sharing a shared message nests
// the quoted block one tab deeper.
func (s *Messages) Share(token string, ogMessageID int64, text string, channelID, dmID int64) (int64, error) {
	var mid int64
	err := s.store.Update(func(st *store.State) error {
		if _, err := s.resolveToken(st, token); err != nil {
			return err
		}
		og, _, ok := st.FindMessage(ogMessageID)
		if !ok {
			return apperr.Input("og_message_id does not refer to a valid message")
		}

		composed := composeShared(og.Content, text)
		var err error
		switch {
		case channelID != -1:
			mid, err = s.sendToChannel(st, token, channelID, composed)
		case dmID != -1:
			mid, err = s.sendToDM(st, token, dmID, composed)
		default:
			err = apperr.Input("no channel or DM to share to")
		}
		return err
	})
	return mid, err
}

// composeShared quotes the original content beneath the extra text.
// Existing newlines in the original gain one tab, so nested shares
// indent one level per share.
func composeShared(original, extra string) string {
	quoted := strings.ReplaceAll(original, "\n", "\n\t")
	return extra + "\n\"\"\"\n" + quoted + "\n\"\"\""
}

// SendLater schedules a channel message. The id is assigned now; the
// message lands when the timer fires, in its own transaction.
func (s *Messages) SendLater(token string, channelID int64, text string, timeSent int64) (int64, error) {
	var mid int64
	err := s.store.Update(func(st *store.State) error {
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if utf8.RuneCountInString(text) > maxMessageLen {
			return apperr.Input("message must be 1000 characters or less")
		}
		if timeSent < nowUnix() {
			return apperr.Input("time_sent is in the past")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !ch.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the channel")
		}

		mid = st.NextMID()
		s.deliverLater(mid, u.ID, text, timeSent, channelID, -1)
		return nil
	})
	return mid, err
}

// SendLaterDM schedules a DM message.
func (s *Messages) SendLaterDM(token string, dmID int64, text string, timeSent int64) (int64, error) {
	var mid int64
	err := s.store.Update(func(st *store.State) error {
		dm := st.FindDM(dmID)
		if dm == nil {
			return apperr.Input("dm_id does not refer to a valid DM")
		}
		if utf8.RuneCountInString(text) > maxMessageLen {
			return apperr.Input("message must be 1000 characters or less")
		}
		if timeSent < nowUnix() {
			return apperr.Input("time_sent is in the past")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !dm.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the DM")
		}

		mid = st.NextMID()
		s.deliverLater(mid, u.ID, text, timeSent, -1, dmID)
		return nil
	})
	return mid, err
}

func (s *Messages) deliverLater(mid, authorID int64, text string, timeSent, channelID, dmID int64) {
	delay := time.Until(time.Unix(timeSent, 0))
	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, func() {
		err := s.store.Update(func(st *store.State) error {
			var cont store.Container
			if channelID != -1 {
				ch := st.FindChannel(channelID)
				if ch == nil {
					return nil
				}
				cont = store.Container{Channel: ch}
			} else {
				dm := st.FindDM(dmID)
				if dm == nil {
					return nil
				}
				cont = store.Container{DM: dm}
			}

			m := models.NewMessage(mid, authorID, text, timeSent)
			st.AppendMessage(cont, m)
			if u := st.FindUser(authorID); u != nil {
				recordMessagesSent(u, timeSent)
			}
			recordMessagesExist(st, 1, timeSent)
			refreshDerived(st)
			return nil
		})
		if err != nil {
			s.log.Error("deliver scheduled message", zap.Int64("message_id", mid), zap.Error(err))
		}
	})
}

// Search returns every message containing the query, from every channel
// and DM the caller belongs to.
func (s *Messages) Search(token, query string) ([]models.MessageView, error) {
	var out []models.MessageView
	err := s.store.View(func(st *store.State) error {
		if utf8.RuneCountInString(query) > maxMessageLen {
			return apperr.Input("query_str must be 1000 characters or less")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}

		out = make([]models.MessageView, 0)
		for _, ch := range st.Channels {
			if !ch.IsMember(u.ID) {
				continue
			}
			for _, m := range ch.Messages {
				if strings.Contains(m.Content, query) {
					out = append(out, m.View(u.ID))
				}
			}
		}
		for _, dm := range st.DMs {
			if !dm.IsMember(u.ID) {
				continue
			}
			for _, m := range dm.Messages {
				if strings.Contains(m.Content, query) {
					out = append(out, m.View(u.ID))
				}
			}
		}
		return nil
	})
	return out, err
}
