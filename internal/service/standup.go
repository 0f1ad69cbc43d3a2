package service

import (
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Standups runs the per-channel batching window: start opens it for a
// duration, send buffers lines, and the expiry timer flushes the buffer
// as one message authored by the starter. Membership changes on the
// channel are rejected while the window is open.
type Standups struct {
	base
}

// StandupStatus is the wire shape of standup/active. TimeFinish is 0
// when no standup is running.
type StandupStatus struct {
	IsActive   bool  `json:"is_active"`
	TimeFinish int64 `json:"time_finish"`
}

// Start opens a standup window for length seconds and returns the
// finish timestamp.
func (s *Standups) Start(token string, channelID, length int64) (int64, error) {
	var finish int64
	err := s.store.Update(func(st *store.State) error {
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if ch.Standup.IsActive {
			return apperr.Input("an active standup is already running in the channel")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !ch.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the channel")
		}

		finish = nowUnix() + length
		ch.Standup = models.Standup{IsActive: true, TimeFinish: finish}
		s.flushLater(channelID, u.ID, length)
		return nil
	})
	return finish, err
}

// Active reports whether a standup is running and when it finishes.
func (s *Standups) Active(token string, channelID int64) (StandupStatus, error) {
	var out StandupStatus
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
		out = StandupStatus{IsActive: ch.Standup.IsActive, TimeFinish: ch.Standup.TimeFinish}
		return nil
	})
	return out, err
}

// Send buffers one line into the running standup.
func (s *Standups) Send(token string, channelID int64, line string) error {
	return s.store.Update(func(st *store.State) error {
		ch := st.FindChannel(channelID)
		if ch == nil {
			return apperr.Input("channel_id does not refer to a valid channel")
		}
		if utf8.RuneCountInString(line) > maxMessageLen {
			return apperr.Input("message must be 1000 characters or less")
		}
		if !ch.Standup.IsActive {
			return apperr.Input("no active standup is running in the channel")
		}
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !ch.IsMember(u.ID) {
			return apperr.Access("authorised user is not a member of the channel")
		}

		ch.Standup.Buffer += fmt.Sprintf("%s: %s\n", u.Handle, line)
		return nil
	})
}

func (s *Standups) flushLater(channelID, starterID, length int64) {
	time.AfterFunc(time.Duration(length)*time.Second, func() {
		err := s.store.Update(func(st *store.State) error {
			ch := st.FindChannel(channelID)
			if ch == nil || !ch.Standup.IsActive {
				return nil
			}

			now := nowUnix()
			m := models.NewMessage(st.NextMID(), starterID, ch.Standup.Buffer, now)
			st.AppendMessage(store.Container{Channel: ch}, m)
			ch.Standup = models.Standup{}

			if u := st.FindUser(starterID); u != nil {
				recordMessagesSent(u, now)
			}
			recordMessagesExist(st, 1, now)
			refreshDerived(st)
			return nil
		})
		if err != nil {
			s.log.Error("flush standup", zap.Int64("channel_id", channelID), zap.Error(err))
		}
	})
}
