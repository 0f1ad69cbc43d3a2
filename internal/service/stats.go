package service

import (
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Statistics are appended-series counters plus two derived rates.
// Mutating operations append delta points to the affected series and
// then call refreshDerived; the rates are always recomputed from the
// live graph, never trusted incrementally.

func recordChannelsJoined(u *models.User, delta int, now int64) {
	u.Stats.ChannelsJoined = append(u.Stats.ChannelsJoined, models.ChannelsJoinedPoint{
		NumChannelsJoined: u.Stats.ChannelsJoinedNow() + delta,
		TimeStamp:         now,
	})
}

func recordDMsJoined(u *models.User, delta int, now int64) {
	u.Stats.DMsJoined = append(u.Stats.DMsJoined, models.DMsJoinedPoint{
		NumDMsJoined: u.Stats.DMsJoinedNow() + delta,
		TimeStamp:    now,
	})
}

func recordMessagesSent(u *models.User, now int64) {
	u.Stats.MessagesSent = append(u.Stats.MessagesSent, models.MessagesSentPoint{
		NumMessagesSent: u.Stats.MessagesSentNow() + 1,
		TimeStamp:       now,
	})
}

func recordChannelsExist(st *store.State, delta int, now int64) {
	st.Stats.ChannelsExist = append(st.Stats.ChannelsExist, models.ChannelsExistPoint{
		NumChannelsExist: st.Stats.ChannelsExistNow() + delta,
		TimeStamp:        now,
	})
}

func recordDMsExist(st *store.State, delta int, now int64) {
	st.Stats.DMsExist = append(st.Stats.DMsExist, models.DMsExistPoint{
		NumDMsExist: st.Stats.DMsExistNow() + delta,
		TimeStamp:   now,
	})
}

func recordMessagesExist(st *store.State, delta int, now int64) {
	st.Stats.MessagesExist = append(st.Stats.MessagesExist, models.MessagesExistPoint{
		NumMessagesExist: st.Stats.MessagesExistNow() + delta,
		TimeStamp:        now,
	})
}

// refreshDerived recomputes every user's involvement rate and the
// workspace utilization rate from the live graph.
func refreshDerived(st *store.State) {
	channels := len(st.Channels)
	dms := len(st.DMs)
	messages := 0
	for _, c := range st.Channels {
		messages += len(c.Messages)
	}
	for _, d := range st.DMs {
		messages += len(d.Messages)
	}
	denominator := channels + dms + messages

	joined := 0
	for _, u := range st.Users {
		if denominator == 0 {
			u.Stats.InvolvementRate = 0
		} else {
			numerator := u.Stats.ChannelsJoinedNow() + u.Stats.DMsJoinedNow() + u.Stats.MessagesSentNow()
			u.Stats.InvolvementRate = float64(numerator) / float64(denominator)
		}
		if u.Stats.ChannelsJoinedNow() > 0 || u.Stats.DMsJoinedNow() > 0 {
			joined++
		}
	}

	if len(st.Users) == 0 {
		st.Stats.UtilizationRate = 0
	} else {
		st.Stats.UtilizationRate = float64(joined) / float64(len(st.Users))
	}
}
