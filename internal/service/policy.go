package service

import (
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Authorization predicates. Stateless: every check re-derives from the
// current graph inside the same transaction as the operation using it.

func isGlobalOwner(st *store.State, uid int64) bool {
	u := st.FindUser(uid)
	return u != nil && u.PermissionID == models.PermissionOwner
}

func globalOwnerCount(st *store.State) int {
	n := 0
	for _, u := range st.Users {
		if u.PermissionID == models.PermissionOwner {
			n++
		}
	}
	return n
}

// canModerateChannel: channel owners and the global owner may manage
// the channel's owner list.
func canModerateChannel(st *store.State, ch *models.Channel, uid int64) bool {
	return ch.IsOwner(uid) || isGlobalOwner(st, uid)
}

// canTouchMessage guards edit and remove. The author always may; for
// channel messages an owner of that channel may; the global owner
// always may. DM messages have no per-DM owner carve-out.
func canTouchMessage(st *store.State, cont store.Container, m *models.Message, uid int64) bool {
	if m.AuthorID == uid {
		return true
	}
	if cont.IsChannel() && cont.Channel.IsOwner(uid) {
		return true
	}
	return isGlobalOwner(st, uid)
}
