package service

import (
	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/auth"
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Admin holds the global-owner-only operations.
type Admin struct {
	base
}

const removedContent = "Removed user"

// RemoveUser expels a user from the workspace: their historical message
// content is anonymized, they are stripped from every roster, their
// sessions are revoked, and the record moves to the removed archive so
// profile lookups for old authorship still resolve.
func (s *Admin) RemoveUser(token string, uid int64) error {
	return s.store.Update(func(st *store.State) error {
		actor, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !isGlobalOwner(st, actor.ID) {
			return apperr.Access("authorised user is not a global owner")
		}
		target := st.FindUser(uid)
		if target == nil {
			return apperr.Input("u_id does not refer to a valid user")
		}
		if target.PermissionID == models.PermissionOwner && globalOwnerCount(st) == 1 {
			return apperr.Input("cannot remove the only global owner")
		}

		target.NameFirst = "Removed"
		target.NameLast = "user"

		anonymize := func(msgs []*models.Message) {
			for _, m := range msgs {
				if m.AuthorID == uid {
					m.Content = removedContent
				}
			}
		}
		for _, ch := range st.Channels {
			anonymize(ch.Messages)
			removeID(&ch.Members, uid)
			removeID(&ch.Owners, uid)
		}
		for _, dm := range st.DMs {
			anonymize(dm.Messages)
			removeID(&dm.Members, uid)
		}

		s.revokeSessions(st, uid)

		st.RemovedUsers = append(st.RemovedUsers, target)
		for i, u := range st.Users {
			if u.ID == uid {
				st.Users = append(st.Users[:i], st.Users[i+1:]...)
				break
			}
		}

		refreshDerived(st)
		return nil
	})
}

// ChangePermission sets a user's global permission level.
func (s *Admin) ChangePermission(token string, uid int64, permissionID int) error {
	return s.store.Update(func(st *store.State) error {
		if permissionID != models.PermissionOwner && permissionID != models.PermissionMember {
			return apperr.Input("permission_id is not valid")
		}
		actor, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		if !isGlobalOwner(st, actor.ID) {
			return apperr.Access("authorised user is not a global owner")
		}
		target := st.FindUser(uid)
		if target == nil {
			return apperr.Input("u_id does not refer to a valid user")
		}

		target.PermissionID = permissionID
		return nil
	})
}

func (s *Admin) revokeSessions(st *store.State, uid int64) {
	kept := st.Sessions[:0]
	for _, token := range st.Sessions {
		claims, err := auth.ParseToken(token, s.secret)
		if err == nil && claims.UserID == uid {
			continue
		}
		kept = append(kept, token)
	}
	st.Sessions = kept
}
