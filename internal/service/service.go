// Package service implements the application core: identity and
// credentials, channel and DM directories, the messaging engine,
// notifications, standups, statistics, and administration.
//
// Every operation runs inside a single store transaction
// (store.Update or store.View); validation order within each
// operation follows the external contract, so which error a caller
// sees for a doubly-bad request is stable.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/auth"
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

type base struct {
	store  *store.Store
	secret string
	log    *zap.Logger
}

// Services bundles every application service over one shared store.
type Services struct {
	Identity      *Identity
	Channels      *Channels
	DMs           *DMs
	Messages      *Messages
	Notifications *Notifications
	Standups      *Standups
	Admin         *Admin
}

func New(st *store.Store, secret string, log *zap.Logger) *Services {
	b := base{store: st, secret: secret, log: log}
	return &Services{
		Identity:      &Identity{base: b},
		Channels:      &Channels{base: b},
		DMs:           &DMs{base: b},
		Messages:      &Messages{base: b},
		Notifications: &Notifications{base: b},
		Standups:      &Standups{base: b},
		Admin:         &Admin{base: b},
	}
}

func nowUnix() int64 {
	return time.Now().Unix()
}

// resolveToken maps a session token to its user. A token outside the
// active-session set is dead no matter what it decodes to.
func (b base) resolveToken(st *store.State, token string) (*models.User, error) {
	if !st.HasSession(token) {
		return nil, apperr.Access("token is not an active session")
	}
	claims, err := auth.ParseToken(token, b.secret)
	if err != nil {
		return nil, apperr.Access("token is not valid")
	}
	u := st.FindUser(claims.UserID)
	if u == nil {
		return nil, apperr.Input("u_id does not refer to a valid user")
	}
	return u, nil
}
