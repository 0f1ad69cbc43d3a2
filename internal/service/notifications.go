package service

import (
	"github.com/lalith-99/dreams/internal/models"
	"github.com/lalith-99/dreams/internal/store"
)

// Notifications serves a user's own notification feed. There is no
// cross-user read path.
type Notifications struct {
	base
}

// Recent returns up to the caller's 20 newest notifications, newest
// first.
func (s *Notifications) Recent(token string) ([]models.NotificationView, error) {
	var out []models.NotificationView
	err := s.store.View(func(st *store.State) error {
		u, err := s.resolveToken(st, token)
		if err != nil {
			return err
		}
		out = recentNotifications(u)
		return nil
	})
	return out, err
}
