package service

import (
	"fmt"

	"github.com/lalith-99/dreams/internal/models"
)

// Notification fan-out for invites and @mentions. Appends are
// fire-and-forget within the transaction: if the surrounding operation
// later fails, the transaction discard takes the notification with it.

const noContainer = -1

func notifyChannelAdd(target *models.User, actorHandle string, ch *models.Channel) {
	target.Notifications = append(target.Notifications, models.Notification{
		ChannelID: ch.ID,
		DMID:      noContainer,
		Message:   fmt.Sprintf("%s added you to %s", actorHandle, ch.Name),
	})
}

func notifyChannelTag(target *models.User, actorHandle string, ch *models.Channel, excerpt string) {
	target.Notifications = append(target.Notifications, models.Notification{
		ChannelID: ch.ID,
		DMID:      noContainer,
		Message:   fmt.Sprintf("%s tagged you in %s: %s", actorHandle, ch.Name, excerpt),
	})
}

func notifyDMAdd(target *models.User, actorHandle string, dm *models.DM) {
	target.Notifications = append(target.Notifications, models.Notification{
		ChannelID: noContainer,
		DMID:      dm.ID,
		Message:   fmt.Sprintf("%s added you to %s", actorHandle, dm.Name),
	})
}

func notifyDMTag(target *models.User, actorHandle string, dm *models.DM, excerpt string) {
	target.Notifications = append(target.Notifications, models.Notification{
		ChannelID: noContainer,
		DMID:      dm.ID,
		Message:   fmt.Sprintf("%s tagged you in %s: %s", actorHandle, dm.Name, excerpt),
	})
}

// taggedHandles collects every @handle token: an '@' followed by the
// characters up to the next space or newline. Duplicates are kept; a
// user tagged twice in one message is notified twice.
func taggedHandles(text string) []string {
	var handles []string
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '@' {
			continue
		}
		var handle []rune
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == ' ' || runes[j] == '\n' {
				break
			}
			handle = append(handle, runes[j])
		}
		handles = append(handles, string(handle))
	}
	return handles
}

// excerpt returns the first n runes of s, used for the quoted fragment
// inside tag notifications.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// recentNotifications returns up to the 20 newest entries, newest
// first. Storage is unbounded; only the view is capped.
func recentNotifications(u *models.User) []models.NotificationView {
	views := make([]models.NotificationView, 0, 20)
	for i := len(u.Notifications) - 1; i >= 0 && len(views) < 20; i-- {
		views = append(views, u.Notifications[i].View())
	}
	return views
}
