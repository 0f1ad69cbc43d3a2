package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/models"
)

func TestChannelCreate(t *testing.T) {
	t.Run("creator becomes sole owner and member", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)

		details, err := svc.Channels.Details(a.Token, cid)
		require.NoError(t, err)
		assert.Equal(t, "general", details.Name)
		assert.True(t, details.IsPublic)
		require.Len(t, details.OwnerMembers, 1)
		require.Len(t, details.AllMembers, 1)
		assert.Equal(t, a.UserID, details.OwnerMembers[0].UID)
	})

	t.Run("name over 20 characters is rejected before the token", func(t *testing.T) {
		svc := newTestServices(t)

		// A dead token with a bad name still reports the name problem.
		_, err := svc.Channels.Create("not-a-token", strings.Repeat("x", 21), true)
		require.Error(t, err)
		assert.True(t, apperr.IsInput(err))
	})
}

func TestChannelJoin(t *testing.T) {
	t.Run("private channel admits only the global owner", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

		cid, err := svc.Channels.Create(a.Token, "secret", false)
		require.NoError(t, err)

		err = svc.Channels.Join(b.Token, cid)
		require.Error(t, err)
		assert.True(t, apperr.IsAccess(err))

		// Promoting B to global owner opens the door.
		require.NoError(t, svc.Admin.ChangePermission(a.Token, b.UserID, models.PermissionOwner))
		require.NoError(t, svc.Channels.Join(b.Token, cid))

		details, err := svc.Channels.Details(b.Token, cid)
		require.NoError(t, err)
		assert.Len(t, details.AllMembers, 2)
	})

	t.Run("joining twice is idempotent", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)
		require.NoError(t, svc.Channels.Join(b.Token, cid))
		require.NoError(t, svc.Channels.Join(b.Token, cid))

		details, err := svc.Channels.Details(a.Token, cid)
		require.NoError(t, err)
		assert.Len(t, details.AllMembers, 2)
	})

	t.Run("unknown channel is an input error", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")

		err := svc.Channels.Join(a.Token, 99)
		require.Error(t, err)
		assert.True(t, apperr.IsInput(err))
	})
}

func TestChannelInvite(t *testing.T) {
	t.Run("invited user becomes a member and is notified", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)
		require.NoError(t, svc.Channels.Invite(a.Token, cid, b.UserID))

		details, err := svc.Channels.Details(b.Token, cid)
		require.NoError(t, err)
		assert.Len(t, details.AllMembers, 2)

		notifications, err := svc.Notifications.Recent(b.Token)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, cid, notifications[0].ChannelID)
		assert.Equal(t, int64(-1), notifications[0].DMID)
		assert.Equal(t, "adalovelace added you to general", notifications[0].NotificationMessage)
	})

	t.Run("non-member cannot invite", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")
		c := registerUser(t, svc, "joan@example.com", "Joan", "Clarke")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)

		err = svc.Channels.Invite(b.Token, cid, c.UserID)
		require.Error(t, err)
		assert.True(t, apperr.IsAccess(err))
	})

	t.Run("inviting an existing member is a no-op without a notification", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)
		require.NoError(t, svc.Channels.Join(b.Token, cid))
		require.NoError(t, svc.Channels.Invite(a.Token, cid, b.UserID))

		notifications, err := svc.Notifications.Recent(b.Token)
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})
}

func TestChannelOwnership(t *testing.T) {
	t.Run("addowner promotes and removeowner demotes", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)
		require.NoError(t, svc.Channels.Join(b.Token, cid))

		require.NoError(t, svc.Channels.AddOwner(a.Token, cid, b.UserID))
		details, err := svc.Channels.Details(a.Token, cid)
		require.NoError(t, err)
		assert.Len(t, details.OwnerMembers, 2)

		require.NoError(t, svc.Channels.RemoveOwner(a.Token, cid, b.UserID))
		details, err = svc.Channels.Details(a.Token, cid)
		require.NoError(t, err)
		assert.Len(t, details.OwnerMembers, 1)
	})

	t.Run("promoting an owner again is an input error", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)

		err = svc.Channels.AddOwner(a.Token, cid, a.UserID)
		require.Error(t, err)
		assert.True(t, apperr.IsInput(err))
	})

	t.Run("the only owner cannot be removed", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)

		err = svc.Channels.RemoveOwner(a.Token, cid, a.UserID)
		require.Error(t, err)
		assert.True(t, apperr.IsInput(err))
	})

	t.Run("a plain member cannot moderate", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)
		require.NoError(t, svc.Channels.Join(b.Token, cid))

		err = svc.Channels.AddOwner(b.Token, cid, b.UserID)
		require.Error(t, err)
		assert.True(t, apperr.IsAccess(err))
	})
}

func TestChannelLeave(t *testing.T) {
	t.Run("leaving strips membership and ownership but keeps messages", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)
		require.NoError(t, svc.Channels.Join(b.Token, cid))
		require.NoError(t, svc.Channels.AddOwner(a.Token, cid, b.UserID))
		_, err = svc.Messages.Send(b.Token, cid, "still here after I go")
		require.NoError(t, err)

		require.NoError(t, svc.Channels.Leave(b.Token, cid))

		details, err := svc.Channels.Details(a.Token, cid)
		require.NoError(t, err)
		assert.Len(t, details.AllMembers, 1)
		assert.Len(t, details.OwnerMembers, 1)

		page, err := svc.Channels.Messages(a.Token, cid, 0)
		require.NoError(t, err)
		require.Len(t, page.Messages, 1)
		assert.Equal(t, "still here after I go", page.Messages[0].Message)
	})

	t.Run("leaving during a standup is denied", func(t *testing.T) {
		svc := newTestServices(t)
		a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")

		cid, err := svc.Channels.Create(a.Token, "general", true)
		require.NoError(t, err)
		_, err = svc.Standups.Start(a.Token, cid, 60)
		require.NoError(t, err)

		err = svc.Channels.Leave(a.Token, cid)
		require.Error(t, err)
		assert.True(t, apperr.IsAccess(err))
	})
}

func TestChannelList(t *testing.T) {
	svc := newTestServices(t)
	a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
	b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")

	mine, err := svc.Channels.Create(a.Token, "mine", true)
	require.NoError(t, err)
	_, err = svc.Channels.Create(b.Token, "theirs", false)
	require.NoError(t, err)

	listed, err := svc.Channels.List(a.Token)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine, listed[0].ChannelID)

	all, err := svc.Channels.ListAll(a.Token)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestChannelMessagesPagination(t *testing.T) {
	svc := newTestServices(t)
	a := registerUser(t, svc, "ada@example.com", "Ada", "Lovelace")
	cid, err := svc.Channels.Create(a.Token, "general", true)
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		_, err := svc.Messages.Send(a.Token, cid, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	t.Run("first page holds 50 newest first", func(t *testing.T) {
		page, err := svc.Channels.Messages(a.Token, cid, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Start)
		assert.Equal(t, 50, page.End)
		require.Len(t, page.Messages, 50)
		assert.Equal(t, "message 59", page.Messages[0].Message)
		assert.Equal(t, "message 10", page.Messages[49].Message)
	})

	t.Run("final partial page ends with -1", func(t *testing.T) {
		page, err := svc.Channels.Messages(a.Token, cid, 50)
		require.NoError(t, err)
		assert.Equal(t, 50, page.Start)
		assert.Equal(t, -1, page.End)
		require.Len(t, page.Messages, 10)
		assert.Equal(t, "message 9", page.Messages[0].Message)
		assert.Equal(t, "message 0", page.Messages[9].Message)
	})

	t.Run("a full final page still reports the next offset", func(t *testing.T) {
		page, err := svc.Channels.Messages(a.Token, cid, 10)
		require.NoError(t, err)
		assert.Equal(t, 60, page.End)
	})

	t.Run("start beyond the total is an input error", func(t *testing.T) {
		_, err := svc.Channels.Messages(a.Token, cid, 61)
		require.Error(t, err)
		assert.True(t, apperr.IsInput(err))
	})

	t.Run("negative start is an input error", func(t *testing.T) {
		_, err := svc.Channels.Messages(a.Token, cid, -1)
		require.Error(t, err)
		assert.True(t, apperr.IsInput(err))
	})

	t.Run("start equal to the total returns an empty page", func(t *testing.T) {
		page, err := svc.Channels.Messages(a.Token, cid, 60)
		require.NoError(t, err)
		assert.Empty(t, page.Messages)
		assert.Equal(t, -1, page.End)
	})

	t.Run("non-member cannot read", func(t *testing.T) {
		b := registerUser(t, svc, "grace@example.com", "Grace", "Hopper")
		_, err := svc.Channels.Messages(b.Token, cid, 0)
		require.Error(t, err)
		assert.True(t, apperr.IsAccess(err))
	})
}
