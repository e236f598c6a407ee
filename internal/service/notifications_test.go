package service_test

import (
	"testing"
	"time"

	"society-app/internal/model"
	"society-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotificationsNewestFirst(t *testing.T) {
	svc, st := newTestService(t)
	user := createUser(t, st, "ana")

	base := time.Date(2030, 5, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := st.CreateNotification(model.Notification{
			RecipientID: user.ID,
			Kind:        model.KindNewFollower,
			Message:     "x",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	notes := svc.ListNotifications(user.ID, false)
	require.Len(t, notes, 3)
	assert.True(t, notes[0].CreatedAt.After(notes[1].CreatedAt))
	assert.True(t, notes[1].CreatedAt.After(notes[2].CreatedAt))
}

func TestUnreadFilterAndCount(t *testing.T) {
	svc, st := newTestService(t)
	user := createUser(t, st, "ana")
	other := createUser(t, st, "bia")

	first, err := st.CreateNotification(model.Notification{RecipientID: user.ID, Kind: model.KindPostLiked})
	require.NoError(t, err)
	_, err = st.CreateNotification(model.Notification{RecipientID: user.ID, Kind: model.KindPostLiked})
	require.NoError(t, err)
	_, err = st.CreateNotification(model.Notification{RecipientID: other.ID, Kind: model.KindPostLiked})
	require.NoError(t, err)

	assert.Equal(t, 2, svc.CountUnread(user.ID))

	require.NoError(t, svc.MarkRead(first.ID, user.ID))
	assert.Equal(t, 1, svc.CountUnread(user.ID))
	assert.Len(t, svc.ListNotifications(user.ID, true), 1)
	assert.Len(t, svc.ListNotifications(user.ID, false), 2)

	// marking twice is harmless
	require.NoError(t, svc.MarkRead(first.ID, user.ID))

	// someone else's notification reads as missing
	require.ErrorIs(t, svc.MarkRead(first.ID, other.ID), service.ErrNotFound)
	require.ErrorIs(t, svc.MarkRead(999, user.ID), service.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	svc, st := newTestService(t)
	user := createUser(t, st, "ana")

	changed, err := svc.MarkAllRead(user.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	for i := 0; i < 2; i++ {
		_, err := st.CreateNotification(model.Notification{RecipientID: user.ID, Kind: model.KindPostLiked})
		require.NoError(t, err)
	}

	changed, err = svc.MarkAllRead(user.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, svc.CountUnread(user.ID))
}
