package service_test

import (
	"testing"

	"society-app/internal/model"
	"society-app/internal/service"
	"society-app/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestService returns a service over an empty memory store. APP=prod
// suppresses the demo seed so tests start from a clean slate (the venue
// catalog is still present).
func newTestService(t *testing.T) (*service.Service, store.Store) {
	t.Helper()
	t.Setenv("APP", "prod")
	st := store.NewMemoryStore()
	return service.New(st, zap.NewNop()), st
}

func createUser(t *testing.T, st store.Store, login string) model.User {
	t.Helper()
	user, err := st.CreateUser(model.User{Login: login, Phone: "11 9" + login})
	require.NoError(t, err)
	return user
}

func createMatch(t *testing.T, svc *service.Service, organizerID int64, in service.CreateMatchInput) model.Match {
	t.Helper()
	in.OrganizerID = organizerID
	if in.VenueID == 0 {
		in.VenueID = 1
	}
	if in.TotalSeats == 0 {
		in.TotalSeats = 10
	}
	match, err := svc.CreateMatch(in)
	require.NoError(t, err)
	return match
}

func notificationsFor(svc *service.Service, userID int64, kind model.NotificationKind) []model.Notification {
	var out []model.Notification
	for _, n := range svc.ListNotifications(userID, false) {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}
