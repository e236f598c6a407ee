package service_test

import (
	"testing"

	"society-app/internal/model"
	"society-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatchValidation(t *testing.T) {
	svc, st := newTestService(t)
	organizer := createUser(t, st, "org")

	base := service.CreateMatchInput{
		OrganizerID: organizer.ID,
		VenueID:     1,
		Date:        "2030-05-10",
		StartTime:   "18:00",
		EndTime:     "19:00",
		TotalSeats:  10,
	}

	cases := []struct {
		name   string
		mutate func(*service.CreateMatchInput)
	}{
		{"bad date", func(in *service.CreateMatchInput) { in.Date = "10/05/2030" }},
		{"bad start time", func(in *service.CreateMatchInput) { in.StartTime = "6pm" }},
		{"end before start", func(in *service.CreateMatchInput) { in.EndTime = "17:00" }},
		{"end equals start", func(in *service.CreateMatchInput) { in.EndTime = "18:00" }},
		{"zero seats", func(in *service.CreateMatchInput) { in.TotalSeats = 0 }},
		{"negative price", func(in *service.CreateMatchInput) { in.PricePerPerson = -5 }},
		{"seats above venue capacity", func(in *service.CreateMatchInput) { in.TotalSeats = 15 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := svc.CreateMatch(in)
			require.ErrorIs(t, err, service.ErrInvalid)
		})
	}

	t.Run("unknown organizer", func(t *testing.T) {
		in := base
		in.OrganizerID = 999
		_, err := svc.CreateMatch(in)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
	t.Run("unknown venue", func(t *testing.T) {
		in := base
		in.VenueID = 999
		_, err := svc.CreateMatch(in)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	// nothing was persisted by the failed attempts
	assert.Empty(t, svc.MatchesByOrganizer(organizer.ID))
}

func TestCreateMatchScheduleConflict(t *testing.T) {
	svc, st := newTestService(t)
	organizer := createUser(t, st, "org")

	createMatch(t, svc, organizer.ID, service.CreateMatchInput{
		Date: "2030-05-10", StartTime: "18:00", EndTime: "19:00",
	})

	_, err := svc.CreateMatch(service.CreateMatchInput{
		OrganizerID: organizer.ID, VenueID: 1, TotalSeats: 10,
		Date: "2030-05-10", StartTime: "18:30", EndTime: "19:30",
	})
	require.ErrorIs(t, err, service.ErrScheduleConflict)

	// a window that merely touches the end does not conflict
	_, err = svc.CreateMatch(service.CreateMatchInput{
		OrganizerID: organizer.ID, VenueID: 1, TotalSeats: 10,
		Date: "2030-05-10", StartTime: "19:00", EndTime: "20:00",
	})
	require.NoError(t, err)

	// same window at another venue is fine
	_, err = svc.CreateMatch(service.CreateMatchInput{
		OrganizerID: organizer.ID, VenueID: 2, TotalSeats: 10,
		Date: "2030-05-10", StartTime: "18:00", EndTime: "19:00",
	})
	require.NoError(t, err)

	// same window on another date is fine
	_, err = svc.CreateMatch(service.CreateMatchInput{
		OrganizerID: organizer.ID, VenueID: 1, TotalSeats: 10,
		Date: "2030-05-11", StartTime: "18:00", EndTime: "19:00",
	})
	require.NoError(t, err)
}

func TestScheduleConflictIgnoresCancelledMatches(t *testing.T) {
	svc, st := newTestService(t)
	organizer := createUser(t, st, "org")

	match := createMatch(t, svc, organizer.ID, service.CreateMatchInput{
		Date: "2030-05-10", StartTime: "18:00", EndTime: "19:00",
	})
	match.Status = model.MatchCancelled
	require.NoError(t, st.UpdateMatch(match))

	_, err := svc.CreateMatch(service.CreateMatchInput{
		OrganizerID: organizer.ID, VenueID: 1, TotalSeats: 10,
		Date: "2030-05-10", StartTime: "18:00", EndTime: "19:00",
	})
	require.NoError(t, err)
}

func TestUpcomingMatchesOrdering(t *testing.T) {
	svc, st := newTestService(t)
	organizer := createUser(t, st, "org")

	late := createMatch(t, svc, organizer.ID, service.CreateMatchInput{
		Date: "2030-05-12", StartTime: "18:00", EndTime: "19:00",
	})
	earlySameDay := createMatch(t, svc, organizer.ID, service.CreateMatchInput{
		Date: "2030-05-10", StartTime: "08:00", EndTime: "09:00",
	})
	laterSameDay := createMatch(t, svc, organizer.ID, service.CreateMatchInput{
		Date: "2030-05-10", StartTime: "10:00", EndTime: "11:00",
	})
	createMatch(t, svc, organizer.ID, service.CreateMatchInput{
		Date: "2030-05-01", StartTime: "18:00", EndTime: "19:00",
	})

	upcoming := svc.UpcomingMatches("2030-05-05")
	require.Len(t, upcoming, 3)
	assert.Equal(t, earlySameDay.ID, upcoming[0].ID)
	assert.Equal(t, laterSameDay.ID, upcoming[1].ID)
	assert.Equal(t, late.ID, upcoming[2].ID)
}

func TestDeleteMatchCascades(t *testing.T) {
	svc, st := newTestService(t)
	organizer := createUser(t, st, "org")
	playerA := createUser(t, st, "ana")
	playerB := createUser(t, st, "bia")

	match := createMatch(t, svc, organizer.ID, service.CreateMatchInput{
		Date: "2030-05-10", StartTime: "18:00", EndTime: "19:00",
	})
	enrA, err := svc.Submit(match.ID, playerA.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Approve(enrA.ID))
	_, err = svc.Submit(match.ID, playerB.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMatch(match.ID))

	_, err = svc.GetMatch(match.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	for _, enr := range svc.ListByPlayer(playerA.ID) {
		assert.Equal(t, model.EnrollmentCancelled, enr.Status)
	}
	for _, enr := range svc.ListByPlayer(playerB.ID) {
		assert.Equal(t, model.EnrollmentCancelled, enr.Status)
	}
	assert.Len(t, notificationsFor(svc, playerA.ID, model.KindMatchCancelled), 1)
	assert.Len(t, notificationsFor(svc, playerB.ID, model.KindMatchCancelled), 1)
}

func TestMatchesByOrganizer(t *testing.T) {
	svc, st := newTestService(t)
	orgA := createUser(t, st, "orga")
	orgB := createUser(t, st, "orgb")

	first := createMatch(t, svc, orgA.ID, service.CreateMatchInput{
		Date: "2030-05-10", StartTime: "18:00", EndTime: "19:00",
	})
	createMatch(t, svc, orgB.ID, service.CreateMatchInput{
		Date: "2030-05-10", StartTime: "19:00", EndTime: "20:00",
	})
	second := createMatch(t, svc, orgA.ID, service.CreateMatchInput{
		Date: "2030-05-11", StartTime: "18:00", EndTime: "19:00",
	})

	mine := svc.MatchesByOrganizer(orgA.ID)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID)
	assert.Equal(t, second.ID, mine[1].ID)
}
