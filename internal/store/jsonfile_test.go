package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"society-app/internal/model"
	"society-app/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSeedsVenues(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	venues := fs.ListVenues()
	require.Len(t, venues, 4)
	_, ok := fs.GetVenue(1)
	assert.True(t, ok)

	// reopening must not duplicate the seed
	fs2, err := store.NewFileStore(dir)
	require.NoError(t, err)
	assert.Len(t, fs2.ListVenues(), 4)
}

func TestFileStoreRequiresDir(t *testing.T) {
	_, err := store.NewFileStore("  ")
	require.Error(t, err)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	user, err := fs.CreateUser(model.User{Login: "carlos", Phone: "11 1"})
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)

	match, err := fs.CreateMatch(model.Match{
		OrganizerID: user.ID, VenueID: 1,
		Date: "2030-05-10", StartTime: "18:00", EndTime: "19:00",
		TotalSeats: 10, Status: model.MatchActive,
	})
	require.NoError(t, err)

	reopened, err := store.NewFileStore(dir)
	require.NoError(t, err)

	got, ok := reopened.GetUser(user.ID)
	require.True(t, ok)
	assert.Equal(t, "carlos", got.Login)

	gotMatch, ok := reopened.GetMatch(match.ID)
	require.True(t, ok)
	assert.Equal(t, "2030-05-10", gotMatch.Date)
}

func TestFileStoreIDAllocation(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	a, err := fs.CreateEnrollment(model.Enrollment{MatchID: 1, PlayerID: 1, Status: model.EnrollmentPending})
	require.NoError(t, err)
	b, err := fs.CreateEnrollment(model.Enrollment{MatchID: 1, PlayerID: 2, Status: model.EnrollmentPending})
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID)

	// ids follow the highest surviving id, so deleting the tail recycles it
	require.NoError(t, fs.DeleteEnrollment(b.ID))
	c, err := fs.CreateEnrollment(model.Enrollment{MatchID: 1, PlayerID: 3, Status: model.EnrollmentPending})
	require.NoError(t, err)
	assert.Equal(t, b.ID, c.ID)
}

func TestFileStoreCorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	_, err = fs.CreateUser(model.User{Login: "carlos", Phone: "11 1"})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644))

	assert.Empty(t, fs.ListUsers())
	_, ok := fs.GetUser(1)
	assert.False(t, ok)

	// a fresh write recovers the collection
	user, err := fs.CreateUser(model.User{Login: "ana", Phone: "11 2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Len(t, fs.ListUsers(), 1)
}

func TestFileStoreUpdateMissingRecord(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	err = fs.UpdateMatch(model.Match{ID: 42})
	require.Error(t, err)
	err = fs.DeleteEnrollment(42)
	require.Error(t, err)
}

func TestFileStoreUniqueLogin(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	_, err = fs.CreateUser(model.User{Login: "carlos", Phone: "11 1"})
	require.NoError(t, err)
	_, err = fs.CreateUser(model.User{Login: "Carlos", Phone: "11 2"})
	require.Error(t, err)
	_, err = fs.CreateUser(model.User{Login: "", Phone: "11 3"})
	require.Error(t, err)
}
