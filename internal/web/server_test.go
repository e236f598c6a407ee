package web_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"society-app/internal/service"
	"society-app/internal/store"
	"society-app/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("APP", "prod")
	svc := service.New(store.NewMemoryStore(), nil)
	ts := httptest.NewServer(web.NewServer(svc, nil).Routes())
	t.Cleanup(ts.Close)
	return ts
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, method, url, token string, body any) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func registerUser(t *testing.T, ts *httptest.Server, login string) (token string, userID int64) {
	t.Helper()
	status, resp := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]string{
		"login": login, "pin": "1234", "phone": "11 9" + login, "name": login,
	})
	require.Equal(t, http.StatusCreated, status)
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.Token, data.User.ID
}

func TestAuthFlow(t *testing.T) {
	ts := newTestAPI(t)

	token, _ := registerUser(t, ts, "carlos")

	status, resp := doJSON(t, http.MethodGet, ts.URL+"/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)

	// no session, no access
	status, resp = doJSON(t, http.MethodGet, ts.URL+"/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)

	// wrong pin
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]string{
		"login": "carlos", "pin": "9999",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]string{
		"login": "carlos", "pin": "1234",
	})
	require.Equal(t, http.StatusOK, status)

	// duplicate login registers as a conflict
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]string{
		"login": "carlos", "pin": "1234", "phone": "11 0000",
	})
	require.Equal(t, http.StatusConflict, status)
}

func TestMatchAndEnrollmentFlow(t *testing.T) {
	ts := newTestAPI(t)

	orgToken, _ := registerUser(t, ts, "organizer")
	playerToken, _ := registerUser(t, ts, "player")

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/matches", orgToken, map[string]any{
		"venue_id": 1, "date": "2030-05-10", "start_time": "18:00", "end_time": "19:00",
		"total_seats": 2, "price_per_person": 25,
	})
	require.Equal(t, http.StatusCreated, status)
	var match struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &match))

	// double-booking the venue is refused
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/matches", orgToken, map[string]any{
		"venue_id": 1, "date": "2030-05-10", "start_time": "18:30", "end_time": "19:30",
		"total_seats": 2,
	})
	require.Equal(t, http.StatusConflict, status)

	matchPath := fmt.Sprintf("%s/matches/%d", ts.URL, match.ID)
	status, resp = doJSON(t, http.MethodPost, matchPath+"/enrollments", playerToken, nil)
	require.Equal(t, http.StatusCreated, status)
	var enr struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &enr))

	enrPath := fmt.Sprintf("%s/enrollments/%d", ts.URL, enr.ID)

	// only the organizer may approve
	status, _ = doJSON(t, http.MethodPost, enrPath+"/approve", playerToken, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodPost, enrPath+"/approve", orgToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, resp = doJSON(t, http.MethodGet, matchPath, playerToken, nil)
	require.Equal(t, http.StatusOK, status)
	var matchView struct {
		OccupiedSeats int `json:"occupied_seats"`
		SeatsLeft     int `json:"seats_left"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &matchView))
	assert.Equal(t, 1, matchView.OccupiedSeats)
	assert.Equal(t, 1, matchView.SeatsLeft)

	// the organizer hears about the request
	status, resp = doJSON(t, http.MethodGet, ts.URL+"/notifications", orgToken, nil)
	require.Equal(t, http.StatusOK, status)
	var notes []struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &notes))
	require.NotEmpty(t, notes)
	assert.Equal(t, "new_enrollment", notes[0].Kind)

	// only the player may cancel their own enrollment
	status, _ = doJSON(t, http.MethodPost, enrPath+"/cancel", orgToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = doJSON(t, http.MethodPost, enrPath+"/cancel", playerToken, nil)
	require.Equal(t, http.StatusOK, status)

	// deleting the match is the organizer's call
	status, _ = doJSON(t, http.MethodDelete, matchPath, playerToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = doJSON(t, http.MethodDelete, matchPath, orgToken, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestFeedEndpoints(t *testing.T) {
	ts := newTestAPI(t)

	anaToken, anaID := registerUser(t, ts, "ana")
	biaToken, _ := registerUser(t, ts, "bia")

	status, resp := doJSON(t, http.MethodPost, ts.URL+"/posts", anaToken, map[string]string{
		"text": "bom jogo ontem",
	})
	require.Equal(t, http.StatusCreated, status)
	var post struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &post))

	// an empty post is a bad request
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/posts", anaToken, map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/users/%d/follow", ts.URL, anaID), biaToken, nil)
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/users/%d/follow", ts.URL, anaID), biaToken, nil)
	require.Equal(t, http.StatusConflict, status)

	status, resp = doJSON(t, http.MethodGet, ts.URL+"/feed", biaToken, nil)
	require.Equal(t, http.StatusOK, status)
	var feed []struct {
		UserID int64 `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, anaID, feed[0].UserID)

	postPath := fmt.Sprintf("%s/posts/%d", ts.URL, post.ID)
	status, _ = doJSON(t, http.MethodPost, postPath+"/like", biaToken, nil)
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, http.MethodPost, postPath+"/like", biaToken, nil)
	require.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, http.MethodPost, postPath+"/comments", biaToken, map[string]string{"text": "bora marcar outro"})
	require.Equal(t, http.StatusCreated, status)

	status, resp = doJSON(t, http.MethodGet, postPath, anaToken, nil)
	require.Equal(t, http.StatusOK, status)
	var view struct {
		Likes    int `json:"likes"`
		Comments int `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, 1, view.Likes)
	assert.Equal(t, 1, view.Comments)

	// only the author deletes the post
	status, _ = doJSON(t, http.MethodDelete, postPath, biaToken, nil)
	require.Equal(t, http.StatusBadRequest, status)
	status, _ = doJSON(t, http.MethodDelete, postPath, anaToken, nil)
	require.Equal(t, http.StatusOK, status)
}
