package web

import (
	"net/http"
	"strconv"

	"society-app/internal/service"

	"github.com/go-chi/chi/v5"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.GetUser(currentUserID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserView(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		PlayerAlias *string `json:"player_alias"`
		Phone       *string `json:"phone"`
		PhotoRef    *string `json:"photo_ref"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.svc.UpdateProfile(currentUserID(r), service.UpdateProfileInput{
		Name:        req.Name,
		PlayerAlias: req.PlayerAlias,
		Phone:       req.Phone,
		PhotoRef:    req.PhotoRef,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserView(user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := s.svc.GetUser(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserView(user))
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	venues := s.svc.ListVenues()
	views := make([]venueView, 0, len(venues))
	for _, v := range venues {
		views = append(views, toVenueView(v))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathID(r, "venueID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid venue id")
		return
	}
	venue, err := s.svc.GetVenue(venueID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toVenueView(venue))
}
