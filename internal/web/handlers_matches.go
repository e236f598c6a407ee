package web

import (
	"net/http"

	"society-app/internal/model"
	"society-app/internal/service"

	"go.uber.org/zap"
)

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VenueID        int64   `json:"venue_id"`
		Date           string  `json:"date"`
		StartTime      string  `json:"start_time"`
		EndTime        string  `json:"end_time"`
		PricePerPerson float64 `json:"price_per_person"`
		TotalSeats     int     `json:"total_seats"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	match, err := s.svc.CreateMatch(service.CreateMatchInput{
		OrganizerID:    currentUserID(r),
		VenueID:        req.VenueID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		PricePerPerson: req.PricePerPerson,
		TotalSeats:     req.TotalSeats,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	s.log.Info("match created",
		zap.Int64("match_id", match.ID),
		zap.Int64("organizer_id", match.OrganizerID),
		zap.String("date", match.Date))
	respondJSON(w, http.StatusCreated, toMatchView(match))
}

func (s *Server) handleUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toMatchViews(s.svc.UpcomingMatches(r.URL.Query().Get("from"))))
}

func (s *Server) handleMyMatches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toMatchViews(s.svc.MatchesByOrganizer(currentUserID(r))))
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(r, "matchID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	match, err := s.svc.GetMatch(matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toMatchView(match))
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(r, "matchID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	match, err := s.svc.GetMatch(matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if match.OrganizerID != currentUserID(r) {
		respondError(w, http.StatusForbidden, "only the organizer can delete a match")
		return
	}
	if err := s.svc.DeleteMatch(matchID); err != nil {
		respondServiceError(w, err)
		return
	}
	s.log.Info("match deleted", zap.Int64("match_id", matchID))
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleMatchEnrollments(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(r, "matchID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	match, err := s.svc.GetMatch(matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if match.OrganizerID != currentUserID(r) {
		respondError(w, http.StatusForbidden, "only the organizer can list enrollments")
		return
	}
	status := model.EnrollmentStatus(r.URL.Query().Get("status"))
	respondJSON(w, http.StatusOK, toEnrollmentViews(s.svc.ListByMatch(matchID, status)))
}

func (s *Server) handleSubmitEnrollment(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(r, "matchID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	enr, err := s.svc.Submit(matchID, currentUserID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toEnrollmentView(enr))
}

func (s *Server) handleMyEnrollments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toEnrollmentViews(s.svc.ListByPlayer(currentUserID(r))))
}

// organizerForEnrollment loads the enrollment and its match and checks
// that the current user organizes it.
func (s *Server) organizerForEnrollment(w http.ResponseWriter, r *http.Request) (int64, bool) {
	enrollmentID, ok := pathID(r, "enrollmentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid enrollment id")
		return 0, false
	}
	enr, err := s.svc.GetEnrollment(enrollmentID)
	if err != nil {
		respondServiceError(w, err)
		return 0, false
	}
	match, err := s.svc.GetMatch(enr.MatchID)
	if err != nil {
		respondServiceError(w, err)
		return 0, false
	}
	if match.OrganizerID != currentUserID(r) {
		respondError(w, http.StatusForbidden, "only the organizer can manage enrollments")
		return 0, false
	}
	return enrollmentID, true
}

func (s *Server) handleApproveEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := s.organizerForEnrollment(w, r)
	if !ok {
		return
	}
	if err := s.svc.Approve(enrollmentID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRejectEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := s.organizerForEnrollment(w, r)
	if !ok {
		return
	}
	if err := s.svc.Reject(enrollmentID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleCancelEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := pathID(r, "enrollmentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid enrollment id")
		return
	}
	enr, err := s.svc.GetEnrollment(enrollmentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	userID := currentUserID(r)
	if enr.PlayerID != userID {
		respondError(w, http.StatusForbidden, "only the player can cancel their enrollment")
		return
	}
	if err := s.svc.Cancel(enrollmentID, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleRemoveEnrollment(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := s.organizerForEnrollment(w, r)
	if !ok {
		return
	}
	if err := s.svc.RemoveByOrganizer(enrollmentID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
