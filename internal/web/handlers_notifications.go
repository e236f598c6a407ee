package web

import (
	"net/http"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications := s.svc.ListNotifications(currentUserID(r), unreadOnly)
	respondJSON(w, http.StatusOK, toNotificationViews(notifications))
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{"unread": s.svc.CountUnread(currentUserID(r))})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, ok := pathID(r, "notificationID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.svc.MarkRead(notificationID, currentUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	changed, err := s.svc.MarkAllRead(currentUserID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}
