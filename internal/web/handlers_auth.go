package web

import (
	"net/http"

	"society-app/internal/service"

	"go.uber.org/zap"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login string `json:"login"`
		PIN   string `json:"pin"`
		Phone string `json:"phone"`
		Name  string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.svc.Register(service.RegisterInput{
		Login: req.Login,
		PIN:   req.PIN,
		Phone: req.Phone,
		Name:  req.Name,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	s.log.Info("user registered", zap.Int64("user_id", user.ID), zap.String("login", user.Login))
	token := s.sessions.Create(user.ID)
	setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]any{
		"user":  toUserView(user),
		"token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login string `json:"login"`
		PIN   string `json:"pin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.svc.Authenticate(req.Login, req.PIN)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	token := s.sessions.Create(user.ID)
	setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]any{
		"user":  toUserView(user),
		"token": token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	clearSessionCookie(w)
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login string `json:"login"`
		Phone string `json:"phone"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pin, err := s.svc.ResetPassword(req.Login, req.Phone)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	s.log.Info("password reset", zap.String("login", req.Login))
	respondJSON(w, http.StatusOK, map[string]string{"pin": pin})
}
