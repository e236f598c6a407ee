package web

import (
	"net/http"

	"society-app/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Server struct {
	svc      *service.Service
	sessions *Sessions
	log      *zap.Logger
}

func NewServer(svc *service.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, sessions: NewSessions(), log: log}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.Post("/auth/reset-password", s.handleResetPassword)

	r.Get("/me", s.requireUser(s.handleMe))
	r.Put("/me", s.requireUser(s.handleUpdateProfile))
	r.Get("/users/{userID}", s.requireUser(s.handleGetUser))

	r.Get("/venues", s.requireUser(s.handleListVenues))
	r.Get("/venues/{venueID}", s.requireUser(s.handleGetVenue))

	r.Get("/matches", s.requireUser(s.handleUpcomingMatches))
	r.Post("/matches", s.requireUser(s.handleCreateMatch))
	r.Get("/matches/mine", s.requireUser(s.handleMyMatches))
	r.Get("/matches/{matchID}", s.requireUser(s.handleGetMatch))
	r.Delete("/matches/{matchID}", s.requireUser(s.handleDeleteMatch))
	r.Get("/matches/{matchID}/enrollments", s.requireUser(s.handleMatchEnrollments))
	r.Post("/matches/{matchID}/enrollments", s.requireUser(s.handleSubmitEnrollment))

	r.Get("/enrollments/mine", s.requireUser(s.handleMyEnrollments))
	r.Post("/enrollments/{enrollmentID}/approve", s.requireUser(s.handleApproveEnrollment))
	r.Post("/enrollments/{enrollmentID}/reject", s.requireUser(s.handleRejectEnrollment))
	r.Post("/enrollments/{enrollmentID}/cancel", s.requireUser(s.handleCancelEnrollment))
	r.Delete("/enrollments/{enrollmentID}", s.requireUser(s.handleRemoveEnrollment))

	r.Get("/notifications", s.requireUser(s.handleListNotifications))
	r.Get("/notifications/unread-count", s.requireUser(s.handleUnreadCount))
	r.Post("/notifications/read-all", s.requireUser(s.handleMarkAllRead))
	r.Post("/notifications/{notificationID}/read", s.requireUser(s.handleMarkRead))

	r.Get("/feed", s.requireUser(s.handleFeed))
	r.Post("/posts", s.requireUser(s.handleCreatePost))
	r.Get("/posts/{postID}", s.requireUser(s.handleGetPost))
	r.Put("/posts/{postID}", s.requireUser(s.handleEditPost))
	r.Delete("/posts/{postID}", s.requireUser(s.handleDeletePost))
	r.Get("/users/{userID}/posts", s.requireUser(s.handleUserPosts))
	r.Post("/users/{userID}/follow", s.requireUser(s.handleFollow))
	r.Delete("/users/{userID}/follow", s.requireUser(s.handleUnfollow))
	r.Get("/users/{userID}/follow-stats", s.requireUser(s.handleFollowStats))
	r.Post("/posts/{postID}/like", s.requireUser(s.handleLikePost))
	r.Delete("/posts/{postID}/like", s.requireUser(s.handleUnlikePost))
	r.Get("/posts/{postID}/comments", s.requireUser(s.handlePostComments))
	r.Post("/posts/{postID}/comments", s.requireUser(s.handleAddComment))
	r.Delete("/comments/{commentID}", s.requireUser(s.handleDeleteComment))

	return r
}
