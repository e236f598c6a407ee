package web

import (
	"net/http"
	"strconv"
)

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	posts := s.svc.Feed(currentUserID(r), limit)
	respondJSON(w, http.StatusOK, s.toPostViews(posts))
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		PhotoRef string `json:"photo_ref"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post, err := s.svc.CreatePost(currentUserID(r), req.Text, req.PhotoRef)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.toPostView(post))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := s.svc.GetPost(postID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.toPostView(post))
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post, err := s.svc.EditPost(postID, currentUserID(r), req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.toPostView(post))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := s.svc.DeletePost(postID, currentUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	respondJSON(w, http.StatusOK, s.toPostViews(s.svc.PostsByUser(userID)))
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := s.svc.Follow(currentUserID(r), userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := s.svc.Unfollow(currentUserID(r), userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleFollowStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	following, followers := s.svc.FollowCounts(userID)
	respondJSON(w, http.StatusOK, map[string]any{
		"following": following,
		"followers": followers,
		"is_following": s.svc.IsFollowing(currentUserID(r), userID),
	})
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := s.svc.LikePost(postID, currentUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleUnlikePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := s.svc.UnlikePost(postID, currentUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handlePostComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	respondJSON(w, http.StatusOK, toCommentViews(s.svc.CommentsByPost(postID)))
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r, "postID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	comment, err := s.svc.AddComment(postID, currentUserID(r), req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCommentView(comment))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(r, "commentID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := s.svc.DeleteComment(commentID, currentUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
