package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"society-app/internal/model"
)

const feedDefaultLimit = 20

// postPreview shortens a post's text for notification messages. An
// all-photo post shows as "[foto]".
func postPreview(p model.Post, maxRunes int) string {
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return "[foto]"
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}

// CreatePost publishes a post. It needs text, a photo, or both.
func (s *Service) CreatePost(userID int64, text, photoRef string) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	photoRef = strings.TrimSpace(photoRef)
	if text == "" && photoRef == "" {
		return model.Post{}, fmt.Errorf("%w: a post needs text or a photo", ErrInvalid)
	}
	if _, ok := s.store.GetUser(userID); !ok {
		return model.Post{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return s.store.CreatePost(model.Post{
		UserID:    userID,
		Text:      text,
		PhotoRef:  photoRef,
		CreatedAt: time.Now(),
	})
}

// EditPost replaces the post's text and stamps the edit time. Only the
// author may edit.
func (s *Service) EditPost(postID, actorID int64, text string) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.store.GetPost(postID)
	if !ok {
		return model.Post{}, fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}
	if post.UserID != actorID {
		return model.Post{}, fmt.Errorf("%w: only the author can edit a post", ErrInvalid)
	}
	text = strings.TrimSpace(text)
	if text == "" && post.PhotoRef == "" {
		return model.Post{}, fmt.Errorf("%w: a post needs text or a photo", ErrInvalid)
	}
	now := time.Now()
	post.Text = text
	post.EditedAt = &now
	if err := s.store.UpdatePost(post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// DeletePost removes the post along with its likes and comments. Only the
// author may delete.
func (s *Service) DeletePost(postID, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.store.GetPost(postID)
	if !ok {
		return fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}
	if post.UserID != actorID {
		return fmt.Errorf("%w: only the author can delete a post", ErrInvalid)
	}
	for _, like := range s.store.ListLikes() {
		if like.PostID == postID {
			if err := s.store.DeleteLike(like.PostID, like.UserID); err != nil {
				return fmt.Errorf("delete like: %w", err)
			}
		}
	}
	for _, c := range s.store.ListComments() {
		if c.PostID == postID {
			if err := s.store.DeleteComment(c.ID); err != nil {
				return fmt.Errorf("delete comment: %w", err)
			}
		}
	}
	return s.store.DeletePost(postID)
}

func (s *Service) GetPost(id int64) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.store.GetPost(id)
	if !ok {
		return model.Post{}, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return post, nil
}

// PostsByUser lists a user's posts, newest first.
func (s *Service) PostsByUser(userID int64) []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]model.Post, 0)
	for _, p := range s.store.ListPosts() {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	sortPostsDesc(posts)
	return posts
}

// Feed returns the newest posts from the user and everyone the user
// follows. A non-positive limit falls back to the default page size.
func (s *Service) Feed(userID int64, limit int) []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = feedDefaultLimit
	}
	authors := map[int64]bool{userID: true}
	for _, f := range s.store.ListFollows() {
		if f.FollowerID == userID {
			authors[f.FollowedID] = true
		}
	}
	posts := make([]model.Post, 0)
	for _, p := range s.store.ListPosts() {
		if authors[p.UserID] {
			posts = append(posts, p)
		}
	}
	sortPostsDesc(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

func sortPostsDesc(posts []model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

// Follow makes follower follow followed and tells the followed user.
func (s *Service) Follow(followerID, followedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if followerID == followedID {
		return fmt.Errorf("%w: cannot follow yourself", ErrInvalid)
	}
	follower, ok := s.store.GetUser(followerID)
	if !ok {
		return fmt.Errorf("user %d: %w", followerID, ErrNotFound)
	}
	if _, ok := s.store.GetUser(followedID); !ok {
		return fmt.Errorf("user %d: %w", followedID, ErrNotFound)
	}
	for _, f := range s.store.ListFollows() {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return ErrAlreadyFollowing
		}
	}
	if _, err := s.store.CreateFollow(model.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	}); err != nil {
		return err
	}
	s.emitLocked(followedID, model.KindNewFollower,
		fmt.Sprintf("%s começou a seguir você!", follower.DisplayName()),
		map[string]int64{"follower_id": followerID})
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone never followed is
// a no-op.
func (s *Service) Unfollow(followerID, followedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.store.ListFollows() {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return s.store.DeleteFollow(followerID, followedID)
		}
	}
	return nil
}

func (s *Service) IsFollowing(followerID, followedID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.store.ListFollows() {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return true
		}
	}
	return false
}

// FollowCounts returns how many users the user follows and how many
// follow the user back.
func (s *Service) FollowCounts(userID int64) (following, followers int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.store.ListFollows() {
		if f.FollowerID == userID {
			following++
		}
		if f.FollowedID == userID {
			followers++
		}
	}
	return following, followers
}

// LikePost likes a post once per user and tells the author, quoting a
// short preview of the post.
func (s *Service) LikePost(postID, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.store.GetPost(postID)
	if !ok {
		return fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}
	actor, ok := s.store.GetUser(actorID)
	if !ok {
		return fmt.Errorf("user %d: %w", actorID, ErrNotFound)
	}
	for _, like := range s.store.ListLikes() {
		if like.PostID == postID && like.UserID == actorID {
			return ErrAlreadyLiked
		}
	}
	if _, err := s.store.CreateLike(model.Like{
		PostID:    postID,
		UserID:    actorID,
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}
	if post.UserID != actorID {
		s.emitLocked(post.UserID, model.KindPostLiked,
			fmt.Sprintf("%s curtiu sua publicação \"%s\" de %s.",
				actor.DisplayName(), postPreview(post, 10), post.CreatedAt.Format("02/01/2006 15:04")),
			map[string]int64{"post_id": postID, "actor_id": actorID})
	}
	return nil
}

// UnlikePost removes the actor's like. Removing a like that was never
// given is a no-op.
func (s *Service) UnlikePost(postID, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, like := range s.store.ListLikes() {
		if like.PostID == postID && like.UserID == actorID {
			return s.store.DeleteLike(postID, actorID)
		}
	}
	return nil
}

func (s *Service) HasLiked(postID, userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, like := range s.store.ListLikes() {
		if like.PostID == postID && like.UserID == userID {
			return true
		}
	}
	return false
}

func (s *Service) CountLikes(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, like := range s.store.ListLikes() {
		if like.PostID == postID {
			count++
		}
	}
	return count
}

// AddComment appends a comment and tells the post's author, quoting a
// preview of the comment.
func (s *Service) AddComment(postID, actorID int64, text string) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, fmt.Errorf("%w: comment text is required", ErrInvalid)
	}
	post, ok := s.store.GetPost(postID)
	if !ok {
		return model.Comment{}, fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}
	actor, ok := s.store.GetUser(actorID)
	if !ok {
		return model.Comment{}, fmt.Errorf("user %d: %w", actorID, ErrNotFound)
	}
	comment, err := s.store.CreateComment(model.Comment{
		PostID:    postID,
		UserID:    actorID,
		Text:      text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.Comment{}, err
	}
	if post.UserID != actorID {
		preview := postPreview(model.Post{Text: text}, 20)
		s.emitLocked(post.UserID, model.KindPostCommented,
			fmt.Sprintf("%s comentou na sua publicação: \"%s\"", actor.DisplayName(), preview),
			map[string]int64{"post_id": postID, "comment_id": comment.ID, "actor_id": actorID})
	}
	return comment, nil
}

// DeleteComment removes a comment. The comment's author and the post's
// author may both delete it.
func (s *Service) DeleteComment(commentID, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.store.GetComment(commentID)
	if !ok {
		return fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
	}
	if comment.UserID != actorID {
		post, ok := s.store.GetPost(comment.PostID)
		if !ok || post.UserID != actorID {
			return fmt.Errorf("%w: only the comment or post author can delete a comment", ErrInvalid)
		}
	}
	return s.store.DeleteComment(commentID)
}

// CommentsByPost lists a post's comments, oldest first.
func (s *Service) CommentsByPost(postID int64) []model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := make([]model.Comment, 0)
	for _, c := range s.store.ListComments() {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments
}

func (s *Service) CountComments(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.store.ListComments() {
		if c.PostID == postID {
			count++
		}
	}
	return count
}
