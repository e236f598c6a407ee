package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"society-app/internal/model"
)

// FileStore persists each collection as one JSON file under a data
// directory. Every operation is a full load, scan/mutate, full save of a
// collection, so a single mutex serializes all access: two writers racing
// on the same file would silently lose updates otherwise.
//
// A missing or corrupt file reads as an empty collection; failed saves are
// reported to the caller.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &FileStore{dir: dir}
	if _, err := os.Stat(s.path("venues")); os.IsNotExist(err) {
		if err := saveCollection(s.path("venues"), defaultVenues()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func loadCollection[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

func saveCollection[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func maxID[T any](records []T, id func(T) int64) int64 {
	var max int64
	for _, r := range records {
		if id(r) > max {
			max = id(r)
		}
	}
	return max
}

func (s *FileStore) ListUsers() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.User](s.path("users"))
}

func (s *FileStore) GetUser(id int64) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range loadCollection[model.User](s.path("users")) {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *FileStore) GetUserByLogin(login string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range loadCollection[model.User](s.path("users")) {
		if strings.EqualFold(u.Login, login) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *FileStore) GetUserByPhone(phone string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range loadCollection[model.User](s.path("users")) {
		if u.Phone == phone {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *FileStore) CreateUser(user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(user.Login) == "" {
		return model.User{}, errors.New("login is required")
	}
	users := loadCollection[model.User](s.path("users"))
	for _, u := range users {
		if strings.EqualFold(u.Login, user.Login) {
			return model.User{}, errors.New("login already exists")
		}
	}
	user.ID = maxID(users, func(u model.User) int64 { return u.ID }) + 1
	users = append(users, user)
	if err := saveCollection(s.path("users"), users); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *FileStore) UpdateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := loadCollection[model.User](s.path("users"))
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return saveCollection(s.path("users"), users)
		}
	}
	return errors.New("user not found")
}

func (s *FileStore) ListVenues() []model.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Venue](s.path("venues"))
}

func (s *FileStore) GetVenue(id int64) (model.Venue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range loadCollection[model.Venue](s.path("venues")) {
		if v.ID == id {
			return v, true
		}
	}
	return model.Venue{}, false
}

func (s *FileStore) ListMatches() []model.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Match](s.path("matches"))
}

func (s *FileStore) GetMatch(id int64) (model.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range loadCollection[model.Match](s.path("matches")) {
		if m.ID == id {
			return m, true
		}
	}
	return model.Match{}, false
}

func (s *FileStore) CreateMatch(match model.Match) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := loadCollection[model.Match](s.path("matches"))
	match.ID = maxID(matches, func(m model.Match) int64 { return m.ID }) + 1
	matches = append(matches, match)
	if err := saveCollection(s.path("matches"), matches); err != nil {
		return model.Match{}, err
	}
	return match, nil
}

func (s *FileStore) UpdateMatch(match model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := loadCollection[model.Match](s.path("matches"))
	for i := range matches {
		if matches[i].ID == match.ID {
			matches[i] = match
			return saveCollection(s.path("matches"), matches)
		}
	}
	return errors.New("match not found")
}

func (s *FileStore) DeleteMatch(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := loadCollection[model.Match](s.path("matches"))
	for i := range matches {
		if matches[i].ID == id {
			matches = append(matches[:i], matches[i+1:]...)
			return saveCollection(s.path("matches"), matches)
		}
	}
	return errors.New("match not found")
}

func (s *FileStore) ListEnrollments() []model.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Enrollment](s.path("enrollments"))
}

func (s *FileStore) GetEnrollment(id int64) (model.Enrollment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range loadCollection[model.Enrollment](s.path("enrollments")) {
		if e.ID == id {
			return e, true
		}
	}
	return model.Enrollment{}, false
}

func (s *FileStore) CreateEnrollment(enr model.Enrollment) (model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enr.CreatedAt.IsZero() {
		enr.CreatedAt = time.Now()
	}
	enrollments := loadCollection[model.Enrollment](s.path("enrollments"))
	enr.ID = maxID(enrollments, func(e model.Enrollment) int64 { return e.ID }) + 1
	enrollments = append(enrollments, enr)
	if err := saveCollection(s.path("enrollments"), enrollments); err != nil {
		return model.Enrollment{}, err
	}
	return enr, nil
}

func (s *FileStore) UpdateEnrollment(enr model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollments := loadCollection[model.Enrollment](s.path("enrollments"))
	for i := range enrollments {
		if enrollments[i].ID == enr.ID {
			enrollments[i] = enr
			return saveCollection(s.path("enrollments"), enrollments)
		}
	}
	return errors.New("enrollment not found")
}

func (s *FileStore) DeleteEnrollment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollments := loadCollection[model.Enrollment](s.path("enrollments"))
	for i := range enrollments {
		if enrollments[i].ID == id {
			enrollments = append(enrollments[:i], enrollments[i+1:]...)
			return saveCollection(s.path("enrollments"), enrollments)
		}
	}
	return errors.New("enrollment not found")
}

func (s *FileStore) ListNotifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Notification](s.path("notifications"))
}

func (s *FileStore) GetNotification(id int64) (model.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range loadCollection[model.Notification](s.path("notifications")) {
		if n.ID == id {
			return n, true
		}
	}
	return model.Notification{}, false
}

func (s *FileStore) CreateNotification(n model.Notification) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Payload == nil {
		n.Payload = map[string]int64{}
	}
	notifications := loadCollection[model.Notification](s.path("notifications"))
	n.ID = maxID(notifications, func(r model.Notification) int64 { return r.ID }) + 1
	notifications = append(notifications, n)
	if err := saveCollection(s.path("notifications"), notifications); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (s *FileStore) UpdateNotification(n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := loadCollection[model.Notification](s.path("notifications"))
	for i := range notifications {
		if notifications[i].ID == n.ID {
			notifications[i] = n
			return saveCollection(s.path("notifications"), notifications)
		}
	}
	return errors.New("notification not found")
}

func (s *FileStore) ListPosts() []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Post](s.path("posts"))
}

func (s *FileStore) GetPost(id int64) (model.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range loadCollection[model.Post](s.path("posts")) {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

func (s *FileStore) CreatePost(post model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	posts := loadCollection[model.Post](s.path("posts"))
	post.ID = maxID(posts, func(p model.Post) int64 { return p.ID }) + 1
	posts = append(posts, post)
	if err := saveCollection(s.path("posts"), posts); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *FileStore) UpdatePost(post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := loadCollection[model.Post](s.path("posts"))
	for i := range posts {
		if posts[i].ID == post.ID {
			posts[i] = post
			return saveCollection(s.path("posts"), posts)
		}
	}
	return errors.New("post not found")
}

func (s *FileStore) DeletePost(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := loadCollection[model.Post](s.path("posts"))
	for i := range posts {
		if posts[i].ID == id {
			posts = append(posts[:i], posts[i+1:]...)
			return saveCollection(s.path("posts"), posts)
		}
	}
	return errors.New("post not found")
}

func (s *FileStore) ListFollows() []model.Follow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Follow](s.path("follows"))
}

func (s *FileStore) CreateFollow(follow model.Follow) (model.Follow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	follows := loadCollection[model.Follow](s.path("follows"))
	follow.ID = maxID(follows, func(f model.Follow) int64 { return f.ID }) + 1
	follows = append(follows, follow)
	if err := saveCollection(s.path("follows"), follows); err != nil {
		return model.Follow{}, err
	}
	return follow, nil
}

func (s *FileStore) DeleteFollow(followerID, followedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	follows := loadCollection[model.Follow](s.path("follows"))
	for i := range follows {
		if follows[i].FollowerID == followerID && follows[i].FollowedID == followedID {
			follows = append(follows[:i], follows[i+1:]...)
			return saveCollection(s.path("follows"), follows)
		}
	}
	return errors.New("follow not found")
}

func (s *FileStore) ListLikes() []model.Like {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Like](s.path("likes"))
}

func (s *FileStore) CreateLike(like model.Like) (model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	likes := loadCollection[model.Like](s.path("likes"))
	like.ID = maxID(likes, func(l model.Like) int64 { return l.ID }) + 1
	likes = append(likes, like)
	if err := saveCollection(s.path("likes"), likes); err != nil {
		return model.Like{}, err
	}
	return like, nil
}

func (s *FileStore) DeleteLike(postID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes := loadCollection[model.Like](s.path("likes"))
	for i := range likes {
		if likes[i].PostID == postID && likes[i].UserID == userID {
			likes = append(likes[:i], likes[i+1:]...)
			return saveCollection(s.path("likes"), likes)
		}
	}
	return errors.New("like not found")
}

func (s *FileStore) ListComments() []model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadCollection[model.Comment](s.path("comments"))
}

func (s *FileStore) GetComment(id int64) (model.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range loadCollection[model.Comment](s.path("comments")) {
		if c.ID == id {
			return c, true
		}
	}
	return model.Comment{}, false
}

func (s *FileStore) CreateComment(comment model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comments := loadCollection[model.Comment](s.path("comments"))
	comment.ID = maxID(comments, func(c model.Comment) int64 { return c.ID }) + 1
	comments = append(comments, comment)
	if err := saveCollection(s.path("comments"), comments); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *FileStore) DeleteComment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := loadCollection[model.Comment](s.path("comments"))
	for i := range comments {
		if comments[i].ID == id {
			comments = append(comments[:i], comments[i+1:]...)
			return saveCollection(s.path("comments"), comments)
		}
	}
	return errors.New("comment not found")
}
