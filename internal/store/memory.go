package store

import (
	"errors"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"society-app/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// MemoryStore keeps every collection in process memory. It backs tests and
// local development; the venue catalog is always seeded, demo users and
// matches only outside APP=prod.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[int64]model.User
	venues        map[int64]model.Venue
	matches       map[int64]model.Match
	enrollments   map[int64]model.Enrollment
	notifications map[int64]model.Notification
	posts         map[int64]model.Post
	follows       map[int64]model.Follow
	likes         map[int64]model.Like
	comments      map[int64]model.Comment
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:         make(map[int64]model.User),
		venues:        make(map[int64]model.Venue),
		matches:       make(map[int64]model.Match),
		enrollments:   make(map[int64]model.Enrollment),
		notifications: make(map[int64]model.Notification),
		posts:         make(map[int64]model.Post),
		follows:       make(map[int64]model.Follow),
		likes:         make(map[int64]model.Like),
		comments:      make(map[int64]model.Comment),
	}
	seedVenues(s)
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP"))) != "prod" {
		seedDemoData(s)
	}
	return s
}

func nextID[T any](records map[int64]T) int64 {
	var max int64
	for id := range records {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (s *MemoryStore) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (s *MemoryStore) GetUser(id int64) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *MemoryStore) GetUserByLogin(login string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Login, login) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *MemoryStore) GetUserByPhone(phone string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Phone == phone {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *MemoryStore) CreateUser(user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(user.Login) == "" {
		return model.User{}, errors.New("login is required")
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Login, user.Login) {
			return model.User{}, errors.New("login already exists")
		}
	}
	user.ID = nextID(s.users)
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) UpdateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	s.users[user.ID] = user
	return nil
}

func (s *MemoryStore) ListVenues() []model.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	venues := make([]model.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		venues = append(venues, v)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })
	return venues
}

func (s *MemoryStore) GetVenue(id int64) (model.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	return v, ok
}

func (s *MemoryStore) ListMatches() []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}

func (s *MemoryStore) GetMatch(id int64) (model.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	return m, ok
}

func (s *MemoryStore) CreateMatch(match model.Match) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match.ID = nextID(s.matches)
	s.matches[match.ID] = match
	return match, nil
}

func (s *MemoryStore) UpdateMatch(match model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[match.ID]; !ok {
		return errors.New("match not found")
	}
	s.matches[match.ID] = match
	return nil
}

func (s *MemoryStore) DeleteMatch(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return errors.New("match not found")
	}
	delete(s.matches, id)
	return nil
}

func (s *MemoryStore) ListEnrollments() []model.Enrollment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enrollments := make([]model.Enrollment, 0, len(s.enrollments))
	for _, e := range s.enrollments {
		enrollments = append(enrollments, e)
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments
}

func (s *MemoryStore) GetEnrollment(id int64) (model.Enrollment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.enrollments[id]
	return e, ok
}

func (s *MemoryStore) CreateEnrollment(enr model.Enrollment) (model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enr.CreatedAt.IsZero() {
		enr.CreatedAt = time.Now()
	}
	enr.ID = nextID(s.enrollments)
	s.enrollments[enr.ID] = enr
	return enr, nil
}

func (s *MemoryStore) UpdateEnrollment(enr model.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.enrollments[enr.ID]; !ok {
		return errors.New("enrollment not found")
	}
	s.enrollments[enr.ID] = enr
	return nil
}

func (s *MemoryStore) DeleteEnrollment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.enrollments[id]; !ok {
		return errors.New("enrollment not found")
	}
	delete(s.enrollments, id)
	return nil
}

func (s *MemoryStore) ListNotifications() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]model.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		notifications = append(notifications, n)
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID < notifications[j].ID })
	return notifications
}

func (s *MemoryStore) GetNotification(id int64) (model.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	return n, ok
}

func (s *MemoryStore) CreateNotification(n model.Notification) (model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Payload == nil {
		n.Payload = map[string]int64{}
	}
	n.ID = nextID(s.notifications)
	s.notifications[n.ID] = n
	return n, nil
}

func (s *MemoryStore) UpdateNotification(n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[n.ID]; !ok {
		return errors.New("notification not found")
	}
	s.notifications[n.ID] = n
	return nil
}

func (s *MemoryStore) ListPosts() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts
}

func (s *MemoryStore) GetPost(id int64) (model.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	return p, ok
}

func (s *MemoryStore) CreatePost(post model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.ID = nextID(s.posts)
	s.posts[post.ID] = post
	return post, nil
}

func (s *MemoryStore) UpdatePost(post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return errors.New("post not found")
	}
	s.posts[post.ID] = post
	return nil
}

func (s *MemoryStore) DeletePost(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return errors.New("post not found")
	}
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) ListFollows() []model.Follow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	follows := make([]model.Follow, 0, len(s.follows))
	for _, f := range s.follows {
		follows = append(follows, f)
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].ID < follows[j].ID })
	return follows
}

func (s *MemoryStore) CreateFollow(follow model.Follow) (model.Follow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	follow.ID = nextID(s.follows)
	s.follows[follow.ID] = follow
	return follow, nil
}

func (s *MemoryStore) DeleteFollow(followerID, followedID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, f := range s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			delete(s.follows, id)
			return nil
		}
	}
	return errors.New("follow not found")
}

func (s *MemoryStore) ListLikes() []model.Like {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likes := make([]model.Like, 0, len(s.likes))
	for _, l := range s.likes {
		likes = append(likes, l)
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].ID < likes[j].ID })
	return likes
}

func (s *MemoryStore) CreateLike(like model.Like) (model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	like.ID = nextID(s.likes)
	s.likes[like.ID] = like
	return like, nil
}

func (s *MemoryStore) DeleteLike(postID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			delete(s.likes, id)
			return nil
		}
	}
	return errors.New("like not found")
}

func (s *MemoryStore) ListComments() []model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]model.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		comments = append(comments, c)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments
}

func (s *MemoryStore) GetComment(id int64) (model.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	return c, ok
}

func (s *MemoryStore) CreateComment(comment model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.ID = nextID(s.comments)
	s.comments[comment.ID] = comment
	return comment, nil
}

func (s *MemoryStore) DeleteComment(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return errors.New("comment not found")
	}
	delete(s.comments, id)
	return nil
}

func hashPIN(pin string) string {
	if pin == "" {
		return ""
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

func seedVenues(s *MemoryStore) {
	for _, v := range defaultVenues() {
		s.venues[v.ID] = v
	}
}

func seedDemoData(s *MemoryStore) {
	defaultHash := hashPIN("1234")

	users := []model.User{
		{ID: 1, Login: "carlao", Phone: "11 98765-4321", Name: "Carlos Pereira", PlayerAlias: "Carlão"},
		{ID: 2, Login: "rafinha", Phone: "11 91234-5678", Name: "Rafael Souza", PlayerAlias: "Rafinha"},
		{ID: 3, Login: "dudu", Phone: "11 99887-6655", Name: "Eduardo Lima"},
		{ID: 4, Login: "marcela.f", Phone: "11 97654-3210", Name: "Marcela Ferreira", PlayerAlias: "Marcela"},
		{ID: 5, Login: "tiagol", Phone: "11 96543-2109", Name: "Tiago Oliveira"},
	}
	for i := range users {
		users[i].PasswordHash = defaultHash
		s.users[users[i].ID] = users[i]
	}

	nextSaturday := time.Now().AddDate(0, 0, 7).Format(model.DateLayout)
	matches := []model.Match{
		{ID: 1, OrganizerID: 1, VenueID: 1, Date: nextSaturday, StartTime: "18:00", EndTime: "19:00", PricePerPerson: 25, TotalSeats: 14, OccupiedSeats: 1, Status: model.MatchActive},
		{ID: 2, OrganizerID: 2, VenueID: 3, Date: nextSaturday, StartTime: "20:00", EndTime: "21:00", PricePerPerson: 15, TotalSeats: 10, OccupiedSeats: 0, Status: model.MatchActive},
	}
	for _, m := range matches {
		s.matches[m.ID] = m
	}

	s.enrollments[1] = model.Enrollment{ID: 1, MatchID: 1, PlayerID: 2, Status: model.EnrollmentApproved, CreatedAt: time.Now().AddDate(0, 0, -1)}
	s.enrollments[2] = model.Enrollment{ID: 2, MatchID: 1, PlayerID: 3, Status: model.EnrollmentPending, CreatedAt: time.Now()}
}
