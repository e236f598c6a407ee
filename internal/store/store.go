package store

import "society-app/internal/model"

// Store is the persistence abstraction: typed access to each record
// collection, with whole-collection scan semantics. Backends assign ids
// (max existing + 1, starting at 1) and never enforce cross-collection
// invariants — that is the service layer's job.
//
// List methods degrade to an empty collection when the backing data is
// missing or unreadable; Create/Update/Delete report failures explicitly.
type Store interface {
	ListUsers() []model.User
	GetUser(id int64) (model.User, bool)
	GetUserByLogin(login string) (model.User, bool)
	GetUserByPhone(phone string) (model.User, bool)
	CreateUser(user model.User) (model.User, error)
	UpdateUser(user model.User) error

	ListVenues() []model.Venue
	GetVenue(id int64) (model.Venue, bool)

	ListMatches() []model.Match
	GetMatch(id int64) (model.Match, bool)
	CreateMatch(match model.Match) (model.Match, error)
	UpdateMatch(match model.Match) error
	DeleteMatch(id int64) error

	ListEnrollments() []model.Enrollment
	GetEnrollment(id int64) (model.Enrollment, bool)
	CreateEnrollment(enr model.Enrollment) (model.Enrollment, error)
	UpdateEnrollment(enr model.Enrollment) error
	DeleteEnrollment(id int64) error

	ListNotifications() []model.Notification
	GetNotification(id int64) (model.Notification, bool)
	CreateNotification(n model.Notification) (model.Notification, error)
	UpdateNotification(n model.Notification) error

	ListPosts() []model.Post
	GetPost(id int64) (model.Post, bool)
	CreatePost(post model.Post) (model.Post, error)
	UpdatePost(post model.Post) error
	DeletePost(id int64) error

	ListFollows() []model.Follow
	CreateFollow(follow model.Follow) (model.Follow, error)
	DeleteFollow(followerID, followedID int64) error

	ListLikes() []model.Like
	CreateLike(like model.Like) (model.Like, error)
	DeleteLike(postID, userID int64) error

	ListComments() []model.Comment
	GetComment(id int64) (model.Comment, bool)
	CreateComment(comment model.Comment) (model.Comment, error)
	DeleteComment(id int64) error
}
