package model

import (
	"strings"
	"time"
)

type MatchStatus string
type EnrollmentStatus string
type NotificationKind string

const (
	MatchActive    MatchStatus = "active"
	MatchCancelled MatchStatus = "cancelled"
	MatchFinished  MatchStatus = "finished"

	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentRejected  EnrollmentStatus = "rejected"
	EnrollmentCancelled EnrollmentStatus = "cancelled"

	KindNewEnrollment       NotificationKind = "new_enrollment"
	KindEnrollmentApproved  NotificationKind = "enrollment_approved"
	KindEnrollmentRejected  NotificationKind = "enrollment_rejected"
	KindEnrollmentCancelled NotificationKind = "enrollment_cancelled"
	KindRemovedFromMatch    NotificationKind = "removed_from_match"
	KindMatchCancelled      NotificationKind = "match_cancelled"
	KindNewFollower         NotificationKind = "new_follower"
	KindPostLiked           NotificationKind = "post_liked"
	KindPostCommented       NotificationKind = "post_commented"
)

// Layouts for the date and clock strings stored on matches. Both are
// zero-padded, so lexicographic comparison orders them correctly.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Phone        string
	Name         string
	PlayerAlias  string
	PhotoRef     string
}

// DisplayName returns the name shown in notifications and listings:
// player alias, then full name, then login.
func (u User) DisplayName() string {
	if alias := strings.TrimSpace(u.PlayerAlias); alias != "" {
		return alias
	}
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Login
}

// Venue is read-only reference data; the catalog is loaded wholesale and
// never mutated by the application.
type Venue struct {
	ID             int64
	Name           string
	Address        string
	Format         string
	SurfaceType    string
	Dimensions     string
	PlayersPerSide int
}

// MaxSeats is the seat ceiling for matches at this venue.
func (v Venue) MaxSeats() int {
	return v.PlayersPerSide * 2
}

type Match struct {
	ID             int64
	OrganizerID    int64
	VenueID        int64
	Date           string // DateLayout
	StartTime      string // ClockLayout
	EndTime        string // ClockLayout
	PricePerPerson float64
	TotalSeats     int
	OccupiedSeats  int
	Status         MatchStatus
}

func (m Match) SeatsLeft() int {
	return m.TotalSeats - m.OccupiedSeats
}

type Enrollment struct {
	ID        int64
	MatchID   int64
	PlayerID  int64
	Status    EnrollmentStatus
	CreatedAt time.Time
}

// Active reports whether the enrollment still holds (or may come to hold)
// a seat. Rejected and cancelled are terminal and do not block a fresh
// request for the same match.
func (e Enrollment) Active() bool {
	return e.Status == EnrollmentPending || e.Status == EnrollmentApproved
}

type Notification struct {
	ID          int64
	RecipientID int64
	Kind        NotificationKind
	Message     string
	Payload     map[string]int64
	Read        bool
	CreatedAt   time.Time
}

type Post struct {
	ID        int64
	UserID    int64
	Text      string
	PhotoRef  string
	CreatedAt time.Time
	EditedAt  *time.Time
}

type Follow struct {
	ID         int64
	FollowerID int64
	FollowedID int64
	CreatedAt  time.Time
}

type Like struct {
	ID        int64
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Text      string
	CreatedAt time.Time
}
