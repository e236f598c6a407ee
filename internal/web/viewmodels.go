package web

import (
	"time"

	"society-app/internal/model"
)

// JSON shapes returned by the API. Internal fields like password hashes
// never leave the model package through these.

type userView struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Phone       string `json:"phone,omitempty"`
	Name        string `json:"name,omitempty"`
	PlayerAlias string `json:"player_alias,omitempty"`
	PhotoRef    string `json:"photo_ref,omitempty"`
	DisplayName string `json:"display_name"`
}

func toUserView(u model.User) userView {
	return userView{
		ID:          u.ID,
		Login:       u.Login,
		Phone:       u.Phone,
		Name:        u.Name,
		PlayerAlias: u.PlayerAlias,
		PhotoRef:    u.PhotoRef,
		DisplayName: u.DisplayName(),
	}
}

type venueView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Format         string `json:"format"`
	SurfaceType    string `json:"surface_type"`
	Dimensions     string `json:"dimensions"`
	PlayersPerSide int    `json:"players_per_side"`
	MaxSeats       int    `json:"max_seats"`
}

func toVenueView(v model.Venue) venueView {
	return venueView{
		ID:             v.ID,
		Name:           v.Name,
		Address:        v.Address,
		Format:         v.Format,
		SurfaceType:    v.SurfaceType,
		Dimensions:     v.Dimensions,
		PlayersPerSide: v.PlayersPerSide,
		MaxSeats:       v.MaxSeats(),
	}
}

type matchView struct {
	ID             int64   `json:"id"`
	OrganizerID    int64   `json:"organizer_id"`
	VenueID        int64   `json:"venue_id"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	PricePerPerson float64 `json:"price_per_person"`
	TotalSeats     int     `json:"total_seats"`
	OccupiedSeats  int     `json:"occupied_seats"`
	SeatsLeft      int     `json:"seats_left"`
	Status         string  `json:"status"`
}

func toMatchView(m model.Match) matchView {
	return matchView{
		ID:             m.ID,
		OrganizerID:    m.OrganizerID,
		VenueID:        m.VenueID,
		Date:           m.Date,
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		PricePerPerson: m.PricePerPerson,
		TotalSeats:     m.TotalSeats,
		OccupiedSeats:  m.OccupiedSeats,
		SeatsLeft:      m.SeatsLeft(),
		Status:         string(m.Status),
	}
}

func toMatchViews(matches []model.Match) []matchView {
	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, toMatchView(m))
	}
	return views
}

type enrollmentView struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"match_id"`
	PlayerID  int64     `json:"player_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toEnrollmentView(e model.Enrollment) enrollmentView {
	return enrollmentView{
		ID:        e.ID,
		MatchID:   e.MatchID,
		PlayerID:  e.PlayerID,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

func toEnrollmentViews(enrollments []model.Enrollment) []enrollmentView {
	views := make([]enrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, toEnrollmentView(e))
	}
	return views
}

type notificationView struct {
	ID        int64            `json:"id"`
	Kind      string           `json:"kind"`
	Message   string           `json:"message"`
	Payload   map[string]int64 `json:"payload,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

func toNotificationViews(notifications []model.Notification) []notificationView {
	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, notificationView{
			ID:        n.ID,
			Kind:      string(n.Kind),
			Message:   n.Message,
			Payload:   n.Payload,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return views
}

type postView struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Text      string     `json:"text,omitempty"`
	PhotoRef  string     `json:"photo_ref,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	Likes     int        `json:"likes"`
	Comments  int        `json:"comments"`
}

func (s *Server) toPostView(p model.Post) postView {
	return postView{
		ID:        p.ID,
		UserID:    p.UserID,
		Text:      p.Text,
		PhotoRef:  p.PhotoRef,
		CreatedAt: p.CreatedAt,
		EditedAt:  p.EditedAt,
		Likes:     s.svc.CountLikes(p.ID),
		Comments:  s.svc.CountComments(p.ID),
	}
}

func (s *Server) toPostViews(posts []model.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, s.toPostView(p))
	}
	return views
}

type commentView struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentView(c model.Comment) commentView {
	return commentView{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toCommentViews(comments []model.Comment) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, toCommentView(c))
	}
	return views
}
