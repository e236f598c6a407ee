package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"society-app/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the collections in a single SQLite database file.
// Integer ids come from AUTOINCREMENT, which preserves the max-plus-one
// allocation the other backends use.
type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/sqlite"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteUserCols = `id, login, password_hash, phone, name, player_alias, photo_ref`

func (s *SQLiteStore) ListUsers() []model.User {
	rows, err := s.db.Query(`SELECT ` + sqliteUserCols + ` FROM users ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.Name, &u.PlayerAlias, &u.PhotoRef); err != nil {
			continue
		}
		users = append(users, u)
	}
	return users
}

func (s *SQLiteStore) GetUser(id int64) (model.User, bool) {
	var u model.User
	err := s.db.QueryRow(`SELECT `+sqliteUserCols+` FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.Name, &u.PlayerAlias, &u.PhotoRef)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) GetUserByLogin(login string) (model.User, bool) {
	var u model.User
	err := s.db.QueryRow(`SELECT `+sqliteUserCols+` FROM users WHERE lower(login) = lower(?) LIMIT 1`, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.Name, &u.PlayerAlias, &u.PhotoRef)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) GetUserByPhone(phone string) (model.User, bool) {
	var u model.User
	err := s.db.QueryRow(`SELECT `+sqliteUserCols+` FROM users WHERE phone = ? LIMIT 1`, phone).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.Name, &u.PlayerAlias, &u.PhotoRef)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *SQLiteStore) CreateUser(user model.User) (model.User, error) {
	if strings.TrimSpace(user.Login) == "" {
		return model.User{}, errors.New("login is required")
	}
	err := s.db.QueryRow(`INSERT INTO users (login, password_hash, phone, name, player_alias, photo_ref) VALUES (?,?,?,?,?,?) RETURNING id`,
		user.Login, user.PasswordHash, user.Phone, user.Name, user.PlayerAlias, user.PhotoRef,
	).Scan(&user.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return model.User{}, errors.New("login already exists")
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *SQLiteStore) UpdateUser(user model.User) error {
	res, err := s.db.Exec(`UPDATE users SET login = ?, password_hash = ?, phone = ?, name = ?, player_alias = ?, photo_ref = ? WHERE id = ?`,
		user.Login, user.PasswordHash, user.Phone, user.Name, user.PlayerAlias, user.PhotoRef, user.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "user")
}

func (s *SQLiteStore) ListVenues() []model.Venue {
	rows, err := s.db.Query(`SELECT id, name, address, format, surface_type, dimensions, players_per_side FROM venues ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	venues := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Format, &v.SurfaceType, &v.Dimensions, &v.PlayersPerSide); err != nil {
			continue
		}
		venues = append(venues, v)
	}
	return venues
}

func (s *SQLiteStore) GetVenue(id int64) (model.Venue, bool) {
	var v model.Venue
	err := s.db.QueryRow(`SELECT id, name, address, format, surface_type, dimensions, players_per_side FROM venues WHERE id = ?`, id).
		Scan(&v.ID, &v.Name, &v.Address, &v.Format, &v.SurfaceType, &v.Dimensions, &v.PlayersPerSide)
	if err != nil {
		return model.Venue{}, false
	}
	return v, true
}

const sqliteMatchCols = `id, organizer_id, venue_id, match_date, start_time, end_time, price_per_person, total_seats, occupied_seats, status`

func scanSQLiteMatchRow(scanner interface{ Scan(dest ...any) error }) (model.Match, error) {
	var m model.Match
	var status string
	if err := scanner.Scan(&m.ID, &m.OrganizerID, &m.VenueID, &m.Date, &m.StartTime, &m.EndTime,
		&m.PricePerPerson, &m.TotalSeats, &m.OccupiedSeats, &status); err != nil {
		return model.Match{}, err
	}
	m.Status = model.MatchStatus(status)
	return m, nil
}

func (s *SQLiteStore) ListMatches() []model.Match {
	rows, err := s.db.Query(`SELECT ` + sqliteMatchCols + ` FROM matches ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		m, err := scanSQLiteMatchRow(rows)
		if err != nil {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

func (s *SQLiteStore) GetMatch(id int64) (model.Match, bool) {
	m, err := scanSQLiteMatchRow(s.db.QueryRow(`SELECT `+sqliteMatchCols+` FROM matches WHERE id = ?`, id))
	if err != nil {
		return model.Match{}, false
	}
	return m, true
}

func (s *SQLiteStore) CreateMatch(match model.Match) (model.Match, error) {
	err := s.db.QueryRow(`INSERT INTO matches (organizer_id, venue_id, match_date, start_time, end_time, price_per_person, total_seats, occupied_seats, status) VALUES (?,?,?,?,?,?,?,?,?) RETURNING id`,
		match.OrganizerID, match.VenueID, match.Date, match.StartTime, match.EndTime,
		match.PricePerPerson, match.TotalSeats, match.OccupiedSeats, string(match.Status),
	).Scan(&match.ID)
	if err != nil {
		return model.Match{}, err
	}
	return match, nil
}

func (s *SQLiteStore) UpdateMatch(match model.Match) error {
	res, err := s.db.Exec(`UPDATE matches SET organizer_id = ?, venue_id = ?, match_date = ?, start_time = ?, end_time = ?, price_per_person = ?, total_seats = ?, occupied_seats = ?, status = ? WHERE id = ?`,
		match.OrganizerID, match.VenueID, match.Date, match.StartTime, match.EndTime,
		match.PricePerPerson, match.TotalSeats, match.OccupiedSeats, string(match.Status), match.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "match")
}

func (s *SQLiteStore) DeleteMatch(id int64) error {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "match")
}

func (s *SQLiteStore) ListEnrollments() []model.Enrollment {
	rows, err := s.db.Query(`SELECT id, match_id, player_id, status, created_at FROM enrollments ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		var status string
		var createdAt sql.NullString
		if err := rows.Scan(&e.ID, &e.MatchID, &e.PlayerID, &status, &createdAt); err != nil {
			continue
		}
		e.Status = model.EnrollmentStatus(status)
		e.CreatedAt = parseSQLiteTime(createdAt)
		enrollments = append(enrollments, e)
	}
	return enrollments
}

func (s *SQLiteStore) GetEnrollment(id int64) (model.Enrollment, bool) {
	var e model.Enrollment
	var status string
	var createdAt sql.NullString
	err := s.db.QueryRow(`SELECT id, match_id, player_id, status, created_at FROM enrollments WHERE id = ?`, id).
		Scan(&e.ID, &e.MatchID, &e.PlayerID, &status, &createdAt)
	if err != nil {
		return model.Enrollment{}, false
	}
	e.Status = model.EnrollmentStatus(status)
	e.CreatedAt = parseSQLiteTime(createdAt)
	return e, true
}

func (s *SQLiteStore) CreateEnrollment(enr model.Enrollment) (model.Enrollment, error) {
	if enr.CreatedAt.IsZero() {
		enr.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO enrollments (match_id, player_id, status, created_at) VALUES (?,?,?,?) RETURNING id`,
		enr.MatchID, enr.PlayerID, string(enr.Status), formatSQLiteTime(enr.CreatedAt),
	).Scan(&enr.ID)
	if err != nil {
		return model.Enrollment{}, err
	}
	return enr, nil
}

func (s *SQLiteStore) UpdateEnrollment(enr model.Enrollment) error {
	res, err := s.db.Exec(`UPDATE enrollments SET match_id = ?, player_id = ?, status = ?, created_at = ? WHERE id = ?`,
		enr.MatchID, enr.PlayerID, string(enr.Status), formatSQLiteTime(enr.CreatedAt), enr.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "enrollment")
}

func (s *SQLiteStore) DeleteEnrollment(id int64) error {
	res, err := s.db.Exec(`DELETE FROM enrollments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "enrollment")
}

func scanSQLiteNotificationRow(scanner interface{ Scan(dest ...any) error }) (model.Notification, error) {
	var n model.Notification
	var kind string
	var payloadJSON sql.NullString
	var createdAt sql.NullString
	if err := scanner.Scan(&n.ID, &n.RecipientID, &kind, &n.Message, &payloadJSON, &n.Read, &createdAt); err != nil {
		return model.Notification{}, err
	}
	n.Kind = model.NotificationKind(kind)
	n.CreatedAt = parseSQLiteTime(createdAt)
	n.Payload = map[string]int64{}
	if payloadJSON.Valid && strings.TrimSpace(payloadJSON.String) != "" {
		_ = json.Unmarshal([]byte(payloadJSON.String), &n.Payload)
	}
	return n, nil
}

func (s *SQLiteStore) ListNotifications() []model.Notification {
	rows, err := s.db.Query(`SELECT id, recipient_id, kind, message, payload_json, is_read, created_at FROM notifications ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		n, err := scanSQLiteNotificationRow(rows)
		if err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications
}

func (s *SQLiteStore) GetNotification(id int64) (model.Notification, bool) {
	n, err := scanSQLiteNotificationRow(s.db.QueryRow(`SELECT id, recipient_id, kind, message, payload_json, is_read, created_at FROM notifications WHERE id = ?`, id))
	if err != nil {
		return model.Notification{}, false
	}
	return n, true
}

func (s *SQLiteStore) CreateNotification(n model.Notification) (model.Notification, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.Payload == nil {
		n.Payload = map[string]int64{}
	}
	payloadJSON, err := json.Marshal(n.Payload)
	if err != nil {
		return model.Notification{}, err
	}
	err = s.db.QueryRow(`INSERT INTO notifications (recipient_id, kind, message, payload_json, is_read, created_at) VALUES (?,?,?,?,?,?) RETURNING id`,
		n.RecipientID, string(n.Kind), n.Message, string(payloadJSON), n.Read, formatSQLiteTime(n.CreatedAt),
	).Scan(&n.ID)
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (s *SQLiteStore) UpdateNotification(n model.Notification) error {
	payloadJSON, err := json.Marshal(n.Payload)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE notifications SET recipient_id = ?, kind = ?, message = ?, payload_json = ?, is_read = ?, created_at = ? WHERE id = ?`,
		n.RecipientID, string(n.Kind), n.Message, string(payloadJSON), n.Read, formatSQLiteTime(n.CreatedAt), n.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "notification")
}

func scanSQLitePostRow(scanner interface{ Scan(dest ...any) error }) (model.Post, error) {
	var p model.Post
	var createdAt, editedAt sql.NullString
	if err := scanner.Scan(&p.ID, &p.UserID, &p.Text, &p.PhotoRef, &createdAt, &editedAt); err != nil {
		return model.Post{}, err
	}
	p.CreatedAt = parseSQLiteTime(createdAt)
	if editedAt.Valid {
		if parsed, ok := parseTimeString(editedAt.String); ok {
			p.EditedAt = &parsed
		}
	}
	return p, nil
}

func (s *SQLiteStore) ListPosts() []model.Post {
	rows, err := s.db.Query(`SELECT id, user_id, body, photo_ref, created_at, edited_at FROM posts ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanSQLitePostRow(rows)
		if err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts
}

func (s *SQLiteStore) GetPost(id int64) (model.Post, bool) {
	p, err := scanSQLitePostRow(s.db.QueryRow(`SELECT id, user_id, body, photo_ref, created_at, edited_at FROM posts WHERE id = ?`, id))
	if err != nil {
		return model.Post{}, false
	}
	return p, true
}

func (s *SQLiteStore) CreatePost(post model.Post) (model.Post, error) {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO posts (user_id, body, photo_ref, created_at, edited_at) VALUES (?,?,?,?,?) RETURNING id`,
		post.UserID, post.Text, post.PhotoRef, formatSQLiteTime(post.CreatedAt), timePtrValueString(post.EditedAt),
	).Scan(&post.ID)
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *SQLiteStore) UpdatePost(post model.Post) error {
	res, err := s.db.Exec(`UPDATE posts SET user_id = ?, body = ?, photo_ref = ?, created_at = ?, edited_at = ? WHERE id = ?`,
		post.UserID, post.Text, post.PhotoRef, formatSQLiteTime(post.CreatedAt), timePtrValueString(post.EditedAt), post.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "post")
}

func (s *SQLiteStore) DeletePost(id int64) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "post")
}

func (s *SQLiteStore) ListFollows() []model.Follow {
	rows, err := s.db.Query(`SELECT id, follower_id, followed_id, created_at FROM follows ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	follows := []model.Follow{}
	for rows.Next() {
		var f model.Follow
		var createdAt sql.NullString
		if err := rows.Scan(&f.ID, &f.FollowerID, &f.FollowedID, &createdAt); err != nil {
			continue
		}
		f.CreatedAt = parseSQLiteTime(createdAt)
		follows = append(follows, f)
	}
	return follows
}

func (s *SQLiteStore) CreateFollow(follow model.Follow) (model.Follow, error) {
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO follows (follower_id, followed_id, created_at) VALUES (?,?,?) RETURNING id`,
		follow.FollowerID, follow.FollowedID, formatSQLiteTime(follow.CreatedAt),
	).Scan(&follow.ID)
	if err != nil {
		return model.Follow{}, err
	}
	return follow, nil
}

func (s *SQLiteStore) DeleteFollow(followerID, followedID int64) error {
	_, err := s.db.Exec(`DELETE FROM follows WHERE follower_id = ? AND followed_id = ?`, followerID, followedID)
	return err
}

func (s *SQLiteStore) ListLikes() []model.Like {
	rows, err := s.db.Query(`SELECT id, post_id, user_id, created_at FROM likes ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	likes := []model.Like{}
	for rows.Next() {
		var l model.Like
		var createdAt sql.NullString
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &createdAt); err != nil {
			continue
		}
		l.CreatedAt = parseSQLiteTime(createdAt)
		likes = append(likes, l)
	}
	return likes
}

func (s *SQLiteStore) CreateLike(like model.Like) (model.Like, error) {
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO likes (post_id, user_id, created_at) VALUES (?,?,?) RETURNING id`,
		like.PostID, like.UserID, formatSQLiteTime(like.CreatedAt),
	).Scan(&like.ID)
	if err != nil {
		return model.Like{}, err
	}
	return like, nil
}

func (s *SQLiteStore) DeleteLike(postID, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	return err
}

func (s *SQLiteStore) ListComments() []model.Comment {
	rows, err := s.db.Query(`SELECT id, post_id, user_id, body, created_at FROM comments ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		var createdAt sql.NullString
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &createdAt); err != nil {
			continue
		}
		c.CreatedAt = parseSQLiteTime(createdAt)
		comments = append(comments, c)
	}
	return comments
}

func (s *SQLiteStore) GetComment(id int64) (model.Comment, bool) {
	var c model.Comment
	var createdAt sql.NullString
	err := s.db.QueryRow(`SELECT id, post_id, user_id, body, created_at FROM comments WHERE id = ?`, id).
		Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &createdAt)
	if err != nil {
		return model.Comment{}, false
	}
	c.CreatedAt = parseSQLiteTime(createdAt)
	return c, true
}

func (s *SQLiteStore) CreateComment(comment model.Comment) (model.Comment, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO comments (post_id, user_id, body, created_at) VALUES (?,?,?,?) RETURNING id`,
		comment.PostID, comment.UserID, comment.Text, formatSQLiteTime(comment.CreatedAt),
	).Scan(&comment.ID)
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *SQLiteStore) DeleteComment(id int64) error {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "comment")
}

// Timestamps are stored as RFC3339 text; SQLite has no native time type.

func formatSQLiteTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseSQLiteTime(v sql.NullString) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	parsed, _ := parseTimeString(v.String)
	return parsed
}

func parseTimeString(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

func timePtrValueString(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func requireRow(res sql.Result, entity string) error {
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New(entity + " not found")
	}
	return nil
}
