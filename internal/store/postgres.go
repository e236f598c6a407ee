package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"society-app/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps the collections in Postgres via the pgx stdlib
// driver. Ids come from BIGSERIAL sequences.
type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	MigrationsDir string
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	migrationsDir := strings.TrimSpace(opts.MigrationsDir)
	if migrationsDir == "" {
		migrationsDir = "migrations/postgres"
	}
	if err := applyMigrations(db, migrationsDir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

const pgUserCols = `id, login, password_hash, phone, name, player_alias, photo_ref`

func (s *PostgresStore) ListUsers() []model.User {
	rows, err := s.db.Query(`SELECT ` + pgUserCols + ` FROM users ORDER BY id`)
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

func (s *PostgresStore) GetUser(id int64) (model.User, bool) {
	var u model.User
	err := s.db.QueryRow(`SELECT `+pgUserCols+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.Name, &u.PlayerAlias, &u.PhotoRef)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *PostgresStore) GetUserByLogin(login string) (model.User, bool) {
	var u model.User
	err := s.db.QueryRow(`SELECT `+pgUserCols+` FROM users WHERE lower(login) = lower($1) LIMIT 1`, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.Name, &u.PlayerAlias, &u.PhotoRef)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *PostgresStore) GetUserByPhone(phone string) (model.User, bool) {
	var u model.User
	err := s.db.QueryRow(`SELECT `+pgUserCols+` FROM users WHERE phone = $1 LIMIT 1`, phone).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Phone, &u.Name, &u.PlayerAlias, &u.PhotoRef)
	if err != nil {
		return model.User{}, false
	}
	return u, true
}

func (s *PostgresStore) CreateUser(user model.User) (model.User, error) {
	if strings.TrimSpace(user.Login) == "" {
		return model.User{}, errors.New("login is required")
	}
	err := s.db.QueryRow(`INSERT INTO users (login, password_hash, phone, name, player_alias, photo_ref) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
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

func (s *PostgresStore) UpdateUser(user model.User) error {
	res, err := s.db.Exec(`UPDATE users SET login = $1, password_hash = $2, phone = $3, name = $4, player_alias = $5, photo_ref = $6 WHERE id = $7`,
		user.Login, user.PasswordHash, user.Phone, user.Name, user.PlayerAlias, user.PhotoRef, user.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "user")
}

func (s *PostgresStore) ListVenues() []model.Venue {
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

func (s *PostgresStore) GetVenue(id int64) (model.Venue, bool) {
	var v model.Venue
	err := s.db.QueryRow(`SELECT id, name, address, format, surface_type, dimensions, players_per_side FROM venues WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Address, &v.Format, &v.SurfaceType, &v.Dimensions, &v.PlayersPerSide)
	if err != nil {
		return model.Venue{}, false
	}
	return v, true
}

const pgMatchCols = `id, organizer_id, venue_id, match_date, start_time, end_time, price_per_person, total_seats, occupied_seats, status`

func scanPostgresMatchRow(scanner interface{ Scan(dest ...any) error }) (model.Match, error) {
	var m model.Match
	var status string
	if err := scanner.Scan(&m.ID, &m.OrganizerID, &m.VenueID, &m.Date, &m.StartTime, &m.EndTime,
		&m.PricePerPerson, &m.TotalSeats, &m.OccupiedSeats, &status); err != nil {
		return model.Match{}, err
	}
	m.Status = model.MatchStatus(status)
	return m, nil
}

func (s *PostgresStore) ListMatches() []model.Match {
	rows, err := s.db.Query(`SELECT ` + pgMatchCols + ` FROM matches ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		m, err := scanPostgresMatchRow(rows)
		if err != nil {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

func (s *PostgresStore) GetMatch(id int64) (model.Match, bool) {
	m, err := scanPostgresMatchRow(s.db.QueryRow(`SELECT `+pgMatchCols+` FROM matches WHERE id = $1`, id))
	if err != nil {
		return model.Match{}, false
	}
	return m, true
}

func (s *PostgresStore) CreateMatch(match model.Match) (model.Match, error) {
	err := s.db.QueryRow(`INSERT INTO matches (organizer_id, venue_id, match_date, start_time, end_time, price_per_person, total_seats, occupied_seats, status) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		match.OrganizerID, match.VenueID, match.Date, match.StartTime, match.EndTime,
		match.PricePerPerson, match.TotalSeats, match.OccupiedSeats, string(match.Status),
	).Scan(&match.ID)
	if err != nil {
		return model.Match{}, err
	}
	return match, nil
}

func (s *PostgresStore) UpdateMatch(match model.Match) error {
	res, err := s.db.Exec(`UPDATE matches SET organizer_id = $1, venue_id = $2, match_date = $3, start_time = $4, end_time = $5, price_per_person = $6, total_seats = $7, occupied_seats = $8, status = $9 WHERE id = $10`,
		match.OrganizerID, match.VenueID, match.Date, match.StartTime, match.EndTime,
		match.PricePerPerson, match.TotalSeats, match.OccupiedSeats, string(match.Status), match.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "match")
}

func (s *PostgresStore) DeleteMatch(id int64) error {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "match")
}

func (s *PostgresStore) ListEnrollments() []model.Enrollment {
	rows, err := s.db.Query(`SELECT id, match_id, player_id, status, created_at FROM enrollments ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		var status string
		var createdAt sql.NullTime
		if err := rows.Scan(&e.ID, &e.MatchID, &e.PlayerID, &status, &createdAt); err != nil {
			continue
		}
		e.Status = model.EnrollmentStatus(status)
		e.CreatedAt = createdAt.Time
		enrollments = append(enrollments, e)
	}
	return enrollments
}

func (s *PostgresStore) GetEnrollment(id int64) (model.Enrollment, bool) {
	var e model.Enrollment
	var status string
	var createdAt sql.NullTime
	err := s.db.QueryRow(`SELECT id, match_id, player_id, status, created_at FROM enrollments WHERE id = $1`, id).
		Scan(&e.ID, &e.MatchID, &e.PlayerID, &status, &createdAt)
	if err != nil {
		return model.Enrollment{}, false
	}
	e.Status = model.EnrollmentStatus(status)
	e.CreatedAt = createdAt.Time
	return e, true
}

func (s *PostgresStore) CreateEnrollment(enr model.Enrollment) (model.Enrollment, error) {
	if enr.CreatedAt.IsZero() {
		enr.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO enrollments (match_id, player_id, status, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		enr.MatchID, enr.PlayerID, string(enr.Status), enr.CreatedAt,
	).Scan(&enr.ID)
	if err != nil {
		return model.Enrollment{}, err
	}
	return enr, nil
}

func (s *PostgresStore) UpdateEnrollment(enr model.Enrollment) error {
	res, err := s.db.Exec(`UPDATE enrollments SET match_id = $1, player_id = $2, status = $3, created_at = $4 WHERE id = $5`,
		enr.MatchID, enr.PlayerID, string(enr.Status), enr.CreatedAt, enr.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "enrollment")
}

func (s *PostgresStore) DeleteEnrollment(id int64) error {
	res, err := s.db.Exec(`DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "enrollment")
}

func scanPostgresNotificationRow(scanner interface{ Scan(dest ...any) error }) (model.Notification, error) {
	var n model.Notification
	var kind string
	var payloadJSON sql.NullString
	var createdAt sql.NullTime
	if err := scanner.Scan(&n.ID, &n.RecipientID, &kind, &n.Message, &payloadJSON, &n.Read, &createdAt); err != nil {
		return model.Notification{}, err
	}
	n.Kind = model.NotificationKind(kind)
	n.CreatedAt = createdAt.Time
	n.Payload = map[string]int64{}
	if payloadJSON.Valid && strings.TrimSpace(payloadJSON.String) != "" {
		_ = json.Unmarshal([]byte(payloadJSON.String), &n.Payload)
	}
	return n, nil
}

func (s *PostgresStore) ListNotifications() []model.Notification {
	rows, err := s.db.Query(`SELECT id, recipient_id, kind, message, payload_json, is_read, created_at FROM notifications ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		n, err := scanPostgresNotificationRow(rows)
		if err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications
}

func (s *PostgresStore) GetNotification(id int64) (model.Notification, bool) {
	n, err := scanPostgresNotificationRow(s.db.QueryRow(`SELECT id, recipient_id, kind, message, payload_json, is_read, created_at FROM notifications WHERE id = $1`, id))
	if err != nil {
		return model.Notification{}, false
	}
	return n, true
}

func (s *PostgresStore) CreateNotification(n model.Notification) (model.Notification, error) {
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
	err = s.db.QueryRow(`INSERT INTO notifications (recipient_id, kind, message, payload_json, is_read, created_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		n.RecipientID, string(n.Kind), n.Message, string(payloadJSON), n.Read, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (s *PostgresStore) UpdateNotification(n model.Notification) error {
	payloadJSON, err := json.Marshal(n.Payload)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE notifications SET recipient_id = $1, kind = $2, message = $3, payload_json = $4, is_read = $5, created_at = $6 WHERE id = $7`,
		n.RecipientID, string(n.Kind), n.Message, string(payloadJSON), n.Read, n.CreatedAt, n.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "notification")
}

func scanPostgresPostRow(scanner interface{ Scan(dest ...any) error }) (model.Post, error) {
	var p model.Post
	var createdAt, editedAt sql.NullTime
	if err := scanner.Scan(&p.ID, &p.UserID, &p.Text, &p.PhotoRef, &createdAt, &editedAt); err != nil {
		return model.Post{}, err
	}
	p.CreatedAt = createdAt.Time
	if editedAt.Valid {
		t := editedAt.Time
		p.EditedAt = &t
	}
	return p, nil
}

func (s *PostgresStore) ListPosts() []model.Post {
	rows, err := s.db.Query(`SELECT id, user_id, body, photo_ref, created_at, edited_at FROM posts ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPostgresPostRow(rows)
		if err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts
}

func (s *PostgresStore) GetPost(id int64) (model.Post, bool) {
	p, err := scanPostgresPostRow(s.db.QueryRow(`SELECT id, user_id, body, photo_ref, created_at, edited_at FROM posts WHERE id = $1`, id))
	if err != nil {
		return model.Post{}, false
	}
	return p, true
}

func (s *PostgresStore) CreatePost(post model.Post) (model.Post, error) {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO posts (user_id, body, photo_ref, created_at, edited_at) VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		post.UserID, post.Text, post.PhotoRef, post.CreatedAt, timePtrValue(post.EditedAt),
	).Scan(&post.ID)
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *PostgresStore) UpdatePost(post model.Post) error {
	res, err := s.db.Exec(`UPDATE posts SET user_id = $1, body = $2, photo_ref = $3, created_at = $4, edited_at = $5 WHERE id = $6`,
		post.UserID, post.Text, post.PhotoRef, post.CreatedAt, timePtrValue(post.EditedAt), post.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "post")
}

func (s *PostgresStore) DeletePost(id int64) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "post")
}

func (s *PostgresStore) ListFollows() []model.Follow {
	rows, err := s.db.Query(`SELECT id, follower_id, followed_id, created_at FROM follows ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	follows := []model.Follow{}
	for rows.Next() {
		var f model.Follow
		var createdAt sql.NullTime
		if err := rows.Scan(&f.ID, &f.FollowerID, &f.FollowedID, &createdAt); err != nil {
			continue
		}
		f.CreatedAt = createdAt.Time
		follows = append(follows, f)
	}
	return follows
}

func (s *PostgresStore) CreateFollow(follow model.Follow) (model.Follow, error) {
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO follows (follower_id, followed_id, created_at) VALUES ($1,$2,$3) RETURNING id`,
		follow.FollowerID, follow.FollowedID, follow.CreatedAt,
	).Scan(&follow.ID)
	if err != nil {
		return model.Follow{}, err
	}
	return follow, nil
}

func (s *PostgresStore) DeleteFollow(followerID, followedID int64) error {
	_, err := s.db.Exec(`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`, followerID, followedID)
	return err
}

func (s *PostgresStore) ListLikes() []model.Like {
	rows, err := s.db.Query(`SELECT id, post_id, user_id, created_at FROM likes ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	likes := []model.Like{}
	for rows.Next() {
		var l model.Like
		var createdAt sql.NullTime
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &createdAt); err != nil {
			continue
		}
		l.CreatedAt = createdAt.Time
		likes = append(likes, l)
	}
	return likes
}

func (s *PostgresStore) CreateLike(like model.Like) (model.Like, error) {
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO likes (post_id, user_id, created_at) VALUES ($1,$2,$3) RETURNING id`,
		like.PostID, like.UserID, like.CreatedAt,
	).Scan(&like.ID)
	if err != nil {
		return model.Like{}, err
	}
	return like, nil
}

func (s *PostgresStore) DeleteLike(postID, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

func (s *PostgresStore) ListComments() []model.Comment {
	rows, err := s.db.Query(`SELECT id, post_id, user_id, body, created_at FROM comments ORDER BY id`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		var createdAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &createdAt); err != nil {
			continue
		}
		c.CreatedAt = createdAt.Time
		comments = append(comments, c)
	}
	return comments
}

func (s *PostgresStore) GetComment(id int64) (model.Comment, bool) {
	var c model.Comment
	var createdAt sql.NullTime
	err := s.db.QueryRow(`SELECT id, post_id, user_id, body, created_at FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &createdAt)
	if err != nil {
		return model.Comment{}, false
	}
	c.CreatedAt = createdAt.Time
	return c, true
}

func (s *PostgresStore) CreateComment(comment model.Comment) (model.Comment, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	err := s.db.QueryRow(`INSERT INTO comments (post_id, user_id, body, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
		comment.PostID, comment.UserID, comment.Text, comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *PostgresStore) DeleteComment(id int64) error {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "comment")
}

func timePtrValue(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}
