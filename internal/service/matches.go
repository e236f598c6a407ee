package service

import (
	"fmt"
	"sort"
	"time"

	"society-app/internal/model"

	"go.uber.org/zap"
)

// CreateMatchInput carries the organizer's form for a new match. Date and
// times are strings in model.DateLayout / model.ClockLayout, matching how
// matches are stored and compared.
type CreateMatchInput struct {
	OrganizerID    int64
	VenueID        int64
	Date           string
	StartTime      string
	EndTime        string
	PricePerPerson float64
	TotalSeats     int
}

// CreateMatch validates the input, refuses any time-window conflict with an
// active match at the same venue and date, and persists the new match.
// Nothing is written when the operation fails.
func (s *Service) CreateMatch(in CreateMatchInput) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := time.Parse(model.DateLayout, in.Date); err != nil {
		return model.Match{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalid)
	}
	for _, clock := range []string{in.StartTime, in.EndTime} {
		if _, err := time.Parse(model.ClockLayout, clock); err != nil {
			return model.Match{}, fmt.Errorf("%w: time must be in HH:MM format", ErrInvalid)
		}
	}
	if in.EndTime <= in.StartTime {
		return model.Match{}, fmt.Errorf("%w: end time must be after start time", ErrInvalid)
	}
	if in.TotalSeats < 1 {
		return model.Match{}, fmt.Errorf("%w: a match needs at least one seat", ErrInvalid)
	}
	if in.PricePerPerson < 0 {
		return model.Match{}, fmt.Errorf("%w: price cannot be negative", ErrInvalid)
	}
	if _, ok := s.store.GetUser(in.OrganizerID); !ok {
		return model.Match{}, fmt.Errorf("organizer %d: %w", in.OrganizerID, ErrNotFound)
	}
	venue, ok := s.store.GetVenue(in.VenueID)
	if !ok {
		return model.Match{}, fmt.Errorf("venue %d: %w", in.VenueID, ErrNotFound)
	}
	if in.TotalSeats > venue.MaxSeats() {
		return model.Match{}, fmt.Errorf("%w: %s takes at most %d players", ErrInvalid, venue.Name, venue.MaxSeats())
	}
	if s.scheduleConflictLocked(in.VenueID, in.Date, in.StartTime, in.EndTime, 0) {
		return model.Match{}, ErrScheduleConflict
	}

	return s.store.CreateMatch(model.Match{
		OrganizerID:    in.OrganizerID,
		VenueID:        in.VenueID,
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		PricePerPerson: in.PricePerPerson,
		TotalSeats:     in.TotalSeats,
		OccupiedSeats:  0,
		Status:         model.MatchActive,
	})
}

// scheduleConflictLocked reports whether an active match at the venue and
// date overlaps the half-open window [start, end). Touching endpoints do
// not conflict. Caller holds s.mu.
func (s *Service) scheduleConflictLocked(venueID int64, date, start, end string, excludeID int64) bool {
	for _, m := range s.store.ListMatches() {
		if m.ID == excludeID {
			continue
		}
		if m.VenueID != venueID || m.Date != date || m.Status != model.MatchActive {
			continue
		}
		if start < m.EndTime && end > m.StartTime {
			return true
		}
	}
	return false
}

func (s *Service) GetMatch(id int64) (model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.store.GetMatch(id)
	if !ok {
		return model.Match{}, fmt.Errorf("match %d: %w", id, ErrNotFound)
	}
	return match, nil
}

// MatchesByOrganizer lists the organizer's matches in creation order.
func (s *Service) MatchesByOrganizer(organizerID int64) []model.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]model.Match, 0)
	for _, m := range s.store.ListMatches() {
		if m.OrganizerID == organizerID {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}

// UpcomingMatches lists active matches on or after fromDate (today when
// empty), soonest first.
func (s *Service) UpcomingMatches(fromDate string) []model.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromDate == "" {
		fromDate = time.Now().Format(model.DateLayout)
	}
	matches := make([]model.Match, 0)
	for _, m := range s.store.ListMatches() {
		if m.Status == model.MatchActive && m.Date >= fromDate {
			matches = append(matches, m)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Date != matches[j].Date {
			return matches[i].Date < matches[j].Date
		}
		return matches[i].StartTime < matches[j].StartTime
	})
	return matches
}

// DeleteMatch removes a match and cascades: every pending or approved
// enrollment is cancelled and its player notified before the match record
// goes away. A failed cascade fails the whole delete.
func (s *Service) DeleteMatch(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.GetMatch(id); !ok {
		return fmt.Errorf("match %d: %w", id, ErrNotFound)
	}
	for _, enr := range s.store.ListEnrollments() {
		if enr.MatchID != id || !enr.Active() {
			continue
		}
		enr.Status = model.EnrollmentCancelled
		if err := s.store.UpdateEnrollment(enr); err != nil {
			return fmt.Errorf("cancel enrollment %d: %w", enr.ID, err)
		}
		s.emitLocked(enr.PlayerID, model.KindMatchCancelled,
			"O jogo foi cancelado pelo organizador.",
			map[string]int64{"match_id": id})
	}
	return s.store.DeleteMatch(id)
}

// adjustSeatsLocked applies a delta to the occupied-seat counter. The
// lower bound is clamped at zero: reaching it means the bookkeeping went
// wrong somewhere, so it is logged loudly. The upper bound is the
// approver's responsibility and is not enforced here. Caller holds s.mu.
func (s *Service) adjustSeatsLocked(matchID int64, delta int) error {
	match, ok := s.store.GetMatch(matchID)
	if !ok {
		return fmt.Errorf("match %d: %w", matchID, ErrNotFound)
	}
	next := match.OccupiedSeats + delta
	if next < 0 {
		s.log.Warn("occupied seats would go negative, clamping to zero",
			zap.Int64("match_id", matchID),
			zap.Int("occupied", match.OccupiedSeats),
			zap.Int("delta", delta))
		next = 0
	}
	match.OccupiedSeats = next
	return s.store.UpdateMatch(match)
}
