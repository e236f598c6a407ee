package service

import (
	"fmt"
	"sort"

	"society-app/internal/model"

	"go.uber.org/zap"
)

// Submit creates a pending enrollment for the player on the match and
// notifies the organizer. The request is refused while the player already
// has a pending or approved enrollment for the same match; a rejected or
// cancelled one does not block a fresh request.
func (s *Service) Submit(matchID, playerID int64) (model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.store.GetMatch(matchID)
	if !ok {
		return model.Enrollment{}, fmt.Errorf("match %d: %w", matchID, ErrNotFound)
	}
	if match.Status != model.MatchActive {
		return model.Enrollment{}, fmt.Errorf("%w: match is not open for enrollment", ErrInvalid)
	}
	player, ok := s.store.GetUser(playerID)
	if !ok {
		return model.Enrollment{}, fmt.Errorf("player %d: %w", playerID, ErrNotFound)
	}
	for _, enr := range s.store.ListEnrollments() {
		if enr.MatchID == matchID && enr.PlayerID == playerID && enr.Active() {
			return model.Enrollment{}, ErrAlreadyEnrolled
		}
	}

	enr, err := s.store.CreateEnrollment(model.Enrollment{
		MatchID:  matchID,
		PlayerID: playerID,
		Status:   model.EnrollmentPending,
	})
	if err != nil {
		return model.Enrollment{}, err
	}
	s.emitLocked(match.OrganizerID, model.KindNewEnrollment,
		fmt.Sprintf("%s quer participar do seu jogo!", player.DisplayName()),
		map[string]int64{"match_id": matchID, "enrollment_id": enr.ID})
	return enr, nil
}

// Approve moves a pending enrollment to approved, takes one seat and
// notifies the player. Capacity is checked before the transition: a full
// match fails the call and leaves the enrollment pending. The status write
// and the seat increment are one unit — if the seat counter cannot be
// updated the status write is rolled back.
func (s *Service) Approve(enrollmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enr, ok := s.store.GetEnrollment(enrollmentID)
	if !ok {
		return fmt.Errorf("enrollment %d: %w", enrollmentID, ErrNotFound)
	}
	if enr.Status != model.EnrollmentPending {
		return fmt.Errorf("approve from %q: %w", enr.Status, ErrInvalidTransition)
	}
	match, ok := s.store.GetMatch(enr.MatchID)
	if !ok {
		return fmt.Errorf("match %d: %w", enr.MatchID, ErrNotFound)
	}
	if match.OccupiedSeats >= match.TotalSeats {
		return ErrMatchFull
	}

	enr.Status = model.EnrollmentApproved
	if err := s.store.UpdateEnrollment(enr); err != nil {
		return err
	}
	if err := s.adjustSeatsLocked(enr.MatchID, +1); err != nil {
		enr.Status = model.EnrollmentPending
		if rerr := s.store.UpdateEnrollment(enr); rerr != nil {
			s.log.Error("failed to roll back approval after seat update error",
				zap.Int64("enrollment_id", enr.ID), zap.Error(rerr))
		}
		return err
	}
	s.emitLocked(enr.PlayerID, model.KindEnrollmentApproved,
		"Sua inscrição foi aprovada!",
		map[string]int64{"match_id": enr.MatchID})
	return nil
}

// Reject moves a pending enrollment to rejected and notifies the player.
// No seat is involved.
func (s *Service) Reject(enrollmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enr, ok := s.store.GetEnrollment(enrollmentID)
	if !ok {
		return fmt.Errorf("enrollment %d: %w", enrollmentID, ErrNotFound)
	}
	if enr.Status != model.EnrollmentPending {
		return fmt.Errorf("reject from %q: %w", enr.Status, ErrInvalidTransition)
	}
	enr.Status = model.EnrollmentRejected
	if err := s.store.UpdateEnrollment(enr); err != nil {
		return err
	}
	s.emitLocked(enr.PlayerID, model.KindEnrollmentRejected,
		"Sua inscrição foi recusada.",
		map[string]int64{"match_id": enr.MatchID})
	return nil
}

// Cancel moves a pending or approved enrollment to cancelled. An approved
// enrollment frees its seat. The match organizer is notified whichever
// status the enrollment was in.
func (s *Service) Cancel(enrollmentID, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enr, ok := s.store.GetEnrollment(enrollmentID)
	if !ok {
		return fmt.Errorf("enrollment %d: %w", enrollmentID, ErrNotFound)
	}
	if !enr.Active() {
		return fmt.Errorf("cancel from %q: %w", enr.Status, ErrInvalidTransition)
	}
	wasApproved := enr.Status == model.EnrollmentApproved
	if wasApproved {
		if err := s.adjustSeatsLocked(enr.MatchID, -1); err != nil {
			return err
		}
	}
	enr.Status = model.EnrollmentCancelled
	if err := s.store.UpdateEnrollment(enr); err != nil {
		if wasApproved {
			if rerr := s.adjustSeatsLocked(enr.MatchID, +1); rerr != nil {
				s.log.Error("failed to restore seat after cancel error",
					zap.Int64("enrollment_id", enr.ID), zap.Error(rerr))
			}
		}
		return err
	}
	if match, ok := s.store.GetMatch(enr.MatchID); ok {
		s.emitLocked(match.OrganizerID, model.KindEnrollmentCancelled,
			"Um jogador cancelou a inscrição.",
			map[string]int64{"match_id": enr.MatchID, "enrollment_id": enr.ID, "actor_id": actorID})
	}
	return nil
}

// RemoveByOrganizer force-removes an (implicitly approved) player: the
// seat is freed, the enrollment record is deleted outright and the player
// is notified.
func (s *Service) RemoveByOrganizer(enrollmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enr, ok := s.store.GetEnrollment(enrollmentID)
	if !ok {
		return fmt.Errorf("enrollment %d: %w", enrollmentID, ErrNotFound)
	}
	if err := s.adjustSeatsLocked(enr.MatchID, -1); err != nil {
		return err
	}
	if err := s.store.DeleteEnrollment(enrollmentID); err != nil {
		if rerr := s.adjustSeatsLocked(enr.MatchID, +1); rerr != nil {
			s.log.Error("failed to restore seat after remove error",
				zap.Int64("enrollment_id", enr.ID), zap.Error(rerr))
		}
		return err
	}
	s.emitLocked(enr.PlayerID, model.KindRemovedFromMatch,
		"Você foi removido de um jogo pelo organizador.",
		map[string]int64{"match_id": enr.MatchID})
	return nil
}

func (s *Service) GetEnrollment(id int64) (model.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enr, ok := s.store.GetEnrollment(id)
	if !ok {
		return model.Enrollment{}, fmt.Errorf("enrollment %d: %w", id, ErrNotFound)
	}
	return enr, nil
}

// ListByMatch lists a match's enrollments in creation order, optionally
// filtered by status ("" means all).
func (s *Service) ListByMatch(matchID int64, status model.EnrollmentStatus) []model.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollments := make([]model.Enrollment, 0)
	for _, enr := range s.store.ListEnrollments() {
		if enr.MatchID != matchID {
			continue
		}
		if status != "" && enr.Status != status {
			continue
		}
		enrollments = append(enrollments, enr)
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments
}

// ListByPlayer lists every enrollment the player has submitted, in
// creation order.
func (s *Service) ListByPlayer(playerID int64) []model.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollments := make([]model.Enrollment, 0)
	for _, enr := range s.store.ListEnrollments() {
		if enr.PlayerID == playerID {
			enrollments = append(enrollments, enr)
		}
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments
}
