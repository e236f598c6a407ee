package service

import (
	"fmt"
	"sort"
	"time"

	"society-app/internal/model"

	"go.uber.org/zap"
)

// emitLocked records a notification for the recipient. Delivery is best
// effort: a store failure is logged and swallowed so it never rolls back
// the state change that triggered it. Caller holds s.mu.
func (s *Service) emitLocked(recipientID int64, kind model.NotificationKind, message string, payload map[string]int64) {
	_, err := s.store.CreateNotification(model.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		Message:     message,
		Payload:     payload,
		Read:        false,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		s.log.Error("failed to record notification",
			zap.Int64("recipient_id", recipientID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

// ListNotifications returns the user's notifications, newest first. With
// unreadOnly set, read ones are filtered out.
func (s *Service) ListNotifications(userID int64, unreadOnly bool) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := make([]model.Notification, 0)
	for _, n := range s.store.ListNotifications() {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		notifications = append(notifications, n)
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})
	return notifications
}

// CountUnread returns how many of the user's notifications are unread.
func (s *Service) CountUnread(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.store.ListNotifications() {
		if n.RecipientID == userID && !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one of the user's notifications as read. Marking an
// already-read one is a no-op; another user's notification reads as not
// found.
func (s *Service) MarkRead(notificationID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.store.GetNotification(notificationID)
	if !ok || n.RecipientID != userID {
		return fmt.Errorf("notification %d: %w", notificationID, ErrNotFound)
	}
	if n.Read {
		return nil
	}
	n.Read = true
	return s.store.UpdateNotification(n)
}

// MarkAllRead marks every unread notification of the user as read and
// reports whether anything changed.
func (s *Service) MarkAllRead(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, n := range s.store.ListNotifications() {
		if n.RecipientID != userID || n.Read {
			continue
		}
		n.Read = true
		if err := s.store.UpdateNotification(n); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}
