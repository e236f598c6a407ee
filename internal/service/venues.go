package service

import (
	"fmt"
	"sort"

	"society-app/internal/model"
)

// ListVenues returns the venue catalog, id ascending.
func (s *Service) ListVenues() []model.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()

	venues := s.store.ListVenues()
	sort.Slice(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })
	return venues
}

func (s *Service) GetVenue(id int64) (model.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	venue, ok := s.store.GetVenue(id)
	if !ok {
		return model.Venue{}, fmt.Errorf("venue %d: %w", id, ErrNotFound)
	}
	return venue, nil
}
