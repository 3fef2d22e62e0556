package service

import (
	"sync"
	"time"

	"github.com/edfast/timetable-api/internal/models"
)

// timetableStore keeps parsed timetables in memory with a TTL. It replaces
// the implicit "last processed data" pattern: callers address a timetable by
// ID and every engine operation receives its entries explicitly.
type timetableStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]models.Timetable
}

func newTimetableStore(ttl time.Duration) *timetableStore {
	return &timetableStore{
		ttl:   ttl,
		items: make(map[string]models.Timetable),
	}
}

func (s *timetableStore) Save(t models.Timetable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[t.ID] = t
}

func (s *timetableStore) Get(id string) (models.Timetable, bool) {
	s.mu.RLock()
	t, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return models.Timetable{}, false
	}
	if s.ttl > 0 && time.Since(t.CreatedAt) > s.ttl {
		s.Delete(id)
		return models.Timetable{}, false
	}
	return t, true
}

func (s *timetableStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

func (s *timetableStore) List() []models.Timetable {
	s.mu.RLock()
	items := make([]models.Timetable, 0, len(s.items))
	for _, t := range s.items {
		items = append(items, t)
	}
	s.mu.RUnlock()

	if s.ttl > 0 {
		live := items[:0]
		for _, t := range items {
			if time.Since(t.CreatedAt) > s.ttl {
				s.Delete(t.ID)
				continue
			}
			live = append(live, t)
		}
		items = live
	}
	return items
}
