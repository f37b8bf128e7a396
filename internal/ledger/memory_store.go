package ledger

import (
	"sort"
	"sync"
)

type InMemoryStore struct {
	mu sync.Mutex

	applications map[int64]ApplicationRecord
	nextID       int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		applications: make(map[int64]ApplicationRecord),
		nextID:       1,
	}
}

func (s *InMemoryStore) WithTx(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn((*memTx)(s))
}

type memTx InMemoryStore

func (s *InMemoryStore) InsertApplication(rec ApplicationRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memTx)(s).InsertApplication(rec)
}

func (s *InMemoryStore) GetApplication(id int64) (ApplicationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memTx)(s).GetApplication(id)
}

func (s *InMemoryStore) ListApplications(limit, offset int) ([]ApplicationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (*memTx)(s).ListApplications(limit, offset)
}

func (t *memTx) InsertApplication(rec ApplicationRecord) (int64, error) {
	s := (*InMemoryStore)(t)
	rec.ID = s.nextID
	s.nextID++
	s.applications[rec.ID] = rec
	return rec.ID, nil
}

func (t *memTx) GetApplication(id int64) (ApplicationRecord, bool) {
	rec, ok := (*InMemoryStore)(t).applications[id]
	return rec, ok
}

func (t *memTx) ListApplications(limit, offset int) ([]ApplicationRecord, error) {
	s := (*InMemoryStore)(t)
	if limit <= 0 {
		limit = DefaultListLimit
	}

	ids := make([]int64, 0, len(s.applications))
	for id := range s.applications {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []ApplicationRecord{}
	for _, id := range ids {
		if offset > 0 {
			offset--
			continue
		}
		out = append(out, s.applications[id])
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
