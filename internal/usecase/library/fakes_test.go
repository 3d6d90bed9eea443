package library_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"aniexo/internal/domain/entity"
)

/* ──────────────────────────────── スタブ ──────────────────────────────── */

type stubUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*entity.User
	err    error
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: map[int64]*entity.User{}}
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.byID {
		if existing.Username == u.Username || (u.Email != "" && existing.Email == u.Email) {
			return entity.ErrConflict
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByUsername(_ context.Context, name string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.byID {
		if u.Username == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

type stubFavorites struct {
	rows []*entity.Favorite
	err  error
}

func (s *stubFavorites) List(_ context.Context, userID int64) ([]*entity.Favorite, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []*entity.Favorite{}
	for _, f := range s.rows {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubFavorites) Add(_ context.Context, fav *entity.Favorite) error {
	if s.err != nil {
		return s.err
	}
	for _, f := range s.rows {
		if f.UserID == fav.UserID && f.AnimeID == fav.AnimeID {
			return entity.ErrConflict
		}
	}
	fav.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, fav)
	return nil
}

func (s *stubFavorites) Remove(_ context.Context, userID, animeID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for i, f := range s.rows {
		if f.UserID == userID && f.AnimeID == animeID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubHistory struct {
	rows      []*entity.HistoryEntry
	lastLimit int
	clock     time.Time
}

func (s *stubHistory) List(_ context.Context, userID int64, limit int) ([]*entity.HistoryEntry, error) {
	s.lastLimit = limit
	out := []*entity.HistoryEntry{}
	for _, h := range s.rows {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ViewedAt.After(out[j].ViewedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubHistory) Record(_ context.Context, e *entity.HistoryEntry) error {
	s.clock = s.clock.Add(time.Minute)
	for _, h := range s.rows {
		if h.UserID == e.UserID && h.AnimeID == e.AnimeID {
			h.ViewedAt = s.clock
			h.AnimeTitle = e.AnimeTitle
			*e = *h
			return nil
		}
	}
	e.ID = int64(len(s.rows) + 1)
	e.ViewedAt = s.clock
	cp := *e
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *stubHistory) Clear(_ context.Context, userID int64) error {
	kept := s.rows[:0]
	for _, h := range s.rows {
		if h.UserID != userID {
			kept = append(kept, h)
		}
	}
	s.rows = kept
	return nil
}

func (s *stubHistory) AnimeIDs(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for _, h := range s.rows {
		if h.UserID == userID {
			ids = append(ids, h.AnimeID)
		}
	}
	return ids, nil
}
