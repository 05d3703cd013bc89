package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/voguemanic/voguemanic-backend/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// memCartStore keeps lines in a map keyed by (product, user), matching the
// uniqueness the Mongo store gets from its filter. A non-nil err makes every
// call fail, for exercising the degraded paths.
type memCartStore struct {
	mu    sync.Mutex
	lines map[models.CartKey]models.CartLine
	err   error
}

func newMemCartStore() *memCartStore {
	return &memCartStore{lines: map[models.CartKey]models.CartLine{}}
}

func (s *memCartStore) FindLine(ctx context.Context, key models.CartKey) (models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.CartLine{}, s.err
	}
	line, ok := s.lines[key]
	if !ok {
		return models.CartLine{}, mongo.ErrNoDocuments
	}
	return line, nil
}

func (s *memCartStore) IncrementLine(ctx context.Context, key models.CartKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	line := s.lines[key]
	line.Count++
	s.lines[key] = line
	return nil
}

func (s *memCartStore) InsertLine(ctx context.Context, line models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.lines[models.CartKey{ProductID: line.ProductID, UserEmail: line.UserEmail}] = line
	return nil
}

func (s *memCartStore) FindLines(ctx context.Context, email string) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	lines := []models.CartLine{}
	for key, line := range s.lines {
		if key.UserEmail == email {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (s *memCartStore) SetLineCount(ctx context.Context, key models.CartKey, count int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	line, ok := s.lines[key]
	if !ok {
		return false, nil
	}
	line.Count = count
	s.lines[key] = line
	return true, nil
}

func (s *memCartStore) DeleteLine(ctx context.Context, key models.CartKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.lines[key]; !ok {
		return false, nil
	}
	delete(s.lines, key)
	return true, nil
}

func (s *memCartStore) ClearLines(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for key := range s.lines {
		if key.UserEmail == email {
			delete(s.lines, key)
		}
	}
	return nil
}

func useCartStore(t *testing.T, s CartStore) {
	t.Helper()
	prev := CartLines
	CartLines = s
	t.Cleanup(func() { CartLines = prev })
}

// memUserStore indexes users by email. findErr fails lookups without
// touching the maps, so a flaky connection can be simulated.
type memUserStore struct {
	mu      sync.Mutex
	users   map[string]models.User
	infos   []models.UserInfo
	findErr error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]models.User{}}
}

func (s *memUserStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return models.User{}, s.findErr
	}
	user, ok := s.users[email]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return user, nil
}

func (s *memUserStore) InsertUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = user
	return nil
}

func (s *memUserStore) InsertUserInfo(ctx context.Context, info models.UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, info)
	return nil
}

func useUserStore(t *testing.T, s UserStore) {
	t.Helper()
	prev := Users
	Users = s
	t.Cleanup(func() { Users = prev })
}
