// Package memory holds map-backed repositories for tests and local runs.
// Data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"jvhelp-service/internal/domain/admin"
	xerrors "jvhelp-service/internal/pkg/errors"
)

// PrincipalStore implements admin.PrincipalRepository.
type PrincipalStore struct {
	mu sync.RWMutex

	nextID     int64
	principals map[int64]*admin.Principal
	byUsername map[string]int64

	// Err, when set, is returned by every call to simulate an outage.
	Err error
}

func NewPrincipalStore() *PrincipalStore {
	return &PrincipalStore{
		principals: make(map[int64]*admin.Principal),
		byUsername: make(map[string]int64),
	}
}

func (s *PrincipalStore) Create(_ context.Context, p *admin.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, exists := s.byUsername[p.Username]; exists {
		return xerrors.ErrConflict
	}

	s.nextID++
	now := time.Now()
	p.ID = s.nextID
	p.CreatedAt, p.UpdatedAt = now, now

	clone := *p
	s.principals[p.ID] = &clone
	s.byUsername[p.Username] = p.ID
	return nil
}

func (s *PrincipalStore) FindByUsername(_ context.Context, username string) (*admin.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	id, ok := s.byUsername[username]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	clone := *s.principals[id]
	return &clone, nil
}

func (s *PrincipalStore) FindByID(_ context.Context, id int64) (*admin.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	p, ok := s.principals[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *PrincipalStore) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	return s.mutate(id, func(p *admin.Principal) {
		p.LastLogin = &at
	})
}

func (s *PrincipalStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	return s.mutate(id, func(p *admin.Principal) {
		p.PasswordHash = passwordHash
	})
}

func (s *PrincipalStore) SetActive(_ context.Context, id int64, active bool) error {
	return s.mutate(id, func(p *admin.Principal) {
		p.IsActive = active
	})
}

func (s *PrincipalStore) List(_ context.Context) ([]admin.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]admin.Principal, 0, len(s.principals))
	for _, p := range s.principals {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *PrincipalStore) mutate(id int64, fn func(p *admin.Principal)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	p, ok := s.principals[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	fn(p)
	p.UpdatedAt = time.Now()
	return nil
}

// SessionStore implements admin.SessionRepository.
type SessionStore struct {
	mu sync.RWMutex

	nextID   int64
	sessions map[string]*admin.Session // token_hash -> Session

	// Err, when set, is returned by every call. TouchErr and DeleteErr only
	// affect Touch and DeleteByTokenHash.
	Err       error
	TouchErr  error
	DeleteErr error
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*admin.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess *admin.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	if _, exists := s.sessions[sess.TokenHash]; exists {
		return xerrors.ErrConflict
	}

	s.nextID++
	sess.ID = s.nextID
	clone := *sess
	s.sessions[sess.TokenHash] = &clone
	return nil
}

func (s *SessionStore) FindByTokenHash(_ context.Context, tokenHash string) (*admin.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	sess, ok := s.sessions[tokenHash]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *SessionStore) Touch(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.TouchErr != nil {
		return s.TouchErr
	}

	for _, sess := range s.sessions {
		if sess.ID == id {
			sess.LastAccessedAt = at
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (s *SessionStore) DeleteByTokenHash(_ context.Context, tokenHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if s.DeleteErr != nil {
		return 0, s.DeleteErr
	}

	if _, ok := s.sessions[tokenHash]; !ok {
		return 0, nil
	}
	delete(s.sessions, tokenHash)
	return 1, nil
}

func (s *SessionStore) DeleteByPrincipal(_ context.Context, principalID int64) (int64, error) {
	return s.deleteWhere(func(sess *admin.Session) bool {
		return sess.PrincipalID == principalID
	})
}

func (s *SessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return s.deleteWhere(func(sess *admin.Session) bool {
		return sess.ExpiredAt(now)
	})
}

func (s *SessionStore) deleteWhere(match func(*admin.Session) bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}

	var n int64
	for hash, sess := range s.sessions {
		if match(sess) {
			delete(s.sessions, hash)
			n++
		}
	}
	return n, nil
}

// Len is the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sessions returns copies of every stored session.
func (s *SessionStore) Sessions() []admin.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]admin.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, *sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
