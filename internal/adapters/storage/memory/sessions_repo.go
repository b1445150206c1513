package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"farm-records/internal/session"
)

var (
	ErrNotFound = errors.New("not found")
)

type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]session.Session
}

func NewSessionRepo() session.Repository {
	return &sessionRepo{
		byID: make(map[string]session.Session),
	}
}

func (r *sessionRepo) Save(ctx context.Context, s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	// Save es upsert: login crea, rehidratación refresca el usuario cacheado.
	r.byID[s.ID] = s
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return session.Session{}, ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

// Len es para tests: cantidad de sesiones vivas.
func (r *sessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
