package session

import "context"

// Repository persiste sesiones. Implementaciones en
// internal/adapters/storage (memory y postgres).
type Repository interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
