package session

import (
	"time"

	"farm-records/internal/farmapi"
)

// State es la resolución de autenticación de un request.
// El guard de rutas nunca decide un redirect en StateUnknown.
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session es el registro persistido de un visitante autenticado:
// el bearer token del backend más el perfil cacheado.
// Vive hasta logout explícito o hasta que una rehidratación falle.
type Session struct {
	ID    string // uuid, referenciado por la cookie
	Token string // bearer token opaco del backend

	User    farmapi.User
	HasUser bool // false => perfil aún no cacheado, rehidratar via ShowMe

	CreatedAt time.Time
}
