package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"farm-records/internal/session"
)

type ctxKey string

const (
	sessionKey ctxKey = "session"
	stateKey   ctxKey = "session_state"
)

// SessionCookie es la cookie que liga el browser a su registro de sesión.
// Solo lleva el id opaco (y flashes); el token nunca viaja al browser.
const SessionCookie = "farm_session"

// SessionContext resuelve la sesión de cada request ANTES de que cualquier
// handler decida nada: lee el sid de la cookie, rehidrata via el manager y
// deja sesión + estado en el context. Sin cookie => anonymous directo.
func SessionContext(store sessions.Store, mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gs, _ := store.Get(r, SessionCookie)

			sid, _ := gs.Values["sid"].(string)
			s, st := mgr.Resolve(r.Context(), sid)

			ctx := context.WithValue(r.Context(), sessionKey, s)
			ctx = context.WithValue(ctx, stateKey, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession devuelve la sesión y el estado resueltos para el request.
// Si el middleware no corrió, el estado es StateUnknown.
func GetSession(ctx context.Context) (session.Session, session.State) {
	st, ok := ctx.Value(stateKey).(session.State)
	if !ok {
		return session.Session{}, session.StateUnknown
	}
	s, _ := ctx.Value(sessionKey).(session.Session)
	return s, st
}
