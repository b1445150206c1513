package web

import (
	"net/http"

	"farm-records/internal/middleware"
	"farm-records/internal/session"
)

// RouteKind marca qué exige una ruta del visitante.
type RouteKind int

const (
	// RouteProtected solo renderiza autenticado; si no, va a login.
	RouteProtected RouteKind = iota
	// RoutePublicOnly (landing, login, register) expulsa al autenticado
	// hacia el dashboard.
	RoutePublicOnly
)

// Verdict es la decisión del guard para un request.
type Verdict int

const (
	VerdictAllow Verdict = iota
	VerdictToLogin
	VerdictToDashboard
	VerdictHold
)

// Decide es la función pura de ruteo: estado de sesión × tipo de ruta.
// En StateUnknown NUNCA comprometemos un redirect: se sostiene una vista
// neutral de carga (evita el flash de la rama equivocada mientras la
// rehidratación no terminó).
func Decide(st session.State, kind RouteKind) Verdict {
	switch st {
	case session.StateAuthenticated:
		if kind == RoutePublicOnly {
			return VerdictToDashboard
		}
		return VerdictAllow
	case session.StateAnonymous:
		if kind == RouteProtected {
			return VerdictToLogin
		}
		return VerdictAllow
	default:
		return VerdictHold
	}
}

// Guard aplica el veredicto como middleware.
func (app *App) Guard(kind RouteKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, st := middleware.GetSession(r.Context())

			switch Decide(st, kind) {
			case VerdictToLogin:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			case VerdictToDashboard:
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			case VerdictHold:
				app.renderLoading(w, r)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
