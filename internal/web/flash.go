package web

import (
	"net/http"
	"strings"

	"farm-records/internal/middleware"
)

// Flash es una notificación transitoria: se muestra una vez en el próximo
// render y desaparece.
type Flash struct {
	Kind    string // "success" | "error"
	Message string
}

// Las flashes viajan en la misma cookie de sesión como "kind|mensaje"
// (strings planos: evita registrar tipos en gob).
func (app *App) addFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	gs, _ := app.store.Get(r, middleware.SessionCookie)
	gs.AddFlash(kind + "|" + msg)
	if err := gs.Save(r, w); err != nil {
		app.log.WithError(err).Error("save flash")
	}
}

func (app *App) flashSuccess(w http.ResponseWriter, r *http.Request, msg string) {
	app.addFlash(w, r, "success", msg)
}

func (app *App) flashError(w http.ResponseWriter, r *http.Request, msg string) {
	app.addFlash(w, r, "error", msg)
}

func (app *App) popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	gs, _ := app.store.Get(r, middleware.SessionCookie)
	raw := gs.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := gs.Save(r, w); err != nil {
		app.log.WithError(err).Error("consume flashes")
	}

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = "success", s
		}
		out = append(out, Flash{Kind: kind, Message: msg})
	}
	return out
}
