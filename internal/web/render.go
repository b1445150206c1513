package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"farm-records/internal/domain/animals"
	"farm-records/internal/farmapi"
	"farm-records/internal/middleware"
	"farm-records/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	// money renderiza "<monto> $" como las cards de los listados.
	"money": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64) + " $"
	},
	"statusLabel": func(st animals.Status) string {
		if st == animals.StatusBuy {
			return "Buy"
		}
		return "Sale"
	},
}

// parseTemplates arma un set por página: layout + página.
func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{
		"home", "login", "register", "loading", "notfound",
		"dashboard", "reports", "profile",
		"animals_list", "animal_detail", "animal_form", "animal_delete",
		"tools_list", "tool_detail", "tool_form", "tool_delete",
	}

	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := template.New("layout.html").Funcs(funcMap).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+p+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		out[p] = t
	}
	return out, nil
}

// viewData es lo que recibe todo template.
type viewData struct {
	Title   string
	User    *farmapi.User // nil si no hay sesión
	Flashes []Flash
	Data    any
}

func (app *App) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	t, ok := app.templates[page]
	if !ok {
		app.log.WithField("page", page).Error("unknown template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	vd := viewData{
		Title:   title,
		Flashes: app.popFlashes(w, r),
		Data:    data,
	}
	if s, st := middleware.GetSession(r.Context()); st == session.StateAuthenticated {
		u := s.User
		vd.User = &u
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", vd); err != nil {
		app.log.WithError(err).WithField("page", page).Error("render template")
	}
}

// renderLoading: vista neutral mientras la sesión no está resuelta.
// Meta-refresh para reintentar; sin redirect comprometido.
func (app *App) renderLoading(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "loading", "Loading", nil)
}

func (app *App) renderNotFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "notfound", "Not Found", nil)
}
