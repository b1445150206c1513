package web

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"farm-records/internal/cache"
	"farm-records/internal/farmapi"
	"farm-records/internal/middleware"
	sess "farm-records/internal/session"
)

// App junta las dependencias de los handlers del frontend.
type App struct {
	api      *farmapi.Client
	sessions *sess.Manager
	store    sessions.Store
	cache    *cache.Cache
	log      *logrus.Logger

	templates map[string]*template.Template
	validate  *validator.Validate
}

type Options struct {
	API      *farmapi.Client
	Sessions *sess.Manager
	Store    sessions.Store
	Cache    *cache.Cache
	Log      *logrus.Logger
}

func NewApp(opts Options) (*App, error) {
	tmpls, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &App{
		api:       opts.API,
		sessions:  opts.Sessions,
		store:     opts.Store,
		cache:     opts.Cache,
		log:       opts.Log,
		templates: tmpls,
		validate:  validator.New(),
	}, nil
}

// Router arma el árbol de rutas, con el guard por grupo: públicas-solo
// (landing, login, register) y protegidas (todo lo demás).
func (app *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(app.log))
	r.Use(middleware.SessionContext(app.store, app.sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Rutas public-only
	r.Group(func(pr chi.Router) {
		pr.Use(app.Guard(RoutePublicOnly))
		pr.Get("/", homeHandler(app))
		pr.Get("/login", loginPageHandler(app))
		pr.Post("/login", loginSubmitHandler(app))
		pr.Get("/register", registerPageHandler(app))
		pr.Post("/register", registerSubmitHandler(app))
	})

	// Rutas protegidas
	r.Group(func(pr chi.Router) {
		pr.Use(app.Guard(RouteProtected))

		pr.Get("/dashboard", dashboardHandler(app))
		pr.Get("/reports", reportsHandler(app))
		pr.Get("/profile", profilePageHandler(app))
		pr.Post("/profile", profileSubmitHandler(app))
		pr.Post("/logout", logoutHandler(app))

		pr.Route("/animals", func(ar chi.Router) {
			ar.Get("/", animalsListHandler(app))
			ar.Get("/new", animalNewHandler(app))
			ar.Post("/", animalCreateHandler(app))
			ar.Get("/{id}", animalDetailHandler(app))
			ar.Get("/{id}/edit", animalEditHandler(app))
			ar.Post("/{id}", animalUpdateHandler(app))
			ar.Get("/{id}/delete", animalDeleteConfirmHandler(app))
			ar.Post("/{id}/delete", animalDeleteHandler(app))
		})

		pr.Route("/care-tools", func(tr chi.Router) {
			tr.Get("/", toolsListHandler(app))
			tr.Get("/new", toolNewHandler(app))
			tr.Post("/", toolCreateHandler(app))
			tr.Get("/{id}", toolDetailHandler(app))
			tr.Get("/{id}/edit", toolEditHandler(app))
			tr.Post("/{id}", toolUpdateHandler(app))
			tr.Get("/{id}/delete", toolDeleteConfirmHandler(app))
			tr.Post("/{id}/delete", toolDeleteHandler(app))
		})
	})

	r.NotFound(app.renderNotFound)

	return r
}

// bindSession liga la cookie del browser al registro de sesión recién creado.
func (app *App) bindSession(w http.ResponseWriter, r *http.Request, s sess.Session) {
	gs, _ := app.store.Get(r, middleware.SessionCookie)
	gs.Values["sid"] = s.ID
	gs.Options.HttpOnly = true
	gs.Options.SameSite = http.SameSiteLaxMode
	gs.Options.Path = "/"
	if err := gs.Save(r, w); err != nil {
		app.log.WithError(err).Error("save session cookie")
	}
}

// dropSessionCookie expira la cookie. El registro server-side lo borra el
// manager; esto solo desliga al browser.
func (app *App) dropSessionCookie(w http.ResponseWriter, r *http.Request) {
	gs, _ := app.store.Get(r, middleware.SessionCookie)
	delete(gs.Values, "sid")
	if err := gs.Save(r, w); err != nil {
		app.log.WithError(err).Error("drop session cookie")
	}
}

// failAPI es el call site terminal de todo error del backend: SIEMPRE
// notifica (flash) y, si fue 401, limpia la sesión persistida y redirige a
// login. Devuelve true si ya respondió el request.
func (app *App) failAPI(w http.ResponseWriter, r *http.Request, err error) bool {
	app.flashError(w, r, farmapi.UserMessage(err))

	if farmapi.IsUnauthorized(err) {
		s, _ := middleware.GetSession(r.Context())
		app.sessions.Clear(r.Context(), s.ID)
		app.dropSessionCookie(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	return false
}
