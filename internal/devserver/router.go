package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router arma el router del backend de desarrollo. Los paths replican 1:1
// los del backend real (casing incluido: getAnimalById, deleteTool).
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/Authentication", func(ar chi.Router) {
		ar.Post("/Register", s.registerHandler())
		ar.Post("/Login", s.loginHandler())
		ar.Post("/LogOut", s.logoutHandler())
		ar.Get("/ShowMe", s.showMeHandler())
		ar.Post("/UpdateProfile", s.updateProfileHandler())
	})

	r.Route("/Animals", func(ar chi.Router) {
		ar.Get("/GetAllAnimals", s.listAnimalsHandler())
		ar.Get("/getAnimalById/{id}", s.getAnimalHandler())
		ar.Post("/AddAnimal", s.addAnimalHandler())
		ar.Put("/EditAnimal/{id}", s.editAnimalHandler())
		ar.Delete("/DeleteAnimal/{id}", s.deleteAnimalHandler())
	})

	r.Route("/CareTools", func(tr chi.Router) {
		tr.Get("/GetAllTools", s.listToolsHandler())
		tr.Get("/GetToolById/{id}", s.getToolHandler())
		tr.Post("/AddTool", s.addToolHandler())
		tr.Put("/EditTool/{id}", s.editToolHandler())
		tr.Delete("/deleteTool/{id}", s.deleteToolHandler())
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
