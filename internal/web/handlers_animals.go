package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"farm-records/internal/domain/animals"
	"farm-records/internal/middleware"
)

type animalsListData struct {
	Animals []animals.Animal
	Query   string
	Error   string
}

func animalsListHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		list, err := app.cachedAnimals(r.Context(), s)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.render(w, r, http.StatusOK, "animals_list", "Animals", animalsListData{Error: "Error loading animals"})
			return
		}

		q := r.URL.Query().Get("q")
		filtered := make([]animals.Animal, 0, len(list))
		for _, a := range list {
			if matchesSearch(q, a.Name, a.Description, string(a.Status)) {
				filtered = append(filtered, a)
			}
		}

		app.render(w, r, http.StatusOK, "animals_list", "Animals", animalsListData{Animals: filtered, Query: q})
	}
}

type animalDetailData struct {
	Animal animals.Animal
}

func animalDetailHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		a, err := app.cachedAnimal(r.Context(), s, id)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.renderNotFound(w, r)
			return
		}

		app.render(w, r, http.StatusOK, "animal_detail", a.Name, animalDetailData{Animal: a})
	}
}

type animalFormData struct {
	Form    animalForm
	Errors  fieldErrors
	Editing bool
	ID      int
}

func animalNewHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Defaults del alta: count 1, estado en blanco a elegir.
		app.render(w, r, http.StatusOK, "animal_form", "Add Animal", animalFormData{
			Form: animalForm{Count: 1},
		})
	}
}

func animalCreateHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		form := parseAnimalForm(r)
		if errs := app.validateForm(form); errs != nil {
			app.render(w, r, http.StatusUnprocessableEntity, "animal_form", "Add Animal", animalFormData{Form: form, Errors: errs})
			return
		}

		_, err := app.api.AddAnimal(r.Context(), s.Token, animals.Animal{
			Name:        form.Name,
			Price:       form.Price,
			Count:       form.Count,
			Description: form.Description,
			Status:      animals.Status(form.BuyOrSale),
		})
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.render(w, r, http.StatusOK, "animal_form", "Add Animal", animalFormData{Form: form})
			return
		}

		// La colección se invalida ANTES de dar por settled la mutación.
		app.cache.Invalidate(animalsKey(s))
		app.flashSuccess(w, r, "Animal added successfully!")
		http.Redirect(w, r, "/animals", http.StatusSeeOther)
	}
}

func animalEditHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		a, err := app.cachedAnimal(r.Context(), s, id)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.renderNotFound(w, r)
			return
		}

		app.render(w, r, http.StatusOK, "animal_form", "Edit Animal", animalFormData{
			Form: animalForm{
				Name:        a.Name,
				Price:       a.Price,
				Count:       a.Count,
				Description: a.Description,
				BuyOrSale:   string(a.Status),
			},
			Editing: true,
			ID:      a.ID,
		})
	}
}

func animalUpdateHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		form := parseAnimalForm(r)
		if errs := app.validateForm(form); errs != nil {
			app.render(w, r, http.StatusUnprocessableEntity, "animal_form", "Edit Animal", animalFormData{Form: form, Errors: errs, Editing: true, ID: id})
			return
		}

		_, err = app.api.EditAnimal(r.Context(), s.Token, animals.Animal{
			ID:          id,
			Name:        form.Name,
			Price:       form.Price,
			Count:       form.Count,
			Description: form.Description,
			Status:      animals.Status(form.BuyOrSale),
		})
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.render(w, r, http.StatusOK, "animal_form", "Edit Animal", animalFormData{Form: form, Editing: true, ID: id})
			return
		}

		app.cache.Invalidate(animalsKey(s), animalKey(s, id))
		app.flashSuccess(w, r, "Animal updated successfully!")
		http.Redirect(w, r, "/animals/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

type deleteConfirmData struct {
	ID   int
	Name string
	Kind string // "animal" | "tool", para armar los paths de la vista
}

// animalDeleteConfirmHandler: el borrado va gated por confirmación.
// Cancelar vuelve al listado sin tocar nada.
func animalDeleteConfirmHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		a, err := app.cachedAnimal(r.Context(), s, id)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.renderNotFound(w, r)
			return
		}

		app.render(w, r, http.StatusOK, "animal_delete", "Delete Animal", deleteConfirmData{ID: a.ID, Name: a.Name, Kind: "animal"})
	}
}

func animalDeleteHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		if err := app.api.DeleteAnimal(r.Context(), s.Token, id); err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			http.Redirect(w, r, "/animals", http.StatusSeeOther)
			return
		}

		app.cache.Invalidate(animalsKey(s), animalKey(s, id))
		app.flashSuccess(w, r, "Animal deleted successfully!")
		http.Redirect(w, r, "/animals", http.StatusSeeOther)
	}
}
