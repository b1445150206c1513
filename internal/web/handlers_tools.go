package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"farm-records/internal/domain/caretools"
	"farm-records/internal/middleware"
)

type toolsListData struct {
	Tools []caretools.Tool
	Query string
	Error string
}

func toolsListHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		list, err := app.cachedTools(r.Context(), s)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.render(w, r, http.StatusOK, "tools_list", "Care Tools", toolsListData{Error: "Error loading care tools"})
			return
		}

		q := r.URL.Query().Get("q")
		filtered := make([]caretools.Tool, 0, len(list))
		for _, t := range list {
			if matchesSearch(q, t.Name, t.Description) {
				filtered = append(filtered, t)
			}
		}

		app.render(w, r, http.StatusOK, "tools_list", "Care Tools", toolsListData{Tools: filtered, Query: q})
	}
}

type toolDetailData struct {
	Tool caretools.Tool
}

func toolDetailHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		t, err := app.cachedTool(r.Context(), s, id)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.renderNotFound(w, r)
			return
		}

		app.render(w, r, http.StatusOK, "tool_detail", t.Name, toolDetailData{Tool: t})
	}
}

type toolFormData struct {
	Form    toolForm
	Errors  fieldErrors
	Editing bool
	ID      int
}

func toolNewHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.render(w, r, http.StatusOK, "tool_form", "Add Care Tool", toolFormData{
			Form: toolForm{Count: 1},
		})
	}
}

func toolCreateHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		form := parseToolForm(r)
		if errs := app.validateForm(form); errs != nil {
			app.render(w, r, http.StatusUnprocessableEntity, "tool_form", "Add Care Tool", toolFormData{Form: form, Errors: errs})
			return
		}

		_, err := app.api.AddCareTool(r.Context(), s.Token, caretools.Tool{
			Name:        form.Name,
			Price:       form.Price,
			Count:       form.Count,
			Description: form.Description,
		})
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.render(w, r, http.StatusOK, "tool_form", "Add Care Tool", toolFormData{Form: form})
			return
		}

		app.cache.Invalidate(toolsKey(s))
		app.flashSuccess(w, r, "Care tool added successfully!")
		http.Redirect(w, r, "/care-tools", http.StatusSeeOther)
	}
}

func toolEditHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		t, err := app.cachedTool(r.Context(), s, id)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.renderNotFound(w, r)
			return
		}

		app.render(w, r, http.StatusOK, "tool_form", "Edit Care Tool", toolFormData{
			Form: toolForm{
				Name:        t.Name,
				Price:       t.Price,
				Count:       t.Count,
				Description: t.Description,
			},
			Editing: true,
			ID:      t.ID,
		})
	}
}

func toolUpdateHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		form := parseToolForm(r)
		if errs := app.validateForm(form); errs != nil {
			app.render(w, r, http.StatusUnprocessableEntity, "tool_form", "Edit Care Tool", toolFormData{Form: form, Errors: errs, Editing: true, ID: id})
			return
		}

		_, err = app.api.EditCareTool(r.Context(), s.Token, caretools.Tool{
			ID:          id,
			Name:        form.Name,
			Price:       form.Price,
			Count:       form.Count,
			Description: form.Description,
		})
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.render(w, r, http.StatusOK, "tool_form", "Edit Care Tool", toolFormData{Form: form, Editing: true, ID: id})
			return
		}

		app.cache.Invalidate(toolsKey(s), toolKey(s, id))
		app.flashSuccess(w, r, "Care tool updated successfully!")
		http.Redirect(w, r, "/care-tools/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

func toolDeleteConfirmHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		t, err := app.cachedTool(r.Context(), s, id)
		if err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.renderNotFound(w, r)
			return
		}

		app.render(w, r, http.StatusOK, "tool_delete", "Delete Care Tool", deleteConfirmData{ID: t.ID, Name: t.Name, Kind: "tool"})
	}
}

func toolDeleteHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			app.renderNotFound(w, r)
			return
		}

		if err := app.api.DeleteCareTool(r.Context(), s.Token, id); err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			http.Redirect(w, r, "/care-tools", http.StatusSeeOther)
			return
		}

		app.cache.Invalidate(toolsKey(s), toolKey(s, id))
		app.flashSuccess(w, r, "Care tool deleted successfully!")
		http.Redirect(w, r, "/care-tools", http.StatusSeeOther)
	}
}
