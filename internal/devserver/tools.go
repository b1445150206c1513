package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type toolRecord struct {
	OwnerID string
	Data    toolDTO
}

// toolDTO replica el wire del backend real para care tools (id a secas).
type toolDTO struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
	Desc  string  `json:"description,omitempty"`
}

type toolInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
	Desc  string  `json:"description"`
}

func (in toolInput) validate() string {
	if strings.TrimSpace(in.Name) == "" {
		return "name is required"
	}
	if in.Price < 0 {
		return "price must be >= 0"
	}
	if in.Count < 1 {
		return "count must be >= 1"
	}
	return ""
}

// listToolsHandler godoc
// @Summary Listar care tools del dueño del token
// @Produce json
// @Success 200 {array} toolDTO
// @Router /CareTools/GetAllTools [get]
func (s *Server) listToolsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		out := make([]toolDTO, 0)
		for id := 1; id < s.nextToolID; id++ {
			rec, ok := s.tools[id]
			if ok && rec.OwnerID == u.ID {
				out = append(out, rec.Data)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) getToolHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		rec, ok := s.tools[id]
		if !ok || rec.OwnerID != u.ID {
			writeError(w, http.StatusNotFound, "care tool not found")
			return
		}
		writeJSON(w, http.StatusOK, rec.Data)
	}
}

func (s *Server) addToolHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		var in toolInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if msg := in.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		dto := toolDTO{
			ID:    s.nextToolID,
			Name:  strings.TrimSpace(in.Name),
			Price: in.Price,
			Count: in.Count,
			Desc:  strings.TrimSpace(in.Desc),
		}
		s.tools[s.nextToolID] = &toolRecord{OwnerID: u.ID, Data: dto}
		s.nextToolID++

		writeJSON(w, http.StatusCreated, dto)
	}
}

func (s *Server) editToolHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}

		var in toolInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if msg := in.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		rec, ok := s.tools[id]
		if !ok || rec.OwnerID != u.ID {
			writeError(w, http.StatusNotFound, "care tool not found")
			return
		}

		rec.Data = toolDTO{
			ID:    id,
			Name:  strings.TrimSpace(in.Name),
			Price: in.Price,
			Count: in.Count,
			Desc:  strings.TrimSpace(in.Desc),
		}
		writeJSON(w, http.StatusOK, rec.Data)
	}
}

func (s *Server) deleteToolHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		rec, ok := s.tools[id]
		if !ok || rec.OwnerID != u.ID {
			writeError(w, http.StatusNotFound, "care tool not found")
			return
		}
		delete(s.tools, id)

		writeText(w, http.StatusOK, "Deleted Successfully")
	}
}
