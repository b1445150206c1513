package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// animalRecord es el registro tal como vive en el backend, con dueño.
type animalRecord struct {
	OwnerID string
	Data    animalDTO
}

// animalDTO replica el wire del backend real: animalID (no id) y buyorsale
// como string enum en la revisión vigente.
type animalDTO struct {
	AnimalID  int      `json:"animalID"`
	Name      string   `json:"name"`
	Price     float64  `json:"animalPrice"`
	Count     int      `json:"animalcount"`
	Desc      string   `json:"description,omitempty"`
	BuyOrSale string   `json:"buyorsale"`
	Date      string   `json:"dateOfbuyorsale,omitempty"`
	Cares     []string `json:"animalCares,omitempty"`
}

// animalInput tolera buyorsale string o numérico en el intake,
// como hicieron distintas revisiones de clientes.
type animalInput struct {
	Name      string          `json:"name"`
	Price     float64         `json:"animalPrice"`
	Count     int             `json:"animalcount"`
	Desc      string          `json:"description"`
	BuyOrSale json.RawMessage `json:"buyorsale"`
	Date      string          `json:"dateOfbuyorsale"`
	Cares     []string        `json:"animalCares"`
}

func normalizeBuyOrSale(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "sale"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.EqualFold(strings.TrimSpace(s), "buy") {
			return "buy"
		}
		return "sale"
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil && n < 3 {
		return "buy"
	}
	return "sale"
}

func (in animalInput) validate() string {
	if strings.TrimSpace(in.Name) == "" {
		return "name is required"
	}
	if in.Price < 0 {
		return "animalPrice must be >= 0"
	}
	if in.Count < 1 {
		return "animalcount must be >= 1"
	}
	return ""
}

// listAnimalsHandler godoc
// @Summary Listar animales del dueño del token
// @Produce json
// @Success 200 {array} animalDTO
// @Router /Animals/GetAllAnimals [get]
func (s *Server) listAnimalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		out := make([]animalDTO, 0)
		for id := 1; id < s.nextAnimalID; id++ {
			rec, ok := s.animals[id]
			if ok && rec.OwnerID == u.ID {
				out = append(out, rec.Data)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) getAnimalHandler() http.HandlerFunc {
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

		rec, ok := s.animals[id]
		if !ok || rec.OwnerID != u.ID {
			writeError(w, http.StatusNotFound, "animal not found")
			return
		}
		writeJSON(w, http.StatusOK, rec.Data)
	}
}

func (s *Server) addAnimalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		var in animalInput
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

		dto := animalDTO{
			AnimalID:  s.nextAnimalID,
			Name:      strings.TrimSpace(in.Name),
			Price:     in.Price,
			Count:     in.Count,
			Desc:      strings.TrimSpace(in.Desc),
			BuyOrSale: normalizeBuyOrSale(in.BuyOrSale),
			Date:      in.Date,
			Cares:     in.Cares,
		}
		if dto.Date == "" {
			dto.Date = time.Now().UTC().Format(time.RFC3339)
		}
		s.animals[s.nextAnimalID] = &animalRecord{OwnerID: u.ID, Data: dto}
		s.nextAnimalID++

		writeJSON(w, http.StatusCreated, dto)
	}
}

func (s *Server) editAnimalHandler() http.HandlerFunc {
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

		var in animalInput
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

		rec, ok := s.animals[id]
		if !ok || rec.OwnerID != u.ID {
			writeError(w, http.StatusNotFound, "animal not found")
			return
		}

		rec.Data = animalDTO{
			AnimalID:  id,
			Name:      strings.TrimSpace(in.Name),
			Price:     in.Price,
			Count:     in.Count,
			Desc:      strings.TrimSpace(in.Desc),
			BuyOrSale: normalizeBuyOrSale(in.BuyOrSale),
			Date:      in.Date,
			Cares:     in.Cares,
		}
		writeJSON(w, http.StatusOK, rec.Data)
	}
}

// deleteAnimalHandler responde texto suelto (revisión real del backend):
// el cliente lo interpreta via success marker.
func (s *Server) deleteAnimalHandler() http.HandlerFunc {
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

		rec, ok := s.animals[id]
		if !ok || rec.OwnerID != u.ID {
			writeError(w, http.StatusNotFound, "animal not found")
			return
		}
		delete(s.animals, id)

		writeText(w, http.StatusOK, "Deleted Successfully")
	}
}
