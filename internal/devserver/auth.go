package devserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// registerHandler godoc
// @Summary Registrar cuenta
// @Accept json
// @Produce json
// @Success 201 {object} userResponse
// @Failure 409 {object} map[string]string "email ya registrado"
// @Router /Authentication/Register [post]
func (s *Server) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "name, email and password are required")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.usersByEmail[req.Email]; exists {
			writeError(w, http.StatusConflict, "an account with this email already exists")
			return
		}

		u := &user{
			ID:    uuid.NewString(),
			Name:  req.Name,
			Email: req.Email,
			Hash:  hash,
		}
		s.usersByEmail[u.Email] = u
		s.usersByID[u.ID] = u

		writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
}

// loginHandler godoc
// @Summary Login, emite bearer token
// @Accept json
// @Produce json
// @Success 200 {object} loginResponse
// @Failure 401 {object} map[string]string
// @Router /Authentication/Login [post]
func (s *Server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		u, ok := s.usersByEmail[strings.ToLower(strings.TrimSpace(req.Email))]
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword(u.Hash, []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token := uuid.NewString()
		s.tokens[token] = u.ID

		writeJSON(w, http.StatusOK, loginResponse{
			Token: token,
			User:  userResponse{ID: u.ID, Name: u.Name, Email: u.Email},
		})
	}
}

// logoutHandler responde texto suelto a propósito: ejercita el camino del
// success marker del cliente.
func (s *Server) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()

		writeText(w, http.StatusOK, "Logged Out Successfully")
	}
}

// showMeHandler godoc
// @Summary Perfil del dueño del token
// @Produce json
// @Success 200 {object} userResponse
// @Failure 401 {object} map[string]string
// @Router /Authentication/ShowMe [get]
func (s *Server) showMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
}

func (s *Server) updateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.requireUser(w, r)
		if !ok {
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Name == "" || req.Email == "" {
			writeError(w, http.StatusBadRequest, "name and email are required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if other, exists := s.usersByEmail[req.Email]; exists && other.ID != u.ID {
			writeError(w, http.StatusConflict, "an account with this email already exists")
			return
		}

		delete(s.usersByEmail, u.Email)
		u.Name = req.Name
		u.Email = req.Email
		s.usersByEmail[u.Email] = u

		writeJSON(w, http.StatusOK, userResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
}
