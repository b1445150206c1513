// Package devserver implementa el backend REST de la granja en memoria.
// Sirve para desarrollo local y para los tests end-to-end del frontend:
// mismos paths, mismos nombres de campo del wire y mismos códigos de error
// que el backend real.
package devserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Server struct {
	log *logrus.Logger

	mu           sync.Mutex
	usersByEmail map[string]*user
	usersByID    map[string]*user
	tokens       map[string]string // token => userID

	animals      map[int]*animalRecord
	nextAnimalID int

	tools      map[int]*toolRecord
	nextToolID int
}

type user struct {
	ID    string
	Name  string
	Email string
	Hash  []byte
}

func New(log *logrus.Logger) *Server {
	return &Server{
		log:          log,
		usersByEmail: make(map[string]*user),
		usersByID:    make(map[string]*user),
		tokens:       make(map[string]string),
		animals:      make(map[int]*animalRecord),
		nextAnimalID: 1,
		tools:        make(map[int]*toolRecord),
		nextToolID:   1,
	}
}

// requireUser resuelve el bearer token a su usuario; corta con 401 si falta
// o no existe (mismo contrato que el backend real).
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*user, bool) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid, ok := s.tokens[token]
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}
	u, ok := s.usersByID[uid]
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}
	return u, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeText responde un string suelto, como hacen algunas revisiones del
// backend real en mutaciones (el cliente lo resuelve via success marker).
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
