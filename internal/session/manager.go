package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"farm-records/internal/farmapi"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoSession    = errors.New("no session")
)

// Manager es el único dueño del estado de sesión: login, register, logout,
// update de perfil y rehidratación. Nadie más toca el Repository.
type Manager struct {
	repo Repository
	api  *farmapi.Client
	log  *logrus.Logger
	now  func() time.Time
}

func NewManager(repo Repository, api *farmapi.Client, log *logrus.Logger) *Manager {
	return &Manager{
		repo: repo,
		api:  api,
		log:  log,
		now:  time.Now,
	}
}

// Login autentica contra el backend y persiste token + usuario derivado.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	res, err := m.api.Login(ctx, farmapi.Credentials{Email: email, Password: password})
	if err != nil {
		return Session{}, err
	}

	s := Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		User:      res.User,
		HasUser:   true,
		CreatedAt: m.now(),
	}
	if err := m.repo.Save(ctx, s); err != nil {
		return Session{}, err
	}

	m.log.WithField("user", s.User.Email).Info("login ok")
	return s, nil
}

// Register crea la cuenta. No abre sesión: el flujo sigue en login.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return ErrInvalidInput
	}
	return m.api.Register(ctx, farmapi.RegisterInput{Name: name, Email: email, Password: password})
}

// Logout borra la sesión local SIEMPRE; el logout remoto es best-effort
// (su falla no puede dejar al usuario logueado del lado del cliente).
func (m *Manager) Logout(ctx context.Context, s Session) {
	if err := m.api.Logout(ctx, s.Token); err != nil {
		m.log.WithError(err).Warn("remote logout failed, clearing local session anyway")
	}
	if err := m.repo.Delete(ctx, s.ID); err != nil {
		m.log.WithError(err).Error("delete session record")
	}
}

// UpdateProfile actualiza el perfil remoto y refresca el usuario cacheado.
func (m *Manager) UpdateProfile(ctx context.Context, s Session, name, email string) (Session, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return s, ErrInvalidInput
	}

	u, err := m.api.UpdateProfile(ctx, s.Token, farmapi.ProfileInput{Name: name, Email: email})
	if err != nil {
		return s, err
	}
	if u.ID == "" {
		u.ID = s.User.ID
	}

	s.User = u
	s.HasUser = true
	if err := m.repo.Save(ctx, s); err != nil {
		return s, err
	}
	return s, nil
}

// Resolve rehidrata el estado de autenticación para un request.
// - sin registro => anonymous
// - registro con usuario cacheado => authenticated, sin red
// - registro con token pero sin usuario => ShowMe; si falla, la sesión
//   persistida se borra entera (nunca reintentos infinitos) => anonymous
func (m *Manager) Resolve(ctx context.Context, sessionID string) (Session, State) {
	if strings.TrimSpace(sessionID) == "" {
		return Session{}, StateAnonymous
	}

	s, err := m.repo.Get(ctx, sessionID)
	if err != nil {
		return Session{}, StateAnonymous
	}

	if s.HasUser {
		return s, StateAuthenticated
	}

	u, err := m.api.ShowMe(ctx, s.Token)
	if err != nil {
		m.log.WithError(err).Info("session rehydration failed, clearing persisted session")
		if derr := m.repo.Delete(ctx, s.ID); derr != nil {
			m.log.WithError(derr).Error("delete stale session record")
		}
		return Session{}, StateAnonymous
	}

	s.User = u
	s.HasUser = true
	if err := m.repo.Save(ctx, s); err != nil {
		m.log.WithError(err).Error("cache rehydrated user")
	}
	return s, StateAuthenticated
}

// Clear borra el registro persistido (p.ej. ante un 401 en un call site).
func (m *Manager) Clear(ctx context.Context, sessionID string) {
	if strings.TrimSpace(sessionID) == "" {
		return
	}
	if err := m.repo.Delete(ctx, sessionID); err != nil {
		m.log.WithError(err).Error("clear session record")
	}
}
