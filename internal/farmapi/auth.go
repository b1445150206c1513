package farmapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// User es el perfil tal como lo consume el resto de la app.
type User struct {
	ID    string
	Name  string
	Email string
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult es el token más el usuario derivado de la respuesta de login.
type LoginResult struct {
	Token string
	User  User
}

// wireUser tolera las variantes de nombres de campo observadas entre
// revisiones del backend (id/userId, name/userName).
type wireUser struct {
	ID       json.RawMessage `json:"id"`
	UserID   json.RawMessage `json:"userId"`
	Name     string          `json:"name"`
	UserName string          `json:"userName"`
	Email    string          `json:"email"`
}

func (w wireUser) toUser() User {
	id := rawToString(w.ID)
	if id == "" {
		id = rawToString(w.UserID)
	}
	name := strings.TrimSpace(w.UserName)
	if name == "" {
		name = strings.TrimSpace(w.Name)
	}
	return User{ID: id, Name: name, Email: strings.TrimSpace(w.Email)}
}

// rawToString acepta el id como string o como número.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// Login autentica y deriva el usuario de la respuesta: usa el objeto user
// anidado si vino; si faltan campos, cae a los top-level y por último al
// email enviado (el backend no siempre completa el perfil en login).
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var raw struct {
		Token string    `json:"token"`
		User  *wireUser `json:"user"`
		wireUser
	}
	if err := c.do(ctx, http.MethodPost, "/Authentication/Login", "", creds, &raw); err != nil {
		return LoginResult{}, err
	}

	if strings.TrimSpace(raw.Token) == "" {
		return LoginResult{}, &Error{Kind: KindParse, Message: "Login response missing token"}
	}

	var u User
	if raw.User != nil {
		u = raw.User.toUser()
	} else {
		u = raw.wireUser.toUser()
	}
	if u.Name == "" {
		u.Name = creds.Email
	}
	if u.Email == "" {
		u.Email = creds.Email
	}

	return LoginResult{Token: raw.Token, User: u}, nil
}

// Register crea la cuenta. No loguea: el flujo vuelve a la vista de login.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/Authentication/Register", "", in, nil)
}

// Logout invalida el token en el backend. Best-effort: el caller limpia la
// sesión local aunque esto falle.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/Authentication/LogOut", token, nil, nil)
}

// ShowMe trae el perfil del dueño del token.
func (c *Client) ShowMe(ctx context.Context, token string) (User, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodGet, "/Authentication/ShowMe", token, nil, &w); err != nil {
		return User{}, err
	}
	return w.toUser(), nil
}

// UpdateProfile actualiza nombre/email del perfil.
func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileInput) (User, error) {
	var w wireUser
	if err := c.do(ctx, http.MethodPost, "/Authentication/UpdateProfile", token, in, &w); err != nil {
		return User{}, err
	}
	u := w.toUser()
	// Respuesta sintetizada (string suelto con marker): usa lo enviado.
	if u.Name == "" && u.Email == "" {
		u.Name = in.Name
		u.Email = in.Email
	}
	return u, nil
}
