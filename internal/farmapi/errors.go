package farmapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"farm-records/internal/platform/httpclient"
)

// Kind es la taxonomía de fallas del backend.
type Kind string

const (
	KindValidation   Kind = "validation"   // 400
	KindUnauthorized Kind = "unauthorized" // 401: credenciales o token inválido
	KindNotFound     Kind = "not_found"    // 404
	KindConflict     Kind = "conflict"     // 409: cuenta duplicada
	KindServer       Kind = "server"       // 5xx, transitorio
	KindParse        Kind = "parse"        // body no-JSON / malformado
	KindNetwork      Kind = "network"      // request rechazado antes de tener status
	KindUnknown      Kind = "unknown"      // cualquier otro no-2xx
)

// Error es la única forma en que este paquete reporta fallas del backend.
// Message siempre es apto para mostrarse al usuario.
type Error struct {
	Kind    Kind
	Status  int // 0 si no hubo respuesta
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("farmapi: %s (status=%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("farmapi: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Transient reporta si reintentar tiene sentido.
func (e *Error) Transient() bool {
	return e.Kind == KindServer || e.Kind == KindNetwork
}

// KindOf extrae el Kind de un error; KindUnknown si no es un *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsUnauthorized reporta si la falla es de autenticación (el call site debe
// limpiar sesión y redirigir a login).
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// UserMessage devuelve el mensaje apto para notificación; fallback genérico.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return "Failed to process request"
}

// errorFromResponse mapea status => Kind. El mapping es contrato:
// 400 validación, 401 credenciales/token, 404 no existe, 409 duplicado,
// >=500 transitorio, resto genérico con el message del server si vino.
func errorFromResponse(resp *httpclient.Response) *Error {
	msg := serverMessage(resp.Body)

	e := &Error{Status: resp.StatusCode, Message: msg}
	switch {
	case resp.StatusCode == 400:
		e.Kind = KindValidation
		if msg == "" {
			e.Message = "Invalid input"
		}
	case resp.StatusCode == 401:
		e.Kind = KindUnauthorized
		if msg == "" {
			e.Message = "Invalid credentials"
		}
	case resp.StatusCode == 404:
		e.Kind = KindNotFound
		if msg == "" {
			e.Message = "Not found"
		}
	case resp.StatusCode == 409:
		e.Kind = KindConflict
		if msg == "" {
			e.Message = "An account with this email already exists"
		}
	case resp.StatusCode >= 500:
		e.Kind = KindServer
		if msg == "" {
			e.Message = "Server error, please try again later"
		}
	default:
		e.Kind = KindUnknown
		if msg == "" {
			e.Message = "Failed to process request"
		}
	}
	return e
}

// serverMessage intenta extraer {"message": "..."} del body de error.
// Si el body es texto suelto, lo usa tal cual (recortado).
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err == nil {
		return strings.TrimSpace(out.Message)
	}
	txt := strings.TrimSpace(string(body))
	if len(txt) > 200 {
		txt = txt[:200]
	}
	return txt
}
