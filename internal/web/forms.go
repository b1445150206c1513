package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Formularios tipados con validación por tags. Cada form sabe decodificarse
// del POST y devolver errores por campo listos para re-render.

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type profileForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

type animalForm struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	Count       int     `validate:"gte=1"`
	Description string
	BuyOrSale   string `validate:"required,oneof=buy sale"`
}

type toolForm struct {
	Name        string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	Count       int     `validate:"gte=1"`
	Description string
}

// fieldErrors mapea campo => mensaje mostrable.
type fieldErrors map[string]string

var formMessages = map[string]string{
	"loginForm.Email":       "A valid email is required",
	"loginForm.Password":    "Password is required",
	"registerForm.Name":     "Name is required",
	"registerForm.Email":    "A valid email is required",
	"registerForm.Password": "Password must be at least 6 characters",
	"profileForm.Name":      "Name is required",
	"profileForm.Email":     "A valid email is required",
	"animalForm.Name":       "Name is required",
	"animalForm.Price":      "Price must be a positive number",
	"animalForm.Count":      "Count must be at least 1",
	"animalForm.BuyOrSale":  "Buy/Sale status is required",
	"toolForm.Name":         "Name is required",
	"toolForm.Price":        "Price must be a positive number",
	"toolForm.Count":        "Count must be at least 1",
}

func (app *App) validateForm(form any) fieldErrors {
	err := app.validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fieldErrors{"": "Invalid input"}
	}

	out := make(fieldErrors, len(verrs))
	for _, fe := range verrs {
		// Namespace viene como "animalForm.Price"
		msg, ok := formMessages[fe.StructNamespace()]
		if !ok {
			msg = "Invalid value"
		}
		out[fe.StructField()] = msg
	}
	return out
}

func parseLoginForm(r *http.Request) loginForm {
	return loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

func parseProfileForm(r *http.Request) profileForm {
	return profileForm{
		Name:  strings.TrimSpace(r.PostFormValue("name")),
		Email: strings.TrimSpace(r.PostFormValue("email")),
	}
}

// parseAnimalForm decodifica el POST; los campos numéricos ilegibles quedan
// en un valor que no pasa validación (no se corta el flujo acá).
func parseAnimalForm(r *http.Request) animalForm {
	f := animalForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		BuyOrSale:   strings.TrimSpace(r.PostFormValue("buyorsale")),
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("price")), 64); err == nil {
		f.Price = v
	} else {
		f.Price = -1
	}
	if v, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("count"))); err == nil {
		f.Count = v
	}
	return f
}

func parseToolForm(r *http.Request) toolForm {
	f := toolForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("price")), 64); err == nil {
		f.Price = v
	} else {
		f.Price = -1
	}
	if v, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("count"))); err == nil {
		f.Count = v
	}
	return f
}
