package web

import (
	"net/http"

	"farm-records/internal/middleware"
	"farm-records/internal/session"
)

func homeHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.render(w, r, http.StatusOK, "home", "Farm Records", nil)
	}
}

type authFormData struct {
	Form   any
	Errors fieldErrors
}

func loginPageHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.render(w, r, http.StatusOK, "login", "Log In", authFormData{Form: loginForm{}})
	}
}

func loginSubmitHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := parseLoginForm(r)
		if errs := app.validateForm(form); errs != nil {
			app.render(w, r, http.StatusUnprocessableEntity, "login", "Log In", authFormData{Form: form, Errors: errs})
			return
		}

		s, err := app.sessions.Login(r.Context(), form.Email, form.Password)
		if err != nil {
			// El submit queda re-habilitado: se re-renderiza el form con
			// la notificación del error.
			app.flashError(w, r, userMessageOr(err, "Failed to log in"))
			app.render(w, r, http.StatusOK, "login", "Log In", authFormData{Form: form})
			return
		}

		app.bindSession(w, r, s)
		app.flashSuccess(w, r, "Successfully logged in!")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func registerPageHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.render(w, r, http.StatusOK, "register", "Register", authFormData{Form: registerForm{}})
	}
}

func registerSubmitHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := parseRegisterForm(r)
		if errs := app.validateForm(form); errs != nil {
			app.render(w, r, http.StatusUnprocessableEntity, "register", "Register", authFormData{Form: form, Errors: errs})
			return
		}

		if err := app.sessions.Register(r.Context(), form.Name, form.Email, form.Password); err != nil {
			app.flashError(w, r, userMessageOr(err, "Failed to register"))
			app.render(w, r, http.StatusOK, "register", "Register", authFormData{Form: form})
			return
		}

		// Registrarse no abre sesión: el flujo sigue en login.
		app.flashSuccess(w, r, "Registration successful! Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// logoutHandler: el logout es incondicional del lado del cliente; falle o
// no el backend, acá se borra la sesión, se expira la cookie y se navega
// a la landing.
func logoutHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		app.sessions.Logout(r.Context(), s)
		app.cache.Invalidate(animalsKey(s), toolsKey(s))
		app.dropSessionCookie(w, r)

		app.flashSuccess(w, r, "Successfully logged out!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

type profileData struct {
	User   session.Session
	Form   profileForm
	Errors fieldErrors
}

func profilePageHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())
		form := profileForm{Name: s.User.Name, Email: s.User.Email}
		app.render(w, r, http.StatusOK, "profile", "Profile", profileData{User: s, Form: form})
	}
}

func profileSubmitHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())

		form := parseProfileForm(r)
		if errs := app.validateForm(form); errs != nil {
			app.render(w, r, http.StatusUnprocessableEntity, "profile", "Profile", profileData{User: s, Form: form, Errors: errs})
			return
		}

		if _, err := app.sessions.UpdateProfile(r.Context(), s, form.Name, form.Email); err != nil {
			if app.failAPI(w, r, err) {
				return
			}
			app.render(w, r, http.StatusOK, "profile", "Profile", profileData{User: s, Form: form})
			return
		}

		app.flashSuccess(w, r, "Profile updated successfully!")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
	}
}
