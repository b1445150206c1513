package web_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/cache"
	"farm-records/internal/devserver"
	"farm-records/internal/farmapi"
	sess "farm-records/internal/session"
	"farm-records/internal/web"
)

func newTestApp(t *testing.T, backendURL string) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	api, err := farmapi.New(backendURL, 5*time.Second, log)
	if err != nil {
		t.Fatalf("farmapi.New: %v", err)
	}

	app, err := web.NewApp(web.Options{
		API:      api,
		Sessions: sess.NewManager(memory.NewSessionRepo(), api, log),
		Store:    sessions.NewCookieStore([]byte("test-secret")),
		Cache:    cache.New(time.Minute, log),
		Log:      log,
	})
	if err != nil {
		t.Fatalf("web.NewApp: %v", err)
	}

	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)
	return srv
}

// browser es un cliente con cookie jar que sigue redirects, como un navegador.
func browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, rawurl string) (int, string) {
	t.Helper()
	resp, err := c.Get(rawurl)
	if err != nil {
		t.Fatalf("GET %s: %v", rawurl, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func postForm(t *testing.T, c *http.Client, rawurl string, form url.Values) (int, string) {
	t.Helper()
	resp, err := c.PostForm(rawurl, form)
	if err != nil {
		t.Fatalf("POST %s: %v", rawurl, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func mustContain(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(body, w) {
			t.Fatalf("body missing %q\n---\n%s", w, body)
		}
	}
}

func TestHTTP_EndToEnd_AnimalLifecycle(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	backend := httptest.NewServer(devserver.New(log).Router())
	defer backend.Close()

	srv := newTestApp(t, backend.URL)
	c := browser(t)

	// 1) Sin sesión: las rutas protegidas mandan a login.
	noFollow := &http.Client{
		Jar:           c.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := noFollow.Get(srv.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("anonymous /dashboard: %d -> %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// 2) Registro: vuelve al login con la notificación.
	st, body := postForm(t, c, srv.URL+"/register", url.Values{
		"name":     {"Ana"},
		"email":    {"ana@farm.test"},
		"password": {"secret1"},
	})
	if st != http.StatusOK {
		t.Fatalf("register: %d", st)
	}
	mustContain(t, body, "Registration successful! Please log in.")

	// 3) Email duplicado: el mensaje del server llega al form.
	st, body = postForm(t, c, srv.URL+"/register", url.Values{
		"name":     {"Ana"},
		"email":    {"ana@farm.test"},
		"password": {"secret1"},
	})
	if st != http.StatusOK {
		t.Fatalf("duplicate register: %d", st)
	}
	mustContain(t, body, "already exists")

	// 4) Login: aterriza en el dashboard.
	st, body = postForm(t, c, srv.URL+"/login", url.Values{
		"email":    {"ana@farm.test"},
		"password": {"secret1"},
	})
	if st != http.StatusOK {
		t.Fatalf("login: %d", st)
	}
	mustContain(t, body, "Successfully logged in!", "Dashboard")

	// 5) Autenticado: login/register expulsan al dashboard.
	resp, err = noFollow.Get(srv.URL + "/login")
	if err != nil {
		t.Fatalf("GET /login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/dashboard" {
		t.Fatalf("authenticated /login: %d -> %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// 6) Lista vacía.
	st, body = get(t, c, srv.URL+"/animals")
	if st != http.StatusOK {
		t.Fatalf("animals: %d", st)
	}
	mustContain(t, body, "No animals found.")

	// 7) Alta: la lista muestra la card con precio, cantidad y estado.
	st, body = postForm(t, c, srv.URL+"/animals", url.Values{
		"name":        {"Dairy Cow"},
		"price":       {"1200"},
		"count":       {"5"},
		"buyorsale":   {"buy"},
		"description": {"holstein"},
	})
	if st != http.StatusOK {
		t.Fatalf("add animal: %d", st)
	}
	mustContain(t, body, "Animal added successfully!", "Dairy Cow", "1200 $", "Count: 5", "Status: Buy")

	// 8) Form inválido: re-render con errores y valores preservados.
	st, body = postForm(t, c, srv.URL+"/animals", url.Values{
		"name":      {""},
		"price":     {"-5"},
		"count":     {"0"},
		"buyorsale": {"maybe"},
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("invalid form: %d", st)
	}
	mustContain(t, body,
		"Name is required",
		"Price must be a positive number",
		"Count must be at least 1",
		"Buy/Sale status is required",
	)

	// 9) Edit: el form llega prellenado con lo que mostraba el detalle.
	st, body = get(t, c, srv.URL+"/animals/1/edit")
	if st != http.StatusOK {
		t.Fatalf("edit form: %d", st)
	}
	mustContain(t, body, `value="Dairy Cow"`, `value="1200"`, `value="5"`)
	if !strings.Contains(body, `value="buy" selected`) {
		t.Fatalf("buy option not preselected:\n%s", body)
	}

	// 10) Update cambia el estado a sale.
	st, body = postForm(t, c, srv.URL+"/animals/1", url.Values{
		"name":        {"Dairy Cow"},
		"price":       {"1500"},
		"count":       {"5"},
		"buyorsale":   {"sale"},
		"description": {"holstein"},
	})
	if st != http.StatusOK {
		t.Fatalf("update: %d", st)
	}
	mustContain(t, body, "Animal updated successfully!", "1500 $", "Status: Sale")

	// 11) Confirmación de borrado: GET no borra nada.
	st, body = get(t, c, srv.URL+"/animals/1/delete")
	if st != http.StatusOK {
		t.Fatalf("delete confirm: %d", st)
	}
	mustContain(t, body, "Are you sure", "Dairy Cow")

	st, body = get(t, c, srv.URL+"/animals")
	if st != http.StatusOK {
		t.Fatalf("animals after confirm view: %d", st)
	}
	mustContain(t, body, "Dairy Cow") // sigue ahí

	// 12) POST de borrado: la lista queda vacía.
	st, body = postForm(t, c, srv.URL+"/animals/1/delete", nil)
	if st != http.StatusOK {
		t.Fatalf("delete: %d", st)
	}
	mustContain(t, body, "Animal deleted successfully!", "No animals found.")
}

func TestHTTP_EndToEnd_CareTools(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	backend := httptest.NewServer(devserver.New(log).Router())
	defer backend.Close()

	srv := newTestApp(t, backend.URL)
	c := browser(t)

	registerAndLogin(t, c, srv.URL, "bob@farm.test")

	st, body := postForm(t, c, srv.URL+"/care-tools", url.Values{
		"name":        {"Hoof Trimmer"},
		"price":       {"85.5"},
		"count":       {"3"},
		"description": {"stainless"},
	})
	if st != http.StatusOK {
		t.Fatalf("add tool: %d", st)
	}
	mustContain(t, body, "Care tool added successfully!", "Hoof Trimmer", "85.5 $", "Count: 3")

	// Búsqueda: el filtro deja afuera lo que no matchea.
	st, body = get(t, c, srv.URL+"/care-tools?q=zzz")
	if st != http.StatusOK {
		t.Fatalf("search: %d", st)
	}
	mustContain(t, body, "No care tools found.")

	st, body = get(t, c, srv.URL+"/care-tools?q=hoof")
	if st != http.StatusOK {
		t.Fatalf("search: %d", st)
	}
	mustContain(t, body, "Hoof Trimmer")
}

func TestHTTP_Logout_WorksWithBackendDown(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	backend := httptest.NewServer(devserver.New(log).Router())

	srv := newTestApp(t, backend.URL)
	c := browser(t)

	registerAndLogin(t, c, srv.URL, "eve@farm.test")

	// Backend caído: el logout local tiene que proceder igual.
	backend.Close()

	st, body := postForm(t, c, srv.URL+"/logout", nil)
	if st != http.StatusOK {
		t.Fatalf("logout: %d", st)
	}
	mustContain(t, body, "Successfully logged out!")

	// La sesión quedó muerta: protegida vuelve a login.
	noFollow := &http.Client{
		Jar:           c.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := noFollow.Get(srv.URL + "/dashboard")
	if err != nil {
		t.Fatalf("GET /dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("after logout: %d -> %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func registerAndLogin(t *testing.T, c *http.Client, base, email string) {
	t.Helper()
	if st, _ := postForm(t, c, base+"/register", url.Values{
		"name":     {"Tester"},
		"email":    {email},
		"password": {"secret1"},
	}); st != http.StatusOK {
		t.Fatalf("register: %d", st)
	}
	st, body := postForm(t, c, base+"/login", url.Values{
		"email":    {email},
		"password": {"secret1"},
	})
	if st != http.StatusOK {
		t.Fatalf("login: %d", st)
	}
	if !strings.Contains(body, "Dashboard") {
		t.Fatalf("login did not land on dashboard:\n%s", body)
	}
}
