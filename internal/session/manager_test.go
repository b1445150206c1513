package session_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"farm-records/internal/adapters/storage/memory"
	"farm-records/internal/farmapi"
	"farm-records/internal/session"
)

// routedTransport responde según el path; cuenta requests para verificar
// cuándo el manager evita la red.
type routedTransport struct {
	responses map[string]fakeResponse
	calls     int
}

type fakeResponse struct {
	status int
	body   string
}

func (f *routedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	r, ok := f.responses[req.URL.Path]
	if !ok {
		r = fakeResponse{status: 404, body: `{"message":"no route"}`}
	}
	return &http.Response{
		StatusCode: r.status,
		Body:       io.NopCloser(strings.NewReader(r.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

type counter interface{ Len() int }

func newManager(t *testing.T, tr http.RoundTripper) (*session.Manager, session.Repository) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	api, err := farmapi.NewWithTransport("http://backend.test", tr, log)
	if err != nil {
		t.Fatalf("NewWithTransport: %v", err)
	}
	repo := memory.NewSessionRepo()
	return session.NewManager(repo, api, log), repo
}

func TestLogin_PersistsSession(t *testing.T) {
	tr := &routedTransport{responses: map[string]fakeResponse{
		"/Authentication/Login": {200, `{"token":"tok-1","user":{"id":"u1","name":"Ana","email":"ana@farm.test"}}`},
	}}
	mgr, repo := newManager(t, tr)

	s, err := mgr.Login(context.Background(), "ana@farm.test", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.ID == "" || s.Token != "tok-1" || !s.HasUser {
		t.Fatalf("session: %+v", s)
	}
	if s.User.Name != "Ana" {
		t.Fatalf("User = %+v", s.User)
	}

	got, err := repo.Get(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("repo.Get: %v", err)
	}
	if got.Token != "tok-1" {
		t.Fatalf("persisted token = %q", got.Token)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	tr := &routedTransport{responses: map[string]fakeResponse{
		"/Authentication/Login": {401, `{"message":"Invalid credentials"}`},
	}}
	mgr, repo := newManager(t, tr)

	_, err := mgr.Login(context.Background(), "ana@farm.test", "wrong")
	if !farmapi.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if repo.(counter).Len() != 0 {
		t.Fatal("no session should persist after failed login")
	}
}

func TestLogin_EmptyInput(t *testing.T) {
	mgr, _ := newManager(t, &routedTransport{})
	if _, err := mgr.Login(context.Background(), "", "x"); !errors.Is(err, session.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
	if _, err := mgr.Login(context.Background(), "a@b.c", ""); !errors.Is(err, session.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestResolve_EmptyID(t *testing.T) {
	mgr, _ := newManager(t, &routedTransport{})
	if _, st := mgr.Resolve(context.Background(), ""); st != session.StateAnonymous {
		t.Fatalf("state = %v, want anonymous", st)
	}
}

func TestResolve_UnknownID(t *testing.T) {
	mgr, _ := newManager(t, &routedTransport{})
	if _, st := mgr.Resolve(context.Background(), "nope"); st != session.StateAnonymous {
		t.Fatalf("state = %v, want anonymous", st)
	}
}

func TestResolve_CachedUser_NoNetwork(t *testing.T) {
	tr := &routedTransport{}
	mgr, repo := newManager(t, tr)

	seed := session.Session{ID: "sid-1", Token: "tok", HasUser: true,
		User: farmapi.User{ID: "u1", Name: "Ana", Email: "ana@farm.test"}}
	if err := repo.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s, st := mgr.Resolve(context.Background(), "sid-1")
	if st != session.StateAuthenticated {
		t.Fatalf("state = %v, want authenticated", st)
	}
	if s.User.Name != "Ana" {
		t.Fatalf("User = %+v", s.User)
	}
	if tr.calls != 0 {
		t.Fatalf("expected no network calls, got %d", tr.calls)
	}
}

func TestResolve_Rehydrates(t *testing.T) {
	tr := &routedTransport{responses: map[string]fakeResponse{
		"/Authentication/ShowMe": {200, `{"id":"u1","name":"Ana","email":"ana@farm.test"}`},
	}}
	mgr, repo := newManager(t, tr)

	if err := repo.Save(context.Background(), session.Session{ID: "sid-1", Token: "tok"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s, st := mgr.Resolve(context.Background(), "sid-1")
	if st != session.StateAuthenticated {
		t.Fatalf("state = %v, want authenticated", st)
	}
	if !s.HasUser || s.User.Email != "ana@farm.test" {
		t.Fatalf("session = %+v", s)
	}

	// El usuario quedó cacheado: segunda resolución sin red.
	before := tr.calls
	if _, st := mgr.Resolve(context.Background(), "sid-1"); st != session.StateAuthenticated {
		t.Fatalf("second resolve: %v", st)
	}
	if tr.calls != before {
		t.Fatalf("expected cached resolve, calls %d -> %d", before, tr.calls)
	}
}

func TestResolve_StaleToken_ClearsRecord(t *testing.T) {
	tr := &routedTransport{responses: map[string]fakeResponse{
		"/Authentication/ShowMe": {401, `{"message":"token expired"}`},
	}}
	mgr, repo := newManager(t, tr)

	if err := repo.Save(context.Background(), session.Session{ID: "sid-1", Token: "stale"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, st := mgr.Resolve(context.Background(), "sid-1"); st != session.StateAnonymous {
		t.Fatalf("state = %v, want anonymous", st)
	}
	if repo.(counter).Len() != 0 {
		t.Fatal("stale session record should be deleted")
	}
}

func TestLogout_AlwaysClearsLocal(t *testing.T) {
	// Backend caído: el logout local procede igual.
	tr := &routedTransport{responses: map[string]fakeResponse{
		"/Authentication/LogOut": {500, ``},
	}}
	mgr, repo := newManager(t, tr)

	s := session.Session{ID: "sid-1", Token: "tok", HasUser: true}
	if err := repo.Save(context.Background(), s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mgr.Logout(context.Background(), s)

	if repo.(counter).Len() != 0 {
		t.Fatal("local session should be gone even if remote logout failed")
	}
}

func TestUpdateProfile_RefreshesCachedUser(t *testing.T) {
	tr := &routedTransport{responses: map[string]fakeResponse{
		"/Authentication/UpdateProfile": {200, `{"id":"u1","name":"Ana María","email":"ana@farm.test"}`},
	}}
	mgr, repo := newManager(t, tr)

	s := session.Session{ID: "sid-1", Token: "tok", HasUser: true,
		User: farmapi.User{ID: "u1", Name: "Ana", Email: "ana@farm.test"}}
	if err := repo.Save(context.Background(), s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := mgr.UpdateProfile(context.Background(), s, "Ana María", "ana@farm.test")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.User.Name != "Ana María" {
		t.Fatalf("User = %+v", updated.User)
	}

	got, err := repo.Get(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("repo.Get: %v", err)
	}
	if got.User.Name != "Ana María" {
		t.Fatalf("persisted user = %+v", got.User)
	}
}
