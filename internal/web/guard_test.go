package web_test

import (
	"testing"

	"farm-records/internal/session"
	"farm-records/internal/web"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name string
		st   session.State
		kind web.RouteKind
		want web.Verdict
	}{
		{"autenticado en protegida", session.StateAuthenticated, web.RouteProtected, web.VerdictAllow},
		{"autenticado en pública", session.StateAuthenticated, web.RoutePublicOnly, web.VerdictToDashboard},
		{"anónimo en protegida", session.StateAnonymous, web.RouteProtected, web.VerdictToLogin},
		{"anónimo en pública", session.StateAnonymous, web.RoutePublicOnly, web.VerdictAllow},
		// Estado sin resolver: jamás un redirect, en ninguna dirección.
		{"desconocido en protegida", session.StateUnknown, web.RouteProtected, web.VerdictHold},
		{"desconocido en pública", session.StateUnknown, web.RoutePublicOnly, web.VerdictHold},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := web.Decide(tc.st, tc.kind); got != tc.want {
				t.Fatalf("Decide(%v, %v) = %v, want %v", tc.st, tc.kind, got, tc.want)
			}
		})
	}
}
