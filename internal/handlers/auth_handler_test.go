package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/workbridge-jp/workbridge_be/internal/middleware"
)

func setCookieValue(resp *http.Response) string {
	for _, sc := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, middleware.TokenCookie+"=") {
			return sc
		}
	}
	return ""
}

func TestCandidateRegisterAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/candidate/register",
		map[string]string{
			"name":     "Nguyen Van A",
			"email":    "Nguyen@Example.com",
			"password": "password123",
		}, nil)
	wantStatus(t, resp, http.StatusCreated)
	if setCookieValue(resp) == "" {
		t.Fatalf("register should set the session cookie")
	}

	// email was normalized to lowercase; registering again conflicts
	resp = doJSON(t, app, http.MethodPost, "/api/auth/candidate/register",
		map[string]string{
			"name":     "Someone Else",
			"email":    "nguyen@example.com",
			"password": "password456",
		}, nil)
	wantStatus(t, resp, http.StatusBadRequest)

	// wrong password
	resp = doJSON(t, app, http.MethodPost, "/api/auth/candidate/login",
		map[string]string{"email": "nguyen@example.com", "password": "wrong"}, nil)
	wantStatus(t, resp, http.StatusUnauthorized)

	// unknown email gets the same answer
	resp = doJSON(t, app, http.MethodPost, "/api/auth/candidate/login",
		map[string]string{"email": "nobody@example.com", "password": "password123"}, nil)
	wantStatus(t, resp, http.StatusUnauthorized)

	// correct credentials
	resp = doJSON(t, app, http.MethodPost, "/api/auth/candidate/login",
		map[string]string{"email": "nguyen@example.com", "password": "password123"}, nil)
	wantStatus(t, resp, http.StatusOK)
	if setCookieValue(resp) == "" {
		t.Fatalf("login should set the session cookie")
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.c", "password": "secret1"}},
		{"missing email", map[string]string{"name": "A", "password": "secret1"}},
		{"bad email", map[string]string{"name": "A", "email": "nope", "password": "secret1"}},
		{"short password", map[string]string{"name": "A", "email": "a@b.c", "password": "abc"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/company/register", tc.body, nil)
			wantStatus(t, resp, http.StatusBadRequest)
		})
	}
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	app, gdb := newTestApp(t)

	co := seedCompany(t, gdb, "Acme KK", "acme@example.com")
	seedJob(t, gdb, co.ID, "Backend Engineer")

	// no cookie at all
	resp := doJSON(t, app, http.MethodGet, "/api/applications?companyId=1", nil, nil)
	wantStatus(t, resp, http.StatusUnauthorized)

	// garbage token
	resp = doJSON(t, app, http.MethodGet, "/api/applications?companyId=1", nil,
		&http.Cookie{Name: middleware.TokenCookie, Value: "not-a-jwt"})
	wantStatus(t, resp, http.StatusUnauthorized)
}
