package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"trailspot/internal/model"
	"trailspot/internal/repository"
	"trailspot/internal/utils"
)

type fakeDirectory struct {
	users map[string]model.User
}

func (f *fakeDirectory) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func runBearerAuth(t *testing.T, header string, dir AccountDirectory, tokens *utils.TokenService) (*httptest.ResponseRecorder, Identity, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got Identity
	var called bool
	next := func(c echo.Context) error {
		got, called = GetIdentity(c)
		return c.NoContent(http.StatusOK)
	}
	if err := BearerAuth(tokens, dir)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec, got, called
}

func TestBearerAuthResolvesIdentity(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	token, _, err := tokens.Issue("hiker@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	dir := &fakeDirectory{users: map[string]model.User{
		"hiker@example.com": {ID: 7, Email: "hiker@example.com", Roles: []string{model.RoleUser}},
	}}

	rec, id, called := runBearerAuth(t, "Bearer "+token, dir, tokens)
	if !called {
		t.Fatalf("next was not reached, status %d", rec.Code)
	}
	if id.ID != 7 || id.Email != "hiker@example.com" {
		t.Errorf("identity = %+v", id)
	}
}

func TestBearerAuthRejectsMissingHeader(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	rec, _, called := runBearerAuth(t, "", &fakeDirectory{}, tokens)
	if called {
		t.Fatal("next reached without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestBearerAuthRejectsUnknownAccount(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	token, _, err := tokens.Issue("gone@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, _, called := runBearerAuth(t, "Bearer "+token, &fakeDirectory{}, tokens)
	if called {
		t.Fatal("next reached for a deleted account")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestBearerAuthRejectsTamperedToken(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	other := utils.NewTokenService("different-secret", time.Hour)
	token, _, err := other.Issue("hiker@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec, _, called := runBearerAuth(t, "Bearer "+token, &fakeDirectory{}, tokens)
	if called {
		t.Fatal("next reached with a foreign signature")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(id *Identity, roles ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if id != nil {
			setIdentity(c, *id)
		}
		if err := RequireRole(roles...)(next)(c); err != nil {
			t.Fatalf("middleware: %v", err)
		}
		return rec.Code
	}

	if code := run(nil, model.RoleAdmin); code != http.StatusUnauthorized {
		t.Errorf("no identity: status = %d, want 401", code)
	}
	user := Identity{ID: 1, Email: "u@example.com", Roles: []string{model.RoleUser}}
	if code := run(&user, model.RoleAdmin); code != http.StatusForbidden {
		t.Errorf("plain user: status = %d, want 403", code)
	}
	admin := Identity{ID: 2, Email: "a@example.com", Roles: []string{model.RoleUser, model.RoleAdmin}}
	if code := run(&admin, model.RoleAdmin); code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", code)
	}
}

func TestCanModify(t *testing.T) {
	owner := Identity{Email: "Owner@Example.com", Roles: []string{model.RoleUser}}
	if !owner.CanModify("owner@example.com") {
		t.Error("owner email comparison should ignore case")
	}
	if owner.CanModify("someone-else@example.com") {
		t.Error("non-owner without ADMIN must not modify")
	}
	admin := Identity{Email: "admin@example.com", Roles: []string{model.RoleAdmin}}
	if !admin.CanModify("someone-else@example.com") {
		t.Error("admin may modify any record")
	}
}
