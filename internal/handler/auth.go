package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"trailspot/internal/config"
	"trailspot/internal/metrics"
	"trailspot/internal/middleware"
	"trailspot/internal/repository"
	"trailspot/internal/utils"
)

// AuthHandler bundles dependencies for account endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Spots   *repository.SpotRepo
	Hiking  *repository.HikingSpotRepo
	Tokens  *utils.TokenService
	Metrics *metrics.Collector
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SpotRepo,
	h *repository.HikingSpotRepo, t *utils.TokenService, m *metrics.Collector) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Spots: s, Hiking: h, Tokens: t, Metrics: m}
}

// ----- DTOs -----

type registerReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
type authenticateReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type tokenResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Register creates an account with the default USER role and returns a
// token so the client is signed in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Firstname = strings.TrimSpace(req.Firstname)
	req.Lastname = strings.TrimSpace(req.Lastname)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Firstname, req.Lastname, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	token, exp, err := h.Tokens.Issue(req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusCreated, tokenResp{Token: token, Expires: exp})
}

// Authenticate verifies credentials and returns a fresh token. Unknown
// email and wrong password get the same response so the endpoint does not
// leak which accounts exist.
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req authenticateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			h.Metrics.RecordAuthFailure()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		h.Metrics.RecordAuthFailure()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, exp, err := h.Tokens.Issue(u.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusOK, tokenResp{Token: token, Expires: exp})
}

// Validate checks the bearer token from the Authorization header and
// reports its subject. It never resolves the account, so it stays cheap.
func (h *AuthHandler) Validate(c echo.Context) error {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing bearer token"})
	}
	email, err := h.Tokens.Verify(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		h.Metrics.RecordAuthFailure()
		return c.JSON(http.StatusUnauthorized, echo.Map{"valid": false, "error": "invalid token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "email": email})
}

// Logout is a deliberate no-op: tokens are stateless and simply expire.
// Clients drop their copy; the server only records that it happened.
func (h *AuthHandler) Logout(c echo.Context) error {
	if id, ok := middleware.GetIdentity(c); ok {
		log.Printf("logout requested by %s", id.Email)
	} else {
		log.Printf("logout requested by anonymous client")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the caller's profile along with the records they own.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	spots, err := h.Spots.ListByCreator(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load spots failed"})
	}
	hiking, err := h.Hiking.ListByCreator(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load hiking spots failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":        u,
		"spots":       spots,
		"hikingSpots": hiking,
	})
}

// ----- admin endpoints -----

// ListUsers returns every account. Admin only.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns a single account by id. Admin only.
func (h *AuthHandler) GetUser(c echo.Context) error {
	uid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// DeleteUser removes an account and, through the schema, everything it
// owns. Admin only; admins cannot delete themselves.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	uid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if uid == id.ID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, uid); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
