package middleware // middleware contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"trailspot/internal/model"
	"trailspot/internal/repository"
	"trailspot/internal/utils"
)

// AccountDirectory resolves token subjects into accounts. Satisfied by
// *repository.UserRepo; tests substitute fakes.
type AccountDirectory interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// BearerAuth returns an Echo middleware that validates the Bearer token on
// every request and resolves its subject against the account directory. On
// success the request context carries an Identity for handlers to pass down;
// any token failure (missing, malformed, bad signature, expired) answers 401
// without distinguishing the cause to the client. Verification itself is
// pure, so the middleware is safe under arbitrary request concurrency.
func BearerAuth(tokens *utils.TokenService, accounts AccountDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			subject, err := tokens.Verify(raw)
			if err != nil {
				// expired and invalid collapse to the same response; the
				// distinction stays in server logs only
				if errors.Is(err, utils.ErrTokenExpired) {
					c.Logger().Debugf("auth: expired token for %s", c.Path())
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			account, err := accounts.GetByEmail(ctx, subject)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// valid signature but the account is gone
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "account lookup failed"})
			}

			setIdentity(c, Identity{ID: account.ID, Email: account.Email, Roles: account.Roles})
			return next(c)
		}
	}
}
