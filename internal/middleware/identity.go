package middleware

// identity.go defines the resolved caller identity shared between middleware
// and handlers. The identity is built exactly once per request at the
// authentication boundary and threaded through the echo context; handlers
// pass it down explicitly instead of reading ambient security state.

import (
	"strings"

	"github.com/labstack/echo/v4"

	"trailspot/internal/model"
)

const identityKey = "identity"

// Identity describes the authenticated caller: the token subject resolved
// against the account directory. Roles come from the directory, never from
// the token.
type Identity struct {
	ID    uint64
	Email string
	Roles []string
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (id Identity) IsAdmin() bool {
	for _, r := range id.Roles {
		if r == model.RoleAdmin {
			return true
		}
	}
	return false
}

// CanModify reports whether the caller may mutate a record owned by
// creatorEmail: owners and admins only.
func (id Identity) CanModify(creatorEmail string) bool {
	return id.IsAdmin() || strings.EqualFold(id.Email, creatorEmail)
}

// GetIdentity returns the identity stored by BearerAuth, if any.
func GetIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

func setIdentity(c echo.Context, id Identity) { c.Set(identityKey, id) }
