// Package repository implements plain-SQL data access for accounts, spots
// and hiking spots. Sentinel errors let handlers map failures to HTTP status
// codes without inspecting driver error strings.
package repository

import "errors"

// ErrNotFound is returned when a referenced record or account does not
// exist. Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration collides with an existing
// account email. Handlers translate it into an HTTP 400 response, matching
// the registration contract.
var ErrEmailExists = errors.New("email already exists")
