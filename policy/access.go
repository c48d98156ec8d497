// Package policy decides whether a principal may act on a record.
package policy

import (
	"net/http"

	"bellezza-backend/utils"

	"github.com/google/uuid"
)

// ClientOwned is implemented by records owned through a client profile.
type ClientOwned interface {
	ClientUser() *uuid.UUID
}

// UserOwned is implemented by records linked directly to a user.
type UserOwned interface {
	OwnerUser() *uuid.UUID
}

// IsSafeMethod reports whether method never mutates state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanAccess reports whether p may perform method on record. Safe methods are
// always allowed; mutations need staff or ownership via the record's client
// user, then its own user. Records with neither are staff-only.
func CanAccess(p utils.Principal, record any, method string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if p.IsStaff {
		return true
	}
	if !p.Authenticated {
		return false
	}

	if owned, ok := record.(ClientOwned); ok {
		if owner := owned.ClientUser(); owner != nil {
			return *owner == p.UserID
		}
	}
	if owned, ok := record.(UserOwned); ok {
		if owner := owned.OwnerUser(); owner != nil {
			return *owner == p.UserID
		}
	}
	return false
}

// CanWriteCatalog is the admin-or-read-only rule for catalog entities.
func CanWriteCatalog(p utils.Principal, method string) bool {
	return IsSafeMethod(method) || p.IsStaff
}
