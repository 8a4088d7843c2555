package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/studycircle-dev/studycircle/internal/domain"
	internal_errors "github.com/studycircle-dev/studycircle/internal/errors"
	mw "github.com/studycircle-dev/studycircle/internal/middleware"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

// requireUser pulls the authenticated user out of the request context. The
// auth middleware guarantees it on protected routes; the nil check guards
// against wiring mistakes.
func requireUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return nil
	}
	return user
}

func urlId(r *http.Request, name string) (int64, error) {
	return parseIntParam(chi.URLParam(r, name), name)
}

// authorizeScope keeps direct-message content private to its pair; group and
// session content is readable by any authenticated user.
func authorizeScope(viewer domain.UserId, scope domain.Scope, scopeId string) error {
	if scope != domain.ScopeDirect {
		return nil
	}
	a, b, err := domain.ParseDMScopeId(scopeId)
	if err != nil {
		return internal_errors.NewForbidden("Forbidden")
	}
	if viewer != a && viewer != b {
		return internal_errors.NewForbidden("Forbidden")
	}
	return nil
}
