package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/hnrobert/envportal/internal/auth"
)

type ctxKey string

const ctxInstance ctxKey = "instance"

// withInstanceContext attaches the claims of a valid bearer token, if any.
func (a *App) withInstanceContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cl := a.readInstance(r); cl != nil {
			r = r.WithContext(context.WithValue(r.Context(), ctxInstance, cl))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) readInstance(r *http.Request) *auth.Claims {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return nil
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}
	cl, err := auth.ParseInstance(a.secret, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	return cl
}

func instanceFrom(r *http.Request) *auth.Claims {
	if v := r.Context().Value(ctxInstance); v != nil {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

func (a *App) requireInstance(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if instanceFrom(r) == nil {
			writeError(w, auth.ErrInvalidToken)
			return
		}
		h(w, r)
	}
}
