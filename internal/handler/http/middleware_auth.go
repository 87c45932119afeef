package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
	"github.com/MKhiriev/go-home-inventory/models"
)

// auth resolves the bearer token of the request to a principal and stores
// it in the request context under [utils.PrincipalCtxKey].
//
// A missing or unparsable header, a rejected token and a token for a
// deleted or inactive account are all answered with the same 401 body.
// A store outage during resolution is answered with 503.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Msg("request without bearer token")
			writeError(w, r, service.ErrUnauthorized)
			return
		}

		principal, err := h.services.IdentityResolver.Resolve(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("account_id", principal.AccountID)
		})

		ctx := utils.WithPrincipal(l.WithContext(r.Context()), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFromRequest returns the principal stored by [Handler.auth].
func principalFromRequest(r *http.Request) (models.Principal, error) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		return models.Principal{}, errNoPrincipal
	}
	return principal, nil
}

// ownerHandlerFunc is a protected handler that receives the caller's
// account id.
type ownerHandlerFunc func(w http.ResponseWriter, r *http.Request, ownerID int64)

// withOwner adapts fn to an [http.HandlerFunc] that reads the principal
// from the request context first.
func withOwner(fn ownerHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := principalFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		fn(w, r, principal.AccountID)
	}
}
