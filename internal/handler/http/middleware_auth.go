package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/internal/utils"
	"github.com/freelancy/marketplace-api/models"
)

const unauthorizedMessage = "unauthorized access"

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// verifies it via [identity.Verifier], and on success stores the verified
// [models.Principal] in the request context under [utils.PrincipalCtxKey]
// before delegating to the next handler.
//
// All rejections produce the same HTTP 401 body so that callers cannot
// distinguish a missing header from a failed verification; the specific cause
// is logged via the context-scoped logger.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			h.unauthorized(w)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			h.unauthorized(w)
			return
		}

		ctx := r.Context()
		principal, err := h.verifier.Verify(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("credential verification failed")
			h.unauthorized(w)
			return
		}

		// Store the verified principal in the context so that downstream
		// handlers can retrieve it without re-verifying the token.
		ctx = context.WithValue(ctx, utils.PrincipalCtxKey, principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter) {
	utils.WriteJSON(w, models.Message{Message: unauthorizedMessage}, http.StatusUnauthorized)
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the form "<scheme> <token>".
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
