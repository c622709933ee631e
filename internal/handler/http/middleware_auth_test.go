package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freelancy/marketplace-api/internal/mock"
	"github.com/freelancy/marketplace-api/internal/utils"
	"github.com/freelancy/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---- getTokenFromAuthHeader unit tests ----

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "valid Bearer token",
			header:    "Bearer my-jwt-token",
			wantToken: "my-jwt-token",
		},
		{
			name:    "missing token part",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:      "non-Bearer scheme still parses second part",
			header:    "Basic dXNlcjpwYXNz",
			wantToken: "dXNlcjpwYXNz",
		},
		{
			name:    "only spaces",
			header:  " ",
			wantErr: ErrEmptyToken,
		},
		{
			name:      "extra parts — second part is used",
			header:    "Bearer token extra-part",
			wantToken: "token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ---- auth middleware tests ----

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

func TestAuth_RejectionsShareUniformBody(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		prepare func(verifier *mock.MockVerifier)
	}{
		{
			name:    "missing header",
			header:  "",
			prepare: func(verifier *mock.MockVerifier) {},
		},
		{
			name:    "header without token",
			header:  "Bearer",
			prepare: func(verifier *mock.MockVerifier) {},
		},
		{
			name:   "verification failure",
			header: "Bearer bad-token",
			prepare: func(verifier *mock.MockVerifier) {
				verifier.EXPECT().
					Verify(gomock.Any(), "bad-token").
					Return(models.Principal{}, errors.New("signature invalid"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t)
			tt.prepare(mocks.verifier)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not be reached")
			})

			rr := executeAuth(h, tt.header, next)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"message":"unauthorized access"}`, rr.Body.String())
		})
	}
}

func TestAuth_AttachesPrincipalToContext(t *testing.T) {
	h, mocks := newTestHandler(t)

	principal := models.Principal{Email: "worker@example.com", Subject: "uid-1"}
	mocks.verifier.EXPECT().
		Verify(gomock.Any(), "good-token").
		Return(principal, nil)

	var got models.Principal
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = utils.GetPrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	rr := executeAuth(h, "Bearer good-token", next)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.True(t, found)
	assert.Equal(t, principal, got)
}
