package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freelancy/marketplace-api/internal/logger"
)

const testProject = "freelancy-test"

// newSigningKey generates an RSA key pair together with a self-signed X.509
// certificate in PEM form, mimicking the documents the provider publishes.
func newSigningKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken@system.test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	pemCert := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	return key, string(pemCert)
}

// newCertsServer serves a provider-style certificate document for the given
// kid→PEM map.
func newCertsServer(t *testing.T, certs map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(certs))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(jwt.MapClaims)) string {
	t.Helper()

	claims := jwt.MapClaims{
		"iss":   issuerPrefix + testProject,
		"aud":   testProject,
		"sub":   "uid-123",
		"email": "a@x.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}

	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func newTestVerifier(t *testing.T, certsURL string) Verifier {
	t.Helper()
	return NewCertVerifier(ServiceAccount{ProjectID: testProject}, certsURL, logger.Nop())
}

func TestCertVerifier_Verify_ValidToken(t *testing.T) {
	key, pemCert := newSigningKey(t)
	srv := newCertsServer(t, map[string]string{"kid-1": pemCert})
	v := newTestVerifier(t, srv.URL)

	principal, err := v.Verify(context.Background(), signToken(t, key, "kid-1", nil))
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", principal.Email)
	assert.Equal(t, "uid-123", principal.Subject)
	assert.Equal(t, issuerPrefix+testProject, principal.Issuer)
}

func TestCertVerifier_Verify_FailureModes(t *testing.T) {
	key, pemCert := newSigningKey(t)
	otherKey, _ := newSigningKey(t)
	srv := newCertsServer(t, map[string]string{"kid-1": pemCert})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "garbage token",
			token:   "not-a-jwt",
			wantErr: ErrInvalidCredential,
		},
		{
			name:    "unknown kid",
			token:   signToken(t, key, "kid-unknown", nil),
			wantErr: ErrInvalidCredential,
		},
		{
			name:    "signed by foreign key",
			token:   signToken(t, otherKey, "kid-1", nil),
			wantErr: ErrInvalidCredential,
		},
		{
			name: "expired token",
			token: signToken(t, key, "kid-1", func(c jwt.MapClaims) {
				c["exp"] = time.Now().Add(-time.Minute).Unix()
			}),
			wantErr: ErrInvalidCredential,
		},
		{
			name: "wrong audience",
			token: signToken(t, key, "kid-1", func(c jwt.MapClaims) {
				c["aud"] = "some-other-project"
			}),
			wantErr: ErrInvalidCredential,
		},
		{
			name: "wrong issuer",
			token: signToken(t, key, "kid-1", func(c jwt.MapClaims) {
				c["iss"] = "https://evil.example.com/" + testProject
			}),
			wantErr: ErrInvalidCredential,
		},
		{
			name: "no email claim",
			token: signToken(t, key, "kid-1", func(c jwt.MapClaims) {
				delete(c, "email")
			}),
			wantErr: ErrMissingEmailClaim,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVerifier(t, srv.URL)

			principal, err := v.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, principal.Email)
		})
	}
}

func TestCertVerifier_Verify_CachesCertsBetweenCalls(t *testing.T) {
	key, pemCert := newSigningKey(t)

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Cache-Control", "max-age=3600")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"kid-1": pemCert}))
	}))
	defer srv.Close()

	v := newTestVerifier(t, srv.URL)
	ctx := context.Background()

	_, err := v.Verify(ctx, signToken(t, key, "kid-1", nil))
	require.NoError(t, err)
	_, err = v.Verify(ctx, signToken(t, key, "kid-1", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "second verification should reuse cached certs")
}

func TestCertVerifier_Verify_CertsEndpointDown(t *testing.T) {
	key, _ := newSigningKey(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := newTestVerifier(t, srv.URL)

	_, err := v.Verify(context.Background(), signToken(t, key, "kid-1", nil))
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestCertsTTL_TableTest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"plain max-age", "max-age=600", 10 * time.Minute},
		{"among other directives", "public, max-age=3600, must-revalidate", time.Hour},
		{"missing", "no-store", defaultCertsTTL},
		{"empty header", "", defaultCertsTTL},
		{"unparsable value", "max-age=soon", defaultCertsTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, certsTTL(tt.header))
		})
	}
}
