// Package identity validates bearer ID tokens against the external identity
// provider.
//
// Verification happens locally: the provider publishes the X.509 certificates
// of its current signing keys at a well-known HTTPS endpoint, and the
// verifier checks each token's RS256 signature against the certificate named
// by the token's "kid" header. Certificates are cached between requests and
// refreshed when the Cache-Control max-age the provider sent expires.
package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/freelancy/marketplace-api/internal/logger"
	"github.com/freelancy/marketplace-api/models"
)

// DefaultCertsURL is the endpoint publishing the identity provider's current
// token-signing certificates as a JSON object of key id to PEM certificate.
const DefaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

const (
	issuerPrefix        = "https://securetoken.google.com/"
	certsRequestTimeout = 10 * time.Second

	// fallback cache lifetime when the provider sends no usable max-age
	defaultCertsTTL = 5 * time.Minute
)

type certVerifier struct {
	client    *resty.Client
	certsURL  string
	projectID string
	logger    *logger.Logger

	mu     sync.Mutex
	keys   map[string]*rsa.PublicKey
	expiry time.Time
}

// NewCertVerifier constructs a [Verifier] for the project named by the
// service account. certsURL overrides the provider certificate endpoint;
// pass "" to use [DefaultCertsURL].
func NewCertVerifier(account ServiceAccount, certsURL string, log *logger.Logger) Verifier {
	if certsURL == "" {
		certsURL = DefaultCertsURL
	}

	log.Info().
		Str("project_id", account.ProjectID).
		Str("certs_url", certsURL).
		Msg("identity verifier created")

	return &certVerifier{
		client:    resty.New().SetTimeout(certsRequestTimeout),
		certsURL:  certsURL,
		projectID: account.ProjectID,
		logger:    log,
	}
}

// Verify checks the raw ID token and returns the verified principal.
//
// The token must be an RS256-signed JWT whose issuer and audience match the
// configured project, whose signature checks out against one of the
// provider's published certificates, and whose expiry lies in the future.
// A single verification attempt is made; any failure is wrapped in
// [ErrInvalidCredential] except [ErrMissingEmailClaim], which signals a
// structurally valid token that cannot act as a principal.
func (v *certVerifier) Verify(ctx context.Context, rawToken string) (models.Principal, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, ErrUnknownKeyID
		}
		return v.signingKey(ctx, kid)
	})
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return models.Principal{}, ErrMissingEmailClaim
	}

	subject, _ := claims.GetSubject()
	issuer, _ := claims.GetIssuer()

	return models.Principal{
		Email:   email,
		Subject: subject,
		Issuer:  issuer,
	}, nil
}

// signingKey resolves the RSA public key for the given key id, refreshing the
// certificate cache when it is stale or does not contain the key. A key that
// is still unknown after a refresh is reported as [ErrUnknownKeyID] — the
// provider has rotated it out and the token cannot be trusted.
func (v *certVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Now().Before(v.expiry) {
		return key, nil
	}

	if err := v.refreshCertsLocked(ctx); err != nil {
		return nil, err
	}

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, kid)
	}

	return key, nil
}

// refreshCertsLocked fetches the provider's certificate document and rebuilds
// the key cache. The caller must hold v.mu.
func (v *certVerifier) refreshCertsLocked(ctx context.Context) error {
	log := logger.FromContext(ctx)

	certs := make(map[string]string)
	resp, err := v.client.R().
		SetContext(ctx).
		SetResult(&certs).
		Get(v.certsURL)
	if err != nil {
		log.Err(err).Str("certs_url", v.certsURL).Msg("provider certs request failed")
		return fmt.Errorf("%w: %w", ErrFetchingCerts, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("certs_url", v.certsURL).
			Msg("provider certs request returned error status")
		return fmt.Errorf("%w: unexpected status %d", ErrFetchingCerts, resp.StatusCode())
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, err := publicKeyFromPEM(pemCert)
		if err != nil {
			log.Err(err).Str("kid", kid).Msg("skipping unparsable provider certificate")
			continue
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: no usable certificates in response", ErrFetchingCerts)
	}

	v.keys = keys
	v.expiry = time.Now().Add(certsTTL(resp.Header().Get("Cache-Control")))

	log.Debug().Int("keys", len(keys)).Time("expiry", v.expiry).Msg("provider certs refreshed")

	return nil
}

// publicKeyFromPEM extracts the RSA public key from a PEM-encoded X.509
// certificate.
func publicKeyFromPEM(pemCert string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemCert))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in certificate")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("error parsing certificate: %w", err)
	}

	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate does not carry an RSA public key")
	}

	return key, nil
}

// certsTTL extracts the max-age directive from a Cache-Control header value.
// Returns defaultCertsTTL when the header carries no usable max-age.
func certsTTL(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		if value, ok := strings.CutPrefix(directive, "max-age="); ok {
			seconds, err := strconv.Atoi(value)
			if err == nil && seconds > 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}

	return defaultCertsTTL
}
