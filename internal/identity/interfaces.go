package identity

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_verifier_mock.go -package=mock

import (
	"context"

	"github.com/freelancy/marketplace-api/models"
)

// Verifier validates an opaque bearer credential against the external
// identity provider and yields the verified principal.
//
// Exactly one verification attempt is made per call; there are no retries.
// Any returned error means the credential must be treated as invalid — the
// transport layer responds with a uniform 401 regardless of the internal
// cause, which is only logged.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (models.Principal, error)
}
