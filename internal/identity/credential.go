package identity

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// ServiceAccount is the structured secret that configures the identity
// verifier. It is supplied out-of-band as a base64-encoded JSON document
// (the provider's service-account key file).
//
// Only ProjectID is required by the verifier: it anchors the issuer and
// audience checks on every presented token. The remaining fields are kept
// for logging and diagnostics.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	ClientEmail  string `json:"client_email"`
}

// ParseServiceKey decodes a base64-encoded service-account secret into a
// ServiceAccount. It fails with [ErrInvalidServiceKey] if the value is not
// valid base64, not valid JSON, or does not name a project.
//
// The verifier must be constructible from such a credential before the
// server accepts traffic, so callers treat any error here as fatal.
func ParseServiceKey(encoded string) (ServiceAccount, error) {
	if encoded == "" {
		return ServiceAccount{}, fmt.Errorf("%w: empty secret", ErrInvalidServiceKey)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("%w: %w", ErrInvalidServiceKey, err)
	}

	var account ServiceAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return ServiceAccount{}, fmt.Errorf("%w: %w", ErrInvalidServiceKey, err)
	}

	if account.ProjectID == "" {
		return ServiceAccount{}, fmt.Errorf("%w: missing project_id", ErrInvalidServiceKey)
	}

	return account, nil
}
