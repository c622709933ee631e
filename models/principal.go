package models

// Principal is a verified caller identity produced by the identity verifier.
// Email is the claim every ownership decision is keyed on. Subject and Issuer
// are carried for structured logging only.
type Principal struct {
	Email   string
	Subject string
	Issuer  string
}
