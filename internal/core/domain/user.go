package domain

// User mirrors the identity provider's view of a subject. Organization is
// empty for users without an organization claim.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
}

// IdentityClaims is the verified content of an identity token. Organizations
// carries every organization the token asserts membership in; resolution
// rejects tokens with more than one.
type IdentityClaims struct {
	Subject       string
	Email         string
	Organizations []string
}
