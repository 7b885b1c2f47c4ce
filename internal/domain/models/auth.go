package models

// Principal is the identity yielded by the external auth provider. The
// backend never validates it beyond shape; it only round-trips the value
// through the session token.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
