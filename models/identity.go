package models

// Identity is the resolved current user. The auth gate returns this one
// shape everywhere; handlers never inspect raw token claims.
type Identity struct {
	ID    uint    `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
}

// Label returns something printable for log lines.
func (i Identity) Label() string {
	if i.Name != nil && *i.Name != "" {
		return *i.Name
	}
	return i.Email
}
