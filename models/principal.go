package models

// Principal is the authenticated identity attached to a request after its
// bearer token has been resolved to an existing account.
type Principal struct {
	AccountID int64   `json:"id"`
	Email     string  `json:"email"`
	FullName  *string `json:"full_name"`
}

// NewPrincipal builds a [Principal] from a persisted account.
func NewPrincipal(account Account) Principal {
	return Principal{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
	}
}
