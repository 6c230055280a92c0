package model

// User is the account projection the client holds. It is either decoded
// from the credential's embedded claims or fetched from the profile endpoint.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}
