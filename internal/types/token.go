package types

// TokenRequest is the login payload. It is sent, never stored.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (TokenRequest) tokenPayload() {}
