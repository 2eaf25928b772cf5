package auth

// LoginRequest carries login form input plus request metadata recorded on
// the session row.
type LoginRequest struct {
	Username  string `json:"username" form:"username"`
	Password  string `json:"password" form:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

// LoginResponse is returned on a successful login. The token is set as a
// cookie by the transport layer; the keypair goes back to the client for
// end-to-end chat encryption.
type LoginResponse struct {
	Token      string `json:"token"`
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// RegisterRequest carries signup form input. The keypair is generated
// client-side; the server only stores it.
type RegisterRequest struct {
	Username   string `json:"username" form:"username"`
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	PrivateKey string `json:"private_key" form:"private_key"`
	PublicKey  string `json:"public_key" form:"public_key"`
}
