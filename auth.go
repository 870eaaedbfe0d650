package inkwell

// Credentials is the request body for a login exchange.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the request body for a registration exchange.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// PasswordChange is the request body for a password change exchange.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse is returned by successful login and registration exchanges.
// The token is the bearer credential clients attach to subsequent requests.
type AuthResponse struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// VerifyResponse is returned by a successful credential verification.
type VerifyResponse struct {
	Data VerifyData `json:"data"`
}

// VerifyData wraps the verified subject's identity.
type VerifyData struct {
	User User `json:"user"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
