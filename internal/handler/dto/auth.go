package dto

// SignupRequest is the request body for user registration.
type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned on successful registration.
type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// LoginRequest is the request body for password sign-in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful sign-in.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// ValidateTokenResponse reports the result of a token check.
type ValidateTokenResponse struct {
	Valid bool          `json:"valid"`
	User  *UserResponse `json:"user,omitempty"`
}

// ForgotPasswordRequest asks for a password reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest sets a new password for the caller.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}
