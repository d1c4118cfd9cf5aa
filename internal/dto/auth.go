package dto

// RegisterRequest captures new account input.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// LoginRequest captures credential input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// AccountResponse describes the authenticated user's profile.
type AccountResponse struct {
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}
