package dto

// RegisterRequest is the payload for user sign-up
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Jane Silva"`
	Email    string `json:"email" binding:"required,email" example:"jane@campus.edu"`
	Password string `json:"password" binding:"required,min=8" example:"Secret123!"`
	Role     string `json:"role" binding:"required,oneof=ADMIN LIC EXAMINER STUDENT" example:"STUDENT"`
	NIC      string `json:"nic,omitempty" example:"991234567V"`
	Phone    string `json:"phone,omitempty" example:"0771234567"`
	Address  string `json:"address,omitempty" example:"12 Galle Rd, Colombo"`
}

// LoginRequest is the payload for credential login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@campus.edu"`
	Password string `json:"password" binding:"required" example:"Secret123!"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// UpdateUserRequest is the admin payload for mutating a user
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
