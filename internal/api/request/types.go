package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for registering a user.
// Height and weight pass through unvalidated.
type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
}

// ChangePasswordRequest is the request body for changing the password
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// UpdateProfileRequest is the request body for updating profile fields.
// Pointer fields distinguish "omitted" from an explicit zero: an omitted
// field leaves the stored value unchanged.
type UpdateProfileRequest struct {
	Username *string  `json:"username"`
	Height   *float64 `json:"height"`
	Weight   *float64 `json:"weight"`
}
