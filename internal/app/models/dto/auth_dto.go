package dto

// SignupRequest is the payload for POST /signup
type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	DOB      string `json:"dob" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for POST /login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ManualVerifyRequest is the payload for POST /manual-verify
type ManualVerifyRequest struct {
	Email string `json:"email" binding:"required"`
}

// UpdateUserDetailsRequest is the payload for PUT /updateUserDetails.
// Email selects the user; every other field is optional and applied
// only when non-empty.
type UpdateUserDetailsRequest struct {
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	DOB      string `json:"dob"`
	Password string `json:"password"`
}
