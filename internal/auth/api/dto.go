package api

// RegisterReq is the registration payload.
type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq is the login payload.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResp carries the issued access token.
type LoginResp struct {
	Token string `json:"token"`
}

// RegisterResp echoes the created user's public fields.
type RegisterResp struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
