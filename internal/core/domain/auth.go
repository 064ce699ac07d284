package domain

// TokenClaims are the claims carried in an access token
type TokenClaims struct {
	Subject   string `json:"subject"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// AuthContext is the authenticated identity attached to a request.
// The HTTP layer keys engine instances by Subject, which is what gives
// each authenticated caller its own conversation session.
type AuthContext struct {
	Subject   string `json:"subject"`
	SessionID string `json:"session_id"`
}

// LoginRequest is the payload for password login
// @Description Password login request
type LoginRequest struct {
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginResponse carries the issued access token
// @Description Issued access token
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
