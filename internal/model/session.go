package model

// User represents the account behind the current session.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Session holds the token pair issued by the backend plus an optional
// cached user. Owned by the session store; the HTTP client only reads it
// and updates the access token through SetAccess.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user,omitempty"`
}

// LoginRequest represents a username/password token request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GoogleLoginRequest represents a Google id_token exchange request.
// The token is sent under both keys the backend variants accept.
type GoogleLoginRequest struct {
	IDToken    string `json:"id_token"`
	Credential string `json:"credential"`
}

// TokenResponse represents the backend's token endpoint response.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user,omitempty"`
}

// RefreshRequest represents an access-token refresh request.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse represents an access-token refresh response.
type RefreshResponse struct {
	Access string `json:"access"`
}

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2,omitempty"`
}

// RegisterResponse represents a successful registration, which also
// logs the new account in.
type RegisterResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Access    string `json:"access"`
	Refresh   string `json:"refresh"`
}

// Me represents the current-user profile returned by the backend.
type Me struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	IsStaff        bool   `json:"is_staff"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

// AvatarUpload carries a profile picture for a multipart profile update.
type AvatarUpload struct {
	Filename string
	Content  []byte
}

// UpdateMeRequest represents a partial profile update. Nil fields are
// omitted from the multipart form; RemoveAvatar sends an explicit empty
// avatar value so the backend clears the stored picture.
type UpdateMeRequest struct {
	FirstName    *string
	LastName     *string
	Avatar       *AvatarUpload
	RemoveAvatar bool
}

// FullName joins the profile's name parts, skipping empty ones.
func (m Me) FullName() string {
	switch {
	case m.FirstName != "" && m.LastName != "":
		return m.FirstName + " " + m.LastName
	case m.FirstName != "":
		return m.FirstName
	default:
		return m.LastName
	}
}
