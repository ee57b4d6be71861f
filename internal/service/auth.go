package service

import (
	"context"
	"errors"

	"github.com/myanycart/anycart-go/internal/api"
	"github.com/myanycart/anycart-go/internal/crypto"
	"github.com/myanycart/anycart-go/internal/model"
	"github.com/myanycart/anycart-go/internal/repository"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrSessionExpired   = errors.New("session expired, please log in again")
)

// AuthService handles login, registration and session lifecycle on top of
// the API client and the session store.
type AuthService struct {
	client   *api.Client
	sessions *repository.SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(client *api.Client, sessions *repository.SessionStore) *AuthService {
	return &AuthService{client: client, sessions: sessions}
}

// Login exchanges credentials for tokens and persists the session.
// Returns the logged-in user, derived from the access token payload when
// the backend response carries no user object.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	tok, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(*tok), nil
}

// LoginGoogle exchanges a Google id_token at the backend and persists the
// returned session.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (*model.User, error) {
	tok, err := s.client.LoginGoogle(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.adopt(*tok), nil
}

// Register creates an account and persists the session it returns.
// password2, when set, must match the password; the check happens client
// side so the mismatch never reaches the network.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if req.Email == "" {
		return nil, ErrEmailRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	if req.Password2 != "" && req.Password2 != req.Password {
		return nil, ErrPasswordMismatch
	}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	user := &model.User{ID: resp.ID, Email: resp.Email, Name: joinName(resp.FirstName, resp.LastName)}
	s.sessions.Set(model.Session{Access: resp.Access, Refresh: resp.Refresh, User: user})
	return user, nil
}

// Logout destroys the persisted session.
func (s *AuthService) Logout() {
	s.sessions.Clear()
}

// CurrentUser returns the cached user, deriving one from the access token
// payload when the session was stored without a user. Nil when logged out.
func (s *AuthService) CurrentUser() *model.User {
	sess := s.sessions.Get()
	if sess == nil {
		return nil
	}
	if sess.User != nil {
		return sess.User
	}
	return crypto.UserFromToken(sess.Access)
}

// ReloadUser refetches the profile from the backend and refreshes the
// cached user. A 401 that survived the client's one-shot refresh means
// the session is gone for good.
func (s *AuthService) ReloadUser(ctx context.Context) (*model.Me, error) {
	sess := s.sessions.Get()
	if sess == nil {
		return nil, ErrNotLoggedIn
	}

	me, err := s.client.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	sess.User = &model.User{ID: me.ID, Email: me.Email, Name: me.FullName()}
	s.sessions.Set(*sess)
	return me, nil
}

// UpdateProfile patches the profile and refreshes the cached user.
func (s *AuthService) UpdateProfile(ctx context.Context, req model.UpdateMeRequest) (*model.Me, error) {
	if s.sessions.Get() == nil {
		return nil, ErrNotLoggedIn
	}

	me, err := s.client.UpdateMe(ctx, req)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	if sess := s.sessions.Get(); sess != nil {
		sess.User = &model.User{ID: me.ID, Email: me.Email, Name: me.FullName()}
		s.sessions.Set(*sess)
	}
	return me, nil
}

// SendConfirmationEmail asks the backend to resend the address
// confirmation email for the current account.
func (s *AuthService) SendConfirmationEmail(ctx context.Context) (string, error) {
	if s.sessions.Get() == nil {
		return "", ErrNotLoggedIn
	}

	detail, err := s.client.SendConfirmationEmail(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			return "", ErrSessionExpired
		}
		return "", err
	}
	return detail, nil
}

// adopt persists a token response as the current session.
func (s *AuthService) adopt(tok model.TokenResponse) *model.User {
	user := tok.User
	if user == nil {
		user = crypto.UserFromToken(tok.Access)
	}
	s.sessions.Set(model.Session{Access: tok.Access, Refresh: tok.Refresh, User: user})
	return user
}

func joinName(first, last string) string {
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}
