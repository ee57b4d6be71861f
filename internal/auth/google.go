package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/myanycart/anycart-go/internal/config"
)

const (
	defaultGoogleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	defaultGoogleTokenURL = "https://oauth2.googleapis.com/token"
)

var (
	ErrGoogleNotConfigured = errors.New("google sign-in is not configured (set ANYCART_GOOGLE_CLIENT_ID)")
	ErrStateMismatch       = errors.New("oauth state mismatch")
)

// GoogleFlow obtains a Google id_token through the OAuth authorization
// code flow with a localhost callback, for exchange at the backend's
// google sign-in endpoint.
type GoogleFlow struct {
	clientID     string
	clientSecret string
	port         string

	// Overridable for tests.
	AuthURL  string
	TokenURL string

	// Prompt receives the URL the user has to open in a browser.
	Prompt func(url string)
}

// NewGoogleFlow creates a GoogleFlow from the client configuration.
func NewGoogleFlow(cfg config.Config) *GoogleFlow {
	return &GoogleFlow{
		clientID:     cfg.GoogleClientID,
		clientSecret: cfg.GoogleClientSecret,
		port:         cfg.OAuthPort,
		AuthURL:      defaultGoogleAuthURL,
		TokenURL:     defaultGoogleTokenURL,
		Prompt: func(u string) {
			fmt.Printf("Open this URL in your browser to sign in:\n\n  %s\n\n", u)
		},
	}
}

// SignIn runs the full flow: serve the localhost callback, send the user
// to Google's consent page, then exchange the returned code for an
// id_token. Cancelling ctx aborts the wait.
func (f *GoogleFlow) SignIn(ctx context.Context) (string, error) {
	if f.clientID == "" {
		return "", ErrGoogleNotConfigured
	}

	state, err := randomState()
	if err != nil {
		return "", err
	}
	redirectURL := "http://127.0.0.1:" + f.port + "/callback"

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)

	// Only the first callback counts; a reloaded browser tab must not
	// block the handler on the already-consumed channel.
	deliver := func(cb callback) {
		select {
		case results <- cb:
		default:
		}
	}

	r := chi.NewRouter()
	r.Get("/callback", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			deliver(callback{err: ErrStateMismatch})
			return
		}
		if errMsg := q.Get("error"); errMsg != "" {
			http.Error(w, errMsg, http.StatusBadRequest)
			deliver(callback{err: fmt.Errorf("google sign-in denied: %s", errMsg)})
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this window.")
		deliver(callback{code: q.Get("code")})
	})

	srv := &http.Server{Addr: "127.0.0.1:" + f.port, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			deliver(callback{err: err})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	f.Prompt(f.loginURL(state, redirectURL))

	var cb callback
	select {
	case cb = <-results:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if cb.err != nil {
		return "", cb.err
	}
	if cb.code == "" {
		return "", errors.New("empty authorization code")
	}

	return f.exchangeCode(ctx, cb.code, redirectURL)
}

// loginURL builds the Google consent page URL.
func (f *GoogleFlow) loginURL(state, redirectURL string) string {
	params := url.Values{
		"client_id":     {f.clientID},
		"redirect_uri":  {redirectURL},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"state":         {state},
	}
	return f.AuthURL + "?" + params.Encode()
}

// exchangeCode trades the authorization code for an id_token at Google's
// token endpoint.
func (f *GoogleFlow) exchangeCode(ctx context.Context, code, redirectURL string) (string, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {f.clientID},
		"client_secret": {f.clientSecret},
		"redirect_uri":  {redirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Debug("google token exchange failed", "status", resp.StatusCode)
		return "", fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		IDToken string `json:"id_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tokenResp.IDToken == "" {
		return "", errors.New("no id_token in response")
	}
	return tokenResp.IDToken, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
