// Package steamweb maintains authenticated browser sessions against the
// Steam web properties. A Session owns a cookie jar shared across
// steamcommunity.com and store.steampowered.com, mints the sessionid and
// login cookies, and wraps the HTTP transport with per-host rate limiting
// and automatic re-authentication when Steam rejects the session.
//
// Sessions come from two places: SessionFromNonce exchanges a single-use
// nonce obtained over the CM connection (steamclient.Client.WebAPIUserNonce),
// SessionFromToken uses a JWT access token from the token logon flow (see
// Login).
package steamweb

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/k64z/steamcore/protocol"
	"github.com/k64z/steamcore/steamapi"
	"github.com/k64z/steamcore/steamid"
)

// ErrNoRefreshPath is returned when Steam rejects the session cookies and
// the session has no nonce source or refresh token to re-authenticate with.
var ErrNoRefreshPath = errors.New("session has no re-authentication source")

// steamWebHosts are the hosts the session serves cookies for.
var steamWebHosts = []string{
	"https://steamcommunity.com",
	"https://store.steampowered.com",
}

// AuthClient is the subset of *steamapi.API the login and session flows
// depend on.
type AuthClient interface {
	GetPasswordRSAPublicKey(ctx context.Context, accountName string) (*steamapi.RSAPublicKey, error)
	BeginAuthSessionViaCredentials(ctx context.Context, req *protocol.CAuthentication_BeginAuthSessionViaCredentials_Request) (*protocol.CAuthentication_BeginAuthSessionViaCredentials_Response, error)
	UpdateAuthSessionWithSteamGuardCode(ctx context.Context, req *protocol.CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request) error
	PollAuthSessionStatus(ctx context.Context, req *protocol.CAuthentication_PollAuthSessionStatus_Request) (*protocol.CAuthentication_PollAuthSessionStatus_Response, error)
	GenerateAccessTokenForApp(ctx context.Context, req *protocol.CAuthentication_AccessToken_GenerateForApp_Request) (*protocol.CAuthentication_AccessToken_GenerateForApp_Response, error)
	AuthenticateUser(ctx context.Context, id steamid.SteamID, nonce string) (*steamapi.AuthenticateUserResult, error)
}

// Session is an authenticated web session. All requests made through
// Client() carry the session cookies and go through the rate-limited,
// self-healing Transport.
type Session struct {
	steamID steamid.SteamID

	httpClient *http.Client
	jar        http.CookieJar
	sessionID  string
	logger     *slog.Logger

	api AuthClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	nonceSource  func(context.Context) (string, error)
}

type config struct {
	logger       *slog.Logger
	base         http.RoundTripper
	rps          float64
	burst        int
	api          AuthClient
	refreshToken string
	nonceSource  func(context.Context) (string, error)
}

type Option func(options *config) error

func WithLogger(logger *slog.Logger) Option {
	return func(options *config) error {
		if logger == nil {
			return errors.New("logger should be non-nil")
		}
		options.logger = logger
		return nil
	}
}

// WithTransport sets the RoundTripper the session's Transport wraps.
// Defaults to http.DefaultTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(options *config) error {
		if rt == nil {
			return errors.New("transport should be non-nil")
		}
		options.base = rt
		return nil
	}
}

// WithRateLimit overrides the per-host request budget.
func WithRateLimit(rps float64, burst int) Option {
	return func(options *config) error {
		if rps <= 0 || burst <= 0 {
			return errors.New("rate limit must be positive")
		}
		options.rps = rps
		options.burst = burst
		return nil
	}
}

// WithNonceSource configures re-authentication for nonce sessions: when
// Steam rejects the cookies, a fresh nonce is pulled from fn and exchanged
// for new ones. steamclient.Client.WebAPIUserNonce is the usual source.
func WithNonceSource(fn func(context.Context) (string, error)) Option {
	return func(options *config) error {
		if fn == nil {
			return errors.New("nonce source should be non-nil")
		}
		options.nonceSource = fn
		return nil
	}
}

// WithRefresh configures re-authentication for token sessions: when Steam
// rejects the cookies, refreshToken is exchanged for a fresh access token.
// Only MobileApp refresh tokens work here; see Login.
func WithRefresh(api AuthClient, refreshToken string) Option {
	return func(options *config) error {
		if api == nil || refreshToken == "" {
			return errors.New("refresh needs an API client and a refresh token")
		}
		options.api = api
		options.refreshToken = refreshToken
		return nil
	}
}

// SessionFromNonce opens a web session by exchanging a single-use CM nonce
// for the steamLogin/steamLoginSecure cookie pair.
func SessionFromNonce(ctx context.Context, api AuthClient, id steamid.SteamID, nonce string, opts ...Option) (*Session, error) {
	s, err := newSession(id, opts...)
	if err != nil {
		return nil, err
	}
	s.api = api

	if err := s.authenticateWithNonce(ctx, nonce); err != nil {
		return nil, err
	}
	return s, nil
}

// SessionFromToken opens a web session directly from a JWT access token.
// The steamLoginSecure cookie embeds the SteamID64 and the token.
func SessionFromToken(id steamid.SteamID, accessToken string, opts ...Option) (*Session, error) {
	if accessToken == "" {
		return nil, errors.New("access token cannot be empty")
	}

	s, err := newSession(id, opts...)
	if err != nil {
		return nil, err
	}

	s.accessToken = accessToken
	s.setWebCookies("", secureLoginCookie(id, accessToken))
	return s, nil
}

func newSession(id steamid.SteamID, opts ...Option) (*Session, error) {
	cfg := config{
		rps:   defaultRPS,
		burst: defaultBurst,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	s := &Session{
		steamID:      id,
		jar:          jar,
		sessionID:    mustGenerateSessionID(),
		logger:       cfg.logger,
		api:          cfg.api,
		refreshToken: cfg.refreshToken,
		nonceSource:  cfg.nonceSource,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	base := cfg.base
	if base == nil {
		base = http.DefaultTransport
	}

	s.httpClient = &http.Client{
		Jar: jar,
		Transport: &Transport{
			base:     base,
			session:  s,
			rps:      rate.Limit(cfg.rps),
			burst:    cfg.burst,
			limiters: make(map[string]*rate.Limiter),
		},
	}

	return s, nil
}

// Client returns the session's HTTP client. Its cookie jar holds all web
// session state; sharing it with steamapi.API puts Web API traffic under
// the same rate limiter.
func (s *Session) Client() *http.Client {
	return s.httpClient
}

// SteamID returns the account the session belongs to.
func (s *Session) SteamID() steamid.SteamID {
	return s.steamID
}

// SessionID returns the sessionid cookie value. Community POST endpoints
// require it as a form field.
func (s *Session) SessionID() string {
	return s.sessionID
}

// AccessToken returns the current JWT access token, empty for nonce sessions.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// authenticateWithNonce exchanges a nonce for login cookies and installs
// them on all web hosts.
func (s *Session) authenticateWithNonce(ctx context.Context, nonce string) error {
	res, err := s.api.AuthenticateUser(ctx, s.steamID, nonce)
	if err != nil {
		return fmt.Errorf("authenticate user: %w", err)
	}
	s.setWebCookies(res.Token, res.TokenSecure)
	return nil
}

// refresh re-authenticates the session after Steam rejects its cookies.
// Nonce sessions pull a fresh single-use nonce from the configured source;
// token sessions exchange the refresh token for a new access token.
func (s *Session) refresh(ctx context.Context) error {
	s.mu.Lock()
	nonceSource := s.nonceSource
	refreshToken := s.refreshToken
	s.mu.Unlock()

	switch {
	case nonceSource != nil:
		nonce, err := nonceSource(ctx)
		if err != nil {
			return fmt.Errorf("fetch nonce: %w", err)
		}
		return s.authenticateWithNonce(ctx, nonce)
	case refreshToken != "" && s.api != nil:
		return s.refreshAccessToken(ctx, refreshToken)
	default:
		return ErrNoRefreshPath
	}
}

// refreshAccessToken exchanges the refresh token for a fresh access token
// and re-mints the steamLoginSecure cookie.
func (s *Session) refreshAccessToken(ctx context.Context, refreshToken string) error {
	sid := s.steamID.ToSteamID64()
	resp, err := s.api.GenerateAccessTokenForApp(ctx, &protocol.CAuthentication_AccessToken_GenerateForApp_Request{
		RefreshToken: &refreshToken,
		Steamid:      &sid,
	})
	if err != nil {
		return fmt.Errorf("generate access token: %w", err)
	}

	token := resp.GetAccessToken()
	if token == "" {
		return errors.New("no access token in response")
	}

	s.mu.Lock()
	s.accessToken = token
	if rt := resp.GetRefreshToken(); rt != "" {
		s.refreshToken = rt
	}
	s.mu.Unlock()

	s.setWebCookies("", secureLoginCookie(s.steamID, token))
	return nil
}

// setWebCookies writes sessionid plus the given login cookies to every
// Steam web host the session serves. Empty values are skipped.
func (s *Session) setWebCookies(login, loginSecure string) {
	for _, host := range steamWebHosts {
		u, err := url.Parse(host)
		if err != nil {
			continue
		}

		cookies := []*http.Cookie{{
			Name:     "sessionid",
			Value:    s.sessionID,
			Path:     "/",
			Secure:   true,
			HttpOnly: true,
		}}
		if login != "" {
			cookies = append(cookies, &http.Cookie{
				Name:     "steamLogin",
				Value:    login,
				Path:     "/",
				Secure:   true,
				HttpOnly: true,
			})
		}
		if loginSecure != "" {
			cookies = append(cookies, &http.Cookie{
				Name:     "steamLoginSecure",
				Value:    loginSecure,
				Path:     "/",
				Secure:   true,
				HttpOnly: true,
			})
		}

		s.jar.SetCookies(u, cookies)
	}
}

// secureLoginCookie formats steamLoginSecure for token sessions: the
// SteamID64 and the token joined by an URL-encoded "||".
func secureLoginCookie(id steamid.SteamID, accessToken string) string {
	return fmt.Sprintf("%d%%7C%%7C%s", id.ToSteamID64(), accessToken)
}

// mustGenerateSessionID generates a session ID.
// Returns a 24-character hexadecimal string (hex-encoded 12 random bytes).
// Panics if the system's random number generator is unavailable
// or fails to provide sufficient entropy
//
// Example output: "06464bc0126a6a8ed1bb9089"
func mustGenerateSessionID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic("crypto random source unavailable: " + err.Error())
	}
	sessionID := make([]byte, hex.EncodedLen(len(b)))
	hex.Encode(sessionID, b)
	return string(sessionID)
}
