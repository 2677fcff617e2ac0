// Package steamapi wraps the api.steampowered.com Web API endpoints the
// other packages build on: IAuthenticationService (token logon),
// ISteamUserAuth (nonce authentication), ITwoFactorService (server time)
// and IEconService (trade offers).
package steamapi

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// ErrNoCredentials is returned by endpoints that require authentication
// when the API has neither an access token nor a Web API key.
var ErrNoCredentials = errors.New("no access token or API key set")

// StatusError is a non-2xx response from the Web API. Callers that poll
// can inspect Code to tell server-side failures from everything else.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

// ServerError reports whether the error is a StatusError with a 5xx code.
func ServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}

type API struct {
	httpClient *http.Client
	apiKey     string

	mu          sync.RWMutex
	accessToken string
}

type config struct {
	httpClient  *http.Client
	accessToken string
	apiKey      string
}

type Option func(options *config) error

func WithHTTPClient(httpClient *http.Client) Option {
	return func(options *config) error {
		if httpClient == nil {
			return errors.New("httpClient should be non-nil")
		}
		options.httpClient = httpClient
		return nil
	}
}

// WithAccessToken sets the JWT access token used by endpoints that accept
// token authentication (IEconService and friends).
func WithAccessToken(token string) Option {
	return func(options *config) error {
		options.accessToken = token
		return nil
	}
}

// WithAPIKey sets the classic Web API key, used as a fallback when no
// access token is configured.
func WithAPIKey(key string) Option {
	return func(options *config) error {
		options.apiKey = key
		return nil
	}
}

func New(opts ...Option) (*API, error) {
	var cfg config
	for _, opt := range opts {
		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	a := &API{
		accessToken: cfg.accessToken,
		apiKey:      cfg.apiKey,
	}

	if cfg.httpClient != nil {
		a.httpClient = cfg.httpClient
	} else {
		a.httpClient = http.DefaultClient
	}

	return a, nil
}

// SetAccessToken replaces the access token, e.g. after a refresh.
func (a *API) SetAccessToken(token string) {
	a.mu.Lock()
	a.accessToken = token
	a.mu.Unlock()
}

// token returns the current access token.
func (a *API) token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.accessToken
}
