// Package steamcommunity drives the steamcommunity.com endpoints that have
// no Web API equivalent: trade offer actions, mobile confirmations, friend
// management and inventory listing. All requests ride on an authenticated
// web session's cookies; see the steamweb package for how those are minted.
package steamcommunity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/k64z/steamcore/steamapi"
	"github.com/k64z/steamcore/steamid"
)

const communityURL = "https://steamcommunity.com"

// WebSession is the part of *steamweb.Session the community client needs.
type WebSession interface {
	Client() *http.Client
	SessionID() string
	SteamID() steamid.SteamID
}

type Community struct {
	httpClient *http.Client
	sessionID  string
	steamID    steamid.SteamID

	// timeSource returns the current Steam server time. Confirmation keys
	// are only valid inside the 30-second window they were minted for, so
	// the default asks Steam rather than trusting the local clock.
	timeSource func(ctx context.Context) (int64, error)
}

type config struct {
	timeSource func(ctx context.Context) (int64, error)
}

type Option func(options *config) error

// WithTimeSource overrides where confirmation timestamps come from.
func WithTimeSource(fn func(ctx context.Context) (int64, error)) Option {
	return func(options *config) error {
		if fn == nil {
			return errors.New("time source should be non-nil")
		}
		options.timeSource = fn
		return nil
	}
}

// New builds a community client on top of an authenticated web session.
func New(session WebSession, opts ...Option) (*Community, error) {
	if session == nil {
		return nil, errors.New("session should be non-nil")
	}

	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c := &Community{
		httpClient: session.Client(),
		sessionID:  session.SessionID(),
		steamID:    session.SteamID(),
		timeSource: cfg.timeSource,
	}
	if c.httpClient == nil {
		return nil, errors.New("session has no HTTP client")
	}
	if c.sessionID == "" {
		return nil, errors.New("session has no sessionid")
	}
	if c.timeSource == nil {
		c.timeSource = c.steamTime
	}

	return c, nil
}

// FromClient builds a community client from a bare HTTP client whose cookie
// jar already holds a web login, e.g. cookies imported from a browser. The
// sessionid and SteamID are read back out of the jar.
func FromClient(httpClient *http.Client, opts ...Option) (*Community, error) {
	if httpClient == nil || httpClient.Jar == nil {
		return nil, errors.New("client with a cookie jar required")
	}

	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	sessionID, err := extractSessionID(httpClient.Jar)
	if err != nil {
		return nil, fmt.Errorf("extract sessionID: %w", err)
	}

	sid, err := extractSteamID(httpClient.Jar)
	if err != nil {
		return nil, fmt.Errorf("extract steamID: %w", err)
	}

	c := &Community{
		httpClient: httpClient,
		sessionID:  sessionID,
		steamID:    sid,
		timeSource: cfg.timeSource,
	}
	if c.timeSource == nil {
		c.timeSource = c.steamTime
	}

	return c, nil
}

// SteamID returns the logged-in account.
func (c *Community) SteamID() steamid.SteamID {
	return c.steamID
}

func (c *Community) steamTime(ctx context.Context) (int64, error) {
	serverTime, _, err := steamapi.GetSteamTimeWithClient(ctx, c.httpClient)
	return serverTime, err
}

func extractSessionID(jar http.CookieJar) (string, error) {
	u, _ := url.Parse(communityURL)
	for _, cookie := range jar.Cookies(u) {
		if cookie.Name == "sessionid" {
			return cookie.Value, nil
		}
	}
	return "", errors.New("sessionID is missing")
}

func extractSteamID(jar http.CookieJar) (steamid.SteamID, error) {
	u, _ := url.Parse(communityURL)
	for _, cookie := range jar.Cookies(u) {
		if cookie.Name != "steamLoginSecure" {
			continue
		}

		t := strings.Split(cookie.Value, "%7C%7C") // URL encoded "||"
		if len(t) < 2 {
			return steamid.SteamID(0), errors.New("unsplittable steamLoginSecure cookie")
		}

		sid, err := steamid.FromString(t[0])
		if err != nil {
			return steamid.SteamID(0), fmt.Errorf("parse SteamID: %w", err)
		}

		return sid, nil
	}

	return steamid.SteamID(0), errors.New("missing steamLoginSecure cookie")
}
