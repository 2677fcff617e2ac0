package steamweb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/k64z/steamcore/protocol"
	"github.com/k64z/steamcore/steamid"
)

// ErrSessionExpired is returned when a saved refresh token is past its
// expiry and a full re-login is required.
var ErrSessionExpired = errors.New("saved session has expired")

// PersistentSession is the on-disk state needed to restore a login without
// credentials: the long-lived refresh token and the account it belongs to.
type PersistentSession struct {
	RefreshToken string          `json:"refresh_token"`
	SteamID      steamid.SteamID `json:"steam_id"`
}

// Save writes the session state as JSON, creating parent directories.
// The file carries a live credential, hence 0600.
func (p *PersistentSession) Save(path string) error {
	if p.RefreshToken == "" {
		return errors.New("no refresh token to save")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// LoadPersistentSession reads saved session state from path.
func LoadPersistentSession(path string) (*PersistentSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("session file does not exist")
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var p PersistentSession
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal session data: %w", err)
	}

	return &p, nil
}

// Valid reports whether the refresh token exists and has not expired.
func (p *PersistentSession) Valid() bool {
	if p.RefreshToken == "" {
		return false
	}
	exp, err := jwtExpiry(p.RefreshToken)
	if err != nil {
		return false
	}
	return time.Now().Before(exp)
}

// RestoreSession mints a fresh access token from saved state and opens a
// web session with it, wired for automatic token refresh.
func RestoreSession(ctx context.Context, api AuthClient, p *PersistentSession, opts ...Option) (*Session, error) {
	if !p.Valid() {
		return nil, ErrSessionExpired
	}

	sid := p.SteamID.ToSteamID64()
	resp, err := api.GenerateAccessTokenForApp(ctx, &protocol.CAuthentication_AccessToken_GenerateForApp_Request{
		RefreshToken: &p.RefreshToken,
		Steamid:      &sid,
	})
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	token := resp.GetAccessToken()
	if token == "" {
		return nil, errors.New("no access token in response")
	}

	refreshToken := p.RefreshToken
	if rt := resp.GetRefreshToken(); rt != "" {
		refreshToken = rt
	}

	return SessionFromToken(p.SteamID, token, append(opts, WithRefresh(api, refreshToken))...)
}

// jwtExpiry extracts the exp claim from a Steam JWT without verifying it.
func jwtExpiry(token string) (time.Time, error) {
	parts := strings.SplitN(token, ".", 3)
	if len(parts) != 3 {
		return time.Time{}, errors.New("invalid JWT format")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, err
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.Exp == 0 {
		return time.Time{}, errors.New("missing exp claim")
	}
	return time.Unix(claims.Exp, 0), nil
}
