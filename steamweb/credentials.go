package steamweb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/k64z/steamcore/protocol"
	"github.com/k64z/steamcore/steamid"
)

var (
	ErrEmptyUsername = errors.New("account name cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

const (
	// BrowserUA is the user agent for web-based authentication.
	BrowserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"

	// SteamClientUA mimics the official Steam client's user-agent string.
	SteamClientUA = "Valve/Steam HTTP Client 1.0"

	WebsiteIDClient    = "Client"
	WebsiteIDCommunity = "Community"
	WebsiteIDMobile    = "Mobile"

	// 0 = English/default
	defaultLanguageCode = uint32(0)
)

// Login drives the IAuthenticationService token logon flow: credentials,
// a Steam Guard approval, then polling until tokens are minted.
//
// The default platform is MobileApp: its refresh tokens are the only kind
// the Web API will exchange for fresh access tokens (WebBrowser gets
// EResult 15, SteamClient gets EResult 63 unless refreshed over CM), so a
// mobile login is what keeps a long-lived Session self-healing.
type Login struct {
	api AuthClient

	platformType protocol.EAuthTokenPlatformType
	persistence  protocol.ESessionPersistence
	websiteID    string
	userAgent    string
	language     uint32

	steamID      steamid.SteamID
	clientID     uint64
	requestID    []byte
	weakToken    string
	pollInterval time.Duration

	AccessToken  string
	RefreshToken string
}

type LoginOption func(l *Login) error

// WithPlatformType overrides the platform the tokens are minted for.
func WithPlatformType(pt protocol.EAuthTokenPlatformType) LoginOption {
	return func(l *Login) error {
		switch pt {
		case protocol.EAuthTokenPlatformType_SteamClient,
			protocol.EAuthTokenPlatformType_WebBrowser,
			protocol.EAuthTokenPlatformType_MobileApp:
			l.platformType = pt
			return nil
		default:
			return fmt.Errorf("unsupported platform type %d", pt)
		}
	}
}

func NewLogin(api AuthClient, opts ...LoginOption) (*Login, error) {
	if api == nil {
		return nil, errors.New("api should be non-nil")
	}

	l := &Login{
		api:          api,
		platformType: protocol.EAuthTokenPlatformType_MobileApp,
		persistence:  protocol.ESessionPersistence_Persistent,
		language:     defaultLanguageCode,
		pollInterval: 5 * time.Second,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	switch l.platformType {
	case protocol.EAuthTokenPlatformType_SteamClient:
		l.userAgent = SteamClientUA
		l.websiteID = WebsiteIDClient
	case protocol.EAuthTokenPlatformType_MobileApp:
		l.userAgent = BrowserUA
		l.websiteID = WebsiteIDMobile
	default:
		l.userAgent = BrowserUA
		l.websiteID = WebsiteIDCommunity
	}

	return l, nil
}

// SteamID returns the account resolved by StartWithCredentials.
func (l *Login) SteamID() steamid.SteamID {
	return l.steamID
}

// StartWithCredentials fetches the account's RSA key, encrypts the password
// and begins the auth session. It returns the Steam Guard confirmation
// types the account accepts; pick one, confirm, then poll.
func (l *Login) StartWithCredentials(ctx context.Context, username, password string) ([]protocol.EAuthSessionGuardType, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}
	if strings.TrimSpace(password) == "" {
		return nil, ErrEmptyPassword
	}

	rsaKey, err := l.api.GetPasswordRSAPublicKey(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get RSA public key: %w", err)
	}

	encryptedPassword, err := encryptPassword(password, rsaKey.Mod, rsaKey.Exp)
	if err != nil {
		return nil, fmt.Errorf("encrypt password: %w", err)
	}

	req := &protocol.CAuthentication_BeginAuthSessionViaCredentials_Request{
		AccountName:         &username,
		EncryptedPassword:   &encryptedPassword,
		EncryptionTimestamp: &rsaKey.Timestamp,
		RememberLogin:       proto.Bool(true),
		PlatformType:        &l.platformType,
		Persistence:         &l.persistence,
		WebsiteId:           &l.websiteID,
		DeviceDetails: &protocol.CAuthentication_DeviceDetails{
			DeviceFriendlyName: &l.userAgent,
			PlatformType:       &l.platformType,
		},
		Language: &l.language,
	}

	authSession, err := l.api.BeginAuthSessionViaCredentials(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}

	if authSession.ClientId == nil || authSession.Steamid == nil {
		return nil, errors.New("malformed auth session response")
	}

	l.clientID = *authSession.ClientId
	l.requestID = authSession.RequestId
	l.steamID = steamid.FromSteamID64(*authSession.Steamid)
	if authSession.WeakToken != nil {
		l.weakToken = *authSession.WeakToken
	}
	if authSession.Interval != nil && *authSession.Interval > 0 {
		l.pollInterval = time.Duration(*authSession.Interval * float32(time.Second))
	}

	guardTypes := make([]protocol.EAuthSessionGuardType, 0, len(authSession.AllowedConfirmations))
	for _, conf := range authSession.AllowedConfirmations {
		guardTypes = append(guardTypes, conf.GetConfirmationType())
	}
	return guardTypes, nil
}

// SubmitSteamGuardCode approves the session with a Steam Guard code.
// If this method returns no error, polling can be started.
func (l *Login) SubmitSteamGuardCode(ctx context.Context, code string, guardType protocol.EAuthSessionGuardType) error {
	sid := l.steamID.ToSteamID64()
	req := &protocol.CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request{
		ClientId: &l.clientID,
		Steamid:  &sid,
		Code:     &code,
		CodeType: &guardType,
	}

	if err := l.api.UpdateAuthSessionWithSteamGuardCode(ctx, req); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// PollAuthSessionStatus polls until the session is approved and tokens are
// minted, or ctx is cancelled.
func (l *Login) PollAuthSessionStatus(ctx context.Context) error {
	req := &protocol.CAuthentication_PollAuthSessionStatus_Request{
		ClientId:  &l.clientID,
		RequestId: l.requestID,
	}

	for {
		resp, err := l.api.PollAuthSessionStatus(ctx, req)
		if err != nil {
			return fmt.Errorf("poll auth session: %w", err)
		}

		// Steam may rotate the client ID between polls.
		if resp.NewClientId != nil {
			req.ClientId = resp.NewClientId
		}

		if resp.AccessToken != nil && resp.RefreshToken != nil {
			l.AccessToken = *resp.AccessToken
			l.RefreshToken = *resp.RefreshToken
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.pollInterval):
		}
	}
}

// Session opens a web session from the minted tokens, wired for automatic
// token refresh.
func (l *Login) Session(opts ...Option) (*Session, error) {
	if l.AccessToken == "" {
		return nil, errors.New("login has not produced tokens yet")
	}
	if l.RefreshToken != "" {
		opts = append(opts, WithRefresh(l.api, l.RefreshToken))
	}
	return SessionFromToken(l.steamID, l.AccessToken, opts...)
}

// Persistent returns the state to save for credential-free restarts.
func (l *Login) Persistent() *PersistentSession {
	return &PersistentSession{
		RefreshToken: l.RefreshToken,
		SteamID:      l.steamID,
	}
}

// LoginWithDeviceCode runs the most common flow end to end: start with
// credentials, approve with a device TOTP code, poll for tokens, and open
// a web session.
func LoginWithDeviceCode(ctx context.Context, api AuthClient, username, password, code string, opts ...Option) (*Session, error) {
	l, err := NewLogin(api)
	if err != nil {
		return nil, err
	}

	guardTypes, err := l.StartWithCredentials(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("start with credentials: %w", err)
	}

	if !slices.Contains(guardTypes, protocol.EAuthSessionGuardType_DeviceCode) {
		return nil, errors.New("device code authentication is not allowed")
	}

	if err := l.SubmitSteamGuardCode(ctx, code, protocol.EAuthSessionGuardType_DeviceCode); err != nil {
		return nil, fmt.Errorf("submit steam guard code: %w", err)
	}

	if err := l.PollAuthSessionStatus(ctx); err != nil {
		return nil, fmt.Errorf("poll auth session status: %w", err)
	}

	return l.Session(opts...)
}
