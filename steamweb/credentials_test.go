package steamweb

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/k64z/steamcore/protocol"
	"github.com/k64z/steamcore/steamapi"
)

// testModulus is a 1024-bit hex modulus. PKCS#1 v1.5 encryption only needs
// the size and an odd value, not a real key pair.
var testModulus = strings.Repeat("fedcba9876543211", 16)

func TestNewLoginPlatformDefaults(t *testing.T) {
	tests := []struct {
		platform  protocol.EAuthTokenPlatformType
		userAgent string
		websiteID string
	}{
		{protocol.EAuthTokenPlatformType_MobileApp, BrowserUA, WebsiteIDMobile},
		{protocol.EAuthTokenPlatformType_SteamClient, SteamClientUA, WebsiteIDClient},
		{protocol.EAuthTokenPlatformType_WebBrowser, BrowserUA, WebsiteIDCommunity},
	}
	for _, tt := range tests {
		l, err := NewLogin(&fakeAuthClient{}, WithPlatformType(tt.platform))
		if err != nil {
			t.Fatalf("NewLogin(%v): %v", tt.platform, err)
		}
		if l.userAgent != tt.userAgent {
			t.Errorf("platform %v: userAgent = %q; want %q", tt.platform, l.userAgent, tt.userAgent)
		}
		if l.websiteID != tt.websiteID {
			t.Errorf("platform %v: websiteID = %q; want %q", tt.platform, l.websiteID, tt.websiteID)
		}
	}
}

func TestNewLoginDefaultsToMobileApp(t *testing.T) {
	l, err := NewLogin(&fakeAuthClient{})
	if err != nil {
		t.Fatalf("NewLogin: %v", err)
	}
	if l.platformType != protocol.EAuthTokenPlatformType_MobileApp {
		t.Errorf("platformType = %v; want MobileApp", l.platformType)
	}
	if l.persistence != protocol.ESessionPersistence_Persistent {
		t.Errorf("persistence = %v; want Persistent", l.persistence)
	}
}

func TestWithPlatformTypeRejectsUnknown(t *testing.T) {
	if _, err := NewLogin(&fakeAuthClient{}, WithPlatformType(protocol.EAuthTokenPlatformType_Unknown)); err == nil {
		t.Error("expected error for unknown platform type")
	}
}

func TestStartWithCredentials(t *testing.T) {
	var beginReq *protocol.CAuthentication_BeginAuthSessionViaCredentials_Request
	api := &fakeAuthClient{
		getRSAKey: func(_ context.Context, accountName string) (*steamapi.RSAPublicKey, error) {
			if accountName != "alice" {
				t.Errorf("accountName = %q; want alice", accountName)
			}
			return &steamapi.RSAPublicKey{Mod: testModulus, Exp: 0x10001, Timestamp: 123456}, nil
		},
		begin: func(_ context.Context, req *protocol.CAuthentication_BeginAuthSessionViaCredentials_Request) (*protocol.CAuthentication_BeginAuthSessionViaCredentials_Response, error) {
			beginReq = req
			clientID := uint64(111)
			sid := uint64(testSteamID)
			interval := float32(0.5)
			weak := "weak-token"
			device := protocol.EAuthSessionGuardType_DeviceCode
			confirm := protocol.EAuthSessionGuardType_DeviceConfirmation
			return &protocol.CAuthentication_BeginAuthSessionViaCredentials_Response{
				ClientId:  &clientID,
				RequestId: []byte{1, 2, 3},
				Interval:  &interval,
				AllowedConfirmations: []*protocol.CAuthentication_AllowedConfirmation{
					{ConfirmationType: &device},
					{ConfirmationType: &confirm},
				},
				Steamid:   &sid,
				WeakToken: &weak,
			}, nil
		},
	}

	l, err := NewLogin(api)
	if err != nil {
		t.Fatalf("NewLogin: %v", err)
	}

	guardTypes, err := l.StartWithCredentials(context.Background(), "alice", "hunter2!")
	if err != nil {
		t.Fatalf("StartWithCredentials: %v", err)
	}

	if beginReq == nil {
		t.Fatal("BeginAuthSessionViaCredentials was not called")
	}
	if beginReq.AccountName == nil || *beginReq.AccountName != "alice" {
		t.Errorf("AccountName = %v; want alice", beginReq.AccountName)
	}
	if beginReq.EncryptedPassword == nil {
		t.Fatal("EncryptedPassword not set")
	}
	ct, err := base64.StdEncoding.DecodeString(*beginReq.EncryptedPassword)
	if err != nil {
		t.Fatalf("EncryptedPassword is not base64: %v", err)
	}
	if len(ct) != 128 {
		t.Errorf("password ciphertext = %d bytes; want 128 for a 1024-bit key", len(ct))
	}
	if beginReq.EncryptionTimestamp == nil || *beginReq.EncryptionTimestamp != 123456 {
		t.Errorf("EncryptionTimestamp = %v; want 123456", beginReq.EncryptionTimestamp)
	}
	if beginReq.RememberLogin == nil || !*beginReq.RememberLogin {
		t.Error("RememberLogin not set")
	}
	if beginReq.PlatformType == nil || *beginReq.PlatformType != protocol.EAuthTokenPlatformType_MobileApp {
		t.Errorf("PlatformType = %v; want MobileApp", beginReq.PlatformType)
	}
	if beginReq.WebsiteId == nil || *beginReq.WebsiteId != WebsiteIDMobile {
		t.Errorf("WebsiteId = %v; want %q", beginReq.WebsiteId, WebsiteIDMobile)
	}
	if beginReq.Persistence == nil || *beginReq.Persistence != protocol.ESessionPersistence_Persistent {
		t.Errorf("Persistence = %v; want Persistent", beginReq.Persistence)
	}
	if beginReq.DeviceDetails == nil || beginReq.DeviceDetails.DeviceFriendlyName == nil ||
		*beginReq.DeviceDetails.DeviceFriendlyName != BrowserUA {
		t.Error("DeviceDetails should carry the platform user agent")
	}

	want := []protocol.EAuthSessionGuardType{
		protocol.EAuthSessionGuardType_DeviceCode,
		protocol.EAuthSessionGuardType_DeviceConfirmation,
	}
	if len(guardTypes) != len(want) {
		t.Fatalf("guardTypes = %v; want %v", guardTypes, want)
	}
	for i := range want {
		if guardTypes[i] != want[i] {
			t.Errorf("guardTypes[%d] = %v; want %v", i, guardTypes[i], want[i])
		}
	}

	if l.SteamID() != testSteamID {
		t.Errorf("SteamID = %d; want %d", l.SteamID(), testSteamID)
	}
	if l.clientID != 111 {
		t.Errorf("clientID = %d; want 111", l.clientID)
	}
	if l.weakToken != "weak-token" {
		t.Errorf("weakToken = %q; want weak-token", l.weakToken)
	}
	if l.pollInterval != 500*time.Millisecond {
		t.Errorf("pollInterval = %v; want 500ms", l.pollInterval)
	}
}

func TestStartWithCredentialsValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"empty username", "", "pw", ErrEmptyUsername},
		{"blank username", "   ", "pw", ErrEmptyUsername},
		{"empty password", "alice", "", ErrEmptyPassword},
		{"blank password", "alice", "  ", ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogin(&fakeAuthClient{})
			if err != nil {
				t.Fatalf("NewLogin: %v", err)
			}
			if _, err := l.StartWithCredentials(context.Background(), tt.username, tt.password); !errors.Is(err, tt.want) {
				t.Errorf("err = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestSubmitSteamGuardCode(t *testing.T) {
	var got *protocol.CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request
	api := &fakeAuthClient{
		update: func(_ context.Context, req *protocol.CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request) error {
			got = req
			return nil
		},
	}

	l, err := NewLogin(api)
	if err != nil {
		t.Fatalf("NewLogin: %v", err)
	}
	l.clientID = 42
	l.steamID = testSteamID

	if err := l.SubmitSteamGuardCode(context.Background(), "2FAC0", protocol.EAuthSessionGuardType_DeviceCode); err != nil {
		t.Fatalf("SubmitSteamGuardCode: %v", err)
	}

	if got.ClientId == nil || *got.ClientId != 42 {
		t.Errorf("ClientId = %v; want 42", got.ClientId)
	}
	if got.Steamid == nil || *got.Steamid != uint64(testSteamID) {
		t.Errorf("Steamid = %v; want %d", got.Steamid, uint64(testSteamID))
	}
	if got.Code == nil || *got.Code != "2FAC0" {
		t.Errorf("Code = %v; want 2FAC0", got.Code)
	}
	if got.CodeType == nil || *got.CodeType != protocol.EAuthSessionGuardType_DeviceCode {
		t.Errorf("CodeType = %v; want DeviceCode", got.CodeType)
	}
}

func TestPollAuthSessionStatus(t *testing.T) {
	var polls int
	api := &fakeAuthClient{
		poll: func(_ context.Context, req *protocol.CAuthentication_PollAuthSessionStatus_Request) (*protocol.CAuthentication_PollAuthSessionStatus_Response, error) {
			polls++
			switch polls {
			case 1:
				// Not approved yet, and Steam rotates the client ID.
				rotated := uint64(222)
				return &protocol.CAuthentication_PollAuthSessionStatus_Response{NewClientId: &rotated}, nil
			case 2:
				if req.ClientId == nil || *req.ClientId != 222 {
					t.Errorf("poll #2 ClientId = %v; want rotated 222", req.ClientId)
				}
				access := "access-jwt"
				refresh := "refresh-jwt"
				return &protocol.CAuthentication_PollAuthSessionStatus_Response{
					AccessToken:  &access,
					RefreshToken: &refresh,
				}, nil
			}
			return nil, errors.New("poll called too many times")
		},
	}

	l, err := NewLogin(api)
	if err != nil {
		t.Fatalf("NewLogin: %v", err)
	}
	l.clientID = 111
	l.requestID = []byte{1}
	l.pollInterval = time.Millisecond

	if err := l.PollAuthSessionStatus(context.Background()); err != nil {
		t.Fatalf("PollAuthSessionStatus: %v", err)
	}

	if polls != 2 {
		t.Errorf("polls = %d; want 2", polls)
	}
	if l.AccessToken != "access-jwt" {
		t.Errorf("AccessToken = %q; want access-jwt", l.AccessToken)
	}
	if l.RefreshToken != "refresh-jwt" {
		t.Errorf("RefreshToken = %q; want refresh-jwt", l.RefreshToken)
	}
}

func TestPollAuthSessionStatusCancelled(t *testing.T) {
	api := &fakeAuthClient{
		poll: func(context.Context, *protocol.CAuthentication_PollAuthSessionStatus_Request) (*protocol.CAuthentication_PollAuthSessionStatus_Response, error) {
			return &protocol.CAuthentication_PollAuthSessionStatus_Response{}, nil
		},
	}

	l, err := NewLogin(api)
	if err != nil {
		t.Fatalf("NewLogin: %v", err)
	}
	l.pollInterval = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := l.PollAuthSessionStatus(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v; want context.DeadlineExceeded", err)
	}
}

func TestSessionWithoutTokens(t *testing.T) {
	l, err := NewLogin(&fakeAuthClient{})
	if err != nil {
		t.Fatalf("NewLogin: %v", err)
	}
	if _, err := l.Session(); err == nil {
		t.Error("expected error before tokens are minted")
	}
}

func TestLoginWithDeviceCode(t *testing.T) {
	var submittedCode string
	api := &fakeAuthClient{
		getRSAKey: func(context.Context, string) (*steamapi.RSAPublicKey, error) {
			return &steamapi.RSAPublicKey{Mod: testModulus, Exp: 0x10001, Timestamp: 1}, nil
		},
		begin: func(context.Context, *protocol.CAuthentication_BeginAuthSessionViaCredentials_Request) (*protocol.CAuthentication_BeginAuthSessionViaCredentials_Response, error) {
			clientID := uint64(7)
			sid := uint64(testSteamID)
			device := protocol.EAuthSessionGuardType_DeviceCode
			return &protocol.CAuthentication_BeginAuthSessionViaCredentials_Response{
				ClientId:  &clientID,
				RequestId: []byte{9},
				AllowedConfirmations: []*protocol.CAuthentication_AllowedConfirmation{
					{ConfirmationType: &device},
				},
				Steamid: &sid,
			}, nil
		},
		update: func(_ context.Context, req *protocol.CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request) error {
			if req.Code != nil {
				submittedCode = *req.Code
			}
			return nil
		},
		poll: func(context.Context, *protocol.CAuthentication_PollAuthSessionStatus_Request) (*protocol.CAuthentication_PollAuthSessionStatus_Response, error) {
			access := "access-jwt"
			refresh := "refresh-jwt"
			return &protocol.CAuthentication_PollAuthSessionStatus_Response{
				AccessToken:  &access,
				RefreshToken: &refresh,
			}, nil
		},
	}

	s, err := LoginWithDeviceCode(context.Background(), api, "alice", "hunter2!", "R2D2C")
	if err != nil {
		t.Fatalf("LoginWithDeviceCode: %v", err)
	}

	if submittedCode != "R2D2C" {
		t.Errorf("submitted code = %q; want R2D2C", submittedCode)
	}
	if s.AccessToken() != "access-jwt" {
		t.Errorf("AccessToken = %q; want access-jwt", s.AccessToken())
	}
	if s.SteamID() != testSteamID {
		t.Errorf("SteamID = %d; want %d", s.SteamID(), testSteamID)
	}

	// The session must be wired for refresh with the minted refresh token.
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.mu.Unlock()
	if refreshToken != "refresh-jwt" {
		t.Errorf("session refreshToken = %q; want refresh-jwt", refreshToken)
	}
	if s.api != AuthClient(api) {
		t.Error("session should reuse the login's API client")
	}

	wantSecure := "76561198006409530%7C%7Caccess-jwt"
	if got := cookieValue(t, s, "https://steamcommunity.com", "steamLoginSecure"); got != wantSecure {
		t.Errorf("steamLoginSecure = %q; want %q", got, wantSecure)
	}
}

func TestLoginWithDeviceCodeNotAllowed(t *testing.T) {
	api := &fakeAuthClient{
		getRSAKey: func(context.Context, string) (*steamapi.RSAPublicKey, error) {
			return &steamapi.RSAPublicKey{Mod: testModulus, Exp: 0x10001, Timestamp: 1}, nil
		},
		begin: func(context.Context, *protocol.CAuthentication_BeginAuthSessionViaCredentials_Request) (*protocol.CAuthentication_BeginAuthSessionViaCredentials_Response, error) {
			clientID := uint64(7)
			sid := uint64(testSteamID)
			email := protocol.EAuthSessionGuardType_EmailCode
			return &protocol.CAuthentication_BeginAuthSessionViaCredentials_Response{
				ClientId: &clientID,
				AllowedConfirmations: []*protocol.CAuthentication_AllowedConfirmation{
					{ConfirmationType: &email},
				},
				Steamid: &sid,
			}, nil
		},
	}

	_, err := LoginWithDeviceCode(context.Background(), api, "alice", "pw", "12345")
	if err == nil || !strings.Contains(err.Error(), "device code") {
		t.Errorf("err = %v; want device code rejection", err)
	}
}

func TestEncryptPassword(t *testing.T) {
	got, err := encryptPassword("hunter2", testModulus, 0x10001)
	if err != nil {
		t.Fatalf("encryptPassword: %v", err)
	}
	ct, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("ciphertext is not base64: %v", err)
	}
	if len(ct) != 128 {
		t.Errorf("ciphertext = %d bytes; want 128 for a 1024-bit key", len(ct))
	}
}

func TestEncryptPasswordBadModulus(t *testing.T) {
	if _, err := encryptPassword("pw", "not-hex!", 0x10001); err == nil {
		t.Error("expected error for invalid modulus")
	}
}
