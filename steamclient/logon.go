package steamclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k64z/steamcore/protocol"
	"github.com/k64z/steamcore/steamid"
	"github.com/k64z/steamcore/steamtotp"
	"google.golang.org/protobuf/proto"
)

// eOSTypeWin11 is the EOSType value announced in ClientLogon.
const eOSTypeWin11 = 20

// Credentials holds account logon material for LogOnWithCredentials.
type Credentials struct {
	AccountName string
	Password    string

	// SharedSecret, when set, is used to compute a TOTP code whenever
	// TwoFactorCode is empty.
	SharedSecret string

	// AuthCode is the email guard code requested by a previous
	// AccountLogonDenied result.
	AuthCode string

	// TwoFactorCode is a mobile authenticator code entered by the user.
	TwoFactorCode string

	// MachineName is reported to Steam and shown in the account's
	// authorized device list.
	MachineName string
}

// LogOnWithCredentials performs a single password logon attempt on an
// established connection. Guard challenges surface as *LoginError with
// NeedEmailCode or NeedTwoFactorCode set; the CM drops the connection after
// a failed attempt, so retrying requires a fresh Connect.
func (c *Client) LogOnWithCredentials(ctx context.Context, creds Credentials) error {
	if creds.AccountName == "" || creds.Password == "" {
		return errors.New("steamclient: account name and password required")
	}

	twoFactor := creds.TwoFactorCode
	if twoFactor == "" && creds.SharedSecret != "" {
		code, err := steamtotp.GenerateAuthCode(creds.SharedSecret, 0)
		if err != nil {
			return fmt.Errorf("generate auth code: %w", err)
		}
		twoFactor = code
	}

	logon := &protocol.CMsgClientLogon{
		ProtocolVersion:           proto.Uint32(ProtoVersion),
		AccountName:               &creds.AccountName,
		Password:                  &creds.Password,
		ShouldRememberPassword:    proto.Bool(true),
		ClientOsType:              proto.Uint32(eOSTypeWin11),
		ClientLanguage:            proto.String("english"),
		SupportsRateLimitResponse: proto.Bool(true),
	}
	if creds.MachineName != "" {
		logon.MachineName = &creds.MachineName
	}
	if creds.AuthCode != "" {
		logon.AuthCode = &creds.AuthCode
	}
	if twoFactor != "" {
		logon.TwoFactorCode = &twoFactor
	}

	// A stored sentry hash stands in for a guard code on known machines.
	if c.sentry != nil {
		if hash := c.sentry.Hash(creds.AccountName); hash != nil {
			logon.EresultSentryfile = proto.Int32(int32(protocol.EResultOK))
			logon.ShaSentryfile = hash
		} else {
			logon.EresultSentryfile = proto.Int32(int32(protocol.EResultFileNotFound))
		}
	}

	sid := steamid.SteamID(0).
		SetUniverse(1).
		SetType(1).
		SetInstance(1)

	return c.performLogon(ctx, logon, sid.ToSteamID64(), creds.AccountName)
}

// LogOnWithToken authenticates using an account name and a refresh token
// obtained from a prior credentials auth session.
func (c *Client) LogOnWithToken(ctx context.Context, accountName, refreshToken string, sid steamid.SteamID) error {
	loginSID := steamid.SteamID(0).
		SetUniverse(1).
		SetType(1).
		SetInstance(1).
		SetAccountID(sid.AccountID())

	logon := &protocol.CMsgClientLogon{
		ProtocolVersion:        proto.Uint32(ProtoVersion),
		AccountName:            &accountName,
		AccessToken:            &refreshToken,
		ShouldRememberPassword: proto.Bool(true),
		ClientOsType:           proto.Uint32(eOSTypeWin11),
		ClientLanguage:         proto.String("english"),
	}

	return c.performLogon(ctx, logon, loginSID.ToSteamID64(), accountName)
}

func (c *Client) performLogon(ctx context.Context, logon *protocol.CMsgClientLogon, sidU64 uint64, accountName string) error {
	helloBody, err := protocol.Marshal(&protocol.CMsgClientHello{
		ProtocolVersion: proto.Uint32(ProtoVersion),
	})
	if err != nil {
		return fmt.Errorf("marshal ClientHello: %w", err)
	}

	if err := c.sendPacket(ctx, EMsgClientHello, nil, helloBody); err != nil {
		return fmt.Errorf("send ClientHello: %w", err)
	}

	// Subscribe BEFORE sending logon to avoid a race with the read loop.
	sub := c.Subscribe(EMsgClientLogOnResponse)
	defer sub.Cancel()

	body, err := protocol.Marshal(logon)
	if err != nil {
		return fmt.Errorf("marshal ClientLogon: %w", err)
	}

	if err := c.sendPacket(ctx, EMsgClientLogon, &protocol.CMsgProtoBufHeader{
		Steamid:         &sidU64,
		ClientSessionid: proto.Int32(0),
	}, body); err != nil {
		return fmt.Errorf("send ClientLogon: %w", err)
	}

	pkt, err := c.awaitPacket(ctx, sub.C)
	if err != nil {
		return fmt.Errorf("wait for logon response: %w", err)
	}

	var resp protocol.CMsgClientLogonResponse
	if err := protocol.Unmarshal(pkt.Body, &resp); err != nil {
		return fmt.Errorf("unmarshal logon response: %w", err)
	}

	switch result := protocol.EResult(resp.GetEresult()); result {
	case protocol.EResultOK:
		c.completeLogon(pkt, &resp, accountName)
		return nil

	case protocol.EResultAccountLogonDenied:
		return &LoginError{
			Result:        result,
			NeedEmailCode: true,
			EmailDomain:   resp.GetEmailDomain(),
		}

	case protocol.EResultAccountLoginDeniedNeedTwoFactor, protocol.EResultTwoFactorCodeMismatch:
		return &LoginError{Result: result, NeedTwoFactorCode: true}

	default:
		return &LoginError{Result: result}
	}
}

func (c *Client) completeLogon(pkt *Packet, resp *protocol.CMsgClientLogonResponse, accountName string) {
	sid := steamid.FromSteamID64(pkt.Header.GetSteamid())
	sessionID := pkt.Header.GetClientSessionid()

	c.mu.Lock()
	c.steamID = sid
	c.sessionID = sessionID
	c.accountName = accountName
	c.webNonce = resp.GetWebapiAuthenticateUserNonce()
	c.loggedIn = true
	c.mu.Unlock()

	heartbeatSec := resp.GetHeartbeatSeconds()
	if heartbeatSec <= 0 {
		heartbeatSec = 30 // fallback
	}

	c.wg.Add(1)
	go c.keepaliveLoop(time.Duration(heartbeatSec) * time.Second)

	// A working endpoint clears earlier strikes against the server list.
	c.directory.ClearBlacklist()

	c.logger.Info("logged in",
		"steamid", sid.String(),
		"session_id", sessionID,
		"heartbeat_sec", heartbeatSec,
	)
}
