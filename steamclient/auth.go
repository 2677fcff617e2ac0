package steamclient

import (
	"context"
	"fmt"

	"github.com/k64z/steamcore/protocol"
	"google.golang.org/protobuf/proto"
)

// GenerateAccessTokenForApp exchanges a refresh token for a new access token
// via the CM service method protocol. Unlike the Web API variant, this works
// for SteamClient platform tokens. With renew set the server may also rotate
// the refresh token; newRefreshToken is empty when it did not.
func (c *Client) GenerateAccessTokenForApp(ctx context.Context, refreshToken string, renew bool) (accessToken, newRefreshToken string, err error) {
	c.mu.Lock()
	sid := c.steamID.ToSteamID64()
	c.mu.Unlock()

	req := &protocol.CAuthentication_AccessToken_GenerateForApp_Request{
		RefreshToken: proto.String(refreshToken),
		Steamid:      proto.Uint64(sid),
	}
	if renew {
		renewal := protocol.ETokenRenewalType_Allow
		req.RenewalType = &renewal
	}

	pkt, err := c.Call(ctx, "Authentication.GenerateAccessTokenForApp#1", req)
	if err != nil {
		return "", "", err
	}

	var resp protocol.CAuthentication_AccessToken_GenerateForApp_Response
	if err := protocol.Unmarshal(pkt.Body, &resp); err != nil {
		return "", "", fmt.Errorf("unmarshal GenerateAccessTokenForApp response: %w", err)
	}

	return resp.GetAccessToken(), resp.GetRefreshToken(), nil
}

// WebAPIUserNonce returns a single-use nonce for ISteamUserAuth/AuthenticateUser.
// The nonce delivered with the logon response is consumed first; afterwards
// each call requests a fresh one from the server.
func (c *Client) WebAPIUserNonce(ctx context.Context) (string, error) {
	c.mu.Lock()
	nonce := c.webNonce
	c.webNonce = ""
	c.mu.Unlock()

	if nonce != "" {
		return nonce, nil
	}

	sub := c.Subscribe(EMsgClientRequestWebAPIAuthenticateUserNonceResponse)
	defer sub.Cancel()

	body, err := protocol.Marshal(&protocol.CMsgClientRequestWebAPIAuthenticateUserNonce{})
	if err != nil {
		return "", fmt.Errorf("marshal nonce request: %w", err)
	}
	if err := c.sendPacket(ctx, EMsgClientRequestWebAPIAuthenticateUserNonce, nil, body); err != nil {
		return "", fmt.Errorf("send nonce request: %w", err)
	}

	pkt, err := c.awaitPacket(ctx, sub.C)
	if err != nil {
		return "", fmt.Errorf("wait for nonce: %w", err)
	}

	var resp protocol.CMsgClientRequestWebAPIAuthenticateUserNonceResponse
	if err := protocol.Unmarshal(pkt.Body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal nonce response: %w", err)
	}
	if result := protocol.EResult(resp.GetEresult()); result != protocol.EResultOK {
		return "", &ResultError{Method: "RequestWebAPIAuthenticateUserNonce", Result: result}
	}

	return resp.GetWebapiAuthenticateUserNonce(), nil
}
