package steamapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/k64z/rq"

	"github.com/k64z/steamcore/protocol"
)

const authServiceURL = "https://api.steampowered.com/IAuthenticationService"

type RSAPublicKey struct {
	Mod       string
	Exp       int64
	Timestamp uint64
}

// GetPasswordRSAPublicKey fetches the RSA public key used to encrypt
// passwords for a given account name.
func (a *API) GetPasswordRSAPublicKey(ctx context.Context, accountName string) (*RSAPublicKey, error) {
	msg := &protocol.CAuthentication_GetPasswordRSAPublicKey_Request{
		AccountName: &accountName,
	}

	payload, err := encodeProto(msg)
	if err != nil {
		return nil, err
	}

	resp := rq.New().
		URL(authServiceURL + "/GetPasswordRSAPublicKey/v1").
		QueryParam("origin", "https://steamcommunity.com").
		QueryParam("input_protobuf_encoded", payload).
		DoContext(ctx)

	result, err := decodeProto(resp, &protocol.CAuthentication_GetPasswordRSAPublicKey_Response{})
	if err != nil {
		return nil, err
	}

	if result.PublickeyMod == nil || result.PublickeyExp == nil {
		return nil, fmt.Errorf("malformed RSA key: %+v", result)
	}

	exp, err := strconv.ParseInt(*result.PublickeyExp, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("parse exp: %w", err)
	}

	return &RSAPublicKey{
		Mod:       *result.PublickeyMod,
		Exp:       exp,
		Timestamp: *result.Timestamp,
	}, nil
}

// BeginAuthSessionViaCredentials starts a token logon session with an
// RSA-encrypted password (see GetPasswordRSAPublicKey).
func (a *API) BeginAuthSessionViaCredentials(
	ctx context.Context,
	req *protocol.CAuthentication_BeginAuthSessionViaCredentials_Request,
) (*protocol.CAuthentication_BeginAuthSessionViaCredentials_Response, error) {
	if req == nil {
		return nil, errors.New("invalid request")
	}

	resp, err := a.postAuthService(ctx, "BeginAuthSessionViaCredentials", req)
	if err != nil {
		return nil, err
	}

	return decodeProto(resp, &protocol.CAuthentication_BeginAuthSessionViaCredentials_Response{})
}

// UpdateAuthSessionWithSteamGuardCode approves a pending auth session with
// an email or device TOTP code.
func (a *API) UpdateAuthSessionWithSteamGuardCode(
	ctx context.Context,
	req *protocol.CAuthentication_UpdateAuthSessionWithSteamGuardCode_Request,
) error {
	if req == nil {
		return errors.New("invalid request")
	}

	resp, err := a.postAuthService(ctx, "UpdateAuthSessionWithSteamGuardCode", req)
	if err != nil {
		return err
	}

	_, err = decodeProto(resp, &protocol.CAuthentication_UpdateAuthSessionWithSteamGuardCode_Response{})
	return err
}

// PollAuthSessionStatus checks whether a pending auth session has been
// approved, and returns the minted tokens once it has.
func (a *API) PollAuthSessionStatus(
	ctx context.Context,
	req *protocol.CAuthentication_PollAuthSessionStatus_Request,
) (*protocol.CAuthentication_PollAuthSessionStatus_Response, error) {
	if req == nil {
		return nil, errors.New("invalid request")
	}

	resp, err := a.postAuthService(ctx, "PollAuthSessionStatus", req)
	if err != nil {
		return nil, err
	}

	return decodeProto(resp, &protocol.CAuthentication_PollAuthSessionStatus_Response{})
}

// GenerateAccessTokenForApp exchanges a refresh token for a fresh access
// token. Only MobileApp refresh tokens are accepted over the Web API;
// SteamClient tokens must be refreshed over the CM connection instead
// (see steamclient.Client.GenerateAccessTokenForApp).
func (a *API) GenerateAccessTokenForApp(
	ctx context.Context,
	req *protocol.CAuthentication_AccessToken_GenerateForApp_Request,
) (*protocol.CAuthentication_AccessToken_GenerateForApp_Response, error) {
	if req == nil {
		return nil, errors.New("invalid request")
	}

	resp, err := a.postAuthService(ctx, "GenerateAccessTokenForApp", req)
	if err != nil {
		return nil, err
	}

	return decodeProto(resp, &protocol.CAuthentication_AccessToken_GenerateForApp_Response{})
}

// postAuthService POSTs a protobuf message to an IAuthenticationService
// method as a multipart form with the standard input_protobuf_encoded field.
func (a *API) postAuthService(ctx context.Context, method string, msg protocol.Message) (*rq.Response, error) {
	payload, err := encodeProto(msg)
	if err != nil {
		return nil, fmt.Errorf("encode proto: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	err = w.WriteField("input_protobuf_encoded", payload)
	if err != nil {
		return nil, fmt.Errorf("write field: %w", err)
	}

	err = w.Close()
	if err != nil {
		return nil, fmt.Errorf("close writer: %w", err)
	}

	resp := rq.New().
		URL(authServiceURL + "/" + method + "/v1").
		Method(http.MethodPost).
		BodyBytes(buf.Bytes()).
		Header("Content-Type", w.FormDataContentType()).
		DoContext(ctx)

	return resp, nil
}

// Encodes protobuf messages to base64
func encodeProto(msg protocol.Message) (string, error) {
	data, err := protocol.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("proto marshal: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decodes HTTP responses to protobuf messages
func decodeProto[T protocol.Message](resp *rq.Response, msg T) (T, error) {
	if resp.Error() != nil {
		return msg, fmt.Errorf("rq: %w", resp.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return msg, &StatusError{Code: resp.StatusCode}
	}

	bodyBytes, err := resp.Bytes()
	if err != nil {
		return msg, fmt.Errorf("read body: %w", err)
	}

	err = protocol.Unmarshal(bodyBytes, msg)
	if err != nil {
		return msg, fmt.Errorf("unmarshal proto: %w", err)
	}

	return msg, nil
}
