package steamapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/k64z/steamcore/steamid"
)

const userAuthURL = "https://api.steampowered.com/ISteamUserAuth/AuthenticateUser/v1/"

// AuthenticateUserResult carries the web session tokens minted for a CM
// session. Token becomes the steamLogin cookie value, TokenSecure the
// steamLoginSecure one.
type AuthenticateUserResult struct {
	Token       string `json:"token"`
	TokenSecure string `json:"tokenSecure"`
}

// AuthenticateUser exchanges a CM webapi nonce for web session tokens.
// The nonce is single-use: a failed exchange needs a fresh nonce from the
// CM connection, not a retry.
func (a *API) AuthenticateUser(ctx context.Context, id steamid.SteamID, nonce string) (*AuthenticateUserResult, error) {
	sessionKey := make([]byte, 32)
	if _, err := rand.Read(sessionKey); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}

	encryptedKey, err := rsaEncryptSessionKey(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("encrypt session key: %w", err)
	}

	encryptedNonce, err := symmetricEncrypt(sessionKey, []byte(nonce))
	if err != nil {
		return nil, fmt.Errorf("encrypt nonce: %w", err)
	}

	form := url.Values{}
	form.Set("steamid", id.String())
	form.Set("sessionkey", string(encryptedKey))
	form.Set("encrypted_loginkey", string(encryptedNonce))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, userAuthURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		AuthenticateUser AuthenticateUserResult `json:"authenticateuser"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if result.AuthenticateUser.TokenSecure == "" {
		return nil, fmt.Errorf("no token in response")
	}

	return &result.AuthenticateUser, nil
}
