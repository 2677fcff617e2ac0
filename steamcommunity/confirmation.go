package steamcommunity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/k64z/steamcore/steamtotp"
)

// Confirmation key tags. Every endpoint demands a key minted for its own
// tag; a key for one tag is rejected by the others.
const (
	tagList    = "conf"
	tagDetails = "details"
	tagAllow   = "allow"
	tagCancel  = "cancel"
)

// totpWindow is how long a confirmation key stays valid.
const totpWindow = 30 * time.Second

// ConfirmationType represents the type of confirmation.
type ConfirmationType int

const (
	ConfirmationTypeUnknown       ConfirmationType = 0
	ConfirmationTypeTrade         ConfirmationType = 2
	ConfirmationTypeMarketListing ConfirmationType = 3
)

func (t ConfirmationType) String() string {
	switch t {
	case ConfirmationTypeTrade:
		return "Trade"
	case ConfirmationTypeMarketListing:
		return "Market Listing"
	default:
		return "Unknown"
	}
}

// Confirmation represents a pending mobile confirmation.
type Confirmation struct {
	ID        string
	Type      ConfirmationType
	CreatorID string // trade offer ID for trades, listing ID for market listings
	Key       string // single-use nonce echoed back when responding
	Title     string
	Headline  string
	Summary   []string
	Timestamp time.Time
	Icon      string
}

// buildConfirmationParams builds the query parameters shared by all
// confirmation endpoints, keyed for the given tag. The returned server time
// is the moment the key was minted under.
func (c *Community) buildConfirmationParams(ctx context.Context, identitySecret []byte, tag string) (url.Values, int64, error) {
	serverTime, err := c.timeSource(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("get steam time: %w", err)
	}

	steamID64 := c.steamID.ToSteamID64()

	params := url.Values{}
	params.Set("p", steamtotp.GetDeviceID(steamID64))
	params.Set("a", strconv.FormatUint(steamID64, 10))
	params.Set("k", steamtotp.GenerateConfirmationKey(identitySecret, serverTime, tag))
	params.Set("t", strconv.FormatInt(serverTime, 10))
	params.Set("m", "android")
	params.Set("tag", tag)

	return params, serverTime, nil
}

// GetConfirmations retrieves all pending confirmations.
// The identitySecret is the base64-decoded identity_secret from the
// account's maFile.
func (c *Community) GetConfirmations(ctx context.Context, identitySecret []byte) ([]Confirmation, error) {
	params, _, err := c.buildConfirmationParams(ctx, identitySecret, tagList)
	if err != nil {
		return nil, err
	}

	body, err := c.confRequest(ctx, http.MethodGet, communityURL+"/mobileconf/getlist?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool `json:"success"`
		Conf    []struct {
			ID           string   `json:"id"`
			Type         int      `json:"type"`
			CreatorID    string   `json:"creator_id"`
			Nonce        string   `json:"nonce"`
			TypeName     string   `json:"type_name"`
			Headline     string   `json:"headline"`
			Summary      []string `json:"summary"`
			CreationTime int64    `json:"creation_time"`
			Icon         string   `json:"icon"`
		} `json:"conf"`
		NeedAuth bool   `json:"needauth"`
		Message  string `json:"message"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if result.NeedAuth {
		return nil, errors.New("authentication required")
	}

	if !result.Success {
		return nil, &ConfirmationError{Message: result.Message}
	}

	confirmations := make([]Confirmation, len(result.Conf))
	for i, conf := range result.Conf {
		confirmations[i] = Confirmation{
			ID:        conf.ID,
			Type:      ConfirmationType(conf.Type),
			CreatorID: conf.CreatorID,
			Key:       conf.Nonce,
			Title:     conf.TypeName,
			Headline:  conf.Headline,
			Summary:   conf.Summary,
			Timestamp: time.Unix(conf.CreationTime, 0),
			Icon:      conf.Icon,
		}
	}

	return confirmations, nil
}

// GetConfirmationDetails fetches the rendered detail fragment for a
// confirmation, e.g. the item list of the trade it guards.
func (c *Community) GetConfirmationDetails(ctx context.Context, conf Confirmation, identitySecret []byte) (string, error) {
	params, _, err := c.buildConfirmationParams(ctx, identitySecret, tagDetails)
	if err != nil {
		return "", err
	}

	body, err := c.confRequest(ctx, http.MethodGet, communityURL+"/mobileconf/details/"+conf.ID+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Success bool   `json:"success"`
		HTML    string `json:"html"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !result.Success {
		return "", &ConfirmationError{ID: conf.ID}
	}

	return result.HTML, nil
}

// AcceptConfirmation accepts a pending confirmation.
func (c *Community) AcceptConfirmation(ctx context.Context, conf Confirmation, identitySecret []byte) error {
	return c.respondToConfirmation(ctx, conf, identitySecret, true)
}

// RejectConfirmation rejects a pending confirmation.
func (c *Community) RejectConfirmation(ctx context.Context, conf Confirmation, identitySecret []byte) error {
	return c.respondToConfirmation(ctx, conf, identitySecret, false)
}

// respondToConfirmation acknowledges a single confirmation via ajaxop.
func (c *Community) respondToConfirmation(ctx context.Context, conf Confirmation, identitySecret []byte, accept bool) error {
	return c.resolveWithRetry(ctx, identitySecret, conf.ID, opTag(accept), func(params url.Values) ([]byte, error) {
		params.Set("cid", conf.ID)
		params.Set("ck", conf.Key)
		return c.confRequest(ctx, http.MethodGet, communityURL+"/mobileconf/ajaxop?"+params.Encode(), nil)
	})
}

// RespondToConfirmations acknowledges several confirmations in one request.
func (c *Community) RespondToConfirmations(ctx context.Context, confs []Confirmation, identitySecret []byte, accept bool) error {
	if len(confs) == 0 {
		return nil
	}

	return c.resolveWithRetry(ctx, identitySecret, confs[0].ID, opTag(accept), func(params url.Values) ([]byte, error) {
		for _, conf := range confs {
			params.Add("cid[]", conf.ID)
			params.Add("ck[]", conf.Key)
		}
		return c.confRequest(ctx, http.MethodPost, communityURL+"/mobileconf/ajaxop", params)
	})
}

func opTag(accept bool) string {
	if accept {
		return tagAllow
	}
	return tagCancel
}

// resolveWithRetry runs one ajaxop attempt and retries exactly once on a
// "replayed" rejection, which means the key's 30-second window was already
// consumed: wait out the rest of the window and mint a fresh key.
func (c *Community) resolveWithRetry(ctx context.Context, identitySecret []byte, confID, tag string, do func(params url.Values) ([]byte, error)) error {
	var lastMsg string
	for attempt := range 2 {
		params, serverTime, err := c.buildConfirmationParams(ctx, identitySecret, tag)
		if err != nil {
			return err
		}
		params.Set("op", tag)

		body, err := do(params)
		if err != nil {
			return err
		}

		var result struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if result.Success {
			return nil
		}

		lastMsg = result.Message
		if attempt == 0 && strings.Contains(strings.ToLower(result.Message), "replayed") {
			if err := sleepContext(ctx, windowRemaining(serverTime)); err != nil {
				return err
			}
			continue
		}
		break
	}

	return &ConfirmationError{ID: confID, Message: lastMsg}
}

// ConfirmationForTrade returns the pending confirmation spawned by a trade
// offer, or ErrConfirmationNotFound. Steam creates it asynchronously after
// the accept/send endpoint reports needs_mobile_confirmation, sometimes with
// a delay.
func (c *Community) ConfirmationForTrade(ctx context.Context, identitySecret []byte, tradeOfferID string) (*Confirmation, error) {
	confirmations, err := c.GetConfirmations(ctx, identitySecret)
	if err != nil {
		return nil, fmt.Errorf("get confirmations: %w", err)
	}

	for _, conf := range confirmations {
		if conf.CreatorID == tradeOfferID {
			return &conf, nil
		}
	}

	return nil, ErrConfirmationNotFound
}

// AcceptConfirmationByCreatorID finds and accepts the confirmation created
// by creatorID: the trade offer ID for trades, the listing ID for market
// listings.
func (c *Community) AcceptConfirmationByCreatorID(ctx context.Context, identitySecret []byte, creatorID string) error {
	conf, err := c.ConfirmationForTrade(ctx, identitySecret, creatorID)
	if err != nil {
		return err
	}
	return c.AcceptConfirmation(ctx, *conf, identitySecret)
}

// RejectConfirmationByCreatorID finds and rejects a confirmation by its
// creator ID.
func (c *Community) RejectConfirmationByCreatorID(ctx context.Context, identitySecret []byte, creatorID string) error {
	conf, err := c.ConfirmationForTrade(ctx, identitySecret, creatorID)
	if err != nil {
		return err
	}
	return c.RejectConfirmation(ctx, *conf, identitySecret)
}

// confRequest performs one confirmation endpoint request. A non-nil form
// is sent URL-encoded in the body.
func (c *Community) confRequest(ctx context.Context, method, reqURL string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// windowRemaining is how long until the key window that covers serverTime
// rolls over.
func windowRemaining(serverTime int64) time.Duration {
	return totpWindow - time.Duration(serverTime%30)*time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
