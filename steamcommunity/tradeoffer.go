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

	"github.com/k64z/steamcore/steamapi"
	"github.com/k64z/steamcore/steamid"
)

// SendTradeOfferOptions contains options for sending a trade offer.
type SendTradeOfferOptions struct {
	Partner        steamid.SteamID       // Required: trade partner's SteamID
	Token          string                // Optional: trade token for non-friends
	Message        string                // Optional: message to include (max 128 chars)
	ItemsToGive    []steamapi.TradeAsset // Items to give
	ItemsToReceive []steamapi.TradeAsset // Items to receive

	// CounteredOfferID marks this offer as a counter to an offer received
	// from the partner. Steam moves the original to the Countered state
	// when the new offer is created.
	CounteredOfferID string
}

// SendTradeOfferResponse contains the response from SendTradeOffer.
type SendTradeOfferResponse struct {
	TradeOfferID      string `json:"tradeofferid"`
	NeedsConfirmation bool   `json:"needs_mobile_confirmation"`
	NeedsEmailConfirm bool   `json:"needs_email_confirmation"`
	EmailDomain       string `json:"email_domain"`
}

// AcceptTradeOfferResponse contains the response from AcceptTradeOffer.
type AcceptTradeOfferResponse struct {
	NeedsConfirmation bool   `json:"needs_mobile_confirmation"`
	NeedsEmailConfirm bool   `json:"needs_email_confirmation"`
	EmailDomain       string `json:"email_domain"`
}

// tradeOfferJSON is the wire format for the json_tradeoffer form field.
type tradeOfferJSON struct {
	NewVersion bool            `json:"newversion"`
	Version    int             `json:"version"`
	Me         tradeOfferParty `json:"me"`
	Them       tradeOfferParty `json:"them"`
}

type tradeOfferParty struct {
	Assets   []tradeOfferAsset `json:"assets"`
	Currency []any             `json:"currency"`
	Ready    bool              `json:"ready"`
}

type tradeOfferAsset struct {
	AppID     int    `json:"appid"`
	ContextID string `json:"contextid"`
	Amount    int    `json:"amount"`
	AssetID   string `json:"assetid"`
}

func toOfferAssets(items []steamapi.TradeAsset) []tradeOfferAsset {
	assets := make([]tradeOfferAsset, 0, len(items))
	for _, item := range items {
		amount := 1
		if item.Amount != "" {
			if parsed, err := strconv.Atoi(item.Amount); err == nil {
				amount = parsed
			}
		}
		assets = append(assets, tradeOfferAsset{
			AppID:     item.AppID,
			ContextID: item.ContextID,
			Amount:    amount,
			AssetID:   item.AssetID,
		})
	}
	return assets
}

// SendTradeOffer sends a new trade offer to a partner.
func (c *Community) SendTradeOffer(ctx context.Context, opts SendTradeOfferOptions) (*SendTradeOfferResponse, error) {
	if !opts.Partner.IsValid() {
		return nil, errors.New("partner SteamID required")
	}

	tradeJSON := tradeOfferJSON{
		NewVersion: true,
		Version:    len(opts.ItemsToGive) + len(opts.ItemsToReceive) + 1,
		Me: tradeOfferParty{
			Assets:   toOfferAssets(opts.ItemsToGive),
			Currency: []any{},
		},
		Them: tradeOfferParty{
			Assets:   toOfferAssets(opts.ItemsToReceive),
			Currency: []any{},
		},
	}

	tradeJSONBytes, err := json.Marshal(tradeJSON)
	if err != nil {
		return nil, fmt.Errorf("marshal trade json: %w", err)
	}

	createParams := "{}"
	if opts.Token != "" {
		createParamsJSON, _ := json.Marshal(map[string]string{
			"trade_offer_access_token": opts.Token,
		})
		createParams = string(createParamsJSON)
	}

	formData := url.Values{}
	formData.Set("sessionid", c.sessionID)
	formData.Set("serverid", "1")
	formData.Set("partner", strconv.FormatUint(opts.Partner.ToSteamID64(), 10))
	formData.Set("tradeoffermessage", opts.Message)
	formData.Set("json_tradeoffer", string(tradeJSONBytes))
	formData.Set("captcha", "")
	formData.Set("trade_offer_create_params", createParams)
	if opts.CounteredOfferID != "" {
		formData.Set("tradeofferid_countered", opts.CounteredOfferID)
	}

	// Steam validates the Referer: a counter offer comes from the original
	// offer's page, a fresh one from the compose page.
	refererURL := fmt.Sprintf("%s/tradeoffer/new/?partner=%d", communityURL, opts.Partner.AccountID())
	if opts.Token != "" {
		refererURL += "&token=" + opts.Token
	}
	if opts.CounteredOfferID != "" {
		refererURL = fmt.Sprintf("%s/tradeoffer/%s/", communityURL, opts.CounteredOfferID)
	}

	var result SendTradeOfferResponse
	if err := c.postOfferForm(ctx, communityURL+"/tradeoffer/new/send", refererURL, formData, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CounterTradeOffer replies to a received offer with modified terms. Steam
// pairs the two offers: the original moves to Countered and the returned ID
// is the new active offer.
func (c *Community) CounterTradeOffer(ctx context.Context, originalOfferID string, opts SendTradeOfferOptions) (*SendTradeOfferResponse, error) {
	if originalOfferID == "" {
		return nil, errors.New("original offer ID required")
	}
	opts.CounteredOfferID = originalOfferID
	return c.SendTradeOffer(ctx, opts)
}

// AcceptTradeOffer accepts a received trade offer. If the response reports
// NeedsConfirmation, the accept only completes once the matching mobile
// confirmation is allowed (see AcceptConfirmationByCreatorID).
// Accepting an offer already in a terminal state returns ErrAlreadyClosed.
func (c *Community) AcceptTradeOffer(ctx context.Context, offerID string, partner steamid.SteamID) (*AcceptTradeOfferResponse, error) {
	formData := url.Values{}
	formData.Set("sessionid", c.sessionID)
	formData.Set("serverid", "1")
	formData.Set("tradeofferid", offerID)
	formData.Set("partner", strconv.FormatUint(partner.ToSteamID64(), 10))
	formData.Set("captcha", "")

	acceptURL := fmt.Sprintf("%s/tradeoffer/%s/accept", communityURL, offerID)
	refererURL := fmt.Sprintf("%s/tradeoffer/%s/", communityURL, offerID)

	var result AcceptTradeOfferResponse
	if err := c.postOfferForm(ctx, acceptURL, refererURL, formData, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CancelTradeOffer cancels an offer we sent.
// Cancelling an offer already in a terminal state returns ErrAlreadyClosed.
func (c *Community) CancelTradeOffer(ctx context.Context, offerID string) error {
	return c.cancelOrDeclineOffer(ctx, offerID, "cancel")
}

// DeclineTradeOffer declines an offer we received.
// Declining an offer already in a terminal state returns ErrAlreadyClosed.
func (c *Community) DeclineTradeOffer(ctx context.Context, offerID string) error {
	return c.cancelOrDeclineOffer(ctx, offerID, "decline")
}

func (c *Community) cancelOrDeclineOffer(ctx context.Context, offerID, action string) error {
	formData := url.Values{}
	formData.Set("sessionid", c.sessionID)

	actionURL := fmt.Sprintf("%s/tradeoffer/%s/%s", communityURL, offerID, action)
	refererURL := fmt.Sprintf("%s/tradeoffer/%s/", communityURL, offerID)

	return c.postOfferForm(ctx, actionURL, refererURL, formData, nil)
}

// postOfferForm submits a trade offer form and decodes the JSON reply into
// out (when non-nil). strError payloads take precedence over the HTTP
// status: Steam reports terminal-offer replays as 500 with a strError body.
func (c *Community) postOfferForm(ctx context.Context, actionURL, referer string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, actionURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	return parseOfferResponse(resp.StatusCode, body, out)
}

func parseOfferResponse(status int, body []byte, out any) error {
	var probe struct {
		StrError string `json:"strError"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.StrError != "" {
		return strError(probe.StrError)
	}

	if status != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", status, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
