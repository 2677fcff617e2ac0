package steamapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const econServiceURL = "https://api.steampowered.com/IEconService"

// GetTradeOffer retrieves a single trade offer by ID
func (a *API) GetTradeOffer(ctx context.Context, offerID string) (*TradeOffer, error) {
	params, err := a.econAuthParams()
	if err != nil {
		return nil, err
	}
	params.Set("tradeofferid", offerID)
	params.Set("language", "en")

	var result struct {
		Response struct {
			Offer *TradeOffer `json:"offer"`
		} `json:"response"`
	}

	if err := a.econGet(ctx, "GetTradeOffer", params, &result); err != nil {
		return nil, err
	}

	if result.Response.Offer == nil {
		return nil, fmt.Errorf("offer not found")
	}

	return result.Response.Offer, nil
}

// GetTradeOffers retrieves lists of sent and received trade offers. Steam
// pages large responses; all pages are fetched and merged before returning.
func (a *API) GetTradeOffers(ctx context.Context, opts GetTradeOffersOptions) (*TradeOffersResponse, error) {
	params, err := a.econAuthParams()
	if err != nil {
		return nil, err
	}

	if opts.GetSentOffers {
		params.Set("get_sent_offers", "1")
	}
	if opts.GetReceivedOffers {
		params.Set("get_received_offers", "1")
	}
	if opts.GetDescriptions {
		params.Set("get_descriptions", "1")
	}
	if opts.ActiveOnly {
		params.Set("active_only", "1")
	}
	if opts.HistoricalOnly {
		params.Set("historical_only", "1")
	}
	if opts.Language != "" {
		params.Set("language", opts.Language)
	}
	if opts.TimeHistoricalCutoff > 0 {
		params.Set("time_historical_cutoff", strconv.FormatInt(opts.TimeHistoricalCutoff, 10))
	}

	var (
		out    TradeOffersResponse
		raw    []rawAssetDescription
		cursor uint64
	)

	for {
		if cursor > 0 {
			params.Set("cursor", strconv.FormatUint(cursor, 10))
		}

		var result struct {
			Response struct {
				TradeOffersResponse
				RawDescriptions []rawAssetDescription `json:"descriptions"`
				NextCursor      uint64                `json:"next_cursor"`
			} `json:"response"`
		}

		if err := a.econGet(ctx, "GetTradeOffers", params, &result); err != nil {
			return nil, err
		}

		out.SentOffers = append(out.SentOffers, result.Response.SentOffers...)
		out.ReceivedOffers = append(out.ReceivedOffers, result.Response.ReceivedOffers...)
		raw = append(raw, result.Response.RawDescriptions...)

		next := result.Response.NextCursor
		if next == 0 || next == cursor {
			break
		}
		cursor = next
	}

	out.Descriptions = convertDescriptions(raw)
	return &out, nil
}

// GetTradeOfferWithDescriptions retrieves a single trade offer with item descriptions.
func (a *API) GetTradeOfferWithDescriptions(ctx context.Context, offerID string) (*GetTradeOfferResult, error) {
	params, err := a.econAuthParams()
	if err != nil {
		return nil, err
	}
	params.Set("tradeofferid", offerID)
	params.Set("language", "en")
	params.Set("get_descriptions", "1")

	var result struct {
		Response struct {
			Offer           *TradeOffer           `json:"offer"`
			RawDescriptions []rawAssetDescription `json:"descriptions"`
		} `json:"response"`
	}

	if err := a.econGet(ctx, "GetTradeOffer", params, &result); err != nil {
		return nil, err
	}

	if result.Response.Offer == nil {
		return nil, fmt.Errorf("offer not found")
	}

	return &GetTradeOfferResult{
		Offer:        result.Response.Offer,
		Descriptions: convertDescriptions(result.Response.RawDescriptions),
	}, nil
}

// econAuthParams returns query params carrying whichever credential the API
// was configured with. Access tokens take precedence over Web API keys.
func (a *API) econAuthParams() (url.Values, error) {
	params := url.Values{}
	if tok := a.token(); tok != "" {
		params.Set("access_token", tok)
		return params, nil
	}
	if a.apiKey != "" {
		params.Set("key", a.apiKey)
		return params, nil
	}
	return nil, ErrNoCredentials
}

func (a *API) econGet(ctx context.Context, method string, params url.Values, out any) error {
	reqURL := econServiceURL + "/" + method + "/v1/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkEconResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func convertDescriptions(raw []rawAssetDescription) map[string]AssetDescription {
	if len(raw) == 0 {
		return nil
	}
	m := make(map[string]AssetDescription, len(raw))
	for _, d := range raw {
		m[AssetDescriptionKey(d.AppID, d.ClassID, d.InstanceID)] = AssetDescription{
			AppID:          d.AppID,
			ClassID:        d.ClassID,
			InstanceID:     d.InstanceID,
			Name:           d.Name,
			MarketHashName: d.MarketHashName,
			Type:           d.Type,
			Tradable:       bool(d.Tradable),
			Marketable:     bool(d.Marketable),
			Commodity:      bool(d.Commodity),
			IconURL:        d.IconURL,
			IconURLLarge:   d.IconURLLarge,
			Descriptions:   d.Descriptions,
			Tags:           d.Tags,
			Actions:        d.Actions,
			FraudWarnings:  d.FraudWarnings,
		}
	}
	return m
}

// checkEconResponse checks the response from IEconService endpoints
func checkEconResponse(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	eresult := resp.Header.Get("X-Eresult")
	if eresult != "" && eresult != "1" {
		return fmt.Errorf("X-Eresult: %s", eresult)
	}

	return nil
}
