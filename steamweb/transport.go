package steamweb

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultRPS   = 5
	defaultBurst = 10

	// fallback wait after a 429 without a usable Retry-After header
	defaultRetryAfter = 5 * time.Second

	// minimum spacing between session refreshes, so a burst of rejected
	// requests does not burn one nonce per request
	refreshDamp = 30 * time.Second
)

// Transport is an http.RoundTripper that rate-limits requests per host and
// transparently re-authenticates the session in two cases:
//
//   - HTTP 429: the host's token bucket is halved, the request sleeps
//     through Retry-After and is retried once
//   - Rejected cookies on a session host (hard 401 or a redirect to the
//     login page, e.g. server-side revocation): the session refreshes and
//     the request is retried once with fresh cookies
//
// Re-authentication only triggers for steamcommunity.com and
// store.steampowered.com. Web API hosts authenticate per request (query
// token or protobuf body), not via cookies, so refreshing would be
// meaningless there and could recurse: the refresh path itself talks to
// api.steampowered.com.
type Transport struct {
	base    http.RoundTripper
	session *Session

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int

	reauthMu    sync.Mutex
	lastRefresh time.Time
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter(req.URL.Host).Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return t.retryAfterBackoff(req, resp)
	}

	if sessionHost(req.URL.Host) && sessionRejected(resp) {
		return t.retryAfterRefresh(req, resp)
	}

	return resp, nil
}

func (t *Transport) limiter(host string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[host]
	if !ok {
		l = rate.NewLimiter(t.rps, t.burst)
		t.limiters[host] = l
	}
	return l
}

// halveLimit shrinks the host's bucket after a 429.
func (t *Transport) halveLimit(host string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.limiters[host]; ok {
		l.SetLimit(l.Limit() / 2)
	}
}

// retryAfterBackoff handles a 429: halve the host's budget, sleep through
// Retry-After and retry the request exactly once. If the body can't be
// replayed, returns the original response.
func (t *Transport) retryAfterBackoff(req *http.Request, originalResp *http.Response) (*http.Response, error) {
	t.halveLimit(req.URL.Host)

	if req.Body != nil && req.GetBody == nil {
		return originalResp, nil
	}

	select {
	case <-req.Context().Done():
		return originalResp, nil
	case <-time.After(retryAfter(originalResp.Header)):
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return originalResp, nil
		}
		req.Body = body
	}

	originalResp.Body.Close()
	return t.base.RoundTrip(req)
}

// retryAfterRefresh handles server-side session revocation: refreshes the
// session and retries the request exactly once with fresh cookies. If the
// refresh fails or the body can't be replayed, returns the original
// response.
func (t *Transport) retryAfterRefresh(req *http.Request, originalResp *http.Response) (*http.Response, error) {
	if req.Body != nil && req.GetBody == nil {
		return originalResp, nil
	}

	if err := t.refreshSession(req.Context()); err != nil {
		t.session.logger.Warn("session refresh failed", "host", req.URL.Host, "err", err)
		return originalResp, nil
	}

	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return originalResp, nil
		}
		req.Body = body
	}

	t.patchRequestCookies(req)
	originalResp.Body.Close()

	return t.base.RoundTrip(req)
}

// refreshSession re-authenticates at most once per damp window; requests
// rejected while another goroutine was already refreshing just retry with
// the cookies that refresh minted.
func (t *Transport) refreshSession(ctx context.Context) error {
	t.reauthMu.Lock()
	defer t.reauthMu.Unlock()

	if time.Since(t.lastRefresh) < refreshDamp {
		return nil
	}

	if err := t.session.refresh(ctx); err != nil {
		return err
	}

	t.lastRefresh = time.Now()
	return nil
}

// patchRequestCookies replaces cookies on the request with fresh ones from the jar.
func (t *Transport) patchRequestCookies(req *http.Request) {
	if jar := t.session.jar; jar != nil {
		req.Header.Del("Cookie")
		for _, c := range jar.Cookies(req.URL) {
			req.AddCookie(c)
		}
	}
}

func sessionHost(host string) bool {
	return host == "steamcommunity.com" || host == "store.steampowered.com"
}

// sessionRejected detects Steam discarding the session cookies: a hard 401
// or a redirect to the login page.
func sessionRejected(resp *http.Response) bool {
	if resp.StatusCode == http.StatusUnauthorized {
		return true
	}
	return resp.StatusCode == http.StatusFound &&
		strings.Contains(resp.Header.Get("Location"), "/login")
}

// retryAfter parses the Retry-After header, in whole seconds. A missing or
// unparsable header falls back to a fixed wait.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}
