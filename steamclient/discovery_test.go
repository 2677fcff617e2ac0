package steamclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k64z/steamcore/protocol"
)

func TestParseCMList(t *testing.T) {
	fixture := `{
		"response": {
			"serverlist": [
				{"endpoint": "ext1-ord1.steamserver.net:27017", "type": "netfilter"},
				{"endpoint": "ext1-ord1.steamserver.net:443", "type": "websockets"},
				{"endpoint": "ext2-iad1.steamserver.net:27017", "type": "netfilter"},
				{"endpoint": "ext2-iad1.steamserver.net:443", "type": "websockets"}
			],
			"success": true,
			"message": ""
		}
	}`

	servers, err := parseCMList([]byte(fixture))
	if err != nil {
		t.Fatalf("parseCMList: %v", err)
	}

	if len(servers) != 4 {
		t.Fatalf("expected 4 servers, got %d", len(servers))
	}

	// Check types
	wsCount := 0
	tcpCount := 0
	for _, s := range servers {
		switch s.Type {
		case "websockets":
			wsCount++
		case "netfilter":
			tcpCount++
		}
	}

	if wsCount != 2 {
		t.Errorf("expected 2 websocket servers, got %d", wsCount)
	}
	if tcpCount != 2 {
		t.Errorf("expected 2 netfilter servers, got %d", tcpCount)
	}
}

func TestParseCMListEmpty(t *testing.T) {
	fixture := `{"response": {"serverlist": []}}`

	_, err := parseCMList([]byte(fixture))
	if err == nil {
		t.Error("expected error for empty server list")
	}
}

func TestParseCMListInvalidJSON(t *testing.T) {
	_, err := parseCMList([]byte("not json"))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

// stubTransport serves every request from fn, regardless of URL.
type stubTransport struct {
	fn func(*http.Request) (*http.Response, error)
}

func (t stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.fn(req)
}

func fixtureClient(t *testing.T, fixture string, calls *int) *http.Client {
	t.Helper()
	return &http.Client{Transport: stubTransport{fn: func(*http.Request) (*http.Response, error) {
		if calls != nil {
			*calls++
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(fixture)),
			Header:     make(http.Header),
		}, nil
	}}}
}

func failingClient() *http.Client {
	return &http.Client{Transport: stubTransport{fn: func(*http.Request) (*http.Response, error) {
		return nil, errors.New("network unreachable")
	}}}
}

const directoryFixture = `{
	"response": {
		"serverlist": [
			{"endpoint": "ws1.test:443", "type": "websockets"},
			{"endpoint": "ws2.test:443", "type": "websockets"},
			{"endpoint": "10.0.0.1:27017", "type": "netfilter"}
		]
	}
}`

func TestDirectoryNextEndpoint(t *testing.T) {
	calls := 0
	d := NewDirectory(WithDirectoryHTTPClient(fixtureClient(t, directoryFixture, &calls)))

	server, err := d.NextEndpoint(context.Background(), "websockets")
	if err != nil {
		t.Fatalf("NextEndpoint: %v", err)
	}
	if server.Addr != "ws1.test:443" && server.Addr != "ws2.test:443" {
		t.Errorf("unexpected endpoint %q", server.Addr)
	}
	if calls != 1 {
		t.Errorf("expected 1 discovery fetch, got %d", calls)
	}

	// A fresh list is reused without another fetch.
	if _, err := d.NextEndpoint(context.Background(), "netfilter"); err != nil {
		t.Fatalf("NextEndpoint netfilter: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cached list reuse, got %d fetches", calls)
	}
}

func TestDirectoryBlacklistAndFallback(t *testing.T) {
	calls := 0
	d := NewDirectory(
		WithDirectoryHTTPClient(fixtureClient(t, directoryFixture, &calls)),
		WithFallbackServers(CMServer{Addr: "fallback.test:443", Type: "websockets"}),
	)

	d.MarkFailed(CMServer{Addr: "ws1.test:443", Type: "websockets"})
	d.MarkFailed(CMServer{Addr: "ws2.test:443", Type: "websockets"})

	// Every fetched endpoint is struck out: the directory refetches once,
	// then serves the pinned fallback.
	server, err := d.NextEndpoint(context.Background(), "websockets")
	if err != nil {
		t.Fatalf("NextEndpoint: %v", err)
	}
	if server.Addr != "fallback.test:443" {
		t.Errorf("expected fallback endpoint, got %q", server.Addr)
	}
	if calls < 2 {
		t.Errorf("expected a refetch after exhausting candidates, got %d fetches", calls)
	}

	d.MarkFailed(server)
	if _, err := d.NextEndpoint(context.Background(), "websockets"); !errors.Is(err, ErrNoEndpoints) {
		t.Errorf("expected ErrNoEndpoints, got %v", err)
	}

	// Clearing the blacklist restores the fetched endpoints.
	d.ClearBlacklist()
	if _, err := d.NextEndpoint(context.Background(), "websockets"); err != nil {
		t.Errorf("NextEndpoint after ClearBlacklist: %v", err)
	}
}

func TestDirectoryCachePersistence(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cmlist.json")

	first := NewDirectory(
		WithDirectoryHTTPClient(fixtureClient(t, directoryFixture, nil)),
		WithCachePath(cachePath),
	)
	if _, err := first.NextEndpoint(context.Background(), "websockets"); err != nil {
		t.Fatalf("NextEndpoint: %v", err)
	}

	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected cache file: %v", err)
	}

	// A second directory must serve from the cache even when discovery is down.
	second := NewDirectory(
		WithDirectoryHTTPClient(failingClient()),
		WithCachePath(cachePath),
	)
	server, err := second.NextEndpoint(context.Background(), "websockets")
	if err != nil {
		t.Fatalf("NextEndpoint from cache: %v", err)
	}
	if server.Addr != "ws1.test:443" && server.Addr != "ws2.test:443" {
		t.Errorf("unexpected endpoint %q", server.Addr)
	}
}

func TestDirectoryFallbackWhenDiscoveryDown(t *testing.T) {
	d := NewDirectory(
		WithDirectoryHTTPClient(failingClient()),
		WithFallbackServers(
			CMServer{Addr: "fb-ws.test:443", Type: "websockets"},
			CMServer{Addr: "10.1.1.1:27017", Type: "netfilter"},
		),
	)

	server, err := d.NextEndpoint(context.Background(), "netfilter")
	if err != nil {
		t.Fatalf("NextEndpoint: %v", err)
	}
	if server.Addr != "10.1.1.1:27017" {
		t.Errorf("expected netfilter fallback, got %q", server.Addr)
	}
}

func TestDirectoryUpdateFromCMList(t *testing.T) {
	d := NewDirectory(WithDirectoryHTTPClient(failingClient()))

	msg := &protocol.CMsgClientCMList{
		CmAddresses:          []uint32{0x7F000001}, // 127.0.0.1, big-endian
		CmPorts:              []uint32{27017},
		CmWebsocketAddresses: []string{"pushed.test:443"},
	}
	d.UpdateFromCMList(msg)

	server, err := d.NextEndpoint(context.Background(), "netfilter")
	if err != nil {
		t.Fatalf("NextEndpoint: %v", err)
	}
	if server.Addr != "127.0.0.1:27017" {
		t.Errorf("netfilter addr: got %q, want 127.0.0.1:27017", server.Addr)
	}

	server, err = d.NextEndpoint(context.Background(), "websockets")
	if err != nil {
		t.Fatalf("NextEndpoint websockets: %v", err)
	}
	if server.Addr != "pushed.test:443" {
		t.Errorf("websocket addr: got %q, want pushed.test:443", server.Addr)
	}
}
