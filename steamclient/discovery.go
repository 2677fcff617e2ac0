package steamclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/k64z/steamcore/protocol"
)

// CMServer represents a Steam CM server endpoint.
type CMServer struct {
	Addr string `json:"addr"` // "host:port" for TCP, "host" for WebSocket
	Type string `json:"type"` // "websockets" or "netfilter"
}

const cmListURL = "https://api.steampowered.com/ISteamDirectory/GetCMListForConnect/v1/?cellid=0"

// cacheMaxAge is how long a fetched CM list stays usable before the
// directory refreshes it.
const cacheMaxAge = 24 * time.Hour

// defaultFallbackServers is the pinned endpoint list used when discovery is
// unreachable and the cache is empty or exhausted.
var defaultFallbackServers = []CMServer{
	{Addr: "cmp1-sea1.steamserver.net:443", Type: "websockets"},
	{Addr: "cmp2-sea1.steamserver.net:443", Type: "websockets"},
	{Addr: "cmp1-lax1.steamserver.net:443", Type: "websockets"},
	{Addr: "162.254.192.108:27017", Type: "netfilter"},
	{Addr: "162.254.192.109:27018", Type: "netfilter"},
	{Addr: "162.254.196.67:27017", Type: "netfilter"},
}

// DiscoverServers fetches the CM server list from the Steam Web API.
func DiscoverServers(ctx context.Context, httpClient *http.Client) ([]CMServer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cmListURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return parseCMList(body)
}

type cmListResponse struct {
	Response struct {
		ServerList []struct {
			Endpoint string `json:"endpoint"`
			Type     string `json:"type"`
		} `json:"serverlist"`
	} `json:"response"`
}

func parseCMList(data []byte) ([]CMServer, error) {
	var resp cmListResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	servers := make([]CMServer, 0, len(resp.Response.ServerList))
	for _, s := range resp.Response.ServerList {
		servers = append(servers, CMServer{
			Addr: s.Endpoint,
			Type: s.Type,
		})
	}

	if len(servers) == 0 {
		return nil, fmt.Errorf("no servers in response")
	}

	return servers, nil
}

// Directory hands out CM endpoints for connection attempts. It keeps the
// fetched list (optionally persisted to a JSON cache file), ages it out
// after cacheMaxAge, skips endpoints that failed during this session, and
// falls back to a pinned list when discovery is unreachable.
type Directory struct {
	httpClient *http.Client
	logger     *slog.Logger
	cachePath  string
	fallback   []CMServer

	mu        sync.Mutex
	servers   []CMServer
	fetchedAt time.Time
	blacklist map[string]struct{}
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithDirectoryHTTPClient sets the HTTP client used for discovery fetches.
func WithDirectoryHTTPClient(h *http.Client) DirectoryOption {
	return func(d *Directory) { d.httpClient = h }
}

// WithDirectoryLogger sets the structured logger.
func WithDirectoryLogger(l *slog.Logger) DirectoryOption {
	return func(d *Directory) { d.logger = l }
}

// WithCachePath persists the fetched CM list to path so later sessions can
// skip the bootstrap fetch.
func WithCachePath(path string) DirectoryOption {
	return func(d *Directory) { d.cachePath = path }
}

// WithFallbackServers replaces the pinned fallback endpoint list.
func WithFallbackServers(servers ...CMServer) DirectoryOption {
	return func(d *Directory) { d.fallback = servers }
}

// NewDirectory creates a Directory, loading the cache file when configured.
func NewDirectory(opts ...DirectoryOption) *Directory {
	d := &Directory{
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
		fallback:   defaultFallbackServers,
		blacklist:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.loadCache()
	return d
}

type directoryCache struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Servers   []CMServer `json:"servers"`
}

func (d *Directory) loadCache() {
	if d.cachePath == "" {
		return
	}
	data, err := os.ReadFile(d.cachePath)
	if err != nil {
		return
	}
	var cache directoryCache
	if err := json.Unmarshal(data, &cache); err != nil {
		d.logger.Warn("unreadable CM cache, ignoring", "path", d.cachePath, "err", err)
		return
	}
	d.servers = cache.Servers
	d.fetchedAt = cache.FetchedAt
}

func (d *Directory) saveCacheLocked() {
	if d.cachePath == "" {
		return
	}
	data, err := json.Marshal(directoryCache{FetchedAt: d.fetchedAt, Servers: d.servers})
	if err != nil {
		return
	}
	if err := os.WriteFile(d.cachePath, data, 0o600); err != nil {
		d.logger.Warn("persist CM cache", "path", d.cachePath, "err", err)
	}
}

// NextEndpoint picks an endpoint of the given type ("websockets" or
// "netfilter") for a connection attempt: uniformly among fresh, non-failed
// cache entries, refetching when the cache is stale or exhausted, and
// finally from the pinned fallback list. Returns ErrNoEndpoints when
// nothing remains.
func (d *Directory) NextEndpoint(ctx context.Context, serverType string) (CMServer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.servers) == 0 || time.Since(d.fetchedAt) > cacheMaxAge {
		d.refreshLocked(ctx)
	}

	candidates := d.candidatesLocked(serverType)
	if len(candidates) == 0 {
		// Every cached endpoint of this type failed during the session;
		// the list itself may be the problem.
		d.refreshLocked(ctx)
		candidates = d.candidatesLocked(serverType)
	}

	if len(candidates) == 0 {
		for _, s := range d.fallback {
			if s.Type != serverType {
				continue
			}
			if _, failed := d.blacklist[s.Addr]; failed {
				continue
			}
			candidates = append(candidates, s)
		}
	}

	if len(candidates) == 0 {
		return CMServer{}, ErrNoEndpoints
	}
	return candidates[rand.IntN(len(candidates))], nil
}

func (d *Directory) candidatesLocked(serverType string) []CMServer {
	var out []CMServer
	for _, s := range d.servers {
		if s.Type != serverType {
			continue
		}
		if _, failed := d.blacklist[s.Addr]; failed {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (d *Directory) refreshLocked(ctx context.Context) {
	servers, err := DiscoverServers(ctx, d.httpClient)
	if err != nil {
		d.logger.Warn("CM discovery failed", "err", err)
		return
	}
	d.servers = servers
	d.fetchedAt = time.Now()
	d.saveCacheLocked()
	d.logger.Debug("CM list refreshed", "servers", len(servers))
}

// MarkFailed blacklists an endpoint for the rest of this session.
func (d *Directory) MarkFailed(server CMServer) {
	d.mu.Lock()
	d.blacklist[server.Addr] = struct{}{}
	d.mu.Unlock()
}

// ClearBlacklist forgets session failures, typically after a successful
// logon proves the network is healthy again.
func (d *Directory) ClearBlacklist() {
	d.mu.Lock()
	d.blacklist = make(map[string]struct{})
	d.mu.Unlock()
}

// UpdateFromCMList refreshes the directory from a ClientCMList push. The
// server sends these after logon with a current view of nearby endpoints.
func (d *Directory) UpdateFromCMList(msg *protocol.CMsgClientCMList) {
	addrs := msg.GetCmAddresses()
	ports := msg.GetCmPorts()

	var servers []CMServer
	for _, ws := range msg.GetCmWebsocketAddresses() {
		servers = append(servers, CMServer{Addr: ws, Type: "websockets"})
	}
	for i, addr := range addrs {
		if i >= len(ports) {
			break
		}
		servers = append(servers, CMServer{
			Addr: fmt.Sprintf("%d.%d.%d.%d:%d", byte(addr>>24), byte(addr>>16), byte(addr>>8), byte(addr), ports[i]),
			Type: "netfilter",
		})
	}

	if len(servers) == 0 {
		return
	}

	d.mu.Lock()
	d.servers = servers
	d.fetchedAt = time.Now()
	d.saveCacheLocked()
	d.mu.Unlock()
}
