package steamclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/k64z/steamcore/protocol"
	"github.com/k64z/steamcore/steamid"
)

// TransportType selects the CM transport layer.
type TransportType int

const (
	TransportWebSocket TransportType = iota
	TransportTCP
)

// Intent flags select which typed event streams the client decodes.
// Raw packet subscriptions (Subscribe, WaitFor, OnPacket) are always live.
type Intent uint32

const (
	IntentFriends Intent = 1 << iota // friends list + chat messages
	IntentPersona                    // persona state updates
	IntentNotifications              // new-item announcements
	IntentTrades                     // trade offer count notifications

	IntentAll = IntentFriends | IntentPersona | IntentNotifications | IntentTrades
)

// sendQueueLen bounds the outbound frame queue. Senders block while it is full.
const sendQueueLen = 64

// Client manages a connection to a Steam CM server.
type Client struct {
	directory  *Directory
	transport  TransportType
	httpClient *http.Client
	logger     *slog.Logger
	intents    Intent
	sentry     *SentryStore

	reconnectBase time.Duration
	reconnectCap  time.Duration
	kickOthers    bool
	callTimeout   time.Duration

	// OnPacket is called for every decoded packet not consumed by a
	// pending job slot.
	OnPacket func(*Packet)

	// OnFriendMessage is called for incoming chat messages.
	OnFriendMessage func(*FriendMessage)

	// OnRelationship is called for friend list / relationship changes.
	OnRelationship func(*RelationshipEvent)

	// OnPersonaState is called when a friend's persona state changes.
	OnPersonaState func(*PersonaStateEvent)

	// OnTradeNotification is called when the pending trade offer count changes.
	OnTradeNotification func(*TradeNotification)

	// OnItemNotification is called when new inventory items arrive.
	OnItemNotification func(*ItemNotification)

	// OnDisconnect is called when the connection drops unexpectedly. It runs
	// on a session goroutine: return promptly and do not call lifecycle
	// methods from it. Use Run for automatic reconnects.
	OnDisconnect func(*DisconnectEvent)

	// OnReady is called by Run after every successful logon, strictly after
	// the preceding OnDisconnect.
	OnReady func()

	// dialer opens a transport connection to a CM endpoint. Set by New;
	// replaceable in tests.
	dialer func(ctx context.Context, server CMServer) (Connection, error)

	conn          Connection
	currentServer CMServer
	steamID       steamid.SteamID
	sessionID     int32
	accountName   string
	webNonce      string

	nextJobID   atomic.Uint64
	pendingJobs map[uint64]chan<- *Packet // protected by mu

	subMu sync.Mutex
	subs  map[EMsg][]*Subscription

	sendq    chan []byte
	lastRecv atomic.Int64 // unix nanos of the last inbound frame

	mu             sync.Mutex
	done           chan struct{} // closed on session teardown
	wg             sync.WaitGroup
	loggedIn       bool
	lastDisconnect *DisconnectEvent
	closeOnce      sync.Once
	disconnectOnce sync.Once
}

type config struct {
	transport           TransportType
	httpClient          *http.Client
	logger              *slog.Logger
	directory           *Directory
	intents             Intent
	sentry              *SentryStore
	reconnectBase       time.Duration
	reconnectCap        time.Duration
	kickOthers          bool
	callTimeout         time.Duration
	onPacket            func(*Packet)
	onFriendMsg         func(*FriendMessage)
	onRelationship      func(*RelationshipEvent)
	onPersonaState      func(*PersonaStateEvent)
	onTradeNotification func(*TradeNotification)
	onItemNotification  func(*ItemNotification)
	onDisconnect        func(*DisconnectEvent)
	onReady             func()
}

// Option configures a Client.
type Option func(*config)

// WithTransport sets the transport type (WebSocket or TCP).
func WithTransport(t TransportType) Option {
	return func(c *config) { c.transport = t }
}

// WithHTTPClient sets the HTTP client used for server discovery.
func WithHTTPClient(h *http.Client) Option {
	return func(c *config) { c.httpClient = h }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDirectory sets a shared endpoint directory. By default the client
// builds its own without a cache file.
func WithDirectory(d *Directory) Option {
	return func(c *config) { c.directory = d }
}

// WithIntents selects which typed event streams are decoded.
func WithIntents(i Intent) Option {
	return func(c *config) { c.intents = i }
}

// WithSentryStore enables machine-auth handling backed by the given store.
func WithSentryStore(s *SentryStore) Option {
	return func(c *config) { c.sentry = s }
}

// WithCallTimeout sets the default deadline for Call when the caller's
// context has none.
func WithCallTimeout(d time.Duration) Option {
	return func(c *config) { c.callTimeout = d }
}

// WithPacketHandler sets a callback for packets not consumed by job slots.
func WithPacketHandler(fn func(*Packet)) Option {
	return func(c *config) { c.onPacket = fn }
}

// WithFriendMessageHandler sets a callback for incoming friend chat messages.
func WithFriendMessageHandler(fn func(*FriendMessage)) Option {
	return func(c *config) { c.onFriendMsg = fn }
}

// WithRelationshipHandler sets a callback for friend list / relationship changes.
func WithRelationshipHandler(fn func(*RelationshipEvent)) Option {
	return func(c *config) { c.onRelationship = fn }
}

// WithPersonaStateHandler sets a callback for persona state changes.
func WithPersonaStateHandler(fn func(*PersonaStateEvent)) Option {
	return func(c *config) { c.onPersonaState = fn }
}

// WithTradeNotificationHandler sets a callback for trade offer count changes.
func WithTradeNotificationHandler(fn func(*TradeNotification)) Option {
	return func(c *config) { c.onTradeNotification = fn }
}

// WithItemNotificationHandler sets a callback for new-item announcements.
func WithItemNotificationHandler(fn func(*ItemNotification)) Option {
	return func(c *config) { c.onItemNotification = fn }
}

// WithDisconnectHandler sets a callback for unexpected disconnects.
func WithDisconnectHandler(fn func(*DisconnectEvent)) Option {
	return func(c *config) { c.onDisconnect = fn }
}

// WithReadyHandler sets a callback Run invokes after each successful logon.
func WithReadyHandler(fn func()) Option {
	return func(c *config) { c.onReady = fn }
}

// WithReconnectBackoff sets the reconnect backoff bounds used by Run.
func WithReconnectBackoff(base, ceiling time.Duration) Option {
	return func(c *config) {
		c.reconnectBase = base
		c.reconnectCap = ceiling
	}
}

// WithKickOthersOnReconnect controls whether Run retries once after the
// session is displaced by a login elsewhere. Enabled by default.
func WithKickOthersOnReconnect(kick bool) Option {
	return func(c *config) { c.kickOthers = kick }
}

// New creates a new Steam CM client.
func New(opts ...Option) *Client {
	cfg := config{
		transport:     TransportWebSocket,
		httpClient:    http.DefaultClient,
		logger:        slog.Default(),
		intents:       IntentAll,
		reconnectBase: time.Second,
		reconnectCap:  time.Minute,
		kickOthers:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.directory == nil {
		cfg.directory = NewDirectory(
			WithDirectoryHTTPClient(cfg.httpClient),
			WithDirectoryLogger(cfg.logger),
		)
	}

	c := &Client{
		directory:           cfg.directory,
		transport:           cfg.transport,
		httpClient:          cfg.httpClient,
		logger:              cfg.logger,
		intents:             cfg.intents,
		sentry:              cfg.sentry,
		reconnectBase:       cfg.reconnectBase,
		reconnectCap:        cfg.reconnectCap,
		kickOthers:          cfg.kickOthers,
		callTimeout:         cfg.callTimeout,
		OnPacket:            cfg.onPacket,
		OnFriendMessage:     cfg.onFriendMsg,
		OnRelationship:      cfg.onRelationship,
		OnPersonaState:      cfg.onPersonaState,
		OnTradeNotification: cfg.onTradeNotification,
		OnItemNotification:  cfg.onItemNotification,
		OnDisconnect:        cfg.onDisconnect,
		OnReady:             cfg.onReady,
	}
	c.dialer = c.dialServer
	return c
}

// SteamID returns the authenticated SteamID, or zero before logon.
func (c *Client) SteamID() steamid.SteamID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steamID
}

// SessionID returns the CM session ID, or zero before logon.
func (c *Client) SessionID() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Connect picks a CM endpoint, dials it, and prepares the connection.
// For TCP this includes the encryption handshake.
func (c *Client) Connect(ctx context.Context) error {
	serverType := "websockets"
	if c.transport == TransportTCP {
		serverType = "netfilter"
	}

	server, err := c.directory.NextEndpoint(ctx, serverType)
	if err != nil {
		return err
	}

	c.logger.Info("connecting to CM server", "addr", server.Addr, "type", server.Type)

	conn, err := c.dialer(ctx, server)
	if err != nil {
		c.directory.MarkFailed(server)
		return err
	}

	c.mu.Lock()
	c.currentServer = server
	c.mu.Unlock()

	c.attach(conn)

	c.logger.Info("connected", "addr", conn.RemoteAddr())
	return nil
}

// dialServer opens a transport connection to the given endpoint. For TCP
// this includes the channel encryption handshake.
func (c *Client) dialServer(ctx context.Context, server CMServer) (Connection, error) {
	switch c.transport {
	case TransportTCP:
		tcp, err := dialTCP(ctx, server.Addr)
		if err != nil {
			return nil, err
		}
		if err := tcp.performEncryptionHandshake(ctx); err != nil {
			tcp.Close()
			return nil, fmt.Errorf("encryption handshake: %w", err)
		}
		return tcp, nil

	default:
		return dialWebSocket(ctx, server.Addr, c.httpClient)
	}
}

// attach wires an established connection and starts the session loops.
func (c *Client) attach(conn Connection) {
	c.mu.Lock()
	c.conn = conn
	c.done = make(chan struct{})
	c.sendq = make(chan []byte, sendQueueLen)
	c.closeOnce = sync.Once{}
	c.disconnectOnce = sync.Once{}
	c.lastDisconnect = nil
	c.mu.Unlock()

	c.lastRecv.Store(time.Now().UnixNano())

	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop()
}

// Disconnect sends a best-effort ClientLogOff and closes the connection.
// No DisconnectEvent fires for a caller-initiated disconnect.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	wasLoggedIn := c.loggedIn
	sidU64 := c.steamID.ToSteamID64()
	sessionID := c.sessionID
	conn := c.conn
	done := c.done
	c.loggedIn = false
	c.mu.Unlock()

	if wasLoggedIn && conn != nil {
		// Written directly: the write loop may already be gone.
		body, _ := protocol.Marshal(&protocol.CMsgClientLogOff{})
		pkt := &Packet{
			EMsg:    EMsgClientLogOff,
			IsProto: true,
			Header: &protocol.CMsgProtoBufHeader{
				Steamid:         &sidU64,
				ClientSessionid: &sessionID,
			},
			Body: body,
		}
		if data, err := encodePacket(pkt); err == nil {
			_ = conn.Write(context.Background(), data)
		}
	}

	if done != nil {
		c.closeOnce.Do(func() { close(done) })
	}
	if conn != nil {
		conn.Close()
	}
	c.wg.Wait()

	c.cancelPending()
	c.detachSubscribers()

	c.logger.Info("disconnected")
	return nil
}

// teardown ends the session exactly once after a failure: it fires the
// disconnect event, stops the loops, and releases every waiter.
func (c *Client) teardown(evt *DisconnectEvent) {
	c.fireDisconnect(evt)

	c.mu.Lock()
	conn := c.conn
	done := c.done
	c.mu.Unlock()

	if done != nil {
		c.closeOnce.Do(func() { close(done) })
	}
	if conn != nil {
		conn.Close()
	}

	c.cancelPending()
	c.detachSubscribers()
}

// cancelPending drops all outstanding job slots. Their callers observe the
// session close through c.done.
func (c *Client) cancelPending() {
	c.mu.Lock()
	c.pendingJobs = nil
	c.mu.Unlock()
}

func (c *Client) sendPacket(ctx context.Context, emsg EMsg, hdr *protocol.CMsgProtoBufHeader, body []byte) error {
	if hdr == nil {
		hdr = &protocol.CMsgProtoBufHeader{}
	}

	c.mu.Lock()
	if c.loggedIn {
		sid := c.steamID.ToSteamID64()
		sessionID := c.sessionID
		hdr.Steamid = &sid
		hdr.ClientSessionid = &sessionID
	}
	sendq, done := c.sendq, c.done
	c.mu.Unlock()

	pkt := &Packet{
		EMsg:    emsg,
		IsProto: true,
		Header:  hdr,
		Body:    body,
	}

	data, err := encodePacket(pkt)
	if err != nil {
		return fmt.Errorf("encode %s: %w", emsg, err)
	}

	return c.enqueue(ctx, sendq, done, data)
}

// enqueue hands a frame to the write loop, blocking while the queue is full.
func (c *Client) enqueue(ctx context.Context, sendq chan []byte, done <-chan struct{}, data []byte) error {
	if sendq == nil {
		return ErrDisconnected
	}
	select {
	case sendq <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return ErrDisconnected
	}
}

func (c *Client) readLoop() {
	defer c.wg.Done()

	for {
		data, err := c.conn.Read(context.Background())
		if err != nil {
			select {
			case <-c.done:
				return // expected disconnect
			default:
				if !errors.Is(err, context.Canceled) {
					c.logger.Error("read error", "err", err)
				}
				c.teardown(&DisconnectEvent{Err: err})
				return
			}
		}

		c.lastRecv.Store(time.Now().UnixNano())

		pkt, err := decodePacket(data)
		if err != nil {
			// A frame that fails to decode leaves the stream state unknown.
			c.logger.Error("malformed frame, dropping connection", "err", err)
			c.teardown(&DisconnectEvent{Err: fmt.Errorf("malformed frame: %w", err)})
			return
		}

		c.handlePacket(pkt)
	}
}

func (c *Client) writeLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.sendq:
			if err := c.conn.Write(context.Background(), data); err != nil {
				select {
				case <-c.done:
				default:
					c.logger.Error("write error", "err", err)
					c.teardown(&DisconnectEvent{Err: err})
				}
				return
			}
		}
	}
}

func (c *Client) handlePacket(pkt *Packet) {
	// EMsgMulti is unpacked recursively and never reaches handlers itself.
	if pkt.EMsg == EMsgMulti {
		var multi protocol.CMsgMulti
		if err := protocol.Unmarshal(pkt.Body, &multi); err != nil {
			c.logger.Error("unmarshal Multi", "err", err)
			return
		}

		packets, err := decodeMulti(multi.GetMessageBody(), multi.GetSizeUnzipped())
		if err != nil {
			c.logger.Error("decode Multi", "err", err)
			return
		}

		for _, sub := range packets {
			c.handlePacket(sub)
		}
		return
	}

	// A reply carrying a target job ID belongs to exactly one pending slot
	// and is never fanned out. Replies whose slot is gone (cancelled or
	// already consumed) are dropped.
	if target := pkt.Header.GetJobidTarget(); target != protocol.InvalidJobID {
		c.mu.Lock()
		ch, ok := c.pendingJobs[target]
		if ok {
			delete(c.pendingJobs, target)
		}
		c.mu.Unlock()
		if ok {
			select {
			case ch <- pkt:
			default:
			}
		} else {
			c.logger.Debug("dropped late reply", "emsg", pkt.EMsg.String(), "job", target)
		}
		return
	}

	switch pkt.EMsg {
	case EMsgClientLoggedOff:
		var logoff protocol.CMsgClientLoggedOff
		eresult := int32(protocol.EResultFail)
		if err := protocol.Unmarshal(pkt.Body, &logoff); err == nil {
			eresult = logoff.GetEresult()
		}
		c.logger.Warn("logged off by server", "eresult", protocol.EResult(eresult).String())
		c.teardown(&DisconnectEvent{ServerInitiated: true, EResult: eresult})
		return

	case EMsgClientCMList:
		c.handleCMList(pkt)

	case EMsgClientUpdateMachineAuth:
		c.handleMachineAuth(pkt)

	case EMsgClientFriendsList:
		if c.intents&IntentFriends != 0 {
			c.handleFriendsList(pkt)
		}

	case EMsgClientPersonaState:
		if c.intents&IntentPersona != 0 {
			c.handlePersonaState(pkt)
		}

	case EMsgClientFriendMsgIncoming, EMsgClientFriendMsgEchoToSender:
		if c.intents&IntentFriends != 0 {
			c.handleFriendMsgIncoming(pkt)
		}

	case EMsgClientUserNotifications:
		if c.intents&IntentTrades != 0 {
			c.handleUserNotifications(pkt)
		}

	case EMsgClientItemAnnouncements:
		if c.intents&IntentNotifications != 0 {
			c.handleItemAnnouncements(pkt)
		}
	}

	c.dispatch(pkt)

	if c.OnPacket != nil {
		c.runHandler("OnPacket", func() { c.OnPacket(pkt) })
	}
}

func (c *Client) handleCMList(pkt *Packet) {
	var msg protocol.CMsgClientCMList
	if err := protocol.Unmarshal(pkt.Body, &msg); err != nil {
		c.logger.Error("unmarshal CMList", "err", err)
		return
	}
	c.directory.UpdateFromCMList(&msg)
}

// runHandler isolates a user callback; a panic is logged, not propagated.
func (c *Client) runHandler(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("handler panicked", "handler", name, "panic", r)
		}
	}()
	fn()
}

// keepaliveLoop sends heartbeats and watches for server silence. More than
// three intervals without an inbound frame drops the connection.
func (c *Client) keepaliveLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			silence := time.Since(time.Unix(0, c.lastRecv.Load()))
			if silence > 3*interval {
				c.logger.Error("server silent, dropping connection", "silence", silence.Round(time.Millisecond))
				c.teardown(&DisconnectEvent{Err: fmt.Errorf("no server frames in %v", silence.Round(time.Millisecond))})
				return
			}

			body, _ := protocol.Marshal(&protocol.CMsgClientHeartBeat{})
			if err := c.sendPacket(context.Background(), EMsgClientHeartBeat, nil, body); err != nil {
				c.logger.Error("heartbeat failed", "err", err)
				return
			}
			c.logger.Debug("heartbeat sent")
		}
	}
}
