package steamclient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/k64z/steamcore/protocol"
)

func TestFireDisconnectCallsHandler(t *testing.T) {
	got := make(chan *DisconnectEvent, 1)
	c := New(WithLogger(testLogger()), WithDisconnectHandler(func(evt *DisconnectEvent) {
		got <- evt
	}))

	c.fireDisconnect(&DisconnectEvent{Err: context.Canceled})

	select {
	case evt := <-got:
		if evt.Err != context.Canceled {
			t.Errorf("Err = %v, want %v", evt.Err, context.Canceled)
		}
		if evt.ServerInitiated {
			t.Error("ServerInitiated should be false")
		}
	default:
		t.Fatal("OnDisconnect did not run before fireDisconnect returned")
	}
}

func TestFireDisconnectOnlyOnce(t *testing.T) {
	var mu sync.Mutex
	var count int

	c := New(WithLogger(testLogger()), WithDisconnectHandler(func(*DisconnectEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	c.fireDisconnect(&DisconnectEvent{Err: context.Canceled})
	c.fireDisconnect(&DisconnectEvent{Err: context.DeadlineExceeded})
	c.fireDisconnect(&DisconnectEvent{ServerInitiated: true})

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("OnDisconnect called %d times, want 1", count)
	}

	// The first event is the one recorded.
	if evt := c.takeDisconnect(); evt == nil || evt.Err != context.Canceled {
		t.Errorf("recorded event = %+v, want the first", evt)
	}
}

func TestFireDisconnectNilHandler(t *testing.T) {
	c := New(WithLogger(testLogger())) // no disconnect handler

	// Should not panic.
	c.fireDisconnect(&DisconnectEvent{Err: context.Canceled})
}

func TestLoggedOffFiresDisconnect(t *testing.T) {
	got := make(chan *DisconnectEvent, 1)
	c := New(WithLogger(testLogger()), WithDisconnectHandler(func(evt *DisconnectEvent) {
		got <- evt
	}))
	c.done = make(chan struct{})

	body, err := protocol.Marshal(&protocol.CMsgClientLoggedOff{
		Eresult: proto.Int32(int32(protocol.EResultLoggedInElsewhere)),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	c.handlePacket(&Packet{
		EMsg:    EMsgClientLoggedOff,
		IsProto: true,
		Header:  &protocol.CMsgProtoBufHeader{},
		Body:    body,
	})

	select {
	case evt := <-got:
		if !evt.ServerInitiated {
			t.Error("ServerInitiated should be true")
		}
		if protocol.EResult(evt.EResult) != protocol.EResultLoggedInElsewhere {
			t.Errorf("EResult = %d, want LoggedInElsewhere", evt.EResult)
		}
		if evt.Err != nil {
			t.Errorf("Err = %v, want nil", evt.Err)
		}
	default:
		t.Fatal("OnDisconnect did not run")
	}
}

func TestAwaitPacketReturnsOnDone(t *testing.T) {
	c := New(WithLogger(testLogger()))
	c.done = make(chan struct{})
	close(c.done) // simulate disconnect

	pkt, err := c.awaitPacket(context.Background(), make(chan *Packet, 1))
	if pkt != nil {
		t.Errorf("pkt = %v, want nil", pkt)
	}
	if !errors.Is(err, ErrDisconnected) {
		t.Errorf("err = %v, want %v", err, ErrDisconnected)
	}
}

func TestNextBackoffBounds(t *testing.T) {
	base, ceiling := time.Second, time.Minute
	c := New(WithLogger(testLogger()), WithReconnectBackoff(base, ceiling))

	prev := base
	for i := 0; i < 100; i++ {
		next := c.nextBackoff(prev)
		if next < base || next > ceiling {
			t.Fatalf("iteration %d: backoff %v outside [%v, %v]", i, next, base, ceiling)
		}
		if hi := prev * 3; hi > base && next != ceiling && next >= hi {
			t.Fatalf("iteration %d: backoff %v not below 3*prev (%v)", i, next, hi)
		}
		prev = next
	}
}

// runHarness wires a client whose dials hand out fakeConns without touching
// the network. Each dialed conn and endpoint lands on the channels.
type runHarness struct {
	client *Client
	conns  chan *fakeConn
	addrs  chan string
	events chan string
}

func newRunHarness(t *testing.T, fallback ...CMServer) *runHarness {
	t.Helper()

	if len(fallback) == 0 {
		fallback = []CMServer{{Addr: "cm1.test:443", Type: "websockets"}}
	}
	dir := NewDirectory(
		WithDirectoryHTTPClient(failingClient()),
		WithDirectoryLogger(testLogger()),
		WithFallbackServers(fallback...),
	)

	h := &runHarness{
		conns:  make(chan *fakeConn, 8),
		addrs:  make(chan string, 8),
		events: make(chan string, 16),
	}
	h.client = New(
		WithLogger(testLogger()),
		WithDirectory(dir),
		WithReconnectBackoff(time.Millisecond, 10*time.Millisecond),
		WithReadyHandler(func() { h.events <- "ready" }),
		WithDisconnectHandler(func(*DisconnectEvent) { h.events <- "disconnect" }),
	)
	h.client.dialer = func(ctx context.Context, server CMServer) (Connection, error) {
		conn := newFakeConn()
		h.conns <- conn
		h.addrs <- server.Addr
		return conn, nil
	}
	return h
}

func (h *runHarness) waitEvent(t *testing.T, want string) {
	t.Helper()
	select {
	case got := <-h.events:
		if got != want {
			t.Fatalf("event = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func deliverLoggedOff(conn *fakeConn, result protocol.EResult) {
	body, err := protocol.Marshal(&protocol.CMsgClientLoggedOff{
		Eresult: proto.Int32(int32(result)),
	})
	if err != nil {
		panic("marshal LoggedOff: " + err.Error())
	}
	conn.deliver(&Packet{
		EMsg:    EMsgClientLoggedOff,
		IsProto: true,
		Header:  &protocol.CMsgProtoBufHeader{},
		Body:    body,
	})
}

func TestRunCleanShutdown(t *testing.T) {
	h := newRunHarness(t)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.client.Run(context.Background(), func(context.Context) error { return nil })
	}()

	h.waitEvent(t, "ready")
	<-h.conns

	if err := h.client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run = %v, want nil after Disconnect", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Disconnect")
	}
}

func TestRunReconnectsAfterConnectionLoss(t *testing.T) {
	h := newRunHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.client.Run(ctx, func(context.Context) error { return nil })
	}()

	h.waitEvent(t, "ready")
	conn1 := <-h.conns

	// Kill the transport: Run must reconnect, with OnDisconnect strictly
	// before the next OnReady.
	conn1.Close()
	h.waitEvent(t, "disconnect")
	h.waitEvent(t, "ready")
	<-h.conns

	if err := h.client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunKicksOnceThenSurrenders(t *testing.T) {
	h := newRunHarness(t)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.client.Run(context.Background(), func(context.Context) error { return nil })
	}()

	h.waitEvent(t, "ready")
	conn1 := <-h.conns

	// First displacement: Run logs back in, kicking the other session.
	deliverLoggedOff(conn1, protocol.EResultLoggedInElsewhere)
	h.waitEvent(t, "disconnect")
	h.waitEvent(t, "ready")
	conn2 := <-h.conns

	// Second displacement: the other session fought back. Surrender.
	deliverLoggedOff(conn2, protocol.EResultLoggedInElsewhere)
	h.waitEvent(t, "disconnect")

	select {
	case err := <-errCh:
		if err == nil || !strings.Contains(err.Error(), "displaced") {
			t.Errorf("Run = %v, want a displacement error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not surrender after the second displacement")
	}
}

func TestRunKickDisabledSurrendersImmediately(t *testing.T) {
	h := newRunHarness(t)
	h.client.kickOthers = false

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.client.Run(context.Background(), func(context.Context) error { return nil })
	}()

	h.waitEvent(t, "ready")
	conn1 := <-h.conns

	deliverLoggedOff(conn1, protocol.EResultLoggedInElsewhere)
	h.waitEvent(t, "disconnect")

	select {
	case err := <-errCh:
		if err == nil || !strings.Contains(err.Error(), "displaced") {
			t.Errorf("Run = %v, want a displacement error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop with kicking disabled")
	}
}

func TestRunTryAnotherCMRotatesEndpoint(t *testing.T) {
	h := newRunHarness(t,
		CMServer{Addr: "cm1.test:443", Type: "websockets"},
		CMServer{Addr: "cm2.test:443", Type: "websockets"},
	)

	var attempts int
	logon := func(context.Context) error {
		attempts++
		if attempts == 1 {
			return &LoginError{Result: protocol.EResultTryAnotherCM}
		}
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.client.Run(context.Background(), logon)
	}()

	h.waitEvent(t, "ready")

	first, second := <-h.addrs, <-h.addrs
	if first == second {
		t.Errorf("redirected logon reused endpoint %q", first)
	}

	if err := h.client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunFatalLoginErrors(t *testing.T) {
	fatal := []*LoginError{
		{Result: protocol.EResultInvalidPassword},
		{Result: protocol.EResultBanned},
		{Result: protocol.EResultRateLimitExceeded},
		{Result: protocol.EResultAccountLogonDenied, NeedEmailCode: true},
		{Result: protocol.EResultAccountLoginDeniedNeedTwoFactor, NeedTwoFactorCode: true},
	}

	for _, lerr := range fatal {
		h := newRunHarness(t)

		var attempts int
		err := h.client.Run(context.Background(), func(context.Context) error {
			attempts++
			return lerr
		})

		var got *LoginError
		if !errors.As(err, &got) {
			t.Fatalf("%s: Run = %v, want *LoginError", lerr.Result, err)
		}
		if got.Result != lerr.Result {
			t.Errorf("%s: Result = %s", lerr.Result, got.Result)
		}
		if attempts != 1 {
			t.Errorf("%s: %d logon attempts, want 1", lerr.Result, attempts)
		}
	}
}

func TestRunRetriesTransientLogonFailure(t *testing.T) {
	h := newRunHarness(t)

	var attempts int
	logon := func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.client.Run(context.Background(), logon)
	}()

	h.waitEvent(t, "ready")
	if attempts != 3 {
		t.Errorf("logon attempts = %d, want 3", attempts)
	}

	if err := h.client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	h := newRunHarness(t)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.client.Run(ctx, func(context.Context) error { return nil })
	}()

	h.waitEvent(t, "ready")
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
