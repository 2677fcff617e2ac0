package steamclient

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/k64z/steamcore/protocol"
)

// DisconnectEvent describes why a session ended.
type DisconnectEvent struct {
	// Err is the underlying transport or protocol error. Nil when the server
	// ended the session with ClientLoggedOff.
	Err error
	// ServerInitiated is true when the server sent ClientLoggedOff.
	ServerInitiated bool
	// EResult is the server's reason code, meaningful only when
	// ServerInitiated is true.
	EResult int32
}

// fireDisconnect records the event and invokes OnDisconnect at most once per
// session. It runs synchronously: by the time the session is observable as
// closed the callback has already returned, so OnDisconnect always precedes
// the next OnReady.
func (c *Client) fireDisconnect(evt *DisconnectEvent) {
	c.disconnectOnce.Do(func() {
		c.mu.Lock()
		c.loggedIn = false
		c.lastDisconnect = evt
		c.mu.Unlock()
		if c.OnDisconnect != nil {
			c.runHandler("OnDisconnect", func() { c.OnDisconnect(evt) })
		}
	})
}

// takeDisconnect returns and clears the last disconnect event. Nil means the
// session was closed by Disconnect rather than a failure.
func (c *Client) takeDisconnect() *DisconnectEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	evt := c.lastDisconnect
	c.lastDisconnect = nil
	return evt
}

// Run keeps a logged-on session alive until ctx is cancelled. It dials,
// invokes the caller's logon function, and on failure reconnects with
// jittered backoff. A TryAnotherCM or ServiceUnavailable verdict blacklists
// the endpoint and retries immediately; a session displaced by a login
// elsewhere is retried once (kicking the other session) unless
// WithKickOthersOnReconnect(false) was set. Logon results that cannot
// succeed on retry (bad password, ban, rate limit, guard challenges) end
// the loop with the *LoginError.
func (c *Client) Run(ctx context.Context, logon func(context.Context) error) error {
	sleep := c.reconnectBase
	kicked := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.connectAndLogon(ctx, logon); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			var lerr *LoginError
			if errors.As(err, &lerr) {
				switch lerr.Result {
				case protocol.EResultTryAnotherCM, protocol.EResultServiceUnavailable:
					c.blacklistCurrent()
					c.Disconnect()
					c.logger.Info("server redirected, retrying immediately", "eresult", lerr.Result.String())
					continue

				case protocol.EResultLoggedInElsewhere, protocol.EResultAlreadyLoggedInElsewhere:
					c.Disconnect()
					if !c.kickOthers || kicked {
						return err
					}
					kicked = true
					c.logger.Warn("displaced by another session, logging back in")
					continue

				case protocol.EResultInvalidPassword, protocol.EResultBanned, protocol.EResultRateLimitExceeded:
					c.Disconnect()
					return err
				}
				if lerr.NeedEmailCode || lerr.NeedTwoFactorCode {
					c.Disconnect()
					return err
				}
			}

			c.Disconnect()
			c.logger.Warn("logon attempt failed", "err", err, "retry_in", sleep.Round(time.Millisecond))
		} else {
			// kicked stays set across successful logons: a second displacement
			// means another active session is kicking back, so surrender
			// rather than fight over the account.
			sleep = c.reconnectBase

			if c.OnReady != nil {
				c.runHandler("OnReady", c.OnReady)
			}

			c.mu.Lock()
			done := c.done
			c.mu.Unlock()

			select {
			case <-ctx.Done():
				c.Disconnect()
				return ctx.Err()
			case <-done:
			}

			// The session loops must be fully drained before the next attach
			// replaces their channels.
			c.wg.Wait()

			evt := c.takeDisconnect()
			if evt == nil {
				return nil // Disconnect was requested
			}

			if evt.ServerInitiated {
				result := protocol.EResult(evt.EResult)
				switch result {
				case protocol.EResultTryAnotherCM, protocol.EResultServiceUnavailable:
					c.blacklistCurrent()
					c.logger.Info("server redirected, retrying immediately", "eresult", result.String())
					continue

				case protocol.EResultLoggedInElsewhere, protocol.EResultAlreadyLoggedInElsewhere:
					if !c.kickOthers || kicked {
						return fmt.Errorf("steamclient: session displaced: %s", result)
					}
					kicked = true
					c.logger.Warn("displaced by another session, logging back in")
					continue
				}
			}

			c.logger.Warn("connection lost", "err", evt.Err, "retry_in", sleep.Round(time.Millisecond))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep = c.nextBackoff(sleep)
	}
}

// connectAndLogon dials a fresh endpoint and runs the caller's logon.
func (c *Client) connectAndLogon(ctx context.Context, logon func(context.Context) error) error {
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := logon(ctx); err != nil {
		return fmt.Errorf("logon: %w", err)
	}
	return nil
}

// blacklistCurrent strikes the current endpoint off the candidate list until
// the next successful logon.
func (c *Client) blacklistCurrent() {
	c.mu.Lock()
	server := c.currentServer
	c.mu.Unlock()
	if server.Addr != "" {
		c.directory.MarkFailed(server)
	}
}

// nextBackoff grows the retry delay with decorrelated jitter: a random
// duration in [base, prev*3], clamped to the configured ceiling.
func (c *Client) nextBackoff(prev time.Duration) time.Duration {
	hi := prev * 3
	if hi <= c.reconnectBase {
		return c.reconnectBase
	}
	d := c.reconnectBase + rand.N(hi-c.reconnectBase)
	if d > c.reconnectCap {
		return c.reconnectCap
	}
	return d
}

// Reconnect tears down any existing connection and establishes a new one.
// After Reconnect returns the caller must log on again. Most callers should
// prefer Run, which also handles logon retry policy.
func (c *Client) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	done := c.done
	c.loggedIn = false
	c.mu.Unlock()

	if done != nil {
		c.closeOnce.Do(func() { close(done) })
	}
	if conn != nil {
		conn.Close()
	}
	c.wg.Wait()

	c.cancelPending()
	c.detachSubscribers()

	return c.Connect(ctx)
}
