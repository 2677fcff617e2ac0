package steamclient

import (
	"context"
	"sync"
)

// subBuffer is the per-subscription channel depth. A subscriber that falls
// this far behind loses packets rather than stalling the read loop.
const subBuffer = 32

// Subscription delivers every packet with one EMsg to C, in wire-arrival
// order. The channel is closed when the session ends or Cancel is called.
type Subscription struct {
	C <-chan *Packet

	emsg   EMsg
	ch     chan *Packet
	client *Client
	once   sync.Once
}

// Subscribe registers for all packets with the given EMsg. Multiple
// subscriptions for one EMsg each see every matching packet.
func (c *Client) Subscribe(emsg EMsg) *Subscription {
	sub := &Subscription{
		emsg:   emsg,
		ch:     make(chan *Packet, subBuffer),
		client: c,
	}
	sub.C = sub.ch

	c.subMu.Lock()
	if c.subs == nil {
		c.subs = make(map[EMsg][]*Subscription)
	}
	c.subs[emsg] = append(c.subs[emsg], sub)
	c.subMu.Unlock()

	return sub
}

// Cancel detaches the subscription and closes its channel. Safe to call
// more than once, and after the session has already closed it.
func (s *Subscription) Cancel() {
	c := s.client

	c.subMu.Lock()
	list := c.subs[s.emsg]
	for i, sub := range list {
		if sub == s {
			c.subs[s.emsg] = append(list[:i], list[i+1:]...)
			break
		}
	}
	s.once.Do(func() { close(s.ch) })
	c.subMu.Unlock()
}

// dispatch fans a packet out to every subscription for its EMsg. Sends never
// block; a full subscriber drops the packet.
func (c *Client) dispatch(pkt *Packet) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	for _, sub := range c.subs[pkt.EMsg] {
		select {
		case sub.ch <- pkt:
		default:
			c.logger.Warn("subscriber lagging, packet dropped", "emsg", pkt.EMsg.String())
		}
	}
}

// detachSubscribers closes every subscription channel. Subscribers read the
// close as the end of the session.
func (c *Client) detachSubscribers() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	for _, list := range c.subs {
		for _, sub := range list {
			sub.once.Do(func() { close(sub.ch) })
		}
	}
	c.subs = nil
}

// WaitFor blocks until a packet with the given EMsg arrives that satisfies
// pred (nil matches everything), the context expires, or the session closes.
func (c *Client) WaitFor(ctx context.Context, emsg EMsg, pred func(*Packet) bool) (*Packet, error) {
	sub := c.Subscribe(emsg)
	defer sub.Cancel()

	for {
		select {
		case pkt, ok := <-sub.C:
			if !ok {
				return nil, ErrDisconnected
			}
			if pred == nil || pred(pkt) {
				return pkt, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// awaitPacket blocks until a packet arrives on ch, ctx expires, or the
// connection closes.
func (c *Client) awaitPacket(ctx context.Context, ch <-chan *Packet) (*Packet, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	select {
	case pkt, ok := <-ch:
		if !ok {
			return nil, ErrDisconnected
		}
		return pkt, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
		return nil, ErrDisconnected
	}
}
