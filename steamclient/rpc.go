package steamclient

import (
	"context"
	"fmt"

	"github.com/k64z/steamcore/protocol"
	"google.golang.org/protobuf/proto"
)

// expectJobID registers a one-shot slot for a reply matched by its target
// job ID. Matching happens in handlePacket under the mutex.
func (c *Client) expectJobID(jobID uint64) <-chan *Packet {
	ch := make(chan *Packet, 1)
	c.mu.Lock()
	if c.pendingJobs == nil {
		c.pendingJobs = make(map[uint64]chan<- *Packet)
	}
	c.pendingJobs[jobID] = ch
	c.mu.Unlock()
	return ch
}

// dropJob removes a pending slot. A reply arriving afterwards is dropped.
func (c *Client) dropJob(jobID uint64) {
	c.mu.Lock()
	delete(c.pendingJobs, jobID)
	c.mu.Unlock()
}

// Call invokes a unified service method ("Service.Method#1") and returns the
// raw reply packet. req may be nil for an empty request body.
func (c *Client) Call(ctx context.Context, method string, req protocol.Message) (*Packet, error) {
	var body []byte
	if req != nil {
		var err error
		body, err = protocol.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", method, err)
		}
	}
	return c.callServiceMethod(ctx, method, body)
}

// callServiceMethod sends a unified service method request and awaits the
// matching reply, correlated by job ID.
func (c *Client) callServiceMethod(ctx context.Context, method string, body []byte) (*Packet, error) {
	if c.callTimeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
			defer cancel()
		}
	}

	jobID := c.nextJobID.Add(1)
	responseCh := c.expectJobID(jobID)
	defer c.dropJob(jobID)

	hdr := &protocol.CMsgProtoBufHeader{
		TargetJobName: proto.String(method),
		JobidSource:   proto.Uint64(jobID),
	}
	if err := c.sendPacket(ctx, EMsgServiceMethodCallFromClient, hdr, body); err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	pkt, err := c.awaitPacket(ctx, responseCh)
	if err != nil {
		return nil, fmt.Errorf("wait for %s response: %w", method, err)
	}
	if result := protocol.EResult(pkt.Header.GetEresult()); result != protocol.EResultOK {
		return pkt, &ResultError{Method: method, Result: result}
	}
	return pkt, nil
}
