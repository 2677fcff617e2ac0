package steamclient

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/k64z/steamcore/protocol"
	"google.golang.org/protobuf/proto"
)

// SentryStore persists machine-auth (sentry) hashes per account name in a
// JSON file. Safe for concurrent use.
type SentryStore struct {
	path string

	mu     sync.Mutex
	hashes map[string]string // account name -> hex SHA-1
}

// NewSentryStore opens the sentry hash store at path, creating an empty one
// if the file does not exist yet.
func NewSentryStore(path string) (*SentryStore, error) {
	s := &SentryStore{
		path:   path,
		hashes: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sentry store: %w", err)
	}
	if err := json.Unmarshal(data, &s.hashes); err != nil {
		return nil, fmt.Errorf("parse sentry store: %w", err)
	}
	return s, nil
}

// Hash returns the stored sentry hash for the account, or nil if none is known.
func (s *SentryStore) Hash(account string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, ok := s.hashes[account]
	if !ok {
		return nil
	}
	hash, err := hex.DecodeString(encoded)
	if err != nil {
		return nil
	}
	return hash
}

// Put records the sentry hash for the account and persists the store.
func (s *SentryStore) Put(account string, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hashes[account] = hex.EncodeToString(hash)

	data, err := json.MarshalIndent(s.hashes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sentry store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write sentry store: %w", err)
	}
	return nil
}

// handleMachineAuth persists a pushed sentry file and acknowledges it. The
// next credentials logon presents the stored hash instead of a guard code.
func (c *Client) handleMachineAuth(pkt *Packet) {
	if c.sentry == nil {
		return
	}

	var req protocol.CMsgClientUpdateMachineAuth
	if err := protocol.Unmarshal(pkt.Body, &req); err != nil {
		c.logger.Error("unmarshal UpdateMachineAuth", "err", err)
		return
	}

	sum := sha1.Sum(req.GetBytes())

	c.mu.Lock()
	account := c.accountName
	c.mu.Unlock()

	if err := c.sentry.Put(account, sum[:]); err != nil {
		c.logger.Error("persist sentry hash", "err", err)
		return
	}

	resp := &protocol.CMsgClientUpdateMachineAuthResponse{
		Eresult:  proto.Uint32(uint32(protocol.EResultOK)),
		ShaFile:  sum[:],
		Offset:   proto.Uint32(req.GetOffset()),
		Cubwrote: proto.Uint32(uint32(len(req.GetBytes()))),
	}
	if name := req.GetFilename(); name != "" {
		resp.Filename = &name
	}

	body, err := protocol.Marshal(resp)
	if err != nil {
		c.logger.Error("marshal UpdateMachineAuthResponse", "err", err)
		return
	}

	// The ack is a job reply: target the request's source job ID.
	hdr := &protocol.CMsgProtoBufHeader{}
	if src := pkt.Header.GetJobidSource(); src != protocol.InvalidJobID {
		hdr.JobidTarget = proto.Uint64(src)
	}

	if err := c.sendPacket(context.Background(), EMsgClientUpdateMachineAuthResponse, hdr, body); err != nil {
		c.logger.Error("send UpdateMachineAuthResponse", "err", err)
		return
	}

	c.logger.Info("sentry file updated", "account", account, "size", len(req.GetBytes()))
}
