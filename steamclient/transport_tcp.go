package steamclient

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"net"
	"sync"

	"github.com/k64z/steamcore/protocol"
)

const tcpMagic = 0x31305456 // "VT01"

// tcpConn implements Connection over raw TCP with VT01 framing. After the
// encryption handshake every frame payload is channel-encrypted.
type tcpConn struct {
	conn   net.Conn
	cipher *channelCipher
	mu     sync.Mutex // serializes writes
	addr   string
}

func dialTCP(ctx context.Context, addr string) (*tcpConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcp dial %s: %w", addr, err)
	}
	return &tcpConn{conn: conn, addr: addr}, nil
}

// Write sends data with VT01 framing. If the channel is encrypted, the
// payload is encrypted first.
// TCP frame: [payload_len : uint32 LE][magic "VT01" : uint32 LE][payload]
func (t *tcpConn) Write(ctx context.Context, data []byte) error {
	payload := data
	if t.cipher != nil {
		var err error
		payload, err = t.cipher.encrypt(data)
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	hdr := make([]byte, 8)
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint32(hdr[4:8], tcpMagic)

	if _, err := t.conn.Write(hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := t.conn.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Read reads one VT01-framed message. If the channel is encrypted, the
// payload is decrypted before returning.
func (t *tcpConn) Read(ctx context.Context) ([]byte, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(t.conn, hdr[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	payloadLen := binary.LittleEndian.Uint32(hdr[0:4])
	magic := binary.LittleEndian.Uint32(hdr[4:8])
	if magic != tcpMagic {
		return nil, fmt.Errorf("invalid magic: 0x%08X", magic)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(t.conn, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	if t.cipher != nil {
		decrypted, err := t.cipher.decrypt(payload)
		if err != nil {
			return nil, fmt.Errorf("decrypt: %w", err)
		}
		return decrypted, nil
	}

	return payload, nil
}

func (t *tcpConn) Close() error {
	return t.conn.Close()
}

func (t *tcpConn) RemoteAddr() string {
	return t.addr
}

// performEncryptionHandshake executes the TCP channel encryption handshake.
// The handshake messages use the basic 20-byte MsgHdr shape.
//
//  1. Receive ChannelEncryptRequest — protocol version + universe +
//     optional 16-byte challenge
//  2. Generate a 32-byte random session key
//  3. RSA-encrypt (sessionKey || challenge) with Steam's public key
//  4. Send ChannelEncryptResponse — protocol version + key size +
//     encrypted blob + CRC32
//  5. Receive ChannelEncryptResult — verify eresult == OK
func (t *tcpConn) performEncryptionHandshake(ctx context.Context) error {
	data, err := t.Read(ctx)
	if err != nil {
		return fmt.Errorf("read encrypt request: %w", err)
	}

	req, err := decodePacket(data)
	if err != nil {
		return fmt.Errorf("decode encrypt request: %w", err)
	}
	if req.EMsg != EMsgChannelEncryptRequest {
		return fmt.Errorf("expected ChannelEncryptRequest, got %s", req.EMsg)
	}
	if len(req.Body) < 8 {
		return fmt.Errorf("encrypt request body too short: %d bytes", len(req.Body))
	}

	// Body: [protocol_version : uint32][universe : uint32][challenge : 16]
	var challenge []byte
	if len(req.Body) >= 24 {
		challenge = req.Body[8:24]
	}

	sessionKey := make([]byte, 32)
	if _, err := rand.Read(sessionKey); err != nil {
		return fmt.Errorf("generate session key: %w", err)
	}

	encryptedBlob, err := rsaEncryptSessionKey(sessionKey, challenge)
	if err != nil {
		return fmt.Errorf("rsa encrypt: %w", err)
	}

	body := make([]byte, 0, 8+len(encryptedBlob)+8)
	body = binary.LittleEndian.AppendUint32(body, 1)   // protocol version
	body = binary.LittleEndian.AppendUint32(body, 128) // key size
	body = append(body, encryptedBlob...)
	body = binary.LittleEndian.AppendUint32(body, crc32.ChecksumIEEE(encryptedBlob))
	body = binary.LittleEndian.AppendUint32(body, 0) // trailing zero

	resp, err := encodePacket(&Packet{EMsg: EMsgChannelEncryptResponse, Body: body})
	if err != nil {
		return fmt.Errorf("encode encrypt response: %w", err)
	}
	if err := t.Write(ctx, resp); err != nil {
		return fmt.Errorf("send encrypt response: %w", err)
	}

	resultData, err := t.Read(ctx)
	if err != nil {
		return fmt.Errorf("read encrypt result: %w", err)
	}

	result, err := decodePacket(resultData)
	if err != nil {
		return fmt.Errorf("decode encrypt result: %w", err)
	}
	if result.EMsg != EMsgChannelEncryptResult {
		return fmt.Errorf("expected ChannelEncryptResult, got %s", result.EMsg)
	}
	if len(result.Body) < 4 {
		return fmt.Errorf("encrypt result body too short: %d bytes", len(result.Body))
	}

	if eresult := binary.LittleEndian.Uint32(result.Body[0:4]); eresult != uint32(protocol.EResultOK) {
		return fmt.Errorf("encryption handshake failed: eresult=%d", eresult)
	}

	// HMAC-derived IVs only apply when the server offered a challenge.
	t.cipher, err = newChannelCipher(sessionKey, challenge != nil)
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	return nil
}
