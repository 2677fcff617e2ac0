package steamclient

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"net"
	"testing"

	"github.com/k64z/steamcore/protocol"
)

func TestTCPFramingWriteRead(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	tc := &tcpConn{conn: client, addr: "test"}

	payload := []byte("hello steam")

	// Write in background
	go func() {
		err := tc.Write(context.Background(), payload)
		if err != nil {
			t.Errorf("write: %v", err)
		}
	}()

	// Read the raw frame from the server side
	var hdr [8]byte
	if _, err := server.Read(hdr[:]); err != nil {
		t.Fatalf("read header: %v", err)
	}

	gotLen := binary.LittleEndian.Uint32(hdr[0:4])
	gotMagic := binary.LittleEndian.Uint32(hdr[4:8])

	if gotLen != uint32(len(payload)) {
		t.Errorf("payload length: got %d, want %d", gotLen, len(payload))
	}
	if gotMagic != tcpMagic {
		t.Errorf("magic: got 0x%08X, want 0x%08X", gotMagic, tcpMagic)
	}

	buf := make([]byte, gotLen)
	if _, err := server.Read(buf); err != nil {
		t.Fatalf("read payload: %v", err)
	}

	if string(buf) != "hello steam" {
		t.Errorf("payload: got %q, want %q", string(buf), "hello steam")
	}
}

func TestTCPFramingReadVerifiesMagic(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	tc := &tcpConn{conn: client, addr: "test"}

	// Write a frame with wrong magic
	go func() {
		hdr := make([]byte, 8)
		binary.LittleEndian.PutUint32(hdr[0:4], 4) // payload length
		binary.LittleEndian.PutUint32(hdr[4:8], 0xDEADBEEF) // wrong magic
		server.Write(hdr)
		server.Write([]byte("test"))
	}()

	_, err := tc.Read(context.Background())
	if err == nil {
		t.Error("expected error for invalid magic")
	}
}

func TestTCPFramingRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	writer := &tcpConn{conn: client, addr: "test"}
	reader := &tcpConn{conn: server, addr: "test"}

	payload := []byte("round trip test data")

	go func() {
		if err := writer.Write(context.Background(), payload); err != nil {
			t.Errorf("write: %v", err)
		}
	}()

	got, err := reader.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(got) != string(payload) {
		t.Errorf("round-trip: got %q, want %q", string(got), string(payload))
	}
}

func TestTCPEncryptedRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	key := bytes.Repeat([]byte{0x42}, 32)
	writeCipher, err := newChannelCipher(key, true)
	if err != nil {
		t.Fatalf("newChannelCipher: %v", err)
	}
	readCipher, err := newChannelCipher(key, true)
	if err != nil {
		t.Fatalf("newChannelCipher: %v", err)
	}

	writer := &tcpConn{conn: client, addr: "test", cipher: writeCipher}
	reader := &tcpConn{conn: server, addr: "test", cipher: readCipher}

	payload := []byte("secret session traffic")

	go func() {
		if err := writer.Write(context.Background(), payload); err != nil {
			t.Errorf("write: %v", err)
		}
	}()

	got, err := reader.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round-trip: got %q, want %q", got, payload)
	}
}

func TestEncryptionHandshake(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	tc := &tcpConn{conn: clientSide, addr: "test"}
	// The peer talks plain VT01 frames throughout the handshake.
	peer := &tcpConn{conn: serverSide, addr: "peer"}

	errCh := make(chan error, 1)
	go func() {
		errCh <- tc.performEncryptionHandshake(context.Background())
	}()

	ctx := context.Background()

	challenge := bytes.Repeat([]byte{0x77}, 16)
	reqBody := make([]byte, 0, 24)
	reqBody = binary.LittleEndian.AppendUint32(reqBody, 1) // protocol version
	reqBody = binary.LittleEndian.AppendUint32(reqBody, 1) // universe
	reqBody = append(reqBody, challenge...)
	reqData, err := encodePacket(&Packet{EMsg: EMsgChannelEncryptRequest, Body: reqBody})
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	if err := peer.Write(ctx, reqData); err != nil {
		t.Fatalf("send request: %v", err)
	}

	respData, err := peer.Read(ctx)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	resp, err := decodePacket(respData)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.EMsg != EMsgChannelEncryptResponse {
		t.Fatalf("EMsg = %s, want ChannelEncryptResponse", resp.EMsg)
	}
	if len(resp.Body) < 144 {
		t.Fatalf("response body %d bytes, want at least 144", len(resp.Body))
	}
	if v := binary.LittleEndian.Uint32(resp.Body[0:4]); v != 1 {
		t.Errorf("protocol version = %d, want 1", v)
	}
	if size := binary.LittleEndian.Uint32(resp.Body[4:8]); size != 128 {
		t.Errorf("key size = %d, want 128", size)
	}
	blob := resp.Body[8:136]
	if crc := binary.LittleEndian.Uint32(resp.Body[136:140]); crc != crc32.ChecksumIEEE(blob) {
		t.Error("CRC does not cover the encrypted key blob")
	}

	resultBody := binary.LittleEndian.AppendUint32(nil, uint32(protocol.EResultOK))
	resultData, err := encodePacket(&Packet{EMsg: EMsgChannelEncryptResult, Body: resultBody})
	if err != nil {
		t.Fatalf("encode result: %v", err)
	}
	if err := peer.Write(ctx, resultData); err != nil {
		t.Fatalf("send result: %v", err)
	}

	if err := <-errCh; err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if tc.cipher == nil {
		t.Fatal("cipher not installed after handshake")
	}
	if !tc.cipher.withMAC {
		t.Error("a challenge handshake must enable HMAC-derived IVs")
	}
}

func TestEncryptionHandshakeRejectsFailure(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	tc := &tcpConn{conn: clientSide, addr: "test"}
	peer := &tcpConn{conn: serverSide, addr: "peer"}

	errCh := make(chan error, 1)
	go func() {
		errCh <- tc.performEncryptionHandshake(context.Background())
	}()

	ctx := context.Background()

	reqBody := make([]byte, 8) // no challenge
	binary.LittleEndian.PutUint32(reqBody[0:4], 1)
	binary.LittleEndian.PutUint32(reqBody[4:8], 1)
	reqData, err := encodePacket(&Packet{EMsg: EMsgChannelEncryptRequest, Body: reqBody})
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	if err := peer.Write(ctx, reqData); err != nil {
		t.Fatalf("send request: %v", err)
	}

	if _, err := peer.Read(ctx); err != nil {
		t.Fatalf("read response: %v", err)
	}

	resultBody := binary.LittleEndian.AppendUint32(nil, uint32(protocol.EResultFail))
	resultData, err := encodePacket(&Packet{EMsg: EMsgChannelEncryptResult, Body: resultBody})
	if err != nil {
		t.Fatalf("encode result: %v", err)
	}
	if err := peer.Write(ctx, resultData); err != nil {
		t.Fatalf("send result: %v", err)
	}

	if err := <-errCh; err == nil {
		t.Error("expected an error for a failed handshake result")
	}
	if tc.cipher != nil {
		t.Error("cipher must not be installed after a failed handshake")
	}
}
