package steamclient

import (
	"bytes"
	"crypto/sha1"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/k64z/steamcore/protocol"
)

func TestSentryStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentry.json")

	store, err := NewSentryStore(path)
	if err != nil {
		t.Fatalf("NewSentryStore: %v", err)
	}
	if got := store.Hash("tester"); got != nil {
		t.Errorf("Hash on empty store = %x, want nil", got)
	}

	hash := bytes.Repeat([]byte{0x5A}, 20)
	if err := store.Put("tester", hash); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got := store.Hash("tester"); !bytes.Equal(got, hash) {
		t.Errorf("Hash = %x, want %x", got, hash)
	}

	// A second store opened on the same file sees the persisted hash.
	reopened, err := NewSentryStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Hash("tester"); !bytes.Equal(got, hash) {
		t.Errorf("reopened Hash = %x, want %x", got, hash)
	}
	if got := reopened.Hash("other"); got != nil {
		t.Errorf("Hash for unknown account = %x, want nil", got)
	}
}

func TestHandleMachineAuth(t *testing.T) {
	store, err := NewSentryStore(filepath.Join(t.TempDir(), "sentry.json"))
	if err != nil {
		t.Fatalf("NewSentryStore: %v", err)
	}

	c, conn := newTestClient(t, WithSentryStore(store))
	c.mu.Lock()
	c.accountName = "tester"
	c.mu.Unlock()

	sentryData := bytes.Repeat([]byte{0xC3}, 2048)
	body, err := protocol.Marshal(&protocol.CMsgClientUpdateMachineAuth{
		Filename: proto.String("sentry.bin"),
		Offset:   proto.Uint32(0),
		Bytes:    sentryData,
	})
	if err != nil {
		t.Fatalf("marshal UpdateMachineAuth: %v", err)
	}

	conn.deliver(&Packet{
		EMsg:    EMsgClientUpdateMachineAuth,
		IsProto: true,
		Header:  &protocol.CMsgProtoBufHeader{JobidSource: proto.Uint64(123)},
		Body:    body,
	})

	var resp *Packet
	deadline := time.After(2 * time.Second)
	for resp == nil {
		select {
		case data := <-conn.sent:
			pkt, err := decodePacket(data)
			if err != nil {
				t.Fatalf("decode outbound frame: %v", err)
			}
			if pkt.EMsg == EMsgClientUpdateMachineAuthResponse {
				resp = pkt
			}
		case <-deadline:
			t.Fatal("no machine auth response sent")
		}
	}

	// The ack targets the request's source job.
	if got := resp.Header.GetJobidTarget(); got != 123 {
		t.Errorf("JobidTarget = %d, want 123", got)
	}

	var ack protocol.CMsgClientUpdateMachineAuthResponse
	if err := protocol.Unmarshal(resp.Body, &ack); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	want := sha1.Sum(sentryData)
	if !bytes.Equal(ack.ShaFile, want[:]) {
		t.Errorf("ShaFile = %x, want %x", ack.ShaFile, want)
	}
	if ack.Eresult == nil || protocol.EResult(*ack.Eresult) != protocol.EResultOK {
		t.Error("ack eresult must be OK")
	}
	if ack.Cubwrote == nil || *ack.Cubwrote != uint32(len(sentryData)) {
		t.Error("ack must report the written byte count")
	}
	if ack.Filename == nil || *ack.Filename != "sentry.bin" {
		t.Error("ack must echo the filename")
	}

	// The hash is now available for the next credentials logon.
	if got := store.Hash("tester"); !bytes.Equal(got, want[:]) {
		t.Errorf("stored hash = %x, want %x", got, want)
	}
}
