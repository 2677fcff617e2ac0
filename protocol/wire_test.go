package protocol

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

func TestHeaderDefaults(t *testing.T) {
	var hdr CMsgProtoBufHeader

	if got := hdr.GetJobidSource(); got != InvalidJobID {
		t.Errorf("GetJobidSource() = %#x, want %#x", got, uint64(InvalidJobID))
	}
	if got := hdr.GetJobidTarget(); got != InvalidJobID {
		t.Errorf("GetJobidTarget() = %#x, want %#x", got, uint64(InvalidJobID))
	}
	if got := hdr.GetEresult(); got != 2 {
		t.Errorf("GetEresult() = %d, want 2", got)
	}
	if got := hdr.GetSteamid(); got != 0 {
		t.Errorf("GetSteamid() = %d, want 0", got)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	want := &CMsgProtoBufHeader{
		Steamid:         proto.Uint64(76561198012345678),
		ClientSessionid: proto.Int32(-1337),
		RoutingAppid:    proto.Uint32(730),
		JobidSource:     proto.Uint64(42),
		JobidTarget:     proto.Uint64(7),
		TargetJobName:   proto.String("Authentication.GenerateAccessTokenForApp#1"),
		Eresult:         proto.Int32(1),
		ErrorMessage:    proto.String(""),
		Realm:           proto.Uint32(1),
	}

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got CMsgProtoBufHeader
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.GetSteamid() != 76561198012345678 {
		t.Errorf("Steamid = %d, want 76561198012345678", got.GetSteamid())
	}
	if got.GetClientSessionid() != -1337 {
		t.Errorf("ClientSessionid = %d, want -1337", got.GetClientSessionid())
	}
	if got.GetRoutingAppid() != 730 {
		t.Errorf("RoutingAppid = %d, want 730", got.GetRoutingAppid())
	}
	if got.GetJobidSource() != 42 {
		t.Errorf("JobidSource = %d, want 42", got.GetJobidSource())
	}
	if got.GetJobidTarget() != 7 {
		t.Errorf("JobidTarget = %d, want 7", got.GetJobidTarget())
	}
	if got.GetTargetJobName() != "Authentication.GenerateAccessTokenForApp#1" {
		t.Errorf("TargetJobName = %q", got.GetTargetJobName())
	}
	if got.GetEresult() != 1 {
		t.Errorf("Eresult = %d, want 1", got.GetEresult())
	}
}

// Decoders must skip fields they do not know so that newer server payloads
// still parse.
func TestUnknownFieldsSkipped(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 999, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)
	b = protowire.AppendTag(b, 1, protowire.VarintType) // size_unzipped
	b = protowire.AppendVarint(b, 64)
	b = protowire.AppendTag(b, 998, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))
	b = protowire.AppendTag(b, 2, protowire.BytesType) // message_body
	b = protowire.AppendBytes(b, []byte{0xde, 0xad})

	var msg CMsgMulti
	if err := Unmarshal(b, &msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if msg.GetSizeUnzipped() != 64 {
		t.Errorf("SizeUnzipped = %d, want 64", msg.GetSizeUnzipped())
	}
	if len(msg.GetMessageBody()) != 2 {
		t.Errorf("MessageBody = %x, want 2 bytes", msg.GetMessageBody())
	}
}

// Steam sends repeated scalars both packed and unpacked depending on the
// emitting server; both encodings must decode.
func TestCMListPackedAndUnpacked(t *testing.T) {
	var packed []byte
	packed = protowire.AppendTag(packed, 1, protowire.BytesType)
	var elems []byte
	elems = protowire.AppendVarint(elems, 167837962)
	elems = protowire.AppendVarint(elems, 167838010)
	packed = protowire.AppendBytes(packed, elems)
	packed = protowire.AppendTag(packed, 2, protowire.VarintType)
	packed = protowire.AppendVarint(packed, 27017)

	var fromPacked CMsgClientCMList
	if err := Unmarshal(packed, &fromPacked); err != nil {
		t.Fatalf("Unmarshal packed: %v", err)
	}
	if len(fromPacked.GetCmAddresses()) != 2 {
		t.Fatalf("packed CmAddresses len = %d, want 2", len(fromPacked.GetCmAddresses()))
	}
	if fromPacked.GetCmAddresses()[1] != 167838010 {
		t.Errorf("CmAddresses[1] = %d, want 167838010", fromPacked.GetCmAddresses()[1])
	}
	if len(fromPacked.GetCmPorts()) != 1 || fromPacked.GetCmPorts()[0] != 27017 {
		t.Errorf("CmPorts = %v, want [27017]", fromPacked.GetCmPorts())
	}

	// Our own encoder emits unpacked; it must round-trip.
	want := &CMsgClientCMList{
		CmAddresses:          []uint32{1, 2, 3},
		CmPorts:              []uint32{27017, 27018, 27019},
		CmWebsocketAddresses: []string{"cmp1.steamserver.net:443", "cmp2.steamserver.net:443"},
	}
	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got CMsgClientCMList
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal unpacked: %v", err)
	}
	if len(got.GetCmAddresses()) != 3 || len(got.GetCmPorts()) != 3 {
		t.Errorf("round-trip lengths = %d/%d, want 3/3", len(got.GetCmAddresses()), len(got.GetCmPorts()))
	}
	if len(got.GetCmWebsocketAddresses()) != 2 || got.GetCmWebsocketAddresses()[0] != "cmp1.steamserver.net:443" {
		t.Errorf("CmWebsocketAddresses = %v", got.GetCmWebsocketAddresses())
	}
}

// Negative enum values are sign-extended ten-byte varints on the wire.
func TestNegativeEnumRoundTrip(t *testing.T) {
	persistence := ESessionPersistence_Invalid
	want := &CAuthentication_BeginAuthSessionViaCredentials_Request{
		AccountName: proto.String("gaben"),
		Persistence: &persistence,
	}

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got CAuthentication_BeginAuthSessionViaCredentials_Request
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Persistence == nil || *got.Persistence != ESessionPersistence_Invalid {
		t.Errorf("Persistence = %v, want %d", got.Persistence, ESessionPersistence_Invalid)
	}
	if got.AccountName == nil || *got.AccountName != "gaben" {
		t.Errorf("AccountName = %v, want gaben", got.AccountName)
	}
}

func TestFriendsListNestedRoundTrip(t *testing.T) {
	want := &CMsgClientFriendsList{
		Bincremental: proto.Bool(true),
		Friends: []*CMsgClientFriendsList_Friend{
			{Ulfriendid: proto.Uint64(76561198012345678), Efriendrelationship: proto.Uint32(3)},
			{Ulfriendid: proto.Uint64(76561198087654321), Efriendrelationship: proto.Uint32(2)},
		},
		MaxFriendCount: proto.Uint32(250),
	}

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got CMsgClientFriendsList
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !got.GetBincremental() {
		t.Error("Bincremental = false, want true")
	}
	if len(got.GetFriends()) != 2 {
		t.Fatalf("len(Friends) = %d, want 2", len(got.GetFriends()))
	}
	if got.GetFriends()[0].GetUlfriendid() != 76561198012345678 {
		t.Errorf("Friends[0].Ulfriendid = %d", got.GetFriends()[0].GetUlfriendid())
	}
	if got.GetFriends()[1].GetEfriendrelationship() != 2 {
		t.Errorf("Friends[1].Efriendrelationship = %d, want 2", got.GetFriends()[1].GetEfriendrelationship())
	}
	if got.GetMaxFriendCount() != 250 {
		t.Errorf("MaxFriendCount = %d, want 250", got.GetMaxFriendCount())
	}
}

func TestLogonResponseFixedFields(t *testing.T) {
	want := &CMsgClientLogonResponse{
		Eresult:               proto.Int32(1),
		HeartbeatSeconds:      proto.Int32(9),
		Rtime32ServerTime:     proto.Uint32(1700000000),
		ClientSuppliedSteamid: proto.Uint64(76561198020145915),
		CellId:                proto.Uint32(14),
	}

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got CMsgClientLogonResponse
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.GetEresult() != 1 {
		t.Errorf("Eresult = %d, want 1", got.GetEresult())
	}
	if got.GetHeartbeatSeconds() != 9 {
		t.Errorf("HeartbeatSeconds = %d, want 9", got.GetHeartbeatSeconds())
	}
	if got.GetRtime32ServerTime() != 1700000000 {
		t.Errorf("Rtime32ServerTime = %d, want 1700000000", got.GetRtime32ServerTime())
	}
	if got.GetClientSuppliedSteamid() != 76561198020145915 {
		t.Errorf("ClientSuppliedSteamid = %d, want 76561198020145915", got.GetClientSuppliedSteamid())
	}
}

func TestLogonResponseDefaultEresult(t *testing.T) {
	var resp CMsgClientLogonResponse
	if got := resp.GetEresult(); got != 2 {
		t.Errorf("GetEresult() on empty response = %d, want 2 (Fail)", got)
	}
}

func TestMarshalNilMessage(t *testing.T) {
	if _, err := Marshal(nil); err == nil {
		t.Error("Marshal(nil) error = nil, want non-nil")
	}
	if err := Unmarshal([]byte{0x08, 0x01}, nil); err == nil {
		t.Error("Unmarshal(nil) error = nil, want non-nil")
	}
}

func TestEResultString(t *testing.T) {
	tests := []struct {
		r    EResult
		want string
	}{
		{EResultOK, "OK"},
		{EResultFail, "Fail"},
		{EResultTryAnotherCM, "TryAnotherCM"},
		{EResultAccountLoginDeniedNeedTwoFactor, "AccountLoginDeniedNeedTwoFactor"},
		{EResult(12345), "EResult(12345)"},
	}

	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("EResult(%d).String() = %q, want %q", int32(tt.r), got, tt.want)
		}
	}
}
