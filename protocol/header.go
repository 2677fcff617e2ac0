package protocol

import "google.golang.org/protobuf/encoding/protowire"

// CMsgProtoBufHeader is the header carried by every protobuf-framed CM
// message. Job ID fields default to InvalidJobID and eresult defaults to 2
// (Fail) when unset, matching the canonical descriptor.
type CMsgProtoBufHeader struct {
	Steamid         *uint64 // 1, fixed64
	ClientSessionid *int32  // 2
	RoutingAppid    *uint32 // 3
	JobidSource     *uint64 // 10, fixed64
	JobidTarget     *uint64 // 11, fixed64
	TargetJobName   *string // 12
	Eresult         *int32  // 13
	ErrorMessage    *string // 14
	Ip              *uint32 // 15
	TransportError  *int32  // 17
	Realm           *uint32 // 32
}

func (m *CMsgProtoBufHeader) GetSteamid() uint64 {
	if m != nil && m.Steamid != nil {
		return *m.Steamid
	}
	return 0
}

func (m *CMsgProtoBufHeader) GetClientSessionid() int32 {
	if m != nil && m.ClientSessionid != nil {
		return *m.ClientSessionid
	}
	return 0
}

func (m *CMsgProtoBufHeader) GetRoutingAppid() uint32 {
	if m != nil && m.RoutingAppid != nil {
		return *m.RoutingAppid
	}
	return 0
}

func (m *CMsgProtoBufHeader) GetJobidSource() uint64 {
	if m != nil && m.JobidSource != nil {
		return *m.JobidSource
	}
	return InvalidJobID
}

func (m *CMsgProtoBufHeader) GetJobidTarget() uint64 {
	if m != nil && m.JobidTarget != nil {
		return *m.JobidTarget
	}
	return InvalidJobID
}

func (m *CMsgProtoBufHeader) GetTargetJobName() string {
	if m != nil && m.TargetJobName != nil {
		return *m.TargetJobName
	}
	return ""
}

func (m *CMsgProtoBufHeader) GetEresult() int32 {
	if m != nil && m.Eresult != nil {
		return *m.Eresult
	}
	return 2
}

func (m *CMsgProtoBufHeader) GetErrorMessage() string {
	if m != nil && m.ErrorMessage != nil {
		return *m.ErrorMessage
	}
	return ""
}

func (m *CMsgProtoBufHeader) GetIp() uint32 {
	if m != nil && m.Ip != nil {
		return *m.Ip
	}
	return 0
}

func (m *CMsgProtoBufHeader) GetTransportError() int32 {
	if m != nil && m.TransportError != nil {
		return *m.TransportError
	}
	return 0
}

func (m *CMsgProtoBufHeader) GetRealm() uint32 {
	if m != nil && m.Realm != nil {
		return *m.Realm
	}
	return 0
}

func (m *CMsgProtoBufHeader) appendTo(b []byte) []byte {
	if m.Steamid != nil {
		b = appendFixed64(b, 1, *m.Steamid)
	}
	if m.ClientSessionid != nil {
		b = appendInt32(b, 2, *m.ClientSessionid)
	}
	if m.RoutingAppid != nil {
		b = appendVarint(b, 3, uint64(*m.RoutingAppid))
	}
	if m.JobidSource != nil {
		b = appendFixed64(b, 10, *m.JobidSource)
	}
	if m.JobidTarget != nil {
		b = appendFixed64(b, 11, *m.JobidTarget)
	}
	if m.TargetJobName != nil {
		b = appendString(b, 12, *m.TargetJobName)
	}
	if m.Eresult != nil {
		b = appendInt32(b, 13, *m.Eresult)
	}
	if m.ErrorMessage != nil {
		b = appendString(b, 14, *m.ErrorMessage)
	}
	if m.Ip != nil {
		b = appendVarint(b, 15, uint64(*m.Ip))
	}
	if m.TransportError != nil {
		b = appendInt32(b, 17, *m.TransportError)
	}
	if m.Realm != nil {
		b = appendVarint(b, 32, uint64(*m.Realm))
	}
	return b
}

func (m *CMsgProtoBufHeader) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			m.Steamid, n = consumeFixed64Val(b)
		case num == 2 && typ == protowire.VarintType:
			m.ClientSessionid, n = consumeVarintI32(b)
		case num == 3 && typ == protowire.VarintType:
			m.RoutingAppid, n = consumeVarintU32(b)
		case num == 10 && typ == protowire.Fixed64Type:
			m.JobidSource, n = consumeFixed64Val(b)
		case num == 11 && typ == protowire.Fixed64Type:
			m.JobidTarget, n = consumeFixed64Val(b)
		case num == 12 && typ == protowire.BytesType:
			m.TargetJobName, n = consumeStringVal(b)
		case num == 13 && typ == protowire.VarintType:
			m.Eresult, n = consumeVarintI32(b)
		case num == 14 && typ == protowire.BytesType:
			m.ErrorMessage, n = consumeStringVal(b)
		case num == 15 && typ == protowire.VarintType:
			m.Ip, n = consumeVarintU32(b)
		case num == 17 && typ == protowire.VarintType:
			m.TransportError, n = consumeVarintI32(b)
		case num == 32 && typ == protowire.VarintType:
			m.Realm, n = consumeVarintU32(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}
