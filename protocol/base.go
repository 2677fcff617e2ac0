package protocol

import "google.golang.org/protobuf/encoding/protowire"

// CMsgMulti wraps a batch of CM messages, optionally gzip-compressed.
type CMsgMulti struct {
	SizeUnzipped *uint32 // 1
	MessageBody  []byte  // 2
}

func (m *CMsgMulti) GetSizeUnzipped() uint32 {
	if m != nil && m.SizeUnzipped != nil {
		return *m.SizeUnzipped
	}
	return 0
}

func (m *CMsgMulti) GetMessageBody() []byte {
	if m != nil {
		return m.MessageBody
	}
	return nil
}

func (m *CMsgMulti) appendTo(b []byte) []byte {
	if m.SizeUnzipped != nil {
		b = appendVarint(b, 1, uint64(*m.SizeUnzipped))
	}
	if m.MessageBody != nil {
		b = appendBytes(b, 2, m.MessageBody)
	}
	return b
}

func (m *CMsgMulti) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.SizeUnzipped, n = consumeVarintU32(b)
		case num == 2 && typ == protowire.BytesType:
			m.MessageBody, n = consumeBytesVal(b)
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

// CMsgClientHeartBeat keeps the CM session alive.
type CMsgClientHeartBeat struct {
	SendReply *bool // 1
}

func (m *CMsgClientHeartBeat) GetSendReply() bool {
	if m != nil && m.SendReply != nil {
		return *m.SendReply
	}
	return false
}

func (m *CMsgClientHeartBeat) appendTo(b []byte) []byte {
	if m.SendReply != nil {
		b = appendBool(b, 1, *m.SendReply)
	}
	return b
}

func (m *CMsgClientHeartBeat) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.SendReply, n = consumeVarintBool(b)
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

// CMsgClientHello announces the protocol version before logon.
type CMsgClientHello struct {
	ProtocolVersion *uint32 // 1
}

func (m *CMsgClientHello) GetProtocolVersion() uint32 {
	if m != nil && m.ProtocolVersion != nil {
		return *m.ProtocolVersion
	}
	return 0
}

func (m *CMsgClientHello) appendTo(b []byte) []byte {
	if m.ProtocolVersion != nil {
		b = appendVarint(b, 1, uint64(*m.ProtocolVersion))
	}
	return b
}

func (m *CMsgClientHello) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.ProtocolVersion, n = consumeVarintU32(b)
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

// CMsgClientLogOff announces a clean logoff. It carries no fields.
type CMsgClientLogOff struct{}

func (m *CMsgClientLogOff) appendTo(b []byte) []byte { return b }

func (m *CMsgClientLogOff) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]
		n := protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// CMsgClientLoggedOff is the server's notice that it ended the session.
type CMsgClientLoggedOff struct {
	Eresult *int32 // 1
}

func (m *CMsgClientLoggedOff) GetEresult() int32 {
	if m != nil && m.Eresult != nil {
		return *m.Eresult
	}
	return 0
}

func (m *CMsgClientLoggedOff) appendTo(b []byte) []byte {
	if m.Eresult != nil {
		b = appendInt32(b, 1, *m.Eresult)
	}
	return b
}

func (m *CMsgClientLoggedOff) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.Eresult, n = consumeVarintI32(b)
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

// CMsgClientCMList is the server push of currently recommended CM endpoints.
type CMsgClientCMList struct {
	CmAddresses               []uint32 // 1, repeated
	CmPorts                   []uint32 // 2, repeated
	CmWebsocketAddresses      []string // 3, repeated
	PercentDefaultToWebsocket *uint32  // 4
}

func (m *CMsgClientCMList) GetCmAddresses() []uint32 {
	if m != nil {
		return m.CmAddresses
	}
	return nil
}

func (m *CMsgClientCMList) GetCmPorts() []uint32 {
	if m != nil {
		return m.CmPorts
	}
	return nil
}

func (m *CMsgClientCMList) GetCmWebsocketAddresses() []string {
	if m != nil {
		return m.CmWebsocketAddresses
	}
	return nil
}

func (m *CMsgClientCMList) GetPercentDefaultToWebsocket() uint32 {
	if m != nil && m.PercentDefaultToWebsocket != nil {
		return *m.PercentDefaultToWebsocket
	}
	return 0
}

func (m *CMsgClientCMList) appendTo(b []byte) []byte {
	for _, v := range m.CmAddresses {
		b = appendVarint(b, 1, uint64(v))
	}
	for _, v := range m.CmPorts {
		b = appendVarint(b, 2, uint64(v))
	}
	for _, v := range m.CmWebsocketAddresses {
		b = appendString(b, 3, v)
	}
	if m.PercentDefaultToWebsocket != nil {
		b = appendVarint(b, 4, uint64(*m.PercentDefaultToWebsocket))
	}
	return b
}

func (m *CMsgClientCMList) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, nn := protowire.ConsumeVarint(b)
			if nn < 0 {
				return protowire.ParseError(nn)
			}
			m.CmAddresses = append(m.CmAddresses, uint32(v))
			n = nn
		case num == 1 && typ == protowire.BytesType:
			packed, nn := protowire.ConsumeBytes(b)
			if nn < 0 {
				return protowire.ParseError(nn)
			}
			for len(packed) > 0 {
				v, k := protowire.ConsumeVarint(packed)
				if k < 0 {
					return protowire.ParseError(k)
				}
				m.CmAddresses = append(m.CmAddresses, uint32(v))
				packed = packed[k:]
			}
			n = nn
		case num == 2 && typ == protowire.VarintType:
			v, nn := protowire.ConsumeVarint(b)
			if nn < 0 {
				return protowire.ParseError(nn)
			}
			m.CmPorts = append(m.CmPorts, uint32(v))
			n = nn
		case num == 2 && typ == protowire.BytesType:
			packed, nn := protowire.ConsumeBytes(b)
			if nn < 0 {
				return protowire.ParseError(nn)
			}
			for len(packed) > 0 {
				v, k := protowire.ConsumeVarint(packed)
				if k < 0 {
					return protowire.ParseError(k)
				}
				m.CmPorts = append(m.CmPorts, uint32(v))
				packed = packed[k:]
			}
			n = nn
		case num == 3 && typ == protowire.BytesType:
			v, nn := protowire.ConsumeString(b)
			if nn < 0 {
				return protowire.ParseError(nn)
			}
			m.CmWebsocketAddresses = append(m.CmWebsocketAddresses, v)
			n = nn
		case num == 4 && typ == protowire.VarintType:
			m.PercentDefaultToWebsocket, n = consumeVarintU32(b)
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
