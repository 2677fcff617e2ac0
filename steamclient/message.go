package steamclient

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/k64z/steamcore/protocol"
)

// Packet represents a decoded Steam CM message. Header is always populated;
// for non-protobuf messages it carries the fields the legacy headers hold
// (job IDs, and for the extended shape steamid/session-id).
type Packet struct {
	EMsg    EMsg
	IsProto bool
	Header  *protocol.CMsgProtoBufHeader
	Body    []byte // raw serialized protobuf body, or the legacy struct body
}

// isBasicEMsg reports whether emsg uses the bare 20-byte MsgHdr. Only the
// channel-encrypt handshake family does; every other non-protobuf message
// carries the 36-byte extended header.
func isBasicEMsg(emsg EMsg) bool {
	switch emsg {
	case EMsgChannelEncryptRequest, EMsgChannelEncryptResponse, EMsgChannelEncryptResult:
		return true
	}
	return false
}

// encodePacket serializes a Packet to the CM wire format.
//
// Protobuf shape:
//
//	[EMsg | 0x80000000 : uint32 LE][header_len : uint32 LE][CMsgProtoBufHeader][body]
//
// Basic shape (channel-encrypt family only):
//
//	[EMsg : uint32 LE][target_job_id : uint64 LE][source_job_id : uint64 LE][body]
//
// Extended shape (all other non-protobuf messages):
//
//	[EMsg : uint32 LE][header_size=36 : byte][header_version=2 : uint16 LE]
//	[target_job_id : uint64 LE][source_job_id : uint64 LE]
//	[canary=0xEF : byte][steam_id : uint64 LE][session_id : int32 LE][body]
func encodePacket(p *Packet) ([]byte, error) {
	switch {
	case p.IsProto:
		return encodeProtoPacket(p)
	case isBasicEMsg(p.EMsg):
		return encodeBasicPacket(p), nil
	default:
		return encodeExtendedPacket(p), nil
	}
}

func encodeProtoPacket(p *Packet) ([]byte, error) {
	hdr := p.Header
	if hdr == nil {
		hdr = &protocol.CMsgProtoBufHeader{}
	}

	hdrBytes, err := protocol.Marshal(hdr)
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}

	buf := make([]byte, 4+4+len(hdrBytes)+len(p.Body))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.EMsg)|ProtoMask)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(hdrBytes)))
	copy(buf[8:], hdrBytes)
	copy(buf[8+len(hdrBytes):], p.Body)
	return buf, nil
}

func encodeBasicPacket(p *Packet) []byte {
	buf := make([]byte, 0, 20+len(p.Body))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(p.EMsg))
	buf = binary.LittleEndian.AppendUint64(buf, p.Header.GetJobidTarget())
	buf = binary.LittleEndian.AppendUint64(buf, p.Header.GetJobidSource())
	return append(buf, p.Body...)
}

func encodeExtendedPacket(p *Packet) []byte {
	// headerSize counts from the header-size byte through session_id.
	const headerSize = 36

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint32(p.EMsg))
	buf.WriteByte(headerSize)
	binary.Write(buf, binary.LittleEndian, uint16(2)) // header version
	binary.Write(buf, binary.LittleEndian, p.Header.GetJobidTarget())
	binary.Write(buf, binary.LittleEndian, p.Header.GetJobidSource())
	buf.WriteByte(0xEF) // canary
	binary.Write(buf, binary.LittleEndian, p.Header.GetSteamid())
	binary.Write(buf, binary.LittleEndian, p.Header.GetClientSessionid())
	buf.Write(p.Body)
	return buf.Bytes()
}

// decodePacket deserializes raw CM wire bytes into a Packet.
func decodePacket(data []byte) (*Packet, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("packet too short: %d bytes", len(data))
	}

	rawEMsg := binary.LittleEndian.Uint32(data[0:4])
	isProto := rawEMsg&ProtoMask != 0
	emsg := EMsg(rawEMsg &^ ProtoMask)

	switch {
	case isProto:
		return decodeProtoPacket(emsg, data)
	case isBasicEMsg(emsg):
		return decodeBasicPacket(emsg, data)
	default:
		return decodeExtendedPacket(emsg, data)
	}
}

func decodeProtoPacket(emsg EMsg, data []byte) (*Packet, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("proto packet too short for header length: %d bytes", len(data))
	}

	hdrLen := binary.LittleEndian.Uint32(data[4:8])
	if uint32(len(data)) < 8+hdrLen {
		return nil, fmt.Errorf("proto packet truncated: need %d header bytes, have %d", hdrLen, len(data)-8)
	}

	hdr := &protocol.CMsgProtoBufHeader{}
	if err := protocol.Unmarshal(data[8:8+hdrLen], hdr); err != nil {
		return nil, fmt.Errorf("unmarshal header: %w", err)
	}

	return &Packet{
		EMsg:    emsg,
		IsProto: true,
		Header:  hdr,
		Body:    data[8+hdrLen:],
	}, nil
}

func decodeBasicPacket(emsg EMsg, data []byte) (*Packet, error) {
	const hdrLen = 20
	if len(data) < hdrLen {
		return nil, fmt.Errorf("basic packet too short: %d bytes", len(data))
	}

	target := binary.LittleEndian.Uint64(data[4:12])
	source := binary.LittleEndian.Uint64(data[12:20])

	return &Packet{
		EMsg: emsg,
		Header: &protocol.CMsgProtoBufHeader{
			JobidTarget: &target,
			JobidSource: &source,
		},
		Body: data[hdrLen:],
	}, nil
}

func decodeExtendedPacket(emsg EMsg, data []byte) (*Packet, error) {
	const hdrLen = 36 // fixed extended header, EMsg through session_id
	if len(data) < hdrLen {
		return nil, fmt.Errorf("extended packet too short: %d bytes", len(data))
	}

	target := binary.LittleEndian.Uint64(data[7:15])
	source := binary.LittleEndian.Uint64(data[15:23])
	steamID := binary.LittleEndian.Uint64(data[24:32])
	sessionID := int32(binary.LittleEndian.Uint32(data[32:36]))

	return &Packet{
		EMsg: emsg,
		Header: &protocol.CMsgProtoBufHeader{
			JobidTarget:     &target,
			JobidSource:     &source,
			Steamid:         &steamID,
			ClientSessionid: &sessionID,
		},
		Body: data[hdrLen:],
	}, nil
}

// decodeMulti handles EMsgMulti: optionally gzip-decompresses the body,
// then splits the concatenated [uint32 LE size][message] entries.
func decodeMulti(body []byte, sizeUnzipped uint32) ([]*Packet, error) {
	var reader io.Reader = bytes.NewReader(body)

	if sizeUnzipped > 0 {
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip open: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	var packets []*Packet
	var sizeBuf [4]byte

	for {
		_, err := io.ReadFull(reader, sizeBuf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sub-message size: %w", err)
		}

		subSize := binary.LittleEndian.Uint32(sizeBuf[:])
		subData := make([]byte, subSize)
		if _, err := io.ReadFull(reader, subData); err != nil {
			return nil, fmt.Errorf("read sub-message body: %w", err)
		}

		pkt, err := decodePacket(subData)
		if err != nil {
			return nil, fmt.Errorf("decode sub-message: %w", err)
		}
		packets = append(packets, pkt)
	}

	return packets, nil
}
