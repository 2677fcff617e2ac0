// Package protocol contains the Steam client protobuf messages exchanged on
// the CM connection and with IAuthenticationService web endpoints.
//
// The types are maintained by hand against the canonical field numbers and
// serialized with google.golang.org/protobuf/encoding/protowire. They follow
// the shape of generated code: optional scalars are pointer fields, getters
// are nil-safe, unknown fields are skipped on decode, and fields with a
// non-zero canonical default report that default when unset.
package protocol

import (
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// InvalidJobID is the sentinel value of an unset job ID field.
const InvalidJobID uint64 = 0xFFFFFFFFFFFFFFFF

// Message is implemented by every protocol message type.
type Message interface {
	appendTo(b []byte) []byte
	decodeFrom(b []byte) error
}

// Marshal serializes msg to protobuf wire format.
func Marshal(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("protocol: marshal nil message")
	}
	return msg.appendTo(nil), nil
}

// Unmarshal parses protobuf wire data into msg.
func Unmarshal(data []byte, msg Message) error {
	if msg == nil {
		return errors.New("protocol: unmarshal into nil message")
	}
	return msg.decodeFrom(data)
}

// Append helpers. One call per present field keeps appendTo bodies flat.

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	// int32 fields sign-extend to 64 bits on the wire
	return appendVarint(b, num, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendFixed32(b []byte, num protowire.Number, v uint32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, v)
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	return appendFixed32(b, num, math.Float32bits(v))
}

func appendFixed64(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg Message) []byte {
	return appendBytes(b, num, msg.appendTo(nil))
}

// Consume helpers. Each returns the decoded value and the number of bytes
// consumed; a negative count signals a protowire parse error, matching the
// protowire.Consume* convention.

func consumeVarintU32(b []byte) (*uint32, int) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, n
	}
	u := uint32(v)
	return &u, n
}

func consumeVarintU64(b []byte) (*uint64, int) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, n
	}
	return &v, n
}

func consumeVarintI32(b []byte) (*int32, int) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, n
	}
	i := int32(v)
	return &i, n
}

func consumeVarintBool(b []byte) (*bool, int) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, n
	}
	t := protowire.DecodeBool(v)
	return &t, n
}

func consumeFixed32Val(b []byte) (*uint32, int) {
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return nil, n
	}
	return &v, n
}

func consumeFloatVal(b []byte) (*float32, int) {
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return nil, n
	}
	f := math.Float32frombits(v)
	return &f, n
}

func consumeFixed64Val(b []byte) (*uint64, int) {
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return nil, n
	}
	return &v, n
}

func consumeStringVal(b []byte) (*string, int) {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return nil, n
	}
	return &v, n
}

func consumeBytesVal(b []byte) ([]byte, int) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, n
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, n
}

func consumeEnum[E ~int32](b []byte) (*E, int) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, n
	}
	e := E(int32(v))
	return &e, n
}

// consumeMessage decodes a length-delimited submessage into msg.
func consumeMessage(b []byte, msg Message) (int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if err := msg.decodeFrom(v); err != nil {
		return 0, err
	}
	return n, nil
}
