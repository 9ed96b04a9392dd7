package message

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tenzoki/agen/a2a/codecerr"
)

// StatusCode is a message's delivery/processing status as reported by
// the agency (e.g. in a Messages response's MessageDetailEnvelope
// entries). It is a closed set:
// unlike RemoteMessageType, an unrecognized code fails decode rather
// than round-tripping as an opaque value.
type StatusCode struct {
	code string
}

var (
	StatusCreated  = StatusCode{code: "MS-101"}
	StatusSent     = StatusCode{code: "MS-102"}
	StatusPending  = StatusCode{code: "MS-103"}
	StatusAccepted = StatusCode{code: "MS-104"}
	StatusRejected = StatusCode{code: "MS-105"}
	StatusReviewed = StatusCode{code: "MS-106"}
)

func (s StatusCode) Code() string   { return s.code }
func (s StatusCode) String() string { return s.code }

func (s StatusCode) MarshalText() ([]byte, error) { return []byte(s.code), nil }

func (s *StatusCode) UnmarshalText(text []byte) error {
	switch string(text) {
	case StatusCreated.code:
		*s = StatusCreated
	case StatusSent.code:
		*s = StatusSent
	case StatusPending.code:
		*s = StatusPending
	case StatusAccepted.code:
		*s = StatusAccepted
	case StatusRejected.code:
		*s = StatusRejected
	case StatusReviewed.code:
		*s = StatusReviewed
	default:
		return fmt.Errorf("message: %w: %q", codecerr.ErrUnknownStatusCode, string(text))
	}
	return nil
}

func (s StatusCode) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(s.code)
}

func (s *StatusCode) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return s.UnmarshalText([]byte(code))
}
