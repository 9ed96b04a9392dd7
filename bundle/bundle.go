// Package bundle implements the V1 outer MessagePack container
// (component C4): a named-field wrapper around a list of byte
// strings, plus the legacy signed/unsigned byte-width fallback that
// lets a modern decoder still read bundles historical peers emitted.
package bundle

import (
	"fmt"

	"github.com/tenzoki/agen/a2a/codecerr"
	"github.com/vmihailenco/msgpack/v5"
)

// Bundled is a one-element list on outbound paths, except the V1
// agent-forwarding path, which gathers a whole message list (see Of);
// inbound responses may carry more than one element.
type Bundled[T any] struct {
	Items []T `msgpack:"bundled" json:"bundled"`
}

// Create wraps item as a single-element bundle.
func Create[T any](item T) Bundled[T] {
	return Bundled[T]{Items: []T{item}}
}

// Of wraps items as-is, for the agent-forwarding path where a whole
// list of encoded messages is gathered into one bundle.
func Of[T any](items []T) Bundled[T] {
	return Bundled[T]{Items: items}
}

// Encode MessagePack-encodes b with named fields. Any encoding failure
// is reported as codecerr.ErrInvalidMsgpack.
//
// For T=[]byte (the type used on every production path), a plain
// msgpack.Marshal would let the library's bin-type inference take
// over and encode each element as a MessagePack "bin" blob rather than
// an array of small integers. The legacy peers this bundle format
// exists to stay compatible with serialize Vec<u8>/Vec<i8> as plain
// integer arrays, with no bin framing, so Encode always writes that
// shape explicitly via u8Array instead of handing []byte straight to
// the encoder.
func (b Bundled[T]) Encode() ([]byte, error) {
	var data []byte
	var err error
	if items, ok := any(b.Items).([][]byte); ok {
		rows := make([]u8Array, len(items))
		for i, row := range items {
			rows[i] = u8Array(row)
		}
		data, err = msgpack.Marshal(struct {
			Bundled []u8Array `msgpack:"bundled"`
		}{Bundled: rows})
	} else {
		data, err = msgpack.Marshal(b)
	}
	if err != nil {
		return nil, fmt.Errorf("bundle: %w: %w", codecerr.ErrInvalidMsgpack, err)
	}
	return data, nil
}

// u8Array forces a []byte to encode as a MessagePack array of uint8
// elements instead of letting vmihailenco/msgpack infer the "bin"
// family for a native []byte, matching the legacy plain-integer-array
// wire shape described on Encode.
type u8Array []byte

func (a u8Array) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(len(a)); err != nil {
		return err
	}
	for _, b := range a {
		if err := enc.EncodeUint8(b); err != nil {
			return err
		}
	}
	return nil
}

// ToU8 bitwise-reinterprets a signed byte sequence as unsigned, modulo
// 256 (Go's int8→byte conversion already performs this reinterpretation).
func ToU8(signed []int8) []byte {
	out := make([]byte, len(signed))
	for i, v := range signed {
		out[i] = byte(v)
	}
	return out
}

// ToI8 bitwise-reinterprets an unsigned byte sequence as signed, modulo 256.
func ToI8(unsigned []byte) []int8 {
	out := make([]int8, len(unsigned))
	for i, v := range unsigned {
		out[i] = int8(v)
	}
	return out
}

// decodedRows is the generic shape of a decoded "{bundled: [[n, n, ...], ...]}"
// MessagePack map, before any signed/unsigned interpretation is applied:
// msgpack's generic integer decode does not itself distinguish the int8
// and uint8 wire markers beyond the literal value each produces.
type decodedRows struct {
	Bundled []interface{} `msgpack:"bundled"`
}

// FromBytes decodes a Bundled<list<byte>> from data, tolerating both
// historical signed-byte ("i8") and current unsigned-byte ("u8")
// element encodings: peers predating this codec emitted MessagePack
// arrays built against a signed Vec<i8>, so any byte ≥ 128 appears on
// the wire as a negative integer; current peers emit it as the literal
// 128-255 value. FromBytes accepts either by validating every decoded
// integer falls in the union of both ranges ([-128, 255]) and then
// reinterpreting it to an unsigned byte, which is exactly what trying
// the i8 form first and falling back to u8 achieves, collapsed into a
// single pass. An empty bundle decodes to an empty element list.
func FromBytes(data []byte) (Bundled[[]byte], error) {
	var rows decodedRows
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return Bundled[[]byte]{}, fmt.Errorf("bundle: %w: %w", codecerr.ErrInvalidMsgpack, err)
	}

	items := make([][]byte, len(rows.Bundled))
	for i, raw := range rows.Bundled {
		// A row normally decodes as []interface{} (a plain integer
		// array, the legacy and current wire shape Encode writes). A
		// []byte row is also accepted directly in case the bundle was
		// produced by a bin-typed encoder instead.
		if asBytes, ok := raw.([]byte); ok {
			items[i] = append([]byte(nil), asBytes...)
			continue
		}
		elems, ok := raw.([]interface{})
		if !ok {
			return Bundled[[]byte]{}, fmt.Errorf("bundle: %w: element %d is not an array", codecerr.ErrInvalidMsgpack, i)
		}
		row := make([]byte, len(elems))
		for j, v := range elems {
			n, ok := asInt64(v)
			if !ok || n < -128 || n > 255 {
				return Bundled[[]byte]{}, fmt.Errorf("bundle: %w: element %d[%d] is not a valid byte value", codecerr.ErrInvalidMsgpack, i, j)
			}
			row[j] = byte(n)
		}
		items[i] = row
	}
	return Bundled[[]byte]{Items: items}, nil
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	default:
		return 0, false
	}
}
