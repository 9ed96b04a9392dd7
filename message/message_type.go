package message

import (
	"encoding/json"
	"fmt"

	"github.com/tenzoki/agen/a2a/codecerr"
	"github.com/tenzoki/agen/a2a/settings"
	"github.com/vmihailenco/msgpack/v5"
)

// MessageTypeV1 is the "@type" shape used on the wire when
// settings.V1 is active: a bare message wire name plus version, e.g.
// {"name":"FWD","ver":"1.0"}.
type MessageTypeV1 struct {
	Name string `json:"name" msgpack:"name"`
	Ver  string `json:"ver" msgpack:"ver"`
}

// MessageTypeV2 is the "@type" shape used on the wire when settings.V2
// is active: a DID-family-version-type tuple, each part in its own
// field, e.g.
// {"did":"did:sov:123456789abcdefghi1234","family":"routing","version":"1.0","type":"FWD"}.
type MessageTypeV2 struct {
	DID     string `json:"did" msgpack:"did"`
	Family  string `json:"family" msgpack:"family"`
	Version string `json:"version" msgpack:"version"`
	Type    string `json:"type" msgpack:"type"`
}

// messageTypeDID is the fixed DID every V2 message type is qualified
// under, matching the single sovrin DID the original agency protocol
// used for every family.
const messageTypeDID = "did:sov:123456789abcdefghi1234"

// BuildV1 constructs the bare V1 "@type" value for kind, for the
// version-pinned structs (e.g. ForwardV1, CreateMessage) that embed
// MessageTypeV1 directly rather than the MessageTypeUnion.
func BuildV1(k Kind) MessageTypeV1 {
	return MessageTypeV1{Name: k.wireName(), Ver: k.family().Version()}
}

// BuildV2 constructs the bare V2 "@type" value for kind, for the
// version-pinned structs (e.g. ForwardV2, SendRemoteMessage) that
// embed MessageTypeV2 directly.
func BuildV2(k Kind) MessageTypeV2 {
	f := k.family()
	return MessageTypeV2{
		DID:     messageTypeDID,
		Family:  f.Name(),
		Version: f.Version(),
		Type:    k.wireName(),
	}
}

// MessageTypeUnion is the "@type" field type for message kinds shared
// between V1 and V2 (Connect, CreateKey, UpdateConfigs, and so on):
// exactly one of V1 or V2 is set, chosen by which protocol version
// built the message. It mirrors the original codec's MessageTypes
// enum, which wraps either shape behind a single untagged field.
type MessageTypeUnion struct {
	V1 *MessageTypeV1
	V2 *MessageTypeV2
}

// Build constructs the "@type" value for kind under the given protocol
// version. This is the registry spec.md §4.2 calls "total over the
// closed kind set": every Kind has a (family, wire_name) pair, so Build
// never fails for a valid Kind.
func Build(version settings.Version, k Kind) MessageTypeUnion {
	switch version {
	case settings.V2:
		v2 := BuildV2(k)
		return MessageTypeUnion{V2: &v2}
	default:
		v1 := BuildV1(k)
		return MessageTypeUnion{V1: &v1}
	}
}

func (mt MessageTypeUnion) MarshalJSON() ([]byte, error) {
	switch {
	case mt.V2 != nil:
		return json.Marshal(mt.V2)
	case mt.V1 != nil:
		return json.Marshal(mt.V1)
	default:
		return nil, fmt.Errorf("message: empty MessageTypeUnion has no wire representation")
	}
}

func (mt *MessageTypeUnion) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("message: malformed @type value: %w", err)
	}
	if _, ok := probe["type"]; ok {
		var v2 MessageTypeV2
		if err := json.Unmarshal(data, &v2); err != nil {
			return fmt.Errorf("message: malformed v2 @type value: %w", err)
		}
		mt.V2, mt.V1 = &v2, nil
		return nil
	}
	if _, ok := probe["name"]; ok {
		var v1 MessageTypeV1
		if err := json.Unmarshal(data, &v1); err != nil {
			return fmt.Errorf("message: malformed v1 @type value: %w", err)
		}
		mt.V1, mt.V2 = &v1, nil
		return nil
	}
	return fmt.Errorf("message: @type has neither \"name\" nor \"type\": %w", codecerr.ErrUnexpectedType)
}

func (mt MessageTypeUnion) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch {
	case mt.V2 != nil:
		return enc.Encode(mt.V2)
	case mt.V1 != nil:
		return enc.Encode(mt.V1)
	default:
		return fmt.Errorf("message: empty MessageTypeUnion has no wire representation")
	}
}

func (mt *MessageTypeUnion) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeMap()
	if err != nil {
		return fmt.Errorf("message: malformed @type value: %w", err)
	}
	reencoded, err := msgpack.Marshal(raw)
	if err != nil {
		return fmt.Errorf("message: failed to re-encode @type value: %w", err)
	}
	if _, ok := raw["type"]; ok {
		var v2 MessageTypeV2
		if err := msgpack.Unmarshal(reencoded, &v2); err != nil {
			return fmt.Errorf("message: malformed v2 @type value: %w", err)
		}
		mt.V2, mt.V1 = &v2, nil
		return nil
	}
	if _, ok := raw["name"]; ok {
		var v1 MessageTypeV1
		if err := msgpack.Unmarshal(reencoded, &v1); err != nil {
			return fmt.Errorf("message: malformed v1 @type value: %w", err)
		}
		mt.V1, mt.V2 = &v1, nil
		return nil
	}
	return fmt.Errorf("message: @type has neither \"name\" nor \"type\": %w", codecerr.ErrUnexpectedType)
}

// Name returns the kind's wire name regardless of which version built it.
func (mt MessageTypeUnion) Name() string {
	if mt.V2 != nil {
		return mt.V2.Type
	}
	if mt.V1 != nil {
		return mt.V1.Name
	}
	return ""
}
