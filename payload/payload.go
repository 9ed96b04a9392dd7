// Package payload implements the inner Payload envelope (component C3
// of the codec): the msg/credOffer/credReq/cred/proof/proofRequest body
// that gets encrypted under a Provider and nested inside the outer
// message pipeline (component C6, package envelope).
package payload

import (
	"encoding/json"
	"fmt"

	"github.com/tenzoki/agen/a2a/codecerr"
	"github.com/tenzoki/agen/a2a/crypto"
	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/settings"
	"github.com/vmihailenco/msgpack/v5"
)

// Kind discriminates what's inside a Payload's msg field. Unknown
// values preserve their wire string under Other, the same
// forward-compatibility posture as message.RemoteMessageType.
type Kind struct {
	name  string
	known bool
}

var (
	KindCredOffer    = Kind{name: "credOffer", known: true}
	KindCredReq      = Kind{name: "credReq", known: true}
	KindCred         = Kind{name: "cred", known: true}
	KindProof        = Kind{name: "proof", known: true}
	KindProofRequest = Kind{name: "proofRequest", known: true}
)

// OtherKind preserves an unrecognized payload kind name.
func OtherKind(name string) Kind { return Kind{name: name} }

func (k Kind) family() message.Family {
	if !k.known {
		return message.UnknownFamily(k.name)
	}
	return message.FamilyCredentialExchange
}

// wireName returns the V1 (SCREAMING_SNAKE) or V2 (kebab-case) wire
// name for k, matching the original codec's PayloadKinds::name().
func (k Kind) wireName(version settings.Version) string {
	if !k.known {
		return k.name
	}
	if version == settings.V2 {
		switch k {
		case KindCredOffer:
			return "credential-offer"
		case KindCredReq:
			return "credential-request"
		case KindCred:
			return "credential"
		case KindProofRequest:
			return "presentation-request"
		case KindProof:
			return "presentation"
		}
	}
	switch k {
	case KindCredOffer:
		return "CRED_OFFER"
	case KindCredReq:
		return "CRED_REQ"
	case KindCred:
		return "CRED"
	case KindProofRequest:
		return "PROOF_REQUEST"
	case KindProof:
		return "PROOF"
	}
	return k.name
}

// TypeV1 is the "@type" shape for a V1 payload: a wire name, protocol
// version, and the serialization format the msg field is encoded with
// (always "json" in this codec, matching every call site in the
// original).
type TypeV1 struct {
	Name string `json:"name" msgpack:"name"`
	Ver  string `json:"ver" msgpack:"ver"`
	Fmt  string `json:"fmt" msgpack:"fmt"`
}

// TypeV2 is the "@type" shape for a V2 payload — identical in shape to
// message.MessageTypeV2, since the original codec defines PayloadTypeV2
// as a type alias of MessageTypeV2.
type TypeV2 = message.MessageTypeV2

// TypeUnion holds exactly one of TypeV1 or TypeV2, chosen by protocol
// version, mirroring message.MessageTypeUnion.
type TypeUnion struct {
	V1 *TypeV1
	V2 *TypeV2
}

func buildTypeV1(k Kind) TypeV1 {
	return TypeV1{Name: k.wireName(settings.V1), Ver: "1.0", Fmt: "json"}
}

func buildTypeV2(k Kind) TypeV2 {
	f := k.family()
	return TypeV2{
		DID:     "did:sov:123456789abcdefghi1234",
		Family:  f.Name(),
		Version: f.Version(),
		Type:    k.wireName(settings.V2),
	}
}

// BuildType constructs the "@type" value for kind under version.
func BuildType(version settings.Version, k Kind) TypeUnion {
	if version == settings.V2 {
		v2 := buildTypeV2(k)
		return TypeUnion{V2: &v2}
	}
	v1 := buildTypeV1(k)
	return TypeUnion{V1: &v1}
}

func (t TypeUnion) MarshalJSON() ([]byte, error) {
	switch {
	case t.V2 != nil:
		return json.Marshal(t.V2)
	case t.V1 != nil:
		return json.Marshal(t.V1)
	default:
		return nil, fmt.Errorf("payload: empty TypeUnion has no wire representation")
	}
}

func (t *TypeUnion) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("payload: malformed @type value: %w", err)
	}
	if _, ok := probe["type"]; ok {
		var v2 TypeV2
		if err := json.Unmarshal(data, &v2); err != nil {
			return fmt.Errorf("payload: malformed v2 @type value: %w", err)
		}
		t.V2, t.V1 = &v2, nil
		return nil
	}
	if _, ok := probe["name"]; ok {
		var v1 TypeV1
		if err := json.Unmarshal(data, &v1); err != nil {
			return fmt.Errorf("payload: malformed v1 @type value: %w", err)
		}
		t.V1, t.V2 = &v1, nil
		return nil
	}
	return fmt.Errorf("payload: @type has neither \"name\" nor \"type\": %w", codecerr.ErrUnexpectedType)
}

func (t TypeUnion) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch {
	case t.V2 != nil:
		return enc.Encode(t.V2)
	case t.V1 != nil:
		return enc.Encode(t.V1)
	default:
		return fmt.Errorf("payload: empty TypeUnion has no wire representation")
	}
}

func (t *TypeUnion) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeMap()
	if err != nil {
		return fmt.Errorf("payload: malformed @type value: %w", err)
	}
	reencoded, err := msgpack.Marshal(raw)
	if err != nil {
		return fmt.Errorf("payload: failed to re-encode @type value: %w", err)
	}
	if _, ok := raw["type"]; ok {
		var v2 TypeV2
		if err := msgpack.Unmarshal(reencoded, &v2); err != nil {
			return fmt.Errorf("payload: malformed v2 @type value: %w", err)
		}
		t.V2, t.V1 = &v2, nil
		return nil
	}
	if _, ok := raw["name"]; ok {
		var v1 TypeV1
		if err := msgpack.Unmarshal(reencoded, &v1); err != nil {
			return fmt.Errorf("payload: malformed v1 @type value: %w", err)
		}
		t.V1, t.V2 = &v1, nil
		return nil
	}
	return fmt.Errorf("payload: @type has neither \"name\" nor \"type\": %w", codecerr.ErrUnexpectedType)
}

// Payload is the inner envelope carried encrypted inside the outer
// message pipeline: a typed kind plus an already-serialized message
// string.
type Payload struct {
	Type TypeUnion `json:"@type" msgpack:"@type"`
	Msg  string    `json:"@msg" msgpack:"@msg"`
}

// unpackResultView is the shape UnpackMessage returns under V2: the
// recovered plaintext lives under "message", not at the top level.
type unpackResultView struct {
	Message string `json:"message"`
}

// Encrypted builds a Payload of the given kind around data, serializes
// it for version, and encrypts it with provider: msgpack+prep_msg
// under V1, JSON+pack_message under V2.
func Encrypted(provider crypto.Provider, version settings.Version, myVK, theirVK, data string, kind Kind) ([]byte, error) {
	p := Payload{Type: BuildType(version, kind), Msg: data}

	if version == settings.V2 {
		encoded, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("payload: %w: %w", codecerr.ErrSerialization, err)
		}
		return provider.PackMessage(&myVK, []string{theirVK}, encoded)
	}

	encoded, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("payload: %w: %w", codecerr.ErrInvalidMsgpack, err)
	}
	return provider.PrepMsg(myVK, theirVK, encoded)
}

// Decrypted reverses Encrypted: it decrypts sealed with provider under
// myVK, unwraps the version-specific framing, and returns the original
// data string carried in Payload.Msg.
func Decrypted(provider crypto.Provider, version settings.Version, myVK string, sealed []byte) (string, error) {
	if version == settings.V2 {
		unpacked, err := provider.UnpackMessage(sealed)
		if err != nil {
			return "", err
		}
		var view unpackResultView
		if err := json.Unmarshal(unpacked, &view); err != nil {
			return "", fmt.Errorf("payload: %w: %w", codecerr.ErrInvalidJSON, err)
		}
		var p Payload
		if err := json.Unmarshal([]byte(view.Message), &p); err != nil {
			return "", fmt.Errorf("payload: %w: %w", codecerr.ErrInvalidJSON, err)
		}
		return p.Msg, nil
	}

	_, data, err := provider.ParseMsg(myVK, sealed)
	if err != nil {
		return "", err
	}
	var p Payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("payload: %w: %w", codecerr.ErrInvalidMsgpack, err)
	}
	return p.Msg, nil
}
