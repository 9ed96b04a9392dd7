package message

import "github.com/vmihailenco/msgpack/v5"

// RemoteMessageType discriminates the payload carried by
// SendRemoteMessage/CreateMessage — what kind of application content
// is being delivered, as opposed to the envelope Kind that carries it.
// Unknown values preserve their wire string under Other rather than
// failing decode, matching the forward-compatibility stance spec.md
// takes on RemoteMessageType.
type RemoteMessageType struct {
	name  string
	known bool
}

var (
	RemoteMessageConnReq       = RemoteMessageType{name: "connReq", known: true}
	RemoteMessageConnReqAnswer = RemoteMessageType{name: "connReqAnswer", known: true}
	RemoteMessageCredOffer     = RemoteMessageType{name: "credOffer", known: true}
	RemoteMessageCredReq       = RemoteMessageType{name: "credReq", known: true}
	RemoteMessageCred          = RemoteMessageType{name: "cred", known: true}
	RemoteMessageProofReq      = RemoteMessageType{name: "proofReq", known: true}
	RemoteMessageProof         = RemoteMessageType{name: "proof", known: true}
)

// OtherRemoteMessage preserves an unrecognized remote message type name.
func OtherRemoteMessage(name string) RemoteMessageType {
	return RemoteMessageType{name: name}
}

func (r RemoteMessageType) Name() string   { return r.name }
func (r RemoteMessageType) Known() bool    { return r.known }
func (r RemoteMessageType) String() string { return r.name }

func (r RemoteMessageType) MarshalText() ([]byte, error) { return []byte(r.name), nil }

func (r *RemoteMessageType) UnmarshalText(text []byte) error {
	switch string(text) {
	case RemoteMessageConnReq.name:
		*r = RemoteMessageConnReq
	case RemoteMessageConnReqAnswer.name:
		*r = RemoteMessageConnReqAnswer
	case RemoteMessageCredOffer.name:
		*r = RemoteMessageCredOffer
	case RemoteMessageCredReq.name:
		*r = RemoteMessageCredReq
	case RemoteMessageCred.name:
		*r = RemoteMessageCred
	case RemoteMessageProofReq.name:
		*r = RemoteMessageProofReq
	case RemoteMessageProof.name:
		*r = RemoteMessageProof
	default:
		*r = OtherRemoteMessage(string(text))
	}
	return nil
}

func (r RemoteMessageType) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(r.name)
}

func (r *RemoteMessageType) DecodeMsgpack(dec *msgpack.Decoder) error {
	name, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return r.UnmarshalText([]byte(name))
}
