package message

import "encoding/json"

// MessageDetail is CreateMessage's payload descriptor. Its concrete
// shape depends on which kind of application message is being created
// — discriminated by an embedded RemoteMessageType rather than a
// single "@type" tag, mirroring the untagged MessageDetail enum in the
// original codec (supplemented from original_source: the distilled
// spec's CreateMessage carries an opaque detail blob, but the original
// always shapes it by remote message type).
type MessageDetail interface {
	RemoteType() RemoteMessageType
}

// GeneralMessageDetail covers the common case: an already-serialized
// application message plus an optional display title.
type GeneralMessageDetail struct {
	Msg        string            `json:"msg" msgpack:"msg"`
	Title      string            `json:"title,omitempty" msgpack:"title,omitempty"`
	DetailType RemoteMessageType `json:"detail,omitempty" msgpack:"detail,omitempty"`
}

func (d GeneralMessageDetail) RemoteType() RemoteMessageType { return d.DetailType }

// ConnectionRequestDetail carries the key-delegation proof exchanged
// when establishing a new pairwise connection.
type ConnectionRequestDetail struct {
	KeyDlgProof json.RawMessage `json:"key_dlg_proof" msgpack:"key_dlg_proof"`
	Phone       string          `json:"phone,omitempty" msgpack:"phone,omitempty"`
}

func (d ConnectionRequestDetail) RemoteType() RemoteMessageType { return RemoteMessageConnReq }

// CredentialOfferDetail carries a serialized credential offer.
type CredentialOfferDetail struct {
	Offer json.RawMessage `json:"offer" msgpack:"offer"`
}

func (d CredentialOfferDetail) RemoteType() RemoteMessageType { return RemoteMessageCredOffer }

// ProofRequestDetail carries a serialized proof request.
type ProofRequestDetail struct {
	ProofRequest json.RawMessage `json:"proof_request" msgpack:"proof_request"`
}

func (d ProofRequestDetail) RemoteType() RemoteMessageType { return RemoteMessageProofReq }
