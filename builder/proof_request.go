package builder

import (
	"encoding/json"
	"fmt"

	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/payload"
)

// ProofRequestBuilder builds and sends a presentation request: the
// proof_request JSON is wrapped in an encrypted Payload (keyed as
// payload.KindProofRequest) and relayed to the connection via
// SendRemoteMessage, the same encrypted-Payload-inside-an-envelope
// shape every other credential-exchange message in this codec uses.
type ProofRequestBuilder struct {
	base
	pipeline     pipeline
	myVK         string
	proofRequest json.RawMessage
}

// NewProofRequestBuilder starts a proof-request send against pipeline.
func NewProofRequestBuilder(p pipeline) *ProofRequestBuilder {
	return &ProofRequestBuilder{pipeline: p}
}

func (b *ProofRequestBuilder) To(did string) (*ProofRequestBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *ProofRequestBuilder) ToVK(vk string) (*ProofRequestBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *ProofRequestBuilder) AgentDID(did string) (*ProofRequestBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *ProofRequestBuilder) AgentVK(vk string) (*ProofRequestBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// MyVK sets the requester's own pairwise verkey, used to encrypt the
// Payload addressed to the connection at ToVK.
func (b *ProofRequestBuilder) MyVK(vk string) *ProofRequestBuilder {
	b.myVK = vk
	return b
}

// ProofRequest sets the already-serialized indy proof_request JSON.
func (b *ProofRequestBuilder) ProofRequest(req json.RawMessage) *ProofRequestBuilder {
	b.proofRequest = req
	return b
}

func (b *ProofRequestBuilder) PrepareRequest() ([]byte, error) {
	version := b.pipeline.Store.ProtocolVersion()

	encrypted, err := payload.Encrypted(b.pipeline.Provider, version, b.myVK, b.toVK, string(b.proofRequest), payload.KindProofRequest)
	if err != nil {
		return nil, fmt.Errorf("builder: failed to encrypt proof request payload: %w", err)
	}

	msg := message.SendRemoteMessage{
		Type:    message.BuildV2(message.KindSendRemoteMessage),
		Mtype:   message.RemoteMessageProofReq,
		SendMsg: true,
		Message: json.RawMessage(encrypted),
	}
	return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
}
