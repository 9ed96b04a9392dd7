package builder

import (
	"encoding/json"
	"fmt"

	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/settings"
)

// SendInviteBuilder builds the out-of-band connection-request message
// that starts a new pairwise connection. Under V2 it sends a single
// ConnectionRequest message to the agency; under V1 it bundles a
// CreateMessage plus its MessageDetail sibling and routes them through
// the agent-forwarding path, since V1 has no standalone
// connection-request message kind.
type SendInviteBuilder struct {
	base
	pipeline    pipeline
	keyDlgProof json.RawMessage
	phone       string
}

// NewSendInviteBuilder starts a send-invite request against pipeline.
func NewSendInviteBuilder(p pipeline) *SendInviteBuilder {
	return &SendInviteBuilder{pipeline: p}
}

func (b *SendInviteBuilder) To(did string) (*SendInviteBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *SendInviteBuilder) ToVK(vk string) (*SendInviteBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *SendInviteBuilder) AgentDID(did string) (*SendInviteBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *SendInviteBuilder) AgentVK(vk string) (*SendInviteBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// KeyDlgProof sets the key-delegation proof the invited party verifies.
func (b *SendInviteBuilder) KeyDlgProof(proof json.RawMessage) *SendInviteBuilder {
	b.keyDlgProof = proof
	return b
}

// Phone sets an optional phone number for out-of-band SMS delivery.
func (b *SendInviteBuilder) Phone(phone string) *SendInviteBuilder {
	b.phone = phone
	return b
}

func (b *SendInviteBuilder) PrepareRequest() ([]byte, error) {
	version := b.pipeline.Store.ProtocolVersion()

	if version == settings.V2 {
		msg := message.ConnectionRequest{
			Type:        message.BuildV2(message.KindConnectionRequest),
			KeyDlgProof: b.keyDlgProof,
			Phone:       b.phone,
		}
		return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
	}

	detail := message.ConnectionRequestDetail{KeyDlgProof: b.keyDlgProof, Phone: b.phone}
	detailBytes, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("builder: failed to encode connection request detail: %w", err)
	}

	create := message.CreateMessage{
		Type:    message.BuildV1(message.KindCreateMessage),
		Mtype:   message.RemoteMessageConnReq,
		SendMsg: true,
	}
	detailMsg := message.MessageDetailMessage{
		Type:    message.BuildV1(message.KindMessageDetail),
		MsgType: message.RemoteMessageConnReq,
		Detail:  detailBytes,
	}

	return b.pipeline.PrepareMessageForAgent(
		[]message.A2AMessage{create, detailMsg},
		b.toVK, b.agentDID, b.agentVK,
	)
}
