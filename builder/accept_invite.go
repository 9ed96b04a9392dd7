package builder

import (
	"encoding/json"
	"fmt"

	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/settings"
)

// AcceptInviteBuilder builds the invited party's reply to a
// ConnectionRequest. Under V2 it's a single ConnectionRequestAnswer;
// under V1 it's a CreateMessage/MessageDetail pair routed through the
// agent-forwarding path, mirroring SendInviteBuilder.
type AcceptInviteBuilder struct {
	base
	pipeline           pipeline
	senderDetail       json.RawMessage
	senderAgencyDetail json.RawMessage
	replyToMsgID       string
}

// NewAcceptInviteBuilder starts an accept-invite request against pipeline.
func NewAcceptInviteBuilder(p pipeline) *AcceptInviteBuilder {
	return &AcceptInviteBuilder{pipeline: p}
}

func (b *AcceptInviteBuilder) To(did string) (*AcceptInviteBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *AcceptInviteBuilder) ToVK(vk string) (*AcceptInviteBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *AcceptInviteBuilder) AgentDID(did string) (*AcceptInviteBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *AcceptInviteBuilder) AgentVK(vk string) (*AcceptInviteBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// SenderDetail sets the accepting party's own connection details.
func (b *AcceptInviteBuilder) SenderDetail(detail json.RawMessage) *AcceptInviteBuilder {
	b.senderDetail = detail
	return b
}

// SenderAgencyDetail sets the accepting party's agency details.
func (b *AcceptInviteBuilder) SenderAgencyDetail(detail json.RawMessage) *AcceptInviteBuilder {
	b.senderAgencyDetail = detail
	return b
}

// ReplyToMsgID links this answer back to the originating invite's uid.
func (b *AcceptInviteBuilder) ReplyToMsgID(uid string) *AcceptInviteBuilder {
	b.replyToMsgID = uid
	return b
}

func (b *AcceptInviteBuilder) PrepareRequest() ([]byte, error) {
	version := b.pipeline.Store.ProtocolVersion()

	if version == settings.V2 {
		msg := message.ConnectionRequestAnswer{
			Type:               message.BuildV2(message.KindConnectionRequestAnswer),
			SenderDetail:       b.senderDetail,
			SenderAgencyDetail: b.senderAgencyDetail,
			ReplyToMsgID:       b.replyToMsgID,
		}
		return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
	}

	detail := struct {
		SenderDetail       json.RawMessage `json:"senderDetail"`
		SenderAgencyDetail json.RawMessage `json:"senderAgencyDetail"`
	}{b.senderDetail, b.senderAgencyDetail}
	detailBytes, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("builder: failed to encode connection request answer detail: %w", err)
	}

	create := message.CreateMessage{
		Type:         message.BuildV1(message.KindCreateMessage),
		Mtype:        message.RemoteMessageConnReqAnswer,
		SendMsg:      true,
		ReplyToMsgID: b.replyToMsgID,
	}
	detailMsg := message.MessageDetailMessage{
		Type:    message.BuildV1(message.KindMessageDetail),
		MsgType: message.RemoteMessageConnReqAnswer,
		Detail:  detailBytes,
	}

	return b.pipeline.PrepareMessageForAgent(
		[]message.A2AMessage{create, detailMsg},
		b.toVK, b.agentDID, b.agentVK,
	)
}
