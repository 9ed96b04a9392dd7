package builder

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/tenzoki/agen/a2a/message"
)

// SendRemoteMessageBuilder builds a SendRemoteMessage request (V2
// only): relaying an application message — a credential offer, a
// proof request, and so on — directly to a pairwise connection
// without the store-and-fetch GetMessages round trip.
type SendRemoteMessageBuilder struct {
	base
	pipeline     pipeline
	id           string
	mtype        message.RemoteMessageType
	sendMsg      bool
	replyToMsgID string
	payload      json.RawMessage
}

// NewSendRemoteMessageBuilder starts a send-remote-message request
// against pipeline.
func NewSendRemoteMessageBuilder(p pipeline) *SendRemoteMessageBuilder {
	return &SendRemoteMessageBuilder{pipeline: p, sendMsg: true}
}

func (b *SendRemoteMessageBuilder) To(did string) (*SendRemoteMessageBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *SendRemoteMessageBuilder) ToVK(vk string) (*SendRemoteMessageBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *SendRemoteMessageBuilder) AgentDID(did string) (*SendRemoteMessageBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *SendRemoteMessageBuilder) AgentVK(vk string) (*SendRemoteMessageBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// ID sets the message's own correlation id (the "@id" field).
func (b *SendRemoteMessageBuilder) ID(id string) *SendRemoteMessageBuilder {
	b.id = id
	return b
}

// Mtype sets what kind of application content Payload carries.
func (b *SendRemoteMessageBuilder) Mtype(mtype message.RemoteMessageType) *SendRemoteMessageBuilder {
	b.mtype = mtype
	return b
}

// ReplyToMsgID links this message to the one it answers.
func (b *SendRemoteMessageBuilder) ReplyToMsgID(uid string) *SendRemoteMessageBuilder {
	b.replyToMsgID = uid
	return b
}

// SendMsg controls whether the agency should push a notification for
// this message immediately (true, the default) or leave it for the
// next GetMessages poll.
func (b *SendRemoteMessageBuilder) SendMsg(send bool) *SendRemoteMessageBuilder {
	b.sendMsg = send
	return b
}

// Payload sets the already-serialized application message body.
func (b *SendRemoteMessageBuilder) Payload(payload json.RawMessage) *SendRemoteMessageBuilder {
	b.payload = payload
	return b
}

func (b *SendRemoteMessageBuilder) PrepareRequest() ([]byte, error) {
	id := b.id
	if id == "" {
		id = uuid.New().String()
	}
	msg := message.SendRemoteMessage{
		Type:         message.BuildV2(message.KindSendRemoteMessage),
		ID:           id,
		Mtype:        b.mtype,
		SendMsg:      b.sendMsg,
		ReplyToMsgID: b.replyToMsgID,
		Message:      b.payload,
	}
	return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
}
