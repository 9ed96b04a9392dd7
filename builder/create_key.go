package builder

import (
	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/validation"
)

// CreateKeyBuilder builds a CreateKey request: asking the agency to
// mint a new pairwise signing key for a connection under construction.
type CreateKeyBuilder struct {
	base
	pipeline     pipeline
	forDID       string
	forDIDVerkey string
}

// NewCreateKeyBuilder starts a CreateKey request against pipeline.
func NewCreateKeyBuilder(p pipeline) *CreateKeyBuilder {
	return &CreateKeyBuilder{pipeline: p}
}

func (b *CreateKeyBuilder) To(did string) (*CreateKeyBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *CreateKeyBuilder) ToVK(vk string) (*CreateKeyBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *CreateKeyBuilder) AgentDID(did string) (*CreateKeyBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *CreateKeyBuilder) AgentVK(vk string) (*CreateKeyBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// ForDID sets the new connection's local DID.
func (b *CreateKeyBuilder) ForDID(did string) (*CreateKeyBuilder, error) {
	if err := validation.ValidateDID(did); err != nil {
		return b, err
	}
	b.forDID = did
	return b, nil
}

// ForDIDVerkey sets the new connection's local verkey.
func (b *CreateKeyBuilder) ForDIDVerkey(vk string) (*CreateKeyBuilder, error) {
	if err := validation.ValidateVerkey(vk); err != nil {
		return b, err
	}
	b.forDIDVerkey = vk
	return b, nil
}

// PrepareRequest encodes and encrypts the CreateKey message for delivery
// to the agency at b.toDID.
func (b *CreateKeyBuilder) PrepareRequest() ([]byte, error) {
	version := b.pipeline.Store.ProtocolVersion()
	msg := message.CreateKey{
		Type:         message.Build(version, message.KindCreateKey),
		ForDID:       b.forDID,
		ForDIDVerkey: b.forDIDVerkey,
	}
	return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
}
