package builder

import "github.com/tenzoki/agen/a2a/message"

// GetMessagesBuilder builds a GetMessages request, optionally filtered
// by uid or status code.
type GetMessagesBuilder struct {
	base
	pipeline       pipeline
	excludePayload string
	uids           []string
	statusCodes    []message.StatusCode
}

// NewGetMessagesBuilder starts a get-messages request against pipeline.
func NewGetMessagesBuilder(p pipeline) *GetMessagesBuilder {
	return &GetMessagesBuilder{pipeline: p}
}

func (b *GetMessagesBuilder) To(did string) (*GetMessagesBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *GetMessagesBuilder) ToVK(vk string) (*GetMessagesBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *GetMessagesBuilder) AgentDID(did string) (*GetMessagesBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *GetMessagesBuilder) AgentVK(vk string) (*GetMessagesBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// Uids restricts the response to the named message uids.
func (b *GetMessagesBuilder) Uids(uids []string) *GetMessagesBuilder {
	b.uids = uids
	return b
}

// StatusCodes restricts the response to messages in one of these states.
func (b *GetMessagesBuilder) StatusCodes(codes []message.StatusCode) *GetMessagesBuilder {
	b.statusCodes = codes
	return b
}

// ExcludePayload, when set to "Y", asks the agency to omit the
// encrypted payload and return only message metadata.
func (b *GetMessagesBuilder) ExcludePayload(exclude string) *GetMessagesBuilder {
	b.excludePayload = exclude
	return b
}

func (b *GetMessagesBuilder) PrepareRequest() ([]byte, error) {
	version := b.pipeline.Store.ProtocolVersion()
	msg := message.GetMessages{
		Type:           message.Build(version, message.KindGetMessages),
		ExcludePayload: b.excludePayload,
		Uids:           b.uids,
		StatusCodes:    b.statusCodes,
	}
	return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
}
