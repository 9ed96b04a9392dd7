package builder

import "github.com/tenzoki/agen/a2a/message"

// UpdateConnectionBuilder builds an UpdateConnectionStatus request,
// used today to mark a pairwise connection deleted.
type UpdateConnectionBuilder struct {
	base
	pipeline   pipeline
	statusCode message.StatusCode
}

// NewUpdateConnectionBuilder starts an update-connection request
// against pipeline, defaulting to message.StatusRejected (MS-105), the
// status this builder sends to mark a connection deleted.
func NewUpdateConnectionBuilder(p pipeline) *UpdateConnectionBuilder {
	return &UpdateConnectionBuilder{pipeline: p, statusCode: message.StatusRejected}
}

func (b *UpdateConnectionBuilder) To(did string) (*UpdateConnectionBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *UpdateConnectionBuilder) ToVK(vk string) (*UpdateConnectionBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *UpdateConnectionBuilder) AgentDID(did string) (*UpdateConnectionBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *UpdateConnectionBuilder) AgentVK(vk string) (*UpdateConnectionBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// StatusCode overrides the status being set.
func (b *UpdateConnectionBuilder) StatusCode(code message.StatusCode) *UpdateConnectionBuilder {
	b.statusCode = code
	return b
}

func (b *UpdateConnectionBuilder) PrepareRequest() ([]byte, error) {
	version := b.pipeline.Store.ProtocolVersion()
	msg := message.UpdateConnectionStatus{
		Type:       message.Build(version, message.KindUpdateConnectionStatus),
		StatusCode: b.statusCode,
	}
	return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
}
