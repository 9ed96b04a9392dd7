package builder

import "github.com/tenzoki/agen/a2a/message"

// UpdateConfigsBuilder builds an UpdateConfigs request, pushing a
// batch of agent-side configuration values to the agency.
type UpdateConfigsBuilder struct {
	base
	pipeline pipeline
	configs  []message.ConfigOption
}

// NewUpdateConfigsBuilder starts an update-configs request against pipeline.
func NewUpdateConfigsBuilder(p pipeline) *UpdateConfigsBuilder {
	return &UpdateConfigsBuilder{pipeline: p}
}

func (b *UpdateConfigsBuilder) To(did string) (*UpdateConfigsBuilder, error) {
	err := b.setToDID(did)
	return b, err
}

func (b *UpdateConfigsBuilder) ToVK(vk string) (*UpdateConfigsBuilder, error) {
	err := b.setToVK(vk)
	return b, err
}

func (b *UpdateConfigsBuilder) AgentDID(did string) (*UpdateConfigsBuilder, error) {
	err := b.setAgentDID(did)
	return b, err
}

func (b *UpdateConfigsBuilder) AgentVK(vk string) (*UpdateConfigsBuilder, error) {
	err := b.setAgentVK(vk)
	return b, err
}

// Config appends one name/value configuration option.
func (b *UpdateConfigsBuilder) Config(name, value string) *UpdateConfigsBuilder {
	b.configs = append(b.configs, message.ConfigOption{Name: name, Value: value})
	return b
}

func (b *UpdateConfigsBuilder) PrepareRequest() ([]byte, error) {
	version := b.pipeline.Store.ProtocolVersion()
	msg := message.UpdateConfigs{
		Type:    message.Build(version, message.KindUpdateConfigs),
		Configs: b.configs,
	}
	return b.pipeline.PrepareMessageForAgency(msg, b.toDID)
}
