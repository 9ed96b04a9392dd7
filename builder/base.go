// Package builder implements the per-kind fluent request builders
// (component C7): one type per outbound operation (create-key,
// send-invite, accept-invite, connection status, get-messages,
// config updates, remote-message delivery, proof request), each
// validating its setters via package validation before storing, and
// each exposing PrepareRequest to produce the final wire bytes through
// an envelope.Pipeline.
package builder

import (
	"github.com/tenzoki/agen/a2a/envelope"
	"github.com/tenzoki/agen/a2a/validation"
)

// base holds the four addressing fields every builder accepts, with
// validated setters matching the original GeneralMessage trait's
// to/to_vk/agent_did/agent_vk methods. A failed setter leaves base
// unchanged — callers see the builder's previous state, matching
// spec.md §4.7.
type base struct {
	toDID    string
	toVK     string
	agentDID string
	agentVK  string
}

func (b *base) setToDID(did string) error {
	if err := validation.ValidateDID(did); err != nil {
		return err
	}
	b.toDID = did
	return nil
}

func (b *base) setToVK(vk string) error {
	if err := validation.ValidateVerkey(vk); err != nil {
		return err
	}
	b.toVK = vk
	return nil
}

func (b *base) setAgentDID(did string) error {
	if err := validation.ValidateDID(did); err != nil {
		return err
	}
	b.agentDID = did
	return nil
}

func (b *base) setAgentVK(vk string) error {
	if err := validation.ValidateVerkey(vk); err != nil {
		return err
	}
	b.agentVK = vk
	return nil
}

// pipeline is held as a named field (alongside the embedded base) by
// every concrete builder to reach the settings/crypto dependencies
// PrepareRequest needs.
type pipeline = envelope.Pipeline
