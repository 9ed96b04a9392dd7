// Package envelope implements the forward-wrapping pipeline
// (component C6): the two public operations that turn an A2AMessage
// into agency-addressed wire bytes, and the one that turns an agency
// response back into a list of A2AMessage values. Everything here is a
// pure function of its arguments plus a settings.Store snapshot — no
// internal state, no goroutines, safe to call from multiple goroutines
// at once provided the Store and crypto.Provider are themselves safe
// for concurrent reads.
package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/tenzoki/agen/a2a/bundle"
	"github.com/tenzoki/agen/a2a/codecerr"
	"github.com/tenzoki/agen/a2a/crypto"
	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/settings"
)

// Pipeline bundles the two read-only dependencies every operation
// needs: a settings snapshot and the encryption boundary.
type Pipeline struct {
	Store    settings.Store
	Provider crypto.Provider
}

// New builds a Pipeline over store and provider.
func New(store settings.Store, provider crypto.Provider) Pipeline {
	return Pipeline{Store: store, Provider: provider}
}

func (p Pipeline) requireKey(key string) (string, error) {
	value, err := p.Store.Get(key)
	if err != nil {
		return "", err
	}
	return value, nil
}

// PrepareMessageForAgency encodes and encrypts msg for delivery to the
// agency at agencyDID, then wraps it in one forward hop addressed to
// that DID. Requires REMOTE_TO_SDK_VERKEY, SDK_TO_REMOTE_VERKEY, and
// AGENCY_VERKEY in the settings snapshot.
func (p Pipeline) PrepareMessageForAgency(msg message.A2AMessage, agencyDID string) ([]byte, error) {
	myVK, err := p.requireKey(settings.KeySDKToRemoteVerkey)
	if err != nil {
		return nil, err
	}
	agentVK, err := p.requireKey(settings.KeyRemoteToSDKVerkey)
	if err != nil {
		return nil, err
	}
	agencyVK, err := p.requireKey(settings.KeyAgencyVerkey)
	if err != nil {
		return nil, err
	}

	version := p.Store.ProtocolVersion()

	var ciphertext []byte
	if version == settings.V2 {
		encoded, err := message.EncodeJSON(msg)
		if err != nil {
			return nil, err
		}
		ciphertext, err = p.Provider.PackMessage(&myVK, []string{agentVK}, encoded)
		if err != nil {
			return nil, err
		}
	} else {
		encoded, err := message.EncodeMsgpack(msg)
		if err != nil {
			return nil, err
		}
		bundled, err := bundle.Create(encoded).Encode()
		if err != nil {
			return nil, err
		}
		ciphertext, err = p.Provider.PrepMsg(myVK, agentVK, bundled)
		if err != nil {
			return nil, err
		}
	}

	return p.forwardWrap(ciphertext, agencyDID, agencyVK, version)
}

// forwardWrap builds Forward{fwd: toDID, msg: ciphertext} and encrypts
// it anonymously for theirVK: only the next hop needs to authenticate
// what it receives, not who sent it.
func (p Pipeline) forwardWrap(ciphertext []byte, toDID, theirVK string, version settings.Version) ([]byte, error) {
	if version == settings.V2 {
		fwd := message.ForwardV2{
			Type: message.BuildV2(message.KindForward),
			FWD:  toDID,
			Msg:  json.RawMessage(ciphertext),
		}
		encoded, err := message.EncodeJSON(fwd)
		if err != nil {
			return nil, err
		}
		return p.Provider.PackMessage(nil, []string{theirVK}, encoded)
	}

	fwd := message.ForwardV1{
		Type: message.BuildV1(message.KindForward),
		FWD:  toDID,
		Msg:  ciphertext,
	}
	encoded, err := message.EncodeMsgpack(fwd)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w: %w", codecerr.ErrUnknown, err)
	}
	bundled, err := bundle.Create(encoded).Encode()
	if err != nil {
		return nil, err
	}
	return p.Provider.PrepAnonymousMsg(theirVK, bundled)
}

// PrepareMessageForAgent builds a two-hop forward: messages are
// encrypted for the agent (pwVK → agentVK), wrapped in a Forward
// addressed to agentDID, and that Forward is itself handed to
// PrepareMessageForAgency addressed to the agency DID configured under
// REMOTE_TO_SDK_DID. V1 carries the whole messages list in one bundle;
// V2 collapses to the first message only, and an empty list is a
// serialization error.
func (p Pipeline) PrepareMessageForAgent(messages []message.A2AMessage, pwVK, agentDID, agentVK string) ([]byte, error) {
	toDID, err := p.requireKey(settings.KeyRemoteToSDKDID)
	if err != nil {
		return nil, err
	}

	version := p.Store.ProtocolVersion()

	var inner message.A2AMessage
	if version == settings.V2 {
		if len(messages) == 0 {
			return nil, fmt.Errorf("envelope: %w: prepare_message_for_agent requires at least one message", codecerr.ErrSerialization)
		}
		encoded, err := message.EncodeJSON(messages[0])
		if err != nil {
			return nil, err
		}
		ciphertext, err := p.Provider.PackMessage(&pwVK, []string{agentVK}, encoded)
		if err != nil {
			return nil, err
		}
		inner = message.ForwardV2{
			Type: message.BuildV2(message.KindForward),
			FWD:  agentDID,
			Msg:  json.RawMessage(ciphertext),
		}
	} else {
		encodedList := make([][]byte, len(messages))
		for i, m := range messages {
			encoded, err := message.EncodeMsgpack(m)
			if err != nil {
				return nil, err
			}
			encodedList[i] = encoded
		}
		bundled, err := bundle.Of(encodedList).Encode()
		if err != nil {
			return nil, err
		}
		ciphertext, err := p.Provider.PrepMsg(pwVK, agentVK, bundled)
		if err != nil {
			return nil, err
		}
		inner = message.ForwardV1{
			Type: message.BuildV1(message.KindForward),
			FWD:  agentDID,
			Msg:  ciphertext,
		}
	}

	return p.PrepareMessageForAgency(inner, toDID)
}

// unpackedMessageView mirrors the JSON object crypto.Provider.UnpackMessage
// returns: the recovered plaintext lives under "message".
type unpackedMessageView struct {
	Message string `json:"message"`
}

// ParseResponseFromAgency decrypts an agency response addressed to
// sdkVK and decodes it into the list of A2AMessage values it carries.
// V1 responses may bundle more than one message; V2 always yields
// exactly one. Any per-element decode failure under V1 is reported as
// codecerr.ErrInvalidJSON — a historically mis-labeled code (the
// failing codec is actually MessagePack) preserved here for wire
// compatibility with callers that branch on it.
func (p Pipeline) ParseResponseFromAgency(sdkVK string, data []byte) ([]message.A2AMessage, error) {
	version := p.Store.ProtocolVersion()

	if version == settings.V2 {
		unpacked, err := p.Provider.UnpackMessage(data)
		if err != nil {
			return nil, err
		}
		var view unpackedMessageView
		if err := json.Unmarshal(unpacked, &view); err != nil {
			return nil, fmt.Errorf("envelope: %w: %w", codecerr.ErrInvalidJSON, err)
		}
		msg, err := message.DecodeJSON([]byte(view.Message))
		if err != nil {
			return nil, fmt.Errorf("envelope: %w: %w", codecerr.ErrInvalidJSON, err)
		}
		return []message.A2AMessage{msg}, nil
	}

	_, plain, err := p.Provider.ParseMsg(sdkVK, data)
	if err != nil {
		return nil, err
	}
	bundled, err := bundle.FromBytes(plain)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w: %w", codecerr.ErrInvalidJSON, err)
	}

	messages := make([]message.A2AMessage, len(bundled.Items))
	for i, elem := range bundled.Items {
		msg, err := message.DecodeMsgpack(elem)
		if err != nil {
			return nil, fmt.Errorf("envelope: %w: %w", codecerr.ErrInvalidJSON, err)
		}
		messages[i] = msg
	}
	return messages, nil
}
