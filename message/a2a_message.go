package message

import (
	"encoding/json"
	"fmt"

	"github.com/tenzoki/agen/a2a/codecerr"
	"github.com/vmihailenco/msgpack/v5"
)

// A2AMessage is the tagged union of every message kind this codec
// understands. The concrete types in messages.go all implement it;
// Decode dispatches wire bytes to the right one by inspecting "@type"
// rather than relying on a shared wrapper type, since Go has no direct
// analogue of a #[serde(untagged)] enum.
type A2AMessage interface {
	MessageKind() Kind
}

type factory func() interface{}

var v1Dispatch = map[string]factory{
	"FWD":                         func() interface{} { return &ForwardV1{} },
	"CONNECT":                     func() interface{} { return &Connect{} },
	"CONNECTED":                   func() interface{} { return &Connected{} },
	"SIGNUP":                      func() interface{} { return &SignUp{} },
	"SIGNED_UP":                   func() interface{} { return &SignedUp{} },
	"CREATE_AGENT":                func() interface{} { return &CreateAgent{} },
	"AGENT_CREATED":               func() interface{} { return &AgentCreated{} },
	"CREATE_KEY":                  func() interface{} { return &CreateKey{} },
	"KEY_CREATED":                 func() interface{} { return &KeyCreated{} },
	"CREATE_MSG":                  func() interface{} { return &CreateMessage{} },
	"MSG_DETAIL":                  func() interface{} { return &MessageDetailMessage{} },
	"MSG_CREATED":                 func() interface{} { return &MessageCreated{} },
	"MSG_SENT":                    func() interface{} { return &MessageSent{} },
	"MSGS_SENT":                   func() interface{} { return &MessageSent{} },
	"GET_MSGS":                    func() interface{} { return &GetMessages{} },
	"GET_MSGS_BY_CONNS":           func() interface{} { return &GetMessagesByConnections{} },
	"MSGS":                        func() interface{} { return &Messages{} },
	"MSGS_BY_CONNS":               func() interface{} { return &MessagesByConnections{} },
	"UPDATE_MSG_STATUS_BY_CONNS":  func() interface{} { return &UpdateMessageStatusByConnections{} },
	"MSG_STATUS_UPDATED_BY_CONNS": func() interface{} { return &MessageStatusUpdatedByConnections{} },
	"UPDATE_CONN_STATUS":          func() interface{} { return &UpdateConnectionStatus{} },
	"CONN_STATUS_UPDATED":         func() interface{} { return &ConnectionStatusUpdated{} },
	"UPDATE_CONFIGS":              func() interface{} { return &UpdateConfigs{} },
	"CONFIGS_UPDATED":             func() interface{} { return &ConfigsUpdated{} },
	"UPDATE_COM_METHOD":           func() interface{} { return &UpdateConMethod{} },
}

var v2Dispatch = map[string]factory{
	"FWD":                         func() interface{} { return &ForwardV2{} },
	"CONNECT":                     func() interface{} { return &Connect{} },
	"CONNECTED":                   func() interface{} { return &Connected{} },
	"SIGNUP":                      func() interface{} { return &SignUp{} },
	"SIGNED_UP":                   func() interface{} { return &SignedUp{} },
	"CREATE_AGENT":                func() interface{} { return &CreateAgent{} },
	"AGENT_CREATED":               func() interface{} { return &AgentCreated{} },
	"CREATE_KEY":                  func() interface{} { return &CreateKey{} },
	"KEY_CREATED":                 func() interface{} { return &KeyCreated{} },
	"GET_MSGS":                    func() interface{} { return &GetMessages{} },
	"GET_MSGS_BY_CONNS":           func() interface{} { return &GetMessagesByConnections{} },
	"MSGS":                        func() interface{} { return &Messages{} },
	"MSGS_BY_CONNS":               func() interface{} { return &MessagesByConnections{} },
	"UPDATE_MSG_STATUS_BY_CONNS":  func() interface{} { return &UpdateMessageStatusByConnections{} },
	"MSG_STATUS_UPDATED_BY_CONNS": func() interface{} { return &MessageStatusUpdatedByConnections{} },
	"UPDATE_CONN_STATUS":          func() interface{} { return &UpdateConnectionStatus{} },
	"CONN_STATUS_UPDATED":         func() interface{} { return &ConnectionStatusUpdated{} },
	"UPDATE_CONFIGS":              func() interface{} { return &UpdateConfigs{} },
	"CONFIGS_UPDATED":             func() interface{} { return &ConfigsUpdated{} },
	"UPDATE_COM_METHOD":           func() interface{} { return &UpdateConMethod{} },
	"CONN_REQUEST":                func() interface{} { return &ConnectionRequest{} },
	"CONN_REQUEST_RESP":           func() interface{} { return &ConnectionRequestResponse{} },
	"CONN_REQUEST_ANSWER":         func() interface{} { return &ConnectionRequestAnswer{} },
	"CONN_REQUEST_ANSWER_RESP":    func() interface{} { return &ConnectionRequestAnswerResponse{} },
	"SEND_REMOTE_MSG":             func() interface{} { return &SendRemoteMessage{} },
	"REMOTE_MSG_SENT":             func() interface{} { return &SendRemoteMessageResponse{} },
}

// decode parses data as a generic value via unmarshal, reads @type to
// pick a dispatch table and wire name, then re-encodes the generic
// value and decodes it into the selected concrete struct — the same
// parse-generic-then-reparse-as-variant two-pass approach the original
// codec's Deserialize impls use. A missing or malformed @type is
// always a fatal, non-recoverable error.
func decode(data []byte, marshal func(interface{}) ([]byte, error), unmarshal func([]byte, interface{}) error) (A2AMessage, error) {
	var raw map[string]interface{}
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("message: failed to parse message envelope: %w", err)
	}

	typeVal, ok := raw["@type"]
	if !ok {
		return nil, fmt.Errorf("message: message has no @type field: %w", codecerr.ErrUnexpectedType)
	}
	typeMap, ok := typeVal.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("message: @type is not an object: %w", codecerr.ErrUnexpectedType)
	}

	var wireName string
	var table map[string]factory
	if t, ok := typeMap["type"].(string); ok {
		wireName, table = t, v2Dispatch
	} else if n, ok := typeMap["name"].(string); ok {
		wireName, table = n, v1Dispatch
	} else {
		return nil, fmt.Errorf("message: @type has neither \"name\" nor \"type\": %w", codecerr.ErrUnexpectedType)
	}

	build, ok := table[wireName]
	if !ok {
		return nil, fmt.Errorf("message: unrecognized message type %q: %w", wireName, codecerr.ErrUnexpectedType)
	}

	reencoded, err := marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("message: failed to re-encode message: %w", err)
	}

	instance := build()
	if err := unmarshal(reencoded, instance); err != nil {
		return nil, fmt.Errorf("message: failed to decode %s message: %w", wireName, err)
	}
	return instance.(A2AMessage), nil
}

// DecodeJSON decodes a single A2A message from JSON bytes, dispatching
// on whichever @type shape (V1 or V2) is present.
func DecodeJSON(data []byte) (A2AMessage, error) {
	return decode(data, json.Marshal, func(b []byte, v interface{}) error { return json.Unmarshal(b, v) })
}

// DecodeMsgpack decodes a single A2A message from MessagePack bytes.
func DecodeMsgpack(data []byte) (A2AMessage, error) {
	return decode(data, msgpack.Marshal, func(b []byte, v interface{}) error { return msgpack.Unmarshal(b, v) })
}

// EncodeJSON serializes msg to its JSON wire form.
func EncodeJSON(msg A2AMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("message: failed to encode %s message: %w: %w", msg.MessageKind(), codecerr.ErrSerialization, err)
	}
	return data, nil
}

// EncodeMsgpack serializes msg to its MessagePack wire form.
func EncodeMsgpack(msg A2AMessage) ([]byte, error) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("message: failed to encode %s message: %w: %w", msg.MessageKind(), codecerr.ErrInvalidMsgpack, err)
	}
	return data, nil
}
