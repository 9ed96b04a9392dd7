// Package codecerr defines the sentinel error kinds surfaced by the a2a
// message codec and envelope pipeline. Call sites wrap one of these with
// fmt.Errorf("...: %w", ...) so callers can still distinguish kinds via
// errors.Is while getting a message with local context.
package codecerr

import "errors"

var (
	// ErrSerialization covers JSON encode failures and the V2 empty
	// message-list case in PrepareMessageForAgent.
	ErrSerialization = errors.New("serialization error")

	// ErrInvalidMsgpack covers MessagePack encode/decode failures.
	ErrInvalidMsgpack = errors.New("invalid msgpack")

	// ErrInvalidJSON covers JSON decode failures, a missing/ill-typed
	// "message" field, and V1 response-bundle elements that fail to
	// decode (preserved for wire compatibility even though the
	// underlying codec there is MessagePack, not JSON — see
	// envelope.ParseResponseFromAgency).
	ErrInvalidJSON = errors.New("invalid json")

	// ErrUnknown covers a MessagePack encode failure of the outer V1
	// forward envelope, mirroring the original UNKNOWN_ERROR code.
	ErrUnknown = errors.New("unknown error")

	// ErrUnexpectedType is raised when an @type discriminator does not
	// match any known wire name for the active protocol version.
	ErrUnexpectedType = errors.New("unexpected @type field structure")

	// ErrUnknownStatusCode is raised when decoding a MessageStatusCode
	// string outside the closed MS-101..MS-106 set.
	ErrUnknownStatusCode = errors.New("unexpected message status code")
)
