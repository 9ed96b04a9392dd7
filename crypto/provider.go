// Package crypto defines the authenticated-encryption boundary the codec
// calls out to and ships in spec.md as an opaque dependency: prep_msg,
// prep_anonymous_msg, parse_msg, pack_message, and unpack_message.
//
// The codec only ever talks to the Provider interface. BoxProvider is the
// one concrete adapter this repository ships, grounded on
// golang.org/x/crypto/nacl/box, so the pipeline is runnable end to end and
// its tests don't need a real agency. Key management — generating,
// storing, and rotating the keys a Provider signs/encrypts with — is out
// of scope per spec.md's Non-goals; KeyRing is a minimal in-memory fixture
// for tests and the demo CLI only.
package crypto

// Provider is the authenticated-encryption boundary the envelope pipeline
// and payload codec call into. All five operations are pure with respect
// to the codec: they take verkeys and bytes, return bytes (or an error),
// and hold no protocol-level state of their own.
type Provider interface {
	// PrepMsg authenticates and encrypts plaintext from myVK to theirVK
	// (V1's "authcrypt": the recipient can verify who sent it).
	PrepMsg(myVK, theirVK string, plaintext []byte) ([]byte, error)

	// PrepAnonymousMsg encrypts plaintext for theirVK without revealing
	// or authenticating a sender (V1's "anoncrypt"), used for the
	// outermost agency-addressed hop where only the agency needs to
	// authenticate what it receives next.
	PrepAnonymousMsg(theirVK string, plaintext []byte) ([]byte, error)

	// ParseMsg decrypts sealed addressed to myVK, returning the sender's
	// verkey (empty if the message was sealed anonymously) and the
	// recovered plaintext.
	ParseMsg(myVK string, sealed []byte) (senderVK string, plaintext []byte, err error)

	// PackMessage is V2's packed authenticated-encryption operation.
	// senderVK is nil for anonymous packing. Every call site in this
	// codec passes exactly one recipient; BoxProvider encrypts for the
	// first entry of recipientVKs only.
	PackMessage(senderVK *string, recipientVKs []string, plaintext []byte) ([]byte, error)

	// UnpackMessage reverses PackMessage, returning a JSON object shaped
	// {"message": "<plaintext>", "sender_verkey": "...", "recipient_verkey": "..."}
	// — the same envelope shape indy-sdk's unpack_message returns, which
	// is why payload.go and envelope.go JSON-decode the result and pull
	// out the "message" field rather than treating the return value as
	// the plaintext directly.
	UnpackMessage(packed []byte) ([]byte, error)
}
