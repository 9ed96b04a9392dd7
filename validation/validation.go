// Package validation implements the DID/verkey format checks every
// builder setter runs before storing a value (spec.md §4.7's builder
// contract). Sovrin DIDs are the base58 encoding of 16 raw bytes;
// verkeys are the base58 encoding of 32 raw bytes (optionally prefixed
// "~" for an abbreviated local-DID-relative form, which this codec
// does not accept since every verkey it handles is already expanded).
package validation

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

const (
	didLength    = 16
	verkeyLength = 32
)

// ValidateDID reports whether did decodes to a 16-byte sovrin DID.
func ValidateDID(did string) error {
	decoded := base58.Decode(did)
	if len(decoded) != didLength {
		return fmt.Errorf("validation: %q is not a valid DID", did)
	}
	return nil
}

// ValidateVerkey reports whether vk decodes to a 32-byte verkey.
func ValidateVerkey(vk string) error {
	decoded := base58.Decode(vk)
	if len(decoded) != verkeyLength {
		return fmt.Errorf("validation: %q is not a valid verkey", vk)
	}
	return nil
}
