package crypto

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/nacl/box"
)

// KeyRing resolves base58 verkeys to Curve25519 key pairs. It is a test
// and demo fixture, not a key-management subsystem: there is no
// persistence, rotation, or access control here, matching spec.md's
// explicit Non-goal of key management.
//
// A verkey is always the base58 encoding of its own public key — any
// caller can recover the public half directly. The ring only needs to
// remember private halves, for identities this process controls.
type KeyRing struct {
	mu      sync.RWMutex
	private map[string]*[32]byte
}

// NewKeyRing returns an empty ring.
func NewKeyRing() *KeyRing {
	return &KeyRing{private: make(map[string]*[32]byte)}
}

// Generate creates a fresh Curve25519 key pair, registers the private
// half under the returned verkey, and returns it. Use this for identities
// this process controls (e.g. "my_vk" in a test).
func (kr *KeyRing) Generate() (verkey string, err error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("crypto: failed to generate keypair: %w", err)
	}

	vk := base58.Encode(pub[:])

	kr.mu.Lock()
	kr.private[vk] = priv
	kr.mu.Unlock()

	return vk, nil
}

func publicKey(verkey string) (*[32]byte, error) {
	decoded := base58.Decode(verkey)
	if len(decoded) != 32 {
		return nil, fmt.Errorf("crypto: verkey %q does not decode to a 32-byte key", verkey)
	}
	var pub [32]byte
	copy(pub[:], decoded)
	return &pub, nil
}

func (kr *KeyRing) privateKey(verkey string) (*[32]byte, error) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	priv, ok := kr.private[verkey]
	if !ok {
		return nil, fmt.Errorf("crypto: no private key held for verkey %q", verkey)
	}
	return priv, nil
}
