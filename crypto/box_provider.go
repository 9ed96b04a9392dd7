package crypto

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// BoxProvider implements Provider on top of golang.org/x/crypto/nacl/box:
// crypto_box for authenticated sealing (PrepMsg/ParseMsg, PackMessage) and
// crypto_box_seal for anonymous sealing (PrepAnonymousMsg). The wire shape
// of the sealed/packed bytes is internal to this package — the codec only
// ever round-trips them through the same Provider, so fidelity to indy-sdk's
// actual on-the-wire bytes is not required, only a consistent, documented
// envelope.
type BoxProvider struct {
	ring *KeyRing
}

// NewBoxProvider builds a Provider backed by ring for private-key lookups.
func NewBoxProvider(ring *KeyRing) *BoxProvider {
	return &BoxProvider{ring: ring}
}

// sealedEnvelope is the wire shape returned by PrepMsg/PrepAnonymousMsg.
type sealedEnvelope struct {
	SenderVK   string `json:"sender_vk,omitempty"`
	Anonymous  bool   `json:"anon"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ct"`
}

func (p *BoxProvider) PrepMsg(myVK, theirVK string, plaintext []byte) ([]byte, error) {
	myPriv, err := p.ring.privateKey(myVK)
	if err != nil {
		return nil, err
	}
	theirPub, err := publicKey(theirVK)
	if err != nil {
		return nil, err
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("crypto: failed to generate nonce: %w", err)
	}

	ct := box.Seal(nil, plaintext, &nonce, theirPub, myPriv)

	return json.Marshal(sealedEnvelope{
		SenderVK:   myVK,
		Nonce:      nonce[:],
		Ciphertext: ct,
	})
}

func (p *BoxProvider) PrepAnonymousMsg(theirVK string, plaintext []byte) ([]byte, error) {
	theirPub, err := publicKey(theirVK)
	if err != nil {
		return nil, err
	}

	ct, err := box.SealAnonymous(nil, plaintext, theirPub, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("crypto: anonymous seal failed: %w", err)
	}

	return json.Marshal(sealedEnvelope{
		Anonymous:  true,
		Ciphertext: ct,
	})
}

func (p *BoxProvider) ParseMsg(myVK string, sealed []byte) (string, []byte, error) {
	var env sealedEnvelope
	if err := json.Unmarshal(sealed, &env); err != nil {
		return "", nil, fmt.Errorf("crypto: malformed sealed envelope: %w", err)
	}

	myPub, err := publicKey(myVK)
	if err != nil {
		return "", nil, err
	}
	myPriv, err := p.ring.privateKey(myVK)
	if err != nil {
		return "", nil, err
	}

	if env.Anonymous {
		plaintext, ok := box.OpenAnonymous(nil, env.Ciphertext, myPub, myPriv)
		if !ok {
			return "", nil, fmt.Errorf("crypto: failed to open anonymous box")
		}
		return "", plaintext, nil
	}

	senderPub, err := publicKey(env.SenderVK)
	if err != nil {
		return "", nil, err
	}

	var nonce [24]byte
	copy(nonce[:], env.Nonce)

	plaintext, ok := box.Open(nil, env.Ciphertext, &nonce, senderPub, myPriv)
	if !ok {
		return "", nil, fmt.Errorf("crypto: failed to open box")
	}
	return env.SenderVK, plaintext, nil
}

// packedEnvelope is the wire shape returned by PackMessage.
type packedEnvelope struct {
	Anonymous   bool   `json:"anon"`
	SenderVK    string `json:"sender_vk,omitempty"`
	RecipientVK string `json:"recipient_vk"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

func (p *BoxProvider) PackMessage(senderVK *string, recipientVKs []string, plaintext []byte) ([]byte, error) {
	if len(recipientVKs) == 0 {
		return nil, fmt.Errorf("crypto: pack_message requires at least one recipient")
	}
	recipientVK := recipientVKs[0]
	recipientPub, err := publicKey(recipientVK)
	if err != nil {
		return nil, err
	}

	env := packedEnvelope{RecipientVK: recipientVK}

	if senderVK == nil {
		ct, err := box.SealAnonymous(nil, plaintext, recipientPub, rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("crypto: anonymous pack failed: %w", err)
		}
		env.Anonymous = true
		env.Ciphertext = ct
	} else {
		senderPriv, err := p.ring.privateKey(*senderVK)
		if err != nil {
			return nil, err
		}

		var nonce [24]byte
		if _, err := rand.Read(nonce[:]); err != nil {
			return nil, fmt.Errorf("crypto: failed to generate nonce: %w", err)
		}

		env.SenderVK = *senderVK
		env.Nonce = nonce[:]
		env.Ciphertext = box.Seal(nil, plaintext, &nonce, recipientPub, senderPriv)
	}

	packed, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to marshal packed envelope: %w", err)
	}
	return packed, nil
}

// unpackResult mirrors indy-sdk's unpack_message output shape: a JSON
// object carrying the recovered plaintext under "message" alongside the
// verkeys involved, rather than the plaintext bytes directly. Callers
// (payload.go, envelope.go) decode this and pull "message" back out.
type unpackResult struct {
	Message         string `json:"message"`
	SenderVerkey    string `json:"sender_verkey,omitempty"`
	RecipientVerkey string `json:"recipient_verkey"`
}

func (p *BoxProvider) UnpackMessage(packed []byte) ([]byte, error) {
	var env packedEnvelope
	if err := json.Unmarshal(packed, &env); err != nil {
		return nil, fmt.Errorf("crypto: malformed packed envelope: %w", err)
	}

	recipientPub, err := publicKey(env.RecipientVK)
	if err != nil {
		return nil, err
	}
	recipientPriv, err := p.ring.privateKey(env.RecipientVK)
	if err != nil {
		return nil, err
	}

	var plaintext []byte
	if env.Anonymous {
		opened, ok := box.OpenAnonymous(nil, env.Ciphertext, recipientPub, recipientPriv)
		if !ok {
			return nil, fmt.Errorf("crypto: failed to open anonymous packed message")
		}
		plaintext = opened
	} else {
		senderPub, err := publicKey(env.SenderVK)
		if err != nil {
			return nil, err
		}
		var nonce [24]byte
		copy(nonce[:], env.Nonce)

		opened, ok := box.Open(nil, env.Ciphertext, &nonce, senderPub, recipientPriv)
		if !ok {
			return nil, fmt.Errorf("crypto: failed to open packed message")
		}
		plaintext = opened
	}

	result := unpackResult{
		Message:         string(plaintext),
		SenderVerkey:    env.SenderVK,
		RecipientVerkey: env.RecipientVK,
	}
	return json.Marshal(result)
}
