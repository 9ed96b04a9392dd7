package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestProvider(t *testing.T) (*BoxProvider, *KeyRing, func()) {
	ring := NewKeyRing()
	provider := NewBoxProvider(ring)
	return provider, ring, func() {}
}

func TestPrepMsgParseMsgRoundTrip(t *testing.T) {
	provider, ring, cleanup := setupTestProvider(t)
	defer cleanup()

	aliceVK, err := ring.Generate()
	require.NoError(t, err)
	bobVK, err := ring.Generate()
	require.NoError(t, err)

	sealed, err := provider.PrepMsg(aliceVK, bobVK, []byte("hello bob"))
	require.NoError(t, err)

	senderVK, plaintext, err := provider.ParseMsg(bobVK, sealed)
	require.NoError(t, err)
	assert.Equal(t, aliceVK, senderVK)
	assert.Equal(t, "hello bob", string(plaintext))
}

func TestPrepAnonymousMsgParseMsgRoundTrip(t *testing.T) {
	provider, ring, cleanup := setupTestProvider(t)
	defer cleanup()

	bobVK, err := ring.Generate()
	require.NoError(t, err)

	sealed, err := provider.PrepAnonymousMsg(bobVK, []byte("anonymous tip"))
	require.NoError(t, err)

	senderVK, plaintext, err := provider.ParseMsg(bobVK, sealed)
	require.NoError(t, err)
	assert.Empty(t, senderVK)
	assert.Equal(t, "anonymous tip", string(plaintext))
}

func TestPackMessageUnpackMessageAuthenticated(t *testing.T) {
	provider, ring, cleanup := setupTestProvider(t)
	defer cleanup()

	aliceVK, err := ring.Generate()
	require.NoError(t, err)
	bobVK, err := ring.Generate()
	require.NoError(t, err)

	packed, err := provider.PackMessage(&aliceVK, []string{bobVK}, []byte(`{"hi":"there"}`))
	require.NoError(t, err)

	view, err := provider.UnpackMessage(packed)
	require.NoError(t, err)
	assert.Contains(t, string(view), `\"hi\":\"there\"`)
}

func TestPackMessageUnpackMessageAnonymous(t *testing.T) {
	provider, ring, cleanup := setupTestProvider(t)
	defer cleanup()

	bobVK, err := ring.Generate()
	require.NoError(t, err)

	packed, err := provider.PackMessage(nil, []string{bobVK}, []byte(`{"anon":true}`))
	require.NoError(t, err)

	view, err := provider.UnpackMessage(packed)
	require.NoError(t, err)
	assert.Contains(t, string(view), `\"anon\":true`)
}

func TestParseMsgFailsWithoutPrivateKey(t *testing.T) {
	provider, ring, cleanup := setupTestProvider(t)
	defer cleanup()

	aliceVK, err := ring.Generate()
	require.NoError(t, err)
	bobVK, err := ring.Generate()
	require.NoError(t, err)

	sealed, err := provider.PrepMsg(aliceVK, bobVK, []byte("secret"))
	require.NoError(t, err)

	otherRing := NewKeyRing()
	otherProvider := NewBoxProvider(otherRing)
	_, _, err = otherProvider.ParseMsg(bobVK, sealed)
	assert.Error(t, err)
}

func TestPackMessageRequiresRecipient(t *testing.T) {
	provider, _, cleanup := setupTestProvider(t)
	defer cleanup()

	_, err := provider.PackMessage(nil, nil, []byte("x"))
	assert.Error(t, err)
}
