package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenzoki/agen/a2a/crypto"
	"github.com/tenzoki/agen/a2a/settings"
)

func setupTestPayloadFixture(t *testing.T) (*crypto.BoxProvider, string, string, func()) {
	ring := crypto.NewKeyRing()
	provider := crypto.NewBoxProvider(ring)
	myVK, err := ring.Generate()
	require.NoError(t, err)
	theirVK, err := ring.Generate()
	require.NoError(t, err)
	return provider, myVK, theirVK, func() {}
}

func TestEncryptedDecryptedRoundTripV2(t *testing.T) {
	provider, myVK, theirVK, cleanup := setupTestPayloadFixture(t)
	defer cleanup()

	sealed, err := Encrypted(provider, settings.V2, myVK, theirVK, `{"hello":"world"}`, KindCredOffer)
	require.NoError(t, err)

	got, err := Decrypted(provider, settings.V2, theirVK, sealed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":"world"}`, got)
}

func TestEncryptedDecryptedRoundTripV1(t *testing.T) {
	provider, myVK, theirVK, cleanup := setupTestPayloadFixture(t)
	defer cleanup()

	sealed, err := Encrypted(provider, settings.V1, myVK, theirVK, "plain text body", KindProofRequest)
	require.NoError(t, err)

	got, err := Decrypted(provider, settings.V1, theirVK, sealed)
	require.NoError(t, err)
	assert.Equal(t, "plain text body", got)
}

func TestWireNameV1IsScreamingSnake(t *testing.T) {
	assert.Equal(t, "CRED_OFFER", KindCredOffer.wireName(settings.V1))
	assert.Equal(t, "PROOF_REQUEST", KindProofRequest.wireName(settings.V1))
}

func TestWireNameV2IsKebabCase(t *testing.T) {
	assert.Equal(t, "credential-offer", KindCredOffer.wireName(settings.V2))
	assert.Equal(t, "presentation-request", KindProofRequest.wireName(settings.V2))
}

func TestOtherKindPreservesNameAcrossVersions(t *testing.T) {
	k := OtherKind("custom-kind")
	assert.Equal(t, "custom-kind", k.wireName(settings.V1))
	assert.Equal(t, "custom-kind", k.wireName(settings.V2))
}

func TestBuildTypeSelectsShapeByVersion(t *testing.T) {
	v1 := BuildType(settings.V1, KindCred)
	require.NotNil(t, v1.V1)
	assert.Nil(t, v1.V2)
	assert.Equal(t, "json", v1.V1.Fmt)

	v2 := BuildType(settings.V2, KindCred)
	require.NotNil(t, v2.V2)
	assert.Nil(t, v2.V1)
	assert.Equal(t, "credential", v2.V2.Type)
}
