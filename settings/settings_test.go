package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileDefaultsToV1WhenVersionOmitted(t *testing.T) {
	store, err := ParseFile([]byte(`
sdk_to_remote_verkey: myvk
remote_to_sdk_verkey: agentvk
agency_verkey: agencyvk
remote_to_sdk_did: did1
`))
	require.NoError(t, err)
	assert.Equal(t, V1, store.ProtocolVersion())

	v, err := store.Get(KeySDKToRemoteVerkey)
	require.NoError(t, err)
	assert.Equal(t, "myvk", v)
}

func TestParseFileRejectsUnknownVersion(t *testing.T) {
	_, err := ParseFile([]byte(`protocol_version: "9.9"`))
	assert.Error(t, err)
}

func TestFileStoreGetMissingKeyFails(t *testing.T) {
	store := NewFileStore(V2, map[string]string{})
	_, err := store.Get(KeyAgencyVerkey)
	var notFound *ErrKeyNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestFileStoreGetReturnsConfiguredValue(t *testing.T) {
	store := NewFileStore(V2, map[string]string{KeyAgencyVerkey: "av"})
	v, err := store.Get(KeyAgencyVerkey)
	require.NoError(t, err)
	assert.Equal(t, "av", v)
}
