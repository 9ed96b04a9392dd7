package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyTextRoundTrip(t *testing.T) {
	text, err := FamilyPairwise.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "pairwise", string(text))

	var decoded Family
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, FamilyPairwise, decoded)
	assert.Equal(t, "1.0", decoded.Version())
}

func TestFamilyUnknownPreservesName(t *testing.T) {
	var decoded Family
	require.NoError(t, decoded.UnmarshalText([]byte("future_family")))
	assert.False(t, decoded.Known())
	assert.Equal(t, "future_family", decoded.Name())
}

func TestMessageDetailImplementationsReportRemoteType(t *testing.T) {
	var details []MessageDetail = []MessageDetail{
		GeneralMessageDetail{Msg: "hi", DetailType: RemoteMessageCred},
		ConnectionRequestDetail{KeyDlgProof: json.RawMessage(`{}`)},
		CredentialOfferDetail{Offer: json.RawMessage(`{}`)},
		ProofRequestDetail{ProofRequest: json.RawMessage(`{}`)},
	}

	assert.Equal(t, RemoteMessageCred, details[0].RemoteType())
	assert.Equal(t, RemoteMessageConnReq, details[1].RemoteType())
	assert.Equal(t, RemoteMessageCredOffer, details[2].RemoteType())
	assert.Equal(t, RemoteMessageProofReq, details[3].RemoteType())
}
