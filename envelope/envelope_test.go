package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenzoki/agen/a2a/bundle"
	"github.com/tenzoki/agen/a2a/crypto"
	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/settings"
)

type testFixture struct {
	ring        *crypto.KeyRing
	provider    *crypto.BoxProvider
	sdkVK       string
	agentVK     string
	agencyVK    string
	agencyDID   string
}

func setupTestFixture(t *testing.T, version settings.Version) (Pipeline, testFixture) {
	t.Helper()
	ring := crypto.NewKeyRing()
	provider := crypto.NewBoxProvider(ring)

	sdkVK, err := ring.Generate()
	require.NoError(t, err)
	agentVK, err := ring.Generate()
	require.NoError(t, err)
	agencyVK, err := ring.Generate()
	require.NoError(t, err)

	store := settings.NewFileStore(version, map[string]string{
		settings.KeySDKToRemoteVerkey: sdkVK,
		settings.KeyRemoteToSDKVerkey: agentVK,
		settings.KeyAgencyVerkey:      agencyVK,
		settings.KeyRemoteToSDKDID:    "did:sov:agentdid",
	})

	return New(store, provider), testFixture{
		ring: ring, provider: provider,
		sdkVK: sdkVK, agentVK: agentVK, agencyVK: agencyVK,
		agencyDID: "did:sov:agencydid",
	}
}

func TestPrepareMessageForAgencyV2ProducesDecryptableForward(t *testing.T) {
	pipeline, fx := setupTestFixture(t, settings.V2)

	msg := message.CreateKey{
		Type:         message.Build(settings.V2, message.KindCreateKey),
		ForDID:       "did:sov:fordid",
		ForDIDVerkey: "forverkey",
	}

	wire, err := pipeline.PrepareMessageForAgency(msg, fx.agencyDID)
	require.NoError(t, err)

	unpacked, err := fx.provider.UnpackMessage(wire)
	require.NoError(t, err)

	var view unpackedMessageView
	require.NoError(t, json.Unmarshal(unpacked, &view))

	decodedFwd, err := message.DecodeJSON([]byte(view.Message))
	require.NoError(t, err)
	fwd := decodedFwd.(*message.ForwardV2)
	assert.Equal(t, fx.agencyDID, fwd.FWD)

	innerUnpacked, err := fx.provider.UnpackMessage(fwd.Msg)
	require.NoError(t, err)
	var innerView unpackedMessageView
	require.NoError(t, json.Unmarshal(innerUnpacked, &innerView))

	decodedInner, err := message.DecodeJSON([]byte(innerView.Message))
	require.NoError(t, err)
	got := decodedInner.(*message.CreateKey)
	assert.Equal(t, "did:sov:fordid", got.ForDID)
}

func TestPrepareMessageForAgencyV1ProducesDecryptableForward(t *testing.T) {
	pipeline, fx := setupTestFixture(t, settings.V1)

	msg := message.CreateKey{
		Type:         message.Build(settings.V1, message.KindCreateKey),
		ForDID:       "did:sov:fordid",
		ForDIDVerkey: "forverkey",
	}

	wire, err := pipeline.PrepareMessageForAgency(msg, fx.agencyDID)
	require.NoError(t, err)

	_, plain, err := fx.provider.ParseMsg(fx.agencyVK, wire)
	require.NoError(t, err)

	outerBundle, err := bundle.FromBytes(plain)
	require.NoError(t, err)
	require.Len(t, outerBundle.Items, 1)

	decodedFwd, err := message.DecodeMsgpack(outerBundle.Items[0])
	require.NoError(t, err)
	fwd := decodedFwd.(*message.ForwardV1)
	assert.Equal(t, fx.agencyDID, fwd.FWD)

	_, innerPlain, err := fx.provider.ParseMsg(fx.agentVK, fwd.Msg)
	require.NoError(t, err)

	innerBundle, err := bundle.FromBytes(innerPlain)
	require.NoError(t, err)
	require.Len(t, innerBundle.Items, 1)

	decodedInner, err := message.DecodeMsgpack(innerBundle.Items[0])
	require.NoError(t, err)
	got := decodedInner.(*message.CreateKey)
	assert.Equal(t, "did:sov:fordid", got.ForDID)
}

func TestPrepareMessageForAgentV1BundlesMultipleMessages(t *testing.T) {
	pipeline, fx := setupTestFixture(t, settings.V1)

	msgs := []message.A2AMessage{
		message.CreateMessage{
			Type:    message.BuildV1(message.KindCreateMessage),
			Mtype:   message.RemoteMessageConnReq,
			SendMsg: true,
		},
		message.MessageDetailMessage{
			Type:    message.BuildV1(message.KindMessageDetail),
			MsgType: message.RemoteMessageConnReq,
		},
	}

	wire, err := pipeline.PrepareMessageForAgent(msgs, fx.sdkVK, "did:sov:agentdid", fx.agentVK)
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestPrepareMessageForAgentV2RequiresAtLeastOneMessage(t *testing.T) {
	pipeline, fx := setupTestFixture(t, settings.V2)

	_, err := pipeline.PrepareMessageForAgent(nil, fx.sdkVK, "did:sov:agentdid", fx.agentVK)
	assert.Error(t, err)
}

func TestParseResponseFromAgencyV2(t *testing.T) {
	pipeline, fx := setupTestFixture(t, settings.V2)

	reply := message.KeyCreated{
		Type:                  message.Build(settings.V2, message.KindKeyCreated),
		WithPairwiseDID:       "did:sov:pw",
		WithPairwiseDIDVerkey: "pwvk",
	}
	encoded, err := message.EncodeJSON(reply)
	require.NoError(t, err)

	packed, err := fx.provider.PackMessage(&fx.agencyVK, []string{fx.sdkVK}, encoded)
	require.NoError(t, err)

	decoded, err := pipeline.ParseResponseFromAgency(fx.sdkVK, packed)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	got := decoded[0].(*message.KeyCreated)
	assert.Equal(t, "did:sov:pw", got.WithPairwiseDID)
}

func TestParseResponseFromAgencyV1BundlesMultipleMessages(t *testing.T) {
	pipeline, fx := setupTestFixture(t, settings.V1)

	replyA := message.KeyCreated{
		Type:                  message.Build(settings.V1, message.KindKeyCreated),
		WithPairwiseDID:       "did:sov:pw1",
		WithPairwiseDIDVerkey: "pwvk1",
	}
	replyB := message.KeyCreated{
		Type:                  message.Build(settings.V1, message.KindKeyCreated),
		WithPairwiseDID:       "did:sov:pw2",
		WithPairwiseDIDVerkey: "pwvk2",
	}

	encA, err := message.EncodeMsgpack(replyA)
	require.NoError(t, err)
	encB, err := message.EncodeMsgpack(replyB)
	require.NoError(t, err)

	bundled, err := bundle.Of([][]byte{encA, encB}).Encode()
	require.NoError(t, err)

	sealed, err := fx.provider.PrepMsg(fx.agencyVK, fx.sdkVK, bundled)
	require.NoError(t, err)

	decoded, err := pipeline.ParseResponseFromAgency(fx.sdkVK, sealed)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "did:sov:pw1", decoded[0].(*message.KeyCreated).WithPairwiseDID)
	assert.Equal(t, "did:sov:pw2", decoded[1].(*message.KeyCreated).WithPairwiseDID)
}
