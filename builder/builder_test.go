package builder

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenzoki/agen/a2a/crypto"
	"github.com/tenzoki/agen/a2a/envelope"
	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/settings"
)

func validDID() string    { return base58.Encode(make([]byte, 16)) }
func validVerkey() string { return base58.Encode(make([]byte, 32)) }

func setupTestPipeline(t *testing.T, version settings.Version) pipeline {
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
		settings.KeyRemoteToSDKDID:    validDID(),
	})
	return envelope.New(store, provider)
}

func TestBaseSettersRejectInvalidDIDAndPreserveState(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewCreateKeyBuilder(p)

	good := validDID()
	_, err := b.To(good)
	require.NoError(t, err)
	assert.Equal(t, good, b.toDID)

	_, err = b.To("not-a-valid-did")
	assert.Error(t, err)
	assert.Equal(t, good, b.toDID, "failed setter must not mutate prior state")
}

func TestBaseSettersRejectInvalidVerkey(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewCreateKeyBuilder(p)

	_, err := b.ToVK("too-short")
	assert.Error(t, err)
	assert.Empty(t, b.toVK)

	good := validVerkey()
	_, err = b.ToVK(good)
	require.NoError(t, err)
	assert.Equal(t, good, b.toVK)
}

func TestCreateKeyBuilderPrepareRequestV2(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewCreateKeyBuilder(p)
	_, err := b.To(validDID())
	require.NoError(t, err)
	_, err = b.ForDID(validDID())
	require.NoError(t, err)
	_, err = b.ForDIDVerkey(validVerkey())
	require.NoError(t, err)

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestUpdateConnectionBuilderDefaultsToRejected(t *testing.T) {
	p := setupTestPipeline(t, settings.V1)
	b := NewUpdateConnectionBuilder(p)
	assert.Equal(t, message.StatusRejected, b.statusCode)

	b.StatusCode(message.StatusAccepted)
	assert.Equal(t, message.StatusAccepted, b.statusCode)
}

func TestUpdateConnectionBuilderPrepareRequestV1(t *testing.T) {
	p := setupTestPipeline(t, settings.V1)
	b := NewUpdateConnectionBuilder(p)
	_, err := b.To(validDID())
	require.NoError(t, err)

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestSendInviteBuilderPrepareRequestV2SingleMessage(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewSendInviteBuilder(p)
	_, err := b.To(validDID())
	require.NoError(t, err)
	b.KeyDlgProof(json.RawMessage(`{"agentDID":"x"}`)).Phone("555-0100")

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestSendInviteBuilderPrepareRequestV1RoutesThroughAgent(t *testing.T) {
	p := setupTestPipeline(t, settings.V1)
	b := NewSendInviteBuilder(p)
	_, err := b.To(validDID())
	require.NoError(t, err)
	// ToVK is the sender's own pairwise verkey, so the ring must hold its
	// private key for PrepMsg to authenticate the inner hop.
	pwVK, err := p.Store.Get(settings.KeySDKToRemoteVerkey)
	require.NoError(t, err)
	_, err = b.ToVK(pwVK)
	require.NoError(t, err)
	_, err = b.AgentDID(validDID())
	require.NoError(t, err)
	_, err = b.AgentVK(validVerkey())
	require.NoError(t, err)
	b.KeyDlgProof(json.RawMessage(`{"agentDID":"x"}`))

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestGetMessagesBuilderPrepareRequest(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewGetMessagesBuilder(p)
	_, err := b.To(validDID())
	require.NoError(t, err)
	b.Uids([]string{"u1", "u2"}).StatusCodes([]message.StatusCode{message.StatusCreated})

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestUpdateConfigsBuilderAppendsConfigs(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewUpdateConfigsBuilder(p)
	_, err := b.To(validDID())
	require.NoError(t, err)
	b.Config("name", "Alice").Config("logoUrl", "https://example.com/a.png")

	assert.Len(t, b.configs, 2)

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestSendRemoteMessageBuilderDefaultsSendMsgTrue(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewSendRemoteMessageBuilder(p)
	assert.True(t, b.sendMsg)

	_, err := b.To(validDID())
	require.NoError(t, err)
	b.Mtype(message.RemoteMessageCredOffer).Payload(json.RawMessage(`{"offer":1}`))

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestProofRequestBuilderEncryptsPayload(t *testing.T) {
	ring := crypto.NewKeyRing()
	provider := crypto.NewBoxProvider(ring)
	sdkVK, err := ring.Generate()
	require.NoError(t, err)
	agentVK, err := ring.Generate()
	require.NoError(t, err)
	agencyVK, err := ring.Generate()
	require.NoError(t, err)
	theirVK, err := ring.Generate()
	require.NoError(t, err)

	store := settings.NewFileStore(settings.V2, map[string]string{
		settings.KeySDKToRemoteVerkey: sdkVK,
		settings.KeyRemoteToSDKVerkey: agentVK,
		settings.KeyAgencyVerkey:      agencyVK,
	})
	p := envelope.New(store, provider)

	b := NewProofRequestBuilder(p)
	_, err = b.To(validDID())
	require.NoError(t, err)
	_, err = b.ToVK(theirVK)
	require.NoError(t, err)
	b.MyVK(sdkVK).ProofRequest(json.RawMessage(`{"name":"proof-req"}`))

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}

func TestSendRemoteMessageBuilderAssignsIDWhenUnset(t *testing.T) {
	ring := crypto.NewKeyRing()
	provider := crypto.NewBoxProvider(ring)
	sdkVK, err := ring.Generate()
	require.NoError(t, err)
	agentVK, err := ring.Generate()
	require.NoError(t, err)
	agencyVK, err := ring.Generate()
	require.NoError(t, err)

	agencyDID := validDID()
	store := settings.NewFileStore(settings.V2, map[string]string{
		settings.KeySDKToRemoteVerkey: sdkVK,
		settings.KeyRemoteToSDKVerkey: agentVK,
		settings.KeyAgencyVerkey:      agencyVK,
		settings.KeyRemoteToSDKDID:    agencyDID,
	})
	p := envelope.New(store, provider)

	b := NewSendRemoteMessageBuilder(p)
	_, err = b.To(agencyDID)
	require.NoError(t, err)
	b.Mtype(message.RemoteMessageCredOffer).Payload(json.RawMessage(`{"offer":1}`))

	wire, err := b.PrepareRequest()
	require.NoError(t, err)

	unpacked, err := provider.UnpackMessage(wire)
	require.NoError(t, err)

	var view struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(unpacked, &view))

	decoded, err := message.DecodeJSON([]byte(view.Message))
	require.NoError(t, err)
	fwd := decoded.(*message.ForwardV2)

	innerUnpacked, err := provider.UnpackMessage(fwd.Msg)
	require.NoError(t, err)
	var innerView struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(innerUnpacked, &innerView))

	decodedInner, err := message.DecodeJSON([]byte(innerView.Message))
	require.NoError(t, err)
	got := decodedInner.(*message.SendRemoteMessage)
	assert.NotEmpty(t, got.ID, "PrepareRequest must assign a correlation id when none was set")
}

func TestAcceptInviteBuilderPrepareRequestV2(t *testing.T) {
	p := setupTestPipeline(t, settings.V2)
	b := NewAcceptInviteBuilder(p)
	_, err := b.To(validDID())
	require.NoError(t, err)
	b.SenderDetail(json.RawMessage(`{"DID":"abc"}`)).
		SenderAgencyDetail(json.RawMessage(`{"DID":"def"}`)).
		ReplyToMsgID("msg-1")

	wire, err := b.PrepareRequest()
	require.NoError(t, err)
	assert.NotEmpty(t, wire)
}
