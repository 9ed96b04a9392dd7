// Package main is a runnable demonstration of the A2A codec and envelope
// pipeline end to end: it provisions an in-memory keyring, builds a
// CreateKey request through the builder contract, forward-wraps it for
// an agency, and then parses a simulated agency response back into a
// concrete message — without ever touching a network.
//
// Called by: operators exploring the codec from the command line.
// Calls: builder, envelope, crypto, settings, message.
package main

import (
	"encoding/json"
	"flag"
	"log"

	"github.com/tenzoki/agen/a2a/builder"
	"github.com/tenzoki/agen/a2a/bundle"
	"github.com/tenzoki/agen/a2a/crypto"
	"github.com/tenzoki/agen/a2a/envelope"
	"github.com/tenzoki/agen/a2a/message"
	"github.com/tenzoki/agen/a2a/settings"
)

func main() {
	var settingsFile string
	var version string
	flag.StringVar(&settingsFile, "settings", "", "path to a settings YAML file (defaults to an in-memory fixture)")
	flag.StringVar(&version, "version", "2.0", "protocol version to demonstrate: 1.0 or 2.0")
	flag.Parse()

	protocolVersion := settings.Version(version)
	if !protocolVersion.Valid() {
		log.Fatalf("a2a-demo: unknown -version %q", version)
	}

	ring := crypto.NewKeyRing()
	provider := crypto.NewBoxProvider(ring)

	sdkVK, err := ring.Generate()
	if err != nil {
		log.Fatalf("a2a-demo: failed to generate SDK verkey: %v", err)
	}
	agentVK, err := ring.Generate()
	if err != nil {
		log.Fatalf("a2a-demo: failed to generate agent verkey: %v", err)
	}
	agencyVK, err := ring.Generate()
	if err != nil {
		log.Fatalf("a2a-demo: failed to generate agency verkey: %v", err)
	}

	var store settings.Store
	if settingsFile != "" {
		fileStore, err := settings.LoadFile(settingsFile)
		if err != nil {
			log.Fatalf("a2a-demo: failed to load settings file: %v", err)
		}
		store = fileStore
		log.Printf("loaded settings from %s (protocol %s)", settingsFile, fileStore.ProtocolVersion())
	} else {
		store = settings.NewFileStore(protocolVersion, map[string]string{
			settings.KeySDKToRemoteVerkey: sdkVK,
			settings.KeyRemoteToSDKVerkey: agentVK,
			settings.KeyAgencyVerkey:      agencyVK,
			settings.KeyRemoteToSDKDID:    "did:sov:123456789abcdefghi1234",
		})
		log.Printf("using an in-memory settings fixture (protocol %s)", protocolVersion)
	}

	pipeline := envelope.New(store, provider)

	b := builder.NewCreateKeyBuilder(pipeline)
	if _, err := b.To("VsKV7grR1BUE29mG2Fm2kX"); err != nil {
		log.Fatalf("a2a-demo: invalid agency DID: %v", err)
	}

	wire, err := b.PrepareRequest()
	if err != nil {
		log.Fatalf("a2a-demo: failed to prepare CreateKey request: %v", err)
	}
	log.Printf("prepared CreateKey request: %d bytes", len(wire))

	reply := message.KeyCreated{
		Type:                  message.Build(store.ProtocolVersion(), message.KindKeyCreated),
		WithPairwiseDID:       "did:sov:newpairwise",
		WithPairwiseDIDVerkey: "newpairwiseverkey",
	}

	simulatedResponse := simulateAgencyResponse(provider, store, agencyVK, sdkVK, reply)

	decoded, err := pipeline.ParseResponseFromAgency(sdkVK, simulatedResponse)
	if err != nil {
		log.Fatalf("a2a-demo: failed to parse agency response: %v", err)
	}

	for _, msg := range decoded {
		pretty, _ := json.MarshalIndent(msg, "", "  ")
		log.Printf("decoded %s response:\n%s", msg.MessageKind(), pretty)
	}
}

// simulateAgencyResponse plays the agency's side of the wire protocol
// just enough to hand ParseResponseFromAgency something real to decode:
// it encodes reply the same way a live agency would and encrypts it to
// sdkVK, without going through a second Pipeline instance.
func simulateAgencyResponse(provider *crypto.BoxProvider, store settings.Store, agencyVK, sdkVK string, reply message.KeyCreated) []byte {
	version := store.ProtocolVersion()

	if version == settings.V2 {
		encoded, err := message.EncodeJSON(reply)
		if err != nil {
			log.Fatalf("a2a-demo: failed to encode simulated reply: %v", err)
		}
		packed, err := provider.PackMessage(&agencyVK, []string{sdkVK}, encoded)
		if err != nil {
			log.Fatalf("a2a-demo: failed to pack simulated reply: %v", err)
		}
		return packed
	}

	encoded, err := message.EncodeMsgpack(reply)
	if err != nil {
		log.Fatalf("a2a-demo: failed to encode simulated reply: %v", err)
	}
	bundled, err := bundle.Create(encoded).Encode()
	if err != nil {
		log.Fatalf("a2a-demo: failed to bundle simulated reply: %v", err)
	}
	sealed, err := provider.PrepMsg(agencyVK, sdkVK, bundled)
	if err != nil {
		log.Fatalf("a2a-demo: failed to seal simulated reply: %v", err)
	}
	return sealed
}
