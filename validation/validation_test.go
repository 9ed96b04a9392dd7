package validation

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
)

func TestValidateDIDAcceptsSixteenBytes(t *testing.T) {
	did := base58.Encode(make([]byte, 16))
	assert.NoError(t, ValidateDID(did))
}

func TestValidateDIDRejectsWrongLength(t *testing.T) {
	did := base58.Encode(make([]byte, 10))
	assert.Error(t, ValidateDID(did))
}

func TestValidateVerkeyAcceptsThirtyTwoBytes(t *testing.T) {
	vk := base58.Encode(make([]byte, 32))
	assert.NoError(t, ValidateVerkey(vk))
}

func TestValidateVerkeyRejectsWrongLength(t *testing.T) {
	vk := base58.Encode(make([]byte, 16))
	assert.Error(t, ValidateVerkey(vk))
}
