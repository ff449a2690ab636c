package natives_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/natives"
	"source.quilibrium.com/quilibrium/monorepo/vdfgate/types"
)

func TestExtractAddressFromChallenge(t *testing.T) {
	seed := sha3.Sum256([]byte("TestExtractAddressFromChallenge"))
	challenge := append(seed[:], []byte("trailing bytes are ignored")...)

	address, fragment, err := natives.ExtractAddressFromChallenge(challenge)
	require.NoError(t, err)

	assert.Equal(t, challenge[:natives.KeyFragmentLength], fragment[:])
	assert.Equal(
		t,
		challenge[natives.AuthenticationKeyLength-types.AddressLength:natives.AuthenticationKeyLength],
		address.Bytes(),
	)

	again, fragmentAgain, err := natives.ExtractAddressFromChallenge(challenge)
	require.NoError(t, err)
	assert.Equal(t, address, again)
	assert.Equal(t, fragment, fragmentAgain)

	// only the first 32 bytes matter
	other, otherFragment, err := natives.ExtractAddressFromChallenge(seed[:])
	require.NoError(t, err)
	assert.Equal(t, address, other)
	assert.Equal(t, fragment, otherFragment)
}

func TestExtractAddressSequential(t *testing.T) {
	challenge := make([]byte, 32)
	for i := range challenge {
		challenge[i] = byte(i)
	}

	address, fragment, err := natives.ExtractAddressFromChallenge(challenge)
	require.NoError(t, err)
	assert.Equal(t, challenge, address.Bytes())
	assert.Equal(
		t,
		natives.KeyFragment{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		fragment,
	)
}

func TestExtractAddressShortChallenge(t *testing.T) {
	for n := 0; n < natives.AuthenticationKeyLength; n++ {
		_, _, err := natives.ExtractAddressFromChallenge(bytes.Repeat([]byte{0x01}, n))
		assert.ErrorIs(t, err, natives.ErrStructuralPrecondition, "length %d", n)
	}

	_, _, err := natives.ExtractAddressFromChallenge(nil)
	assert.ErrorIs(t, err, natives.ErrStructuralPrecondition)
}
