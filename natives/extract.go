package natives

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/types"
)

const (
	// AuthenticationKeyLength is the size of the leading challenge region the
	// address and key fragment are taken from.
	AuthenticationKeyLength = 32
	KeyFragmentLength       = 16
)

// an address cannot be longer than the authentication key it is cut from
const _ = uint(AuthenticationKeyLength - types.AddressLength)

type KeyFragment [KeyFragmentLength]byte

// ExtractAddressFromChallenge splits the first AuthenticationKeyLength bytes
// of challenge into the account address (its trailing types.AddressLength
// bytes) and the key fragment (its leading KeyFragmentLength bytes). Bytes
// past the authentication key are ignored.
func ExtractAddressFromChallenge(challenge []byte) (
	types.AccountAddress,
	KeyFragment,
	error,
) {
	var address types.AccountAddress
	var fragment KeyFragment

	if len(challenge) < AuthenticationKeyLength {
		return address, fragment, errors.Wrapf(
			ErrStructuralPrecondition,
			"extract address from challenge: need %d bytes, got %d",
			AuthenticationKeyLength,
			len(challenge),
		)
	}

	authKey := challenge[:AuthenticationKeyLength]
	copy(address[:], authKey[AuthenticationKeyLength-types.AddressLength:])
	copy(fragment[:], authKey[:KeyFragmentLength])

	return address, fragment, nil
}
