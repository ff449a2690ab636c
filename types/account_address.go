package types

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// AddressLength is the byte length of an account address.
const AddressLength = 32

var ErrInvalidAddress = errors.New("invalid account address")

type AccountAddress [AddressLength]byte

func NewAccountAddress(b []byte) (AccountAddress, error) {
	var addr AccountAddress
	if len(b) != AddressLength {
		return addr, errors.Wrapf(
			ErrInvalidAddress,
			"expected %d bytes, got %d",
			AddressLength,
			len(b),
		)
	}

	copy(addr[:], b)
	return addr, nil
}

// AccountAddressFromHex parses a hex address with or without a 0x prefix.
// Short values are left-padded with zeros.
func AccountAddressFromHex(s string) (AccountAddress, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) > 2*AddressLength {
		return AccountAddress{}, errors.Wrap(ErrInvalidAddress, "too long")
	}

	if len(s)%2 == 1 {
		s = "0" + s
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return AccountAddress{}, errors.Wrap(ErrInvalidAddress, err.Error())
	}

	var addr AccountAddress
	copy(addr[AddressLength-len(b):], b)
	return addr, nil
}

func (a AccountAddress) Bytes() []byte {
	return append([]byte{}, a[:]...)
}

func (a AccountAddress) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a AccountAddress) String() string {
	return a.Hex()
}
