package types_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/types"
)

func TestNewAccountAddress(t *testing.T) {
	raw := bytes.Repeat([]byte{0xab}, types.AddressLength)
	addr, err := types.NewAccountAddress(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, addr.Bytes())

	_, err = types.NewAccountAddress(raw[1:])
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestAccountAddressHex(t *testing.T) {
	addr, err := types.AccountAddressFromHex("0x1")
	require.NoError(t, err)
	assert.Equal(t, byte(1), addr[types.AddressLength-1])
	assert.Equal(
		t,
		"0x0000000000000000000000000000000000000000000000000000000000000001",
		addr.String(),
	)

	again, err := types.AccountAddressFromHex(addr.Hex())
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	_, err = types.AccountAddressFromHex("0xzz")
	assert.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = types.AccountAddressFromHex("0x" + string(bytes.Repeat([]byte("00"), 33)))
	assert.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestBytesIsCopy(t *testing.T) {
	var addr types.AccountAddress
	b := addr.Bytes()
	b[0] = 1
	assert.Equal(t, byte(0), addr[0])
}
