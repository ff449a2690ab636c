package natives_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/natives"
	"source.quilibrium.com/quilibrium/monorepo/vdfgate/types"
)

func verifyArgs(
	challenge, solution []byte,
	difficulty, security uint64,
	wesolowski bool,
) *natives.ArgStack {
	return natives.NewArgStack(
		natives.Bytes(challenge),
		natives.Bytes(solution),
		natives.U64(difficulty),
		natives.U64(security),
		natives.Bool(wesolowski),
	)
}

func TestNativeVerify(t *testing.T) {
	v, log := fakeVerifier()
	n := natives.NewNativesWithVerifier(zap.NewNop(), v)

	result, err := n.NativeVerify(verifyArgs([]byte{0xaa}, []byte("ok"), 100, 512, false))
	require.NoError(t, err)
	assert.True(t, result.Ok())
	assert.Equal(t, uint64(0), result.Cost)
	require.Len(t, result.Values, 1)
	valid, err := result.Values[0].AsBool()
	require.NoError(t, err)
	assert.True(t, valid)

	result, err = n.NativeVerify(verifyArgs([]byte{0xaa}, []byte("no"), 100, 512, true))
	require.NoError(t, err)
	assert.True(t, result.Ok())
	valid, err = result.Values[0].AsBool()
	require.NoError(t, err)
	assert.False(t, valid)

	assert.Equal(t, []call{
		{scheme: "pietrzak", bits: 512, difficulty: 100},
		{scheme: "wesolowski", bits: 512, difficulty: 100},
	}, log.all())
}

func TestNativeVerifyAborts(t *testing.T) {
	v, log := fakeVerifier()
	n := natives.NewNativesWithVerifier(zap.NewNop(), v)

	result, err := n.NativeVerify(verifyArgs(nil, []byte("ok"), 100, 4096, true))
	require.NoError(t, err)
	assert.False(t, result.Ok())
	assert.Equal(t, natives.StatusExceededMaxTransactionSize, result.Status)
	assert.Equal(t, uint64(0), result.Cost)
	assert.Empty(t, result.Values)

	result, err = n.NativeVerify(verifyArgs(nil, []byte("ok"), 900_000_001, 512, false))
	require.NoError(t, err)
	assert.Equal(t, natives.StatusExceededMaxTransactionSize, result.Status)

	assert.Empty(t, log.all())
}

func TestNativeVerifyArguments(t *testing.T) {
	n := natives.NewNatives(zap.NewNop())

	_, err := n.NativeVerify(natives.NewArgStack(natives.Bool(true)))
	assert.ErrorIs(t, err, natives.ErrArgumentCount)

	// security and use_wesolowski swapped
	_, err = n.NativeVerify(natives.NewArgStack(
		natives.Bytes(nil),
		natives.Bytes(nil),
		natives.U64(100),
		natives.Bool(true),
		natives.U64(512),
	))
	assert.ErrorIs(t, err, natives.ErrTypeMismatch)
}

func TestNativeExtract(t *testing.T) {
	n := natives.NewNatives(zap.NewNop())

	challenge := make([]byte, 40)
	for i := range challenge {
		challenge[i] = byte(0xff - i)
	}

	result, err := n.NativeExtractAddressFromChallenge(
		natives.NewArgStack(natives.Bytes(challenge)),
	)
	require.NoError(t, err)
	assert.True(t, result.Ok())
	require.Len(t, result.Values, 2)

	address, err := result.Values[0].AsAddress()
	require.NoError(t, err)
	expected, err := types.NewAccountAddress(challenge[:32])
	require.NoError(t, err)
	assert.Equal(t, expected, address)

	fragment, err := result.Values[1].AsBytes()
	require.NoError(t, err)
	assert.Equal(t, challenge[:16], fragment)

	_, err = n.NativeExtractAddressFromChallenge(
		natives.NewArgStack(natives.Bytes(challenge[:31])),
	)
	assert.ErrorIs(t, err, natives.ErrStructuralPrecondition)

	_, err = n.NativeExtractAddressFromChallenge(natives.NewArgStack())
	assert.ErrorIs(t, err, natives.ErrArgumentCount)

	_, err = n.NativeExtractAddressFromChallenge(
		natives.NewArgStack(natives.U64(1)),
	)
	assert.ErrorIs(t, err, natives.ErrTypeMismatch)
}

func TestMakeAll(t *testing.T) {
	n := natives.NewNatives(zap.NewNop())

	all := n.MakeAll()
	require.Len(t, all, 2)
	assert.Equal(t, "verify", all[0].Name)
	assert.Equal(t, "extract_address_from_challenge", all[1].Name)

	table := n.QualifiedNames()
	assert.Contains(t, table, "vdf::verify")
	assert.Contains(t, table, "vdf::extract_address_from_challenge")

	result, err := table["vdf::extract_address_from_challenge"](
		natives.NewArgStack(natives.Bytes(make([]byte, 32))),
	)
	require.NoError(t, err)
	assert.True(t, result.Ok())
}

func TestArgStackOrder(t *testing.T) {
	s := natives.NewArgStack(natives.U64(1), natives.U64(2), natives.Bool(true))
	assert.Equal(t, 3, s.Len())

	b, err := s.PopBool()
	require.NoError(t, err)
	assert.True(t, b)

	v, err := s.PopU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)

	_, err = s.PopBytes()
	assert.ErrorIs(t, err, natives.ErrTypeMismatch)

	_, err = s.PopU64()
	assert.ErrorIs(t, err, natives.ErrArgumentCount)
	assert.Equal(t, "u64", natives.KindU64.String())
}
