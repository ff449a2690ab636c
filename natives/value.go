package natives

import (
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/types"
)

type Kind int

const (
	KindBool Kind = iota
	KindU64
	KindBytes
	KindAddress
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindU64:
		return "u64"
	case KindBytes:
		return "vector<u8>"
	case KindAddress:
		return "address"
	}

	return "unknown"
}

// Value is a single argument or return value exchanged with the host.
type Value struct {
	kind    Kind
	boolean bool
	u64     uint64
	bytes   []byte
	address types.AccountAddress
}

func Bool(v bool) Value {
	return Value{kind: KindBool, boolean: v}
}

func U64(v uint64) Value {
	return Value{kind: KindU64, u64: v}
}

func Bytes(v []byte) Value {
	return Value{kind: KindBytes, bytes: v}
}

func Address(v types.AccountAddress) Value {
	return Value{kind: KindAddress, address: v}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) mismatch(want Kind) error {
	return errors.Wrapf(ErrTypeMismatch, "expected %s, got %s", want, v.kind)
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}

	return v.boolean, nil
}

func (v Value) AsU64() (uint64, error) {
	if v.kind != KindU64 {
		return 0, v.mismatch(KindU64)
	}

	return v.u64, nil
}

func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, v.mismatch(KindBytes)
	}

	return v.bytes, nil
}

func (v Value) AsAddress() (types.AccountAddress, error) {
	if v.kind != KindAddress {
		return types.AccountAddress{}, v.mismatch(KindAddress)
	}

	return v.address, nil
}

// ArgStack holds call arguments in declared order. Pops take the last
// declared argument first.
type ArgStack struct {
	values []Value
}

func NewArgStack(values ...Value) *ArgStack {
	return &ArgStack{values: append([]Value{}, values...)}
}

func (s *ArgStack) Len() int {
	return len(s.values)
}

func (s *ArgStack) pop() (Value, error) {
	if len(s.values) == 0 {
		return Value{}, errors.Wrap(ErrArgumentCount, "pop from empty stack")
	}

	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

func (s *ArgStack) PopBool() (bool, error) {
	v, err := s.pop()
	if err != nil {
		return false, err
	}

	return v.AsBool()
}

func (s *ArgStack) PopU64() (uint64, error) {
	v, err := s.pop()
	if err != nil {
		return 0, err
	}

	return v.AsU64()
}

func (s *ArgStack) PopBytes() ([]byte, error) {
	v, err := s.pop()
	if err != nil {
		return nil, err
	}

	return v.AsBytes()
}
