package natives

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ModuleName is the host module the natives are registered under.
const ModuleName = "vdf"

// StatusCode is the VM status carried by an aborted native call.
type StatusCode uint64

const (
	StatusExceededMaxTransactionSize StatusCode = 10
	StatusExecuted                   StatusCode = 4001
)

// NativeResult is either a successful return with values, or an abort with a
// status code. Neither native charges gas.
type NativeResult struct {
	Cost   uint64
	Values []Value
	Status StatusCode
}

func (r *NativeResult) Ok() bool {
	return r.Status == StatusExecuted
}

func executed(values ...Value) *NativeResult {
	return &NativeResult{Status: StatusExecuted, Values: values}
}

func aborted(status StatusCode) *NativeResult {
	return &NativeResult{Status: status}
}

// NativeFunction is the host calling convention. A returned error is an
// invariant violation that fails the whole call.
type NativeFunction func(args *ArgStack) (*NativeResult, error)

type NamedFunction struct {
	Name     string
	Function NativeFunction
}

type Natives struct {
	logger   *zap.Logger
	verifier *Verifier
}

func NewNatives(logger *zap.Logger) *Natives {
	return NewNativesWithVerifier(logger, NewVerifier())
}

func NewNativesWithVerifier(logger *zap.Logger, verifier *Verifier) *Natives {
	return &Natives{
		logger:   logger,
		verifier: verifier,
	}
}

// NativeVerify expects challenge, solution, difficulty, security and
// use_wesolowski in declared order.
func (n *Natives) NativeVerify(args *ArgStack) (*NativeResult, error) {
	if args.Len() != 5 {
		n.logger.Error("verify called with wrong arity", zap.Int("args", args.Len()))
		return nil, errors.Wrapf(ErrArgumentCount, "verify: got %d", args.Len())
	}

	useWesolowski, err := args.PopBool()
	if err != nil {
		return nil, errors.Wrap(err, "verify")
	}

	security, err := args.PopU64()
	if err != nil {
		return nil, errors.Wrap(err, "verify")
	}

	difficulty, err := args.PopU64()
	if err != nil {
		return nil, errors.Wrap(err, "verify")
	}

	solution, err := args.PopBytes()
	if err != nil {
		return nil, errors.Wrap(err, "verify")
	}

	challenge, err := args.PopBytes()
	if err != nil {
		return nil, errors.Wrap(err, "verify")
	}

	valid, err := n.verifier.Verify(
		challenge,
		solution,
		difficulty,
		security,
		useWesolowski,
	)
	if errors.Is(err, ErrResourceLimitExceeded) {
		n.logger.Debug(
			"parameters above limit",
			zap.Uint64("difficulty", difficulty),
			zap.Uint64("security", security),
			zap.Bool("wesolowski", useWesolowski),
		)
		return aborted(StatusExceededMaxTransactionSize), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "verify")
	}

	if !valid {
		n.logger.Debug(
			"verification failed",
			zap.Binary("challenge", challenge),
			zap.Uint64("difficulty", difficulty),
			zap.Uint64("security", security),
			zap.Bool("wesolowski", useWesolowski),
		)
	}

	return executed(Bool(valid)), nil
}

// NativeExtractAddressFromChallenge expects a single challenge argument and
// returns the address followed by the key fragment.
func (n *Natives) NativeExtractAddressFromChallenge(
	args *ArgStack,
) (*NativeResult, error) {
	if args.Len() != 1 {
		n.logger.Error(
			"extract_address_from_challenge called with wrong arity",
			zap.Int("args", args.Len()),
		)
		return nil, errors.Wrapf(
			ErrArgumentCount,
			"extract address from challenge: got %d",
			args.Len(),
		)
	}

	challenge, err := args.PopBytes()
	if err != nil {
		return nil, errors.Wrap(err, "extract address from challenge")
	}

	address, fragment, err := ExtractAddressFromChallenge(challenge)
	if err != nil {
		n.logger.Error("challenge too short", zap.Int("length", len(challenge)))
		return nil, err
	}

	return executed(Address(address), Bytes(fragment[:])), nil
}

// MakeAll returns the natives in registration order.
func (n *Natives) MakeAll() []NamedFunction {
	return []NamedFunction{
		{Name: "verify", Function: n.NativeVerify},
		{Name: "extract_address_from_challenge", Function: n.NativeExtractAddressFromChallenge},
	}
}

// QualifiedNames maps module-qualified names such as "vdf::verify" to their
// functions.
func (n *Natives) QualifiedNames() map[string]NativeFunction {
	table := make(map[string]NativeFunction)
	for _, f := range n.MakeAll() {
		table[ModuleName+"::"+f.Name] = f.Function
	}

	return table
}
