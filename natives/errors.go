package natives

import "github.com/pkg/errors"

var (
	// ErrResourceLimitExceeded is returned before any cryptographic work when
	// a parameter is above its ceiling.
	ErrResourceLimitExceeded = errors.New("resource limit exceeded")
	// ErrStructuralPrecondition is returned when an input is too short for
	// its fixed layout.
	ErrStructuralPrecondition = errors.New("structural precondition violated")
	ErrTypeMismatch           = errors.New("argument type mismatch")
	ErrArgumentCount          = errors.New("wrong number of arguments")
)
