package natives

import (
	"source.quilibrium.com/quilibrium/monorepo/vdfgate/vdf"
)

// SchemeConstructor builds a scheme for the given discriminant size.
type SchemeConstructor func(securityBits uint16) (vdf.Scheme, error)

// NewWesolowski adapts vdf.NewWesolowskiVDF to SchemeConstructor.
func NewWesolowski(securityBits uint16) (vdf.Scheme, error) {
	return vdf.NewWesolowskiVDF(securityBits)
}

// NewPietrzak adapts vdf.NewPietrzakVDF to SchemeConstructor.
func NewPietrzak(securityBits uint16) (vdf.Scheme, error) {
	return vdf.NewPietrzakVDF(securityBits)
}

// Verifier applies the parameter ceilings and dispatches to a scheme. It
// holds no mutable state and may be shared between goroutines.
type Verifier struct {
	wesolowski SchemeConstructor
	pietrzak   SchemeConstructor
}

// NewVerifier returns a Verifier backed by the class group schemes.
func NewVerifier() *Verifier {
	return NewVerifierWithSchemes(NewWesolowski, NewPietrzak)
}

// NewVerifierWithSchemes returns a Verifier that builds schemes with the given
// constructors.
func NewVerifierWithSchemes(
	wesolowski SchemeConstructor,
	pietrzak SchemeConstructor,
) *Verifier {
	return &Verifier{
		wesolowski: wesolowski,
		pietrzak:   pietrzak,
	}
}

var defaultVerifier = NewVerifier()

// Verify reports whether solution proves difficulty sequential squarings over
// challenge. ErrResourceLimitExceeded is returned if security or difficulty is
// above its ceiling; every other failure is reported as false.
func Verify(
	challenge []byte,
	solution []byte,
	difficulty uint64,
	security uint64,
	useWesolowski bool,
) (bool, error) {
	return defaultVerifier.Verify(
		challenge,
		solution,
		difficulty,
		security,
		useWesolowski,
	)
}

func (v *Verifier) Verify(
	challenge []byte,
	solution []byte,
	difficulty uint64,
	security uint64,
	useWesolowski bool,
) (bool, error) {
	if err := checkLimits(difficulty, security, useWesolowski); err != nil {
		return false, err
	}

	bits, err := narrowSecurity(security)
	if err != nil {
		return false, err
	}

	construct := v.pietrzak
	if useWesolowski {
		construct = v.wesolowski
	}

	scheme, err := construct(bits)
	if err != nil {
		return false, nil
	}

	return scheme.Verify(challenge, difficulty, solution) == nil, nil
}
