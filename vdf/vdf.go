//
// Copyright (c) 2019 harmony-one
// Copyright (c) 2023 Quilibrium, Inc.
//
// SPDX-License-Identifier: MIT
//

package vdf

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/iqc"
)

// MinSecurityBits is the smallest discriminant size either scheme accepts.
const MinSecurityBits = 8

// squarings between cancellation checks
const checkInterval = 1 << 12

var (
	ErrInvalidSecurity   = errors.New("invalid security parameter")
	ErrInvalidIterations = errors.New("invalid number of iterations")
	ErrInvalidProof      = errors.New("invalid proof")
)

// Scheme is a class group verifiable delay function with a fixed discriminant
// size. The discriminant is derived from the challenge, the starting element
// is the form (2, 1, c) for it.
type Scheme interface {
	Name() string
	SecurityBits() uint16
	// CheckDifficulty reports whether the scheme can produce and verify proofs
	// for the given number of squarings.
	CheckDifficulty(difficulty uint64) error
	Solve(challenge []byte, difficulty uint64) ([]byte, error)
	SolveContext(
		ctx context.Context,
		challenge []byte,
		difficulty uint64,
	) ([]byte, error)
	// Verify returns nil if solution is a valid proof of difficulty squarings
	// for challenge.
	Verify(challenge []byte, difficulty uint64, solution []byte) error
}

type params struct {
	bits    uint16
	intSize int
}

func newParams(bits uint16) (params, error) {
	if bits < MinSecurityBits {
		return params{}, errors.Wrapf(
			ErrInvalidSecurity,
			"%d bits is below minimum of %d",
			bits,
			MinSecurityBits,
		)
	}

	return params{bits: bits, intSize: iqc.IntSize(bits)}, nil
}

func (p params) elementSize() int {
	return 2 * p.intSize
}

// setup derives the discriminant for challenge and the starting element.
func (p params) setup(challenge []byte) (*big.Int, *iqc.ClassGroup, error) {
	d, err := iqc.CreateDiscriminant(challenge, p.bits)
	if err != nil {
		return nil, nil, errors.Wrap(err, "setup")
	}

	x := iqc.NewClassGroupFromAbDiscriminant(big.NewInt(2), big.NewInt(1), d)
	return d, x.Reduced(), nil
}

func (p params) serialize(group *iqc.ClassGroup) ([]byte, error) {
	return group.Serialize(p.intSize)
}

// decode splits buf into count elements, rejecting any length mismatch or
// non-canonical element.
func (p params) decode(
	buf []byte,
	d *big.Int,
	count int,
) ([]*iqc.ClassGroup, error) {
	size := p.elementSize()
	if len(buf) != size*count {
		return nil, errors.Wrapf(
			ErrInvalidProof,
			"expected %d bytes, got %d",
			size*count,
			len(buf),
		)
	}

	elements := make([]*iqc.ClassGroup, count)
	for i := range elements {
		e, err := iqc.NewClassGroupFromBytesDiscriminant(
			buf[i*size:(i+1)*size],
			d,
			p.intSize,
		)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidProof, err.Error())
		}

		elements[i] = e
	}

	return elements, nil
}

// repeatedSquare computes x^(2^n), returning early if ctx is done.
func repeatedSquare(
	ctx context.Context,
	x *iqc.ClassGroup,
	n uint64,
) (*iqc.ClassGroup, error) {
	var err error
	for i := uint64(0); i < n; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if x, err = x.Square(); err != nil {
			return nil, err
		}
	}

	return x, nil
}
