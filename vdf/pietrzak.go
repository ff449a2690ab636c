//
// Copyright (c) 2023 Quilibrium, Inc.
//
// SPDX-License-Identifier: MIT
//

package vdf

import (
	"context"
	"math/big"

	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/iqc"
)

// PietrzakMinDifficulty is the smallest even iteration count that leaves
// enough halvings for the proof.
const PietrzakMinDifficulty = 66

// number of halving steps left to the verifier
const pietrzakDelta = 8

// PietrzakVDF produces and checks proofs of the form y || mu_1 || ... || mu_n,
// where each mu halves the remaining claim x^(2^T) = y until the verifier can
// square the rest directly.
type PietrzakVDF struct {
	params
}

var _ Scheme = (*PietrzakVDF)(nil)

func NewPietrzakVDF(securityBits uint16) (*PietrzakVDF, error) {
	p, err := newParams(securityBits)
	if err != nil {
		return nil, err
	}

	return &PietrzakVDF{params: p}, nil
}

func (p *PietrzakVDF) Name() string {
	return "pietrzak"
}

func (p *PietrzakVDF) SecurityBits() uint16 {
	return p.bits
}

func (p *PietrzakVDF) CheckDifficulty(difficulty uint64) error {
	if difficulty&1 != 0 || difficulty < PietrzakMinDifficulty {
		return errors.Wrapf(
			ErrInvalidIterations,
			"difficulty %d must be even and at least %d",
			difficulty,
			PietrzakMinDifficulty,
		)
	}

	return nil
}

// halvings returns the sequence of claim lengths visited for T, ending at
// 2 then 1.
func halvings(T uint64) []uint64 {
	ts := []uint64{}
	for c := T; c != 2; {
		ts = append(ts, c)
		c >>= 1
		if c&1 == 1 {
			c++
		}
	}

	return append(ts, 2, 1)
}

// finalLength is the claim length the verifier squares out directly, together
// with the number of intermediate values the proof carries.
func finalLength(T uint64) (uint64, int) {
	ts := halvings(T)
	idx := len(ts) - pietrzakDelta
	if idx < 0 {
		idx = 0
	}

	return ts[idx], idx
}

// nextLength halves the claim length, rounding up to even. The flag reports
// whether rounding occurred, in which case y must be squared once more.
func nextLength(c uint64) (uint64, bool) {
	c >>= 1
	if c&1 == 1 {
		return c + 1, true
	}

	return c, false
}

func (p *PietrzakVDF) Solve(challenge []byte, difficulty uint64) (
	[]byte,
	error,
) {
	return p.SolveContext(context.Background(), challenge, difficulty)
}

func (p *PietrzakVDF) SolveContext(
	ctx context.Context,
	challenge []byte,
	difficulty uint64,
) ([]byte, error) {
	if err := p.CheckDifficulty(difficulty); err != nil {
		return nil, err
	}

	_, x, err := p.setup(challenge)
	if err != nil {
		return nil, err
	}

	y, err := repeatedSquare(ctx, x, difficulty)
	if err != nil {
		return nil, errors.Wrap(err, "solve")
	}

	out, err := p.serialize(y)
	if err != nil {
		return nil, errors.Wrap(err, "solve")
	}

	final, _ := finalLength(difficulty)
	currX, currY, curr := x, y, difficulty
	for curr != final {
		mu, err := repeatedSquare(ctx, currX, curr/2)
		if err != nil {
			return nil, errors.Wrap(err, "solve")
		}

		currX, currY, curr, err = p.halve(currX, currY, mu, curr)
		if err != nil {
			return nil, errors.Wrap(err, "solve")
		}

		muBuf, err := p.serialize(mu)
		if err != nil {
			return nil, errors.Wrap(err, "solve")
		}
		out = append(out, muBuf...)
	}

	return out, nil
}

func (p *PietrzakVDF) Verify(
	challenge []byte,
	difficulty uint64,
	solution []byte,
) error {
	if err := p.CheckDifficulty(difficulty); err != nil {
		return err
	}

	d, x, err := p.setup(challenge)
	if err != nil {
		return err
	}

	final, rounds := finalLength(difficulty)
	elements, err := p.decode(solution, d, rounds+1)
	if err != nil {
		return err
	}

	currX, currY, curr := x, elements[0], difficulty
	for _, mu := range elements[1:] {
		currX, currY, curr, err = p.halve(currX, currY, mu, curr)
		if err != nil {
			return errors.Wrap(ErrInvalidProof, err.Error())
		}
	}

	if curr != final {
		return errors.Wrap(ErrInvalidProof, "round count mismatch")
	}

	check, err := currX.RepeatedSquare(final)
	if err != nil {
		return errors.Wrap(ErrInvalidProof, err.Error())
	}

	if !check.Equal(currY) {
		return ErrInvalidProof
	}

	return nil
}

// halve folds the claim x^(2^c) = y with midpoint mu into x' = x^r * mu,
// y' = mu^r * y of roughly half the length.
func (p *PietrzakVDF) halve(
	x, y, mu *iqc.ClassGroup,
	c uint64,
) (*iqc.ClassGroup, *iqc.ClassGroup, uint64, error) {
	r, err := p.challengeScalar(x, y, mu)
	if err != nil {
		return nil, nil, 0, err
	}

	xr, err := x.Exp(r)
	if err != nil {
		return nil, nil, 0, err
	}

	nextX, err := xr.Multiply(mu)
	if err != nil {
		return nil, nil, 0, err
	}

	mur, err := mu.Exp(r)
	if err != nil {
		return nil, nil, 0, err
	}

	nextY, err := mur.Multiply(y)
	if err != nil {
		return nil, nil, 0, err
	}

	next, rounded := nextLength(c)
	if rounded {
		if nextY, err = nextY.Square(); err != nil {
			return nil, nil, 0, err
		}
	}

	return nextX, nextY, next, nil
}

// challengeScalar is the first 16 bytes of sha256(x || y || mu).
func (p *PietrzakVDF) challengeScalar(x, y, mu *iqc.ClassGroup) (
	*big.Int,
	error,
) {
	h := sha256.New()
	for _, e := range []*iqc.ClassGroup{x, y, mu} {
		buf, err := p.serialize(e)
		if err != nil {
			return nil, err
		}
		h.Write(buf)
	}

	return new(big.Int).SetBytes(h.Sum(nil)[:16]), nil
}
