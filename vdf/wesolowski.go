//
// Copyright (c) 2019 harmony-one
// Copyright (c) 2023 Quilibrium, Inc.
//
// SPDX-License-Identifier: MIT
//

package vdf

import (
	"context"
	"encoding/binary"
	"math"
	"math/big"
	"sort"

	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"

	"source.quilibrium.com/quilibrium/monorepo/vdfgate/iqc"
)

// WesolowskiVDF produces and checks proofs of the form y || pi, where
// y = x^(2^T) and pi = x^(2^T // B) for a prime B bound to x, y and T.
type WesolowskiVDF struct {
	params
}

var _ Scheme = (*WesolowskiVDF)(nil)

func NewWesolowskiVDF(securityBits uint16) (*WesolowskiVDF, error) {
	p, err := newParams(securityBits)
	if err != nil {
		return nil, err
	}

	return &WesolowskiVDF{params: p}, nil
}

func (w *WesolowskiVDF) Name() string {
	return "wesolowski"
}

func (w *WesolowskiVDF) SecurityBits() uint16 {
	return w.bits
}

func (w *WesolowskiVDF) CheckDifficulty(difficulty uint64) error {
	if difficulty == 0 {
		return errors.Wrap(ErrInvalidIterations, "difficulty must be positive")
	}

	if difficulty > math.MaxUint32 {
		return errors.Wrapf(
			ErrInvalidIterations,
			"difficulty %d does not fit in 32 bits",
			difficulty,
		)
	}

	return nil
}

func (w *WesolowskiVDF) Solve(challenge []byte, difficulty uint64) (
	[]byte,
	error,
) {
	return w.SolveContext(context.Background(), challenge, difficulty)
}

func (w *WesolowskiVDF) SolveContext(
	ctx context.Context,
	challenge []byte,
	difficulty uint64,
) ([]byte, error) {
	if err := w.CheckDifficulty(difficulty); err != nil {
		return nil, err
	}

	d, x, err := w.setup(challenge)
	if err != nil {
		return nil, err
	}

	y, proof, err := w.calculate(ctx, d, x, difficulty)
	if err != nil {
		return nil, errors.Wrap(err, "solve")
	}

	yBuf, err := w.serialize(y)
	if err != nil {
		return nil, errors.Wrap(err, "solve")
	}

	proofBuf, err := w.serialize(proof)
	if err != nil {
		return nil, errors.Wrap(err, "solve")
	}

	return append(yBuf, proofBuf...), nil
}

func (w *WesolowskiVDF) Verify(
	challenge []byte,
	difficulty uint64,
	solution []byte,
) error {
	if err := w.CheckDifficulty(difficulty); err != nil {
		return err
	}

	d, x, err := w.setup(challenge)
	if err != nil {
		return err
	}

	elements, err := w.decode(solution, d, 2)
	if err != nil {
		return err
	}

	return w.verifyProof(x, elements[0], elements[1], difficulty)
}

// Creates L and k parameters from papers, based on how many iterations need to be
// performed, and how much memory should be used.
func approximateParameters(T uint64) (int, int) {
	//log_memory = math.log(10000000, 2)
	logMemory := math.Log(10000000) / math.Log(2)
	logT := math.Log(float64(T)) / math.Log(2)
	L := 1

	if logT-logMemory > 0 {
		L = int(math.Ceil(math.Pow(2, logMemory-20)))
	}

	// Total time for proof: T/k + L * 2^(k+1)
	// To optimize, set left equal to right, and solve for k
	// k = W(T * log(2) / (2 * L))  / log(2), where W is the product log function
	// W can be approximated by log(x) - log(log(x)) + 0.25
	intermediate := float64(T) * math.Log(2) / float64(2*L)
	k := 1
	if intermediate > 1 {
		lg := math.Log(intermediate)
		k = int(math.Max(math.Round(lg-math.Log(lg)+0.25), 1))
	}

	return L, k
}

func iterateSquarings(
	ctx context.Context,
	x *iqc.ClassGroup,
	powersToCalculate []uint64,
) (map[uint64]*iqc.ClassGroup, error) {
	powersCalculated := make(map[uint64]*iqc.ClassGroup)

	previousPower := uint64(0)
	currX := x
	sort.Slice(powersToCalculate, func(i, j int) bool {
		return powersToCalculate[i] < powersToCalculate[j]
	})

	var err error
	for _, currentPower := range powersToCalculate {
		currX, err = repeatedSquare(ctx, currX, currentPower-previousPower)
		if err != nil {
			return nil, err
		}

		previousPower = currentPower
		powersCalculated[currentPower] = currX
	}

	return powersCalculated, nil
}

// Creates a random prime based on input x, y, T
// Note – this differs from harmony-one's implementation, as the Fiat-Shamir
// transform requires _all_ public parameters be input, or else there is the
// potential to forge proofs of time for larger iterations modulo the prime
func hashPrime(x, y []byte, T uint32) *big.Int {
	var j uint64 = 0

	z := new(big.Int)
	for {
		s := append([]byte("prime"), binary.BigEndian.AppendUint64(nil, j)...)
		s = append(s, x...)
		s = append(s, y...)
		s = binary.BigEndian.AppendUint32(s, T)

		checkSum := sha256.Sum256(s)
		z.SetBytes(checkSum[:16])

		if z.ProbablyPrime(1) {
			return z
		}
		j++
	}
}

// Gets the ith block of 2^T // B
// such that sum(get_block(i) * 2^ki) = t^T // B
func getBlock(i, k int, T uint64, B *big.Int) int {
	//(pow(2, k) * pow(2, T - k * (i + 1), B)) // B
	p1 := new(big.Int).Lsh(big.NewInt(1), uint(k))
	e := new(big.Int).SetUint64(T - uint64(k*(i+1)))
	p2 := new(big.Int).Exp(big.NewInt(2), e, B)
	return int(iqc.FloorDivision(p1.Mul(p1, p2), B).Int64())
}

// Optimized evaluation of h ^ (2^T // B)
func evalOptimized(
	identity *iqc.ClassGroup,
	B *big.Int,
	T uint64,
	k, l int,
	C map[uint64]*iqc.ClassGroup,
) (*iqc.ClassGroup, error) {
	//k1 = k//2
	k1 := k / 2
	k0 := k - k1

	//x = identity
	x := identity
	var err error

	bLimit := 1 << k
	kLimit := 1 << k0
	for j := l - 1; j > -1; j-- {
		//x = pow(x, pow(2, k))
		if x, err = x.RepeatedSquare(uint64(k)); err != nil {
			return nil, err
		}

		//ys = {}
		ys := make([]*iqc.ClassGroup, bLimit)
		for b := range ys {
			ys[b] = identity
		}

		//for i in range(0, math.ceil((T)/(k*l))):
		rounds := (T + uint64(k*l) - 1) / uint64(k*l)
		for i := uint64(0); i < rounds; i++ {
			if T < uint64(k)*(i*uint64(l)+uint64(j)+1) {
				continue
			}

			b := getBlock(int(i)*l+j, k, T, B)
			if ys[b], err = ys[b].Multiply(C[i*uint64(k*l)]); err != nil {
				return nil, err
			}
		}

		//for b1 in range(0, pow(2, k1)):
		for b1 := 0; b1 < 1<<k1; b1++ {
			z := identity
			//for b0 in range(0, pow(2, k0)):
			for b0 := 0; b0 < kLimit; b0++ {
				//z *= ys[b1 * pow(2, k0) + b0]
				if z, err = z.Multiply(ys[b1*kLimit+b0]); err != nil {
					return nil, err
				}
			}

			//x *= pow(z, b1 * pow(2, k0))
			c, err := z.Exp(big.NewInt(int64(b1 * kLimit)))
			if err != nil {
				return nil, err
			}
			if x, err = x.Multiply(c); err != nil {
				return nil, err
			}
		}

		//for b0 in range(0, pow(2, k0)):
		for b0 := 0; b0 < kLimit; b0++ {
			z := identity
			//for b1 in range(0, pow(2, k1)):
			for b1 := 0; b1 < 1<<k1; b1++ {
				//z *= ys[b1 * pow(2, k0) + b0]
				if z, err = z.Multiply(ys[b1*kLimit+b0]); err != nil {
					return nil, err
				}
			}

			//x *= pow(z, b0)
			d, err := z.Exp(big.NewInt(int64(b0)))
			if err != nil {
				return nil, err
			}
			if x, err = x.Multiply(d); err != nil {
				return nil, err
			}
		}
	}

	return x, nil
}

// generate y = x ^ (2 ^T) and pi
func (w *WesolowskiVDF) calculate(
	ctx context.Context,
	discriminant *big.Int,
	x *iqc.ClassGroup,
	iterations uint64,
) (y, proof *iqc.ClassGroup, err error) {
	L, k := approximateParameters(iterations)
	step := uint64(k * L)
	loopCount := (iterations + step - 1) / step

	powersToCalculate := make([]uint64, 0, loopCount+2)
	for i := uint64(0); i < loopCount+1; i++ {
		powersToCalculate = append(powersToCalculate, i*step)
	}
	powersToCalculate = append(powersToCalculate, iterations)

	powers, err := iterateSquarings(ctx, x, powersToCalculate)
	if err != nil {
		return nil, nil, err
	}

	y = powers[iterations]

	xBuf, err := w.serialize(x)
	if err != nil {
		return nil, nil, err
	}

	yBuf, err := w.serialize(y)
	if err != nil {
		return nil, nil, err
	}

	B := hashPrime(xBuf, yBuf, uint32(iterations))
	identity := iqc.IdentityForDiscriminant(discriminant)

	proof, err = evalOptimized(identity, B, iterations, k, L, powers)
	if err != nil {
		return nil, nil, err
	}

	return y, proof, nil
}

func (w *WesolowskiVDF) verifyProof(x, y, proof *iqc.ClassGroup, T uint64) error {
	xBuf, err := w.serialize(x)
	if err != nil {
		return errors.Wrap(ErrInvalidProof, err.Error())
	}

	yBuf, err := w.serialize(y)
	if err != nil {
		return errors.Wrap(ErrInvalidProof, err.Error())
	}

	B := hashPrime(xBuf, yBuf, uint32(T))

	r := new(big.Int).Exp(big.NewInt(2), new(big.Int).SetUint64(T), B)

	piB, err := proof.Exp(B)
	if err != nil {
		return errors.Wrap(ErrInvalidProof, err.Error())
	}

	xR, err := x.Exp(r)
	if err != nil {
		return errors.Wrap(ErrInvalidProof, err.Error())
	}

	z, err := piB.Multiply(xR)
	if err != nil {
		return errors.Wrap(ErrInvalidProof, err.Error())
	}

	if !z.Equal(y) {
		return ErrInvalidProof
	}

	return nil
}
