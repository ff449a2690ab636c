//
// Copyright (c) 2019 harmony-one
// Copyright (c) 2023 Quilibrium, Inc.
//
// SPDX-License-Identifier: MIT
//

package iqc

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

type Pair struct {
	p int64
	q int64
}

const m = 8 * 3 * 5 * 7 * 11 * 13

const sieveSize = 1 << 16

var residues, sieveInfo = generateTables()

// generateTables builds the residues x < m with x = 7 (mod 8) that are
// coprime to m, and for every odd prime p < 2^16 not dividing m the pair
// (p, m^-1 mod p).
func generateTables() ([]int64, []Pair) {
	res := []int64{}
	for x := int64(7); x < m; x += 8 {
		if x%3 != 0 && x%5 != 0 && x%7 != 0 && x%11 != 0 && x%13 != 0 {
			res = append(res, x)
		}
	}

	composite := make([]bool, sieveSize)
	info := []Pair{}
	bigM := big.NewInt(m)
	for p := 2; p < sieveSize; p++ {
		if composite[p] {
			continue
		}

		for j := p * p; j < sieveSize; j += p {
			composite[j] = true
		}

		if m%p == 0 {
			continue
		}

		q := new(big.Int).ModInverse(bigM, big.NewInt(int64(p)))
		info = append(info, Pair{p: int64(p), q: q.Int64()})
	}

	return res, info
}

func EntropyFromSeed(seed []byte, byteCount uint32) []byte {
	buffer := bytes.Buffer{}
	bufferSize := uint32(0)

	extra := uint16(0)
	input := make([]byte, len(seed)+2)
	copy(input, seed)
	for bufferSize <= byteCount {
		binary.BigEndian.PutUint16(input[len(seed):], extra)
		moreEntropy := sha256.Sum256(input)
		buffer.Write(moreEntropy[:])
		bufferSize += sha256.Size
		extra += 1
	}

	return buffer.Bytes()[:byteCount]
}

// CreateDiscriminant derives a negative discriminant -p of the given bit length
// from seed, where p is the smallest prime of the form n + m*i with p = 7
// (mod 8). The same seed and length always give the same value.
func CreateDiscriminant(seed []byte, length uint16) (*big.Int, error) {
	if length < 8 {
		return nil, errors.Errorf("discriminant length %d too small", length)
	}

	extra := uint8(length) & 7
	byteCount := ((uint32(length) + 7) >> 3) + 2
	entropy := EntropyFromSeed(seed, byteCount)

	n := new(big.Int).SetBytes(entropy[:len(entropy)-2])
	n.Rsh(n, uint((8-extra)&7))
	n.SetBit(n, int(length-1), 1)
	n.Sub(n, new(big.Int).Mod(n, big.NewInt(m)))
	residue := residues[int(binary.BigEndian.Uint16(entropy[len(entropy)-2:]))%len(residues)]
	n.Add(n, big.NewInt(residue))

	step := new(big.Int).Mul(big.NewInt(m), big.NewInt(sieveSize))
	mod := new(big.Int)

	// Find the smallest prime >= n of the form n + m*x
	for {
		sieve := make([]bool, sieveSize)
		negN := new(big.Int).Neg(n)

		for _, v := range sieveInfo {
			// i = -n / m, so that m*i is -n (mod p)
			i := (mod.Mod(negN, big.NewInt(v.p)).Int64() * v.q) % v.p

			for i < int64(len(sieve)) {
				sieve[i] = true
				i += v.p
			}
		}

		for i, v := range sieve {
			if v {
				continue
			}

			t := new(big.Int).Add(n, big.NewInt(int64(m)*int64(i)))
			if t.ProbablyPrime(2) {
				return t.Neg(t), nil
			}
		}

		n.Add(n, step)
	}
}
