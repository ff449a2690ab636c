//
// Copyright (c) 2019 harmony-one
// Copyright (c) 2023 Quilibrium, Inc.
//
// SPDX-License-Identifier: MIT
//

package iqc

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	ErrInvalidEncoding = errors.New("invalid class group encoding")
	ErrNotReduced      = errors.New("class group element is not reduced")
	ErrUnsolvable      = errors.New("congruence has no solution")
	ErrOverflow        = errors.New("coefficient exceeds encoding width")
)

// ClassGroup is the binary quadratic form ax^2 + bxy + cy^2 of negative
// discriminant d = b^2 - 4ac. Values are immutable: every operation returns a
// fresh element and never modifies its receiver or arguments.
type ClassGroup struct {
	a *big.Int
	b *big.Int
	c *big.Int
	d *big.Int
}

func NewClassGroup(a, b, c *big.Int) *ClassGroup {
	return newClassGroup(a, b, c, nil)
}

func newClassGroup(a, b, c, d *big.Int) *ClassGroup {
	if d == nil {
		d = new(big.Int).Mul(b, b)
		d.Sub(d, new(big.Int).Lsh(new(big.Int).Mul(a, c), 2))
	}

	return &ClassGroup{a: a, b: b, c: c, d: d}
}

func NewClassGroupFromAbDiscriminant(a, b, discriminant *big.Int) *ClassGroup {
	//z = b*b-discriminant
	z := new(big.Int).Sub(new(big.Int).Mul(b, b), discriminant)

	//z = z // 4a
	c := FloorDivision(z, new(big.Int).Lsh(a, 2))

	return newClassGroup(
		new(big.Int).Set(a),
		new(big.Int).Set(b),
		c,
		discriminant,
	)
}

// NewClassGroupFromBytesDiscriminant decodes a serialized element. Only the
// canonical encoding is accepted: a > 0, 4a divides b^2 - d and the form is
// reduced.
func NewClassGroupFromBytesDiscriminant(
	buf []byte,
	discriminant *big.Int,
	intSize int,
) (*ClassGroup, error) {
	if intSize <= 0 || len(buf) != 2*intSize {
		return nil, errors.Wrapf(
			ErrInvalidEncoding,
			"expected %d bytes, got %d",
			2*intSize,
			len(buf),
		)
	}

	a := decodeTwosComplement(buf[:intSize])
	b := decodeTwosComplement(buf[intSize:])
	if a.Sign() <= 0 {
		return nil, errors.Wrap(ErrInvalidEncoding, "a is not positive")
	}

	z := new(big.Int).Sub(new(big.Int).Mul(b, b), discriminant)
	c, r := new(big.Int).QuoRem(z, new(big.Int).Lsh(a, 2), new(big.Int))
	if r.Sign() != 0 {
		return nil, errors.Wrap(
			ErrInvalidEncoding,
			"form does not match discriminant",
		)
	}

	group := newClassGroup(a, b, c, discriminant)
	if !group.IsReduced() {
		return nil, ErrNotReduced
	}

	return group, nil
}

func IdentityForDiscriminant(d *big.Int) *ClassGroup {
	return NewClassGroupFromAbDiscriminant(big.NewInt(1), big.NewInt(1), d)
}

// IntSize is the byte width of one serialized coefficient for a discriminant
// of the given bit length, including room for the sign.
func IntSize(bits uint16) int {
	return (int(bits) + 16) >> 4
}

func (group *ClassGroup) A() *big.Int {
	return new(big.Int).Set(group.a)
}

func (group *ClassGroup) B() *big.Int {
	return new(big.Int).Set(group.b)
}

func (group *ClassGroup) C() *big.Int {
	return new(big.Int).Set(group.c)
}

func (group *ClassGroup) Discriminant() *big.Int {
	return new(big.Int).Set(group.d)
}

func (group *ClassGroup) Normalized() *ClassGroup {
	a, b, c := group.a, group.b, group.c

	//if b > -a && b <= a:
	if b.Cmp(new(big.Int).Neg(a)) > 0 && b.Cmp(a) <= 0 {
		return group
	}

	//r = (a - b) // (2 * a)
	r := FloorDivision(new(big.Int).Sub(a, b), new(big.Int).Lsh(a, 1))

	//b, c = b + 2 * r * a, a * r * r + b * r + c
	ra := new(big.Int).Mul(r, a)
	newB := new(big.Int).Add(b, new(big.Int).Lsh(ra, 1))
	newC := new(big.Int).Mul(ra, r)
	newC.Add(newC, new(big.Int).Mul(b, r))
	newC.Add(newC, c)

	return newClassGroup(new(big.Int).Set(a), newB, newC, group.d)
}

func (group *ClassGroup) Reduced() *ClassGroup {
	g := group.Normalized()
	a, b, c := g.a, g.b, g.c

	//while a > c or (a == c and b < 0):
	for a.Cmp(c) > 0 || (a.Cmp(c) == 0 && b.Sign() < 0) {
		//s = (c + b) // (c + c)
		s := FloorDivision(new(big.Int).Add(c, b), new(big.Int).Lsh(c, 1))

		//a, b, c = c, -b + 2 * s * c, c * s * s - b * s + a
		cs := new(big.Int).Mul(c, s)
		newB := new(big.Int).Lsh(cs, 1)
		newB.Sub(newB, b)
		newC := new(big.Int).Mul(cs, s)
		newC.Sub(newC, new(big.Int).Mul(b, s))
		newC.Add(newC, a)

		a, b, c = c, newB, newC
	}

	return newClassGroup(a, b, c, g.d).Normalized()
}

// IsReduced reports whether the form is the unique reduced representative of
// its class.
func (group *ClassGroup) IsReduced() bool {
	a, b, c := group.a, group.b, group.c
	if a.Sign() <= 0 {
		return false
	}

	if b.Cmp(new(big.Int).Neg(a)) <= 0 || b.Cmp(a) > 0 {
		return false
	}

	switch a.Cmp(c) {
	case 1:
		return false
	case 0:
		return b.Sign() >= 0
	}

	return true
}

func (group *ClassGroup) identity() *ClassGroup {
	return IdentityForDiscriminant(group.d)
}

func (group *ClassGroup) Multiply(other *ClassGroup) (*ClassGroup, error) {
	//a1, b1, c1 = self.reduced()
	x := group.Reduced()

	//a2, b2, c2 = other.reduced()
	y := other.Reduced()

	//g = (b2 + b1) // 2
	g := FloorDivision(new(big.Int).Add(x.b, y.b), big.NewInt(2))

	//h = (b2 - b1) // 2
	h := FloorDivision(new(big.Int).Sub(y.b, x.b), big.NewInt(2))

	//w = mod.gcd(a1, a2, g)
	w := gcd(x.a, gcd(y.a, g))

	//j = w
	j := w
	//s = a1 // w
	s := FloorDivision(x.a, w)
	//t = a2 // w
	t := FloorDivision(y.a, w)
	//u = g // w
	u := FloorDivision(g, w)

	//k_temp, constant_factor = mod.solve_mod(t * u, h * u + s * c1, s * t)
	tu := new(big.Int).Mul(t, u)
	hu := new(big.Int).Mul(h, u)
	sc := new(big.Int).Mul(s, x.c)
	st := new(big.Int).Mul(s, t)
	kTemp, constantFactor, solvable := SolveMod(
		tu,
		new(big.Int).Add(hu, sc),
		st,
	)
	if !solvable {
		return nil, errors.Wrap(ErrUnsolvable, "multiply")
	}

	//n, constant_factor_2 = mod.solve_mod(t * constant_factor, h - t * k_temp, s)
	n, _, solvable := SolveMod(
		new(big.Int).Mul(t, constantFactor),
		new(big.Int).Sub(h, new(big.Int).Mul(t, kTemp)),
		s,
	)
	if !solvable {
		return nil, errors.Wrap(ErrUnsolvable, "multiply")
	}

	//k = k_temp + constant_factor * n
	k := new(big.Int).Add(kTemp, new(big.Int).Mul(constantFactor, n))

	//l = (t * k - h) // s
	l := FloorDivision(new(big.Int).Sub(new(big.Int).Mul(t, k), h), s)

	//m = (t * u * k - h * u - s * c1) // (s * t)
	tuk := new(big.Int).Mul(tu, k)
	tuk.Sub(tuk, hu)
	tuk.Sub(tuk, sc)
	m := FloorDivision(tuk, st)

	// with r = 0 the composition collapses to
	//a3 = s * t
	//b3 = j * u - (k * t + l * s)
	//c3 = k * l - j * m
	a3 := st
	b3 := new(big.Int).Mul(j, u)
	b3.Sub(b3, new(big.Int).Mul(k, t))
	b3.Sub(b3, new(big.Int).Mul(l, s))
	c3 := new(big.Int).Mul(k, l)
	c3.Sub(c3, new(big.Int).Mul(j, m))

	return newClassGroup(a3, b3, c3, group.d).Reduced(), nil
}

func (group *ClassGroup) Square() (*ClassGroup, error) {
	//µ solves bµ = c (mod a)
	u, _, solvable := SolveMod(group.b, group.c, group.a)
	if !solvable {
		return nil, errors.Wrap(ErrUnsolvable, "square")
	}

	//A = a^2
	A := new(big.Int).Mul(group.a, group.a)

	//B = b − 2aµ
	au := new(big.Int).Mul(group.a, u)
	B := new(big.Int).Sub(group.b, new(big.Int).Lsh(au, 1))

	//C = µ^2 - (bµ − c) // a
	C := new(big.Int).Mul(u, u)
	m := new(big.Int).Mul(group.b, u)
	m.Sub(m, group.c)
	C.Sub(C, FloorDivision(m, group.a))

	return newClassGroup(A, B, C, group.d).Reduced(), nil
}

// RepeatedSquare computes group^(2^n).
func (group *ClassGroup) RepeatedSquare(n uint64) (*ClassGroup, error) {
	x := group
	var err error
	for i := uint64(0); i < n; i++ {
		if x, err = x.Square(); err != nil {
			return nil, err
		}
	}

	return x, nil
}

// Exp computes group^n for n >= 0, scanning the exponent from its most
// significant bit.
func (group *ClassGroup) Exp(n *big.Int) (*ClassGroup, error) {
	if n.Sign() < 0 {
		return nil, errors.New("negative exponent")
	}

	x := group.Reduced()
	result := group.identity()
	var err error
	for i := n.BitLen() - 1; i >= 0; i-- {
		if result, err = result.Square(); err != nil {
			return nil, err
		}

		if n.Bit(i) == 1 {
			if result, err = result.Multiply(x); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// Serialize encodes the reduced a, b as big-endian two's complement values of
// intSize bytes each.
func (group *ClassGroup) Serialize(intSize int) ([]byte, error) {
	r := group.Reduced()

	buf := make([]byte, intSize*2)
	for i, v := range []*big.Int{r.a, r.b} {
		encoded := encodeTwosComplement(v)
		if len(encoded) > intSize {
			return nil, errors.Wrapf(
				ErrOverflow,
				"coefficient needs %d bytes, have %d",
				len(encoded),
				intSize,
			)
		}

		copy(buf[i*intSize:(i+1)*intSize], signBitFill(encoded, intSize))
	}

	return buf, nil
}

func (group *ClassGroup) Equal(other *ClassGroup) bool {
	g := group.Reduced()
	o := other.Reduced()

	return g.a.Cmp(o.a) == 0 && g.b.Cmp(o.b) == 0 && g.c.Cmp(o.c) == 0
}

func FloorDivision(x, y *big.Int) *big.Int {
	var r big.Int
	q, _ := new(big.Int).QuoRem(x, y, &r)

	if (r.Sign() == 1 && y.Sign() == -1) || (r.Sign() == -1 && y.Sign() == 1) {
		q.Sub(q, bigOne)
	}

	return q
}

var bigOne = big.NewInt(1)

func decodeTwosComplement(bytes []byte) *big.Int {
	if bytes[0]&0x80 == 0 {
		// non-negative
		return new(big.Int).SetBytes(bytes)
	}
	setyb := make([]byte, len(bytes))
	for i := range bytes {
		setyb[i] = bytes[i] ^ 0xff
	}
	n := new(big.Int).SetBytes(setyb)
	return n.Sub(n.Neg(n), bigOne)
}

func encodeTwosComplement(n *big.Int) []byte {
	if n.Sign() > 0 {
		bytes := n.Bytes()
		if bytes[0]&0x80 == 0 {
			return bytes
		}
		// add one more byte for positive sign
		buf := make([]byte, len(bytes)+1)
		copy(buf[1:], bytes)
		return buf
	}
	if n.Sign() < 0 {
		// invert and subtract 1, padding with 0xff if the top bit is clear
		nMinus1 := new(big.Int).Neg(n)
		nMinus1.Sub(nMinus1, bigOne)
		bytes := nMinus1.Bytes()
		if len(bytes) == 0 {
			// sneaky -1 value
			return []byte{0xff}
		}
		for i := range bytes {
			bytes[i] ^= 0xff
		}
		if bytes[0]&0x80 != 0 {
			return bytes
		}
		buf := make([]byte, len(bytes)+1)
		buf[0] = 0xff
		copy(buf[1:], bytes)
		return buf
	}
	return []byte{}
}

func signBitFill(bytes []byte, targetLen int) []byte {
	if len(bytes) >= targetLen {
		return bytes
	}
	buf := make([]byte, targetLen)
	offset := targetLen - len(bytes)
	if len(bytes) > 0 && bytes[0]&0x80 != 0 {
		for i := 0; i < offset; i++ {
			buf[i] = 0xff
		}
	}
	copy(buf[offset:], bytes)
	return buf
}

// gcd accepts operands of any sign and returns a non-negative result.
func gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// Solve ax == b mod m for x.
// Return s, t where x = s + k * t for integer k yields all solutions.
func SolveMod(a, b, m *big.Int) (s, t *big.Int, solvable bool) {
	//g, d, e = extended_gcd(a, m)
	d := new(big.Int)
	g := new(big.Int).GCD(d, nil, a, m)
	if g.Sign() == 0 {
		return nil, nil, false
	}

	//q, r = divmod(b, g)
	q, r := new(big.Int).QuoRem(b, g, new(big.Int))
	if r.Sign() != 0 {
		return nil, nil, false
	}

	//return (q * d) % m, m // g
	s = q.Mul(q, d)
	s.Mod(s, m)
	t = FloorDivision(m, g)
	return s, t, true
}
