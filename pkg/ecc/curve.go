package ecc

import (
	"errors"
	"fmt"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

var (
	// ErrNotOnCurve is returned for coordinates that do not satisfy the curve
	// equation.
	ErrNotOnCurve = errors.New("ecc: point is not on the curve")

	// ErrSingularCurve is returned by NewCurve when 4a³ + 27b² ≡ 0 (mod p).
	ErrSingularCurve = errors.New("ecc: curve is singular")

	// ErrInvalidModulus is returned by NewCurve for a field modulus below 3.
	ErrInvalidModulus = errors.New("ecc: field modulus must be at least 3")
)

var (
	two   = bigint.New(2)
	three = bigint.New(3)
)

// Point is an affine curve point. The zero value is the point at infinity.
type Point struct {
	X, Y bigint.Int
	// finite is false for the point at infinity.
	finite bool
}

// Infinity returns the identity element.
func Infinity() Point {
	return Point{}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return !p.finite
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.finite != q.finite {
		return false
	}
	return !p.finite || (p.X.Equal(q.X) && p.Y.Equal(q.Y))
}

func (p Point) String() string {
	if !p.finite {
		return "(∞)"
	}
	return fmt.Sprintf("(%s; %s)", p.X, p.Y)
}

// Curve is y² = x³ + Ax + B over the integers mod P. G and N describe an
// optional base point and its order; they are zero for curves built with
// NewCurve.
type Curve struct {
	Name    string
	P, A, B bigint.Int
	G       Point
	N       bigint.Int
}

// NewCurve returns the curve y² = x³ + ax + b (mod p). p is expected to be
// prime; a composite modulus surfaces as modular.ErrNotInvertible from point
// arithmetic.
func NewCurve(p, a, b bigint.Int) (*Curve, error) {
	if p.Less(three) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModulus, p)
	}
	c := &Curve{
		P: p,
		A: mustMod(a, p),
		B: mustMod(b, p),
	}

	// 4a³ + 27b²
	disc := bigint.New(4).Mul(c.A).Mul(c.A).Mul(c.A).Add(bigint.New(27).Mul(c.B).Mul(c.B))
	if mustMod(disc, p).IsZero() {
		return nil, ErrSingularCurve
	}
	return c, nil
}

// WithBase returns a copy of c with base point g of order n. c itself is
// left unchanged, so the shared Secp256k1 curve can be rebased safely.
func (c *Curve) WithBase(g Point, n bigint.Int) (*Curve, error) {
	if !c.IsOnCurve(g) {
		return nil, fmt.Errorf("base point %s: %w", g, ErrNotOnCurve)
	}
	cp := *c
	cp.G = g
	cp.N = n
	return &cp, nil
}

// Point returns the affine point (x, y) after reducing both coordinates mod P.
func (c *Curve) Point(x, y bigint.Int) (Point, error) {
	p := Point{X: mustMod(x, c.P), Y: mustMod(y, c.P), finite: true}
	if !c.IsOnCurve(p) {
		return Point{}, fmt.Errorf("%w: %s", ErrNotOnCurve, p)
	}
	return p, nil
}

// IsOnCurve reports whether p satisfies the curve equation. The point at
// infinity is on every curve.
func (c *Curve) IsOnCurve(p Point) bool {
	if !p.finite {
		return true
	}
	lhs := mustMod(p.Y.Mul(p.Y), c.P)
	rhs := mustMod(p.X.Mul(p.X).Mul(p.X).Add(c.A.Mul(p.X)).Add(c.B), c.P)
	return lhs.Equal(rhs)
}

// Neg returns the inverse of p, (x, -y).
func (c *Curve) Neg(p Point) Point {
	if !p.finite {
		return p
	}
	return Point{X: p.X, Y: mustMod(p.Y.Neg(), c.P), finite: true}
}

// Add returns p + q using the chord rule, or the tangent rule when p = q.
func (c *Curve) Add(p, q Point) (Point, error) {
	switch {
	case !p.finite:
		return q, nil
	case !q.finite:
		return p, nil
	}

	if p.X.Equal(q.X) {
		if mustMod(p.Y.Add(q.Y), c.P).IsZero() {
			return Infinity(), nil
		}
		return c.Double(p)
	}

	slope, err := modular.DivMod(q.Y.Sub(p.Y), q.X.Sub(p.X), c.P)
	if err != nil {
		return Point{}, fmt.Errorf("chord slope: %w", err)
	}
	return c.fromSlope(slope, p, q.X), nil
}

// Double returns 2p.
func (c *Curve) Double(p Point) (Point, error) {
	if !p.finite || p.Y.IsZero() {
		return Infinity(), nil
	}

	num := three.Mul(p.X).Mul(p.X).Add(c.A)
	slope, err := modular.DivMod(num, two.Mul(p.Y), c.P)
	if err != nil {
		return Point{}, fmt.Errorf("tangent slope: %w", err)
	}
	return c.fromSlope(slope, p, p.X), nil
}

// fromSlope completes an addition: x3 = s² - x1 - x2, y3 = s(x1 - x3) - y1.
func (c *Curve) fromSlope(slope bigint.Int, p Point, qx bigint.Int) Point {
	x3 := mustMod(slope.Mul(slope).Sub(p.X).Sub(qx), c.P)
	y3 := mustMod(slope.Mul(p.X.Sub(x3)).Sub(p.Y), c.P)
	return Point{X: x3, Y: y3, finite: true}
}

// ScalarMult returns k·p by double-and-add over the bits of |k|. A negative
// k multiplies the inverse of p.
func (c *Curve) ScalarMult(p Point, k bigint.Int) (Point, error) {
	if k.Sign() < 0 {
		p = c.Neg(p)
		k = k.Neg()
	}

	result, addend := Infinity(), p
	for !k.IsZero() {
		var err error
		if k.IsOdd() {
			if result, err = c.Add(result, addend); err != nil {
				return Point{}, err
			}
		}
		k, _ = k.Quo(two)
		if k.IsZero() {
			break
		}
		if addend, err = c.Double(addend); err != nil {
			return Point{}, err
		}
	}
	return result, nil
}

// ScalarBaseMult returns k·G. The curve must have a base point.
func (c *Curve) ScalarBaseMult(k bigint.Int) (Point, error) {
	if !c.G.finite {
		return Point{}, errors.New("ecc: curve has no base point")
	}
	return c.ScalarMult(c.G, k)
}

// mustMod reduces x into [0, m) for a modulus already validated to be positive.
func mustMod(x, m bigint.Int) bigint.Int {
	r, err := modular.Canonical(x, m)
	if err != nil {
		panic(fmt.Sprintf("ecc: reduce mod %s: %v", m, err))
	}
	return r
}
