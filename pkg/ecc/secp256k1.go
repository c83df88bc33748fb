package ecc

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
)

// ErrInvalidPrivateKey is returned for scalars outside [1, N).
var ErrInvalidPrivateKey = errors.New("ecc: private key out of valid range")

// compressedKeyLen is the size of a SEC1 compressed secp256k1 public key.
const compressedKeyLen = 33

var secp256k1Curve = sync.OnceValue(func() *Curve {
	params := secp256k1.S256().Params()
	return &Curve{
		Name: "secp256k1",
		P:    fromBig(params.P),
		A:    bigint.Zero(),
		B:    fromBig(params.B),
		G:    Point{X: fromBig(params.Gx), Y: fromBig(params.Gy), finite: true},
		N:    fromBig(params.N),
	}
})

// Secp256k1 returns the secp256k1 curve with its standard base point. The
// returned curve is shared and must not be modified.
func Secp256k1() *Curve {
	return secp256k1Curve()
}

func fromBig(x *big.Int) bigint.Int {
	return bigint.FromUint(bigint.UintFromBytes(x.Bytes()))
}

// fieldBytes returns the byte length of a field element.
func (c *Curve) fieldBytes() int {
	return len(c.P.Bytes())
}

// SerializeCompressed encodes p in SEC1 compressed form: a 0x02 or 0x03 prefix
// for even or odd Y followed by the big-endian X coordinate.
func (c *Curve) SerializeCompressed(p Point) ([]byte, error) {
	if !p.finite {
		return nil, errors.New("ecc: cannot serialize the point at infinity")
	}
	size := c.fieldBytes()
	out := make([]byte, 1+size)
	out[0] = 0x02
	if p.Y.IsOdd() {
		out[0] = 0x03
	}
	x := p.X.Bytes()
	copy(out[1+size-len(x):], x)
	return out, nil
}

// ParsePublicKey decodes a compressed or uncompressed secp256k1 public key.
func ParsePublicKey(serialized []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(serialized)
	if err != nil {
		return Point{}, fmt.Errorf("parse public key: %w", err)
	}
	return Secp256k1().Point(fromBig(pub.X()), fromBig(pub.Y()))
}

// PublicKey returns priv·G on secp256k1.
func PublicKey(priv bigint.Int) (Point, error) {
	curve := Secp256k1()
	if priv.Sign() <= 0 || priv.GreaterEq(curve.N) {
		return Point{}, ErrInvalidPrivateKey
	}
	return curve.ScalarBaseMult(priv)
}

// VerifyPublicKey reports whether compressed is the secp256k1 public key of
// priv. The reference key is derived with the decred secp256k1 package.
func VerifyPublicKey(priv bigint.Int, compressed []byte) (bool, error) {
	if len(compressed) != compressedKeyLen {
		return false, fmt.Errorf("public key must be %d bytes (compressed format), got %d", compressedKeyLen, len(compressed))
	}
	if priv.Sign() <= 0 || priv.GreaterEq(Secp256k1().N) {
		return false, ErrInvalidPrivateKey
	}
	if _, err := secp256k1.ParsePubKey(compressed); err != nil {
		return false, fmt.Errorf("parse public key: %w", err)
	}

	// Left-pad to 32 bytes.
	privBytes := make([]byte, 32)
	b := priv.Bytes()
	copy(privBytes[32-len(b):], b)

	derived := secp256k1.PrivKeyFromBytes(privBytes).PubKey().SerializeCompressed()
	return bytes.Equal(derived, compressed), nil
}
