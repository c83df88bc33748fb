// Package ecc implements elliptic-curve point arithmetic over prime fields
// on top of bigint.Int.
//
// Curves are in short Weierstrass form y² = x³ + ax + b (mod p). Points are
// affine with an explicit point at infinity; slopes are computed with
// modular.InverseMod, so every operation costs a modular inversion.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/cryptomath/pkg/ecc"
//
//	curve := ecc.Secp256k1()
//
//	pub, err := curve.ScalarBaseMult(bigint.Parse("123456789"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	compressed, _ := curve.SerializeCompressed(pub)
//	fmt.Printf("Public key: %x\n", compressed)
//
// # Toy Curves
//
// Small curves are handy for experiments:
//
//	curve, err := ecc.NewCurve(bigint.New(17), bigint.New(2), bigint.New(2))
//	p, _ := curve.Point(bigint.New(5), bigint.New(1))
//	q, _ := curve.ScalarMult(p, bigint.New(9))
//
// # Cross-checking
//
// VerifyPublicKey derives the secp256k1 public key of a private scalar with
// the decred secp256k1 package and compares it to a compressed key, which
// is useful to validate results computed here.
package ecc
