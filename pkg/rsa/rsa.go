// Package rsa implements textbook RSA over bigint.Int: deterministic key
// generation from a seeded source, raw encryption and decryption, and key
// persistence as TOML or msgpack.
//
// It performs no padding and no constant-time arithmetic and is meant for
// experiments and teaching, not for protecting data.
//
// # Quick Start
//
//	gen := rsa.NewKeyGenerator(rsa.DefaultKeyGenConfig().WithBits(256))
//	keys, err := gen.Generate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, _ := rsa.Encrypt(bigint.Parse("12345678901234567890"), keys.Public)
//	m, _ := rsa.Decrypt(c, *keys.Private)
package rsa

import (
	"errors"
	"fmt"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

var (
	// ErrMessageOutOfRange is returned when a message or ciphertext is not in
	// [0, N).
	ErrMessageOutOfRange = errors.New("rsa: value out of range for modulus")

	// ErrKeySizeTooSmall is returned for key sizes that leave no room for two
	// primes.
	ErrKeySizeTooSmall = errors.New("rsa: key size too small")

	// ErrMissingPrivateKey is returned when a key pair without a private part
	// is used for decryption.
	ErrMissingPrivateKey = errors.New("rsa: private key missing")
)

// PublicKey is the public half (N, E).
type PublicKey struct {
	N bigint.Int `toml:"n" msgpack:"n" json:"n"`
	E bigint.Int `toml:"e" msgpack:"e" json:"e"`
}

// PrivateKey holds the primes and the private exponent D.
type PrivateKey struct {
	P bigint.Int `toml:"p" msgpack:"p" json:"p"`
	Q bigint.Int `toml:"q" msgpack:"q" json:"q"`
	D bigint.Int `toml:"d" msgpack:"d" json:"d"`
}

// Modulus returns P·Q.
func (k PrivateKey) Modulus() bigint.Int {
	return k.P.Mul(k.Q)
}

// KeyPair bundles a public key with an optional private key.
type KeyPair struct {
	Bits    int         `toml:"bits" msgpack:"bits" json:"bits"`
	Public  PublicKey   `toml:"public" msgpack:"public" json:"public"`
	Private *PrivateKey `toml:"private,omitempty" msgpack:"private,omitempty" json:"private,omitempty"`
}

// PublicOnly returns a copy of kp without the private key.
func (kp KeyPair) PublicOnly() KeyPair {
	kp.Private = nil
	return kp
}

// Encrypt returns m^E mod N.
func Encrypt(m bigint.Int, key PublicKey) (bigint.Int, error) {
	if err := checkRange(m, key.N); err != nil {
		return bigint.Zero(), err
	}
	return modular.PowMod(m, key.E, key.N)
}

// Decrypt returns c^D mod P·Q.
func Decrypt(c bigint.Int, key PrivateKey) (bigint.Int, error) {
	n := key.Modulus()
	if err := checkRange(c, n); err != nil {
		return bigint.Zero(), err
	}
	return modular.PowMod(c, key.D, n)
}

// Decrypt decrypts c with the pair's private key.
func (kp KeyPair) Decrypt(c bigint.Int) (bigint.Int, error) {
	if kp.Private == nil {
		return bigint.Zero(), ErrMissingPrivateKey
	}
	return Decrypt(c, *kp.Private)
}

func checkRange(x, n bigint.Int) error {
	if x.Sign() < 0 || x.GreaterEq(n) {
		return fmt.Errorf("%w: %s not below %s", ErrMessageOutOfRange, x, n)
	}
	return nil
}
