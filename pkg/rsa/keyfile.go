package rsa

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
)

// WriteKeyFile stores kp as TOML. Files holding a private key are created
// with mode 0600.
func WriteKeyFile(path string, kp KeyPair) error {
	perm := os.FileMode(0o644)
	if kp.Private != nil {
		perm = 0o600
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(kp); err != nil {
		return fmt.Errorf("failed to encode key file: %w", err)
	}
	return f.Close()
}

// ReadKeyFile loads a key pair written by WriteKeyFile.
func ReadKeyFile(path string) (*KeyPair, error) {
	var kp KeyPair
	md, err := toml.DecodeFile(path, &kp)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in key file: %v", undecoded)
	}
	if kp.Public.N.Sign() <= 0 || kp.Public.E.Sign() <= 0 {
		return nil, fmt.Errorf("key file %s has no public key", path)
	}
	return &kp, nil
}

// keyPairWire drops KeyPair's methods so msgpack encodes its fields
// instead of calling MarshalBinary again.
type keyPairWire KeyPair

// MarshalBinary encodes kp with msgpack.
func (kp KeyPair) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(keyPairWire(kp))
}

// UnmarshalBinary decodes a key pair produced by MarshalBinary.
func (kp *KeyPair) UnmarshalBinary(data []byte) error {
	return msgpack.Unmarshal(data, (*keyPairWire)(kp))
}
