package bigint

import (
	"encoding"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ encoding.TextMarshaler   = Int{}
	_ encoding.TextUnmarshaler = (*Int)(nil)
	_ msgpack.CustomEncoder    = Int{}
	_ msgpack.CustomDecoder    = (*Int)(nil)
)

// MarshalText encodes x as decimal text. JSON and TOML encoders pick this up,
// so integers of any size travel as strings.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText parses decimal text with ParseStrict.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := ParseStrict(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// EncodeMsgpack writes x as a msgpack string holding its decimal form.
func (x Int) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(x.String())
}

// DecodeMsgpack reads a value written by EncodeMsgpack.
func (x *Int) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return fmt.Errorf("failed to decode integer: %w", err)
	}
	return x.UnmarshalText([]byte(s))
}

// Bytes returns the big-endian encoding of |x|.
func (x Int) Bytes() []byte {
	return x.mag.Bytes()
}
