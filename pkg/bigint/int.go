package bigint

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Int is a signed arbitrary-precision integer: a sign and a Uint magnitude.
// Zero is never negative.
type Int struct {
	neg bool
	mag Uint
}

// Zero returns 0.
func Zero() Int {
	return Int{mag: zeroUint()}
}

// One returns 1.
func One() Int {
	return Int{mag: Uint{limbs: []uint32{1}}}
}

// New returns v as an Int.
func New(v int64) Int {
	return Parse(strconv.FormatInt(v, 10))
}

// FromUint returns the non-negative Int with magnitude u.
func FromUint(u Uint) Int {
	return Int{mag: u}
}

// Parse reads an optional leading '-' followed by decimal digits. Like
// ParseUint, other characters are skipped and a string without digits is zero.
func Parse(s string) Int {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	return newInt(neg, ParseUint(s))
}

// ParseStrict parses s as -?[0-9]+ and rejects anything else with ErrSyntax.
func ParseStrict(s string) (Int, error) {
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return Zero(), fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return Zero(), fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	return Parse(s), nil
}

// newInt normalizes the sign of zero.
func newInt(neg bool, mag Uint) Int {
	if mag.IsZero() {
		neg = false
	}
	return Int{neg: neg, mag: mag}
}

// Mag returns |x| as a Uint.
func (x Int) Mag() Uint {
	return x.mag
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case x.mag.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// signum is the stored sign as ±1, +1 for zero.
func (x Int) signum() int {
	if x.neg {
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return x.mag.IsZero() }

// IsOdd reports whether x is odd.
func (x Int) IsOdd() bool { return x.mag.IsOdd() }

// Len returns the number of decimal digits of |x|.
func (x Int) Len() int { return x.mag.Len() }

// Neg returns -x.
func (x Int) Neg() Int {
	return newInt(!x.neg, x.mag)
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{mag: x.mag}
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return addOrSub(x, y, false)
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return addOrSub(x, y, true)
}

// addOrSub reduces signed addition and subtraction to exactly one magnitude
// operation. When the effective signs agree the magnitudes are added under the
// sign of x. Otherwise the smaller magnitude is subtracted from the larger and
// the sign comes from the magnitude comparison times the effective sign of y.
func addOrSub(x, y Int, subtract bool) Int {
	if (x.neg == y.neg) != subtract {
		return newInt(x.neg, x.mag.Add(y.mag))
	}

	rhsSign := y.signum()
	if !subtract {
		rhsSign = -rhsSign
	}
	c := x.mag.Cmp(y.mag)
	var mag Uint
	if c > 0 {
		mag = x.mag.Sub(y.mag)
	} else {
		mag = y.mag.Sub(x.mag)
	}
	return newInt(c*rhsSign < 0, mag)
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return newInt(x.neg != y.neg, x.mag.Mul(y.mag))
}

// QuoRem returns the truncated quotient and remainder of x / y, so that
// q*y + r == x and r carries the sign of x.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	mq, mr, err := x.mag.QuoRem(y.mag)
	if err != nil {
		return Zero(), Zero(), err
	}
	return newInt(x.neg != y.neg, mq), newInt(x.neg, mr), nil
}

// Quo returns x / y truncated toward zero.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns x % y with the sign of x. Use modular.Canonical for a
// non-negative representative.
func (x Int) Rem(y Int) (Int, error) {
	r, err := x.mag.Rem(y.mag)
	if err != nil {
		return Zero(), err
	}
	return newInt(x.neg, r), nil
}

// Lsh returns x * Radix^k. See Uint.Lsh.
func (x Int) Lsh(k int) Int {
	return newInt(x.neg, x.mag.Lsh(k))
}

// Rsh returns x / Radix^k truncated toward zero. See Uint.Rsh.
func (x Int) Rsh(k int) Int {
	return newInt(x.neg, x.mag.Rsh(k))
}

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x Int) Cmp(y Int) int {
	if x.neg != y.neg {
		if x.neg {
			return -1
		}
		return 1
	}
	return x.mag.Cmp(y.mag) * x.signum()
}

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x Int) Less(y Int) bool { return x.Cmp(y) < 0 }

// LessEq reports whether x <= y.
func (x Int) LessEq(y Int) bool { return x.Cmp(y) <= 0 }

// Greater reports whether x > y.
func (x Int) Greater(y Int) bool { return x.Cmp(y) > 0 }

// GreaterEq reports whether x >= y.
func (x Int) GreaterEq(y Int) bool { return x.Cmp(y) >= 0 }

// Int64 returns x as an int64, or ErrOutOfRange if it does not fit.
func (x Int) Int64() (int64, error) {
	v, ok := x.mag.Uint64()
	switch {
	case !ok:
	case !x.neg:
		if s, err := safecast.Conv[int64](v); err == nil {
			return s, nil
		}
	case v <= 1<<63:
		return int64(-v), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrOutOfRange, x)
}

// String returns the decimal representation of x.
func (x Int) String() string {
	if x.neg && !x.mag.IsZero() {
		return "-" + x.mag.String()
	}
	return x.mag.String()
}
