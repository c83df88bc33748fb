package bigint

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Radix is the base of a single limb.
	Radix = 1_000_000_000

	// radixDigits is the number of decimal digits held by one limb.
	radixDigits = 9
)

// Uint is an unsigned magnitude stored as base Radix limbs, least significant first.
//
// A normalized Uint has at least one limb and no most-significant zero limbs,
// except for zero itself, which is exactly one zero limb.
type Uint struct {
	limbs []uint32
}

// NewUint returns v as a Uint.
func NewUint(v uint64) Uint {
	return ParseUint(strconv.FormatUint(v, 10))
}

// ParseUint builds a Uint from the decimal digits of s. Non-digit characters
// are skipped; a string without digits yields zero.
func ParseUint(s string) Uint {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) == 0 {
		return zeroUint()
	}

	limbs := make([]uint32, 0, len(digits)/radixDigits+1)
	for end := len(digits); end > 0; end -= radixDigits {
		start := max(end-radixDigits, 0)
		var limb uint32
		for _, c := range digits[start:end] {
			limb = limb*10 + uint32(c-'0')
		}
		limbs = append(limbs, limb)
	}
	return trim(limbs)
}

// UintFromBytes interprets b as a big-endian unsigned integer.
func UintFromBytes(b []byte) Uint {
	acc := zeroUint()
	for _, c := range b {
		acc = acc.mulSmall(256).Add(Uint{limbs: []uint32{uint32(c)}})
	}
	return acc
}

func zeroUint() Uint {
	return Uint{limbs: []uint32{0}}
}

// trim drops most-significant zero limbs, never below length 1.
func trim(limbs []uint32) Uint {
	n := len(limbs)
	for n > 1 && limbs[n-1] == 0 {
		n--
	}
	if n == 0 {
		return zeroUint()
	}
	return Uint{limbs: limbs[:n]}
}

// digits returns the limb vector, mapping the zero value to [0].
func (u Uint) digits() []uint32 {
	if len(u.limbs) == 0 {
		return []uint32{0}
	}
	return u.limbs
}

// IsZero reports whether u == 0.
func (u Uint) IsZero() bool {
	a := u.digits()
	return len(a) == 1 && a[0] == 0
}

// IsOdd reports whether u is odd. Radix is even, so parity is that of the lowest limb.
func (u Uint) IsOdd() bool {
	return u.digits()[0]&1 == 1
}

// Len returns the number of decimal digits of u (1 for zero).
func (u Uint) Len() int {
	a := u.digits()
	top := strconv.FormatUint(uint64(a[len(a)-1]), 10)
	return (len(a)-1)*radixDigits + len(top)
}

// Cmp returns -1, 0 or +1 as u is less than, equal to or greater than v.
func (u Uint) Cmp(v Uint) int {
	a, b := u.digits(), v.digits()
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Add returns u + v.
func (u Uint) Add(v Uint) Uint {
	a, b := u.digits(), v.digits()
	n := max(len(a), len(b))
	out := make([]uint32, 0, n+1)

	var carry uint32
	for i := 0; i < n; i++ {
		sum := carry
		if i < len(a) {
			sum += a[i]
		}
		if i < len(b) {
			sum += b[i]
		}
		carry = 0
		if sum >= Radix {
			sum -= Radix
			carry = 1
		}
		out = append(out, sum)
	}
	if carry != 0 {
		out = append(out, carry)
	}
	return trim(out)
}

// Sub returns u - v. It panics if u < v; callers order operands with Cmp first.
func (u Uint) Sub(v Uint) Uint {
	if u.Cmp(v) < 0 {
		panic("bigint: Uint.Sub underflow")
	}
	a, b := u.digits(), v.digits()
	out := make([]uint32, len(a))

	var borrow int64
	for i := range a {
		d := int64(a[i]) - borrow
		if i < len(b) {
			d -= int64(b[i])
		}
		borrow = 0
		if d < 0 {
			d += Radix
			borrow = 1
		}
		out[i] = uint32(d)
	}
	return trim(out)
}

// Mul returns u * v using the schoolbook double loop.
func (u Uint) Mul(v Uint) Uint {
	a, b := u.digits(), v.digits()
	out := make([]uint32, len(a)+len(b))

	for i, x := range a {
		var carry uint64
		for j := 0; j < len(b) || carry != 0; j++ {
			cur := uint64(out[i+j]) + carry
			if j < len(b) {
				cur += uint64(x) * uint64(b[j])
			}
			out[i+j] = uint32(cur % Radix)
			carry = cur / Radix
		}
	}
	return trim(out)
}

// mulSmall returns u * m for a single machine word m.
func (u Uint) mulSmall(m uint32) Uint {
	a := u.digits()
	out := make([]uint32, len(a)+1)

	var carry uint64
	for i, x := range a {
		cur := uint64(x)*uint64(m) + carry
		out[i] = uint32(cur % Radix)
		carry = cur / Radix
	}
	out[len(a)] = uint32(carry)
	return trim(out)
}

// divSmall returns u / d and u % d for a non-zero machine word d.
func (u Uint) divSmall(d uint32) (Uint, uint32) {
	a := u.digits()
	out := make([]uint32, len(a))

	var rem uint64
	for i := len(a) - 1; i >= 0; i-- {
		cur := rem*Radix + uint64(a[i])
		out[i] = uint32(cur / uint64(d))
		rem = cur % uint64(d)
	}
	return trim(out), uint32(rem)
}

// Lsh returns u * Radix^k: k zero limbs are inserted at the least significant end.
func (u Uint) Lsh(k int) Uint {
	if k < 0 {
		return u.Rsh(-k)
	}
	if k == 0 || u.IsZero() {
		return u
	}
	a := u.digits()
	out := make([]uint32, len(a)+k)
	copy(out[k:], a)
	return Uint{limbs: out}
}

// Rsh returns u / Radix^k: the k least significant limbs are discarded.
func (u Uint) Rsh(k int) Uint {
	if k < 0 {
		return u.Lsh(-k)
	}
	if k == 0 {
		return u
	}
	a := u.digits()
	if k >= len(a) {
		return zeroUint()
	}
	out := make([]uint32, len(a)-k)
	copy(out, a[k:])
	return trim(out)
}

// QuoRem returns the quotient and remainder of u / v.
func (u Uint) QuoRem(v Uint) (q, r Uint, err error) {
	if v.IsZero() {
		return zeroUint(), zeroUint(), ErrDivisionByZero
	}
	q, r = longDivide(u, v, true)
	return q, r, nil
}

// Quo returns u / v.
func (u Uint) Quo(v Uint) (Uint, error) {
	q, _, err := u.QuoRem(v)
	return q, err
}

// Rem returns u % v. It runs the same digit search as QuoRem without
// accumulating the quotient.
func (u Uint) Rem(v Uint) (Uint, error) {
	if v.IsZero() {
		return zeroUint(), ErrDivisionByZero
	}
	_, r := longDivide(u, v, false)
	return r, nil
}

// longDivide finds the largest k with v·Radix^k ≤ u, then for each shift from
// k-1 down to 0 binary-searches the quotient limb and subtracts it out.
// v must be non-zero.
func longDivide(u, v Uint, withQuotient bool) (q, r Uint) {
	q = zeroUint()
	r = u
	shifted := v
	k := 0
	for r.Cmp(shifted) >= 0 {
		shifted = shifted.Lsh(1)
		k++
	}

	for k > 0 {
		shifted = shifted.Rsh(1)
		k--

		x := maxDigit(r, shifted)
		r = r.Sub(shifted.mulSmall(x))
		if withQuotient {
			q = q.Add(Uint{limbs: []uint32{x}}.Lsh(k))
		}
	}
	return q, r
}

// maxDigit returns the largest x in [0, Radix) with d·x ≤ rem.
func maxDigit(rem, d Uint) uint32 {
	lo, hi := uint32(0), uint32(Radix-1)
	var x uint32
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if rem.Cmp(d.mulSmall(mid)) >= 0 {
			x = mid
			lo = mid + 1
			continue
		}
		if mid == 0 {
			break
		}
		hi = mid - 1
	}
	return x
}

// Uint64 returns u as a uint64 and whether it fits.
func (u Uint) Uint64() (uint64, bool) {
	a := u.digits()
	var v uint64
	for i := len(a) - 1; i >= 0; i-- {
		if v > (math.MaxUint64-uint64(a[i]))/Radix {
			return 0, false
		}
		v = v*Radix + uint64(a[i])
	}
	return v, true
}

// Bytes returns the minimal big-endian encoding of u. Zero encodes as an empty slice.
func (u Uint) Bytes() []byte {
	var out []byte
	for cur := u; !cur.IsZero(); {
		var b uint32
		cur, b = cur.divSmall(256)
		out = append(out, byte(b))
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// String returns the decimal representation of u without leading zeros.
func (u Uint) String() string {
	a := u.digits()
	var sb strings.Builder
	sb.Grow(len(a) * radixDigits)
	sb.WriteString(strconv.FormatUint(uint64(a[len(a)-1]), 10))
	for i := len(a) - 2; i >= 0; i-- {
		limb := strconv.FormatUint(uint64(a[i]), 10)
		sb.WriteString(strings.Repeat("0", radixDigits-len(limb)))
		sb.WriteString(limb)
	}
	return sb.String()
}
