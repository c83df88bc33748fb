// Package bigint provides arbitrary-precision integers stored as base 10^9 limbs.
//
// Two types are exported:
//
//   - Uint, an unsigned magnitude (a limb vector, least significant limb first)
//   - Int, a sign and a Uint magnitude
//
// Both are immutable values: every operation returns a new value and never
// retains or modifies the limb storage of its operands. The zero value of
// either type is 0, so they are safe to use without initialization and safe
// to share between goroutines.
//
// # Quick Start
//
//	a := bigint.Parse("1378428734234174513415267865")
//	b := bigint.New(-142)
//
//	sum := a.Add(b)
//	q, r, err := a.QuoRem(b) // truncating: q*b + r == a, r has the sign of a
//	if err != nil {
//	    log.Fatal(err) // bigint.ErrDivisionByZero
//	}
//
//	fmt.Println(sum, q, r)
//
// # Shifts
//
// Lsh and Rsh shift by whole limbs, i.e. they multiply or divide by 10^(9k).
// They are not bit shifts.
//
// # Algorithms
//
// Multiplication is the schoolbook O(n·m) double loop. Division determines
// the number of limb shifts that fit the divisor below the dividend and then
// binary-searches each quotient limb. No constant-time guarantees are made.
package bigint
