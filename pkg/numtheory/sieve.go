package numtheory

import "math"

// Sieve runs a linear sieve up to n. primes lists every prime ≤ n in
// increasing order; leastPrime[i] is the smallest prime factor of i for
// 2 ≤ i ≤ n (entries 0 and 1 are 0).
func Sieve(n int) (primes []int, leastPrime []int) {
	if n < 1 {
		return nil, make([]int, max(n+1, 0))
	}
	leastPrime = make([]int, n+1)
	for i := 2; i <= n; i++ {
		if leastPrime[i] == 0 {
			leastPrime[i] = i
			primes = append(primes, i)
		}
		for _, p := range primes {
			if p > leastPrime[i] || i*p > n {
				break
			}
			leastPrime[i*p] = p
		}
	}
	return primes, leastPrime
}

// FirstPrimes returns the first k primes, sieving up to 2k(ln k + 1).
func FirstPrimes(k int) []int {
	if k <= 0 {
		return nil
	}
	bound := int(2 * float64(k) * (math.Log(float64(k)) + 1))
	primes, _ := Sieve(max(bound, 2))
	if len(primes) > k {
		primes = primes[:k]
	}
	return primes
}
