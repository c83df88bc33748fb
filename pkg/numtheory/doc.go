// Package numtheory provides primality testing, integer factorization,
// discrete logarithms, the Chinese remainder theorem and related
// number-theoretic functions over bigint.Int.
//
// # Quick Start
//
//	n := bigint.Parse("867017552311")
//
//	if !numtheory.IsPrime(n) {
//	    factors, err := numtheory.Factorize(n)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, f := range factors {
//	        fmt.Printf("%s^%d\n", f.Prime, f.Exponent)
//	    }
//	}
//
//	p, err := numtheory.NextPrime(bigint.Parse("340282366920938463463374607431768211456"))
//
// # Factorization
//
// Factorize strips prime factors below 1000 by trial division, then splits
// what remains with Pollard's rho until every part passes IsPrime. The
// Factorizer type exposes the trial-division limit, the rho step sequence and
// an iteration cap, and accepts a zap logger for progress output:
//
//	f := numtheory.NewFactorizer().
//	    WithConfig(numtheory.FactorizerConfig{
//	        TrialDivisionLimit: 1000,
//	        MaxRhoIterations:   5_000_000,
//	        RhoSteps:           []int64{1, 3, 5, 7},
//	    }).
//	    WithLogger(logger)
//
//	results, err := f.FactorizeAll(ctx, inputs, numtheory.DefaultBatchConfig())
//
// # Primality
//
// IsPrime uses trial division alone for numbers of at most four decimal
// digits. Larger numbers must pass trial division by the integers 2..len+3
// and Miller–Rabin with len+3 prime witnesses, len being the decimal length.
package numtheory
