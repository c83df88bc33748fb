package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/cryptomath/internal/input"
	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/numtheory"
)

func parseArgs(args []string) ([]bigint.Int, error) {
	values := make([]bigint.Int, 0, len(args))
	for _, arg := range args {
		v, err := input.ParseValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func (c *cli) isPrimeCmd() *cobra.Command {
	var (
		method string
		rounds int
	)
	cmd := &cobra.Command{
		Use:   "isprime <n>...",
		Short: "Test integers for primality",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args)
			if err != nil {
				return err
			}

			var test func(bigint.Int) bool
			switch method {
			case "auto":
				test = numtheory.IsPrime
			case "trial":
				test = func(n bigint.Int) bool { return numtheory.IsPrimeTrial(n, numtheory.Exhaustive()) }
			case "fermat":
				test = func(n bigint.Int) bool { return numtheory.IsPrimeFermat(n, rounds) }
			case "miller-rabin":
				test = func(n bigint.Int) bool { return numtheory.IsPrimeMillerRabin(n, rounds) }
			default:
				return fmt.Errorf("unknown method %q (auto|trial|fermat|miller-rabin)", method)
			}

			out := cmd.OutOrStdout()
			for _, n := range values {
				if test(n) {
					fmt.Fprintf(out, "%s: %s\n", n, c.okColor.Sprint("prime"))
				} else {
					fmt.Fprintf(out, "%s: %s\n", n, c.failColor.Sprint("composite"))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", "auto", "primality test (auto|trial|fermat|miller-rabin)")
	cmd.Flags().IntVar(&rounds, "rounds", 20, "witness count for fermat and miller-rabin")
	return cmd
}

func (c *cli) nextPrimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nextprime <n>",
		Short: "Print the smallest prime greater than n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args)
			if err != nil {
				return err
			}
			p, err := numtheory.NextPrime(values[0])
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func (c *cli) factorCmd() *cobra.Command {
	var (
		file    string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "factor [n...]",
		Short: "Factor integers into prime powers",
		Long:  `Factor the given integers, or every integer listed in --file (JSON array or CSV with a "value" column), on a pool of workers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args)
			if err != nil {
				return err
			}
			if file != "" {
				fromFile, err := input.ReadIntegers(file)
				if err != nil {
					return err
				}
				values = append(values, fromFile...)
			}
			if len(values) == 0 {
				return errors.New("no integers given (pass arguments or --file)")
			}

			f := numtheory.NewFactorizer().WithLogger(c.logger)
			results, err := f.FactorizeAll(cmd.Context(), values, numtheory.BatchConfig{
				NumWorkers:    workers,
				ProgressEvery: 100,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "%s: %s\n", r.Input, c.failColor.Sprint(r.Err))
					continue
				}
				fmt.Fprintf(out, "%s = %s\n", r.Input, c.valueColor.Sprint(formatFactors(r.Factors)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs could not be factored", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read integers from a JSON or CSV file")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of parallel workers (0 = number of CPUs)")
	return cmd
}

// formatFactors renders a factorization as "2^3 * 3 * 5".
func formatFactors(factors []numtheory.Factor) string {
	if len(factors) == 0 {
		return "1"
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if f.Exponent == 1 {
			parts[i] = f.Prime.String()
		} else {
			parts[i] = fmt.Sprintf("%s^%d", f.Prime, f.Exponent)
		}
	}
	return strings.Join(parts, " * ")
}

func (c *cli) eulerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "euler <n>",
		Short: "Print Euler's totient of n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args)
			if err != nil {
				return err
			}
			phi, err := numtheory.NewFactorizer().WithLogger(c.logger).Euler(values[0])
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), phi)
			return nil
		},
	}
}

func (c *cli) mobiusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mobius <n>",
		Short: "Print the Möbius function of n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseArgs(args)
			if err != nil {
				return err
			}
			mu, err := numtheory.NewFactorizer().WithLogger(c.logger).Mobius(values[0])
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), mu)
			return nil
		},
	}
}

// printValue writes a single colored result line.
func (c *cli) printValue(out io.Writer, v any) {
	fmt.Fprintln(out, c.valueColor.Sprint(v))
}
