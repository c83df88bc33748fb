package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/cryptomath/internal/input"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
	"github.com/mahdiidarabi/cryptomath/pkg/numtheory"
)

func (c *cli) crtCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "crt [residue:modulus...]",
		Short: "Solve a system of congruences with pairwise coprime moduli",
		Example: `  cryptomath crt 2:3 3:5 2:7
  cryptomath crt --file congruences.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			system := make([]numtheory.Congruence, 0, len(args))
			for _, arg := range args {
				cong, err := input.ParseCongruence(arg)
				if err != nil {
					return err
				}
				system = append(system, cong)
			}
			if file != "" {
				fromFile, err := input.ReadCongruences(file)
				if err != nil {
					return err
				}
				system = append(system, fromFile...)
			}

			x, err := numtheory.Chinese(system)
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), x)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read congruences from a JSON or CSV file")
	return cmd
}

func (c *cli) dlogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dlog <base> <value> <modulus>",
		Short: "Solve base^x ≡ value (mod modulus) by baby-step giant-step",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			x, found, err := numtheory.LogMod(v[0], v[1], v[2])
			if err != nil {
				return err
			}
			if !found {
				return errors.New("no solution")
			}
			c.printValue(cmd.OutOrStdout(), x)
			return nil
		},
	}
}

func (c *cli) inverseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inverse <a> <modulus>",
		Short: "Print the modular inverse of a",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			inv, err := modular.InverseMod(v[0], v[1])
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), inv)
			return nil
		},
	}
}

func (c *cli) powModCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "powmod <base> <exponent> <modulus>",
		Short: "Print base^exponent mod modulus",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			r, err := modular.PowMod(v[0], v[1], v[2])
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func (c *cli) jacobiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jacobi <a> <b>",
		Short: "Print the Jacobi symbol (a/b)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), numtheory.Jacobi(v[0], v[1]))
			return nil
		},
	}
}

func (c *cli) legendreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legendre <a> <p>",
		Short: "Print the Legendre symbol (a/p) for an odd prime p",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseArgs(args)
			if err != nil {
				return err
			}
			if !numtheory.IsPrime(v[1]) {
				return fmt.Errorf("%s is not prime", v[1])
			}
			l, err := numtheory.Legendre(v[0], v[1])
			if err != nil {
				return err
			}
			c.printValue(cmd.OutOrStdout(), l)
			return nil
		},
	}
}
