// Command cryptomath exposes the arbitrary-precision number theory library on
// the command line: primality, factorization, modular arithmetic, RSA and
// secp256k1 public keys.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	verbose    bool
	colorMode  string
	logger     *zap.Logger
	okColor    *color.Color
	failColor  *color.Color
	valueColor *color.Color
}

func newRootCmd() *cobra.Command {
	c := &cli{
		logger:     zap.NewNop(),
		okColor:    color.New(color.FgGreen, color.Bold),
		failColor:  color.New(color.FgRed, color.Bold),
		valueColor: color.New(color.FgCyan),
	}

	root := &cobra.Command{
		Use:           "cryptomath",
		Short:         "Arbitrary-precision number theory toolkit",
		Long:          `cryptomath tests primality, factors integers, solves congruences and discrete logarithms, and runs textbook RSA and secp256k1 arithmetic on arbitrarily large integers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = c.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.colorMode, "color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(
		c.isPrimeCmd(),
		c.nextPrimeCmd(),
		c.factorCmd(),
		c.eulerCmd(),
		c.mobiusCmd(),
		c.crtCmd(),
		c.dlogCmd(),
		c.inverseCmd(),
		c.powModCmd(),
		c.jacobiCmd(),
		c.legendreCmd(),
		c.rsaCmd(),
		c.eccCmd(),
	)
	return root
}

// setup builds the logger and applies the color mode.
func (c *cli) setup() error {
	switch c.colorMode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color value %q (auto|on|off)", c.colorMode)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if c.verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	c.logger = logger
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
